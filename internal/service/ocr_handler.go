package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/mmynk/splitter/internal/ocr"
)

// maxUploadBytes bounds the receipt image size accepted by the OCR endpoint.
const maxUploadBytes = 10 << 20

// Extractor turns a receipt image into structured data.
type Extractor interface {
	Extract(ctx context.Context, image []byte, contentType string) (*ocr.Receipt, error)
}

// OCRHandler serves POST /ocr/extract. The multipart field "file" holds the
// image; the answer is the extracted receipt, which the client reviews and
// then stores with CreateReceipt.
type OCRHandler struct {
	extractor Extractor
}

// NewOCRHandler creates an OCRHandler.
func NewOCRHandler(extractor Extractor) *OCRHandler {
	return &OCRHandler{extractor: extractor}
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (h *OCRHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "use POST")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_argument", "multipart field \"file\" is required")
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_argument", "failed to read file")
		return
	}
	if len(image) == 0 {
		writeError(w, http.StatusBadRequest, "invalid_argument", "file is empty")
		return
	}

	slog.Info("OCR extraction requested", "filename", header.Filename, "bytes", len(image))

	receipt, err := h.extractor.Extract(r.Context(), image, header.Header.Get("Content-Type"))
	if err != nil {
		var apiErr *ocr.APIError
		switch {
		case errors.Is(err, ocr.ErrNotConfigured):
			slog.Error("OCR not configured, set OPENAI_API_KEY")
			writeError(w, http.StatusInternalServerError, "not_configured", err.Error())
		case errors.Is(err, ocr.ErrUnauthorized):
			slog.Error("OCR API rejected the key")
			writeError(w, http.StatusInternalServerError, "unauthenticated", err.Error())
		case errors.As(err, &apiErr):
			slog.Error("OCR API error", "status", apiErr.Status, "body", apiErr.Body)
			writeError(w, http.StatusBadGateway, "upstream", err.Error())
		default:
			slog.Error("OCR extraction failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal", err.Error())
		}
		return
	}

	slog.Info("OCR extraction done", "store", receipt.StoreName, "items", len(receipt.Items), "total", receipt.Total)
	writeJSON(w, http.StatusOK, receipt)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]errorBody{"error": {Code: code, Message: message}})
}
