package service

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mmynk/splitter/internal/ocr"
)

type fakeExtractor struct {
	receipt     *ocr.Receipt
	err         error
	gotBytes    int
	contentType string
}

func (f *fakeExtractor) Extract(_ context.Context, image []byte, contentType string) (*ocr.Receipt, error) {
	f.gotBytes = len(image)
	f.contentType = contentType
	return f.receipt, f.err
}

func uploadRequest(t *testing.T, field string, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile(field, "receipt.png")
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	part.Write(data)
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/ocr/extract", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestOCRHandler(t *testing.T) {
	receipt := &ocr.Receipt{StoreName: "Corner Shop", Total: 6.04, Items: []ocr.Item{{Description: "Bread", Price: 3.1}}}

	tests := []struct {
		name       string
		extractor  *fakeExtractor
		req        func(t *testing.T) *http.Request
		wantStatus int
	}{
		{
			name:       "success",
			extractor:  &fakeExtractor{receipt: receipt},
			req:        func(t *testing.T) *http.Request { return uploadRequest(t, "file", []byte("png-bytes")) },
			wantStatus: http.StatusOK,
		},
		{
			name:       "wrong field",
			extractor:  &fakeExtractor{receipt: receipt},
			req:        func(t *testing.T) *http.Request { return uploadRequest(t, "image", []byte("png-bytes")) },
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "empty file",
			extractor:  &fakeExtractor{receipt: receipt},
			req:        func(t *testing.T) *http.Request { return uploadRequest(t, "file", nil) },
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "wrong method",
			extractor:  &fakeExtractor{receipt: receipt},
			req:        func(t *testing.T) *http.Request { return httptest.NewRequest(http.MethodGet, "/ocr/extract", nil) },
			wantStatus: http.StatusMethodNotAllowed,
		},
		{
			name:       "not configured",
			extractor:  &fakeExtractor{err: ocr.ErrNotConfigured},
			req:        func(t *testing.T) *http.Request { return uploadRequest(t, "file", []byte("png-bytes")) },
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "upstream error",
			extractor:  &fakeExtractor{err: &ocr.APIError{Status: 500, Body: "boom"}},
			req:        func(t *testing.T) *http.Request { return uploadRequest(t, "file", []byte("png-bytes")) },
			wantStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewOCRHandler(tt.extractor).ServeHTTP(rec, tt.req(t))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status: expected %d, got %d (%s)", tt.wantStatus, rec.Code, rec.Body.String())
			}
			if tt.wantStatus != http.StatusOK {
				return
			}

			var got ocr.Receipt
			if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
				t.Fatalf("bad response body: %v", err)
			}
			if got.StoreName != "Corner Shop" || len(got.Items) != 1 {
				t.Errorf("unexpected receipt: %+v", got)
			}
			if tt.extractor.gotBytes != len("png-bytes") {
				t.Errorf("extractor saw %d bytes", tt.extractor.gotBytes)
			}
		})
	}
}
