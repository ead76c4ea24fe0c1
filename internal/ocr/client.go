// Package ocr extracts receipt data from an image by asking an
// OpenAI-compatible chat-completions API to transcribe it into JSON.
//
// The extracted receipt is returned to the caller for review; nothing is
// persisted here.
package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultURL     = "https://api.openai.com/v1/chat/completions"
	DefaultModel   = "gpt-4o"
	DefaultTimeout = 60 * time.Second

	maxTokens = 1024
)

var (
	// ErrNotConfigured is returned when no API key is set.
	ErrNotConfigured = errors.New("ocr: API key is not configured")

	// ErrUnauthorized is returned when the API rejects the key.
	ErrUnauthorized = errors.New("ocr: API authentication failed (401), the key may be invalid or expired")

	// ErrEmptyImage is returned for a zero-length upload.
	ErrEmptyImage = errors.New("ocr: image is empty")
)

// APIError is a non-2xx answer from the API other than 401.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ocr: API error (%d): %s", e.Status, e.Body)
}

// Receipt is the fixed schema the model is asked to fill.
type Receipt struct {
	StoreName    string  `json:"storeName"`
	StoreAddress string  `json:"storeAddress"`
	Date         string  `json:"date"`
	Time         string  `json:"time"`
	Items        []Item  `json:"items"`
	SubTotal     float64 `json:"subTotal"`
	TaxTotal     float64 `json:"taxTotal"`
	Total        float64 `json:"total"`
}

type Item struct {
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// Config holds the client settings.
type Config struct {
	APIKey  string
	URL     string
	Model   string
	Timeout time.Duration
}

// Client calls the chat-completions API.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient creates a Client, filling unset fields of cfg with defaults.
func NewClient(cfg Config) *Client {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{cfg: cfg, http: &http.Client{Timeout: cfg.Timeout}}
}

// Configured reports whether an API key is set.
func (c *Client) Configured() bool {
	return strings.TrimSpace(c.cfg.APIKey) != ""
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Extract sends the image and decodes the receipt the model returns.
// No retries are made; the call is bounded by the configured timeout.
func (c *Client) Extract(ctx context.Context, image []byte, contentType string) (*Receipt, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	if len(image) == 0 {
		return nil, ErrEmptyImage
	}
	if contentType == "" {
		contentType = http.DetectContentType(image)
	}

	body, err := json.Marshal(chatRequest{
		Model:     c.cfg.Model,
		MaxTokens: maxTokens,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: []contentPart{
				{Type: "text", Text: "Extract all information from this receipt image."},
				{Type: "image_url", ImageURL: &imageURL{
					URL: "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(image),
				}},
			}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call OCR API: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read OCR response: %w", err)
	}
	slog.Debug("OCR API responded", "status", resp.StatusCode, "duration_ms", time.Since(start).Milliseconds())

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, ErrUnauthorized
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &APIError{Status: resp.StatusCode, Body: string(raw)}
	}

	return parseResponse(raw)
}

// parseResponse pulls the receipt JSON out of the first choice, tolerating a
// markdown code fence around it.
func parseResponse(raw []byte) (*Receipt, error) {
	var chat chatResponse
	if err := json.Unmarshal(raw, &chat); err != nil {
		return nil, fmt.Errorf("failed to decode OCR response: %w", err)
	}
	if len(chat.Choices) == 0 {
		return nil, errors.New("ocr: response has no choices")
	}

	content := strings.TrimSpace(chat.Choices[0].Message.Content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var receipt Receipt
	if err := json.Unmarshal([]byte(content), &receipt); err != nil {
		return nil, fmt.Errorf("failed to decode receipt JSON: %w", err)
	}
	return &receipt, nil
}

const systemPrompt = `You are a strict receipt-to-JSON extractor. Read the provided image and output ONLY one JSON object that matches the exact schema below. The prices have to be accurate, check them rigorously.
ABSOLUTE RULES:
- Do not add, rename, or remove keys from the schema. No extra metadata, notes, or null fields.
- Do not hallucinate values. Only use what is clearly printed on the receipt.
- Some bills list a discount on the line below an item, followed by a '-' symbol. Subtract it from the previous entry's price to get the correct price.
- If a value is missing or unclear, use an empty string for text fields and 0 for numbers.
- Prices are decimals without currency symbols. Date = YYYY-MM-DD, time = HH:MM (24h).
- Items: if quantity is printed, multiply unit price by quantity to set "price"; if not printed, assume quantity 1.
- Trim whitespace and preserve on-receipt wording for item descriptions where legible.
- Return raw JSON only (no markdown, no commentary).

SCHEMA:
{
  "storeName": "string",
  "storeAddress": "string",
  "date": "string",
  "time": "string",
  "items": [
    { "description": "string", "price": "number" }
  ],
  "subTotal": "number",
  "taxTotal": "number",
  "total": "number"
}
`
