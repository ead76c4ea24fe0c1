package ocr

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func chatBody(content string) string {
	b, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"role": "assistant", "content": content}},
		},
	})
	return string(b)
}

const receiptJSON = `{"storeName":"Corner Shop","storeAddress":"1 Main St","date":"2024-05-01","time":"18:30",
"items":[{"description":"Milk 2L","price":2.49},{"description":"Bread","price":3.1}],
"subTotal":5.59,"taxTotal":0.45,"total":6.04}`

func TestExtract(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"raw json", receiptJSON},
		{"fenced json", "```json\n" + receiptJSON + "\n```"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got chatRequest
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
					t.Errorf("Authorization = %q", auth)
				}
				raw, _ := io.ReadAll(r.Body)
				if err := json.Unmarshal(raw, &got); err != nil {
					t.Errorf("bad request body: %v", err)
				}
				if !strings.Contains(string(raw), "data:image/png;base64,") {
					t.Error("request does not carry an image data URL")
				}
				w.Header().Set("Content-Type", "application/json")
				io.WriteString(w, chatBody(tt.content))
			}))
			defer srv.Close()

			client := NewClient(Config{APIKey: "test-key", URL: srv.URL})
			receipt, err := client.Extract(context.Background(), []byte("fake-png"), "image/png")
			if err != nil {
				t.Fatalf("Extract failed: %v", err)
			}

			if got.Model != DefaultModel || got.MaxTokens != 1024 {
				t.Errorf("request model/max_tokens = %s/%d", got.Model, got.MaxTokens)
			}
			if receipt.StoreName != "Corner Shop" {
				t.Errorf("store name = %q", receipt.StoreName)
			}
			if len(receipt.Items) != 2 || receipt.Items[1].Price != 3.1 {
				t.Errorf("unexpected items: %+v", receipt.Items)
			}
			if receipt.Total != 6.04 {
				t.Errorf("total = %v, want 6.04", receipt.Total)
			}
		})
	}
}

func TestExtract_Errors(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		_, err := NewClient(Config{}).Extract(context.Background(), []byte("x"), "image/png")
		if !errors.Is(err, ErrNotConfigured) {
			t.Errorf("expected ErrNotConfigured, got %v", err)
		}
	})

	t.Run("empty image", func(t *testing.T) {
		_, err := NewClient(Config{APIKey: "k"}).Extract(context.Background(), nil, "image/png")
		if !errors.Is(err, ErrEmptyImage) {
			t.Errorf("expected ErrEmptyImage, got %v", err)
		}
	})

	t.Run("unauthorized", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"invalid key"}`, http.StatusUnauthorized)
		}))
		defer srv.Close()

		_, err := NewClient(Config{APIKey: "bad", URL: srv.URL}).Extract(context.Background(), []byte("x"), "image/png")
		if !errors.Is(err, ErrUnauthorized) {
			t.Errorf("expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("api error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "rate limited", http.StatusTooManyRequests)
		}))
		defer srv.Close()

		_, err := NewClient(Config{APIKey: "k", URL: srv.URL}).Extract(context.Background(), []byte("x"), "image/png")
		var apiErr *APIError
		if !errors.As(err, &apiErr) || apiErr.Status != http.StatusTooManyRequests {
			t.Errorf("expected APIError 429, got %v", err)
		}
	})

	t.Run("timeout", func(t *testing.T) {
		release := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		defer srv.Close()
		defer close(release)

		client := NewClient(Config{APIKey: "k", URL: srv.URL, Timeout: 50 * time.Millisecond})
		start := time.Now()
		_, err := client.Extract(context.Background(), []byte("x"), "image/png")
		if err == nil {
			t.Fatal("expected timeout error")
		}
		if time.Since(start) > 2*time.Second {
			t.Errorf("Extract took %v, timeout not honoured", time.Since(start))
		}
	})

	t.Run("not json", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, chatBody("I could not read this receipt."))
		}))
		defer srv.Close()

		_, err := NewClient(Config{APIKey: "k", URL: srv.URL}).Extract(context.Background(), []byte("x"), "image/png")
		if err == nil {
			t.Error("expected decode error")
		}
	})
}
