package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/mmynk/splitter/pkg/api"
	"github.com/mmynk/splitter/pkg/api/apiconnect"
)

type stubReceipts struct {
	apiconnect.UnimplementedReceiptServiceHandler
}

func (stubReceipts) GetReceipt(context.Context, *connect.Request[api.GetReceiptRequest]) (*connect.Response[api.GetReceiptResponse], error) {
	return connect.NewResponse(&api.GetReceiptResponse{Receipt: api.Receipt{ReceiptID: "r1"}}), nil
}

func TestRPCMetricsInterceptor(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewRPCMetrics("test", reg)

	path, handler := apiconnect.NewReceiptServiceHandler(stubReceipts{},
		connect.WithInterceptors(LoggingInterceptor(), metrics.Interceptor()))
	mux := http.NewServeMux()
	mux.Handle(path, handler)
	server := httptest.NewServer(mux)
	defer server.Close()

	client := apiconnect.NewReceiptServiceClient(http.DefaultClient, server.URL)
	ctx := context.Background()

	if _, err := client.GetReceipt(ctx, connect.NewRequest(&api.GetReceiptRequest{ReceiptID: "r1"})); err != nil {
		t.Fatalf("GetReceipt failed: %v", err)
	}
	_, err := client.DeleteReceipt(ctx, connect.NewRequest(&api.DeleteReceiptRequest{ReceiptID: "r1"}))
	if connect.CodeOf(err) != connect.CodeUnimplemented {
		t.Fatalf("expected unimplemented, got %v", err)
	}

	ok := testutil.ToFloat64(metrics.Requests.WithLabelValues(apiconnect.ReceiptServiceGetReceiptProcedure, "ok"))
	if ok != 1 {
		t.Errorf("ok count = %v, want 1", ok)
	}
	failed := testutil.ToFloat64(metrics.Requests.WithLabelValues(apiconnect.ReceiptServiceDeleteReceiptProcedure, "unimplemented"))
	if failed != 1 {
		t.Errorf("unimplemented count = %v, want 1", failed)
	}
	if n := testutil.CollectAndCount(metrics.Duration); n != 2 {
		t.Errorf("expected 2 histogram series, got %d", n)
	}
}

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	tests := []struct {
		name       string
		allowed    []string
		origin     string
		method     string
		wantOrigin string
		wantStatus int
	}{
		{"wildcard", []string{"*"}, "https://x.example", http.MethodPost, "*", http.StatusTeapot},
		{"listed origin", []string{"https://a.example"}, "https://a.example", http.MethodPost, "https://a.example", http.StatusTeapot},
		{"unlisted origin", []string{"https://a.example"}, "https://evil.example", http.MethodPost, "", http.StatusTeapot},
		{"preflight", []string{"*"}, "https://x.example", http.MethodOptions, "*", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/splitter.v1.SplitService/ShareBill", nil)
			req.Header.Set("Origin", tt.origin)
			rec := httptest.NewRecorder()

			RequestLogger(CORS(tt.allowed)(next)).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("allow origin = %q, want %q", got, tt.wantOrigin)
			}
		})
	}
}
