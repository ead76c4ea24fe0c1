package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/splitter/internal/allocation"
	"github.com/mmynk/splitter/internal/storage/sqlite"
	"github.com/mmynk/splitter/pkg/api"
	"github.com/mmynk/splitter/pkg/api/apiconnect"
)

type testClients struct {
	receipts apiconnect.ReceiptServiceClient
	splits   apiconnect.SplitServiceClient
}

// setupTestServer creates a test server backed by a temporary SQLite database.
func setupTestServer(t *testing.T) (testClients, func()) {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "test-*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.Close()

	store, err := sqlite.New(tmpFile.Name())
	if err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to create store: %v", err)
	}

	receiptPath, receiptHandler := apiconnect.NewReceiptServiceHandler(NewReceiptService(store))
	splitPath, splitHandler := apiconnect.NewSplitServiceHandler(NewSplitService(store, allocation.NewEngine(store)))

	mux := http.NewServeMux()
	mux.Handle(receiptPath, receiptHandler)
	mux.Handle(splitPath, splitHandler)

	server := httptest.NewServer(mux)

	clients := testClients{
		receipts: apiconnect.NewReceiptServiceClient(http.DefaultClient, server.URL),
		splits:   apiconnect.NewSplitServiceClient(http.DefaultClient, server.URL),
	}

	cleanup := func() {
		server.Close()
		store.Close()
		os.Remove(tmpFile.Name())
	}

	return clients, cleanup
}

func createReceipt(t *testing.T, c testClients, r api.Receipt) string {
	t.Helper()
	resp, err := c.receipts.CreateReceipt(context.Background(), connect.NewRequest(&api.CreateReceiptRequest{Receipt: r}))
	if err != nil {
		t.Fatalf("CreateReceipt failed: %v", err)
	}
	return resp.Msg.ReceiptID
}

func upsertParticipants(t *testing.T, c testClients, receiptID string, userIDs ...string) {
	t.Helper()
	participants := make([]api.Participant, len(userIDs))
	for i, id := range userIDs {
		participants[i] = api.Participant{UserID: id, ReceiptID: receiptID, Name: id}
	}
	_, err := c.splits.UpsertParticipants(context.Background(), connect.NewRequest(&api.UpsertParticipantsRequest{
		Participants: participants,
	}))
	if err != nil {
		t.Fatalf("UpsertParticipants failed: %v", err)
	}
}

func assertCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", want)
	}
	if got := connect.CodeOf(err); got != want {
		t.Errorf("expected code %s, got %s (%v)", want, got, err)
	}
}
