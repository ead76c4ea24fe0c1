// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/mmynk/splitter/internal/models"
)

// ReceiptStore holds bills and their items.
type ReceiptStore interface {
	// CreateBill persists a new bill with its items.
	// The bill.ID, bill.CreatedAt and item IDs are populated by the store.
	CreateBill(ctx context.Context, bill *models.Bill) error

	// GetBill retrieves a bill with its items.
	// Returns an error wrapping models.ErrNotFound if the bill does not exist.
	GetBill(ctx context.Context, billID string) (*models.Bill, error)

	// UpdateBill overwrites the bill's header fields and replaces its item
	// list. Prior items are discarded, not merged.
	UpdateBill(ctx context.Context, bill *models.Bill) error

	// ReplaceItems atomically discards the bill's items and attaches the
	// given ones, each tagged with the bill ID.
	ReplaceItems(ctx context.Context, billID string, items []models.Item) error

	// DeleteBill removes a bill and its items.
	DeleteBill(ctx context.Context, billID string) error
}

// ParticipantRegistry holds the participants attached to receipts.
type ParticipantRegistry interface {
	// UpsertParticipant deletes any record for (ReceiptID, UserID) and
	// inserts the given one.
	UpsertParticipant(ctx context.Context, p *models.Participant) error

	// ParticipantExists reports whether the user ID is attached to any
	// receipt. The check is global, not receipt scoped.
	ParticipantExists(ctx context.Context, userID string) (bool, error)

	// ListParticipants returns the participants of a receipt.
	// An empty slice is returned when there are none.
	ListParticipants(ctx context.Context, receiptID string) ([]models.Participant, error)

	// DeleteParticipant removes the (receiptID, userID) record if present.
	DeleteParticipant(ctx context.Context, receiptID, userID string) error
}

// SplitStore holds item splits and their shares.
type SplitStore interface {
	// SaveSplits persists the splits and their shares in one transaction.
	// A split whose item ID already exists replaces the stored split and
	// every one of its shares.
	SaveSplits(ctx context.Context, splits []models.Split) error

	// ListShares returns every share stored for the receipt, flattened
	// across splits. An empty slice is returned when there are none.
	ListShares(ctx context.Context, receiptID string) ([]models.Share, error)
}

// Store defines the interface for all storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	ReceiptStore
	ParticipantRegistry
	SplitStore

	// Close releases any resources held by the store.
	Close() error
}
