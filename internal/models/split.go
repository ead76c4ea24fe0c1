package models

import "github.com/shopspring/decimal"

// Split is the share assignment for one receipt item.
// There is at most one Split per item; its identity is the item ID.
type Split struct {
	// ItemID identifies both the item and this split.
	ItemID string

	// ReceiptID references the receipt the item belongs to.
	ReceiptID string

	// ItemName is the item description at the time of splitting.
	ItemName string

	// Price is the item price that was divided.
	Price decimal.Decimal

	// Shares are the per-participant weights and costs.
	Shares []Share
}

// Share is one participant's part of a Split.
type Share struct {
	// ID is the unique identifier for the share row (UUID format).
	ID string

	// UserID is the participant this share belongs to.
	UserID string

	// Share is the relative weight. Weights in a split need not sum to any
	// fixed value.
	Share decimal.Decimal

	// Cost is Price × Share / ΣShares, rounded half-up to 3 places.
	// Zero when the weights sum to zero.
	Cost decimal.Decimal

	// ItemID references the owning Split.
	ItemID string

	// ReceiptID references the receipt.
	ReceiptID string
}

// TotalShares returns the sum of the relative weights in the split.
func (s Split) TotalShares() decimal.Decimal {
	total := decimal.Zero
	for _, sh := range s.Shares {
		total = total.Add(sh.Share)
	}
	return total
}
