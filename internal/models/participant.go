package models

import "github.com/shopspring/decimal"

// Participant is a person taking part in the split of one receipt.
// The pair (ReceiptID, UserID) identifies a participant record; the same
// UserID may be attached to several receipts.
type Participant struct {
	// UserID is the client-supplied participant identifier.
	UserID string

	// ReceiptID references the receipt.
	ReceiptID string

	// Name is the display name.
	Name string

	// Amount is an optional flat amount the participant has already paid
	// towards the bill. Nil when not provided.
	Amount *decimal.Decimal
}
