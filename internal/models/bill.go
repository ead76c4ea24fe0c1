package models

import "github.com/shopspring/decimal"

// Bill represents a captured receipt with its line items.
// It is created on receipt ingestion and may be replaced wholesale on update.
type Bill struct {
	// ID is the receipt identifier (UUID format).
	ID string

	// StoreName is the merchant name as printed on the receipt.
	StoreName string

	// StoreAddress is the merchant address as printed on the receipt.
	StoreAddress string

	// Date is the receipt date, YYYY-MM-DD when known.
	Date string

	// Time is the receipt time, HH:MM (24h) when known.
	Time string

	// Subtotal is the pre-tax amount.
	Subtotal decimal.Decimal

	// TaxTotal is the total tax charged on the receipt.
	TaxTotal decimal.Decimal

	// Total is the grand total. Expected to equal Subtotal + TaxTotal,
	// but this is not enforced.
	Total decimal.Decimal

	// Items are the line items, in receipt order.
	Items []Item

	// CreatedAt is the Unix timestamp when the bill was stored.
	CreatedAt int64
}

// Item represents a single line on a receipt.
type Item struct {
	// ID is the unique identifier for the item (UUID format).
	ID string

	// BillID references the owning Bill.
	BillID string

	// Description is the item text as printed (e.g., "Milk 2L").
	Description string

	// Price is the line price, already multiplied by quantity.
	Price decimal.Decimal
}
