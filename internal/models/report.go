package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParticipantTotal is one participant's line in a split report.
type ParticipantTotal struct {
	UserID string

	// Subtotal is the sum of the participant's share costs.
	Subtotal decimal.Decimal

	// Tax is the participant's proportional share of the receipt tax.
	Tax decimal.Decimal

	// TotalCost is Subtotal + Tax, rounded half-up to 3 places.
	TotalCost decimal.Decimal

	// Paid is the flat amount recorded on the participant, if any.
	Paid *decimal.Decimal

	// Balance is Paid - TotalCost. Positive means the participant is owed
	// money. Only set when Paid is set.
	Balance *decimal.Decimal
}

// Settlement is a suggested payment that evens out participant balances.
type Settlement struct {
	FromUserID string
	ToUserID   string
	Amount     decimal.Decimal
}

// Report is the aggregate result for a receipt.
// GrandTotal is Subtotal + Tax and is not derived from the participant
// lines, so rounding residue between the two is expected.
type Report struct {
	ReceiptID    string
	Participants []ParticipantTotal
	Subtotal     decimal.Decimal
	Tax          decimal.Decimal
	GrandTotal   decimal.Decimal
	Settlements  []Settlement
}

// String renders the report as plain text, one participant per line.
func (r *Report) String() string {
	var b strings.Builder
	b.WriteString("Total cost per user:\n")
	for _, p := range r.Participants {
		fmt.Fprintf(&b, "UserId: %s, Total Cost: %s\n", p.UserID, p.TotalCost.StringFixed(3))
	}
	fmt.Fprintf(&b, "Subtotal: %s\n", r.Subtotal.StringFixed(3))
	fmt.Fprintf(&b, "Tax: %s\n", r.Tax.StringFixed(3))
	fmt.Fprintf(&b, "Grand Total: %s", r.GrandTotal.StringFixed(3))
	for _, s := range r.Settlements {
		fmt.Fprintf(&b, "\n%s pays %s: %s", s.FromUserID, s.ToUserID, s.Amount.StringFixed(3))
	}
	return b.String()
}
