package calculator

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitter/internal/models"
	"github.com/mmynk/splitter/internal/money"
)

// Weight is one participant's relative share of an item.
type Weight struct {
	UserID string
	Share  decimal.Decimal
}

// Item is an item assignment: the item being split and who takes part in it.
type Item struct {
	ItemID  string
	Name    string
	Price   decimal.Decimal
	Weights []Weight
}

// AllocateItem computes each participant's cost for a single item.
// Based on the algorithm: cost = round(price × round(share / Σshares, 10), 3)
// with half-up rounding. When the weights sum to zero every cost is zero.
//
// Costs are rounded independently, so their sum can differ from the price by
// up to 0.0005 per participant.
func AllocateItem(receiptID string, item Item) models.Split {
	split := models.Split{
		ItemID:    item.ItemID,
		ReceiptID: receiptID,
		ItemName:  item.Name,
		Price:     item.Price,
		Shares:    make([]models.Share, len(item.Weights)),
	}

	totalShares := decimal.Zero
	for _, w := range item.Weights {
		totalShares = totalShares.Add(w.Share)
	}

	for i, w := range item.Weights {
		cost := decimal.Zero
		if !totalShares.IsZero() {
			cost = money.Proportion(item.Price, w.Share, totalShares)
		}
		split.Shares[i] = models.Share{
			UserID:    w.UserID,
			Share:     w.Share,
			Cost:      cost,
			ItemID:    item.ItemID,
			ReceiptID: receiptID,
		}
	}

	return split
}

// BuildReport aggregates stored shares into per-participant totals with
// proportional tax.
//
// For every participant: tax = round(subtotal / billSubtotal × billTax, 3)
// when billSubtotal > 0, otherwise 0; total = round(subtotal + tax, 3).
// Report totals are the bill's own figures, each rounded to 3 places.
func BuildReport(receiptID string, shares []models.Share, billSubtotal, billTax decimal.Decimal) (*models.Report, error) {
	if len(shares) == 0 {
		return nil, fmt.Errorf("no shares to aggregate for receipt %s", receiptID)
	}

	subtotals := make(map[string]decimal.Decimal)
	for _, s := range shares {
		subtotals[s.UserID] = subtotals[s.UserID].Add(s.Cost)
	}

	userIDs := make([]string, 0, len(subtotals))
	for id := range subtotals {
		userIDs = append(userIDs, id)
	}
	sort.Strings(userIDs)

	report := &models.Report{
		ReceiptID:    receiptID,
		Participants: make([]models.ParticipantTotal, 0, len(userIDs)),
		Subtotal:     money.Round(billSubtotal),
		Tax:          money.Round(billTax),
		GrandTotal:   money.Round(billSubtotal.Add(billTax)),
	}

	for _, id := range userIDs {
		subtotal := subtotals[id]
		tax := decimal.Zero
		if billSubtotal.IsPositive() {
			tax = money.Proportion(billTax, subtotal, billSubtotal)
		}
		report.Participants = append(report.Participants, models.ParticipantTotal{
			UserID:    id,
			Subtotal:  subtotal,
			Tax:       tax,
			TotalCost: money.Round(subtotal.Add(tax)),
		})
	}

	return report, nil
}
