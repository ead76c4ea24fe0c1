package calculator

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitter/internal/models"
	"github.com/mmynk/splitter/internal/money"
)

// ApplyPayments records what each reported participant has already paid and
// suggests settlements that even out the balances.
//
// paid maps user IDs to the flat amount recorded on the participant. Users
// that are not in the report are ignored; reported users without a payment
// are treated as having paid nothing once at least one payment exists.
//
// Algorithm:
// - balance = paid - total_cost (positive = owed money, negative = owes money)
// - settlements: greedy matching of the largest debtor with the largest creditor
func ApplyPayments(report *models.Report, paid map[string]decimal.Decimal) {
	if report == nil || len(paid) == 0 {
		return
	}

	hasPayment := false
	for _, p := range report.Participants {
		if _, ok := paid[p.UserID]; ok {
			hasPayment = true
			break
		}
	}
	if !hasPayment {
		return
	}

	type party struct {
		userID string
		amount decimal.Decimal
	}
	var creditors, debtors []party

	for i := range report.Participants {
		line := &report.Participants[i]
		amount := paid[line.UserID]
		balance := money.Round(amount.Sub(line.TotalCost))
		line.Paid = &amount
		line.Balance = &balance

		switch {
		case balance.IsPositive():
			creditors = append(creditors, party{line.UserID, balance})
		case balance.IsNegative():
			debtors = append(debtors, party{line.UserID, balance.Neg()})
		}
	}

	byAmount := func(ps []party) func(i, j int) bool {
		return func(i, j int) bool {
			if ps[i].amount.Equal(ps[j].amount) {
				return ps[i].userID < ps[j].userID
			}
			return ps[i].amount.GreaterThan(ps[j].amount)
		}
	}
	sort.Slice(creditors, byAmount(creditors))
	sort.Slice(debtors, byAmount(debtors))

	// Greedy algorithm: match largest debts with largest credits
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		amount := decimal.Min(debtors[i].amount, creditors[j].amount)
		if amount.IsPositive() {
			report.Settlements = append(report.Settlements, models.Settlement{
				FromUserID: debtors[i].userID,
				ToUserID:   creditors[j].userID,
				Amount:     amount,
			})
		}

		debtors[i].amount = debtors[i].amount.Sub(amount)
		creditors[j].amount = creditors[j].amount.Sub(amount)

		if !debtors[i].amount.IsPositive() {
			i++
		}
		if !creditors[j].amount.IsPositive() {
			j++
		}
	}
}
