package calculator

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitter/internal/models"
)

func TestApplyPayments(t *testing.T) {
	newReport := func() *models.Report {
		return &models.Report{
			ReceiptID: "r1",
			Participants: []models.ParticipantTotal{
				{UserID: "a", TotalCost: dec("10.800")},
				{UserID: "b", TotalCost: dec("10.800")},
				{UserID: "c", TotalCost: dec("5.400")},
			},
		}
	}

	t.Run("one payer covers everyone", func(t *testing.T) {
		report := newReport()
		ApplyPayments(report, map[string]decimal.Decimal{"a": dec("27")})

		a := report.Participants[0]
		if a.Balance == nil || !a.Balance.Equal(dec("16.2")) {
			t.Fatalf("a balance = %v, want 16.2", a.Balance)
		}
		b := report.Participants[1]
		if b.Paid == nil || !b.Paid.IsZero() {
			t.Errorf("b paid = %v, want 0", b.Paid)
		}

		if len(report.Settlements) != 2 {
			t.Fatalf("got %d settlements, want 2: %+v", len(report.Settlements), report.Settlements)
		}
		first := report.Settlements[0]
		if first.FromUserID != "b" || first.ToUserID != "a" || !first.Amount.Equal(dec("10.8")) {
			t.Errorf("first settlement = %+v, want b->a 10.8", first)
		}
		second := report.Settlements[1]
		if second.FromUserID != "c" || second.ToUserID != "a" || !second.Amount.Equal(dec("5.4")) {
			t.Errorf("second settlement = %+v, want c->a 5.4", second)
		}
	})

	t.Run("no recorded payments leaves report untouched", func(t *testing.T) {
		report := newReport()
		ApplyPayments(report, map[string]decimal.Decimal{"stranger": dec("5")})

		for _, p := range report.Participants {
			if p.Paid != nil || p.Balance != nil {
				t.Errorf("%s unexpectedly got payment info", p.UserID)
			}
		}
		if len(report.Settlements) != 0 {
			t.Errorf("expected no settlements, got %d", len(report.Settlements))
		}
	})

	t.Run("everyone paid their share", func(t *testing.T) {
		report := newReport()
		ApplyPayments(report, map[string]decimal.Decimal{
			"a": dec("10.8"), "b": dec("10.8"), "c": dec("5.4"),
		})
		if len(report.Settlements) != 0 {
			t.Errorf("expected no settlements, got %+v", report.Settlements)
		}
	})
}
