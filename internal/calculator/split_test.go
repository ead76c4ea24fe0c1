package calculator

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitter/internal/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func weights(pairs ...string) []Weight {
	ws := make([]Weight, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		ws = append(ws, Weight{UserID: pairs[i], Share: dec(pairs[i+1])})
	}
	return ws
}

func TestAllocateItem(t *testing.T) {
	tests := []struct {
		name      string
		item      Item
		wantCosts []string
	}{
		{
			name:      "equal thirds round half-up per share",
			item:      Item{ItemID: "i1", Name: "Pizza", Price: dec("10.00"), Weights: weights("a", "1", "b", "1", "c", "1")},
			wantCosts: []string{"3.333", "3.333", "3.333"},
		},
		{
			name:      "uneven weights",
			item:      Item{ItemID: "i2", Name: "Wine", Price: dec("10"), Weights: weights("a", "2", "b", "1")},
			wantCosts: []string{"6.667", "3.333"},
		},
		{
			name:      "zero total shares",
			item:      Item{ItemID: "i3", Name: "Water", Price: dec("4.50"), Weights: weights("a", "0", "b", "0")},
			wantCosts: []string{"0", "0"},
		},
		{
			name:      "single participant takes the full price",
			item:      Item{ItemID: "i4", Name: "Steak", Price: dec("23.99"), Weights: weights("a", "0.5")},
			wantCosts: []string{"23.99"},
		},
		{
			name:      "fractional weights",
			item:      Item{ItemID: "i5", Name: "Cake", Price: dec("12.00"), Weights: weights("a", "0.25", "b", "0.75")},
			wantCosts: []string{"3", "9"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			split := AllocateItem("r1", tt.item)

			if split.ItemID != tt.item.ItemID || split.ReceiptID != "r1" {
				t.Errorf("split identity = (%s, %s), want (%s, r1)", split.ItemID, split.ReceiptID, tt.item.ItemID)
			}
			if len(split.Shares) != len(tt.wantCosts) {
				t.Fatalf("got %d shares, want %d", len(split.Shares), len(tt.wantCosts))
			}
			for i, want := range tt.wantCosts {
				share := split.Shares[i]
				if !share.Cost.Equal(dec(want)) {
					t.Errorf("share %d (%s) cost = %s, want %s", i, share.UserID, share.Cost, want)
				}
				if share.ItemID != tt.item.ItemID || share.ReceiptID != "r1" {
					t.Errorf("share %d not tagged with item/receipt", i)
				}
			}
		})
	}
}

func TestAllocateItem_SumWithinRoundingBound(t *testing.T) {
	prices := []string{"10.00", "0.01", "99.99", "7", "1234.567"}
	weightSets := [][]Weight{
		weights("a", "1", "b", "1", "c", "1"),
		weights("a", "1", "b", "2", "c", "3", "d", "7"),
		weights("a", "0.3", "b", "0.3", "c", "0.4"),
		weights("a", "5", "b", "11"),
	}

	for _, p := range prices {
		for _, ws := range weightSets {
			split := AllocateItem("r", Item{ItemID: "i", Price: dec(p), Weights: ws})
			sum := decimal.Zero
			for _, s := range split.Shares {
				sum = sum.Add(s.Cost)
			}
			bound := dec("0.001").Mul(decimal.NewFromInt(int64(len(ws))))
			if sum.Sub(dec(p)).Abs().GreaterThan(bound) {
				t.Errorf("price %s weights %v: sum %s outside ±%s", p, ws, sum, bound)
			}
		}
	}
}

func TestBuildReport(t *testing.T) {
	t.Run("tax apportioned by participant subtotal", func(t *testing.T) {
		shares := []models.Share{
			{UserID: "a", Cost: dec("25")},
			{UserID: "b", Cost: dec("75")},
		}
		report, err := BuildReport("r1", shares, dec("100"), dec("8"))
		if err != nil {
			t.Fatalf("BuildReport failed: %v", err)
		}

		a := report.Participants[0]
		if a.UserID != "a" {
			t.Fatalf("participants not sorted: first is %s", a.UserID)
		}
		if !a.Tax.Equal(dec("2.000")) {
			t.Errorf("a tax = %s, want 2.000", a.Tax)
		}
		if !a.TotalCost.Equal(dec("27.000")) {
			t.Errorf("a total = %s, want 27.000", a.TotalCost)
		}
		if !report.GrandTotal.Equal(dec("108")) {
			t.Errorf("grand total = %s, want 108", report.GrandTotal)
		}
	})

	t.Run("zero subtotal means zero tax", func(t *testing.T) {
		shares := []models.Share{{UserID: "a", Cost: dec("5")}, {UserID: "b", Cost: dec("5")}}
		report, err := BuildReport("r1", shares, decimal.Zero, dec("3"))
		if err != nil {
			t.Fatalf("BuildReport failed: %v", err)
		}
		for _, p := range report.Participants {
			if !p.Tax.IsZero() {
				t.Errorf("%s tax = %s, want 0", p.UserID, p.Tax)
			}
			if !p.TotalCost.Equal(dec("5")) {
				t.Errorf("%s total = %s, want 5", p.UserID, p.TotalCost)
			}
		}
		if !report.GrandTotal.Equal(dec("3")) {
			t.Errorf("grand total = %s, want 3", report.GrandTotal)
		}
	})

	t.Run("costs summed across items", func(t *testing.T) {
		shares := []models.Share{
			{UserID: "b", Cost: dec("6")},
			{UserID: "a", Cost: dec("6")},
			{UserID: "a", Cost: dec("4")},
			{UserID: "b", Cost: dec("4")},
		}
		report, err := BuildReport("r1", shares, dec("20.00"), dec("1.60"))
		if err != nil {
			t.Fatalf("BuildReport failed: %v", err)
		}
		for _, p := range report.Participants {
			if !p.Subtotal.Equal(dec("10")) {
				t.Errorf("%s subtotal = %s, want 10", p.UserID, p.Subtotal)
			}
			if !p.TotalCost.Equal(dec("10.800")) {
				t.Errorf("%s total = %s, want 10.800", p.UserID, p.TotalCost)
			}
		}
		if !report.GrandTotal.Equal(dec("21.600")) {
			t.Errorf("grand total = %s, want 21.600", report.GrandTotal)
		}
	})

	t.Run("grand total is not reconciled with participant totals", func(t *testing.T) {
		shares := []models.Share{
			{UserID: "a", Cost: dec("3.333")},
			{UserID: "b", Cost: dec("3.333")},
			{UserID: "c", Cost: dec("3.333")},
		}
		report, err := BuildReport("r1", shares, dec("10"), dec("1"))
		if err != nil {
			t.Fatalf("BuildReport failed: %v", err)
		}
		sum := decimal.Zero
		for _, p := range report.Participants {
			sum = sum.Add(p.TotalCost)
		}
		if !report.GrandTotal.Equal(dec("11")) {
			t.Errorf("grand total = %s, want 11", report.GrandTotal)
		}
		if sum.Equal(report.GrandTotal) {
			t.Errorf("expected rounding residue, participant sum %s equals grand total", sum)
		}
	})

	t.Run("no shares is an error", func(t *testing.T) {
		if _, err := BuildReport("r1", nil, dec("1"), dec("1")); err == nil {
			t.Error("expected error for empty shares")
		}
	})
}

func TestReportString(t *testing.T) {
	shares := []models.Share{{UserID: "a", Cost: dec("10")}, {UserID: "b", Cost: dec("10")}}
	report, err := BuildReport("r1", shares, dec("20"), dec("1.6"))
	if err != nil {
		t.Fatalf("BuildReport failed: %v", err)
	}

	want := "Total cost per user:\n" +
		"UserId: a, Total Cost: 10.800\n" +
		"UserId: b, Total Cost: 10.800\n" +
		"Subtotal: 20.000\n" +
		"Tax: 1.600\n" +
		"Grand Total: 21.600"
	if got := report.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
}
