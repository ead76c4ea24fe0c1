// Package allocation divides a receipt among its participants.
//
// The Engine validates share assignments against the participant registry,
// computes per-share item costs, persists them as splits and later
// aggregates the stored shares with the receipt's tax into a report.
package allocation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/mmynk/splitter/internal/calculator"
	"github.com/mmynk/splitter/internal/lock"
	"github.com/mmynk/splitter/internal/models"
	"github.com/mmynk/splitter/internal/storage"
)

// Store is the subset of storage the engine needs.
type Store interface {
	storage.SplitStore
	ParticipantExists(ctx context.Context, userID string) (bool, error)
	ListParticipants(ctx context.Context, receiptID string) ([]models.Participant, error)
	GetBill(ctx context.Context, billID string) (*models.Bill, error)
}

// ItemAssignment names an item and how it is shared.
type ItemAssignment struct {
	ItemID   string
	ItemName string
	Price    decimal.Decimal
	Shares   []ShareAssignment
}

// ShareAssignment is one participant's relative weight for an item.
type ShareAssignment struct {
	UserID string
	Share  decimal.Decimal
}

// Engine computes and persists receipt allocations.
type Engine struct {
	store   Store
	locker  lock.Locker
	metrics *Metrics
}

// Option configures an Engine.
type Option func(*Engine)

// WithLocker sets the per-receipt lock. The default is an in-process KeyedMutex.
func WithLocker(l lock.Locker) Option {
	return func(e *Engine) { e.locker = l }
}

// WithMetrics records allocation counters.
func WithMetrics(m *Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// NewEngine creates an Engine backed by store.
func NewEngine(store Store, opts ...Option) *Engine {
	e := &Engine{store: store}
	for _, opt := range opts {
		opt(e)
	}
	if e.locker == nil {
		e.locker = lock.NewKeyedMutex()
	}
	return e
}

// ShareBill computes the cost of every share in the assignments and stores
// one split per item. Every assignment is validated before anything is
// written and all splits are saved in a single transaction, so a rejected
// request leaves no rows behind.
//
// Participants are checked for existence globally: a user ID attached to any
// receipt is accepted, not only one attached to receiptID.
func (e *Engine) ShareBill(ctx context.Context, receiptID string, assignments []ItemAssignment) error {
	if receiptID == "" {
		return &models.ValidationError{Field: "receipt_id", Reason: "must not be empty"}
	}
	if len(assignments) == 0 {
		return &models.ValidationError{Field: "items", Reason: "at least one item assignment is required"}
	}

	return e.locker.WithLock(ctx, lock.ReceiptKey(receiptID), func(ctx context.Context) error {
		if err := e.validate(ctx, assignments); err != nil {
			e.metrics.rejected()
			return err
		}

		splits := make([]models.Split, len(assignments))
		for i, a := range assignments {
			weights := make([]calculator.Weight, len(a.Shares))
			for j, s := range a.Shares {
				weights[j] = calculator.Weight{UserID: s.UserID, Share: s.Share}
			}
			splits[i] = calculator.AllocateItem(receiptID, calculator.Item{
				ItemID:  a.ItemID,
				Name:    a.ItemName,
				Price:   a.Price,
				Weights: weights,
			})
			slog.Debug("Allocated item",
				"receipt_id", receiptID,
				"item_id", a.ItemID,
				"price", a.Price,
				"total_shares", splits[i].TotalShares(),
			)
		}

		if err := e.store.SaveSplits(ctx, splits); err != nil {
			return fmt.Errorf("failed to save splits: %w", err)
		}

		e.metrics.allocated(len(splits))
		slog.Info("Bill shared", "receipt_id", receiptID, "items", len(splits))
		return nil
	})
}

func (e *Engine) validate(ctx context.Context, assignments []ItemAssignment) error {
	known := make(map[string]bool)

	// A repeated item ID is not rejected: the later split replaces the
	// earlier one when saved.
	for _, a := range assignments {
		if a.ItemID == "" {
			return &models.ValidationError{Field: "item_id", Reason: "must not be empty"}
		}

		if a.Price.IsNegative() {
			return &models.ValidationError{Field: "price", ID: a.ItemID, Reason: "must not be negative"}
		}

		for _, s := range a.Shares {
			if s.Share.IsNegative() {
				return &models.ValidationError{Field: "share", ID: s.UserID, Reason: "must not be negative"}
			}
			if known[s.UserID] {
				continue
			}
			exists, err := e.store.ParticipantExists(ctx, s.UserID)
			if err != nil {
				return fmt.Errorf("failed to check participant %s: %w", s.UserID, err)
			}
			if !exists {
				return &models.ValidationError{Field: "user_id", ID: s.UserID, Reason: "does not exist in participants"}
			}
			known[s.UserID] = true
		}
	}
	return nil
}

// GetBillShare returns every stored share for the receipt. An empty slice
// means nothing has been shared yet; it is not an error.
func (e *Engine) GetBillShare(ctx context.Context, receiptID string) ([]models.Share, error) {
	shares, err := e.store.ListShares(ctx, receiptID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shares: %w", err)
	}
	return shares, nil
}

// GetShareReport aggregates the stored shares of a receipt into
// per-participant totals, apportioning the bill's tax by subtotal.
//
// A receipt with no shares yields models.ErrNotFound. A missing bill is not
// an error: subtotal and tax are then taken as zero.
func (e *Engine) GetShareReport(ctx context.Context, receiptID string) (*models.Report, error) {
	shares, err := e.store.ListShares(ctx, receiptID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shares: %w", err)
	}
	if len(shares) == 0 {
		return nil, models.NotFoundf("no splits found for receipt %s", receiptID)
	}

	subtotal, tax := decimal.Zero, decimal.Zero
	bill, err := e.store.GetBill(ctx, receiptID)
	switch {
	case err == nil:
		subtotal, tax = bill.Subtotal, bill.TaxTotal
	case errors.Is(err, models.ErrNotFound):
		slog.Warn("Bill missing for report, using zero subtotal and tax", "receipt_id", receiptID)
	default:
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}

	report, err := calculator.BuildReport(receiptID, shares, subtotal, tax)
	if err != nil {
		return nil, err
	}

	participants, err := e.store.ListParticipants(ctx, receiptID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	paid := make(map[string]decimal.Decimal)
	for _, p := range participants {
		if p.Amount != nil {
			paid[p.UserID] = *p.Amount
		}
	}
	calculator.ApplyPayments(report, paid)

	return report, nil
}

// Metrics counts allocation outcomes.
type Metrics struct {
	ItemsAllocated prometheus.Counter
	Rejected       prometheus.Counter
}

// NewMetrics registers allocation counters with reg.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ItemsAllocated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "items_allocated_total",
			Help:      "Number of receipt items split among participants.",
		}),
		Rejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "share_requests_rejected_total",
			Help:      "Number of share requests rejected by validation.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.ItemsAllocated, m.Rejected)
	}
	return m
}

func (m *Metrics) allocated(n int) {
	if m == nil {
		return
	}
	m.ItemsAllocated.Add(float64(n))
}

func (m *Metrics) rejected() {
	if m == nil {
		return
	}
	m.Rejected.Inc()
}
