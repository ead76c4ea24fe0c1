package sqlite

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mmynk/splitter/internal/models"
)

// SaveSplits persists splits and their shares in a single transaction.
// Re-saving an item's split drops the old split row and all of its shares
// before inserting the new ones.
func (s *SQLiteStore) SaveSplits(ctx context.Context, splits []models.Split) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for i := range splits {
		split := &splits[i]

		// Shares cascade with the split row.
		if _, err := tx.ExecContext(ctx, "DELETE FROM splits WHERE item_id = ?", split.ItemID); err != nil {
			return fmt.Errorf("failed to clear split: %w", err)
		}

		_, err = tx.ExecContext(ctx,
			"INSERT INTO splits (item_id, receipt_id, item_name, price) VALUES (?, ?, ?, ?)",
			split.ItemID, split.ReceiptID, split.ItemName, split.Price,
		)
		if err != nil {
			return fmt.Errorf("failed to insert split: %w", err)
		}

		for j := range split.Shares {
			share := &split.Shares[j]
			if share.ID == "" {
				share.ID = uuid.New().String()
			}
			share.ItemID = split.ItemID
			share.ReceiptID = split.ReceiptID

			_, err = tx.ExecContext(ctx,
				`INSERT INTO shares (id, item_id, receipt_id, user_id, position, share, cost)
				 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				share.ID, share.ItemID, share.ReceiptID, share.UserID, j, share.Share, share.Cost,
			)
			if err != nil {
				return fmt.Errorf("failed to insert share: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ListShares retrieves every share of a receipt, ordered by item then by the
// position the share was submitted in.
func (s *SQLiteStore) ListShares(ctx context.Context, receiptID string) ([]models.Share, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, share, cost, item_id, receipt_id
		 FROM shares WHERE receipt_id = ? ORDER BY item_id, position`,
		receiptID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list shares: %w", err)
	}
	defer rows.Close()

	shares := []models.Share{}
	for rows.Next() {
		var sh models.Share
		if err := rows.Scan(&sh.ID, &sh.UserID, &sh.Share, &sh.Cost, &sh.ItemID, &sh.ReceiptID); err != nil {
			return nil, fmt.Errorf("failed to scan share: %w", err)
		}
		shares = append(shares, sh)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shares: %w", err)
	}

	return shares, nil
}
