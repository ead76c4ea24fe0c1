package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitter/internal/models"
)

// UpsertParticipant replaces the participant record for (ReceiptID, UserID).
// Repeating the call leaves exactly one record holding the latest values.
func (s *SQLiteStore) UpsertParticipant(ctx context.Context, p *models.Participant) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"DELETE FROM participants WHERE receipt_id = ? AND user_id = ?",
		p.ReceiptID, p.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete participant: %w", err)
	}

	var amount decimal.NullDecimal
	if p.Amount != nil {
		amount = decimal.NewNullDecimal(*p.Amount)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO participants (receipt_id, user_id, name, amount) VALUES (?, ?, ?, ?)",
		p.ReceiptID, p.UserID, p.Name, amount,
	)
	if err != nil {
		return fmt.Errorf("failed to insert participant: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ParticipantExists reports whether the user is attached to any receipt.
func (s *SQLiteStore) ParticipantExists(ctx context.Context, userID string) (bool, error) {
	var exists int
	err := s.db.QueryRowContext(ctx,
		"SELECT 1 FROM participants WHERE user_id = ? LIMIT 1",
		userID,
	).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check participant existence: %w", err)
	}
	return true, nil
}

// ListParticipants retrieves the participants of a receipt ordered by user ID.
func (s *SQLiteStore) ListParticipants(ctx context.Context, receiptID string) ([]models.Participant, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT receipt_id, user_id, name, amount FROM participants WHERE receipt_id = ? ORDER BY user_id",
		receiptID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	defer rows.Close()

	participants := []models.Participant{}
	for rows.Next() {
		var p models.Participant
		var amount decimal.NullDecimal
		if err := rows.Scan(&p.ReceiptID, &p.UserID, &p.Name, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		if amount.Valid {
			v := amount.Decimal
			p.Amount = &v
		}
		participants = append(participants, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}

	return participants, nil
}

// DeleteParticipant removes the participant from the receipt. Deleting a
// record that does not exist is not an error.
func (s *SQLiteStore) DeleteParticipant(ctx context.Context, receiptID, userID string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM participants WHERE receipt_id = ? AND user_id = ?",
		receiptID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete participant: %w", err)
	}
	return nil
}
