package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/homebills/internal/models"
	"github.com/mmynk/homebills/internal/storage"
)

// CreateBill persists a new bill and its split configuration.
func (s *SQLiteStore) CreateBill(ctx context.Context, bill *models.Bill) error {
	if bill.ID == "" {
		bill.ID = uuid.New().String()
	}
	if bill.CreatedAt == 0 {
		bill.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO bills (id, name, amount, due_date, split_mode, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		bill.ID, bill.Name, int64(bill.Amount), formatDate(bill.DueDate), bill.Mode.String(), bill.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert bill: %w", err)
	}

	if err := insertSplits(ctx, tx, "bill_splits", "bill_id", bill.ID, bill.Splits); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetBill retrieves a bill by ID, including its split configuration.
func (s *SQLiteStore) GetBill(ctx context.Context, billID string) (*models.Bill, error) {
	bill := &models.Bill{}
	var dueDate, mode string

	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, amount, due_date, split_mode, created_at FROM bills WHERE id = ?",
		billID,
	).Scan(&bill.ID, &bill.Name, &bill.Amount, &dueDate, &mode, &bill.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("bill %s: %w", billID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}

	if bill.DueDate, err = parseDate(dueDate); err != nil {
		return nil, err
	}
	if bill.Mode, err = models.ParseSplitMode(mode); err != nil {
		return nil, fmt.Errorf("bill %s: %w", billID, err)
	}
	if bill.Splits, err = s.loadSplits(ctx, "bill_splits", "bill_id", billID); err != nil {
		return nil, err
	}

	return bill, nil
}

// ListBills returns all bills ordered by due date.
func (s *SQLiteStore) ListBills(ctx context.Context) ([]*models.Bill, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, amount, due_date, split_mode, created_at FROM bills ORDER BY due_date",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	defer rows.Close()

	var bills []*models.Bill
	for rows.Next() {
		bill := &models.Bill{}
		var dueDate, mode string
		if err := rows.Scan(&bill.ID, &bill.Name, &bill.Amount, &dueDate, &mode, &bill.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		if bill.DueDate, err = parseDate(dueDate); err != nil {
			return nil, err
		}
		if bill.Mode, err = models.ParseSplitMode(mode); err != nil {
			return nil, fmt.Errorf("bill %s: %w", bill.ID, err)
		}
		bills = append(bills, bill)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bills: %w", err)
	}

	for _, bill := range bills {
		if bill.Splits, err = s.loadSplits(ctx, "bill_splits", "bill_id", bill.ID); err != nil {
			return nil, err
		}
	}

	return bills, nil
}

// UpdateBill replaces an existing bill and its split configuration.
func (s *SQLiteStore) UpdateBill(ctx context.Context, bill *models.Bill) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"UPDATE bills SET name = ?, amount = ?, due_date = ?, split_mode = ? WHERE id = ?",
		bill.Name, int64(bill.Amount), formatDate(bill.DueDate), bill.Mode.String(), bill.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update bill: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("bill %s: %w", bill.ID, storage.ErrNotFound)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM bill_splits WHERE bill_id = ?", bill.ID); err != nil {
		return fmt.Errorf("failed to clear bill splits: %w", err)
	}
	if err := insertSplits(ctx, tx, "bill_splits", "bill_id", bill.ID, bill.Splits); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteBill removes a bill; payments and splits cascade.
func (s *SQLiteStore) DeleteBill(ctx context.Context, billID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM bills WHERE id = ?", billID)
	if err != nil {
		return fmt.Errorf("failed to delete bill: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("bill %s: %w", billID, storage.ErrNotFound)
	}
	return nil
}

// insertSplits writes a split configuration into one of the split tables.
func insertSplits(ctx context.Context, tx *sql.Tx, table, ownerColumn, ownerID string, splits []models.SplitEntry) error {
	for _, split := range splits {
		_, err := tx.ExecContext(ctx,
			fmt.Sprintf("INSERT INTO %s (%s, person_id, value) VALUES (?, ?, ?)", table, ownerColumn),
			ownerID, split.PersonID, split.Value,
		)
		if err != nil {
			return fmt.Errorf("failed to insert split: %w", err)
		}
	}
	return nil
}

// loadSplits reads a split configuration from one of the split tables.
func (s *SQLiteStore) loadSplits(ctx context.Context, table, ownerColumn, ownerID string) ([]models.SplitEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		fmt.Sprintf("SELECT person_id, value FROM %s WHERE %s = ? ORDER BY person_id", table, ownerColumn),
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get splits: %w", err)
	}
	defer rows.Close()

	var splits []models.SplitEntry
	for rows.Next() {
		var split models.SplitEntry
		if err := rows.Scan(&split.PersonID, &split.Value); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		splits = append(splits, split)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate splits: %w", err)
	}

	return splits, nil
}
