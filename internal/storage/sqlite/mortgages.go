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

const mortgageColumns = `id, name, original_principal, current_principal, interest_rate_apy,
	term_months, start_date, payment_day, scheduled_payment,
	escrow_taxes, escrow_insurance, escrow_mortgage_insurance, escrow_hoa,
	split_mode, created_at`

// CreateMortgage persists a new mortgage and its split configuration.
func (s *SQLiteStore) CreateMortgage(ctx context.Context, mortgage *models.Mortgage) error {
	if mortgage.ID == "" {
		mortgage.ID = uuid.New().String()
	}
	if mortgage.CreatedAt == 0 {
		mortgage.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO mortgages (`+mortgageColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		mortgage.ID, mortgage.Name,
		int64(mortgage.OriginalPrincipal), int64(mortgage.CurrentPrincipal), mortgage.InterestRateAPY,
		mortgage.TermMonths, formatDate(mortgage.StartDate), mortgage.PaymentDay, int64(mortgage.ScheduledPayment),
		int64(mortgage.EscrowTaxes), int64(mortgage.EscrowInsurance),
		int64(mortgage.EscrowMortgageInsurance), int64(mortgage.EscrowHOA),
		mortgage.Mode.String(), mortgage.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert mortgage: %w", err)
	}

	if err := insertSplits(ctx, tx, "mortgage_splits", "mortgage_id", mortgage.ID, mortgage.Splits); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// scanMortgage reads one mortgage row from either a Row or Rows scanner.
func scanMortgage(scan func(dest ...any) error) (*models.Mortgage, error) {
	mortgage := &models.Mortgage{}
	var startDate, mode string

	err := scan(
		&mortgage.ID, &mortgage.Name,
		&mortgage.OriginalPrincipal, &mortgage.CurrentPrincipal, &mortgage.InterestRateAPY,
		&mortgage.TermMonths, &startDate, &mortgage.PaymentDay, &mortgage.ScheduledPayment,
		&mortgage.EscrowTaxes, &mortgage.EscrowInsurance,
		&mortgage.EscrowMortgageInsurance, &mortgage.EscrowHOA,
		&mode, &mortgage.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if mortgage.StartDate, err = parseDate(startDate); err != nil {
		return nil, err
	}
	if mortgage.Mode, err = models.ParseSplitMode(mode); err != nil {
		return nil, fmt.Errorf("mortgage %s: %w", mortgage.ID, err)
	}
	return mortgage, nil
}

// GetMortgage retrieves a mortgage by ID, including its split configuration.
func (s *SQLiteStore) GetMortgage(ctx context.Context, mortgageID string) (*models.Mortgage, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+mortgageColumns+" FROM mortgages WHERE id = ?", mortgageID,
	)

	mortgage, err := scanMortgage(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("mortgage %s: %w", mortgageID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get mortgage: %w", err)
	}

	if mortgage.Splits, err = s.loadSplits(ctx, "mortgage_splits", "mortgage_id", mortgageID); err != nil {
		return nil, err
	}
	return mortgage, nil
}

// ListMortgages returns all mortgages ordered by name.
func (s *SQLiteStore) ListMortgages(ctx context.Context) ([]*models.Mortgage, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+mortgageColumns+" FROM mortgages ORDER BY name",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list mortgages: %w", err)
	}
	defer rows.Close()

	var mortgages []*models.Mortgage
	for rows.Next() {
		mortgage, err := scanMortgage(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan mortgage: %w", err)
		}
		mortgages = append(mortgages, mortgage)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate mortgages: %w", err)
	}

	for _, mortgage := range mortgages {
		if mortgage.Splits, err = s.loadSplits(ctx, "mortgage_splits", "mortgage_id", mortgage.ID); err != nil {
			return nil, err
		}
	}

	return mortgages, nil
}

// UpdateMortgage replaces an existing mortgage and its split configuration.
func (s *SQLiteStore) UpdateMortgage(ctx context.Context, mortgage *models.Mortgage) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE mortgages SET name = ?, original_principal = ?, current_principal = ?,
			interest_rate_apy = ?, term_months = ?, start_date = ?, payment_day = ?,
			scheduled_payment = ?, escrow_taxes = ?, escrow_insurance = ?,
			escrow_mortgage_insurance = ?, escrow_hoa = ?, split_mode = ?
		 WHERE id = ?`,
		mortgage.Name,
		int64(mortgage.OriginalPrincipal), int64(mortgage.CurrentPrincipal),
		mortgage.InterestRateAPY, mortgage.TermMonths, formatDate(mortgage.StartDate), mortgage.PaymentDay,
		int64(mortgage.ScheduledPayment), int64(mortgage.EscrowTaxes), int64(mortgage.EscrowInsurance),
		int64(mortgage.EscrowMortgageInsurance), int64(mortgage.EscrowHOA), mortgage.Mode.String(),
		mortgage.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update mortgage: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("mortgage %s: %w", mortgage.ID, storage.ErrNotFound)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM mortgage_splits WHERE mortgage_id = ?", mortgage.ID); err != nil {
		return fmt.Errorf("failed to clear mortgage splits: %w", err)
	}
	if err := insertSplits(ctx, tx, "mortgage_splits", "mortgage_id", mortgage.ID, mortgage.Splits); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteMortgage removes a mortgage; payments and splits cascade.
func (s *SQLiteStore) DeleteMortgage(ctx context.Context, mortgageID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM mortgages WHERE id = ?", mortgageID)
	if err != nil {
		return fmt.Errorf("failed to delete mortgage: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("mortgage %s: %w", mortgageID, storage.ErrNotFound)
	}
	return nil
}
