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

// CreatePayment persists a payment and its explicit allocations, if any.
func (s *SQLiteStore) CreatePayment(ctx context.Context, payment *models.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	if payment.CreatedAt == 0 {
		payment.CreatedAt = time.Now().Unix()
	}

	var billID, mortgageID, method, note interface{}
	if payment.BillID != "" {
		billID = payment.BillID
	}
	if payment.MortgageID != "" {
		mortgageID = payment.MortgageID
	}
	if payment.Method != "" {
		method = payment.Method
	}
	if payment.Note != "" {
		note = payment.Note
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO payments (id, bill_id, mortgage_id, amount, paid_date, method, note, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		payment.ID, billID, mortgageID, int64(payment.Amount),
		formatDate(payment.PaidDate), method, note, payment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}

	for _, alloc := range payment.Allocations {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO payment_allocations (payment_id, person_id, amount) VALUES (?, ?, ?)",
			payment.ID, alloc.PersonID, int64(alloc.Amount),
		)
		if err != nil {
			return fmt.Errorf("failed to insert payment allocation: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListPaymentsForBill returns all payments for a bill, oldest first.
func (s *SQLiteStore) ListPaymentsForBill(ctx context.Context, billID string) ([]models.Payment, error) {
	return s.listPayments(ctx, "bill_id", billID)
}

// ListPaymentsForMortgage returns all payments for a mortgage, oldest first.
func (s *SQLiteStore) ListPaymentsForMortgage(ctx context.Context, mortgageID string) ([]models.Payment, error) {
	return s.listPayments(ctx, "mortgage_id", mortgageID)
}

func (s *SQLiteStore) listPayments(ctx context.Context, ownerColumn, ownerID string) ([]models.Payment, error) {
	rows, err := s.db.QueryContext(ctx,
		fmt.Sprintf(`SELECT id, bill_id, mortgage_id, amount, paid_date, method, note, created_at
		 FROM payments WHERE %s = ? ORDER BY paid_date, created_at`, ownerColumn),
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		var payment models.Payment
		var billID, mortgageID, method, note sql.NullString
		var paidDate string

		if err := rows.Scan(&payment.ID, &billID, &mortgageID, &payment.Amount,
			&paidDate, &method, &note, &payment.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}

		payment.BillID = billID.String
		payment.MortgageID = mortgageID.String
		payment.Method = method.String
		payment.Note = note.String
		if payment.PaidDate, err = parseDate(paidDate); err != nil {
			return nil, err
		}

		payments = append(payments, payment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}

	for i := range payments {
		if payments[i].Allocations, err = s.loadAllocations(ctx, payments[i].ID); err != nil {
			return nil, err
		}
	}

	return payments, nil
}

func (s *SQLiteStore) loadAllocations(ctx context.Context, paymentID string) ([]models.PaymentAllocation, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT person_id, amount FROM payment_allocations WHERE payment_id = ? ORDER BY person_id",
		paymentID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment allocations: %w", err)
	}
	defer rows.Close()

	var allocations []models.PaymentAllocation
	for rows.Next() {
		var alloc models.PaymentAllocation
		if err := rows.Scan(&alloc.PersonID, &alloc.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan payment allocation: %w", err)
		}
		allocations = append(allocations, alloc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payment allocations: %w", err)
	}

	return allocations, nil
}

// DeletePayment removes a payment and its allocations.
func (s *SQLiteStore) DeletePayment(ctx context.Context, paymentID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM payments WHERE id = ?", paymentID)
	if err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("payment %s: %w", paymentID, storage.ErrNotFound)
	}
	return nil
}
