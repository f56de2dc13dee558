// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/homebills/internal/models"
)

// ErrNotFound is wrapped by implementations when a requested row does not
// exist, so callers can map it with errors.Is.
var ErrNotFound = errors.New("not found")

// Store defines the interface for homebills storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// etc.) without changing the server layer.
type Store interface {
	// CreatePerson persists a new household member. The ID field is
	// populated by the store when empty.
	CreatePerson(ctx context.Context, person *models.Person) error

	// ListPeople returns all household members ordered by name.
	ListPeople(ctx context.Context) ([]*models.Person, error)

	// DeletePerson removes a person. Split entries and allocations
	// referencing the person cascade away with it.
	DeletePerson(ctx context.Context, personID string) error

	// CreateBill persists a new bill and its split configuration.
	CreateBill(ctx context.Context, bill *models.Bill) error

	// GetBill retrieves a bill by ID including its splits.
	GetBill(ctx context.Context, billID string) (*models.Bill, error)

	// ListBills returns all bills ordered by due date.
	ListBills(ctx context.Context) ([]*models.Bill, error)

	// UpdateBill replaces an existing bill and its split configuration.
	UpdateBill(ctx context.Context, bill *models.Bill) error

	// DeleteBill removes a bill and, via cascade, its payments.
	DeleteBill(ctx context.Context, billID string) error

	// CreateMortgage persists a new mortgage and its split configuration.
	CreateMortgage(ctx context.Context, mortgage *models.Mortgage) error

	// GetMortgage retrieves a mortgage by ID including its splits.
	GetMortgage(ctx context.Context, mortgageID string) (*models.Mortgage, error)

	// ListMortgages returns all mortgages ordered by name.
	ListMortgages(ctx context.Context) ([]*models.Mortgage, error)

	// UpdateMortgage replaces an existing mortgage and its splits.
	UpdateMortgage(ctx context.Context, mortgage *models.Mortgage) error

	// DeleteMortgage removes a mortgage and, via cascade, its payments.
	DeleteMortgage(ctx context.Context, mortgageID string) error

	// CreatePayment persists a payment and its explicit allocations, if any.
	CreatePayment(ctx context.Context, payment *models.Payment) error

	// ListPaymentsForBill returns all payments recorded against a bill,
	// oldest first, with allocations attached.
	ListPaymentsForBill(ctx context.Context, billID string) ([]models.Payment, error)

	// ListPaymentsForMortgage returns all payments recorded against a
	// mortgage, oldest first, with allocations attached.
	ListPaymentsForMortgage(ctx context.Context, mortgageID string) ([]models.Payment, error)

	// DeletePayment removes a payment and its allocations.
	DeletePayment(ctx context.Context, paymentID string) error

	// CreateUser inserts a new manager account.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by email. Returns (nil, nil) when no
	// user exists.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by ID. Returns (nil, nil) when no user
	// exists.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// Close releases any resources held by the store.
	Close() error
}
