package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mmynk/homebills/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "homebills-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func mustCreatePerson(t *testing.T, store *SQLiteStore, name string) *models.Person {
	t.Helper()
	person := &models.Person{Name: name, Color: "#4f9da6"}
	if err := store.CreatePerson(context.Background(), person); err != nil {
		t.Fatalf("CreatePerson failed: %v", err)
	}
	return person
}

func TestSQLiteStore_People(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreatePerson generates ID", func(t *testing.T) {
		person := mustCreatePerson(t, store, "Alice")
		if person.ID == "" {
			t.Error("Expected person ID to be generated")
		}
		if person.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}
	})

	t.Run("ListPeople orders by name", func(t *testing.T) {
		mustCreatePerson(t, store, "Carol")
		mustCreatePerson(t, store, "Bob")

		people, err := store.ListPeople(ctx)
		if err != nil {
			t.Fatalf("ListPeople failed: %v", err)
		}
		if len(people) != 3 {
			t.Fatalf("Expected 3 people, got %d", len(people))
		}
		if people[0].Name != "Alice" || people[2].Name != "Carol" {
			t.Errorf("Unexpected ordering: %v, %v, %v", people[0].Name, people[1].Name, people[2].Name)
		}
	})

	t.Run("DeletePerson removes the row", func(t *testing.T) {
		person := mustCreatePerson(t, store, "Dave")
		if err := store.DeletePerson(ctx, person.ID); err != nil {
			t.Fatalf("DeletePerson failed: %v", err)
		}
		if err := store.DeletePerson(ctx, person.ID); err == nil {
			t.Error("Expected error deleting nonexistent person, got nil")
		}
	})
}

func TestSQLiteStore_Bills(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := mustCreatePerson(t, store, "Alice")
	bob := mustCreatePerson(t, store, "Bob")

	t.Run("CreateBill and GetBill round-trip", func(t *testing.T) {
		bill := &models.Bill{
			Name:    "Electric - March",
			Amount:  10000,
			DueDate: time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC),
			Mode:    models.SplitPercent,
			Splits: []models.SplitEntry{
				{PersonID: alice.ID, Value: 60},
				{PersonID: bob.ID, Value: 40},
			},
		}

		if err := store.CreateBill(ctx, bill); err != nil {
			t.Fatalf("CreateBill failed: %v", err)
		}
		if bill.ID == "" {
			t.Fatal("Expected bill ID to be generated")
		}

		retrieved, err := store.GetBill(ctx, bill.ID)
		if err != nil {
			t.Fatalf("GetBill failed: %v", err)
		}
		if retrieved.Amount != bill.Amount {
			t.Errorf("Amount mismatch: got %d, want %d", retrieved.Amount, bill.Amount)
		}
		if !retrieved.DueDate.Equal(bill.DueDate) {
			t.Errorf("DueDate mismatch: got %v, want %v", retrieved.DueDate, bill.DueDate)
		}
		if retrieved.Mode != models.SplitPercent {
			t.Errorf("Mode mismatch: got %v, want percent", retrieved.Mode)
		}
		if len(retrieved.Splits) != 2 {
			t.Errorf("Expected 2 splits, got %d", len(retrieved.Splits))
		}
	})

	t.Run("UpdateBill replaces splits", func(t *testing.T) {
		bill := &models.Bill{
			Name:    "Water",
			Amount:  5000,
			DueDate: time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC),
			Mode:    models.SplitShares,
			Splits:  []models.SplitEntry{{PersonID: alice.ID, Value: 1}},
		}
		if err := store.CreateBill(ctx, bill); err != nil {
			t.Fatalf("CreateBill failed: %v", err)
		}

		bill.Amount = 6000
		bill.Splits = []models.SplitEntry{
			{PersonID: alice.ID, Value: 1},
			{PersonID: bob.ID, Value: 1},
		}
		if err := store.UpdateBill(ctx, bill); err != nil {
			t.Fatalf("UpdateBill failed: %v", err)
		}

		retrieved, err := store.GetBill(ctx, bill.ID)
		if err != nil {
			t.Fatalf("GetBill failed: %v", err)
		}
		if retrieved.Amount != 6000 {
			t.Errorf("Amount = %d, want 6000", retrieved.Amount)
		}
		if len(retrieved.Splits) != 2 {
			t.Errorf("Expected 2 splits after update, got %d", len(retrieved.Splits))
		}
	})

	t.Run("GetBill returns error for nonexistent bill", func(t *testing.T) {
		if _, err := store.GetBill(ctx, "nonexistent-id"); err == nil {
			t.Error("Expected error for nonexistent bill, got nil")
		}
	})

	t.Run("DeleteBill cascades to payments", func(t *testing.T) {
		bill := &models.Bill{
			Name:    "Internet",
			Amount:  7000,
			DueDate: time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC),
			Mode:    models.SplitShares,
			Splits:  []models.SplitEntry{{PersonID: alice.ID, Value: 1}},
		}
		if err := store.CreateBill(ctx, bill); err != nil {
			t.Fatalf("CreateBill failed: %v", err)
		}
		payment := &models.Payment{
			BillID:   bill.ID,
			Amount:   7000,
			PaidDate: time.Date(2025, time.April, 28, 0, 0, 0, 0, time.UTC),
		}
		if err := store.CreatePayment(ctx, payment); err != nil {
			t.Fatalf("CreatePayment failed: %v", err)
		}

		if err := store.DeleteBill(ctx, bill.ID); err != nil {
			t.Fatalf("DeleteBill failed: %v", err)
		}
		payments, err := store.ListPaymentsForBill(ctx, bill.ID)
		if err != nil {
			t.Fatalf("ListPaymentsForBill failed: %v", err)
		}
		if len(payments) != 0 {
			t.Errorf("Expected payments to cascade away, got %d", len(payments))
		}
	})
}

func TestSQLiteStore_MortgagesAndPayments(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := mustCreatePerson(t, store, "Alice")
	bob := mustCreatePerson(t, store, "Bob")

	mortgage := &models.Mortgage{
		Name:              "123 Maple St",
		OriginalPrincipal: 40000000,
		CurrentPrincipal:  30000000,
		InterestRateAPY:   6.25,
		TermMonths:        360,
		StartDate:         time.Date(2020, time.July, 1, 0, 0, 0, 0, time.UTC),
		PaymentDay:        15,
		ScheduledPayment:  250000,
		EscrowTaxes:       40000,
		EscrowInsurance:   10000,
		Mode:              models.SplitShares,
		Splits: []models.SplitEntry{
			{PersonID: alice.ID, Value: 1},
			{PersonID: bob.ID, Value: 1},
		},
	}

	t.Run("CreateMortgage and GetMortgage round-trip", func(t *testing.T) {
		if err := store.CreateMortgage(ctx, mortgage); err != nil {
			t.Fatalf("CreateMortgage failed: %v", err)
		}

		retrieved, err := store.GetMortgage(ctx, mortgage.ID)
		if err != nil {
			t.Fatalf("GetMortgage failed: %v", err)
		}
		if retrieved.ScheduledPayment != 250000 {
			t.Errorf("ScheduledPayment = %d, want 250000", retrieved.ScheduledPayment)
		}
		if retrieved.EscrowMonthly() != 50000 {
			t.Errorf("EscrowMonthly = %d, want 50000", retrieved.EscrowMonthly())
		}
		if retrieved.InterestRateAPY != 6.25 {
			t.Errorf("InterestRateAPY = %v, want 6.25", retrieved.InterestRateAPY)
		}
		if len(retrieved.Splits) != 2 {
			t.Errorf("Expected 2 splits, got %d", len(retrieved.Splits))
		}
	})

	t.Run("payments round-trip with allocations", func(t *testing.T) {
		payment := &models.Payment{
			MortgageID: mortgage.ID,
			Amount:     250000,
			PaidDate:   time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC),
			Method:     "autopay",
			Allocations: []models.PaymentAllocation{
				{PersonID: alice.ID, Amount: 150000},
				{PersonID: bob.ID, Amount: 100000},
			},
		}
		if err := store.CreatePayment(ctx, payment); err != nil {
			t.Fatalf("CreatePayment failed: %v", err)
		}

		payments, err := store.ListPaymentsForMortgage(ctx, mortgage.ID)
		if err != nil {
			t.Fatalf("ListPaymentsForMortgage failed: %v", err)
		}
		if len(payments) != 1 {
			t.Fatalf("Expected 1 payment, got %d", len(payments))
		}
		if payments[0].Method != "autopay" {
			t.Errorf("Method = %q, want autopay", payments[0].Method)
		}
		if len(payments[0].Allocations) != 2 {
			t.Fatalf("Expected 2 allocations, got %d", len(payments[0].Allocations))
		}
		var total models.Cents
		for _, alloc := range payments[0].Allocations {
			total += alloc.Amount
		}
		if total != payments[0].Amount {
			t.Errorf("Allocations sum to %d, want %d", total, payments[0].Amount)
		}
	})

	t.Run("DeletePayment removes allocations", func(t *testing.T) {
		payments, err := store.ListPaymentsForMortgage(ctx, mortgage.ID)
		if err != nil {
			t.Fatalf("ListPaymentsForMortgage failed: %v", err)
		}
		if err := store.DeletePayment(ctx, payments[0].ID); err != nil {
			t.Fatalf("DeletePayment failed: %v", err)
		}

		remaining, err := store.ListPaymentsForMortgage(ctx, mortgage.ID)
		if err != nil {
			t.Fatalf("ListPaymentsForMortgage failed: %v", err)
		}
		if len(remaining) != 0 {
			t.Errorf("Expected 0 payments, got %d", len(remaining))
		}
	})
}

func TestSQLiteStore_Users(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := models.NewUser("manager@example.com", "The Manager", "hash")
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	t.Run("GetUserByEmail finds the user", func(t *testing.T) {
		got, err := store.GetUserByEmail(ctx, "manager@example.com")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if got == nil || got.ID != user.ID {
			t.Errorf("GetUserByEmail = %+v, want ID %s", got, user.ID)
		}
	})

	t.Run("GetUserByEmail returns nil for unknown email", func(t *testing.T) {
		got, err := store.GetUserByEmail(ctx, "nobody@example.com")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if got != nil {
			t.Errorf("Expected nil user, got %+v", got)
		}
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		dup := models.NewUser("manager@example.com", "Imposter", "hash")
		if err := store.CreateUser(ctx, dup); err == nil {
			t.Error("Expected error for duplicate email, got nil")
		}
	})
}
