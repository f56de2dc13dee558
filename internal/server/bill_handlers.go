package server

import (
	"fmt"
	"math"
	"net/http"

	"github.com/mmynk/homebills/internal/calculator"
	"github.com/mmynk/homebills/internal/models"
)

type billRequest struct {
	Name    string              `json:"name"`
	Amount  models.Cents        `json:"amount"`
	DueDate string              `json:"due_date"`
	Mode    models.SplitMode    `json:"mode"`
	Splits  []models.SplitEntry `json:"splits"`
}

// validate checks the invariants the engine trusts the form layer for:
// fixed-amount splits must sum exactly to the bill amount.
func (req *billRequest) validate() error {
	if req.Name == "" {
		return fmt.Errorf("name is required")
	}
	if req.Amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}
	if req.Mode == models.SplitFixedAmount && len(req.Splits) > 0 {
		var sum models.Cents
		for _, e := range req.Splits {
			sum += models.Cents(math.Round(e.Value))
		}
		if sum != req.Amount {
			return fmt.Errorf("fixed splits sum to %d, amount is %d", sum, req.Amount)
		}
	}
	return nil
}

func (s *Server) handleListBills(w http.ResponseWriter, r *http.Request) {
	bills, err := s.store.ListBills(r.Context())
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, bills)
}

func (s *Server) handleCreateBill(w http.ResponseWriter, r *http.Request) {
	var req billRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid due_date")
		return
	}

	bill := &models.Bill{
		Name:    req.Name,
		Amount:  req.Amount,
		DueDate: dueDate,
		Mode:    req.Mode,
		Splits:  req.Splits,
	}
	if err := s.store.CreateBill(r.Context(), bill); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, bill)
}

func (s *Server) handleGetBill(w http.ResponseWriter, r *http.Request) {
	bill, err := s.store.GetBill(r.Context(), r.PathValue("id"))
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, bill)
}

func (s *Server) handleUpdateBill(w http.ResponseWriter, r *http.Request) {
	var req billRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid due_date")
		return
	}

	bill := &models.Bill{
		ID:      r.PathValue("id"),
		Name:    req.Name,
		Amount:  req.Amount,
		DueDate: dueDate,
		Mode:    req.Mode,
		Splits:  req.Splits,
	}
	if err := s.store.UpdateBill(r.Context(), bill); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, bill)
}

func (s *Server) handleDeleteBill(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteBill(r.Context(), r.PathValue("id")); err != nil {
		respondStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleBillCycle(w http.ResponseWriter, r *http.Request) {
	asOf, err := asOfDate(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid as_of date")
		return
	}

	bill, err := s.store.GetBill(r.Context(), r.PathValue("id"))
	if err != nil {
		respondStoreError(w, err)
		return
	}
	payments, err := s.store.ListPaymentsForBill(r.Context(), bill.ID)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	people, err := s.listPeople(r)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	cycle := calculator.ResolveBillCycle(bill, payments, people, asOf)
	respondJSON(w, http.StatusOK, cycle)
}

// listPeople dereferences the store's people slice into the value slice the
// calculator takes.
func (s *Server) listPeople(r *http.Request) ([]models.Person, error) {
	stored, err := s.store.ListPeople(r.Context())
	if err != nil {
		return nil, err
	}
	people := make([]models.Person, len(stored))
	for i, p := range stored {
		people[i] = *p
	}
	return people, nil
}
