package server

import (
	"fmt"
	"net/http"

	"github.com/mmynk/homebills/internal/models"
)

type paymentRequest struct {
	Amount      models.Cents               `json:"amount"`
	PaidDate    string                     `json:"paid_date"`
	Method      string                     `json:"method"`
	Note        string                     `json:"note"`
	Allocations []models.PaymentAllocation `json:"allocations"`
}

// validate enforces the explicit-allocation contract: when the caller
// provides a breakdown, it must sum exactly to the payment amount. The
// engine trusts this downstream and never re-checks.
func (req *paymentRequest) validate() error {
	if req.Amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}
	if len(req.Allocations) > 0 {
		var sum models.Cents
		for _, a := range req.Allocations {
			if a.PersonID == "" {
				return fmt.Errorf("allocation person_id is required")
			}
			sum += a.Amount
		}
		if sum != req.Amount {
			return fmt.Errorf("allocations sum to %d, amount is %d", sum, req.Amount)
		}
	}
	return nil
}

func (s *Server) handleCreateBillPayment(w http.ResponseWriter, r *http.Request) {
	bill, err := s.store.GetBill(r.Context(), r.PathValue("id"))
	if err != nil {
		respondStoreError(w, err)
		return
	}
	s.createPayment(w, r, bill.ID, "")
}

func (s *Server) handleCreateMortgagePayment(w http.ResponseWriter, r *http.Request) {
	mortgage, err := s.store.GetMortgage(r.Context(), r.PathValue("id"))
	if err != nil {
		respondStoreError(w, err)
		return
	}
	s.createPayment(w, r, "", mortgage.ID)
}

func (s *Server) createPayment(w http.ResponseWriter, r *http.Request, billID, mortgageID string) {
	var req paymentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	paidDate, err := parseDate(req.PaidDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid paid_date")
		return
	}

	payment := &models.Payment{
		BillID:      billID,
		MortgageID:  mortgageID,
		Amount:      req.Amount,
		PaidDate:    paidDate,
		Method:      req.Method,
		Note:        req.Note,
		Allocations: req.Allocations,
	}
	if err := s.store.CreatePayment(r.Context(), payment); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, payment)
}

func (s *Server) handleListBillPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := s.store.ListPaymentsForBill(r.Context(), r.PathValue("id"))
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, payments)
}

func (s *Server) handleListMortgagePayments(w http.ResponseWriter, r *http.Request) {
	payments, err := s.store.ListPaymentsForMortgage(r.Context(), r.PathValue("id"))
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, payments)
}

func (s *Server) handleDeletePayment(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeletePayment(r.Context(), r.PathValue("id")); err != nil {
		respondStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
