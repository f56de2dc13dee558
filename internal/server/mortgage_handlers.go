package server

import (
	"fmt"
	"net/http"

	"github.com/mmynk/homebills/internal/calculator"
	"github.com/mmynk/homebills/internal/models"
)

type mortgageRequest struct {
	Name                    string              `json:"name"`
	OriginalPrincipal       models.Cents        `json:"original_principal"`
	CurrentPrincipal        models.Cents        `json:"current_principal"`
	InterestRateAPY         float64             `json:"interest_rate_apy"`
	TermMonths              int                 `json:"term_months"`
	StartDate               string              `json:"start_date"`
	PaymentDay              int                 `json:"payment_day"`
	ScheduledPayment        models.Cents        `json:"scheduled_payment"`
	EscrowTaxes             models.Cents        `json:"escrow_taxes"`
	EscrowInsurance         models.Cents        `json:"escrow_insurance"`
	EscrowMortgageInsurance models.Cents        `json:"escrow_mortgage_insurance"`
	EscrowHOA               models.Cents        `json:"escrow_hoa"`
	Mode                    models.SplitMode    `json:"mode"`
	Splits                  []models.SplitEntry `json:"splits"`
}

func (req *mortgageRequest) validate() error {
	if req.Name == "" {
		return fmt.Errorf("name is required")
	}
	if req.CurrentPrincipal < 0 {
		return fmt.Errorf("current_principal must not be negative")
	}
	if req.PaymentDay < 1 || req.PaymentDay > 31 {
		return fmt.Errorf("payment_day must be 1-31")
	}
	if req.ScheduledPayment <= 0 {
		return fmt.Errorf("scheduled_payment must be positive")
	}
	escrow := req.EscrowTaxes + req.EscrowInsurance + req.EscrowMortgageInsurance + req.EscrowHOA
	if escrow > req.ScheduledPayment {
		return fmt.Errorf("escrow components exceed scheduled payment")
	}
	return nil
}

func (req *mortgageRequest) toModel(id string) (*models.Mortgage, error) {
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start_date")
	}
	return &models.Mortgage{
		ID:                      id,
		Name:                    req.Name,
		OriginalPrincipal:       req.OriginalPrincipal,
		CurrentPrincipal:        req.CurrentPrincipal,
		InterestRateAPY:         req.InterestRateAPY,
		TermMonths:              req.TermMonths,
		StartDate:               startDate,
		PaymentDay:              req.PaymentDay,
		ScheduledPayment:        req.ScheduledPayment,
		EscrowTaxes:             req.EscrowTaxes,
		EscrowInsurance:         req.EscrowInsurance,
		EscrowMortgageInsurance: req.EscrowMortgageInsurance,
		EscrowHOA:               req.EscrowHOA,
		Mode:                    req.Mode,
		Splits:                  req.Splits,
	}, nil
}

func (s *Server) handleListMortgages(w http.ResponseWriter, r *http.Request) {
	mortgages, err := s.store.ListMortgages(r.Context())
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, mortgages)
}

func (s *Server) handleCreateMortgage(w http.ResponseWriter, r *http.Request) {
	var req mortgageRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	mortgage, err := req.toModel("")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.store.CreateMortgage(r.Context(), mortgage); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, mortgage)
}

func (s *Server) handleGetMortgage(w http.ResponseWriter, r *http.Request) {
	mortgage, err := s.store.GetMortgage(r.Context(), r.PathValue("id"))
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, mortgage)
}

func (s *Server) handleUpdateMortgage(w http.ResponseWriter, r *http.Request) {
	var req mortgageRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	mortgage, err := req.toModel(r.PathValue("id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.store.UpdateMortgage(r.Context(), mortgage); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, mortgage)
}

func (s *Server) handleDeleteMortgage(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteMortgage(r.Context(), r.PathValue("id")); err != nil {
		respondStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleMortgageCycle resolves the current billing cycle. Before the first
// due date ever, there is no cycle and the response body is null.
func (s *Server) handleMortgageCycle(w http.ResponseWriter, r *http.Request) {
	asOf, err := asOfDate(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid as_of date")
		return
	}

	mortgage, payments, people, err := s.loadMortgage(r)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	cycle := calculator.ResolveMortgageCycle(mortgage, payments, people, asOf)
	respondJSON(w, http.StatusOK, cycle)
}

type mortgageStatsResponse struct {
	Stats      calculator.MortgageStats               `json:"stats"`
	Breakdowns map[string]calculator.PaymentBreakdown `json:"breakdowns"`
}

func (s *Server) handleMortgageStats(w http.ResponseWriter, r *http.Request) {
	asOf, err := asOfDate(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid as_of date")
		return
	}

	mortgage, payments, people, err := s.loadMortgage(r)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	breakdowns := calculator.EstimateBreakdowns(mortgage, payments)
	stats := calculator.ComputeStats(mortgage, payments, breakdowns, people, asOf)
	respondJSON(w, http.StatusOK, mortgageStatsResponse{Stats: stats, Breakdowns: breakdowns})
}

// loadMortgage fetches the mortgage from the path ID plus the payment
// history and roster the calculator needs.
func (s *Server) loadMortgage(r *http.Request) (*models.Mortgage, []models.Payment, []models.Person, error) {
	mortgage, err := s.store.GetMortgage(r.Context(), r.PathValue("id"))
	if err != nil {
		return nil, nil, nil, err
	}
	payments, err := s.store.ListPaymentsForMortgage(r.Context(), mortgage.ID)
	if err != nil {
		return nil, nil, nil, err
	}
	people, err := s.listPeople(r)
	if err != nil {
		return nil, nil, nil, err
	}
	return mortgage, payments, people, nil
}
