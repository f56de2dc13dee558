package server

import (
	"net/http"
	"time"

	"github.com/mmynk/homebills/internal/calculator"
	"github.com/mmynk/homebills/internal/models"
)

type dueItem struct {
	Bill     *models.Bill          `json:"bill,omitempty"`
	Mortgage *models.Mortgage      `json:"mortgage,omitempty"`
	Cycle    *calculator.ItemCycle `json:"cycle"`
}

type dueResponse struct {
	AsOf      time.Time `json:"as_of"`
	Bills     []dueItem `json:"bills"`
	Mortgages []dueItem `json:"mortgages"`
}

// handleDue is the dashboard view: every obligation with its resolved
// current cycle. A mortgage that resolves to no applicable cycle is
// omitted rather than shown with a fabricated one.
func (s *Server) handleDue(w http.ResponseWriter, r *http.Request) {
	asOf, err := asOfDate(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid as_of date")
		return
	}

	people, err := s.listPeople(r)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	resp := dueResponse{AsOf: asOf, Bills: []dueItem{}, Mortgages: []dueItem{}}

	bills, err := s.store.ListBills(r.Context())
	if err != nil {
		respondStoreError(w, err)
		return
	}
	for _, bill := range bills {
		payments, err := s.store.ListPaymentsForBill(r.Context(), bill.ID)
		if err != nil {
			respondStoreError(w, err)
			return
		}
		cycle := calculator.ResolveBillCycle(bill, payments, people, asOf)
		resp.Bills = append(resp.Bills, dueItem{Bill: bill, Cycle: cycle})
	}

	mortgages, err := s.store.ListMortgages(r.Context())
	if err != nil {
		respondStoreError(w, err)
		return
	}
	for _, mortgage := range mortgages {
		payments, err := s.store.ListPaymentsForMortgage(r.Context(), mortgage.ID)
		if err != nil {
			respondStoreError(w, err)
			return
		}
		cycle := calculator.ResolveMortgageCycle(mortgage, payments, people, asOf)
		if cycle == nil {
			continue
		}
		resp.Mortgages = append(resp.Mortgages, dueItem{Mortgage: mortgage, Cycle: cycle})
	}

	respondJSON(w, http.StatusOK, resp)
}
