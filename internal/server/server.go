// Package server exposes the REST API: manager auth, household roster,
// bills, mortgages, payments, and the derived cycle/stats/due views.
//
// Handlers validate input and translate between HTTP and the storage and
// calculator layers. All money crosses the wire in integer cents; cycle and
// stats responses are computed fresh on every request against a caller
// supplied (or current) as-of date.
package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/mmynk/homebills/internal/auth"
	"github.com/mmynk/homebills/internal/middleware"
	"github.com/mmynk/homebills/internal/storage"
)

// Server holds the dependencies shared by all handlers.
type Server struct {
	store storage.Store
	authn auth.Authenticator
	jwt   *auth.JWTManager
}

// New creates a Server backed by the given store and authenticator.
func New(store storage.Store, authn auth.Authenticator, jwt *auth.JWTManager) *Server {
	return &Server{store: store, authn: authn, jwt: jwt}
}

// Handler builds the API routing tree. Auth endpoints are open; everything
// else under /api/ goes through the manager gate (reads open, writes require
// a token).
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()

	api.HandleFunc("GET /api/people", s.handleListPeople)
	api.HandleFunc("POST /api/people", s.handleCreatePerson)
	api.HandleFunc("DELETE /api/people/{id}", s.handleDeletePerson)

	api.HandleFunc("GET /api/bills", s.handleListBills)
	api.HandleFunc("POST /api/bills", s.handleCreateBill)
	api.HandleFunc("GET /api/bills/{id}", s.handleGetBill)
	api.HandleFunc("PUT /api/bills/{id}", s.handleUpdateBill)
	api.HandleFunc("DELETE /api/bills/{id}", s.handleDeleteBill)
	api.HandleFunc("GET /api/bills/{id}/cycle", s.handleBillCycle)
	api.HandleFunc("GET /api/bills/{id}/payments", s.handleListBillPayments)
	api.HandleFunc("POST /api/bills/{id}/payments", s.handleCreateBillPayment)

	api.HandleFunc("GET /api/mortgages", s.handleListMortgages)
	api.HandleFunc("POST /api/mortgages", s.handleCreateMortgage)
	api.HandleFunc("GET /api/mortgages/{id}", s.handleGetMortgage)
	api.HandleFunc("PUT /api/mortgages/{id}", s.handleUpdateMortgage)
	api.HandleFunc("DELETE /api/mortgages/{id}", s.handleDeleteMortgage)
	api.HandleFunc("GET /api/mortgages/{id}/cycle", s.handleMortgageCycle)
	api.HandleFunc("GET /api/mortgages/{id}/stats", s.handleMortgageStats)
	api.HandleFunc("GET /api/mortgages/{id}/payments", s.handleListMortgagePayments)
	api.HandleFunc("POST /api/mortgages/{id}/payments", s.handleCreateMortgagePayment)

	api.HandleFunc("DELETE /api/payments/{id}", s.handleDeletePayment)

	api.HandleFunc("GET /api/due", s.handleDue)

	root := http.NewServeMux()
	root.HandleFunc("POST /api/auth/register", s.handleRegister)
	root.HandleFunc("POST /api/auth/login", s.handleLogin)
	root.Handle("/api/", middleware.ManagerGate(s.jwt, api))

	return root
}

// respondJSON writes v as a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// respondError writes a JSON error body with the given status.
func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// respondStoreError maps storage errors to 404 or 500.
func respondStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	slog.Error("Storage error", "error", err)
	respondError(w, http.StatusInternalServerError, "internal error")
}

// decodeJSON reads the request body into v.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

const dateLayout = "2006-01-02"

// parseDate parses a calendar date, accepting both the plain date form and
// full RFC 3339 timestamps. The result is truncated to midnight UTC.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// asOfDate reads the optional as_of query parameter, defaulting to today.
// Every cycle and stats computation is anchored to this date, so callers
// can reproduce past views exactly.
func asOfDate(r *http.Request) (time.Time, error) {
	raw := r.URL.Query().Get("as_of")
	if raw == "" {
		return time.Now().UTC(), nil
	}
	return parseDate(raw)
}
