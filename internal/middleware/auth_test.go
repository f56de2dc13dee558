package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mmynk/homebills/internal/auth"
	"github.com/mmynk/homebills/internal/models"
)

func testToken(t *testing.T, m *auth.JWTManager) string {
	t.Helper()
	token, err := m.Generate(&models.User{ID: "user-1", Email: "manager@example.com"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	return token
}

func TestRequireAuth(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret-0123456789abcdef", time.Hour)

	handler := RequireAuth(jwtManager, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetUserID(r.Context()) != "user-1" {
			t.Errorf("GetUserID = %q, want user-1", GetUserID(r.Context()))
		}
		if GetEmail(r.Context()) != "manager@example.com" {
			t.Errorf("GetEmail = %q, want manager@example.com", GetEmail(r.Context()))
		}
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"malformed header", "just-a-token", http.StatusUnauthorized},
		{"invalid token", "Bearer not.a.token", http.StatusUnauthorized},
		{"valid token", "Bearer " + testToken(t, jwtManager), http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/people", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != tt.wantStatus {
				t.Errorf("Status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestManagerGate(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret-0123456789abcdef", time.Hour)

	handler := ManagerGate(jwtManager, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		method     string
		authHeader string
		wantStatus int
	}{
		{"GET passes without token", http.MethodGet, "", http.StatusOK},
		{"HEAD passes without token", http.MethodHead, "", http.StatusOK},
		{"POST without token is rejected", http.MethodPost, "", http.StatusUnauthorized},
		{"DELETE without token is rejected", http.MethodDelete, "", http.StatusUnauthorized},
		{"POST with token passes", http.MethodPost, "Bearer " + testToken(t, jwtManager), http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/bills", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != tt.wantStatus {
				t.Errorf("Status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}
