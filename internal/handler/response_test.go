package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lfreire/tokendex/internal/domain"
)

func TestWriteJSON(t *testing.T) {
	t.Run("sets content type and status code", func(t *testing.T) {
		w := httptest.NewRecorder()
		data := map[string]string{"status": "ok"}

		WriteJSON(w, http.StatusOK, data)

		if got := w.Header().Get("Content-Type"); got != "application/json" {
			t.Errorf("Content-Type = %q, want %q", got, "application/json")
		}
		if w.Code != http.StatusOK {
			t.Errorf("status code = %d, want %d", w.Code, http.StatusOK)
		}

		var result map[string]string
		if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if result["status"] != "ok" {
			t.Errorf("body status = %q, want %q", result["status"], "ok")
		}
	})

	t.Run("writes 201 Created", func(t *testing.T) {
		w := httptest.NewRecorder()
		data := map[string]uint64{"order_id": 42}

		WriteJSON(w, http.StatusCreated, data)

		if w.Code != http.StatusCreated {
			t.Errorf("status code = %d, want %d", w.Code, http.StatusCreated)
		}
	})
}

func TestWriteError(t *testing.T) {
	w := httptest.NewRecorder()

	WriteError(w, http.StatusBadRequest, "invalid_request", "missing required field")

	if w.Code != http.StatusBadRequest {
		t.Errorf("status code = %d, want %d", w.Code, http.StatusBadRequest)
	}

	var resp errorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if resp.Error != "invalid_request" {
		t.Errorf("error = %q, want %q", resp.Error, "invalid_request")
	}
	if resp.Message != "missing required field" {
		t.Errorf("message = %q, want %q", resp.Message, "missing required field")
	}
}

func TestWriteDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", &domain.ValidationError{Message: "bad input"}, http.StatusBadRequest, "invalid_request"},
		{"unauthorized", domain.ErrUnauthorized, http.StatusForbidden, "unauthorized"},
		{"unknown instrument", domain.ErrUnknownInstrument, http.StatusNotFound, "unknown_instrument"},
		{"order not found", domain.ErrOrderNotFound, http.StatusNotFound, "order_not_found"},
		{"instrument exists", domain.ErrInstrumentExists, http.StatusConflict, "instrument_exists"},
		{"insufficient balance", domain.ErrInsufficientBalance, http.StatusUnprocessableEntity, "insufficient_balance"},
		{"empty book", domain.ErrEmptyBook, http.StatusUnprocessableEntity, "empty_book"},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteDomainError(w, tt.err)

			if w.Code != tt.wantStatus {
				t.Errorf("status code = %d, want %d", w.Code, tt.wantStatus)
			}
			var resp errorResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode: %v", err)
			}
			if resp.Error != tt.wantCode {
				t.Errorf("error = %q, want %q", resp.Error, tt.wantCode)
			}
		})
	}
}

func TestParseJSON(t *testing.T) {
	type payload struct {
		Trader string `json:"trader"`
	}

	t.Run("decodes valid body", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"trader":"alice"}`))
		req.Header.Set("Content-Type", "application/json")

		var p payload
		if err := ParseJSON(req, &p); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Trader != "alice" {
			t.Errorf("trader = %q, want %q", p.Trader, "alice")
		}
	})

	t.Run("rejects missing content type", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"trader":"alice"}`))

		var p payload
		if err := ParseJSON(req, &p); err == nil {
			t.Error("expected error for missing content type")
		}
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"trader":`))
		req.Header.Set("Content-Type", "application/json")

		var p payload
		if err := ParseJSON(req, &p); err == nil {
			t.Error("expected error for malformed JSON")
		}
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"broker":"alice"}`))
		req.Header.Set("Content-Type", "application/json")

		var p payload
		if err := ParseJSON(req, &p); err == nil {
			t.Error("expected error for unknown field")
		}
	})
}
