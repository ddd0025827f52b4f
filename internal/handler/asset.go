package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lfreire/tokendex/internal/domain"
	"github.com/lfreire/tokendex/internal/service"
)

// AssetHandler handles HTTP requests for instruments, custody and
// balances.
type AssetHandler struct {
	assetSvc *service.AssetService
}

// NewAssetHandler creates a new AssetHandler.
func NewAssetHandler(assetSvc *service.AssetService) *AssetHandler {
	return &AssetHandler{assetSvc: assetSvc}
}

// registerInstrumentRequest is the JSON request body for POST /instruments.
type registerInstrumentRequest struct {
	Instrument  string `json:"instrument"`
	ExternalRef string `json:"external_ref"`
}

// instrumentResponse is a single instrument in list responses.
type instrumentResponse struct {
	Instrument  string `json:"instrument"`
	ExternalRef string `json:"external_ref"`
}

// RegisterInstrument handles POST /instruments. The caller identity
// comes from the X-Trader header.
func (h *AssetHandler) RegisterInstrument(w http.ResponseWriter, r *http.Request) {
	var req registerInstrumentRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	err := h.assetSvc.RegisterInstrument(service.RegisterInstrumentRequest{
		Caller:      r.Header.Get("X-Trader"),
		Instrument:  req.Instrument,
		ExternalRef: req.ExternalRef,
	})
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, instrumentResponse{
		Instrument:  req.Instrument,
		ExternalRef: req.ExternalRef,
	})
}

// ListInstruments handles GET /instruments.
func (h *AssetHandler) ListInstruments(w http.ResponseWriter, r *http.Request) {
	infos := h.assetSvc.Instruments()
	out := make([]instrumentResponse, 0, len(infos))
	for _, info := range infos {
		out = append(out, instrumentResponse{
			Instrument:  string(info.ID),
			ExternalRef: info.ExternalRef,
		})
	}
	WriteJSON(w, http.StatusOK, map[string]any{"instruments": out})
}

// custodyRequest is the JSON request body for deposits and withdrawals.
// An empty instrument moves settlement currency.
type custodyRequest struct {
	Trader     string `json:"trader"`
	Instrument string `json:"instrument"`
	Amount     int64  `json:"amount"`
}

// Deposit handles POST /deposits.
func (h *AssetHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	var req custodyRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	err := h.assetSvc.Deposit(service.CustodyRequest{
		Trader:     req.Trader,
		Instrument: req.Instrument,
		Amount:     req.Amount,
	})
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, map[string]string{"status": "credited"})
}

// Withdraw handles POST /withdrawals.
func (h *AssetHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	var req custodyRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	err := h.assetSvc.Withdraw(service.CustodyRequest{
		Trader:     req.Trader,
		Instrument: req.Instrument,
		Amount:     req.Amount,
	})
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"status": "debited"})
}

// balanceResponse is a single asset balance.
type balanceResponse struct {
	Asset    string `json:"asset"`
	Quantity int64  `json:"quantity"`
}

// GetBalances handles GET /balances/{trader}. An optional ?instrument=
// query narrows the response to one asset (empty value or absence with
// ?asset=currency style is covered by the full listing).
func (h *AssetHandler) GetBalances(w http.ResponseWriter, r *http.Request) {
	trader := chi.URLParam(r, "trader")

	if instrument := r.URL.Query().Get("instrument"); instrument != "" || r.URL.Query().Has("instrument") {
		qty, err := h.assetSvc.Balance(trader, instrument)
		if err != nil {
			WriteDomainError(w, err)
			return
		}
		asset := instrument
		if asset == "" {
			asset = string(domain.Currency)
		}
		WriteJSON(w, http.StatusOK, balanceResponse{Asset: asset, Quantity: qty})
		return
	}

	balances, err := h.assetSvc.Balances(trader)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	out := make([]balanceResponse, 0, len(balances))
	for asset, qty := range balances {
		out = append(out, balanceResponse{Asset: string(asset), Quantity: qty})
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"trader":   trader,
		"balances": out,
	})
}
