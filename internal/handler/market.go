package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/lfreire/tokendex/internal/domain"
	"github.com/lfreire/tokendex/internal/service"
)

// MarketHandler handles HTTP requests for book, depth and fill-history
// endpoints.
type MarketHandler struct {
	marketSvc *service.MarketService
}

// NewMarketHandler creates a new MarketHandler.
func NewMarketHandler(marketSvc *service.MarketService) *MarketHandler {
	return &MarketHandler{marketSvc: marketSvc}
}

// GetBook handles GET /instruments/{instrument}/book?side=buy|sell.
func (h *MarketHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	instrument := chi.URLParam(r, "instrument")
	side := r.URL.Query().Get("side")

	orders, err := h.marketSvc.Book(instrument, side)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"instrument": instrument,
		"side":       side,
		"orders":     out,
	})
}

// depthLevelResponse is a single aggregated price level.
type depthLevelResponse struct {
	Price    string `json:"price"`
	Quantity int64  `json:"quantity"`
	Orders   int    `json:"orders"`
}

// GetDepth handles GET /instruments/{instrument}/depth?side=&levels=.
func (h *MarketHandler) GetDepth(w http.ResponseWriter, r *http.Request) {
	instrument := chi.URLParam(r, "instrument")
	side := r.URL.Query().Get("side")

	levels := 10
	if raw := r.URL.Query().Get("levels"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "invalid_request", "levels must be an integer")
			return
		}
		levels = n
	}

	depth, err := h.marketSvc.Depth(instrument, side, levels)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	out := make([]depthLevelResponse, 0, len(depth))
	for _, l := range depth {
		out = append(out, depthLevelResponse{
			Price:    domain.FormatPrice(l.Price),
			Quantity: l.Quantity,
			Orders:   l.Orders,
		})
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"instrument": instrument,
		"side":       side,
		"levels":     out,
	})
}

// GetFills handles GET /instruments/{instrument}/fills.
func (h *MarketHandler) GetFills(w http.ResponseWriter, r *http.Request) {
	instrument := chi.URLParam(r, "instrument")

	fills, err := h.marketSvc.Fills(instrument)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"instrument": instrument,
		"fills":      toFillResponses(fills),
	})
}
