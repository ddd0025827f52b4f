package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lfreire/tokendex/internal/domain"
	"github.com/lfreire/tokendex/internal/service"
)

// OrderHandler handles HTTP requests for order endpoints.
type OrderHandler struct {
	orderSvc *service.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderSvc *service.OrderService) *OrderHandler {
	return &OrderHandler{orderSvc: orderSvc}
}

// submitOrderRequest is the JSON request body for POST /orders.
type submitOrderRequest struct {
	Type       string  `json:"type"`
	Trader     string  `json:"trader"`
	Side       string  `json:"side"`
	Instrument string  `json:"instrument"`
	Amount     int64   `json:"amount"`
	Price      *string `json:"price"`
	Sorted     bool    `json:"sorted"`
}

// limitOrderResponse is the JSON response for accepted limit orders.
type limitOrderResponse struct {
	OrderID    uint64 `json:"order_id"`
	Type       string `json:"type"`
	Trader     string `json:"trader"`
	Side       string `json:"side"`
	Instrument string `json:"instrument"`
	Amount     int64  `json:"amount"`
	Price      string `json:"price"`
	Sorted     bool   `json:"sorted"`
}

// marketOrderResponse is the JSON response for executed market orders.
type marketOrderResponse struct {
	Type       string         `json:"type"`
	Trader     string         `json:"trader"`
	Side       string         `json:"side"`
	Instrument string         `json:"instrument"`
	Amount     int64          `json:"amount"`
	Fills      []fillResponse `json:"fills"`
}

// fillResponse is a single fill in order and market-data responses.
type fillResponse struct {
	FillID       string `json:"fill_id"`
	Price        string `json:"price"`
	Quantity     int64  `json:"quantity"`
	Maker        string `json:"maker"`
	Taker        string `json:"taker"`
	TakerSide    string `json:"taker_side"`
	MakerOrderID uint64 `json:"maker_order_id"`
	TakerOrderID uint64 `json:"taker_order_id"`
	ExecutedAt   string `json:"executed_at"`
}

func toFillResponses(fills []domain.Fill) []fillResponse {
	out := make([]fillResponse, 0, len(fills))
	for _, f := range fills {
		out = append(out, fillResponse{
			FillID:       f.FillID,
			Price:        domain.FormatPrice(f.Price),
			Quantity:     f.Quantity,
			Maker:        f.Maker,
			Taker:        f.Taker,
			TakerSide:    string(f.TakerSide),
			MakerOrderID: f.MakerOrderID,
			TakerOrderID: f.TakerOrderID,
			ExecutedAt:   f.ExecutedAt.UTC().Format(time.RFC3339Nano),
		})
	}
	return out
}

// SubmitOrder handles POST /orders.
func (h *OrderHandler) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	var req submitOrderRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	result, err := h.orderSvc.Submit(service.SubmitOrderRequest{
		Type:       req.Type,
		Trader:     req.Trader,
		Side:       domain.Side(req.Side),
		Instrument: req.Instrument,
		Amount:     req.Amount,
		Price:      req.Price,
		Sorted:     req.Sorted,
	})
	if err != nil && result == nil {
		WriteDomainError(w, err)
		return
	}

	if req.Type == service.OrderTypeMarket {
		// A mid-match funding failure still returns the committed
		// fills; the status reflects the partial outcome.
		status := http.StatusCreated
		if err != nil {
			status = http.StatusUnprocessableEntity
		}
		WriteJSON(w, status, marketOrderResponse{
			Type:       req.Type,
			Trader:     req.Trader,
			Side:       req.Side,
			Instrument: req.Instrument,
			Amount:     req.Amount,
			Fills:      toFillResponses(result.Fills),
		})
		return
	}

	var price string
	if req.Price != nil {
		price = *req.Price
	}
	WriteJSON(w, http.StatusCreated, limitOrderResponse{
		OrderID:    result.OrderID,
		Type:       req.Type,
		Trader:     req.Trader,
		Side:       req.Side,
		Instrument: req.Instrument,
		Amount:     req.Amount,
		Price:      price,
		Sorted:     req.Sorted,
	})
}

// orderResponse is the JSON shape for a stored order.
type orderResponse struct {
	OrderID    uint64 `json:"order_id"`
	Trader     string `json:"trader"`
	Side       string `json:"side"`
	Instrument string `json:"instrument"`
	Amount     int64  `json:"amount"`
	Price      string `json:"price"`
	Sequence   uint64 `json:"sequence"`
}

func toOrderResponse(o domain.Order) orderResponse {
	return orderResponse{
		OrderID:    o.ID,
		Trader:     o.Trader,
		Side:       string(o.Side),
		Instrument: string(o.Instrument),
		Amount:     o.Amount,
		Price:      domain.FormatPrice(o.Price),
		Sequence:   o.Sequence,
	}
}

// GetOrder handles GET /orders/{order_id}.
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "order_id"), 10, 64)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", "order_id must be an unsigned integer")
		return
	}

	o, err := h.orderSvc.GetOrder(id)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, toOrderResponse(*o))
}

// ListTraderOrders handles GET /traders/{trader}/orders.
func (h *OrderHandler) ListTraderOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderSvc.ListByTrader(chi.URLParam(r, "trader"))
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	WriteJSON(w, http.StatusOK, map[string]any{"orders": out})
}
