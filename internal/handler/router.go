package handler

import (
	"bufio"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lfreire/tokendex/internal/feed"
	"github.com/lfreire/tokendex/internal/service"
)

// NewRouter creates a chi router with all routes registered, request
// logging, and Content-Type validation middleware.
func NewRouter(
	assetSvc *service.AssetService,
	orderSvc *service.OrderService,
	marketSvc *service.MarketService,
	hub *feed.Hub,
	logger *slog.Logger,
) chi.Router {
	r := chi.NewRouter()

	// Global middleware.
	r.Use(requestLogging(logger))
	r.Use(contentTypeJSON)

	// Create handlers.
	assetH := NewAssetHandler(assetSvc)
	orderH := NewOrderHandler(orderSvc)
	marketH := NewMarketHandler(marketSvc)

	// Health check.
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Instrument and custody routes.
	r.Post("/instruments", assetH.RegisterInstrument)
	r.Get("/instruments", assetH.ListInstruments)
	r.Post("/deposits", assetH.Deposit)
	r.Post("/withdrawals", assetH.Withdraw)
	r.Get("/balances/{trader}", assetH.GetBalances)

	// Order routes.
	r.Post("/orders", orderH.SubmitOrder)
	r.Get("/orders/{order_id}", orderH.GetOrder)
	r.Get("/traders/{trader}/orders", orderH.ListTraderOrders)

	// Market-data routes.
	r.Get("/instruments/{instrument}/book", marketH.GetBook)
	r.Get("/instruments/{instrument}/depth", marketH.GetDepth)
	r.Get("/instruments/{instrument}/fills", marketH.GetFills)

	// Fills feed.
	r.Get("/ws/fills", hub.ServeWS)

	return r
}

// requestLogging returns middleware that logs each request's method,
// path, status code, and duration using slog.
func requestLogging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)
			logger.Info("request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

// statusWriter wraps http.ResponseWriter to capture the status code.
type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

// Hijack passes through to the underlying writer so websocket upgrades
// work behind the logging middleware.
func (w *statusWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, http.ErrNotSupported
	}
	return hj.Hijack()
}

// contentTypeJSON is middleware that validates Content-Type for POST,
// PUT, and PATCH requests. If the Content-Type header doesn't start
// with "application/json", it returns 400 Bad Request before the
// handler runs.
func contentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
			ct := r.Header.Get("Content-Type")
			if ct == "" || !strings.HasPrefix(ct, "application/json") {
				WriteError(w, http.StatusBadRequest, "invalid_request",
					"Content-Type must be application/json")
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
