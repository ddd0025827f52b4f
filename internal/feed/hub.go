// Package feed broadcasts executed fills to websocket subscribers.
package feed

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lfreire/tokendex/internal/domain"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// fillMessage is the JSON shape sent to subscribers for each fill.
type fillMessage struct {
	FillID       string `json:"fill_id"`
	Instrument   string `json:"instrument"`
	Price        string `json:"price"`
	Quantity     int64  `json:"quantity"`
	Maker        string `json:"maker"`
	Taker        string `json:"taker"`
	TakerSide    string `json:"taker_side"`
	MakerOrderID uint64 `json:"maker_order_id"`
	TakerOrderID uint64 `json:"taker_order_id"`
	ExecutedAt   string `json:"executed_at"`
}

// Hub maintains active websocket connections and broadcasts every
// executed fill to all of them. Clients that can't keep up are
// disconnected rather than blocking the broadcast loop.
type Hub struct {
	logger     *slog.Logger
	sendBuffer int

	clients    map[*client]bool
	broadcast  chan []byte
	register   chan *client
	unregister chan *client
}

// NewHub creates a Hub. sendBuffer is the per-client outbound queue
// size.
func NewHub(logger *slog.Logger, sendBuffer int) *Hub {
	return &Hub{
		logger:     logger,
		sendBuffer: sendBuffer,
		clients:    make(map[*client]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *client),
		unregister: make(chan *client),
	}
}

// Run drives the hub loop until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				close(c.send)
				delete(h.clients, c)
			}
			return

		case c := <-h.register:
			h.clients[c] = true
			h.logger.Debug("feed client connected", slog.String("addr", c.addr), slog.Int("total", len(h.clients)))

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
				h.logger.Debug("feed client disconnected", slog.String("addr", c.addr), slog.Int("total", len(h.clients)))
			}

		case message := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- message:
				default:
					// Send buffer full; drop the client.
					delete(h.clients, c)
					close(c.send)
				}
			}
		}
	}
}

// PublishFill queues a fill for broadcast. It never blocks: if the
// broadcast queue is full the fill is dropped from the feed (the fill
// store remains the record of truth).
func (h *Hub) PublishFill(f domain.Fill) {
	msg, err := json.Marshal(fillMessage{
		FillID:       f.FillID,
		Instrument:   string(f.Instrument),
		Price:        domain.FormatPrice(f.Price),
		Quantity:     f.Quantity,
		Maker:        f.Maker,
		Taker:        f.Taker,
		TakerSide:    string(f.TakerSide),
		MakerOrderID: f.MakerOrderID,
		TakerOrderID: f.TakerOrderID,
		ExecutedAt:   f.ExecutedAt.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		h.logger.Error("feed marshal error", slog.String("error", err.Error()))
		return
	}
	select {
	case h.broadcast <- msg:
	default:
		h.logger.Warn("feed broadcast queue full, dropping fill", slog.String("fill_id", f.FillID))
	}
}

// ServeWS upgrades an HTTP request to a websocket subscription.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("feed upgrade error", slog.String("error", err.Error()))
		return
	}

	c := &client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, h.sendBuffer),
		addr: conn.RemoteAddr().String(),
	}
	h.register <- c

	go c.writePump()
	go c.readPump()
}

// client represents a single websocket subscriber.
type client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	addr string
}

// readPump drains inbound messages so pings/pongs and close frames are
// processed. The feed is broadcast-only; client messages are ignored.
func (c *client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump forwards queued messages to the connection and keeps it
// alive with pings.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
