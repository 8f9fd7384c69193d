package server

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"pricealert/internal/alert"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 90 * time.Second
	pingPeriod = 45 * time.Second
	sendBuffer = 256
)

var upgrader = websocket.Upgrader{
	CheckOrigin:       func(*http.Request) bool { return true },
	EnableCompression: true,
}

type StatusMessage struct {
	Type  string `json:"type"` // "status"
	Level string `json:"level"`
	Text  string `json:"text"`
}

type BadgeMessage struct {
	Type        string `json:"type"` // "badge"
	ActiveCount int    `json:"activeCount"`
}

type TriggeredMessage struct {
	Type    string      `json:"type"` // "alert_triggered"
	EventID string      `json:"eventId"`
	Alert   alert.Alert `json:"alert"`
}

type SoundMessage struct {
	Type    string `json:"type"` // "sound"
	URL     string `json:"url"`
	AlertID int64  `json:"alertId"`
}

type client struct {
	id   string
	conn *websocket.Conn
	out  chan any
}

// Hub fans dashboard messages out to every connected WebSocket. Sends never
// block: a client whose buffer is full misses the message.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}
	badge   atomic.Int64
	log     *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[*client]struct{}),
		log:     log.Named("hub"),
	}
}

func (h *Hub) Broadcast(v any) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.out <- v:
		default:
			h.log.Debug("client buffer full, dropping message", zap.String("client_id", c.id))
		}
	}
}

// ClientCount reports connected dashboards.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) PublishBadge(activeCount int) {
	h.badge.Store(int64(activeCount))
	h.Broadcast(BadgeMessage{Type: "badge", ActiveCount: activeCount})
}

func (h *Hub) PublishTriggered(a alert.Alert) {
	h.Broadcast(TriggeredMessage{Type: "alert_triggered", EventID: uuid.NewString(), Alert: a})
}

// ServeWS upgrades the request and pumps messages until the peer goes away.
// Control messages are passed to onControl; its reply, if any, goes back to
// the sender only.
func (h *Hub) ServeWS(onControl func(ControlMessage) *StatusMessage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.log.Warn("websocket upgrade failed", zap.Error(err))
			return
		}

		c := &client{id: uuid.NewString(), conn: conn, out: make(chan any, sendBuffer)}
		c.out <- StatusMessage{Type: "status", Level: "info", Text: "Connected"}
		c.out <- BadgeMessage{Type: "badge", ActiveCount: int(h.badge.Load())}

		h.mu.Lock()
		h.clients[c] = struct{}{}
		h.mu.Unlock()
		h.log.Info("client connected", zap.String("client_id", c.id))

		ctx, cancel := context.WithCancel(r.Context())
		defer func() {
			cancel()
			h.mu.Lock()
			delete(h.clients, c)
			h.mu.Unlock()
			conn.Close()
			h.log.Info("client disconnected", zap.String("client_id", c.id))
		}()

		go h.writePump(ctx, c)
		h.readPump(c, onControl)
	}
}

func (h *Hub) writePump(ctx context.Context, c *client) {
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case v := <-c.out:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(v); err != nil {
				h.log.Debug("write failed", zap.String("client_id", c.id), zap.Error(err))
				c.conn.Close()
				return
			}
		case <-ping.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.conn.Close()
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

func (h *Hub) readPump(c *client, onControl func(ControlMessage) *StatusMessage) {
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		mt, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		if mt != websocket.TextMessage || onControl == nil {
			continue
		}

		ctrl, ok := ParseControl(data, h.log)
		if !ok {
			continue
		}
		if reply := onControl(ctrl); reply != nil {
			select {
			case c.out <- *reply:
			default:
			}
		}
	}
}

// HubPlayer plays alert sounds by telling dashboards which URL to play.
type HubPlayer struct {
	Hub *Hub
	URL string
}

func (p HubPlayer) Play(_ context.Context, a alert.Alert) error {
	p.Hub.Broadcast(SoundMessage{Type: "sound", URL: p.URL, AlertID: a.ID})
	return nil
}
