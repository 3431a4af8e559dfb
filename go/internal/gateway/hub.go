package gateway

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Config holds websocket connection settings
type Config struct {
	WriteTimeout    time.Duration
	ReadTimeout     time.Duration
	PingInterval    time.Duration
	MaxMessageSize  int64
	ReadBufferSize  int
	WriteBufferSize int
	SendBuffer      int
	CheckOrigin     func(r *http.Request) bool
}

func DefaultConfig() Config {
	return Config{
		WriteTimeout:    10 * time.Second,
		ReadTimeout:     60 * time.Second,
		PingInterval:    30 * time.Second,
		MaxMessageSize:  1024,
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		SendBuffer:      256,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
}

// Hub tracks live roster feed connections per team id
type Hub struct {
	teams    map[int64]map[*Connection]bool
	mu       sync.RWMutex
	upgrader websocket.Upgrader
	config   Config

	broadcastCh chan broadcast
}

// Connection is one websocket client following a team
type Connection struct {
	ID          string
	TeamID      int64
	Conn        *websocket.Conn
	Send        chan []byte
	ConnectedAt time.Time

	hub *Hub
}

type broadcast struct {
	teamID int64
	data   []byte
}

func NewHub(config Config) *Hub {
	return &Hub{
		teams: make(map[int64]map[*Connection]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		config:      config,
		broadcastCh: make(chan broadcast, 1000),
	}
}

// Run delivers queued broadcasts until ctx is done
func (h *Hub) Run(ctx context.Context) {
	log.Info().Msg("roster hub started")
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("roster hub shutting down")
			h.closeAll()
			return
		case msg := <-h.broadcastCh:
			h.deliver(msg)
		}
	}
}

// Upgrade turns the request into a websocket following teamID
func (h *Hub) Upgrade(w http.ResponseWriter, r *http.Request, teamID int64) error {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return fmt.Errorf("failed to upgrade connection: %w", err)
	}

	c := &Connection{
		ID:          uuid.NewString(),
		TeamID:      teamID,
		Conn:        ws,
		Send:        make(chan []byte, h.config.SendBuffer),
		ConnectedAt: time.Now(),
		hub:         h,
	}
	h.register(c)

	go c.writePump()
	go c.readPump()

	log.Info().
		Str("connection_id", c.ID).
		Int64("team_id", teamID).
		Msg("roster feed connected")
	return nil
}

// Broadcast queues data for every connection following teamID
func (h *Hub) Broadcast(teamID int64, data []byte) bool {
	select {
	case h.broadcastCh <- broadcast{teamID: teamID, data: data}:
		return true
	default:
		log.Warn().Int64("team_id", teamID).Msg("broadcast channel full, dropping message")
		return false
	}
}

// Count returns the number of connections following teamID
func (h *Hub) Count(teamID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.teams[teamID])
}

// Stats returns total connections and connections per team
func (h *Hub) Stats() (int, map[int64]int) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	perTeam := make(map[int64]int, len(h.teams))
	for id, conns := range h.teams {
		perTeam[id] = len(conns)
		total += len(conns)
	}
	return total, perTeam
}

func (h *Hub) register(c *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.teams[c.TeamID] == nil {
		h.teams[c.TeamID] = make(map[*Connection]bool)
	}
	h.teams[c.TeamID][c] = true
}

func (h *Hub) unregister(c *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns, ok := h.teams[c.TeamID]
	if !ok || !conns[c] {
		return
	}
	delete(conns, c)
	close(c.Send)
	if len(conns) == 0 {
		delete(h.teams, c.TeamID)
	}

	log.Info().
		Str("connection_id", c.ID).
		Int64("team_id", c.TeamID).
		Msg("roster feed disconnected")
}

func (h *Hub) deliver(msg broadcast) {
	// Sends happen under the read lock: unregister closes Send under the
	// write lock, so no send can race a close.
	h.mu.RLock()
	delivered := len(h.teams[msg.teamID])
	var full []*Connection
	for c := range h.teams[msg.teamID] {
		select {
		case c.Send <- msg.data:
		default:
			full = append(full, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range full {
		log.Warn().Str("connection_id", c.ID).Msg("send buffer full, closing connection")
		h.unregister(c)
		c.Conn.Close()
	}

	log.Debug().
		Int64("team_id", msg.teamID).
		Int("connections", delivered-len(full)).
		Msg("roster event delivered")
}

func (h *Hub) closeAll() {
	h.mu.RLock()
	var all []*Connection
	for _, conns := range h.teams {
		for c := range conns {
			all = append(all, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range all {
		h.unregister(c)
	}
}

func (c *Connection) writePump() {
	ticker := time.NewTicker(c.hub.config.PingInterval)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
		c.hub.unregister(c)
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(c.hub.config.WriteTimeout))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Error().Err(err).Str("connection_id", c.ID).Msg("failed to write message")
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(c.hub.config.WriteTimeout))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Debug().Err(err).Str("connection_id", c.ID).Msg("failed to send ping")
				return
			}
		}
	}
}

// readPump keeps the read deadline fresh; client frames are discarded
func (c *Connection) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(c.hub.config.MaxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(c.hub.config.ReadTimeout))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(c.hub.config.ReadTimeout))
		return nil
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Error().Err(err).Str("connection_id", c.ID).Msg("unexpected websocket close")
			}
			return
		}
		c.Conn.SetReadDeadline(time.Now().Add(c.hub.config.ReadTimeout))
	}
}
