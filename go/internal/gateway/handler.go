package gateway

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"
)

// Handler serves the live roster websocket endpoints
type Handler struct {
	hub *Hub
}

func NewHandler(hub *Hub) *Handler {
	return &Handler{hub: hub}
}

// HandleRoster upgrades /ws/roster?team_id=N
func (h *Handler) HandleRoster(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("team_id")
	if raw == "" {
		http.Error(w, "team_id is required", http.StatusBadRequest)
		return
	}
	teamID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || teamID <= 0 {
		http.Error(w, "invalid team_id", http.StatusBadRequest)
		return
	}

	// Upgrade writes its own error response on failure
	if err := h.hub.Upgrade(w, r, teamID); err != nil {
		log.Error().Err(err).Int64("team_id", teamID).Msg("failed to open roster feed")
	}
}

func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	total, perTeam := h.hub.Stats()

	teams := make(map[string]int, len(perTeam))
	for id, n := range perTeam {
		teams[strconv.FormatInt(id, 10)] = n
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]any{
		"total_connections": total,
		"active_teams":      len(perTeam),
		"team_connections":  teams,
	}); err != nil {
		log.Error().Err(err).Msg("failed to write connection stats")
	}
}

// RegisterRoutes registers the websocket routes on mux
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/ws/roster", h.HandleRoster)
	mux.HandleFunc("/ws/stats", h.HandleStats)
}
