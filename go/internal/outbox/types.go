package outbox

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EventType names a roster event; it is also the last subject token on the stream
type EventType string

const (
	EventPlayerAdded      EventType = "player_added"
	EventPlayerRemoved    EventType = "player_removed"
	EventPositionsUpdated EventType = "positions_updated"
	EventCoachAssigned    EventType = "coach_assigned"
	EventTeamArchived     EventType = "team_archived"
)

// Event is one outbox row. TeamID is the aggregate the event belongs to.
type Event struct {
	ID        uuid.UUID
	TeamID    int64
	Type      EventType
	Payload   json.RawMessage
	CreatedAt time.Time
}

// NewEvent marshals payload into a fresh event
func NewEvent(teamID int64, typ EventType, payload any) (Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("marshal %s payload: %w", typ, err)
	}
	return Event{
		ID:      uuid.New(),
		TeamID:  teamID,
		Type:    typ,
		Payload: data,
	}, nil
}

// Envelope is the message body published to JetStream and pushed to websocket clients
type Envelope struct {
	EventID   string          `json:"eventId"`
	EventType EventType       `json:"eventType"`
	TeamID    int64           `json:"teamId"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

// EventPublisher delivers an event to the message bus
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}
