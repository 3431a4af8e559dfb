package models

import "time"

// ChangeLogEntry is one append-only field change. EntityID is a team member id
// in the roster change log and a team id in the team audit log.
type ChangeLogEntry struct {
	ID        int64     `json:"id"`
	EntityID  int64     `json:"entity_id"`
	ActorID   int64     `json:"actor_id"`
	FieldName string    `json:"field_name"`
	OldValue  *string   `json:"old_value,omitempty"`
	NewValue  *string   `json:"new_value,omitempty"`
	ChangedAt time.Time `json:"changed_at"`
}

// FieldChange is a pending change-log row before it is written
type FieldChange struct {
	FieldName string
	OldValue  *string
	NewValue  *string
}
