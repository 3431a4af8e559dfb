package outbox

type PlayerAddedPayload struct {
	TeamID       int64  `json:"team_id"`
	UserID       int64  `json:"user_id"`
	MemberID     int64  `json:"member_id"`
	TeamPriority string `json:"team_priority"`
	ActorID      int64  `json:"actor_id"`
}

type PlayerRemovedPayload struct {
	TeamID   int64   `json:"team_id"`
	UserID   int64   `json:"user_id"`
	MemberID int64   `json:"member_id"`
	Reason   *string `json:"reason,omitempty"`
	ActorID  int64   `json:"actor_id"`
}

type PositionsUpdatedPayload struct {
	TeamID          int64    `json:"team_id"`
	UserID          int64    `json:"user_id"`
	MemberID        int64    `json:"member_id"`
	OldPositions    []string `json:"old_positions"`
	NewPositions    []string `json:"new_positions"`
	PrimaryPosition *string  `json:"primary_position,omitempty"`
	ActorID         int64    `json:"actor_id"`
}

// CoachAssignedPayload drives the coach notification email
type CoachAssignedPayload struct {
	TeamID   int64  `json:"team_id"`
	TeamName string `json:"team_name"`
	SeasonID int64  `json:"season_id"`
	CoachID  int64  `json:"coach_id"`
	Role     string `json:"role"`
	ActorID  int64  `json:"actor_id"`
}

type TeamArchivedPayload struct {
	TeamID  int64   `json:"team_id"`
	Reason  *string `json:"reason,omitempty"`
	ActorID int64   `json:"actor_id"`
}
