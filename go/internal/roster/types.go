package roster

import (
	"time"

	"github.com/mcdev12/rosterdesk/go/internal/models"
)

// PositionJersey is one (position, jersey) pair. A nil jersey falls back to
// the member's own jersey number.
type PositionJersey struct {
	Position     string `json:"position" validate:"required"`
	JerseyNumber *int   `json:"jersey_number,omitempty"`
}

type AddPlayerRequest struct {
	UserID                 int64               `json:"user_id" validate:"required,gt=0"`
	JerseyNumber           *int                `json:"jersey_number,omitempty"`
	JerseyNumberAlt        *int                `json:"jersey_number_alt,omitempty"`
	Positions              []string            `json:"positions" validate:"min=1,unique,dive,required"`
	PrimaryPosition        *string             `json:"primary_position,omitempty"`
	TeamPriority           models.TeamPriority `json:"team_priority,omitempty" validate:"omitempty,oneof=primary secondary guest"`
	Status                 models.MemberStatus `json:"status,omitempty" validate:"omitempty,oneof=active inactive injured suspended"`
	PositionAssignments    []PositionJersey    `json:"position_assignments,omitempty" validate:"unique=Position,dive"`
	GuestPlayerAgreementID *int64              `json:"guest_player_agreement_id,omitempty"`
}

type AddGuestPlayerRequest struct {
	AddPlayerRequest `validate:"-"`
	ValidUntil *time.Time `json:"valid_until,omitempty"`
	GameIDs    []int64    `json:"game_ids,omitempty" validate:"unique,dive,gt=0"`
}

type UpdatePositionsRequest struct {
	Positions           []string         `json:"positions" validate:"min=1,unique,dive,required"`
	PrimaryPosition     *string          `json:"primary_position,omitempty"`
	JerseyNumber        *int             `json:"jersey_number,omitempty"`
	JerseyNumberAlt     *int             `json:"jersey_number_alt,omitempty"`
	PositionAssignments []PositionJersey `json:"position_assignments,omitempty" validate:"unique=Position,dive"`
	// OldPositions overrides the stored positions as the "before" side of the change log
	OldPositions []string `json:"old_positions,omitempty"`
}

// MembershipPositions is the row update applied by UpdatePlayerPositions
type MembershipPositions struct {
	TeamID          int64
	UserID          int64
	Positions       []string
	PrimaryPosition *string
	JerseyNumber    *int
	JerseyNumberAlt *int
}

// Leave marks the end of a membership
type Leave struct {
	Date    time.Time
	Reason  *string
	ActorID int64
}

type PositionsUpdate struct {
	MemberID          int64    `json:"member_id"`
	OldPositions      []string `json:"old_positions"`
	NewPositions      []string `json:"new_positions"`
	ActiveAssignments int      `json:"active_assignments"`
}

type AttendanceRecord struct {
	EventID      int64                   `json:"event_id" validate:"required,gt=0"`
	TeamMemberID int64                   `json:"team_member_id" validate:"required,gt=0"`
	Status       models.AttendanceStatus `json:"status" validate:"required,oneof=present absent late excused"`
	Notes        *string                 `json:"notes,omitempty"`
}

type AttendanceFailure struct {
	Index        int    `json:"index"`
	EventID      int64  `json:"event_id"`
	TeamMemberID int64  `json:"team_member_id"`
	Error        string `json:"error"`
}

// AttendanceResult reports each tuple independently; one failure never undoes another tuple
type AttendanceResult struct {
	Recorded int                 `json:"recorded"`
	Failures []AttendanceFailure `json:"failures"`
}

// PlayerRef is how a member appears inside a report
type PlayerRef struct {
	MemberID     int64 `json:"member_id"`
	UserID       int64 `json:"user_id"`
	JerseyNumber *int  `json:"jersey_number"`
}

type PositionBuckets struct {
	PrimaryPlayers   []PlayerRef `json:"primary_players"`
	SecondaryPlayers []PlayerRef `json:"secondary_players"`
	GuestPlayers     []PlayerRef `json:"guest_players"`
}

type CoverageShortfall struct {
	Position string `json:"position"`
	Current  int    `json:"current"`
	Needed   int    `json:"needed"`
}

type CoverageReport struct {
	TeamID                   int64                       `json:"team_id"`
	PositionCoverage         map[string]*PositionBuckets `json:"position_coverage"`
	PositionsNeedingCoverage []CoverageShortfall         `json:"positions_needing_coverage"`
}

type JerseyConflict struct {
	JerseyNumber int         `json:"jersey_number"`
	Position     string      `json:"position"`
	Players      []PlayerRef `json:"players"`
}

type JerseyReport struct {
	TeamID int64 `json:"team_id"`
	// JerseyAssignments is keyed by jersey number, then position
	JerseyAssignments map[int]map[string][]PlayerRef `json:"jersey_assignments"`
	Conflicts         []JerseyConflict               `json:"conflicts"`
	AvailableNumbers  []int                          `json:"available_numbers"`
}
