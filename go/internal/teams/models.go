package teams

import (
	"time"

	"github.com/mcdev12/rosterdesk/go/internal/models"
)

// TeamInput is the full team payload used by create and update
type TeamInput struct {
	Name           string          `json:"name" validate:"required,max=100"`
	LogoURL        *string         `json:"logo_url,omitempty" validate:"omitempty,url"`
	AgeGroup       models.AgeGroup `json:"age_group" validate:"required,oneof=U6 U7 U8 U9 U10 U11 U12 U13 U14 U15 U16 U17 U18 Adult"`
	Division       models.Division `json:"division" validate:"required,oneof=Recreational Competitive Elite"`
	SeasonID       int64           `json:"season_id" validate:"required,gt=0"`
	PrimaryCoachID *int64          `json:"primary_coach_id,omitempty" validate:"omitempty,gt=0"`
	HomeFieldID    *int64          `json:"home_field_id,omitempty" validate:"omitempty,gt=0"`
	MaxPlayers     int             `json:"max_players" validate:"gte=0"`
}

// CoachRole selects how a coach is attached to a team
type CoachRole string

const (
	CoachRolePrimary   CoachRole = "primary"
	CoachRoleAssistant CoachRole = "assistant"
)

type TeamRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type CoachAvailability struct {
	CoachID          int64     `json:"coach_id"`
	TeamID           int64     `json:"team_id"`
	SeasonID         int64     `json:"season_id"`
	Available        bool      `json:"available"`
	ConflictingTeams []TeamRef `json:"conflicting_teams"`
}

type CoachAssignment struct {
	TeamID  int64     `json:"team_id"`
	CoachID int64     `json:"coach_id"`
	Role    CoachRole `json:"role"`
	// MemberID is set for assistant coaches, who get a roster entry
	MemberID *int64 `json:"member_id,omitempty"`
}

// BulkActionKind names one of the batch operations
type BulkActionKind string

const (
	BulkCloneToSeason  BulkActionKind = "clone_to_season"
	BulkReassignCoach  BulkActionKind = "reassign_coach"
	BulkArchive        BulkActionKind = "archive"
	BulkUpdateDivision BulkActionKind = "update_division"
)

type BulkParams struct {
	SeasonID *int64           `json:"season_id,omitempty" validate:"omitempty,gt=0"`
	CoachID  *int64           `json:"coach_id,omitempty" validate:"omitempty,gt=0"`
	Reason   *string          `json:"reason,omitempty"`
	Division *models.Division `json:"division,omitempty" validate:"omitempty,oneof=Recreational Competitive Elite"`
}

type BulkRequest struct {
	TeamIDs []int64        `json:"team_ids" validate:"min=1,unique,dive,gt=0"`
	Action  BulkActionKind `json:"action" validate:"required,oneof=clone_to_season reassign_coach archive update_division"`
	Params  BulkParams     `json:"params"`
}

type BulkResult struct {
	Action   BulkActionKind `json:"action"`
	Affected int            `json:"affected"`
	// TeamIDs are the affected teams; for clones, the new team ids in request order
	TeamIDs []int64 `json:"team_ids"`
}

// Deletion is the soft-delete marker written on archive
type Deletion struct {
	At      time.Time
	Reason  *string
	ActorID int64
}
