package models

import "time"

// AgeGroup is the age bracket a team competes in
type AgeGroup string

const (
	AgeGroupU6    AgeGroup = "U6"
	AgeGroupU7    AgeGroup = "U7"
	AgeGroupU8    AgeGroup = "U8"
	AgeGroupU9    AgeGroup = "U9"
	AgeGroupU10   AgeGroup = "U10"
	AgeGroupU11   AgeGroup = "U11"
	AgeGroupU12   AgeGroup = "U12"
	AgeGroupU13   AgeGroup = "U13"
	AgeGroupU14   AgeGroup = "U14"
	AgeGroupU15   AgeGroup = "U15"
	AgeGroupU16   AgeGroup = "U16"
	AgeGroupU17   AgeGroup = "U17"
	AgeGroupU18   AgeGroup = "U18"
	AgeGroupAdult AgeGroup = "Adult"
)

// AgeGroups lists every accepted age group in display order
var AgeGroups = []AgeGroup{
	AgeGroupU6, AgeGroupU7, AgeGroupU8, AgeGroupU9, AgeGroupU10, AgeGroupU11, AgeGroupU12,
	AgeGroupU13, AgeGroupU14, AgeGroupU15, AgeGroupU16, AgeGroupU17, AgeGroupU18, AgeGroupAdult,
}

// Division is the competitive tier of a team
type Division string

const (
	DivisionRecreational Division = "Recreational"
	DivisionCompetitive  Division = "Competitive"
	DivisionElite        Division = "Elite"
)

var Divisions = []Division{DivisionRecreational, DivisionCompetitive, DivisionElite}

// Team is a team registered for one season.
// Archived teams keep their row; DeletedAt marks the soft delete.
type Team struct {
	ID             int64      `json:"id"`
	Name           string     `json:"name"`
	LogoURL        *string    `json:"logo_url,omitempty"`
	AgeGroup       AgeGroup   `json:"age_group"`
	Division       Division   `json:"division"`
	SeasonID       int64      `json:"season_id"`
	PrimaryCoachID *int64     `json:"primary_coach_id,omitempty"`
	HomeFieldID    *int64     `json:"home_field_id,omitempty"`
	MaxPlayers     int        `json:"max_players"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty"`
	DeletedReason  *string    `json:"deleted_reason,omitempty"`
	DeletedBy      *int64     `json:"deleted_by,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	UpdatedBy      *int64     `json:"updated_by,omitempty"`
}

// Archived reports whether the team has been soft-deleted
func (t *Team) Archived() bool {
	return t.DeletedAt != nil
}
