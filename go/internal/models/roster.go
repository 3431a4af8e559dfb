package models

import "time"

// MemberRole is the role a person holds on a team roster
type MemberRole string

const (
	MemberRolePlayer         MemberRole = "player"
	MemberRoleAssistantCoach MemberRole = "assistant_coach"
)

// TeamPriority decides how a member counts toward roster limits and coverage
type TeamPriority string

const (
	TeamPriorityPrimary   TeamPriority = "primary"
	TeamPrioritySecondary TeamPriority = "secondary"
	TeamPriorityGuest     TeamPriority = "guest"
)

// MemberStatus is the participation status of a roster entry
type MemberStatus string

const (
	MemberStatusActive    MemberStatus = "active"
	MemberStatusInactive  MemberStatus = "inactive"
	MemberStatusInjured   MemberStatus = "injured"
	MemberStatusSuspended MemberStatus = "suspended"
)

// TeamMember is one time-bounded roster entry. A nil LeaveDate (or one in the
// future for guests) means the entry is current; rejoining creates a new entry.
type TeamMember struct {
	ID                     int64        `json:"id"`
	TeamID                 int64        `json:"team_id"`
	UserID                 int64        `json:"user_id"`
	Role                   MemberRole   `json:"role"`
	TeamPriority           TeamPriority `json:"team_priority"`
	JerseyNumber           *int         `json:"jersey_number,omitempty"`
	JerseyNumberAlt        *int         `json:"jersey_number_alt,omitempty"`
	Positions              []string     `json:"positions"`
	PrimaryPosition        *string      `json:"primary_position,omitempty"`
	Status                 MemberStatus `json:"status"`
	JoinDate               time.Time    `json:"join_date"`
	LeaveDate              *time.Time   `json:"leave_date,omitempty"`
	LeaveReason            *string      `json:"leave_reason,omitempty"`
	RemovedBy              *int64       `json:"removed_by,omitempty"`
	GuestPlayerAgreementID *int64       `json:"guest_player_agreement_id,omitempty"`
}

// PlayerPositionAssignment is the normalized, historized position row used for
// jersey conflict detection. Rows are deactivated, never deleted.
type PlayerPositionAssignment struct {
	ID           int64     `json:"id"`
	TeamMemberID int64     `json:"team_member_id"`
	Position     string    `json:"position"`
	JerseyNumber *int      `json:"jersey_number,omitempty"`
	IsActive     bool      `json:"is_active"`
	AssignedDate time.Time `json:"assigned_date"`
}

// ActiveAssignment is an active assignment joined with its member row
type ActiveAssignment struct {
	AssignmentID       int64  `json:"assignment_id"`
	TeamMemberID       int64  `json:"team_member_id"`
	UserID             int64  `json:"user_id"`
	Position           string `json:"position"`
	JerseyNumber       *int   `json:"jersey_number,omitempty"`
	MemberJerseyNumber *int   `json:"member_jersey_number,omitempty"`
}

// GuestPlayerGame scopes a guest member to one named game
type GuestPlayerGame struct {
	ID           int64 `json:"id"`
	TeamMemberID int64 `json:"team_member_id"`
	GameID       int64 `json:"game_id"`
}

// AttendanceStatus is the recorded presence of a member at an event
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"
	AttendanceExcused AttendanceStatus = "excused"
)

// Attendance is keyed by (event, membership)
type Attendance struct {
	EventID      int64            `json:"event_id"`
	TeamMemberID int64            `json:"team_member_id"`
	Status       AttendanceStatus `json:"status"`
	Notes        *string          `json:"notes,omitempty"`
	RecordedBy   int64            `json:"recorded_by"`
	RecordedAt   time.Time        `json:"recorded_at"`
}
