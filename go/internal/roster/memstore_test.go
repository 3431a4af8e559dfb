package roster

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/mcdev12/rosterdesk/go/internal/apperr"
	"github.com/mcdev12/rosterdesk/go/internal/models"
	"github.com/mcdev12/rosterdesk/go/internal/outbox"
)

var errInjected = errors.New("injected store failure")

// memStore is an in-memory RosterStore. InTx restores the previous state
// when fn fails, so rollback behaviour is observable in tests.
type memStore struct {
	teams       map[int64]models.Team
	members     []models.TeamMember
	assignments []models.PlayerPositionAssignment
	guestGames  []models.GuestPlayerGame
	attendance  map[[2]int64]models.Attendance
	changes     []models.ChangeLogEntry
	events      []outbox.Event
	nextID      int64

	failOn map[string]bool
	inTx   bool
}

func newMemStore(teams ...models.Team) *memStore {
	s := &memStore{
		teams:      make(map[int64]models.Team),
		attendance: make(map[[2]int64]models.Attendance),
		failOn:     make(map[string]bool),
		nextID:     100,
	}
	for _, t := range teams {
		s.teams[t.ID] = t
	}
	return s
}

type memSnapshot struct {
	teams       map[int64]models.Team
	members     []models.TeamMember
	assignments []models.PlayerPositionAssignment
	guestGames  []models.GuestPlayerGame
	attendance  map[[2]int64]models.Attendance
	changes     []models.ChangeLogEntry
	events      []outbox.Event
	nextID      int64
}

func (s *memStore) snapshot() memSnapshot {
	return memSnapshot{
		teams:       maps.Clone(s.teams),
		members:     slices.Clone(s.members),
		assignments: slices.Clone(s.assignments),
		guestGames:  slices.Clone(s.guestGames),
		attendance:  maps.Clone(s.attendance),
		changes:     slices.Clone(s.changes),
		events:      slices.Clone(s.events),
		nextID:      s.nextID,
	}
}

func (s *memStore) restore(snap memSnapshot) {
	s.teams = snap.teams
	s.members = snap.members
	s.assignments = snap.assignments
	s.guestGames = snap.guestGames
	s.attendance = snap.attendance
	s.changes = snap.changes
	s.events = snap.events
	s.nextID = snap.nextID
}

func (s *memStore) check(op string) error {
	if s.failOn[op] {
		return fmt.Errorf("%s: %w", op, errInjected)
	}
	return nil
}

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

func isCurrent(m models.TeamMember, asOf time.Time) bool {
	return m.LeaveDate == nil || m.LeaveDate.After(asOf)
}

func (s *memStore) memberByID(id int64) (models.TeamMember, bool) {
	for _, m := range s.members {
		if m.ID == id {
			return m, true
		}
	}
	return models.TeamMember{}, false
}

func (s *memStore) InTx(ctx context.Context, fn func(RosterStore) error) error {
	if s.inTx {
		return fn(s)
	}
	snap := s.snapshot()
	s.inTx = true
	err := fn(s)
	s.inTx = false
	if err != nil {
		s.restore(snap)
	}
	return err
}

func (s *memStore) GetTeam(ctx context.Context, teamID int64) (*models.Team, error) {
	if err := s.check("GetTeam"); err != nil {
		return nil, err
	}
	t, ok := s.teams[teamID]
	if !ok {
		return nil, fmt.Errorf("team %d: %w", teamID, apperr.ErrNotFound)
	}
	return &t, nil
}

func (s *memStore) GetActiveMembership(ctx context.Context, teamID, userID int64, asOf time.Time) (*models.TeamMember, error) {
	for i := len(s.members) - 1; i >= 0; i-- {
		m := s.members[i]
		if m.TeamID == teamID && m.UserID == userID && isCurrent(m, asOf) {
			return &m, nil
		}
	}
	return nil, fmt.Errorf("membership: %w", apperr.ErrNotFound)
}

func (s *memStore) InsertMembership(ctx context.Context, m models.TeamMember) (*models.TeamMember, error) {
	if err := s.check("InsertMembership"); err != nil {
		return nil, err
	}
	for _, existing := range s.members {
		if existing.TeamID == m.TeamID && existing.UserID == m.UserID && existing.LeaveDate == nil && m.LeaveDate == nil {
			return nil, apperr.NewConflict(apperr.ErrDuplicateMembership)
		}
	}
	m.ID = s.id()
	m.Positions = slices.Clone(m.Positions)
	s.members = append(s.members, m)
	return &m, nil
}

func (s *memStore) UpdateMembershipPositions(ctx context.Context, upd MembershipPositions, asOf time.Time) (*models.TeamMember, error) {
	if err := s.check("UpdateMembershipPositions"); err != nil {
		return nil, err
	}
	for i, m := range s.members {
		if m.TeamID == upd.TeamID && m.UserID == upd.UserID && m.Role == models.MemberRolePlayer && isCurrent(m, asOf) {
			m.Positions = slices.Clone(upd.Positions)
			m.PrimaryPosition = upd.PrimaryPosition
			m.JerseyNumber = upd.JerseyNumber
			m.JerseyNumberAlt = upd.JerseyNumberAlt
			s.members[i] = m
			return &m, nil
		}
	}
	return nil, fmt.Errorf("membership: %w", apperr.ErrNotFound)
}

func (s *memStore) EndMembership(ctx context.Context, teamID, userID int64, role models.MemberRole, leave Leave) (*models.TeamMember, error) {
	if err := s.check("EndMembership"); err != nil {
		return nil, err
	}
	for i, m := range s.members {
		if m.TeamID == teamID && m.UserID == userID && m.Role == role && isCurrent(m, leave.Date) {
			date := leave.Date
			actor := leave.ActorID
			m.LeaveDate = &date
			m.LeaveReason = leave.Reason
			m.RemovedBy = &actor
			s.members[i] = m
			return &m, nil
		}
	}
	return nil, fmt.Errorf("membership: %w", apperr.ErrNotFound)
}

func (s *memStore) DeactivateAssignments(ctx context.Context, memberID int64) (int64, error) {
	if err := s.check("DeactivateAssignments"); err != nil {
		return 0, err
	}
	var n int64
	for i, a := range s.assignments {
		if a.TeamMemberID == memberID && a.IsActive {
			s.assignments[i].IsActive = false
			n++
		}
	}
	return n, nil
}

func (s *memStore) InsertAssignment(ctx context.Context, memberID int64, pj PositionJersey, assigned time.Time) (*models.PlayerPositionAssignment, error) {
	if err := s.check("InsertAssignment"); err != nil {
		return nil, err
	}
	a := models.PlayerPositionAssignment{
		ID:           s.id(),
		TeamMemberID: memberID,
		Position:     pj.Position,
		JerseyNumber: pj.JerseyNumber,
		IsActive:     true,
		AssignedDate: assigned,
	}
	s.assignments = append(s.assignments, a)
	return &a, nil
}

func (s *memStore) CountActiveAssignments(ctx context.Context, memberID int64) (int64, error) {
	var n int64
	for _, a := range s.assignments {
		if a.TeamMemberID == memberID && a.IsActive {
			n++
		}
	}
	return n, nil
}

func (s *memStore) InsertGuestGame(ctx context.Context, memberID, gameID int64) error {
	if err := s.check("InsertGuestGame"); err != nil {
		return err
	}
	s.guestGames = append(s.guestGames, models.GuestPlayerGame{ID: s.id(), TeamMemberID: memberID, GameID: gameID})
	return nil
}

func (s *memStore) CountJerseyConflicts(ctx context.Context, teamID int64, position string, jersey int, asOf time.Time, excludeUserID int64) (int64, error) {
	var n int64
	for _, a := range s.assignments {
		if !a.IsActive || a.Position != position {
			continue
		}
		m, ok := s.memberByID(a.TeamMemberID)
		if !ok || m.TeamID != teamID || !isCurrent(m, asOf) || m.UserID == excludeUserID {
			continue
		}
		effective := a.JerseyNumber
		if effective == nil {
			effective = m.JerseyNumber
		}
		if effective != nil && *effective == jersey {
			n++
		}
	}
	return n, nil
}

func (s *memStore) ListActivePlayers(ctx context.Context, teamID int64, asOf time.Time) ([]models.TeamMember, error) {
	var out []models.TeamMember
	for _, m := range s.members {
		if m.TeamID == teamID && m.Role == models.MemberRolePlayer && m.Status == models.MemberStatusActive && isCurrent(m, asOf) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *memStore) ListActiveAssignments(ctx context.Context, teamID int64, asOf time.Time) ([]models.ActiveAssignment, error) {
	var out []models.ActiveAssignment
	for _, a := range s.assignments {
		if !a.IsActive {
			continue
		}
		m, ok := s.memberByID(a.TeamMemberID)
		if !ok || m.TeamID != teamID || m.Role != models.MemberRolePlayer || !isCurrent(m, asOf) {
			continue
		}
		out = append(out, models.ActiveAssignment{
			AssignmentID:       a.ID,
			TeamMemberID:       m.ID,
			UserID:             m.UserID,
			Position:           a.Position,
			JerseyNumber:       a.JerseyNumber,
			MemberJerseyNumber: m.JerseyNumber,
		})
	}
	return out, nil
}

func (s *memStore) ListRoster(ctx context.Context, teamID int64, includeFormer bool, asOf time.Time) ([]models.TeamMember, error) {
	var out []models.TeamMember
	for _, m := range s.members {
		if m.TeamID == teamID && (includeFormer || isCurrent(m, asOf)) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *memStore) CountRosterSlotsUsed(ctx context.Context, teamID int64, asOf time.Time) (int64, error) {
	var n int64
	for _, m := range s.members {
		if m.TeamID == teamID && m.Role == models.MemberRolePlayer && m.TeamPriority != models.TeamPriorityGuest && isCurrent(m, asOf) {
			n++
		}
	}
	return n, nil
}

func (s *memStore) UpsertAttendance(ctx context.Context, a models.Attendance) error {
	if _, ok := s.memberByID(a.TeamMemberID); !ok {
		return fmt.Errorf("insert attendance: foreign key violation on team_member_id %d", a.TeamMemberID)
	}
	s.attendance[[2]int64{a.EventID, a.TeamMemberID}] = a
	return nil
}

func (s *memStore) InsertChangeLog(ctx context.Context, memberID, actorID int64, change models.FieldChange, at time.Time) error {
	if err := s.check("InsertChangeLog"); err != nil {
		return err
	}
	s.changes = append(s.changes, models.ChangeLogEntry{
		ID:        s.id(),
		EntityID:  memberID,
		ActorID:   actorID,
		FieldName: change.FieldName,
		OldValue:  change.OldValue,
		NewValue:  change.NewValue,
		ChangedAt: at,
	})
	return nil
}

func (s *memStore) ListChangeLog(ctx context.Context, memberID int64) ([]models.ChangeLogEntry, error) {
	var out []models.ChangeLogEntry
	for _, c := range s.changes {
		if c.EntityID == memberID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *memStore) EnqueueEvent(ctx context.Context, ev outbox.Event) error {
	if err := s.check("EnqueueEvent"); err != nil {
		return err
	}
	s.events = append(s.events, ev)
	return nil
}

// helpers used by the tests

func (s *memStore) currentMembers(teamID, userID int64, asOf time.Time) int {
	n := 0
	for _, m := range s.members {
		if m.TeamID == teamID && m.UserID == userID && isCurrent(m, asOf) {
			n++
		}
	}
	return n
}

func (s *memStore) assignmentRows(memberID int64) (active, total int) {
	for _, a := range s.assignments {
		if a.TeamMemberID == memberID {
			total++
			if a.IsActive {
				active++
			}
		}
	}
	return active, total
}
