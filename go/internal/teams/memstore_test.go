package teams

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/mcdev12/rosterdesk/go/internal/apperr"
	"github.com/mcdev12/rosterdesk/go/internal/models"
	"github.com/mcdev12/rosterdesk/go/internal/outbox"
)

var errInjected = errors.New("injected store failure")

type scheduledEvent struct {
	teamID    int64
	startsAt  time.Time
	cancelled bool
}

// memStore is an in-memory TeamStore whose InTx restores state on error
type memStore struct {
	teams    map[int64]models.Team
	members  []models.TeamMember
	schedule []scheduledEvent
	audit    []models.ChangeLogEntry
	events   []outbox.Event
	nextID   int64

	failOn map[string]bool
	inTx   bool
}

func newMemStore(teams ...models.Team) *memStore {
	s := &memStore{
		teams:  make(map[int64]models.Team),
		failOn: make(map[string]bool),
		nextID: 100,
	}
	for _, t := range teams {
		s.teams[t.ID] = t
	}
	return s
}

type memSnapshot struct {
	teams    map[int64]models.Team
	members  []models.TeamMember
	schedule []scheduledEvent
	audit    []models.ChangeLogEntry
	events   []outbox.Event
	nextID   int64
}

func (s *memStore) snapshot() memSnapshot {
	return memSnapshot{
		teams:    maps.Clone(s.teams),
		members:  slices.Clone(s.members),
		schedule: slices.Clone(s.schedule),
		audit:    slices.Clone(s.audit),
		events:   slices.Clone(s.events),
		nextID:   s.nextID,
	}
}

func (s *memStore) restore(snap memSnapshot) {
	s.teams = snap.teams
	s.members = snap.members
	s.schedule = snap.schedule
	s.audit = snap.audit
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

func (s *memStore) InTx(ctx context.Context, fn func(TeamStore) error) error {
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

func (s *memStore) GetTeam(ctx context.Context, id int64) (*models.Team, error) {
	if err := s.check("GetTeam"); err != nil {
		return nil, err
	}
	t, ok := s.teams[id]
	if !ok {
		return nil, fmt.Errorf("team %d: %w", id, apperr.ErrNotFound)
	}
	return &t, nil
}

func (s *memStore) GetTeamsByIDs(ctx context.Context, ids []int64) ([]models.Team, error) {
	if err := s.check("GetTeamsByIDs"); err != nil {
		return nil, err
	}
	var out []models.Team
	for _, id := range ids {
		if t, ok := s.teams[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *memStore) ListTeams(ctx context.Context, seasonID int64, includeArchived bool) ([]models.Team, error) {
	out := []models.Team{}
	for _, t := range s.teams {
		if t.SeasonID != seasonID || (t.Archived() && !includeArchived) {
			continue
		}
		out = append(out, t)
	}
	slices.SortFunc(out, func(a, b models.Team) int { return strings.Compare(a.Name, b.Name) })
	return out, nil
}

func (s *memStore) CountTeamsWithName(ctx context.Context, seasonID int64, name string, excludeID int64) (int64, error) {
	var n int64
	for _, t := range s.teams {
		if t.SeasonID == seasonID && strings.EqualFold(t.Name, name) && !t.Archived() && t.ID != excludeID {
			n++
		}
	}
	return n, nil
}

func (s *memStore) InsertTeam(ctx context.Context, t models.Team) (*models.Team, error) {
	if err := s.check("InsertTeam"); err != nil {
		return nil, err
	}
	t.ID = s.id()
	s.teams[t.ID] = t
	return &t, nil
}

func (s *memStore) UpdateTeam(ctx context.Context, t models.Team) (*models.Team, error) {
	if err := s.check("UpdateTeam"); err != nil {
		return nil, err
	}
	current, ok := s.teams[t.ID]
	if !ok {
		return nil, fmt.Errorf("team %d: %w", t.ID, apperr.ErrNotFound)
	}
	t.CreatedAt = current.CreatedAt
	s.teams[t.ID] = t
	return &t, nil
}

func (s *memStore) SoftDeleteTeam(ctx context.Context, id int64, del Deletion) (bool, error) {
	if err := s.check("SoftDeleteTeam"); err != nil {
		return false, err
	}
	t, ok := s.teams[id]
	if !ok || t.Archived() {
		return false, nil
	}
	t.DeletedAt = &del.At
	t.DeletedReason = del.Reason
	t.DeletedBy = &del.ActorID
	s.teams[id] = t
	return true, nil
}

func (s *memStore) UpdatePrimaryCoach(ctx context.Context, id int64, coachID *int64, actorID int64, at time.Time) error {
	if err := s.check("UpdatePrimaryCoach"); err != nil {
		return err
	}
	t, ok := s.teams[id]
	if !ok {
		return fmt.Errorf("team %d: %w", id, apperr.ErrNotFound)
	}
	t.PrimaryCoachID = coachID
	t.UpdatedAt = at
	t.UpdatedBy = &actorID
	s.teams[id] = t
	return nil
}

func (s *memStore) UpdateDivision(ctx context.Context, ids []int64, division models.Division, actorID int64, at time.Time) (int64, error) {
	if err := s.check("UpdateDivision"); err != nil {
		return 0, err
	}
	var n int64
	for _, id := range ids {
		t, ok := s.teams[id]
		if !ok || t.Archived() {
			continue
		}
		t.Division = division
		t.UpdatedAt = at
		t.UpdatedBy = &actorID
		s.teams[id] = t
		n++
	}
	return n, nil
}

func (s *memStore) CountActiveMembers(ctx context.Context, teamID int64, asOf time.Time) (int64, error) {
	var n int64
	for _, m := range s.members {
		if m.TeamID == teamID && isCurrent(m, asOf) {
			n++
		}
	}
	return n, nil
}

func (s *memStore) CountUpcomingEvents(ctx context.Context, teamID int64, after time.Time) (int64, error) {
	var n int64
	for _, e := range s.schedule {
		if e.teamID == teamID && !e.cancelled && e.startsAt.After(after) {
			n++
		}
	}
	return n, nil
}

func (s *memStore) ListCoachTeamsInSeason(ctx context.Context, coachID, seasonID, excludeTeamID int64) ([]models.Team, error) {
	var out []models.Team
	for _, t := range s.teams {
		if t.ID == excludeTeamID || t.SeasonID != seasonID || t.Archived() {
			continue
		}
		if t.PrimaryCoachID != nil && *t.PrimaryCoachID == coachID {
			out = append(out, t)
		}
	}
	slices.SortFunc(out, func(a, b models.Team) int { return int(a.ID - b.ID) })
	return out, nil
}

func (s *memStore) GetActiveMembership(ctx context.Context, teamID, userID int64, asOf time.Time) (*models.TeamMember, error) {
	for _, m := range s.members {
		if m.TeamID == teamID && m.UserID == userID && isCurrent(m, asOf) {
			return &m, nil
		}
	}
	return nil, fmt.Errorf("membership team=%d user=%d: %w", teamID, userID, apperr.ErrNotFound)
}

func (s *memStore) InsertMembership(ctx context.Context, m models.TeamMember) (*models.TeamMember, error) {
	if err := s.check("InsertMembership"); err != nil {
		return nil, err
	}
	m.ID = s.id()
	s.members = append(s.members, m)
	return &m, nil
}

func (s *memStore) EndAssistantCoach(ctx context.Context, teamID, coachID int64, del Deletion) (bool, error) {
	for i, m := range s.members {
		if m.TeamID == teamID && m.UserID == coachID && m.Role == models.MemberRoleAssistantCoach && isCurrent(m, del.At) {
			s.members[i].LeaveDate = &del.At
			s.members[i].LeaveReason = del.Reason
			s.members[i].RemovedBy = &del.ActorID
			return true, nil
		}
	}
	return false, nil
}

func (s *memStore) InsertAuditLog(ctx context.Context, teamID, actorID int64, change models.FieldChange, at time.Time) error {
	if err := s.check("InsertAuditLog"); err != nil {
		return err
	}
	s.audit = append(s.audit, models.ChangeLogEntry{
		ID:        s.id(),
		EntityID:  teamID,
		ActorID:   actorID,
		FieldName: change.FieldName,
		OldValue:  change.OldValue,
		NewValue:  change.NewValue,
		ChangedAt: at,
	})
	return nil
}

func (s *memStore) ListAuditLog(ctx context.Context, teamID int64) ([]models.ChangeLogEntry, error) {
	out := []models.ChangeLogEntry{}
	for _, e := range s.audit {
		if e.EntityID == teamID {
			out = append(out, e)
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

func (s *memStore) auditFor(teamID int64) []models.ChangeLogEntry {
	entries, _ := s.ListAuditLog(context.Background(), teamID)
	return entries
}
