package roster

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/rosterdesk/go/internal/apperr"
	"github.com/mcdev12/rosterdesk/go/internal/models"
	"github.com/mcdev12/rosterdesk/go/internal/outbox"
	"github.com/mcdev12/rosterdesk/go/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	teamID  = int64(1)
	actorID = int64(900)
)

var today = time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func newTestApp(t *testing.T, teams ...models.Team) (*App, *memStore) {
	t.Helper()
	if len(teams) == 0 {
		teams = []models.Team{{ID: teamID, Name: "Hornets", SeasonID: 3, AgeGroup: models.AgeGroupU12, Division: models.DivisionCompetitive}}
	}
	store := newMemStore(teams...)
	clock := clockwork.NewFakeClockAt(today.Add(15 * time.Hour))
	return NewApp(store, DefaultRules(), clock, validation.New()), store
}

func player(userID int64, jersey int, primary string, positions ...string) AddPlayerRequest {
	return AddPlayerRequest{
		UserID:          userID,
		JerseyNumber:    ptr(jersey),
		Positions:       positions,
		PrimaryPosition: ptr(primary),
	}
}

func TestAddPlayerCreatesSingleCurrentMembership(t *testing.T) {
	app, store := newTestApp(t)
	ctx := context.Background()

	id, err := app.AddPlayer(ctx, actorID, teamID, player(10, 7, "FWD", "FWD", "MID"))
	require.NoError(t, err)
	assert.NotZero(t, id)
	assert.Equal(t, 1, store.currentMembers(teamID, 10, today))

	m, _ := store.memberByID(id)
	assert.Equal(t, models.TeamPriorityPrimary, m.TeamPriority)
	assert.Equal(t, models.MemberStatusActive, m.Status)
	assert.Equal(t, today, m.JoinDate)

	active, total := store.assignmentRows(id)
	assert.Equal(t, 2, active)
	assert.Equal(t, 2, total)

	require.Len(t, store.events, 1)
	assert.Equal(t, outbox.EventPlayerAdded, store.events[0].Type)
	require.Len(t, store.changes, 1)
	assert.Equal(t, "membership", store.changes[0].FieldName)
	assert.Equal(t, actorID, store.changes[0].ActorID)

	// second add of the same person is a conflict and writes nothing
	_, err = app.AddPlayer(ctx, actorID, teamID, player(10, 8, "MID", "MID"))
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	assert.ErrorIs(t, err, apperr.ErrDuplicateMembership)
	assert.Equal(t, 1, store.currentMembers(teamID, 10, today))
	assert.Len(t, store.members, 1)
	assert.Len(t, store.events, 1)
}

func TestAddPlayerUsesSuppliedAssignments(t *testing.T) {
	app, store := newTestApp(t)

	req := player(11, 4, "DEF", "DEF", "MID")
	req.PositionAssignments = []PositionJersey{{Position: "DEF", JerseyNumber: ptr(14)}}
	id, err := app.AddPlayer(context.Background(), actorID, teamID, req)
	require.NoError(t, err)

	active, _ := store.assignmentRows(id)
	assert.Equal(t, 1, active)
	assert.Equal(t, ptr(14), store.assignments[0].JerseyNumber)
}

func TestAddPlayerRollsBackOnAssignmentFailure(t *testing.T) {
	app, store := newTestApp(t)
	store.failOn["InsertAssignment"] = true

	_, err := app.AddPlayer(context.Background(), actorID, teamID, player(12, 9, "GK", "GK"))
	require.Error(t, err)
	assert.Equal(t, apperr.KindTransaction, apperr.KindOf(err))
	assert.Equal(t, "add player failed", err.Error())
	assert.ErrorIs(t, err, errInjected)

	assert.Empty(t, store.members)
	assert.Empty(t, store.assignments)
	assert.Empty(t, store.changes)
	assert.Empty(t, store.events)
}

func TestAddPlayerValidation(t *testing.T) {
	app, store := newTestApp(t)

	req := AddPlayerRequest{
		JerseyNumber:    ptr(120),
		Positions:       []string{"GK", "GK"},
		PrimaryPosition: ptr("FWD"),
		TeamPriority:    "captain",
	}
	_, err := app.AddPlayer(context.Background(), actorID, teamID, req)

	var verr *apperr.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "user_id")
	assert.Contains(t, verr.Fields, "positions")
	assert.Contains(t, verr.Fields, "team_priority")
	assert.Contains(t, verr.Fields, "primary_position")
	assert.Equal(t, []string{"must be between 0 and 99"}, verr.Fields["jersey_number"])
	assert.Empty(t, store.members)
}

func TestAddPlayerRejectsJerseyConflict(t *testing.T) {
	app, store := newTestApp(t)
	ctx := context.Background()

	_, err := app.AddPlayer(ctx, actorID, teamID, player(20, 10, "FWD", "FWD"))
	require.NoError(t, err)

	_, err = app.AddPlayer(ctx, actorID, teamID, player(21, 10, "FWD", "FWD", "MID"))
	var cerr *apperr.ConflictError
	require.ErrorAs(t, err, &cerr)
	assert.ErrorIs(t, err, apperr.ErrJerseyConflict)
	assert.Equal(t, []string{"Jersey #10 is already assigned for position FWD"}, cerr.Messages)
	assert.Equal(t, 0, store.currentMembers(teamID, 21, today))

	// same number at another position is fine
	_, err = app.AddPlayer(ctx, actorID, teamID, player(21, 10, "MID", "MID"))
	require.NoError(t, err)
}

func TestAddPlayerRosterLimit(t *testing.T) {
	app, _ := newTestApp(t, models.Team{ID: teamID, Name: "Small", SeasonID: 3, MaxPlayers: 1})
	ctx := context.Background()

	_, err := app.AddPlayer(ctx, actorID, teamID, player(30, 1, "GK", "GK"))
	require.NoError(t, err)

	_, err = app.AddPlayer(ctx, actorID, teamID, player(31, 2, "DEF", "DEF"))
	assert.ErrorIs(t, err, apperr.ErrRosterFull)

	// guests do not take a roster slot
	_, err = app.AddGuestPlayer(ctx, actorID, teamID, AddGuestPlayerRequest{AddPlayerRequest: player(32, 3, "DEF", "DEF")})
	require.NoError(t, err)
}

func TestAddPlayerToArchivedOrMissingTeam(t *testing.T) {
	archivedAt := today.Add(-24 * time.Hour)
	app, _ := newTestApp(t, models.Team{ID: teamID, Name: "Old", SeasonID: 1, DeletedAt: &archivedAt})
	ctx := context.Background()

	_, err := app.AddPlayer(ctx, actorID, teamID, player(40, 1, "GK", "GK"))
	assert.ErrorIs(t, err, apperr.ErrAlreadyArchived)

	_, err = app.AddPlayer(ctx, actorID, 77, player(40, 1, "GK", "GK"))
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestAddGuestPlayer(t *testing.T) {
	app, store := newTestApp(t)
	validUntil := today.AddDate(0, 0, 10)

	req := AddGuestPlayerRequest{
		AddPlayerRequest: player(50, 22, "MID", "MID"),
		ValidUntil:       &validUntil,
		GameIDs:          []int64{501, 502},
	}
	req.TeamPriority = models.TeamPriorityPrimary // forced to guest
	req.GuestPlayerAgreementID = ptr(int64(8))

	id, err := app.AddGuestPlayer(context.Background(), actorID, teamID, req)
	require.NoError(t, err)

	m, _ := store.memberByID(id)
	assert.Equal(t, models.TeamPriorityGuest, m.TeamPriority)
	require.NotNil(t, m.LeaveDate)
	assert.Equal(t, validUntil, *m.LeaveDate)
	assert.Equal(t, ptr(int64(8)), m.GuestPlayerAgreementID)
	assert.Len(t, store.guestGames, 2)

	report, err := app.PositionCoverage(context.Background(), teamID)
	require.NoError(t, err)
	assert.Len(t, report.PositionCoverage["MID"].GuestPlayers, 1)
	assert.Equal(t, []CoverageShortfall{{Position: "MID", Current: 0, Needed: 2}}, report.PositionsNeedingCoverage)
}

func TestAddGuestPlayerRejectsExpiredValidity(t *testing.T) {
	for name, validUntil := range map[string]time.Time{
		"yesterday": today.AddDate(0, 0, -1),
		"today":     today,
	} {
		t.Run(name, func(t *testing.T) {
			app, store := newTestApp(t)

			_, err := app.AddGuestPlayer(context.Background(), actorID, teamID, AddGuestPlayerRequest{
				AddPlayerRequest: player(51, 5, "GK", "GK"),
				ValidUntil:       &validUntil,
			})
			var verr *apperr.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, "valid_until")
			assert.Empty(t, store.members)
		})
	}
}

func TestAddGuestPlayerValidUntilTomorrowIsCurrent(t *testing.T) {
	app, _ := newTestApp(t)
	ctx := context.Background()
	tomorrow := today.AddDate(0, 0, 1)

	_, err := app.AddGuestPlayer(ctx, actorID, teamID, AddGuestPlayerRequest{
		AddPlayerRequest: player(52, 6, "GK", "GK"),
		ValidUntil:       &tomorrow,
	})
	require.NoError(t, err)

	roster, err := app.GetRoster(ctx, teamID, false)
	require.NoError(t, err)
	assert.Len(t, roster, 1)

	removed, err := app.RemovePlayer(ctx, actorID, teamID, 52, nil)
	require.NoError(t, err)
	assert.True(t, removed)
}

func TestUpdatePlayerPositionsReplacesAssignments(t *testing.T) {
	app, store := newTestApp(t)
	ctx := context.Background()

	id, err := app.AddPlayer(ctx, actorID, teamID, player(60, 6, "DEF", "DEF", "MID"))
	require.NoError(t, err)

	res, err := app.UpdatePlayerPositions(ctx, actorID, teamID, 60, UpdatePositionsRequest{
		Positions:       []string{"MID", "FWD", "DEF"},
		PrimaryPosition: ptr("FWD"),
	})
	require.NoError(t, err)
	assert.Equal(t, id, res.MemberID)
	assert.Equal(t, 3, res.ActiveAssignments)
	assert.Equal(t, []string{"DEF", "MID"}, res.OldPositions)

	active, total := store.assignmentRows(id)
	assert.Equal(t, 3, active)
	assert.Equal(t, 5, total, "old rows are deactivated, not deleted")

	m, _ := store.memberByID(id)
	assert.Equal(t, []string{"MID", "FWD", "DEF"}, m.Positions)
	assert.Equal(t, ptr(6), m.JerseyNumber, "omitted jersey keeps the stored one")

	log, err := app.GetChangeLog(ctx, id)
	require.NoError(t, err)
	require.Len(t, log, 3)
	assert.Equal(t, "positions", log[1].FieldName)
	assert.Equal(t, `["DEF","MID"]`, *log[1].OldValue)
	assert.Equal(t, `["MID","FWD","DEF"]`, *log[1].NewValue)
	assert.Equal(t, "primary_position", log[2].FieldName)

	assert.Equal(t, outbox.EventPositionsUpdated, store.events[len(store.events)-1].Type)
}

func TestUpdatePlayerPositionsUsesOldSnapshot(t *testing.T) {
	app, store := newTestApp(t)
	ctx := context.Background()

	_, err := app.AddPlayer(ctx, actorID, teamID, player(61, 3, "GK", "GK"))
	require.NoError(t, err)

	res, err := app.UpdatePlayerPositions(ctx, actorID, teamID, 61, UpdatePositionsRequest{
		Positions:    []string{"GK", "DEF"},
		OldPositions: []string{"GK", "SUB"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"GK", "SUB"}, res.OldPositions)
	assert.Equal(t, `["GK","SUB"]`, *store.changes[len(store.changes)-1].OldValue)
}

func TestUpdatePlayerPositionsIsAtomic(t *testing.T) {
	app, store := newTestApp(t)
	ctx := context.Background()

	id, err := app.AddPlayer(ctx, actorID, teamID, player(62, 2, "DEF", "DEF"))
	require.NoError(t, err)

	store.failOn["InsertChangeLog"] = true
	_, err = app.UpdatePlayerPositions(ctx, actorID, teamID, 62, UpdatePositionsRequest{Positions: []string{"MID"}})
	require.Error(t, err)
	assert.Equal(t, apperr.KindTransaction, apperr.KindOf(err))

	active, total := store.assignmentRows(id)
	assert.Equal(t, 1, active)
	assert.Equal(t, 1, total)
	m, _ := store.memberByID(id)
	assert.Equal(t, []string{"DEF"}, m.Positions)
}

func TestUpdatePlayerPositionsNotFound(t *testing.T) {
	app, _ := newTestApp(t)

	_, err := app.UpdatePlayerPositions(context.Background(), actorID, teamID, 999, UpdatePositionsRequest{Positions: []string{"GK"}})
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestUpdatePlayerPositionsSkipsAssistantCoaches(t *testing.T) {
	app, store := newTestApp(t)
	store.members = append(store.members, models.TeamMember{
		ID: 60, TeamID: teamID, UserID: 61, Role: models.MemberRoleAssistantCoach, JoinDate: today,
	})

	_, err := app.UpdatePlayerPositions(context.Background(), actorID, teamID, 61, UpdatePositionsRequest{Positions: []string{"GK"}})
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	m, _ := store.memberByID(60)
	assert.Empty(t, m.Positions)
	active, total := store.assignmentRows(60)
	assert.Zero(t, active)
	assert.Zero(t, total)
}

func TestUpdatePlayerPositionsIgnoresOwnJersey(t *testing.T) {
	app, _ := newTestApp(t)
	ctx := context.Background()

	_, err := app.AddPlayer(ctx, actorID, teamID, player(63, 9, "FWD", "FWD"))
	require.NoError(t, err)

	_, err = app.UpdatePlayerPositions(ctx, actorID, teamID, 63, UpdatePositionsRequest{Positions: []string{"FWD", "MID"}})
	require.NoError(t, err)
}

func TestRemovePlayer(t *testing.T) {
	app, store := newTestApp(t)
	ctx := context.Background()

	id, err := app.AddPlayer(ctx, actorID, teamID, player(70, 11, "MID", "MID"))
	require.NoError(t, err)

	removed, err := app.RemovePlayer(ctx, actorID, teamID, 70, ptr("moved away"))
	require.NoError(t, err)
	assert.True(t, removed)

	m, _ := store.memberByID(id)
	require.NotNil(t, m.LeaveDate)
	assert.Equal(t, today, *m.LeaveDate)
	assert.Equal(t, ptr("moved away"), m.LeaveReason)
	assert.Equal(t, ptr(actorID), m.RemovedBy)
	assert.Equal(t, outbox.EventPlayerRemoved, store.events[len(store.events)-1].Type)

	// second call is a no-op
	removed, err = app.RemovePlayer(ctx, actorID, teamID, 70, nil)
	require.NoError(t, err)
	assert.False(t, removed)

	// rejoining creates a new entry
	newID, err := app.AddPlayer(ctx, actorID, teamID, player(70, 11, "MID", "MID"))
	require.NoError(t, err)
	assert.NotEqual(t, id, newID)

	roster, err := app.GetRoster(ctx, teamID, false)
	require.NoError(t, err)
	assert.Len(t, roster, 1)
	roster, err = app.GetRoster(ctx, teamID, true)
	require.NoError(t, err)
	assert.Len(t, roster, 2)
}

func TestCheckJerseyConflicts(t *testing.T) {
	app, store := newTestApp(t)
	ctx := context.Background()

	// two current members sharing FWD #10, written directly to the store
	for _, userID := range []int64{80, 81} {
		m, err := store.InsertMembership(ctx, models.TeamMember{
			TeamID: teamID, UserID: userID, Role: models.MemberRolePlayer,
			TeamPriority: models.TeamPriorityPrimary, Status: models.MemberStatusActive,
			Positions: []string{"FWD"}, JoinDate: today,
		})
		require.NoError(t, err)
		_, err = store.InsertAssignment(ctx, m.ID, PositionJersey{Position: "FWD", JerseyNumber: ptr(10)}, today)
		require.NoError(t, err)
	}

	pairs := []PositionJersey{{Position: "FWD", JerseyNumber: ptr(10)}, {Position: "GK", JerseyNumber: ptr(10)}}
	msgs, err := app.CheckJerseyConflicts(ctx, teamID, 80, pairs)
	require.NoError(t, err)
	assert.Equal(t, []string{"Jersey #10 is already assigned for position FWD"}, msgs)

	report, err := app.JerseyReport(ctx, teamID)
	require.NoError(t, err)
	require.Len(t, report.Conflicts, 1)
	assert.Len(t, report.Conflicts[0].Players, 2)

	// deactivate the other member's row
	_, err = store.DeactivateAssignments(ctx, store.members[1].ID)
	require.NoError(t, err)

	msgs, err = app.CheckJerseyConflicts(ctx, teamID, 80, pairs)
	require.NoError(t, err)
	assert.Empty(t, msgs)

	// a newcomer still collides with member 80
	msgs, err = app.CheckJerseyConflicts(ctx, teamID, 0, pairs)
	require.NoError(t, err)
	assert.Len(t, msgs, 1)
	assert.Empty(t, store.events, "advisory check writes nothing")
}

func TestPositionCoverageScenario(t *testing.T) {
	app, _ := newTestApp(t)
	ctx := context.Background()

	id, err := app.AddPlayer(ctx, actorID, teamID, player(1, 1, "GK", "GK", "DEF"))
	require.NoError(t, err)

	report, err := app.PositionCoverage(ctx, teamID)
	require.NoError(t, err)

	p1 := PlayerRef{MemberID: id, UserID: 1, JerseyNumber: ptr(1)}
	assert.Equal(t, []PlayerRef{p1}, report.PositionCoverage["GK"].PrimaryPlayers)
	assert.Equal(t, []PlayerRef{p1}, report.PositionCoverage["DEF"].SecondaryPlayers)
	assert.Empty(t, report.PositionCoverage["DEF"].PrimaryPlayers)
	assert.Equal(t, []CoverageShortfall{
		{Position: "DEF", Current: 1, Needed: 1},
		{Position: "GK", Current: 1, Needed: 1},
	}, report.PositionsNeedingCoverage)
}

func TestRecordAttendance(t *testing.T) {
	app, store := newTestApp(t)
	ctx := context.Background()

	id, err := app.AddPlayer(ctx, actorID, teamID, player(90, 5, "GK", "GK"))
	require.NoError(t, err)

	res, err := app.RecordAttendance(ctx, actorID, []AttendanceRecord{
		{EventID: 1, TeamMemberID: id, Status: models.AttendancePresent},
		{EventID: 1, TeamMemberID: 4040, Status: models.AttendanceLate},
		{EventID: 2, TeamMemberID: id, Status: "asleep"},
		{EventID: 1, TeamMemberID: id, Status: models.AttendanceExcused, Notes: ptr("dentist")},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Recorded)
	require.Len(t, res.Failures, 2)
	assert.Equal(t, 1, res.Failures[0].Index)
	assert.Equal(t, "failed to record attendance", res.Failures[0].Error)
	assert.Equal(t, 2, res.Failures[1].Index)

	rec := store.attendance[[2]int64{1, id}]
	assert.Equal(t, models.AttendanceExcused, rec.Status)
	assert.Equal(t, ptr("dentist"), rec.Notes)
	assert.Equal(t, actorID, rec.RecordedBy)

	_, err = app.RecordAttendance(ctx, actorID, nil)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}
