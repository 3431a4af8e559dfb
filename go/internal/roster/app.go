package roster

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/rosterdesk/go/internal/apperr"
	"github.com/mcdev12/rosterdesk/go/internal/models"
	"github.com/mcdev12/rosterdesk/go/internal/outbox"
	"github.com/mcdev12/rosterdesk/go/internal/sqlutil"
	"github.com/mcdev12/rosterdesk/go/internal/validation"
	"github.com/rs/zerolog/log"
)

// RosterStore defines what the app layer needs from persistence.
// "Current" membership means leave_date is null or after asOf.
type RosterStore interface {
	GetTeam(ctx context.Context, teamID int64) (*models.Team, error)
	GetActiveMembership(ctx context.Context, teamID, userID int64, asOf time.Time) (*models.TeamMember, error)
	InsertMembership(ctx context.Context, m models.TeamMember) (*models.TeamMember, error)
	UpdateMembershipPositions(ctx context.Context, upd MembershipPositions, asOf time.Time) (*models.TeamMember, error)
	EndMembership(ctx context.Context, teamID, userID int64, role models.MemberRole, leave Leave) (*models.TeamMember, error)
	DeactivateAssignments(ctx context.Context, memberID int64) (int64, error)
	InsertAssignment(ctx context.Context, memberID int64, pj PositionJersey, assigned time.Time) (*models.PlayerPositionAssignment, error)
	CountActiveAssignments(ctx context.Context, memberID int64) (int64, error)
	InsertGuestGame(ctx context.Context, memberID, gameID int64) error
	CountJerseyConflicts(ctx context.Context, teamID int64, position string, jersey int, asOf time.Time, excludeUserID int64) (int64, error)
	ListActivePlayers(ctx context.Context, teamID int64, asOf time.Time) ([]models.TeamMember, error)
	ListActiveAssignments(ctx context.Context, teamID int64, asOf time.Time) ([]models.ActiveAssignment, error)
	ListRoster(ctx context.Context, teamID int64, includeFormer bool, asOf time.Time) ([]models.TeamMember, error)
	CountRosterSlotsUsed(ctx context.Context, teamID int64, asOf time.Time) (int64, error)
	UpsertAttendance(ctx context.Context, a models.Attendance) error
	InsertChangeLog(ctx context.Context, memberID, actorID int64, change models.FieldChange, at time.Time) error
	ListChangeLog(ctx context.Context, memberID int64) ([]models.ChangeLogEntry, error)
	EnqueueEvent(ctx context.Context, ev outbox.Event) error

	// InTx runs fn against a store bound to one transaction. Any error from fn
	// rolls back everything fn wrote.
	InTx(ctx context.Context, fn func(RosterStore) error) error
}

// Rules are the league-wide limits the engine enforces
type Rules struct {
	JerseyMin       int
	JerseyMax       int
	CoverageMinimum int
}

func DefaultRules() Rules {
	return Rules{JerseyMin: 0, JerseyMax: 99, CoverageMinimum: 2}
}

// App handles roster business logic
type App struct {
	store    RosterStore
	rules    Rules
	clock    clockwork.Clock
	validate *validator.Validate
}

// NewApp creates a new roster App
func NewApp(store RosterStore, rules Rules, clock clockwork.Clock, validate *validator.Validate) *App {
	return &App{
		store:    store,
		rules:    rules,
		clock:    clock,
		validate: validate,
	}
}

// guestScope carries what only guest additions set
type guestScope struct {
	validUntil *time.Time
	gameIDs    []int64
}

// AddPlayer creates a membership and its position assignments in one transaction
func (a *App) AddPlayer(ctx context.Context, actorID, teamID int64, req AddPlayerRequest) (int64, error) {
	verr := validation.Struct(a.validate, req)
	verr.Merge(a.validatePlayerFields(req.Positions, req.PrimaryPosition, req.JerseyNumber, req.JerseyNumberAlt, req.PositionAssignments))
	if !verr.Empty() {
		return 0, verr
	}
	return a.addMember(ctx, actorID, teamID, req, nil)
}

// AddGuestPlayer adds a guest scoped to the listed games. The membership ends
// on valid_until when one is given.
func (a *App) AddGuestPlayer(ctx context.Context, actorID, teamID int64, req AddGuestPlayerRequest) (int64, error) {
	req.TeamPriority = models.TeamPriorityGuest

	verr := validation.Struct(a.validate, req.AddPlayerRequest)
	verr.Merge(validation.Struct(a.validate, req))
	verr.Merge(a.validatePlayerFields(req.Positions, req.PrimaryPosition, req.JerseyNumber, req.JerseyNumberAlt, req.PositionAssignments))
	// leave_date is exclusive, so a guest valid only until today would never be current
	if req.ValidUntil != nil && !sqlutil.DateOf(*req.ValidUntil).After(a.today()) {
		verr.Add("valid_until", "must be after today")
	}
	if !verr.Empty() {
		return 0, verr
	}

	return a.addMember(ctx, actorID, teamID, req.AddPlayerRequest, &guestScope{
		validUntil: req.ValidUntil,
		gameIDs:    req.GameIDs,
	})
}

func (a *App) addMember(ctx context.Context, actorID, teamID int64, req AddPlayerRequest, guest *guestScope) (int64, error) {
	today := a.today()
	now := a.now()

	tier := req.TeamPriority
	if tier == "" {
		tier = models.TeamPriorityPrimary
	}
	status := req.Status
	if status == "" {
		status = models.MemberStatusActive
	}
	assignments := effectiveAssignments(req.Positions, req.PositionAssignments, req.JerseyNumber)

	var member *models.TeamMember
	err := a.store.InTx(ctx, func(s RosterStore) error {
		team, err := s.GetTeam(ctx, teamID)
		if err != nil {
			return err
		}
		if team.Archived() {
			return apperr.NewConflict(apperr.ErrAlreadyArchived, fmt.Sprintf("team %d is archived", teamID))
		}

		_, err = s.GetActiveMembership(ctx, teamID, req.UserID, today)
		if err == nil {
			return apperr.NewConflict(apperr.ErrDuplicateMembership,
				fmt.Sprintf("user %d is already on team %d", req.UserID, teamID))
		}
		if !errors.Is(err, apperr.ErrNotFound) {
			return err
		}

		conflicts, err := a.jerseyConflicts(ctx, s, teamID, assignments, req.JerseyNumber, today, req.UserID)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return apperr.NewConflict(apperr.ErrJerseyConflict, conflicts...)
		}

		if tier != models.TeamPriorityGuest && team.MaxPlayers > 0 {
			used, err := s.CountRosterSlotsUsed(ctx, teamID, today)
			if err != nil {
				return err
			}
			if used >= int64(team.MaxPlayers) {
				return apperr.NewConflict(apperr.ErrRosterFull,
					fmt.Sprintf("team %d already has %d of %d players", teamID, used, team.MaxPlayers))
			}
		}

		m := models.TeamMember{
			TeamID:                 teamID,
			UserID:                 req.UserID,
			Role:                   models.MemberRolePlayer,
			TeamPriority:           tier,
			JerseyNumber:           req.JerseyNumber,
			JerseyNumberAlt:        req.JerseyNumberAlt,
			Positions:              req.Positions,
			PrimaryPosition:        req.PrimaryPosition,
			Status:                 status,
			JoinDate:               today,
			GuestPlayerAgreementID: req.GuestPlayerAgreementID,
		}
		if guest != nil && guest.validUntil != nil {
			leave := sqlutil.DateOf(*guest.validUntil)
			m.LeaveDate = &leave
		}

		member, err = s.InsertMembership(ctx, m)
		if err != nil {
			return err
		}

		for _, pj := range assignments {
			if _, err := s.InsertAssignment(ctx, member.ID, pj, today); err != nil {
				return err
			}
		}

		if guest != nil {
			for _, gameID := range guest.gameIDs {
				if err := s.InsertGuestGame(ctx, member.ID, gameID); err != nil {
					return err
				}
			}
		}

		joined := "joined"
		if err := s.InsertChangeLog(ctx, member.ID, actorID, models.FieldChange{FieldName: "membership", NewValue: &joined}, now); err != nil {
			return err
		}

		return a.enqueue(ctx, s, teamID, outbox.EventPlayerAdded, outbox.PlayerAddedPayload{
			TeamID:       teamID,
			UserID:       req.UserID,
			MemberID:     member.ID,
			TeamPriority: string(tier),
			ActorID:      actorID,
		})
	})
	if err != nil {
		return 0, a.fail("add player", err)
	}

	log.Info().
		Int64("team_id", teamID).
		Int64("user_id", req.UserID).
		Int64("member_id", member.ID).
		Int64("actor_id", actorID).
		Str("team_priority", string(tier)).
		Int("assignments", len(assignments)).
		Msg("player added to roster")
	return member.ID, nil
}

// UpdatePlayerPositions rewrites a member's positions. The row update, the
// deactivation of old assignments, the inserts of new ones and the change log
// entry commit together or not at all.
func (a *App) UpdatePlayerPositions(ctx context.Context, actorID, teamID, userID int64, req UpdatePositionsRequest) (*PositionsUpdate, error) {
	verr := validation.Struct(a.validate, req)
	verr.Merge(a.validatePlayerFields(req.Positions, req.PrimaryPosition, req.JerseyNumber, req.JerseyNumberAlt, req.PositionAssignments))
	if !verr.Empty() {
		return nil, verr
	}

	today := a.today()
	now := a.now()

	var result *PositionsUpdate
	err := a.store.InTx(ctx, func(s RosterStore) error {
		current, err := s.GetActiveMembership(ctx, teamID, userID, today)
		if err != nil {
			return err
		}
		if current.Role != models.MemberRolePlayer {
			return fmt.Errorf("player %d on team %d: %w", userID, teamID, apperr.ErrNotFound)
		}

		// omitted jersey numbers keep the stored ones
		jersey := req.JerseyNumber
		if jersey == nil {
			jersey = current.JerseyNumber
		}
		jerseyAlt := req.JerseyNumberAlt
		if jerseyAlt == nil {
			jerseyAlt = current.JerseyNumberAlt
		}
		primary := req.PrimaryPosition
		if primary == nil && current.PrimaryPosition != nil && slices.Contains(req.Positions, *current.PrimaryPosition) {
			primary = current.PrimaryPosition
		}

		assignments := effectiveAssignments(req.Positions, req.PositionAssignments, jersey)
		conflicts, err := a.jerseyConflicts(ctx, s, teamID, assignments, jersey, today, userID)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return apperr.NewConflict(apperr.ErrJerseyConflict, conflicts...)
		}

		updated, err := s.UpdateMembershipPositions(ctx, MembershipPositions{
			TeamID:          teamID,
			UserID:          userID,
			Positions:       req.Positions,
			PrimaryPosition: primary,
			JerseyNumber:    jersey,
			JerseyNumberAlt: jerseyAlt,
		}, today)
		if err != nil {
			return err
		}
		memberID := updated.ID

		if _, err := s.DeactivateAssignments(ctx, memberID); err != nil {
			return err
		}
		for _, pj := range assignments {
			if _, err := s.InsertAssignment(ctx, memberID, pj, today); err != nil {
				return err
			}
		}

		oldPositions := req.OldPositions
		if oldPositions == nil {
			oldPositions = current.Positions
		}
		changes := []models.FieldChange{{
			FieldName: "positions",
			OldValue:  positionsText(oldPositions),
			NewValue:  positionsText(req.Positions),
		}}
		if !sameInt(current.JerseyNumber, jersey) {
			changes = append(changes, models.FieldChange{FieldName: "jersey_number", OldValue: intText(current.JerseyNumber), NewValue: intText(jersey)})
		}
		if !sameString(current.PrimaryPosition, primary) {
			changes = append(changes, models.FieldChange{FieldName: "primary_position", OldValue: current.PrimaryPosition, NewValue: primary})
		}
		for _, c := range changes {
			if err := s.InsertChangeLog(ctx, memberID, actorID, c, now); err != nil {
				return err
			}
		}

		active, err := s.CountActiveAssignments(ctx, memberID)
		if err != nil {
			return err
		}

		result = &PositionsUpdate{
			MemberID:          memberID,
			OldPositions:      oldPositions,
			NewPositions:      req.Positions,
			ActiveAssignments: int(active),
		}

		return a.enqueue(ctx, s, teamID, outbox.EventPositionsUpdated, outbox.PositionsUpdatedPayload{
			TeamID:          teamID,
			UserID:          userID,
			MemberID:        memberID,
			OldPositions:    oldPositions,
			NewPositions:    req.Positions,
			PrimaryPosition: primary,
			ActorID:         actorID,
		})
	})
	if err != nil {
		return nil, a.fail("update player positions", err)
	}

	log.Info().
		Int64("team_id", teamID).
		Int64("user_id", userID).
		Int64("member_id", result.MemberID).
		Int64("actor_id", actorID).
		Strs("positions", result.NewPositions).
		Msg("player positions updated")
	return result, nil
}

// RemovePlayer ends the player's current membership today. It reports false
// when there was no current membership to end.
func (a *App) RemovePlayer(ctx context.Context, actorID, teamID, userID int64, reason *string) (bool, error) {
	today := a.today()
	now := a.now()

	removed := false
	err := a.store.InTx(ctx, func(s RosterStore) error {
		member, err := s.EndMembership(ctx, teamID, userID, models.MemberRolePlayer, Leave{
			Date:    today,
			Reason:  reason,
			ActorID: actorID,
		})
		if errors.Is(err, apperr.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		removed = true

		leaveText := today.Format(time.DateOnly)
		if err := s.InsertChangeLog(ctx, member.ID, actorID, models.FieldChange{FieldName: "leave_date", NewValue: &leaveText}, now); err != nil {
			return err
		}

		return a.enqueue(ctx, s, teamID, outbox.EventPlayerRemoved, outbox.PlayerRemovedPayload{
			TeamID:   teamID,
			UserID:   userID,
			MemberID: member.ID,
			Reason:   reason,
			ActorID:  actorID,
		})
	})
	if err != nil {
		return false, a.fail("remove player", err)
	}

	if removed {
		log.Info().
			Int64("team_id", teamID).
			Int64("user_id", userID).
			Int64("actor_id", actorID).
			Msg("player removed from roster")
	} else {
		log.Debug().Int64("team_id", teamID).Int64("user_id", userID).Msg("no current membership to remove")
	}
	return removed, nil
}

// CheckJerseyConflicts is advisory and writes nothing. Pairs without a jersey
// are skipped. A non-zero excludeUserID ignores that member's own rows, for
// checking an edit before it is made.
func (a *App) CheckJerseyConflicts(ctx context.Context, teamID, excludeUserID int64, pairs []PositionJersey) ([]string, error) {
	if _, err := a.store.GetTeam(ctx, teamID); err != nil {
		return nil, err
	}
	conflicts, err := a.jerseyConflicts(ctx, a.store, teamID, pairs, nil, a.today(), excludeUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to check jersey conflicts: %w", err)
	}
	return conflicts, nil
}

func (a *App) PositionCoverage(ctx context.Context, teamID int64) (*CoverageReport, error) {
	if _, err := a.store.GetTeam(ctx, teamID); err != nil {
		return nil, err
	}
	members, err := a.store.ListActivePlayers(ctx, teamID, a.today())
	if err != nil {
		return nil, fmt.Errorf("failed to load players for coverage: %w", err)
	}
	return buildCoverageReport(teamID, members, a.rules.CoverageMinimum), nil
}

func (a *App) JerseyReport(ctx context.Context, teamID int64) (*JerseyReport, error) {
	if _, err := a.store.GetTeam(ctx, teamID); err != nil {
		return nil, err
	}
	assignments, err := a.store.ListActiveAssignments(ctx, teamID, a.today())
	if err != nil {
		return nil, fmt.Errorf("failed to load assignments for jersey report: %w", err)
	}
	return buildJerseyReport(teamID, assignments, a.rules), nil
}

// RecordAttendance upserts each record on its own
func (a *App) RecordAttendance(ctx context.Context, actorID int64, records []AttendanceRecord) (*AttendanceResult, error) {
	if len(records) == 0 {
		verr := apperr.NewValidationError()
		verr.Add("records", "must contain at least 1 item(s)")
		return nil, verr
	}

	now := a.now()
	result := &AttendanceResult{Failures: []AttendanceFailure{}}
	for i, rec := range records {
		failure := AttendanceFailure{Index: i, EventID: rec.EventID, TeamMemberID: rec.TeamMemberID}

		if verr := validation.Struct(a.validate, rec); !verr.Empty() {
			failure.Error = verr.Error()
			result.Failures = append(result.Failures, failure)
			continue
		}

		err := a.store.UpsertAttendance(ctx, models.Attendance{
			EventID:      rec.EventID,
			TeamMemberID: rec.TeamMemberID,
			Status:       rec.Status,
			Notes:        rec.Notes,
			RecordedBy:   actorID,
			RecordedAt:   now,
		})
		if err != nil {
			log.Error().Err(err).
				Int64("event_id", rec.EventID).
				Int64("member_id", rec.TeamMemberID).
				Msg("failed to record attendance")
			failure.Error = "failed to record attendance"
			result.Failures = append(result.Failures, failure)
			continue
		}
		result.Recorded++
	}

	log.Info().
		Int64("actor_id", actorID).
		Int("recorded", result.Recorded).
		Int("failed", len(result.Failures)).
		Msg("attendance recorded")
	return result, nil
}

func (a *App) GetRoster(ctx context.Context, teamID int64, includeFormer bool) ([]models.TeamMember, error) {
	if _, err := a.store.GetTeam(ctx, teamID); err != nil {
		return nil, err
	}
	members, err := a.store.ListRoster(ctx, teamID, includeFormer, a.today())
	if err != nil {
		return nil, fmt.Errorf("failed to get roster: %w", err)
	}
	return members, nil
}

func (a *App) GetChangeLog(ctx context.Context, memberID int64) ([]models.ChangeLogEntry, error) {
	entries, err := a.store.ListChangeLog(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to get change log: %w", err)
	}
	return entries, nil
}

// validatePlayerFields covers the checks struct tags cannot express
func (a *App) validatePlayerFields(positions []string, primary *string, jersey, jerseyAlt *int, assignments []PositionJersey) *apperr.ValidationError {
	verr := apperr.NewValidationError()

	if primary != nil && !slices.Contains(positions, *primary) {
		verr.Add("primary_position", "must be one of positions")
	}
	a.checkJerseyRange(verr, "jersey_number", jersey)
	a.checkJerseyRange(verr, "jersey_number_alt", jerseyAlt)
	for i, pj := range assignments {
		if pj.Position != "" && !slices.Contains(positions, pj.Position) {
			verr.Add(fmt.Sprintf("position_assignments[%d].position", i), "must be one of positions")
		}
		a.checkJerseyRange(verr, fmt.Sprintf("position_assignments[%d].jersey_number", i), pj.JerseyNumber)
	}
	return verr
}

func (a *App) checkJerseyRange(verr *apperr.ValidationError, field string, jersey *int) {
	if jersey == nil {
		return
	}
	if *jersey < a.rules.JerseyMin || *jersey > a.rules.JerseyMax {
		verr.Add(field, fmt.Sprintf("must be between %d and %d", a.rules.JerseyMin, a.rules.JerseyMax))
	}
}

// jerseyConflicts counts current assignments colliding with each pair.
// A pair without its own jersey uses memberJersey; pairs with neither are skipped.
func (a *App) jerseyConflicts(ctx context.Context, s RosterStore, teamID int64, pairs []PositionJersey, memberJersey *int, asOf time.Time, excludeUserID int64) ([]string, error) {
	conflicts := []string{}
	for _, pj := range pairs {
		jersey := pj.JerseyNumber
		if jersey == nil {
			jersey = memberJersey
		}
		if jersey == nil {
			continue
		}
		n, err := s.CountJerseyConflicts(ctx, teamID, pj.Position, *jersey, asOf, excludeUserID)
		if err != nil {
			return nil, err
		}
		if n > 0 {
			conflicts = append(conflicts, fmt.Sprintf("Jersey #%d is already assigned for position %s", *jersey, pj.Position))
		}
	}
	return conflicts, nil
}

func (a *App) enqueue(ctx context.Context, s RosterStore, teamID int64, typ outbox.EventType, payload any) error {
	ev, err := outbox.NewEvent(teamID, typ, payload)
	if err != nil {
		return err
	}
	return s.EnqueueEvent(ctx, ev)
}

// fail passes domain errors through and folds anything else into a
// TransactionFailure, logging the cause.
func (a *App) fail(op string, err error) error {
	if apperr.IsDomain(err) {
		return err
	}
	log.Error().Err(err).Str("op", op).Msg("roster transaction rolled back")
	return apperr.NewTransactionFailure(op, err)
}

func (a *App) now() time.Time {
	return a.clock.Now().UTC()
}

func (a *App) today() time.Time {
	return sqlutil.DateOf(a.clock.Now())
}

// effectiveAssignments is the supplied list, or one row per position carrying the member's jersey
func effectiveAssignments(positions []string, supplied []PositionJersey, jersey *int) []PositionJersey {
	if len(supplied) > 0 {
		return supplied
	}
	out := make([]PositionJersey, len(positions))
	for i, p := range positions {
		out[i] = PositionJersey{Position: p, JerseyNumber: jersey}
	}
	return out
}

func positionsText(positions []string) *string {
	if positions == nil {
		positions = []string{}
	}
	data, _ := json.Marshal(positions)
	s := string(data)
	return &s
}

func intText(v *int) *string {
	if v == nil {
		return nil
	}
	s := strconv.Itoa(*v)
	return &s
}

func sameInt(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func sameString(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
