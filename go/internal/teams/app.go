package teams

import (
	"context"
	"errors"
	"fmt"
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

// TeamStore defines what the app layer needs from persistence
type TeamStore interface {
	GetTeam(ctx context.Context, id int64) (*models.Team, error)
	// GetTeamsByIDs locks and returns the teams that exist among ids
	GetTeamsByIDs(ctx context.Context, ids []int64) ([]models.Team, error)
	ListTeams(ctx context.Context, seasonID int64, includeArchived bool) ([]models.Team, error)
	CountTeamsWithName(ctx context.Context, seasonID int64, name string, excludeID int64) (int64, error)
	InsertTeam(ctx context.Context, t models.Team) (*models.Team, error)
	UpdateTeam(ctx context.Context, t models.Team) (*models.Team, error)
	SoftDeleteTeam(ctx context.Context, id int64, del Deletion) (bool, error)
	UpdatePrimaryCoach(ctx context.Context, id int64, coachID *int64, actorID int64, at time.Time) error
	UpdateDivision(ctx context.Context, ids []int64, division models.Division, actorID int64, at time.Time) (int64, error)
	CountActiveMembers(ctx context.Context, teamID int64, asOf time.Time) (int64, error)
	CountUpcomingEvents(ctx context.Context, teamID int64, after time.Time) (int64, error)
	ListCoachTeamsInSeason(ctx context.Context, coachID, seasonID, excludeTeamID int64) ([]models.Team, error)
	GetActiveMembership(ctx context.Context, teamID, userID int64, asOf time.Time) (*models.TeamMember, error)
	InsertMembership(ctx context.Context, m models.TeamMember) (*models.TeamMember, error)
	EndAssistantCoach(ctx context.Context, teamID, coachID int64, del Deletion) (bool, error)
	InsertAuditLog(ctx context.Context, teamID, actorID int64, change models.FieldChange, at time.Time) error
	ListAuditLog(ctx context.Context, teamID int64) ([]models.ChangeLogEntry, error)
	EnqueueEvent(ctx context.Context, ev outbox.Event) error

	InTx(ctx context.Context, fn func(TeamStore) error) error
}

// App handles team lifecycle business logic
type App struct {
	store    TeamStore
	clock    clockwork.Clock
	validate *validator.Validate
}

// NewApp creates a new teams App
func NewApp(store TeamStore, clock clockwork.Clock, validate *validator.Validate) *App {
	return &App{
		store:    store,
		clock:    clock,
		validate: validate,
	}
}

// CreateTeam validates the payload and name uniqueness together, then inserts
func (a *App) CreateTeam(ctx context.Context, actorID int64, in TeamInput) (*models.Team, error) {
	now := a.now()

	var team *models.Team
	err := a.store.InTx(ctx, func(s TeamStore) error {
		if err := a.validateTeam(ctx, s, in, 0); err != nil {
			return err
		}
		if in.PrimaryCoachID != nil {
			if err := a.ensureCoachAvailable(ctx, s, *in.PrimaryCoachID, in.SeasonID, 0); err != nil {
				return err
			}
		}

		var err error
		team, err = s.InsertTeam(ctx, models.Team{
			Name:           in.Name,
			LogoURL:        in.LogoURL,
			AgeGroup:       in.AgeGroup,
			Division:       in.Division,
			SeasonID:       in.SeasonID,
			PrimaryCoachID: in.PrimaryCoachID,
			HomeFieldID:    in.HomeFieldID,
			MaxPlayers:     in.MaxPlayers,
			CreatedAt:      now,
			UpdatedAt:      now,
			UpdatedBy:      &actorID,
		})
		return err
	})
	if err != nil {
		return nil, a.fail("create team", err)
	}

	log.Info().
		Int64("team_id", team.ID).
		Int64("season_id", team.SeasonID).
		Int64("actor_id", actorID).
		Str("name", team.Name).
		Msg("team created")
	return team, nil
}

// UpdateTeam replaces every field and writes one audit row per changed field
// in the same transaction.
func (a *App) UpdateTeam(ctx context.Context, actorID, teamID int64, in TeamInput) (*models.Team, error) {
	now := a.now()

	var updated *models.Team
	var changes []models.FieldChange
	err := a.store.InTx(ctx, func(s TeamStore) error {
		current, err := s.GetTeam(ctx, teamID)
		if err != nil {
			return err
		}
		if current.Archived() {
			return apperr.NewConflict(apperr.ErrAlreadyArchived, fmt.Sprintf("team %d is archived", teamID))
		}
		if err := a.validateTeam(ctx, s, in, teamID); err != nil {
			return err
		}
		if in.PrimaryCoachID != nil {
			if err := a.ensureCoachAvailable(ctx, s, *in.PrimaryCoachID, in.SeasonID, teamID); err != nil {
				return err
			}
		}

		updated, err = s.UpdateTeam(ctx, models.Team{
			ID:             teamID,
			Name:           in.Name,
			LogoURL:        in.LogoURL,
			AgeGroup:       in.AgeGroup,
			Division:       in.Division,
			SeasonID:       in.SeasonID,
			PrimaryCoachID: in.PrimaryCoachID,
			HomeFieldID:    in.HomeFieldID,
			MaxPlayers:     in.MaxPlayers,
			UpdatedAt:      now,
			UpdatedBy:      &actorID,
		})
		if err != nil {
			return err
		}

		changes = diffTeams(current, updated)
		for _, c := range changes {
			if err := s.InsertAuditLog(ctx, teamID, actorID, c, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, a.fail("update team", err)
	}

	log.Info().
		Int64("team_id", teamID).
		Int64("actor_id", actorID).
		Int("changed_fields", len(changes)).
		Msg("team updated")
	return updated, nil
}

// ArchiveTeam soft-deletes a team once no guard blocks it
func (a *App) ArchiveTeam(ctx context.Context, actorID, teamID int64, reason *string) error {
	err := a.store.InTx(ctx, func(s TeamStore) error {
		team, err := s.GetTeam(ctx, teamID)
		if err != nil {
			return err
		}
		return a.archive(ctx, s, team, actorID, reason)
	})
	if err != nil {
		return a.fail("archive team", err)
	}

	log.Info().
		Int64("team_id", teamID).
		Int64("actor_id", actorID).
		Msg("team archived")
	return nil
}

func (a *App) archive(ctx context.Context, s TeamStore, team *models.Team, actorID int64, reason *string) error {
	if team.Archived() {
		return apperr.NewConflict(apperr.ErrAlreadyArchived, fmt.Sprintf("team %d is already archived", team.ID))
	}
	if err := a.checkArchiveGuards(ctx, s, team.ID); err != nil {
		return err
	}

	now := a.now()
	ok, err := s.SoftDeleteTeam(ctx, team.ID, Deletion{At: now, Reason: reason, ActorID: actorID})
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NewConflict(apperr.ErrAlreadyArchived, fmt.Sprintf("team %d is already archived", team.ID))
	}

	if err := s.InsertAuditLog(ctx, team.ID, actorID, models.FieldChange{FieldName: "deleted_at", NewValue: timeText(now)}, now); err != nil {
		return err
	}
	return a.enqueue(ctx, s, team.ID, outbox.EventTeamArchived, outbox.TeamArchivedPayload{
		TeamID:  team.ID,
		Reason:  reason,
		ActorID: actorID,
	})
}

// checkArchiveGuards evaluates every guard so the caller sees all that failed
func (a *App) checkArchiveGuards(ctx context.Context, s TeamStore, teamID int64) error {
	var failed []apperr.GuardCondition

	members, err := s.CountActiveMembers(ctx, teamID, a.today())
	if err != nil {
		return err
	}
	if members > 0 {
		failed = append(failed, apperr.GuardActiveMembers)
	}

	events, err := s.CountUpcomingEvents(ctx, teamID, a.now())
	if err != nil {
		return err
	}
	if events > 0 {
		failed = append(failed, apperr.GuardFutureEvents)
	}

	if len(failed) > 0 {
		return &apperr.GuardViolation{TeamID: teamID, Conditions: failed}
	}
	return nil
}

// ListTeams lists a season's teams; archived teams only when asked for
func (a *App) ListTeams(ctx context.Context, seasonID int64, includeArchived bool) ([]models.Team, error) {
	if seasonID <= 0 {
		verr := apperr.NewValidationError()
		verr.Add("season_id", "is required")
		return nil, verr
	}
	teams, err := a.store.ListTeams(ctx, seasonID, includeArchived)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return teams, nil
}

func (a *App) GetTeam(ctx context.Context, teamID int64) (*models.Team, error) {
	return a.store.GetTeam(ctx, teamID)
}

// CheckCoachAvailability compares the coach against their other live teams in the target team's season
func (a *App) CheckCoachAvailability(ctx context.Context, coachID, teamID int64) (*CoachAvailability, error) {
	team, err := a.store.GetTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	others, err := a.store.ListCoachTeamsInSeason(ctx, coachID, team.SeasonID, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to check coach availability: %w", err)
	}

	refs := make([]TeamRef, len(others))
	for i, t := range others {
		refs[i] = TeamRef{ID: t.ID, Name: t.Name}
	}
	return &CoachAvailability{
		CoachID:          coachID,
		TeamID:           teamID,
		SeasonID:         team.SeasonID,
		Available:        len(others) == 0,
		ConflictingTeams: refs,
	}, nil
}

// AssignCoach sets the primary coach field, or adds an assistant coach roster entry
func (a *App) AssignCoach(ctx context.Context, actorID, teamID, coachID int64, role CoachRole) (*CoachAssignment, error) {
	verr := apperr.NewValidationError()
	if coachID <= 0 {
		verr.Add("coach_id", "is required")
	}
	if role != CoachRolePrimary && role != CoachRoleAssistant {
		verr.Add("role", "must be one of primary, assistant")
	}
	if !verr.Empty() {
		return nil, verr
	}

	now := a.now()
	result := &CoachAssignment{TeamID: teamID, CoachID: coachID, Role: role}
	err := a.store.InTx(ctx, func(s TeamStore) error {
		team, err := s.GetTeam(ctx, teamID)
		if err != nil {
			return err
		}
		if team.Archived() {
			return apperr.NewConflict(apperr.ErrAlreadyArchived, fmt.Sprintf("team %d is archived", teamID))
		}

		switch role {
		case CoachRolePrimary:
			if team.PrimaryCoachID != nil && *team.PrimaryCoachID == coachID {
				return nil
			}
			if err := a.ensureCoachAvailable(ctx, s, coachID, team.SeasonID, teamID); err != nil {
				return err
			}
			if err := s.UpdatePrimaryCoach(ctx, teamID, &coachID, actorID, now); err != nil {
				return err
			}
			change := models.FieldChange{FieldName: "primary_coach_id", OldValue: idText(team.PrimaryCoachID), NewValue: idText(&coachID)}
			if err := s.InsertAuditLog(ctx, teamID, actorID, change, now); err != nil {
				return err
			}

		case CoachRoleAssistant:
			_, err := s.GetActiveMembership(ctx, teamID, coachID, a.today())
			if err == nil {
				return apperr.NewConflict(apperr.ErrDuplicateMembership,
					fmt.Sprintf("user %d is already on team %d", coachID, teamID))
			}
			if !errors.Is(err, apperr.ErrNotFound) {
				return err
			}
			m, err := s.InsertMembership(ctx, models.TeamMember{
				TeamID:       teamID,
				UserID:       coachID,
				Role:         models.MemberRoleAssistantCoach,
				TeamPriority: models.TeamPriorityPrimary,
				Status:       models.MemberStatusActive,
				JoinDate:     a.today(),
			})
			if err != nil {
				return err
			}
			result.MemberID = &m.ID
			change := models.FieldChange{FieldName: "assistant_coach", NewValue: idText(&coachID)}
			if err := s.InsertAuditLog(ctx, teamID, actorID, change, now); err != nil {
				return err
			}
		}

		return a.enqueue(ctx, s, teamID, outbox.EventCoachAssigned, outbox.CoachAssignedPayload{
			TeamID:   teamID,
			TeamName: team.Name,
			SeasonID: team.SeasonID,
			CoachID:  coachID,
			Role:     string(role),
			ActorID:  actorID,
		})
	})
	if err != nil {
		return nil, a.fail("assign coach", err)
	}

	log.Info().
		Int64("team_id", teamID).
		Int64("coach_id", coachID).
		Int64("actor_id", actorID).
		Str("role", string(role)).
		Msg("coach assigned")
	return result, nil
}

// RemoveCoach ends an assistant coach's roster entry. Primary coaches are
// replaced through AssignCoach instead.
func (a *App) RemoveCoach(ctx context.Context, actorID, teamID, coachID int64, reason *string) (bool, error) {
	now := a.now()

	removed := false
	err := a.store.InTx(ctx, func(s TeamStore) error {
		var err error
		removed, err = s.EndAssistantCoach(ctx, teamID, coachID, Deletion{At: a.today(), Reason: reason, ActorID: actorID})
		if err != nil || !removed {
			return err
		}
		change := models.FieldChange{FieldName: "assistant_coach", OldValue: idText(&coachID)}
		return s.InsertAuditLog(ctx, teamID, actorID, change, now)
	})
	if err != nil {
		return false, a.fail("remove coach", err)
	}

	if removed {
		log.Info().
			Int64("team_id", teamID).
			Int64("coach_id", coachID).
			Int64("actor_id", actorID).
			Msg("assistant coach removed")
	}
	return removed, nil
}

func (a *App) GetAuditLog(ctx context.Context, teamID int64) ([]models.ChangeLogEntry, error) {
	if _, err := a.store.GetTeam(ctx, teamID); err != nil {
		return nil, err
	}
	entries, err := a.store.ListAuditLog(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to get audit log: %w", err)
	}
	return entries, nil
}

// validateTeam runs the tag checks and the name uniqueness check before any
// write and reports all problems together.
func (a *App) validateTeam(ctx context.Context, s TeamStore, in TeamInput, excludeID int64) error {
	verr := validation.Struct(a.validate, in)
	if in.Name != "" && in.SeasonID > 0 {
		n, err := s.CountTeamsWithName(ctx, in.SeasonID, in.Name, excludeID)
		if err != nil {
			return err
		}
		if n > 0 {
			verr.Add("name", fmt.Sprintf("%q already exists in season %d", in.Name, in.SeasonID))
		}
	}
	return verr.OrNil()
}

func (a *App) ensureCoachAvailable(ctx context.Context, s TeamStore, coachID, seasonID, teamID int64) error {
	others, err := s.ListCoachTeamsInSeason(ctx, coachID, seasonID, teamID)
	if err != nil {
		return err
	}
	if len(others) > 0 {
		return apperr.NewConflict(apperr.ErrCoachUnavailable,
			fmt.Sprintf("coach %d is already primary coach of team %d (%s) in season %d", coachID, others[0].ID, others[0].Name, seasonID))
	}
	return nil
}

func (a *App) enqueue(ctx context.Context, s TeamStore, teamID int64, typ outbox.EventType, payload any) error {
	ev, err := outbox.NewEvent(teamID, typ, payload)
	if err != nil {
		return err
	}
	return s.EnqueueEvent(ctx, ev)
}

func (a *App) fail(op string, err error) error {
	if apperr.IsDomain(err) {
		return err
	}
	log.Error().Err(err).Str("op", op).Msg("team transaction rolled back")
	return apperr.NewTransactionFailure(op, err)
}

func (a *App) now() time.Time {
	return a.clock.Now().UTC()
}

func (a *App) today() time.Time {
	return sqlutil.DateOf(a.clock.Now())
}
