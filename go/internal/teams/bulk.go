package teams

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/mcdev12/rosterdesk/go/internal/apperr"
	"github.com/mcdev12/rosterdesk/go/internal/models"
	"github.com/mcdev12/rosterdesk/go/internal/outbox"
	"github.com/mcdev12/rosterdesk/go/internal/validation"
	"github.com/rs/zerolog/log"
)

// BulkAction applies one action to every listed team in a single
// transaction. Any failure rolls back the whole batch.
func (a *App) BulkAction(ctx context.Context, actorID int64, req BulkRequest) (*BulkResult, error) {
	if err := a.validateBulk(req); err != nil {
		return nil, err
	}

	result := &BulkResult{Action: req.Action, TeamIDs: []int64{}}
	err := a.store.InTx(ctx, func(s TeamStore) error {
		teams, err := a.loadBatch(ctx, s, req.TeamIDs)
		if err != nil {
			return err
		}

		switch req.Action {
		case BulkCloneToSeason:
			return a.bulkClone(ctx, s, actorID, teams, *req.Params.SeasonID, result)
		case BulkReassignCoach:
			return a.bulkReassign(ctx, s, actorID, teams, *req.Params.CoachID, result)
		case BulkArchive:
			return a.bulkArchive(ctx, s, actorID, teams, req.Params.Reason, result)
		case BulkUpdateDivision:
			return a.bulkDivision(ctx, s, actorID, teams, *req.Params.Division, result)
		}
		return fmt.Errorf("unsupported bulk action %q", req.Action)
	})
	if err != nil {
		return nil, a.fail("bulk "+string(req.Action), err)
	}

	result.Affected = len(result.TeamIDs)
	log.Info().
		Str("action", string(req.Action)).
		Int64("actor_id", actorID).
		Int("affected", result.Affected).
		Msg("bulk team action applied")
	return result, nil
}

func (a *App) validateBulk(req BulkRequest) error {
	verr := validation.Struct(a.validate, req)
	switch req.Action {
	case BulkCloneToSeason:
		if req.Params.SeasonID == nil {
			verr.Add("params.season_id", "is required")
		}
	case BulkReassignCoach:
		if req.Params.CoachID == nil {
			verr.Add("params.coach_id", "is required")
		}
	case BulkUpdateDivision:
		if req.Params.Division == nil {
			verr.Add("params.division", "is required")
		}
	}
	return verr.OrNil()
}

// loadBatch locks the requested teams and returns them in request order
func (a *App) loadBatch(ctx context.Context, s TeamStore, ids []int64) ([]models.Team, error) {
	found, err := s.GetTeamsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]models.Team, len(found))
	for _, t := range found {
		byID[t.ID] = t
	}

	var missing []string
	teams := make([]models.Team, 0, len(ids))
	for _, id := range ids {
		t, ok := byID[id]
		if !ok {
			missing = append(missing, strconv.FormatInt(id, 10))
			continue
		}
		teams = append(teams, t)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("teams %v: %w", missing, apperr.ErrNotFound)
	}
	return teams, nil
}

// bulkClone re-inserts each team into the target season as a new row.
// Identity, soft-delete markers and the primary coach are not carried over.
func (a *App) bulkClone(ctx context.Context, s TeamStore, actorID int64, teams []models.Team, seasonID int64, result *BulkResult) error {
	verr := apperr.NewValidationError()
	seen := make(map[string]bool, len(teams))
	for _, t := range teams {
		key := strings.ToLower(t.Name)
		if seen[key] {
			verr.Add("name", fmt.Sprintf("%q appears more than once in the batch", t.Name))
			continue
		}
		seen[key] = true

		n, err := s.CountTeamsWithName(ctx, seasonID, t.Name, 0)
		if err != nil {
			return err
		}
		if n > 0 {
			verr.Add("name", fmt.Sprintf("%q already exists in season %d", t.Name, seasonID))
		}
	}
	if err := verr.OrNil(); err != nil {
		return err
	}

	now := a.now()
	for _, t := range teams {
		clone, err := s.InsertTeam(ctx, models.Team{
			Name:        t.Name,
			LogoURL:     t.LogoURL,
			AgeGroup:    t.AgeGroup,
			Division:    t.Division,
			SeasonID:    seasonID,
			HomeFieldID: t.HomeFieldID,
			MaxPlayers:  t.MaxPlayers,
			CreatedAt:   now,
			UpdatedAt:   now,
			UpdatedBy:   &actorID,
		})
		if err != nil {
			return err
		}
		change := models.FieldChange{FieldName: "cloned_from", NewValue: idText(&t.ID)}
		if err := s.InsertAuditLog(ctx, clone.ID, actorID, change, now); err != nil {
			return err
		}
		result.TeamIDs = append(result.TeamIDs, clone.ID)
	}
	return nil
}

// bulkReassign makes coachID the primary coach of every team. A coach may
// lead one team per season, so the batch itself may not hold two teams of
// the same season.
func (a *App) bulkReassign(ctx context.Context, s TeamStore, actorID int64, teams []models.Team, coachID int64, result *BulkResult) error {
	batchIDs := make([]int64, len(teams))
	for i, t := range teams {
		batchIDs[i] = t.ID
	}

	seasons := make(map[int64]int64, len(teams))
	for _, t := range teams {
		if t.Archived() {
			return apperr.NewConflict(apperr.ErrAlreadyArchived, fmt.Sprintf("team %d is archived", t.ID))
		}
		if other, ok := seasons[t.SeasonID]; ok {
			return apperr.NewConflict(apperr.ErrCoachUnavailable,
				fmt.Sprintf("teams %d and %d share season %d; coach %d can lead only one", other, t.ID, t.SeasonID, coachID))
		}
		seasons[t.SeasonID] = t.ID

		others, err := s.ListCoachTeamsInSeason(ctx, coachID, t.SeasonID, t.ID)
		if err != nil {
			return err
		}
		for _, o := range others {
			if !slices.Contains(batchIDs, o.ID) {
				return apperr.NewConflict(apperr.ErrCoachUnavailable,
					fmt.Sprintf("coach %d is already primary coach of team %d (%s) in season %d", coachID, o.ID, o.Name, t.SeasonID))
			}
		}
	}

	now := a.now()
	for _, t := range teams {
		if t.PrimaryCoachID != nil && *t.PrimaryCoachID == coachID {
			continue
		}
		if err := s.UpdatePrimaryCoach(ctx, t.ID, &coachID, actorID, now); err != nil {
			return err
		}
		change := models.FieldChange{FieldName: "primary_coach_id", OldValue: idText(t.PrimaryCoachID), NewValue: idText(&coachID)}
		if err := s.InsertAuditLog(ctx, t.ID, actorID, change, now); err != nil {
			return err
		}
		err := a.enqueue(ctx, s, t.ID, outbox.EventCoachAssigned, outbox.CoachAssignedPayload{
			TeamID:   t.ID,
			TeamName: t.Name,
			SeasonID: t.SeasonID,
			CoachID:  coachID,
			Role:     string(CoachRolePrimary),
			ActorID:  actorID,
		})
		if err != nil {
			return err
		}
		result.TeamIDs = append(result.TeamIDs, t.ID)
	}
	return nil
}

func (a *App) bulkArchive(ctx context.Context, s TeamStore, actorID int64, teams []models.Team, reason *string, result *BulkResult) error {
	for i := range teams {
		if err := a.archive(ctx, s, &teams[i], actorID, reason); err != nil {
			return err
		}
		result.TeamIDs = append(result.TeamIDs, teams[i].ID)
	}
	return nil
}

func (a *App) bulkDivision(ctx context.Context, s TeamStore, actorID int64, teams []models.Team, division models.Division, result *BulkResult) error {
	var changed []models.Team
	for _, t := range teams {
		if t.Archived() {
			return apperr.NewConflict(apperr.ErrAlreadyArchived, fmt.Sprintf("team %d is archived", t.ID))
		}
		if t.Division != division {
			changed = append(changed, t)
		}
	}
	if len(changed) == 0 {
		return nil
	}

	ids := make([]int64, len(changed))
	for i, t := range changed {
		ids[i] = t.ID
	}

	now := a.now()
	n, err := s.UpdateDivision(ctx, ids, division, actorID, now)
	if err != nil {
		return err
	}
	if n != int64(len(ids)) {
		return fmt.Errorf("update division: expected %d rows, updated %d", len(ids), n)
	}

	for _, t := range changed {
		change := models.FieldChange{FieldName: "division", OldValue: text(string(t.Division)), NewValue: text(string(division))}
		if err := s.InsertAuditLog(ctx, t.ID, actorID, change, now); err != nil {
			return err
		}
	}
	result.TeamIDs = ids
	return nil
}
