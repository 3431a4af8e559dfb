package teams

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mcdev12/rosterdesk/go/internal/apperr"
	"github.com/mcdev12/rosterdesk/go/internal/db"
	"github.com/mcdev12/rosterdesk/go/internal/models"
	"github.com/mcdev12/rosterdesk/go/internal/outbox"
	"github.com/mcdev12/rosterdesk/go/internal/sqlutil"
	"github.com/sqlc-dev/pqtype"
)

// Repository is the Postgres team store. A Repository handed to an InTx
// callback is bound to that transaction.
type Repository struct {
	db      *sql.DB
	queries *db.Queries
	inTx    bool
}

func NewRepository(database *sql.DB) *Repository {
	return &Repository{
		db:      database,
		queries: db.New(database),
	}
}

var _ TeamStore = (*Repository)(nil)

func (r *Repository) InTx(ctx context.Context, fn func(TeamStore) error) error {
	if r.inTx {
		return fn(r)
	}
	return sqlutil.Run(ctx, r.db, r.queries.WithTx, func(q *db.Queries) error {
		return fn(&Repository{queries: q, inTx: true})
	})
}

func (r *Repository) GetTeam(ctx context.Context, id int64) (*models.Team, error) {
	team, err := r.queries.GetTeam(ctx, id)
	if sqlutil.IsNoRows(err) {
		return nil, fmt.Errorf("team %d: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	return r.dbTeamToModel(team), nil
}

func (r *Repository) GetTeamsByIDs(ctx context.Context, ids []int64) ([]models.Team, error) {
	teams, err := r.queries.GetTeamsByIDsForUpdate(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get teams by ids: %w", err)
	}
	return r.dbTeamsToModels(teams), nil
}

func (r *Repository) ListTeams(ctx context.Context, seasonID int64, includeArchived bool) ([]models.Team, error) {
	teams, err := r.queries.ListTeamsBySeason(ctx, db.ListTeamsBySeasonParams{
		SeasonID:        seasonID,
		IncludeArchived: includeArchived,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return r.dbTeamsToModels(teams), nil
}

func (r *Repository) CountTeamsWithName(ctx context.Context, seasonID int64, name string, excludeID int64) (int64, error) {
	n, err := r.queries.CountTeamsWithName(ctx, db.CountTeamsWithNameParams{
		SeasonID:  seasonID,
		Name:      name,
		ExcludeID: excludeID,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count teams with name: %w", err)
	}
	return n, nil
}

func (r *Repository) InsertTeam(ctx context.Context, t models.Team) (*models.Team, error) {
	team, err := r.queries.CreateTeam(ctx, db.CreateTeamParams{
		Name:           t.Name,
		LogoUrl:        sqlutil.ToSqlString(t.LogoURL),
		AgeGroup:       string(t.AgeGroup),
		Division:       string(t.Division),
		SeasonID:       t.SeasonID,
		PrimaryCoachID: sqlutil.ToNullInt64(t.PrimaryCoachID),
		HomeFieldID:    sqlutil.ToNullInt64(t.HomeFieldID),
		MaxPlayers:     int32(t.MaxPlayers),
		CreatedAt:      t.CreatedAt,
		UpdatedBy:      sqlutil.ToNullInt64(t.UpdatedBy),
	})
	if sqlutil.IsUniqueViolation(err) {
		return nil, duplicateName(t.Name, t.SeasonID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}
	return r.dbTeamToModel(team), nil
}

func (r *Repository) UpdateTeam(ctx context.Context, t models.Team) (*models.Team, error) {
	team, err := r.queries.UpdateTeam(ctx, db.UpdateTeamParams{
		ID:             t.ID,
		Name:           t.Name,
		LogoUrl:        sqlutil.ToSqlString(t.LogoURL),
		AgeGroup:       string(t.AgeGroup),
		Division:       string(t.Division),
		SeasonID:       t.SeasonID,
		PrimaryCoachID: sqlutil.ToNullInt64(t.PrimaryCoachID),
		HomeFieldID:    sqlutil.ToNullInt64(t.HomeFieldID),
		MaxPlayers:     int32(t.MaxPlayers),
		UpdatedAt:      t.UpdatedAt,
		UpdatedBy:      sqlutil.ToNullInt64(t.UpdatedBy),
	})
	if sqlutil.IsNoRows(err) {
		return nil, fmt.Errorf("live team %d: %w", t.ID, apperr.ErrNotFound)
	}
	if sqlutil.IsUniqueViolation(err) {
		return nil, duplicateName(t.Name, t.SeasonID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update team: %w", err)
	}
	return r.dbTeamToModel(team), nil
}

func (r *Repository) SoftDeleteTeam(ctx context.Context, id int64, del Deletion) (bool, error) {
	n, err := r.queries.SoftDeleteTeam(ctx, db.SoftDeleteTeamParams{
		DeletedAt:     sql.NullTime{Time: del.At, Valid: true},
		DeletedReason: sqlutil.ToSqlString(del.Reason),
		DeletedBy:     sqlutil.NullInt64Of(del.ActorID),
		ID:            id,
	})
	if err != nil {
		return false, fmt.Errorf("failed to archive team: %w", err)
	}
	return n > 0, nil
}

func (r *Repository) UpdatePrimaryCoach(ctx context.Context, id int64, coachID *int64, actorID int64, at time.Time) error {
	n, err := r.queries.UpdatePrimaryCoach(ctx, db.UpdatePrimaryCoachParams{
		ID:             id,
		PrimaryCoachID: sqlutil.ToNullInt64(coachID),
		UpdatedAt:      at,
		UpdatedBy:      sqlutil.NullInt64Of(actorID),
	})
	if err != nil {
		return fmt.Errorf("failed to update primary coach: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("live team %d: %w", id, apperr.ErrNotFound)
	}
	return nil
}

func (r *Repository) UpdateDivision(ctx context.Context, ids []int64, division models.Division, actorID int64, at time.Time) (int64, error) {
	n, err := r.queries.UpdateDivisionForTeams(ctx, db.UpdateDivisionForTeamsParams{
		Division:  string(division),
		UpdatedAt: at,
		UpdatedBy: sqlutil.NullInt64Of(actorID),
		Ids:       ids,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to update division: %w", err)
	}
	return n, nil
}

func (r *Repository) CountActiveMembers(ctx context.Context, teamID int64, asOf time.Time) (int64, error) {
	n, err := r.queries.CountCurrentMembers(ctx, db.CountCurrentMembersParams{TeamID: teamID, AsOf: asOf})
	if err != nil {
		return 0, fmt.Errorf("failed to count active members: %w", err)
	}
	return n, nil
}

func (r *Repository) CountUpcomingEvents(ctx context.Context, teamID int64, after time.Time) (int64, error) {
	n, err := r.queries.CountUpcomingEvents(ctx, db.CountUpcomingEventsParams{TeamID: teamID, After: after})
	if err != nil {
		return 0, fmt.Errorf("failed to count upcoming events: %w", err)
	}
	return n, nil
}

func (r *Repository) ListCoachTeamsInSeason(ctx context.Context, coachID, seasonID, excludeTeamID int64) ([]models.Team, error) {
	teams, err := r.queries.ListCoachTeamsInSeason(ctx, db.ListCoachTeamsInSeasonParams{
		CoachID:   coachID,
		SeasonID:  seasonID,
		ExcludeID: excludeTeamID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list coach teams: %w", err)
	}
	return r.dbTeamsToModels(teams), nil
}

func (r *Repository) GetActiveMembership(ctx context.Context, teamID, userID int64, asOf time.Time) (*models.TeamMember, error) {
	m, err := r.queries.GetCurrentMembership(ctx, db.GetCurrentMembershipParams{
		TeamID: teamID,
		UserID: userID,
		AsOf:   asOf,
	})
	if sqlutil.IsNoRows(err) {
		return nil, fmt.Errorf("membership of user %d on team %d: %w", userID, teamID, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}
	return &models.TeamMember{
		ID:           m.ID,
		TeamID:       m.TeamID,
		UserID:       m.UserID,
		Role:         models.MemberRole(m.Role),
		TeamPriority: models.TeamPriority(m.TeamPriority),
		Status:       models.MemberStatus(m.Status),
		JoinDate:     m.JoinDate,
		LeaveDate:    sqlutil.FromSqlTime(m.LeaveDate),
	}, nil
}

// InsertMembership writes a staff roster entry; staff carry no positions
func (r *Repository) InsertMembership(ctx context.Context, m models.TeamMember) (*models.TeamMember, error) {
	row, err := r.queries.CreateTeamMember(ctx, db.CreateTeamMemberParams{
		TeamID:       m.TeamID,
		UserID:       m.UserID,
		Role:         string(m.Role),
		TeamPriority: string(m.TeamPriority),
		Positions:    pqtype.NullRawMessage{RawMessage: []byte("[]"), Valid: true},
		Status:       string(m.Status),
		JoinDate:     m.JoinDate,
	})
	if sqlutil.IsUniqueViolation(err) {
		return nil, apperr.NewConflict(apperr.ErrDuplicateMembership)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create staff membership: %w", err)
	}
	m.ID = row.ID
	return &m, nil
}

func (r *Repository) EndAssistantCoach(ctx context.Context, teamID, coachID int64, del Deletion) (bool, error) {
	_, err := r.queries.EndMembership(ctx, db.EndMembershipParams{
		LeaveDate:   sql.NullTime{Time: del.At, Valid: true},
		LeaveReason: sqlutil.ToSqlString(del.Reason),
		RemovedBy:   sqlutil.NullInt64Of(del.ActorID),
		TeamID:      teamID,
		UserID:      coachID,
		Role:        string(models.MemberRoleAssistantCoach),
	})
	if sqlutil.IsNoRows(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to end assistant coach membership: %w", err)
	}
	return true, nil
}

func (r *Repository) InsertAuditLog(ctx context.Context, teamID, actorID int64, change models.FieldChange, at time.Time) error {
	err := r.queries.InsertTeamAudit(ctx, db.InsertTeamAuditParams{
		TeamID:    teamID,
		ChangedBy: actorID,
		FieldName: change.FieldName,
		OldValue:  sqlutil.ToSqlString(change.OldValue),
		NewValue:  sqlutil.ToSqlString(change.NewValue),
		ChangedAt: at,
	})
	if err != nil {
		return fmt.Errorf("failed to append team audit: %w", err)
	}
	return nil
}

func (r *Repository) ListAuditLog(ctx context.Context, teamID int64) ([]models.ChangeLogEntry, error) {
	rows, err := r.queries.ListTeamAudit(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list team audit: %w", err)
	}
	out := make([]models.ChangeLogEntry, len(rows))
	for i, row := range rows {
		out[i] = models.ChangeLogEntry{
			ID:        row.ID,
			EntityID:  row.TeamID,
			ActorID:   row.ChangedBy,
			FieldName: row.FieldName,
			OldValue:  sqlutil.FromSqlStringPtr(row.OldValue),
			NewValue:  sqlutil.FromSqlStringPtr(row.NewValue),
			ChangedAt: row.ChangedAt,
		}
	}
	return out, nil
}

func (r *Repository) EnqueueEvent(ctx context.Context, ev outbox.Event) error {
	return outbox.Insert(ctx, r.queries, ev)
}

func duplicateName(name string, seasonID int64) *apperr.ValidationError {
	verr := apperr.NewValidationError()
	verr.Add("name", fmt.Sprintf("%q already exists in season %d", name, seasonID))
	return verr
}

func (r *Repository) dbTeamToModel(t db.Team) *models.Team {
	return &models.Team{
		ID:             t.ID,
		Name:           t.Name,
		LogoURL:        sqlutil.FromSqlStringPtr(t.LogoUrl),
		AgeGroup:       models.AgeGroup(t.AgeGroup),
		Division:       models.Division(t.Division),
		SeasonID:       t.SeasonID,
		PrimaryCoachID: sqlutil.FromNullInt64(t.PrimaryCoachID),
		HomeFieldID:    sqlutil.FromNullInt64(t.HomeFieldID),
		MaxPlayers:     int(t.MaxPlayers),
		DeletedAt:      sqlutil.FromSqlTime(t.DeletedAt),
		DeletedReason:  sqlutil.FromSqlStringPtr(t.DeletedReason),
		DeletedBy:      sqlutil.FromNullInt64(t.DeletedBy),
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
		UpdatedBy:      sqlutil.FromNullInt64(t.UpdatedBy),
	}
}

func (r *Repository) dbTeamsToModels(teams []db.Team) []models.Team {
	out := make([]models.Team, len(teams))
	for i, t := range teams {
		out[i] = *r.dbTeamToModel(t)
	}
	return out
}
