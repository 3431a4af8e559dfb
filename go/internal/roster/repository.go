package roster

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mcdev12/rosterdesk/go/internal/apperr"
	"github.com/mcdev12/rosterdesk/go/internal/db"
	"github.com/mcdev12/rosterdesk/go/internal/models"
	"github.com/mcdev12/rosterdesk/go/internal/outbox"
	"github.com/mcdev12/rosterdesk/go/internal/sqlutil"
	"github.com/rs/zerolog/log"
	"github.com/sqlc-dev/pqtype"
)

// Repository is the Postgres roster store. A Repository returned to an InTx
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

var _ RosterStore = (*Repository)(nil)

func (r *Repository) InTx(ctx context.Context, fn func(RosterStore) error) error {
	if r.inTx {
		return fn(r)
	}
	return sqlutil.Run(ctx, r.db, r.queries.WithTx, func(q *db.Queries) error {
		return fn(&Repository{queries: q, inTx: true})
	})
}

func (r *Repository) GetTeam(ctx context.Context, teamID int64) (*models.Team, error) {
	team, err := r.queries.GetTeam(ctx, teamID)
	if sqlutil.IsNoRows(err) {
		return nil, fmt.Errorf("team %d: %w", teamID, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	return dbTeamToModel(team), nil
}

func (r *Repository) GetActiveMembership(ctx context.Context, teamID, userID int64, asOf time.Time) (*models.TeamMember, error) {
	member, err := r.queries.GetCurrentMembership(ctx, db.GetCurrentMembershipParams{
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
	return dbMemberToModel(member), nil
}

func (r *Repository) InsertMembership(ctx context.Context, m models.TeamMember) (*models.TeamMember, error) {
	positions, err := encodePositions(m.Positions)
	if err != nil {
		return nil, err
	}

	member, err := r.queries.CreateTeamMember(ctx, db.CreateTeamMemberParams{
		TeamID:                 m.TeamID,
		UserID:                 m.UserID,
		Role:                   string(m.Role),
		TeamPriority:           string(m.TeamPriority),
		JerseyNumber:           sqlutil.ToSqlInt32(m.JerseyNumber),
		JerseyNumberAlt:        sqlutil.ToSqlInt32(m.JerseyNumberAlt),
		Positions:              positions,
		PrimaryPosition:        sqlutil.ToSqlString(m.PrimaryPosition),
		Status:                 string(m.Status),
		JoinDate:               m.JoinDate,
		LeaveDate:              sqlutil.ToSqlTime(m.LeaveDate),
		GuestPlayerAgreementID: sqlutil.ToNullInt64(m.GuestPlayerAgreementID),
	})
	if sqlutil.IsUniqueViolation(err) {
		return nil, apperr.NewConflict(apperr.ErrDuplicateMembership)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create team member: %w", err)
	}
	return dbMemberToModel(member), nil
}

func (r *Repository) UpdateMembershipPositions(ctx context.Context, upd MembershipPositions, asOf time.Time) (*models.TeamMember, error) {
	positions, err := encodePositions(upd.Positions)
	if err != nil {
		return nil, err
	}

	member, err := r.queries.UpdateMemberPositions(ctx, db.UpdateMemberPositionsParams{
		Positions:       positions,
		PrimaryPosition: sqlutil.ToSqlString(upd.PrimaryPosition),
		JerseyNumber:    sqlutil.ToSqlInt32(upd.JerseyNumber),
		JerseyNumberAlt: sqlutil.ToSqlInt32(upd.JerseyNumberAlt),
		TeamID:          upd.TeamID,
		UserID:          upd.UserID,
		AsOf:            asOf,
	})
	if sqlutil.IsNoRows(err) {
		return nil, fmt.Errorf("membership of user %d on team %d: %w", upd.UserID, upd.TeamID, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update member positions: %w", err)
	}
	return dbMemberToModel(member), nil
}

func (r *Repository) EndMembership(ctx context.Context, teamID, userID int64, role models.MemberRole, leave Leave) (*models.TeamMember, error) {
	member, err := r.queries.EndMembership(ctx, db.EndMembershipParams{
		LeaveDate:   sql.NullTime{Time: leave.Date, Valid: true},
		LeaveReason: sqlutil.ToSqlString(leave.Reason),
		RemovedBy:   sqlutil.NullInt64Of(leave.ActorID),
		TeamID:      teamID,
		UserID:      userID,
		Role:        string(role),
	})
	if sqlutil.IsNoRows(err) {
		return nil, fmt.Errorf("current %s membership of user %d on team %d: %w", role, userID, teamID, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to end membership: %w", err)
	}
	return dbMemberToModel(member), nil
}

func (r *Repository) DeactivateAssignments(ctx context.Context, memberID int64) (int64, error) {
	n, err := r.queries.DeactivateMemberAssignments(ctx, memberID)
	if err != nil {
		return 0, fmt.Errorf("failed to deactivate assignments: %w", err)
	}
	return n, nil
}

func (r *Repository) InsertAssignment(ctx context.Context, memberID int64, pj PositionJersey, assigned time.Time) (*models.PlayerPositionAssignment, error) {
	a, err := r.queries.CreatePositionAssignment(ctx, db.CreatePositionAssignmentParams{
		TeamMemberID: memberID,
		Position:     pj.Position,
		JerseyNumber: sqlutil.ToSqlInt32(pj.JerseyNumber),
		AssignedDate: assigned,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %s assignment: %w", pj.Position, err)
	}
	return &models.PlayerPositionAssignment{
		ID:           a.ID,
		TeamMemberID: a.TeamMemberID,
		Position:     a.Position,
		JerseyNumber: sqlutil.FromSqlInt32(a.JerseyNumber),
		IsActive:     a.IsActive,
		AssignedDate: a.AssignedDate,
	}, nil
}

func (r *Repository) CountActiveAssignments(ctx context.Context, memberID int64) (int64, error) {
	n, err := r.queries.CountActiveMemberAssignments(ctx, memberID)
	if err != nil {
		return 0, fmt.Errorf("failed to count assignments: %w", err)
	}
	return n, nil
}

func (r *Repository) InsertGuestGame(ctx context.Context, memberID, gameID int64) error {
	err := r.queries.CreateGuestPlayerGame(ctx, db.CreateGuestPlayerGameParams{
		TeamMemberID: memberID,
		GameID:       gameID,
	})
	if err != nil {
		return fmt.Errorf("failed to link guest to game %d: %w", gameID, err)
	}
	return nil
}

func (r *Repository) CountJerseyConflicts(ctx context.Context, teamID int64, position string, jersey int, asOf time.Time, excludeUserID int64) (int64, error) {
	n, err := r.queries.CountJerseyConflicts(ctx, db.CountJerseyConflictsParams{
		TeamID:        teamID,
		Position:      position,
		JerseyNumber:  int32(jersey),
		AsOf:          asOf,
		ExcludeUserID: excludeUserID,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count jersey conflicts: %w", err)
	}
	return n, nil
}

func (r *Repository) ListActivePlayers(ctx context.Context, teamID int64, asOf time.Time) ([]models.TeamMember, error) {
	members, err := r.queries.ListActivePlayers(ctx, db.ListActivePlayersParams{TeamID: teamID, AsOf: asOf})
	if err != nil {
		return nil, fmt.Errorf("failed to list active players: %w", err)
	}
	return dbMembersToModels(members), nil
}

func (r *Repository) ListActiveAssignments(ctx context.Context, teamID int64, asOf time.Time) ([]models.ActiveAssignment, error) {
	rows, err := r.queries.ListActiveTeamAssignments(ctx, db.ListActiveTeamAssignmentsParams{TeamID: teamID, AsOf: asOf})
	if err != nil {
		return nil, fmt.Errorf("failed to list active assignments: %w", err)
	}

	out := make([]models.ActiveAssignment, len(rows))
	for i, row := range rows {
		out[i] = models.ActiveAssignment{
			AssignmentID:       row.ID,
			TeamMemberID:       row.TeamMemberID,
			UserID:             row.UserID,
			Position:           row.Position,
			JerseyNumber:       sqlutil.FromSqlInt32(row.JerseyNumber),
			MemberJerseyNumber: sqlutil.FromSqlInt32(row.MemberJerseyNumber),
		}
	}
	return out, nil
}

func (r *Repository) ListRoster(ctx context.Context, teamID int64, includeFormer bool, asOf time.Time) ([]models.TeamMember, error) {
	members, err := r.queries.ListRoster(ctx, db.ListRosterParams{
		TeamID:        teamID,
		IncludeFormer: includeFormer,
		AsOf:          asOf,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list roster: %w", err)
	}
	return dbMembersToModels(members), nil
}

func (r *Repository) CountRosterSlotsUsed(ctx context.Context, teamID int64, asOf time.Time) (int64, error) {
	n, err := r.queries.CountRosterSlotsUsed(ctx, db.CountRosterSlotsUsedParams{TeamID: teamID, AsOf: asOf})
	if err != nil {
		return 0, fmt.Errorf("failed to count roster slots: %w", err)
	}
	return n, nil
}

func (r *Repository) UpsertAttendance(ctx context.Context, a models.Attendance) error {
	err := r.queries.UpsertAttendance(ctx, db.UpsertAttendanceParams{
		EventID:      a.EventID,
		TeamMemberID: a.TeamMemberID,
		Status:       string(a.Status),
		Notes:        sqlutil.ToSqlString(a.Notes),
		RecordedBy:   a.RecordedBy,
		RecordedAt:   a.RecordedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert attendance: %w", err)
	}
	return nil
}

func (r *Repository) InsertChangeLog(ctx context.Context, memberID, actorID int64, change models.FieldChange, at time.Time) error {
	err := r.queries.InsertRosterChange(ctx, db.InsertRosterChangeParams{
		TeamMemberID: memberID,
		ChangedBy:    actorID,
		FieldName:    change.FieldName,
		OldValue:     sqlutil.ToSqlString(change.OldValue),
		NewValue:     sqlutil.ToSqlString(change.NewValue),
		ChangedAt:    at,
	})
	if err != nil {
		return fmt.Errorf("failed to append roster change: %w", err)
	}
	return nil
}

func (r *Repository) ListChangeLog(ctx context.Context, memberID int64) ([]models.ChangeLogEntry, error) {
	rows, err := r.queries.ListRosterChanges(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to list roster changes: %w", err)
	}

	out := make([]models.ChangeLogEntry, len(rows))
	for i, row := range rows {
		out[i] = models.ChangeLogEntry{
			ID:        row.ID,
			EntityID:  row.TeamMemberID,
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

func encodePositions(positions []string) (pqtype.NullRawMessage, error) {
	if positions == nil {
		positions = []string{}
	}
	data, err := json.Marshal(positions)
	if err != nil {
		return pqtype.NullRawMessage{}, fmt.Errorf("failed to encode positions: %w", err)
	}
	return pqtype.NullRawMessage{RawMessage: data, Valid: true}, nil
}

func decodePositions(memberID int64, raw pqtype.NullRawMessage) []string {
	positions := []string{}
	if !raw.Valid || len(raw.RawMessage) == 0 {
		return positions
	}
	if err := json.Unmarshal(raw.RawMessage, &positions); err != nil {
		log.Warn().Err(err).Int64("member_id", memberID).Msg("unreadable positions column, treating as empty")
		return []string{}
	}
	return positions
}

// dbTeamToModel keeps only what the roster rules read
func dbTeamToModel(t db.Team) *models.Team {
	return &models.Team{
		ID:         t.ID,
		Name:       t.Name,
		SeasonID:   t.SeasonID,
		MaxPlayers: int(t.MaxPlayers),
		DeletedAt:  sqlutil.FromSqlTime(t.DeletedAt),
	}
}

func dbMemberToModel(m db.TeamMember) *models.TeamMember {
	return &models.TeamMember{
		ID:                     m.ID,
		TeamID:                 m.TeamID,
		UserID:                 m.UserID,
		Role:                   models.MemberRole(m.Role),
		TeamPriority:           models.TeamPriority(m.TeamPriority),
		JerseyNumber:           sqlutil.FromSqlInt32(m.JerseyNumber),
		JerseyNumberAlt:        sqlutil.FromSqlInt32(m.JerseyNumberAlt),
		Positions:              decodePositions(m.ID, m.Positions),
		PrimaryPosition:        sqlutil.FromSqlStringPtr(m.PrimaryPosition),
		Status:                 models.MemberStatus(m.Status),
		JoinDate:               m.JoinDate,
		LeaveDate:              sqlutil.FromSqlTime(m.LeaveDate),
		LeaveReason:            sqlutil.FromSqlStringPtr(m.LeaveReason),
		RemovedBy:              sqlutil.FromNullInt64(m.RemovedBy),
		GuestPlayerAgreementID: sqlutil.FromNullInt64(m.GuestPlayerAgreementID),
	}
}

func dbMembersToModels(members []db.TeamMember) []models.TeamMember {
	out := make([]models.TeamMember, len(members))
	for i, m := range members {
		out[i] = *dbMemberToModel(m)
	}
	return out
}
