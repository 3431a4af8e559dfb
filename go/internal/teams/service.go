package teams

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
	"github.com/mcdev12/rosterdesk/go/internal/models"
	"github.com/mcdev12/rosterdesk/go/internal/rpc"
)

const ServiceName = "rosterdesk.team.v1.TeamService"

const (
	CreateTeamProcedure             = "/" + ServiceName + "/CreateTeam"
	UpdateTeamProcedure             = "/" + ServiceName + "/UpdateTeam"
	GetTeamProcedure                = "/" + ServiceName + "/GetTeam"
	ArchiveTeamProcedure            = "/" + ServiceName + "/ArchiveTeam"
	ListTeamsProcedure              = "/" + ServiceName + "/ListTeams"
	CheckCoachAvailabilityProcedure = "/" + ServiceName + "/CheckCoachAvailability"
	AssignCoachProcedure            = "/" + ServiceName + "/AssignCoach"
	RemoveCoachProcedure            = "/" + ServiceName + "/RemoveCoach"
	BulkActionProcedure             = "/" + ServiceName + "/BulkAction"
	GetAuditLogProcedure            = "/" + ServiceName + "/GetAuditLog"
)

// TeamApp defines what the service layer needs from the teams application
type TeamApp interface {
	CreateTeam(ctx context.Context, actorID int64, in TeamInput) (*models.Team, error)
	UpdateTeam(ctx context.Context, actorID, teamID int64, in TeamInput) (*models.Team, error)
	GetTeam(ctx context.Context, teamID int64) (*models.Team, error)
	ArchiveTeam(ctx context.Context, actorID, teamID int64, reason *string) error
	ListTeams(ctx context.Context, seasonID int64, includeArchived bool) ([]models.Team, error)
	CheckCoachAvailability(ctx context.Context, coachID, teamID int64) (*CoachAvailability, error)
	AssignCoach(ctx context.Context, actorID, teamID, coachID int64, role CoachRole) (*CoachAssignment, error)
	RemoveCoach(ctx context.Context, actorID, teamID, coachID int64, reason *string) (bool, error)
	BulkAction(ctx context.Context, actorID int64, req BulkRequest) (*BulkResult, error)
	GetAuditLog(ctx context.Context, teamID int64) ([]models.ChangeLogEntry, error)
}

type TeamResult struct {
	Team *models.Team `json:"team"`
}

type UpdateTeamCall struct {
	TeamID int64 `json:"team_id"`
	TeamInput
}

type TeamCall struct {
	TeamID int64 `json:"team_id"`
}

type ArchiveTeamCall struct {
	TeamID int64   `json:"team_id"`
	Reason *string `json:"reason,omitempty"`
}

type ArchiveTeamResult struct {
	Archived bool `json:"archived"`
}

type ListTeamsCall struct {
	SeasonID        int64 `json:"season_id"`
	IncludeArchived bool  `json:"include_archived"`
}

type ListTeamsResult struct {
	Teams []models.Team `json:"teams"`
}

type CoachCall struct {
	TeamID  int64     `json:"team_id"`
	CoachID int64     `json:"coach_id"`
	Role    CoachRole `json:"role,omitempty"`
	Reason  *string   `json:"reason,omitempty"`
}

type RemoveCoachResult struct {
	Removed bool `json:"removed"`
}

type GetAuditLogResult struct {
	Entries []models.ChangeLogEntry `json:"entries"`
}

// Service exposes the teams app over connect with JSON bodies
type Service struct {
	app    TeamApp
	actors rpc.ActorResolver
}

// NewService creates a new teams service
func NewService(app TeamApp, actors rpc.ActorResolver) *Service {
	return &Service{
		app:    app,
		actors: actors,
	}
}

// Handler returns the path prefix and handler to mount on a mux
func (s *Service) Handler(opts ...connect.HandlerOption) (string, http.Handler) {
	opts = rpc.HandlerOptions(opts...)
	mux := http.NewServeMux()
	mux.Handle(CreateTeamProcedure, connect.NewUnaryHandler(CreateTeamProcedure, s.CreateTeam, opts...))
	mux.Handle(UpdateTeamProcedure, connect.NewUnaryHandler(UpdateTeamProcedure, s.UpdateTeam, opts...))
	mux.Handle(GetTeamProcedure, connect.NewUnaryHandler(GetTeamProcedure, s.GetTeam, opts...))
	mux.Handle(ArchiveTeamProcedure, connect.NewUnaryHandler(ArchiveTeamProcedure, s.ArchiveTeam, opts...))
	mux.Handle(ListTeamsProcedure, connect.NewUnaryHandler(ListTeamsProcedure, s.ListTeams, opts...))
	mux.Handle(CheckCoachAvailabilityProcedure, connect.NewUnaryHandler(CheckCoachAvailabilityProcedure, s.CheckCoachAvailability, opts...))
	mux.Handle(AssignCoachProcedure, connect.NewUnaryHandler(AssignCoachProcedure, s.AssignCoach, opts...))
	mux.Handle(RemoveCoachProcedure, connect.NewUnaryHandler(RemoveCoachProcedure, s.RemoveCoach, opts...))
	mux.Handle(BulkActionProcedure, connect.NewUnaryHandler(BulkActionProcedure, s.BulkAction, opts...))
	mux.Handle(GetAuditLogProcedure, connect.NewUnaryHandler(GetAuditLogProcedure, s.GetAuditLog, opts...))
	return "/" + ServiceName + "/", mux
}

func (s *Service) CreateTeam(ctx context.Context, req *connect.Request[TeamInput]) (*connect.Response[TeamResult], error) {
	team, err := s.app.CreateTeam(ctx, s.actors.Resolve(req.Header()), *req.Msg)
	if err != nil {
		return nil, rpc.Error(err)
	}
	return connect.NewResponse(&TeamResult{Team: team}), nil
}

func (s *Service) UpdateTeam(ctx context.Context, req *connect.Request[UpdateTeamCall]) (*connect.Response[TeamResult], error) {
	if req.Msg.TeamID <= 0 {
		return nil, rpc.InvalidArgument("team_id", "is required")
	}
	team, err := s.app.UpdateTeam(ctx, s.actors.Resolve(req.Header()), req.Msg.TeamID, req.Msg.TeamInput)
	if err != nil {
		return nil, rpc.Error(err)
	}
	return connect.NewResponse(&TeamResult{Team: team}), nil
}

func (s *Service) GetTeam(ctx context.Context, req *connect.Request[TeamCall]) (*connect.Response[TeamResult], error) {
	team, err := s.app.GetTeam(ctx, req.Msg.TeamID)
	if err != nil {
		return nil, rpc.Error(err)
	}
	return connect.NewResponse(&TeamResult{Team: team}), nil
}

func (s *Service) ArchiveTeam(ctx context.Context, req *connect.Request[ArchiveTeamCall]) (*connect.Response[ArchiveTeamResult], error) {
	if err := s.app.ArchiveTeam(ctx, s.actors.Resolve(req.Header()), req.Msg.TeamID, req.Msg.Reason); err != nil {
		return nil, rpc.Error(err)
	}
	return connect.NewResponse(&ArchiveTeamResult{Archived: true}), nil
}

func (s *Service) ListTeams(ctx context.Context, req *connect.Request[ListTeamsCall]) (*connect.Response[ListTeamsResult], error) {
	teams, err := s.app.ListTeams(ctx, req.Msg.SeasonID, req.Msg.IncludeArchived)
	if err != nil {
		return nil, rpc.Error(err)
	}
	return connect.NewResponse(&ListTeamsResult{Teams: teams}), nil
}

func (s *Service) CheckCoachAvailability(ctx context.Context, req *connect.Request[CoachCall]) (*connect.Response[CoachAvailability], error) {
	res, err := s.app.CheckCoachAvailability(ctx, req.Msg.CoachID, req.Msg.TeamID)
	if err != nil {
		return nil, rpc.Error(err)
	}
	return connect.NewResponse(res), nil
}

func (s *Service) AssignCoach(ctx context.Context, req *connect.Request[CoachCall]) (*connect.Response[CoachAssignment], error) {
	role := req.Msg.Role
	if role == "" {
		role = CoachRolePrimary
	}
	res, err := s.app.AssignCoach(ctx, s.actors.Resolve(req.Header()), req.Msg.TeamID, req.Msg.CoachID, role)
	if err != nil {
		return nil, rpc.Error(err)
	}
	return connect.NewResponse(res), nil
}

func (s *Service) RemoveCoach(ctx context.Context, req *connect.Request[CoachCall]) (*connect.Response[RemoveCoachResult], error) {
	removed, err := s.app.RemoveCoach(ctx, s.actors.Resolve(req.Header()), req.Msg.TeamID, req.Msg.CoachID, req.Msg.Reason)
	if err != nil {
		return nil, rpc.Error(err)
	}
	return connect.NewResponse(&RemoveCoachResult{Removed: removed}), nil
}

func (s *Service) BulkAction(ctx context.Context, req *connect.Request[BulkRequest]) (*connect.Response[BulkResult], error) {
	res, err := s.app.BulkAction(ctx, s.actors.Resolve(req.Header()), *req.Msg)
	if err != nil {
		return nil, rpc.Error(err)
	}
	return connect.NewResponse(res), nil
}

func (s *Service) GetAuditLog(ctx context.Context, req *connect.Request[TeamCall]) (*connect.Response[GetAuditLogResult], error) {
	entries, err := s.app.GetAuditLog(ctx, req.Msg.TeamID)
	if err != nil {
		return nil, rpc.Error(err)
	}
	return connect.NewResponse(&GetAuditLogResult{Entries: entries}), nil
}
