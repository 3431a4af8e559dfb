package roster

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
	"github.com/mcdev12/rosterdesk/go/internal/models"
	"github.com/mcdev12/rosterdesk/go/internal/rpc"
)

const ServiceName = "rosterdesk.roster.v1.RosterService"

const (
	AddPlayerProcedure             = "/" + ServiceName + "/AddPlayer"
	AddGuestPlayerProcedure        = "/" + ServiceName + "/AddGuestPlayer"
	UpdatePlayerPositionsProcedure = "/" + ServiceName + "/UpdatePlayerPositions"
	RemovePlayerProcedure          = "/" + ServiceName + "/RemovePlayer"
	CheckJerseyConflictsProcedure  = "/" + ServiceName + "/CheckJerseyConflicts"
	PositionCoverageProcedure      = "/" + ServiceName + "/PositionCoverage"
	JerseyReportProcedure          = "/" + ServiceName + "/JerseyReport"
	RecordAttendanceProcedure      = "/" + ServiceName + "/RecordAttendance"
	GetRosterProcedure             = "/" + ServiceName + "/GetRoster"
	GetChangeLogProcedure          = "/" + ServiceName + "/GetChangeLog"
)

// RosterApp defines what the service layer needs from the roster application
type RosterApp interface {
	AddPlayer(ctx context.Context, actorID, teamID int64, req AddPlayerRequest) (int64, error)
	AddGuestPlayer(ctx context.Context, actorID, teamID int64, req AddGuestPlayerRequest) (int64, error)
	UpdatePlayerPositions(ctx context.Context, actorID, teamID, userID int64, req UpdatePositionsRequest) (*PositionsUpdate, error)
	RemovePlayer(ctx context.Context, actorID, teamID, userID int64, reason *string) (bool, error)
	CheckJerseyConflicts(ctx context.Context, teamID, excludeUserID int64, pairs []PositionJersey) ([]string, error)
	PositionCoverage(ctx context.Context, teamID int64) (*CoverageReport, error)
	JerseyReport(ctx context.Context, teamID int64) (*JerseyReport, error)
	RecordAttendance(ctx context.Context, actorID int64, records []AttendanceRecord) (*AttendanceResult, error)
	GetRoster(ctx context.Context, teamID int64, includeFormer bool) ([]models.TeamMember, error)
	GetChangeLog(ctx context.Context, memberID int64) ([]models.ChangeLogEntry, error)
}

type AddPlayerCall struct {
	TeamID int64 `json:"team_id"`
	AddPlayerRequest
}

type AddGuestPlayerCall struct {
	TeamID int64 `json:"team_id"`
	AddGuestPlayerRequest
}

type MemberCreated struct {
	MemberID int64 `json:"member_id"`
}

type UpdatePositionsCall struct {
	TeamID int64 `json:"team_id"`
	UserID int64 `json:"user_id"`
	UpdatePositionsRequest
}

type RemovePlayerCall struct {
	TeamID int64   `json:"team_id"`
	UserID int64   `json:"user_id"`
	Reason *string `json:"reason,omitempty"`
}

type RemovePlayerResult struct {
	Removed bool `json:"removed"`
}

type CheckJerseyConflictsCall struct {
	TeamID              int64            `json:"team_id"`
	UserID              int64            `json:"user_id,omitempty"`
	PositionAssignments []PositionJersey `json:"position_assignments"`
}

type CheckJerseyConflictsResult struct {
	Conflicts []string `json:"conflicts"`
}

type TeamCall struct {
	TeamID int64 `json:"team_id"`
}

type RecordAttendanceCall struct {
	Records []AttendanceRecord `json:"records"`
}

type GetRosterCall struct {
	TeamID        int64 `json:"team_id"`
	IncludeFormer bool  `json:"include_former"`
}

type GetRosterResult struct {
	Members []models.TeamMember `json:"members"`
}

type GetChangeLogCall struct {
	MemberID int64 `json:"member_id"`
}

type GetChangeLogResult struct {
	Entries []models.ChangeLogEntry `json:"entries"`
}

// Service exposes the roster app over connect with JSON bodies
type Service struct {
	app    RosterApp
	actors rpc.ActorResolver
}

// NewService creates a new roster service
func NewService(app RosterApp, actors rpc.ActorResolver) *Service {
	return &Service{
		app:    app,
		actors: actors,
	}
}

// Handler returns the path prefix and handler to mount on a mux
func (s *Service) Handler(opts ...connect.HandlerOption) (string, http.Handler) {
	opts = rpc.HandlerOptions(opts...)
	mux := http.NewServeMux()
	mux.Handle(AddPlayerProcedure, connect.NewUnaryHandler(AddPlayerProcedure, s.AddPlayer, opts...))
	mux.Handle(AddGuestPlayerProcedure, connect.NewUnaryHandler(AddGuestPlayerProcedure, s.AddGuestPlayer, opts...))
	mux.Handle(UpdatePlayerPositionsProcedure, connect.NewUnaryHandler(UpdatePlayerPositionsProcedure, s.UpdatePlayerPositions, opts...))
	mux.Handle(RemovePlayerProcedure, connect.NewUnaryHandler(RemovePlayerProcedure, s.RemovePlayer, opts...))
	mux.Handle(CheckJerseyConflictsProcedure, connect.NewUnaryHandler(CheckJerseyConflictsProcedure, s.CheckJerseyConflicts, opts...))
	mux.Handle(PositionCoverageProcedure, connect.NewUnaryHandler(PositionCoverageProcedure, s.PositionCoverage, opts...))
	mux.Handle(JerseyReportProcedure, connect.NewUnaryHandler(JerseyReportProcedure, s.JerseyReport, opts...))
	mux.Handle(RecordAttendanceProcedure, connect.NewUnaryHandler(RecordAttendanceProcedure, s.RecordAttendance, opts...))
	mux.Handle(GetRosterProcedure, connect.NewUnaryHandler(GetRosterProcedure, s.GetRoster, opts...))
	mux.Handle(GetChangeLogProcedure, connect.NewUnaryHandler(GetChangeLogProcedure, s.GetChangeLog, opts...))
	return "/" + ServiceName + "/", mux
}

func (s *Service) AddPlayer(ctx context.Context, req *connect.Request[AddPlayerCall]) (*connect.Response[MemberCreated], error) {
	if req.Msg.TeamID <= 0 {
		return nil, rpc.InvalidArgument("team_id", "is required")
	}
	id, err := s.app.AddPlayer(ctx, s.actors.Resolve(req.Header()), req.Msg.TeamID, req.Msg.AddPlayerRequest)
	if err != nil {
		return nil, rpc.Error(err)
	}
	return connect.NewResponse(&MemberCreated{MemberID: id}), nil
}

func (s *Service) AddGuestPlayer(ctx context.Context, req *connect.Request[AddGuestPlayerCall]) (*connect.Response[MemberCreated], error) {
	if req.Msg.TeamID <= 0 {
		return nil, rpc.InvalidArgument("team_id", "is required")
	}
	id, err := s.app.AddGuestPlayer(ctx, s.actors.Resolve(req.Header()), req.Msg.TeamID, req.Msg.AddGuestPlayerRequest)
	if err != nil {
		return nil, rpc.Error(err)
	}
	return connect.NewResponse(&MemberCreated{MemberID: id}), nil
}

func (s *Service) UpdatePlayerPositions(ctx context.Context, req *connect.Request[UpdatePositionsCall]) (*connect.Response[PositionsUpdate], error) {
	if req.Msg.TeamID <= 0 {
		return nil, rpc.InvalidArgument("team_id", "is required")
	}
	if req.Msg.UserID <= 0 {
		return nil, rpc.InvalidArgument("user_id", "is required")
	}
	res, err := s.app.UpdatePlayerPositions(ctx, s.actors.Resolve(req.Header()), req.Msg.TeamID, req.Msg.UserID, req.Msg.UpdatePositionsRequest)
	if err != nil {
		return nil, rpc.Error(err)
	}
	return connect.NewResponse(res), nil
}

func (s *Service) RemovePlayer(ctx context.Context, req *connect.Request[RemovePlayerCall]) (*connect.Response[RemovePlayerResult], error) {
	removed, err := s.app.RemovePlayer(ctx, s.actors.Resolve(req.Header()), req.Msg.TeamID, req.Msg.UserID, req.Msg.Reason)
	if err != nil {
		return nil, rpc.Error(err)
	}
	return connect.NewResponse(&RemovePlayerResult{Removed: removed}), nil
}

func (s *Service) CheckJerseyConflicts(ctx context.Context, req *connect.Request[CheckJerseyConflictsCall]) (*connect.Response[CheckJerseyConflictsResult], error) {
	conflicts, err := s.app.CheckJerseyConflicts(ctx, req.Msg.TeamID, req.Msg.UserID, req.Msg.PositionAssignments)
	if err != nil {
		return nil, rpc.Error(err)
	}
	return connect.NewResponse(&CheckJerseyConflictsResult{Conflicts: conflicts}), nil
}

func (s *Service) PositionCoverage(ctx context.Context, req *connect.Request[TeamCall]) (*connect.Response[CoverageReport], error) {
	report, err := s.app.PositionCoverage(ctx, req.Msg.TeamID)
	if err != nil {
		return nil, rpc.Error(err)
	}
	return connect.NewResponse(report), nil
}

func (s *Service) JerseyReport(ctx context.Context, req *connect.Request[TeamCall]) (*connect.Response[JerseyReport], error) {
	report, err := s.app.JerseyReport(ctx, req.Msg.TeamID)
	if err != nil {
		return nil, rpc.Error(err)
	}
	return connect.NewResponse(report), nil
}

func (s *Service) RecordAttendance(ctx context.Context, req *connect.Request[RecordAttendanceCall]) (*connect.Response[AttendanceResult], error) {
	res, err := s.app.RecordAttendance(ctx, s.actors.Resolve(req.Header()), req.Msg.Records)
	if err != nil {
		return nil, rpc.Error(err)
	}
	return connect.NewResponse(res), nil
}

func (s *Service) GetRoster(ctx context.Context, req *connect.Request[GetRosterCall]) (*connect.Response[GetRosterResult], error) {
	members, err := s.app.GetRoster(ctx, req.Msg.TeamID, req.Msg.IncludeFormer)
	if err != nil {
		return nil, rpc.Error(err)
	}
	return connect.NewResponse(&GetRosterResult{Members: members}), nil
}

func (s *Service) GetChangeLog(ctx context.Context, req *connect.Request[GetChangeLogCall]) (*connect.Response[GetChangeLogResult], error) {
	entries, err := s.app.GetChangeLog(ctx, req.Msg.MemberID)
	if err != nil {
		return nil, rpc.Error(err)
	}
	return connect.NewResponse(&GetChangeLogResult{Entries: entries}), nil
}
