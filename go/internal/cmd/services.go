package main

import (
	"database/sql"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/rosterdesk/go/internal/config"
	"github.com/mcdev12/rosterdesk/go/internal/roster"
	"github.com/mcdev12/rosterdesk/go/internal/rpc"
	"github.com/mcdev12/rosterdesk/go/internal/teams"
	"github.com/mcdev12/rosterdesk/go/internal/validation"
)

type Services struct {
	Roster *roster.Service
	Teams  *teams.Service
}

func setupServices(database *sql.DB, cfg config.Config) *Services {
	// Database layer → Repository layer → App layer → Service layer
	clock := clockwork.NewRealClock()
	validate := validation.New()
	actors := rpc.ActorResolver{Default: cfg.Server.DefaultActorID}

	// Teams
	teamsRepo := teams.NewRepository(database)
	teamsApp := teams.NewApp(teamsRepo, clock, validate)
	teamsService := teams.NewService(teamsApp, actors)

	// Roster
	rosterRepo := roster.NewRepository(database)
	rosterApp := roster.NewApp(rosterRepo, rosterRules(cfg), clock, validate)
	rosterService := roster.NewService(rosterApp, actors)

	return &Services{
		Roster: rosterService,
		Teams:  teamsService,
	}
}
