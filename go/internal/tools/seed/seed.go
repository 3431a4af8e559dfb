// Package seed loads team fixtures into Postgres.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mcdev12/rosterdesk/go/internal/models"
	"github.com/rs/zerolog/log"
)

// Team mirrors one entry of the fixture file
type Team struct {
	Name           string          `json:"name"`
	LogoURL        *string         `json:"logo_url"`
	AgeGroup       models.AgeGroup `json:"age_group"`
	Division       models.Division `json:"division"`
	SeasonID       int64           `json:"season_id"`
	PrimaryCoachID *int64          `json:"primary_coach_id"`
	HomeFieldID    *int64          `json:"home_field_id"`
	MaxPlayers     int             `json:"max_players"`
}

type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type Summary struct {
	Total    int
	Inserted int
	Skipped  int
	Errors   int
}

func LoadTeams(path string) ([]Team, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	var teams []Team
	if err := json.Unmarshal(data, &teams); err != nil {
		return nil, fmt.Errorf("unmarshal fixture: %w", err)
	}
	return teams, nil
}

// Teams inserts each fixture, skipping names already live in their season.
// A failing row is counted and logged; the remaining rows are still tried.
func Teams(ctx context.Context, db Execer, teams []Team) Summary {
	sum := Summary{Total: len(teams)}
	for _, t := range teams {
		tag, err := db.Exec(ctx, `
            INSERT INTO teams (
              name, logo_url, age_group, division, season_id,
              primary_coach_id, home_field_id, max_players
            ) VALUES (
              $1,$2,$3,$4,$5,$6,$7,$8
            )
            ON CONFLICT (season_id, lower(name)) WHERE deleted_at IS NULL DO NOTHING
        `,
			t.Name, t.LogoURL, string(t.AgeGroup), string(t.Division), t.SeasonID,
			t.PrimaryCoachID, t.HomeFieldID, t.MaxPlayers,
		)
		if err != nil {
			log.Error().Err(err).Str("name", t.Name).Int64("season_id", t.SeasonID).Msg("failed to seed team")
			sum.Errors++
			continue
		}
		if tag.RowsAffected() == 1 {
			sum.Inserted++
		} else {
			sum.Skipped++
		}
	}
	return sum
}
