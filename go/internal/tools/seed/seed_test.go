package seed

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mcdev12/rosterdesk/go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	seen map[string]bool
}

func (f *fakeExec) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	name := args[0].(string)
	if name == "" {
		return pgconn.CommandTag{}, errors.New("null value in column \"name\"")
	}
	if f.seen[name] {
		return pgconn.NewCommandTag("INSERT 0 0"), nil
	}
	f.seen[name] = true
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func TestTeamsCountsOutcomes(t *testing.T) {
	db := &fakeExec{seen: map[string]bool{"Comets": true}}
	sum := Teams(context.Background(), db, []Team{
		{Name: "Hornets", SeasonID: 3},
		{Name: "Comets", SeasonID: 3},
		{Name: "", SeasonID: 3},
	})
	assert.Equal(t, Summary{Total: 3, Inserted: 1, Skipped: 1, Errors: 1}, sum)
}

func TestLoadTeams(t *testing.T) {
	path := filepath.Join(t.TempDir(), "teams.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"name":"Hornets","age_group":"U12","division":"Elite","season_id":3,"max_players":18}]`), 0o600))

	teams, err := LoadTeams(path)
	require.NoError(t, err)
	require.Len(t, teams, 1)
	assert.Equal(t, models.DivisionElite, teams[0].Division)
	assert.Equal(t, 18, teams[0].MaxPlayers)

	_, err = LoadTeams(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestShippedFixtureParses(t *testing.T) {
	teams, err := LoadTeams("../../assets/teams.json")
	require.NoError(t, err)
	assert.NotEmpty(t, teams)
}
