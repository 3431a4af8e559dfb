package teams

import (
	"strconv"
	"time"

	"github.com/mcdev12/rosterdesk/go/internal/models"
)

// diffTeams returns one change per audited field whose value differs
func diffTeams(old, updated *models.Team) []models.FieldChange {
	var changes []models.FieldChange
	add := func(field string, before, after *string) {
		if sameText(before, after) {
			return
		}
		changes = append(changes, models.FieldChange{FieldName: field, OldValue: before, NewValue: after})
	}

	add("name", text(old.Name), text(updated.Name))
	add("logo_url", old.LogoURL, updated.LogoURL)
	add("age_group", text(string(old.AgeGroup)), text(string(updated.AgeGroup)))
	add("division", text(string(old.Division)), text(string(updated.Division)))
	add("season_id", idText(&old.SeasonID), idText(&updated.SeasonID))
	add("primary_coach_id", idText(old.PrimaryCoachID), idText(updated.PrimaryCoachID))
	add("home_field_id", idText(old.HomeFieldID), idText(updated.HomeFieldID))
	add("max_players", text(strconv.Itoa(old.MaxPlayers)), text(strconv.Itoa(updated.MaxPlayers)))
	return changes
}

func text(s string) *string {
	return &s
}

func idText(id *int64) *string {
	if id == nil {
		return nil
	}
	return text(strconv.FormatInt(*id, 10))
}

func timeText(t time.Time) *string {
	return text(t.UTC().Format(time.RFC3339))
}

func sameText(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
