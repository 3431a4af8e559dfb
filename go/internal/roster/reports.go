package roster

import (
	"sort"

	"github.com/mcdev12/rosterdesk/go/internal/models"
)

// bucketFor places one (member, position) pair: guests count as guests,
// a primary-tier member's primary position counts as primary, anything else
// counts as secondary.
func bucketFor(m models.TeamMember, position string) models.TeamPriority {
	if m.TeamPriority == models.TeamPriorityGuest {
		return models.TeamPriorityGuest
	}
	if m.TeamPriority == models.TeamPriorityPrimary && m.PrimaryPosition != nil && *m.PrimaryPosition == position {
		return models.TeamPriorityPrimary
	}
	return models.TeamPrioritySecondary
}

func buildCoverageReport(teamID int64, members []models.TeamMember, minimum int) *CoverageReport {
	report := &CoverageReport{
		TeamID:                   teamID,
		PositionCoverage:         make(map[string]*PositionBuckets),
		PositionsNeedingCoverage: []CoverageShortfall{},
	}

	for _, m := range members {
		ref := PlayerRef{MemberID: m.ID, UserID: m.UserID, JerseyNumber: m.JerseyNumber}
		for _, pos := range m.Positions {
			b, ok := report.PositionCoverage[pos]
			if !ok {
				b = &PositionBuckets{
					PrimaryPlayers:   []PlayerRef{},
					SecondaryPlayers: []PlayerRef{},
					GuestPlayers:     []PlayerRef{},
				}
				report.PositionCoverage[pos] = b
			}
			switch bucketFor(m, pos) {
			case models.TeamPriorityPrimary:
				b.PrimaryPlayers = append(b.PrimaryPlayers, ref)
			case models.TeamPriorityGuest:
				b.GuestPlayers = append(b.GuestPlayers, ref)
			default:
				b.SecondaryPlayers = append(b.SecondaryPlayers, ref)
			}
		}
	}

	for pos, b := range report.PositionCoverage {
		current := len(b.PrimaryPlayers) + len(b.SecondaryPlayers)
		if current < minimum {
			report.PositionsNeedingCoverage = append(report.PositionsNeedingCoverage, CoverageShortfall{
				Position: pos,
				Current:  current,
				Needed:   minimum - current,
			})
		}
	}
	sort.Slice(report.PositionsNeedingCoverage, func(i, j int) bool {
		return report.PositionsNeedingCoverage[i].Position < report.PositionsNeedingCoverage[j].Position
	})

	return report
}

// effectiveJersey is the assignment override, else the member's own number
func effectiveJersey(a models.ActiveAssignment) *int {
	if a.JerseyNumber != nil {
		return a.JerseyNumber
	}
	return a.MemberJerseyNumber
}

func buildJerseyReport(teamID int64, assignments []models.ActiveAssignment, rules Rules) *JerseyReport {
	report := &JerseyReport{
		TeamID:            teamID,
		JerseyAssignments: make(map[int]map[string][]PlayerRef),
		Conflicts:         []JerseyConflict{},
		AvailableNumbers:  []int{},
	}

	for _, a := range assignments {
		jersey := effectiveJersey(a)
		if jersey == nil {
			continue
		}
		byPos, ok := report.JerseyAssignments[*jersey]
		if !ok {
			byPos = make(map[string][]PlayerRef)
			report.JerseyAssignments[*jersey] = byPos
		}
		byPos[a.Position] = append(byPos[a.Position], PlayerRef{
			MemberID:     a.TeamMemberID,
			UserID:       a.UserID,
			JerseyNumber: jersey,
		})
	}

	for number, byPos := range report.JerseyAssignments {
		for pos, players := range byPos {
			if len(players) > 1 {
				report.Conflicts = append(report.Conflicts, JerseyConflict{
					JerseyNumber: number,
					Position:     pos,
					Players:      players,
				})
			}
		}
	}
	sort.Slice(report.Conflicts, func(i, j int) bool {
		ci, cj := report.Conflicts[i], report.Conflicts[j]
		if ci.JerseyNumber != cj.JerseyNumber {
			return ci.JerseyNumber < cj.JerseyNumber
		}
		return ci.Position < cj.Position
	})

	for n := rules.JerseyMin; n <= rules.JerseyMax; n++ {
		if _, used := report.JerseyAssignments[n]; !used {
			report.AvailableNumbers = append(report.AvailableNumbers, n)
		}
	}

	return report
}
