package institutiondomain

import (
	"slices"
	"strings"
	"time"

	sharedtypes "github.com/Fifty-Move-Club/podium/app/shared/types"
)

// AllocationInput is the immutable snapshot one team prize run computes
// over. The run sorts defensively, so callers need not guarantee any
// particular group or prize ordering.
type AllocationInput struct {
	TournamentID sharedtypes.TournamentID
	Competitors  []sharedtypes.Competitor
	Groups       []sharedtypes.InstitutionGroup
	Prizes       []sharedtypes.InstitutionPrize
	GeneratedAt  time.Time
}

// maxReportedExclusions caps the per-group reason list; IneligibleCount
// still carries the true total.
const maxReportedExclusions = 10

// AllocateTeams runs every active group: build teams, rank them, bind the
// group's prizes. A group-level configuration problem fails that group
// alone; sibling groups still compute.
func AllocateTeams(input AllocationInput) sharedtypes.TeamAllocationReport {
	report := sharedtypes.TeamAllocationReport{
		TournamentID: input.TournamentID,
		GeneratedAt:  input.GeneratedAt,
		Groups:       []sharedtypes.GroupStandings{},
	}

	groups := slices.Clone(input.Groups)
	slices.SortStableFunc(groups, func(a, b sharedtypes.InstitutionGroup) int {
		if c := strings.Compare(a.Label, b.Label); c != 0 {
			return c
		}
		return strings.Compare(a.ID.String(), b.ID.String())
	})

	prizesByGroup := make(map[sharedtypes.GroupID][]sharedtypes.InstitutionPrize)
	for _, p := range input.Prizes {
		prizesByGroup[p.GroupID] = append(prizesByGroup[p.GroupID], p)
	}

	for i := range groups {
		group := &groups[i]
		if !group.Active {
			continue
		}
		report.Groups = append(report.Groups, computeGroup(input.Competitors, group, prizesByGroup[group.ID]))
	}
	return report
}

// computeGroup produces one group's standings block.
func computeGroup(competitors []sharedtypes.Competitor, group *sharedtypes.InstitutionGroup, prizes []sharedtypes.InstitutionPrize) sharedtypes.GroupStandings {
	standings := sharedtypes.GroupStandings{
		GroupID:    group.ID,
		GroupLabel: group.Label,
		Attribute:  group.Attribute,
	}

	built := BuildTeams(competitors, group)
	if built.ConfigError != "" {
		standings.ConfigError = built.ConfigError
		return standings
	}

	standings.Standings = RankTeams(built.Teams)
	standings.Prizes = BindPrizes(standings.Standings, prizes)
	standings.EligibleCount = len(built.Teams)
	standings.IneligibleCount = len(built.Excluded)
	standings.Exclusions = built.Excluded
	if len(standings.Exclusions) > maxReportedExclusions {
		standings.Exclusions = standings.Exclusions[:maxReportedExclusions]
	}
	return standings
}
