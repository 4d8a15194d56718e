// Package institutiondomain holds the pure team prize logic: partition a
// roster into institutions, staff each institution's slots, rank the formed
// teams, and bind prizes positionally.
package institutiondomain

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/gosimple/slug"

	sharedtypes "github.com/Fifty-Move-Club/podium/app/shared/types"
)

// GroupComputation is the outcome of building one group's teams. Formed
// teams are unranked; Excluded carries every infeasible institution with its
// reason. A configuration problem sets ConfigError and leaves both empty.
type GroupComputation struct {
	Teams       []sharedtypes.Team
	Excluded    []sharedtypes.TeamExclusion
	ConfigError string
}

// BuildTeams partitions competitors by the group's attribute and assembles
// one team per institution that can staff its slots. Rank points are
// maxRank+1-rank over the supplied roster, so rank 1 scores highest.
// Competitors with a blank attribute value are not counted on either side.
// An institution that cannot fill a slot requirement is excluded with an
// exact reason; the failure never spills into sibling institutions.
func BuildTeams(competitors []sharedtypes.Competitor, group *sharedtypes.InstitutionGroup) GroupComputation {
	if !group.Attribute.Recognized() {
		return GroupComputation{ConfigError: fmt.Sprintf("unrecognized grouping attribute %q", group.Attribute)}
	}
	// Rechecked here even though the ruleset editor validates it: an
	// impossible slot sum must fail the group, never underflow the fill.
	if group.FemaleSlots+group.MaleSlots > group.TeamSize {
		return GroupComputation{ConfigError: fmt.Sprintf(
			"gender slots exceed team size: %d female + %d male > %d",
			group.FemaleSlots, group.MaleSlots, group.TeamSize,
		)}
	}

	maxRank := 0
	for i := range competitors {
		if competitors[i].Rank > maxRank {
			maxRank = competitors[i].Rank
		}
	}

	ordered := slices.Clone(competitors)
	slices.SortStableFunc(ordered, memberOrder)

	byInstitution := make(map[string][]sharedtypes.Competitor)
	var labels []string
	for _, c := range ordered {
		value, _ := c.GroupingValue(group.Attribute)
		label := strings.TrimSpace(value)
		if label == "" {
			continue
		}
		if _, seen := byInstitution[label]; !seen {
			labels = append(labels, label)
		}
		byInstitution[label] = append(byInstitution[label], c)
	}
	slices.Sort(labels)

	var out GroupComputation
	for _, label := range labels {
		team, reason := formTeam(label, byInstitution[label], group, maxRank)
		if reason != "" {
			out.Excluded = append(out.Excluded, sharedtypes.TeamExclusion{
				Key:          slug.Make(label),
				DisplayLabel: label,
				Reason:       reason,
			})
			continue
		}
		out.Teams = append(out.Teams, team)
	}
	return out
}

// formTeam staffs one institution's slots. Members arrive in member order
// and the pools preserve it, so slicing a pool takes its best entries.
func formTeam(label string, members []sharedtypes.Competitor, group *sharedtypes.InstitutionGroup, maxRank int) (sharedtypes.Team, string) {
	var femalePool, openPool []sharedtypes.Competitor
	for _, m := range members {
		if m.Gender.IsFemale() {
			femalePool = append(femalePool, m)
		} else {
			// Unknown gender staffs male slots, but the member record keeps
			// it distinct from an explicit male classification.
			openPool = append(openPool, m)
		}
	}

	if len(femalePool) < group.FemaleSlots {
		return sharedtypes.Team{}, fmt.Sprintf("needs %d females, has %d", group.FemaleSlots, len(femalePool))
	}
	if len(openPool) < group.MaleSlots {
		return sharedtypes.Team{}, fmt.Sprintf("needs %d males, has %d", group.MaleSlots, len(openPool))
	}
	if len(members) < group.TeamSize {
		return sharedtypes.Team{}, fmt.Sprintf("needs %d players, has %d", group.TeamSize, len(members))
	}

	team := sharedtypes.Team{
		Key:          slug.Make(label),
		DisplayLabel: label,
		Members:      make([]sharedtypes.TeamMember, 0, group.TeamSize),
	}

	for _, m := range femalePool[:group.FemaleSlots] {
		team.Members = append(team.Members, newMember(m, maxRank, sharedtypes.SlotFemale))
	}
	for _, m := range openPool[:group.MaleSlots] {
		team.Members = append(team.Members, newMember(m, maxRank, sharedtypes.SlotMale))
	}

	// Remaining places take the best unused members of both pools.
	rest := append(slices.Clone(femalePool[group.FemaleSlots:]), openPool[group.MaleSlots:]...)
	slices.SortStableFunc(rest, memberOrder)
	for _, m := range rest[:group.TeamSize-len(team.Members)] {
		team.Members = append(team.Members, newMember(m, maxRank, sharedtypes.SlotOpen))
	}

	for _, m := range team.Members {
		team.TotalPoints += m.RankPoints
		team.RankSum += m.Rank
		if team.BestIndividualRank == 0 || m.Rank < team.BestIndividualRank {
			team.BestIndividualRank = m.Rank
		}
	}
	return team, ""
}

func newMember(c sharedtypes.Competitor, maxRank int, slot sharedtypes.TeamSlot) sharedtypes.TeamMember {
	return sharedtypes.TeamMember{
		CompetitorID: c.ID,
		FullName:     c.FullName,
		Rank:         c.Rank,
		RankPoints:   maxRank + 1 - c.Rank,
		Gender:       c.Gender,
		Slot:         slot,
	}
}

// memberOrder sorts pool candidates. Rank points descend as rank ascends, so
// rank ascending realizes "score descending, rank ascending" in one pass;
// name then ID keep the order total when an import repeats a rank.
func memberOrder(a, b sharedtypes.Competitor) int {
	if c := cmp.Compare(a.Rank, b.Rank); c != 0 {
		return c
	}
	if c := strings.Compare(a.FullName, b.FullName); c != 0 {
		return c
	}
	return strings.Compare(a.ID.String(), b.ID.String())
}

// RankTeams orders formed teams into final standings: total points
// descending, rank sum ascending, best individual rank ascending, then
// institution name. The chain ends on the name, so no two teams in a group
// ever compare equal.
func RankTeams(teams []sharedtypes.Team) []sharedtypes.Team {
	ranked := slices.Clone(teams)
	slices.SortStableFunc(ranked, func(a, b sharedtypes.Team) int {
		if c := cmp.Compare(b.TotalPoints, a.TotalPoints); c != 0 {
			return c
		}
		if c := cmp.Compare(a.RankSum, b.RankSum); c != 0 {
			return c
		}
		if c := cmp.Compare(a.BestIndividualRank, b.BestIndividualRank); c != 0 {
			return c
		}
		return strings.Compare(a.DisplayLabel, b.DisplayLabel)
	})
	return ranked
}

// BindPrizes assigns ordered prizes to ordered standings positionally.
// Surplus places keep a nil team and are reported, not raised.
func BindPrizes(standings []sharedtypes.Team, prizes []sharedtypes.InstitutionPrize) []sharedtypes.TeamPrizeBinding {
	ordered := slices.Clone(prizes)
	slices.SortStableFunc(ordered, func(a, b sharedtypes.InstitutionPrize) int {
		if c := cmp.Compare(a.Place, b.Place); c != 0 {
			return c
		}
		return strings.Compare(a.ID.String(), b.ID.String())
	})

	bindings := make([]sharedtypes.TeamPrizeBinding, 0, len(ordered))
	for i, prize := range ordered {
		binding := sharedtypes.TeamPrizeBinding{
			PrizeID:    prize.ID,
			Place:      prize.Place,
			CashAmount: prize.CashAmount,
			HasTrophy:  prize.HasTrophy,
			HasMedal:   prize.HasMedal,
			HasGift:    prize.HasGift,
		}
		if i < len(standings) {
			team := standings[i]
			binding.Team = &team
		}
		bindings = append(bindings, binding)
	}
	return bindings
}
