package institutiondomain

import (
	"testing"

	"github.com/google/uuid"

	sharedtypes "github.com/Fifty-Move-Club/podium/app/shared/types"
)

func teamCompetitor(name string, rank int, gender sharedtypes.Gender, club string) sharedtypes.Competitor {
	return sharedtypes.Competitor{
		ID:       sharedtypes.CompetitorID(uuid.New()),
		FullName: name,
		Rank:     rank,
		Gender:   gender,
		Club:     club,
	}
}

func clubGroup(teamSize, femaleSlots, maleSlots int) *sharedtypes.InstitutionGroup {
	return &sharedtypes.InstitutionGroup{
		ID:          sharedtypes.GroupID(uuid.New()),
		Label:       "Club Teams",
		Attribute:   sharedtypes.GroupByClub,
		TeamSize:    teamSize,
		FemaleSlots: femaleSlots,
		MaleSlots:   maleSlots,
		Active:      true,
	}
}

func TestBuildTeamsScoring(t *testing.T) {
	// Rank 1 female and rank 2 male in Alpha; a rank 10 elsewhere fixes the
	// observed max rank.
	competitors := []sharedtypes.Competitor{
		teamCompetitor("Rank One", 1, sharedtypes.GenderFemale, "Alpha"),
		teamCompetitor("Rank Two", 2, sharedtypes.GenderMale, "Alpha"),
		teamCompetitor("Rank Ten", 10, sharedtypes.GenderMale, "Zeta"),
	}
	group := clubGroup(2, 1, 0)

	out := BuildTeams(competitors, group)
	if out.ConfigError != "" {
		t.Fatalf("unexpected config error %q", out.ConfigError)
	}

	var alpha *sharedtypes.Team
	for i := range out.Teams {
		if out.Teams[i].DisplayLabel == "Alpha" {
			alpha = &out.Teams[i]
		}
	}
	if alpha == nil {
		t.Fatal("Alpha team not built")
	}

	if got, want := alpha.TotalPoints, (11-1)+(11-2); got != want {
		t.Errorf("total points = %d, want %d", got, want)
	}
	if alpha.RankSum != 3 {
		t.Errorf("rank sum = %d, want 3", alpha.RankSum)
	}
	if alpha.BestIndividualRank != 1 {
		t.Errorf("best individual rank = %d, want 1", alpha.BestIndividualRank)
	}

	if len(alpha.Members) != 2 {
		t.Fatalf("member count = %d, want 2", len(alpha.Members))
	}
	if alpha.Members[0].Slot != sharedtypes.SlotFemale || alpha.Members[0].Rank != 1 {
		t.Errorf("first member should be the rank 1 female slot, got %+v", alpha.Members[0])
	}
	if alpha.Members[1].Slot != sharedtypes.SlotOpen || alpha.Members[1].Rank != 2 {
		t.Errorf("second member should be the rank 2 fill, got %+v", alpha.Members[1])
	}
	if alpha.Members[0].RankPoints != 10 || alpha.Members[1].RankPoints != 9 {
		t.Errorf("rank points = %d/%d, want 10/9", alpha.Members[0].RankPoints, alpha.Members[1].RankPoints)
	}
	if alpha.Key != "alpha" {
		t.Errorf("key = %q, want slugged label", alpha.Key)
	}
}

func TestBuildTeamsExclusions(t *testing.T) {
	t.Run("all male institution fails a female slot", func(t *testing.T) {
		competitors := []sharedtypes.Competitor{
			teamCompetitor("Beta One", 1, sharedtypes.GenderMale, "Beta"),
			teamCompetitor("Beta Two", 2, sharedtypes.GenderMale, "Beta"),
		}

		out := BuildTeams(competitors, clubGroup(2, 1, 0))
		if len(out.Teams) != 0 {
			t.Fatalf("expected no teams, got %d", len(out.Teams))
		}
		if len(out.Excluded) != 1 {
			t.Fatalf("expected one exclusion, got %d", len(out.Excluded))
		}
		if got, want := out.Excluded[0].Reason, "needs 1 females, has 0"; got != want {
			t.Errorf("reason = %q, want %q", got, want)
		}
	})

	t.Run("female only institution fails a male slot", func(t *testing.T) {
		competitors := []sharedtypes.Competitor{
			teamCompetitor("Gamma One", 1, sharedtypes.GenderFemale, "Gamma"),
			teamCompetitor("Gamma Two", 2, sharedtypes.GenderFemale, "Gamma"),
		}

		out := BuildTeams(competitors, clubGroup(2, 1, 1))
		if len(out.Excluded) != 1 {
			t.Fatalf("expected one exclusion, got %d", len(out.Excluded))
		}
		if got, want := out.Excluded[0].Reason, "needs 1 males, has 0"; got != want {
			t.Errorf("reason = %q, want %q", got, want)
		}
	})

	t.Run("too few members fails the size check", func(t *testing.T) {
		competitors := []sharedtypes.Competitor{
			teamCompetitor("Solo", 1, sharedtypes.GenderMale, "Delta"),
		}

		out := BuildTeams(competitors, clubGroup(2, 0, 0))
		if len(out.Excluded) != 1 {
			t.Fatalf("expected one exclusion, got %d", len(out.Excluded))
		}
		if got, want := out.Excluded[0].Reason, "needs 2 players, has 1"; got != want {
			t.Errorf("reason = %q, want %q", got, want)
		}
	})

	t.Run("one infeasible institution does not touch its siblings", func(t *testing.T) {
		competitors := []sharedtypes.Competitor{
			teamCompetitor("Alpha One", 1, sharedtypes.GenderFemale, "Alpha"),
			teamCompetitor("Alpha Two", 2, sharedtypes.GenderMale, "Alpha"),
			teamCompetitor("Beta One", 3, sharedtypes.GenderMale, "Beta"),
		}

		out := BuildTeams(competitors, clubGroup(2, 1, 0))
		if len(out.Teams) != 1 || out.Teams[0].DisplayLabel != "Alpha" {
			t.Fatalf("expected Alpha built, got %+v", out.Teams)
		}
		if len(out.Excluded) != 1 || out.Excluded[0].DisplayLabel != "Beta" {
			t.Fatalf("expected Beta excluded, got %+v", out.Excluded)
		}
	})
}

func TestBuildTeamsUnknownGender(t *testing.T) {
	// Unknown gender staffs a male slot but keeps its blank classification.
	competitors := []sharedtypes.Competitor{
		teamCompetitor("Known Female", 1, sharedtypes.GenderFemale, "Alpha"),
		teamCompetitor("No Gender", 2, sharedtypes.GenderUnknown, "Alpha"),
	}

	out := BuildTeams(competitors, clubGroup(2, 1, 1))
	if len(out.Teams) != 1 {
		t.Fatalf("expected one team, got %d (excluded %+v)", len(out.Teams), out.Excluded)
	}
	members := out.Teams[0].Members
	if members[1].Slot != sharedtypes.SlotMale {
		t.Errorf("unknown gender member slot = %q, want %q", members[1].Slot, sharedtypes.SlotMale)
	}
	if members[1].Gender != sharedtypes.GenderUnknown {
		t.Errorf("unknown gender member classification = %q, want unchanged blank", members[1].Gender)
	}
}

func TestBuildTeamsMemberOrdering(t *testing.T) {
	// Female slot first, then male slot, then the best unused fill.
	competitors := []sharedtypes.Competitor{
		teamCompetitor("F Three", 3, sharedtypes.GenderFemale, "Alpha"),
		teamCompetitor("F Five", 5, sharedtypes.GenderFemale, "Alpha"),
		teamCompetitor("M One", 1, sharedtypes.GenderMale, "Alpha"),
		teamCompetitor("M Four", 4, sharedtypes.GenderMale, "Alpha"),
	}

	out := BuildTeams(competitors, clubGroup(3, 1, 1))
	if len(out.Teams) != 1 {
		t.Fatalf("expected one team, got %d", len(out.Teams))
	}

	members := out.Teams[0].Members
	wantRanks := []int{3, 1, 4}
	wantSlots := []sharedtypes.TeamSlot{sharedtypes.SlotFemale, sharedtypes.SlotMale, sharedtypes.SlotOpen}
	for i := range members {
		if members[i].Rank != wantRanks[i] || members[i].Slot != wantSlots[i] {
			t.Errorf("member %d = rank %d slot %q, want rank %d slot %q",
				i, members[i].Rank, members[i].Slot, wantRanks[i], wantSlots[i])
		}
	}
}

func TestBuildTeamsBlankAttributeExcludedEntirely(t *testing.T) {
	competitors := []sharedtypes.Competitor{
		teamCompetitor("Alpha One", 1, sharedtypes.GenderMale, "Alpha"),
		teamCompetitor("No Club", 2, sharedtypes.GenderMale, ""),
		teamCompetitor("Spaces Only", 3, sharedtypes.GenderMale, "   "),
		teamCompetitor("Beta One", 4, sharedtypes.GenderMale, "Beta"),
	}

	out := BuildTeams(competitors, clubGroup(1, 0, 0))
	distinct := 2
	if got := len(out.Teams) + len(out.Excluded); got != distinct {
		t.Errorf("eligible+ineligible = %d, want %d distinct non-blank values", got, distinct)
	}
}

func TestBuildTeamsConfigErrors(t *testing.T) {
	competitors := []sharedtypes.Competitor{
		teamCompetitor("Alpha One", 1, sharedtypes.GenderMale, "Alpha"),
	}

	t.Run("unrecognized attribute fails the whole group", func(t *testing.T) {
		group := clubGroup(1, 0, 0)
		group.Attribute = "shoe_size"

		out := BuildTeams(competitors, group)
		if out.ConfigError == "" {
			t.Fatal("expected a config error")
		}
		if len(out.Teams) != 0 || len(out.Excluded) != 0 {
			t.Errorf("config error must leave zero institutions on both sides, got %d/%d",
				len(out.Teams), len(out.Excluded))
		}
	})

	t.Run("gender slot sum above team size fails the whole group", func(t *testing.T) {
		out := BuildTeams(competitors, clubGroup(3, 2, 2))
		if out.ConfigError == "" {
			t.Fatal("expected a config error")
		}
	})
}

func TestRankTeams(t *testing.T) {
	team := func(label string, points, rankSum, bestRank int) sharedtypes.Team {
		return sharedtypes.Team{
			Key:                label,
			DisplayLabel:       label,
			TotalPoints:        points,
			RankSum:            rankSum,
			BestIndividualRank: bestRank,
		}
	}

	ranked := RankTeams([]sharedtypes.Team{
		team("delta", 10, 9, 4),
		team("alpha", 12, 9, 4),
		team("carol", 12, 7, 4),
		team("burly", 12, 7, 2),
		team("apple", 12, 7, 2),
	})

	want := []string{"apple", "burly", "carol", "alpha", "delta"}
	for i, label := range want {
		if ranked[i].DisplayLabel != label {
			t.Errorf("position %d = %q, want %q", i, ranked[i].DisplayLabel, label)
		}
	}
}

func TestBindPrizes(t *testing.T) {
	groupID := sharedtypes.GroupID(uuid.New())
	prize := func(place, cash int) sharedtypes.InstitutionPrize {
		return sharedtypes.InstitutionPrize{
			ID:         sharedtypes.PrizeID(uuid.New()),
			GroupID:    groupID,
			Place:      place,
			CashAmount: cash,
		}
	}

	standings := []sharedtypes.Team{{Key: "alpha", DisplayLabel: "Alpha", TotalPoints: 19}}
	// Deliberately unsorted places.
	bindings := BindPrizes(standings, []sharedtypes.InstitutionPrize{prize(3, 1000), prize(1, 5000), prize(2, 2500)})

	if len(bindings) != 3 {
		t.Fatalf("binding count = %d, want 3", len(bindings))
	}
	if bindings[0].Place != 1 || bindings[0].Team == nil || bindings[0].Team.DisplayLabel != "Alpha" {
		t.Errorf("place 1 should bind the top team, got %+v", bindings[0])
	}
	if bindings[1].Team != nil || bindings[2].Team != nil {
		t.Error("surplus places should report nil teams, not an error")
	}
}
