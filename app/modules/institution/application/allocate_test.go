package institutionservice

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	institutiondb "github.com/Fifty-Move-Club/podium/app/modules/institution/infrastructure/repositories"
	rosterservice "github.com/Fifty-Move-Club/podium/app/modules/roster/application"
	rulesetservice "github.com/Fifty-Move-Club/podium/app/modules/ruleset/application"
	institutionmetrics "github.com/Fifty-Move-Club/podium/app/shared/observability/otel/metrics/institution"
	sharedtypes "github.com/Fifty-Move-Club/podium/app/shared/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestInstitutionService(repo institutiondb.Repository, roster rosterservice.Service, ruleset rulesetservice.Service) *InstitutionService {
	return NewInstitutionService(repo, roster, ruleset, nil, slog.Default(), institutionmetrics.NewNoop(), nil, nil)
}

// teamFixture returns a one-group snapshot: two prize places and two clubs
// that can both field a complete team, Alpha outranking Beta.
func teamFixture(tournamentID sharedtypes.TournamentID) ([]sharedtypes.InstitutionGroup, []sharedtypes.InstitutionPrize, []sharedtypes.Competitor) {
	groupID := sharedtypes.GroupID(uuid.New())
	groups := []sharedtypes.InstitutionGroup{
		{
			ID:           groupID,
			TournamentID: tournamentID,
			Label:        "Club Teams",
			Attribute:    sharedtypes.GroupByClub,
			TeamSize:     2,
			FemaleSlots:  1,
			MaleSlots:    0,
			Active:       true,
		},
	}
	prizes := []sharedtypes.InstitutionPrize{
		{ID: sharedtypes.PrizeID(uuid.New()), GroupID: groupID, Place: 1, CashAmount: 30000, HasTrophy: true},
		{ID: sharedtypes.PrizeID(uuid.New()), GroupID: groupID, Place: 2, CashAmount: 15000},
	}
	competitors := []sharedtypes.Competitor{
		{ID: sharedtypes.CompetitorID(uuid.New()), TournamentID: tournamentID, FullName: "Asha Rao", Rank: 1, Gender: sharedtypes.GenderFemale, Club: "Alpha"},
		{ID: sharedtypes.CompetitorID(uuid.New()), TournamentID: tournamentID, FullName: "Ben Okafor", Rank: 2, Gender: sharedtypes.GenderMale, Club: "Alpha"},
		{ID: sharedtypes.CompetitorID(uuid.New()), TournamentID: tournamentID, FullName: "Carla Mendes", Rank: 3, Gender: sharedtypes.GenderFemale, Club: "Beta"},
		{ID: sharedtypes.CompetitorID(uuid.New()), TournamentID: tournamentID, FullName: "Dev Patel", Rank: 4, Gender: sharedtypes.GenderMale, Club: "Beta"},
	}
	return groups, prizes, competitors
}

// wireTeamFixture points both reader fakes at the fixture snapshot.
func wireTeamFixture(roster *FakeRosterService, ruleset *FakeRulesetService, tournamentID sharedtypes.TournamentID) {
	groups, prizes, competitors := teamFixture(tournamentID)
	ruleset.ListInstitutionGroupsFunc = func(ctx context.Context, id sharedtypes.TournamentID) ([]sharedtypes.InstitutionGroup, []sharedtypes.InstitutionPrize, error) {
		return groups, prizes, nil
	}
	roster.GetRosterFunc = func(ctx context.Context, id sharedtypes.TournamentID) ([]sharedtypes.Competitor, error) {
		return competitors, nil
	}
}

func TestAllocateTeamPrizes(t *testing.T) {
	testTournamentID := sharedtypes.TournamentID(uuid.New())

	t.Run("computes standings from a fresh snapshot", func(t *testing.T) {
		fakeRoster := NewFakeRosterService()
		fakeRuleset := NewFakeRulesetService()
		wireTeamFixture(fakeRoster, fakeRuleset, testTournamentID)

		svc := newTestInstitutionService(NewFakeInstitutionRepo(), fakeRoster, fakeRuleset)
		result, err := svc.AllocateTeamPrizes(context.Background(), testTournamentID)

		require.NoError(t, err)
		require.True(t, result.IsSuccess())
		assert.Equal(t, testTournamentID, result.Success.TournamentID)

		report := result.Success.Report
		require.Len(t, report.Groups, 1)
		group := report.Groups[0]
		assert.Empty(t, group.ConfigError)
		assert.Equal(t, 2, group.EligibleCount)
		assert.Equal(t, 0, group.IneligibleCount)

		require.Len(t, group.Standings, 2)
		assert.Equal(t, "Alpha", group.Standings[0].DisplayLabel)
		assert.Equal(t, "Beta", group.Standings[1].DisplayLabel)

		require.Len(t, group.Prizes, 2)
		require.NotNil(t, group.Prizes[0].Team)
		assert.Equal(t, "Alpha", group.Prizes[0].Team.DisplayLabel)
		require.NotNil(t, group.Prizes[1].Team)
		assert.Equal(t, "Beta", group.Prizes[1].Team.DisplayLabel)

		assert.Equal(t, []string{"ListInstitutionGroups"}, fakeRuleset.Trace())
		assert.Equal(t, []string{"GetRoster"}, fakeRoster.Trace())
	})

	t.Run("repeated calls reuse the cached report", func(t *testing.T) {
		fakeRoster := NewFakeRosterService()
		fakeRuleset := NewFakeRulesetService()
		wireTeamFixture(fakeRoster, fakeRuleset, testTournamentID)

		svc := newTestInstitutionService(NewFakeInstitutionRepo(), fakeRoster, fakeRuleset)
		first, err := svc.AllocateTeamPrizes(context.Background(), testTournamentID)
		require.NoError(t, err)
		second, err := svc.AllocateTeamPrizes(context.Background(), testTournamentID)
		require.NoError(t, err)

		require.True(t, first.IsSuccess())
		require.True(t, second.IsSuccess())
		assert.Equal(t, first.Success.Report, second.Success.Report)
		assert.Equal(t, []string{"GetRoster"}, fakeRoster.Trace())
	})

	t.Run("invalidate forces a recompute", func(t *testing.T) {
		fakeRoster := NewFakeRosterService()
		fakeRuleset := NewFakeRulesetService()
		wireTeamFixture(fakeRoster, fakeRuleset, testTournamentID)

		svc := newTestInstitutionService(NewFakeInstitutionRepo(), fakeRoster, fakeRuleset)
		_, err := svc.AllocateTeamPrizes(context.Background(), testTournamentID)
		require.NoError(t, err)

		svc.InvalidateCache(testTournamentID)

		_, err = svc.AllocateTeamPrizes(context.Background(), testTournamentID)
		require.NoError(t, err)
		assert.Equal(t, []string{"GetRoster", "GetRoster"}, fakeRoster.Trace())
	})

	t.Run("no groups configured yields an empty report", func(t *testing.T) {
		fakeRoster := NewFakeRosterService()
		fakeRuleset := NewFakeRulesetService()
		_, _, competitors := teamFixture(testTournamentID)
		fakeRoster.GetRosterFunc = func(ctx context.Context, id sharedtypes.TournamentID) ([]sharedtypes.Competitor, error) {
			return competitors, nil
		}

		svc := newTestInstitutionService(NewFakeInstitutionRepo(), fakeRoster, fakeRuleset)
		result, err := svc.AllocateTeamPrizes(context.Background(), testTournamentID)

		require.NoError(t, err)
		require.True(t, result.IsSuccess())
		assert.Empty(t, result.Success.Report.Groups)
	})

	t.Run("missing roster is a domain failure", func(t *testing.T) {
		fakeRoster := NewFakeRosterService()
		fakeRuleset := NewFakeRulesetService()
		wireTeamFixture(fakeRoster, fakeRuleset, testTournamentID)
		fakeRoster.GetRosterFunc = nil

		svc := newTestInstitutionService(NewFakeInstitutionRepo(), fakeRoster, fakeRuleset)
		result, err := svc.AllocateTeamPrizes(context.Background(), testTournamentID)

		require.NoError(t, err)
		require.True(t, result.IsFailure())
		assert.Equal(t, "roster not found", result.Failure.Reason)
	})

	t.Run("group read error surfaces as infrastructure error", func(t *testing.T) {
		fakeRoster := NewFakeRosterService()
		fakeRuleset := NewFakeRulesetService()
		wireTeamFixture(fakeRoster, fakeRuleset, testTournamentID)
		fakeRuleset.ListInstitutionGroupsFunc = func(ctx context.Context, id sharedtypes.TournamentID) ([]sharedtypes.InstitutionGroup, []sharedtypes.InstitutionPrize, error) {
			return nil, nil, errors.New("connection refused")
		}

		svc := newTestInstitutionService(NewFakeInstitutionRepo(), fakeRoster, fakeRuleset)
		result, err := svc.AllocateTeamPrizes(context.Background(), testTournamentID)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "AllocateTeamPrizes")
		assert.Contains(t, err.Error(), "failed to load institution prize groups")
		assert.False(t, result.IsSuccess())
		assert.Empty(t, fakeRoster.Trace())
	})

	t.Run("failures are not cached", func(t *testing.T) {
		fakeRoster := NewFakeRosterService()
		fakeRuleset := NewFakeRulesetService()

		svc := newTestInstitutionService(NewFakeInstitutionRepo(), fakeRoster, fakeRuleset)
		result, err := svc.AllocateTeamPrizes(context.Background(), testTournamentID)
		require.NoError(t, err)
		require.True(t, result.IsFailure())

		wireTeamFixture(fakeRoster, fakeRuleset, testTournamentID)
		result, err = svc.AllocateTeamPrizes(context.Background(), testTournamentID)
		require.NoError(t, err)
		assert.True(t, result.IsSuccess())
	})
}
