package institutionrepository_integration_tests

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	institutiondb "github.com/Fifty-Move-Club/podium/app/modules/institution/infrastructure/repositories"
	sharedtypes "github.com/Fifty-Move-Club/podium/app/shared/types"
)

func newTournamentID() sharedtypes.TournamentID {
	return sharedtypes.TournamentID(uuid.New())
}

// stateTeamsReport builds a two-group report: one healthy group with a bound
// place and a surplus place, and one group that failed validation and must
// contribute no rows.
func stateTeamsReport(tournamentID sharedtypes.TournamentID) sharedtypes.TeamAllocationReport {
	members := []sharedtypes.TeamMember{
		{CompetitorID: sharedtypes.CompetitorID(uuid.New()), FullName: "Ada King", Rank: 1, RankPoints: 30, Gender: sharedtypes.GenderFemale, Slot: sharedtypes.SlotFemale},
		{CompetitorID: sharedtypes.CompetitorID(uuid.New()), FullName: "Ben Ross", Rank: 4, RankPoints: 27, Gender: sharedtypes.GenderMale, Slot: sharedtypes.SlotMale},
		{CompetitorID: sharedtypes.CompetitorID(uuid.New()), FullName: "Cal Ito", Rank: 9, RankPoints: 22, Gender: sharedtypes.GenderMale, Slot: sharedtypes.SlotOpen},
	}

	return sharedtypes.TeamAllocationReport{
		TournamentID: tournamentID,
		GeneratedAt:  time.Now().UTC(),
		Groups: []sharedtypes.GroupStandings{
			{
				GroupID:    sharedtypes.GroupID(uuid.New()),
				GroupLabel: "State Teams",
				Attribute:  sharedtypes.GroupByState,
				Prizes: []sharedtypes.TeamPrizeBinding{
					{
						PrizeID:    sharedtypes.PrizeID(uuid.New()),
						Place:      1,
						CashAmount: 30000,
						HasTrophy:  true,
						Team: &sharedtypes.Team{
							Key:                "state:CA",
							DisplayLabel:       "CA",
							Members:            members,
							TotalPoints:        79,
							RankSum:            14,
							BestIndividualRank: 1,
						},
					},
					// Surplus place: only one state fielded a full team.
					{
						PrizeID:    sharedtypes.PrizeID(uuid.New()),
						Place:      2,
						CashAmount: 15000,
						HasMedal:   true,
					},
				},
				EligibleCount:   1,
				IneligibleCount: 2,
			},
			{
				GroupID:     sharedtypes.GroupID(uuid.New()),
				GroupLabel:  "Club Teams",
				Attribute:   sharedtypes.GroupByClub,
				ConfigError: "no prize places configured",
			},
		},
	}
}

func TestReplaceResultsRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := institutiondb.NewRepository(testEnv.DB)

	tournamentID := newTournamentID()
	report := stateTeamsReport(tournamentID)
	rows := institutiondb.ResultsFromReport(&report)

	// The failed group is skipped, so only the healthy group's places land.
	require.Len(t, rows, 2)

	require.NoError(t, repo.ReplaceResults(ctx, testEnv.DB, tournamentID, rows))

	got, err := repo.ListResults(ctx, testEnv.DB, tournamentID)
	require.NoError(t, err)
	require.Len(t, got, 2)

	first := got[0]
	assert.Equal(t, 0, first.Position)
	assert.Equal(t, 1, first.Place)
	assert.Equal(t, "State Teams", first.GroupLabel)
	assert.Equal(t, 30000, first.CashAmount)
	assert.True(t, first.HasTrophy)
	assert.Equal(t, "state:CA", first.TeamKey)
	assert.Equal(t, "CA", first.TeamLabel)
	require.NotNil(t, first.TotalPoints)
	assert.Equal(t, 79, *first.TotalPoints)
	require.NotNil(t, first.RankSum)
	assert.Equal(t, 14, *first.RankSum)
	require.NotNil(t, first.BestIndividualRank)
	assert.Equal(t, 1, *first.BestIndividualRank)
	assert.Equal(t, report.Groups[0].Prizes[0].Team.Members, first.Members)
	assert.WithinDuration(t, report.GeneratedAt, first.GeneratedAt, time.Second)
	assert.False(t, first.FinalizedAt.IsZero())

	second := got[1]
	assert.Equal(t, 1, second.Position)
	assert.Equal(t, 2, second.Place)
	assert.Empty(t, second.TeamKey)
	assert.Nil(t, second.TotalPoints)
	assert.Empty(t, second.Members)

	// Reconstructed bindings mirror the report shapes.
	firstBinding := first.ToBinding()
	require.NotNil(t, firstBinding.Team)
	assert.Equal(t, 79, firstBinding.Team.TotalPoints)
	assert.Equal(t, 14, firstBinding.Team.RankSum)
	assert.Equal(t, 1, firstBinding.Team.BestIndividualRank)
	assert.Len(t, firstBinding.Team.Members, 3)
	assert.Nil(t, second.ToBinding().Team)
}

func TestReplaceResultsReplacesPreviousSet(t *testing.T) {
	ctx := context.Background()
	repo := institutiondb.NewRepository(testEnv.DB)

	tournamentID := newTournamentID()
	report := stateTeamsReport(tournamentID)
	require.NoError(t, repo.ReplaceResults(ctx, testEnv.DB, tournamentID, institutiondb.ResultsFromReport(&report)))

	// A re-run with only the bound place must replace both earlier rows.
	rerun := stateTeamsReport(tournamentID)
	rerun.Groups[0].Prizes = rerun.Groups[0].Prizes[:1]
	require.NoError(t, repo.ReplaceResults(ctx, testEnv.DB, tournamentID, institutiondb.ResultsFromReport(&rerun)))

	got, err := repo.ListResults(ctx, testEnv.DB, tournamentID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "state:CA", got[0].TeamKey)
}

func TestReplaceResultsEmptyClears(t *testing.T) {
	ctx := context.Background()
	repo := institutiondb.NewRepository(testEnv.DB)

	tournamentID := newTournamentID()
	report := stateTeamsReport(tournamentID)
	require.NoError(t, repo.ReplaceResults(ctx, testEnv.DB, tournamentID, institutiondb.ResultsFromReport(&report)))

	require.NoError(t, repo.ReplaceResults(ctx, testEnv.DB, tournamentID, nil))

	_, err := repo.ListResults(ctx, testEnv.DB, tournamentID)
	require.ErrorIs(t, err, institutiondb.ErrNoResults)
}

func TestListResultsNotFound(t *testing.T) {
	ctx := context.Background()
	repo := institutiondb.NewRepository(testEnv.DB)

	_, err := repo.ListResults(ctx, testEnv.DB, newTournamentID())
	require.ErrorIs(t, err, institutiondb.ErrNoResults)
}
