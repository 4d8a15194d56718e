package rulesetservice

import (
	"context"
	"testing"

	rulesetdb "github.com/Fifty-Move-Club/podium/app/modules/ruleset/infrastructure/repositories"
	sharedtypes "github.com/Fifty-Move-Club/podium/app/shared/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func TestGetRuleConfig(t *testing.T) {
	testTournamentID := sharedtypes.TournamentID(uuid.New())

	t.Run("returns the stored config", func(t *testing.T) {
		fakeRepo := NewFakeRulesetRepo()
		fakeRepo.GetConfigFunc = func(ctx context.Context, db bun.IDB, tournamentID sharedtypes.TournamentID) (*sharedtypes.RuleConfig, error) {
			return &sharedtypes.RuleConfig{
				TournamentID:     tournamentID,
				MultiPrizePolicy: sharedtypes.StackingUnlimited,
			}, nil
		}

		svc := newTestService(fakeRepo)
		cfg, err := svc.GetRuleConfig(context.Background(), testTournamentID)

		require.NoError(t, err)
		assert.Equal(t, sharedtypes.StackingUnlimited, cfg.MultiPrizePolicy)
	})

	t.Run("missing config propagates the sentinel", func(t *testing.T) {
		fakeRepo := NewFakeRulesetRepo()
		svc := newTestService(fakeRepo)

		_, err := svc.GetRuleConfig(context.Background(), testTournamentID)

		require.Error(t, err)
		assert.ErrorIs(t, err, rulesetdb.ErrConfigNotFound)
	})
}

func TestListCategories(t *testing.T) {
	testTournamentID := sharedtypes.TournamentID(uuid.New())

	t.Run("returns categories with their prizes", func(t *testing.T) {
		fakeRepo := NewFakeRulesetRepo()
		categoryID := sharedtypes.CategoryID(uuid.New())
		fakeRepo.ListCategoriesFunc = func(ctx context.Context, db bun.IDB, tournamentID sharedtypes.TournamentID) ([]sharedtypes.PrizeCategory, error) {
			return []sharedtypes.PrizeCategory{{ID: categoryID, Name: "Open", Priority: 1, IsMain: true}}, nil
		}
		fakeRepo.ListPrizesFunc = func(ctx context.Context, db bun.IDB, tournamentID sharedtypes.TournamentID) ([]sharedtypes.Prize, error) {
			return []sharedtypes.Prize{{CategoryID: categoryID, Place: 1, CashAmount: 10000}}, nil
		}

		svc := newTestService(fakeRepo)
		categories, prizes, err := svc.ListCategories(context.Background(), testTournamentID)

		require.NoError(t, err)
		require.Len(t, categories, 1)
		require.Len(t, prizes, 1)
		assert.Equal(t, categories[0].ID, prizes[0].CategoryID)
		assert.Equal(t, []string{"ListCategories", "ListPrizes"}, fakeRepo.Trace())
	})
}
