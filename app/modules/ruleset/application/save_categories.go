package rulesetservice

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	rulesetdb "github.com/Fifty-Move-Club/podium/app/modules/ruleset/infrastructure/repositories"
	rulesetevents "github.com/Fifty-Move-Club/podium/app/shared/events/ruleset"
	sharedtypes "github.com/Fifty-Move-Club/podium/app/shared/types"
)

// SaveCategories validates and replaces the tournament's full prize category
// set. An empty input clears all categories.
func (s *RulesetService) SaveCategories(ctx context.Context, tournamentID sharedtypes.TournamentID, categories []rulesetevents.CategoryInputV1) (SaveCategoriesResult, error) {
	return withTelemetry(s, ctx, "SaveCategories", tournamentID.String(), func(ctx context.Context) (SaveCategoriesResult, error) {
		failure := func(field, reason string) SaveCategoriesResult {
			if s.metrics != nil {
				s.metrics.RecordValidationFailure(ctx, field)
			}
			p := rulesetevents.RulesetCategoriesSaveFailedPayloadV1{
				TournamentID: tournamentID,
				Reason:       reason,
			}
			return SaveCategoriesResult{Failure: &p}
		}

		rows := make([]*rulesetdb.PrizeCategory, 0, len(categories))
		prizeRows := make([]*rulesetdb.Prize, 0)
		seenPriorities := make(map[int]bool, len(categories))
		mainCount := 0

		for i, in := range categories {
			name := strings.TrimSpace(in.Name)
			if name == "" {
				return failure("name", fmt.Sprintf("category %d: name is required", i+1)), nil
			}
			if seenPriorities[in.Priority] {
				return failure("priority", fmt.Sprintf("category %q: duplicate priority %d", name, in.Priority)), nil
			}
			seenPriorities[in.Priority] = true

			if in.IsMain {
				mainCount++
				if mainCount > 1 {
					return failure("is_main", fmt.Sprintf("category %q: more than one main category", name)), nil
				}
			}

			metric, err := parseRankingMetric(in.Metric)
			if err != nil {
				return failure("metric", fmt.Sprintf("category %q: %s", name, err.Error())), nil
			}

			categoryID := sharedtypes.CategoryID(uuid.New())
			rows = append(rows, &rulesetdb.PrizeCategory{
				ID:       categoryID,
				Name:     name,
				Priority: in.Priority,
				IsMain:   in.IsMain,
				Metric:   metric,
				Criteria: in.Criteria,
			})

			seenPlaces := make(map[int]bool, len(in.Prizes))
			for _, prize := range in.Prizes {
				if prize.Place < 1 {
					return failure("place", fmt.Sprintf("category %q: prize place must be at least 1", name)), nil
				}
				if seenPlaces[prize.Place] {
					return failure("place", fmt.Sprintf("category %q: duplicate prize place %d", name, prize.Place)), nil
				}
				seenPlaces[prize.Place] = true
				if prize.CashAmount < 0 {
					return failure("cash_amount", fmt.Sprintf("category %q: negative cash amount", name)), nil
				}

				prizeRows = append(prizeRows, &rulesetdb.Prize{
					ID:         sharedtypes.PrizeID(uuid.New()),
					CategoryID: categoryID,
					Place:      prize.Place,
					CashAmount: prize.CashAmount,
					HasTrophy:  prize.HasTrophy,
					HasMedal:   prize.HasMedal,
					HasGift:    prize.HasGift,
				})
			}
		}

		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (SaveCategoriesResult, error) {
			if err := s.repo.ReplaceCategories(ctx, db, tournamentID, rows, prizeRows); err != nil {
				return SaveCategoriesResult{}, err
			}

			p := rulesetevents.RulesetCategoriesSavedPayloadV1{
				TournamentID:  tournamentID,
				CategoryCount: len(rows),
				PrizeCount:    len(prizeRows),
			}
			return SaveCategoriesResult{Success: &p}, nil
		})
	})
}
