package awardservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	awarddomain "github.com/Fifty-Move-Club/podium/app/modules/award/domain"
	rosterdb "github.com/Fifty-Move-Club/podium/app/modules/roster/infrastructure/repositories"
	rulesetdb "github.com/Fifty-Move-Club/podium/app/modules/ruleset/infrastructure/repositories"
	awardevents "github.com/Fifty-Move-Club/podium/app/shared/events/award"
	sharedtypes "github.com/Fifty-Move-Club/podium/app/shared/types"
)

// allocationCacheVersion tags cached reports; bumping it orphans every
// previously cached shape at once.
const allocationCacheVersion = "v1"

func allocationCacheKey(tournamentID sharedtypes.TournamentID) string {
	return tournamentID.String() + ":individual:" + allocationCacheVersion
}

// AllocateIndividual computes the tournament's individual prize winners. The
// run is a pure computation over a one-shot snapshot; repeated calls inside
// the cache window return the memoized report.
func (s *AwardService) AllocateIndividual(ctx context.Context, tournamentID sharedtypes.TournamentID) (AllocateResult, error) {
	return withTelemetry(s, ctx, "AllocateIndividual", tournamentID.String(), func(ctx context.Context) (AllocateResult, error) {
		report, reason, err := s.computeReport(ctx, tournamentID)
		if err != nil {
			return AllocateResult{}, err
		}
		if reason != "" {
			p := awardevents.AwardAllocationFailedPayloadV1{
				TournamentID: tournamentID,
				Reason:       reason,
			}
			return AllocateResult{Failure: &p}, nil
		}

		p := awardevents.AwardAllocationCompletedPayloadV1{
			TournamentID: tournamentID,
			Report:       report,
		}
		return AllocateResult{Success: &p}, nil
	})
}

// InvalidateCache drops every cached allocation of one tournament.
func (s *AwardService) InvalidateCache(tournamentID sharedtypes.TournamentID) {
	s.resultCache.DeletePrefix(tournamentID.String())
}

// computeReport is the cache read-through in front of the pure allocation
// core. A non-empty reason reports a domain failure; err reports
// infrastructure trouble.
func (s *AwardService) computeReport(ctx context.Context, tournamentID sharedtypes.TournamentID) (sharedtypes.IndividualAllocationReport, string, error) {
	key := allocationCacheKey(tournamentID)
	if cached, ok := s.resultCache.Get(key); ok {
		if s.metrics != nil {
			s.metrics.RecordCacheHit(ctx)
		}
		return cached, "", nil
	}
	if s.metrics != nil {
		s.metrics.RecordCacheMiss(ctx)
	}

	cfg, err := s.ruleset.GetRuleConfig(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, rulesetdb.ErrConfigNotFound) {
			return sharedtypes.IndividualAllocationReport{}, "rule configuration not found", nil
		}
		return sharedtypes.IndividualAllocationReport{}, "", fmt.Errorf("failed to load rule configuration: %w", err)
	}
	categories, prizes, err := s.ruleset.ListCategories(ctx, tournamentID)
	if err != nil {
		return sharedtypes.IndividualAllocationReport{}, "", fmt.Errorf("failed to load prize categories: %w", err)
	}
	competitors, err := s.roster.GetRoster(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, rosterdb.ErrNotFound) {
			return sharedtypes.IndividualAllocationReport{}, "roster not found", nil
		}
		return sharedtypes.IndividualAllocationReport{}, "", fmt.Errorf("failed to load roster: %w", err)
	}

	report := awarddomain.AllocateIndividual(awarddomain.AllocationInput{
		TournamentID: tournamentID,
		Competitors:  competitors,
		Config:       *cfg,
		Categories:   categories,
		Prizes:       prizes,
		GeneratedAt:  time.Now().UTC(),
	})

	s.resultCache.Set(key, report)
	if s.metrics != nil {
		s.metrics.RecordWinnersAllocated(ctx, countWinners(report))
	}
	return report, "", nil
}

func countWinners(report sharedtypes.IndividualAllocationReport) int {
	n := 0
	for _, award := range report.Awards {
		if award.Winner != nil {
			n++
		}
	}
	return n
}
