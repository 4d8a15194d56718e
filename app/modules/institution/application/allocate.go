package institutionservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	institutiondomain "github.com/Fifty-Move-Club/podium/app/modules/institution/domain"
	rosterdb "github.com/Fifty-Move-Club/podium/app/modules/roster/infrastructure/repositories"
	institutionevents "github.com/Fifty-Move-Club/podium/app/shared/events/institution"
	sharedtypes "github.com/Fifty-Move-Club/podium/app/shared/types"
)

// teamCacheVersion tags cached reports; bumping it orphans every previously
// cached shape at once.
const teamCacheVersion = "v1"

func teamCacheKey(tournamentID sharedtypes.TournamentID) string {
	return tournamentID.String() + ":team:" + teamCacheVersion
}

// AllocateTeamPrizes computes the tournament's team prize outcome. The run
// is a pure computation over a one-shot snapshot; repeated calls inside the
// cache window return the memoized report.
func (s *InstitutionService) AllocateTeamPrizes(ctx context.Context, tournamentID sharedtypes.TournamentID) (AllocateResult, error) {
	return withTelemetry(s, ctx, "AllocateTeamPrizes", tournamentID.String(), func(ctx context.Context) (AllocateResult, error) {
		report, reason, err := s.computeReport(ctx, tournamentID)
		if err != nil {
			return AllocateResult{}, err
		}
		if reason != "" {
			p := institutionevents.InstitutionAllocationFailedPayloadV1{
				TournamentID: tournamentID,
				Reason:       reason,
			}
			return AllocateResult{Failure: &p}, nil
		}

		p := institutionevents.InstitutionAllocationCompletedPayloadV1{
			TournamentID: tournamentID,
			Report:       report,
		}
		return AllocateResult{Success: &p}, nil
	})
}

// InvalidateCache drops every cached team prize outcome of one tournament.
func (s *InstitutionService) InvalidateCache(tournamentID sharedtypes.TournamentID) {
	s.resultCache.DeletePrefix(tournamentID.String())
}

// computeReport is the cache read-through in front of the pure team prize
// core. A non-empty reason reports a domain failure; err reports
// infrastructure trouble.
func (s *InstitutionService) computeReport(ctx context.Context, tournamentID sharedtypes.TournamentID) (sharedtypes.TeamAllocationReport, string, error) {
	key := teamCacheKey(tournamentID)
	if cached, ok := s.resultCache.Get(key); ok {
		return cached, "", nil
	}

	groups, prizes, err := s.ruleset.ListInstitutionGroups(ctx, tournamentID)
	if err != nil {
		return sharedtypes.TeamAllocationReport{}, "", fmt.Errorf("failed to load institution prize groups: %w", err)
	}
	competitors, err := s.roster.GetRoster(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, rosterdb.ErrNotFound) {
			return sharedtypes.TeamAllocationReport{}, "roster not found", nil
		}
		return sharedtypes.TeamAllocationReport{}, "", fmt.Errorf("failed to load roster: %w", err)
	}

	report := institutiondomain.AllocateTeams(institutiondomain.AllocationInput{
		TournamentID: tournamentID,
		Competitors:  competitors,
		Groups:       groups,
		Prizes:       prizes,
		GeneratedAt:  time.Now().UTC(),
	})

	s.resultCache.Set(key, report)
	s.recordOutcome(ctx, report)
	return report, "", nil
}

// recordOutcome feeds the run's aggregate counts to the metrics recorder.
func (s *InstitutionService) recordOutcome(ctx context.Context, report sharedtypes.TeamAllocationReport) {
	if s.metrics == nil {
		return
	}
	eligible, ineligible := 0, 0
	for _, group := range report.Groups {
		if group.ConfigError != "" {
			s.metrics.RecordGroupConfigError(ctx)
			continue
		}
		eligible += group.EligibleCount
		ineligible += group.IneligibleCount
	}
	s.metrics.RecordTeamsBuilt(ctx, eligible, ineligible)
}
