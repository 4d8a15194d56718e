package awardservice

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	awarddb "github.com/Fifty-Move-Club/podium/app/modules/award/infrastructure/repositories"
	awardevents "github.com/Fifty-Move-Club/podium/app/shared/events/award"
	sharedtypes "github.com/Fifty-Move-Club/podium/app/shared/types"
)

// FinalizeIndividual persists the current allocation's winner bindings,
// replacing any previously finalized set for the tournament. The computation
// itself reuses the cached report when one is live; purity makes the reuse
// safe.
func (s *AwardService) FinalizeIndividual(ctx context.Context, tournamentID sharedtypes.TournamentID) (FinalizeResult, error) {
	return withTelemetry(s, ctx, "FinalizeIndividual", tournamentID.String(), func(ctx context.Context) (FinalizeResult, error) {
		report, reason, err := s.computeReport(ctx, tournamentID)
		if err != nil {
			return FinalizeResult{}, err
		}
		if reason != "" {
			p := awardevents.AwardFinalizeFailedPayloadV1{
				TournamentID: tournamentID,
				Reason:       reason,
			}
			return FinalizeResult{Failure: &p}, nil
		}

		rows := awarddb.ResultsFromReport(&report)
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (FinalizeResult, error) {
			if err := s.repo.ReplaceResults(ctx, db, tournamentID, rows); err != nil {
				return FinalizeResult{}, fmt.Errorf("failed to persist award results: %w", err)
			}

			p := awardevents.AwardFinalizeCompletedPayloadV1{
				TournamentID: tournamentID,
				AwardCount:   len(rows),
			}
			return FinalizeResult{Success: &p}, nil
		})
	})
}
