package institutionservice

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	institutiondb "github.com/Fifty-Move-Club/podium/app/modules/institution/infrastructure/repositories"
	institutionevents "github.com/Fifty-Move-Club/podium/app/shared/events/institution"
	sharedtypes "github.com/Fifty-Move-Club/podium/app/shared/types"
)

// FinalizeTeamPrizes persists the current team prize outcome, replacing any
// previously finalized set for the tournament. The computation itself reuses
// the cached report when one is live; purity makes the reuse safe.
func (s *InstitutionService) FinalizeTeamPrizes(ctx context.Context, tournamentID sharedtypes.TournamentID) (FinalizeResult, error) {
	return withTelemetry(s, ctx, "FinalizeTeamPrizes", tournamentID.String(), func(ctx context.Context) (FinalizeResult, error) {
		report, reason, err := s.computeReport(ctx, tournamentID)
		if err != nil {
			return FinalizeResult{}, err
		}
		if reason != "" {
			p := institutionevents.InstitutionFinalizeFailedPayloadV1{
				TournamentID: tournamentID,
				Reason:       reason,
			}
			return FinalizeResult{Failure: &p}, nil
		}

		rows := institutiondb.ResultsFromReport(&report)
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (FinalizeResult, error) {
			if err := s.repo.ReplaceResults(ctx, db, tournamentID, rows); err != nil {
				return FinalizeResult{}, fmt.Errorf("failed to persist team prize results: %w", err)
			}

			p := institutionevents.InstitutionFinalizeCompletedPayloadV1{
				TournamentID: tournamentID,
				GroupCount:   len(report.Groups),
			}
			return FinalizeResult{Success: &p}, nil
		})
	})
}
