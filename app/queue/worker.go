package recomputequeue

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/riverqueue/river"

	awardservice "github.com/Fifty-Move-Club/podium/app/modules/award/application"
	institutionservice "github.com/Fifty-Move-Club/podium/app/modules/institution/application"
	"github.com/Fifty-Move-Club/podium/app/shared/observability/attr"
	queuemetrics "github.com/Fifty-Move-Club/podium/app/shared/observability/otel/metrics/queue"
)

// RecomputeWorker rebuilds both allocation reports after a roster or rule
// change. A domain failure (half-configured tournament) completes the job;
// only infrastructure trouble is retried.
type RecomputeWorker struct {
	river.WorkerDefaults[RecomputeArgs]
	logger             *slog.Logger
	awardService       awardservice.Service
	institutionService institutionservice.Service
	metrics            queuemetrics.QueueMetrics
}

// NewRecomputeWorker creates a new RecomputeWorker.
func NewRecomputeWorker(
	logger *slog.Logger,
	awardService awardservice.Service,
	institutionService institutionservice.Service,
	metrics queuemetrics.QueueMetrics,
) *RecomputeWorker {
	return &RecomputeWorker{
		logger:             logger,
		awardService:       awardService,
		institutionService: institutionService,
		metrics:            metrics,
	}
}

// Work drops both cached reports and recomputes them so the next read is
// warm. Allocation itself never persists anything, so re-running is safe at
// any time.
func (w *RecomputeWorker) Work(ctx context.Context, job *river.Job[RecomputeArgs]) error {
	tournamentID := job.Args.TournamentID

	w.logger.InfoContext(ctx, "Recompute job started",
		attr.TournamentID("tournament_id", tournamentID),
		attr.String("reason", job.Args.Reason),
		attr.Int("attempt", job.Attempt),
	)

	w.awardService.InvalidateCache(tournamentID)
	w.institutionService.InvalidateCache(tournamentID)

	rejected := false

	individual, err := w.awardService.AllocateIndividual(ctx, tournamentID)
	if err != nil {
		w.metrics.RecordRecomputeRun(ctx, "error")
		return fmt.Errorf("recompute individual allocation: %w", err)
	}
	if individual.IsFailure() {
		rejected = true
		w.logger.InfoContext(ctx, "Individual recompute rejected",
			attr.TournamentID("tournament_id", tournamentID),
			attr.String("reason", individual.Failure.Reason),
		)
	}

	team, err := w.institutionService.AllocateTeamPrizes(ctx, tournamentID)
	if err != nil {
		w.metrics.RecordRecomputeRun(ctx, "error")
		return fmt.Errorf("recompute team allocation: %w", err)
	}
	if team.IsFailure() {
		rejected = true
		w.logger.InfoContext(ctx, "Team recompute rejected",
			attr.TournamentID("tournament_id", tournamentID),
			attr.String("reason", team.Failure.Reason),
		)
	}

	outcome := "warmed"
	if rejected {
		outcome = "rejected"
	}
	w.metrics.RecordRecomputeRun(ctx, outcome)

	w.logger.InfoContext(ctx, "Recompute job finished",
		attr.TournamentID("tournament_id", tournamentID),
		attr.String("outcome", outcome),
	)
	return nil
}
