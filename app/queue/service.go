package recomputequeue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/uptrace/bun"

	awardservice "github.com/Fifty-Move-Club/podium/app/modules/award/application"
	institutionservice "github.com/Fifty-Move-Club/podium/app/modules/institution/application"
	"github.com/Fifty-Move-Club/podium/app/shared/observability/attr"
	queuemetrics "github.com/Fifty-Move-Club/podium/app/shared/observability/otel/metrics/queue"
	sharedtypes "github.com/Fifty-Move-Club/podium/app/shared/types"
)

// QueueService defines the contract for recompute scheduling.
type QueueService interface {
	// ScheduleRecompute enqueues a debounced recompute for one tournament.
	// Repeated calls inside the debounce window collapse into one job.
	ScheduleRecompute(ctx context.Context, tournamentID sharedtypes.TournamentID, reason string) error
	// CancelRecompute cancels any still-pending recompute jobs for a tournament.
	CancelRecompute(ctx context.Context, tournamentID sharedtypes.TournamentID) error
	// HealthCheck verifies the queue service is healthy.
	HealthCheck(ctx context.Context) error
	// Start starts the queue service.
	Start(ctx context.Context) error
	// Stop stops the queue service.
	Stop(ctx context.Context) error
}

// Ensure Service implements QueueService
var _ QueueService = (*Service)(nil)

// Service schedules and runs recompute jobs using River.
type Service struct {
	client   *river.Client[pgx.Tx]
	pool     *pgxpool.Pool
	logger   *slog.Logger
	db       *bun.DB
	metrics  queuemetrics.QueueMetrics
	debounce time.Duration
}

// NewService creates a new River-based recompute queue service.
func NewService(
	ctx context.Context,
	bunDB *bun.DB,
	logger *slog.Logger,
	dsn string,
	metrics queuemetrics.QueueMetrics,
	awardService awardservice.Service,
	institutionService institutionservice.Service,
	maxWorkers int,
	debounce time.Duration,
) (*Service, error) {
	ctxLogger := logger.With(
		attr.String("operation", "new_recompute_queue_service"),
		attr.String("component", "river_queue"),
	)

	start := time.Now()
	metrics.RecordOperationAttempt(ctx, "initialize_service", "river")

	ctxLogger.Info("Initializing recompute queue service")

	// River requires pgx, not database/sql.
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		ctxLogger.Error("Failed to parse DSN for River", attr.Error(err))
		metrics.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		ctxLogger.Error("Failed to create pgx pool for River", attr.Error(err))
		metrics.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		ctxLogger.Error("Failed to ping database for River", attr.Error(err))
		metrics.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, NewRecomputeWorker(ctxLogger, awardService, institutionService, metrics))

	riverClient, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: maxWorkers},
			QueueRecompute:     {MaxWorkers: maxWorkers},
		},
		Workers: workers,
	})
	if err != nil {
		pool.Close()
		ctxLogger.Error("Failed to create River client", attr.Error(err))
		metrics.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("failed to create River client: %w", err)
	}

	service := &Service{
		client:   riverClient,
		pool:     pool,
		logger:   ctxLogger,
		db:       bunDB,
		metrics:  metrics,
		debounce: debounce,
	}

	duration := time.Since(start)
	metrics.RecordOperationSuccess(ctx, "initialize_service", "river")
	metrics.RecordOperationDuration(ctx, "initialize_service", "river", duration)

	ctxLogger.Info("Recompute queue service initialized successfully")
	return service, nil
}

// Start starts the River queue service.
func (s *Service) Start(ctx context.Context) error {
	start := time.Now()
	s.metrics.RecordOperationAttempt(ctx, "start_service", "river")

	s.logger.Info("Starting recompute queue service")

	if err := s.client.Start(ctx); err != nil {
		s.logger.Error("Failed to start River client", attr.Error(err))
		s.metrics.RecordOperationFailure(ctx, "start_service", "river")
		return fmt.Errorf("failed to start River client: %w", err)
	}

	duration := time.Since(start)
	s.metrics.RecordOperationSuccess(ctx, "start_service", "river")
	s.metrics.RecordOperationDuration(ctx, "start_service", "river", duration)

	s.logger.Info("Recompute queue service started successfully")
	return nil
}

// Stop stops the River queue service and releases its pool.
func (s *Service) Stop(ctx context.Context) error {
	start := time.Now()
	s.metrics.RecordOperationAttempt(ctx, "stop_service", "river")

	s.logger.Info("Stopping recompute queue service")

	if err := s.client.Stop(ctx); err != nil {
		s.logger.Error("Failed to stop River client", attr.Error(err))
		s.metrics.RecordOperationFailure(ctx, "stop_service", "river")
		return fmt.Errorf("failed to stop River client: %w", err)
	}
	s.pool.Close()

	duration := time.Since(start)
	s.metrics.RecordOperationSuccess(ctx, "stop_service", "river")
	s.metrics.RecordOperationDuration(ctx, "stop_service", "river", duration)

	s.logger.Info("Recompute queue service stopped successfully")
	return nil
}

// ScheduleRecompute enqueues a debounced recompute job for a tournament.
func (s *Service) ScheduleRecompute(ctx context.Context, tournamentID sharedtypes.TournamentID, reason string) error {
	start := time.Now()
	s.metrics.RecordOperationAttempt(ctx, "schedule_recompute", "river")

	ctxLogger := s.logger.With(
		attr.TournamentID("tournament_id", tournamentID),
		attr.String("reason", reason),
		attr.String("operation", "schedule_recompute"),
	)

	job := RecomputeArgs{
		TournamentID: tournamentID,
		Reason:       reason,
	}

	// The debounce delay lets a burst of edits land before the single
	// collapsed job runs.
	jobResult, err := s.client.Insert(ctx, job, &river.InsertOpts{
		ScheduledAt: time.Now().Add(s.debounce),
	})
	if err != nil {
		ctxLogger.Error("Failed to schedule recompute job", attr.Error(err))
		s.metrics.RecordOperationFailure(ctx, "schedule_recompute", "river")
		return fmt.Errorf("failed to schedule recompute job: %w", err)
	}

	duration := time.Since(start)
	s.metrics.RecordOperationSuccess(ctx, "schedule_recompute", "river")
	s.metrics.RecordOperationDuration(ctx, "schedule_recompute", "river", duration)

	if jobResult.UniqueSkippedAsDuplicate {
		s.metrics.RecordRecomputeSkipped(ctx)
		ctxLogger.Info("Recompute already pending, insert collapsed",
			attr.Int64("job_id", jobResult.Job.ID))
		return nil
	}

	s.metrics.RecordRecomputeScheduled(ctx)
	ctxLogger.Info("Recompute job scheduled",
		attr.Duration("delay", s.debounce),
		attr.Int64("job_id", jobResult.Job.ID))
	return nil
}

// CancelRecompute cancels pending recompute jobs for a tournament.
func (s *Service) CancelRecompute(ctx context.Context, tournamentID sharedtypes.TournamentID) error {
	start := time.Now()
	s.metrics.RecordOperationAttempt(ctx, "cancel_recompute", "river")

	ctxLogger := s.logger.With(
		attr.TournamentID("tournament_id", tournamentID),
		attr.String("operation", "cancel_recompute"),
	)

	ctxLogger.Info("Cancelling pending recompute jobs")

	type RiverJobRow struct {
		ID    int64  `bun:"id"`
		Kind  string `bun:"kind"`
		State string `bun:"state"`
	}

	var jobs []RiverJobRow
	err := s.db.NewSelect().
		Table("river_job").
		Column("id", "kind", "state").
		Where("kind = ?", RecomputeArgs{}.Kind()).
		Where("state IN (?, ?)", "available", "scheduled").
		Where("args->>'tournament_id' = ?", tournamentID.String()).
		Scan(ctx, &jobs)
	if err != nil {
		ctxLogger.Error("Failed to query jobs for cancellation", attr.Error(err))
		s.metrics.RecordOperationFailure(ctx, "cancel_recompute", "river")
		return fmt.Errorf("failed to query jobs for cancellation: %w", err)
	}

	if len(jobs) == 0 {
		ctxLogger.Info("No jobs found to cancel")
		duration := time.Since(start)
		s.metrics.RecordOperationSuccess(ctx, "cancel_recompute", "river")
		s.metrics.RecordOperationDuration(ctx, "cancel_recompute", "river", duration)
		return nil
	}

	cancelledCount := 0
	for _, job := range jobs {
		_, err := s.client.JobCancel(ctx, job.ID)
		if err != nil {
			ctxLogger.Warn("Failed to cancel job",
				attr.Int64("job_id", job.ID),
				attr.Error(err))
			continue
		}
		cancelledCount++
	}

	duration := time.Since(start)
	if cancelledCount == len(jobs) {
		s.metrics.RecordOperationSuccess(ctx, "cancel_recompute", "river")
	} else {
		s.metrics.RecordOperationFailure(ctx, "cancel_recompute", "river")
	}
	s.metrics.RecordOperationDuration(ctx, "cancel_recompute", "river", duration)

	ctxLogger.Info("Job cancellation completed",
		attr.Int("total_found", len(jobs)),
		attr.Int("cancelled_count", cancelledCount))

	return nil
}

// HealthCheck verifies the queue service is healthy.
func (s *Service) HealthCheck(ctx context.Context) error {
	start := time.Now()
	s.metrics.RecordOperationAttempt(ctx, "health_check", "river")

	if s.client == nil {
		s.metrics.RecordOperationFailure(ctx, "health_check", "river")
		return fmt.Errorf("river client is nil")
	}

	var count int
	err := s.db.NewSelect().
		Table("river_job").
		ColumnExpr("COUNT(*)").
		Scan(ctx, &count)
	if err != nil {
		s.logger.Error("Queue service health check failed", attr.Error(err))
		s.metrics.RecordOperationFailure(ctx, "health_check", "river")
		return fmt.Errorf("queue service health check failed: %w", err)
	}

	duration := time.Since(start)
	s.metrics.RecordOperationSuccess(ctx, "health_check", "river")
	s.metrics.RecordOperationDuration(ctx, "health_check", "river", duration)

	s.logger.Debug("Queue service health check passed", attr.Int("total_jobs", count))
	return nil
}

// GetClient returns the underlying River client for advanced operations.
func (s *Service) GetClient() *river.Client[pgx.Tx] {
	return s.client
}
