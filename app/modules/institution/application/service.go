package institutionservice

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	institutiondb "github.com/Fifty-Move-Club/podium/app/modules/institution/infrastructure/repositories"
	rosterservice "github.com/Fifty-Move-Club/podium/app/modules/roster/application"
	rulesetservice "github.com/Fifty-Move-Club/podium/app/modules/ruleset/application"
	"github.com/Fifty-Move-Club/podium/app/shared/cache"
	"github.com/Fifty-Move-Club/podium/app/shared/observability/attr"
	institutionmetrics "github.com/Fifty-Move-Club/podium/app/shared/observability/otel/metrics/institution"
	"github.com/Fifty-Move-Club/podium/app/shared/results"
	sharedtypes "github.com/Fifty-Move-Club/podium/app/shared/types"
)

// InstitutionService implements the Service interface. Snapshots are read
// through the roster and ruleset services; this module never declares their
// tables.
type InstitutionService struct {
	repo    institutiondb.Repository
	roster  rosterservice.Service
	ruleset rulesetservice.Service

	resultCache *cache.Cache[sharedtypes.TeamAllocationReport]

	logger  *slog.Logger
	metrics institutionmetrics.InstitutionMetrics
	tracer  trace.Tracer
	db      *bun.DB
}

// NewInstitutionService creates a new InstitutionService.
func NewInstitutionService(
	repo institutiondb.Repository,
	roster rosterservice.Service,
	ruleset rulesetservice.Service,
	resultCache *cache.Cache[sharedtypes.TeamAllocationReport],
	logger *slog.Logger,
	metrics institutionmetrics.InstitutionMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *InstitutionService {
	if logger == nil {
		logger = slog.Default()
	}
	if resultCache == nil {
		resultCache = cache.New[sharedtypes.TeamAllocationReport](5*time.Minute, 0)
	}
	return &InstitutionService{
		repo:        repo,
		roster:      roster,
		ruleset:     ruleset,
		resultCache: resultCache,
		logger:      logger,
		metrics:     metrics,
		tracer:      tracer,
		db:          db,
	}
}

// -----------------------------------------------------------------------------
// Generic Helpers (Defined as functions because methods cannot have type params)
// -----------------------------------------------------------------------------

// operationFunc is the generic signature for service operation functions.
type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[S any, F any](
	s *InstitutionService,
	ctx context.Context,
	operationName string,
	identifier string,
	op operationFunc[S, F],
) (result results.OperationResult[S, F], err error) {

	// Start span
	var span trace.Span
	if s.tracer != nil {
		ctx, span = s.tracer.Start(ctx, operationName, trace.WithAttributes(
			attribute.String("operation", operationName),
			attribute.String("identifier", identifier),
		))
	} else {
		span = trace.SpanFromContext(ctx)
	}
	defer span.End()

	// Record attempt
	if s.metrics != nil {
		s.metrics.RecordOperationAttempt(ctx, operationName, "InstitutionService")
	}

	// Track duration
	startTime := time.Now()
	defer func() {
		if s.metrics != nil {
			s.metrics.RecordOperationDuration(ctx, operationName, "InstitutionService", time.Since(startTime))
		}
	}()

	// Log operation start
	s.logger.InfoContext(ctx, "Operation triggered", attr.ExtractCorrelationID(ctx), attr.String("operation", operationName))

	// Panic recovery
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.ExtractCorrelationID(ctx),
				attr.String("identifier", identifier),
				attr.Error(err),
			)
			if s.metrics != nil {
				s.metrics.RecordOperationFailure(ctx, operationName, "InstitutionService")
			}
			span.RecordError(err)
			result = results.OperationResult[S, F]{}
		}
	}()

	// Execute operation
	result, err = op(ctx)

	// Handle Infrastructure Error
	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
			attr.Error(wrappedErr),
		)
		if s.metrics != nil {
			s.metrics.RecordOperationFailure(ctx, operationName, "InstitutionService")
		}
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	// Handle Domain Failure
	if result.IsFailure() {
		s.logger.WarnContext(ctx, "Operation returned failure result",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
			attr.Any("failure_payload", *result.Failure),
		)
	}

	// Handle Success
	if result.IsSuccess() {
		s.logger.InfoContext(ctx, "Operation completed successfully",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
		)
	}

	if s.metrics != nil {
		s.metrics.RecordOperationSuccess(ctx, operationName, "InstitutionService")
	}

	return result, nil
}

// runInTx ensures the operation runs within a transaction.
func runInTx[S any, F any](
	s *InstitutionService,
	ctx context.Context,
	fn func(ctx context.Context, db bun.IDB) (results.OperationResult[S, F], error),
) (results.OperationResult[S, F], error) {

	if s.db == nil {
		return fn(ctx, nil)
	}

	var result results.OperationResult[S, F]

	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var txErr error
		result, txErr = fn(ctx, tx)
		return txErr
	})

	return result, err
}
