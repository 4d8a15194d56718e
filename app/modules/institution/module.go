package institution

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"

	institutionservice "github.com/Fifty-Move-Club/podium/app/modules/institution/application"
	institutiondb "github.com/Fifty-Move-Club/podium/app/modules/institution/infrastructure/repositories"
	institutionrouter "github.com/Fifty-Move-Club/podium/app/modules/institution/infrastructure/router"
	rosterservice "github.com/Fifty-Move-Club/podium/app/modules/roster/application"
	rulesetservice "github.com/Fifty-Move-Club/podium/app/modules/ruleset/application"
	"github.com/Fifty-Move-Club/podium/app/shared/cache"
	"github.com/Fifty-Move-Club/podium/app/shared/eventbus"
	"github.com/Fifty-Move-Club/podium/app/shared/observability"
	institutionmetrics "github.com/Fifty-Move-Club/podium/app/shared/observability/otel/metrics/institution"
	sharedtypes "github.com/Fifty-Move-Club/podium/app/shared/types"
	"github.com/Fifty-Move-Club/podium/app/shared/utils"
	"github.com/Fifty-Move-Club/podium/config"
)

// Module represents the institution module. It depends on the roster and
// ruleset services for snapshot reads and owns the team prize result cache.
type Module struct {
	InstitutionService institutionservice.Service
	InstitutionRouter  *institutionrouter.InstitutionRouter
	resultCache        *cache.Cache[sharedtypes.TeamAllocationReport]
	cancelFunc         context.CancelFunc
	observability      observability.Observability
}

// NewInstitutionModule creates and initializes a new institution module.
func NewInstitutionModule(
	ctx context.Context,
	cfg *config.Config,
	obs observability.Observability,
	rosterService rosterservice.Service,
	rulesetService rulesetservice.Service,
	eventBus eventbus.EventBus,
	router *message.Router,
	helpers utils.Helpers,
	routerCtx context.Context,
	db *bun.DB,
) (*Module, error) {
	logger := obs.Provider.Logger
	tracer := obs.Registry.Tracer

	logger.InfoContext(ctx, "institution.NewInstitutionModule initializing")

	// 1. Initialize Repository
	repo := institutiondb.NewRepository(db)

	// 2. Initialize Metrics
	metrics, err := institutionmetrics.New(otel.Meter("institution"))
	if err != nil {
		return nil, fmt.Errorf("failed to create institution metrics: %w", err)
	}

	// 3. Initialize the result cache
	resultCache := cache.New[sharedtypes.TeamAllocationReport](cfg.Cache.ResultTTL, cfg.Cache.CleanupInterval)

	// 4. Initialize Service
	service := institutionservice.NewInstitutionService(repo, rosterService, rulesetService, resultCache, logger, metrics, tracer, db)

	// 5. Initialize Router
	institutionRouter := institutionrouter.NewInstitutionRouter(
		logger,
		router,
		eventBus,
		eventBus,
		cfg,
		helpers,
		tracer,
	)

	// 6. Configure the router with handlers
	if err := institutionRouter.Configure(routerCtx, service, metrics); err != nil {
		return nil, fmt.Errorf("failed to configure institution router: %w", err)
	}

	return &Module{
		InstitutionService: service,
		InstitutionRouter:  institutionRouter,
		resultCache:        resultCache,
		observability:      obs,
	}, nil
}

// Run starts the institution module.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Provider.Logger
	logger.InfoContext(ctx, "Starting institution module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	<-ctx.Done()
	logger.InfoContext(ctx, "Institution module goroutine stopped")
}

// Close shuts down the institution module.
func (m *Module) Close() error {
	logger := m.observability.Provider.Logger
	logger.Info("Stopping institution module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}
	m.resultCache.Close()

	logger.Info("Institution module stopped")
	return nil
}
