package award

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"

	awardservice "github.com/Fifty-Move-Club/podium/app/modules/award/application"
	awarddb "github.com/Fifty-Move-Club/podium/app/modules/award/infrastructure/repositories"
	awardrouter "github.com/Fifty-Move-Club/podium/app/modules/award/infrastructure/router"
	rosterservice "github.com/Fifty-Move-Club/podium/app/modules/roster/application"
	rulesetservice "github.com/Fifty-Move-Club/podium/app/modules/ruleset/application"
	"github.com/Fifty-Move-Club/podium/app/shared/cache"
	"github.com/Fifty-Move-Club/podium/app/shared/eventbus"
	"github.com/Fifty-Move-Club/podium/app/shared/observability"
	awardmetrics "github.com/Fifty-Move-Club/podium/app/shared/observability/otel/metrics/award"
	sharedtypes "github.com/Fifty-Move-Club/podium/app/shared/types"
	"github.com/Fifty-Move-Club/podium/app/shared/utils"
	"github.com/Fifty-Move-Club/podium/config"
)

// Module represents the award module. It depends on the roster and ruleset
// services for snapshot reads and owns the allocation result cache.
type Module struct {
	AwardService  awardservice.Service
	AwardRouter   *awardrouter.AwardRouter
	resultCache   *cache.Cache[sharedtypes.IndividualAllocationReport]
	cancelFunc    context.CancelFunc
	observability observability.Observability
}

// NewAwardModule creates and initializes a new award module.
func NewAwardModule(
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

	logger.InfoContext(ctx, "award.NewAwardModule initializing")

	// 1. Initialize Repository
	repo := awarddb.NewRepository(db)

	// 2. Initialize Metrics
	metrics, err := awardmetrics.New(otel.Meter("award"))
	if err != nil {
		return nil, fmt.Errorf("failed to create award metrics: %w", err)
	}

	// 3. Initialize the result cache
	resultCache := cache.New[sharedtypes.IndividualAllocationReport](cfg.Cache.ResultTTL, cfg.Cache.CleanupInterval)

	// 4. Initialize Service
	service := awardservice.NewAwardService(repo, rosterService, rulesetService, resultCache, logger, metrics, tracer, db)

	// 5. Initialize Router
	awardRouter := awardrouter.NewAwardRouter(
		logger,
		router,
		eventBus,
		eventBus,
		cfg,
		helpers,
		tracer,
	)

	// 6. Configure the router with handlers
	if err := awardRouter.Configure(routerCtx, service, metrics); err != nil {
		return nil, fmt.Errorf("failed to configure award router: %w", err)
	}

	return &Module{
		AwardService:  service,
		AwardRouter:   awardRouter,
		resultCache:   resultCache,
		observability: obs,
	}, nil
}

// Run starts the award module.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Provider.Logger
	logger.InfoContext(ctx, "Starting award module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	<-ctx.Done()
	logger.InfoContext(ctx, "Award module goroutine stopped")
}

// Close shuts down the award module.
func (m *Module) Close() error {
	logger := m.observability.Provider.Logger
	logger.Info("Stopping award module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}
	m.resultCache.Close()

	logger.Info("Award module stopped")
	return nil
}
