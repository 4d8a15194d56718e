package ruleset

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"

	rulesetservice "github.com/Fifty-Move-Club/podium/app/modules/ruleset/application"
	rulesetdb "github.com/Fifty-Move-Club/podium/app/modules/ruleset/infrastructure/repositories"
	rulesetrouter "github.com/Fifty-Move-Club/podium/app/modules/ruleset/infrastructure/router"
	"github.com/Fifty-Move-Club/podium/app/shared/eventbus"
	"github.com/Fifty-Move-Club/podium/app/shared/observability"
	rulesetmetrics "github.com/Fifty-Move-Club/podium/app/shared/observability/otel/metrics/ruleset"
	"github.com/Fifty-Move-Club/podium/app/shared/utils"
	"github.com/Fifty-Move-Club/podium/config"
)

// Module represents the ruleset module.
type Module struct {
	RulesetService rulesetservice.Service
	RulesetRouter  *rulesetrouter.RulesetRouter
	cancelFunc     context.CancelFunc
	observability  observability.Observability
}

// NewRulesetModule creates and initializes a new ruleset module.
func NewRulesetModule(
	ctx context.Context,
	cfg *config.Config,
	obs observability.Observability,
	eventBus eventbus.EventBus,
	router *message.Router,
	helpers utils.Helpers,
	routerCtx context.Context,
	db *bun.DB,
) (*Module, error) {
	logger := obs.Provider.Logger
	tracer := obs.Registry.Tracer

	logger.InfoContext(ctx, "ruleset.NewRulesetModule initializing")

	// 1. Initialize Repository
	repo := rulesetdb.NewRepository(db)

	// 2. Initialize Metrics
	metrics, err := rulesetmetrics.New(otel.Meter("ruleset"))
	if err != nil {
		return nil, fmt.Errorf("failed to create ruleset metrics: %w", err)
	}

	// 3. Initialize Service
	service := rulesetservice.NewRulesetService(repo, logger, metrics, tracer, db)

	// 4. Initialize Router
	rulesetRouter := rulesetrouter.NewRulesetRouter(
		logger,
		router,
		eventBus,
		eventBus,
		cfg,
		helpers,
		tracer,
	)

	// 5. Configure the router with handlers
	if err := rulesetRouter.Configure(routerCtx, service, metrics); err != nil {
		return nil, fmt.Errorf("failed to configure ruleset router: %w", err)
	}

	return &Module{
		RulesetService: service,
		RulesetRouter:  rulesetRouter,
		observability:  obs,
	}, nil
}

// Run starts the ruleset module.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Provider.Logger
	logger.InfoContext(ctx, "Starting ruleset module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	<-ctx.Done()
	logger.InfoContext(ctx, "Ruleset module goroutine stopped")
}

// Close shuts down the ruleset module.
func (m *Module) Close() error {
	logger := m.observability.Provider.Logger
	logger.Info("Stopping ruleset module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	logger.Info("Ruleset module stopped")
	return nil
}
