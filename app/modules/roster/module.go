package roster

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"

	rosterservice "github.com/Fifty-Move-Club/podium/app/modules/roster/application"
	rosterdb "github.com/Fifty-Move-Club/podium/app/modules/roster/infrastructure/repositories"
	rosterrouter "github.com/Fifty-Move-Club/podium/app/modules/roster/infrastructure/router"
	"github.com/Fifty-Move-Club/podium/app/shared/eventbus"
	"github.com/Fifty-Move-Club/podium/app/shared/observability"
	rostermetrics "github.com/Fifty-Move-Club/podium/app/shared/observability/otel/metrics/roster"
	"github.com/Fifty-Move-Club/podium/app/shared/utils"
	"github.com/Fifty-Move-Club/podium/config"
)

// Module represents the roster module.
type Module struct {
	RosterService rosterservice.Service
	RosterRouter  *rosterrouter.RosterRouter
	cancelFunc    context.CancelFunc
	observability observability.Observability
}

// NewRosterModule creates and initializes a new roster module.
func NewRosterModule(
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

	logger.InfoContext(ctx, "roster.NewRosterModule initializing")

	// 1. Initialize Repository
	repo := rosterdb.NewRepository(db)

	// 2. Initialize Metrics
	metrics, err := rostermetrics.New(otel.Meter("roster"))
	if err != nil {
		return nil, fmt.Errorf("failed to create roster metrics: %w", err)
	}

	// 3. Initialize Service
	service := rosterservice.NewRosterService(repo, logger, metrics, tracer, db)

	// 4. Initialize Router
	rosterRouter := rosterrouter.NewRosterRouter(
		logger,
		router,
		eventBus,
		eventBus,
		cfg,
		helpers,
		tracer,
	)

	// 5. Configure the router with handlers
	if err := rosterRouter.Configure(routerCtx, service, metrics); err != nil {
		return nil, fmt.Errorf("failed to configure roster router: %w", err)
	}

	return &Module{
		RosterService: service,
		RosterRouter:  rosterRouter,
		observability: obs,
	}, nil
}

// Run starts the roster module.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Provider.Logger
	logger.InfoContext(ctx, "Starting roster module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	<-ctx.Done()
	logger.InfoContext(ctx, "Roster module goroutine stopped")
}

// Close shuts down the roster module.
func (m *Module) Close() error {
	logger := m.observability.Provider.Logger
	logger.Info("Stopping roster module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	logger.Info("Roster module stopped")
	return nil
}
