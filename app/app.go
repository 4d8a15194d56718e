// Package app wires configuration, storage, the event bus, the watermill
// router, the four domain modules, the recompute queue, and the HTTP read
// surface into one runnable service.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/components/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"go.opentelemetry.io/otel"

	"github.com/Fifty-Move-Club/podium/app/modules/award"
	"github.com/Fifty-Move-Club/podium/app/modules/institution"
	"github.com/Fifty-Move-Club/podium/app/modules/roster"
	"github.com/Fifty-Move-Club/podium/app/modules/ruleset"
	recomputequeue "github.com/Fifty-Move-Club/podium/app/queue"
	"github.com/Fifty-Move-Club/podium/app/server"
	"github.com/Fifty-Move-Club/podium/app/shared/eventbus"
	awardevents "github.com/Fifty-Move-Club/podium/app/shared/events/award"
	institutionevents "github.com/Fifty-Move-Club/podium/app/shared/events/institution"
	rosterevents "github.com/Fifty-Move-Club/podium/app/shared/events/roster"
	rulesetevents "github.com/Fifty-Move-Club/podium/app/shared/events/ruleset"
	"github.com/Fifty-Move-Club/podium/app/shared/observability"
	"github.com/Fifty-Move-Club/podium/app/shared/observability/attr"
	queuemetrics "github.com/Fifty-Move-Club/podium/app/shared/observability/otel/metrics/queue"
	"github.com/Fifty-Move-Club/podium/app/shared/utils"
	"github.com/Fifty-Move-Club/podium/config"
)

// App holds all running pieces of the service.
type App struct {
	Config        *config.Config
	Observability *observability.Observability
	Router        *message.Router
	EventBus      eventbus.EventBus
	DB            *bun.DB

	RosterModule      *roster.Module
	RulesetModule     *ruleset.Module
	AwardModule       *award.Module
	InstitutionModule *institution.Module

	QueueService *recomputequeue.Service
	HTTPServer   *server.Server

	helpers      utils.Helpers
	routerCancel context.CancelFunc
	routerCtx    context.Context
}

// Initialize builds every component. Nothing processes messages until Run.
func (app *App) Initialize(ctx context.Context, cfg *config.Config, obs *observability.Observability) error {
	app.Config = cfg
	app.Observability = obs
	logger := obs.Provider.Logger

	logger.InfoContext(ctx, "App initializing")

	// Database
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.DSN)))
	db := bun.NewDB(sqldb, pgdialect.New())
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	app.DB = db

	// Event bus
	bus, err := eventbus.NewEventBus(
		ctx,
		cfg.NATS.URL,
		logger,
		"podium",
		obs.Registry.EventBusMetrics,
		obs.Registry.Tracer,
	)
	if err != nil {
		return fmt.Errorf("failed to create event bus: %w", err)
	}
	app.EventBus = bus

	for _, streamName := range []string{
		rosterevents.RosterStreamName,
		rulesetevents.RulesetStreamName,
		awardevents.AwardStreamName,
		institutionevents.InstitutionStreamName,
	} {
		if err := bus.CreateStream(ctx, streamName); err != nil {
			return fmt.Errorf("failed to create stream %s: %w", streamName, err)
		}
	}

	// Watermill router shared by every module. Cross-cutting middleware is
	// added once here; module routers only stamp their own metadata per
	// handler.
	watermillLogger := watermill.NewSlogLogger(logger)
	router, err := message.NewRouter(message.RouterConfig{CloseTimeout: 30 * time.Second}, watermillLogger)
	if err != nil {
		return fmt.Errorf("failed to create watermill router: %w", err)
	}
	router.AddMiddleware(
		middleware.CorrelationID,
		middleware.Recoverer,
		middleware.Retry{
			MaxRetries:      3,
			InitialInterval: 100 * time.Millisecond,
			Logger:          watermillLogger,
		}.Middleware,
	)
	metrics.NewPrometheusMetricsBuilder(obs.Registry.Prometheus, "", "").AddPrometheusRouterMetrics(router)
	app.Router = router

	app.helpers = utils.NewHelper(logger)

	routerCtx, routerCancel := context.WithCancel(context.Background())
	app.routerCtx = routerCtx
	app.routerCancel = routerCancel

	// Modules. Roster and ruleset come first; award and institution read
	// through their services.
	rosterModule, err := roster.NewRosterModule(ctx, cfg, *obs, bus, router, app.helpers, routerCtx, db)
	if err != nil {
		return fmt.Errorf("failed to initialize roster module: %w", err)
	}
	app.RosterModule = rosterModule

	rulesetModule, err := ruleset.NewRulesetModule(ctx, cfg, *obs, bus, router, app.helpers, routerCtx, db)
	if err != nil {
		return fmt.Errorf("failed to initialize ruleset module: %w", err)
	}
	app.RulesetModule = rulesetModule

	awardModule, err := award.NewAwardModule(
		ctx, cfg, *obs,
		rosterModule.RosterService,
		rulesetModule.RulesetService,
		bus, router, app.helpers, routerCtx, db,
	)
	if err != nil {
		return fmt.Errorf("failed to initialize award module: %w", err)
	}
	app.AwardModule = awardModule

	institutionModule, err := institution.NewInstitutionModule(
		ctx, cfg, *obs,
		rosterModule.RosterService,
		rulesetModule.RulesetService,
		bus, router, app.helpers, routerCtx, db,
	)
	if err != nil {
		return fmt.Errorf("failed to initialize institution module: %w", err)
	}
	app.InstitutionModule = institutionModule

	// Recompute queue: roster and rule edits collapse into debounced
	// background jobs that re-warm both result caches.
	qMetrics, err := queuemetrics.New(otel.Meter("queue"))
	if err != nil {
		return fmt.Errorf("failed to create queue metrics: %w", err)
	}
	queueService, err := recomputequeue.NewService(
		ctx,
		db,
		logger,
		cfg.Postgres.DSN,
		qMetrics,
		awardModule.AwardService,
		institutionModule.InstitutionService,
		cfg.Queue.Workers,
		cfg.Queue.RecomputeDebounce,
	)
	if err != nil {
		return fmt.Errorf("failed to initialize recompute queue: %w", err)
	}
	app.QueueService = queueService

	recomputequeue.RegisterRecomputeTriggers(
		router,
		bus,
		queueService,
		awardModule.AwardService,
		institutionModule.InstitutionService,
		app.helpers,
		logger,
	)

	app.HTTPServer = server.NewServer(
		cfg,
		*obs,
		awardModule.AwardService,
		institutionModule.InstitutionService,
		queueService,
	)

	logger.InfoContext(ctx, "App initialized")
	return nil
}

// Run starts everything and blocks until ctx is cancelled.
func (app *App) Run(ctx context.Context) error {
	logger := app.Observability.Provider.Logger

	if err := app.QueueService.Start(ctx); err != nil {
		return fmt.Errorf("failed to start recompute queue: %w", err)
	}

	routerErrCh := make(chan error, 1)
	go func() {
		if err := app.Router.Run(app.routerCtx); err != nil && !errors.Is(err, context.Canceled) {
			routerErrCh <- err
		}
		close(routerErrCh)
	}()

	select {
	case <-app.Router.Running():
	case err := <-routerErrCh:
		if err != nil {
			return fmt.Errorf("watermill router failed to start: %w", err)
		}
		return fmt.Errorf("watermill router stopped before running")
	case <-ctx.Done():
		return ctx.Err()
	}
	logger.InfoContext(ctx, "Watermill router running")

	var wg sync.WaitGroup
	for _, module := range []interface {
		Run(ctx context.Context, wg *sync.WaitGroup)
	}{
		app.RosterModule,
		app.RulesetModule,
		app.AwardModule,
		app.InstitutionModule,
	} {
		wg.Add(1)
		go module.Run(ctx, &wg)
	}

	httpErrCh := make(chan error, 1)
	go func() {
		httpErrCh <- app.HTTPServer.Start()
	}()

	logger.InfoContext(ctx, "App running")

	select {
	case <-ctx.Done():
	case err := <-httpErrCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
	case err := <-routerErrCh:
		if err != nil {
			return fmt.Errorf("watermill router failed: %w", err)
		}
	}

	wg.Wait()
	return nil
}

// Close shuts components down in reverse dependency order.
func (app *App) Close(ctx context.Context) error {
	logger := app.Observability.Provider.Logger
	logger.Info("App shutting down")

	var errs []error

	if app.HTTPServer != nil {
		if err := app.HTTPServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	if app.QueueService != nil {
		if err := app.QueueService.Stop(ctx); err != nil {
			errs = append(errs, fmt.Errorf("queue shutdown: %w", err))
		}
	}

	if app.InstitutionModule != nil {
		if err := app.InstitutionModule.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if app.AwardModule != nil {
		if err := app.AwardModule.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if app.RulesetModule != nil {
		if err := app.RulesetModule.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if app.RosterModule != nil {
		if err := app.RosterModule.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if app.routerCancel != nil {
		app.routerCancel()
	}
	if app.Router != nil {
		if err := app.Router.Close(); err != nil {
			errs = append(errs, fmt.Errorf("router close: %w", err))
		}
	}

	if app.EventBus != nil {
		if err := app.EventBus.Close(); err != nil {
			errs = append(errs, fmt.Errorf("event bus close: %w", err))
		}
	}

	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("database close: %w", err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		logger.Error("App shutdown finished with errors", attr.Error(err))
		return err
	}

	logger.Info("App shut down cleanly")
	return nil
}
