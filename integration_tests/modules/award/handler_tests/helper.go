package awardhandler_integration_tests

import (
	"context"
	"io"
	"log"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/Fifty-Move-Club/podium/app/modules/award"
	"github.com/Fifty-Move-Club/podium/app/modules/roster"
	"github.com/Fifty-Move-Club/podium/app/modules/ruleset"
	"github.com/Fifty-Move-Club/podium/app/shared/eventbus"
	awardevents "github.com/Fifty-Move-Club/podium/app/shared/events/award"
	institutionevents "github.com/Fifty-Move-Club/podium/app/shared/events/institution"
	rosterevents "github.com/Fifty-Move-Club/podium/app/shared/events/roster"
	rulesetevents "github.com/Fifty-Move-Club/podium/app/shared/events/ruleset"
	"github.com/Fifty-Move-Club/podium/app/shared/observability"
	eventbusmetrics "github.com/Fifty-Move-Club/podium/app/shared/observability/otel/metrics/eventbus"
	"github.com/Fifty-Move-Club/podium/app/shared/utils"
	"github.com/Fifty-Move-Club/podium/integration_tests/testutils"
)

// AwardHandlerTestDeps holds dependencies needed for award handler tests.
// The award module reads roster and ruleset snapshots through their
// services, so those modules are wired onto the same router.
type AwardHandlerTestDeps struct {
	*testutils.TestEnvironment
	RosterModule  *roster.Module
	RulesetModule *ruleset.Module
	AwardModule   *award.Module
	Router        *message.Router
	EventBus      eventbus.EventBus
}

// SetupTestAwardHandler sets up the environment and dependencies for award handler tests.
func SetupTestAwardHandler(t *testing.T, env *testutils.TestEnvironment) AwardHandlerTestDeps {
	t.Helper()

	if env == nil {
		t.Fatalf("TestEnvironment is nil. Ensure TestMain is correctly initializing testEnv.")
	}

	// The award module caches allocation runs; a zero TTL would expire
	// entries immediately and defeat the warm-read assertions.
	if env.Config.Cache.ResultTTL == 0 {
		env.Config.Cache.ResultTTL = 5 * time.Minute
	}

	discardLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	watermillLogger := watermill.NewStdLogger(false, false)

	eventBusCtx, eventBusCancel := context.WithCancel(env.Ctx)
	eventBusImpl, err := eventbus.NewEventBus(
		eventBusCtx,
		env.Config.NATS.URL,
		discardLogger,
		"podium",
		eventbusmetrics.NewNoop(),
		noop.NewTracerProvider().Tracer("test"),
	)
	if err != nil {
		eventBusCancel()
		t.Fatalf("Failed to create EventBus: %v", err)
	}

	requiredStreams := []string{
		rosterevents.RosterStreamName,
		rulesetevents.RulesetStreamName,
		awardevents.AwardStreamName,
		institutionevents.InstitutionStreamName,
	}
	for _, streamName := range requiredStreams {
		if err := eventBusImpl.CreateStream(env.Ctx, streamName); err != nil {
			eventBusImpl.Close()
			eventBusCancel()
			t.Fatalf("Failed to create required NATS stream %q: %v", streamName, err)
		}
	}

	routerConfig := message.RouterConfig{
		CloseTimeout: 5 * time.Second,
	}
	watermillRouter, err := message.NewRouter(routerConfig, watermillLogger)
	if err != nil {
		eventBusImpl.Close()
		eventBusCancel()
		t.Fatalf("Failed to create Watermill router: %v", err)
	}

	testObservability := observability.Observability{
		Provider: &observability.Provider{
			Logger: discardLogger,
		},
		Registry: &observability.Registry{
			Tracer:          noop.NewTracerProvider().Tracer("test"),
			EventBusMetrics: eventbusmetrics.NewNoop(),
		},
	}

	realHelpers := utils.NewHelper(discardLogger)

	routerWg := &sync.WaitGroup{}
	routerWg.Add(1)
	routerRunCtx, routerRunCancel := context.WithCancel(env.Ctx)

	rosterModule, err := roster.NewRosterModule(
		env.Ctx,
		env.Config,
		testObservability,
		eventBusImpl,
		watermillRouter,
		realHelpers,
		routerRunCtx,
		env.DB,
	)
	if err != nil {
		eventBusImpl.Close()
		eventBusCancel()
		routerRunCancel()
		t.Fatalf("Failed to create roster module: %v", err)
	}

	rulesetModule, err := ruleset.NewRulesetModule(
		env.Ctx,
		env.Config,
		testObservability,
		eventBusImpl,
		watermillRouter,
		realHelpers,
		routerRunCtx,
		env.DB,
	)
	if err != nil {
		eventBusImpl.Close()
		eventBusCancel()
		routerRunCancel()
		t.Fatalf("Failed to create ruleset module: %v", err)
	}

	awardModule, err := award.NewAwardModule(
		env.Ctx,
		env.Config,
		testObservability,
		rosterModule.RosterService,
		rulesetModule.RulesetService,
		eventBusImpl,
		watermillRouter,
		realHelpers,
		routerRunCtx,
		env.DB,
	)
	if err != nil {
		eventBusImpl.Close()
		eventBusCancel()
		routerRunCancel()
		t.Fatalf("Failed to create award module: %v", err)
	}

	go func() {
		defer routerWg.Done()
		if runErr := watermillRouter.Run(routerRunCtx); runErr != nil && runErr != context.Canceled {
			t.Errorf("Watermill router stopped with error during award module tests: %v", runErr)
		}
	}()

	time.Sleep(500 * time.Millisecond)

	t.Cleanup(func() {
		if eventBusImpl != nil {
			if err := eventBusImpl.Close(); err != nil {
				log.Printf("Error closing EventBus in test cleanup: %v", err)
			}
		}
		if awardModule != nil {
			if err := awardModule.Close(); err != nil {
				log.Printf("Error closing award module in test cleanup: %v", err)
			}
		}
		if rulesetModule != nil {
			if err := rulesetModule.Close(); err != nil {
				log.Printf("Error closing ruleset module in test cleanup: %v", err)
			}
		}
		if rosterModule != nil {
			if err := rosterModule.Close(); err != nil {
				log.Printf("Error closing roster module in test cleanup: %v", err)
			}
		}

		eventBusCancel()
		routerRunCancel()

		waitCh := make(chan struct{})
		go func() {
			routerWg.Wait()
			close(waitCh)
		}()
		select {
		case <-waitCh:
		case <-time.After(1 * time.Second):
			log.Println("WARNING: Award module router shutdown timed out")
		}
	})

	return AwardHandlerTestDeps{
		TestEnvironment: env,
		RosterModule:    rosterModule,
		RulesetModule:   rulesetModule,
		AwardModule:     awardModule,
		Router:          watermillRouter,
		EventBus:        eventBusImpl,
	}
}
