package recomputequeue

import (
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"

	awardservice "github.com/Fifty-Move-Club/podium/app/modules/award/application"
	institutionservice "github.com/Fifty-Move-Club/podium/app/modules/institution/application"
	"github.com/Fifty-Move-Club/podium/app/shared/eventbus"
	rosterevents "github.com/Fifty-Move-Club/podium/app/shared/events/roster"
	rulesetevents "github.com/Fifty-Move-Club/podium/app/shared/events/ruleset"
	"github.com/Fifty-Move-Club/podium/app/shared/observability/attr"
	"github.com/Fifty-Move-Club/podium/app/shared/utils"
)

// RegisterRecomputeTriggers subscribes to the roster and ruleset update
// fan-outs. On either event the caches are dropped immediately, so reads
// never serve a stale report during the debounce window, and a collapsed
// recompute job warms them again shortly after.
func RegisterRecomputeTriggers(
	router *message.Router,
	subscriber eventbus.EventBus,
	queueService QueueService,
	awardService awardservice.Service,
	institutionService institutionservice.Service,
	helpers utils.Helpers,
	logger *slog.Logger,
) {
	router.AddNoPublisherHandler(
		"recompute."+rosterevents.RosterUpdatedV1,
		rosterevents.RosterUpdatedV1,
		subscriber,
		func(msg *message.Message) error {
			ctx := msg.Context()

			payload := rosterevents.RosterUpdatedPayloadV1{}
			if err := helpers.UnmarshalPayload(msg, &payload); err != nil {
				logger.ErrorContext(ctx, "Failed to unmarshal roster update",
					attr.CorrelationIDFromMsg(msg),
					attr.Error(err),
				)
				return fmt.Errorf("failed to unmarshal payload: %w", err)
			}

			logger.InfoContext(ctx, "Roster changed, scheduling recompute",
				attr.CorrelationIDFromMsg(msg),
				attr.TournamentID("tournament_id", payload.TournamentID),
				attr.Int("row_count", payload.RowCount),
			)

			awardService.InvalidateCache(payload.TournamentID)
			institutionService.InvalidateCache(payload.TournamentID)

			return queueService.ScheduleRecompute(ctx, payload.TournamentID, ReasonRosterUpdated)
		},
	)

	router.AddNoPublisherHandler(
		"recompute."+rulesetevents.RulesetUpdatedV1,
		rulesetevents.RulesetUpdatedV1,
		subscriber,
		func(msg *message.Message) error {
			ctx := msg.Context()

			payload := rulesetevents.RulesetUpdatedPayloadV1{}
			if err := helpers.UnmarshalPayload(msg, &payload); err != nil {
				logger.ErrorContext(ctx, "Failed to unmarshal ruleset update",
					attr.CorrelationIDFromMsg(msg),
					attr.Error(err),
				)
				return fmt.Errorf("failed to unmarshal payload: %w", err)
			}

			logger.InfoContext(ctx, "Rules changed, scheduling recompute",
				attr.CorrelationIDFromMsg(msg),
				attr.TournamentID("tournament_id", payload.TournamentID),
				attr.String("changed", payload.Changed),
			)

			awardService.InvalidateCache(payload.TournamentID)
			institutionService.InvalidateCache(payload.TournamentID)

			return queueService.ScheduleRecompute(ctx, payload.TournamentID, ReasonRulesUpdated)
		},
	)
}
