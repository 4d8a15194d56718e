package rulesethandlers

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	rulesetevents "github.com/Fifty-Move-Club/podium/app/shared/events/ruleset"
	"github.com/Fifty-Move-Club/podium/app/shared/observability/attr"
)

// HandleRulesetUpsertRequested handles the RulesetUpsertRequested event.
// A successful upsert publishes the ruleset change notification directly.
func (h *RulesetHandlers) HandleRulesetUpsertRequested(msg *message.Message) ([]*message.Message, error) {
	wrappedHandler := h.handlerWrapper(
		"HandleRulesetUpsertRequested",
		&rulesetevents.RulesetUpsertRequestedPayloadV1{},
		func(ctx context.Context, msg *message.Message, payload interface{}) ([]*message.Message, error) {
			upsertPayload := payload.(*rulesetevents.RulesetUpsertRequestedPayloadV1)

			h.logger.InfoContext(ctx, "Received RulesetUpsertRequested event",
				attr.CorrelationIDFromMsg(msg),
				attr.TournamentID("tournament_id", upsertPayload.TournamentID),
			)

			result, err := h.rulesetService.UpsertRuleConfig(ctx, *upsertPayload)
			if err != nil {
				h.logger.ErrorContext(ctx, "Failed to handle RulesetUpsertRequested event",
					attr.CorrelationIDFromMsg(msg),
					attr.Error(err),
				)
				return nil, fmt.Errorf("failed to handle RulesetUpsertRequested event: %w", err)
			}

			if result.Failure != nil {
				h.logger.InfoContext(ctx, "Rule config upsert rejected",
					attr.CorrelationIDFromMsg(msg),
					attr.Any("failure_payload", result.Failure),
				)

				failureMsg, errMsg := h.helpers.CreateResultMessage(
					msg,
					result.Failure,
					rulesetevents.RulesetUpsertFailedV1,
				)
				if errMsg != nil {
					return nil, fmt.Errorf("failed to create failure message: %w", errMsg)
				}

				return []*message.Message{failureMsg}, nil
			}

			if result.Success != nil {
				h.logger.InfoContext(ctx, "Rule config upserted", attr.CorrelationIDFromMsg(msg))

				updatedMsg, err := h.helpers.CreateResultMessage(
					msg,
					result.Success,
					rulesetevents.RulesetUpdatedV1,
				)
				if err != nil {
					return nil, fmt.Errorf("failed to create success message: %w", err)
				}

				return []*message.Message{updatedMsg}, nil
			}

			h.logger.ErrorContext(ctx, "Unexpected result from UpsertRuleConfig service",
				attr.CorrelationIDFromMsg(msg),
			)
			return nil, fmt.Errorf("unexpected result from service")
		},
	)

	return wrappedHandler(msg)
}
