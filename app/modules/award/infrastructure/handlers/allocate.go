package awardhandlers

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	awardevents "github.com/Fifty-Move-Club/podium/app/shared/events/award"
	"github.com/Fifty-Move-Club/podium/app/shared/observability/attr"
)

// HandleAwardAllocationRequested handles the AwardAllocationRequested event.
func (h *AwardHandlers) HandleAwardAllocationRequested(msg *message.Message) ([]*message.Message, error) {
	wrappedHandler := h.handlerWrapper(
		"HandleAwardAllocationRequested",
		&awardevents.AwardAllocationRequestedPayloadV1{},
		func(ctx context.Context, msg *message.Message, payload interface{}) ([]*message.Message, error) {
			requestPayload := payload.(*awardevents.AwardAllocationRequestedPayloadV1)

			h.logger.InfoContext(ctx, "Received AwardAllocationRequested event",
				attr.CorrelationIDFromMsg(msg),
				attr.TournamentID("tournament_id", requestPayload.TournamentID),
			)

			result, err := h.awardService.AllocateIndividual(ctx, requestPayload.TournamentID)
			if err != nil {
				h.logger.ErrorContext(ctx, "Failed to handle AwardAllocationRequested event",
					attr.CorrelationIDFromMsg(msg),
					attr.Error(err),
				)
				return nil, fmt.Errorf("failed to handle AwardAllocationRequested event: %w", err)
			}

			if result.Failure != nil {
				h.logger.InfoContext(ctx, "Allocation run rejected",
					attr.CorrelationIDFromMsg(msg),
					attr.Any("failure_payload", result.Failure),
				)

				failureMsg, errMsg := h.helpers.CreateResultMessage(
					msg,
					result.Failure,
					awardevents.AwardAllocationFailedV1,
				)
				if errMsg != nil {
					return nil, fmt.Errorf("failed to create failure message: %w", errMsg)
				}

				return []*message.Message{failureMsg}, nil
			}

			if result.Success != nil {
				h.logger.InfoContext(ctx, "Allocation run completed", attr.CorrelationIDFromMsg(msg))

				completedMsg, err := h.helpers.CreateResultMessage(
					msg,
					result.Success,
					awardevents.AwardAllocationCompletedV1,
				)
				if err != nil {
					return nil, fmt.Errorf("failed to create success message: %w", err)
				}

				return []*message.Message{completedMsg}, nil
			}

			h.logger.ErrorContext(ctx, "Unexpected result from AllocateIndividual service",
				attr.CorrelationIDFromMsg(msg),
			)
			return nil, fmt.Errorf("unexpected result from service")
		},
	)

	return wrappedHandler(msg)
}
