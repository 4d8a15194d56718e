package institutionhandlers

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	institutionevents "github.com/Fifty-Move-Club/podium/app/shared/events/institution"
	"github.com/Fifty-Move-Club/podium/app/shared/observability/attr"
)

// HandleInstitutionFinalizeRequested handles the InstitutionFinalizeRequested event.
func (h *InstitutionHandlers) HandleInstitutionFinalizeRequested(msg *message.Message) ([]*message.Message, error) {
	wrappedHandler := h.handlerWrapper(
		"HandleInstitutionFinalizeRequested",
		&institutionevents.InstitutionFinalizeRequestedPayloadV1{},
		func(ctx context.Context, msg *message.Message, payload interface{}) ([]*message.Message, error) {
			requestPayload := payload.(*institutionevents.InstitutionFinalizeRequestedPayloadV1)

			h.logger.InfoContext(ctx, "Received InstitutionFinalizeRequested event",
				attr.CorrelationIDFromMsg(msg),
				attr.TournamentID("tournament_id", requestPayload.TournamentID),
			)

			result, err := h.institutionService.FinalizeTeamPrizes(ctx, requestPayload.TournamentID)
			if err != nil {
				h.logger.ErrorContext(ctx, "Failed to handle InstitutionFinalizeRequested event",
					attr.CorrelationIDFromMsg(msg),
					attr.Error(err),
				)
				return nil, fmt.Errorf("failed to handle InstitutionFinalizeRequested event: %w", err)
			}

			if result.Failure != nil {
				h.logger.InfoContext(ctx, "Team finalize rejected",
					attr.CorrelationIDFromMsg(msg),
					attr.Any("failure_payload", result.Failure),
				)

				failureMsg, errMsg := h.helpers.CreateResultMessage(
					msg,
					result.Failure,
					institutionevents.InstitutionFinalizeFailedV1,
				)
				if errMsg != nil {
					return nil, fmt.Errorf("failed to create failure message: %w", errMsg)
				}

				return []*message.Message{failureMsg}, nil
			}

			if result.Success != nil {
				h.logger.InfoContext(ctx, "Team prizes finalized", attr.CorrelationIDFromMsg(msg))

				completedMsg, err := h.helpers.CreateResultMessage(
					msg,
					result.Success,
					institutionevents.InstitutionFinalizeCompletedV1,
				)
				if err != nil {
					return nil, fmt.Errorf("failed to create success message: %w", err)
				}

				return []*message.Message{completedMsg}, nil
			}

			h.logger.ErrorContext(ctx, "Unexpected result from FinalizeTeamPrizes service",
				attr.CorrelationIDFromMsg(msg),
			)
			return nil, fmt.Errorf("unexpected result from service")
		},
	)

	return wrappedHandler(msg)
}
