package rulesethandlers

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	rulesetevents "github.com/Fifty-Move-Club/podium/app/shared/events/ruleset"
	"github.com/Fifty-Move-Club/podium/app/shared/observability/attr"
)

// HandleGroupsSaveRequested handles the GroupsSaveRequested event.
// A successful save publishes both the save confirmation and a ruleset
// change notification for downstream recomputation.
func (h *RulesetHandlers) HandleGroupsSaveRequested(msg *message.Message) ([]*message.Message, error) {
	wrappedHandler := h.handlerWrapper(
		"HandleGroupsSaveRequested",
		&rulesetevents.RulesetGroupsSaveRequestedPayloadV1{},
		func(ctx context.Context, msg *message.Message, payload interface{}) ([]*message.Message, error) {
			savePayload := payload.(*rulesetevents.RulesetGroupsSaveRequestedPayloadV1)

			h.logger.InfoContext(ctx, "Received GroupsSaveRequested event",
				attr.CorrelationIDFromMsg(msg),
				attr.TournamentID("tournament_id", savePayload.TournamentID),
				attr.Int("group_count", len(savePayload.Groups)),
			)

			result, err := h.rulesetService.SaveInstitutionGroups(ctx, savePayload.TournamentID, savePayload.Groups)
			if err != nil {
				h.logger.ErrorContext(ctx, "Failed to handle GroupsSaveRequested event",
					attr.CorrelationIDFromMsg(msg),
					attr.Error(err),
				)
				return nil, fmt.Errorf("failed to handle GroupsSaveRequested event: %w", err)
			}

			if result.Failure != nil {
				h.logger.InfoContext(ctx, "Institution group save rejected",
					attr.CorrelationIDFromMsg(msg),
					attr.Any("failure_payload", result.Failure),
				)

				failureMsg, errMsg := h.helpers.CreateResultMessage(
					msg,
					result.Failure,
					rulesetevents.RulesetGroupsSaveFailedV1,
				)
				if errMsg != nil {
					return nil, fmt.Errorf("failed to create failure message: %w", errMsg)
				}

				return []*message.Message{failureMsg}, nil
			}

			if result.Success != nil {
				h.logger.InfoContext(ctx, "Institution groups saved", attr.CorrelationIDFromMsg(msg))

				savedMsg, err := h.helpers.CreateResultMessage(
					msg,
					result.Success,
					rulesetevents.RulesetGroupsSavedV1,
				)
				if err != nil {
					return nil, fmt.Errorf("failed to create success message: %w", err)
				}

				updatedMsg, err := h.helpers.CreateResultMessage(
					msg,
					rulesetevents.RulesetUpdatedPayloadV1{
						TournamentID: savePayload.TournamentID,
						Changed:      "groups",
					},
					rulesetevents.RulesetUpdatedV1,
				)
				if err != nil {
					return nil, fmt.Errorf("failed to create ruleset updated message: %w", err)
				}

				return []*message.Message{savedMsg, updatedMsg}, nil
			}

			h.logger.ErrorContext(ctx, "Unexpected result from SaveInstitutionGroups service",
				attr.CorrelationIDFromMsg(msg),
			)
			return nil, fmt.Errorf("unexpected result from service")
		},
	)

	return wrappedHandler(msg)
}
