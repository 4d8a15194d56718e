package rosterhandlers

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/Fifty-Move-Club/podium/app/shared/observability/attr"
	rosterevents "github.com/Fifty-Move-Club/podium/app/shared/events/roster"
)

// HandleRosterImportRequested handles the RosterImportRequested event.
// A successful import publishes both the import completion and a roster
// change notification for downstream recomputation.
func (h *RosterHandlers) HandleRosterImportRequested(msg *message.Message) ([]*message.Message, error) {
	wrappedHandler := h.handlerWrapper(
		"HandleRosterImportRequested",
		&rosterevents.RosterImportRequestedPayloadV1{},
		func(ctx context.Context, msg *message.Message, payload interface{}) ([]*message.Message, error) {
			importPayload := payload.(*rosterevents.RosterImportRequestedPayloadV1)

			h.logger.InfoContext(ctx, "Received RosterImportRequested event",
				attr.CorrelationIDFromMsg(msg),
				attr.TournamentID("tournament_id", importPayload.TournamentID),
				attr.String("file_name", importPayload.FileName),
				attr.Int("file_bytes", len(importPayload.FileData)),
			)

			result, err := h.rosterService.ImportRoster(
				ctx,
				importPayload.TournamentID,
				importPayload.FileName,
				importPayload.FileData,
				importPayload.ColumnMap,
			)
			if err != nil {
				h.logger.ErrorContext(ctx, "Failed to handle RosterImportRequested event",
					attr.CorrelationIDFromMsg(msg),
					attr.Error(err),
				)
				return nil, fmt.Errorf("failed to handle RosterImportRequested event: %w", err)
			}

			if result.Failure != nil {
				h.logger.InfoContext(ctx, "Roster import failed",
					attr.CorrelationIDFromMsg(msg),
					attr.Any("failure_payload", result.Failure),
				)

				failureMsg, errMsg := h.helpers.CreateResultMessage(
					msg,
					result.Failure,
					rosterevents.RosterImportFailedV1,
				)
				if errMsg != nil {
					return nil, fmt.Errorf("failed to create failure message: %w", errMsg)
				}

				return []*message.Message{failureMsg}, nil
			}

			if result.Success != nil {
				h.logger.InfoContext(ctx, "Roster import successful", attr.CorrelationIDFromMsg(msg))

				completedMsg, err := h.helpers.CreateResultMessage(
					msg,
					result.Success,
					rosterevents.RosterImportCompletedV1,
				)
				if err != nil {
					return nil, fmt.Errorf("failed to create success message: %w", err)
				}

				updatedMsg, err := h.helpers.CreateResultMessage(
					msg,
					rosterevents.RosterUpdatedPayloadV1{
						TournamentID: importPayload.TournamentID,
						RowCount:     result.Success.RowsImported,
					},
					rosterevents.RosterUpdatedV1,
				)
				if err != nil {
					return nil, fmt.Errorf("failed to create roster updated message: %w", err)
				}

				return []*message.Message{completedMsg, updatedMsg}, nil
			}

			h.logger.ErrorContext(ctx, "Unexpected result from ImportRoster service",
				attr.CorrelationIDFromMsg(msg),
			)
			return nil, fmt.Errorf("unexpected result from service")
		},
	)

	return wrappedHandler(msg)
}
