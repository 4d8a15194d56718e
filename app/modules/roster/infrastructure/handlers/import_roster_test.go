package rosterhandlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	rosterservice "github.com/Fifty-Move-Club/podium/app/modules/roster/application"
	rosterevents "github.com/Fifty-Move-Club/podium/app/shared/events/roster"
	rostermetrics "github.com/Fifty-Move-Club/podium/app/shared/observability/otel/metrics/roster"
	sharedtypes "github.com/Fifty-Move-Club/podium/app/shared/types"
	"github.com/Fifty-Move-Club/podium/app/shared/utils"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandlers(svc rosterservice.Service) Handlers {
	return NewRosterHandlers(svc, slog.Default(), nil, utils.NewHelper(slog.Default()), rostermetrics.NewNoop())
}

func newImportRequestMessage(t *testing.T, payload rosterevents.RosterImportRequestedPayloadV1) *message.Message {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	msg := message.NewMessage(watermill.NewUUID(), data)
	middleware.SetCorrelationID("corr-123", msg)
	return msg
}

func TestHandleRosterImportRequested(t *testing.T) {
	testTournamentID := sharedtypes.TournamentID(uuid.New())
	requestPayload := rosterevents.RosterImportRequestedPayloadV1{
		TournamentID: testTournamentID,
		FileName:     "roster.csv",
		FileData:     []byte("Rank,Name\n1,Anna Petrova\n"),
		ColumnMap: sharedtypes.ColumnMap{
			sharedtypes.FieldRank:     0,
			sharedtypes.FieldFullName: 1,
		},
	}

	t.Run("success publishes completion and roster change", func(t *testing.T) {
		fakeService := NewFakeRosterService()
		fakeService.ImportRosterFunc = func(ctx context.Context, tournamentID sharedtypes.TournamentID, fileName string, fileData []byte, columnMap sharedtypes.ColumnMap) (rosterservice.ImportResult, error) {
			assert.Equal(t, testTournamentID, tournamentID)
			assert.Equal(t, "roster.csv", fileName)
			return rosterservice.ImportResult{
				Success: &rosterevents.RosterImportCompletedPayloadV1{
					TournamentID: tournamentID,
					RowsImported: 3,
				},
			}, nil
		}

		handlers := newTestHandlers(fakeService)
		msgs, err := handlers.HandleRosterImportRequested(newImportRequestMessage(t, requestPayload))

		require.NoError(t, err)
		require.Len(t, msgs, 2)

		assert.Equal(t, rosterevents.RosterImportCompletedV1, msgs[0].Metadata.Get("topic"))
		assert.Equal(t, "corr-123", middleware.MessageCorrelationID(msgs[0]))

		assert.Equal(t, rosterevents.RosterUpdatedV1, msgs[1].Metadata.Get("topic"))
		var updated rosterevents.RosterUpdatedPayloadV1
		require.NoError(t, json.Unmarshal(msgs[1].Payload, &updated))
		assert.Equal(t, testTournamentID, updated.TournamentID)
		assert.Equal(t, 3, updated.RowCount)
	})

	t.Run("failure result publishes import failed", func(t *testing.T) {
		fakeService := NewFakeRosterService()
		fakeService.ImportRosterFunc = func(ctx context.Context, tournamentID sharedtypes.TournamentID, fileName string, fileData []byte, columnMap sharedtypes.ColumnMap) (rosterservice.ImportResult, error) {
			return rosterservice.ImportResult{
				Failure: &rosterevents.RosterImportFailedPayloadV1{
					TournamentID: tournamentID,
					FileName:     fileName,
					Reason:       "no competitor rows found in file",
				},
			}, nil
		}

		handlers := newTestHandlers(fakeService)
		msgs, err := handlers.HandleRosterImportRequested(newImportRequestMessage(t, requestPayload))

		require.NoError(t, err)
		require.Len(t, msgs, 1)
		assert.Equal(t, rosterevents.RosterImportFailedV1, msgs[0].Metadata.Get("topic"))

		var failed rosterevents.RosterImportFailedPayloadV1
		require.NoError(t, json.Unmarshal(msgs[0].Payload, &failed))
		assert.Equal(t, "no competitor rows found in file", failed.Reason)
	})

	t.Run("service error propagates", func(t *testing.T) {
		fakeService := NewFakeRosterService()
		fakeService.ImportRosterFunc = func(ctx context.Context, tournamentID sharedtypes.TournamentID, fileName string, fileData []byte, columnMap sharedtypes.ColumnMap) (rosterservice.ImportResult, error) {
			return rosterservice.ImportResult{}, errors.New("service error")
		}

		handlers := newTestHandlers(fakeService)
		msgs, err := handlers.HandleRosterImportRequested(newImportRequestMessage(t, requestPayload))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "service error")
		assert.Nil(t, msgs)
	})

	t.Run("invalid payload fails to unmarshal", func(t *testing.T) {
		fakeService := NewFakeRosterService()
		handlers := newTestHandlers(fakeService)

		msgs, err := handlers.HandleRosterImportRequested(message.NewMessage(watermill.NewUUID(), []byte("not json")))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to unmarshal payload")
		assert.Nil(t, msgs)
		assert.Empty(t, fakeService.Trace())
	})
}
