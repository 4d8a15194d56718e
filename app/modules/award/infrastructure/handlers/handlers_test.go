package awardhandlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	awardservice "github.com/Fifty-Move-Club/podium/app/modules/award/application"
	awardevents "github.com/Fifty-Move-Club/podium/app/shared/events/award"
	awardmetrics "github.com/Fifty-Move-Club/podium/app/shared/observability/otel/metrics/award"
	sharedtypes "github.com/Fifty-Move-Club/podium/app/shared/types"
	"github.com/Fifty-Move-Club/podium/app/shared/utils"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandlers(svc awardservice.Service) Handlers {
	return NewAwardHandlers(svc, slog.Default(), nil, utils.NewHelper(slog.Default()), awardmetrics.NewNoop())
}

func newRequestMessage(t *testing.T, payload interface{}) *message.Message {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	msg := message.NewMessage(watermill.NewUUID(), data)
	middleware.SetCorrelationID("corr-789", msg)
	return msg
}

func sampleReport(tournamentID sharedtypes.TournamentID) sharedtypes.IndividualAllocationReport {
	return sharedtypes.IndividualAllocationReport{
		TournamentID: tournamentID,
		GeneratedAt:  time.Date(2026, time.June, 2, 10, 0, 0, 0, time.UTC),
		Awards: []sharedtypes.PrizeAward{
			{
				CategoryID:   sharedtypes.CategoryID(uuid.New()),
				CategoryName: "Main",
				PrizeID:      sharedtypes.PrizeID(uuid.New()),
				Place:        1,
				CashAmount:   100000,
				Winner: &sharedtypes.AwardedCompetitor{
					CompetitorID: sharedtypes.CompetitorID(uuid.New()),
					FullName:     "Asha Rao",
					Rank:         1,
				},
			},
		},
	}
}

func TestHandleAwardAllocationRequested(t *testing.T) {
	testTournamentID := sharedtypes.TournamentID(uuid.New())
	requestPayload := awardevents.AwardAllocationRequestedPayloadV1{
		TournamentID: testTournamentID,
	}

	t.Run("success publishes the completed report", func(t *testing.T) {
		fakeService := NewFakeAwardService()
		fakeService.AllocateIndividualFunc = func(ctx context.Context, id sharedtypes.TournamentID) (awardservice.AllocateResult, error) {
			assert.Equal(t, testTournamentID, id)
			return awardservice.AllocateResult{
				Success: &awardevents.AwardAllocationCompletedPayloadV1{
					TournamentID: id,
					Report:       sampleReport(id),
				},
			}, nil
		}

		handlers := newTestHandlers(fakeService)
		msgs, err := handlers.HandleAwardAllocationRequested(newRequestMessage(t, requestPayload))

		require.NoError(t, err)
		require.Len(t, msgs, 1)
		assert.Equal(t, awardevents.AwardAllocationCompletedV1, msgs[0].Metadata.Get("topic"))
		assert.Equal(t, "corr-789", middleware.MessageCorrelationID(msgs[0]))

		var completed awardevents.AwardAllocationCompletedPayloadV1
		require.NoError(t, json.Unmarshal(msgs[0].Payload, &completed))
		require.Len(t, completed.Report.Awards, 1)
		assert.Equal(t, "Asha Rao", completed.Report.Awards[0].Winner.FullName)
		assert.Equal(t, []string{"AllocateIndividual"}, fakeService.Trace())
	})

	t.Run("missing snapshot publishes the failure event", func(t *testing.T) {
		fakeService := NewFakeAwardService()
		fakeService.AllocateIndividualFunc = func(ctx context.Context, id sharedtypes.TournamentID) (awardservice.AllocateResult, error) {
			return awardservice.AllocateResult{
				Failure: &awardevents.AwardAllocationFailedPayloadV1{
					TournamentID: id,
					Reason:       "rule configuration not found",
				},
			}, nil
		}

		handlers := newTestHandlers(fakeService)
		msgs, err := handlers.HandleAwardAllocationRequested(newRequestMessage(t, requestPayload))

		require.NoError(t, err)
		require.Len(t, msgs, 1)
		assert.Equal(t, awardevents.AwardAllocationFailedV1, msgs[0].Metadata.Get("topic"))

		var failed awardevents.AwardAllocationFailedPayloadV1
		require.NoError(t, json.Unmarshal(msgs[0].Payload, &failed))
		assert.Equal(t, "rule configuration not found", failed.Reason)
	})

	t.Run("service error propagates", func(t *testing.T) {
		fakeService := NewFakeAwardService()
		fakeService.AllocateIndividualFunc = func(ctx context.Context, id sharedtypes.TournamentID) (awardservice.AllocateResult, error) {
			return awardservice.AllocateResult{}, errors.New("database down")
		}

		handlers := newTestHandlers(fakeService)
		msgs, err := handlers.HandleAwardAllocationRequested(newRequestMessage(t, requestPayload))

		require.Error(t, err)
		assert.Nil(t, msgs)
	})

	t.Run("invalid payload fails before reaching the service", func(t *testing.T) {
		fakeService := NewFakeAwardService()
		handlers := newTestHandlers(fakeService)

		msg := message.NewMessage(watermill.NewUUID(), []byte("{not json"))
		_, err := handlers.HandleAwardAllocationRequested(msg)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to unmarshal payload")
		assert.Empty(t, fakeService.Trace())
	})
}

func TestHandleAwardFinalizeRequested(t *testing.T) {
	testTournamentID := sharedtypes.TournamentID(uuid.New())
	requestPayload := awardevents.AwardFinalizeRequestedPayloadV1{
		TournamentID: testTournamentID,
	}

	t.Run("success publishes the finalize confirmation", func(t *testing.T) {
		fakeService := NewFakeAwardService()
		fakeService.FinalizeIndividualFunc = func(ctx context.Context, id sharedtypes.TournamentID) (awardservice.FinalizeResult, error) {
			return awardservice.FinalizeResult{
				Success: &awardevents.AwardFinalizeCompletedPayloadV1{
					TournamentID: id,
					AwardCount:   7,
				},
			}, nil
		}

		handlers := newTestHandlers(fakeService)
		msgs, err := handlers.HandleAwardFinalizeRequested(newRequestMessage(t, requestPayload))

		require.NoError(t, err)
		require.Len(t, msgs, 1)
		assert.Equal(t, awardevents.AwardFinalizeCompletedV1, msgs[0].Metadata.Get("topic"))

		var completed awardevents.AwardFinalizeCompletedPayloadV1
		require.NoError(t, json.Unmarshal(msgs[0].Payload, &completed))
		assert.Equal(t, 7, completed.AwardCount)
		assert.Equal(t, []string{"FinalizeIndividual"}, fakeService.Trace())
	})

	t.Run("missing snapshot publishes the failure event", func(t *testing.T) {
		fakeService := NewFakeAwardService()
		fakeService.FinalizeIndividualFunc = func(ctx context.Context, id sharedtypes.TournamentID) (awardservice.FinalizeResult, error) {
			return awardservice.FinalizeResult{
				Failure: &awardevents.AwardFinalizeFailedPayloadV1{
					TournamentID: id,
					Reason:       "roster not found",
				},
			}, nil
		}

		handlers := newTestHandlers(fakeService)
		msgs, err := handlers.HandleAwardFinalizeRequested(newRequestMessage(t, requestPayload))

		require.NoError(t, err)
		require.Len(t, msgs, 1)
		assert.Equal(t, awardevents.AwardFinalizeFailedV1, msgs[0].Metadata.Get("topic"))

		var failed awardevents.AwardFinalizeFailedPayloadV1
		require.NoError(t, json.Unmarshal(msgs[0].Payload, &failed))
		assert.Equal(t, "roster not found", failed.Reason)
	})

	t.Run("service error propagates", func(t *testing.T) {
		fakeService := NewFakeAwardService()
		fakeService.FinalizeIndividualFunc = func(ctx context.Context, id sharedtypes.TournamentID) (awardservice.FinalizeResult, error) {
			return awardservice.FinalizeResult{}, errors.New("database down")
		}

		handlers := newTestHandlers(fakeService)
		msgs, err := handlers.HandleAwardFinalizeRequested(newRequestMessage(t, requestPayload))

		require.Error(t, err)
		assert.Nil(t, msgs)
	})
}
