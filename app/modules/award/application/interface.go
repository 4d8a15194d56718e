package awardservice

import (
	"context"

	awardevents "github.com/Fifty-Move-Club/podium/app/shared/events/award"
	"github.com/Fifty-Move-Club/podium/app/shared/results"
	sharedtypes "github.com/Fifty-Move-Club/podium/app/shared/types"
)

// AllocateResult is the operation envelope for individual allocation runs.
type AllocateResult = results.OperationResult[awardevents.AwardAllocationCompletedPayloadV1, awardevents.AwardAllocationFailedPayloadV1]

// FinalizeResult is the operation envelope for finalize runs.
type FinalizeResult = results.OperationResult[awardevents.AwardFinalizeCompletedPayloadV1, awardevents.AwardFinalizeFailedPayloadV1]

// Service defines the interface for the AwardService.
type Service interface {
	// AllocateIndividual computes the tournament's individual prize winners
	// over a fresh snapshot, behind a short-lived result cache. Nothing is
	// persisted.
	AllocateIndividual(ctx context.Context, tournamentID sharedtypes.TournamentID) (AllocateResult, error)

	// FinalizeIndividual computes (or reuses) the current allocation and
	// persists its winner bindings. Persisting is this explicit step only,
	// never a side effect of allocation.
	FinalizeIndividual(ctx context.Context, tournamentID sharedtypes.TournamentID) (FinalizeResult, error)

	// InvalidateCache drops every cached allocation of one tournament,
	// forcing the next read to recompute.
	InvalidateCache(tournamentID sharedtypes.TournamentID)
}
