package institutionservice

import (
	"context"

	institutionevents "github.com/Fifty-Move-Club/podium/app/shared/events/institution"
	"github.com/Fifty-Move-Club/podium/app/shared/results"
	sharedtypes "github.com/Fifty-Move-Club/podium/app/shared/types"
)

// AllocateResult is the operation envelope for team prize runs.
type AllocateResult = results.OperationResult[institutionevents.InstitutionAllocationCompletedPayloadV1, institutionevents.InstitutionAllocationFailedPayloadV1]

// FinalizeResult is the operation envelope for team prize finalize runs.
type FinalizeResult = results.OperationResult[institutionevents.InstitutionFinalizeCompletedPayloadV1, institutionevents.InstitutionFinalizeFailedPayloadV1]

// Service defines the interface for the InstitutionService.
type Service interface {
	// AllocateTeamPrizes computes standings and prize bindings for every
	// active institution prize group, behind a short-lived result cache.
	// Nothing is persisted; a group-level configuration problem fails that
	// group alone.
	AllocateTeamPrizes(ctx context.Context, tournamentID sharedtypes.TournamentID) (AllocateResult, error)

	// FinalizeTeamPrizes computes (or reuses) the current team prize outcome
	// and persists it. Persisting is this explicit step only, never a side
	// effect of allocation.
	FinalizeTeamPrizes(ctx context.Context, tournamentID sharedtypes.TournamentID) (FinalizeResult, error)

	// InvalidateCache drops every cached team prize outcome of one
	// tournament, forcing the next read to recompute.
	InvalidateCache(tournamentID sharedtypes.TournamentID)
}
