// Package awardevents defines the award module's event topics and payloads.
package awardevents

import (
	sharedtypes "github.com/Fifty-Move-Club/podium/app/shared/types"
)

// Stream name for all award subjects.
const AwardStreamName = "award"

// Topics.
const (
	AwardAllocationRequestedV1 = "award.allocation.requested.v1"
	AwardAllocationCompletedV1 = "award.allocation.completed.v1"
	AwardAllocationFailedV1    = "award.allocation.failed.v1"

	AwardFinalizeRequestedV1 = "award.finalize.requested.v1"
	AwardFinalizeCompletedV1 = "award.finalize.completed.v1"
	AwardFinalizeFailedV1    = "award.finalize.failed.v1"
)

// AwardAllocationRequestedPayloadV1 asks for a fresh individual allocation
// run.
type AwardAllocationRequestedPayloadV1 struct {
	TournamentID sharedtypes.TournamentID `json:"tournament_id"`
}

// AwardAllocationCompletedPayloadV1 carries the computed winner bindings.
type AwardAllocationCompletedPayloadV1 struct {
	TournamentID sharedtypes.TournamentID               `json:"tournament_id"`
	Report       sharedtypes.IndividualAllocationReport `json:"report"`
}

// AwardAllocationFailedPayloadV1 reports a run that could not produce a
// result.
type AwardAllocationFailedPayloadV1 struct {
	TournamentID sharedtypes.TournamentID `json:"tournament_id"`
	Reason       string                   `json:"reason"`
}

// AwardFinalizeRequestedPayloadV1 asks for the current allocation to be
// persisted.
type AwardFinalizeRequestedPayloadV1 struct {
	TournamentID sharedtypes.TournamentID `json:"tournament_id"`
}

// AwardFinalizeCompletedPayloadV1 reports persisted winner bindings.
type AwardFinalizeCompletedPayloadV1 struct {
	TournamentID sharedtypes.TournamentID `json:"tournament_id"`
	AwardCount   int                      `json:"award_count"`
}

// AwardFinalizeFailedPayloadV1 reports a finalize that did not persist.
type AwardFinalizeFailedPayloadV1 struct {
	TournamentID sharedtypes.TournamentID `json:"tournament_id"`
	Reason       string                   `json:"reason"`
}
