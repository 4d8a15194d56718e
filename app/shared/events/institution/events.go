// Package institutionevents defines the institution module's event topics
// and payloads.
package institutionevents

import (
	sharedtypes "github.com/Fifty-Move-Club/podium/app/shared/types"
)

// Stream name for all institution subjects.
const InstitutionStreamName = "institution"

// Topics.
const (
	InstitutionAllocationRequestedV1 = "institution.allocation.requested.v1"
	InstitutionAllocationCompletedV1 = "institution.allocation.completed.v1"
	InstitutionAllocationFailedV1    = "institution.allocation.failed.v1"

	InstitutionFinalizeRequestedV1 = "institution.finalize.requested.v1"
	InstitutionFinalizeCompletedV1 = "institution.finalize.completed.v1"
	InstitutionFinalizeFailedV1    = "institution.finalize.failed.v1"
)

// InstitutionAllocationRequestedPayloadV1 asks for a fresh team prize run.
type InstitutionAllocationRequestedPayloadV1 struct {
	TournamentID sharedtypes.TournamentID `json:"tournament_id"`
}

// InstitutionAllocationCompletedPayloadV1 carries the computed group
// standings and prize bindings.
type InstitutionAllocationCompletedPayloadV1 struct {
	TournamentID sharedtypes.TournamentID         `json:"tournament_id"`
	Report       sharedtypes.TeamAllocationReport `json:"report"`
}

// InstitutionAllocationFailedPayloadV1 reports a run that could not produce
// a result.
type InstitutionAllocationFailedPayloadV1 struct {
	TournamentID sharedtypes.TournamentID `json:"tournament_id"`
	Reason       string                   `json:"reason"`
}

// InstitutionFinalizeRequestedPayloadV1 asks for the current team prize
// outcome to be persisted.
type InstitutionFinalizeRequestedPayloadV1 struct {
	TournamentID sharedtypes.TournamentID `json:"tournament_id"`
}

// InstitutionFinalizeCompletedPayloadV1 reports persisted team prize
// outcomes.
type InstitutionFinalizeCompletedPayloadV1 struct {
	TournamentID sharedtypes.TournamentID `json:"tournament_id"`
	GroupCount   int                      `json:"group_count"`
}

// InstitutionFinalizeFailedPayloadV1 reports a finalize that did not
// persist.
type InstitutionFinalizeFailedPayloadV1 struct {
	TournamentID sharedtypes.TournamentID `json:"tournament_id"`
	Reason       string                   `json:"reason"`
}
