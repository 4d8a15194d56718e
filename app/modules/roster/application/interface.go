package rosterservice

import (
	"context"

	rosterevents "github.com/Fifty-Move-Club/podium/app/shared/events/roster"
	"github.com/Fifty-Move-Club/podium/app/shared/results"
	sharedtypes "github.com/Fifty-Move-Club/podium/app/shared/types"
)

// ImportResult is the operation envelope for roster imports.
type ImportResult = results.OperationResult[rosterevents.RosterImportCompletedPayloadV1, rosterevents.RosterImportFailedPayloadV1]

// Service defines the interface for the RosterService.
type Service interface {
	// ImportRoster parses and normalizes an uploaded roster file and
	// replaces the tournament's roster with the result.
	ImportRoster(ctx context.Context, tournamentID sharedtypes.TournamentID, fileName string, fileData []byte, columnMap sharedtypes.ColumnMap) (ImportResult, error)

	// GetRoster returns the tournament's normalized roster.
	GetRoster(ctx context.Context, tournamentID sharedtypes.TournamentID) ([]sharedtypes.Competitor, error)
}
