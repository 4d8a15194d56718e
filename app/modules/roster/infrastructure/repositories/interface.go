package rosterdb

import (
	"context"

	sharedtypes "github.com/Fifty-Move-Club/podium/app/shared/types"
	"github.com/uptrace/bun"
)

// Repository defines the contract for roster persistence.
//
// Error semantics:
//   - ErrNotFound: tournament has no roster rows
//   - Other errors: infrastructure failures (DB connection, query errors)
type Repository interface {
	// ReplaceRoster atomically replaces all competitors for a tournament.
	// A re-import deletes the previous roster before inserting the new rows.
	ReplaceRoster(ctx context.Context, db bun.IDB, tournamentID sharedtypes.TournamentID, competitors []*Competitor) error

	// GetByTournament returns a tournament's roster ordered by rank ascending.
	// Returns ErrNotFound if no roster has been imported.
	GetByTournament(ctx context.Context, db bun.IDB, tournamentID sharedtypes.TournamentID) ([]sharedtypes.Competitor, error)

	// CountByTournament returns the number of roster rows for a tournament.
	CountByTournament(ctx context.Context, db bun.IDB, tournamentID sharedtypes.TournamentID) (int, error)
}
