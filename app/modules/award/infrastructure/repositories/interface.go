package awarddb

import (
	"context"

	sharedtypes "github.com/Fifty-Move-Club/podium/app/shared/types"
	"github.com/uptrace/bun"
)

// Repository defines persistence for finalized award results.
//
// Error semantics:
//   - ReplaceResults returns wrapped driver errors only; an empty result set
//     is a valid replacement and clears the tournament's finalized rows.
//   - ListResults returns ErrNoResults when the tournament has never been
//     finalized, so callers can distinguish "not finalized yet" from an
//     empty prize list.
type Repository interface {
	ReplaceResults(ctx context.Context, db bun.IDB, tournamentID sharedtypes.TournamentID, results []*AwardResult) error
	ListResults(ctx context.Context, db bun.IDB, tournamentID sharedtypes.TournamentID) ([]*AwardResult, error)
}
