package institutiondb

import (
	"context"
	"errors"
	"fmt"
	"time"

	sharedtypes "github.com/Fifty-Move-Club/podium/app/shared/types"
	"github.com/uptrace/bun"
)

// ErrNoResults is returned when a tournament has no finalized team prizes.
var ErrNoResults = errors.New("institution results not found")

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new institution repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

// resolveDB returns the provided db handle, falling back to the repository's
// default connection if db is nil.
func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

// ReplaceResults atomically replaces the finalized team prize set for a
// tournament.
func (r *Impl) ReplaceResults(ctx context.Context, db bun.IDB, tournamentID sharedtypes.TournamentID, results []*InstitutionResult) error {
	db = r.resolveDB(db)

	_, err := db.NewDelete().
		Model((*InstitutionResult)(nil)).
		Where("tournament_id = ?", tournamentID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to clear previous institution results: %w", err)
	}

	if len(results) == 0 {
		return nil
	}

	now := time.Now()
	for _, row := range results {
		row.TournamentID = tournamentID
		row.FinalizedAt = now
	}

	_, err = db.NewInsert().
		Model(&results).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to insert institution results: %w", err)
	}
	return nil
}

// ListResults returns a tournament's finalized team prizes in report order.
func (r *Impl) ListResults(ctx context.Context, db bun.IDB, tournamentID sharedtypes.TournamentID) ([]*InstitutionResult, error) {
	db = r.resolveDB(db)

	var rows []*InstitutionResult
	err := db.NewSelect().
		Model(&rows).
		Where("tournament_id = ?", tournamentID).
		Order("position ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get institution results: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrNoResults
	}
	return rows, nil
}
