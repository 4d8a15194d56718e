package rosterdb

import (
	"context"
	"errors"
	"fmt"
	"time"

	sharedtypes "github.com/Fifty-Move-Club/podium/app/shared/types"
	"github.com/uptrace/bun"
)

// ErrNotFound is returned when a tournament has no imported roster.
var ErrNotFound = errors.New("roster not found")

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new roster repository.
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

// ReplaceRoster atomically replaces all competitors for a tournament.
func (r *Impl) ReplaceRoster(ctx context.Context, db bun.IDB, tournamentID sharedtypes.TournamentID, competitors []*Competitor) error {
	db = r.resolveDB(db)

	_, err := db.NewDelete().
		Model((*Competitor)(nil)).
		Where("tournament_id = ?", tournamentID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to clear previous roster: %w", err)
	}

	if len(competitors) == 0 {
		return nil
	}

	now := time.Now()
	for _, c := range competitors {
		c.TournamentID = tournamentID
		c.CreatedAt = now
		c.UpdatedAt = now
	}

	_, err = db.NewInsert().
		Model(&competitors).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to insert roster rows: %w", err)
	}
	return nil
}

// GetByTournament returns a tournament's roster ordered by rank ascending.
func (r *Impl) GetByTournament(ctx context.Context, db bun.IDB, tournamentID sharedtypes.TournamentID) ([]sharedtypes.Competitor, error) {
	db = r.resolveDB(db)

	var rows []Competitor
	err := db.NewSelect().
		Model(&rows).
		Where("tournament_id = ?", tournamentID).
		Order("rank ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get roster: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}

	competitors := make([]sharedtypes.Competitor, 0, len(rows))
	for i := range rows {
		competitors = append(competitors, rows[i].ToShared())
	}
	return competitors, nil
}

// CountByTournament returns the number of roster rows for a tournament.
func (r *Impl) CountByTournament(ctx context.Context, db bun.IDB, tournamentID sharedtypes.TournamentID) (int, error) {
	db = r.resolveDB(db)

	count, err := db.NewSelect().
		Model((*Competitor)(nil)).
		Where("tournament_id = ?", tournamentID).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count roster rows: %w", err)
	}
	return count, nil
}
