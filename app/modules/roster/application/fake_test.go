package rosterservice

import (
	"context"

	rosterdb "github.com/Fifty-Move-Club/podium/app/modules/roster/infrastructure/repositories"
	sharedtypes "github.com/Fifty-Move-Club/podium/app/shared/types"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Roster Repo
// ------------------------

type FakeRosterRepo struct {
	trace []string

	ReplaceRosterFunc     func(ctx context.Context, db bun.IDB, tournamentID sharedtypes.TournamentID, competitors []*rosterdb.Competitor) error
	GetByTournamentFunc   func(ctx context.Context, db bun.IDB, tournamentID sharedtypes.TournamentID) ([]sharedtypes.Competitor, error)
	CountByTournamentFunc func(ctx context.Context, db bun.IDB, tournamentID sharedtypes.TournamentID) (int, error)
}

func NewFakeRosterRepo() *FakeRosterRepo {
	return &FakeRosterRepo{
		trace: []string{},
	}
}

func (f *FakeRosterRepo) record(step string) {
	f.trace = append(f.trace, step)
}

// --- Repository Interface Implementation ---

func (f *FakeRosterRepo) ReplaceRoster(ctx context.Context, db bun.IDB, tournamentID sharedtypes.TournamentID, competitors []*rosterdb.Competitor) error {
	f.record("ReplaceRoster")
	if f.ReplaceRosterFunc != nil {
		return f.ReplaceRosterFunc(ctx, db, tournamentID, competitors)
	}
	return nil
}

func (f *FakeRosterRepo) GetByTournament(ctx context.Context, db bun.IDB, tournamentID sharedtypes.TournamentID) ([]sharedtypes.Competitor, error) {
	f.record("GetByTournament")
	if f.GetByTournamentFunc != nil {
		return f.GetByTournamentFunc(ctx, db, tournamentID)
	}
	return nil, rosterdb.ErrNotFound
}

func (f *FakeRosterRepo) CountByTournament(ctx context.Context, db bun.IDB, tournamentID sharedtypes.TournamentID) (int, error) {
	f.record("CountByTournament")
	if f.CountByTournamentFunc != nil {
		return f.CountByTournamentFunc(ctx, db, tournamentID)
	}
	return 0, nil
}

// --- Accessors for assertions ---

func (f *FakeRosterRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

// Ensure the fake actually satisfies the interface
var _ rosterdb.Repository = (*FakeRosterRepo)(nil)
