package rosterhandlers

import (
	"context"

	rosterservice "github.com/Fifty-Move-Club/podium/app/modules/roster/application"
	sharedtypes "github.com/Fifty-Move-Club/podium/app/shared/types"
)

// ------------------------
// Fake Roster Service
// ------------------------

// FakeRosterService provides a programmable stub for the rosterservice.Service
// interface.
type FakeRosterService struct {
	trace []string

	ImportRosterFunc func(ctx context.Context, tournamentID sharedtypes.TournamentID, fileName string, fileData []byte, columnMap sharedtypes.ColumnMap) (rosterservice.ImportResult, error)
	GetRosterFunc    func(ctx context.Context, tournamentID sharedtypes.TournamentID) ([]sharedtypes.Competitor, error)
}

// NewFakeRosterService initializes a new FakeRosterService.
func NewFakeRosterService() *FakeRosterService {
	return &FakeRosterService{
		trace: []string{},
	}
}

func (f *FakeRosterService) record(step string) {
	f.trace = append(f.trace, step)
}

// Trace returns the sequence of service methods called.
func (f *FakeRosterService) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

// --- Service Interface Implementation ---

func (f *FakeRosterService) ImportRoster(ctx context.Context, tournamentID sharedtypes.TournamentID, fileName string, fileData []byte, columnMap sharedtypes.ColumnMap) (rosterservice.ImportResult, error) {
	f.record("ImportRoster")
	if f.ImportRosterFunc != nil {
		return f.ImportRosterFunc(ctx, tournamentID, fileName, fileData, columnMap)
	}
	return rosterservice.ImportResult{}, nil
}

func (f *FakeRosterService) GetRoster(ctx context.Context, tournamentID sharedtypes.TournamentID) ([]sharedtypes.Competitor, error) {
	f.record("GetRoster")
	if f.GetRosterFunc != nil {
		return f.GetRosterFunc(ctx, tournamentID)
	}
	return nil, nil
}

// Ensure the fake satisfies the Service interface
var _ rosterservice.Service = (*FakeRosterService)(nil)
