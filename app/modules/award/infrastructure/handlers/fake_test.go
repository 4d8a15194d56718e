package awardhandlers

import (
	"context"

	awardservice "github.com/Fifty-Move-Club/podium/app/modules/award/application"
	sharedtypes "github.com/Fifty-Move-Club/podium/app/shared/types"
)

// ------------------------
// Fake Award Service
// ------------------------

// FakeAwardService provides a programmable stub for the
// awardservice.Service interface.
type FakeAwardService struct {
	trace []string

	AllocateIndividualFunc func(ctx context.Context, tournamentID sharedtypes.TournamentID) (awardservice.AllocateResult, error)
	FinalizeIndividualFunc func(ctx context.Context, tournamentID sharedtypes.TournamentID) (awardservice.FinalizeResult, error)
	InvalidateCacheFunc    func(tournamentID sharedtypes.TournamentID)
}

// NewFakeAwardService initializes a new FakeAwardService.
func NewFakeAwardService() *FakeAwardService {
	return &FakeAwardService{
		trace: []string{},
	}
}

func (f *FakeAwardService) record(step string) {
	f.trace = append(f.trace, step)
}

// Trace returns the sequence of service methods called.
func (f *FakeAwardService) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

// --- Service Interface Implementation ---

func (f *FakeAwardService) AllocateIndividual(ctx context.Context, tournamentID sharedtypes.TournamentID) (awardservice.AllocateResult, error) {
	f.record("AllocateIndividual")
	if f.AllocateIndividualFunc != nil {
		return f.AllocateIndividualFunc(ctx, tournamentID)
	}
	return awardservice.AllocateResult{}, nil
}

func (f *FakeAwardService) FinalizeIndividual(ctx context.Context, tournamentID sharedtypes.TournamentID) (awardservice.FinalizeResult, error) {
	f.record("FinalizeIndividual")
	if f.FinalizeIndividualFunc != nil {
		return f.FinalizeIndividualFunc(ctx, tournamentID)
	}
	return awardservice.FinalizeResult{}, nil
}

func (f *FakeAwardService) InvalidateCache(tournamentID sharedtypes.TournamentID) {
	f.record("InvalidateCache")
	if f.InvalidateCacheFunc != nil {
		f.InvalidateCacheFunc(tournamentID)
	}
}

// Ensure the fake satisfies the Service interface
var _ awardservice.Service = (*FakeAwardService)(nil)
