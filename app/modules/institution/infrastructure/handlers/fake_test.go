package institutionhandlers

import (
	"context"

	institutionservice "github.com/Fifty-Move-Club/podium/app/modules/institution/application"
	sharedtypes "github.com/Fifty-Move-Club/podium/app/shared/types"
)

// ------------------------
// Fake Institution Service
// ------------------------

// FakeInstitutionService provides a programmable stub for the
// institutionservice.Service interface.
type FakeInstitutionService struct {
	trace []string

	AllocateTeamPrizesFunc func(ctx context.Context, tournamentID sharedtypes.TournamentID) (institutionservice.AllocateResult, error)
	FinalizeTeamPrizesFunc func(ctx context.Context, tournamentID sharedtypes.TournamentID) (institutionservice.FinalizeResult, error)
	InvalidateCacheFunc    func(tournamentID sharedtypes.TournamentID)
}

// NewFakeInstitutionService initializes a new FakeInstitutionService.
func NewFakeInstitutionService() *FakeInstitutionService {
	return &FakeInstitutionService{
		trace: []string{},
	}
}

func (f *FakeInstitutionService) record(step string) {
	f.trace = append(f.trace, step)
}

// Trace returns the sequence of service methods called.
func (f *FakeInstitutionService) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

// --- Service Interface Implementation ---

func (f *FakeInstitutionService) AllocateTeamPrizes(ctx context.Context, tournamentID sharedtypes.TournamentID) (institutionservice.AllocateResult, error) {
	f.record("AllocateTeamPrizes")
	if f.AllocateTeamPrizesFunc != nil {
		return f.AllocateTeamPrizesFunc(ctx, tournamentID)
	}
	return institutionservice.AllocateResult{}, nil
}

func (f *FakeInstitutionService) FinalizeTeamPrizes(ctx context.Context, tournamentID sharedtypes.TournamentID) (institutionservice.FinalizeResult, error) {
	f.record("FinalizeTeamPrizes")
	if f.FinalizeTeamPrizesFunc != nil {
		return f.FinalizeTeamPrizesFunc(ctx, tournamentID)
	}
	return institutionservice.FinalizeResult{}, nil
}

func (f *FakeInstitutionService) InvalidateCache(tournamentID sharedtypes.TournamentID) {
	f.record("InvalidateCache")
	if f.InvalidateCacheFunc != nil {
		f.InvalidateCacheFunc(tournamentID)
	}
}

// Ensure the fake satisfies the Service interface
var _ institutionservice.Service = (*FakeInstitutionService)(nil)
