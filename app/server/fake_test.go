package server

import (
	"context"

	awardservice "github.com/Fifty-Move-Club/podium/app/modules/award/application"
	institutionservice "github.com/Fifty-Move-Club/podium/app/modules/institution/application"
	sharedtypes "github.com/Fifty-Move-Club/podium/app/shared/types"
)

// ------------------------
// Fake Award Service
// ------------------------

type FakeAwardService struct {
	trace []string

	AllocateIndividualFunc func(ctx context.Context, tournamentID sharedtypes.TournamentID) (awardservice.AllocateResult, error)
	FinalizeIndividualFunc func(ctx context.Context, tournamentID sharedtypes.TournamentID) (awardservice.FinalizeResult, error)
	InvalidateCacheFunc    func(tournamentID sharedtypes.TournamentID)
}

func NewFakeAwardService() *FakeAwardService {
	return &FakeAwardService{
		trace: []string{},
	}
}

func (f *FakeAwardService) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeAwardService) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

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

var _ awardservice.Service = (*FakeAwardService)(nil)

// ------------------------
// Fake Institution Service
// ------------------------

type FakeInstitutionService struct {
	trace []string

	AllocateTeamPrizesFunc func(ctx context.Context, tournamentID sharedtypes.TournamentID) (institutionservice.AllocateResult, error)
	FinalizeTeamPrizesFunc func(ctx context.Context, tournamentID sharedtypes.TournamentID) (institutionservice.FinalizeResult, error)
	InvalidateCacheFunc    func(tournamentID sharedtypes.TournamentID)
}

func NewFakeInstitutionService() *FakeInstitutionService {
	return &FakeInstitutionService{
		trace: []string{},
	}
}

func (f *FakeInstitutionService) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeInstitutionService) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

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

var _ institutionservice.Service = (*FakeInstitutionService)(nil)

// ------------------------
// Fake Health Checker
// ------------------------

type FakeHealthChecker struct {
	HealthCheckFunc func(ctx context.Context) error
}

func (f *FakeHealthChecker) HealthCheck(ctx context.Context) error {
	if f.HealthCheckFunc != nil {
		return f.HealthCheckFunc(ctx)
	}
	return nil
}

var _ HealthChecker = (*FakeHealthChecker)(nil)
