package rulesethandlers

import (
	"context"

	rulesetservice "github.com/Fifty-Move-Club/podium/app/modules/ruleset/application"
	rulesetevents "github.com/Fifty-Move-Club/podium/app/shared/events/ruleset"
	sharedtypes "github.com/Fifty-Move-Club/podium/app/shared/types"
)

// ------------------------
// Fake Ruleset Service
// ------------------------

// FakeRulesetService provides a programmable stub for the
// rulesetservice.Service interface.
type FakeRulesetService struct {
	trace []string

	UpsertRuleConfigFunc      func(ctx context.Context, input rulesetevents.RulesetUpsertRequestedPayloadV1) (rulesetservice.UpsertConfigResult, error)
	SaveCategoriesFunc        func(ctx context.Context, tournamentID sharedtypes.TournamentID, categories []rulesetevents.CategoryInputV1) (rulesetservice.SaveCategoriesResult, error)
	SaveInstitutionGroupsFunc func(ctx context.Context, tournamentID sharedtypes.TournamentID, groups []rulesetevents.GroupInputV1) (rulesetservice.SaveGroupsResult, error)
	GetRuleConfigFunc         func(ctx context.Context, tournamentID sharedtypes.TournamentID) (*sharedtypes.RuleConfig, error)
	ListCategoriesFunc        func(ctx context.Context, tournamentID sharedtypes.TournamentID) ([]sharedtypes.PrizeCategory, []sharedtypes.Prize, error)
	ListInstitutionGroupsFunc func(ctx context.Context, tournamentID sharedtypes.TournamentID) ([]sharedtypes.InstitutionGroup, []sharedtypes.InstitutionPrize, error)
}

// NewFakeRulesetService initializes a new FakeRulesetService.
func NewFakeRulesetService() *FakeRulesetService {
	return &FakeRulesetService{
		trace: []string{},
	}
}

func (f *FakeRulesetService) record(step string) {
	f.trace = append(f.trace, step)
}

// Trace returns the sequence of service methods called.
func (f *FakeRulesetService) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

// --- Service Interface Implementation ---

func (f *FakeRulesetService) UpsertRuleConfig(ctx context.Context, input rulesetevents.RulesetUpsertRequestedPayloadV1) (rulesetservice.UpsertConfigResult, error) {
	f.record("UpsertRuleConfig")
	if f.UpsertRuleConfigFunc != nil {
		return f.UpsertRuleConfigFunc(ctx, input)
	}
	return rulesetservice.UpsertConfigResult{}, nil
}

func (f *FakeRulesetService) SaveCategories(ctx context.Context, tournamentID sharedtypes.TournamentID, categories []rulesetevents.CategoryInputV1) (rulesetservice.SaveCategoriesResult, error) {
	f.record("SaveCategories")
	if f.SaveCategoriesFunc != nil {
		return f.SaveCategoriesFunc(ctx, tournamentID, categories)
	}
	return rulesetservice.SaveCategoriesResult{}, nil
}

func (f *FakeRulesetService) SaveInstitutionGroups(ctx context.Context, tournamentID sharedtypes.TournamentID, groups []rulesetevents.GroupInputV1) (rulesetservice.SaveGroupsResult, error) {
	f.record("SaveInstitutionGroups")
	if f.SaveInstitutionGroupsFunc != nil {
		return f.SaveInstitutionGroupsFunc(ctx, tournamentID, groups)
	}
	return rulesetservice.SaveGroupsResult{}, nil
}

func (f *FakeRulesetService) GetRuleConfig(ctx context.Context, tournamentID sharedtypes.TournamentID) (*sharedtypes.RuleConfig, error) {
	f.record("GetRuleConfig")
	if f.GetRuleConfigFunc != nil {
		return f.GetRuleConfigFunc(ctx, tournamentID)
	}
	return nil, nil
}

func (f *FakeRulesetService) ListCategories(ctx context.Context, tournamentID sharedtypes.TournamentID) ([]sharedtypes.PrizeCategory, []sharedtypes.Prize, error) {
	f.record("ListCategories")
	if f.ListCategoriesFunc != nil {
		return f.ListCategoriesFunc(ctx, tournamentID)
	}
	return nil, nil, nil
}

func (f *FakeRulesetService) ListInstitutionGroups(ctx context.Context, tournamentID sharedtypes.TournamentID) ([]sharedtypes.InstitutionGroup, []sharedtypes.InstitutionPrize, error) {
	f.record("ListInstitutionGroups")
	if f.ListInstitutionGroupsFunc != nil {
		return f.ListInstitutionGroupsFunc(ctx, tournamentID)
	}
	return nil, nil, nil
}

// Ensure the fake satisfies the Service interface
var _ rulesetservice.Service = (*FakeRulesetService)(nil)
