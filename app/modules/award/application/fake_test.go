package awardservice

import (
	"context"

	awarddb "github.com/Fifty-Move-Club/podium/app/modules/award/infrastructure/repositories"
	rosterservice "github.com/Fifty-Move-Club/podium/app/modules/roster/application"
	rosterdb "github.com/Fifty-Move-Club/podium/app/modules/roster/infrastructure/repositories"
	rulesetservice "github.com/Fifty-Move-Club/podium/app/modules/ruleset/application"
	rulesetdb "github.com/Fifty-Move-Club/podium/app/modules/ruleset/infrastructure/repositories"
	rulesetevents "github.com/Fifty-Move-Club/podium/app/shared/events/ruleset"
	sharedtypes "github.com/Fifty-Move-Club/podium/app/shared/types"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Award Repo
// ------------------------

type FakeAwardRepo struct {
	trace []string

	ReplaceResultsFunc func(ctx context.Context, db bun.IDB, tournamentID sharedtypes.TournamentID, results []*awarddb.AwardResult) error
	ListResultsFunc    func(ctx context.Context, db bun.IDB, tournamentID sharedtypes.TournamentID) ([]*awarddb.AwardResult, error)
}

func NewFakeAwardRepo() *FakeAwardRepo {
	return &FakeAwardRepo{
		trace: []string{},
	}
}

func (f *FakeAwardRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeAwardRepo) ReplaceResults(ctx context.Context, db bun.IDB, tournamentID sharedtypes.TournamentID, results []*awarddb.AwardResult) error {
	f.record("ReplaceResults")
	if f.ReplaceResultsFunc != nil {
		return f.ReplaceResultsFunc(ctx, db, tournamentID, results)
	}
	return nil
}

func (f *FakeAwardRepo) ListResults(ctx context.Context, db bun.IDB, tournamentID sharedtypes.TournamentID) ([]*awarddb.AwardResult, error) {
	f.record("ListResults")
	if f.ListResultsFunc != nil {
		return f.ListResultsFunc(ctx, db, tournamentID)
	}
	return nil, awarddb.ErrNoResults
}

func (f *FakeAwardRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

var _ awarddb.Repository = (*FakeAwardRepo)(nil)

// ------------------------
// Fake Roster Service
// ------------------------

type FakeRosterService struct {
	trace []string

	ImportRosterFunc func(ctx context.Context, tournamentID sharedtypes.TournamentID, fileName string, fileData []byte, columnMap sharedtypes.ColumnMap) (rosterservice.ImportResult, error)
	GetRosterFunc    func(ctx context.Context, tournamentID sharedtypes.TournamentID) ([]sharedtypes.Competitor, error)
}

func NewFakeRosterService() *FakeRosterService {
	return &FakeRosterService{
		trace: []string{},
	}
}

func (f *FakeRosterService) record(step string) {
	f.trace = append(f.trace, step)
}

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
	return nil, rosterdb.ErrNotFound
}

func (f *FakeRosterService) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

var _ rosterservice.Service = (*FakeRosterService)(nil)

// ------------------------
// Fake Ruleset Service
// ------------------------

type FakeRulesetService struct {
	trace []string

	UpsertRuleConfigFunc      func(ctx context.Context, input rulesetevents.RulesetUpsertRequestedPayloadV1) (rulesetservice.UpsertConfigResult, error)
	SaveCategoriesFunc        func(ctx context.Context, tournamentID sharedtypes.TournamentID, categories []rulesetevents.CategoryInputV1) (rulesetservice.SaveCategoriesResult, error)
	SaveInstitutionGroupsFunc func(ctx context.Context, tournamentID sharedtypes.TournamentID, groups []rulesetevents.GroupInputV1) (rulesetservice.SaveGroupsResult, error)
	GetRuleConfigFunc         func(ctx context.Context, tournamentID sharedtypes.TournamentID) (*sharedtypes.RuleConfig, error)
	ListCategoriesFunc        func(ctx context.Context, tournamentID sharedtypes.TournamentID) ([]sharedtypes.PrizeCategory, []sharedtypes.Prize, error)
	ListInstitutionGroupsFunc func(ctx context.Context, tournamentID sharedtypes.TournamentID) ([]sharedtypes.InstitutionGroup, []sharedtypes.InstitutionPrize, error)
}

func NewFakeRulesetService() *FakeRulesetService {
	return &FakeRulesetService{
		trace: []string{},
	}
}

func (f *FakeRulesetService) record(step string) {
	f.trace = append(f.trace, step)
}

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
	return nil, rulesetdb.ErrConfigNotFound
}

func (f *FakeRulesetService) ListCategories(ctx context.Context, tournamentID sharedtypes.TournamentID) ([]sharedtypes.PrizeCategory, []sharedtypes.Prize, error) {
	f.record("ListCategories")
	if f.ListCategoriesFunc != nil {
		return f.ListCategoriesFunc(ctx, tournamentID)
	}
	return []sharedtypes.PrizeCategory{}, []sharedtypes.Prize{}, nil
}

func (f *FakeRulesetService) ListInstitutionGroups(ctx context.Context, tournamentID sharedtypes.TournamentID) ([]sharedtypes.InstitutionGroup, []sharedtypes.InstitutionPrize, error) {
	f.record("ListInstitutionGroups")
	if f.ListInstitutionGroupsFunc != nil {
		return f.ListInstitutionGroupsFunc(ctx, tournamentID)
	}
	return []sharedtypes.InstitutionGroup{}, []sharedtypes.InstitutionPrize{}, nil
}

func (f *FakeRulesetService) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

var _ rulesetservice.Service = (*FakeRulesetService)(nil)
