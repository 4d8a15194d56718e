package rulesetservice

import (
	"context"

	rulesetdb "github.com/Fifty-Move-Club/podium/app/modules/ruleset/infrastructure/repositories"
	sharedtypes "github.com/Fifty-Move-Club/podium/app/shared/types"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Ruleset Repo
// ------------------------

type FakeRulesetRepo struct {
	trace []string

	UpsertConfigFunc      func(ctx context.Context, db bun.IDB, cfg *rulesetdb.RuleConfig) error
	GetConfigFunc         func(ctx context.Context, db bun.IDB, tournamentID sharedtypes.TournamentID) (*sharedtypes.RuleConfig, error)
	ReplaceCategoriesFunc func(ctx context.Context, db bun.IDB, tournamentID sharedtypes.TournamentID, categories []*rulesetdb.PrizeCategory, prizes []*rulesetdb.Prize) error
	ListCategoriesFunc    func(ctx context.Context, db bun.IDB, tournamentID sharedtypes.TournamentID) ([]sharedtypes.PrizeCategory, error)
	ListPrizesFunc        func(ctx context.Context, db bun.IDB, tournamentID sharedtypes.TournamentID) ([]sharedtypes.Prize, error)
	ReplaceGroupsFunc     func(ctx context.Context, db bun.IDB, tournamentID sharedtypes.TournamentID, groups []*rulesetdb.InstitutionGroup, prizes []*rulesetdb.InstitutionPrize) error
	ListGroupsFunc        func(ctx context.Context, db bun.IDB, tournamentID sharedtypes.TournamentID) ([]sharedtypes.InstitutionGroup, error)
	ListGroupPrizesFunc   func(ctx context.Context, db bun.IDB, tournamentID sharedtypes.TournamentID) ([]sharedtypes.InstitutionPrize, error)
}

func NewFakeRulesetRepo() *FakeRulesetRepo {
	return &FakeRulesetRepo{
		trace: []string{},
	}
}

func (f *FakeRulesetRepo) record(step string) {
	f.trace = append(f.trace, step)
}

// --- Repository Interface Implementation ---

func (f *FakeRulesetRepo) UpsertConfig(ctx context.Context, db bun.IDB, cfg *rulesetdb.RuleConfig) error {
	f.record("UpsertConfig")
	if f.UpsertConfigFunc != nil {
		return f.UpsertConfigFunc(ctx, db, cfg)
	}
	return nil
}

func (f *FakeRulesetRepo) GetConfig(ctx context.Context, db bun.IDB, tournamentID sharedtypes.TournamentID) (*sharedtypes.RuleConfig, error) {
	f.record("GetConfig")
	if f.GetConfigFunc != nil {
		return f.GetConfigFunc(ctx, db, tournamentID)
	}
	return nil, rulesetdb.ErrConfigNotFound
}

func (f *FakeRulesetRepo) ReplaceCategories(ctx context.Context, db bun.IDB, tournamentID sharedtypes.TournamentID, categories []*rulesetdb.PrizeCategory, prizes []*rulesetdb.Prize) error {
	f.record("ReplaceCategories")
	if f.ReplaceCategoriesFunc != nil {
		return f.ReplaceCategoriesFunc(ctx, db, tournamentID, categories, prizes)
	}
	return nil
}

func (f *FakeRulesetRepo) ListCategories(ctx context.Context, db bun.IDB, tournamentID sharedtypes.TournamentID) ([]sharedtypes.PrizeCategory, error) {
	f.record("ListCategories")
	if f.ListCategoriesFunc != nil {
		return f.ListCategoriesFunc(ctx, db, tournamentID)
	}
	return []sharedtypes.PrizeCategory{}, nil
}

func (f *FakeRulesetRepo) ListPrizes(ctx context.Context, db bun.IDB, tournamentID sharedtypes.TournamentID) ([]sharedtypes.Prize, error) {
	f.record("ListPrizes")
	if f.ListPrizesFunc != nil {
		return f.ListPrizesFunc(ctx, db, tournamentID)
	}
	return []sharedtypes.Prize{}, nil
}

func (f *FakeRulesetRepo) ReplaceGroups(ctx context.Context, db bun.IDB, tournamentID sharedtypes.TournamentID, groups []*rulesetdb.InstitutionGroup, prizes []*rulesetdb.InstitutionPrize) error {
	f.record("ReplaceGroups")
	if f.ReplaceGroupsFunc != nil {
		return f.ReplaceGroupsFunc(ctx, db, tournamentID, groups, prizes)
	}
	return nil
}

func (f *FakeRulesetRepo) ListGroups(ctx context.Context, db bun.IDB, tournamentID sharedtypes.TournamentID) ([]sharedtypes.InstitutionGroup, error) {
	f.record("ListGroups")
	if f.ListGroupsFunc != nil {
		return f.ListGroupsFunc(ctx, db, tournamentID)
	}
	return []sharedtypes.InstitutionGroup{}, nil
}

func (f *FakeRulesetRepo) ListGroupPrizes(ctx context.Context, db bun.IDB, tournamentID sharedtypes.TournamentID) ([]sharedtypes.InstitutionPrize, error) {
	f.record("ListGroupPrizes")
	if f.ListGroupPrizesFunc != nil {
		return f.ListGroupPrizesFunc(ctx, db, tournamentID)
	}
	return []sharedtypes.InstitutionPrize{}, nil
}

// --- Accessors for assertions ---

func (f *FakeRulesetRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

// Ensure the fake actually satisfies the interface
var _ rulesetdb.Repository = (*FakeRulesetRepo)(nil)
