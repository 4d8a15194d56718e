package rulesetdb

import (
	"context"

	"github.com/uptrace/bun"

	sharedtypes "github.com/Fifty-Move-Club/podium/app/shared/types"
)

// Repository handles rule configuration persistence.
//
// Error semantics:
//   - GetConfig returns ErrConfigNotFound when no configuration row exists
//     for the tournament.
//   - List methods return empty slices, not errors, when nothing is
//     configured yet.
//   - All other errors are wrapped infrastructure errors.
type Repository interface {
	// UpsertConfig writes the tournament's policy record, inserting or
	// updating in place. There is never more than one row per tournament.
	UpsertConfig(ctx context.Context, db bun.IDB, cfg *RuleConfig) error

	// GetConfig returns the tournament's policy record.
	GetConfig(ctx context.Context, db bun.IDB, tournamentID sharedtypes.TournamentID) (*sharedtypes.RuleConfig, error)

	// ReplaceCategories swaps the tournament's full category and prize set.
	ReplaceCategories(ctx context.Context, db bun.IDB, tournamentID sharedtypes.TournamentID, categories []*PrizeCategory, prizes []*Prize) error

	// ListCategories returns categories ordered by priority ascending.
	ListCategories(ctx context.Context, db bun.IDB, tournamentID sharedtypes.TournamentID) ([]sharedtypes.PrizeCategory, error)

	// ListPrizes returns the tournament's prizes ordered by category then
	// place ascending.
	ListPrizes(ctx context.Context, db bun.IDB, tournamentID sharedtypes.TournamentID) ([]sharedtypes.Prize, error)

	// ReplaceGroups swaps the tournament's institution prize groups and
	// their prize places.
	ReplaceGroups(ctx context.Context, db bun.IDB, tournamentID sharedtypes.TournamentID, groups []*InstitutionGroup, prizes []*InstitutionPrize) error

	// ListGroups returns institution prize groups in label order.
	ListGroups(ctx context.Context, db bun.IDB, tournamentID sharedtypes.TournamentID) ([]sharedtypes.InstitutionGroup, error)

	// ListGroupPrizes returns the tournament's institution prizes ordered by
	// group then place ascending.
	ListGroupPrizes(ctx context.Context, db bun.IDB, tournamentID sharedtypes.TournamentID) ([]sharedtypes.InstitutionPrize, error)
}
