package rulesetservice

import (
	"context"

	rulesetevents "github.com/Fifty-Move-Club/podium/app/shared/events/ruleset"
	"github.com/Fifty-Move-Club/podium/app/shared/results"
	sharedtypes "github.com/Fifty-Move-Club/podium/app/shared/types"
)

// UpsertConfigResult is the operation envelope for rule config upserts. The
// success payload is the updated fan-out event.
type UpsertConfigResult = results.OperationResult[rulesetevents.RulesetUpdatedPayloadV1, rulesetevents.RulesetUpsertFailedPayloadV1]

// SaveCategoriesResult is the operation envelope for category replaces.
type SaveCategoriesResult = results.OperationResult[rulesetevents.RulesetCategoriesSavedPayloadV1, rulesetevents.RulesetCategoriesSaveFailedPayloadV1]

// SaveGroupsResult is the operation envelope for institution group replaces.
type SaveGroupsResult = results.OperationResult[rulesetevents.RulesetGroupsSavedPayloadV1, rulesetevents.RulesetGroupsSaveFailedPayloadV1]

// Service defines the interface for the RulesetService.
type Service interface {
	// UpsertRuleConfig validates and writes the tournament's policy record.
	// Organizer-typed date fields are parsed leniently.
	UpsertRuleConfig(ctx context.Context, input rulesetevents.RulesetUpsertRequestedPayloadV1) (UpsertConfigResult, error)

	// SaveCategories validates and replaces the tournament's prize category
	// definitions, prizes included.
	SaveCategories(ctx context.Context, tournamentID sharedtypes.TournamentID, categories []rulesetevents.CategoryInputV1) (SaveCategoriesResult, error)

	// SaveInstitutionGroups validates and replaces the tournament's
	// institution prize groups.
	SaveInstitutionGroups(ctx context.Context, tournamentID sharedtypes.TournamentID, groups []rulesetevents.GroupInputV1) (SaveGroupsResult, error)

	// GetRuleConfig returns the tournament's policy record.
	GetRuleConfig(ctx context.Context, tournamentID sharedtypes.TournamentID) (*sharedtypes.RuleConfig, error)

	// ListCategories returns the tournament's categories in priority order
	// together with their prizes in place order.
	ListCategories(ctx context.Context, tournamentID sharedtypes.TournamentID) ([]sharedtypes.PrizeCategory, []sharedtypes.Prize, error)

	// ListInstitutionGroups returns the tournament's institution prize
	// groups together with their prizes in place order.
	ListInstitutionGroups(ctx context.Context, tournamentID sharedtypes.TournamentID) ([]sharedtypes.InstitutionGroup, []sharedtypes.InstitutionPrize, error)
}
