package rulesetservice

import (
	"context"
	"fmt"

	sharedtypes "github.com/Fifty-Move-Club/podium/app/shared/types"
)

// GetRuleConfig returns the tournament's policy record.
func (s *RulesetService) GetRuleConfig(ctx context.Context, tournamentID sharedtypes.TournamentID) (*sharedtypes.RuleConfig, error) {
	cfg, err := s.repo.GetConfig(ctx, nil, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("GetRuleConfig: %w", err)
	}
	return cfg, nil
}

// ListCategories returns the tournament's categories in priority order with
// their prizes in place order.
func (s *RulesetService) ListCategories(ctx context.Context, tournamentID sharedtypes.TournamentID) ([]sharedtypes.PrizeCategory, []sharedtypes.Prize, error) {
	categories, err := s.repo.ListCategories(ctx, nil, tournamentID)
	if err != nil {
		return nil, nil, fmt.Errorf("ListCategories: %w", err)
	}
	prizes, err := s.repo.ListPrizes(ctx, nil, tournamentID)
	if err != nil {
		return nil, nil, fmt.Errorf("ListCategories: %w", err)
	}
	return categories, prizes, nil
}

// ListInstitutionGroups returns the tournament's institution prize groups
// with their prizes in place order.
func (s *RulesetService) ListInstitutionGroups(ctx context.Context, tournamentID sharedtypes.TournamentID) ([]sharedtypes.InstitutionGroup, []sharedtypes.InstitutionPrize, error) {
	groups, err := s.repo.ListGroups(ctx, nil, tournamentID)
	if err != nil {
		return nil, nil, fmt.Errorf("ListInstitutionGroups: %w", err)
	}
	prizes, err := s.repo.ListGroupPrizes(ctx, nil, tournamentID)
	if err != nil {
		return nil, nil, fmt.Errorf("ListInstitutionGroups: %w", err)
	}
	return groups, prizes, nil
}
