package rulesetservice

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	rulesetdb "github.com/Fifty-Move-Club/podium/app/modules/ruleset/infrastructure/repositories"
	rulesetevents "github.com/Fifty-Move-Club/podium/app/shared/events/ruleset"
	sharedtypes "github.com/Fifty-Move-Club/podium/app/shared/types"
)

// SaveInstitutionGroups validates and replaces the tournament's institution
// prize group definitions. The gender-slot sum is checked here at edit time
// and rechecked defensively at allocation time.
func (s *RulesetService) SaveInstitutionGroups(ctx context.Context, tournamentID sharedtypes.TournamentID, groups []rulesetevents.GroupInputV1) (SaveGroupsResult, error) {
	return withTelemetry(s, ctx, "SaveInstitutionGroups", tournamentID.String(), func(ctx context.Context) (SaveGroupsResult, error) {
		failure := func(field, reason string) SaveGroupsResult {
			if s.metrics != nil {
				s.metrics.RecordValidationFailure(ctx, field)
			}
			p := rulesetevents.RulesetGroupsSaveFailedPayloadV1{
				TournamentID: tournamentID,
				Reason:       reason,
			}
			return SaveGroupsResult{Failure: &p}
		}

		rows := make([]*rulesetdb.InstitutionGroup, 0, len(groups))
		prizeRows := make([]*rulesetdb.InstitutionPrize, 0)
		seenLabels := make(map[string]bool, len(groups))

		for i, in := range groups {
			label := strings.TrimSpace(in.Label)
			if label == "" {
				return failure("label", fmt.Sprintf("group %d: label is required", i+1)), nil
			}
			if seenLabels[label] {
				return failure("label", fmt.Sprintf("duplicate group label %q", label)), nil
			}
			seenLabels[label] = true

			attribute, err := parseGroupingAttribute(in.Attribute)
			if err != nil {
				return failure("grouping_attribute", fmt.Sprintf("group %q: %s", label, err.Error())), nil
			}
			if in.TeamSize < 1 {
				return failure("team_size", fmt.Sprintf("group %q: team_size must be at least 1", label)), nil
			}
			if in.FemaleSlots < 0 || in.MaleSlots < 0 {
				return failure("slots", fmt.Sprintf("group %q: slot counts cannot be negative", label)), nil
			}
			if in.FemaleSlots+in.MaleSlots > in.TeamSize {
				return failure("slots", fmt.Sprintf("group %q: female_slots + male_slots exceed team_size", label)), nil
			}

			groupID := sharedtypes.GroupID(uuid.New())
			rows = append(rows, &rulesetdb.InstitutionGroup{
				ID:          groupID,
				Label:       label,
				Attribute:   attribute,
				TeamSize:    in.TeamSize,
				FemaleSlots: in.FemaleSlots,
				MaleSlots:   in.MaleSlots,
				Active:      in.Active,
			})

			seenPlaces := make(map[int]bool, len(in.Prizes))
			for _, prize := range in.Prizes {
				if prize.Place < 1 {
					return failure("place", fmt.Sprintf("group %q: prize place must be at least 1", label)), nil
				}
				if seenPlaces[prize.Place] {
					return failure("place", fmt.Sprintf("group %q: duplicate prize place %d", label, prize.Place)), nil
				}
				seenPlaces[prize.Place] = true
				if prize.CashAmount < 0 {
					return failure("cash_amount", fmt.Sprintf("group %q: negative cash amount", label)), nil
				}

				prizeRows = append(prizeRows, &rulesetdb.InstitutionPrize{
					ID:         sharedtypes.PrizeID(uuid.New()),
					GroupID:    groupID,
					Place:      prize.Place,
					CashAmount: prize.CashAmount,
					HasTrophy:  prize.HasTrophy,
					HasMedal:   prize.HasMedal,
					HasGift:    prize.HasGift,
				})
			}
		}

		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (SaveGroupsResult, error) {
			if err := s.repo.ReplaceGroups(ctx, db, tournamentID, rows, prizeRows); err != nil {
				return SaveGroupsResult{}, err
			}

			p := rulesetevents.RulesetGroupsSavedPayloadV1{
				TournamentID: tournamentID,
				GroupCount:   len(rows),
			}
			return SaveGroupsResult{Success: &p}, nil
		})
	})
}
