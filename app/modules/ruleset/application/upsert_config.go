package rulesetservice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"

	rulesetdb "github.com/Fifty-Move-Club/podium/app/modules/ruleset/infrastructure/repositories"
	rulesetevents "github.com/Fifty-Move-Club/podium/app/shared/events/ruleset"
	sharedtypes "github.com/Fifty-Move-Club/podium/app/shared/types"
)

// UpsertRuleConfig validates organizer input and writes the tournament's
// policy record in place. Validation problems are domain failures carried in
// the result; infrastructure problems surface as errors.
func (s *RulesetService) UpsertRuleConfig(ctx context.Context, input rulesetevents.RulesetUpsertRequestedPayloadV1) (UpsertConfigResult, error) {
	return withTelemetry(s, ctx, "UpsertRuleConfig", input.TournamentID.String(), func(ctx context.Context) (UpsertConfigResult, error) {
		failure := func(field, reason string) UpsertConfigResult {
			if s.metrics != nil {
				s.metrics.RecordValidationFailure(ctx, field)
			}
			p := rulesetevents.RulesetUpsertFailedPayloadV1{
				TournamentID: input.TournamentID,
				Reason:       reason,
			}
			return UpsertConfigResult{Failure: &p}
		}

		tournamentStart, err := s.dateParser.ParseDate(input.TournamentStart, time.Now())
		if err != nil {
			return failure("tournament_start", fmt.Sprintf("could not parse tournament start date %q", input.TournamentStart)), nil
		}

		cutoffPolicy, err := parseAgeCutoffPolicy(input.AgeCutoffPolicy)
		if err != nil {
			return failure("age_cutoff_policy", err.Error()), nil
		}
		bandPolicy, err := parseAgeBandPolicy(input.AgeBandPolicy)
		if err != nil {
			return failure("age_band_policy", err.Error()), nil
		}
		stacking, err := parseStackingPolicy(input.MultiPrizePolicy)
		if err != nil {
			return failure("multi_prize_policy", err.Error()), nil
		}
		priorityMode, err := parsePriorityMode(input.MainVsSidePriority)
		if err != nil {
			return failure("main_vs_side_priority", err.Error()), nil
		}
		nonCash, err := parseNonCashPriority(input.NonCashPriority)
		if err != nil {
			return failure("non_cash_priority", err.Error()), nil
		}

		cfg := sharedtypes.RuleConfig{
			TournamentID:          input.TournamentID,
			StrictAge:             input.StrictAge,
			AllowMissingDOBForAge: input.AllowMissingDOBForAge,
			MaxAgeInclusive:       input.MaxAgeInclusive,
			AgeCutoffPolicy:       cutoffPolicy,
			TournamentStart:       tournamentStart,
			AgeBandPolicy:         bandPolicy,
			MultiPrizePolicy:      stacking,
			MainVsSidePriority:    priorityMode,
			NonCashPriority:       nonCash,
		}

		// One free-text date field serves both date-bearing cutoff
		// policies: under custom_date it is the cutoff itself, under
		// fixed_date only its month and day are kept.
		cutoffText := strings.TrimSpace(input.CutoffDate)
		switch cutoffPolicy {
		case sharedtypes.AgeCutoffCustomDate:
			if cutoffText == "" {
				return failure("cutoff_date", "age_cutoff_policy custom_date requires a cutoff_date"), nil
			}
			cutoff, err := s.dateParser.ParseDate(cutoffText, tournamentStart)
			if err != nil {
				return failure("cutoff_date", fmt.Sprintf("could not parse cutoff date %q", cutoffText)), nil
			}
			cfg.AgeCutoffDate = &cutoff
		case sharedtypes.AgeCutoffFixedDate:
			if cutoffText != "" {
				cutoff, err := s.dateParser.ParseDate(cutoffText, tournamentStart)
				if err != nil {
					return failure("cutoff_date", fmt.Sprintf("could not parse cutoff date %q", cutoffText)), nil
				}
				cfg.AgeCutoffMonth = cutoff.Month()
				cfg.AgeCutoffDay = cutoff.Day()
			}
		}

		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (UpsertConfigResult, error) {
			if err := s.repo.UpsertConfig(ctx, db, rulesetdb.ConfigFromShared(cfg)); err != nil {
				return UpsertConfigResult{}, err
			}

			if s.metrics != nil {
				s.metrics.RecordConfigUpserted(ctx)
			}

			p := rulesetevents.RulesetUpdatedPayloadV1{
				TournamentID: input.TournamentID,
				Changed:      "config",
			}
			return UpsertConfigResult{Success: &p}, nil
		})
	})
}
