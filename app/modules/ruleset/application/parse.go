package rulesetservice

import (
	"fmt"
	"strings"

	sharedtypes "github.com/Fifty-Move-Club/podium/app/shared/types"
)

// Enum parsing for organizer-supplied policy fields. Empty input selects the
// documented default; anything unrecognized is rejected rather than coerced.

func parseAgeCutoffPolicy(s string) (sharedtypes.AgeCutoffPolicy, error) {
	switch strings.TrimSpace(s) {
	case "", string(sharedtypes.AgeCutoffFixedDate):
		return sharedtypes.AgeCutoffFixedDate, nil
	case string(sharedtypes.AgeCutoffTournamentStart):
		return sharedtypes.AgeCutoffTournamentStart, nil
	case string(sharedtypes.AgeCutoffCustomDate):
		return sharedtypes.AgeCutoffCustomDate, nil
	default:
		return "", fmt.Errorf("unknown age_cutoff_policy %q", s)
	}
}

func parseAgeBandPolicy(s string) (sharedtypes.AgeBandPolicy, error) {
	switch strings.TrimSpace(s) {
	case "", string(sharedtypes.AgeBandNonOverlapping):
		return sharedtypes.AgeBandNonOverlapping, nil
	case string(sharedtypes.AgeBandOverlapping):
		return sharedtypes.AgeBandOverlapping, nil
	default:
		return "", fmt.Errorf("unknown age_band_policy %q", s)
	}
}

func parseStackingPolicy(s string) (sharedtypes.StackingPolicy, error) {
	switch strings.TrimSpace(s) {
	case "", string(sharedtypes.StackingSingle):
		return sharedtypes.StackingSingle, nil
	case string(sharedtypes.StackingMainPlusOneSide):
		return sharedtypes.StackingMainPlusOneSide, nil
	case string(sharedtypes.StackingUnlimited):
		return sharedtypes.StackingUnlimited, nil
	default:
		return "", fmt.Errorf("unknown multi_prize_policy %q", s)
	}
}

func parsePriorityMode(s string) (sharedtypes.PriorityMode, error) {
	switch strings.TrimSpace(s) {
	case "", string(sharedtypes.PriorityMainFirst):
		return sharedtypes.PriorityMainFirst, nil
	case string(sharedtypes.PriorityValueFirst):
		return sharedtypes.PriorityValueFirst, nil
	default:
		return "", fmt.Errorf("unknown main_vs_side_priority %q", s)
	}
}

func parseNonCashPriority(ss []string) ([]sharedtypes.NonCashKind, error) {
	if len(ss) == 0 {
		return sharedtypes.DefaultNonCashPriority(), nil
	}
	out := make([]sharedtypes.NonCashKind, 0, len(ss))
	for _, s := range ss {
		switch strings.TrimSpace(s) {
		case string(sharedtypes.NonCashTrophy):
			out = append(out, sharedtypes.NonCashTrophy)
		case string(sharedtypes.NonCashGift):
			out = append(out, sharedtypes.NonCashGift)
		case string(sharedtypes.NonCashMedal):
			out = append(out, sharedtypes.NonCashMedal)
		default:
			return nil, fmt.Errorf("unknown non_cash_priority entry %q", s)
		}
	}
	return out, nil
}

func parseRankingMetric(s string) (sharedtypes.RankingMetric, error) {
	switch strings.TrimSpace(s) {
	case "", string(sharedtypes.RankingByRank):
		return sharedtypes.RankingByRank, nil
	case string(sharedtypes.RankingByRating):
		return sharedtypes.RankingByRating, nil
	default:
		return "", fmt.Errorf("unknown ranking metric %q", s)
	}
}

func parseGroupingAttribute(s string) (sharedtypes.GroupingAttribute, error) {
	switch strings.TrimSpace(s) {
	case string(sharedtypes.GroupByClub):
		return sharedtypes.GroupByClub, nil
	case string(sharedtypes.GroupByCity):
		return sharedtypes.GroupByCity, nil
	case string(sharedtypes.GroupByState):
		return sharedtypes.GroupByState, nil
	case string(sharedtypes.GroupBySchool):
		return sharedtypes.GroupBySchool, nil
	case string(sharedtypes.GroupByGroupLabel):
		return sharedtypes.GroupByGroupLabel, nil
	default:
		return "", fmt.Errorf("unknown grouping attribute %q", s)
	}
}
