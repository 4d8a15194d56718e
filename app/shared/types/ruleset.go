package sharedtypes

import "time"

// RuleConfig is the single, tournament-scoped allocation policy record.
// It is upserted, never duplicated.
type RuleConfig struct {
	TournamentID TournamentID `json:"tournament_id"`

	StrictAge             bool `json:"strict_age"`
	AllowMissingDOBForAge bool `json:"allow_missing_dob_for_age"`
	MaxAgeInclusive       bool `json:"max_age_inclusive"`

	AgeCutoffPolicy AgeCutoffPolicy `json:"age_cutoff_policy"`
	// AgeCutoffMonth/Day apply under the fixed-date policy; zero values
	// fall back to January 1.
	AgeCutoffMonth time.Month `json:"age_cutoff_month,omitempty"`
	AgeCutoffDay   int        `json:"age_cutoff_day,omitempty"`
	// AgeCutoffDate applies under the custom-date policy.
	AgeCutoffDate   *time.Time `json:"age_cutoff_date,omitempty"`
	TournamentStart time.Time  `json:"tournament_start"`

	AgeBandPolicy      AgeBandPolicy  `json:"age_band_policy"`
	MultiPrizePolicy   StackingPolicy `json:"multi_prize_policy"`
	MainVsSidePriority PriorityMode   `json:"main_vs_side_priority"`
	// NonCashPriority is a total order over trophy/gift/medal used when
	// cash amounts tie.
	NonCashPriority []NonCashKind `json:"non_cash_priority"`
}

// DefaultNonCashPriority is the ordering applied when an organizer has not
// configured one.
func DefaultNonCashPriority() []NonCashKind {
	return []NonCashKind{NonCashTrophy, NonCashGift, NonCashMedal}
}

// EffectiveNonCashPriority returns the configured order, padded with any
// missing kinds in default order so comparison is always total.
func (rc *RuleConfig) EffectiveNonCashPriority() []NonCashKind {
	seen := make(map[NonCashKind]bool, 3)
	out := make([]NonCashKind, 0, 3)
	for _, k := range rc.NonCashPriority {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	for _, k := range DefaultNonCashPriority() {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}

// CutoffDate resolves the reference date ages are computed against.
func (rc *RuleConfig) CutoffDate() time.Time {
	switch rc.AgeCutoffPolicy {
	case AgeCutoffCustomDate:
		if rc.AgeCutoffDate != nil {
			return *rc.AgeCutoffDate
		}
		return rc.TournamentStart
	case AgeCutoffTournamentStart:
		return rc.TournamentStart
	default:
		month := rc.AgeCutoffMonth
		if month == 0 {
			month = time.January
		}
		day := rc.AgeCutoffDay
		if day == 0 {
			day = 1
		}
		return time.Date(rc.TournamentStart.Year(), month, day, 0, 0, 0, 0, time.UTC)
	}
}

// PrizeCategory is one individual prize category. The main category is
// unique per tournament and carries the lowest priority index.
type PrizeCategory struct {
	ID           CategoryID    `json:"id"`
	TournamentID TournamentID  `json:"tournament_id"`
	Name         string        `json:"name"`
	Priority     int           `json:"priority"`
	IsMain       bool          `json:"is_main"`
	Metric       RankingMetric `json:"metric"`
	Criteria     CriterionList `json:"criteria"`
}

// AgeBand returns the category's age criterion when one is configured.
func (c *PrizeCategory) AgeBand() (*AgeCriterion, bool) {
	for _, crit := range c.Criteria {
		if age, ok := crit.(*AgeCriterion); ok {
			return age, true
		}
	}
	return nil, false
}

// Prize is one payable place inside a category.
type Prize struct {
	ID         PrizeID    `json:"id"`
	CategoryID CategoryID `json:"category_id"`
	// Place ranks prizes within the category, 1 = best.
	Place int `json:"place"`
	// CashAmount is in minor currency units.
	CashAmount int  `json:"cash_amount"`
	HasTrophy  bool `json:"has_trophy"`
	HasMedal   bool `json:"has_medal"`
	HasGift    bool `json:"has_gift"`
}

// NonCashCount reports whether a reward component is present (0 or 1).
func (p *Prize) NonCashCount(kind NonCashKind) int {
	switch kind {
	case NonCashTrophy:
		if p.HasTrophy {
			return 1
		}
	case NonCashMedal:
		if p.HasMedal {
			return 1
		}
	case NonCashGift:
		if p.HasGift {
			return 1
		}
	}
	return 0
}

// InstitutionGroup configures one team prize competition.
type InstitutionGroup struct {
	ID           GroupID           `json:"id"`
	TournamentID TournamentID      `json:"tournament_id"`
	Label        string            `json:"label"`
	Attribute    GroupingAttribute `json:"attribute"`
	TeamSize     int               `json:"team_size"`
	FemaleSlots  int               `json:"female_slots"`
	MaleSlots    int               `json:"male_slots"`
	Active       bool              `json:"active"`
}

// InstitutionPrize is one payable team place inside a group.
type InstitutionPrize struct {
	ID         PrizeID `json:"id"`
	GroupID    GroupID `json:"group_id"`
	Place      int     `json:"place"`
	CashAmount int     `json:"cash_amount"`
	HasTrophy  bool    `json:"has_trophy"`
	HasMedal   bool    `json:"has_medal"`
	HasGift    bool    `json:"has_gift"`
}
