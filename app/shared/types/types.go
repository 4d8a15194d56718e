package sharedtypes

// Gender is the canonical gender classification produced by inference.
// The empty value means unknown; unknown is never collapsed into male.
type Gender string

const (
	GenderFemale  Gender = "F"
	GenderMale    Gender = "M"
	GenderUnknown Gender = ""
)

// IsFemale reports whether the classification is explicitly female.
func (g Gender) IsFemale() bool {
	return g == GenderFemale
}

// IsKnown reports whether any explicit classification exists.
func (g Gender) IsKnown() bool {
	return g != GenderUnknown
}

// GenderSource names one inference signal that contributed to a
// competitor's canonical gender. Values are stable strings consumed by
// audit views.
type GenderSource string

const (
	GenderSourceColumn       GenderSource = "gender_column"
	GenderSourceSignalColumn GenderSource = "female_signal_column"
	GenderSourceTypeLabel    GenderSource = "type_label"
	GenderSourceGroupLabel   GenderSource = "group_label"
)

// Rating is a competitor's numeric strength rating as imported.
type Rating int

// AgeCutoffPolicy selects the reference date used to compute ages.
type AgeCutoffPolicy string

const (
	// AgeCutoffFixedDate pins a fixed month/day in the tournament's start year.
	AgeCutoffFixedDate AgeCutoffPolicy = "fixed_date"
	// AgeCutoffTournamentStart uses the tournament start date itself.
	AgeCutoffTournamentStart AgeCutoffPolicy = "tournament_start"
	// AgeCutoffCustomDate uses an organizer-supplied date.
	AgeCutoffCustomDate AgeCutoffPolicy = "custom_date"
)

// AgeBandPolicy controls whether age-banded categories may share competitors.
type AgeBandPolicy string

const (
	AgeBandNonOverlapping AgeBandPolicy = "non_overlapping"
	AgeBandOverlapping    AgeBandPolicy = "overlapping"
)

// StackingPolicy limits how many individual prizes one competitor may hold.
type StackingPolicy string

const (
	StackingSingle          StackingPolicy = "single"
	StackingMainPlusOneSide StackingPolicy = "main_plus_one_side"
	StackingUnlimited       StackingPolicy = "unlimited"
)

// PriorityMode decides the prize walk order when one competitor could take
// several prizes.
type PriorityMode string

const (
	// PriorityMainFirst walks categories strictly by priority index.
	PriorityMainFirst PriorityMode = "main_first"
	// PriorityValueFirst walks all prizes by descending value.
	PriorityValueFirst PriorityMode = "value_first"
)

// NonCashKind is one non-cash reward component.
type NonCashKind string

const (
	NonCashTrophy NonCashKind = "trophy"
	NonCashGift   NonCashKind = "gift"
	NonCashMedal  NonCashKind = "medal"
)

// RankingMetric selects how candidates are ordered inside one category.
type RankingMetric string

const (
	// RankingByRank orders by tournament rank ascending.
	RankingByRank RankingMetric = "rank"
	// RankingByRating orders by rating descending, rank ascending on ties.
	RankingByRating RankingMetric = "rating"
)

// GroupingAttribute names the competitor field institutions are keyed by.
type GroupingAttribute string

const (
	GroupByClub       GroupingAttribute = "club"
	GroupByCity       GroupingAttribute = "city"
	GroupByState      GroupingAttribute = "state"
	GroupBySchool     GroupingAttribute = "school"
	GroupByGroupLabel GroupingAttribute = "group"
)

// Recognized reports whether the attribute belongs to the closed set above.
func (a GroupingAttribute) Recognized() bool {
	switch a {
	case GroupByClub, GroupByCity, GroupByState, GroupBySchool, GroupByGroupLabel:
		return true
	default:
		return false
	}
}
