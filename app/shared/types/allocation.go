package sharedtypes

import "time"

// AwardedCompetitor identifies the winner bound to a prize.
type AwardedCompetitor struct {
	CompetitorID CompetitorID `json:"competitor_id"`
	FullName     string       `json:"full_name"`
	Rank         int          `json:"rank"`
	Rating       *Rating      `json:"rating,omitempty"`
	Gender       Gender       `json:"gender,omitempty"`
}

// PrizeAward is one prize with its allocation outcome. Winner is nil when no
// eligible candidate remained for the place.
type PrizeAward struct {
	CategoryID   CategoryID         `json:"category_id"`
	CategoryName string             `json:"category_name"`
	PrizeID      PrizeID            `json:"prize_id"`
	Place        int                `json:"place"`
	CashAmount   int                `json:"cash_amount"`
	HasTrophy    bool               `json:"has_trophy"`
	HasMedal     bool               `json:"has_medal"`
	HasGift      bool               `json:"has_gift"`
	Winner       *AwardedCompetitor `json:"winner"`
}

// IndividualAllocationReport is the full outcome of one individual
// allocation run. It is a pure computation result; persisting it is a
// separate, explicit finalize step.
type IndividualAllocationReport struct {
	TournamentID TournamentID `json:"tournament_id"`
	GeneratedAt  time.Time    `json:"generated_at"`
	Awards       []PrizeAward `json:"awards"`
	// NeedsReview lists competitors whose inferred demographics carry a
	// review flag and who won at least one prize.
	NeedsReview []CompetitorID `json:"needs_review,omitempty"`
}

// TeamSlot names which requirement a team member satisfied.
type TeamSlot string

const (
	SlotFemale TeamSlot = "female"
	SlotMale   TeamSlot = "male"
	SlotOpen   TeamSlot = "open"
)

// TeamMember is one competitor placed on an institution team.
type TeamMember struct {
	CompetitorID CompetitorID `json:"competitor_id"`
	FullName     string       `json:"full_name"`
	Rank         int          `json:"rank"`
	RankPoints   int          `json:"rank_points"`
	Gender       Gender       `json:"gender,omitempty"`
	Slot         TeamSlot     `json:"slot"`
}

// Team is one institution's completed team.
type Team struct {
	Key          string       `json:"key"`
	DisplayLabel string       `json:"display_label"`
	Members      []TeamMember `json:"members"`

	TotalPoints        int `json:"total_points"`
	RankSum            int `json:"rank_sum"`
	BestIndividualRank int `json:"best_individual_rank"`
}

// TeamExclusion records why an institution could not field a team.
type TeamExclusion struct {
	Key          string `json:"key"`
	DisplayLabel string `json:"display_label"`
	Reason       string `json:"reason"`
}

// TeamPrizeBinding is one team prize place with its outcome. Team is nil for
// surplus places with no team left to take them.
type TeamPrizeBinding struct {
	PrizeID    PrizeID `json:"prize_id"`
	Place      int     `json:"place"`
	CashAmount int     `json:"cash_amount"`
	HasTrophy  bool    `json:"has_trophy"`
	HasMedal   bool    `json:"has_medal"`
	HasGift    bool    `json:"has_gift"`
	Team       *Team   `json:"team"`
}

// GroupStandings is the outcome of one institution prize group. A
// group-level configuration problem sets ConfigError and leaves the rest
// empty; other groups are unaffected.
type GroupStandings struct {
	GroupID    GroupID           `json:"group_id"`
	GroupLabel string            `json:"group_label"`
	Attribute  GroupingAttribute `json:"attribute"`

	Standings []Team             `json:"standings,omitempty"`
	Prizes    []TeamPrizeBinding `json:"prizes,omitempty"`

	EligibleCount   int `json:"eligible_count"`
	IneligibleCount int `json:"ineligible_count"`
	// Exclusions is capped; IneligibleCount carries the true total.
	Exclusions []TeamExclusion `json:"exclusions,omitempty"`

	ConfigError string `json:"config_error,omitempty"`
}

// TeamAllocationReport is the full outcome of one team prize run across all
// active groups.
type TeamAllocationReport struct {
	TournamentID TournamentID     `json:"tournament_id"`
	GeneratedAt  time.Time        `json:"generated_at"`
	Groups       []GroupStandings `json:"groups"`
}
