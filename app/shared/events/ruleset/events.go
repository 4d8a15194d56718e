// Package rulesetevents defines the ruleset module's event topics and
// payloads.
package rulesetevents

import (
	sharedtypes "github.com/Fifty-Move-Club/podium/app/shared/types"
)

// Stream name for all ruleset subjects.
const RulesetStreamName = "ruleset"

// Topics.
const (
	RulesetUpsertRequestedV1 = "ruleset.upsert.requested.v1"
	RulesetUpsertFailedV1    = "ruleset.upsert.failed.v1"

	RulesetCategoriesSaveRequestedV1 = "ruleset.categories.save.requested.v1"
	RulesetCategoriesSavedV1         = "ruleset.categories.saved.v1"
	RulesetCategoriesSaveFailedV1    = "ruleset.categories.save.failed.v1"

	RulesetGroupsSaveRequestedV1 = "ruleset.groups.save.requested.v1"
	RulesetGroupsSavedV1         = "ruleset.groups.saved.v1"
	RulesetGroupsSaveFailedV1    = "ruleset.groups.save.failed.v1"

	// RulesetUpdatedV1 fans out after any successful rule change so
	// downstream consumers can invalidate and recompute.
	RulesetUpdatedV1 = "ruleset.updated.v1"
)

// RulesetUpsertRequestedPayloadV1 carries organizer-entered policy fields.
// CutoffDate is free text and parsed leniently server-side.
type RulesetUpsertRequestedPayloadV1 struct {
	TournamentID sharedtypes.TournamentID `json:"tournament_id"`

	StrictAge             bool `json:"strict_age"`
	AllowMissingDOBForAge bool `json:"allow_missing_dob_for_age"`
	MaxAgeInclusive       bool `json:"max_age_inclusive"`

	AgeCutoffPolicy string `json:"age_cutoff_policy"`
	CutoffDate      string `json:"cutoff_date,omitempty"`
	TournamentStart string `json:"tournament_start"`

	AgeBandPolicy      string   `json:"age_band_policy"`
	MultiPrizePolicy   string   `json:"multi_prize_policy"`
	MainVsSidePriority string   `json:"main_vs_side_priority"`
	NonCashPriority    []string `json:"non_cash_priority,omitempty"`
}

// RulesetUpsertFailedPayloadV1 reports a rejected policy change.
type RulesetUpsertFailedPayloadV1 struct {
	TournamentID sharedtypes.TournamentID `json:"tournament_id"`
	Reason       string                   `json:"reason"`
}

// CategoryInputV1 is one category definition with its prize places.
type CategoryInputV1 struct {
	Name     string                    `json:"name"`
	Priority int                       `json:"priority"`
	IsMain   bool                      `json:"is_main"`
	Metric   string                    `json:"metric"`
	Criteria sharedtypes.CriterionList `json:"criteria"`
	Prizes   []PrizeInputV1            `json:"prizes"`
}

// PrizeInputV1 is one payable place.
type PrizeInputV1 struct {
	Place      int  `json:"place"`
	CashAmount int  `json:"cash_amount"`
	HasTrophy  bool `json:"has_trophy"`
	HasMedal   bool `json:"has_medal"`
	HasGift    bool `json:"has_gift"`
}

// RulesetCategoriesSaveRequestedPayloadV1 replaces a tournament's category
// definitions.
type RulesetCategoriesSaveRequestedPayloadV1 struct {
	TournamentID sharedtypes.TournamentID `json:"tournament_id"`
	Categories   []CategoryInputV1        `json:"categories"`
}

// RulesetCategoriesSavedPayloadV1 reports a successful replace.
type RulesetCategoriesSavedPayloadV1 struct {
	TournamentID  sharedtypes.TournamentID `json:"tournament_id"`
	CategoryCount int                      `json:"category_count"`
	PrizeCount    int                      `json:"prize_count"`
}

// RulesetCategoriesSaveFailedPayloadV1 reports a rejected replace.
type RulesetCategoriesSaveFailedPayloadV1 struct {
	TournamentID sharedtypes.TournamentID `json:"tournament_id"`
	Reason       string                   `json:"reason"`
}

// GroupInputV1 is one institution prize group definition with its prize
// places.
type GroupInputV1 struct {
	Label       string         `json:"label"`
	Attribute   string         `json:"attribute"`
	TeamSize    int            `json:"team_size"`
	FemaleSlots int            `json:"female_slots"`
	MaleSlots   int            `json:"male_slots"`
	Active      bool           `json:"active"`
	Prizes      []PrizeInputV1 `json:"prizes"`
}

// RulesetGroupsSaveRequestedPayloadV1 replaces a tournament's institution
// prize groups.
type RulesetGroupsSaveRequestedPayloadV1 struct {
	TournamentID sharedtypes.TournamentID `json:"tournament_id"`
	Groups       []GroupInputV1           `json:"groups"`
}

// RulesetGroupsSavedPayloadV1 reports a successful replace.
type RulesetGroupsSavedPayloadV1 struct {
	TournamentID sharedtypes.TournamentID `json:"tournament_id"`
	GroupCount   int                      `json:"group_count"`
}

// RulesetGroupsSaveFailedPayloadV1 reports a rejected replace.
type RulesetGroupsSaveFailedPayloadV1 struct {
	TournamentID sharedtypes.TournamentID `json:"tournament_id"`
	Reason       string                   `json:"reason"`
}

// RulesetUpdatedPayloadV1 announces that a tournament's rules changed.
type RulesetUpdatedPayloadV1 struct {
	TournamentID sharedtypes.TournamentID `json:"tournament_id"`
	// Changed names what was replaced: config, categories or groups.
	Changed string `json:"changed"`
}
