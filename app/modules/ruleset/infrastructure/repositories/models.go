package rulesetdb

import (
	"time"

	"github.com/uptrace/bun"

	sharedtypes "github.com/Fifty-Move-Club/podium/app/shared/types"
)

// RuleConfig is the bun model for the rule_configs table. One row per
// tournament, keyed by tournament_id.
type RuleConfig struct {
	bun.BaseModel `bun:"table:rule_configs,alias:rc"`

	TournamentID sharedtypes.TournamentID `bun:"tournament_id,pk,type:uuid"`

	StrictAge             bool `bun:"strict_age,notnull,default:false"`
	AllowMissingDOBForAge bool `bun:"allow_missing_dob_for_age,notnull,default:false"`
	MaxAgeInclusive       bool `bun:"max_age_inclusive,notnull,default:false"`

	AgeCutoffPolicy sharedtypes.AgeCutoffPolicy `bun:"age_cutoff_policy,notnull"`
	AgeCutoffMonth  int                         `bun:"age_cutoff_month,nullzero"`
	AgeCutoffDay    int                         `bun:"age_cutoff_day,nullzero"`
	AgeCutoffDate   *time.Time                  `bun:"age_cutoff_date,nullzero"`
	TournamentStart time.Time                   `bun:"tournament_start,notnull"`

	AgeBandPolicy      sharedtypes.AgeBandPolicy  `bun:"age_band_policy,notnull"`
	MultiPrizePolicy   sharedtypes.StackingPolicy `bun:"multi_prize_policy,notnull"`
	MainVsSidePriority sharedtypes.PriorityMode   `bun:"main_vs_side_priority,notnull"`
	NonCashPriority    []sharedtypes.NonCashKind  `bun:"non_cash_priority,type:jsonb"`

	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// ConfigFromShared converts the shared policy record into its storage row.
func ConfigFromShared(cfg sharedtypes.RuleConfig) *RuleConfig {
	return &RuleConfig{
		TournamentID:          cfg.TournamentID,
		StrictAge:             cfg.StrictAge,
		AllowMissingDOBForAge: cfg.AllowMissingDOBForAge,
		MaxAgeInclusive:       cfg.MaxAgeInclusive,
		AgeCutoffPolicy:       cfg.AgeCutoffPolicy,
		AgeCutoffMonth:        int(cfg.AgeCutoffMonth),
		AgeCutoffDay:          cfg.AgeCutoffDay,
		AgeCutoffDate:         cfg.AgeCutoffDate,
		TournamentStart:       cfg.TournamentStart,
		AgeBandPolicy:         cfg.AgeBandPolicy,
		MultiPrizePolicy:      cfg.MultiPrizePolicy,
		MainVsSidePriority:    cfg.MainVsSidePriority,
		NonCashPriority:       cfg.NonCashPriority,
	}
}

// ToShared converts a storage row back into the shared policy record.
func (m *RuleConfig) ToShared() sharedtypes.RuleConfig {
	return sharedtypes.RuleConfig{
		TournamentID:          m.TournamentID,
		StrictAge:             m.StrictAge,
		AllowMissingDOBForAge: m.AllowMissingDOBForAge,
		MaxAgeInclusive:       m.MaxAgeInclusive,
		AgeCutoffPolicy:       m.AgeCutoffPolicy,
		AgeCutoffMonth:        time.Month(m.AgeCutoffMonth),
		AgeCutoffDay:          m.AgeCutoffDay,
		AgeCutoffDate:         m.AgeCutoffDate,
		TournamentStart:       m.TournamentStart,
		AgeBandPolicy:         m.AgeBandPolicy,
		MultiPrizePolicy:      m.MultiPrizePolicy,
		MainVsSidePriority:    m.MainVsSidePriority,
		NonCashPriority:       m.NonCashPriority,
	}
}

// PrizeCategory is the bun model for the prize_categories table.
type PrizeCategory struct {
	bun.BaseModel `bun:"table:prize_categories,alias:pc"`

	ID           sharedtypes.CategoryID    `bun:"id,pk,type:uuid"`
	TournamentID sharedtypes.TournamentID  `bun:"tournament_id,notnull,type:uuid"`
	Name         string                    `bun:"name,notnull"`
	Priority     int                       `bun:"priority,notnull"`
	IsMain       bool                      `bun:"is_main,notnull,default:false"`
	Metric       sharedtypes.RankingMetric `bun:"metric,notnull"`
	Criteria     sharedtypes.CriterionList `bun:"criteria,type:jsonb"`

	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

func (m *PrizeCategory) ToShared() sharedtypes.PrizeCategory {
	return sharedtypes.PrizeCategory{
		ID:           m.ID,
		TournamentID: m.TournamentID,
		Name:         m.Name,
		Priority:     m.Priority,
		IsMain:       m.IsMain,
		Metric:       m.Metric,
		Criteria:     m.Criteria,
	}
}

// Prize is the bun model for the prizes table. TournamentID is denormalized
// so a tournament's whole prize set can be replaced in one statement.
type Prize struct {
	bun.BaseModel `bun:"table:prizes,alias:p"`

	ID           sharedtypes.PrizeID      `bun:"id,pk,type:uuid"`
	CategoryID   sharedtypes.CategoryID   `bun:"category_id,notnull,type:uuid"`
	TournamentID sharedtypes.TournamentID `bun:"tournament_id,notnull,type:uuid"`
	Place        int                      `bun:"place,notnull"`
	CashAmount   int                      `bun:"cash_amount,notnull,default:0"`
	HasTrophy    bool                     `bun:"has_trophy,notnull,default:false"`
	HasMedal     bool                     `bun:"has_medal,notnull,default:false"`
	HasGift      bool                     `bun:"has_gift,notnull,default:false"`

	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

func (m *Prize) ToShared() sharedtypes.Prize {
	return sharedtypes.Prize{
		ID:         m.ID,
		CategoryID: m.CategoryID,
		Place:      m.Place,
		CashAmount: m.CashAmount,
		HasTrophy:  m.HasTrophy,
		HasMedal:   m.HasMedal,
		HasGift:    m.HasGift,
	}
}

// InstitutionGroup is the bun model for the institution_prize_groups table.
type InstitutionGroup struct {
	bun.BaseModel `bun:"table:institution_prize_groups,alias:ipg"`

	ID           sharedtypes.GroupID           `bun:"id,pk,type:uuid"`
	TournamentID sharedtypes.TournamentID      `bun:"tournament_id,notnull,type:uuid"`
	Label        string                        `bun:"label,notnull"`
	Attribute    sharedtypes.GroupingAttribute `bun:"grouping_attribute,notnull"`
	TeamSize     int                           `bun:"team_size,notnull"`
	FemaleSlots  int                           `bun:"female_slots,notnull,default:0"`
	MaleSlots    int                           `bun:"male_slots,notnull,default:0"`
	Active       bool                          `bun:"is_active,notnull,default:true"`

	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

func (m *InstitutionGroup) ToShared() sharedtypes.InstitutionGroup {
	return sharedtypes.InstitutionGroup{
		ID:           m.ID,
		TournamentID: m.TournamentID,
		Label:        m.Label,
		Attribute:    m.Attribute,
		TeamSize:     m.TeamSize,
		FemaleSlots:  m.FemaleSlots,
		MaleSlots:    m.MaleSlots,
		Active:       m.Active,
	}
}

// InstitutionPrize is the bun model for the institution_prizes table.
type InstitutionPrize struct {
	bun.BaseModel `bun:"table:institution_prizes,alias:ip"`

	ID           sharedtypes.PrizeID      `bun:"id,pk,type:uuid"`
	GroupID      sharedtypes.GroupID      `bun:"group_id,notnull,type:uuid"`
	TournamentID sharedtypes.TournamentID `bun:"tournament_id,notnull,type:uuid"`
	Place        int                      `bun:"place,notnull"`
	CashAmount   int                      `bun:"cash_amount,notnull,default:0"`
	HasTrophy    bool                     `bun:"has_trophy,notnull,default:false"`
	HasMedal     bool                     `bun:"has_medal,notnull,default:false"`
	HasGift      bool                     `bun:"has_gift,notnull,default:false"`

	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

func (m *InstitutionPrize) ToShared() sharedtypes.InstitutionPrize {
	return sharedtypes.InstitutionPrize{
		ID:         m.ID,
		GroupID:    m.GroupID,
		Place:      m.Place,
		CashAmount: m.CashAmount,
		HasTrophy:  m.HasTrophy,
		HasMedal:   m.HasMedal,
		HasGift:    m.HasGift,
	}
}
