package institutiondb

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	sharedtypes "github.com/Fifty-Move-Club/podium/app/shared/types"
)

// InstitutionResult is one finalized team prize binding. Team columns are
// null for a surplus place no team could take; the row still records the
// place so ceremony views see the full prize list. Groups that failed
// configuration validation contribute no rows.
type InstitutionResult struct {
	bun.BaseModel `bun:"table:institution_results,alias:ir"`
	ID            uuid.UUID                `bun:"id,pk,type:uuid"`
	TournamentID  sharedtypes.TournamentID `bun:"tournament_id,notnull,type:uuid"`
	// Position preserves the report walk order across groups so reads
	// replay the report exactly.
	Position   int                 `bun:"position,notnull"`
	GroupID    sharedtypes.GroupID `bun:"group_id,notnull,type:uuid"`
	GroupLabel string              `bun:"group_label,notnull"`
	PrizeID    sharedtypes.PrizeID `bun:"prize_id,notnull,type:uuid"`
	Place      int                 `bun:"place,notnull"`
	CashAmount int                 `bun:"cash_amount,notnull,default:0"`
	HasTrophy  bool                `bun:"has_trophy,notnull,default:false"`
	HasMedal   bool                `bun:"has_medal,notnull,default:false"`
	HasGift    bool                `bun:"has_gift,notnull,default:false"`

	TeamKey            string                   `bun:"team_key,nullzero"`
	TeamLabel          string                   `bun:"team_label,nullzero"`
	TotalPoints        *int                     `bun:"total_points,nullzero"`
	RankSum            *int                     `bun:"rank_sum,nullzero"`
	BestIndividualRank *int                     `bun:"best_individual_rank,nullzero"`
	Members            []sharedtypes.TeamMember `bun:"members,nullzero,type:jsonb"`

	GeneratedAt time.Time `bun:"generated_at,notnull"`
	FinalizedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}

// ResultsFromReport flattens a computed report into persistable rows, one per
// prize place per group, walk order preserved.
func ResultsFromReport(report *sharedtypes.TeamAllocationReport) []*InstitutionResult {
	rows := make([]*InstitutionResult, 0)
	position := 0
	for _, group := range report.Groups {
		if group.ConfigError != "" {
			continue
		}
		for _, binding := range group.Prizes {
			row := &InstitutionResult{
				ID:           uuid.New(),
				TournamentID: report.TournamentID,
				Position:     position,
				GroupID:      group.GroupID,
				GroupLabel:   group.GroupLabel,
				PrizeID:      binding.PrizeID,
				Place:        binding.Place,
				CashAmount:   binding.CashAmount,
				HasTrophy:    binding.HasTrophy,
				HasMedal:     binding.HasMedal,
				HasGift:      binding.HasGift,
				GeneratedAt:  report.GeneratedAt,
			}
			if binding.Team != nil {
				totalPoints := binding.Team.TotalPoints
				rankSum := binding.Team.RankSum
				bestRank := binding.Team.BestIndividualRank
				row.TeamKey = binding.Team.Key
				row.TeamLabel = binding.Team.DisplayLabel
				row.TotalPoints = &totalPoints
				row.RankSum = &rankSum
				row.BestIndividualRank = &bestRank
				row.Members = binding.Team.Members
			}
			position++
			rows = append(rows, row)
		}
	}
	return rows
}

// ToBinding converts a persisted row back into the report binding shape.
func (m *InstitutionResult) ToBinding() sharedtypes.TeamPrizeBinding {
	binding := sharedtypes.TeamPrizeBinding{
		PrizeID:    m.PrizeID,
		Place:      m.Place,
		CashAmount: m.CashAmount,
		HasTrophy:  m.HasTrophy,
		HasMedal:   m.HasMedal,
		HasGift:    m.HasGift,
	}
	if m.TeamKey != "" {
		totalPoints := 0
		if m.TotalPoints != nil {
			totalPoints = *m.TotalPoints
		}
		rankSum := 0
		if m.RankSum != nil {
			rankSum = *m.RankSum
		}
		bestRank := 0
		if m.BestIndividualRank != nil {
			bestRank = *m.BestIndividualRank
		}
		binding.Team = &sharedtypes.Team{
			Key:                m.TeamKey,
			DisplayLabel:       m.TeamLabel,
			Members:            m.Members,
			TotalPoints:        totalPoints,
			RankSum:            rankSum,
			BestIndividualRank: bestRank,
		}
	}
	return binding
}
