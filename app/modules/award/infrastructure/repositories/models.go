package awarddb

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	sharedtypes "github.com/Fifty-Move-Club/podium/app/shared/types"
)

// AwardResult is one finalized prize binding. Winner columns are null for a
// place nobody qualified for; the row still records the unfilled place so
// ceremony views see the full prize list.
type AwardResult struct {
	bun.BaseModel `bun:"table:award_results,alias:ar"`
	ID            uuid.UUID                `bun:"id,pk,type:uuid"`
	TournamentID  sharedtypes.TournamentID `bun:"tournament_id,notnull,type:uuid"`
	// Position preserves the walk order so reads replay the report exactly.
	Position     int                       `bun:"position,notnull"`
	CategoryID   sharedtypes.CategoryID    `bun:"category_id,notnull,type:uuid"`
	CategoryName string                    `bun:"category_name,notnull"`
	PrizeID      sharedtypes.PrizeID       `bun:"prize_id,notnull,type:uuid"`
	Place        int                       `bun:"place,notnull"`
	CashAmount   int                       `bun:"cash_amount,notnull,default:0"`
	HasTrophy    bool                      `bun:"has_trophy,notnull,default:false"`
	HasMedal     bool                      `bun:"has_medal,notnull,default:false"`
	HasGift      bool                      `bun:"has_gift,notnull,default:false"`
	WinnerID     *sharedtypes.CompetitorID `bun:"winner_id,nullzero,type:uuid"`
	WinnerName   string                    `bun:"winner_name,nullzero"`
	WinnerRank   *int                      `bun:"winner_rank,nullzero"`
	WinnerRating *sharedtypes.Rating       `bun:"winner_rating,nullzero"`
	WinnerGender sharedtypes.Gender        `bun:"winner_gender,nullzero,type:varchar(1)"`
	GeneratedAt  time.Time                 `bun:"generated_at,notnull"`
	FinalizedAt  time.Time                 `bun:",nullzero,notnull,default:current_timestamp"`
}

// ResultsFromReport flattens a computed report into persistable rows, one per
// prize place, walk order preserved.
func ResultsFromReport(report *sharedtypes.IndividualAllocationReport) []*AwardResult {
	rows := make([]*AwardResult, 0, len(report.Awards))
	for i, award := range report.Awards {
		row := &AwardResult{
			ID:           uuid.New(),
			TournamentID: report.TournamentID,
			Position:     i,
			CategoryID:   award.CategoryID,
			CategoryName: award.CategoryName,
			PrizeID:      award.PrizeID,
			Place:        award.Place,
			CashAmount:   award.CashAmount,
			HasTrophy:    award.HasTrophy,
			HasMedal:     award.HasMedal,
			HasGift:      award.HasGift,
			GeneratedAt:  report.GeneratedAt,
		}
		if award.Winner != nil {
			winnerID := award.Winner.CompetitorID
			winnerRank := award.Winner.Rank
			row.WinnerID = &winnerID
			row.WinnerName = award.Winner.FullName
			row.WinnerRank = &winnerRank
			row.WinnerRating = award.Winner.Rating
			row.WinnerGender = award.Winner.Gender
		}
		rows = append(rows, row)
	}
	return rows
}

// ToAward converts a persisted row back into the report award shape.
func (m *AwardResult) ToAward() sharedtypes.PrizeAward {
	award := sharedtypes.PrizeAward{
		CategoryID:   m.CategoryID,
		CategoryName: m.CategoryName,
		PrizeID:      m.PrizeID,
		Place:        m.Place,
		CashAmount:   m.CashAmount,
		HasTrophy:    m.HasTrophy,
		HasMedal:     m.HasMedal,
		HasGift:      m.HasGift,
	}
	if m.WinnerID != nil {
		winnerRank := 0
		if m.WinnerRank != nil {
			winnerRank = *m.WinnerRank
		}
		award.Winner = &sharedtypes.AwardedCompetitor{
			CompetitorID: *m.WinnerID,
			FullName:     m.WinnerName,
			Rank:         winnerRank,
			Rating:       m.WinnerRating,
			Gender:       m.WinnerGender,
		}
	}
	return award
}
