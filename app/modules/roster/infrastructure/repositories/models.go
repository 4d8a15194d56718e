package rosterdb

import (
	"time"

	sharedtypes "github.com/Fifty-Move-Club/podium/app/shared/types"
	"github.com/uptrace/bun"
)

// Competitor is the persisted roster row. One row per imported competitor;
// a re-import replaces all rows for the tournament.
type Competitor struct {
	bun.BaseModel `bun:"table:competitors,alias:c"`
	ID            sharedtypes.CompetitorID   `bun:"id,pk,type:uuid"`
	TournamentID  sharedtypes.TournamentID   `bun:"tournament_id,notnull,type:uuid"`
	FullName      string                     `bun:"full_name,notnull"`
	Rank          int                        `bun:"rank,notnull"`
	Rating        *sharedtypes.Rating        `bun:"rating,nullzero"`
	DateOfBirth   *time.Time                 `bun:"date_of_birth,nullzero"`
	RawGender     string                     `bun:"raw_gender,nullzero"`
	Gender        sharedtypes.Gender         `bun:"gender,nullzero,type:varchar(1)"`
	GenderSources []sharedtypes.GenderSource `bun:"gender_sources,type:jsonb"`
	NeedsReview   bool                       `bun:"needs_review,notnull,default:false"`
	Warnings      []string                   `bun:"warnings,type:jsonb"`
	State         string                     `bun:"state,nullzero"`
	City          string                     `bun:"city,nullzero"`
	Club          string                     `bun:"club,nullzero"`
	School        string                     `bun:"school,nullzero"`
	GroupLabel    string                     `bun:"group_label,nullzero"`
	TypeLabel     string                     `bun:"type_label,nullzero"`
	CreatedAt     time.Time                  `bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt     time.Time                  `bun:",nullzero,notnull,default:current_timestamp"`
}

// FromShared converts a canonical competitor into its persisted form.
func FromShared(c sharedtypes.Competitor) *Competitor {
	return &Competitor{
		ID:            c.ID,
		TournamentID:  c.TournamentID,
		FullName:      c.FullName,
		Rank:          c.Rank,
		Rating:        c.Rating,
		DateOfBirth:   c.DateOfBirth,
		RawGender:     c.RawGender,
		Gender:        c.Gender,
		GenderSources: c.GenderSources,
		NeedsReview:   c.NeedsReview,
		Warnings:      c.Warnings,
		State:         c.State,
		City:          c.City,
		Club:          c.Club,
		School:        c.School,
		GroupLabel:    c.GroupLabel,
		TypeLabel:     c.TypeLabel,
	}
}

// ToShared converts a persisted row back into the canonical competitor shape
// consumed by the allocation modules.
func (m *Competitor) ToShared() sharedtypes.Competitor {
	return sharedtypes.Competitor{
		ID:            m.ID,
		TournamentID:  m.TournamentID,
		FullName:      m.FullName,
		Rank:          m.Rank,
		Rating:        m.Rating,
		DateOfBirth:   m.DateOfBirth,
		RawGender:     m.RawGender,
		Gender:        m.Gender,
		GenderSources: m.GenderSources,
		NeedsReview:   m.NeedsReview,
		Warnings:      m.Warnings,
		State:         m.State,
		City:          m.City,
		Club:          m.Club,
		School:        m.School,
		GroupLabel:    m.GroupLabel,
		TypeLabel:     m.TypeLabel,
	}
}
