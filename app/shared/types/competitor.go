package sharedtypes

import "time"

// Competitor is the canonical roster row shared across modules. Rows are
// normalized into this shape at the ingestion boundary; the allocation
// components never see raw spreadsheet cells.
type Competitor struct {
	ID           CompetitorID `json:"id"`
	TournamentID TournamentID `json:"tournament_id"`
	FullName     string       `json:"full_name"`

	// Rank is the finishing position, 1 = best.
	Rank        int        `json:"rank"`
	Rating      *Rating    `json:"rating,omitempty"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`

	// RawGender preserves the original spreadsheet token for audit.
	RawGender     string         `json:"raw_gender,omitempty"`
	Gender        Gender         `json:"gender"`
	GenderSources []GenderSource `json:"gender_sources,omitempty"`
	NeedsReview   bool           `json:"needs_review,omitempty"`
	Warnings      []string       `json:"warnings,omitempty"`

	State      string `json:"state,omitempty"`
	City       string `json:"city,omitempty"`
	Club       string `json:"club,omitempty"`
	School     string `json:"school,omitempty"`
	GroupLabel string `json:"group_label,omitempty"`

	// TypeLabel is the free-text section/division label from the import,
	// kept because it feeds gender inference and audit views.
	TypeLabel string `json:"type_label,omitempty"`
}

// GroupingValue returns the competitor's value for a grouping attribute.
// ok is false for an attribute outside the recognized set.
func (c *Competitor) GroupingValue(attr GroupingAttribute) (string, bool) {
	switch attr {
	case GroupByClub:
		return c.Club, true
	case GroupByCity:
		return c.City, true
	case GroupByState:
		return c.State, true
	case GroupBySchool:
		return c.School, true
	case GroupByGroupLabel:
		return c.GroupLabel, true
	default:
		return "", false
	}
}
