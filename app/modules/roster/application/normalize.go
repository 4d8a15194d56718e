package rosterservice

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Fifty-Move-Club/podium/app/modules/roster/application/parsers"
	rosterdomain "github.com/Fifty-Move-Club/podium/app/modules/roster/domain"
	sharedtypes "github.com/Fifty-Move-Club/podium/app/shared/types"
)

// dobLayouts are the date-of-birth formats accepted from roster exports.
var dobLayouts = []string{"2006-01-02", "02.01.2006", "01/02/2006", "2006/01/02"}

// NormalizedRoster is the outcome of turning raw parsed rows into canonical
// competitors.
type NormalizedRoster struct {
	Competitors []sharedtypes.Competitor
	Warnings    []sharedtypes.RowWarning
	RowsSkipped int
	// SignalColumn is the effective female-signal column, -1 when none was
	// mapped or detected.
	SignalColumn     int
	NeedsReviewCount int
}

// NormalizeRoster converts parsed spreadsheet rows into Competitor values.
// All field guessing happens here: the signal column is resolved once for
// the whole file, then gender inference runs per row. Rows without a name
// are skipped; rows with an unreadable rank are skipped with a warning.
func NormalizeRoster(tournamentID sharedtypes.TournamentID, raw *parsers.RawRoster, columnMap sharedtypes.ColumnMap) *NormalizedRoster {
	out := &NormalizedRoster{SignalColumn: -1}

	effective := make(sharedtypes.ColumnMap, len(columnMap)+1)
	for field, idx := range columnMap {
		effective[field] = idx
	}
	if col, ok := effective.Col(sharedtypes.FieldFemaleSignal); ok {
		out.SignalColumn = col
	} else if col, ok := rosterdomain.DetectSignalColumn(raw.Header, raw.Rows); ok {
		effective[sharedtypes.FieldFemaleSignal] = col
		out.SignalColumn = col
	}

	for i, row := range raw.Rows {
		// Spreadsheet row number: 1-based, after the header row.
		rowNum := i + 2

		name := strings.TrimSpace(cellValue(row, effective, sharedtypes.FieldFullName))
		if name == "" {
			out.RowsSkipped++
			continue
		}

		c := sharedtypes.Competitor{
			ID:           sharedtypes.CompetitorID(uuid.New()),
			TournamentID: tournamentID,
			FullName:     name,
		}

		if effective.Has(sharedtypes.FieldRank) {
			rankText := strings.TrimSpace(cellValue(row, effective, sharedtypes.FieldRank))
			rank, err := strconv.Atoi(rankText)
			if err != nil || rank < 1 {
				out.warn(rowNum, name, fmt.Sprintf("unreadable rank %q", rankText))
				out.RowsSkipped++
				continue
			}
			c.Rank = rank
		} else {
			// No rank column: roster order is the finishing order.
			c.Rank = len(out.Competitors) + 1
		}

		if ratingText := strings.TrimSpace(cellValue(row, effective, sharedtypes.FieldRating)); ratingText != "" {
			if n, err := strconv.Atoi(ratingText); err == nil {
				rating := sharedtypes.Rating(n)
				c.Rating = &rating
			} else {
				out.warn(rowNum, name, fmt.Sprintf("unreadable rating %q", ratingText))
			}
		}

		if dobText := strings.TrimSpace(cellValue(row, effective, sharedtypes.FieldDateOfBirth)); dobText != "" {
			if dob, ok := parseDOB(dobText); ok {
				c.DateOfBirth = &dob
			} else {
				out.warn(rowNum, name, fmt.Sprintf("unreadable date of birth %q", dobText))
			}
		}

		c.State = strings.TrimSpace(cellValue(row, effective, sharedtypes.FieldState))
		c.City = strings.TrimSpace(cellValue(row, effective, sharedtypes.FieldCity))
		c.Club = strings.TrimSpace(cellValue(row, effective, sharedtypes.FieldClub))
		c.School = strings.TrimSpace(cellValue(row, effective, sharedtypes.FieldSchool))
		c.GroupLabel = strings.TrimSpace(cellValue(row, effective, sharedtypes.FieldGroupLabel))
		c.TypeLabel = strings.TrimSpace(cellValue(row, effective, sharedtypes.FieldTypeLabel))
		c.RawGender = strings.TrimSpace(cellValue(row, effective, sharedtypes.FieldGender))

		inf := rosterdomain.InferGender(row, effective)
		c.Gender = inf.Gender
		c.GenderSources = inf.Sources
		c.Warnings = inf.Warnings
		if len(inf.Warnings) > 0 {
			c.NeedsReview = true
			out.NeedsReviewCount++
			for _, w := range inf.Warnings {
				out.warn(rowNum, name, w)
			}
		}

		out.Competitors = append(out.Competitors, c)
	}

	return out
}

func (n *NormalizedRoster) warn(row int, name, message string) {
	n.Warnings = append(n.Warnings, sharedtypes.RowWarning{Row: row, Name: name, Message: message})
}

func parseDOB(text string) (time.Time, bool) {
	for _, layout := range dobLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func cellValue(row []string, cols sharedtypes.ColumnMap, field sharedtypes.RosterField) string {
	idx, ok := cols.Col(field)
	if !ok || idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
