package rosterdomain

import (
	"strings"
	"unicode"
)

// maxDetectionRows caps how many data rows detection samples.
const maxDetectionRows = 300

var ratingHeaderTokens = map[string]bool{"rating": true, "rtg": true, "elo": true}

// DetectSignalColumn locates a headerless female-signal column. It scans
// the unlabeled columns between the last name-labeled header and the next
// rating-like header, counting sampled rows holding a recognized marker.
// One match qualifies a column; the column with the most matches wins,
// leftmost on ties. ok is false when no column qualifies; that is a normal
// outcome, not an error.
func DetectSignalColumn(header []string, rows [][]string) (int, bool) {
	lastName := -1
	for i, cell := range header {
		if isNameHeader(cell) {
			lastName = i
		}
	}
	if lastName == -1 {
		return 0, false
	}

	sample := rows
	if len(sample) > maxDetectionRows {
		sample = sample[:maxDetectionRows]
	}

	end := -1
	for i := lastName + 1; i < len(header); i++ {
		if isRatingHeader(header[i]) {
			end = i
			break
		}
	}
	if end == -1 {
		// No rating-like header: the gap runs to the widest observed row.
		end = len(header)
		for _, row := range sample {
			if len(row) > end {
				end = len(row)
			}
		}
	}

	bestCol := -1
	bestCount := 0
	for col := lastName + 1; col < end; col++ {
		if col < len(header) && strings.TrimSpace(header[col]) != "" {
			continue
		}
		count := 0
		for _, row := range sample {
			if col < len(row) && isDetectionMarker(row[col]) {
				count++
			}
		}
		// Strict comparison keeps the leftmost column on ties.
		if count > bestCount {
			bestCol = col
			bestCount = count
		}
	}

	if bestCol == -1 {
		return 0, false
	}
	return bestCol, true
}

// isDetectionMarker is the stricter marker test used while scanning
// candidate columns. Length is capped so name fragments that happen to
// start with W never qualify a column; title-length markers (WGM, WIM, ...)
// still do.
func isDetectionMarker(token string) bool {
	t := strings.TrimSpace(token)
	return len(t) <= 3 && IsFemaleSignalMarker(t)
}

func isNameHeader(cell string) bool {
	for _, tok := range headerTokens(cell) {
		if tok == "name" {
			return true
		}
	}
	return false
}

func isRatingHeader(cell string) bool {
	for _, tok := range headerTokens(cell) {
		if ratingHeaderTokens[tok] {
			return true
		}
	}
	return false
}

func headerTokens(cell string) []string {
	return strings.FieldsFunc(strings.ToLower(cell), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
