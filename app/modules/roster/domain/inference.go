// Package rosterdomain holds the pure roster logic: gender inference over
// messy spreadsheet signals and headerless signal-column detection.
package rosterdomain

import (
	"regexp"
	"strings"

	sharedtypes "github.com/Fifty-Move-Club/podium/app/shared/types"
)

// WarnFemaleOverridesMale is recorded when a female signal wins over an
// explicit male token in the gender column. The override is deliberate.
const WarnFemaleOverridesMale = "female signal overrides explicit male gender"

// Inference is the outcome of gender inference for one roster row.
type Inference struct {
	Gender sharedtypes.Gender
	// Sources lists every signal that contributed to the final value, in
	// evaluation order.
	Sources []sharedtypes.GenderSource
	// FemaleSignalSource is the first source that yielded a female signal,
	// nil when the result is not female.
	FemaleSignalSource *sharedtypes.GenderSource
	Warnings           []string
}

var (
	femaleGenderTokens = map[string]bool{"F": true, "FEMALE": true, "GIRLS": true}
	maleGenderTokens   = map[string]bool{"M": true, "MALE": true, "BOYS": true}

	// masterTitles look like gender codes but never are. Only the W-prefixed
	// title family marks a female player.
	masterTitles = map[string]bool{"GM": true, "IM": true, "FM": true, "CM": true, "NM": true}

	femaleWordPattern = regexp.MustCompile(`(?i)\bFEMALE\b`)
	femaleCodePattern = regexp.MustCompile(`(?i)\bF\d+`)
	girlsTokenPattern = regexp.MustCompile(`(?i)\bGIRLS?\b`)
)

// ParseGenderToken maps an explicit gender-column token to a canonical
// value. Unrecognized tokens map to unknown.
func ParseGenderToken(token string) sharedtypes.Gender {
	t := strings.ToUpper(strings.TrimSpace(token))
	switch {
	case femaleGenderTokens[t]:
		return sharedtypes.GenderFemale
	case maleGenderTokens[t]:
		return sharedtypes.GenderMale
	}
	return sharedtypes.GenderUnknown
}

// IsFemaleSignalMarker reports whether a signal-column token marks a female
// player: F, G, W, or W followed by letters (the woman's-title prefixes).
// Master titles without a leading W are explicitly not markers.
func IsFemaleSignalMarker(token string) bool {
	t := strings.ToUpper(strings.TrimSpace(token))
	if t == "" || masterTitles[t] {
		return false
	}
	switch t {
	case "F", "G", "W":
		return true
	}
	if t[0] != 'W' || len(t) < 2 {
		return false
	}
	for _, r := range t[1:] {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// LabelHasFemaleMarker reports whether a free-text type or group label
// carries a female marker: the literal FEMALE token, F directly followed by
// digits, or a girl/girls token.
func LabelHasFemaleMarker(label string) bool {
	if strings.TrimSpace(label) == "" {
		return false
	}
	return femaleWordPattern.MatchString(label) ||
		femaleCodePattern.MatchString(label) ||
		girlsTokenPattern.MatchString(label)
}

// InferGender derives a canonical gender for one row from every available
// signal. Any female signal wins; with none, an explicit male token stands;
// with no signal at all the result is unknown, never defaulted to male.
func InferGender(row []string, cols sharedtypes.ColumnMap) Inference {
	var inf Inference

	explicit := ParseGenderToken(cellValue(row, cols, sharedtypes.FieldGender))

	if explicit.IsFemale() {
		inf.Sources = append(inf.Sources, sharedtypes.GenderSourceColumn)
	}
	if IsFemaleSignalMarker(cellValue(row, cols, sharedtypes.FieldFemaleSignal)) {
		inf.Sources = append(inf.Sources, sharedtypes.GenderSourceSignalColumn)
	}
	if LabelHasFemaleMarker(cellValue(row, cols, sharedtypes.FieldTypeLabel)) {
		inf.Sources = append(inf.Sources, sharedtypes.GenderSourceTypeLabel)
	}
	if LabelHasFemaleMarker(cellValue(row, cols, sharedtypes.FieldGroupLabel)) {
		inf.Sources = append(inf.Sources, sharedtypes.GenderSourceGroupLabel)
	}

	if len(inf.Sources) > 0 {
		inf.Gender = sharedtypes.GenderFemale
		first := inf.Sources[0]
		inf.FemaleSignalSource = &first
		if explicit == sharedtypes.GenderMale {
			inf.Warnings = append(inf.Warnings, WarnFemaleOverridesMale)
		}
		return inf
	}

	if explicit == sharedtypes.GenderMale {
		inf.Gender = sharedtypes.GenderMale
		inf.Sources = append(inf.Sources, sharedtypes.GenderSourceColumn)
		return inf
	}

	return inf
}

func cellValue(row []string, cols sharedtypes.ColumnMap, field sharedtypes.RosterField) string {
	idx, ok := cols.Col(field)
	if !ok || idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
