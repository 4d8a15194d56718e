// Package awarddomain holds the pure individual allocation logic:
// per-category eligibility verdicts and the deterministic prize walk that
// binds winners to places.
package awarddomain

import (
	"strings"
	"time"

	sharedtypes "github.com/Fifty-Move-Club/podium/app/shared/types"
)

// Verdict codes are stable strings; the allocator, tests, and any audit
// surface key off them without re-deriving meaning.
const (
	CodeGenderOK       = "gender_ok"
	CodeGenderMissing  = "gender_missing"
	CodeGenderMismatch = "gender_mismatch"

	CodeAgeOK             = "age_ok"
	CodeAgeBelowLimit     = "age_below_limit"
	CodeAgeExceedsLimit   = "age_exceeds_limit"
	CodeDOBMissing        = "dob_missing"
	CodeDOBMissingAllowed = "dob_missing_allowed"
	CodeAgeBandTaken      = "age_band_taken"

	CodeRatingOK         = "rating_ok"
	CodeRatingMissing    = "rating_missing"
	CodeRatingOutOfRange = "rating_out_of_range"
)

// Verdict is the outcome of evaluating one competitor against one category.
// It exists only inside an allocation run and is never persisted.
type Verdict struct {
	Eligible bool
	// FailCodes and PassCodes follow the category's criteria document
	// order, one code per applied criterion.
	FailCodes []string
	PassCodes []string
	// NeedsReview marks a pass that leaned on a waived check, currently
	// only a missing date of birth under allow_missing_dob_for_age.
	NeedsReview bool
}

func (v *Verdict) pass(code string) {
	v.PassCodes = append(v.PassCodes, code)
}

func (v *Verdict) fail(code string) {
	v.Eligible = false
	v.FailCodes = append(v.FailCodes, code)
}

// EvaluateEligibility checks one competitor against one category under the
// active rule configuration, with ages computed as of asOf. Every applicable
// criterion is evaluated; nothing short-circuits, so the verdict reports
// every failing and every passing check rather than just the first.
func EvaluateEligibility(c *sharedtypes.Competitor, category *sharedtypes.PrizeCategory, cfg *sharedtypes.RuleConfig, asOf time.Time) Verdict {
	verdict := Verdict{Eligible: true}
	for _, criterion := range category.Criteria {
		switch crit := criterion.(type) {
		case *sharedtypes.GenderCriterion:
			evaluateGender(&verdict, c, crit)
		case *sharedtypes.AgeCriterion:
			evaluateAge(&verdict, c, crit, cfg, asOf)
		case *sharedtypes.RatingCriterion:
			evaluateRating(&verdict, c, crit)
		case *sharedtypes.LocationCriterion:
			evaluateLocation(&verdict, c, crit)
		}
	}
	return verdict
}

func evaluateGender(v *Verdict, c *sharedtypes.Competitor, crit *sharedtypes.GenderCriterion) {
	switch crit.Rule {
	case sharedtypes.GenderRuleFemaleOnly:
		switch {
		case c.Gender.IsFemale():
			v.pass(CodeGenderOK)
		case !c.Gender.IsKnown():
			v.fail(CodeGenderMissing)
		default:
			v.fail(CodeGenderMismatch)
		}
	case sharedtypes.GenderRuleMaleOrUnknown:
		// Unknown is presumed not disqualified; only an explicit female
		// classification is excluded.
		if c.Gender.IsFemale() {
			v.fail(CodeGenderMismatch)
		} else {
			v.pass(CodeGenderOK)
		}
	default:
		v.pass(CodeGenderOK)
	}
}

func evaluateAge(v *Verdict, c *sharedtypes.Competitor, crit *sharedtypes.AgeCriterion, cfg *sharedtypes.RuleConfig, asOf time.Time) {
	// Age enforcement is opt-in per tournament; without strict_age the
	// criterion is not applied at all.
	if !cfg.StrictAge {
		return
	}
	if c.DateOfBirth == nil {
		if cfg.AllowMissingDOBForAge {
			v.NeedsReview = true
			v.pass(CodeDOBMissingAllowed)
			return
		}
		v.fail(CodeDOBMissing)
		return
	}

	age := AgeAt(*c.DateOfBirth, asOf)
	if crit.MinAge != nil && age < *crit.MinAge {
		v.fail(CodeAgeBelowLimit)
		return
	}
	if crit.MaxAge != nil {
		if cfg.MaxAgeInclusive {
			if age > *crit.MaxAge {
				v.fail(CodeAgeExceedsLimit)
				return
			}
		} else if age >= *crit.MaxAge {
			v.fail(CodeAgeExceedsLimit)
			return
		}
	}
	v.pass(CodeAgeOK)
}

func evaluateRating(v *Verdict, c *sharedtypes.Competitor, crit *sharedtypes.RatingCriterion) {
	if c.Rating == nil {
		v.fail(CodeRatingMissing)
		return
	}
	r := *c.Rating
	if (crit.MinRating != nil && r < *crit.MinRating) || (crit.MaxRating != nil && r > *crit.MaxRating) {
		v.fail(CodeRatingOutOfRange)
		return
	}
	v.pass(CodeRatingOK)
}

func evaluateLocation(v *Verdict, c *sharedtypes.Competitor, crit *sharedtypes.LocationCriterion) {
	if allowedContains(crit.Allowed, locationValue(c, crit.Field)) {
		v.pass(string(crit.Field) + "_ok")
		return
	}
	v.fail(string(crit.Field) + "_not_allowed")
}

func locationValue(c *sharedtypes.Competitor, field sharedtypes.LocationField) string {
	switch field {
	case sharedtypes.LocationState:
		return c.State
	case sharedtypes.LocationCity:
		return c.City
	case sharedtypes.LocationClub:
		return c.Club
	case sharedtypes.LocationGroup:
		return c.GroupLabel
	}
	return ""
}

// allowedContains checks set membership with trimmed, case-insensitive
// comparison; location fields arrive as free text from imports. A blank
// competitor value is never a member.
func allowedContains(allowed []string, value string) bool {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return false
	}
	for _, a := range allowed {
		if strings.EqualFold(strings.TrimSpace(a), trimmed) {
			return true
		}
	}
	return false
}

// AgeAt computes age in whole years at the reference date. A birthday not
// yet reached in the reference year subtracts one.
func AgeAt(dob, asOf time.Time) int {
	years := asOf.Year() - dob.Year()
	if asOf.Month() < dob.Month() || (asOf.Month() == dob.Month() && asOf.Day() < dob.Day()) {
		years--
	}
	return years
}
