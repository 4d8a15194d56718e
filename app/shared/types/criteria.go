package sharedtypes

import (
	"encoding/json"
	"fmt"
)

// CriterionKind tags one case of the closed criterion variant.
type CriterionKind string

const (
	CriterionGender   CriterionKind = "gender"
	CriterionAge      CriterionKind = "age"
	CriterionRating   CriterionKind = "rating"
	CriterionLocation CriterionKind = "location"
)

// Criterion is one eligibility rule attached to a prize category. The set
// of implementations is closed; the evaluator switches exhaustively over it.
type Criterion interface {
	Kind() CriterionKind
}

// GenderRule narrows a category to a gender population.
type GenderRule string

const (
	// GenderRuleFemaleOnly requires an explicit female classification.
	GenderRuleFemaleOnly GenderRule = "female_only"
	// GenderRuleMaleOrUnknown accepts male or unknown; only an explicit
	// female classification is excluded.
	GenderRuleMaleOrUnknown GenderRule = "male_or_unknown"
	// GenderRuleAny imposes no constraint.
	GenderRuleAny GenderRule = "any"
)

// GenderCriterion restricts a category by canonical gender.
type GenderCriterion struct {
	Rule GenderRule `json:"rule"`
}

func (*GenderCriterion) Kind() CriterionKind { return CriterionGender }

// AgeCriterion bounds competitor age in whole years at the cutoff date.
// Nil bounds impose no constraint on that side.
type AgeCriterion struct {
	MinAge *int `json:"min_age,omitempty"`
	MaxAge *int `json:"max_age,omitempty"`
}

func (*AgeCriterion) Kind() CriterionKind { return CriterionAge }

// RatingCriterion bounds competitor rating. Nil bounds impose no constraint.
type RatingCriterion struct {
	MinRating *Rating `json:"min_rating,omitempty"`
	MaxRating *Rating `json:"max_rating,omitempty"`
}

func (*RatingCriterion) Kind() CriterionKind { return CriterionRating }

// LocationField names the competitor field a location criterion checks.
type LocationField string

const (
	LocationState LocationField = "state"
	LocationCity  LocationField = "city"
	LocationClub  LocationField = "club"
	LocationGroup LocationField = "group"
)

// LocationCriterion restricts a category to an allowed set of values for
// one location/affiliation field.
type LocationCriterion struct {
	Field   LocationField `json:"field"`
	Allowed []string      `json:"allowed"`
}

func (*LocationCriterion) Kind() CriterionKind { return CriterionLocation }

// CriterionList is the JSON shape criteria are stored in: an array of
// tagged objects, one per criterion.
type CriterionList []Criterion

// criterionEnvelope is the wire form of a single criterion.
type criterionEnvelope struct {
	Kind CriterionKind `json:"kind"`

	Rule GenderRule `json:"rule,omitempty"`

	MinAge *int `json:"min_age,omitempty"`
	MaxAge *int `json:"max_age,omitempty"`

	MinRating *Rating `json:"min_rating,omitempty"`
	MaxRating *Rating `json:"max_rating,omitempty"`

	Field   LocationField `json:"field,omitempty"`
	Allowed []string      `json:"allowed,omitempty"`
}

// MarshalJSON encodes each criterion with its kind tag.
func (l CriterionList) MarshalJSON() ([]byte, error) {
	envelopes := make([]criterionEnvelope, 0, len(l))
	for _, c := range l {
		switch crit := c.(type) {
		case *GenderCriterion:
			envelopes = append(envelopes, criterionEnvelope{Kind: CriterionGender, Rule: crit.Rule})
		case *AgeCriterion:
			envelopes = append(envelopes, criterionEnvelope{Kind: CriterionAge, MinAge: crit.MinAge, MaxAge: crit.MaxAge})
		case *RatingCriterion:
			envelopes = append(envelopes, criterionEnvelope{Kind: CriterionRating, MinRating: crit.MinRating, MaxRating: crit.MaxRating})
		case *LocationCriterion:
			envelopes = append(envelopes, criterionEnvelope{Kind: CriterionLocation, Field: crit.Field, Allowed: crit.Allowed})
		default:
			return nil, fmt.Errorf("unsupported criterion type %T", c)
		}
	}
	return json.Marshal(envelopes)
}

// UnmarshalJSON decodes the tagged array, rejecting unknown kinds so a
// malformed document fails loudly at read time instead of silently
// skipping rules.
func (l *CriterionList) UnmarshalJSON(data []byte) error {
	var envelopes []criterionEnvelope
	if err := json.Unmarshal(data, &envelopes); err != nil {
		return fmt.Errorf("failed to decode criteria document: %w", err)
	}

	out := make(CriterionList, 0, len(envelopes))
	for _, env := range envelopes {
		switch env.Kind {
		case CriterionGender:
			out = append(out, &GenderCriterion{Rule: env.Rule})
		case CriterionAge:
			out = append(out, &AgeCriterion{MinAge: env.MinAge, MaxAge: env.MaxAge})
		case CriterionRating:
			out = append(out, &RatingCriterion{MinRating: env.MinRating, MaxRating: env.MaxRating})
		case CriterionLocation:
			out = append(out, &LocationCriterion{Field: env.Field, Allowed: env.Allowed})
		default:
			return fmt.Errorf("unknown criterion kind %q", env.Kind)
		}
	}
	*l = out
	return nil
}
