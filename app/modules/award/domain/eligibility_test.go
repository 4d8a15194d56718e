package awarddomain

import (
	"slices"
	"testing"
	"time"

	"github.com/google/uuid"

	sharedtypes "github.com/Fifty-Move-Club/podium/app/shared/types"
)

func intPtr(v int) *int { return &v }

func ratingPtr(v sharedtypes.Rating) *sharedtypes.Rating { return &v }

func datePtr(v time.Time) *time.Time { return &v }

func testConfig() sharedtypes.RuleConfig {
	return sharedtypes.RuleConfig{
		StrictAge:          true,
		MaxAgeInclusive:    true,
		AgeCutoffPolicy:    sharedtypes.AgeCutoffTournamentStart,
		TournamentStart:    time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC),
		AgeBandPolicy:      sharedtypes.AgeBandNonOverlapping,
		MultiPrizePolicy:   sharedtypes.StackingSingle,
		MainVsSidePriority: sharedtypes.PriorityMainFirst,
	}
}

func testCompetitor(mutate func(*sharedtypes.Competitor)) sharedtypes.Competitor {
	c := sharedtypes.Competitor{
		ID:       sharedtypes.CompetitorID(uuid.New()),
		FullName: "Ada Lovelace",
		Rank:     1,
		Gender:   sharedtypes.GenderFemale,
	}
	if mutate != nil {
		mutate(&c)
	}
	return c
}

func categoryWith(criteria ...sharedtypes.Criterion) sharedtypes.PrizeCategory {
	return sharedtypes.PrizeCategory{
		ID:       sharedtypes.CategoryID(uuid.New()),
		Name:     "Test Category",
		Metric:   sharedtypes.RankingByRank,
		Criteria: criteria,
	}
}

func assertCodes(t *testing.T, label string, got, want []string) {
	t.Helper()
	if !slices.Equal(got, want) {
		t.Fatalf("%s: got %v, want %v", label, got, want)
	}
}

func TestEvaluateEligibilityGender(t *testing.T) {
	cfg := testConfig()
	cutoff := cfg.CutoffDate()

	t.Run("female only accepts female", func(t *testing.T) {
		c := testCompetitor(nil)
		cat := categoryWith(&sharedtypes.GenderCriterion{Rule: sharedtypes.GenderRuleFemaleOnly})

		v := EvaluateEligibility(&c, &cat, &cfg, cutoff)
		if !v.Eligible {
			t.Fatalf("expected eligible, fail codes %v", v.FailCodes)
		}
		assertCodes(t, "pass codes", v.PassCodes, []string{CodeGenderOK})
	})

	t.Run("female only rejects unknown with gender_missing", func(t *testing.T) {
		c := testCompetitor(func(c *sharedtypes.Competitor) { c.Gender = sharedtypes.GenderUnknown })
		cat := categoryWith(&sharedtypes.GenderCriterion{Rule: sharedtypes.GenderRuleFemaleOnly})

		v := EvaluateEligibility(&c, &cat, &cfg, cutoff)
		if v.Eligible {
			t.Fatal("expected ineligible")
		}
		assertCodes(t, "fail codes", v.FailCodes, []string{CodeGenderMissing})
	})

	t.Run("female only rejects male with gender_mismatch", func(t *testing.T) {
		c := testCompetitor(func(c *sharedtypes.Competitor) { c.Gender = sharedtypes.GenderMale })
		cat := categoryWith(&sharedtypes.GenderCriterion{Rule: sharedtypes.GenderRuleFemaleOnly})

		v := EvaluateEligibility(&c, &cat, &cfg, cutoff)
		assertCodes(t, "fail codes", v.FailCodes, []string{CodeGenderMismatch})
	})

	t.Run("male or unknown accepts unknown", func(t *testing.T) {
		c := testCompetitor(func(c *sharedtypes.Competitor) { c.Gender = sharedtypes.GenderUnknown })
		cat := categoryWith(&sharedtypes.GenderCriterion{Rule: sharedtypes.GenderRuleMaleOrUnknown})

		v := EvaluateEligibility(&c, &cat, &cfg, cutoff)
		if !v.Eligible {
			t.Fatalf("expected eligible, fail codes %v", v.FailCodes)
		}
		assertCodes(t, "pass codes", v.PassCodes, []string{CodeGenderOK})
	})

	t.Run("male or unknown rejects female", func(t *testing.T) {
		c := testCompetitor(nil)
		cat := categoryWith(&sharedtypes.GenderCriterion{Rule: sharedtypes.GenderRuleMaleOrUnknown})

		v := EvaluateEligibility(&c, &cat, &cfg, cutoff)
		assertCodes(t, "fail codes", v.FailCodes, []string{CodeGenderMismatch})
	})

	t.Run("unrestricted always passes", func(t *testing.T) {
		c := testCompetitor(func(c *sharedtypes.Competitor) { c.Gender = sharedtypes.GenderUnknown })
		cat := categoryWith(&sharedtypes.GenderCriterion{Rule: sharedtypes.GenderRuleAny})

		v := EvaluateEligibility(&c, &cat, &cfg, cutoff)
		if !v.Eligible {
			t.Fatalf("expected eligible, fail codes %v", v.FailCodes)
		}
	})
}

func TestEvaluateEligibilityAge(t *testing.T) {
	cfg := testConfig()
	cutoff := cfg.CutoffDate()
	under12 := categoryWith(&sharedtypes.AgeCriterion{MaxAge: intPtr(12)})

	t.Run("age at inclusive maximum passes", func(t *testing.T) {
		c := testCompetitor(func(c *sharedtypes.Competitor) {
			c.DateOfBirth = datePtr(time.Date(2014, time.June, 1, 0, 0, 0, 0, time.UTC))
		})

		v := EvaluateEligibility(&c, &under12, &cfg, cutoff)
		if !v.Eligible {
			t.Fatalf("expected eligible at age 12, fail codes %v", v.FailCodes)
		}
		assertCodes(t, "pass codes", v.PassCodes, []string{CodeAgeOK})
	})

	t.Run("birthday after cutoff subtracts a year", func(t *testing.T) {
		// Turns 12 the day after the cutoff, so still 11 on the cutoff date.
		c := testCompetitor(func(c *sharedtypes.Competitor) {
			c.DateOfBirth = datePtr(time.Date(2014, time.June, 2, 0, 0, 0, 0, time.UTC))
		})

		v := EvaluateEligibility(&c, &under12, &cfg, cutoff)
		if !v.Eligible {
			t.Fatalf("expected eligible at age 11, fail codes %v", v.FailCodes)
		}
	})

	t.Run("over the maximum fails", func(t *testing.T) {
		c := testCompetitor(func(c *sharedtypes.Competitor) {
			c.DateOfBirth = datePtr(time.Date(2013, time.May, 1, 0, 0, 0, 0, time.UTC))
		})

		v := EvaluateEligibility(&c, &under12, &cfg, cutoff)
		assertCodes(t, "fail codes", v.FailCodes, []string{CodeAgeExceedsLimit})
	})

	t.Run("exclusive maximum rejects the boundary age", func(t *testing.T) {
		exclusive := cfg
		exclusive.MaxAgeInclusive = false
		c := testCompetitor(func(c *sharedtypes.Competitor) {
			c.DateOfBirth = datePtr(time.Date(2014, time.June, 1, 0, 0, 0, 0, time.UTC))
		})

		v := EvaluateEligibility(&c, &under12, &exclusive, cutoff)
		assertCodes(t, "fail codes", v.FailCodes, []string{CodeAgeExceedsLimit})
	})

	t.Run("below the minimum fails", func(t *testing.T) {
		senior := categoryWith(&sharedtypes.AgeCriterion{MinAge: intPtr(50)})
		c := testCompetitor(func(c *sharedtypes.Competitor) {
			c.DateOfBirth = datePtr(time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC))
		})

		v := EvaluateEligibility(&c, &senior, &cfg, cutoff)
		assertCodes(t, "fail codes", v.FailCodes, []string{CodeAgeBelowLimit})
	})

	t.Run("missing date of birth fails", func(t *testing.T) {
		c := testCompetitor(nil)

		v := EvaluateEligibility(&c, &under12, &cfg, cutoff)
		assertCodes(t, "fail codes", v.FailCodes, []string{CodeDOBMissing})
		if v.NeedsReview {
			t.Fatal("hard failure must not flag review")
		}
	})

	t.Run("missing date of birth passes with review when allowed", func(t *testing.T) {
		lenient := cfg
		lenient.AllowMissingDOBForAge = true
		c := testCompetitor(nil)

		v := EvaluateEligibility(&c, &under12, &lenient, cutoff)
		if !v.Eligible {
			t.Fatalf("expected eligible, fail codes %v", v.FailCodes)
		}
		assertCodes(t, "pass codes", v.PassCodes, []string{CodeDOBMissingAllowed})
		if !v.NeedsReview {
			t.Fatal("expected the review flag")
		}
	})

	t.Run("age criterion is skipped without strict_age", func(t *testing.T) {
		relaxed := cfg
		relaxed.StrictAge = false
		c := testCompetitor(func(c *sharedtypes.Competitor) {
			c.DateOfBirth = datePtr(time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC))
		})

		v := EvaluateEligibility(&c, &under12, &relaxed, cutoff)
		if !v.Eligible {
			t.Fatalf("expected eligible, fail codes %v", v.FailCodes)
		}
		if len(v.PassCodes) != 0 || len(v.FailCodes) != 0 {
			t.Fatalf("expected no codes, got pass %v fail %v", v.PassCodes, v.FailCodes)
		}
	})
}

func TestEvaluateEligibilityRating(t *testing.T) {
	cfg := testConfig()
	cutoff := cfg.CutoffDate()
	under1800 := categoryWith(&sharedtypes.RatingCriterion{MaxRating: ratingPtr(1799)})

	t.Run("rating inside the range passes", func(t *testing.T) {
		c := testCompetitor(func(c *sharedtypes.Competitor) { c.Rating = ratingPtr(1650) })

		v := EvaluateEligibility(&c, &under1800, &cfg, cutoff)
		assertCodes(t, "pass codes", v.PassCodes, []string{CodeRatingOK})
	})

	t.Run("rating outside the range fails", func(t *testing.T) {
		c := testCompetitor(func(c *sharedtypes.Competitor) { c.Rating = ratingPtr(1950) })

		v := EvaluateEligibility(&c, &under1800, &cfg, cutoff)
		assertCodes(t, "fail codes", v.FailCodes, []string{CodeRatingOutOfRange})
	})

	t.Run("rating below the minimum fails", func(t *testing.T) {
		over2000 := categoryWith(&sharedtypes.RatingCriterion{MinRating: ratingPtr(2000)})
		c := testCompetitor(func(c *sharedtypes.Competitor) { c.Rating = ratingPtr(1500) })

		v := EvaluateEligibility(&c, &over2000, &cfg, cutoff)
		assertCodes(t, "fail codes", v.FailCodes, []string{CodeRatingOutOfRange})
	})

	t.Run("missing rating fails a rating criterion", func(t *testing.T) {
		c := testCompetitor(nil)

		v := EvaluateEligibility(&c, &under1800, &cfg, cutoff)
		assertCodes(t, "fail codes", v.FailCodes, []string{CodeRatingMissing})
	})
}

func TestEvaluateEligibilityLocation(t *testing.T) {
	cfg := testConfig()
	cutoff := cfg.CutoffDate()

	t.Run("allowed state passes case-insensitively", func(t *testing.T) {
		cat := categoryWith(&sharedtypes.LocationCriterion{
			Field:   sharedtypes.LocationState,
			Allowed: []string{"Kerala", "Goa"},
		})
		c := testCompetitor(func(c *sharedtypes.Competitor) { c.State = "  kerala " })

		v := EvaluateEligibility(&c, &cat, &cfg, cutoff)
		assertCodes(t, "pass codes", v.PassCodes, []string{"state_ok"})
	})

	t.Run("state outside the set fails", func(t *testing.T) {
		cat := categoryWith(&sharedtypes.LocationCriterion{
			Field:   sharedtypes.LocationState,
			Allowed: []string{"Kerala"},
		})
		c := testCompetitor(func(c *sharedtypes.Competitor) { c.State = "Goa" })

		v := EvaluateEligibility(&c, &cat, &cfg, cutoff)
		assertCodes(t, "fail codes", v.FailCodes, []string{"state_not_allowed"})
	})

	t.Run("blank competitor value fails", func(t *testing.T) {
		cat := categoryWith(&sharedtypes.LocationCriterion{
			Field:   sharedtypes.LocationClub,
			Allowed: []string{"Rook & Pawn"},
		})
		c := testCompetitor(nil)

		v := EvaluateEligibility(&c, &cat, &cfg, cutoff)
		assertCodes(t, "fail codes", v.FailCodes, []string{"club_not_allowed"})
	})

	t.Run("group label field uses group codes", func(t *testing.T) {
		cat := categoryWith(&sharedtypes.LocationCriterion{
			Field:   sharedtypes.LocationGroup,
			Allowed: []string{"Open A"},
		})
		c := testCompetitor(func(c *sharedtypes.Competitor) { c.GroupLabel = "Open A" })

		v := EvaluateEligibility(&c, &cat, &cfg, cutoff)
		assertCodes(t, "pass codes", v.PassCodes, []string{"group_ok"})
	})
}

func TestEvaluateEligibilityAccumulatesAllCriteria(t *testing.T) {
	cfg := testConfig()
	cutoff := cfg.CutoffDate()

	cat := categoryWith(
		&sharedtypes.GenderCriterion{Rule: sharedtypes.GenderRuleFemaleOnly},
		&sharedtypes.AgeCriterion{MaxAge: intPtr(12)},
		&sharedtypes.RatingCriterion{MaxRating: ratingPtr(1800)},
	)
	c := testCompetitor(func(c *sharedtypes.Competitor) {
		c.Gender = sharedtypes.GenderMale
		c.DateOfBirth = datePtr(time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC))
	})

	v := EvaluateEligibility(&c, &cat, &cfg, cutoff)
	if v.Eligible {
		t.Fatal("expected ineligible")
	}
	assertCodes(t, "fail codes", v.FailCodes, []string{CodeGenderMismatch, CodeAgeExceedsLimit, CodeRatingMissing})
	if len(v.PassCodes) != 0 {
		t.Fatalf("expected no pass codes, got %v", v.PassCodes)
	}
}

func TestEvaluateEligibilityEmptyCriteria(t *testing.T) {
	cfg := testConfig()
	cat := categoryWith()
	c := testCompetitor(nil)

	v := EvaluateEligibility(&c, &cat, &cfg, cfg.CutoffDate())
	if !v.Eligible {
		t.Fatalf("expected eligible, fail codes %v", v.FailCodes)
	}
	if len(v.PassCodes) != 0 || len(v.FailCodes) != 0 {
		t.Fatalf("expected no codes, got pass %v fail %v", v.PassCodes, v.FailCodes)
	}
}

func TestAgeAt(t *testing.T) {
	cases := []struct {
		name string
		dob  time.Time
		asOf time.Time
		want int
	}{
		{
			name: "birthday exactly on the reference date",
			dob:  time.Date(2014, time.June, 1, 0, 0, 0, 0, time.UTC),
			asOf: time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC),
			want: 12,
		},
		{
			name: "birthday the next day",
			dob:  time.Date(2014, time.June, 2, 0, 0, 0, 0, time.UTC),
			asOf: time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC),
			want: 11,
		},
		{
			name: "birthday in a later month",
			dob:  time.Date(2014, time.December, 25, 0, 0, 0, 0, time.UTC),
			asOf: time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC),
			want: 11,
		},
		{
			name: "birthday already passed this year",
			dob:  time.Date(2014, time.January, 15, 0, 0, 0, 0, time.UTC),
			asOf: time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC),
			want: 12,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := AgeAt(tc.dob, tc.asOf); got != tc.want {
				t.Fatalf("got %d, want %d", got, tc.want)
			}
		})
	}
}
