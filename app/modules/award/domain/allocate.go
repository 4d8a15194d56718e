package awarddomain

import (
	"cmp"
	"slices"
	"strings"
	"time"

	sharedtypes "github.com/Fifty-Move-Club/podium/app/shared/types"
)

// AllocationInput is the immutable snapshot one individual allocation run
// computes over. The run sorts defensively, so callers need not guarantee
// any particular category or prize ordering.
type AllocationInput struct {
	TournamentID sharedtypes.TournamentID
	Competitors  []sharedtypes.Competitor
	Config       sharedtypes.RuleConfig
	Categories   []sharedtypes.PrizeCategory
	Prizes       []sharedtypes.Prize
	GeneratedAt  time.Time
}

// AllocateIndividual walks every prize in the configured order and binds the
// best remaining eligible competitor to each place. A prize nobody qualifies
// for gets a nil winner; a competitor who fails every category is simply
// absent. The computation is pure: two runs over the same input produce
// identical reports, reason codes included.
func AllocateIndividual(input AllocationInput) sharedtypes.IndividualAllocationReport {
	report := sharedtypes.IndividualAllocationReport{
		TournamentID: input.TournamentID,
		GeneratedAt:  input.GeneratedAt,
		Awards:       make([]sharedtypes.PrizeAward, 0, len(input.Prizes)),
	}

	run := newAllocationRun(input)
	for _, step := range run.walkOrder() {
		report.Awards = append(report.Awards, run.bind(step.category, step.prize))
	}
	report.NeedsReview = run.reviewList()
	return report
}

// prizeStep is one position in the prize walk.
type prizeStep struct {
	category *sharedtypes.PrizeCategory
	prize    *sharedtypes.Prize
}

// allocationRun carries the mutable state of one walk: precomputed verdicts,
// age-band claims, and the per-competitor stacking ledger.
type allocationRun struct {
	cfg          sharedtypes.RuleConfig
	cutoff       time.Time
	nonCashOrder []sharedtypes.NonCashKind

	categories       []sharedtypes.PrizeCategory
	competitors      []sharedtypes.Competitor
	prizesByCategory map[sharedtypes.CategoryID][]sharedtypes.Prize

	verdicts   map[sharedtypes.CategoryID]map[sharedtypes.CompetitorID]Verdict
	bandClaims map[sharedtypes.CompetitorID]sharedtypes.CategoryID

	wonInCategory map[sharedtypes.CategoryID]map[sharedtypes.CompetitorID]bool
	wonAny        map[sharedtypes.CompetitorID]bool
	wonMain       map[sharedtypes.CompetitorID]bool
	wonSide       map[sharedtypes.CompetitorID]bool

	review map[sharedtypes.CompetitorID]bool
}

func newAllocationRun(input AllocationInput) *allocationRun {
	run := &allocationRun{
		cfg:              input.Config,
		cutoff:           input.Config.CutoffDate(),
		nonCashOrder:     input.Config.EffectiveNonCashPriority(),
		categories:       slices.Clone(input.Categories),
		competitors:      slices.Clone(input.Competitors),
		prizesByCategory: make(map[sharedtypes.CategoryID][]sharedtypes.Prize),
		verdicts:         make(map[sharedtypes.CategoryID]map[sharedtypes.CompetitorID]Verdict),
		bandClaims:       make(map[sharedtypes.CompetitorID]sharedtypes.CategoryID),
		wonInCategory:    make(map[sharedtypes.CategoryID]map[sharedtypes.CompetitorID]bool),
		wonAny:           make(map[sharedtypes.CompetitorID]bool),
		wonMain:          make(map[sharedtypes.CompetitorID]bool),
		wonSide:          make(map[sharedtypes.CompetitorID]bool),
		review:           make(map[sharedtypes.CompetitorID]bool),
	}

	slices.SortStableFunc(run.categories, func(a, b sharedtypes.PrizeCategory) int {
		if c := cmp.Compare(a.Priority, b.Priority); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	slices.SortStableFunc(run.competitors, canonicalOrder)

	for _, prize := range input.Prizes {
		run.prizesByCategory[prize.CategoryID] = append(run.prizesByCategory[prize.CategoryID], prize)
	}
	for id := range run.prizesByCategory {
		slices.SortStableFunc(run.prizesByCategory[id], func(a, b sharedtypes.Prize) int {
			if c := cmp.Compare(a.Place, b.Place); c != 0 {
				return c
			}
			return strings.Compare(a.ID.String(), b.ID.String())
		})
	}

	for i := range run.categories {
		category := &run.categories[i]
		perCompetitor := make(map[sharedtypes.CompetitorID]Verdict, len(run.competitors))
		for j := range run.competitors {
			competitor := &run.competitors[j]
			perCompetitor[competitor.ID] = EvaluateEligibility(competitor, category, &run.cfg, run.cutoff)
		}
		run.verdicts[category.ID] = perCompetitor
	}

	run.claimAgeBands()
	return run
}

// claimAgeBands implements the non-overlapping band policy: walking
// categories in priority order, the first age-banded category a competitor
// is eligible for claims them; the same competitor then fails every other
// age-banded category with age_band_taken. Categories without an age bound
// and the overlapping policy are unaffected.
func (r *allocationRun) claimAgeBands() {
	if r.cfg.AgeBandPolicy != sharedtypes.AgeBandNonOverlapping {
		return
	}

	for i := range r.categories {
		category := &r.categories[i]
		if _, banded := category.AgeBand(); !banded {
			continue
		}
		for j := range r.competitors {
			competitor := &r.competitors[j]
			if !r.verdicts[category.ID][competitor.ID].Eligible {
				continue
			}
			if _, claimed := r.bandClaims[competitor.ID]; claimed {
				continue
			}
			r.bandClaims[competitor.ID] = category.ID
		}
	}

	for i := range r.categories {
		category := &r.categories[i]
		if _, banded := category.AgeBand(); !banded {
			continue
		}
		for j := range r.competitors {
			competitor := &r.competitors[j]
			verdict := r.verdicts[category.ID][competitor.ID]
			if !verdict.Eligible {
				continue
			}
			if claimedBy, ok := r.bandClaims[competitor.ID]; ok && claimedBy != category.ID {
				verdict.fail(CodeAgeBandTaken)
				r.verdicts[category.ID][competitor.ID] = verdict
			}
		}
	}
}

// walkOrder realizes the configured priority mode as a single ordered pass.
// main_first walks category-major in priority order; value_first sorts all
// prizes globally by cash descending, then non-cash composition over the
// configured kind order, then main before side, then category priority,
// then place. The trailing keys make the order total, so no undecided tie
// ever reaches the walk.
func (r *allocationRun) walkOrder() []prizeStep {
	var steps []prizeStep
	for i := range r.categories {
		category := &r.categories[i]
		prizes := r.prizesByCategory[category.ID]
		for j := range prizes {
			steps = append(steps, prizeStep{category: category, prize: &prizes[j]})
		}
	}

	if r.cfg.MainVsSidePriority == sharedtypes.PriorityValueFirst {
		slices.SortStableFunc(steps, r.compareByValue)
	}
	return steps
}

func (r *allocationRun) compareByValue(a, b prizeStep) int {
	if c := cmp.Compare(b.prize.CashAmount, a.prize.CashAmount); c != 0 {
		return c
	}
	for _, kind := range r.nonCashOrder {
		if c := cmp.Compare(b.prize.NonCashCount(kind), a.prize.NonCashCount(kind)); c != 0 {
			return c
		}
	}
	if a.category.IsMain != b.category.IsMain {
		if a.category.IsMain {
			return -1
		}
		return 1
	}
	if c := cmp.Compare(a.category.Priority, b.category.Priority); c != 0 {
		return c
	}
	return cmp.Compare(a.prize.Place, b.prize.Place)
}

// bind assigns the best remaining eligible competitor to one prize and
// updates the stacking ledger. A nil winner marks an unfilled place.
func (r *allocationRun) bind(category *sharedtypes.PrizeCategory, prize *sharedtypes.Prize) sharedtypes.PrizeAward {
	award := sharedtypes.PrizeAward{
		CategoryID:   category.ID,
		CategoryName: category.Name,
		PrizeID:      prize.ID,
		Place:        prize.Place,
		CashAmount:   prize.CashAmount,
		HasTrophy:    prize.HasTrophy,
		HasMedal:     prize.HasMedal,
		HasGift:      prize.HasGift,
	}

	winner := r.selectWinner(category)
	if winner == nil {
		return award
	}

	award.Winner = &sharedtypes.AwardedCompetitor{
		CompetitorID: winner.ID,
		FullName:     winner.FullName,
		Rank:         winner.Rank,
		Rating:       winner.Rating,
		Gender:       winner.Gender,
	}
	r.recordWin(category, winner)
	return award
}

func (r *allocationRun) selectWinner(category *sharedtypes.PrizeCategory) *sharedtypes.Competitor {
	candidates := r.candidates(category)
	if len(candidates) == 0 {
		return nil
	}
	if category.Metric == sharedtypes.RankingByRating {
		slices.SortStableFunc(candidates, compareByRating)
	}
	return candidates[0]
}

// candidates filters the roster down to competitors this category can still
// award, in canonical rank order.
func (r *allocationRun) candidates(category *sharedtypes.PrizeCategory) []*sharedtypes.Competitor {
	var out []*sharedtypes.Competitor
	for i := range r.competitors {
		competitor := &r.competitors[i]
		if !r.verdicts[category.ID][competitor.ID].Eligible {
			continue
		}
		if r.wonInCategory[category.ID][competitor.ID] {
			continue
		}
		switch r.cfg.MultiPrizePolicy {
		case sharedtypes.StackingSingle:
			if r.wonAny[competitor.ID] {
				continue
			}
		case sharedtypes.StackingMainPlusOneSide:
			if category.IsMain && r.wonMain[competitor.ID] {
				continue
			}
			if !category.IsMain && r.wonSide[competitor.ID] {
				continue
			}
		}
		out = append(out, competitor)
	}
	return out
}

func (r *allocationRun) recordWin(category *sharedtypes.PrizeCategory, winner *sharedtypes.Competitor) {
	if r.wonInCategory[category.ID] == nil {
		r.wonInCategory[category.ID] = make(map[sharedtypes.CompetitorID]bool)
	}
	r.wonInCategory[category.ID][winner.ID] = true
	r.wonAny[winner.ID] = true
	if category.IsMain {
		r.wonMain[winner.ID] = true
	} else {
		r.wonSide[winner.ID] = true
	}
	if winner.NeedsReview || r.verdicts[category.ID][winner.ID].NeedsReview {
		r.review[winner.ID] = true
	}
}

// reviewList returns the winners flagged for demographic review, in
// canonical roster order.
func (r *allocationRun) reviewList() []sharedtypes.CompetitorID {
	var out []sharedtypes.CompetitorID
	for i := range r.competitors {
		if r.review[r.competitors[i].ID] {
			out = append(out, r.competitors[i].ID)
		}
	}
	return out
}

// canonicalOrder fixes candidate iteration: rank ascending, then name, then
// ID, so equal-rank rows cannot reorder between runs.
func canonicalOrder(a, b sharedtypes.Competitor) int {
	if c := cmp.Compare(a.Rank, b.Rank); c != 0 {
		return c
	}
	if c := strings.Compare(a.FullName, b.FullName); c != 0 {
		return c
	}
	return strings.Compare(a.ID.String(), b.ID.String())
}

// compareByRating orders rating descending with missing ratings last; equal
// ratings keep the underlying rank-ascending order through the stable sort.
func compareByRating(a, b *sharedtypes.Competitor) int {
	switch {
	case a.Rating == nil && b.Rating == nil:
		return 0
	case a.Rating == nil:
		return 1
	case b.Rating == nil:
		return -1
	}
	return cmp.Compare(*b.Rating, *a.Rating)
}
