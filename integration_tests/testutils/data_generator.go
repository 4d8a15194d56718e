package testutils

import (
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"

	rulesetdb "github.com/Fifty-Move-Club/podium/app/modules/ruleset/infrastructure/repositories"
	sharedtypes "github.com/Fifty-Move-Club/podium/app/shared/types"
)

// TestDataGenerator provides methods to create test data for integration tests
type TestDataGenerator struct {
	faker *gofakeit.Faker
	seed  int64
}

// NewTestDataGenerator creates a new test data generator with optional seed
func NewTestDataGenerator(seed ...int64) *TestDataGenerator {
	var s int64
	if len(seed) > 0 {
		s = seed[0]
	} else {
		s = time.Now().UnixNano()
	}

	faker := gofakeit.New(uint64(s))

	return &TestDataGenerator{
		faker: faker,
		seed:  s,
	}
}

// CompetitorOptions constrains generated rosters so tests can count on
// specific demographics without hand-writing every row.
type CompetitorOptions struct {
	// Clubs are cycled in rank order; empty falls back to generated names.
	Clubs []string
	// FemaleEvery marks every Nth competitor (1-based) as female; 0 disables.
	FemaleEvery int
	// MissingDOBEvery drops the date of birth from every Nth competitor; 0 disables.
	MissingDOBEvery int
	// MinAge/MaxAge bound generated ages; zero values default to 16..60.
	MinAge int
	MaxAge int
}

// GenerateCompetitors creates a roster of count competitors for a tournament.
// Ranks are assigned 1..count in slice order and ratings decrease with rank,
// so the strongest generated competitor is always the rank 1 finisher.
func (g *TestDataGenerator) GenerateCompetitors(tournamentID sharedtypes.TournamentID, count int, opts CompetitorOptions) []sharedtypes.Competitor {
	minAge := opts.MinAge
	if minAge == 0 {
		minAge = 16
	}
	maxAge := opts.MaxAge
	if maxAge == 0 {
		maxAge = 60
	}

	now := time.Now().UTC()
	competitors := make([]sharedtypes.Competitor, count)

	for i := 0; i < count; i++ {
		gender := sharedtypes.GenderMale
		rawGender := "M"
		if opts.FemaleEvery > 0 && (i+1)%opts.FemaleEvery == 0 {
			gender = sharedtypes.GenderFemale
			rawGender = "F"
		}

		var dob *time.Time
		if opts.MissingDOBEvery == 0 || (i+1)%opts.MissingDOBEvery != 0 {
			born := g.faker.DateRange(
				now.AddDate(-maxAge, 0, 0),
				now.AddDate(-minAge, 0, 0),
			)
			dob = &born
		}

		club := ""
		if len(opts.Clubs) > 0 {
			club = opts.Clubs[i%len(opts.Clubs)]
		} else {
			club = g.faker.Company()
		}

		rating := sharedtypes.Rating(2400 - i*10 + g.faker.Number(-5, 5))

		competitors[i] = sharedtypes.Competitor{
			ID:           sharedtypes.CompetitorID(uuid.New()),
			TournamentID: tournamentID,
			FullName:     g.faker.Name(),
			Rank:         i + 1,
			Rating:       &rating,
			DateOfBirth:  dob,
			RawGender:    rawGender,
			Gender:       gender,
			GenderSources: []sharedtypes.GenderSource{
				sharedtypes.GenderSourceColumn,
			},
			State: g.faker.StateAbr(),
			City:  g.faker.City(),
			Club:  club,
		}
	}

	return competitors
}

// GenerateRuleConfig creates a permissive policy record that lets every
// generated competitor through: start-date age cutoff, single stacking,
// main-first priority.
func (g *TestDataGenerator) GenerateRuleConfig(tournamentID sharedtypes.TournamentID) sharedtypes.RuleConfig {
	start := g.faker.DateRange(
		time.Now().UTC().AddDate(0, -6, 0),
		time.Now().UTC(),
	)

	return sharedtypes.RuleConfig{
		TournamentID:       tournamentID,
		AgeCutoffPolicy:    sharedtypes.AgeCutoffTournamentStart,
		TournamentStart:    start,
		AgeBandPolicy:      sharedtypes.AgeBandNonOverlapping,
		MultiPrizePolicy:   sharedtypes.StackingSingle,
		MainVsSidePriority: sharedtypes.PriorityMainFirst,
		NonCashPriority:    sharedtypes.DefaultNonCashPriority(),
	}
}

// GeneratePrizeLadder creates places 1..places for a category with cash
// descending from topCash. Place 1 carries a trophy, places 2 and 3 medals.
func (g *TestDataGenerator) GeneratePrizeLadder(tournamentID sharedtypes.TournamentID, categoryID sharedtypes.CategoryID, places, topCash int) []*rulesetdb.Prize {
	prizes := make([]*rulesetdb.Prize, places)
	cash := topCash
	for i := 0; i < places; i++ {
		place := i + 1
		prizes[i] = &rulesetdb.Prize{
			ID:           sharedtypes.PrizeID(uuid.New()),
			CategoryID:   categoryID,
			TournamentID: tournamentID,
			Place:        place,
			CashAmount:   cash,
			HasTrophy:    place == 1,
			HasMedal:     place == 2 || place == 3,
		}
		cash = cash * 6 / 10
	}
	return prizes
}
