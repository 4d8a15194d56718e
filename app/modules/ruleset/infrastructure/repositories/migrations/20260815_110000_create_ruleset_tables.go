package rulesetmigrations

import (
	"context"
	"fmt"

	rulesetdb "github.com/Fifty-Move-Club/podium/app/modules/ruleset/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating ruleset tables...")

		models := []interface{}{
			(*rulesetdb.RuleConfig)(nil),
			(*rulesetdb.PrizeCategory)(nil),
			(*rulesetdb.Prize)(nil),
			(*rulesetdb.InstitutionGroup)(nil),
			(*rulesetdb.InstitutionPrize)(nil),
		}
		for _, model := range models {
			_, err := db.NewCreateTable().
				Model(model).
				IfNotExists().
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to create ruleset table for %T: %w", model, err)
			}
		}

		indexes := []string{
			"CREATE INDEX IF NOT EXISTS idx_prize_categories_tournament_id ON prize_categories (tournament_id)",
			"CREATE INDEX IF NOT EXISTS idx_prizes_tournament_id ON prizes (tournament_id)",
			"CREATE INDEX IF NOT EXISTS idx_prizes_category_place ON prizes (category_id, place)",
			"CREATE INDEX IF NOT EXISTS idx_institution_prize_groups_tournament_id ON institution_prize_groups (tournament_id)",
			"CREATE INDEX IF NOT EXISTS idx_institution_prizes_tournament_id ON institution_prizes (tournament_id)",
			"CREATE INDEX IF NOT EXISTS idx_institution_prizes_group_place ON institution_prizes (group_id, place)",
		}
		for _, idx := range indexes {
			if _, err := db.NewRaw(idx).Exec(ctx); err != nil {
				return err
			}
		}

		fmt.Println("Ruleset tables created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping ruleset tables...")

		models := []interface{}{
			(*rulesetdb.InstitutionPrize)(nil),
			(*rulesetdb.InstitutionGroup)(nil),
			(*rulesetdb.Prize)(nil),
			(*rulesetdb.PrizeCategory)(nil),
			(*rulesetdb.RuleConfig)(nil),
		}
		for _, model := range models {
			_, err := db.NewDropTable().
				Model(model).
				IfExists().
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to drop ruleset table for %T: %w", model, err)
			}
		}

		fmt.Println("Ruleset tables dropped successfully!")
		return nil
	})
}
