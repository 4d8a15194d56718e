package awardmigrations

import (
	"context"
	"fmt"

	awarddb "github.com/Fifty-Move-Club/podium/app/modules/award/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating award_results table...")

		_, err := db.NewCreateTable().
			Model((*awarddb.AwardResult)(nil)).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create award_results table: %w", err)
		}

		indexes := []string{
			"CREATE INDEX IF NOT EXISTS idx_award_results_tournament_id ON award_results (tournament_id)",
			"CREATE INDEX IF NOT EXISTS idx_award_results_tournament_position ON award_results (tournament_id, position)",
		}
		for _, idx := range indexes {
			if _, err := db.NewRaw(idx).Exec(ctx); err != nil {
				return err
			}
		}

		fmt.Println("Award results table created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping award_results table...")

		_, err := db.NewDropTable().
			Model((*awarddb.AwardResult)(nil)).
			IfExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to drop award_results table: %w", err)
		}

		fmt.Println("Award results table dropped successfully!")
		return nil
	})
}
