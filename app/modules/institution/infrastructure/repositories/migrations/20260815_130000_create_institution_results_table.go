package institutionmigrations

import (
	"context"
	"fmt"

	institutiondb "github.com/Fifty-Move-Club/podium/app/modules/institution/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating institution_results table...")

		_, err := db.NewCreateTable().
			Model((*institutiondb.InstitutionResult)(nil)).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create institution_results table: %w", err)
		}

		indexes := []string{
			"CREATE INDEX IF NOT EXISTS idx_institution_results_tournament_id ON institution_results (tournament_id)",
			"CREATE INDEX IF NOT EXISTS idx_institution_results_tournament_position ON institution_results (tournament_id, position)",
			"CREATE INDEX IF NOT EXISTS idx_institution_results_group_id ON institution_results (group_id)",
		}
		for _, idx := range indexes {
			if _, err := db.NewRaw(idx).Exec(ctx); err != nil {
				return err
			}
		}

		fmt.Println("Institution results table created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping institution_results table...")

		_, err := db.NewDropTable().
			Model((*institutiondb.InstitutionResult)(nil)).
			IfExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to drop institution_results table: %w", err)
		}

		fmt.Println("Institution results table dropped successfully!")
		return nil
	})
}
