package rostermigrations

import (
	"context"
	"fmt"

	rosterdb "github.com/Fifty-Move-Club/podium/app/modules/roster/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating competitors table...")

		_, err := db.NewCreateTable().
			Model((*rosterdb.Competitor)(nil)).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create competitors table: %w", err)
		}

		_, err = db.NewRaw("CREATE INDEX IF NOT EXISTS idx_competitors_tournament_id ON competitors (tournament_id)").Exec(ctx)
		if err != nil {
			return err
		}
		_, err = db.NewRaw("CREATE INDEX IF NOT EXISTS idx_competitors_tournament_rank ON competitors (tournament_id, rank)").Exec(ctx)
		if err != nil {
			return err
		}

		fmt.Println("Competitors table created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping competitors table...")

		_, err := db.NewDropTable().
			Model((*rosterdb.Competitor)(nil)).
			IfExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to drop competitors table: %w", err)
		}

		fmt.Println("Competitors table dropped successfully!")
		return nil
	})
}
