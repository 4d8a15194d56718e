package testutils

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivermigrate"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"

	awardmigrations "github.com/Fifty-Move-Club/podium/app/modules/award/infrastructure/repositories/migrations"
	institutionmigrations "github.com/Fifty-Move-Club/podium/app/modules/institution/infrastructure/repositories/migrations"
	rostermigrations "github.com/Fifty-Move-Club/podium/app/modules/roster/infrastructure/repositories/migrations"
	rulesetmigrations "github.com/Fifty-Move-Club/podium/app/modules/ruleset/infrastructure/repositories/migrations"
)

// runMigrations runs all module migrations plus the River queue schema.
// The connection string is needed because River migrates through pgx
// directly rather than through bun.
func runMigrations(db *bun.DB, pgConnStr string) error {
	ctx := context.Background()

	// Initialize migration tables only once - use any migrations to create the table
	migrator := migrate.NewMigrator(db, rostermigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		return fmt.Errorf("failed to initialize migration tables: %w", err)
	}

	// Run River queue migrations first (required for the recompute queue)
	if err := runRiverMigrations(ctx, pgConnStr); err != nil {
		return fmt.Errorf("failed to run River migrations: %w", err)
	}

	// Run all module migrations in a deterministic order
	orderedModules := []struct {
		name       string
		migrations *migrate.Migrations
	}{
		{"roster", rostermigrations.Migrations},
		{"ruleset", rulesetmigrations.Migrations},
		{"award", awardmigrations.Migrations},
		{"institution", institutionmigrations.Migrations},
	}

	for _, mod := range orderedModules {
		if err := runModuleMigrations(ctx, db, mod.migrations, mod.name); err != nil {
			return err
		}
	}
	log.Println("All migrations ran successfully")
	return nil
}

// runRiverMigrations runs River queue system migrations
func runRiverMigrations(ctx context.Context, pgConnStr string) error {
	poolConfig, err := pgxpool.ParseConfig(pgConnStr)
	if err != nil {
		return fmt.Errorf("failed to parse DSN for River migrations: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return fmt.Errorf("failed to create pgx pool for River migrations: %w", err)
	}
	defer pool.Close()

	migrator, err := rivermigrate.New(riverpgxv5.New(pool), nil)
	if err != nil {
		return fmt.Errorf("failed to create River migrator: %w", err)
	}

	_, err = migrator.Migrate(ctx, rivermigrate.DirectionUp, &rivermigrate.MigrateOpts{})
	if err != nil {
		return fmt.Errorf("failed to run River migrations: %w", err)
	}

	log.Println("River queue migrations completed successfully")
	return nil
}

// runModuleMigrations runs migrations for a specific module
func runModuleMigrations(ctx context.Context, db *bun.DB, migrations *migrate.Migrations, name string) error {
	migrator := migrate.NewMigrator(db, migrations)
	group, err := migrator.Migrate(ctx)
	if err != nil {
		return fmt.Errorf("failed to run %s migrations: %w", name, err)
	}
	if group.ID == 0 {
		log.Printf("No %s migrations to run", name)
	} else {
		log.Printf("Ran %s migrations group #%d", name, group.ID)
	}
	return nil
}

// Known application tables (cached to avoid querying information_schema every time)
var appTables = []string{
	"competitors",
	"rule_configs",
	"prize_categories",
	"prizes",
	"institution_prize_groups",
	"institution_prizes",
	"award_results",
	"institution_results",
}

// CleanupRiverJobs deletes all jobs from the River queue
func CleanupRiverJobs(ctx context.Context, db *bun.DB) error {
	_, err := db.ExecContext(ctx, "DELETE FROM river_job")
	return err
}

// CleanupDatabase truncates all tables in the database to ensure a clean state
func CleanupDatabase(ctx context.Context, db *bun.DB) error {
	if len(appTables) == 0 {
		return nil
	}

	// Truncate all application tables (skip migrations tables)
	// Using CASCADE to handle foreign key constraints automatically
	query := fmt.Sprintf("TRUNCATE TABLE %s CASCADE", strings.Join(appTables, ", "))
	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to truncate tables: %w", err)
	}

	if err := CleanupRiverJobs(ctx, db); err != nil {
		// Don't fail if table doesn't exist yet
		if !strings.Contains(err.Error(), "does not exist") {
			return fmt.Errorf("failed to cleanup river jobs: %w", err)
		}
	}

	return nil
}

// TruncateTables truncates the specified tables
func TruncateTables(ctx context.Context, db *bun.DB, tables ...string) error {
	if len(tables) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString("TRUNCATE TABLE ")
	for i, table := range tables {
		sb.WriteString(fmt.Sprintf(`"%s"`, table))
		if i < len(tables)-1 {
			sb.WriteString(", ")
		}
	}
	sb.WriteString(" CASCADE")

	log.Printf("Truncating tables: %s", strings.Join(tables, ", "))
	if _, err := db.ExecContext(ctx, sb.String()); err != nil {
		return fmt.Errorf("failed to truncate tables %v: %w", tables, err)
	}
	return nil
}

// CleanRosterIntegrationTables truncates roster-related tables
func CleanRosterIntegrationTables(ctx context.Context, db *bun.DB) error {
	return TruncateTables(ctx, db, "competitors")
}

// CleanRulesetIntegrationTables truncates rule configuration tables
func CleanRulesetIntegrationTables(ctx context.Context, db *bun.DB) error {
	return TruncateTables(ctx, db,
		"rule_configs",
		"prize_categories",
		"prizes",
		"institution_prize_groups",
		"institution_prizes",
	)
}

// CleanAwardIntegrationTables truncates finalized award result tables
func CleanAwardIntegrationTables(ctx context.Context, db *bun.DB) error {
	return TruncateTables(ctx, db, "award_results")
}

// CleanInstitutionIntegrationTables truncates finalized team result tables
func CleanInstitutionIntegrationTables(ctx context.Context, db *bun.DB) error {
	return TruncateTables(ctx, db, "institution_results")
}

// CleanAllIntegrationTables truncates all tables for complete isolation between tests
func CleanAllIntegrationTables(ctx context.Context, db *bun.DB) error {
	return TruncateTables(ctx, db, appTables...)
}
