package rulesetdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sharedtypes "github.com/Fifty-Move-Club/podium/app/shared/types"
	"github.com/uptrace/bun"
)

// ErrConfigNotFound is returned when a tournament has no rule configuration.
var ErrConfigNotFound = errors.New("rule configuration not found")

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new ruleset repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

// resolveDB returns the provided db handle, falling back to the repository's
// default connection if db is nil.
func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

// UpsertConfig writes the tournament's policy record in place.
func (r *Impl) UpsertConfig(ctx context.Context, db bun.IDB, cfg *RuleConfig) error {
	db = r.resolveDB(db)
	cfg.UpdatedAt = time.Now()

	_, err := db.NewInsert().
		Model(cfg).
		On("CONFLICT (tournament_id) DO UPDATE").
		Set("strict_age = EXCLUDED.strict_age").
		Set("allow_missing_dob_for_age = EXCLUDED.allow_missing_dob_for_age").
		Set("max_age_inclusive = EXCLUDED.max_age_inclusive").
		Set("age_cutoff_policy = EXCLUDED.age_cutoff_policy").
		Set("age_cutoff_month = EXCLUDED.age_cutoff_month").
		Set("age_cutoff_day = EXCLUDED.age_cutoff_day").
		Set("age_cutoff_date = EXCLUDED.age_cutoff_date").
		Set("tournament_start = EXCLUDED.tournament_start").
		Set("age_band_policy = EXCLUDED.age_band_policy").
		Set("multi_prize_policy = EXCLUDED.multi_prize_policy").
		Set("main_vs_side_priority = EXCLUDED.main_vs_side_priority").
		Set("non_cash_priority = EXCLUDED.non_cash_priority").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert rule config: %w", err)
	}
	return nil
}

// GetConfig returns the tournament's policy record.
func (r *Impl) GetConfig(ctx context.Context, db bun.IDB, tournamentID sharedtypes.TournamentID) (*sharedtypes.RuleConfig, error) {
	db = r.resolveDB(db)

	var row RuleConfig
	err := db.NewSelect().
		Model(&row).
		Where("tournament_id = ?", tournamentID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("failed to get rule config: %w", err)
	}

	cfg := row.ToShared()
	return &cfg, nil
}

// ReplaceCategories swaps the tournament's full category and prize set.
func (r *Impl) ReplaceCategories(ctx context.Context, db bun.IDB, tournamentID sharedtypes.TournamentID, categories []*PrizeCategory, prizes []*Prize) error {
	db = r.resolveDB(db)

	_, err := db.NewDelete().
		Model((*Prize)(nil)).
		Where("tournament_id = ?", tournamentID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to clear previous prizes: %w", err)
	}

	_, err = db.NewDelete().
		Model((*PrizeCategory)(nil)).
		Where("tournament_id = ?", tournamentID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to clear previous categories: %w", err)
	}

	now := time.Now()
	if len(categories) > 0 {
		for _, c := range categories {
			c.TournamentID = tournamentID
			c.CreatedAt = now
			c.UpdatedAt = now
		}
		if _, err := db.NewInsert().Model(&categories).Exec(ctx); err != nil {
			return fmt.Errorf("failed to insert categories: %w", err)
		}
	}

	if len(prizes) > 0 {
		for _, p := range prizes {
			p.TournamentID = tournamentID
			p.CreatedAt = now
		}
		if _, err := db.NewInsert().Model(&prizes).Exec(ctx); err != nil {
			return fmt.Errorf("failed to insert prizes: %w", err)
		}
	}
	return nil
}

// ListCategories returns categories ordered by priority ascending.
func (r *Impl) ListCategories(ctx context.Context, db bun.IDB, tournamentID sharedtypes.TournamentID) ([]sharedtypes.PrizeCategory, error) {
	db = r.resolveDB(db)

	var rows []PrizeCategory
	err := db.NewSelect().
		Model(&rows).
		Where("tournament_id = ?", tournamentID).
		Order("priority ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	categories := make([]sharedtypes.PrizeCategory, 0, len(rows))
	for i := range rows {
		categories = append(categories, rows[i].ToShared())
	}
	return categories, nil
}

// ListPrizes returns prizes ordered by category then place ascending.
func (r *Impl) ListPrizes(ctx context.Context, db bun.IDB, tournamentID sharedtypes.TournamentID) ([]sharedtypes.Prize, error) {
	db = r.resolveDB(db)

	var rows []Prize
	err := db.NewSelect().
		Model(&rows).
		Where("tournament_id = ?", tournamentID).
		Order("category_id ASC", "place ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list prizes: %w", err)
	}

	prizes := make([]sharedtypes.Prize, 0, len(rows))
	for i := range rows {
		prizes = append(prizes, rows[i].ToShared())
	}
	return prizes, nil
}

// ReplaceGroups swaps the tournament's institution prize groups and places.
func (r *Impl) ReplaceGroups(ctx context.Context, db bun.IDB, tournamentID sharedtypes.TournamentID, groups []*InstitutionGroup, prizes []*InstitutionPrize) error {
	db = r.resolveDB(db)

	_, err := db.NewDelete().
		Model((*InstitutionPrize)(nil)).
		Where("tournament_id = ?", tournamentID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to clear previous institution prizes: %w", err)
	}

	_, err = db.NewDelete().
		Model((*InstitutionGroup)(nil)).
		Where("tournament_id = ?", tournamentID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to clear previous institution groups: %w", err)
	}

	now := time.Now()
	if len(groups) > 0 {
		for _, g := range groups {
			g.TournamentID = tournamentID
			g.CreatedAt = now
			g.UpdatedAt = now
		}
		if _, err := db.NewInsert().Model(&groups).Exec(ctx); err != nil {
			return fmt.Errorf("failed to insert institution groups: %w", err)
		}
	}

	if len(prizes) > 0 {
		for _, p := range prizes {
			p.TournamentID = tournamentID
			p.CreatedAt = now
		}
		if _, err := db.NewInsert().Model(&prizes).Exec(ctx); err != nil {
			return fmt.Errorf("failed to insert institution prizes: %w", err)
		}
	}
	return nil
}

// ListGroups returns institution prize groups in label order.
func (r *Impl) ListGroups(ctx context.Context, db bun.IDB, tournamentID sharedtypes.TournamentID) ([]sharedtypes.InstitutionGroup, error) {
	db = r.resolveDB(db)

	var rows []InstitutionGroup
	err := db.NewSelect().
		Model(&rows).
		Where("tournament_id = ?", tournamentID).
		Order("label ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list institution groups: %w", err)
	}

	groups := make([]sharedtypes.InstitutionGroup, 0, len(rows))
	for i := range rows {
		groups = append(groups, rows[i].ToShared())
	}
	return groups, nil
}

// ListGroupPrizes returns institution prizes ordered by group then place.
func (r *Impl) ListGroupPrizes(ctx context.Context, db bun.IDB, tournamentID sharedtypes.TournamentID) ([]sharedtypes.InstitutionPrize, error) {
	db = r.resolveDB(db)

	var rows []InstitutionPrize
	err := db.NewSelect().
		Model(&rows).
		Where("tournament_id = ?", tournamentID).
		Order("group_id ASC", "place ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list institution prizes: %w", err)
	}

	prizes := make([]sharedtypes.InstitutionPrize, 0, len(rows))
	for i := range rows {
		prizes = append(prizes, rows[i].ToShared())
	}
	return prizes, nil
}
