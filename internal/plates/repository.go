package plates

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/myrjola/ironplan/internal/sqlite"
)

// Repository stores the plate inventory and gym configuration. Suggestions
// themselves are pure; the repository only supplies their input snapshot.
type Repository struct {
	db     *sqlite.Database
	logger *slog.Logger
}

// NewRepository creates a SQLite-backed plate repository.
func NewRepository(db *sqlite.Database, logger *slog.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// Inventory reads the full plate inventory.
func (r *Repository) Inventory(ctx context.Context) (Inventory, error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `SELECT weight, count FROM plate_inventory`)
	if err != nil {
		return nil, fmt.Errorf("query plate inventory: %w", err)
	}
	defer rows.Close()

	inv := make(Inventory)
	for rows.Next() {
		var (
			weight float64
			count  int
		)
		if err = rows.Scan(&weight, &count); err != nil {
			return nil, fmt.Errorf("scan plate inventory row: %w", err)
		}
		inv[weight] = count
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate plate inventory rows: %w", err)
	}
	return inv, nil
}

// SetPlateCount sets how many plates of a denomination are owned. A zero
// count removes the denomination.
func (r *Repository) SetPlateCount(ctx context.Context, weight float64, count int) error {
	if weight <= 0 || count < 0 {
		return fmt.Errorf("plate weight must be positive and count non-negative: %w", ErrInvalidInput)
	}
	if count == 0 {
		if _, err := r.db.ReadWrite.ExecContext(ctx,
			`DELETE FROM plate_inventory WHERE weight = ?`, weight); err != nil {
			return fmt.Errorf("delete plate denomination: %w", err)
		}
		return nil
	}
	_, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO plate_inventory (weight, count) VALUES (?, ?)
		ON CONFLICT (weight) DO UPDATE SET count = excluded.count`,
		weight, count)
	if err != nil {
		return fmt.Errorf("save plate denomination: %w", err)
	}
	return nil
}

// Config reads the gym configuration, falling back to a bare 45 bar when
// none has been saved.
func (r *Repository) Config(ctx context.Context) (Config, error) {
	var cfg Config
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT bar_weight, collar_weight, use_large_plates
		FROM gym_config
		WHERE id = 1`).Scan(&cfg.BarWeight, &cfg.CollarWeight, &cfg.UseLargePlates)
	if errors.Is(err, sql.ErrNoRows) {
		return Config{BarWeight: 45}, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("query gym config: %w", err)
	}
	return cfg, nil
}

// SaveConfig replaces the gym configuration.
func (r *Repository) SaveConfig(ctx context.Context, cfg Config) error {
	if cfg.BarWeight <= 0 || cfg.CollarWeight < 0 {
		return fmt.Errorf("bar weight must be positive and collar non-negative: %w", ErrInvalidInput)
	}
	_, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO gym_config (id, bar_weight, collar_weight, use_large_plates)
		VALUES (1, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			bar_weight = excluded.bar_weight,
			collar_weight = excluded.collar_weight,
			use_large_plates = excluded.use_large_plates`,
		cfg.BarWeight, cfg.CollarWeight, cfg.UseLargePlates)
	if err != nil {
		return fmt.Errorf("save gym config: %w", err)
	}
	return nil
}

// SuggestLoad reads the stored configuration and inventory and suggests a
// load for the target weight.
func (r *Repository) SuggestLoad(ctx context.Context, target float64) (LoadConfiguration, error) {
	cfg, err := r.Config(ctx)
	if err != nil {
		return LoadConfiguration{}, err
	}
	inv, err := r.Inventory(ctx)
	if err != nil {
		return LoadConfiguration{}, err
	}
	return Suggest(target, cfg, inv)
}
