package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chapa-pos/api/internal/enum"
	"github.com/chapa-pos/api/internal/pos"
)

// SettingsRepo persists venue settings as key/value rows. It satisfies
// store.SettingsPersister.
type SettingsRepo struct {
	pool *pgxpool.Pool
}

func NewSettingsRepo(pool *pgxpool.Pool) *SettingsRepo {
	return &SettingsRepo{pool: pool}
}

// LoadGrouping returns the persisted KDS grouping mode, or empty when the
// setting was never written.
func (r *SettingsRepo) LoadGrouping(ctx context.Context) (pos.GroupingMode, error) {
	var value string
	err := r.pool.QueryRow(ctx,
		`SELECT value FROM settings WHERE key = $1`,
		enum.SettingOrderGrouping,
	).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("query setting: %w", err)
	}
	return pos.GroupingMode(value), nil
}

func (r *SettingsRepo) SaveGrouping(ctx context.Context, mode pos.GroupingMode) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO settings (key, value) VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		enum.SettingOrderGrouping, string(mode))
	if err != nil {
		return fmt.Errorf("save setting: %w", err)
	}
	return nil
}
