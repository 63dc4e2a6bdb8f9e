package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// OptionRepository persists option values of one profile in the options table.
// It satisfies options.Store.
type OptionRepository struct {
	db      *pgxpool.Pool
	profile string
}

// NewOptionRepository creates an OptionRepository for profile.
//
// Precondition: db must be a valid, open connection pool; profile must be non-empty.
func NewOptionRepository(db *pgxpool.Pool, profile string) *OptionRepository {
	return &OptionRepository{db: db, profile: profile}
}

type optionRow struct {
	Name  string
	Value string
}

// Load returns every stored value of the profile keyed by option name.
//
// Postcondition: Returns an empty map when nothing is stored.
func (r *OptionRepository) Load(ctx context.Context) (map[string]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT name, value FROM options WHERE profile = $1 ORDER BY name`,
		r.profile,
	)
	if err != nil {
		return nil, fmt.Errorf("querying options: %w", err)
	}
	got, err := pgx.CollectRows(rows, pgx.RowToStructByPos[optionRow])
	if err != nil {
		return nil, fmt.Errorf("scanning options: %w", err)
	}
	values := make(map[string]string, len(got))
	for _, row := range got {
		values[row.Name] = row.Value
	}
	return values, nil
}

// Save upserts values in one transaction.
//
// Postcondition: Either every value is stored or none is.
func (r *OptionRepository) Save(ctx context.Context, values map[string]string) error {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for name, value := range values {
			batch.Queue(
				`INSERT INTO options (profile, name, value, updated_at)
				 VALUES ($1, $2, $3, NOW())
				 ON CONFLICT (profile, name)
				 DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`,
				r.profile, name, value,
			)
		}
		return tx.SendBatch(ctx, batch).Close()
	})
	if err != nil {
		return fmt.Errorf("saving options for profile %q: %w", r.profile, err)
	}
	return nil
}
