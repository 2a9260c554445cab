package postgres

import (
	"context"
	"fmt"
)

// schema creates the gateway Pocket's ledger table. seq keeps insertion order
// so payments select vouchers the same way across restarts.
const schema = `CREATE TABLE IF NOT EXISTS pocket_vouchers (
	seq        BIGSERIAL PRIMARY KEY,
	id         TEXT NOT NULL UNIQUE,
	secret     TEXT NOT NULL,
	aim        TEXT NOT NULL,
	latitude   DOUBLE PRECISION NOT NULL,
	longitude  DOUBLE PRECISION NOT NULL,
	issued_at  TIMESTAMPTZ NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// EnsureSchema creates missing tables.
func EnsureSchema(ctx context.Context, pool Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("creating pocket_vouchers table: %w", err)
	}
	return nil
}
