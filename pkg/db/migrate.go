// pkg/db/migrate.go
package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Idempotent DDL applied at startup. Schema changes beyond additive tables
// are out of scope for this service.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS profiles (
		id BIGSERIAL PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		profession TEXT NOT NULL,
		role TEXT NOT NULL CHECK (role IN ('client', 'contractor')),
		balance NUMERIC(20, 2) NOT NULL DEFAULT 0 CHECK (balance >= 0),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS contracts (
		id BIGSERIAL PRIMARY KEY,
		client_id BIGINT NOT NULL REFERENCES profiles (id),
		contractor_id BIGINT NOT NULL REFERENCES profiles (id),
		terms TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL CHECK (status IN ('new', 'in_progress', 'terminated')),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS jobs (
		id BIGSERIAL PRIMARY KEY,
		contract_id BIGINT NOT NULL REFERENCES contracts (id),
		description TEXT NOT NULL DEFAULT '',
		price NUMERIC(20, 2) NOT NULL CHECK (price >= 0),
		paid BOOLEAN NOT NULL DEFAULT FALSE,
		payment_date TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_contracts_client_id ON contracts (client_id)`,
	`CREATE INDEX IF NOT EXISTS idx_contracts_contractor_id ON contracts (contractor_id)`,
	`CREATE INDEX IF NOT EXISTS idx_jobs_contract_id ON jobs (contract_id)`,
}

// Migrate applies the schema migrations in order.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for i, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply migration %d: %w", i+1, err)
		}
	}
	return nil
}
