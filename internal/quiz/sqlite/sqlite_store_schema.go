package sqlite

import (
	"context"
)

func (s *SQLiteStore) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS results (
			result_id TEXT PRIMARY KEY,
			identity_norm TEXT NOT NULL,
			total INTEGER NOT NULL,
			correct INTEGER NOT NULL,
			details_json TEXT NOT NULL,
			completed_at_unix INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS banks (
			bank_name TEXT PRIMARY KEY,
			record_count INTEGER NOT NULL,
			created_at_unix INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS bank_records (
			bank_name TEXT NOT NULL,
			position INTEGER NOT NULL,
			record_json TEXT NOT NULL,
			PRIMARY KEY (bank_name, position)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_results_identity_completed ON results(identity_norm, completed_at_unix DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_banks_created_at ON banks(created_at_unix DESC);`,
	}

	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
