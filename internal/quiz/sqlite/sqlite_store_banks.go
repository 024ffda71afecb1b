package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/phitabs24/concourcm/internal/quiz"
)

// SaveBank replaces the named bank with records, keeping their order.
func (s *SQLiteStore) SaveBank(ctx context.Context, name string, records []any) (quiz.BankMetadata, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return quiz.BankMetadata{}, errors.New("bank name is required")
	}

	metadata := quiz.BankMetadata{
		Name:        name,
		RecordCount: len(records),
		CreatedAt:   time.Now().UTC(),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return quiz.BankMetadata{}, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM bank_records WHERE bank_name = ?`, name); err != nil {
		return quiz.BankMetadata{}, err
	}

	_, err = tx.ExecContext(
		ctx,
		`INSERT OR REPLACE INTO banks (bank_name, record_count, created_at_unix) VALUES (?, ?, ?)`,
		metadata.Name,
		metadata.RecordCount,
		metadata.CreatedAt.UnixNano(),
	)
	if err != nil {
		return quiz.BankMetadata{}, err
	}

	for idx, record := range records {
		recordJSON, err := json.Marshal(record)
		if err != nil {
			return quiz.BankMetadata{}, err
		}
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO bank_records (bank_name, position, record_json) VALUES (?, ?, ?)`,
			name,
			idx,
			string(recordJSON),
		); err != nil {
			return quiz.BankMetadata{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return quiz.BankMetadata{}, err
	}
	return metadata, nil
}

func (s *SQLiteStore) BankExists(ctx context.Context, name string) (bool, error) {
	var found int
	err := s.db.QueryRowContext(
		ctx,
		`SELECT 1 FROM banks WHERE bank_name = ? LIMIT 1`,
		name,
	).Scan(&found)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// BankRecords returns the raw records of a bank in import order.
func (s *SQLiteStore) BankRecords(ctx context.Context, name string) ([]any, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT record_json FROM bank_records WHERE bank_name = ? ORDER BY position ASC`,
		name,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]any, 0)
	for rows.Next() {
		var recordJSON string
		if err := rows.Scan(&recordJSON); err != nil {
			return nil, err
		}
		var record any
		if err := json.Unmarshal([]byte(recordJSON), &record); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(records) == 0 {
		exists, err := s.BankExists(ctx, name)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, quiz.ErrBankNotFound
		}
	}

	return records, nil
}

func (s *SQLiteStore) ListBanks(ctx context.Context, limit int) ([]quiz.BankMetadata, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(
		ctx,
		`SELECT bank_name, record_count, created_at_unix
		 FROM banks
		 ORDER BY created_at_unix DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	banks := make([]quiz.BankMetadata, 0)
	for rows.Next() {
		var (
			item          quiz.BankMetadata
			createdAtUnix int64
		)
		if err := rows.Scan(&item.Name, &item.RecordCount, &createdAtUnix); err != nil {
			return nil, err
		}
		item.CreatedAt = time.Unix(0, createdAtUnix).UTC()
		banks = append(banks, item)
	}

	return banks, rows.Err()
}
