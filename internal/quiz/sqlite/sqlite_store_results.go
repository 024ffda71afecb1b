package sqlite

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/phitabs24/concourcm/internal/quiz"
)

// SaveResult stores one submission. The completion timestamp is taken here,
// not from the caller, so ordering reflects arrival at the store.
func (s *SQLiteStore) SaveResult(ctx context.Context, identity string, result quiz.SubmissionResult) (quiz.StoredResult, error) {
	if identity == "" {
		return quiz.StoredResult{}, quiz.ErrInvalidIdentity
	}
	if result.Total != len(result.Details) {
		return quiz.StoredResult{}, errors.New("result total does not match details")
	}

	details := result.Details
	if details == nil {
		details = []quiz.Detail{}
	}
	detailsJSON, err := json.Marshal(details)
	if err != nil {
		return quiz.StoredResult{}, err
	}

	stored := quiz.StoredResult{
		ID:          uuid.NewString(),
		Identity:    identity,
		Total:       result.Total,
		Correct:     result.Correct,
		Details:     details,
		CompletedAt: time.Now().UTC(),
	}

	_, err = s.db.ExecContext(
		ctx,
		`INSERT INTO results (result_id, identity_norm, total, correct, details_json, completed_at_unix)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		stored.ID,
		stored.Identity,
		stored.Total,
		stored.Correct,
		string(detailsJSON),
		stored.CompletedAt.UnixNano(),
	)
	if err != nil {
		return quiz.StoredResult{}, err
	}
	return stored, nil
}

func (s *SQLiteStore) RecentResults(ctx context.Context, identity string, limit int) ([]quiz.StoredResult, error) {
	if limit <= 0 {
		limit = 10
	}

	// rowid breaks ties between results stored within the same nanosecond.
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT result_id, identity_norm, total, correct, details_json, completed_at_unix
		 FROM results
		 WHERE identity_norm = ?
		 ORDER BY completed_at_unix DESC, rowid DESC
		 LIMIT ?`,
		identity,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]quiz.StoredResult, 0)
	for rows.Next() {
		var (
			item            quiz.StoredResult
			detailsJSON     string
			completedAtUnix int64
		)
		if err := rows.Scan(&item.ID, &item.Identity, &item.Total, &item.Correct, &detailsJSON, &completedAtUnix); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(detailsJSON), &item.Details); err != nil {
			return nil, err
		}
		item.CompletedAt = time.Unix(0, completedAtUnix).UTC()
		results = append(results, item)
	}

	return results, rows.Err()
}
