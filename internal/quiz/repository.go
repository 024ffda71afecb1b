package quiz

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidIdentity = errors.New("invalid identity")
	ErrBankNotFound    = errors.New("question bank not found")
)

// StoredResult is a persisted submission. CompletedAt is assigned by the
// store at write time.
type StoredResult struct {
	ID          string    `json:"id"`
	Identity    string    `json:"identity"`
	Total       int       `json:"total"`
	Correct     int       `json:"correct"`
	Details     []Detail  `json:"details"`
	CompletedAt time.Time `json:"completed_at"`
}

// ResultStore is the write/read contract for finished attempts.
type ResultStore interface {
	SaveResult(ctx context.Context, identity string, result SubmissionResult) (StoredResult, error)
	// RecentResults returns at most limit results for identity, newest first.
	RecentResults(ctx context.Context, identity string, limit int) ([]StoredResult, error)
}

type BankMetadata struct {
	Name        string
	RecordCount int
	CreatedAt   time.Time
}

// BankRepository stores named collections of raw records for later loading.
type BankRepository interface {
	SaveBank(ctx context.Context, name string, records []any) (BankMetadata, error)
	BankRecords(ctx context.Context, name string) ([]any, error)
	ListBanks(ctx context.Context, limit int) ([]BankMetadata, error)
}

func NormalizeIdentity(identity string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(identity))
	if normalized == "" {
		return "", ErrInvalidIdentity
	}
	return normalized, nil
}
