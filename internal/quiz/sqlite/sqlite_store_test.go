package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/phitabs24/concourcm/internal/quiz"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	store, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
		_ = os.Remove(path)
		_ = os.Remove(path + "-wal")
		_ = os.Remove(path + "-shm")
		_ = os.Remove(path + "-journal")
	})
	return store
}

func intPtr(v int) *int {
	return &v
}

func sampleResult(correct int) quiz.SubmissionResult {
	details := []quiz.Detail{
		{Index: 0, Selected: intPtr(0), Correct: 0},
		{Index: 1, Selected: nil, Correct: 1},
	}
	if correct == 0 {
		details[0].Selected = intPtr(1)
	}
	return quiz.SubmissionResult{Total: 2, Correct: correct, Details: details}
}

func TestSQLiteStoreSaveAndReadResults(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	first, err := store.SaveResult(ctx, "alice", sampleResult(1))
	if err != nil {
		t.Fatalf("SaveResult failed: %v", err)
	}
	if first.ID == "" || first.CompletedAt.IsZero() {
		t.Fatalf("store should assign an id and completion time: %+v", first)
	}

	second, err := store.SaveResult(ctx, "alice", sampleResult(0))
	if err != nil {
		t.Fatalf("SaveResult failed: %v", err)
	}
	if _, err := store.SaveResult(ctx, "bob", sampleResult(1)); err != nil {
		t.Fatalf("SaveResult failed: %v", err)
	}

	results, err := store.RecentResults(ctx, "alice", 10)
	if err != nil {
		t.Fatalf("RecentResults failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results for alice, got %d", len(results))
	}
	if results[0].ID != second.ID || results[1].ID != first.ID {
		t.Fatalf("results not ordered newest first: %+v", results)
	}
	if len(results[1].Details) != 2 || results[1].Details[0].Selected == nil || *results[1].Details[0].Selected != 0 {
		t.Fatalf("details did not round-trip: %+v", results[1].Details)
	}
	if results[1].Details[1].Selected != nil {
		t.Fatalf("unanswered detail should stay nil")
	}

	limited, err := store.RecentResults(ctx, "alice", 1)
	if err != nil {
		t.Fatalf("RecentResults failed: %v", err)
	}
	if len(limited) != 1 || limited[0].ID != second.ID {
		t.Fatalf("unexpected limited results: %+v", limited)
	}

	none, err := store.RecentResults(ctx, "nobody", 0)
	if err != nil || none == nil || len(none) != 0 {
		t.Fatalf("RecentResults(nobody) = (%v, %v), want empty list", none, err)
	}
}

func TestSQLiteStoreSaveResultValidation(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	if _, err := store.SaveResult(ctx, "", sampleResult(1)); !errors.Is(err, quiz.ErrInvalidIdentity) {
		t.Fatalf("expected ErrInvalidIdentity, got %v", err)
	}

	broken := sampleResult(1)
	broken.Total = 5
	if _, err := store.SaveResult(ctx, "alice", broken); err == nil {
		t.Fatalf("expected an error for a total that does not match details")
	}

	empty, err := store.SaveResult(ctx, "alice", quiz.SubmissionResult{})
	if err != nil {
		t.Fatalf("empty result should be storable: %v", err)
	}
	if empty.Details == nil {
		t.Fatalf("stored details should be an empty list, not nil")
	}
}

func TestSQLiteStoreBanks(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	records := []any{
		map[string]any{"question": "2+2?", "options": []any{"3", "4"}, "answer": "B"},
		"free text question",
		map[string]any{"prompt": "Sky?", "options": []any{"blue"}, "answerIndex": 0},
	}

	metadata, err := store.SaveBank(ctx, " biology ", records)
	if err != nil {
		t.Fatalf("SaveBank failed: %v", err)
	}
	if metadata.Name != "biology" || metadata.RecordCount != 3 {
		t.Fatalf("unexpected metadata: %+v", metadata)
	}

	loaded, err := store.BankRecords(ctx, "biology")
	if err != nil {
		t.Fatalf("BankRecords failed: %v", err)
	}
	if len(loaded) != 3 {
		t.Fatalf("expected 3 records, got %d", len(loaded))
	}
	if loaded[1] != "free text question" {
		t.Fatalf("records lost their order: %+v", loaded)
	}
	if question := quiz.Normalize(loaded[0]); question.AnswerIndex != 1 {
		t.Fatalf("stored record no longer normalizes: %+v", question)
	}

	if _, err := store.SaveBank(ctx, "biology", records[:1]); err != nil {
		t.Fatalf("SaveBank replace failed: %v", err)
	}
	loaded, err = store.BankRecords(ctx, "biology")
	if err != nil || len(loaded) != 1 {
		t.Fatalf("replacing a bank should drop old records: %v, %v", loaded, err)
	}

	if _, err := store.SaveBank(ctx, "empty", nil); err != nil {
		t.Fatalf("SaveBank empty failed: %v", err)
	}
	if loaded, err := store.BankRecords(ctx, "empty"); err != nil || len(loaded) != 0 {
		t.Fatalf("empty bank = (%v, %v)", loaded, err)
	}

	if _, err := store.BankRecords(ctx, "missing"); !errors.Is(err, quiz.ErrBankNotFound) {
		t.Fatalf("expected ErrBankNotFound, got %v", err)
	}
	if _, err := store.SaveBank(ctx, "  ", records); err == nil {
		t.Fatalf("expected an error for a blank bank name")
	}

	banks, err := store.ListBanks(ctx, 10)
	if err != nil {
		t.Fatalf("ListBanks failed: %v", err)
	}
	if len(banks) != 2 {
		t.Fatalf("expected 2 banks, got %+v", banks)
	}
}
