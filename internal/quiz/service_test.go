package quiz

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
	"time"
)

type fakeResultStore struct {
	saved      []StoredResult
	identities []string
	saveErr    error
}

func (f *fakeResultStore) SaveResult(_ context.Context, identity string, result SubmissionResult) (StoredResult, error) {
	if f.saveErr != nil {
		return StoredResult{}, f.saveErr
	}
	f.identities = append(f.identities, identity)
	stored := StoredResult{
		ID:          "result-1",
		Identity:    identity,
		Total:       result.Total,
		Correct:     result.Correct,
		Details:     result.Details,
		CompletedAt: time.Now().UTC(),
	}
	f.saved = append(f.saved, stored)
	return stored, nil
}

func (f *fakeResultStore) RecentResults(_ context.Context, identity string, limit int) ([]StoredResult, error) {
	out := make([]StoredResult, 0)
	for idx := len(f.saved) - 1; idx >= 0 && len(out) < limit; idx-- {
		if f.saved[idx].Identity == identity {
			out = append(out, f.saved[idx])
		}
	}
	return out, nil
}

type keepOrder struct{}

func (keepOrder) IntN(n int) int { return n - 1 }

func newTestService(results ResultStore) *Service {
	questions := sampleQuestions()
	records := make([]any, 0, len(questions))
	for _, question := range questions {
		records = append(records, question)
	}
	fetcher := FetcherFunc(func(_ context.Context, locator string) ([]any, error) {
		if locator != "bank://sample" {
			return nil, errors.New("not found")
		}
		return records, nil
	})
	loader := NewLoader(fetcher, WithRandomSource(keepOrder{}), WithLogger(log.New(io.Discard, "", 0)))
	service := NewService(loader, results, nil)
	service.logger = log.New(io.Discard, "", 0)
	return service
}

func TestServiceLifecycle(t *testing.T) {
	store := &fakeResultStore{}
	service := newTestService(store)
	ctx := context.Background()

	session, failures := service.StartSession(ctx, []string{"bank://sample", "bank://gone"}, 0)
	if session.Len() != 3 || len(failures) != 1 {
		t.Fatalf("unexpected session start: %d questions, failures %+v", session.Len(), failures)
	}

	found, err := service.Session(" " + session.ID + " ")
	if err != nil || found != session {
		t.Fatalf("Session lookup failed: %v", err)
	}
	_ = found.Select(0, 0)
	_ = found.Select(2, 1)

	submission, err := service.Submit(ctx, session.ID, " Alice ", nil)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if submission.SessionID != session.ID || submission.Result.Correct != 1 || len(submission.Review) != 2 {
		t.Fatalf("unexpected submission: %+v", submission)
	}
	if !submission.Persisted || submission.Stored == nil || len(submission.Warnings) != 0 {
		t.Fatalf("expected a persisted submission: %+v", submission)
	}
	if len(store.identities) != 1 || store.identities[0] != "alice" {
		t.Fatalf("identity not normalized before storing: %v", store.identities)
	}

	if _, err := service.Submit(ctx, session.ID, "alice", nil); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("second Submit error = %v, want ErrSessionNotFound", err)
	}

	recent, err := service.RecentResults(ctx, "ALICE", 0)
	if err != nil || len(recent) != 1 {
		t.Fatalf("RecentResults = (%v, %v)", recent, err)
	}
}

func TestServiceSubmitWithoutIdentityIsNotPersisted(t *testing.T) {
	store := &fakeResultStore{}
	service := newTestService(store)
	ctx := context.Background()

	session, _ := service.StartSession(ctx, []string{"bank://sample"}, 2)
	if session.Len() != 2 {
		t.Fatalf("expected the limit to apply, got %d questions", session.Len())
	}

	submission, err := service.Submit(ctx, session.ID, "  ", []*int{intPtr(0)})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if submission.Persisted || len(submission.Warnings) != 1 || len(store.saved) != 0 {
		t.Fatalf("anonymous submission should only warn: %+v", submission)
	}
	if submission.Result.Total != 2 || submission.Result.Correct != 1 {
		t.Fatalf("unexpected result: %+v", submission.Result)
	}
}

func TestServiceStoreFailureBecomesWarning(t *testing.T) {
	service := newTestService(&fakeResultStore{saveErr: errors.New("database is locked")})
	ctx := context.Background()

	session, _ := service.StartSession(ctx, []string{"bank://sample"}, 0)
	submission, err := service.Submit(ctx, session.ID, "bob", []*int{intPtr(0), intPtr(1), intPtr(2)})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if submission.Result.Correct != 3 || submission.Persisted {
		t.Fatalf("unexpected submission: %+v", submission)
	}
	if len(submission.Warnings) != 1 || submission.Warnings[0] != "result not saved: database is locked" {
		t.Fatalf("unexpected warnings: %v", submission.Warnings)
	}
}

func TestServiceRejectedSelectionsKeepSession(t *testing.T) {
	service := newTestService(nil)
	ctx := context.Background()

	session, _ := service.StartSession(ctx, []string{"bank://sample"}, 0)
	if err := session.Select(1, 1); err != nil {
		t.Fatalf("Select failed: %v", err)
	}

	if _, err := service.Submit(ctx, session.ID, "", []*int{intPtr(1), intPtr(5)}); !errors.Is(err, ErrOptionOutOfRange) {
		t.Fatalf("Submit error = %v, want ErrOptionOutOfRange", err)
	}
	kept, err := service.Session(session.ID)
	if err != nil {
		t.Fatalf("session should still be registered: %v", err)
	}

	selections := kept.Selections()
	if selections[0] != nil || selections[1] == nil || *selections[1] != 1 || selections[2] != nil {
		t.Fatalf("rejected submission changed the selections: %v", selections)
	}
}

func TestServiceWithoutStore(t *testing.T) {
	service := newTestService(nil)
	ctx := context.Background()

	if _, err := service.SaveResult(ctx, "carol", SubmissionResult{}); err == nil {
		t.Fatalf("expected an error without a result store")
	}
	results, err := service.RecentResults(ctx, "carol", 5)
	if err != nil || results == nil || len(results) != 0 {
		t.Fatalf("RecentResults = (%v, %v), want empty list", results, err)
	}
	if _, err := service.RecentResults(ctx, "", 5); !errors.Is(err, ErrInvalidIdentity) {
		t.Fatalf("expected ErrInvalidIdentity, got %v", err)
	}
	if _, err := service.Session("missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}
