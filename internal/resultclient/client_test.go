package resultclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/phitabs24/concourcm/internal/quiz"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func TestDoJSONReturnsServiceUnavailable(t *testing.T) {
	client := NewClient("http://example.test", "token", &http.Client{
		Transport: roundTripperFunc(func(*http.Request) (*http.Response, error) {
			return nil, errors.New("dial error")
		}),
	})

	err := client.doJSON(context.Background(), http.MethodGet, "/healthz", nil, nil)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !errors.Is(err, ErrServiceUnavailable) {
		t.Fatalf("expected ErrServiceUnavailable wrapper, got %v", err)
	}
}

func TestDoJSONReturnsAPIErrorMessageFromBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(errorResponse{Error: "bad request payload"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "token", server.Client())
	err := client.doJSON(context.Background(), http.MethodGet, "/anything", nil, nil)
	if err == nil {
		t.Fatalf("expected API error")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T (%v)", err, err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("status code = %d, want %d", apiErr.StatusCode, http.StatusBadRequest)
	}
	if apiErr.Message != "bad request payload" {
		t.Fatalf("message = %q, want %q", apiErr.Message, "bad request payload")
	}
}

func TestSaveResultSendsBearerTokenAndBody(t *testing.T) {
	completedAt := time.Date(2026, 3, 1, 10, 20, 30, 0, time.UTC)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/results" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret-token" {
			t.Errorf("authorization header = %q", got)
		}

		var result quiz.SubmissionResult
		if err := json.NewDecoder(r.Body).Decode(&result); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(quiz.StoredResult{
			ID:          "r1",
			Identity:    "alice",
			Total:       result.Total,
			Correct:     result.Correct,
			Details:     result.Details,
			CompletedAt: completedAt,
		})
	}))
	defer server.Close()

	selected := 1
	client := NewClient(server.URL+"/", " secret-token ", server.Client())
	stored, err := client.SaveResult(context.Background(), "alice", quiz.SubmissionResult{
		Total:   1,
		Correct: 1,
		Details: []quiz.Detail{{Index: 0, Selected: &selected, Correct: 1}},
	})
	if err != nil {
		t.Fatalf("SaveResult failed: %v", err)
	}
	if stored.ID != "r1" || !stored.CompletedAt.Equal(completedAt) || len(stored.Details) != 1 {
		t.Fatalf("unexpected stored result: %+v", stored)
	}
}

func TestRecentResultsBuildsQueryAndParsesResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("limit"); got != "5" {
			t.Errorf("limit query = %q", got)
		}
		_ = json.NewEncoder(w).Encode(resultsResponse{
			Identity: "alice",
			Results:  []quiz.StoredResult{{ID: "r2"}, {ID: "r1"}},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "token", server.Client())
	results, err := client.RecentResults(context.Background(), "alice", 5)
	if err != nil {
		t.Fatalf("RecentResults failed: %v", err)
	}
	if len(results) != 2 || results[0].ID != "r2" {
		t.Fatalf("unexpected results: %+v", results)
	}
}

func TestUnauthorizedMapsToInvalidIdentity(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(errorResponse{Error: "a bearer token is required"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "expired", server.Client())
	if _, err := client.RecentResults(context.Background(), "alice", 1); !errors.Is(err, quiz.ErrInvalidIdentity) {
		t.Fatalf("expected ErrInvalidIdentity, got %v", err)
	}
}

func TestMissingTokenNeverCallsServer(t *testing.T) {
	client := NewClient("http://example.test", "", &http.Client{
		Transport: roundTripperFunc(func(*http.Request) (*http.Response, error) {
			t.Fatalf("no request expected")
			return nil, nil
		}),
	})

	if _, err := client.SaveResult(context.Background(), "alice", quiz.SubmissionResult{}); !errors.Is(err, quiz.ErrInvalidIdentity) {
		t.Fatalf("expected ErrInvalidIdentity, got %v", err)
	}
}
