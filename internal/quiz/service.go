package quiz

import (
	"context"
	"errors"
	"log"
	"strings"
)

const defaultRecentLimit = 10

type Service struct {
	loader   *Loader
	results  ResultStore
	sessions *Sessions
	logger   *log.Logger
}

// Submission is everything a capture surface needs after an attempt ends.
type Submission struct {
	SessionID string
	Result    SubmissionResult
	Review    []ReviewEntry
	Persisted bool
	Stored    *StoredResult
	Warnings  []string
}

// NewService wires the lifecycle. results may be nil, in which case nothing is
// ever persisted.
func NewService(loader *Loader, results ResultStore, sessions *Sessions) *Service {
	if sessions == nil {
		sessions = NewSessions()
	}
	return &Service{
		loader:   loader,
		results:  results,
		sessions: sessions,
		logger:   log.Default(),
	}
}

// StartSession loads questions from locators and registers a new session for
// them. Source failures come back as warnings alongside the session.
func (s *Service) StartSession(ctx context.Context, locators []string, limit int) (*Session, []SourceFailure) {
	var loaded LoadResult
	if s.loader != nil {
		loaded = s.loader.Load(ctx, locators, limit)
	}

	session := NewSession(loaded.Questions)
	s.sessions.Put(session)
	return session, loaded.Failures
}

func (s *Service) Session(id string) (*Session, error) {
	session, ok := s.sessions.Get(strings.TrimSpace(id))
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Submit ends a session, scores it and hands the result to the result store
// when identity is set. Missing identity or a failing store never prevents
// the result from being returned; both surface as warnings.
func (s *Service) Submit(ctx context.Context, sessionID, identity string, selections []*int) (Submission, error) {
	session, ok := s.sessions.Take(strings.TrimSpace(sessionID))
	if !ok {
		return Submission{}, ErrSessionNotFound
	}

	if selections != nil {
		if err := session.Apply(selections); err != nil {
			// Keep the session submittable after a bad payload.
			s.sessions.Put(session)
			return Submission{}, err
		}
	}

	submission := s.Finish(ctx, session.Questions(), session.Selections(), identity)
	submission.SessionID = session.ID
	return submission, nil
}

// Finish scores a completed set of selections and persists the result when
// possible. Callers that hold their own capture state use it directly.
func (s *Service) Finish(ctx context.Context, questions []Question, selections []*int, identity string) Submission {
	result := Score(questions, selections)
	submission := Submission{
		Result: result,
		Review: BuildReview(questions, result),
	}

	stored, err := s.SaveResult(ctx, identity, result)
	switch {
	case err == nil:
		submission.Persisted = true
		submission.Stored = &stored
	case errors.Is(err, ErrInvalidIdentity):
		submission.Warnings = append(submission.Warnings, "result not saved: no authenticated identity")
	default:
		s.logger.Printf("warning: saving result failed: %v", err)
		submission.Warnings = append(submission.Warnings, "result not saved: "+err.Error())
	}
	return submission
}

func (s *Service) SaveResult(ctx context.Context, identity string, result SubmissionResult) (StoredResult, error) {
	normalized, err := NormalizeIdentity(identity)
	if err != nil {
		return StoredResult{}, err
	}
	if s.results == nil {
		return StoredResult{}, errors.New("result store is not configured")
	}
	return s.results.SaveResult(ctx, normalized, result)
}

func (s *Service) RecentResults(ctx context.Context, identity string, limit int) ([]StoredResult, error) {
	normalized, err := NormalizeIdentity(identity)
	if err != nil {
		return nil, err
	}
	if s.results == nil {
		return []StoredResult{}, nil
	}
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	return s.results.RecentResults(ctx, normalized, limit)
}
