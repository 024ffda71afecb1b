package quiz

import "sync"

// Sessions keeps live sessions until they are submitted.
type Sessions struct {
	sessions sync.Map
}

func NewSessions() *Sessions {
	return &Sessions{}
}

func (r *Sessions) Put(session *Session) {
	r.sessions.Store(session.ID, session)
}

func (r *Sessions) Get(id string) (*Session, bool) {
	stored, ok := r.sessions.Load(id)
	if !ok {
		return nil, false
	}
	session, ok := stored.(*Session)
	return session, ok
}

// Take removes and returns a session so it can be submitted exactly once.
func (r *Sessions) Take(id string) (*Session, bool) {
	stored, ok := r.sessions.LoadAndDelete(id)
	if !ok {
		return nil, false
	}
	session, ok := stored.(*Session)
	return session, ok
}

func (r *Sessions) Len() int {
	count := 0
	r.sessions.Range(func(_, _ any) bool {
		count++
		return true
	})
	return count
}
