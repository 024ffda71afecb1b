package quiz

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// NoSelection is the capture state of a question nobody has answered yet.
const NoSelection = -1

var (
	ErrQuestionOutOfRange = errors.New("question index out of range")
	ErrOptionOutOfRange   = errors.New("option index out of range")
)

// Session binds an ordered question list to one single-choice slot per
// question. Selecting an option replaces any earlier selection for the same
// question only.
type Session struct {
	ID        string
	CreatedAt time.Time

	questions []Question

	mu         sync.Mutex
	selections []int
}

func NewSession(questions []Question) *Session {
	selections := make([]int, len(questions))
	for idx := range selections {
		selections[idx] = NoSelection
	}
	return &Session{
		ID:         uuid.NewString(),
		CreatedAt:  time.Now().UTC(),
		questions:  questions,
		selections: selections,
	}
}

func (s *Session) Len() int {
	return len(s.questions)
}

// Questions returns the session's questions in presentation order. Callers
// must treat the slice as read-only.
func (s *Session) Questions() []Question {
	return s.questions
}

func (s *Session) Select(questionIndex, option int) error {
	if questionIndex < 0 || questionIndex >= len(s.questions) {
		return ErrQuestionOutOfRange
	}
	if option < 0 || option >= len(s.questions[questionIndex].Options) {
		return ErrOptionOutOfRange
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.selections[questionIndex] = option
	return nil
}

func (s *Session) Clear(questionIndex int) error {
	if questionIndex < 0 || questionIndex >= len(s.questions) {
		return ErrQuestionOutOfRange
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.selections[questionIndex] = NoSelection
	return nil
}

// Selected reports the option chosen for a question, if any.
func (s *Session) Selected(questionIndex int) (int, bool) {
	if questionIndex < 0 || questionIndex >= len(s.questions) {
		return NoSelection, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	option := s.selections[questionIndex]
	return option, option != NoSelection
}

// Selections reads back every slot; unanswered questions are nil.
func (s *Session) Selections() []*int {
	out := make([]*int, len(s.questions))
	for idx := range s.questions {
		if option, ok := s.Selected(idx); ok {
			out[idx] = &option
		}
	}
	return out
}

// Apply overwrites the session state from a full selection list. Entries past
// the question count are ignored; nil entries clear the slot. Every entry is
// checked before any slot changes, so a rejected list leaves the session as it
// was.
func (s *Session) Apply(selections []*int) error {
	if len(selections) > len(s.questions) {
		selections = selections[:len(s.questions)]
	}
	for idx, selection := range selections {
		if selection != nil && (*selection < 0 || *selection >= len(s.questions[idx].Options)) {
			return ErrOptionOutOfRange
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for idx, selection := range selections {
		if selection == nil {
			s.selections[idx] = NoSelection
			continue
		}
		s.selections[idx] = *selection
	}
	return nil
}
