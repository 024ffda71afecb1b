package httpapi

import (
	"time"

	"github.com/phitabs24/concourcm/internal/quiz"
)

type createSessionRequest struct {
	Sources []string `json:"sources,omitempty"`
	Count   *int     `json:"count,omitempty"`
}

type sessionResponse struct {
	SessionID     string                `json:"session_id"`
	CreatedAt     time.Time             `json:"created_at"`
	QuestionCount int                   `json:"question_count"`
	Questions     []quiz.PublicQuestion `json:"questions"`
	Selections    []*int                `json:"selections"`
	Warnings      []string              `json:"warnings,omitempty"`
}

type selectRequest struct {
	Option *int `json:"option"`
}

type selectResponse struct {
	Index    int  `json:"index"`
	Selected *int `json:"selected"`
}

type submitRequest struct {
	Selections []*int `json:"selections,omitempty"`
}

type submitResponse struct {
	SessionID   string             `json:"session_id"`
	Total       int                `json:"total"`
	Correct     int                `json:"correct"`
	Details     []quiz.Detail      `json:"details"`
	Review      []quiz.ReviewEntry `json:"review"`
	Persisted   bool               `json:"persisted"`
	ResultID    string             `json:"result_id,omitempty"`
	CompletedAt *time.Time         `json:"completed_at,omitempty"`
	Warnings    []string           `json:"warnings,omitempty"`
}

type resultsResponse struct {
	Identity string              `json:"identity"`
	Results  []quiz.StoredResult `json:"results"`
}

type errorResponse struct {
	Error string `json:"error"`
}
