package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/phitabs24/concourcm/internal/quiz"
)

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, quiz.ErrSessionNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "session not found"})
	case errors.Is(err, quiz.ErrInvalidIdentity):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "a bearer token is required to read or store results"})
	case errors.Is(err, quiz.ErrQuestionOutOfRange), errors.Is(err, quiz.ErrOptionOutOfRange):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "request failed"})
	}
}

func toSubmitResponse(submission quiz.Submission) submitResponse {
	response := submitResponse{
		SessionID: submission.SessionID,
		Total:     submission.Result.Total,
		Correct:   submission.Result.Correct,
		Details:   submission.Result.Details,
		Review:    submission.Review,
		Persisted: submission.Persisted,
		Warnings:  submission.Warnings,
	}
	if submission.Stored != nil {
		completedAt := submission.Stored.CompletedAt
		response.ResultID = submission.Stored.ID
		response.CompletedAt = &completedAt
	}
	return response
}

// validateResult checks the invariants of an externally computed result.
func validateResult(result quiz.SubmissionResult) error {
	if result.Total != len(result.Details) {
		return errors.New("total must equal the number of details")
	}
	correct := 0
	for idx, detail := range result.Details {
		if detail.Index != idx {
			return errors.New("details must be ordered by question index")
		}
		if detail.IsCorrect() {
			correct++
		}
	}
	if correct != result.Correct {
		return errors.New("correct does not match details")
	}
	return nil
}

// decodeOptionalJSON decodes a JSON body into dst, treating an empty body as
// "no fields set".
func decodeOptionalJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func parseIntParam(r *http.Request, key string, defaultValue int) (int, error) {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return 0, errors.New(key + " must be a positive integer")
	}
	return parsed, nil
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}
