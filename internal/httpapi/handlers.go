package httpapi

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/phitabs24/concourcm/internal/auth"
	"github.com/phitabs24/concourcm/internal/quiz"
)

const defaultResultsLimit = 10

func (a *API) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	if a.service == nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "quiz service unavailable"})
		return
	}

	var request createSessionRequest
	if err := decodeOptionalJSON(r, &request); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	count := a.defaultCount
	if request.Count != nil {
		if *request.Count < 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "count must not be negative"})
			return
		}
		count = *request.Count
	}

	sources := trimSources(request.Sources)
	for _, locator := range sources {
		if !a.allowedSource(locator) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "source not allowed: " + locator})
			return
		}
	}
	if len(sources) == 0 {
		sources = a.sources
	}
	if len(sources) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "no question sources configured"})
		return
	}

	session, failures := a.service.StartSession(r.Context(), sources, count)
	writeJSON(w, http.StatusCreated, toSessionResponse(session, quiz.FailureWarnings(failures)))
}

func (a *API) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	if a.service == nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "quiz service unavailable"})
		return
	}

	session, err := a.service.Session(chi.URLParam(r, "session_id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(session, nil))
}

func (a *API) HandleSelect(w http.ResponseWriter, r *http.Request) {
	if a.service == nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "quiz service unavailable"})
		return
	}

	session, err := a.service.Session(chi.URLParam(r, "session_id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "index must be an integer"})
		return
	}

	var request selectRequest
	if err := decodeOptionalJSON(r, &request); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	if request.Option == nil {
		err = session.Clear(index)
	} else {
		err = session.Select(index, *request.Option)
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response := selectResponse{Index: index}
	if option, ok := session.Selected(index); ok {
		response.Selected = &option
	}
	writeJSON(w, http.StatusOK, response)
}

func (a *API) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	if a.service == nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "quiz service unavailable"})
		return
	}

	var request submitRequest
	if err := decodeOptionalJSON(r, &request); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	identity := auth.IdentityFrom(r.Context())
	submission, err := a.service.Submit(r.Context(), chi.URLParam(r, "session_id"), identity, request.Selections)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toSubmitResponse(submission))
}

func (a *API) HandleRecentResults(w http.ResponseWriter, r *http.Request) {
	if a.service == nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "quiz service unavailable"})
		return
	}

	limit, err := parseIntParam(r, "limit", defaultResultsLimit)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	identity := auth.IdentityFrom(r.Context())
	results, err := a.service.RecentResults(r.Context(), identity, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resultsResponse{
		Identity: identity,
		Results:  results,
	})
}

// HandleSaveResult accepts a result scored by a remote capture surface.
func (a *API) HandleSaveResult(w http.ResponseWriter, r *http.Request) {
	if a.service == nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "quiz service unavailable"})
		return
	}

	var result quiz.SubmissionResult
	if err := decodeOptionalJSON(r, &result); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	if err := validateResult(result); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	stored, err := a.service.SaveResult(r.Context(), auth.IdentityFrom(r.Context()), result)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, stored)
}

func toSessionResponse(session *quiz.Session, warnings []string) sessionResponse {
	questions := session.Questions()
	return sessionResponse{
		SessionID:     session.ID,
		CreatedAt:     session.CreatedAt,
		QuestionCount: len(questions),
		Questions:     quiz.ToPublicQuestions(questions),
		Selections:    session.Selections(),
		Warnings:      warnings,
	}
}

// allowedSource limits caller-supplied locators to the configured sources and
// to schemes that never touch the local disk or arbitrary hosts.
func (a *API) allowedSource(locator string) bool {
	if slices.Contains(a.sources, locator) {
		return true
	}
	scheme, _, found := strings.Cut(locator, "://")
	if !found {
		return false
	}
	switch strings.ToLower(scheme) {
	case "bank", "opentdb":
		return true
	}
	return false
}

func trimSources(sources []string) []string {
	out := make([]string, 0, len(sources))
	for _, item := range sources {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
