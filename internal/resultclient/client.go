package resultclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/phitabs24/concourcm/internal/quiz"
)

var ErrServiceUnavailable = errors.New("quiz service unavailable")

type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if strings.TrimSpace(e.Message) == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return e.Message
}

// Client stores and reads results through a remote quiz service. The service
// takes the identity from the bearer token, so the identity arguments only
// guard against sending anonymous requests.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

type resultsResponse struct {
	Identity string              `json:"identity"`
	Results  []quiz.StoredResult `json:"results"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func NewClient(baseURL, token string, httpClient *http.Client) *Client {
	baseURL = strings.TrimSpace(baseURL)
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		baseURL = "http://127.0.0.1:8080"
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL:    baseURL,
		token:      strings.TrimSpace(token),
		httpClient: httpClient,
	}
}

func (c *Client) SaveResult(ctx context.Context, identity string, result quiz.SubmissionResult) (quiz.StoredResult, error) {
	if strings.TrimSpace(identity) == "" || c.token == "" {
		return quiz.StoredResult{}, quiz.ErrInvalidIdentity
	}

	var stored quiz.StoredResult
	if err := c.doJSON(ctx, http.MethodPost, "/results", result, &stored); err != nil {
		return quiz.StoredResult{}, err
	}
	return stored, nil
}

func (c *Client) RecentResults(ctx context.Context, identity string, limit int) ([]quiz.StoredResult, error) {
	if strings.TrimSpace(identity) == "" || c.token == "" {
		return nil, quiz.ErrInvalidIdentity
	}
	if limit <= 0 {
		limit = 10
	}

	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))

	var payload resultsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/results?"+query.Encode(), nil, &payload); err != nil {
		return nil, err
	}
	if payload.Results == nil {
		payload.Results = []quiz.StoredResult{}
	}
	return payload.Results, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, requestBody any, responseBody any) error {
	fullURL := c.baseURL + path

	var body io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return err
		}
		body = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return err
	}
	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		request.Header.Set("Authorization", "Bearer "+c.token)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer response.Body.Close()

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		apiErr := APIError{StatusCode: response.StatusCode}
		var payload errorResponse
		if err := json.NewDecoder(response.Body).Decode(&payload); err == nil && strings.TrimSpace(payload.Error) != "" {
			apiErr.Message = payload.Error
		}
		if apiErr.Message == "" {
			apiErr.Message = response.Status
		}
		if response.StatusCode == http.StatusUnauthorized {
			return fmt.Errorf("%w: %s", quiz.ErrInvalidIdentity, apiErr.Message)
		}
		return &apiErr
	}

	if responseBody == nil {
		return nil
	}
	return json.NewDecoder(response.Body).Decode(responseBody)
}
