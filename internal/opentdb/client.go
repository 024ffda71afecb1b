package opentdb

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"strconv"

	"github.com/phitabs24/concourcm/internal/quiz"
)

const (
	apiURL        = "https://opentdb.com/api.php"
	defaultAmount = 10
)

// RawQuestion mirrors the OpenTriviaDB question payload.
type RawQuestion struct {
	Type             string   `json:"type"`
	Difficulty       string   `json:"difficulty"`
	Category         string   `json:"category"`
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

type apiResponse struct {
	ResponseCode int           `json:"response_code"`
	Results      []RawQuestion `json:"results"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    apiURL,
		httpClient: httpClient,
	}
}

// FetchQuestions asks for amount questions. Extra query parameters such as
// category or difficulty are passed through unchanged.
func (c *Client) FetchQuestions(ctx context.Context, amount int, extra ...url.Values) ([]RawQuestion, error) {
	if amount <= 0 {
		amount = defaultAmount
	}

	query := url.Values{}
	for _, values := range extra {
		for key, items := range values {
			for _, item := range items {
				query.Add(key, item)
			}
		}
	}
	query.Set("amount", strconv.Itoa(amount))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("opentdb returned status %d", resp.StatusCode)
	}

	var payload apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	if payload.ResponseCode != 0 {
		return nil, fmt.Errorf("opentdb response_code=%d", payload.ResponseCode)
	}

	return payload.Results, nil
}

// ToRecords converts OpenTriviaDB questions into loosely typed records with an
// options list, the correct option's position and its text. Options are
// shuffled with src so the correct answer does not always sit last.
func ToRecords(raw []RawQuestion, src quiz.RandomSource) []any {
	records := make([]any, 0, len(raw))
	for _, item := range raw {
		type choice struct {
			text      string
			isCorrect bool
		}

		choices := make([]choice, 0, len(item.IncorrectAnswers)+1)
		for _, incorrect := range item.IncorrectAnswers {
			choices = append(choices, choice{text: html.UnescapeString(incorrect)})
		}
		choices = append(choices, choice{text: html.UnescapeString(item.CorrectAnswer), isCorrect: true})
		quiz.Shuffle(choices, src)

		options := make([]any, len(choices))
		answerIndex := quiz.UnresolvedAnswer
		for idx, candidate := range choices {
			options[idx] = candidate.text
			if candidate.isCorrect {
				answerIndex = idx
			}
		}

		records = append(records, map[string]any{
			"question":    html.UnescapeString(item.Question),
			"options":     options,
			"answerIndex": answerIndex,
			"answer":      html.UnescapeString(item.CorrectAnswer),
			"category":    html.UnescapeString(item.Category),
			"difficulty":  item.Difficulty,
		})
	}
	return records
}
