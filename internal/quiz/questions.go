package quiz

import (
	"strconv"
	"strings"
)

// UnresolvedAnswer marks a question whose correct option could not be determined.
const UnresolvedAnswer = -1

const (
	NoAnswerMarker      = "(no answer)"
	UnknownAnswerMarker = "(unknown)"
)

// Question is the canonical shape every source record is normalized into.
// AnswerIndex is either a valid index into Options or UnresolvedAnswer.
// Number and Year are provenance only and never take part in scoring.
type Question struct {
	ID          string   `json:"id,omitempty"`
	Prompt      string   `json:"prompt"`
	Options     []string `json:"options"`
	AnswerIndex int      `json:"answerIndex"`
	Explanation string   `json:"explanation,omitempty"`
	Number      string   `json:"number,omitempty"`
	Year        string   `json:"year,omitempty"`
}

// PublicQuestion is what a capture surface may show before submission.
type PublicQuestion struct {
	Index   int      `json:"index"`
	Prompt  string   `json:"prompt"`
	Options []Option `json:"options"`
	Number  string   `json:"number,omitempty"`
	Year    string   `json:"year,omitempty"`
}

type Option struct {
	Letter string `json:"letter"`
	Text   string `json:"text"`
}

func (q Question) HasAnswer() bool {
	return q.AnswerIndex >= 0 && q.AnswerIndex < len(q.Options)
}

// OptionText returns the option at index, or "" when index is out of range.
func (q Question) OptionText(index int) string {
	if index < 0 || index >= len(q.Options) {
		return ""
	}
	return q.Options[index]
}

func ToPublicQuestions(questions []Question) []PublicQuestion {
	public := make([]PublicQuestion, 0, len(questions))
	for idx, question := range questions {
		options := make([]Option, len(question.Options))
		for optionIdx, text := range question.Options {
			options[optionIdx] = Option{
				Letter: OptionLetter(optionIdx),
				Text:   text,
			}
		}
		public = append(public, PublicQuestion{
			Index:   idx,
			Prompt:  question.Prompt,
			Options: options,
			Number:  question.Number,
			Year:    question.Year,
		})
	}
	return public
}

// OptionLetter maps 0 -> "A", 1 -> "B" and so on. Indexes past Z fall back to
// their 1-based number.
func OptionLetter(index int) string {
	if index >= 0 && index < 26 {
		return string(rune('A' + index))
	}
	return strconv.Itoa(index + 1)
}

// LetterIndex parses a single answer letter ("b", " C ") into a zero-based
// index. It returns -1 when the input is not exactly one letter A-Z.
func LetterIndex(answer string) int {
	letter := NormalizeLetter(answer)
	if letter == "" {
		return -1
	}
	return int(letter[0] - 'A')
}

func NormalizeLetter(answer string) string {
	letter := strings.ToUpper(strings.TrimSpace(answer))
	if len(letter) != 1 || letter[0] < 'A' || letter[0] > 'Z' {
		return ""
	}
	return letter
}
