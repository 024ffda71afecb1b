package quiz

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Normalize converts one raw source record into a Question. Records are the
// values produced by decoding JSON or YAML into `any`.
//
// Resolution order:
//  1. records that are already canonical (prompt, options, answerIndex) pass
//     through unchanged;
//  2. records with an options sequence and a question/prompt string get their
//     answer index resolved from answerIndex, then answer (letter, option
//     text, zero-based number, one-based number);
//  3. anything else degrades to a record whose prompt is the raw value itself.
//
// Normalize never fails. An answer that cannot be resolved is UnresolvedAnswer.
func Normalize(raw any) Question {
	switch value := raw.(type) {
	case Question:
		return value
	case *Question:
		if value != nil {
			return *value
		}
	case map[string]any:
		if question, ok := canonicalQuestion(value); ok {
			return question
		}
		if question, ok := recognizedQuestion(value); ok {
			return question
		}
	}
	return fallbackQuestion(raw)
}

func NormalizeAll(records []any) []Question {
	questions := make([]Question, 0, len(records))
	for _, record := range records {
		questions = append(questions, Normalize(record))
	}
	return questions
}

func canonicalQuestion(record map[string]any) (Question, bool) {
	if _, ok := record["question"]; ok {
		return Question{}, false
	}
	if _, ok := record["answer"]; ok {
		return Question{}, false
	}

	prompt, ok := record["prompt"].(string)
	if !ok {
		return Question{}, false
	}
	options, ok := optionTexts(record["options"])
	if !ok {
		return Question{}, false
	}
	answerIndex, ok := asInt(record["answerIndex"])
	if !ok || answerIndex < UnresolvedAnswer || answerIndex >= len(options) {
		return Question{}, false
	}

	question := Question{
		Prompt:      prompt,
		Options:     options,
		AnswerIndex: answerIndex,
	}
	copyMetadata(&question, record)
	return question, true
}

func recognizedQuestion(record map[string]any) (Question, bool) {
	options, ok := optionTexts(record["options"])
	if !ok {
		return Question{}, false
	}

	prompt, ok := record["question"].(string)
	if alternate, hasAlternate := record["prompt"].(string); !ok || (prompt == "" && hasAlternate) {
		if !hasAlternate {
			return Question{}, false
		}
		prompt = alternate
	}

	question := Question{
		Prompt:      prompt,
		Options:     options,
		AnswerIndex: resolveAnswerIndex(record, options),
	}
	copyMetadata(&question, record)
	return question, true
}

func resolveAnswerIndex(record map[string]any, options []string) int {
	if explicit, ok := asInt(record["answerIndex"]); ok && explicit >= 0 && explicit < len(options) {
		return explicit
	}

	answer, ok := scalarText(record["answer"])
	if !ok {
		return UnresolvedAnswer
	}
	return ResolveAnswer(answer, options)
}

// ResolveAnswer maps a free-form answer key onto an option index.
//
// A single letter wins first ("b", "C."), then an exact option text match,
// then a number. Numbers are read as zero-based when they fit the option list
// and as one-based otherwise, so "0" is the first option and, with three
// options, "3" is the last.
func ResolveAnswer(answer string, options []string) int {
	trimmed := strings.TrimSpace(answer)
	normalized := strings.ToUpper(strings.TrimSuffix(trimmed, "."))

	if len(normalized) == 1 && normalized[0] >= 'A' && normalized[0] <= 'Z' {
		if index := int(normalized[0] - 'A'); index < len(options) {
			return index
		}
	}

	for idx, option := range options {
		if strings.TrimSpace(option) == trimmed {
			return idx
		}
	}

	number, ok := parseWholeNumber(trimmed)
	if !ok {
		return UnresolvedAnswer
	}
	if number >= 0 && number < len(options) {
		return number
	}
	if number > 0 && number <= len(options) {
		return number - 1
	}
	return UnresolvedAnswer
}

func fallbackQuestion(raw any) Question {
	question := Question{
		Prompt:      stringify(raw),
		Options:     []string{},
		AnswerIndex: UnresolvedAnswer,
	}

	if record, ok := raw.(map[string]any); ok {
		if options, ok := optionTexts(record["options"]); ok {
			question.Options = options
		}
		copyMetadata(&question, record)
	}
	return question
}

func copyMetadata(question *Question, record map[string]any) {
	if id, ok := scalarText(record["id"]); ok {
		question.ID = id
	}
	if explanation, ok := scalarText(record["explanation"]); ok {
		question.Explanation = explanation
	}
	if number, ok := scalarText(record["number"]); ok {
		question.Number = number
	}
	if year, ok := scalarText(record["year"]); ok {
		question.Year = year
	}
}

func optionTexts(value any) ([]string, bool) {
	switch items := value.(type) {
	case []string:
		out := make([]string, len(items))
		copy(out, items)
		return out, true
	case []any:
		out := make([]string, 0, len(items))
		for _, item := range items {
			if text, ok := scalarText(item); ok {
				out = append(out, text)
				continue
			}
			out = append(out, stringify(item))
		}
		return out, true
	default:
		return nil, false
	}
}

// scalarText renders strings, numbers and booleans. nil and composite values
// report false.
func scalarText(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case bool:
		return strconv.FormatBool(v), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	case float64:
		if v == math.Trunc(v) && math.Abs(v) < 1e15 {
			return strconv.FormatInt(int64(v), 10), true
		}
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case json.Number:
		return v.String(), true
	default:
		return "", false
	}
}

func asInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case uint64:
		return int(v), true
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return int(v), true
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}

func parseWholeNumber(text string) (int, bool) {
	text = strings.TrimSuffix(text, ".")
	if text == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) || value != math.Trunc(value) {
		return 0, false
	}
	return int(value), true
}

func stringify(raw any) string {
	if text, ok := raw.(string); ok {
		return text
	}
	encoded, err := json.Marshal(raw)
	if err != nil {
		return fmt.Sprintf("%v", raw)
	}
	return string(encoded)
}
