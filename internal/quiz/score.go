package quiz

// Detail records one question's outcome. Selected is nil when the question
// was left unanswered.
type Detail struct {
	Index    int  `json:"index"`
	Selected *int `json:"selected"`
	Correct  int  `json:"correct"`
}

func (d Detail) IsCorrect() bool {
	return d.Selected != nil && *d.Selected == d.Correct
}

type SubmissionResult struct {
	Total   int      `json:"total"`
	Correct int      `json:"correct"`
	Details []Detail `json:"details"`
}

// ReviewEntry explains one missed question.
type ReviewEntry struct {
	Index       int    `json:"index"`
	Prompt      string `json:"prompt"`
	Selected    string `json:"selected"`
	Correct     string `json:"correct"`
	Explanation string `json:"explanation,omitempty"`
}

// Score compares every question's selection with its answer index. Missing
// selections count as unanswered, and a question with an unresolved answer can
// never be scored correct.
func Score(questions []Question, selections []*int) SubmissionResult {
	result := SubmissionResult{
		Total:   len(questions),
		Details: make([]Detail, 0, len(questions)),
	}

	for idx, question := range questions {
		var selected *int
		if idx < len(selections) && selections[idx] != nil {
			value := *selections[idx]
			selected = &value
		}

		detail := Detail{
			Index:    idx,
			Selected: selected,
			Correct:  question.AnswerIndex,
		}
		if detail.IsCorrect() {
			result.Correct++
		}
		result.Details = append(result.Details, detail)
	}

	return result
}

// BuildReview lists the missed questions in their original order.
func BuildReview(questions []Question, result SubmissionResult) []ReviewEntry {
	review := make([]ReviewEntry, 0, len(result.Details)-result.Correct)
	for _, detail := range result.Details {
		if detail.IsCorrect() || detail.Index < 0 || detail.Index >= len(questions) {
			continue
		}
		question := questions[detail.Index]

		selected := NoAnswerMarker
		if detail.Selected != nil {
			selected = question.OptionText(*detail.Selected)
		}
		correct := UnknownAnswerMarker
		if question.HasAnswer() {
			correct = question.OptionText(question.AnswerIndex)
		}

		review = append(review, ReviewEntry{
			Index:       detail.Index,
			Prompt:      question.Prompt,
			Selected:    selected,
			Correct:     correct,
			Explanation: question.Explanation,
		})
	}
	return review
}
