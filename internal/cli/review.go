package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/phitabs24/concourcm/internal/quiz"
)

func printSummary(out io.Writer, submission quiz.Submission, noColor bool) {
	result := submission.Result
	fmt.Fprintln(out)
	fmt.Fprintln(out, stylize(fmt.Sprintf("Final score: %d/%d", result.Correct, result.Total), noColor, scoreColor(result)))

	if len(submission.Review) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, stylize("Review", noColor, lipgloss.Color("33")))
		for _, entry := range submission.Review {
			printReviewEntry(out, entry, noColor)
		}
	}

	for _, warning := range submission.Warnings {
		fmt.Fprintln(out, warningLine(warning, noColor))
	}
}

func printReviewEntry(out io.Writer, entry quiz.ReviewEntry, noColor bool) {
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Q%d: %s\n", entry.Index+1, entry.Prompt)
	fmt.Fprintf(out, "  Your answer:    %s\n", stylize(entry.Selected, noColor, lipgloss.Color("196")))
	fmt.Fprintf(out, "  Correct answer: %s\n", stylize(entry.Correct, noColor, lipgloss.Color("42")))
	if entry.Explanation != "" {
		fmt.Fprintf(out, "  %s\n", stylize(entry.Explanation, noColor, lipgloss.Color("244")))
	}
}

func warningLine(text string, noColor bool) string {
	return stylize("warning: "+text, noColor, lipgloss.Color("220"))
}

func scoreColor(result quiz.SubmissionResult) lipgloss.Color {
	switch {
	case result.Total > 0 && result.Correct == result.Total:
		return lipgloss.Color("42")
	case result.Correct*2 >= result.Total:
		return lipgloss.Color("220")
	default:
		return lipgloss.Color("196")
	}
}

func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
