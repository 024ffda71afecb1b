package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/phitabs24/concourcm/internal/quiz"
)

const (
	defaultMaxAttempts = 3
	defaultCount       = 10
)

type Config struct {
	Service     *quiz.Service
	Sources     []string
	Count       int
	Identity    string
	MaxAttempts int
	NoColor     bool
}

// Run plays one quiz on the terminal: questions are loaded through the
// service, answered one letter at a time and submitted when the last question
// has been answered or skipped.
func Run(ctx context.Context, in io.Reader, out io.Writer, cfg Config) error {
	if cfg.Service == nil {
		return errors.New("quiz service is required")
	}
	if len(cfg.Sources) == 0 {
		return errors.New("at least one question source is required")
	}
	count := cfg.Count
	if count <= 0 {
		count = defaultCount
	}
	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}

	session, failures := cfg.Service.StartSession(ctx, cfg.Sources, count)
	for _, failure := range failures {
		fmt.Fprintln(out, warningLine("Skipped source "+failure.Error(), cfg.NoColor))
	}
	if session.Len() == 0 {
		return errors.New("no questions could be loaded")
	}

	reader := bufio.NewReader(in)
	for idx, question := range session.Questions() {
		printQuestion(out, idx+1, question)

		chosenIndex, ok := getAnswer(reader, out, len(question.Options), maxAttempts)
		fmt.Fprintln(out)
		if !ok {
			fmt.Fprintln(out, "Skipped.")
			continue
		}
		if err := session.Select(idx, chosenIndex); err != nil {
			return err
		}
	}

	submission, err := cfg.Service.Submit(ctx, session.ID, cfg.Identity, nil)
	if err != nil {
		return err
	}

	printSummary(out, submission, cfg.NoColor)
	return nil
}

func printQuestion(out io.Writer, number int, question quiz.Question) {
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Q%d: %s\n\n", number, question.Prompt)
	for idx, option := range question.Options {
		fmt.Fprintf(out, "%s. %s\n", quiz.OptionLetter(idx), option)
	}
	fmt.Fprintln(out)
}

// getAnswer reads one letter or option number. A blank line skips the question, and so does
// running out of attempts or input.
func getAnswer(reader *bufio.Reader, out io.Writer, optionCount, maxAttempts int) (int, bool) {
	if optionCount < 1 {
		return quiz.NoSelection, false
	}

	hint := "a letter A-" + quiz.OptionLetter(min(optionCount, 26)-1)
	if optionCount > 26 {
		hint += " or a number 1-" + strconv.Itoa(optionCount)
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		userAnswer, err := reader.ReadString('\n')
		if err != nil && userAnswer == "" {
			return quiz.NoSelection, false
		}
		if strings.TrimSpace(userAnswer) == "" {
			return quiz.NoSelection, false
		}

		if index, ok := answerIndex(userAnswer, optionCount); ok {
			return index, true
		}

		if attempt < maxAttempts {
			fmt.Fprintf(out, "\nInvalid input. Please enter %s.\n", hint)
		}
		if err != nil {
			break
		}
	}

	return quiz.NoSelection, false
}

// answerIndex accepts a letter or the 1-based number shown past Z.
func answerIndex(input string, optionCount int) (int, bool) {
	if index := quiz.LetterIndex(input); index >= 0 && index < optionCount {
		return index, true
	}
	number, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || number < 1 || number > optionCount {
		return quiz.NoSelection, false
	}
	return number - 1, true
}
