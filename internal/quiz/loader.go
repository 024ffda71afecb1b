package quiz

import (
	"context"
	"errors"
	"log"
	"sync"
)

// Fetcher resolves a source locator into raw question records.
type Fetcher interface {
	Fetch(ctx context.Context, locator string) ([]any, error)
}

// FetcherFunc adapts a plain function to Fetcher.
type FetcherFunc func(ctx context.Context, locator string) ([]any, error)

func (f FetcherFunc) Fetch(ctx context.Context, locator string) ([]any, error) {
	return f(ctx, locator)
}

type SourceFailure struct {
	Locator string
	Err     error
}

func (f SourceFailure) Error() string {
	return f.Locator + ": " + f.Err.Error()
}

func (f SourceFailure) Unwrap() error {
	return f.Err
}

type LoadResult struct {
	Questions []Question
	Failures  []SourceFailure
}

// Warnings renders the failures as human-readable lines.
func (r LoadResult) Warnings() []string {
	return FailureWarnings(r.Failures)
}

func FailureWarnings(failures []SourceFailure) []string {
	if len(failures) == 0 {
		return nil
	}
	warnings := make([]string, 0, len(failures))
	for _, failure := range failures {
		warnings = append(warnings, "source "+failure.Error())
	}
	return warnings
}

type Loader struct {
	fetcher Fetcher
	rng     RandomSource
	logger  *log.Logger
}

type LoaderOption func(*Loader)

// WithRandomSource fixes the shuffle source, mainly for reproducible tests.
func WithRandomSource(src RandomSource) LoaderOption {
	return func(l *Loader) { l.rng = src }
}

func WithLogger(logger *log.Logger) LoaderOption {
	return func(l *Loader) { l.logger = logger }
}

func NewLoader(fetcher Fetcher, opts ...LoaderOption) *Loader {
	loader := &Loader{
		fetcher: fetcher,
		logger:  log.Default(),
	}
	for _, opt := range opts {
		opt(loader)
	}
	return loader
}

var errNoFetcher = errors.New("question fetcher is not configured")

// Load fetches every locator concurrently and waits for all of them to
// settle. Failed sources are reported in LoadResult.Failures and never abort
// the load; the records of the remaining sources are normalized, shuffled
// once and truncated to limit when limit is positive.
func (l *Loader) Load(ctx context.Context, locators []string, limit int) LoadResult {
	type outcome struct {
		records []any
		err     error
	}

	outcomes := make([]outcome, len(locators))
	var wg sync.WaitGroup
	for idx, locator := range locators {
		wg.Add(1)
		go func(idx int, locator string) {
			defer wg.Done()
			if l.fetcher == nil {
				outcomes[idx] = outcome{err: errNoFetcher}
				return
			}
			records, err := l.fetcher.Fetch(ctx, locator)
			outcomes[idx] = outcome{records: records, err: err}
		}(idx, locator)
	}
	wg.Wait()

	result := LoadResult{Questions: make([]Question, 0)}
	for idx, item := range outcomes {
		if item.err != nil {
			failure := SourceFailure{Locator: locators[idx], Err: item.err}
			if l.logger != nil {
				l.logger.Printf("warning: skipping question source %s", failure.Error())
			}
			result.Failures = append(result.Failures, failure)
			continue
		}
		for _, record := range item.records {
			result.Questions = append(result.Questions, Normalize(record))
		}
	}

	Shuffle(result.Questions, l.rng)

	if limit > 0 && limit < len(result.Questions) {
		result.Questions = result.Questions[:limit]
	}
	return result
}
