package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/phitabs24/concourcm/internal/opentdb"
	"github.com/phitabs24/concourcm/internal/quiz"
)

var ErrUnsupportedLocator = errors.New("unsupported source locator")

// Mux routes a locator to the fetcher for its scheme:
//
//	http://, https://   HTTPFetcher
//	file://, bare path  FileFetcher
//	opentdb://?amount=N OpenTriviaDB
//	bank://name         a bank stored through quiz.BankRepository
type Mux struct {
	HTTP    quiz.Fetcher
	File    quiz.Fetcher
	OpenTDB quiz.Fetcher
	Bank    quiz.Fetcher
}

type Options struct {
	HTTPClient *http.Client
	BaseDir    string
	Banks      quiz.BankRepository
	Random     quiz.RandomSource
}

func NewMux(opts Options) *Mux {
	mux := &Mux{
		HTTP:    NewHTTPFetcher(opts.HTTPClient),
		File:    NewFileFetcher(opts.BaseDir),
		OpenTDB: NewOpenTDBFetcher(opentdb.NewClient(opts.HTTPClient), opts.Random),
	}
	if opts.Banks != nil {
		mux.Bank = NewBankFetcher(opts.Banks)
	}
	return mux
}

func (m *Mux) Fetch(ctx context.Context, locator string) ([]any, error) {
	locator = strings.TrimSpace(locator)
	if locator == "" {
		return nil, fmt.Errorf("%w: empty locator", ErrUnsupportedLocator)
	}

	var fetcher quiz.Fetcher
	switch scheme := schemeOf(locator); scheme {
	case "http", "https":
		fetcher = m.HTTP
	case "", "file":
		fetcher = m.File
	case "opentdb":
		fetcher = m.OpenTDB
	case "bank":
		fetcher = m.Bank
	default:
		return nil, fmt.Errorf("%w: scheme %q", ErrUnsupportedLocator, scheme)
	}
	if fetcher == nil {
		return nil, fmt.Errorf("%w: %s is not configured", ErrUnsupportedLocator, locator)
	}
	return fetcher.Fetch(ctx, locator)
}

func schemeOf(locator string) string {
	scheme, _, found := strings.Cut(locator, "://")
	if !found {
		return ""
	}
	return strings.ToLower(scheme)
}

// OpenTDBFetcher reads locators like opentdb://?amount=20&category=9.
type OpenTDBFetcher struct {
	client *opentdb.Client
	rng    quiz.RandomSource
}

func NewOpenTDBFetcher(client *opentdb.Client, rng quiz.RandomSource) *OpenTDBFetcher {
	return &OpenTDBFetcher{client: client, rng: rng}
}

func (f *OpenTDBFetcher) Fetch(ctx context.Context, locator string) ([]any, error) {
	parsed, err := url.Parse(locator)
	if err != nil {
		return nil, err
	}

	query := parsed.Query()
	amount := 0
	if raw := query.Get("amount"); raw != "" {
		amount, err = strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("opentdb amount must be an integer: %w", err)
		}
	}
	query.Del("amount")

	raw, err := f.client.FetchQuestions(ctx, amount, query)
	if err != nil {
		return nil, err
	}
	return opentdb.ToRecords(raw, f.rng), nil
}

// BankFetcher reads locators like bank://biology.
type BankFetcher struct {
	banks quiz.BankRepository
}

func NewBankFetcher(banks quiz.BankRepository) *BankFetcher {
	return &BankFetcher{banks: banks}
}

func (f *BankFetcher) Fetch(ctx context.Context, locator string) ([]any, error) {
	name := strings.Trim(strings.TrimPrefix(locator, "bank://"), "/")
	if name == "" {
		return nil, fmt.Errorf("%w: bank name is required", ErrUnsupportedLocator)
	}
	return f.banks.BankRecords(ctx, name)
}
