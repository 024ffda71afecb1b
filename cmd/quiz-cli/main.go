package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/phitabs24/concourcm/internal/auth"
	"github.com/phitabs24/concourcm/internal/cli"
	"github.com/phitabs24/concourcm/internal/config"
	"github.com/phitabs24/concourcm/internal/quiz"
	"github.com/phitabs24/concourcm/internal/quiz/sqlite"
	"github.com/phitabs24/concourcm/internal/resultclient"
	"github.com/phitabs24/concourcm/internal/source"
)

func main() {
	env := config.FromEnv()

	sources := flag.String("sources", strings.Join(env.Sources, ","), "comma-separated question sources (file paths, URLs, opentdb://, bank://)")
	count := flag.Int("count", env.DefaultCount, "number of questions to ask")
	dbPath := flag.String("db", "", "store results in this SQLite database as -identity")
	identity := flag.String("identity", "", "identity recorded with results in -db")
	server := flag.String("server", "", "store results on this quiz service instead of a local database")
	token := flag.String("token", os.Getenv("QUIZ_TOKEN"), "bearer token for -server")
	timeout := flag.Duration("timeout", env.FetchTimeout, "HTTP timeout")
	noColor := flag.Bool("no-color", false, "disable colored output")
	flag.Parse()

	if err := run(*sources, *count, *dbPath, *identity, *server, *token, *timeout, *noColor); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(sources string, count int, dbPath, identity, server, token string, timeout time.Duration, noColor bool) error {
	httpClient := &http.Client{Timeout: timeout}
	options := source.Options{HTTPClient: httpClient, BaseDir: config.FromEnv().BaseDir}

	var results quiz.ResultStore
	switch {
	case strings.TrimSpace(server) != "":
		results = resultclient.NewClient(server, token, httpClient)
		if subject, err := auth.UnverifiedSubject(token); err == nil {
			identity = subject
		}
	case strings.TrimSpace(dbPath) != "":
		store, err := sqlite.NewSQLiteStore(dbPath)
		if err != nil {
			return err
		}
		defer store.Close()
		results = store
		options.Banks = store
	}

	var locators []string
	for _, locator := range strings.Split(sources, ",") {
		if locator = strings.TrimSpace(locator); locator != "" {
			locators = append(locators, locator)
		}
	}

	service := quiz.NewService(quiz.NewLoader(source.NewMux(options)), results, nil)
	return cli.Run(context.Background(), os.Stdin, os.Stdout, cli.Config{
		Service:  service,
		Sources:  locators,
		Count:    count,
		Identity: identity,
		NoColor:  noColor,
	})
}
