// quiz-import stores the records of a question document as a named bank, so
// later sessions can load it with bank://name.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/phitabs24/concourcm/internal/quiz"
	"github.com/phitabs24/concourcm/internal/quiz/sqlite"
	"github.com/phitabs24/concourcm/internal/source"
)

func main() {
	dbPath := flag.String("db", "quiz.db", "SQLite database path")
	name := flag.String("name", "", "bank name (required)")
	from := flag.String("from", "", "source locator to import: file path, URL or opentdb://")
	list := flag.Bool("list", false, "list stored banks and exit")
	timeout := flag.Duration("timeout", 30*time.Second, "fetch timeout")
	flag.Parse()

	store, err := sqlite.NewSQLiteStore(*dbPath)
	if err != nil {
		log.Fatalf("open sqlite store: %v", err)
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if *list {
		banks, err := store.ListBanks(ctx, 100)
		if err != nil {
			log.Fatalf("list banks: %v", err)
		}
		for _, bank := range banks {
			fmt.Printf("%s\t%d records\t%s\n", bank.Name, bank.RecordCount, bank.CreatedAt.Format(time.RFC3339))
		}
		return
	}

	if *name == "" || *from == "" {
		fmt.Fprintln(os.Stderr, "error: -name and -from are required")
		os.Exit(1)
	}

	mux := source.NewMux(source.Options{HTTPClient: &http.Client{Timeout: *timeout}})
	records, err := mux.Fetch(ctx, *from)
	if err != nil {
		log.Fatalf("fetch %s: %v", *from, err)
	}

	unresolved := 0
	for _, question := range quiz.NormalizeAll(records) {
		if !question.HasAnswer() {
			unresolved++
		}
	}
	if unresolved > 0 {
		log.Printf("warning: %d of %d records have no resolvable answer", unresolved, len(records))
	}

	metadata, err := store.SaveBank(ctx, *name, records)
	if err != nil {
		log.Fatalf("save bank: %v", err)
	}
	log.Printf("stored %d records as bank://%s", metadata.RecordCount, metadata.Name)
}
