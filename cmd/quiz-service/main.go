package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/phitabs24/concourcm/internal/auth"
	"github.com/phitabs24/concourcm/internal/config"
	"github.com/phitabs24/concourcm/internal/httpapi"
	"github.com/phitabs24/concourcm/internal/quiz"
	"github.com/phitabs24/concourcm/internal/quiz/sqlite"
	"github.com/phitabs24/concourcm/internal/source"
)

func main() {
	configPath := flag.String("config", os.Getenv("QUIZ_CONFIG"), "optional YAML config file")
	addr := flag.String("addr", "", "HTTP listen address (overrides config)")
	dbPath := flag.String("db", "", "SQLite database path (overrides config)")
	issueToken := flag.String("issue-token", "", "print a bearer token for this identity and exit")
	tokenTTL := flag.Duration("token-ttl", 24*time.Hour, "lifetime of tokens printed by -issue-token")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *addr != "" {
		cfg.HTTPAddr = *addr
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}

	if strings.TrimSpace(*issueToken) != "" {
		token, err := auth.NewIssuer(cfg.JWTSecret).Issue(*issueToken, *tokenTTL)
		if err != nil {
			log.Fatalf("issue token: %v", err)
		}
		fmt.Println(token)
		return
	}

	store, err := sqlite.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		log.Fatalf("open sqlite store: %v", err)
	}
	defer store.Close()

	fetcher := source.NewMux(source.Options{
		HTTPClient: &http.Client{Timeout: cfg.FetchTimeout},
		BaseDir:    cfg.BaseDir,
		Banks:      store,
	})
	service := quiz.NewService(quiz.NewLoader(fetcher), store, nil)

	var verifier *auth.Verifier
	if cfg.JWTSecret != "" {
		verifier = auth.NewVerifier(cfg.JWTSecret)
	} else {
		log.Printf("warning: JWT_SECRET is not set; every request is anonymous and results are not stored")
	}

	server := &http.Server{
		Addr: cfg.HTTPAddr,
		Handler: httpapi.NewRouter(service, httpapi.Settings{
			Sources:      cfg.Sources,
			DefaultCount: cfg.DefaultCount,
			CORSOrigins:  cfg.CORSOrigins,
			Verifier:     verifier,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Printf("quiz-service listening on %s", cfg.HTTPAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server failed: %v", err)
	}
}
