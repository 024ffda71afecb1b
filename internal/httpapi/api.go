package httpapi

import (
	"log"

	"github.com/phitabs24/concourcm/internal/auth"
	"github.com/phitabs24/concourcm/internal/quiz"
)

// Settings carries the request-independent knobs of the HTTP surface.
type Settings struct {
	Sources      []string
	DefaultCount int
	CORSOrigins  []string
	Verifier     *auth.Verifier
	Logger       *log.Logger
}

type API struct {
	service      *quiz.Service
	sources      []string
	defaultCount int
}

func NewAPI(service *quiz.Service, settings Settings) *API {
	return &API{
		service:      service,
		sources:      settings.Sources,
		defaultCount: settings.DefaultCount,
	}
}
