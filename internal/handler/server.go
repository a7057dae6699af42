// Package handler implements the HTTP surface of the drive-time assistant.
// All handlers are methods on Server and are split into files by route
// (health.go, callback.go, estimate.go, openapi.go); they share the same
// Server struct so they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/pkordes/drivetime/internal/domain"
)

// EventRouter applies one chat event and returns the replies to send.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching the store or the providers.
type EventRouter interface {
	Handle(ctx context.Context, ev domain.Event) []domain.Reply
}

// Replier delivers replies for one event.
type Replier interface {
	Reply(ctx context.Context, replyToken string, replies []domain.Reply) error
}

// TripPlanner estimates a drive from an origin to a typed destination.
type TripPlanner interface {
	Plan(ctx context.Context, origin domain.LocationRef, text string) domain.TripResult
}

// Server holds the dependencies of every route.
type Server struct {
	events        EventRouter
	replies       Replier
	trips         TripPlanner
	presets       domain.Presets
	channelSecret string
	eventTimeout  time.Duration
	validate      *validator.Validate
	log           *slog.Logger
}

// Deps groups the Server's collaborators.
type Deps struct {
	Events        EventRouter
	Replies       Replier
	Trips         TripPlanner
	Presets       domain.Presets
	ChannelSecret string
	// EventTimeout, when positive, is the write budget granted to each
	// webhook event. The deadline is pushed forward before every event so a
	// batched webhook is not cut off by the server's WriteTimeout.
	EventTimeout time.Duration
	Log          *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(d Deps) *Server {
	log := d.Log
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		events:        d.Events,
		replies:       d.Replies,
		trips:         d.Trips,
		presets:       d.Presets,
		channelSecret: d.ChannelSecret,
		eventTimeout:  d.EventTimeout,
		validate:      validator.New(),
		log:           log,
	}
}

// Mount registers every route on r. apiMiddleware applies only to the
// browser-facing /api group (CORS in production).
func (s *Server) Mount(r chi.Router, apiMiddleware ...func(http.Handler) http.Handler) {
	r.Get("/", s.GetRoot)
	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)
	r.Post("/callback", s.PostCallback)

	r.Route("/api", func(r chi.Router) {
		r.Use(apiMiddleware...)
		r.Post("/estimate", s.PostEstimate)
		r.Options("/estimate", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})
	})
}
