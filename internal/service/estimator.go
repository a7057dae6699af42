package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pkordes/drivetime/internal/domain"
	"github.com/pkordes/drivetime/internal/maps"
)

// RouteFinder is the directions lookup the Estimator depends on.
// *maps.Client satisfies it.
type RouteFinder interface {
	Directions(ctx context.Context, req maps.DirectionsRequest) ([]maps.Route, error)
}

// EstimatorConfig tunes an Estimator.
type EstimatorConfig struct {
	Language string
	Region   string
	// Banner is the branding line of the reply. Empty means domain.DefaultBanner.
	Banner string
	// Timeout bounds one lookup. Zero means 5s.
	Timeout    time.Duration
	LinkPolicy LinkPolicy
}

// Estimator computes a traffic-aware drive time and a navigation link.
type Estimator struct {
	routes RouteFinder
	cfg    EstimatorConfig
	log    *slog.Logger
}

// NewEstimator constructs an Estimator.
func NewEstimator(routes RouteFinder, cfg EstimatorConfig, log *slog.Logger) *Estimator {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.Banner == "" {
		cfg.Banner = domain.DefaultBanner
	}
	return &Estimator{routes: routes, cfg: cfg, log: log}
}

// Estimate asks for a driving route departing now and returns the buffered
// minute count with a navigation link, or a failure. It never returns an
// error: no route becomes FailureNoRoute, anything else FailureProvider.
//
// Duration policy: first route, first leg; traffic duration when present,
// nominal otherwise; minutes rounded down, then domain.SafetyBufferMinutes
// added.
func (e *Estimator) Estimate(ctx context.Context, origin, dest domain.LocationRef, label string) domain.TripResult {
	ctx, cancel := context.WithTimeout(ctx, e.cfg.Timeout)
	defer cancel()

	routes, err := e.routes.Directions(ctx, maps.DirectionsRequest{
		Origin:       origin.String(),
		Destination:  dest.String(),
		Mode:         "driving",
		DepartureNow: true,
		Language:     e.cfg.Language,
		Region:       e.cfg.Region,
	})
	if err != nil {
		e.log.WarnContext(ctx, "directions lookup failed", "destination", dest.String(), "error", err)
		return e.failure(label, err)
	}
	if len(routes) == 0 {
		return domain.TripResult{Label: label, Failure: domain.FailureNoRoute, Reason: domain.NoRouteText}
	}
	if len(routes[0].Legs) == 0 {
		err := fmt.Errorf("%w: route has no legs", domain.ErrProvider)
		e.log.WarnContext(ctx, "directions route malformed", "destination", dest.String(), "error", err)
		return e.failure(label, err)
	}

	leg := routes[0].Legs[0]
	d := leg.Duration
	if leg.InTraffic != nil {
		d = *leg.InTraffic
	}
	minutes, err := minutesOf(d)
	if err != nil {
		e.log.WarnContext(ctx, "directions duration unreadable", "text", d.Text, "error", err)
		return e.failure(label, err)
	}

	return domain.TripResult{
		Label:   label,
		Banner:  e.cfg.Banner,
		Minutes: minutes + domain.SafetyBufferMinutes,
		Link:    NavigationLink(dest, e.cfg.LinkPolicy),
	}
}

// failure maps any lookup error to FailureProvider with a short reason the
// user can read: "timeout", the provider's status such as "REQUEST_DENIED",
// or "provider error". The full error is logged by the caller.
func (e *Estimator) failure(label string, err error) domain.TripResult {
	reason := domain.ErrProvider.Error()
	var apiErr *maps.APIError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		reason = "timeout"
	case errors.As(err, &apiErr):
		reason = apiErr.Status
	}
	return domain.TripResult{Label: label, Failure: domain.FailureProvider, Reason: reason}
}
