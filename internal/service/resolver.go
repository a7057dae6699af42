// Package service holds the trip-resolution pipeline: place resolution,
// drive-time estimation, and the per-user conversation state machine.
// Provider failures never escape this package as errors; they come back as
// fallback places or failed TripResults.
package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/pkordes/drivetime/internal/domain"
	"github.com/pkordes/drivetime/internal/maps"
)

// PlaceFinder is the place lookup the Resolver depends on.
// *maps.Client satisfies it.
type PlaceFinder interface {
	FindPlace(ctx context.Context, q maps.PlaceQuery) ([]maps.Candidate, error)
}

// ResolverConfig tunes a Resolver.
type ResolverConfig struct {
	// Language is the provider locale, e.g. "zh-TW".
	Language string
	// Bias, when set, prefers candidates near the deployment area.
	Bias *maps.Circle
	// Timeout bounds one lookup. Zero means 5s.
	Timeout time.Duration
	// CacheTTL is how long a successful resolution is reused.
	// Zero disables the cache.
	CacheTTL time.Duration
}

// Resolver turns a search term into a destination.
type Resolver struct {
	places PlaceFinder
	cfg    ResolverConfig
	cache  *cache.Cache
	log    *slog.Logger
}

// NewResolver constructs a Resolver.
func NewResolver(places PlaceFinder, cfg ResolverConfig, log *slog.Logger) *Resolver {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	r := &Resolver{places: places, cfg: cfg, log: log}
	if cfg.CacheTTL > 0 {
		r.cache = cache.New(cfg.CacheTTL, 2*cfg.CacheTTL)
	}
	return r
}

// Resolve looks the term up and returns the first candidate. A miss, an
// error, a timeout or an empty term all return domain.FallbackPlace(term),
// which hands the raw text to the directions lookup unchanged.
// Fallbacks are not cached, so a transient provider failure is not remembered.
func (r *Resolver) Resolve(ctx context.Context, term string) domain.ResolvedPlace {
	if strings.TrimSpace(term) == "" {
		return domain.FallbackPlace(term)
	}

	key := r.cfg.Language + "|" + term
	if r.cache != nil {
		if v, ok := r.cache.Get(key); ok {
			return v.(domain.ResolvedPlace)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()

	candidates, err := r.places.FindPlace(ctx, maps.PlaceQuery{
		Input:    term,
		Language: r.cfg.Language,
		Bias:     r.cfg.Bias,
	})
	if err != nil {
		r.log.WarnContext(ctx, "place lookup failed, using raw text", "term", term, "error", err)
		return domain.FallbackPlace(term)
	}
	if len(candidates) == 0 {
		r.log.DebugContext(ctx, "place lookup found nothing, using raw text", "term", term)
		return domain.FallbackPlace(term)
	}

	place, ok := fromCandidate(candidates[0])
	if !ok {
		return domain.FallbackPlace(term)
	}
	if place.Label == "" {
		place.Label = term
	}
	if r.cache != nil {
		r.cache.SetDefault(key, place)
	}
	return place
}

// fromCandidate prefers the place identifier, then coordinates. A candidate
// with neither is unusable.
func fromCandidate(c maps.Candidate) (domain.ResolvedPlace, bool) {
	label := c.Name
	if label == "" {
		label = c.FormattedAddress
	}

	switch {
	case c.PlaceID != "":
		text := c.FormattedAddress
		if text == "" {
			text = c.Name
		}
		return domain.ResolvedPlace{
			Destination: domain.PlaceRef(c.PlaceID, text, c.Lat, c.Lng),
			Label:       label,
		}, true
	case c.Lat != 0 || c.Lng != 0:
		return domain.ResolvedPlace{
			Destination: domain.Coordinates(c.Lat, c.Lng),
			Label:       label,
		}, true
	default:
		return domain.ResolvedPlace{}, false
	}
}
