package service

import (
	"context"

	"github.com/pkordes/drivetime/internal/domain"
)

// PlaceResolver is satisfied by *Resolver.
type PlaceResolver interface {
	Resolve(ctx context.Context, term string) domain.ResolvedPlace
}

// TripEstimator is satisfied by *Estimator.
type TripEstimator interface {
	Estimate(ctx context.Context, origin, dest domain.LocationRef, label string) domain.TripResult
}

// Planner runs one destination query through resolution and estimation.
type Planner struct {
	places PlaceResolver
	trips  TripEstimator
}

// NewPlanner constructs a Planner.
func NewPlanner(places PlaceResolver, trips TripEstimator) *Planner {
	return &Planner{places: places, trips: trips}
}

// Plan extracts the search term from text, resolves it, and estimates the
// drive from origin. The reply label is always the text as the user typed it.
func (p *Planner) Plan(ctx context.Context, origin domain.LocationRef, text string) domain.TripResult {
	q := domain.NewDestinationQuery(text)
	place := p.places.Resolve(ctx, q.SearchTerm)
	return p.trips.Estimate(ctx, origin, place.Destination, q.Display)
}
