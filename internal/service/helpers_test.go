package service_test

import (
	"context"
	"io"
	"log/slog"

	"github.com/pkordes/drivetime/internal/domain"
	"github.com/pkordes/drivetime/internal/maps"
	"github.com/pkordes/drivetime/internal/repo"
	"github.com/pkordes/drivetime/internal/service"
)

// mockPlaceFinder is a hand-written test double for service.PlaceFinder.
type mockPlaceFinder struct {
	findPlace func(ctx context.Context, q maps.PlaceQuery) ([]maps.Candidate, error)
	calls     int
}

func (m *mockPlaceFinder) FindPlace(ctx context.Context, q maps.PlaceQuery) ([]maps.Candidate, error) {
	m.calls++
	return m.findPlace(ctx, q)
}

// mockRouteFinder is a hand-written test double for service.RouteFinder.
type mockRouteFinder struct {
	directions func(ctx context.Context, req maps.DirectionsRequest) ([]maps.Route, error)
	calls      int
}

func (m *mockRouteFinder) Directions(ctx context.Context, req maps.DirectionsRequest) ([]maps.Route, error) {
	m.calls++
	return m.directions(ctx, req)
}

// mockOriginRepo is a hand-written test double for repo.OriginRepo, used
// where the in-memory repo cannot produce the failure a test needs.
type mockOriginRepo struct {
	set func(ctx context.Context, userID string, loc domain.LocationRef) error
	get func(ctx context.Context, userID string) (domain.OriginRecord, bool, error)
}

func (m *mockOriginRepo) Set(ctx context.Context, userID string, loc domain.LocationRef) error {
	return m.set(ctx, userID, loc)
}
func (m *mockOriginRepo) Get(ctx context.Context, userID string) (domain.OriginRecord, bool, error) {
	return m.get(ctx, userID)
}

// compile-time checks.
var (
	_ service.PlaceFinder = (*mockPlaceFinder)(nil)
	_ service.RouteFinder = (*mockRouteFinder)(nil)
	_ repo.OriginRepo     = (*mockOriginRepo)(nil)
	_ service.TripPlanner = (*service.Planner)(nil)
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// noPlaces answers every lookup with zero candidates.
func noPlaces() *mockPlaceFinder {
	return &mockPlaceFinder{
		findPlace: func(context.Context, maps.PlaceQuery) ([]maps.Candidate, error) { return nil, nil },
	}
}

// trafficRoute answers every directions call with one leg whose traffic
// duration is the given number of seconds.
func trafficRoute(seconds int) *mockRouteFinder {
	return &mockRouteFinder{
		directions: func(context.Context, maps.DirectionsRequest) ([]maps.Route, error) {
			return []maps.Route{{Legs: []maps.Leg{{
				Duration:  maps.Duration{Seconds: seconds - 60, HasSeconds: true},
				InTraffic: &maps.Duration{Seconds: seconds, HasSeconds: true},
			}}}}, nil
		},
	}
}

// noRoutes answers every directions call with zero routes.
func noRoutes() *mockRouteFinder {
	return &mockRouteFinder{
		directions: func(context.Context, maps.DirectionsRequest) ([]maps.Route, error) { return nil, nil },
	}
}
