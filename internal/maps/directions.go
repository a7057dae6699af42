package maps

import (
	"context"
	"fmt"
	"net/url"

	"github.com/tidwall/gjson"

	"github.com/pkordes/drivetime/internal/domain"
)

const directionsPath = "/maps/api/directions/json"

// DirectionsRequest is one Directions request. Origin and Destination are
// anything the API accepts: "lat,lng", free text, or "place_id:<id>".
type DirectionsRequest struct {
	Origin       string
	Destination  string
	Mode         string
	DepartureNow bool
	Language     string
	Region       string
}

// Duration is a leg duration. HasSeconds is false when the provider sent
// only the localized text.
type Duration struct {
	Seconds    int
	HasSeconds bool
	Text       string
}

// Leg is one leg of a route. InTraffic is nil unless the request asked for
// a departure time and the provider had traffic data.
type Leg struct {
	Duration  Duration
	InTraffic *Duration
}

// Route is one candidate route.
type Route struct {
	Summary string
	Legs    []Leg
}

// Directions returns routes in provider order. ZERO_RESULTS and NOT_FOUND
// (an endpoint could not be geocoded) yield an empty slice and a nil error.
// A route whose legs carry no duration at all is a malformed response.
func (c *Client) Directions(ctx context.Context, req DirectionsRequest) ([]Route, error) {
	params := url.Values{}
	params.Set("origin", req.Origin)
	params.Set("destination", req.Destination)
	if req.Mode != "" {
		params.Set("mode", req.Mode)
	}
	if req.DepartureNow {
		params.Set("departure_time", "now")
	}
	if req.Language != "" {
		params.Set("language", req.Language)
	}
	if req.Region != "" {
		params.Set("region", req.Region)
	}

	doc, status, err := c.get(ctx, directionsPath, params)
	if err != nil {
		return nil, err
	}

	switch status {
	case "OK":
	case "ZERO_RESULTS", "NOT_FOUND":
		return nil, nil
	default:
		return nil, apiError(directionsPath, status, doc)
	}

	var routes []Route
	for i, r := range doc.Get("routes").Array() {
		route := Route{Summary: r.Get("summary").String()}
		legs := r.Get("legs").Array()
		if len(legs) == 0 {
			return nil, fmt.Errorf("%w: routes[%d] has no legs", domain.ErrProvider, i)
		}
		for j, l := range legs {
			d, ok := parseDuration(l.Get("duration"))
			if !ok {
				return nil, fmt.Errorf("%w: routes[%d].legs[%d] has no duration", domain.ErrProvider, i, j)
			}
			leg := Leg{Duration: d}
			if t, ok := parseDuration(l.Get("duration_in_traffic")); ok {
				leg.InTraffic = &t
			}
			route.Legs = append(route.Legs, leg)
		}
		routes = append(routes, route)
	}
	return routes, nil
}

// parseDuration reads a {"value": seconds, "text": "..."} object. It fails
// only when neither field is usable.
func parseDuration(r gjson.Result) (Duration, bool) {
	if !r.Exists() {
		return Duration{}, false
	}
	d := Duration{Text: r.Get("text").String()}
	if v := r.Get("value"); v.Type == gjson.Number {
		d.Seconds = int(v.Int())
		d.HasSeconds = true
	}
	if !d.HasSeconds && d.Text == "" {
		return Duration{}, false
	}
	return d, true
}
