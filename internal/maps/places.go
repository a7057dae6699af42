package maps

import (
	"context"
	"fmt"
	"net/url"
)

const findPlacePath = "/maps/api/place/findplacefromtext/json"

// Circle biases a place search toward matches inside it.
type Circle struct {
	Lat          float64
	Lng          float64
	RadiusMeters int
}

// PlaceQuery is one Find Place request.
type PlaceQuery struct {
	Input    string
	Language string
	Bias     *Circle
}

// Candidate is one Find Place match.
type Candidate struct {
	PlaceID          string
	Name             string
	FormattedAddress string
	Lat              float64
	Lng              float64
}

// FindPlace returns candidates in provider order. ZERO_RESULTS yields an
// empty slice and a nil error.
func (c *Client) FindPlace(ctx context.Context, q PlaceQuery) ([]Candidate, error) {
	params := url.Values{}
	params.Set("input", q.Input)
	params.Set("inputtype", "textquery")
	params.Set("fields", "place_id,name,formatted_address,geometry")
	if q.Language != "" {
		params.Set("language", q.Language)
	}
	if q.Bias != nil {
		params.Set("locationbias", fmt.Sprintf("circle:%d@%v,%v", q.Bias.RadiusMeters, q.Bias.Lat, q.Bias.Lng))
	}

	doc, status, err := c.get(ctx, findPlacePath, params)
	if err != nil {
		return nil, err
	}

	switch status {
	case "OK":
	case "ZERO_RESULTS":
		return nil, nil
	default:
		return nil, apiError(findPlacePath, status, doc)
	}

	raw := doc.Get("candidates").Array()
	out := make([]Candidate, 0, len(raw))
	for _, r := range raw {
		out = append(out, Candidate{
			PlaceID:          r.Get("place_id").String(),
			Name:             r.Get("name").String(),
			FormattedAddress: r.Get("formatted_address").String(),
			Lat:              r.Get("geometry.location.lat").Float(),
			Lng:              r.Get("geometry.location.lng").Float(),
		})
	}
	return out, nil
}
