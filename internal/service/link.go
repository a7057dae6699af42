package service

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/pkordes/drivetime/internal/domain"
)

const mapsDirURL = "https://www.google.com/maps/dir/"

// LinkPolicy decides whether navigation links carry a place identifier.
type LinkPolicy int

const (
	// LinkPlaceID attaches destination_place_id whenever the destination
	// resolved to a place. The free-text destination is still sent because
	// the maps URL scheme requires it.
	LinkPlaceID LinkPolicy = iota
	// LinkQuery sends only the free-text destination, so the navigation app
	// re-geocodes the same address the user sees.
	LinkQuery
)

// ParseLinkPolicy accepts "place_id" or "query"; empty means LinkPlaceID.
func ParseLinkPolicy(s string) (LinkPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "place_id":
		return LinkPlaceID, nil
	case "query":
		return LinkQuery, nil
	default:
		return LinkPlaceID, fmt.Errorf("%w: unknown link policy %q", domain.ErrValidation, s)
	}
}

// NavigationLink builds a driving deep link to dest. It has no origin
// parameter: the navigation app starts from the device's live location
// when the link is opened, not from the stored origin.
func NavigationLink(dest domain.LocationRef, policy LinkPolicy) string {
	params := url.Values{}
	params.Set("api", "1")
	params.Set("destination", dest.Display())
	if dest.Kind == domain.KindPlaceID && policy == LinkPlaceID {
		params.Set("destination_place_id", dest.PlaceID)
	}
	params.Set("travelmode", "driving")
	return mapsDirURL + "?" + params.Encode()
}
