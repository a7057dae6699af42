// Package domain contains the core data types of the drive-time assistant.
// It is imported by every other internal package (repo, maps, service,
// handler, line) and holds no I/O.
package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// LocationKind tags which field of a LocationRef is authoritative.
type LocationKind int

const (
	// KindNone is the zero value; a LocationRef of this kind is empty.
	KindNone LocationKind = iota
	// KindCoordinates is a latitude/longitude pair, e.g. from a shared location.
	KindCoordinates
	// KindAddress is free text the directions provider geocodes itself.
	KindAddress
	// KindPlaceID is a provider place identifier.
	KindPlaceID
)

// String returns the storage name of the kind.
func (k LocationKind) String() string {
	switch k {
	case KindCoordinates:
		return "coordinates"
	case KindAddress:
		return "address"
	case KindPlaceID:
		return "place_id"
	default:
		return "none"
	}
}

// ParseLocationKind is the inverse of LocationKind.String.
func ParseLocationKind(s string) (LocationKind, error) {
	switch s {
	case "coordinates":
		return KindCoordinates, nil
	case "address":
		return KindAddress, nil
	case "place_id":
		return KindPlaceID, nil
	default:
		return KindNone, fmt.Errorf("%w: unknown location kind %q", ErrValidation, s)
	}
}

// LocationRef points at a place on the map. Exactly one of the three
// representations is authoritative (see Kind); a place-ID ref may also carry
// the coordinates and formatted address the lookup returned with it.
type LocationRef struct {
	Kind    LocationKind
	Lat     float64
	Lng     float64
	Text    string
	PlaceID string
}

// Coordinates builds a KindCoordinates ref.
func Coordinates(lat, lng float64) LocationRef {
	return LocationRef{Kind: KindCoordinates, Lat: lat, Lng: lng}
}

// Address builds a KindAddress ref.
func Address(text string) LocationRef {
	return LocationRef{Kind: KindAddress, Text: text}
}

// PlaceRef builds a KindPlaceID ref. text and the coordinates are kept for
// display and link building.
func PlaceRef(placeID, text string, lat, lng float64) LocationRef {
	return LocationRef{Kind: KindPlaceID, PlaceID: placeID, Text: text, Lat: lat, Lng: lng}
}

// IsZero reports whether the ref points nowhere.
func (l LocationRef) IsZero() bool {
	switch l.Kind {
	case KindCoordinates:
		return false
	case KindAddress:
		return strings.TrimSpace(l.Text) == ""
	case KindPlaceID:
		return l.PlaceID == ""
	default:
		return true
	}
}

// String renders the ref in the form the directions provider accepts:
// "lat,lng", the raw address text, or "place_id:<id>".
func (l LocationRef) String() string {
	switch l.Kind {
	case KindCoordinates:
		return FormatLatLng(l.Lat, l.Lng)
	case KindAddress:
		return l.Text
	case KindPlaceID:
		return "place_id:" + l.PlaceID
	default:
		return ""
	}
}

// Display is the human-readable form of the ref used in confirmations
// and as the free-text part of navigation links.
func (l LocationRef) Display() string {
	switch l.Kind {
	case KindCoordinates:
		return FormatLatLng(l.Lat, l.Lng)
	case KindPlaceID:
		if l.Text != "" {
			return l.Text
		}
		if l.Lat != 0 || l.Lng != 0 {
			return FormatLatLng(l.Lat, l.Lng)
		}
		return l.PlaceID
	default:
		return l.Text
	}
}

// FormatLatLng joins a coordinate pair using the shortest decimal
// representation of each value, e.g. "24.1477,120.6736".
func FormatLatLng(lat, lng float64) string {
	return strconv.FormatFloat(lat, 'f', -1, 64) + "," + strconv.FormatFloat(lng, 'f', -1, 64)
}

// ParseLocation reads free text typed by a caller of the estimate API:
// "lat,lng" becomes coordinates, "place_id:<id>" a place ref, anything
// else an address. Empty text is a validation error.
func ParseLocation(text string) (LocationRef, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return LocationRef{}, fmt.Errorf("%w: location is empty", ErrValidation)
	}
	if id, ok := strings.CutPrefix(text, "place_id:"); ok {
		if id = strings.TrimSpace(id); id == "" {
			return LocationRef{}, fmt.Errorf("%w: place_id is empty", ErrValidation)
		}
		return PlaceRef(id, "", 0, 0), nil
	}
	if lat, lng, ok := parseLatLng(text); ok {
		return Coordinates(lat, lng), nil
	}
	return Address(text), nil
}

func parseLatLng(s string) (float64, float64, bool) {
	a, b, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, false
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(a), 64)
	if err != nil || lat < -90 || lat > 90 {
		return 0, 0, false
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(b), 64)
	if err != nil || lng < -180 || lng > 180 {
		return 0, 0, false
	}
	return lat, lng, true
}
