package domain

import "fmt"

// SafetyBufferMinutes is added to every displayed estimate.
const SafetyBufferMinutes = 2

// DefaultBanner is the branding line shown between the label and the
// minute count.
const DefaultBanner = "1651黑 🈲代駕"

// NoRouteText is shown when the provider finds no drivable route.
const NoRouteText = "找不到路線"

// FailureKind tags why a TripResult carries no estimate.
type FailureKind int

const (
	// FailureNone marks a successful estimate.
	FailureNone FailureKind = iota
	// FailureNoRoute means the provider answered with zero routes.
	FailureNoRoute
	// FailureProvider covers network errors, timeouts and malformed responses.
	FailureProvider
)

// String returns the JSON name of the kind.
func (k FailureKind) String() string {
	switch k {
	case FailureNone:
		return ""
	case FailureNoRoute:
		return "no_route"
	default:
		return "provider_error"
	}
}

// TripResult is the outcome of one drive-time estimate.
// Minutes and Link are set together on success and both empty on failure.
type TripResult struct {
	Label   string
	Banner  string
	Minutes int
	Link    string
	Failure FailureKind
	Reason  string
}

// OK reports whether the result carries an estimate.
func (r TripResult) OK() bool {
	return r.Failure == FailureNone
}

// Text is the estimate line sent to the user:
//
//	<label>
//	<banner>
//	<N>分
//
// On failure it names the label and the reason instead.
func (r TripResult) Text() string {
	switch r.Failure {
	case FailureNone:
		return fmt.Sprintf("%s\n%s\n%d分", r.Label, r.Banner, r.Minutes)
	case FailureNoRoute:
		return fmt.Sprintf("%s\n%s", r.Label, NoRouteText)
	default:
		return fmt.Sprintf("%s\n查詢失敗：%s", r.Label, r.Reason)
	}
}

// Err returns the failure as a sentinel-wrapped error, or nil on success.
func (r TripResult) Err() error {
	switch r.Failure {
	case FailureNone:
		return nil
	case FailureNoRoute:
		return ErrNoRoute
	default:
		return fmt.Errorf("%w: %s", ErrProvider, r.Reason)
	}
}
