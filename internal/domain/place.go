package domain

// ResolvedPlace is the outcome of a place lookup for one search term.
// Destination is never empty for a non-empty term: when the lookup misses,
// it is an address ref holding the term itself and Fallback is set.
type ResolvedPlace struct {
	Destination LocationRef
	Label       string
	Fallback    bool
}

// FallbackPlace is the ResolvedPlace used whenever a lookup misses or fails.
func FallbackPlace(term string) ResolvedPlace {
	return ResolvedPlace{
		Destination: Address(term),
		Label:       term,
		Fallback:    true,
	}
}
