package domain

import (
	"strings"
	"time"
)

// OriginRecord is a user's current starting location.
// There is at most one per user; a newer write replaces an older one.
type OriginRecord struct {
	UserID    string
	Location  LocationRef
	UpdatedAt time.Time
}

// Preset is a named origin the user can pick from a quick-reply menu.
// Address is passed verbatim to the directions provider.
type Preset struct {
	Label   string
	Address string
}

// Location returns the preset as an address ref.
func (p Preset) Location() LocationRef {
	return Address(p.Address)
}

// Presets is the ordered preset table. Order is the quick-reply menu order.
type Presets []Preset

// DefaultPresets is used when ORIGIN_PRESETS is not configured.
var DefaultPresets = Presets{
	{Label: "🏠 家", Address: "台中市西屯區臺灣大道三段99號"},
	{Label: "🏢 公司", Address: "台中市西區英才路600號"},
	{Label: "🚉 台中車站", Address: "台中市中區台灣大道一段1號"},
}

// Lookup returns the preset whose label equals text after trimming
// surrounding whitespace. Matching is exact; no prefix or fuzzy matching.
func (ps Presets) Lookup(text string) (Preset, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Preset{}, false
	}
	for _, p := range ps {
		if p.Label == text {
			return p, true
		}
	}
	return Preset{}, false
}
