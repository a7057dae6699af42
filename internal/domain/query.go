package domain

import (
	"strings"

	"golang.org/x/text/width"
)

// DestinationQuery is the transient view of one inbound text message.
//
//   - Raw is the message text as received.
//   - SearchTerm is what gets sent to the place lookup: the part after the
//     last "/" when the text contains one, otherwise the trimmed text.
//   - Display is what is echoed back to the user; always the raw text.
type DestinationQuery struct {
	Raw        string
	SearchTerm string
	Display    string
}

// NewDestinationQuery derives a DestinationQuery from raw message text.
// Full-width slashes ("／") count as delimiters, so "公司／台中車站" searches
// for "台中車站". A trailing slash leaves nothing after the delimiter, in
// which case the whole trimmed text is searched instead.
func NewDestinationQuery(raw string) DestinationQuery {
	trimmed := strings.TrimSpace(raw)
	folded := width.Fold.String(trimmed)

	term := trimmed
	if i := strings.LastIndex(folded, "/"); i >= 0 {
		if after := strings.TrimSpace(folded[i+1:]); after != "" {
			term = after
		}
	}

	return DestinationQuery{
		Raw:        raw,
		SearchTerm: term,
		Display:    raw,
	}
}
