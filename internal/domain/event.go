package domain

// EventKind classifies a decoded inbound chat event.
type EventKind int

const (
	// EventText is a plain text message.
	EventText EventKind = iota + 1
	// EventLocation is a shared location.
	EventLocation
)

// Event is an inbound message already verified and decoded by the transport.
// Lat, Lng and Address are only meaningful for EventLocation; Text only for
// EventText.
type Event struct {
	ID         string
	Kind       EventKind
	UserID     string
	ReplyToken string
	Text       string
	Lat        float64
	Lng        float64
	Address    string
}

// QuickReply is one button attached under a reply.
// A Location item opens the chat app's location picker instead of sending Text.
type QuickReply struct {
	Label    string
	Text     string
	Location bool
}

// Reply is one outbound text message.
type Reply struct {
	Text         string
	QuickReplies []QuickReply
}
