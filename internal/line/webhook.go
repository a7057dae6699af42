package line

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/pkordes/drivetime/internal/domain"
)

// ErrMalformedPayload is returned when a signed body is not a webhook document.
var ErrMalformedPayload = errors.New("malformed webhook payload")

// ParseEvents decodes a webhook body into the events the assistant handles:
// text and location messages from a user. Everything else (follows,
// postbacks, stickers, group messages without a user id) is skipped.
// An empty events array is valid and yields no events.
func ParseEvents(body []byte) ([]domain.Event, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("line.ParseEvents: %w", ErrMalformedPayload)
	}
	raw := gjson.GetBytes(body, "events")
	if !raw.IsArray() {
		return nil, fmt.Errorf("line.ParseEvents: %w: no events array", ErrMalformedPayload)
	}

	var events []domain.Event
	raw.ForEach(func(_, e gjson.Result) bool {
		if ev, ok := decodeEvent(e); ok {
			events = append(events, ev)
		}
		return true
	})
	return events, nil
}

func decodeEvent(e gjson.Result) (domain.Event, bool) {
	if e.Get("type").String() != "message" {
		return domain.Event{}, false
	}
	userID := e.Get("source.userId").String()
	if userID == "" {
		return domain.Event{}, false
	}

	id := e.Get("webhookEventId").String()
	if id == "" {
		id = uuid.NewString()
	}
	ev := domain.Event{
		ID:         id,
		UserID:     userID,
		ReplyToken: e.Get("replyToken").String(),
	}

	msg := e.Get("message")
	switch msg.Get("type").String() {
	case "text":
		ev.Kind = domain.EventText
		ev.Text = msg.Get("text").String()
	case "location":
		lat, lng := msg.Get("latitude"), msg.Get("longitude")
		if !lat.Exists() || !lng.Exists() {
			return domain.Event{}, false
		}
		ev.Kind = domain.EventLocation
		ev.Lat = lat.Float()
		ev.Lng = lng.Float()
		ev.Address = msg.Get("address").String()
	default:
		return domain.Event{}, false
	}
	return ev, true
}
