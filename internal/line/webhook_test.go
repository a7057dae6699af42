package line_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/drivetime/internal/domain"
	"github.com/pkordes/drivetime/internal/line"
)

const webhookBody = `{
  "destination": "Ubot",
  "events": [
    {
      "type": "message",
      "webhookEventId": "01H0000000000000000000000A",
      "replyToken": "tok-1",
      "source": {"type": "user", "userId": "U1"},
      "message": {"id": "1", "type": "text", "text": "台中火車站"}
    },
    {
      "type": "message",
      "replyToken": "tok-2",
      "source": {"type": "user", "userId": "U1"},
      "message": {"id": "2", "type": "location", "title": "my location",
                  "address": "台中市西屯區", "latitude": 24.1477, "longitude": 120.6736}
    },
    {
      "type": "follow",
      "replyToken": "tok-3",
      "source": {"type": "user", "userId": "U2"}
    },
    {
      "type": "message",
      "replyToken": "tok-4",
      "source": {"type": "user", "userId": "U1"},
      "message": {"id": "4", "type": "sticker", "packageId": "1", "stickerId": "1"}
    },
    {
      "type": "message",
      "replyToken": "tok-5",
      "source": {"type": "group", "groupId": "G1"},
      "message": {"id": "5", "type": "text", "text": "hi"}
    }
  ]
}`

func TestParseEvents(t *testing.T) {
	events, err := line.ParseEvents([]byte(webhookBody))
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, domain.Event{
		ID:         "01H0000000000000000000000A",
		Kind:       domain.EventText,
		UserID:     "U1",
		ReplyToken: "tok-1",
		Text:       "台中火車站",
	}, events[0])

	loc := events[1]
	assert.Equal(t, domain.EventLocation, loc.Kind)
	assert.Equal(t, "tok-2", loc.ReplyToken)
	assert.InDelta(t, 24.1477, loc.Lat, 1e-9)
	assert.InDelta(t, 120.6736, loc.Lng, 1e-9)
	assert.Equal(t, "台中市西屯區", loc.Address)
	assert.NotEmpty(t, loc.ID, "events without webhookEventId get a generated id")
}

func TestParseEvents_EmptyIsValid(t *testing.T) {
	events, err := line.ParseEvents([]byte(`{"destination":"Ubot","events":[]}`))
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestParseEvents_Malformed(t *testing.T) {
	for _, body := range []string{``, `not json`, `{"destination":"Ubot"}`, `{"events":{}}`} {
		_, err := line.ParseEvents([]byte(body))
		assert.ErrorIs(t, err, line.ErrMalformedPayload, "body %q", body)
	}
}
