package handler

import (
	"io"
	"net/http"
	"time"

	"github.com/pkordes/drivetime/internal/line"
)

// PostCallback handles POST /callback, the LINE webhook.
//
// The body is verified against X-Line-Signature before anything is decoded;
// a bad signature is a 400. Events are handled in order, synchronously, and
// each one's replies are sent with its reply token. Delivery failures are
// logged and do not change the 200, since LINE does not redeliver on error.
func (s *Server) PostCallback(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		if tooLarge(err) {
			writeError(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large")
			return
		}
		requestBody(w, "cannot read request body")
		return
	}

	if err := line.VerifySignature(s.channelSecret, body, r.Header.Get(line.SignatureHeader)); err != nil {
		s.log.WarnContext(r.Context(), "webhook rejected", "reason", err.Error())
		writeError(w, http.StatusBadRequest, "invalid_signature", "invalid signature")
		return
	}

	events, err := line.ParseEvents(body)
	if err != nil {
		requestBody(w, "malformed webhook payload")
		return
	}

	ctx := r.Context()
	rc := http.NewResponseController(w)
	for _, ev := range events {
		if s.eventTimeout > 0 {
			// Recorders and some wrappers cannot move deadlines; nothing to do then.
			_ = rc.SetWriteDeadline(time.Now().Add(s.eventTimeout))
		}
		replies := s.events.Handle(ctx, ev)
		if len(replies) == 0 {
			continue
		}
		if err := s.replies.Reply(ctx, ev.ReplyToken, replies); err != nil {
			s.log.ErrorContext(ctx, "reply failed",
				"event_id", ev.ID,
				"user_id", ev.UserID,
				"error", err,
			)
		}
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("OK"))
}
