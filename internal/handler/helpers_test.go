package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/drivetime/internal/domain"
	"github.com/pkordes/drivetime/internal/handler"
	"github.com/pkordes/drivetime/internal/line"
)

const testSecret = "test-channel-secret"

// mockEventRouter is a test double for handler.EventRouter.
type mockEventRouter struct {
	handle func(ctx context.Context, ev domain.Event) []domain.Reply

	mu     sync.Mutex
	events []domain.Event
}

func (m *mockEventRouter) Handle(ctx context.Context, ev domain.Event) []domain.Reply {
	m.mu.Lock()
	m.events = append(m.events, ev)
	m.mu.Unlock()
	if m.handle == nil {
		return nil
	}
	return m.handle(ctx, ev)
}

// mockReplier is a test double for handler.Replier that records every call.
type mockReplier struct {
	err   error
	calls []replyCall
}

type replyCall struct {
	token   string
	replies []domain.Reply
}

func (m *mockReplier) Reply(_ context.Context, token string, replies []domain.Reply) error {
	m.calls = append(m.calls, replyCall{token: token, replies: replies})
	return m.err
}

// mockTripPlanner is a test double for handler.TripPlanner.
type mockTripPlanner struct {
	plan func(ctx context.Context, origin domain.LocationRef, text string) domain.TripResult
}

func (m *mockTripPlanner) Plan(ctx context.Context, origin domain.LocationRef, text string) domain.TripResult {
	return m.plan(ctx, origin, text)
}

// compile-time checks.
var (
	_ handler.EventRouter = (*mockEventRouter)(nil)
	_ handler.Replier     = (*mockReplier)(nil)
	_ handler.TripPlanner = (*mockTripPlanner)(nil)
)

// newHTTPHandler wires a Server into a chi router the way main.go does.
func newHTTPHandler(d handler.Deps) http.Handler {
	if d.ChannelSecret == "" {
		d.ChannelSecret = testSecret
	}
	if d.Presets == nil {
		d.Presets = domain.DefaultPresets
	}
	d.Log = slog.New(slog.NewTextHandler(io.Discard, nil))
	r := chi.NewRouter()
	handler.NewServer(d).Mount(r)
	return r
}

// signedCallback builds a POST /callback request signed with testSecret.
func signedCallback(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/callback", bytes.NewBufferString(body))
	req.Header.Set(line.SignatureHeader, line.Sign(testSecret, []byte(body)))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) handler.ErrorDetail {
	t.Helper()
	var body handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Error
}
