package line

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/tidwall/gjson"

	"github.com/pkordes/drivetime/internal/domain"
)

const (
	defaultAPIRoot = "https://api.line.me"
	replyPath      = "/v2/bot/message/reply"

	// Limits imposed by the reply API.
	maxMessages     = 5
	maxQuickReplies = 13
	maxLabelRunes   = 20
	maxTextRunes    = 5000
)

// ErrNoReplyToken is returned when an event carries nothing to reply to.
var ErrNoReplyToken = errors.New("missing reply token")

// ClientConfig configures a Client.
type ClientConfig struct {
	AccessToken string
	// APIRoot overrides https://api.line.me; tests point it at an httptest server.
	APIRoot string
	Timeout time.Duration
}

// Client sends replies through the Messaging API.
type Client struct {
	token   string
	apiRoot string
	http    *http.Client
}

// NewClient constructs a Client with its own bounded http.Client.
func NewClient(cfg ClientConfig) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if strings.TrimSpace(cfg.APIRoot) == "" {
		cfg.APIRoot = defaultAPIRoot
	}
	return &Client{
		token:   cfg.AccessToken,
		apiRoot: strings.TrimRight(cfg.APIRoot, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
	}
}

type replyRequest struct {
	ReplyToken string    `json:"replyToken"`
	Messages   []message `json:"messages"`
}

type message struct {
	Type       string      `json:"type"`
	Text       string      `json:"text"`
	QuickReply *quickReply `json:"quickReply,omitempty"`
}

type quickReply struct {
	Items []quickReplyItem `json:"items"`
}

type quickReplyItem struct {
	Type   string `json:"type"`
	Action action `json:"action"`
}

type action struct {
	Type  string `json:"type"`
	Label string `json:"label"`
	Text  string `json:"text,omitempty"`
}

// Reply sends replies in order as text messages. Only the first five are
// sent. Quick reply items from every reply are attached to the last
// message sent, where the chat app shows them.
func (c *Client) Reply(ctx context.Context, replyToken string, replies []domain.Reply) error {
	if replyToken == "" {
		return fmt.Errorf("line.Client.Reply: %w", ErrNoReplyToken)
	}
	if len(replies) == 0 {
		return nil
	}
	if len(replies) > maxMessages {
		replies = replies[:maxMessages]
	}

	req := replyRequest{
		ReplyToken: replyToken,
		Messages: lo.Map(replies, func(r domain.Reply, _ int) message {
			return message{Type: "text", Text: truncate(r.Text, maxTextRunes)}
		}),
	}
	items := lo.FlatMap(replies, func(r domain.Reply, _ int) []quickReplyItem {
		return lo.Map(r.QuickReplies, func(q domain.QuickReply, _ int) quickReplyItem {
			return toItem(q)
		})
	})
	if len(items) > maxQuickReplies {
		items = items[:maxQuickReplies]
	}
	if len(items) > 0 {
		req.Messages[len(req.Messages)-1].QuickReply = &quickReply{Items: items}
	}

	return c.post(ctx, replyPath, req)
}

func (c *Client) post(ctx context.Context, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("line.Client.post: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiRoot+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("line.Client.post: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("line.Client.post: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		if msg := gjson.GetBytes(respBody, "message").String(); msg != "" {
			return fmt.Errorf("line.Client.post: status %d: %s", resp.StatusCode, msg)
		}
		return fmt.Errorf("line.Client.post: status %d", resp.StatusCode)
	}
	return nil
}

func toItem(q domain.QuickReply) quickReplyItem {
	a := action{Type: "message", Label: truncate(q.Label, maxLabelRunes), Text: q.Text}
	if q.Location {
		a = action{Type: "location", Label: truncate(q.Label, maxLabelRunes)}
	}
	return quickReplyItem{Type: "action", Action: a}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
