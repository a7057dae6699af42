package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/samber/lo"

	"github.com/pkordes/drivetime/internal/domain"
	"github.com/pkordes/drivetime/internal/repo"
)

// Reply texts.
const (
	promptText       = "請先傳送您的位置 📍，或從下方選擇出發地，再輸入目的地。"
	originSetFormat  = "📍 出發地已設定：%s\n請輸入目的地"
	storeFailureText = "系統忙碌中，請稍後再試。"
	navigationPrefix = "🚗 開始導航\n"
	shareLocationTag = "傳送位置"
)

// TripPlanner is satisfied by *Planner.
type TripPlanner interface {
	Plan(ctx context.Context, origin domain.LocationRef, text string) domain.TripResult
}

// Router is the per-user conversation state machine. A user is in
// NO_ORIGIN until they share a location or pick a preset, and in
// HAS_ORIGIN afterwards. The state is read from the origin store on every
// event and never cached here.
type Router struct {
	origins repo.OriginRepo
	presets domain.Presets
	planner TripPlanner
	log     *slog.Logger
}

// NewRouter constructs a Router.
func NewRouter(origins repo.OriginRepo, presets domain.Presets, planner TripPlanner, log *slog.Logger) *Router {
	return &Router{origins: origins, presets: presets, planner: planner, log: log}
}

// State reports the user's current state.
func (r *Router) State(ctx context.Context, userID string) (domain.RouterState, error) {
	_, found, err := r.origins.Get(ctx, userID)
	if err != nil {
		return domain.StateNoOrigin, fmt.Errorf("service.Router.State: %w", err)
	}
	return domain.StateOf(found), nil
}

// Handle applies one event and returns the replies to send, in order.
// Transitions, first match wins:
//
//  1. location shared            → store coordinates, confirm
//  2. text equals a preset label → store the preset address, confirm
//  3. text, NO_ORIGIN            → prompt with the preset menu
//  4. text, HAS_ORIGIN           → estimate; one reply on failure, two on success
//
// Unsupported events produce no replies. Storage failures are logged and
// answered with a short retry message.
func (r *Router) Handle(ctx context.Context, ev domain.Event) []domain.Reply {
	switch ev.Kind {
	case domain.EventLocation:
		return r.setOrigin(ctx, ev.UserID, domain.Coordinates(ev.Lat, ev.Lng), locationName(ev))
	case domain.EventText:
		return r.handleText(ctx, ev)
	default:
		return nil
	}
}

func (r *Router) handleText(ctx context.Context, ev domain.Event) []domain.Reply {
	if p, ok := r.presets.Lookup(ev.Text); ok {
		return r.setOrigin(ctx, ev.UserID, p.Location(), p.Label)
	}

	rec, found, err := r.origins.Get(ctx, ev.UserID)
	if err != nil {
		r.log.ErrorContext(ctx, "origin lookup failed", "user_id", ev.UserID, "error", err)
		return []domain.Reply{{Text: storeFailureText}}
	}
	if domain.StateOf(found) == domain.StateNoOrigin || strings.TrimSpace(ev.Text) == "" {
		return []domain.Reply{r.prompt()}
	}

	result := r.planner.Plan(ctx, rec.Location, ev.Text)
	r.log.InfoContext(ctx, "trip estimated",
		"user_id", ev.UserID,
		"origin", rec.Location.String(),
		"query", ev.Text,
		"ok", result.OK(),
		"minutes", result.Minutes,
		"failure", result.Failure.String(),
	)

	replies := []domain.Reply{{Text: result.Text()}}
	if result.OK() {
		replies = append(replies, domain.Reply{Text: navigationPrefix + result.Link})
	}
	return replies
}

func (r *Router) setOrigin(ctx context.Context, userID string, loc domain.LocationRef, name string) []domain.Reply {
	if err := r.origins.Set(ctx, userID, loc); err != nil {
		r.log.ErrorContext(ctx, "origin update failed", "user_id", userID, "error", err)
		return []domain.Reply{{Text: storeFailureText}}
	}
	r.log.InfoContext(ctx, "origin set", "user_id", userID, "kind", loc.Kind.String(), "origin", loc.String())
	return []domain.Reply{{Text: fmt.Sprintf(originSetFormat, name)}}
}

// prompt asks for an origin and offers every preset plus the location picker.
func (r *Router) prompt() domain.Reply {
	items := lo.Map(r.presets, func(p domain.Preset, _ int) domain.QuickReply {
		return domain.QuickReply{Label: p.Label, Text: p.Label}
	})
	items = append(items, domain.QuickReply{Label: shareLocationTag, Location: true})
	return domain.Reply{Text: promptText, QuickReplies: items}
}

// locationName is what the confirmation calls a shared location: the
// address the chat app attached, else the coordinates.
func locationName(ev domain.Event) string {
	coords := domain.FormatLatLng(ev.Lat, ev.Lng)
	if addr := strings.TrimSpace(ev.Address); addr != "" {
		return addr + "（" + coords + "）"
	}
	return coords
}
