package bot

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/bwmarrin/discordgo"

	"github.com/scrimhub/scrimhub/internal/httputil"
	"github.com/scrimhub/scrimhub/internal/model"
)

// Announcer posts a tournament announcement to the chat platform.
type Announcer interface {
	Announce(ctx context.Context, t *model.Tournament) error
}

// WebhookHandler receives tournament-created events, caches the tournament
// and announces it. The shared secret stands in for user authentication.
type WebhookHandler struct {
	secret    string
	state     *State
	announcer Announcer
}

func NewWebhookHandler(secret string, state *State, announcer Announcer) *WebhookHandler {
	return &WebhookHandler{secret: secret, state: state, announcer: announcer}
}

func (h *WebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	got := r.Header.Get(SecretHeader)
	if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(h.secret)) != 1 {
		httputil.Unauthorized(w, "invalid webhook secret")
		return
	}

	var t model.Tournament
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		httputil.BadRequest(w, "invalid webhook payload", err)
		return
	}
	if t.ScrimID == "" {
		httputil.BadRequest(w, "payload missing scrimId", nil)
		return
	}

	h.state.Put(t)

	// The announcement is best effort; the event is already cached.
	if h.announcer != nil {
		if err := h.announcer.Announce(r.Context(), &t); err != nil {
			slog.Warn("tournament announcement failed", "scrimId", t.ScrimID, "error", err)
		}
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// DiscordAnnouncer sends an embed to the configured announcement channel.
type DiscordAnnouncer struct {
	session   *discordgo.Session
	channelID string
}

func NewDiscordAnnouncer(session *discordgo.Session, channelID string) *DiscordAnnouncer {
	return &DiscordAnnouncer{session: session, channelID: channelID}
}

func (a *DiscordAnnouncer) Announce(ctx context.Context, t *model.Tournament) error {
	embed := &discordgo.MessageEmbed{
		Title:       t.Name,
		Description: fmt.Sprintf("New %s tournament is live. Prize pool: %s", t.Game, t.PrizePool),
		Image:       &discordgo.MessageEmbedImage{URL: t.Banner},
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Slots", Value: fmt.Sprint(t.Slots), Inline: true},
			{Name: "Starts", Value: t.StartDate, Inline: true},
		},
	}
	_, err := a.session.ChannelMessageSendEmbed(a.channelID, embed, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to send announcement: %w", err)
	}
	return nil
}
