package bot

import (
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/scrimhub/scrimhub/internal/httputil"
	"github.com/scrimhub/scrimhub/internal/store"
)

// InteractionHandler serves Discord's signed interaction callbacks over HTTP:
// the PING/PONG handshake, a fast command answered from the cache, and a slow
// command using the deferred-response pattern.
type InteractionHandler struct {
	publicKey ed25519.PublicKey
	session   *discordgo.Session
	state     *State
	clans     *store.ClanStore
}

func NewInteractionHandler(publicKey ed25519.PublicKey, session *discordgo.Session, state *State, clans *store.ClanStore) *InteractionHandler {
	return &InteractionHandler{publicKey: publicKey, session: session, state: state, clans: clans}
}

func (h *InteractionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !discordgo.VerifyInteraction(r, h.publicKey) {
		httputil.Unauthorized(w, "invalid interaction signature")
		return
	}

	var interaction discordgo.Interaction
	if err := json.NewDecoder(r.Body).Decode(&interaction); err != nil {
		httputil.BadRequest(w, "invalid interaction payload", err)
		return
	}

	switch interaction.Type {
	case discordgo.InteractionPing:
		respond(w, &discordgo.InteractionResponse{Type: discordgo.InteractionResponsePong})
	case discordgo.InteractionApplicationCommand:
		h.handleCommand(w, &interaction)
	default:
		httputil.BadRequest(w, "unsupported interaction type", nil)
	}
}

func (h *InteractionHandler) handleCommand(w http.ResponseWriter, interaction *discordgo.Interaction) {
	data := interaction.ApplicationCommandData()
	switch data.Name {
	case "tournaments":
		respond(w, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{Content: h.tournamentList()},
		})
	case "clan":
		// Store lookup is too slow for the 3s interaction deadline, so
		// acknowledge now and edit the response when done.
		respond(w, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		})
		go h.resolveClanCommand(interaction, data)
	default:
		respond(w, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{Content: "Unknown command."},
		})
	}
}

func (h *InteractionHandler) tournamentList() string {
	active := h.state.List()
	if len(active) == 0 {
		return "No active tournaments right now."
	}
	var b strings.Builder
	b.WriteString("Active tournaments:\n")
	for _, t := range active {
		fmt.Fprintf(&b, "- %s (%s), %d slots\n", t.Name, t.Game, t.Slots)
	}
	return b.String()
}

func (h *InteractionHandler) resolveClanCommand(interaction *discordgo.Interaction, data discordgo.ApplicationCommandInteractionData) {
	tag := ""
	if len(data.Options) > 0 {
		tag = data.Options[0].StringValue()
	}

	content, err := h.clanSummary(context.Background(), tag)
	if err != nil {
		slog.Error("clan command lookup failed", "tag", tag, "error", err)
		content = "Something went wrong looking up that clan."
	}

	if _, err := h.session.InteractionResponseEdit(interaction, &discordgo.WebhookEdit{
		Content: &content,
	}); err != nil {
		slog.Error("failed to edit deferred response", "error", err)
	}
}

func (h *InteractionHandler) clanSummary(ctx context.Context, tag string) (string, error) {
	if tag == "" {
		return "Give me a clan tag to look up.", nil
	}
	clans, err := h.clans.ListClans(ctx)
	if err != nil {
		return "", err
	}
	for i := range clans {
		c := &clans[i]
		if strings.EqualFold(c.ClanTag, tag) {
			return fmt.Sprintf("**%s** [%s], captain %s, %d members",
				c.ClanName, c.ClanTag, c.CaptainName, len(c.RosterMembers())), nil
		}
	}
	return fmt.Sprintf("No clan with tag %q found.", tag), nil
}

func respond(w http.ResponseWriter, resp *discordgo.InteractionResponse) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode interaction response", "error", err)
	}
}

// ParsePublicKey decodes the hex-encoded application public key Discord
// issues for interaction verification.
func ParsePublicKey(hexKey string) (ed25519.PublicKey, error) {
	if hexKey == "" {
		return nil, errors.New("empty public key")
	}
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("invalid public key: %w", err)
	}
	if len(key) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("public key must be %d bytes, got %d", ed25519.PublicKeySize, len(key))
	}
	return ed25519.PublicKey(key), nil
}
