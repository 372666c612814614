// Package auth verifies bearer session tokens and enforces role predicates.
// Tokens stay valid for their full lifetime regardless of later role changes;
// there is no revocation list.
package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/markbates/goth"
	"github.com/markbates/goth/providers/discord"

	"github.com/scrimhub/scrimhub/internal/config"
	"github.com/scrimhub/scrimhub/internal/httputil"
	"github.com/scrimhub/scrimhub/internal/model"
	"github.com/scrimhub/scrimhub/internal/token"
)

// InitOAuth registers the Discord OAuth provider with goth.
func InitOAuth(cfg *config.Config) {
	goth.UseProviders(
		discord.New(cfg.DiscordKey, cfg.DiscordSecret, cfg.DiscordCallbackURL,
			discord.ScopeIdentify, discord.ScopeEmail),
	)
}

type Gate struct {
	tokens *token.Service
}

func NewGate(tokens *token.Service) *Gate {
	return &Gate{tokens: tokens}
}

// Authenticate extracts and verifies the bearer token. Any failure maps to
// httputil.ErrUnauthorized; callers must stop before touching the store.
func (g *Gate) Authenticate(r *http.Request) (*token.Claims, error) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return nil, fmt.Errorf("%w: missing bearer token", httputil.ErrUnauthorized)
	}
	claims, err := g.tokens.Verify(strings.TrimPrefix(header, prefix))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", httputil.ErrUnauthorized, err)
	}
	return claims, nil
}

// RolePredicate is the second-stage check run after Authenticate.
type RolePredicate func(*token.Claims) error

func AdminOnly(c *token.Claims) error {
	if c.SiteRole != model.SiteRoleAdmin {
		return fmt.Errorf("%w: admin role required", httputil.ErrForbidden)
	}
	return nil
}

// ClanLeadership admits leaders and co-leaders.
func ClanLeadership(c *token.Claims) error {
	if c.ClanRole != model.ClanRoleLeader && c.ClanRole != model.ClanRoleCoLeader {
		return fmt.Errorf("%w: clan leadership required", httputil.ErrForbidden)
	}
	return nil
}

func ClanLeader(c *token.Claims) error {
	if c.ClanRole != model.ClanRoleLeader {
		return fmt.Errorf("%w: clan leader role required", httputil.ErrForbidden)
	}
	return nil
}

// OwnsClan checks that a clan-scoped action targets the caller's own clan.
func OwnsClan(c *token.Claims, targetClanID string) error {
	if c.ClanID == "" || c.ClanID != targetClanID {
		return fmt.Errorf("%w: not your clan", httputil.ErrForbidden)
	}
	return nil
}
