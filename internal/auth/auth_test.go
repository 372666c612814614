package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrimhub/scrimhub/internal/httputil"
	"github.com/scrimhub/scrimhub/internal/model"
	"github.com/scrimhub/scrimhub/internal/token"
)

func TestAuthenticate(t *testing.T) {
	tokens := token.NewService("test-secret")
	gate := NewGate(tokens)

	signed, err := tokens.Issue(&model.User{UserID: "u1", Username: "Tester"})
	require.NoError(t, err)

	t.Run("valid token", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api?action=getUser", nil)
		r.Header.Set("Authorization", "Bearer "+signed)

		claims, err := gate.Authenticate(r)
		require.NoError(t, err)
		assert.Equal(t, "u1", claims.UserID)
	})

	t.Run("missing header", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api?action=getUser", nil)
		_, err := gate.Authenticate(r)
		assert.ErrorIs(t, err, httputil.ErrUnauthorized)
	})

	t.Run("malformed header", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api?action=getUser", nil)
		r.Header.Set("Authorization", signed)
		_, err := gate.Authenticate(r)
		assert.ErrorIs(t, err, httputil.ErrUnauthorized)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		other, err := token.NewService("other-secret").Issue(&model.User{UserID: "u1"})
		require.NoError(t, err)

		r := httptest.NewRequest("GET", "/api?action=getUser", nil)
		r.Header.Set("Authorization", "Bearer "+other)
		_, err = gate.Authenticate(r)
		assert.ErrorIs(t, err, httputil.ErrUnauthorized)
	})
}

func TestRolePredicates(t *testing.T) {
	admin := &token.Claims{UserID: "u1", SiteRole: model.SiteRoleAdmin}
	leader := &token.Claims{UserID: "u2", ClanID: "c1", ClanRole: model.ClanRoleLeader}
	coLeader := &token.Claims{UserID: "u3", ClanID: "c1", ClanRole: model.ClanRoleCoLeader}
	member := &token.Claims{UserID: "u4", ClanID: "c1", ClanRole: model.ClanRoleMember}
	loner := &token.Claims{UserID: "u5"}

	assert.NoError(t, AdminOnly(admin))
	assert.ErrorIs(t, AdminOnly(leader), httputil.ErrForbidden)

	assert.NoError(t, ClanLeadership(leader))
	assert.NoError(t, ClanLeadership(coLeader))
	assert.ErrorIs(t, ClanLeadership(member), httputil.ErrForbidden)
	assert.ErrorIs(t, ClanLeadership(loner), httputil.ErrForbidden)

	assert.NoError(t, ClanLeader(leader))
	assert.ErrorIs(t, ClanLeader(coLeader), httputil.ErrForbidden)

	assert.NoError(t, OwnsClan(leader, "c1"))
	assert.ErrorIs(t, OwnsClan(leader, "c2"), httputil.ErrForbidden)
	assert.ErrorIs(t, OwnsClan(loner, "c1"), httputil.ErrForbidden)
}
