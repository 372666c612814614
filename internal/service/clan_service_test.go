package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrimhub/scrimhub/internal/httputil"
	"github.com/scrimhub/scrimhub/internal/model"
	"github.com/scrimhub/scrimhub/internal/rowstore"
	"github.com/scrimhub/scrimhub/internal/store"
)

type testEnv struct {
	db          *rowstore.MemoryStore
	users       *store.UserStore
	clans       *store.ClanStore
	tournaments *store.TournamentStore

	userService       *UserService
	clanService       *ClanService
	tournamentService *TournamentService
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	db := rowstore.NewMemoryStore(store.Tables()...)
	users := store.NewUserStore(db)
	clans := store.NewClanStore(db)
	tournaments := store.NewTournamentStore(db)
	return &testEnv{
		db:                db,
		users:             users,
		clans:             clans,
		tournaments:       tournaments,
		userService:       NewUserService(users),
		clanService:       NewClanService(clans, users),
		tournamentService: NewTournamentService(tournaments, clans, users),
	}
}

func (e *testEnv) seedUser(t *testing.T, u model.User) {
	t.Helper()
	require.NoError(t, e.users.CreateUser(context.Background(), &u))
}

func TestCreateClan(t *testing.T) {
	ctx := context.Background()
	env := setupEnv(t)
	env.seedUser(t, model.User{UserID: "u1", Username: "Alpha"})

	clan, err := env.clanService.CreateClan(ctx, "u1", CreateClanInput{
		ClanName: "Foo",
		ClanTag:  "FOO",
		ClanLogo: "http://x/y.png",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, clan.ClanID)
	assert.Equal(t, "u1", clan.CaptainID)
	assert.Equal(t, "Alpha", clan.CaptainName)
	assert.Equal(t, "Alpha", clan.Roster)

	// the caller is now the clan's leader
	user, err := env.users.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, clan.ClanID, user.ClanID)
	assert.Equal(t, model.ClanRoleLeader, user.ClanRole)
}

func TestCreateClanRejectsExistingMember(t *testing.T) {
	ctx := context.Background()
	env := setupEnv(t)
	env.seedUser(t, model.User{UserID: "u1", Username: "Alpha", ClanID: "c9", ClanRole: model.ClanRoleMember})

	_, err := env.clanService.CreateClan(ctx, "u1", CreateClanInput{ClanName: "Foo", ClanTag: "FOO"})
	assert.ErrorIs(t, err, httputil.ErrBadRequest)
}

func TestCreateJoinRequest(t *testing.T) {
	ctx := context.Background()
	env := setupEnv(t)
	env.seedUser(t, model.User{UserID: "leader", Username: "Alpha"})
	env.seedUser(t, model.User{UserID: "joiner", Username: "Beta"})

	clan, err := env.clanService.CreateClan(ctx, "leader", CreateClanInput{ClanName: "Foo", ClanTag: "FOO"})
	require.NoError(t, err)

	req, err := env.clanService.CreateJoinRequest(ctx, "joiner", clan.ClanID)
	require.NoError(t, err)
	assert.Equal(t, model.RequestPending, req.Status)
	assert.Equal(t, "Foo", req.ClanName)
	assert.Equal(t, "Beta", req.Username)

	t.Run("duplicate pending request is rejected", func(t *testing.T) {
		_, err := env.clanService.CreateJoinRequest(ctx, "joiner", clan.ClanID)
		assert.ErrorIs(t, err, httputil.ErrBadRequest)
	})

	t.Run("unknown clan", func(t *testing.T) {
		env.seedUser(t, model.User{UserID: "other", Username: "Gamma"})
		_, err := env.clanService.CreateJoinRequest(ctx, "other", "missing")
		assert.ErrorIs(t, err, httputil.ErrNotFound)
	})
}

func TestProcessRequestApprove(t *testing.T) {
	ctx := context.Background()
	env := setupEnv(t)
	env.seedUser(t, model.User{UserID: "leader", Username: "Alpha"})
	env.seedUser(t, model.User{UserID: "joiner", Username: "Beta"})

	clan, err := env.clanService.CreateClan(ctx, "leader", CreateClanInput{ClanName: "Foo", ClanTag: "FOO"})
	require.NoError(t, err)
	req, err := env.clanService.CreateJoinRequest(ctx, "joiner", clan.ClanID)
	require.NoError(t, err)

	processed, err := env.clanService.ProcessRequest(ctx, req.RequestID, true)
	require.NoError(t, err)
	assert.Equal(t, model.RequestApproved, processed.Status)

	user, err := env.users.GetUser(ctx, "joiner")
	require.NoError(t, err)
	assert.Equal(t, clan.ClanID, user.ClanID)
	assert.Equal(t, model.ClanRoleMember, user.ClanRole)

	updated, err := env.clans.GetClan(ctx, clan.ClanID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha", "Beta"}, updated.RosterMembers())

	t.Run("reprocessing is rejected", func(t *testing.T) {
		_, err := env.clanService.ProcessRequest(ctx, req.RequestID, true)
		assert.ErrorIs(t, err, httputil.ErrBadRequest)

		// roster unchanged either way
		again, err := env.clans.GetClan(ctx, clan.ClanID)
		require.NoError(t, err)
		assert.Equal(t, []string{"Alpha", "Beta"}, again.RosterMembers())
	})
}

func TestProcessRequestDeny(t *testing.T) {
	ctx := context.Background()
	env := setupEnv(t)
	env.seedUser(t, model.User{UserID: "leader", Username: "Alpha"})
	env.seedUser(t, model.User{UserID: "joiner", Username: "Beta"})

	clan, err := env.clanService.CreateClan(ctx, "leader", CreateClanInput{ClanName: "Foo", ClanTag: "FOO"})
	require.NoError(t, err)
	req, err := env.clanService.CreateJoinRequest(ctx, "joiner", clan.ClanID)
	require.NoError(t, err)

	processed, err := env.clanService.ProcessRequest(ctx, req.RequestID, false)
	require.NoError(t, err)
	assert.Equal(t, model.RequestDenied, processed.Status)

	// the user stays clanless and off the roster
	user, err := env.users.GetUser(ctx, "joiner")
	require.NoError(t, err)
	assert.Empty(t, user.ClanID)

	updated, err := env.clans.GetClan(ctx, clan.ClanID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha"}, updated.RosterMembers())
}

func TestRosterAppendIsIdempotent(t *testing.T) {
	clan := &model.Clan{Roster: "Alpha,Beta"}
	assert.False(t, clan.AddMember("Beta"))
	assert.Equal(t, "Alpha,Beta", clan.Roster)
	assert.True(t, clan.AddMember("Gamma"))
	assert.Equal(t, "Alpha,Beta,Gamma", clan.Roster)
}
