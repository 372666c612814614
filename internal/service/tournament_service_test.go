package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrimhub/scrimhub/internal/httputil"
	"github.com/scrimhub/scrimhub/internal/model"
)

func TestCreateTournament(t *testing.T) {
	ctx := context.Background()
	env := setupEnv(t)

	created, err := env.tournamentService.CreateTournament(ctx, model.Tournament{
		Name:  "Summer Cup",
		Game:  "BGMI",
		Slots: 16,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ScrimID)
	assert.Equal(t, "upcoming", created.Status)

	fetched, err := env.tournamentService.GetTournament(ctx, created.ScrimID)
	require.NoError(t, err)
	assert.Equal(t, "Summer Cup", fetched.Name)
}

func TestCreateTournamentRequiresNameAndGame(t *testing.T) {
	env := setupEnv(t)
	_, err := env.tournamentService.CreateTournament(context.Background(), model.Tournament{Name: "x"})
	assert.ErrorIs(t, err, httputil.ErrBadRequest)
}

func TestRegisterForTournament(t *testing.T) {
	ctx := context.Background()
	env := setupEnv(t)
	env.seedUser(t, model.User{UserID: "leader", Username: "Alpha"})

	clan, err := env.clanService.CreateClan(ctx, "leader", CreateClanInput{ClanName: "Foo", ClanTag: "FOO"})
	require.NoError(t, err)

	tournament, err := env.tournamentService.CreateTournament(ctx, model.Tournament{Name: "Cup", Game: "BGMI"})
	require.NoError(t, err)

	reg, err := env.tournamentService.Register(ctx, "leader", tournament.ScrimID)
	require.NoError(t, err)
	assert.Equal(t, clan.ClanID, reg.ClanID)
	assert.Equal(t, "Foo", reg.ClanName)
	assert.Equal(t, tournament.ScrimID, reg.ScrimID)

	t.Run("second registration is rejected", func(t *testing.T) {
		_, err := env.tournamentService.Register(ctx, "leader", tournament.ScrimID)
		assert.ErrorIs(t, err, httputil.ErrBadRequest)

		regs, err := env.tournamentService.ListRegistrations(ctx)
		require.NoError(t, err)
		assert.Len(t, regs, 1)
	})

	t.Run("unknown tournament", func(t *testing.T) {
		_, err := env.tournamentService.Register(ctx, "leader", "missing")
		assert.ErrorIs(t, err, httputil.ErrNotFound)
	})

	t.Run("clanless user", func(t *testing.T) {
		env.seedUser(t, model.User{UserID: "loner", Username: "Solo"})
		_, err := env.tournamentService.Register(ctx, "loner", tournament.ScrimID)
		assert.ErrorIs(t, err, httputil.ErrBadRequest)
	})
}

func TestLeaderboardOrdering(t *testing.T) {
	ctx := context.Background()
	env := setupEnv(t)

	seed := []struct {
		clanID string
		points string
		rank   string
	}{
		{"c1", "100", "3.0"},
		{"c2", "150", "2.0"},
		{"c3", "100", "1.5"},
		{"c4", "50", "1.0"},
	}
	for _, s := range seed {
		require.NoError(t, env.tournamentService.UpdateLeaderboard(ctx, s.clanID, map[string]string{
			"totalPoints": s.points,
			"avgRank":     s.rank,
		}))
	}

	entries, err := env.tournamentService.Leaderboard(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 4)

	// points descending, ties broken by ascending average rank
	got := make([]string, 0, len(entries))
	for _, e := range entries {
		got = append(got, e.ClanID)
	}
	assert.Equal(t, []string{"c2", "c3", "c1", "c4"}, got)
}

func TestUpdateTournamentPartial(t *testing.T) {
	ctx := context.Background()
	env := setupEnv(t)

	created, err := env.tournamentService.CreateTournament(ctx, model.Tournament{
		Name: "Cup", Game: "BGMI", PrizePool: "1000",
	})
	require.NoError(t, err)

	require.NoError(t, env.tournamentService.UpdateTournament(ctx, created.ScrimID, map[string]string{
		"status": "live",
	}))

	fetched, err := env.tournamentService.GetTournament(ctx, created.ScrimID)
	require.NoError(t, err)
	assert.Equal(t, "live", fetched.Status)
	assert.Equal(t, "1000", fetched.PrizePool)

	err = env.tournamentService.UpdateTournament(ctx, "missing", map[string]string{"status": "live"})
	assert.ErrorIs(t, err, httputil.ErrNotFound)
}
