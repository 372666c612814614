package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrimhub/scrimhub/internal/model"
)

func TestTournamentStoreCRUD(t *testing.T) {
	ctx := context.Background()
	store := NewTournamentStore(setupTestDB(t))

	tournament := &model.Tournament{
		ScrimID:   uuid.NewString(),
		Name:      "Summer Cup",
		Game:      "BGMI",
		Status:    "upcoming",
		Slots:     16,
		PrizePool: "5000",
	}
	require.NoError(t, store.CreateTournament(ctx, tournament))

	fetched, err := store.GetTournament(ctx, tournament.ScrimID)
	require.NoError(t, err)
	assert.Equal(t, "Summer Cup", fetched.Name)
	assert.Equal(t, 16, fetched.Slots)

	require.NoError(t, store.UpdateTournament(ctx, tournament.ScrimID, map[string]string{
		"status": "live",
	}))
	fetched, err = store.GetTournament(ctx, tournament.ScrimID)
	require.NoError(t, err)
	assert.Equal(t, "live", fetched.Status)
	assert.Equal(t, "Summer Cup", fetched.Name)

	require.NoError(t, store.DeleteTournament(ctx, tournament.ScrimID))
	_, err = store.GetTournament(ctx, tournament.ScrimID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHasRegistration(t *testing.T) {
	ctx := context.Background()
	store := NewTournamentStore(setupTestDB(t))

	reg := &model.Registration{
		RegistrationID: uuid.NewString(),
		ScrimID:        "s1",
		ClanID:         "c1",
		ClanName:       "Foo",
	}
	require.NoError(t, store.CreateRegistration(ctx, reg))

	exists, err := store.HasRegistration(ctx, "s1", "c1")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = store.HasRegistration(ctx, "s1", "c2")
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = store.HasRegistration(ctx, "s2", "c1")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUpsertLeaderboardEntry(t *testing.T) {
	ctx := context.Background()
	store := NewTournamentStore(setupTestDB(t))

	// first write appends
	require.NoError(t, store.UpsertLeaderboardEntry(ctx, "c1", map[string]string{
		"clanName":    "Foo",
		"totalPoints": "120",
		"avgRank":     "2.5",
	}))

	entries, err := store.ListLeaderboard(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "c1", entries[0].ClanID)
	assert.Equal(t, 120, entries[0].TotalPoints)
	assert.Equal(t, 2.5, entries[0].AvgRank)

	// second write updates in place
	require.NoError(t, store.UpsertLeaderboardEntry(ctx, "c1", map[string]string{
		"totalPoints": "150",
	}))

	entries, err = store.ListLeaderboard(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 150, entries[0].TotalPoints)
	assert.Equal(t, "Foo", entries[0].ClanName)
}
