package bot

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrimhub/scrimhub/internal/model"
	"github.com/scrimhub/scrimhub/internal/rowstore"
	"github.com/scrimhub/scrimhub/internal/store"
)

func TestInteractionHandler(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	handler := NewInteractionHandler(pub, nil, NewState(), nil)

	serve := func(body string, sign func(timestamp, body string) []byte) *httptest.ResponseRecorder {
		timestamp := fmt.Sprint(time.Now().Unix())
		sig := sign(timestamp, body)

		r := httptest.NewRequest("POST", "/interactions", strings.NewReader(body))
		r.Header.Set("X-Signature-Ed25519", hex.EncodeToString(sig))
		r.Header.Set("X-Signature-Timestamp", timestamp)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		return w
	}

	validSig := func(timestamp, body string) []byte {
		return ed25519.Sign(priv, []byte(timestamp+body))
	}

	t.Run("ping answers pong", func(t *testing.T) {
		w := serve(`{"type":1}`, validSig)
		require.Equal(t, 200, w.Code, w.Body.String())

		var resp discordgo.InteractionResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, discordgo.InteractionResponsePong, resp.Type)
	})

	t.Run("bad signature is rejected", func(t *testing.T) {
		_, otherPriv, err := ed25519.GenerateKey(rand.Reader)
		require.NoError(t, err)

		w := serve(`{"type":1}`, func(timestamp, body string) []byte {
			return ed25519.Sign(otherPriv, []byte(timestamp+body))
		})
		assert.Equal(t, 401, w.Code)
	})

	t.Run("tampered body is rejected", func(t *testing.T) {
		w := serve(`{"type":1}`, func(timestamp, body string) []byte {
			return ed25519.Sign(priv, []byte(timestamp+`{"type":2}`))
		})
		assert.Equal(t, 401, w.Code)
	})

	t.Run("tournaments command is answered from the cache", func(t *testing.T) {
		handler.state.Put(model.Tournament{ScrimID: "s1", Name: "Summer Cup", Game: "BGMI", Slots: 16})

		w := serve(`{"type":2,"data":{"id":"1","name":"tournaments","type":1}}`, validSig)
		require.Equal(t, 200, w.Code, w.Body.String())

		var resp discordgo.InteractionResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, discordgo.InteractionResponseChannelMessageWithSource, resp.Type)
		assert.Contains(t, resp.Data.Content, "Summer Cup")
		assert.Contains(t, resp.Data.Content, "16 slots")
	})
}

func TestTournamentListEmpty(t *testing.T) {
	h := NewInteractionHandler(nil, nil, NewState(), nil)
	assert.Equal(t, "No active tournaments right now.", h.tournamentList())
}

func TestClanSummary(t *testing.T) {
	ctx := context.Background()
	db := rowstore.NewMemoryStore(store.Tables()...)
	clans := store.NewClanStore(db)
	require.NoError(t, clans.CreateClan(ctx, &model.Clan{
		ClanID:      "c1",
		ClanName:    "Foo",
		ClanTag:     "FOO",
		CaptainName: "Alpha",
		Roster:      "Alpha,Beta",
	}))

	h := NewInteractionHandler(nil, nil, NewState(), clans)

	summary, err := h.clanSummary(ctx, "foo")
	require.NoError(t, err)
	assert.Contains(t, summary, "Foo")
	assert.Contains(t, summary, "Alpha")
	assert.Contains(t, summary, "2 members")

	summary, err = h.clanSummary(ctx, "NOPE")
	require.NoError(t, err)
	assert.Contains(t, summary, "No clan with tag")

	summary, err = h.clanSummary(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "Give me a clan tag to look up.", summary)
}

func TestParsePublicKey(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	parsed, err := ParsePublicKey(hex.EncodeToString(pub))
	require.NoError(t, err)
	assert.Equal(t, pub, parsed)

	_, err = ParsePublicKey("")
	assert.Error(t, err)
	_, err = ParsePublicKey("zz")
	assert.Error(t, err)
	_, err = ParsePublicKey("abcd")
	assert.Error(t, err)
}
