package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oonogame/oono/internal/card"
	"github.com/oonogame/oono/internal/game"
	"github.com/oonogame/oono/internal/handlers"
	"github.com/oonogame/oono/internal/protocol"
)

func newBackend(t *testing.T) (*handlers.GameServer, *httptest.Server) {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	gs := handlers.NewGameServer(logger, time.Minute)
	mux := http.NewServeMux()
	gs.Routes(mux)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return gs, srv
}

func TestClientFullFlow(t *testing.T) {
	gs, srv := newBackend(t)
	c := New(srv.URL)
	ctx := context.Background()

	created, err := c.CreateGame(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.GameID)

	alice, err := c.JoinGame(ctx, created.GameID, "Alice Smith")
	require.NoError(t, err, "names with spaces survive path escaping")
	assert.Equal(t, 0, alice.OrderNum)

	bob, err := c.JoinGame(ctx, created.GameID, "Bob")
	require.NoError(t, err)

	require.NoError(t, c.StartGame(ctx, created.GameID, created.GMToken))

	update, won, err := c.RequestUpdate(ctx, created.GameID, alice.PlayerID)
	require.NoError(t, err)
	require.Nil(t, won)
	assert.True(t, update.Started)
	assert.Len(t, update.Hand, 7)

	// Force a known table so Alice's final card wins the game.
	g, ok := gs.Store.GetGame(created.GameID)
	require.True(t, ok)
	g.Mu.Lock()
	g.WhoseTurn = 0
	g.Discard = card.Deck{card.Number(5, card.Red)}
	g.Players[alice.PlayerID].Hand = card.Deck{card.Number(5, card.Blue)}
	g.Mu.Unlock()

	wonPlace, err := c.PlaceCard(ctx, created.GameID, alice.PlayerID, 0, card.None)
	require.NoError(t, err)
	require.NotNil(t, wonPlace)
	assert.Equal(t, 0, wonPlace.OrderNum)

	update, wonPoll, err := c.RequestUpdate(ctx, created.GameID, bob.PlayerID)
	require.NoError(t, err)
	assert.Nil(t, update)
	require.NotNil(t, wonPoll)
	assert.Equal(t, 0, wonPoll.OrderNum)
}

func TestClientSurfacesRuleErrors(t *testing.T) {
	_, srv := newBackend(t)
	c := New(srv.URL)
	ctx := context.Background()

	_, err := c.JoinGame(ctx, uuid.New(), "Alice")
	require.Error(t, err)
	ge, ok := err.(*game.Error)
	require.True(t, ok)
	assert.Equal(t, protocol.ErrCodeGameNotFound, ge.Code)

	created, err := c.CreateGame(ctx)
	require.NoError(t, err)
	_, err = c.JoinGame(ctx, created.GameID, "Alice")
	require.NoError(t, err)

	err = c.StartGame(ctx, created.GameID, uuid.New())
	require.Error(t, err)
	ge, ok = err.(*game.Error)
	require.True(t, ok)
	assert.Equal(t, protocol.ErrCodeInvalidGMToken, ge.Code)
}

func TestClientServerUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // nothing listens here anymore

	c := New(srv.URL)
	_, err := c.CreateGame(context.Background())
	require.Error(t, err)
	ge, ok := err.(*game.Error)
	require.True(t, ok)
	assert.Equal(t, protocol.ErrCodeServerUnreachable, ge.Code)
}

func TestClientMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "this is not json")
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL)
	_, err := c.CreateGame(context.Background())
	require.Error(t, err)
	ge, ok := err.(*game.Error)
	require.True(t, ok)
	assert.Equal(t, protocol.ErrCodeMalformedResponse, ge.Code)
}

func TestClientUnexpectedEnvelopeType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"type":"card_drawn","payload":null}`)
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL)
	_, err := c.CreateGame(context.Background())
	require.Error(t, err)
	ge, ok := err.(*game.Error)
	require.True(t, ok)
	assert.Equal(t, protocol.ErrCodeMalformedResponse, ge.Code)
}

func TestPoll(t *testing.T) {
	_, srv := newBackend(t)
	c := New(srv.URL)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	created, err := c.CreateGame(ctx)
	require.NoError(t, err)
	alice, err := c.JoinGame(ctx, created.GameID, "Alice")
	require.NoError(t, err)

	ch := c.Poll(ctx, created.GameID, alice.PlayerID, 10*time.Millisecond)

	for i := 0; i < 3; i++ {
		select {
		case res, ok := <-ch:
			require.True(t, ok)
			require.NoError(t, res.Err)
			require.NotNil(t, res.Update)
			assert.False(t, res.Update.Started, "game not started yet")
		case <-time.After(time.Second):
			t.Fatal("poller produced no result")
		}
	}

	cancel()
	assert.Eventually(t, func() bool {
		_, open := <-ch
		return !open
	}, time.Second, 5*time.Millisecond, "channel closes on cancellation")
}
