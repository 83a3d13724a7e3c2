package websocket

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/metrics"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/repository"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/service"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/usecase"
)

type client struct {
	t    *testing.T
	ctx  context.Context
	conn *websocket.Conn
}

func newTestClient(t *testing.T) *client {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	games := usecase.NewGameUseCase(logger, service.NewGameService(repository.NewMemoryGameRepository(0)), metrics.New())

	srv := httptest.NewServer(New(logger, games))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)

	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close(websocket.StatusNormalClosure, "bye") })

	return &client{t: t, ctx: ctx, conn: conn}
}

func (that *client) send(action string, payload any) Payload {
	that.t.Helper()

	msg := map[string]any{"action": action}
	if payload != nil {
		msg["payload"] = payload
	}

	require.NoError(that.t, wsjson.Write(that.ctx, that.conn, msg))

	return that.read(action)
}

func (that *client) read(action string) Payload {
	that.t.Helper()

	var resp Message
	require.NoError(that.t, wsjson.Read(that.ctx, that.conn, &resp))
	require.Equal(that.t, action, resp.Action)

	var payload Payload
	require.NoError(that.t, json.Unmarshal(resp.Payload, &payload))

	return payload
}

func TestServer_PlayGame(t *testing.T) {
	// Given: a connected client with a new game
	c := newTestClient(t)
	created := c.send(actionNew, nil)
	require.NotEmpty(t, created.GameID)
	require.NotNil(t, created.View)
	assert.Equal(t, "Next player: X", created.View.Status)

	// When: X plays the centre and O the top middle
	first := c.send(actionMove, map[string]any{"game_id": created.GameID, "cell": 4})
	second := c.send(actionMove, map[string]any{"game_id": created.GameID, "cell": 1})

	// Then: both moves are applied and annotated
	assert.True(t, first.Applied)
	assert.True(t, second.Applied)
	assert.Equal(t, " (2, 1)", second.View.Moves[2].Location)

	// When: the same cell is played again
	ignored := c.send(actionMove, map[string]any{"game_id": created.GameID, "cell": 1})

	// Then: the move is ignored without an error
	assert.False(t, ignored.Applied)
	assert.Empty(t, ignored.Error)
	assert.Equal(t, 2, ignored.View.StepNumber)

	// When: jumping back and toggling the order
	jumped := c.send(actionJump, map[string]any{"game_id": created.GameID, "step": 1})
	toggled := c.send(actionOrder, map[string]any{"game_id": created.GameID})

	// Then: the view reflects both
	assert.Equal(t, 1, jumped.View.StepNumber)
	assert.False(t, toggled.View.SortAscending)
	assert.Equal(t, 2, toggled.View.Moves[0].Step)

	// When: the view is requested again
	viewed := c.send(actionView, map[string]any{"game_id": created.GameID})

	// Then: it matches the last reply
	assert.Equal(t, toggled.View, viewed.View)

	// When: the game is ended
	ended := c.send(actionEnd, map[string]any{"game_id": created.GameID})
	assert.Empty(t, ended.Error)

	// Then: it can no longer be viewed
	gone := c.send(actionView, map[string]any{"game_id": created.GameID})
	assert.Equal(t, "game not found", gone.Error)
}

func TestServer_Errors(t *testing.T) {
	c := newTestClient(t)
	created := c.send(actionNew, nil)

	t.Run("Unknown action", func(t *testing.T) {
		resp := c.send("game:fly", nil)

		assert.Equal(t, "unknown action", resp.Error)
	})

	t.Run("Missing game id", func(t *testing.T) {
		resp := c.send(actionMove, map[string]any{"cell": 1})

		assert.Equal(t, "Game is required", resp.Error)
	})

	t.Run("Missing cell", func(t *testing.T) {
		resp := c.send(actionMove, map[string]any{"game_id": created.GameID})

		assert.Equal(t, "Cell is required", resp.Error)
	})

	t.Run("Step out of range", func(t *testing.T) {
		resp := c.send(actionJump, map[string]any{"game_id": created.GameID, "step": 4})

		assert.Contains(t, resp.Error, "invalid step")
	})

	t.Run("Cell out of range", func(t *testing.T) {
		resp := c.send(actionMove, map[string]any{"game_id": created.GameID, "cell": -1})

		assert.Contains(t, resp.Error, "invalid cell index")
	})

	t.Run("Invalid JSON is skipped", func(t *testing.T) {
		require.NoError(t, c.conn.Write(c.ctx, websocket.MessageText, []byte("{")))

		// the next valid message is still answered
		resp := c.send(actionView, map[string]any{"game_id": created.GameID})
		assert.Empty(t, resp.Error)
	})
}
