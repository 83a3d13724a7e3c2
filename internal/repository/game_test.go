package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-timetravel/testing/suite"
)

func newPlayedGame(t *testing.T, cells ...int) *tictactoe.GameState {
	t.Helper()

	game := tictactoe.NewGameState()
	for _, cell := range cells {
		_, err := game.ApplyMove(cell)
		require.NoError(t, err)
	}

	return game
}

func TestGameRepository_CreateOrUpdate(t *testing.T) {
	ctx, st := suite.New(t)

	gameRepo := NewGameRepository(st.Storage, "", 0)

	// Given: a game with two moves
	game := newPlayedGame(t, 4, 0)

	// When: CreateOrUpdate is called
	err := gameRepo.CreateOrUpdate(ctx, "123", game)

	// Then: no error should be returned, and the game is stored under the default prefix
	require.NoError(t, err)
	exists, err := st.Storage.Exists(ctx, "game:123").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), exists)
}

func TestGameRepository_GetByID(t *testing.T) {
	t.Run("GetByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage, "", 0)

		// Given: a stored game viewed at an earlier step
		game := newPlayedGame(t, 4, 0, 8)
		require.NoError(t, game.JumpToStep(1))
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, "123", game))

		// When: GetByID is called with the existing ID
		retrievedGame, err := gameRepo.GetByID(ctx, "123")

		// Then: the retrieved game should match the saved game
		require.NoError(t, err)
		assert.Equal(t, game.View(), retrievedGame.View())
		assert.Equal(t, game.HistoryLen(), retrievedGame.HistoryLen())
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage, "", 0)

		// When: GetByID is called with a non-existent ID
		retrievedGame, err := gameRepo.GetByID(ctx, "9999999")

		// Then: an ErrGameNotFound error should be returned
		require.ErrorIs(t, err, apperror.ErrGameNotFound)
		assert.Nil(t, retrievedGame)
	})

	t.Run("GetByID_Corrupt", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage, "", 0)

		// Given: a key holding a snapshot that breaks the game invariants
		require.NoError(t, st.Storage.Set(ctx, "game:bad", `{"history":[],"step_number":0}`, 0).Err())

		// When: the game is loaded
		_, err := gameRepo.GetByID(ctx, "bad")

		// Then: ErrCorruptState is returned
		require.ErrorIs(t, err, apperror.ErrCorruptState)
	})
}

func TestGameRepository_DeleteByID(t *testing.T) {
	t.Run("DeleteByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage, "", 0)

		// Given: a stored game
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, "123", tictactoe.NewGameState()))

		// When: DeleteByID is called with the existing ID
		err := gameRepo.DeleteByID(ctx, "123")

		// Then: no error should be returned and the game is gone
		require.NoError(t, err)

		_, err = gameRepo.GetByID(ctx, "123")
		require.ErrorIs(t, err, apperror.ErrGameNotFound)
	})

	t.Run("DeleteByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage, "", 0)

		// When: DeleteByID is called with a non-existent ID
		err := gameRepo.DeleteByID(ctx, "9999999")

		// Then: an ErrGameNotFound error should be returned
		require.ErrorIs(t, err, apperror.ErrGameNotFound)
	})
}

func TestGameRepository_PrefixAndTTL(t *testing.T) {
	ctx, st := suite.New(t)

	const ttl = 2 * time.Second

	gameRepo := NewGameRepository(st.Storage, "custom:games:", ttl)

	// Given: a game stored with a custom prefix and a short TTL
	require.NoError(t, gameRepo.CreateOrUpdate(ctx, "abc", tictactoe.NewGameState()))

	// Then: the key uses the prefix and carries the TTL
	keyTTL, err := st.Storage.TTL(ctx, "custom:games:abc").Result()
	require.NoError(t, err)
	assert.Greater(t, keyTTL, time.Duration(0))
	assert.LessOrEqual(t, keyTTL, ttl)

	// When: the TTL passes
	st.FastForward(ttl + time.Second)

	// Then: the game is gone
	_, err = gameRepo.GetByID(ctx, "abc")
	require.ErrorIs(t, err, apperror.ErrGameNotFound)
}
