package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/tictactoe"
)

const defaultKeyPrefix = "game:"

type GameRepository interface {
	CreateOrUpdate(ctx context.Context, id string, game *tictactoe.GameState) error
	GetByID(ctx context.Context, id string) (*tictactoe.GameState, error)
	DeleteByID(ctx context.Context, id string) error
}

type dbGame struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewGameRepository stores games in Redis under prefix+id. Every write refreshes the key's TTL;
// a zero TTL keeps keys until they are deleted.
func NewGameRepository(client *redis.Client, prefix string, ttl time.Duration) GameRepository {
	if prefix == "" {
		prefix = defaultKeyPrefix
	}

	return &dbGame{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (that *dbGame) key(id string) string {
	return that.prefix + id
}

func (that *dbGame) CreateOrUpdate(ctx context.Context, id string, game *tictactoe.GameState) error {
	gameJSON, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	if err = that.client.Set(ctx, that.key(id), gameJSON, that.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set game: %w", err)
	}

	return nil
}

func (that *dbGame) GetByID(ctx context.Context, id string) (*tictactoe.GameState, error) {
	response, err := that.client.Get(ctx, that.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", apperror.ErrGameNotFound, id)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	game := &tictactoe.GameState{}
	if err = json.Unmarshal(response, game); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return game, nil
}

func (that *dbGame) DeleteByID(ctx context.Context, id string) error {
	deleted, err := that.client.Del(ctx, that.key(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete game by id: %w", err)
	}

	if deleted == 0 {
		return fmt.Errorf("%w: %s", apperror.ErrGameNotFound, id)
	}

	return nil
}
