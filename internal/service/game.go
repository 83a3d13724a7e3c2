package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/tictactoe"
)

type GameService interface {
	CreateGame(ctx context.Context) (string, *tictactoe.GameState, error)
	UpdateGame(ctx context.Context, id string, game *tictactoe.GameState) error
	DeleteGame(ctx context.Context, id string) error

	GetGameByID(ctx context.Context, id string) (*tictactoe.GameState, error)
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, id string, game *tictactoe.GameState) error
	GetByID(ctx context.Context, id string) (*tictactoe.GameState, error)
	DeleteByID(ctx context.Context, id string) error
}

type gameService struct {
	gameRepo gameRepo
	newID    func() string
}

func NewGameService(gameRepo gameRepo) GameService {
	return &gameService{
		gameRepo: gameRepo,
		newID:    uuid.NewString,
	}
}

// CreateGame stores a fresh game under a new random id.
func (that *gameService) CreateGame(ctx context.Context) (string, *tictactoe.GameState, error) {
	gameID := that.newID()
	game := tictactoe.NewGameState()

	if err := that.gameRepo.CreateOrUpdate(ctx, gameID, game); err != nil {
		return "", nil, fmt.Errorf("failed to create game in storage: %w", err)
	}

	return gameID, game, nil
}

func (that *gameService) GetGameByID(ctx context.Context, id string) (*tictactoe.GameState, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve game from storage: %w", err)
	}

	return game, nil
}

func (that *gameService) UpdateGame(ctx context.Context, id string, game *tictactoe.GameState) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, id, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}

func (that *gameService) DeleteGame(ctx context.Context, id string) error {
	if err := that.gameRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	return nil
}
