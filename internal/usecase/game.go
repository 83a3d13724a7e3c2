package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/tictactoe"
)

// Session is a hosted game as seen by a client.
type Session struct {
	ID      string         `json:"id"`
	View    tictactoe.View `json:"view"`
	Applied bool           `json:"applied"`
}

type GameUseCase interface {
	NewSession(ctx context.Context) (*Session, error)
	GetView(ctx context.Context, gameID string) (*Session, error)

	ApplyMove(ctx context.Context, gameID string, cell int) (*Session, error)
	JumpToStep(ctx context.Context, gameID string, step int) (*Session, error)
	ToggleOrder(ctx context.Context, gameID string) (*Session, error)

	EndSession(ctx context.Context, gameID string) error
}

type gameService interface {
	CreateGame(ctx context.Context) (string, *tictactoe.GameState, error)
	GetGameByID(ctx context.Context, id string) (*tictactoe.GameState, error)
	UpdateGame(ctx context.Context, id string, game *tictactoe.GameState) error
	DeleteGame(ctx context.Context, id string) error
}

type recorder interface {
	SessionStarted()
	SessionEnded()
	Move(applied bool)
	Jump()
	GameFinished(winner entity.Cell)
}

type gameUseCase struct {
	logger *slog.Logger

	gameService gameService
	recorder    recorder

	// mu serialises load-modify-store cycles so concurrent requests on one game cannot lose updates.
	mu sync.Mutex
}

func NewGameUseCase(logger *slog.Logger, gameService gameService, recorder recorder) GameUseCase {
	return &gameUseCase{
		logger:      logger.With("component", "usecase"),
		gameService: gameService,
		recorder:    recorder,
	}
}

func (that *gameUseCase) NewSession(ctx context.Context) (*Session, error) {
	gameID, game, err := that.gameService.CreateGame(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not create game: %w", err)
	}

	that.recorder.SessionStarted()
	that.logger.Info("game session started", "gameID", gameID)

	return &Session{ID: gameID, View: game.View()}, nil
}

func (that *gameUseCase) GetView(ctx context.Context, gameID string) (*Session, error) {
	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return &Session{ID: gameID, View: game.View()}, nil
}

func (that *gameUseCase) ApplyMove(ctx context.Context, gameID string, cell int) (*Session, error) {
	log := that.logger.With("method", "ApplyMove", "gameID", gameID, "cell", cell)

	session, err := that.update(ctx, gameID, func(game *tictactoe.GameState) (bool, error) {
		return game.ApplyMove(cell)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to make move: %w", err)
	}

	that.recorder.Move(session.Applied)

	if !session.Applied {
		log.Debug("move ignored")
		return session, nil
	}

	if result := entity.Evaluate(session.View.Board); result.HasWinner() {
		that.recorder.GameFinished(result.Winner)
		log.Info("game won", "winner", result.Winner.String())
	} else if session.View.Board.MarksCount() == entity.BoardSize {
		that.recorder.GameFinished(entity.EmptyCell)
		log.Info("game drawn")
	}

	return session, nil
}

func (that *gameUseCase) JumpToStep(ctx context.Context, gameID string, step int) (*Session, error) {
	session, err := that.update(ctx, gameID, func(game *tictactoe.GameState) (bool, error) {
		return true, game.JumpToStep(step)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to jump to step: %w", err)
	}

	that.recorder.Jump()

	return session, nil
}

func (that *gameUseCase) ToggleOrder(ctx context.Context, gameID string) (*Session, error) {
	session, err := that.update(ctx, gameID, func(game *tictactoe.GameState) (bool, error) {
		game.ToggleOrder()

		return true, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to toggle order: %w", err)
	}

	return session, nil
}

func (that *gameUseCase) EndSession(ctx context.Context, gameID string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.gameService.DeleteGame(ctx, gameID); err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}

	that.recorder.SessionEnded()
	that.logger.Info("game session ended", "gameID", gameID)

	return nil
}

// update loads the game, runs mutate on it and stores it again when mutate reports a change.
func (that *gameUseCase) update(
	ctx context.Context,
	gameID string,
	mutate func(game *tictactoe.GameState) (bool, error),
) (*Session, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	changed, err := mutate(game)
	if err != nil {
		return nil, err
	}

	if changed {
		if err = that.gameService.UpdateGame(ctx, gameID, game); err != nil {
			return nil, fmt.Errorf("failed to store game: %w", err)
		}
	}

	return &Session{ID: gameID, View: game.View(), Applied: changed}, nil
}
