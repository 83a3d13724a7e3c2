package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/usecase"
)

const shutdownTimeout = 5 * time.Second

type gameUseCase interface {
	NewSession(ctx context.Context) (*usecase.Session, error)
	GetView(ctx context.Context, gameID string) (*usecase.Session, error)

	ApplyMove(ctx context.Context, gameID string, cell int) (*usecase.Session, error)
	JumpToStep(ctx context.Context, gameID string, step int) (*usecase.Session, error)
	ToggleOrder(ctx context.Context, gameID string) (*usecase.Session, error)

	EndSession(ctx context.Context, gameID string) error
}

type Server struct {
	logger  *slog.Logger
	games   gameUseCase
	metrics http.Handler
}

func New(logger *slog.Logger, games gameUseCase, metrics http.Handler) *Server {
	return &Server{
		logger:  logger.With("component", "rest"),
		games:   games,
		metrics: metrics,
	}
}

// Router builds the HTTP routes.
func (that *Server) Router() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)

	router.Get("/ping", pingHandler)
	if that.metrics != nil {
		router.Method(http.MethodGet, "/metrics", that.metrics)
	}

	router.Post("/games", that.createGame)
	router.Route("/games/{id}", func(r chi.Router) {
		r.Get("/", that.getGame)
		r.Delete("/", that.endGame)
		r.Post("/moves", that.applyMove)
		r.Post("/jump", that.jumpToStep)
		r.Post("/order", that.toggleOrder)
	})

	return router
}

// Start serves the router on port until ctx is cancelled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	shutdownDone := make(chan struct{})

	go func() {
		defer close(shutdownDone)

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down HTTP server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	<-shutdownDone

	return nil
}
