package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"nhooyr.io/websocket"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/usecase"
)

const (
	writeTimeout    = 5 * time.Second
	shutdownTimeout = 5 * time.Second
)

const (
	actionNew   = "game:new"
	actionView  = "game:view"
	actionMove  = "game:move"
	actionJump  = "game:jump"
	actionOrder = "game:order"
	actionEnd   = "game:end"
)

type gameUseCase interface {
	NewSession(ctx context.Context) (*usecase.Session, error)
	GetView(ctx context.Context, gameID string) (*usecase.Session, error)

	ApplyMove(ctx context.Context, gameID string, cell int) (*usecase.Session, error)
	JumpToStep(ctx context.Context, gameID string, step int) (*usecase.Session, error)
	ToggleOrder(ctx context.Context, gameID string) (*usecase.Session, error)

	EndSession(ctx context.Context, gameID string) error
}

type handlerFunc func(ctx context.Context, message *Message, conn *websocket.Conn) error

type Server struct {
	logger      *slog.Logger
	gameUseCase gameUseCase

	handlers map[string]handlerFunc
	conns    sync.WaitGroup
}

func New(logger *slog.Logger, gameUseCase gameUseCase) *Server {
	server := &Server{
		logger:      logger.With("component", "websocket"),
		gameUseCase: gameUseCase,

		handlers: make(map[string]handlerFunc),
	}

	server.handlers[actionNew] = server.handleNewGame
	server.handlers[actionView] = server.handleView
	server.handlers[actionMove] = server.handleMove
	server.handlers[actionJump] = server.handleJump
	server.handlers[actionOrder] = server.handleOrder
	server.handlers[actionEnd] = server.handleEnd

	return server
}

// Start - starts WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.Handle("/ws", that)

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	shutdownDone := make(chan struct{})

	go func() {
		defer close(shutdownDone)

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down WebSocket server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	<-shutdownDone

	// hijacked connections outlive Shutdown
	that.conns.Wait()

	return nil
}

// ServeHTTP upgrades the request and processes messages until the client goes away.
func (that *Server) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "ServeHTTP")

	that.conns.Add(1)
	defer that.conns.Done()

	conn, err := websocket.Accept(writer, req, nil)
	if err != nil {
		log.Error("failed to accept websocket", "error", err)
		return
	}

	defer func() { _ = conn.Close(websocket.StatusInternalError, "connection closed") }()

	log.Info("WebSocket connection established")

	err = that.handleMessages(req.Context(), conn)

	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		log.Info("WebSocket connection closed")
	default:
		log.Error("error handling messages", "error", err)
	}
}

// handleMessages - processes messages from the client.
func (that *Server) handleMessages(ctx context.Context, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleMessages")

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return fmt.Errorf("failed to read message: %w", err)
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Error("failed to unmarshal message", "error", err)
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)

			if err = that.sendErrorResponse(ctx, conn, message.Action, "unknown action"); err != nil {
				return err
			}

			continue
		}

		if err = handler(ctx, &message, conn); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}
