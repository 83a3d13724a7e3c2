package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"nhooyr.io/websocket"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/usecase"
)

func (that *Server) handleNewGame(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleNewGame")

	session, err := that.gameUseCase.NewSession(ctx)
	if err != nil {
		log.Error("failed to create game", "error", err)
		return that.sendErrorResponse(ctx, conn, msg.Action, "failed to create a new game")
	}

	return that.sendSession(ctx, conn, msg.Action, session)
}

func (that *Server) handleView(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	payloadReq, ok, err := that.readGamePayload(ctx, msg, conn)
	if !ok {
		return err
	}

	session, err := that.gameUseCase.GetView(ctx, payloadReq.GameID)

	return that.reply(ctx, conn, msg.Action, session, err)
}

func (that *Server) handleMove(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	payloadReq, ok, err := that.readGamePayload(ctx, msg, conn)
	if !ok {
		return err
	}

	if payloadReq.Cell == nil {
		return that.sendErrorResponse(ctx, conn, msg.Action, "Cell is required")
	}

	session, err := that.gameUseCase.ApplyMove(ctx, payloadReq.GameID, *payloadReq.Cell)

	return that.reply(ctx, conn, msg.Action, session, err)
}

func (that *Server) handleJump(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	payloadReq, ok, err := that.readGamePayload(ctx, msg, conn)
	if !ok {
		return err
	}

	if payloadReq.Step == nil {
		return that.sendErrorResponse(ctx, conn, msg.Action, "Step is required")
	}

	session, err := that.gameUseCase.JumpToStep(ctx, payloadReq.GameID, *payloadReq.Step)

	return that.reply(ctx, conn, msg.Action, session, err)
}

func (that *Server) handleOrder(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	payloadReq, ok, err := that.readGamePayload(ctx, msg, conn)
	if !ok {
		return err
	}

	session, err := that.gameUseCase.ToggleOrder(ctx, payloadReq.GameID)

	return that.reply(ctx, conn, msg.Action, session, err)
}

func (that *Server) handleEnd(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	payloadReq, ok, err := that.readGamePayload(ctx, msg, conn)
	if !ok {
		return err
	}

	if err = that.gameUseCase.EndSession(ctx, payloadReq.GameID); err != nil {
		return that.reply(ctx, conn, msg.Action, nil, err)
	}

	return that.sendMessage(ctx, conn, msg.Action, Payload{GameID: payloadReq.GameID})
}

// readGamePayload decodes a payload that must name a game. When ok is false the client has
// already been told what was wrong and err only reports a failure to tell it.
func (that *Server) readGamePayload(ctx context.Context, msg *Message, conn *websocket.Conn) (Payload, bool, error) {
	var payloadReq Payload

	if len(msg.Payload) == 0 {
		return payloadReq, false, that.sendErrorResponse(ctx, conn, msg.Action, "Game is required")
	}

	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return payloadReq, false, that.sendErrorResponse(ctx, conn, msg.Action, "invalid payload")
	}

	if payloadReq.GameID == "" {
		return payloadReq, false, that.sendErrorResponse(ctx, conn, msg.Action, "Game is required")
	}

	return payloadReq, true, nil
}

func (that *Server) reply(ctx context.Context, conn *websocket.Conn, action string, session *usecase.Session, err error) error {
	switch {
	case err == nil:
		return that.sendSession(ctx, conn, action, session)
	case errors.Is(err, apperror.ErrGameNotFound):
		return that.sendErrorResponse(ctx, conn, action, apperror.ErrGameNotFound.Error())
	case apperror.IsInvalidArgument(err):
		return that.sendErrorResponse(ctx, conn, action, err.Error())
	default:
		that.logger.Error("action failed", "action", action, "error", err)

		if sendErr := that.sendErrorResponse(ctx, conn, action, "Internal Server Error"); sendErr != nil {
			return sendErr
		}

		return fmt.Errorf("%s: %w", action, err)
	}
}

func (that *Server) sendSession(ctx context.Context, conn *websocket.Conn, action string, session *usecase.Session) error {
	return that.sendMessage(ctx, conn, action, Payload{
		GameID:  session.ID,
		View:    &session.View,
		Applied: session.Applied,
	})
}
