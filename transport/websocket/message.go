package websocket

import (
	"context"
	"encoding/json"
	"fmt"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/tictactoe"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Payload is read from requests and written to responses.
type Payload struct {
	GameID  string          `json:"game_id,omitempty"`
	Cell    *int            `json:"cell,omitempty"`
	Step    *int            `json:"step,omitempty"`
	View    *tictactoe.View `json:"view,omitempty"`
	Applied bool            `json:"applied,omitempty"`
	Error   string          `json:"error,omitempty"`
}

func (that *Server) sendMessage(ctx context.Context, conn *websocket.Conn, action string, payload Payload) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	response := Message{
		Action:  action,
		Payload: payloadJSON,
	}

	writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	if err = wsjson.Write(writeCtx, conn, response); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *Server) sendErrorResponse(ctx context.Context, conn *websocket.Conn, action, errorMsg string) error {
	if err := that.sendMessage(ctx, conn, action, Payload{Error: errorMsg}); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}

	return nil
}
