package websocket

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/gorilla/websocket"

	"github.com/dropfour/connectfour-backend/internal/connectfour"
	"github.com/dropfour/connectfour-backend/internal/protocol"
)

// readMessages - processes messages from the client until the connection
// closes. Malformed envelopes are logged and skipped rather than answered,
// to tolerate protocol skew.
func (that *Server) readMessages(playerID string, ch *channel) {
	log := that.logger.With("method", "readMessages", "playerID", playerID)

	for {
		_, reqBody, err := ch.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Error("unexpected connection close", "error", err)
			}
			return
		}

		var envelope protocol.Envelope
		if err = json.Unmarshal(reqBody, &envelope); err != nil {
			log.Error("failed to unmarshal message", "error", err)
			continue
		}

		that.dispatch(playerID, &envelope, log)
	}
}

func (that *Server) dispatch(playerID string, envelope *protocol.Envelope, log *slog.Logger) {
	switch envelope.Type {
	case protocol.TypeCreateGame:
		that.coordinator.CreateGame(playerID)

	case protocol.TypeJoinGame:
		req, err := decodeRequest(envelope)
		if err != nil || req.GameID == "" {
			log.Error("malformed join_game request", "error", err)
			return
		}

		that.coordinator.JoinGame(playerID, req.GameID)

	case protocol.TypeMakeMove:
		req, err := decodeRequest(envelope)
		if err != nil || req.GameID == "" || req.Column == nil {
			log.Error("malformed make_move request", "error", err)
			return
		}

		if *req.Column < 0 || *req.Column >= connectfour.Columns {
			log.Error("column out of range", "column", *req.Column)
			return
		}

		that.coordinator.MakeMove(playerID, req.GameID, *req.Column)

	default:
		log.Error("unknown message type", "type", envelope.Type)
	}
}

func decodeRequest(envelope *protocol.Envelope) (*protocol.Request, error) {
	var req protocol.Request
	if err := json.Unmarshal(envelope.Payload, &req); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return &req, nil
}
