package websocket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/dropfour/connectfour-backend/internal/entity"
	"github.com/dropfour/connectfour-backend/internal/registry"
)

const shutdownTimeout = 5 * time.Second

type coordinator interface {
	Connect(channel registry.Channel) (*entity.Player, error)
	CreateGame(playerID string)
	JoinGame(playerID, gameID string)
	MakeMove(playerID, gameID string, column int)
	Disconnect(channel registry.Channel)
}

type Server struct {
	logger      *slog.Logger
	coordinator coordinator
	upgrader    websocket.Upgrader
}

func New(logger *slog.Logger, coordinator coordinator) *Server {
	return &Server{
		logger:      logger,
		coordinator: coordinator,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(_ *http.Request) bool {
				return true
			},
		},
	}
}

// Start - starts the WebSocket server and blocks until ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", that.handleConnection)

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
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

	return nil
}

// handleConnection - upgrades the connection and serves it until closure.
func (that *Server) handleConnection(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "handleConnection")

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	ch := newChannel(conn)
	defer func() {
		if err = ch.Close(); err != nil {
			log.Error("failed to close connection", "error", err)
		}
	}()

	player, err := that.coordinator.Connect(ch)
	if err != nil {
		log.Error("failed to bind connection to an identity", "error", err)
		return
	}

	log = log.With("playerID", player.ID)
	log.Info("WebSocket connection established")

	that.readMessages(player.ID, ch)

	that.coordinator.Disconnect(ch)

	log.Info("WebSocket connection closed")
}
