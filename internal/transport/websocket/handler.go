package websocket

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/iamasit07/clash-of-dots/backend/internal/service/game"
	"github.com/iamasit07/clash-of-dots/backend/pkg/uid"
	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

const (
	pongWait     = 60 * time.Second
	pingInterval = 30 * time.Second
)

// Handler manages WebSocket dependencies
type Handler struct {
	ConnManager *ConnectionManager
	GameService *game.Service
	Upgrader    websocket.Upgrader
	log         *zap.Logger
}

// NewHandler creates a handler. An empty allowedOrigins accepts any origin.
func NewHandler(cm *ConnectionManager, gs *game.Service, allowedOrigins []string, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return &Handler{
		ConnManager: cm,
		GameService: gs,
		log:         log.Named("ws"),
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || len(allowed) == 0 || allowed[origin]
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// HandleWebSocket upgrades GET /ws?gameId=... and streams that game's events.
func (h *Handler) HandleWebSocket(c *gin.Context) {
	gameID := c.Query("gameId")
	if !uid.IsValidGameID(gameID) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid game id", "error": "gameId must be a game identifier"})
		return
	}
	if _, err := h.GameService.GetGame(gameID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Game not found", "error": err.Error()})
		return
	}

	connID, err := uid.GenerateConnectionID()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error opening connection", "error": err.Error()})
		return
	}

	conn, err := h.Upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("upgrade failed", zap.Error(err))
		return
	}

	h.handleConnection(connID, gameID, conn)
}

// handleConnection manages the lifecycle of a single WebSocket connection
func (h *Handler) handleConnection(connID, gameID string, conn *websocket.Conn) {
	log := h.log.With(zap.String("conn_id", connID), zap.String("game_id", gameID))

	h.ConnManager.AddConnection(connID, gameID, conn)
	defer h.ConnManager.RemoveConnection(connID)

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	done := make(chan struct{})
	defer close(done)
	go h.keepAlive(connID, done)

	unsubscribe, err := h.GameService.Watch(gameID, game.ListenerFunc(func(e game.Event) {
		if err := h.ConnManager.SendMessage(connID, e); err != nil {
			log.Debug("failed to push event", zap.String("type", string(e.Type)), zap.Error(err))
		}
	}))
	if err != nil {
		// removed by cleanup between lookup and upgrade
		h.ConnManager.SendMessage(connID, ServerMessage{Type: "error", Message: err.Error()})
		return
	}
	defer unsubscribe()

	log.Info("connection opened")
	defer log.Info("connection closed")

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("disconnected unexpectedly", zap.Error(err))
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			h.ConnManager.SendMessage(connID, ServerMessage{Type: "error", Message: "Invalid message format"})
			continue
		}

		h.processMessage(connID, gameID, msg)
	}
}

func (h *Handler) keepAlive(connID string, done <-chan struct{}) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := h.ConnManager.Ping(connID); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

// processMessage routes specific actions
func (h *Handler) processMessage(connID, gameID string, msg ClientMessage) {
	switch msg.Type {
	case MessageMove:
		var payload movePayload
		if _, ok := msg.Payload["column"]; !ok {
			h.ConnManager.SendMessage(connID, ServerMessage{Type: "error", Message: "Missing column"})
			return
		}
		if err := mapstructure.Decode(msg.Payload, &payload); err != nil {
			h.ConnManager.SendMessage(connID, ServerMessage{Type: "error", Message: "Invalid move payload"})
			return
		}
		// events reach this connection through its listener
		if _, _, err := h.GameService.Move(gameID, payload.Column); err != nil {
			h.ConnManager.SendMessage(connID, ServerMessage{Type: "error", Message: err.Error()})
		}

	case MessageReset:
		var payload resetPayload
		if err := mapstructure.Decode(msg.Payload, &payload); err != nil {
			h.ConnManager.SendMessage(connID, ServerMessage{Type: "error", Message: "Invalid reset payload"})
			return
		}
		if _, err := h.GameService.Reset(gameID, game.ParseStarter(payload.Starter)); err != nil {
			h.ConnManager.SendMessage(connID, ServerMessage{Type: "error", Message: err.Error()})
		}

	default:
		h.ConnManager.SendMessage(connID, ServerMessage{Type: "error", Message: "Unknown message type"})
	}
}
