package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Envelope types exchanged over the session socket.
const (
	TypeMessage = "message"
	TypeButton  = "button"
	TypePing    = "ping"
	TypeSession = "session"
	TypeReply   = "reply"
	TypePong    = "pong"
	TypeError   = "error"
)

const (
	socketWriteWait = 10 * time.Second
	socketIdle      = 5 * time.Minute
)

// Envelope is one WebSocket frame. Data carries {"text": ...} for messages
// and {"tag": ...} for button presses.
type Envelope struct {
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// GET /api/v1/sessions/:id/ws initializes the session if needed, sends its
// current view, then answers frames until the client disconnects.
func (s *Server) handleSessionSocket(c *gin.Context) {
	id := c.Param("id")
	logger := s.logger.With(zap.String("session_id", id))

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Error("failed to upgrade to websocket", zap.Error(err))
		return
	}
	defer conn.Close()

	ctx := c.Request.Context()
	view, err := s.chat.Initialize(ctx, id)
	if err != nil {
		s.sendSocket(conn, logger, TypeError, gin.H{"error": err.Error()})
		return
	}
	if err := s.sendSocket(conn, logger, TypeSession, view); err != nil {
		return
	}
	logger.Info("websocket session opened")

	for {
		_ = conn.SetReadDeadline(time.Now().Add(socketIdle))
		var msg Envelope
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("websocket read failed", zap.Error(err))
			}
			break
		}
		if err := s.dispatchSocket(ctx, conn, logger, id, msg); err != nil {
			break
		}
	}
	logger.Info("websocket session closed")
}

// dispatchSocket answers one frame. Only write failures are returned; bad
// frames get an error envelope and the loop goes on.
func (s *Server) dispatchSocket(ctx context.Context, conn *websocket.Conn, logger *zap.Logger, id string, msg Envelope) error {
	var payload struct {
		Text string `json:"text"`
		Tag  string `json:"tag"`
	}
	if len(msg.Data) > 0 {
		if err := json.Unmarshal(msg.Data, &payload); err != nil {
			return s.sendSocket(conn, logger, TypeError, gin.H{"error": "invalid data: " + err.Error()})
		}
	}

	switch msg.Type {
	case TypePing:
		return s.sendSocket(conn, logger, TypePong, nil)

	case TypeMessage:
		if strings.TrimSpace(payload.Text) == "" {
			return s.sendSocket(conn, logger, TypeError, gin.H{"error": "text is required"})
		}
		reply, err := s.chat.Ask(ctx, id, payload.Text)
		if err != nil {
			return s.sendSocket(conn, logger, TypeError, gin.H{"error": err.Error()})
		}
		return s.sendSocket(conn, logger, TypeReply, reply)

	case TypeButton:
		if strings.TrimSpace(payload.Tag) == "" {
			return s.sendSocket(conn, logger, TypeError, gin.H{"error": "tag is required"})
		}
		reply, err := s.chat.Press(ctx, id, payload.Tag)
		if err != nil {
			return s.sendSocket(conn, logger, TypeError, gin.H{"error": err.Error()})
		}
		return s.sendSocket(conn, logger, TypeReply, reply)

	default:
		logger.Warn("unknown message type", zap.String("type", msg.Type))
		return s.sendSocket(conn, logger, TypeError, gin.H{"error": "unknown message type " + msg.Type})
	}
}

func (s *Server) sendSocket(conn *websocket.Conn, logger *zap.Logger, typ string, data any) error {
	env := Envelope{Type: typ, Timestamp: time.Now().UTC()}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return err
		}
		env.Data = raw
	}
	_ = conn.SetWriteDeadline(time.Now().Add(socketWriteWait))
	if err := conn.WriteJSON(env); err != nil {
		if !errors.Is(err, websocket.ErrCloseSent) {
			logger.Warn("websocket write failed", zap.Error(err))
		}
		return err
	}
	return nil
}
