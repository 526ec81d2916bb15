package ws

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"sportlink-service/internal/models"
	"sportlink-service/internal/observability"
)

// MessageSender persists a chat message and returns it ready for fan-out.
// Satisfied by the chat service.
type MessageSender interface {
	SendMessage(ctx context.Context, chatID, senderID int, content string) (models.Message, error)
}

// RelayHandler terminates relay websocket sessions: identity announcement,
// room joins, and message sends with fan-out.
type RelayHandler struct {
	hub              *Hub
	sender           MessageSender
	logger           *zap.Logger
	tracer           trace.Tracer
	heartbeatTimeout time.Duration
}

// NewRelayHandler constructs a RelayHandler.
func NewRelayHandler(hub *Hub, sender MessageSender, logger *zap.Logger, heartbeatTimeout time.Duration) *RelayHandler {
	return &RelayHandler{
		hub:              hub,
		sender:           sender,
		logger:           logger,
		tracer:           otel.Tracer("sportlink-service/ws"),
		heartbeatTimeout: heartbeatTimeout,
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handle upgrades the connection and runs the session until disconnect.
func (h *RelayHandler) Handle(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "ws.handshake")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	info := newConnInfo(c.Request, span.SpanContext().TraceID().String())
	h.hub.Register(conn, info)

	observability.IncWSActive()
	observability.IncWSEvent("ws_connect")
	h.publishLifecycle(info, "ws_connect", "")

	done := make(chan struct{})
	go h.pingLoop(conn, done)
	go h.readLoop(conn, info, done)
}

func (h *RelayHandler) readLoop(conn *websocket.Conn, info ConnInfo, done chan struct{}) {
	var closeReason string
	defer func() {
		close(done)
		h.hub.Disconnect(conn)
		observability.DecWSActive()
		observability.IncWSEvent("ws_disconnect")
		h.publishLifecycle(info, "ws_disconnect", closeReason)
		conn.Close()
	}()

	conn.SetReadDeadline(time.Now().Add(h.heartbeatTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(h.heartbeatTimeout))
	})

	for {
		var in models.RelayInbound
		if err := conn.ReadJSON(&in); err != nil {
			closeReason = err.Error()
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				observability.IncWSEvent("ws_error")
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(h.heartbeatTimeout))
		h.handleEvent(conn, in)
	}
}

func (h *RelayHandler) handleEvent(conn Conn, in models.RelayInbound) {
	switch in.Event {
	case models.EventJoin:
		if in.UserID <= 0 {
			h.hub.SendMessageError(conn, "join requires a user id")
			return
		}
		if !h.hub.Identify(conn, in.UserID) {
			// The session was already purged, typically by a racing disconnect.
			h.hub.SendMessageError(conn, "session is closed")
			return
		}
		observability.IncWSEvent("ws_identify")

	case models.EventJoinChat:
		if !h.hub.JoinRoom(conn, in.ChatID) {
			h.hub.SendMessageError(conn, "announce identity before joining a chat")
		}

	case models.EventSendMessage:
		senderID, ok := h.hub.ResolveUser(conn)
		if !ok {
			// Local delivery error only; nothing is persisted.
			h.hub.SendMessageError(conn, "session is not identified")
			return
		}
		msg, err := h.sender.SendMessage(context.Background(), in.ChatID, senderID, in.Message)
		if err != nil {
			h.logger.Warn("relay message rejected",
				zap.Int("chat_id", in.ChatID),
				zap.Int("sender_id", senderID),
				zap.Error(err))
			h.hub.SendMessageError(conn, "could not deliver message")
			return
		}
		h.hub.BroadcastNewMessage(msg.ChatID, msg)

	default:
		h.hub.SendMessageError(conn, "unknown event")
	}
}

func (h *RelayHandler) pingLoop(conn *websocket.Conn, done chan struct{}) {
	period := h.heartbeatTimeout * 9 / 10
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			deadline := time.Now().Add(h.heartbeatTimeout / 6)
			if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		}
	}
}

func (h *RelayHandler) publishLifecycle(info ConnInfo, event, reason string) {
	_ = observability.PublishEvent(context.Background(), "ws_events.relay", observability.EventEnvelope{
		EventType: "ws_events",
		EventName: event,
		Payload: map[string]interface{}{
			"conn_id":     info.ConnID,
			"device_id":   info.DeviceID,
			"ip":          info.IP,
			"duration_ms": time.Since(info.ConnectedAt).Milliseconds(),
			"reason":      reason,
		},
	}, observability.BuildHeaders(info.RequestID, info.TraceID))
}
