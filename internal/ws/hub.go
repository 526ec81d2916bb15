package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"sportlink-service/internal/models"
	"sportlink-service/internal/observability"
)

// Conn is the subset of *websocket.Conn the hub needs. Narrowed so tests
// can observe deliveries without a network socket.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// session tracks one live connection: its identity, once announced, and the
// chat rooms it joined. None of this survives a disconnect.
type session struct {
	info       ConnInfo
	userID     int
	identified bool
	rooms      map[int]struct{}
	writeMu    sync.Mutex
}

func (s *session) write(conn Conn, payload []byte) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return conn.WriteMessage(websocket.TextMessage, payload)
}

// Hub owns the relay's in-memory state: the session-identity map and the
// chat-room memberships. All state is process-local and rebuilt from nothing
// on restart. A Hub is handed to the relay at construction; there is no
// package-level instance.
type Hub struct {
	mu       sync.RWMutex
	sessions map[Conn]*session
	rooms    map[int]map[Conn]*session
	logger   *zap.Logger
}

// NewHub creates an empty hub.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		sessions: make(map[Conn]*session),
		rooms:    make(map[int]map[Conn]*session),
		logger:   logger,
	}
}

// Register adds a freshly upgraded connection with no identity yet.
func (h *Hub) Register(conn Conn, info ConnInfo) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sessions[conn] = &session{info: info, rooms: make(map[int]struct{})}
}

// Identify records the session's user identity. Announcing again overwrites
// the previous mapping; many sessions may carry the same user.
func (h *Hub) Identify(conn Conn, userID int) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	s, ok := h.sessions[conn]
	if !ok {
		return false
	}
	s.userID = userID
	s.identified = true
	return true
}

// ResolveUser returns the identity announced on the session, if any.
func (h *Hub) ResolveUser(conn Conn) (int, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	s, ok := h.sessions[conn]
	if !ok || !s.identified {
		return 0, false
	}
	return s.userID, true
}

// JoinRoom adds an identified session to a chat room. A session may belong
// to many rooms at once.
func (h *Hub) JoinRoom(conn Conn, chatID int) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	s, ok := h.sessions[conn]
	if !ok || !s.identified {
		return false
	}
	if _, ok := h.rooms[chatID]; !ok {
		h.rooms[chatID] = make(map[Conn]*session)
	}
	h.rooms[chatID][conn] = s
	s.rooms[chatID] = struct{}{}
	return true
}

// Disconnect removes the session from the identity map and from every room
// it joined. Safe for sessions that never identified.
func (h *Hub) Disconnect(conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	s, ok := h.sessions[conn]
	if !ok {
		return
	}
	for chatID := range s.rooms {
		if members, ok := h.rooms[chatID]; ok {
			delete(members, conn)
			if len(members) == 0 {
				delete(h.rooms, chatID)
			}
		}
	}
	delete(h.sessions, conn)
}

// BroadcastNewMessage fans a freshly persisted message out to every session
// currently in the chat's room.
func (h *Hub) BroadcastNewMessage(chatID int, msg models.Message) {
	h.mu.RLock()
	members := make(map[Conn]*session, len(h.rooms[chatID]))
	for conn, s := range h.rooms[chatID] {
		members[conn] = s
	}
	h.mu.RUnlock()

	event := models.RelayOutbound{Event: models.EventNewMessage, Message: &msg}
	payload, _ := json.Marshal(event)
	for conn, s := range members {
		if err := s.write(conn, payload); err != nil {
			h.logger.Warn("websocket write failed", zap.String("conn_id", s.info.ConnID), zap.Error(err))
			conn.Close()
			h.Disconnect(conn)
			h.publishWSError(s.info, err)
		}
	}
}

// SendMessageError delivers a local error to a single session. Never
// broadcast.
func (h *Hub) SendMessageError(conn Conn, message string) {
	h.mu.RLock()
	s, ok := h.sessions[conn]
	h.mu.RUnlock()
	if !ok {
		return
	}

	event := models.RelayOutbound{Event: models.EventMessageError, Error: message}
	payload, _ := json.Marshal(event)
	if err := s.write(conn, payload); err != nil {
		conn.Close()
		h.Disconnect(conn)
	}
}

func (h *Hub) publishWSError(info ConnInfo, err error) {
	observability.IncWSEvent("ws_error")
	_ = observability.PublishEvent(context.Background(), "ws_events.relay", observability.EventEnvelope{
		EventType: "ws_events",
		EventName: "ws_error",
		Payload: map[string]interface{}{
			"conn_id":     info.ConnID,
			"ip":          info.IP,
			"duration_ms": time.Since(info.ConnectedAt).Milliseconds(),
			"reason":      err.Error(),
		},
	}, observability.BuildHeaders(info.RequestID, info.TraceID))
}
