package models

// Relay event names, shared between the relay endpoint and its clients.
const (
	EventJoin         = "join"
	EventJoinChat     = "joinChat"
	EventSendMessage  = "sendMessage"
	EventNewMessage   = "newMessage"
	EventMessageError = "messageError"
)

// RelayInbound is a client-to-server relay frame.
type RelayInbound struct {
	Event   string `json:"event"`
	UserID  int    `json:"user_id,omitempty"`
	ChatID  int    `json:"chat_id,omitempty"`
	Message string `json:"message,omitempty"`
}

// RelayOutbound is a server-to-client relay frame.
type RelayOutbound struct {
	Event   string   `json:"event"`
	Message *Message `json:"message,omitempty"`
	Error   string   `json:"error,omitempty"`
}
