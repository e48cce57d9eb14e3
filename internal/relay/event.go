package relay

import "chat-relay/internal/domain"

const (
	EventJoinCategory  = "joinCategory"
	EventLeaveCategory = "leaveCategory"
	EventSendMessage   = "sendMessage"
	EventMessage       = "message"
)

// Envelope es el payload JSON entrante sobre el WebSocket. Los campos de
// mensaje solo aplican al evento sendMessage.
type Envelope struct {
	Event       string `json:"event"`
	Category    string `json:"category,omitempty"`
	UserID      string `json:"user_id,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	Body        string `json:"body,omitempty"`
	AvatarRef   string `json:"avatar_ref,omitempty"`
}

// OutboundMessage envuelve un registro difundido a los miembros de una
// categoría.
type OutboundMessage struct {
	Event    string         `json:"event"`
	Category string         `json:"category"`
	Message  domain.Message `json:"message"`
}
