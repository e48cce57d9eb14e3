package domain

import "time"

// Message es el registro canónico de un mensaje de chat. Inmutable una vez
// construido: el timestamp lo asigna el servidor al recibirlo.
type Message struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	DisplayName string    `json:"display_name"`
	Body        string    `json:"body"`
	AvatarRef   string    `json:"avatar_ref,omitempty"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
}
