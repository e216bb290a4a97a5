package domain

import "time"

// Roles de los mensajes de chat.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	SessionID string    `json:"session_id,omitempty"`
	Content   string    `json:"content"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
