package domain

import "time"

// Session es una conversación de chat entre un dueño y el asistente.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	AnimalID  string    `json:"animal_id,omitempty"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
