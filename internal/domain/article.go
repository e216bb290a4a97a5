package domain

import (
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
)

// Article es un artículo de la base de conocimiento de entrenamiento.
// Usamos pgvector.Vector para búsqueda por similitud desde el chat.
type Article struct {
	ID        uuid.UUID       `json:"id"`
	Title     string          `json:"title"`
	Topic     string          `json:"topic,omitempty"`
	Content   string          `json:"content"`
	Embedding pgvector.Vector `json:"-"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
