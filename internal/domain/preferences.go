package domain

import "time"

// Niveles de experiencia del dueño entrenando.
const (
	ExperienceBeginner     = "beginner"
	ExperienceIntermediate = "intermediate"
	ExperienceAdvanced     = "advanced"
)

// OwnerPreferences guarda las preferencias de entrenamiento de un dueño.
// Todos los campos son opcionales: el motor resuelve defaults cuando faltan.
type OwnerPreferences struct {
	UserID                string    `json:"user_id"`
	TrainingExperience    string    `json:"training_experience,omitempty"`
	TimeCommitmentMinutes int       `json:"time_commitment_minutes,omitempty"`
	TrainingGoals         []string  `json:"training_goals,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}
