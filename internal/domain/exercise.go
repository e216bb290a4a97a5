package domain

import "time"

// Niveles de dificultad del catálogo de ejercicios.
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// CategoryBasicObedience agrupa los comandos fundacionales (sit, stay, come).
const CategoryBasicObedience = "Basic Obedience"

// ExerciseDefinition es una entrada del catálogo de ejercicios.
// RequiredSkills vacío significa sin prerequisitos.
type ExerciseDefinition struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Category        string    `json:"category"`
	DifficultyLevel string    `json:"difficulty_level"`
	DurationMinutes int       `json:"duration_minutes"`
	RequiredSkills  []string  `json:"required_skills,omitempty"`
	Instructions    string    `json:"instructions,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}
