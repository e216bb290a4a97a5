package domain

import "time"

// Niveles de energía reportados por el dueño o por la ficha de raza.
const (
	EnergyLow      = "low"
	EnergyMedium   = "medium"
	EnergyHigh     = "high"
	EnergyVeryHigh = "very high"
)

// AnimalProfile es la ficha de un perro tal como la registró su dueño.
// Los sets (skills, concerns, traits) son tags en texto libre.
type AnimalProfile struct {
	ID                 string    `json:"id"`
	UserID             string    `json:"user_id"`
	Name               string    `json:"name"`
	Breed              string    `json:"breed,omitempty"`
	AgeYears           int       `json:"age_years"`
	AgeMonths          int       `json:"age_months"`
	EnergyLevel        string    `json:"energy_level,omitempty"`
	TemperamentTraits  []string  `json:"temperament_traits,omitempty"`
	CurrentSkills      []string  `json:"current_skills,omitempty"`
	BehavioralConcerns []string  `json:"behavioral_concerns,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// AgeInMonths convierte la edad años/meses a meses totales.
func (a AnimalProfile) AgeInMonths() int {
	return a.AgeYears*12 + a.AgeMonths
}

// HasTrait indica si el perro tiene un rasgo de temperamento (match exacto).
func (a AnimalProfile) HasTrait(trait string) bool {
	for _, t := range a.TemperamentTraits {
		if t == trait {
			return true
		}
	}
	return false
}
