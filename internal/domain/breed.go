package domain

// BreedProfile es la ficha de referencia de una raza.
// Es opcional por animal: todo el motor degrada a defaults cuando falta.
type BreedProfile struct {
	BreedName         string `json:"breed_name"`
	BreedGroup        string `json:"breed_group,omitempty"`
	EnergyLevel       string `json:"energy_level,omitempty"`
	TrainabilityScore int    `json:"trainability_score"` // escala 1-10
}
