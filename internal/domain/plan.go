package domain

import "time"

// Estados de ciclo de vida de un plan.
const (
	PlanStatusActive    = "active"
	PlanStatusCompleted = "completed"
	PlanStatusArchived  = "archived"
)

// CurriculumEntry es un ejercicio ya seleccionado, ordenado y dosificado.
type CurriculumEntry struct {
	ExerciseID                 string   `json:"exercise_id"`
	ExerciseTitle              string   `json:"exercise_title"`
	Order                      int      `json:"order"` // posición 1-based
	RecommendedSessionsPerWeek int      `json:"recommended_sessions_per_week"`
	EstimatedWeeksToMaster     int      `json:"estimated_weeks_to_master"`
	PersonalizedTips           []string `json:"personalized_tips,omitempty"`
}

// FocusArea es un área de enfoque del plan con prioridad.
type FocusArea struct {
	Area        string `json:"area"`
	Priority    string `json:"priority"`
	Description string `json:"description"`
}

// Challenge es una dificultad prevista con su mitigación sugerida.
type Challenge struct {
	Challenge  string `json:"challenge"`
	Mitigation string `json:"mitigation"`
}

// Milestone es un checkpoint fijo sobre el largo total del currículo.
type Milestone struct {
	Milestone   string `json:"milestone"`
	Criteria    string `json:"criteria"`
	Celebration string `json:"celebration"`
}

// Recommendations agrupa la salida narrativa del motor.
type Recommendations struct {
	PlanRationale      string      `json:"plan_rationale"`
	KeyFocusAreas      []FocusArea `json:"key_focus_areas"`
	ExpectedChallenges []Challenge `json:"expected_challenges,omitempty"`
	MotivationStrategy string      `json:"motivation_strategy"`
	ProgressMilestones []Milestone `json:"progress_milestones"`
}

// PersonalizationFactors es el snapshot de inputs que determinó un plan.
// Se persiste junto al plan para auditoría/explicabilidad.
type PersonalizationFactors struct {
	AgeInMonths           int      `json:"age_in_months"`
	IsPuppy               bool     `json:"is_puppy"`
	Breed                 string   `json:"breed,omitempty"`
	EnergyLevel           string   `json:"energy_level,omitempty"`
	OwnerExperience       string   `json:"owner_experience"`
	TimeCommitmentMinutes int      `json:"time_commitment_minutes"`
	BehavioralConcerns    []string `json:"behavioral_concerns,omitempty"`
	TemperamentTraits     []string `json:"temperament_traits,omitempty"`
}

// TrainingPlan es el agregado final que produce el motor.
// Se crea completo en una sola generación y nunca se muta después:
// regenerar produce un plan nuevo en lugar de parchear el existente.
type TrainingPlan struct {
	ID                     string                 `json:"id"`
	AnimalID               string                 `json:"animal_id"`
	UserID                 string                 `json:"user_id"`
	PlanName               string                 `json:"plan_name"`
	GoalDescription        string                 `json:"goal_description"`
	DifficultyLevel        string                 `json:"difficulty_level"`
	EstimatedDurationWeeks int                    `json:"estimated_duration_weeks"`
	ExerciseSequence       []CurriculumEntry      `json:"exercise_sequence"`
	Recommendations        Recommendations        `json:"recommendations"`
	PersonalizationFactors PersonalizationFactors `json:"personalization_factors"`
	Status                 string                 `json:"status"`
	CurrentExerciseIndex   int                    `json:"current_exercise_index"`
	CreatedAt              time.Time              `json:"created_at"`
}
