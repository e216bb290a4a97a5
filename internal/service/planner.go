package service

import (
	"fmt"
	"strings"

	"pawsitive-coach/internal/domain"
)

// PlanInput son los datos ya materializados que consume el motor.
// Preferences y Breed son opcionales; catálogo vacío produce un plan
// bien formado con currículo vacío, nunca un error.
type PlanInput struct {
	Animal      domain.AnimalProfile
	Preferences *domain.OwnerPreferences
	Catalog     []domain.ExerciseDefinition
	Breed       *domain.BreedProfile
}

// planContext resuelve los defaults una sola vez por invocación.
// El resto del motor lee de acá en lugar de null-coalescing disperso.
type planContext struct {
	animal                domain.AnimalProfile
	breed                 *domain.BreedProfile
	ageInMonths           int
	experience            string
	timeCommitmentMinutes int
	goals                 []string
	concerns              []string
	difficultyLevel       string
}

const (
	defaultExperience            = domain.ExperienceBeginner
	defaultTimeCommitmentMinutes = 15
)

func newPlanContext(input PlanInput) planContext {
	ctx := planContext{
		animal:                input.Animal,
		breed:                 input.Breed,
		ageInMonths:           input.Animal.AgeInMonths(),
		experience:            defaultExperience,
		timeCommitmentMinutes: defaultTimeCommitmentMinutes,
		concerns:              input.Animal.BehavioralConcerns,
	}
	if prefs := input.Preferences; prefs != nil {
		if prefs.TrainingExperience != "" {
			ctx.experience = prefs.TrainingExperience
		}
		if prefs.TimeCommitmentMinutes > 0 {
			ctx.timeCommitmentMinutes = prefs.TimeCommitmentMinutes
		}
		ctx.goals = prefs.TrainingGoals
	}
	ctx.difficultyLevel = resolveDifficultyLevel(ctx.experience)
	return ctx
}

// GeneratePlan es el motor completo: filtra, prioriza, secuencia, dosifica
// y sintetiza recomendaciones en un TrainingPlan. Es una función pura y
// determinista: mismos inputs producen byte a byte el mismo plan.
// Identidad, estado y timestamps los asigna el caller que persiste.
func GeneratePlan(input PlanInput) domain.TrainingPlan {
	ctx := newPlanContext(input)

	eligible := filterEligibleExercises(input.Catalog, input.Animal.CurrentSkills, ctx.difficultyLevel)
	prioritized := prioritizeExercises(eligible, ctx)
	sequence := buildCurriculum(prioritized, ctx)

	totalWeeks := 0
	for _, entry := range sequence {
		totalWeeks += entry.EstimatedWeeksToMaster
	}

	return domain.TrainingPlan{
		PlanName:               fmt.Sprintf("%s's Personalized Training Journey", ctx.animal.Name),
		GoalDescription:        goalDescription(ctx),
		DifficultyLevel:        ctx.difficultyLevel,
		EstimatedDurationWeeks: totalWeeks,
		ExerciseSequence:       sequence,
		Recommendations:        buildRecommendations(ctx, len(sequence)),
		PersonalizationFactors: personalizationFactors(ctx),
	}
}

func personalizationFactors(ctx planContext) domain.PersonalizationFactors {
	return domain.PersonalizationFactors{
		AgeInMonths:           ctx.ageInMonths,
		IsPuppy:               ctx.ageInMonths < puppyMaxAgeMonths,
		Breed:                 ctx.animal.Breed,
		EnergyLevel:           ctx.animal.EnergyLevel,
		OwnerExperience:       ctx.experience,
		TimeCommitmentMinutes: ctx.timeCommitmentMinutes,
		BehavioralConcerns:    ctx.concerns,
		TemperamentTraits:     ctx.animal.TemperamentTraits,
	}
}

func goalDescription(ctx planContext) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Transform %s into a well-behaved companion through positive reinforcement training. ", ctx.animal.Name))
	if len(ctx.goals) > 0 {
		goals := ctx.goals
		if len(goals) > 3 {
			goals = goals[:3]
		}
		sb.WriteString(fmt.Sprintf("Focus areas: %s. ", strings.Join(goals, ", ")))
	}
	sb.WriteString("Build skills progressively while strengthening your bond and communication.")
	return sb.String()
}
