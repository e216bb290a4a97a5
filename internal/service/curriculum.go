package service

import (
	"fmt"

	"pawsitive-coach/internal/domain"
)

/*
========================
 Secuenciación del currículo
========================
*/

// maxCurriculumLength acota el plan a los 8 ejercicios mejor rankeados.
const maxCurriculumLength = 8

// buildCurriculum toma los mejores ejercicios ya priorizados y arma las
// entradas del plan: posición 1-based, dosificación y tips personalizados.
// Una lista corta no se rellena ni falla: sale un currículo más corto.
func buildCurriculum(prioritized []domain.ExerciseDefinition, ctx planContext) []domain.CurriculumEntry {
	if len(prioritized) == 0 {
		return nil
	}
	if len(prioritized) > maxCurriculumLength {
		prioritized = prioritized[:maxCurriculumLength]
	}

	sequence := make([]domain.CurriculumEntry, 0, len(prioritized))
	for i, ex := range prioritized {
		sequence = append(sequence, domain.CurriculumEntry{
			ExerciseID:                 ex.ID,
			ExerciseTitle:              ex.Title,
			Order:                      i + 1,
			RecommendedSessionsPerWeek: sessionsPerWeek(ctx.timeCommitmentMinutes, ex.DurationMinutes),
			EstimatedWeeksToMaster:     weeksToMaster(ex.DifficultyLevel, ctx.ageInMonths, ctx.breed),
			PersonalizedTips:           personalizedTips(ctx),
		})
	}
	return sequence
}

// tipRule es una señal aditiva: cero, uno o varios tips pueden aplicar.
// El orden de evaluación es fijo y se preserva en la salida.
type tipRule struct {
	when func(ctx planContext) bool
	tip  func(ctx planContext) string
}

var tipRules = []tipRule{
	{
		when: func(ctx planContext) bool {
			return ctx.breed != nil && (ctx.breed.EnergyLevel == domain.EnergyHigh || ctx.breed.EnergyLevel == domain.EnergyVeryHigh)
		},
		tip: func(ctx planContext) string {
			return fmt.Sprintf("%ss are high-energy - ensure adequate exercise before training sessions for better focus", ctx.animal.Breed)
		},
	},
	{
		when: func(ctx planContext) bool {
			return ctx.breed != nil && ctx.breed.TrainabilityScore >= highTrainabilityScore
		},
		tip: func(ctx planContext) string {
			return fmt.Sprintf("Your %s is highly trainable - take advantage of their eagerness to learn by keeping sessions engaging", ctx.animal.Breed)
		},
	},
	{
		when: func(ctx planContext) bool {
			return ctx.breed != nil && ctx.breed.TrainabilityScore > 0 && ctx.breed.TrainabilityScore <= lowTrainabilityScore
		},
		tip: func(ctx planContext) string {
			return fmt.Sprintf("%ss can be independent - use high-value rewards and keep sessions short and fun", ctx.animal.Breed)
		},
	},
	{
		when: func(ctx planContext) bool { return ctx.ageInMonths < youngPuppyMaxAgeMonths },
		tip: func(ctx planContext) string {
			return "Puppy attention spans are short - keep sessions to 5-10 minutes maximum"
		},
	},
	{
		when: func(ctx planContext) bool { return ctx.animal.EnergyLevel == domain.EnergyHigh },
		tip: func(ctx planContext) string {
			return "Burn off excess energy with play before training for better concentration"
		},
	},
}

func personalizedTips(ctx planContext) []string {
	var tips []string
	for _, rule := range tipRules {
		if rule.when(ctx) {
			tips = append(tips, rule.tip(ctx))
		}
	}
	return tips
}
