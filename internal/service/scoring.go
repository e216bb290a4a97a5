package service

import (
	"sort"
	"strings"

	"pawsitive-coach/internal/domain"
)

/*
========================
 Priorización por reglas
========================
*/

// scoringRule es una señal independiente de prioridad. Las reglas se evalúan
// en orden fijo y sus aportes se suman; el orden de evaluación no altera el
// total, solo el sort final decide.
type scoringRule struct {
	name  string
	score func(ex domain.ExerciseDefinition, ctx planContext) int
}

var priorityRules = []scoringRule{
	{
		name: "leash_concern",
		score: func(ex domain.ExerciseDefinition, ctx planContext) int {
			if hasTag(ctx.concerns, "leash pulling") && titleContains(ex, "leash") {
				return 10
			}
			return 0
		},
	},
	{
		name: "recall_concern",
		score: func(ex domain.ExerciseDefinition, ctx planContext) int {
			if hasTag(ctx.concerns, "recall issues") && titleContains(ex, "recall") {
				return 10
			}
			return 0
		},
	},
	{
		// Sesgo hacia skills fundacionales, independiente de los concerns.
		name: "foundational_category",
		score: func(ex domain.ExerciseDefinition, ctx planContext) int {
			if ex.Category == domain.CategoryBasicObedience {
				return 5
			}
			return 0
		},
	},
	{
		// Cada goal que aparece en el título suma por separado (stackean).
		name: "goal_match",
		score: func(ex domain.ExerciseDefinition, ctx planContext) int {
			total := 0
			for _, goal := range ctx.goals {
				if goal != "" && titleContains(ex, goal) {
					total += 8
				}
			}
			return total
		},
	},
}

// exercisePriority suma el aporte de todas las reglas para un ejercicio.
func exercisePriority(ex domain.ExerciseDefinition, ctx planContext) int {
	total := 0
	for _, rule := range priorityRules {
		total += rule.score(ex, ctx)
	}
	return total
}

// prioritizeExercises reordena los elegibles por score descendente.
// El sort es estable a propósito: los empates conservan el orden del
// catálogo y corridas repetidas producen exactamente la misma secuencia.
func prioritizeExercises(eligible []domain.ExerciseDefinition, ctx planContext) []domain.ExerciseDefinition {
	if len(eligible) == 0 {
		return nil
	}

	prioritized := make([]domain.ExerciseDefinition, len(eligible))
	copy(prioritized, eligible)

	scores := make(map[string]int, len(prioritized))
	for _, ex := range prioritized {
		scores[ex.ID] = exercisePriority(ex, ctx)
	}

	sort.SliceStable(prioritized, func(i, j int) bool {
		return scores[prioritized[i].ID] > scores[prioritized[j].ID]
	})
	return prioritized
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

func titleContains(ex domain.ExerciseDefinition, fragment string) bool {
	return strings.Contains(strings.ToLower(ex.Title), strings.ToLower(fragment))
}
