package service

import "pawsitive-coach/internal/domain"

/*
========================
 Elegibilidad de ejercicios
========================
*/

// resolveDifficultyLevel fija el nivel global del plan según experiencia del dueño.
// Dueños intermedios o avanzados desbloquean ejercicios intermedios; el resto queda en beginner.
func resolveDifficultyLevel(experience string) string {
	if experience == domain.ExperienceIntermediate || experience == domain.ExperienceAdvanced {
		return domain.DifficultyIntermediate
	}
	return domain.DifficultyBeginner
}

// filterEligibleExercises reduce el catálogo a los ejercicios aptos para este perro.
// Un ejercicio es elegible si:
//   - no tiene prerequisitos, o al menos uno está en currentSkills, Y
//   - su dificultad es beginner, o es intermediate con nivel global intermediate.
//
// Preserva el orden del catálogo. Catálogo o skills vacíos no son error:
// solo achican el resultado (posiblemente a vacío).
func filterEligibleExercises(catalog []domain.ExerciseDefinition, currentSkills []string, difficultyLevel string) []domain.ExerciseDefinition {
	var eligible []domain.ExerciseDefinition
	for _, ex := range catalog {
		if !meetsSkillRequirements(ex, currentSkills) {
			continue
		}
		if !appropriateDifficulty(ex, difficultyLevel) {
			continue
		}
		eligible = append(eligible, ex)
	}
	return eligible
}

func meetsSkillRequirements(ex domain.ExerciseDefinition, currentSkills []string) bool {
	if len(ex.RequiredSkills) == 0 {
		return true
	}
	for _, required := range ex.RequiredSkills {
		for _, skill := range currentSkills {
			if required == skill {
				return true
			}
		}
	}
	return false
}

func appropriateDifficulty(ex domain.ExerciseDefinition, difficultyLevel string) bool {
	if ex.DifficultyLevel == domain.DifficultyBeginner {
		return true
	}
	return difficultyLevel == domain.DifficultyIntermediate && ex.DifficultyLevel == domain.DifficultyIntermediate
}
