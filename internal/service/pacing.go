package service

import (
	"math"

	"pawsitive-coach/internal/domain"
)

/*
========================
 Dosificación (pacing)
========================
*/

const (
	defaultExerciseDurationMinutes = 15

	minSessionsPerWeek = 3
	maxSessionsPerWeek = 7

	// Ventanas de edad, en meses.
	// Ojo: la ventana de adolescencia del pacing ([12,24)) NO es la misma
	// que usa el predictor de regresión en recommendations ([6,18)).
	// Se mantienen como constantes separadas intencionalmente.
	puppyMaxAgeMonths           = 12
	youngPuppyMaxAgeMonths      = 6
	pacingAdolescentMinMonths   = 12
	pacingAdolescentMaxMonths   = 24

	highTrainabilityScore = 8
	lowTrainabilityScore  = 5
)

// sessionsPerWeek reparte el presupuesto diario de minutos sobre la duración
// del ejercicio, acotado a [3,7] sesiones. Duración faltante o cero usa 15 min.
func sessionsPerWeek(timeCommitmentMinutes, exerciseDurationMinutes int) int {
	if exerciseDurationMinutes <= 0 {
		exerciseDurationMinutes = defaultExerciseDurationMinutes
	}
	sessions := (timeCommitmentMinutes * 7) / exerciseDurationMinutes
	if sessions < minSessionsPerWeek {
		return minSessionsPerWeek
	}
	if sessions > maxSessionsPerWeek {
		return maxSessionsPerWeek
	}
	return sessions
}

// weeksToMaster estima semanas hasta dominar un ejercicio: base por dificultad,
// ajustada por trainability de la raza y por edad. Ceiling del producto, mínimo 1.
func weeksToMaster(difficultyLevel string, ageInMonths int, breed *domain.BreedProfile) int {
	baseWeeks := 2.0
	switch difficultyLevel {
	case domain.DifficultyIntermediate:
		baseWeeks = 3.0
	case domain.DifficultyAdvanced:
		baseWeeks = 4.0
	}

	if breed != nil && breed.TrainabilityScore > 0 {
		if breed.TrainabilityScore >= highTrainabilityScore {
			baseWeeks *= 0.8
		} else if breed.TrainabilityScore <= lowTrainabilityScore {
			baseWeeks *= 1.3
		}
	}

	if ageInMonths < youngPuppyMaxAgeMonths {
		baseWeeks *= 1.2
	} else if ageInMonths >= pacingAdolescentMinMonths && ageInMonths < pacingAdolescentMaxMonths {
		baseWeeks *= 1.1
	}

	weeks := int(math.Ceil(baseWeeks))
	if weeks < 1 {
		weeks = 1
	}
	return weeks
}
