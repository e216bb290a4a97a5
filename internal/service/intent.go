package service

import "strings"

// planIntentSignals son las frases que disparan la creacion de un plan
// desde el chat. El match es por substring en minusculas.
var planIntentSignals = []string{
	"training plan",
	"create plan",
	"help train",
	"how to train",
	"training schedule",
	"exercise plan",
	"teach my dog",
	"training program",
	"make a plan",
	"need help training",
	"personalized plan",
	"custom training",
}

// WantsTrainingPlan detecta si un mensaje de chat pide un plan de entrenamiento.
func WantsTrainingPlan(message string) bool {
	l := strings.ToLower(strings.TrimSpace(message))
	if l == "" {
		return false
	}
	for _, signal := range planIntentSignals {
		if strings.Contains(l, signal) {
			return true
		}
	}
	return false
}
