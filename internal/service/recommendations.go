package service

import (
	"fmt"
	"math"
	"strings"

	"pawsitive-coach/internal/domain"
)

/*
========================
 Síntesis de recomendaciones
========================
*/

// Ventana de regresión adolescente del predictor de challenges.
// Distinta a la ventana adolescente del pacing; ver nota en pacing.go.
const (
	regressionMinAgeMonths = 6
	regressionMaxAgeMonths = 18
)

// buildRecommendations produce las cinco salidas narrativas del plan.
// Cada una es computable de forma independiente y nunca falla: sin raza,
// sin goals o sin concerns se degrada a los textos genéricos.
func buildRecommendations(ctx planContext, totalExercises int) domain.Recommendations {
	return domain.Recommendations{
		PlanRationale:      planRationale(ctx),
		KeyFocusAreas:      keyFocusAreas(ctx),
		ExpectedChallenges: expectedChallenges(ctx),
		MotivationStrategy: motivationStrategy(ctx),
		ProgressMilestones: progressMilestones(totalExercises),
	}
}

func planRationale(ctx planContext) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("This personalized plan is designed specifically for %s, ", ctx.animal.Name))

	if ctx.breed != nil {
		sb.WriteString(fmt.Sprintf("a %s with %s energy and %d/10 trainability. ", ctx.animal.Breed, ctx.breed.EnergyLevel, ctx.breed.TrainabilityScore))
	} else {
		sb.WriteString("tailored to their unique characteristics. ")
	}

	sb.WriteString(fmt.Sprintf("The exercises are sequenced to build on each other progressively, starting with foundational skills and advancing as %s demonstrates mastery. ", ctx.animal.Name))

	if ctx.experience == domain.ExperienceBeginner {
		sb.WriteString("As a beginner trainer, you'll start with clear, straightforward exercises that set you both up for success.")
	} else {
		sb.WriteString("Your training experience allows for a balanced approach combining fundamental and intermediate skills.")
	}
	return sb.String()
}

// focusAreaRules se evalúan en orden fijo; la última regla siempre aplica,
// así que la lista nunca queda vacía.
var focusAreaRules = []struct {
	when func(ctx planContext) bool
	area func(ctx planContext) domain.FocusArea
}{
	{
		when: func(ctx planContext) bool { return len(ctx.concerns) > 0 },
		area: func(ctx planContext) domain.FocusArea {
			return domain.FocusArea{
				Area:        "Behavior Modification",
				Priority:    "high",
				Description: fmt.Sprintf("Addressing: %s", strings.Join(ctx.concerns, ", ")),
			}
		},
	},
	{
		when: func(ctx planContext) bool {
			return hasTag(ctx.goals, "loose leash walking") || hasTag(ctx.goals, "leash manners")
		},
		area: func(ctx planContext) domain.FocusArea {
			return domain.FocusArea{
				Area:        "Leash Skills",
				Priority:    "high",
				Description: "Building polite walking behaviors for enjoyable outings",
			}
		},
	},
	{
		when: func(ctx planContext) bool {
			return hasTag(ctx.goals, "recall") || hasTag(ctx.goals, "off-leash reliability")
		},
		area: func(ctx planContext) domain.FocusArea {
			return domain.FocusArea{
				Area:        "Reliability",
				Priority:    "high",
				Description: "Developing strong recall for safety and freedom",
			}
		},
	},
	{
		when: func(ctx planContext) bool { return true },
		area: func(ctx planContext) domain.FocusArea {
			return domain.FocusArea{
				Area:        "Foundation Skills",
				Priority:    "medium",
				Description: "Essential obedience commands for daily life",
			}
		},
	},
}

func keyFocusAreas(ctx planContext) []domain.FocusArea {
	var areas []domain.FocusArea
	for _, rule := range focusAreaRules {
		if rule.when(ctx) {
			areas = append(areas, rule.area(ctx))
		}
	}
	return areas
}

var challengeRules = []struct {
	when      func(ctx planContext) bool
	challenge domain.Challenge
}{
	{
		when: func(ctx planContext) bool {
			return ctx.ageInMonths >= regressionMinAgeMonths && ctx.ageInMonths < regressionMaxAgeMonths
		},
		challenge: domain.Challenge{
			Challenge:  "Adolescent Regression",
			Mitigation: "Stay consistent, be patient, and increase reinforcement value during this phase",
		},
	},
	{
		when: func(ctx planContext) bool {
			return ctx.breed != nil && ctx.breed.EnergyLevel == domain.EnergyVeryHigh
		},
		challenge: domain.Challenge{
			Challenge:  "Maintaining Focus",
			Mitigation: "Ensure vigorous exercise before training and use very high-value rewards",
		},
	},
	{
		when: func(ctx planContext) bool {
			return ctx.breed != nil && ctx.breed.BreedGroup == "Hound"
		},
		challenge: domain.Challenge{
			Challenge:  "Distraction by Scents",
			Mitigation: "Train in low-scent environments initially and use extra-enticing food rewards",
		},
	},
	{
		when: func(ctx planContext) bool { return ctx.animal.HasTrait("anxious") },
		challenge: domain.Challenge{
			Challenge:  "Training Anxiety",
			Mitigation: "Keep sessions very short, positive, and at your dog's pace",
		},
	},
}

func expectedChallenges(ctx planContext) []domain.Challenge {
	var challenges []domain.Challenge
	for _, rule := range challengeRules {
		if rule.when(ctx) {
			challenges = append(challenges, rule.challenge)
		}
	}
	return challenges
}

// foodMotivatedBreeds responden especialmente bien a premios comestibles.
var foodMotivatedBreeds = []string{"Labrador Retriever", "Beagle", "Bulldog"}

func motivationStrategy(ctx planContext) string {
	var motivators []string

	if ctx.breed != nil {
		if ctx.breed.BreedGroup == "Sporting" || ctx.breed.BreedGroup == "Herding" {
			motivators = append(motivators, "play with favorite toys")
		}
		if hasTag(foodMotivatedBreeds, ctx.breed.BreedName) {
			motivators = append(motivators, "premium food treats")
		}
	}

	motivators = append(motivators, "enthusiastic verbal praise", "brief play breaks")

	return fmt.Sprintf("Use a variety of high-value rewards including: %s. Vary rewards to maintain interest and engagement.", strings.Join(motivators, ", "))
}

// progressMilestones son cuatro checkpoints fijos sobre el largo total del
// currículo. Para largo cero las fórmulas siguen bien definidas.
func progressMilestones(totalExercises int) []domain.Milestone {
	halfway := int(math.Ceil(float64(totalExercises) / 2))
	threeQuarters := int(math.Ceil(float64(totalExercises) * 0.75))

	return []domain.Milestone{
		{
			Milestone:   "Foundation Complete",
			Criteria:    "First 2 exercises mastered",
			Celebration: "Your dog has built a solid training foundation!",
		},
		{
			Milestone:   "Halfway Hero",
			Criteria:    fmt.Sprintf("%d exercises mastered", halfway),
			Celebration: "Excellent progress - you're halfway through the plan!",
		},
		{
			Milestone:   "Advanced Achiever",
			Criteria:    fmt.Sprintf("%d exercises mastered", threeQuarters),
			Celebration: "Outstanding dedication - advanced skills unlocked!",
		},
		{
			Milestone:   "Training Champion",
			Criteria:    "All exercises completed",
			Celebration: "Congratulations! Your dog is a well-trained superstar!",
		},
	}
}
