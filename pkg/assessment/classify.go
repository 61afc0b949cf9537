package assessment

import "github.com/goliatone/greenbridge/pkg/forms"

// Classify routes the onboarding answers to an assessment category.
// Environmental signals push toward the green loan track, goal and
// policy signals toward the sustainability-linked track; green wins
// when both thresholds are met.
func Classify(answers forms.FilterAnswers) Category {
	var green, sll float64

	if answers.IsManufacturing {
		green++
	}
	if answers.ConsumesSignificantEnergy {
		green++
		sll += 0.5
	}
	if answers.TracksEnvMetrics {
		green += 2
	}
	if answers.MeasuresEmissions {
		green += 2
	}

	if answers.HasSustainabilityGoals {
		sll += 2
	}
	if answers.AppliedForESGLoan {
		sll++
	}
	if answers.HasEmployeePolicies {
		sll++
	}

	switch {
	case green >= 3:
		return CategoryGreen
	case sll >= 2:
		return CategorySLL
	default:
		return CategoryOther
	}
}
