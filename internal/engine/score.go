package engine

import "github.com/SAP-F-2025/readiness-assessment/internal/models"

// MaxScore caps the quick-quiz score.
const MaxScore = 100

// defaultBlockerPoints is awarded for "Anders" and for any phrase outside the fixed list.
const defaultBlockerPoints = 5

var (
	hasApisPoints = map[models.ApiAvailability]int{
		models.ApisMost:    25,
		models.ApisSome:    15,
		models.ApisUnknown: 8,
		models.ApisNone:    0,
	}

	dataAccessPoints = map[models.DataAccess]int{
		models.DataAccessInstant:    25,
		models.DataAccessMinutes:    18,
		models.DataAccessDifficult:  8,
		models.DataAccessImpossible: 0,
	}

	processDocumentationPoints = map[models.ProcessDocumentation]int{
		models.ProcessDocumented: 25,
		models.ProcessPartially:  18,
		models.ProcessTribal:     8,
		models.ProcessChaos:      0,
	}

	automationPoints = map[models.AutomationExperience]int{
		models.AutomationAdvanced: 15,
		models.AutomationBasic:    10,
		models.AutomationTrying:   5,
		models.AutomationNone:     0,
	}

	blockerPoints = map[models.MainBlocker]int{
		models.BlockerLegacySystems: 2,
		models.BlockerScatteredData: 3,
		models.BlockerUndocumented:  4,
		models.BlockerKnowledge:     5,
		models.BlockerResistance:    6,
		models.BlockerBusinessCase:  7,
		models.BlockerBudget:        8,
		models.BlockerOther:         defaultBlockerPoints,
	}
)

// CalculateScore maps the five quick-quiz answers to a 0..100 score.
// Unknown values in the first four categories contribute nothing.
func CalculateScore(answers models.QuickQuizAnswers) int {
	score := hasApisPoints[answers.HasApis] +
		dataAccessPoints[answers.DataAccess] +
		processDocumentationPoints[answers.ProcessDocumentation] +
		automationPoints[answers.AutomationExperience] +
		mainBlockerPoints(answers.MainBlocker)

	if score > MaxScore {
		return MaxScore
	}
	return score
}

func mainBlockerPoints(blocker models.MainBlocker) int {
	if points, ok := blockerPoints[blocker]; ok {
		return points
	}
	return defaultBlockerPoints
}
