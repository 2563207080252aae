package engine

import "github.com/SAP-F-2025/readiness-assessment/internal/models"

type maturityThreshold struct {
	minScore int
	level    models.MaturityLevel
}

// Evaluated highest first; the lower bound is inclusive.
var maturityThresholds = []maturityThreshold{
	{90, models.LevelAgentReady},
	{70, models.LevelIntegrationReady},
	{50, models.LevelDigitalizationReady},
	{30, models.LevelFoundationBuilding},
}

// Classify maps a quick-quiz score to its maturity level.
func Classify(score int) models.MaturityLevel {
	for _, t := range maturityThresholds {
		if score >= t.minScore {
			return t.level
		}
	}
	return models.LevelPreDigital
}

// ScoreAndClassify computes the score of answers and its level in one call.
func ScoreAndClassify(answers models.QuickQuizAnswers) (int, models.MaturityLevel) {
	score := CalculateScore(answers)
	return score, Classify(score)
}
