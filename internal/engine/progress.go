package engine

import (
	"fmt"
	"math"
)

// DisplayQuestionNumber is the number shown to the user; ordinals already skip the prefix.
func DisplayQuestionNumber(currentOrdinal int) int {
	return currentOrdinal
}

// ProgressLabel renders the question counter, e.g. "Vraag 6 van 15".
func ProgressLabel(currentOrdinal int) string {
	return fmt.Sprintf("Vraag %d van %d", DisplayQuestionNumber(currentOrdinal), TotalQuestions)
}

// PercentComplete measures progress within the questions that were not skipped.
func PercentComplete(currentOrdinal, skippedCount int) int {
	remaining := TotalQuestions - skippedCount
	if remaining <= 0 {
		return 100
	}

	steps := min(currentOrdinal-skippedCount, remaining)
	percent := int(math.Round(float64(steps) / float64(remaining) * 100))
	return min(max(percent, 0), 100)
}
