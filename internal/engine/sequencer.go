package engine

import (
	"fmt"

	"github.com/SAP-F-2025/readiness-assessment/internal/models"
)

// PrefillPolicy decides how canonical snapshot fields turn into skipped questions.
type PrefillPolicy string

const (
	// PrefillPresence counts every present canonical field, wherever it sits in the order.
	PrefillPresence PrefillPolicy = "presence"
	// PrefillContiguous counts only the unbroken leading run of present fields.
	PrefillContiguous PrefillPolicy = "contiguous"
)

// ParsePrefillPolicy parses a configured policy name; empty means PrefillPresence.
func ParsePrefillPolicy(name string) (PrefillPolicy, error) {
	switch PrefillPolicy(name) {
	case "", PrefillPresence:
		return PrefillPresence, nil
	case PrefillContiguous:
		return PrefillContiguous, nil
	default:
		return "", fmt.Errorf("unknown prefill policy %q", name)
	}
}

// SkippedCount applies the policy to snapshot.
func (p PrefillPolicy) SkippedCount(snapshot *models.QuickQuizSnapshot) int {
	if p == PrefillContiguous {
		return ContiguousSkippedCount(snapshot)
	}
	return ComputeSkippedCount(snapshot)
}

// ComputeSkippedCount counts the present, domain-valid canonical fields of snapshot.
// It counts presence, not contiguity: a lone mainBlocker still yields 1.
func ComputeSkippedCount(snapshot *models.QuickQuizSnapshot) int {
	if snapshot == nil {
		return 0
	}
	count := 0
	for _, field := range models.CanonicalFields {
		if snapshot.Value(field) != "" {
			count++
		}
	}
	return count
}

// ContiguousSkippedCount counts present canonical fields up to the first missing one.
func ContiguousSkippedCount(snapshot *models.QuickQuizSnapshot) int {
	if snapshot == nil {
		return 0
	}
	count := 0
	for _, field := range models.CanonicalFields {
		if snapshot.Value(field) == "" {
			break
		}
		count++
	}
	return count
}

// InitialOrdinal is the first navigable ordinal after skippedCount prefilled questions.
func InitialOrdinal(skippedCount int) int {
	return clampOrdinal(skippedCount + 1)
}

// NextOrdinal advances one step, never past TotalQuestions.
func NextOrdinal(current int) int {
	return clampOrdinal(current + 1)
}

// PreviousOrdinal steps back one, never into the skipped prefix.
func PreviousOrdinal(current, skippedCount int) int {
	return clampOrdinal(max(current-1, skippedCount+1))
}

func clampOrdinal(ordinal int) int {
	return min(max(ordinal, 1), TotalQuestions)
}
