package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressLabel(t *testing.T) {
	assert.Equal(t, "Vraag 1 van 15", ProgressLabel(1))
	assert.Equal(t, "Vraag 6 van 15", ProgressLabel(6))
	assert.Equal(t, "Vraag 15 van 15", ProgressLabel(15))
}

func TestPercentComplete(t *testing.T) {
	tests := []struct {
		name    string
		current int
		skipped int
		want    int
	}{
		{"first question no prefill", 1, 0, 7},
		{"last question no prefill", 15, 0, 100},
		{"first open question after full prefill", 6, 5, 10},
		{"second open question after full prefill", 7, 5, 20},
		{"last question after full prefill", 15, 5, 100},
		{"first open question after partial prefill", 3, 2, 8},
		{"before prefix clamps to zero", 1, 5, 0},
		{"nothing left", 15, 15, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PercentComplete(tt.current, tt.skipped))
		})
	}
}

func TestPercentComplete_Monotonic(t *testing.T) {
	for k := 0; k <= CanonicalCount; k++ {
		previous := -1
		for current := InitialOrdinal(k); current <= TotalQuestions; current++ {
			percent := PercentComplete(current, k)
			assert.GreaterOrEqual(t, percent, previous, "k=%d current=%d", k, current)
			assert.GreaterOrEqual(t, percent, 0)
			assert.LessOrEqual(t, percent, 100)
			previous = percent
		}
		assert.Equal(t, 100, previous)
	}
}
