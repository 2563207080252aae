package events

import (
	"time"

	"github.com/SAP-F-2025/readiness-assessment/internal/models"
	"github.com/google/uuid"
)

// EventType represents the kinds of events the assessment service emits
type EventType string

const (
	EventQuickQuizSubmitted  EventType = "quickquiz.submitted"
	EventAssessmentStarted   EventType = "assessment.started"
	EventAssessmentCompleted EventType = "assessment.completed"
)

const (
	eventSource  = "readiness-assessment"
	eventVersion = "1.0"
)

// Event is the envelope for every published event
type Event struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

type QuickQuizSubmittedEvent struct {
	HandoffKey string               `json:"handoff_key"`
	Score      int                  `json:"score"`
	Level      models.MaturityLevel `json:"level"`
}

type AssessmentStartedEvent struct {
	SessionID    string `json:"session_id"`
	SkippedCount int    `json:"skipped_count"`
	Prefilled    bool   `json:"prefilled"`
}

// AssessmentCompletedEvent carries the report payload to the report generator.
type AssessmentCompletedEvent struct {
	Report models.ReportPayload `json:"report"`
}

// NewEvent wraps data in an envelope with a fresh id.
func NewEvent(eventType EventType, data interface{}) *Event {
	return &Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Source:    eventSource,
		Version:   eventVersion,
		Data:      data,
	}
}

func NewQuickQuizSubmittedEvent(handoffKey string, score int, level models.MaturityLevel) *Event {
	return NewEvent(EventQuickQuizSubmitted, QuickQuizSubmittedEvent{
		HandoffKey: handoffKey,
		Score:      score,
		Level:      level,
	})
}

func NewAssessmentStartedEvent(sessionID string, skippedCount int) *Event {
	return NewEvent(EventAssessmentStarted, AssessmentStartedEvent{
		SessionID:    sessionID,
		SkippedCount: skippedCount,
		Prefilled:    skippedCount > 0,
	})
}

func NewAssessmentCompletedEvent(report models.ReportPayload) *Event {
	event := NewEvent(EventAssessmentCompleted, AssessmentCompletedEvent{Report: report})
	event.Metadata = map[string]interface{}{
		"session_id":    report.SessionID,
		"skipped_count": report.SkippedCount,
	}
	return event
}
