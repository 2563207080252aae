package models

import "time"

// SessionState is the serializable form of an assessment session.
type SessionState struct {
	ID              string             `json:"id"`
	Snapshot        *QuickQuizSnapshot `json:"snapshot"`
	SkippedCount    int                `json:"skippedCount"`
	Answers         []AnswerRecord     `json:"answers"`
	CurrentOrdinal  int                `json:"currentOrdinal"`
	ReportPublished bool               `json:"reportPublished"`
	CreatedAt       time.Time          `json:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt"`
}

// DisplayState is what the assessment UI renders after every action.
type DisplayState struct {
	SessionID             string             `json:"sessionId"`
	DisplayQuestionNumber int                `json:"displayQuestionNumber"`
	TotalQuestions        int                `json:"totalQuestions"`
	PercentComplete       int                `json:"percentComplete"`
	SkippedCount          int                `json:"skippedCount"`
	Label                 string             `json:"label"`
	CurrentQuestion       QuestionDefinition `json:"currentQuestion"`
	CurrentAnswer         *AnswerRecord      `json:"currentAnswer,omitempty"`
	IsAnswerValid         bool               `json:"isAnswerValid"`
	CanGoBack             bool               `json:"canGoBack"`
	IsComplete            bool               `json:"isComplete"`
}

// ReportPayload is handed to the report generator once a session is complete.
type ReportPayload struct {
	SessionID    string             `json:"sessionId"`
	Answers      []AnswerRecord     `json:"answers"`
	Snapshot     *QuickQuizSnapshot `json:"snapshot"`
	SkippedCount int                `json:"skippedCount"`
	Score        *int               `json:"score,omitempty"`
	Level        MaturityLevel      `json:"level,omitempty"`
	CompletedAt  time.Time          `json:"completedAt"`
}
