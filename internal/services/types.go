package services

import (
	"context"
	"encoding/json"

	"github.com/SAP-F-2025/readiness-assessment/internal/engine"
	"github.com/SAP-F-2025/readiness-assessment/internal/models"
)

// AssessmentService runs the quick-quiz hand-off and detailed assessment sessions
type AssessmentService interface {
	SubmitQuickQuiz(ctx context.Context, req *QuickQuizRequest) (*QuickQuizResponse, error)

	StartSession(ctx context.Context, req *StartSessionRequest) (*SessionResponse, error)
	GetSession(ctx context.Context, sessionID string) (*SessionResponse, error)
	Answer(ctx context.Context, sessionID string, req *AnswerRequest) (*SessionResponse, error)
	Next(ctx context.Context, sessionID string) (*SessionResponse, error)
	Previous(ctx context.Context, sessionID string) (*SessionResponse, error)
	Restart(ctx context.Context, sessionID string) error

	Catalog(ctx context.Context) []models.QuestionDefinition
}

// ExportService renders assessment data to spreadsheet files
type ExportService interface {
	ExportCatalogToExcel(ctx context.Context) ([]byte, error)
}

// ===== REQUESTS =====

type QuickQuizRequest struct {
	models.QuickQuizAnswers
}

// StartSessionRequest names where the quick-quiz snapshot comes from.
// At most one of HandoffKey and Snapshot may be set; neither means no prefill.
type StartSessionRequest struct {
	HandoffKey string          `json:"handoffKey" validate:"omitempty,uuid"`
	Snapshot   json.RawMessage `json:"snapshot,omitempty"`
}

type AnswerRequest struct {
	Ordinal    int      `json:"ordinal" validate:"required,gte=1,lte=15"`
	Text       string   `json:"text,omitempty" validate:"max=2000"`
	Selections []string `json:"selections,omitempty" validate:"max=20,dive,max=200"`
}

func (r *AnswerRequest) Value() models.AnswerValue {
	return models.AnswerValue{Text: r.Text, Selections: r.Selections}
}

// ===== RESPONSES =====

type QuickQuizResponse struct {
	HandoffKey string                   `json:"handoffKey"`
	Score      int                      `json:"score"`
	Level      models.MaturityLevel     `json:"level"`
	Snapshot   models.QuickQuizSnapshot `json:"snapshot"`
}

type QuickScore struct {
	Score int                  `json:"score"`
	Level models.MaturityLevel `json:"level"`
}

type SessionResponse struct {
	models.DisplayState
	Prefill    engine.PrefillOutcome `json:"prefill,omitempty"`
	Changed    bool                  `json:"changed"`
	QuickScore *QuickScore           `json:"quickScore,omitempty"`
	Answers    []models.AnswerRecord `json:"answers"`
	Report     *models.ReportPayload `json:"report,omitempty"`
}
