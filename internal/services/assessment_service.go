package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"log/slog"
	"sync"
	"time"

	"github.com/SAP-F-2025/readiness-assessment/internal/engine"
	"github.com/SAP-F-2025/readiness-assessment/internal/events"
	"github.com/SAP-F-2025/readiness-assessment/internal/models"
	"github.com/SAP-F-2025/readiness-assessment/internal/repositories"
	"github.com/SAP-F-2025/readiness-assessment/internal/validator"
	"github.com/SAP-F-2025/readiness-assessment/pkg/monitoring"
	"github.com/google/uuid"
)

// handoffSource marks snapshots written by the quick quiz.
const handoffSource = "quick-check"

type AssessmentServiceConfig struct {
	SessionTTL    time.Duration
	PrefillPolicy engine.PrefillPolicy
	Catalog       *engine.Catalog
}

type assessmentService struct {
	store     repositories.BlobStore
	publisher events.EventPublisher
	metrics   *monitoring.Metrics
	logger    *ServiceLogger
	validator *validator.Validator
	config    AssessmentServiceConfig
	locks     *sessionLocks
	now       func() time.Time
	newID     func() string
}

func NewAssessmentService(
	store repositories.BlobStore,
	publisher events.EventPublisher,
	metrics *monitoring.Metrics,
	logger *slog.Logger,
	validator *validator.Validator,
	config AssessmentServiceConfig,
) AssessmentService {
	if config.Catalog == nil {
		config.Catalog = engine.DefaultCatalog()
	}
	if config.PrefillPolicy == "" {
		config.PrefillPolicy = engine.PrefillPresence
	}

	return &assessmentService{
		store:     store,
		publisher: publisher,
		metrics:   metrics,
		logger:    NewServiceLogger(logger, "assessment", "session"),
		validator: validator,
		config:    config,
		locks:     &sessionLocks{},
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// ===== QUICK QUIZ HAND-OFF =====

func (s *assessmentService) SubmitQuickQuiz(ctx context.Context, req *QuickQuizRequest) (resp *QuickQuizResponse, err error) {
	key := s.newID()
	op := s.logger.WithOperation(ctx, "submit_quick_quiz")
	defer func() { op.LogResult(key, "handoff", err) }()

	if req == nil {
		return nil, ErrInvalidRequest
	}
	if err = s.validator.Validate(req); err != nil {
		return nil, err
	}

	score, level := engine.ScoreAndClassify(req.QuickQuizAnswers)
	snapshot := models.QuickQuizSnapshot{
		HasApis:              req.HasApis,
		DataAccess:           req.DataAccess,
		ProcessDocumentation: req.ProcessDocumentation,
		AutomationExperience: req.AutomationExperience,
		MainBlocker:          req.MainBlocker,
		QuickCheckScore:      &score,
		QuickCheckLevel:      string(level),
		Source:               handoffSource,
		Timestamp:            s.now().UTC().Format(time.RFC3339),
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err = s.store.Set(ctx, repositories.HandoffKey(key), data, s.config.SessionTTL); err != nil {
		return nil, fmt.Errorf("failed to store hand-off: %w", err)
	}

	s.metrics.QuickQuizScored(score, level)
	s.publish(ctx, op, events.NewQuickQuizSubmittedEvent(key, score, level))

	return &QuickQuizResponse{
		HandoffKey: key,
		Score:      score,
		Level:      level,
		Snapshot:   snapshot,
	}, nil
}

// ===== SESSIONS =====

func (s *assessmentService) StartSession(ctx context.Context, req *StartSessionRequest) (resp *SessionResponse, err error) {
	sessionID := s.newID()
	op := s.logger.WithOperation(ctx, "start_session")
	defer func() { op.LogResult(sessionID, "session", err) }()

	if req == nil {
		req = &StartSessionRequest{}
	}
	if err = s.validator.Validate(req); err != nil {
		return nil, err
	}
	if req.HandoffKey != "" && len(req.Snapshot) > 0 {
		return nil, ValidationErrors{*NewValidationError("snapshot", "cannot be combined with handoffKey", nil)}
	}

	raw := []byte(req.Snapshot)
	if req.HandoffKey != "" {
		if raw, err = s.takeHandoff(ctx, op, req.HandoffKey); err != nil {
			return nil, err
		}
	}

	session := engine.NewSession(sessionID, s.sessionOptions()...)
	outcome := session.LoadPrefill(raw)
	if outcome == engine.PrefillRejected {
		op.Warn("Quick quiz snapshot rejected, starting without prefill", "session_id", sessionID)
	}

	if err = s.save(ctx, session); err != nil {
		return nil, err
	}

	s.metrics.SessionStarted(session.SkippedCount())
	s.publish(ctx, op, events.NewAssessmentStartedEvent(sessionID, session.SkippedCount()))

	return s.buildResponse(session, outcome, true), nil
}

// takeHandoff reads a hand-off snapshot and deletes it; a missing key yields no snapshot.
func (s *assessmentService) takeHandoff(ctx context.Context, op *ContextualLogger, key string) ([]byte, error) {
	storeKey := repositories.HandoffKey(key)
	raw, err := s.store.Get(ctx, storeKey)
	if err != nil {
		if errors.Is(err, repositories.ErrBlobNotFound) {
			op.Warn("Hand-off not found, starting without prefill", "handoff_key", key)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read hand-off: %w", err)
	}

	if err := s.store.Delete(ctx, storeKey); err != nil {
		op.Warn("Failed to delete consumed hand-off", "handoff_key", key, "error", err)
	}
	return raw, nil
}

func (s *assessmentService) GetSession(ctx context.Context, sessionID string) (*SessionResponse, error) {
	return s.mutate(ctx, "get_session", sessionID, func(*engine.Session) (bool, error) {
		return false, nil
	})
}

func (s *assessmentService) Answer(ctx context.Context, sessionID string, req *AnswerRequest) (*SessionResponse, error) {
	return s.mutate(ctx, "answer", sessionID, func(session *engine.Session) (bool, error) {
		if req == nil {
			return false, ErrInvalidRequest
		}
		if err := s.validator.Validate(req); err != nil {
			return false, err
		}
		if session.IsComplete() {
			return false, ErrSessionComplete
		}

		switch {
		case req.Ordinal <= session.SkippedCount():
			return false, NewBusinessRuleError("prefilled_question",
				"question was answered in the quick quiz",
				map[string]interface{}{"ordinal": req.Ordinal, "skipped_count": session.SkippedCount()})
		case req.Ordinal != session.CurrentOrdinal():
			return false, NewBusinessRuleError("current_question_only",
				"only the current question can be answered",
				map[string]interface{}{"ordinal": req.Ordinal, "current_ordinal": session.CurrentOrdinal()})
		}

		value := req.Value()
		if err := session.ValidateAnswer(value); err != nil {
			field := "selections"
			if session.CurrentQuestion().InputKind == models.FreeText {
				field = "text"
			}
			return false, ValidationErrors{*NewValidationError(field, err.Error(), nil)}
		}

		if !session.Answer(req.Ordinal, value) {
			return false, fmt.Errorf("%w: answer for question %d not accepted", ErrInvalidRequest, req.Ordinal)
		}
		return true, nil
	})
}

func (s *assessmentService) Next(ctx context.Context, sessionID string) (*SessionResponse, error) {
	return s.mutate(ctx, "next", sessionID, func(session *engine.Session) (bool, error) {
		return session.Next(), nil
	})
}

func (s *assessmentService) Previous(ctx context.Context, sessionID string) (*SessionResponse, error) {
	return s.mutate(ctx, "previous", sessionID, func(session *engine.Session) (bool, error) {
		return session.Previous(), nil
	})
}

func (s *assessmentService) Restart(ctx context.Context, sessionID string) (err error) {
	op := s.logger.WithOperation(ctx, "restart")
	defer func() { op.LogResult(sessionID, "session", err) }()

	unlock := s.locks.lock(sessionID)
	defer unlock()

	if _, err = s.store.Get(ctx, repositories.SessionKey(sessionID)); err != nil {
		if errors.Is(err, repositories.ErrBlobNotFound) {
			return ErrSessionNotFound
		}
		return fmt.Errorf("failed to load session: %w", err)
	}
	if err = s.store.Delete(ctx, repositories.SessionKey(sessionID)); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (s *assessmentService) Catalog(ctx context.Context) []models.QuestionDefinition {
	return s.config.Catalog.Questions()
}

// mutate loads a session under its lock, applies action and persists the result.
// A session that ends up complete is handed to the report generator and removed.
func (s *assessmentService) mutate(ctx context.Context, operation, sessionID string, action func(*engine.Session) (bool, error)) (resp *SessionResponse, err error) {
	op := s.logger.WithOperation(ctx, operation)
	defer func() { op.LogResult(sessionID, "session", err) }()

	unlock := s.locks.lock(sessionID)
	defer unlock()

	session, err := s.load(ctx, op, sessionID)
	if err != nil {
		return nil, err
	}

	changed, err := action(session)
	if err != nil {
		return nil, err
	}

	if session.IsComplete() {
		return s.complete(ctx, op, session, changed)
	}
	if changed {
		if err = s.save(ctx, session); err != nil {
			return nil, err
		}
	}
	return s.buildResponse(session, "", changed), nil
}

func (s *assessmentService) complete(ctx context.Context, op *ContextualLogger, session *engine.Session, changed bool) (*SessionResponse, error) {
	report, _ := session.Report()

	if !session.ReportPublished() {
		if err := s.publisher.Publish(ctx, events.NewAssessmentCompletedEvent(report)); err != nil {
			// the next call on this session retries the hand-off
			if changed {
				if saveErr := s.save(ctx, session); saveErr != nil {
					op.Warn("Failed to save completed session", "session_id", session.ID(), "error", saveErr)
				}
			}
			return nil, fmt.Errorf("failed to publish report: %w", err)
		}
		session.MarkReportPublished()
		s.metrics.SessionCompleted()
	}

	if err := s.store.Delete(ctx, repositories.SessionKey(session.ID())); err != nil {
		op.Warn("Failed to delete completed session", "session_id", session.ID(), "error", err)
		if saveErr := s.save(ctx, session); saveErr != nil {
			op.Warn("Failed to save completed session", "session_id", session.ID(), "error", saveErr)
		}
	}

	resp := s.buildResponse(session, "", changed)
	resp.Report = &report
	return resp, nil
}

func (s *assessmentService) load(ctx context.Context, op *ContextualLogger, sessionID string) (*engine.Session, error) {
	data, err := s.store.Get(ctx, repositories.SessionKey(sessionID))
	if err != nil {
		if errors.Is(err, repositories.ErrBlobNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var state models.SessionState
	if err := json.Unmarshal(data, &state); err != nil {
		op.Warn("Discarding undecodable session", "session_id", sessionID, "error", err)
		return nil, ErrSessionNotFound
	}
	if state.ID != sessionID {
		op.Warn("Discarding session stored under another id", "session_id", sessionID, "stored_id", state.ID)
		return nil, ErrSessionNotFound
	}

	session, err := engine.Restore(state, s.sessionOptions()...)
	if err != nil {
		op.Warn("Discarding corrupt session", "session_id", sessionID, "error", err)
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (s *assessmentService) save(ctx context.Context, session *engine.Session) error {
	data, err := json.Marshal(session.State())
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.store.Set(ctx, repositories.SessionKey(session.ID()), data, s.config.SessionTTL); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *assessmentService) sessionOptions() []engine.Option {
	return []engine.Option{
		engine.WithCatalog(s.config.Catalog),
		engine.WithPrefillPolicy(s.config.PrefillPolicy),
		engine.WithClock(s.now),
	}
}

func (s *assessmentService) buildResponse(session *engine.Session, outcome engine.PrefillOutcome, changed bool) *SessionResponse {
	resp := &SessionResponse{
		DisplayState: session.Display(),
		Prefill:      outcome,
		Changed:      changed,
		Answers:      session.Answers(),
	}
	if score, level, ok := session.QuickScore(); ok {
		resp.QuickScore = &QuickScore{Score: score, Level: level}
	}
	return resp
}

// publish sends a best-effort event; failures are logged, not returned.
func (s *assessmentService) publish(ctx context.Context, op *ContextualLogger, event *events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		op.Warn("Failed to publish event", "event_type", event.Type, "error", err)
	}
}

// sessionLocks serializes operations on the same session id within this process.
type sessionLocks struct {
	stripes [64]sync.Mutex
}

func (l *sessionLocks) lock(sessionID string) func() {
	h := fnv.New32a()
	h.Write([]byte(sessionID))
	m := &l.stripes[h.Sum32()%uint32(len(l.stripes))]
	m.Lock()
	return m.Unlock
}
