package engine

import (
	"fmt"
	"sort"
	"time"

	"github.com/SAP-F-2025/readiness-assessment/internal/models"
	"github.com/SAP-F-2025/readiness-assessment/internal/validator"
)

// PrefillOutcome tells the caller what LoadPrefill did with the hand-off blob.
type PrefillOutcome string

const (
	PrefillAbsent   PrefillOutcome = "absent"
	PrefillRejected PrefillOutcome = "rejected"
	PrefillApplied  PrefillOutcome = "applied"
)

// Session is one user's attempt at the detailed assessment.
// It is not safe for concurrent use.
type Session struct {
	id       string
	catalog  *Catalog
	policy   PrefillPolicy
	answers  *validator.AnswerValidator
	now      func() time.Time
	snapshot *models.QuickQuizSnapshot

	skippedCount    int
	records         map[int]models.AnswerRecord
	currentOrdinal  int
	reportPublished bool
	createdAt       time.Time
	updatedAt       time.Time
}

// Option configures a Session.
type Option func(*Session)

func WithCatalog(catalog *Catalog) Option {
	return func(s *Session) { s.catalog = catalog }
}

func WithPrefillPolicy(policy PrefillPolicy) Option {
	return func(s *Session) { s.policy = policy }
}

func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// NewSession starts an empty session at ordinal 1.
func NewSession(id string, opts ...Option) *Session {
	s := newSession(id, opts...)
	s.createdAt = s.now()
	s.updatedAt = s.createdAt
	return s
}

func newSession(id string, opts ...Option) *Session {
	s := &Session{
		id:             id,
		catalog:        DefaultCatalog(),
		policy:         PrefillPresence,
		answers:        validator.NewAnswerValidator(),
		now:            time.Now,
		records:        make(map[int]models.AnswerRecord),
		currentOrdinal: 1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) ID() string { return s.id }

func (s *Session) SkippedCount() int { return s.skippedCount }

func (s *Session) CurrentOrdinal() int { return s.currentOrdinal }

// Snapshot returns the loaded quick-quiz snapshot, or nil.
func (s *Session) Snapshot() *models.QuickQuizSnapshot {
	if s.snapshot == nil {
		return nil
	}
	cp := *s.snapshot
	return &cp
}

// LoadPrefill parses raw as a quick-quiz snapshot and seeds the skipped prefix.
// Unparseable or mis-shaped input falls back to an empty snapshot; it never fails.
// Any previously recorded answers are discarded.
func (s *Session) LoadPrefill(raw []byte) PrefillOutcome {
	snapshot, err := validator.ParseSnapshot(raw)
	outcome := PrefillApplied
	switch {
	case err != nil:
		snapshot = nil
		outcome = PrefillRejected
	case snapshot == nil:
		outcome = PrefillAbsent
	}

	s.applySnapshot(snapshot)
	return outcome
}

func (s *Session) applySnapshot(snapshot *models.QuickQuizSnapshot) {
	s.snapshot = snapshot
	s.skippedCount = s.policy.SkippedCount(snapshot)
	s.records = make(map[int]models.AnswerRecord)

	for ordinal := 1; ordinal <= s.skippedCount; ordinal++ {
		field, ok := s.catalog.CanonicalOrdinals()[ordinal]
		if !ok {
			continue
		}
		value := snapshot.Value(field)
		if value == "" {
			// presence policy: a later field counted for this ordinal
			continue
		}
		s.records[ordinal] = models.AnswerRecord{
			Ordinal: ordinal,
			Value:   models.SelectAnswer(value),
			Origin:  models.OriginPrefill,
		}
	}

	s.currentOrdinal = InitialOrdinal(s.skippedCount)
	s.touch()
}

// ValidateAnswer reports why value would be rejected for the current question, or nil.
func (s *Session) ValidateAnswer(value models.AnswerValue) error {
	return s.answers.Validate(s.CurrentQuestion(), value)
}

// Answer records value for ordinal when ordinal is the current, user-answerable question
// and value passes the question's input-kind validation. It reports whether it did.
func (s *Session) Answer(ordinal int, value models.AnswerValue) bool {
	if s.IsComplete() || ordinal != s.currentOrdinal || ordinal <= s.skippedCount {
		return false
	}
	if existing, ok := s.records[ordinal]; ok && existing.Origin == models.OriginPrefill {
		return false
	}

	question := s.catalog.MustQuestion(ordinal)
	if err := s.answers.Validate(question, value); err != nil {
		return false
	}

	s.records[ordinal] = models.AnswerRecord{
		Ordinal: ordinal,
		Value:   s.answers.Normalize(value),
		Origin:  models.OriginUser,
	}
	s.touch()
	return true
}

// Next advances one question once the current one is answered.
func (s *Session) Next() bool {
	if s.IsComplete() || !s.isCurrentAnswered() {
		return false
	}
	next := NextOrdinal(s.currentOrdinal)
	if next == s.currentOrdinal {
		return false
	}
	s.currentOrdinal = next
	s.touch()
	return true
}

// Previous steps back one question, never into the prefilled prefix.
func (s *Session) Previous() bool {
	if s.IsComplete() {
		return false
	}
	prev := PreviousOrdinal(s.currentOrdinal, s.skippedCount)
	if prev == s.currentOrdinal {
		return false
	}
	s.currentOrdinal = prev
	s.touch()
	return true
}

// IsComplete is true once the last question has an answer.
func (s *Session) IsComplete() bool {
	_, ok := s.records[TotalQuestions]
	return ok
}

func (s *Session) isCurrentAnswered() bool {
	_, ok := s.records[s.currentOrdinal]
	return ok
}

// CurrentQuestion returns the question at the current ordinal.
func (s *Session) CurrentQuestion() models.QuestionDefinition {
	return s.catalog.MustQuestion(s.currentOrdinal)
}

// Answers returns every record in ordinal order.
func (s *Session) Answers() []models.AnswerRecord {
	out := make([]models.AnswerRecord, 0, len(s.records))
	for _, record := range s.records {
		out = append(out, record)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Ordinal < out[j].Ordinal })
	return out
}

// AnswerAt returns the record at ordinal, if any.
func (s *Session) AnswerAt(ordinal int) (models.AnswerRecord, bool) {
	record, ok := s.records[ordinal]
	return record, ok
}

// QuickScore scores the loaded snapshot. ok is false when no canonical field was supplied.
func (s *Session) QuickScore() (score int, level models.MaturityLevel, ok bool) {
	if s.snapshot == nil || s.snapshot.IsEmpty() {
		return 0, "", false
	}
	score, level = ScoreAndClassify(s.snapshot.Answers())
	return score, level, true
}

// Display derives the state the UI renders.
func (s *Session) Display() models.DisplayState {
	display := models.DisplayState{
		SessionID:             s.id,
		DisplayQuestionNumber: DisplayQuestionNumber(s.currentOrdinal),
		TotalQuestions:        TotalQuestions,
		PercentComplete:       PercentComplete(s.currentOrdinal, s.skippedCount),
		SkippedCount:          s.skippedCount,
		Label:                 ProgressLabel(s.currentOrdinal),
		CurrentQuestion:       s.CurrentQuestion(),
		IsAnswerValid:         s.isCurrentAnswered(),
		CanGoBack:             !s.IsComplete() && PreviousOrdinal(s.currentOrdinal, s.skippedCount) != s.currentOrdinal,
		IsComplete:            s.IsComplete(),
	}
	if record, ok := s.records[s.currentOrdinal]; ok {
		display.CurrentAnswer = &record
	}
	return display
}

// Report builds the payload for the report generator; ok is false until the session is complete.
func (s *Session) Report() (models.ReportPayload, bool) {
	if !s.IsComplete() {
		return models.ReportPayload{}, false
	}
	payload := models.ReportPayload{
		SessionID:    s.id,
		Answers:      s.Answers(),
		Snapshot:     s.Snapshot(),
		SkippedCount: s.skippedCount,
		CompletedAt:  s.updatedAt,
	}
	if score, level, ok := s.QuickScore(); ok {
		payload.Score = &score
		payload.Level = level
	}
	return payload, true
}

func (s *Session) ReportPublished() bool { return s.reportPublished }

// MarkReportPublished records that the report payload has been handed off.
func (s *Session) MarkReportPublished() {
	s.reportPublished = true
	s.touch()
}

func (s *Session) touch() {
	s.updatedAt = s.now()
}

// State returns the serializable form of the session.
func (s *Session) State() models.SessionState {
	return models.SessionState{
		ID:              s.id,
		Snapshot:        s.Snapshot(),
		SkippedCount:    s.skippedCount,
		Answers:         s.Answers(),
		CurrentOrdinal:  s.currentOrdinal,
		ReportPublished: s.reportPublished,
		CreatedAt:       s.createdAt,
		UpdatedAt:       s.updatedAt,
	}
}

// Restore rebuilds a session from state, rejecting states no sequence of actions could produce.
func Restore(state models.SessionState, opts ...Option) (*Session, error) {
	s := newSession(state.ID, opts...)

	if state.SkippedCount < 0 || state.SkippedCount > CanonicalCount {
		return nil, fmt.Errorf("%w: skipped count %d", ErrCorruptState, state.SkippedCount)
	}
	if state.CurrentOrdinal < InitialOrdinal(state.SkippedCount) || state.CurrentOrdinal > TotalQuestions {
		return nil, fmt.Errorf("%w: current ordinal %d with %d skipped", ErrCorruptState, state.CurrentOrdinal, state.SkippedCount)
	}

	for _, record := range state.Answers {
		if record.Ordinal < 1 || record.Ordinal > TotalQuestions {
			return nil, fmt.Errorf("%w: answer ordinal %d", ErrCorruptState, record.Ordinal)
		}
		prefilled := record.Ordinal <= state.SkippedCount
		switch {
		case record.Origin == models.OriginPrefill && !prefilled,
			record.Origin == models.OriginUser && prefilled,
			record.Origin != models.OriginPrefill && record.Origin != models.OriginUser:
			return nil, fmt.Errorf("%w: answer %d has origin %q", ErrCorruptState, record.Ordinal, record.Origin)
		}
		s.records[record.Ordinal] = record
	}

	if state.Snapshot != nil {
		snapshot := state.Snapshot.Normalize()
		s.snapshot = &snapshot
	}
	s.skippedCount = state.SkippedCount
	s.currentOrdinal = state.CurrentOrdinal
	s.reportPublished = state.ReportPublished
	s.createdAt = state.CreatedAt
	s.updatedAt = state.UpdatedAt
	return s, nil
}
