package engine

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/SAP-F-2025/readiness-assessment/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func newTestSession(opts ...Option) *Session {
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return NewSession("session-1", opts...)
}

func fullSnapshotJSON(t *testing.T) []byte {
	t.Helper()
	raw, err := json.Marshal(map[string]any{
		"hasApis":              "most",
		"dataAccess":           "instant",
		"processDocumentation": "documented",
		"automationExperience": "advanced",
		"mainBlocker":          "Budget/resources beperkt",
		"quickCheckScore":      98,
		"quickCheckLevel":      "Agent-Ready (Level 5)",
		"source":               "quick-check",
		"timestamp":            "2026-03-14T09:00:00Z",
	})
	require.NoError(t, err)
	return raw
}

// answerCurrent answers the current question with its first option (or text) and advances.
func answerCurrent(t *testing.T, s *Session) {
	t.Helper()
	q := s.CurrentQuestion()
	value := models.TextAnswer("Minder handwerk")
	if q.InputKind != models.FreeText {
		value = models.SelectAnswer(q.Options[0].Value)
	}
	require.True(t, s.Answer(q.Ordinal, value), "answer %d", q.Ordinal)
	if q.Ordinal < TotalQuestions {
		require.True(t, s.Next(), "next from %d", q.Ordinal)
	}
}

func TestSession_FullPrefill(t *testing.T) {
	s := newTestSession()

	outcome := s.LoadPrefill(fullSnapshotJSON(t))

	assert.Equal(t, PrefillApplied, outcome)
	assert.Equal(t, 5, s.SkippedCount())
	assert.Equal(t, 6, s.CurrentOrdinal())

	score, level, ok := s.QuickScore()
	require.True(t, ok)
	assert.Equal(t, 98, score)
	assert.Equal(t, models.LevelAgentReady, level)

	display := s.Display()
	assert.Equal(t, "Vraag 6 van 15", display.Label)
	assert.Equal(t, 6, display.DisplayQuestionNumber)
	assert.Equal(t, 10, display.PercentComplete)
	assert.False(t, display.IsAnswerValid)
	assert.False(t, display.CanGoBack)
	assert.False(t, display.IsComplete)

	answers := s.Answers()
	require.Len(t, answers, 5)
	for i, record := range answers {
		assert.Equal(t, i+1, record.Ordinal)
		assert.Equal(t, models.OriginPrefill, record.Origin)
	}
	assert.Equal(t, []string{"Budget/resources beperkt"}, answers[4].Value.Selections)

	require.True(t, s.Answer(6, models.SelectAnswer("erp")))
	require.True(t, s.Next())

	display = s.Display()
	assert.Equal(t, "Vraag 7 van 15", display.Label)
	assert.Equal(t, 20, display.PercentComplete)
	assert.True(t, display.CanGoBack)
}

func TestSession_LoadPrefill_Outcomes(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantOutcome PrefillOutcome
		wantSkipped int
	}{
		{"empty input", "", PrefillAbsent, 0},
		{"json null", "null", PrefillAbsent, 0},
		{"malformed json", "invalid-json{", PrefillRejected, 0},
		{"array instead of object", `["most"]`, PrefillRejected, 0},
		{"number where string expected", `{"hasApis": 3}`, PrefillRejected, 0},
		{"empty object", `{}`, PrefillApplied, 0},
		{"partial prefix", `{"hasApis":"some","dataAccess":"minutes"}`, PrefillApplied, 2},
		{"out-of-domain value dropped", `{"hasApis":"lots","dataAccess":"minutes"}`, PrefillApplied, 1},
		{"unknown keys ignored", `{"hasApis":"none","favouriteColour":"blue"}`, PrefillApplied, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession()

			outcome := s.LoadPrefill([]byte(tt.raw))

			assert.Equal(t, tt.wantOutcome, outcome)
			assert.Equal(t, tt.wantSkipped, s.SkippedCount())
			assert.Equal(t, tt.wantSkipped+1, s.CurrentOrdinal())
			assert.Equal(t, ProgressLabel(tt.wantSkipped+1), s.Display().Label)
		})
	}
}

func TestSession_LoadPrefill_MalformedStartsAtFirstQuestion(t *testing.T) {
	s := newTestSession()

	s.LoadPrefill([]byte("invalid-json{"))

	assert.Equal(t, 0, s.SkippedCount())
	assert.Equal(t, "Vraag 1 van 15", s.Display().Label)
	assert.Nil(t, s.Snapshot())
	_, _, ok := s.QuickScore()
	assert.False(t, ok)
}

func TestSession_LoadPrefill_PresenceGap(t *testing.T) {
	s := newTestSession()

	s.LoadPrefill([]byte(`{"mainBlocker":"Anders"}`))

	assert.Equal(t, 1, s.SkippedCount())
	assert.Equal(t, 2, s.CurrentOrdinal())
	_, ok := s.AnswerAt(1)
	assert.False(t, ok)
	_, ok = s.AnswerAt(5)
	assert.False(t, ok)
}

func TestSession_LoadPrefill_ContiguousPolicy(t *testing.T) {
	s := newTestSession(WithPrefillPolicy(PrefillContiguous))

	s.LoadPrefill([]byte(`{"hasApis":"most","processDocumentation":"tribal"}`))

	assert.Equal(t, 1, s.SkippedCount())
	assert.Equal(t, 2, s.CurrentOrdinal())
	record, ok := s.AnswerAt(1)
	require.True(t, ok)
	assert.Equal(t, models.OriginPrefill, record.Origin)
}

func TestSession_LoadPrefill_ResetsAnswers(t *testing.T) {
	s := newTestSession()
	require.True(t, s.Answer(1, models.SelectAnswer("most")))

	s.LoadPrefill([]byte(`{"hasApis":"none"}`))

	record, ok := s.AnswerAt(1)
	require.True(t, ok)
	assert.Equal(t, models.OriginPrefill, record.Origin)
	assert.Equal(t, []string{"none"}, record.Value.Selections)
	assert.Len(t, s.Answers(), 1)
}

func TestSession_Answer(t *testing.T) {
	tests := []struct {
		name    string
		ordinal int
		value   models.AnswerValue
		want    bool
	}{
		{"valid multi-select", 6, models.SelectAnswer("erp", "crm"), true},
		{"not the current question", 7, models.SelectAnswer("1-10"), false},
		{"prefilled question", 3, models.SelectAnswer("tribal"), false},
		{"empty selection", 6, models.SelectAnswer(), false},
		{"unknown option", 6, models.SelectAnswer("mainframe"), false},
		{"text on select question", 6, models.TextAnswer("ERP"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession()
			s.LoadPrefill(fullSnapshotJSON(t))

			assert.Equal(t, tt.want, s.Answer(tt.ordinal, tt.value))
			_, recorded := s.AnswerAt(6)
			assert.Equal(t, tt.want, recorded)
		})
	}
}

func TestSession_Answer_SingleSelectRejectsMultiple(t *testing.T) {
	s := newTestSession()

	assert.False(t, s.Answer(1, models.SelectAnswer("most", "some")))
	assert.True(t, s.Answer(1, models.SelectAnswer("most", "most")))

	record, _ := s.AnswerAt(1)
	assert.Equal(t, []string{"most"}, record.Value.Selections)
	assert.Equal(t, models.OriginUser, record.Origin)
}

func TestSession_Answer_Overwrites(t *testing.T) {
	s := newTestSession()

	require.True(t, s.Answer(1, models.SelectAnswer("most")))
	require.True(t, s.Answer(1, models.SelectAnswer("none")))

	record, _ := s.AnswerAt(1)
	assert.Equal(t, []string{"none"}, record.Value.Selections)
}

func TestSession_ValidateAnswer(t *testing.T) {
	s := newTestSession()

	assert.NoError(t, s.ValidateAnswer(models.SelectAnswer("some")))
	assert.Error(t, s.ValidateAnswer(models.SelectAnswer("sometimes")))
}

func TestSession_NextRequiresAnswer(t *testing.T) {
	s := newTestSession()

	assert.False(t, s.Next())
	assert.Equal(t, 1, s.CurrentOrdinal())

	require.True(t, s.Answer(1, models.SelectAnswer("some")))
	assert.True(t, s.Next())
	assert.Equal(t, 2, s.CurrentOrdinal())
}

func TestSession_Previous(t *testing.T) {
	s := newTestSession()
	s.LoadPrefill([]byte(`{"hasApis":"some","dataAccess":"minutes"}`))

	assert.False(t, s.Previous())
	assert.Equal(t, 3, s.CurrentOrdinal())

	answerCurrent(t, s)
	assert.Equal(t, 4, s.CurrentOrdinal())

	assert.True(t, s.Previous())
	assert.Equal(t, 3, s.CurrentOrdinal())
	assert.True(t, s.Display().IsAnswerValid)

	assert.False(t, s.Previous())
	assert.Equal(t, 3, s.CurrentOrdinal())
}

func TestSession_Completion(t *testing.T) {
	s := newTestSession()
	s.LoadPrefill(fullSnapshotJSON(t))

	_, ok := s.Report()
	assert.False(t, ok)

	for !s.IsComplete() {
		answerCurrent(t, s)
	}

	assert.Equal(t, TotalQuestions, s.CurrentOrdinal())
	display := s.Display()
	assert.True(t, display.IsComplete)
	assert.Equal(t, 100, display.PercentComplete)
	assert.False(t, display.CanGoBack)

	assert.False(t, s.Next())
	assert.False(t, s.Previous())
	assert.False(t, s.Answer(15, models.TextAnswer("iets anders")))

	report, ok := s.Report()
	require.True(t, ok)
	assert.Equal(t, "session-1", report.SessionID)
	assert.Len(t, report.Answers, TotalQuestions)
	assert.Equal(t, 5, report.SkippedCount)
	require.NotNil(t, report.Score)
	assert.Equal(t, 98, *report.Score)
	assert.Equal(t, models.LevelAgentReady, report.Level)
	assert.Equal(t, fixedNow, report.CompletedAt)
	assert.Equal(t, "Minder handwerk", report.Answers[14].Value.Text)
}

func TestSession_ReportWithoutSnapshotHasNoScore(t *testing.T) {
	s := newTestSession()
	for !s.IsComplete() {
		answerCurrent(t, s)
	}

	report, ok := s.Report()
	require.True(t, ok)
	assert.Nil(t, report.Score)
	assert.Empty(t, report.Level)
	assert.Len(t, report.Answers, TotalQuestions)
}

func TestSession_StateRoundTrip(t *testing.T) {
	s := newTestSession()
	s.LoadPrefill([]byte(`{"hasApis":"some","dataAccess":"minutes","processDocumentation":"tribal"}`))
	answerCurrent(t, s)
	answerCurrent(t, s)
	s.MarkReportPublished()

	restored, err := Restore(s.State())
	require.NoError(t, err)

	assert.Equal(t, s.ID(), restored.ID())
	assert.Equal(t, s.SkippedCount(), restored.SkippedCount())
	assert.Equal(t, s.CurrentOrdinal(), restored.CurrentOrdinal())
	assert.Equal(t, s.Answers(), restored.Answers())
	assert.Equal(t, s.Snapshot(), restored.Snapshot())
	assert.True(t, restored.ReportPublished())
	assert.Equal(t, s.Display(), restored.Display())
}

func TestRestore_RejectsCorruptState(t *testing.T) {
	valid := func() models.SessionState {
		return models.SessionState{
			ID:             "session-1",
			SkippedCount:   2,
			CurrentOrdinal: 3,
			Answers: []models.AnswerRecord{
				{Ordinal: 1, Value: models.SelectAnswer("some"), Origin: models.OriginPrefill},
				{Ordinal: 2, Value: models.SelectAnswer("minutes"), Origin: models.OriginPrefill},
			},
		}
	}

	tests := []struct {
		name   string
		mutate func(*models.SessionState)
	}{
		{"negative skipped count", func(s *models.SessionState) { s.SkippedCount = -1 }},
		{"skipped count beyond canonical prefix", func(s *models.SessionState) { s.SkippedCount = 6 }},
		{"current ordinal inside prefix", func(s *models.SessionState) { s.CurrentOrdinal = 2 }},
		{"current ordinal past end", func(s *models.SessionState) { s.CurrentOrdinal = 16 }},
		{"answer ordinal out of range", func(s *models.SessionState) { s.Answers[0].Ordinal = 0 }},
		{"user answer inside prefix", func(s *models.SessionState) { s.Answers[0].Origin = models.OriginUser }},
		{"prefill answer outside prefix", func(s *models.SessionState) {
			s.Answers = append(s.Answers, models.AnswerRecord{Ordinal: 3, Value: models.SelectAnswer("tribal"), Origin: models.OriginPrefill})
		}},
		{"unknown origin", func(s *models.SessionState) { s.Answers[1].Origin = "import" }},
	}

	_, err := Restore(valid())
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := valid()
			tt.mutate(&state)

			_, err := Restore(state)
			assert.ErrorIs(t, err, ErrCorruptState)
		})
	}
}
