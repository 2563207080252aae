package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SAP-F-2025/readiness-assessment/internal/events"
	"github.com/SAP-F-2025/readiness-assessment/internal/repositories"
	"github.com/SAP-F-2025/readiness-assessment/internal/services"
	"github.com/SAP-F-2025/readiness-assessment/internal/utils"
	"github.com/SAP-F-2025/readiness-assessment/internal/validator"
	"github.com/SAP-F-2025/readiness-assessment/pkg/monitoring"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *events.MockEventPublisher) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	slogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	publisher := events.NewMockEventPublisher(slogger)
	reg := prometheus.NewRegistry()
	metrics := monitoring.NewMetrics(reg, reg)

	assessmentService := services.NewAssessmentService(
		repositories.NewMemoryBlobStore(),
		publisher,
		metrics,
		slogger,
		validator.New(),
		services.AssessmentServiceConfig{SessionTTL: time.Hour},
	)
	exportService := services.NewExportService(nil, slogger)

	hm := NewHandlerManager(assessmentService, exportService, metrics, utils.NewSlogLogger(slogger))
	return hm.NewRouter([]string{"https://readiness.example.nl"}), publisher
}

func doJSON(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestHealthCheck(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(utils.RequestIDHeader))
	assert.Contains(t, w.Body.String(), "readiness-assessment")
}

func TestRequestIDIsEchoed(t *testing.T) {
	router, _ := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(utils.RequestIDHeader, "req-7")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "req-7", w.Header().Get(utils.RequestIDHeader))
}

func TestQuickQuizToSessionFlow(t *testing.T) {
	router, publisher := setupTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/quick-quiz", `{
		"hasApis": "most",
		"dataAccess": "instant",
		"processDocumentation": "documented",
		"automationExperience": "advanced",
		"mainBlocker": "Budget/resources beperkt"
	}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	quiz := decode[services.QuickQuizResponse](t, w)
	assert.Equal(t, 98, quiz.Score)

	w = doJSON(t, router, http.MethodPost, "/api/v1/sessions", `{"handoffKey":"`+quiz.HandoffKey+`"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	session := decode[services.SessionResponse](t, w)
	assert.Equal(t, 5, session.SkippedCount)
	assert.Equal(t, "Vraag 6 van 15", session.Label)

	base := "/api/v1/sessions/" + session.SessionID

	w = doJSON(t, router, http.MethodPost, base+"/answer", `{"ordinal":6,"selections":["erp"]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodPost, base+"/next", "")
	require.Equal(t, http.StatusOK, w.Code)
	session = decode[services.SessionResponse](t, w)
	assert.Equal(t, "Vraag 7 van 15", session.Label)
	assert.Equal(t, 20, session.PercentComplete)

	w = doJSON(t, router, http.MethodPost, base+"/previous", "")
	require.Equal(t, http.StatusOK, w.Code)
	session = decode[services.SessionResponse](t, w)
	assert.Equal(t, 6, session.DisplayQuestionNumber)

	w = doJSON(t, router, http.MethodGet, base, "")
	assert.Equal(t, http.StatusOK, w.Code)

	assert.Len(t, publisher.GetPublishedEvents(), 2)
}

func TestSessionErrorMapping(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/sessions", `{"snapshot":{"hasApis":"some"}}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	session := decode[services.SessionResponse](t, w)
	base := "/api/v1/sessions/" + session.SessionID

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"unknown session", http.MethodGet, "/api/v1/sessions/does-not-exist", "", http.StatusNotFound},
		{"malformed body", http.MethodPost, base + "/answer", `{"ordinal":`, http.StatusBadRequest},
		{"ordinal out of range", http.MethodPost, base + "/answer", `{"ordinal":0}`, http.StatusBadRequest},
		{"prefilled question", http.MethodPost, base + "/answer", `{"ordinal":1,"selections":["none"]}`, http.StatusUnprocessableEntity},
		{"not the current question", http.MethodPost, base + "/answer", `{"ordinal":5,"selections":["Anders"]}`, http.StatusUnprocessableEntity},
		{"unknown option", http.MethodPost, base + "/answer", `{"ordinal":2,"selections":["weekly"]}`, http.StatusBadRequest},
		{"invalid hand-off key", http.MethodPost, "/api/v1/sessions", `{"handoffKey":"abc"}`, http.StatusBadRequest},
		{"invalid quick quiz", http.MethodPost, "/api/v1/quick-quiz", `{"hasApis":"most"}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, router, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			assert.NotEmpty(t, decode[ErrorResponse](t, w).Message)
		})
	}
}

func TestStartSessionWithoutBody(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/sessions", "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	session := decode[services.SessionResponse](t, w)
	assert.Equal(t, "Vraag 1 van 15", session.Label)
	assert.Equal(t, 0, session.PercentComplete)
}

func TestRestartSession(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/sessions", "")
	session := decode[services.SessionResponse](t, w)
	path := "/api/v1/sessions/" + session.SessionID

	assert.Equal(t, http.StatusNoContent, doJSON(t, router, http.MethodDelete, path, "").Code)
	assert.Equal(t, http.StatusNotFound, doJSON(t, router, http.MethodGet, path, "").Code)
	assert.Equal(t, http.StatusNotFound, doJSON(t, router, http.MethodDelete, path, "").Code)
}

func TestCatalogEndpoints(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/catalog", "")
	require.Equal(t, http.StatusOK, w.Code)
	var questions []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &questions))
	assert.Len(t, questions, 15)

	w = doJSON(t, router, http.MethodGet, "/api/v1/catalog/export", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "readiness-catalog.xlsx")
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("PK")))
}

func TestMetricsEndpoint(t *testing.T) {
	router, _ := setupTestRouter(t)

	doJSON(t, router, http.MethodPost, "/api/v1/sessions", "")

	w := doJSON(t, router, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "assessment_sessions_started_total")
}

func TestCORSPreflight(t *testing.T) {
	router, _ := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/sessions", nil)
	req.Header.Set("Origin", "https://readiness.example.nl")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://readiness.example.nl", w.Header().Get("Access-Control-Allow-Origin"))
}
