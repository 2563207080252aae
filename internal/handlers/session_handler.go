package handlers

import (
	"context"
	"net/http"

	"github.com/SAP-F-2025/readiness-assessment/internal/services"
	"github.com/SAP-F-2025/readiness-assessment/internal/utils"
	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	BaseHandler
	assessmentService services.AssessmentService
}

func NewSessionHandler(assessmentService services.AssessmentService, logger utils.Logger) *SessionHandler {
	return &SessionHandler{
		BaseHandler:       NewBaseHandler(logger),
		assessmentService: assessmentService,
	}
}

// StartSession starts a detailed assessment, pre-filled from a quick-quiz hand-off when given
// @Summary Start assessment session
// @Tags sessions
// @Accept json
// @Produce json
// @Param session body services.StartSessionRequest false "Prefill source"
// @Success 201 {object} services.SessionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /sessions [post]
func (h *SessionHandler) StartSession(c *gin.Context) {
	var req services.StartSessionRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err, err.Error())
			return
		}
	}

	h.LogRequest(c, "Starting assessment session", "handoff", req.HandoffKey != "")

	resp, err := h.assessmentService.StartSession(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// GetSession returns the display state of a session
// @Summary Get assessment session
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} services.SessionResponse
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{id} [get]
func (h *SessionHandler) GetSession(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	resp, err := h.assessmentService.GetSession(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Answer records the answer to the current question
// @Summary Answer current question
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param answer body services.AnswerRequest true "Answer"
// @Success 200 {object} services.SessionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /sessions/{id}/answer [post]
func (h *SessionHandler) Answer(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	var req services.AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err, err.Error())
		return
	}

	h.LogRequest(c, "Answering question", "session_id", id, "ordinal", req.Ordinal)

	resp, err := h.assessmentService.Answer(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Next advances to the following question
// @Summary Next question
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} services.SessionResponse
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{id}/next [post]
func (h *SessionHandler) Next(c *gin.Context) {
	h.navigate(c, h.assessmentService.Next)
}

// Previous steps back one question, never into the pre-filled questions
// @Summary Previous question
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} services.SessionResponse
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{id}/previous [post]
func (h *SessionHandler) Previous(c *gin.Context) {
	h.navigate(c, h.assessmentService.Previous)
}

// Restart discards a session
// @Summary Restart assessment
// @Tags sessions
// @Param id path string true "Session ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{id} [delete]
func (h *SessionHandler) Restart(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	h.LogRequest(c, "Restarting assessment session", "session_id", id)

	if err := h.assessmentService.Restart(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *SessionHandler) navigate(c *gin.Context, move func(ctx context.Context, sessionID string) (*services.SessionResponse, error)) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	resp, err := move(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
