package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/readiness-assessment/internal/services"
	"github.com/SAP-F-2025/readiness-assessment/internal/utils"
	"github.com/gin-gonic/gin"
)

type QuickQuizHandler struct {
	BaseHandler
	assessmentService services.AssessmentService
}

func NewQuickQuizHandler(assessmentService services.AssessmentService, logger utils.Logger) *QuickQuizHandler {
	return &QuickQuizHandler{
		BaseHandler:       NewBaseHandler(logger),
		assessmentService: assessmentService,
	}
}

// SubmitQuickQuiz scores the five quick-quiz answers and stores the hand-off snapshot
// @Summary Submit quick quiz
// @Tags quick-quiz
// @Accept json
// @Produce json
// @Param quiz body services.QuickQuizRequest true "Quick quiz answers"
// @Success 201 {object} services.QuickQuizResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /quick-quiz [post]
func (h *QuickQuizHandler) SubmitQuickQuiz(c *gin.Context) {
	var req services.QuickQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err, err.Error())
		return
	}

	h.LogRequest(c, "Submitting quick quiz")

	resp, err := h.assessmentService.SubmitQuickQuiz(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}
