package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/SAP-F-2025/readiness-assessment/internal/services"
	"github.com/gin-gonic/gin"
)

func ParseStringIDParam(c *gin.Context, param string) string {
	idStr := c.Param(param)
	idStr = strings.TrimSpace(idStr)
	if idStr == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + param,
			Details: "ID cannot be empty",
		})
		return ""
	}
	return idStr
}

// handleServiceError maps service errors onto HTTP responses
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrors services.ValidationErrors
	if errors.As(err, &validationErrors) {
		h.RespondWithError(c, http.StatusBadRequest, "Validation failed", err, validationErrors)
		return
	}

	var businessRuleError *services.BusinessRuleError
	if errors.As(err, &businessRuleError) {
		h.RespondWithError(c, http.StatusUnprocessableEntity, businessRuleError.Message, err, map[string]interface{}{
			"rule":    businessRuleError.Rule,
			"context": businessRuleError.Context,
		})
		return
	}

	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		h.RespondWithError(c, http.StatusNotFound, "Assessment session not found", err)
	case errors.Is(err, services.ErrSessionComplete):
		h.RespondWithError(c, http.StatusConflict, "Assessment session is already complete", err)
	case errors.Is(err, services.ErrInvalidRequest), errors.Is(err, services.ErrValidationFailed):
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request", err, err.Error())
	default:
		h.RespondWithError(c, http.StatusInternalServerError, "Internal server error", err)
	}
}
