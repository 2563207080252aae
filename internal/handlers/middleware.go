package handlers

import (
	"github.com/SAP-F-2025/readiness-assessment/internal/services"
	"github.com/SAP-F-2025/readiness-assessment/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDMiddleware assigns an X-Request-ID when the caller sent none and
// hands it to the service layer through the request context.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(utils.RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
			c.Request.Header.Set(utils.RequestIDHeader, requestID)
		}
		c.Writer.Header().Set(utils.RequestIDHeader, requestID)
		c.Request = c.Request.WithContext(services.WithRequestID(c.Request.Context(), requestID))
		c.Next()
	}
}
