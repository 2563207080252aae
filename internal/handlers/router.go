package handlers

import (
	"net/http"
	"time"

	"github.com/SAP-F-2025/readiness-assessment/internal/services"
	"github.com/SAP-F-2025/readiness-assessment/internal/utils"
	"github.com/SAP-F-2025/readiness-assessment/pkg/monitoring"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type HandlerManager struct {
	quickQuizHandler *QuickQuizHandler
	sessionHandler   *SessionHandler
	catalogHandler   *CatalogHandler
	metrics          *monitoring.Metrics
	logger           utils.Logger
}

func NewHandlerManager(
	assessmentService services.AssessmentService,
	exportService services.ExportService,
	metrics *monitoring.Metrics,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		quickQuizHandler: NewQuickQuizHandler(assessmentService, logger),
		sessionHandler:   NewSessionHandler(assessmentService, logger),
		catalogHandler:   NewCatalogHandler(assessmentService, exportService, logger),
		metrics:          metrics,
		logger:           logger,
	}
}

// NewRouter builds the gin engine with the shared middleware stack and every route.
func (hm *HandlerManager) NewRouter(allowedOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())
	router.Use(utils.LoggerMiddleware(hm.logger))
	router.Use(utils.ContextLogger(hm.logger))
	router.Use(cors.New(corsConfig(allowedOrigins)))
	if hm.metrics != nil {
		router.Use(hm.metrics.MetricsMiddleware())
	}

	hm.SetupRoutes(router)
	return router
}

func corsConfig(allowedOrigins []string) cors.Config {
	config := cors.Config{
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", utils.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition", utils.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(allowedOrigins) == 0 || (len(allowedOrigins) == 1 && allowedOrigins[0] == "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = allowedOrigins
	}
	return config
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", HealthCheck)
	if hm.metrics != nil {
		router.GET("/metrics", hm.metrics.PrometheusHandler())
	}

	v1 := router.Group("/api/v1")
	{
		v1.POST("/quick-quiz", hm.quickQuizHandler.SubmitQuickQuiz)

		sessions := v1.Group("/sessions")
		{
			sessions.POST("", hm.sessionHandler.StartSession)
			sessions.GET("/:id", hm.sessionHandler.GetSession)
			sessions.POST("/:id/answer", hm.sessionHandler.Answer)
			sessions.POST("/:id/next", hm.sessionHandler.Next)
			sessions.POST("/:id/previous", hm.sessionHandler.Previous)
			sessions.DELETE("/:id", hm.sessionHandler.Restart)
		}

		catalog := v1.Group("/catalog")
		{
			catalog.GET("", hm.catalogHandler.GetCatalog)
			catalog.GET("/export", hm.catalogHandler.ExportCatalog)
		}
	}
}

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "readiness-assessment",
	})
}
