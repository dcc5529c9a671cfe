package server

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/teamtempo/engage-backend/internal/handlers"
	"github.com/teamtempo/engage-backend/internal/middleware"
)

type RouterConfig struct {
	ServiceName       string
	AllowedOrigins    []string
	AuthMiddleware    *middleware.AuthMiddleware
	AuthHandler       *handlers.AuthHandler
	AnswerHandler     *handlers.AnswerHandler
	CatalogHandler    *handlers.CatalogHandler
	SessionHandler    *handlers.SessionHandler
	AnalyticsHandler  *handlers.AnalyticsHandler
	ReflectionHandler *handlers.ReflectionHandler
	SSEHandler        *handlers.SSEHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	serviceName := strings.TrimSpace(cfg.ServiceName)
	if serviceName == "" {
		serviceName = "engage"
	}
	router.Use(otelgin.Middleware(serviceName))

	// Public
	router.GET("/healthcheck", handlers.HealthCheck)
	router.POST("/register", cfg.AuthHandler.Register)
	router.POST("/login", cfg.AuthHandler.Login)
	router.POST("/refresh", cfg.AuthHandler.Refresh)

	// Protected
	protected := router.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())

	protected.POST("/logout", cfg.AuthHandler.Logout)

	protected.POST("/answers", cfg.AnswerHandler.RecordAnswer)
	protected.POST("/stimulations/answers", cfg.AnswerHandler.RecordStimulationAnswer)

	protected.POST("/collections", cfg.CatalogHandler.CreateCollection)
	protected.GET("/collections/:collectionID/options", cfg.CatalogHandler.ListValidOptions)
	protected.POST("/options/:optionID/retire", cfg.CatalogHandler.RetireOption)

	protected.POST("/sessions", cfg.SessionHandler.CreateSession)
	protected.GET("/sessions/:sessionID", cfg.SessionHandler.GetSession)
	protected.GET("/sessions/:sessionID/questions", cfg.SessionHandler.ListQuestions)
	protected.GET("/sessions/:sessionID/chart", cfg.AnalyticsHandler.SessionChart)
	protected.GET("/company/chart", cfg.AnalyticsHandler.CompanyChart)

	protected.POST("/reflections", cfg.ReflectionHandler.CreateReflection)

	protected.GET("/sse/stream", cfg.SSEHandler.Stream)

	return router
}
