package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/teamtempo/engage-backend/internal/clients/redis"
	"github.com/teamtempo/engage-backend/internal/clients/sendgrid"
	"github.com/teamtempo/engage-backend/internal/db"
	"github.com/teamtempo/engage-backend/internal/handlers"
	"github.com/teamtempo/engage-backend/internal/logger"
	"github.com/teamtempo/engage-backend/internal/middleware"
	"github.com/teamtempo/engage-backend/internal/observability"
	"github.com/teamtempo/engage-backend/internal/repos"
	"github.com/teamtempo/engage-backend/internal/server"
	"github.com/teamtempo/engage-backend/internal/services"
	"github.com/teamtempo/engage-backend/internal/sse"
	"github.com/teamtempo/engage-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)

	// Tracing
	ctx := context.Background()
	shutdownOTel := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: "engage-backend",
		Environment: utils.GetEnv("ENVIRONMENT", "development", log),
		Version:     utils.GetEnv("SERVICE_VERSION", "dev", log),
	})
	if shutdownOTel != nil {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdownOTel(shutdownCtx); err != nil {
				log.Warn("OTel shutdown failed", "error", err)
			}
		}()
	}

	// Storage
	dbService, err := db.NewService(log)
	if err != nil {
		log.Fatal("Database init failed", "error", err)
	}
	if err := db.AutoMigrateAll(dbService.DB()); err != nil {
		log.Fatal("Auto migration failed", "error", err)
	}
	gormDB := dbService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(gormDB, log)
	userTokenRepo := repos.NewUserTokenRepo(gormDB, log)
	companyRepo := repos.NewCompanyRepo(gormDB, log)
	memberRepo := repos.NewMemberRepo(gormDB, log)
	collectionRepo := repos.NewOptionCollectionRepo(gormDB, log)
	optionRepo := repos.NewAnswerOptionRepo(gormDB, log)
	themeRepo := repos.NewQuestionThemeRepo(gormDB, log)
	setRepo := repos.NewQuestionSetRepo(gormDB, log)
	questionRepo := repos.NewQuestionRepo(gormDB, log)
	sessionRepo := repos.NewSessionRepo(gormDB, log)
	answeredRepo := repos.NewAnsweredRepo(gormDB, log)
	userMetaTagRepo := repos.NewUserMetaTagRepo(gormDB, log)
	reflectionRepo := repos.NewReflectionRepo(gormDB, log)
	outboundMailRepo := repos.NewOutboundMailRepo(gormDB, log)
	stimulationRepo := repos.NewStimulationRepo(gormDB, log)
	stimRecordRepo := repos.NewStimulationRecordRepo(gormDB, log)

	// SSE
	log.Info("Setting up SSE hub now...")
	sseHub := sse.NewHub(log)

	// The chart bus fans chart invalidations across instances through redis.
	// Without REDIS_ADDR the in-process hub alone serves a single instance.
	var chartPublisher sse.Publisher = sseHub
	chartBus, err := redis.NewChartBus(log)
	if err != nil {
		log.Warn("Redis chart bus unavailable, falling back to in-process hub", "error", err)
	} else {
		chartPublisher = chartBus
		if err := chartBus.StartForwarder(ctx, func(m sse.Message) {
			_ = sseHub.Publish(ctx, m)
		}); err != nil {
			log.Warn("Redis chart forwarder failed to start", "error", err)
		}
		defer chartBus.Close()
	}

	// Mail
	mailer, err := sendgrid.NewFromEnv(log)
	if err != nil {
		log.Warn("SendGrid unavailable, reflection mail disabled", "error", err)
		mailer = nil
	}

	// Services
	log.Info("Setting up Services from main...")
	authService := services.NewAuthService(gormDB, log, userRepo, userTokenRepo, memberRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second, time.Duration(refreshTokenTTL)*time.Second)
	authzService := services.NewAuthzService(log)
	catalogService := services.NewCatalogService(gormDB, log, collectionRepo, optionRepo)
	sessionService := services.NewSessionService(gormDB, log, sessionRepo, setRepo, themeRepo, questionRepo)
	answerService := services.NewAnswerService(gormDB, log, sessionRepo, memberRepo, questionRepo, optionRepo, userMetaTagRepo, answeredRepo, stimulationRepo, stimRecordRepo, chartPublisher)
	analyticsService := services.NewAnalyticsService(gormDB, log, sessionRepo, setRepo, themeRepo, companyRepo, answeredRepo)
	reflectionService := services.NewReflectionService(gormDB, log, sessionRepo, memberRepo, questionRepo, answeredRepo, reflectionRepo, userRepo, outboundMailRepo, mailer)

	// Handlers
	log.Info("Setting up handlers from main...")
	authHandler := handlers.NewAuthHandler(authService)
	answerHandler := handlers.NewAnswerHandler(answerService, authzService)
	catalogHandler := handlers.NewCatalogHandler(catalogService, authzService)
	sessionHandler := handlers.NewSessionHandler(sessionService, authzService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService, authzService)
	reflectionHandler := handlers.NewReflectionHandler(reflectionService, authzService)
	sseHandler := handlers.NewSSEHandler(sseHub)

	// Middleware
	log.Info("Setting up middleware from main...")
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	log.Info("Setting up router from main...")
	allowedOrigins := strings.Split(utils.GetEnv("ALLOWED_ORIGINS", "http://localhost:3000", log), ",")
	router := server.NewRouter(server.RouterConfig{
		ServiceName:       "engage-backend",
		AllowedOrigins:    allowedOrigins,
		AuthMiddleware:    authMiddleware,
		AuthHandler:       authHandler,
		AnswerHandler:     answerHandler,
		CatalogHandler:    catalogHandler,
		SessionHandler:    sessionHandler,
		AnalyticsHandler:  analyticsHandler,
		ReflectionHandler: reflectionHandler,
		SSEHandler:        sseHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	log.Info("Server listening", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Server failed", "error", err)
	}
}
