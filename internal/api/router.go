package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/neuronet-health/neuronet/docs"
	"github.com/neuronet-health/neuronet/internal/api/handler"
	"github.com/neuronet-health/neuronet/internal/api/middleware"
	"github.com/neuronet-health/neuronet/internal/core/ports"
	"github.com/neuronet-health/neuronet/internal/core/service"
	"github.com/neuronet-health/neuronet/internal/infrastructure/config"
	mongodb "github.com/neuronet-health/neuronet/internal/infrastructure/db/mongo"
	redisdb "github.com/neuronet-health/neuronet/internal/infrastructure/db/redis"
	"github.com/neuronet-health/neuronet/pkg/roles"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The audit sink is injected by main so request handling never owns the
// dispatcher lifecycle.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, audit ports.AuditSink, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("neuronet"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	profileRepo := mongodb.NewProfileRepository(db)
	assessmentRepo := mongodb.NewAssessmentRepository(db)
	throttle := redisdb.NewLoginThrottle(rdb, cfg.Throttle.MaxFailures, cfg.Throttle.Window)

	authService := service.NewAuthService(userRepo, profileRepo, throttle, audit, cfg.JWTSecret, cfg.TokenTTL, log)
	profileService := service.NewProfileService(userRepo, profileRepo, log)
	assessmentService := service.NewAssessmentService(assessmentRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	profileHandler := handler.NewProfileHandler(profileService)
	assessmentHandler := handler.NewAssessmentHandler(assessmentService)
	userHandler := handler.NewUserHandler(userRepo)

	authRequired := middleware.Auth(cfg.JWTSecret, audit)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/me", authHandler.Me, authRequired)

	// --- Profile routes ---
	users := e.Group("/users", authRequired)
	users.GET("/profile", profileHandler.Get)
	users.PUT("/profile", profileHandler.Update)

	// --- Assessment routes ---
	assessments := e.Group("/assessments", authRequired)
	assessments.GET("/types", assessmentHandler.Types)
	assessments.GET("/:type/questions", assessmentHandler.Questions)
	assessments.POST("/submit", assessmentHandler.Submit)
	assessments.GET("/history", assessmentHandler.History)

	// --- Therapist routes ---
	therapist := e.Group("/therapist", authRequired, middleware.RBAC(roles.Therapist))
	therapist.GET("/patients", userHandler.ListPatients)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
