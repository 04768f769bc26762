package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dermassist/config"
	deliveryHttp "dermassist/internal/delivery/http"
	"dermassist/internal/delivery/http/handler"
	"dermassist/internal/delivery/http/middleware"
	"dermassist/internal/repository"
	"dermassist/internal/service"
	"dermassist/pkg/jwt"
	"dermassist/pkg/validator"

	"github.com/sirupsen/logrus"
)

// ServerOptions replaces the pluggable parts of the reference backend.
type ServerOptions struct {
	Classifier service.Classifier
	OTPSender  service.OTPSender
}

// Server is the reference backend application.
type Server struct {
	Config *config.Config
	Log    *logrus.Logger
	Server *http.Server
}

// NewServer creates the reference backend with all dependencies initialized
func NewServer() (*Server, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	log := setupLogger(cfg.App.LogLevel, true)
	log.Info("Configuration loaded successfully")

	h, err := NewServerHandler(cfg, log, ServerOptions{})
	if err != nil {
		return nil, err
	}

	return &Server{
		Config: cfg,
		Log:    log,
		Server: &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
			Handler: h,
		},
	}, nil
}

// NewServerHandler wires repositories, services and handlers into the API
// router. Everything is held in memory.
func NewServerHandler(cfg *config.Config, log *logrus.Logger, opts ServerOptions) (http.Handler, error) {
	if opts.Classifier == nil {
		opts.Classifier = service.NewHashClassifier()
	}
	if opts.OTPSender == nil {
		opts.OTPSender = service.NewLogOTPSender(log)
	}

	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.Server.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	predictionRepo := repository.NewPredictionRepository()
	reviewRepo := repository.NewReviewRequestRepository()
	notificationRepo := repository.NewNotificationRepository()
	treatmentRepo := repository.NewTreatmentRepository()
	resetRepo := repository.NewPasswordResetRepository()

	// Initialize services
	authService := service.NewAuthService(log, userRepo, resetRepo, jwtService, opts.OTPSender)
	userService := service.NewUserService(log, userRepo)
	predictionService := service.NewPredictionService(log, predictionRepo, reviewRepo, opts.Classifier)
	notificationService := service.NewNotificationService(log, notificationRepo)
	reviewService := service.NewReviewService(log, reviewRepo, predictionRepo, userRepo, notificationService)
	treatmentService := service.NewTreatmentService(log, treatmentRepo)

	if err := treatmentService.Seed(context.Background(), service.DefaultTreatments()); err != nil {
		return nil, fmt.Errorf("failed to seed treatments: %w", err)
	}

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, userService, customValidator)
	dermatologistHandler := handler.NewDermatologistHandler(userService)
	predictionHandler := handler.NewPredictionHandler(predictionService)
	reviewRequestHandler := handler.NewReviewRequestHandler(reviewService, customValidator)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	treatmentHandler := handler.NewTreatmentHandler(treatmentService)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.Server.AllowedOrigins)

	router := deliveryHttp.NewRouter(
		authHandler,
		dermatologistHandler,
		predictionHandler,
		reviewRequestHandler,
		notificationHandler,
		treatmentHandler,
		authMiddleware,
		corsMiddleware,
	)
	return router.Setup(), nil
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run() {
	go func() {
		s.Log.Infof("Server starting on port %s", s.Config.Server.Port)
		s.Log.Infof("Environment: %s", s.Config.App.Env)
		if err := s.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	s.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (s *Server) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	s.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.Server.Shutdown(ctx); err != nil {
		s.Log.Errorf("Server forced to shutdown: %v", err)
	}

	s.Log.Info("Server shutdown complete")
}
