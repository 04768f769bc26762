package http

import (
	"net/http"

	"dermassist/internal/delivery/http/handler"
	"dermassist/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router               *mux.Router
	authHandler          *handler.AuthHandler
	dermatologistHandler *handler.DermatologistHandler
	predictionHandler    *handler.PredictionHandler
	reviewRequestHandler *handler.ReviewRequestHandler
	notificationHandler  *handler.NotificationHandler
	treatmentHandler     *handler.TreatmentHandler
	authMiddleware       *middleware.AuthMiddleware
	corsMiddleware       *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	dermatologistHandler *handler.DermatologistHandler,
	predictionHandler *handler.PredictionHandler,
	reviewRequestHandler *handler.ReviewRequestHandler,
	notificationHandler *handler.NotificationHandler,
	treatmentHandler *handler.TreatmentHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:               mux.NewRouter(),
		authHandler:          authHandler,
		dermatologistHandler: dermatologistHandler,
		predictionHandler:    predictionHandler,
		reviewRequestHandler: reviewRequestHandler,
		notificationHandler:  notificationHandler,
		treatmentHandler:     treatmentHandler,
		authMiddleware:       authMiddleware,
		corsMiddleware:       corsMiddleware,
	}
}

func (r *Router) Setup() http.Handler {
	api := r.router.PathPrefix("/api").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/signup", r.authHandler.Signup).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/check-username", r.authHandler.CheckUsername).Methods(http.MethodGet)
	auth.HandleFunc("/forgot-password", r.authHandler.ForgotPassword).Methods(http.MethodPost)
	auth.HandleFunc("/verify-otp", r.authHandler.VerifyOTP).Methods(http.MethodPost)
	auth.HandleFunc("/reset-password", r.authHandler.ResetPassword).Methods(http.MethodPost)

	// Stored images are public so report rendering needs no token
	api.HandleFunc("/images/{id}", r.predictionHandler.GetImage).Methods(http.MethodGet)

	// Protected routes
	protected := api.NewRoute().Subrouter()
	protected.Use(r.authMiddleware.Authenticate)
	protected.HandleFunc("/auth/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	protected.HandleFunc("/predictions", r.predictionHandler.GetMyPredictions).Methods(http.MethodGet)
	protected.HandleFunc("/predictions/{id}", r.predictionHandler.GetPrediction).Methods(http.MethodGet)
	protected.HandleFunc("/predictions/{id}", r.predictionHandler.DeletePrediction).Methods(http.MethodDelete)

	protected.HandleFunc("/dermatologists", r.dermatologistHandler.Search).Methods(http.MethodGet)

	protected.HandleFunc("/review-requests", r.reviewRequestHandler.GetReviewRequests).Methods(http.MethodGet)
	protected.HandleFunc("/review-requests/{id}", r.reviewRequestHandler.GetReviewRequest).Methods(http.MethodGet)

	protected.HandleFunc("/notifications", r.notificationHandler.GetNotifications).Methods(http.MethodGet)
	protected.HandleFunc("/notifications/unread-count", r.notificationHandler.GetUnreadCount).Methods(http.MethodGet)
	protected.HandleFunc("/notifications/read-all", r.notificationHandler.MarkAllRead).Methods(http.MethodPatch)
	protected.HandleFunc("/notifications/{id}/read", r.notificationHandler.MarkRead).Methods(http.MethodPatch)

	protected.HandleFunc("/treatments", r.treatmentHandler.GetTreatments).Methods(http.MethodGet)
	protected.HandleFunc("/treatments/{name}", r.treatmentHandler.GetTreatment).Methods(http.MethodGet)

	// Patient routes
	patient := api.NewRoute().Subrouter()
	patient.Use(r.authMiddleware.Authenticate)
	patient.Use(middleware.RequirePatient)
	patient.HandleFunc("/predict", r.predictionHandler.Predict).Methods(http.MethodPost)
	patient.HandleFunc("/review-requests", r.reviewRequestHandler.CreateReviewRequest).Methods(http.MethodPost)

	// Dermatologist routes
	dermatologist := api.NewRoute().Subrouter()
	dermatologist.Use(r.authMiddleware.Authenticate)
	dermatologist.Use(middleware.RequireDermatologist)
	dermatologist.HandleFunc("/review-requests/{id}/review", r.reviewRequestHandler.SubmitReview).Methods(http.MethodPost)
	dermatologist.HandleFunc("/review-requests/{id}/reject", r.reviewRequestHandler.RejectReviewRequest).Methods(http.MethodPost)

	// CORS wraps the router so preflight requests, which match no route, are
	// answered too.
	return r.corsMiddleware.Handle(r.router)
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
