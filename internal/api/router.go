package api

import (
	"net/http"
	"time"

	"faculty_api/internal/api/handler"
	"faculty_api/internal/api/middleware"
	"faculty_api/internal/app/service"
	"faculty_api/internal/common"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

type RouterOptions struct {
	Logger         zerolog.Logger
	RequestTimeout time.Duration
	AllowedOrigins []string
	// Readiness probes keyed by dependency name.
	HealthChecks map[string]handler.Pinger
}

func NewRouter(
	opts RouterOptions,
	authService *service.AuthService,
	teacherService *service.TeacherService,
	tokens middleware.TokenVerifier,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	// "/users" and "/users/" reach the same handler.
	r.Use(chiMiddleware.StripSlashes)
	r.Use(middleware.RequestLogger(opts.Logger))
	r.Use(chiMiddleware.Recoverer)
	if opts.RequestTimeout > 0 {
		r.Use(chiMiddleware.Timeout(opts.RequestTimeout))
	}
	if len(opts.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
			ExposedHeaders: []string{"X-Request-Id"},
			MaxAge:         300,
		}))
	}

	// Set before mounting so subrouters inherit them.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		common.RespondWithError(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		common.RespondWithError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	healthHandler := handler.NewHealthHandler(opts.HealthChecks)
	r.Route("/health", healthHandler.RegisterRoutes)

	// Registration and login (public)
	authHandler := handler.NewAuthHandler(authService)
	r.Group(authHandler.RegisterRoutes)

	// Profile routes (authenticated)
	profileHandler := handler.NewProfileHandler(authService, tokens)
	r.Route("/profile", profileHandler.RegisterRoutes)

	teacherHandler := handler.NewTeacherHandler(teacherService)
	r.Route("/teachers", teacherHandler.RegisterRoutes)

	return r
}
