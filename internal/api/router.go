package api

import (
	"net/http"
	"time"

	"dsatracker/internal/api/handler"
	"dsatracker/internal/api/middleware"
	"dsatracker/internal/app/service"
	"dsatracker/internal/common/security"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	authService *service.AuthService,
	userService *service.UserService,
	problemService *service.ProblemService,
	attemptService *service.AttemptService,
	statsService *service.StatsService,
	communityService *service.CommunityService,
) http.Handler {
	r := chi.NewRouter()

	// Base middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Verifies a bearer token if present and puts claims in context.
	// Enforcement happens in middleware.Authenticator on protected routes.
	r.Use(jwtauth.Verifier(security.TokenAuth))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Route("/api", func(api chi.Router) {
		// Auth routes (public)
		authHandler := handler.NewAuthHandler(authService)
		api.Group(func(public chi.Router) {
			authHandler.RegisterRoutes(public)
		})

		// Everything else requires a valid token.
		api.Group(func(protected chi.Router) {
			protected.Use(middleware.Authenticator)

			userHandler := handler.NewUserHandler(userService)
			protected.Route("/users", userHandler.RegisterRoutes)

			problemHandler := handler.NewProblemHandler(problemService)
			protected.Route("/problems", problemHandler.RegisterRoutes)
			protected.Route("/topics", problemHandler.RegisterTopicRoutes)

			attemptHandler := handler.NewAttemptHandler(attemptService)
			protected.Route("/attempts", attemptHandler.RegisterRoutes)

			statsHandler := handler.NewStatsHandler(statsService)
			statsHandler.RegisterRoutes(protected)

			communityHandler := handler.NewCommunityHandler(communityService)
			protected.Route("/community", communityHandler.RegisterRoutes)
		})
	})

	return r
}
