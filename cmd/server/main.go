package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dsatracker/internal/api"
	"dsatracker/internal/app/service"
	"dsatracker/internal/common/security"
	"dsatracker/internal/domain/repository"
	"dsatracker/internal/platform/config"
	"dsatracker/internal/platform/database"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// 1. Configuration
	config.Load()
	log.Info().Msg("Configuration loaded")

	// 2. JWT
	security.InitJWT()
	log.Info().Msg("JWT initialized")

	// 3. Database
	database.Connect()
	defer database.Close()

	ctx := context.Background()
	if err := database.InitSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("Schema initialization failed")
	}
	if err := database.SeedUsers(ctx, config.AppConfig.DefaultUsers, config.AppConfig.DefaultUserPassword); err != nil {
		log.Fatal().Err(err).Msg("User seeding failed")
	}

	// 4. Repositories
	userRepo := repository.NewPgUserRepository(database.DB)
	topicRepo := repository.NewPgTopicRepository(database.DB)
	problemRepo := repository.NewPgProblemRepository(database.DB)
	attemptRepo := repository.NewPgAttemptRepository(database.DB)
	statsRepo := repository.NewPgStatsRepository(database.DB)
	communityRepo := repository.NewPgCommunityRepository(database.DB)

	// 5. Services
	authService := service.NewAuthService(userRepo)
	userService := service.NewUserService(userRepo, config.AppConfig.DefaultUserPassword)
	problemService := service.NewProblemService(database.DB, problemRepo, topicRepo)
	attemptService := service.NewAttemptService(attemptRepo, problemRepo)
	statsService := service.NewStatsService(statsRepo)
	communityService := service.NewCommunityService(communityRepo)

	// 6. Router & HTTP server
	router := api.NewRouter(authService, userService, problemService, attemptService, statsService, communityService)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 7. Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Info().Str("port", config.AppConfig.APIPort).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	<-stop

	log.Info().Msg("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server shutdown failed")
	}

	log.Info().Msg("Server stopped gracefully")
}
