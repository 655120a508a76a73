package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog/log"
	"github.com/shubham2799/BlogApp/internal/config"
	"github.com/shubham2799/BlogApp/internal/database"
	"github.com/shubham2799/BlogApp/internal/logger"
	"github.com/shubham2799/BlogApp/internal/monitoring"
	"github.com/shubham2799/BlogApp/internal/services"
	"github.com/shubham2799/BlogApp/internal/web"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.LogLevel)

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Set up services
	sanitizer := bluemonday.UGCPolicy()
	userService := services.NewUserService(db)
	blogService := services.NewBlogService(db, sanitizer)
	sessionService := services.NewSessionService(db, cfg.SessionIdleTimeout)
	eventService := services.NewEventService(db)

	// Set up and run the background session sweeper
	sweeper := monitoring.NewSweeper(sessionService)
	go sweeper.Run()

	// Set up router
	router, err := web.NewRouter(blogService, userService, sessionService, eventService, cfg.SessionSecret)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build router")
	}

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.BindAddr, cfg.Port),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	sweeper.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
