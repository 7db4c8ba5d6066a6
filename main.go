package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/eduportfolio/eduportfolio-be/internal/api"
	"github.com/eduportfolio/eduportfolio-be/internal/auth"
	"github.com/eduportfolio/eduportfolio-be/internal/config"
	"github.com/eduportfolio/eduportfolio-be/internal/database"
	"github.com/eduportfolio/eduportfolio-be/internal/logger"
	"github.com/eduportfolio/eduportfolio-be/internal/monitoring"
	"github.com/eduportfolio/eduportfolio-be/internal/services"
	"github.com/eduportfolio/eduportfolio-be/internal/websocket"
)

func main() {
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Set up WebSocket hub for the admin activity feed
	hub := websocket.NewHub()
	go hub.Run()

	// Set up services
	categoryService := services.NewCategoryService(db)
	moduleService := services.NewModuleService(db)
	projectService := services.NewProjectService(db)
	userService := services.NewUserService(db)
	profileService := services.NewProfileService(db)
	statsService := services.NewStatsService(db)
	eventService := services.NewEventService(db, hub)

	// Seed the admin account and the placeholder profile
	if err := userService.SeedAdmin(cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed admin user")
	}
	if _, err := profileService.GetProfile(true); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize profile")
	}

	// Set up and start the scheduled database backups
	backups := monitoring.NewBackupScheduler(db, cfg.BackupPath, cfg.BackupKeep)
	if err := backups.Start(cfg.BackupSchedule); err != nil {
		log.Fatal().Err(err).Msg("Failed to start backup scheduler")
	}

	// Set up router
	tokens := auth.NewTokenManager(cfg.JWTSecret, time.Duration(cfg.TokenTTLMinutes)*time.Minute)
	router := api.NewRouter(tokens, cfg.AcceptedOrigins,
		categoryService, moduleService, projectService, profileService,
		userService, statsService, eventService, hub)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	backups.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
