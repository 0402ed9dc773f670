package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fittrack/exercise-tracker-be/internal/api"
	"github.com/fittrack/exercise-tracker-be/internal/config"
	"github.com/fittrack/exercise-tracker-be/internal/database"
	"github.com/fittrack/exercise-tracker-be/internal/logger"
	"github.com/fittrack/exercise-tracker-be/internal/monitoring"
	"github.com/fittrack/exercise-tracker-be/internal/services"
	"github.com/fittrack/exercise-tracker-be/internal/websocket"
)

func main() {
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to apply database migrations: %v", err)
	}

	// Set up WebSocket Hub for the live event feed
	hub := websocket.NewHub()
	go hub.Run()

	// Set up services
	eventService := services.NewEventService(db, hub)
	userService := services.NewUserService(db)
	recordService := services.NewRecordService(db)

	// Set up and run the background stats snapshot
	statUpdater := monitoring.NewStatUpdater(userService, recordService, eventService, cfg.StatsSchedule)
	if err := statUpdater.Start(); err != nil {
		log.Fatalf("Failed to start stats updater: %v", err)
	}

	// Set up router
	router := api.NewRouter(cfg, hub, userService, recordService, eventService)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on port %d\n", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	statUpdater.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
