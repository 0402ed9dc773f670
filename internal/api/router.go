package api

import (
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/fittrack/exercise-tracker-be/internal/api/handlers"
	"github.com/fittrack/exercise-tracker-be/internal/config"
	"github.com/fittrack/exercise-tracker-be/internal/services"
	"github.com/fittrack/exercise-tracker-be/internal/websocket"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(cfg *config.Config, hub *websocket.Hub, userService services.UserServiceProvider, recordService services.RecordServiceProvider, eventService services.EventServiceProvider) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService, eventService)
	recordHandler := handlers.NewRecordHandler(userService, recordService, eventService)
	eventHandler := handlers.NewEventHandler(eventService)
	wsHandler := handlers.NewWebSocketHandler(hub)

	r.Route("/api", func(r chi.Router) {
		// WebSocket feed of activity events
		r.Get("/ws", wsHandler.Serve)

		// Recent activity events
		r.Get("/events", eventHandler.GetRecent)

		r.Route("/users", func(r chi.Router) {
			r.Get("/", userHandler.List)
			r.Post("/", userHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Post("/exercises", recordHandler.CreateExercise)
				r.Get("/logs", recordHandler.GetLogs)
			})
		})
	})

	// Demo front-end
	fileServer := http.FileServer(http.Dir(cfg.StaticDir))
	r.Handle("/public/*", http.StripPrefix("/public", fileServer))
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.ServeFile(w, req, filepath.Join(cfg.StaticDir, "index.html"))
	})

	return r
}
