package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/fittrack/exercise-tracker-be/internal/models"
	"github.com/fittrack/exercise-tracker-be/internal/services"
)

// UserHandler handles HTTP requests for user registration and listing.
type UserHandler struct {
	service  services.UserServiceProvider
	eventSvc services.EventServiceProvider
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.UserServiceProvider, eventSvc services.EventServiceProvider) *UserHandler {
	return &UserHandler{service: service, eventSvc: eventSvc}
}

// CreateUserPayload defines the structure for registration requests.
type CreateUserPayload struct {
	Username string `json:"username"`
}

// Create handles new user registration. The body may be JSON or an
// urlencoded form (the demo page posts forms).
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload CreateUserPayload
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		payload.Username = r.FormValue("username")
	}

	user, err := h.service.CreateUser(payload.Username)
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			http.Error(w, verr.Error(), http.StatusBadRequest)
			return
		}
		log.Error().Err(err).Msg("Failed to register user")
		http.Error(w, "Failed to register user", http.StatusInternalServerError)
		return
	}

	if err := h.eventSvc.CreateEvent("user.created", "info", fmt.Sprintf("User '%s' registered.", user.Username), &user.ID); err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to record user.created event")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(models.NewUserResponse(user))
}

// List handles retrieving all registered users. An empty listing is a valid
// result, never an error.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list users")
		http.Error(w, "Failed to list users", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(users)
}
