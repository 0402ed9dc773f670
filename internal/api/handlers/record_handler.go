package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/fittrack/exercise-tracker-be/internal/models"
	"github.com/fittrack/exercise-tracker-be/internal/services"
	"github.com/fittrack/exercise-tracker-be/internal/validation"
)

// RecordHandler handles HTTP requests for exercise records and logs.
type RecordHandler struct {
	users    services.UserServiceProvider
	records  services.RecordServiceProvider
	eventSvc services.EventServiceProvider
}

// NewRecordHandler creates a new RecordHandler.
func NewRecordHandler(users services.UserServiceProvider, records services.RecordServiceProvider, eventSvc services.EventServiceProvider) *RecordHandler {
	return &RecordHandler{users: users, records: records, eventSvc: eventSvc}
}

// CreateExercisePayload defines the structure for record creation requests.
// Duration is `any` because clients send both numbers and numeric strings.
type CreateExercisePayload struct {
	Description string `json:"description"`
	Duration    any    `json:"duration"`
	Date        string `json:"date"`
}

// CreateExercise attaches a new record to a user. A missing user yields an
// empty JSON object rather than a 404; that is the documented wire contract.
func (h *RecordHandler) CreateExercise(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validation.ValidID(id) {
		log.Warn().Str("user_id", id).Msg("Rejected malformed user id")
		http.Error(w, "Invalid user id", http.StatusBadRequest)
		return
	}

	var payload CreateExercisePayload
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
		payload.Description = r.FormValue("description")
		payload.Date = r.FormValue("date")
		if v := r.FormValue("duration"); v != "" {
			payload.Duration = v
		}
	}

	user, err := h.users.GetUserByID(id)
	if err != nil {
		h.respondUserLookupError(w, id, err)
		return
	}

	record, err := h.records.CreateRecord(user, services.RecordInput{
		Description: payload.Description,
		Duration:    payload.Duration,
		Date:        payload.Date,
	})
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			http.Error(w, verr.Error(), http.StatusBadRequest)
			return
		}
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to create record")
		http.Error(w, "Failed to create record", http.StatusInternalServerError)
		return
	}

	msg := fmt.Sprintf("User '%s' logged %v minutes: %s", record.Username, record.Duration, record.Description)
	if err := h.eventSvc.CreateEvent("record.created", "info", msg, &user.ID); err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to record record.created event")
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(models.NewExerciseResponse(record))
}

// GetLogs retrieves a user's record history, optionally narrowed by an
// inclusive date range and a limit. Unparseable from/to/limit values are
// treated as absent.
func (h *RecordHandler) GetLogs(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validation.ValidID(id) {
		log.Warn().Str("user_id", id).Msg("Rejected malformed user id")
		http.Error(w, "Invalid user id", http.StatusBadRequest)
		return
	}

	user, err := h.users.GetUserByID(id)
	if err != nil {
		h.respondUserLookupError(w, id, err)
		return
	}

	filter := parseLogFilter(r.URL.Query().Get("from"), r.URL.Query().Get("to"), r.URL.Query().Get("limit"))

	records, err := h.records.QueryRecords(user.ID, filter)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to query records")
		http.Error(w, "Failed to retrieve logs", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(models.NewLogResponse(user, records))
}

// respondUserLookupError maps a failed owner lookup to the wire contract:
// unknown users get an empty success payload, everything else an error.
func (h *RecordHandler) respondUserLookupError(w http.ResponseWriter, id string, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("{}"))
	case errors.Is(err, services.ErrMalformedID):
		http.Error(w, "Invalid user id", http.StatusBadRequest)
	default:
		log.Error().Err(err).Str("user_id", id).Msg("Failed to look up user")
		http.Error(w, "Failed to look up user", http.StatusInternalServerError)
	}
}

func parseLogFilter(from, to, limit string) services.LogFilter {
	var filter services.LogFilter
	if from != "" {
		if t, ok := validation.ParseDate(from); ok && !t.IsZero() {
			filter.From = &t
		}
	}
	if to != "" {
		if t, ok := validation.ParseDate(to); ok && !t.IsZero() {
			filter.To = &t
		}
	}
	if limit != "" {
		if n, err := strconv.Atoi(limit); err == nil && n >= 0 {
			filter.Limit = &n
		}
	}
	return filter
}
