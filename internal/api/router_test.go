package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fittrack/exercise-tracker-be/internal/config"
	"github.com/fittrack/exercise-tracker-be/internal/database"
	"github.com/fittrack/exercise-tracker-be/internal/models"
	"github.com/fittrack/exercise-tracker-be/internal/services"
	"github.com/fittrack/exercise-tracker-be/internal/websocket"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	db, err := database.New(":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { db.Close() })

	hub := websocket.NewHub()
	go hub.Run()

	cfg := &config.Config{
		AllowedOrigins: []string{"*"},
		StaticDir:      t.TempDir(),
	}

	eventService := services.NewEventService(db, hub)
	router := NewRouter(cfg, hub, services.NewUserService(db), services.NewRecordService(db), eventService)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func postForm(t *testing.T, target string, form url.Values) (int, []byte) {
	t.Helper()
	resp, err := http.Post(target, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func get(t *testing.T, target string) (int, []byte) {
	t.Helper()
	resp, err := http.Get(target)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func TestCreateAndRetrieveRoundTrip(t *testing.T) {
	srv := newTestServer(t)

	// Register a user.
	status, body := postForm(t, srv.URL+"/api/users", url.Values{"username": {"alice"}})
	require.Equal(t, http.StatusCreated, status, string(body))

	var user models.UserResponse
	require.NoError(t, json.Unmarshal(body, &user))
	assert.Equal(t, "alice", user.Username)
	require.NotEmpty(t, user.ID)

	// Attach a record with an explicit date.
	status, body = postForm(t, srv.URL+"/api/users/"+user.ID+"/exercises", url.Values{
		"description": {"run"},
		"duration":    {"15"},
		"date":        {"2023-01-05"},
	})
	require.Equal(t, http.StatusOK, status, string(body))

	var exercise models.ExerciseResponse
	require.NoError(t, json.Unmarshal(body, &exercise))
	assert.Equal(t, user.ID, exercise.ID)
	assert.Equal(t, "alice", exercise.Username)
	assert.Equal(t, "Thu Jan 05 2023", exercise.Date)
	assert.Equal(t, float64(15), exercise.Duration)
	assert.Equal(t, "run", exercise.Description)

	// The user shows up in the listing.
	status, body = get(t, srv.URL+"/api/users")
	require.Equal(t, http.StatusOK, status)
	var users []models.User
	require.NoError(t, json.Unmarshal(body, &users))
	require.Len(t, users, 1)
	assert.Equal(t, "alice", users[0].Username)

	// Retrieve the log with no filter.
	status, body = get(t, srv.URL+"/api/users/"+user.ID+"/logs")
	require.Equal(t, http.StatusOK, status)
	var logResp models.LogResponse
	require.NoError(t, json.Unmarshal(body, &logResp))
	assert.Equal(t, user.ID, logResp.ID)
	assert.Equal(t, 1, logResp.Count)
	require.Len(t, logResp.Log, 1)
	assert.Equal(t, models.LogEntry{Description: "run", Duration: 15, Date: "Thu Jan 05 2023"}, logResp.Log[0])

	// Both domain events landed in the audit trail.
	status, body = get(t, srv.URL+"/api/events")
	require.Equal(t, http.StatusOK, status)
	var events []models.Event
	require.NoError(t, json.Unmarshal(body, &events))
	require.Len(t, events, 2)
	assert.Equal(t, "record.created", events[0].Type)
	assert.Equal(t, "user.created", events[1].Type)
}

func TestLogFilteringAndLimit(t *testing.T) {
	srv := newTestServer(t)

	_, body := postForm(t, srv.URL+"/api/users", url.Values{"username": {"bob"}})
	var user models.UserResponse
	require.NoError(t, json.Unmarshal(body, &user))

	for _, date := range []string{"2023-03-01", "2023-03-10", "2023-03-20", "2023-03-30"} {
		status, body := postForm(t, srv.URL+"/api/users/"+user.ID+"/exercises", url.Values{
			"description": {"walk " + date},
			"duration":    {"10"},
			"date":        {date},
		})
		require.Equal(t, http.StatusOK, status, string(body))
	}

	status, body := get(t, srv.URL+"/api/users/"+user.ID+"/logs?from=2023-03-10&to=2023-03-20")
	require.Equal(t, http.StatusOK, status)
	var logResp models.LogResponse
	require.NoError(t, json.Unmarshal(body, &logResp))
	require.Equal(t, 2, logResp.Count)
	assert.Equal(t, "Fri Mar 10 2023", logResp.Log[0].Date)
	assert.Equal(t, "Mon Mar 20 2023", logResp.Log[1].Date)

	status, body = get(t, srv.URL+"/api/users/"+user.ID+"/logs?limit=2")
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(body, &logResp))
	require.Equal(t, 2, logResp.Count)
	assert.Equal(t, "Wed Mar 01 2023", logResp.Log[0].Date)
	assert.Equal(t, "Fri Mar 10 2023", logResp.Log[1].Date)
}

func TestUnknownUserYieldsEmptyObject(t *testing.T) {
	srv := newTestServer(t)
	const unknownID = "00000000-0000-4000-8000-000000000000"

	status, body := get(t, srv.URL+"/api/users/"+unknownID+"/logs")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{}`, string(body))

	status, body = postForm(t, srv.URL+"/api/users/"+unknownID+"/exercises", url.Values{
		"description": {"run"}, "duration": {"15"},
	})
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{}`, string(body))
}

func TestMalformedIDRejected(t *testing.T) {
	srv := newTestServer(t)

	status, _ := get(t, srv.URL+"/api/users/not-an-id/logs")
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = postForm(t, srv.URL+"/api/users/not-an-id/exercises", url.Values{
		"description": {"run"}, "duration": {"15"},
	})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestInvalidDurationRejectedAndNotPersisted(t *testing.T) {
	srv := newTestServer(t)

	_, body := postForm(t, srv.URL+"/api/users", url.Values{"username": {"carol"}})
	var user models.UserResponse
	require.NoError(t, json.Unmarshal(body, &user))

	status, body := postForm(t, srv.URL+"/api/users/"+user.ID+"/exercises", url.Values{
		"description": {"run"}, "duration": {"abc"},
	})
	require.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, string(body), "duration")

	status, body = get(t, srv.URL+"/api/users/"+user.ID+"/logs")
	require.Equal(t, http.StatusOK, status)
	var logResp models.LogResponse
	require.NoError(t, json.Unmarshal(body, &logResp))
	assert.Zero(t, logResp.Count)
}
