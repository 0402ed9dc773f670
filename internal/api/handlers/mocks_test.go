package handlers

import (
	"github.com/fittrack/exercise-tracker-be/internal/models"
	"github.com/fittrack/exercise-tracker-be/internal/services"
)

type mockUserService struct {
	created   models.User
	createErr error
	users     []models.User
	byID      map[string]models.User

	createCalls int
	listCalls   int
	getCalls    int
}

func (m *mockUserService) CreateUser(username string) (models.User, error) {
	m.createCalls++
	if m.createErr != nil {
		return models.User{}, m.createErr
	}
	if m.created.Username == "" {
		m.created.Username = username
	}
	return m.created, nil
}

func (m *mockUserService) ListUsers() ([]models.User, error) {
	m.listCalls++
	return m.users, nil
}

func (m *mockUserService) GetUserByID(id string) (models.User, error) {
	m.getCalls++
	if user, ok := m.byID[id]; ok {
		return user, nil
	}
	return models.User{}, services.ErrNotFound
}

func (m *mockUserService) CountUsers() (int64, error) {
	return int64(len(m.byID)), nil
}

type mockRecordService struct {
	created   models.Record
	createErr error
	records   []models.Record
	queryErr  error

	createCalls int
	queryCalls  int
	lastInput   services.RecordInput
	lastFilter  services.LogFilter
}

func (m *mockRecordService) CreateRecord(user models.User, input services.RecordInput) (models.Record, error) {
	m.createCalls++
	m.lastInput = input
	if m.createErr != nil {
		return models.Record{}, m.createErr
	}
	return m.created, nil
}

func (m *mockRecordService) QueryRecords(userID string, filter services.LogFilter) ([]models.Record, error) {
	m.queryCalls++
	m.lastFilter = filter
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	return m.records, nil
}

func (m *mockRecordService) CountRecords() (int64, error) {
	return int64(len(m.records)), nil
}

type mockEventService struct {
	events    []models.Event
	lastLimit int
}

func (m *mockEventService) CreateEvent(eventType, level, message string, userID *string) error {
	m.events = append(m.events, models.Event{Type: eventType, Level: level, Message: message, UserID: userID})
	return nil
}

func (m *mockEventService) GetRecentEvents(limit int) ([]models.Event, error) {
	m.lastLimit = limit
	return m.events, nil
}
