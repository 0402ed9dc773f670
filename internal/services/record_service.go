package services

import (
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fittrack/exercise-tracker-be/internal/models"
	"github.com/fittrack/exercise-tracker-be/internal/validation"
)

// RecordInput carries the raw, unvalidated fields of a record creation
// request. Duration is `any` because the wire accepts both a JSON number
// and a numeric string.
type RecordInput struct {
	Description string
	Duration    any
	Date        string
}

// LogFilter narrows a record query. Nil fields mean "no constraint"; both
// date bounds are inclusive.
type LogFilter struct {
	From  *time.Time
	To    *time.Time
	Limit *int
}

// RecordServiceProvider defines the interface for record services.
type RecordServiceProvider interface {
	CreateRecord(user models.User, input RecordInput) (models.Record, error)
	QueryRecords(userID string, filter LogFilter) ([]models.Record, error)
	CountRecords() (int64, error)
}

// RecordService provides business logic for exercise records.
type RecordService struct {
	db *sql.DB
}

// NewRecordService creates a new RecordService.
func NewRecordService(db *sql.DB) *RecordService {
	return &RecordService{db: db}
}

// CreateRecord validates and persists a record owned by the given user. The
// owner's existence is the caller's responsibility; the store only snapshots
// its id and username. Validation happens before the insert, so invalid
// input never produces a partial write.
func (s *RecordService) CreateRecord(user models.User, input RecordInput) (models.Record, error) {
	// Resolve the date first: absent means the instant of this call.
	date, ok := validation.ParseDate(input.Date)
	if !ok {
		return models.Record{}, &ValidationError{Field: "date", Reason: "not a parseable date"}
	}
	if date.IsZero() {
		date = time.Now().UTC()
	}

	duration, ok := validation.ParseDuration(input.Duration)
	if !ok {
		return models.Record{}, &ValidationError{Field: "duration", Reason: "not a valid number"}
	}

	if strings.TrimSpace(input.Description) == "" {
		return models.Record{}, &ValidationError{Field: "description", Reason: "must not be empty"}
	}

	record := models.Record{
		ID:          uuid.New().String(),
		UserID:      user.ID,
		Username:    user.Username,
		Description: input.Description,
		Duration:    duration,
		Date:        date,
		CreatedAt:   time.Now().UTC(),
	}

	stmt, err := s.db.Prepare("INSERT INTO records(id, user_id, username, description, duration, date, created_at) VALUES(?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return models.Record{}, err
	}
	defer stmt.Close()

	_, err = stmt.Exec(record.ID, record.UserID, record.Username, record.Description,
		record.Duration, record.Date.UnixMilli(), record.CreatedAt.UnixMilli())
	if err != nil {
		return models.Record{}, err
	}
	return record, nil
}

// QueryRecords retrieves a user's records sorted ascending by date. Both
// filter bounds are inclusive; a From after To simply matches nothing. A
// non-negative limit truncates the sorted result (zero included), a nil
// limit means no truncation.
func (s *RecordService) QueryRecords(userID string, filter LogFilter) ([]models.Record, error) {
	query := "SELECT id, user_id, username, description, duration, date, created_at FROM records WHERE user_id = ?"
	args := []any{userID}

	if filter.From != nil {
		query += " AND date >= ?"
		args = append(args, filter.From.UnixMilli())
	}
	if filter.To != nil {
		query += " AND date <= ?"
		args = append(args, filter.To.UnixMilli())
	}
	query += " ORDER BY date ASC"
	if filter.Limit != nil && *filter.Limit >= 0 {
		query += " LIMIT ?"
		args = append(args, *filter.Limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []models.Record{}
	for rows.Next() {
		var record models.Record
		var date, createdAt int64
		if err := rows.Scan(&record.ID, &record.UserID, &record.Username,
			&record.Description, &record.Duration, &date, &createdAt); err != nil {
			return nil, err
		}
		record.Date = time.UnixMilli(date).UTC()
		record.CreatedAt = time.UnixMilli(createdAt).UTC()
		records = append(records, record)
	}
	return records, rows.Err()
}

// CountRecords returns the total number of stored records.
func (s *RecordService) CountRecords() (int64, error) {
	var count int64
	err := s.db.QueryRow("SELECT COUNT(*) FROM records").Scan(&count)
	return count, err
}
