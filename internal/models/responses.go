package models

// DateFormat is the rendering used for dates on the wire. It matches the
// JavaScript Date.toDateString() output ("Thu Jan 05 2023") and is
// locale-independent.
const DateFormat = "Mon Jan 02 2006"

// UserResponse is the shape returned on user registration.
type UserResponse struct {
	Username string `json:"username"`
	ID       string `json:"_id"`
}

// ExerciseResponse is the shape returned when a record is created. The _id
// field carries the owning user's id, matching the original wire contract.
type ExerciseResponse struct {
	ID          string  `json:"_id"`
	Username    string  `json:"username"`
	Date        string  `json:"date"`
	Duration    float64 `json:"duration"`
	Description string  `json:"description"`
}

// LogEntry is a single entry in a log retrieval response. It intentionally
// omits the record and user ids present on the stored record.
type LogEntry struct {
	Description string  `json:"description"`
	Duration    float64 `json:"duration"`
	Date        string  `json:"date"`
}

// LogResponse is the shape returned on log retrieval.
type LogResponse struct {
	ID       string     `json:"_id"`
	Username string     `json:"username"`
	Count    int        `json:"count"`
	Log      []LogEntry `json:"log"`
}

// NewUserResponse shapes a user for the registration response.
func NewUserResponse(u User) UserResponse {
	return UserResponse{Username: u.Username, ID: u.ID}
}

// NewExerciseResponse shapes a freshly created record for the response.
func NewExerciseResponse(r Record) ExerciseResponse {
	return ExerciseResponse{
		ID:          r.UserID,
		Username:    r.Username,
		Date:        r.Date.Format(DateFormat),
		Duration:    r.Duration,
		Description: r.Description,
	}
}

// NewLogResponse shapes a user's record history for the log response.
func NewLogResponse(u User, records []Record) LogResponse {
	entries := make([]LogEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, LogEntry{
			Description: r.Description,
			Duration:    r.Duration,
			Date:        r.Date.Format(DateFormat),
		})
	}
	return LogResponse{
		ID:       u.ID,
		Username: u.Username,
		Count:    len(entries),
		Log:      entries,
	}
}
