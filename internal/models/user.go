package models

import "time"

// User represents a registered identity that owns zero or more records.
// Users are immutable after creation; usernames are not deduplicated.
type User struct {
	ID        string    `json:"_id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}
