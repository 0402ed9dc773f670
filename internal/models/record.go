package models

import "time"

// Record represents a single exercise entry owned by a user. Username is a
// snapshot of the owner's name at creation time and is never updated.
type Record struct {
	ID          string    `json:"_id"`
	UserID      string    `json:"userId"`
	Username    string    `json:"username"`
	Description string    `json:"description"`
	Duration    float64   `json:"duration"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"createdAt"`
}
