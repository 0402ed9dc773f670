package services

import (
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fittrack/exercise-tracker-be/internal/models"
	"github.com/fittrack/exercise-tracker-be/internal/validation"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	CreateUser(username string) (models.User, error)
	ListUsers() ([]models.User, error)
	GetUserByID(id string) (models.User, error)
	CountUsers() (int64, error)
}

// UserService provides business logic for user management.
type UserService struct {
	db *sql.DB
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

// CreateUser persists a new user. Usernames are required but deliberately
// not deduplicated; two users may share a name.
func (s *UserService) CreateUser(username string) (models.User, error) {
	if strings.TrimSpace(username) == "" {
		return models.User{}, &ValidationError{Field: "username", Reason: "must not be empty"}
	}

	user := models.User{
		ID:        uuid.New().String(),
		Username:  username,
		CreatedAt: time.Now().UTC(),
	}

	stmt, err := s.db.Prepare("INSERT INTO users(id, username, created_at) VALUES(?, ?, ?)")
	if err != nil {
		return models.User{}, err
	}
	defer stmt.Close()

	_, err = stmt.Exec(user.ID, user.Username, user.CreatedAt.UnixMilli())
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// ListUsers retrieves all users in insertion order.
func (s *UserService) ListUsers() ([]models.User, error) {
	rows, err := s.db.Query("SELECT id, username, created_at FROM users ORDER BY rowid")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var user models.User
		var createdAt int64
		if err := rows.Scan(&user.ID, &user.Username, &createdAt); err != nil {
			return nil, err
		}
		user.CreatedAt = time.UnixMilli(createdAt).UTC()
		users = append(users, user)
	}
	return users, rows.Err()
}

// GetUserByID retrieves a single user by their ID. Malformed identifiers are
// rejected before the store is touched.
func (s *UserService) GetUserByID(id string) (models.User, error) {
	if !validation.ValidID(id) {
		return models.User{}, ErrMalformedID
	}

	var user models.User
	var createdAt int64
	row := s.db.QueryRow("SELECT id, username, created_at FROM users WHERE id = ?", id)
	err := row.Scan(&user.ID, &user.Username, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	user.CreatedAt = time.UnixMilli(createdAt).UTC()
	return user, nil
}

// CountUsers returns the total number of registered users.
func (s *UserService) CountUsers() (int64, error) {
	var count int64
	err := s.db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count)
	return count, err
}
