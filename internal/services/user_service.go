package services

import (
	"database/sql"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/eduportfolio/eduportfolio-be/internal/apperror"
	"github.com/eduportfolio/eduportfolio-be/internal/models"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	GetUserByID(id string) (models.User, error)
	CreateUser(username, password string) (models.User, error)
	AuthenticateUser(username, password string) (models.User, error)
	SeedAdmin(username, password string) error
}

// UserService provides business logic for the single admin credential store.
type UserService struct {
	db *sql.DB
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

// GetUserByID retrieves a single user by their ID.
func (s *UserService) GetUserByID(id string) (models.User, error) {
	var user models.User
	row := s.db.QueryRow("SELECT id, username, created_at FROM users WHERE id = ?", id)
	err := row.Scan(&user.ID, &user.Username, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, apperror.NotFound("user")
		}
		return models.User{}, err
	}
	return user, nil
}

// getUserByUsername retrieves a single user including the password hash.
func (s *UserService) getUserByUsername(username string) (models.User, error) {
	var user models.User
	row := s.db.QueryRow("SELECT id, username, password_hash, created_at FROM users WHERE username = ?", username)
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, apperror.NotFound("user")
		}
		return models.User{}, err
	}
	return user, nil
}

// CreateUser validates credentials and creates a new user with a hashed password.
func (s *UserService) CreateUser(username, password string) (models.User, error) {
	username = strings.TrimSpace(username)
	if len(username) < 3 {
		return models.User{}, apperror.Validation("username", "username must be at least 3 characters")
	}
	if len(password) < 6 {
		return models.User{}, apperror.Validation("password", "password must be at least 6 characters")
	}

	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM users WHERE username = ?", username).Scan(&count); err != nil {
		return models.User{}, err
	}
	if count > 0 {
		return models.User{}, apperror.DuplicateKey("username already taken")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:       uuid.New().String(),
		Username: username,
	}
	_, err = s.db.Exec("INSERT INTO users(id, username, password_hash) VALUES(?, ?, ?)",
		user.ID, user.Username, string(hashedPassword))
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// AuthenticateUser verifies credentials. An unknown username and a wrong
// password both fail with the same error so callers cannot probe accounts.
func (s *UserService) AuthenticateUser(username, password string) (models.User, error) {
	user, err := s.getUserByUsername(username)
	if err != nil {
		return models.User{}, apperror.Unauthorized("invalid username or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, apperror.Unauthorized("invalid username or password")
	}

	user.PasswordHash = ""
	return user, nil
}

// SeedAdmin creates the default admin account when the users table is
// empty. Runs once at startup.
func (s *UserService) SeedAdmin(username, password string) error {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if _, err := s.CreateUser(username, password); err != nil {
		return err
	}
	log.Info().Str("username", username).Msg("Seeded default admin user")
	return nil
}
