package auth

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"options-trade-log-go/internal/models"
)

const minPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// CredentialStore persists user records and checks passwords against the
// stored bcrypt hashes.
type CredentialStore struct {
	db   *gorm.DB
	cost int
}

// NewCredentialStore creates a CredentialStore. Costs below bcrypt.DefaultCost
// are bumped up to it.
func NewCredentialStore(db *gorm.DB, cost int) *CredentialStore {
	if cost < bcrypt.DefaultCost {
		cost = bcrypt.DefaultCost
	}
	return &CredentialStore{db: db, cost: cost}
}

// Register validates the email and password, hashes the password and persists
// a new user. Returns the new user id.
func (s *CredentialStore) Register(email, password string) (uint, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return 0, &ValidationError{Field: "email", Reason: "required"}
	}
	if !emailPattern.MatchString(email) {
		return 0, &ValidationError{Field: "email", Reason: "malformed"}
	}
	if len(password) < minPasswordLength {
		return 0, &ValidationError{Field: "password", Reason: fmt.Sprintf("must be at least %d characters", minPasswordLength)}
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("check email uniqueness: %w", err)
	}
	if count > 0 {
		return 0, ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{Email: email, PasswordHash: string(hash)}
	if err := s.db.Create(&user).Error; err != nil {
		return 0, fmt.Errorf("create user: %w", err)
	}
	return user.ID, nil
}

// Authenticate looks up the user by email and compares the password against
// the stored hash. Lookup and comparison failures are indistinguishable.
func (s *CredentialStore) Authenticate(email, password string) (*models.User, error) {
	var user models.User
	err := s.db.Where("email = ?", strings.TrimSpace(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	} else if err != nil {
		return nil, fmt.Errorf("look up user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}
