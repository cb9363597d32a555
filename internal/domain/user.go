package domain

import (
	"errors"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Common user validation errors
var (
	ErrEmptyUserID         = errors.New("user ID cannot be empty")
	ErrEmptyUsername       = errors.New("username cannot be empty")
	ErrInvalidUsername     = errors.New("username can only contain letters, numbers, and underscores")
	ErrEmptyEmail          = errors.New("email cannot be empty")
	ErrInvalidEmail        = errors.New("invalid email format")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// User represents a registered account. The plaintext password never lives on
// the entity; only the bcrypt hash is stored, and it is never serialized.
type User struct {
	ID             uuid.UUID  `json:"id"`
	Username       string     `json:"username"`
	Email          string     `json:"email"`
	FirstName      string     `json:"first_name,omitempty"`
	LastName       string     `json:"last_name,omitempty"`
	HashedPassword string     `json:"-"`
	DateJoined     time.Time  `json:"date_joined"`
	LastLogin      *time.Time `json:"last_login,omitempty"`
}

// NewUser creates a new User with the given identity fields. It generates a
// new UUID for the user ID and sets the join timestamp. The caller is
// responsible for hashing the password and setting HashedPassword before the
// user is stored.
func NewUser(username, email, firstName, lastName string) (*User, error) {
	user := &User{
		ID:         uuid.New(),
		Username:   username,
		Email:      email,
		FirstName:  firstName,
		LastName:   lastName,
		DateJoined: time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks structural validity of the user entity. Uniqueness of
// username and email is a storage concern and is checked by the store.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if u.Username == "" {
		return ErrEmptyUsername
	}
	if !usernamePattern.MatchString(u.Username) {
		return ErrInvalidUsername
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}
	if !ValidEmailFormat(u.Email) {
		return ErrInvalidEmail
	}

	return nil
}

// emailValidator backs ValidEmailFormat. A single instance is safe for
// concurrent use.
var emailValidator = validator.New()

// ValidEmailFormat checks the shape of an email address using the
// validator's email rule, the same rule the request layer applies.
func ValidEmailFormat(email string) bool {
	return emailValidator.Var(email, "required,email") == nil
}
