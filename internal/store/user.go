package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store. The user must carry a hashed
	// password. Returns ErrUsernameExists or ErrEmailExists if a unique
	// constraint is violated.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByUsername retrieves a user by their username.
	// Returns ErrUserNotFound if the user does not exist.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// UsernameExists reports whether any user has the given username.
	// Used as the registration pre-check; the unique index remains the
	// guarantee under concurrent registration.
	UsernameExists(ctx context.Context, username string) (bool, error)

	// EmailExists reports whether any user has the given email.
	EmailExists(ctx context.Context, email string) (bool, error)

	// UpdateProfile modifies the mutable profile fields (email, first name,
	// last name) of an existing user. ID, username and join date are never
	// updated. Returns ErrUserNotFound if the user does not exist, and
	// ErrEmailExists if the new email is already taken by another user.
	UpdateProfile(ctx context.Context, user *domain.User) error

	// TouchLastLogin records a successful login timestamp.
	TouchLastLogin(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new UserStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller
	// (typically a service).
	WithTx(tx *sql.Tx) UserStore
}
