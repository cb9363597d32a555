package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/service/auth"
	"github.com/phrazzld/taskboard-api/internal/store"
	"github.com/phrazzld/taskboard-api/internal/validation"
)

// ProfileUpdate carries a full or partial profile update. Nil fields keep
// their current value.
type ProfileUpdate struct {
	Email     *string
	FirstName *string
	LastName  *string
}

// UserService provides registration, authentication and profile operations.
type UserService interface {
	// Register validates, sanitizes and persists a new user. A failed
	// validation returns validation.FieldErrors carrying every field error.
	// A uniqueness race lost at the storage layer surfaces as field errors
	// too, never as a server error.
	Register(ctx context.Context, payload validation.RegistrationPayload) (*domain.User, error)

	// Authenticate verifies a username/password pair and records the login
	// time. Returns auth.ErrInvalidCredentials for unknown users and wrong
	// passwords alike.
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)

	// GetProfile retrieves the user's own profile.
	GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error)

	// UpdateProfile applies a full or partial update to the mutable profile
	// fields. Username, ID, join date and last login never change.
	UpdateProfile(ctx context.Context, userID uuid.UUID, update ProfileUpdate) (*domain.User, error)
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore store.UserStore
	hasher    auth.PasswordHasher
	verifier  auth.PasswordVerifier
	policy    validation.PasswordPolicy
	db        *sql.DB
	logger    *slog.Logger

	// txRunner wraps store.RunInTransaction; tests substitute it to run
	// write paths against in-memory stores without a database.
	txRunner func(ctx context.Context, db *sql.DB, fn store.TxFn) error
}

// NewUserService creates a new UserService
func NewUserService(
	userStore store.UserStore,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	policy validation.PasswordPolicy,
	db *sql.DB,
	logger *slog.Logger,
) UserService {
	return &UserServiceImpl{
		userStore: userStore,
		hasher:    hasher,
		verifier:  verifier,
		policy:    policy,
		db:        db,
		logger:    logger.With("component", "user_service"),
		txRunner:  store.RunInTransaction,
	}
}

// uniquenessChecker adapts the user store to the validation pipeline's
// pre-check interface.
type uniquenessChecker struct {
	users store.UserStore
}

func (c uniquenessChecker) UsernameTaken(ctx context.Context, username string) (bool, error) {
	return c.users.UsernameExists(ctx, username)
}

func (c uniquenessChecker) EmailTaken(ctx context.Context, email string) (bool, error) {
	return c.users.EmailExists(ctx, email)
}

// Register implements UserService.Register
func (s *UserServiceImpl) Register(
	ctx context.Context,
	payload validation.RegistrationPayload,
) (*domain.User, error) {
	cleaned, err := validation.CleanRegistration(
		ctx, payload, uniquenessChecker{users: s.userStore}, s.policy)
	if err != nil {
		s.logger.Warn("registration validation failed",
			"username", payload.Username)
		return nil, err
	}

	user, err := domain.NewUser(cleaned.Username, cleaned.Email, cleaned.FirstName, cleaned.LastName)
	if err != nil {
		return nil, fmt.Errorf("failed to build user: %w", err)
	}

	hashed, err := s.hasher.Hash(cleaned.Password)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.HashedPassword = hashed

	err = s.txRunner(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.userStore.WithTx(tx).Create(ctx, user)
	})
	if err != nil {
		// The pre-check passed but the unique index caught a concurrent
		// registration; report it the same way the pre-check would have.
		if errs, raced := duplicateToFieldErrors(err); raced {
			s.logger.Warn("registration lost uniqueness race",
				"username", cleaned.Username)
			return nil, errs
		}
		s.logger.Error("failed to save user", "error", err)
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	s.logger.Info("user registered",
		"user_id", user.ID,
		"username", user.Username)
	return user, nil
}

// duplicateToFieldErrors converts storage-layer duplicate errors into the
// field errors clients see from the pre-check path.
func duplicateToFieldErrors(err error) (validation.FieldErrors, bool) {
	switch {
	case errors.Is(err, store.ErrUsernameExists):
		return validation.FieldErrors{"username": {"This username is already taken"}}, true
	case errors.Is(err, store.ErrEmailExists):
		return validation.FieldErrors{"email": {"This email is already registered"}}, true
	}
	return nil, false
}

// Authenticate implements UserService.Authenticate
func (s *UserServiceImpl) Authenticate(
	ctx context.Context,
	username, password string,
) (*domain.User, error) {
	user, err := s.userStore.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, auth.ErrInvalidCredentials
		}
		s.logger.Error("failed to look up user for login", "error", err)
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		s.logger.Warn("failed login attempt", "username", username)
		return nil, auth.ErrInvalidCredentials
	}

	if err := s.userStore.TouchLastLogin(ctx, user.ID); err != nil {
		// A login-time bookkeeping failure should not fail the login.
		s.logger.Warn("failed to record last login",
			"error", err,
			"user_id", user.ID)
	}

	return user, nil
}

// GetProfile implements UserService.GetProfile
func (s *UserServiceImpl) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			s.logger.Error("failed to retrieve profile",
				"error", err,
				"user_id", userID)
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile implements UserService.UpdateProfile
func (s *UserServiceImpl) UpdateProfile(
	ctx context.Context,
	userID uuid.UUID,
	update ProfileUpdate,
) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	merged := validation.ProfilePayload{
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
	if update.Email != nil {
		merged.Email = *update.Email
	}
	if update.FirstName != nil {
		merged.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		merged.LastName = *update.LastName
	}

	cleaned, err := validation.CleanProfile(merged)
	if err != nil {
		return nil, err
	}

	// Uniqueness pre-check, excluding the user's own current email.
	if cleaned.Email != user.Email {
		taken, err := s.userStore.EmailExists(ctx, cleaned.Email)
		if err != nil {
			// The unique index still catches a duplicate at save time.
			s.logger.Warn("email uniqueness pre-check failed",
				"error", err,
				"user_id", userID)
		} else if taken {
			return nil, validation.FieldErrors{"email": {"This email is already registered"}}
		}
	}

	user.Email = cleaned.Email
	user.FirstName = cleaned.FirstName
	user.LastName = cleaned.LastName

	err = s.txRunner(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.userStore.WithTx(tx).UpdateProfile(ctx, user)
	})
	if err != nil {
		if errs, raced := duplicateToFieldErrors(err); raced {
			return nil, errs
		}
		s.logger.Error("failed to update profile",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	s.logger.Info("profile updated", "user_id", userID)
	return user, nil
}
