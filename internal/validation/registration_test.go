package validation

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/taskboard-api/internal/platform/logger"
)

type fakeChecker struct {
	takenUsernames map[string]bool
	takenEmails    map[string]bool
	lookupErr      error
}

func (f *fakeChecker) UsernameTaken(ctx context.Context, username string) (bool, error) {
	return f.takenUsernames[username], f.lookupErr
}

func (f *fakeChecker) EmailTaken(ctx context.Context, email string) (bool, error) {
	return f.takenEmails[email], f.lookupErr
}

type fakePolicy struct {
	messages []string
}

func (f *fakePolicy) Validate(password string, userInputs ...string) []string {
	return f.messages
}

func validRegistration() RegistrationPayload {
	return RegistrationPayload{
		Username:        "alice_42",
		Email:           "alice@example.com",
		FirstName:       "Alice",
		LastName:        "Smith",
		Password:        "correct horse battery",
		PasswordConfirm: "correct horse battery",
	}
}

func TestCleanRegistrationValid(t *testing.T) {
	checker := &fakeChecker{}
	cleaned, err := CleanRegistration(context.Background(), validRegistration(), checker, &fakePolicy{})

	require.NoError(t, err)
	assert.Equal(t, "alice_42", cleaned.Username)
	assert.Equal(t, "alice@example.com", cleaned.Email)
	assert.Equal(t, "Alice", cleaned.FirstName)
}

func TestCleanRegistrationUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		message  string
	}{
		{"required", "", "Username is required"},
		{"stripped to empty", "<b></b>", "Username is required"},
		{"punctuation rejected", "ab!cd", "Username can only contain letters, numbers, and underscores"},
		{"spaces rejected", "alice smith", "Username can only contain letters, numbers, and underscores"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := validRegistration()
			payload.Username = tt.username

			_, err := CleanRegistration(context.Background(), payload, &fakeChecker{}, &fakePolicy{})

			fieldErrs, ok := AsFieldErrors(err)
			require.True(t, ok)
			assert.Equal(t, []string{tt.message}, fieldErrs["username"])
		})
	}
}

func TestCleanRegistrationUniqueness(t *testing.T) {
	checker := &fakeChecker{
		takenUsernames: map[string]bool{"alice_42": true},
		takenEmails:    map[string]bool{"alice@example.com": true},
	}

	_, err := CleanRegistration(context.Background(), validRegistration(), checker, &fakePolicy{})

	fieldErrs, ok := AsFieldErrors(err)
	require.True(t, ok)
	assert.Equal(t, []string{"This username is already taken"}, fieldErrs["username"])
	assert.Equal(t, []string{"This email is already registered"}, fieldErrs["email"])
}

func TestCleanRegistrationUniquenessLookupFailure(t *testing.T) {
	// A failing pre-check lookup must not block registration; the unique
	// index catches any duplicate at save time. The failure is logged.
	checker := &fakeChecker{lookupErr: errors.New("connection refused")}

	var logBuf bytes.Buffer
	ctx := logger.WithLogger(context.Background(),
		slog.New(slog.NewTextHandler(&logBuf, nil)))

	cleaned, err := CleanRegistration(ctx, validRegistration(), checker, &fakePolicy{})

	require.NoError(t, err)
	assert.Equal(t, "alice_42", cleaned.Username)
	assert.Contains(t, logBuf.String(), "username uniqueness pre-check failed")
	assert.Contains(t, logBuf.String(), "email uniqueness pre-check failed")
}

func TestCleanRegistrationEmail(t *testing.T) {
	invalid := []string{
		"not-an-email",
		"a@@b.c",
		"alice@b .c",
		"@example.com",
		"alice@",
	}

	for _, email := range invalid {
		payload := validRegistration()
		payload.Email = email

		_, err := CleanRegistration(context.Background(), payload, &fakeChecker{}, &fakePolicy{})

		fieldErrs, ok := AsFieldErrors(err)
		require.True(t, ok, "email %q should be rejected", email)
		assert.Equal(t, []string{"Enter a valid email address"}, fieldErrs["email"], "email %q", email)
	}
}

func TestCleanRegistrationPasswordMismatch(t *testing.T) {
	payload := validRegistration()
	payload.PasswordConfirm = "different"

	_, err := CleanRegistration(context.Background(), payload, &fakeChecker{}, &fakePolicy{})

	fieldErrs, ok := AsFieldErrors(err)
	require.True(t, ok)
	assert.Equal(t, []string{"Password fields do not match"}, fieldErrs["password"])
}

func TestCleanRegistrationPolicyMessagesCollected(t *testing.T) {
	policy := &fakePolicy{messages: []string{
		"This password is too short. It must contain at least 8 characters",
		"This password is too common",
	}}

	_, err := CleanRegistration(context.Background(), validRegistration(), &fakeChecker{}, policy)

	fieldErrs, ok := AsFieldErrors(err)
	require.True(t, ok)
	assert.Equal(t, policy.messages, fieldErrs["password"])
}

func TestCleanRegistrationCollectsAllFields(t *testing.T) {
	payload := RegistrationPayload{
		Username:        "ab!cd",
		Email:           "bad",
		Password:        "x",
		PasswordConfirm: "y",
	}

	_, err := CleanRegistration(context.Background(), payload, &fakeChecker{}, &fakePolicy{})

	fieldErrs, ok := AsFieldErrors(err)
	require.True(t, ok)
	assert.Contains(t, fieldErrs, "username")
	assert.Contains(t, fieldErrs, "email")
	assert.Contains(t, fieldErrs, "password")
}

func TestCleanProfile(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		cleaned, err := CleanProfile(ProfilePayload{
			Email:     "alice@example.com",
			FirstName: "<b>Alice</b>",
			LastName:  "Smith",
		})

		require.NoError(t, err)
		assert.Equal(t, "Alice", cleaned.FirstName)
	})

	t.Run("email required", func(t *testing.T) {
		_, err := CleanProfile(ProfilePayload{})

		fieldErrs, ok := AsFieldErrors(err)
		require.True(t, ok)
		assert.Equal(t, []string{"Email is required"}, fieldErrs["email"])
	})

	t.Run("email shape", func(t *testing.T) {
		for _, email := range []string{"nope", "a@@b.c", "alice@b .c"} {
			_, err := CleanProfile(ProfilePayload{Email: email})

			fieldErrs, ok := AsFieldErrors(err)
			require.True(t, ok, "email %q should be rejected", email)
			assert.Equal(t, []string{"Enter a valid email address"}, fieldErrs["email"], "email %q", email)
		}
	})
}
