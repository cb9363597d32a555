package validation

import (
	"context"

	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/redact"
	"github.com/phrazzld/taskboard-api/internal/sanitize"
)

// UniquenessChecker answers whether a username or email is already taken.
// The storage layer's unique indexes remain the real guarantee under
// concurrent registration; this pre-check exists for precise field errors.
type UniquenessChecker interface {
	UsernameTaken(ctx context.Context, username string) (bool, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
}

// PasswordPolicy validates password strength. Implementations return their
// messages verbatim; the pipeline collects them under the password field.
// userInputs carries user attributes (username, email, names) the password
// must not resemble.
type PasswordPolicy interface {
	Validate(password string, userInputs ...string) []string
}

// RegistrationPayload carries the registration fields through the pipeline.
type RegistrationPayload struct {
	Username        string
	Email           string
	FirstName       string
	LastName        string
	Password        string
	PasswordConfirm string
}

// CleanRegistration validates and sanitizes a registration payload,
// collecting every field error before returning. Uniqueness pre-checks go
// through the provided checker; password strength through the policy.
func CleanRegistration(
	ctx context.Context,
	payload RegistrationPayload,
	checker UniquenessChecker,
	policy PasswordPolicy,
) (RegistrationPayload, error) {
	errs := FieldErrors{}
	cleaned := payload

	cleaned.Username = cleanUsername(ctx, payload.Username, checker, errs)
	cleaned.Email = cleanEmail(ctx, payload.Email, checker, errs)
	cleaned.FirstName = sanitize.Strip(payload.FirstName)
	cleaned.LastName = sanitize.Strip(payload.LastName)

	// Passwords are never sanitized; they are hashed, not rendered.
	if payload.Password != payload.PasswordConfirm {
		errs.Add("password", "Password fields do not match")
	} else if policy != nil {
		userInputs := []string{cleaned.Username, cleaned.Email, cleaned.FirstName, cleaned.LastName}
		for _, msg := range policy.Validate(payload.Password, userInputs...) {
			errs.Add("password", msg)
		}
	}

	if errs.HasErrors() {
		return RegistrationPayload{}, errs
	}
	return cleaned, nil
}

func cleanUsername(ctx context.Context, raw string, checker UniquenessChecker, errs FieldErrors) string {
	clean := sanitize.Strip(raw)
	if clean == "" {
		errs.Add("username", "Username is required")
		return ""
	}

	if !usernameValid(clean) {
		errs.Add("username", "Username can only contain letters, numbers, and underscores")
		return ""
	}

	if checker != nil {
		taken, err := checker.UsernameTaken(ctx, clean)
		if err != nil {
			// The unique index still catches a duplicate at save time.
			logger.FromContext(ctx).Warn("username uniqueness pre-check failed",
				"error", redact.Error(err))
		} else if taken {
			errs.Add("username", "This username is already taken")
			return ""
		}
	}

	return clean
}

func cleanEmail(ctx context.Context, raw string, checker UniquenessChecker, errs FieldErrors) string {
	clean := sanitize.Strip(raw)
	if clean == "" {
		errs.Add("email", "Email is required")
		return ""
	}

	if !domain.ValidEmailFormat(clean) {
		errs.Add("email", "Enter a valid email address")
		return ""
	}

	if checker != nil {
		taken, err := checker.EmailTaken(ctx, clean)
		if err != nil {
			logger.FromContext(ctx).Warn("email uniqueness pre-check failed",
				"error", redact.Error(err))
		} else if taken {
			errs.Add("email", "This email is already registered")
			return ""
		}
	}

	return clean
}

func usernameValid(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_':
		default:
			return false
		}
	}
	return true
}
