package validation

import (
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/sanitize"
)

// ProfilePayload carries the mutable profile fields. Username, ID, join date
// and last login are read-only and never travel through this pipeline.
type ProfilePayload struct {
	Email     string
	FirstName string
	LastName  string
}

// CleanProfile validates and sanitizes a profile update. Email uniqueness
// against other users is the service's concern because the current user's own
// email must not count as a conflict.
func CleanProfile(payload ProfilePayload) (ProfilePayload, error) {
	errs := FieldErrors{}
	cleaned := ProfilePayload{
		Email:     sanitize.Strip(payload.Email),
		FirstName: sanitize.Strip(payload.FirstName),
		LastName:  sanitize.Strip(payload.LastName),
	}

	if cleaned.Email == "" {
		errs.Add("email", "Email is required")
	} else if !domain.ValidEmailFormat(cleaned.Email) {
		errs.Add("email", "Enter a valid email address")
	}

	if errs.HasErrors() {
		return ProfilePayload{}, errs
	}
	return cleaned, nil
}
