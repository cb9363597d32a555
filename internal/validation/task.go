package validation

import (
	"regexp"
	"unicode/utf8"

	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/sanitize"
)

const (
	titleMinLength       = 3
	titleMaxLength       = 200
	descriptionMaxLength = 5000
)

var (
	titlePattern = regexp.MustCompile(`^[a-zA-Z0-9\s.,!?()-]+$`)

	// reservedWordPattern blocks storage-query keywords as case-insensitive
	// whole words to stop injection attempts smuggled into titles.
	reservedWordPattern = regexp.MustCompile(
		`(?i)\b(select|insert|update|delete|drop|alter|exec|union|create|where)\b`,
	)
)

// TaskPayload carries the client-mutable task fields through the pipeline.
type TaskPayload struct {
	Title       string
	Description string
	Status      domain.TaskStatus
	Visibility  domain.TaskVisibility
}

// CleanTask validates and sanitizes a task payload. All fields are checked
// and every field error is collected before returning; on success the
// returned payload carries the sanitized field values.
func CleanTask(payload TaskPayload) (TaskPayload, error) {
	errs := FieldErrors{}
	cleaned := payload

	cleaned.Title = cleanTitle(payload.Title, errs)
	cleaned.Description = cleanDescription(payload.Description, errs)

	switch payload.Status {
	case "", domain.TaskStatusTodo, domain.TaskStatusDone:
		if payload.Status == "" {
			cleaned.Status = domain.TaskStatusTodo
		}
	default:
		errs.Add("status", "Status is not a valid choice")
	}

	switch payload.Visibility {
	case "", domain.VisibilityPrivate, domain.VisibilityGlobal:
		if payload.Visibility == "" {
			cleaned.Visibility = domain.VisibilityPrivate
		}
	default:
		errs.Add("visibility", "Visibility is not a valid choice")
	}

	if errs.HasErrors() {
		return TaskPayload{}, errs
	}
	return cleaned, nil
}

// cleanTitle runs the ordered title checks, short-circuiting on the first
// failure for this field. The length ceiling applies to the raw input, before
// sanitization.
func cleanTitle(raw string, errs FieldErrors) string {
	if utf8.RuneCountInString(raw) > titleMaxLength {
		errs.Add("title", "Title must be at most 200 characters")
		return ""
	}

	clean := sanitize.Strip(raw)
	if clean == "" {
		errs.Add("title", "Title is required")
		return ""
	}
	if utf8.RuneCountInString(clean) < titleMinLength {
		errs.Add("title", "Title must be at least 3 characters")
		return ""
	}

	if !titlePattern.MatchString(clean) {
		errs.Add("title", "Title can only contain letters, numbers, and basic punctuation")
		return ""
	}

	if reservedWordPattern.MatchString(clean) {
		errs.Add("title", "Title contains prohibited words")
		return ""
	}

	return clean
}

// cleanDescription validates the optional description. The length ceiling
// applies to the raw input; sanitization keeps only the inline formatting
// allow-list.
func cleanDescription(raw string, errs FieldErrors) string {
	if raw == "" {
		return ""
	}

	if utf8.RuneCountInString(raw) > descriptionMaxLength {
		errs.Add("description", "Description must be less than 5000 characters")
		return ""
	}

	return sanitize.Description(raw)
}
