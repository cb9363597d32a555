// Package redact removes sensitive information from strings before they are
// logged. Error text can carry payload-derived content (titles, emails,
// credentials, SQL fragments from the driver); security logging must record
// the event without recording that content.
package redact

import "regexp"

// Redaction placeholders
const (
	credentialPlaceholder = "[REDACTED_CREDENTIAL]"
	emailPlaceholder      = "[REDACTED_EMAIL]"
	jwtPlaceholder        = "[REDACTED_JWT]"
	sqlPlaceholder        = "[REDACTED_SQL]"
)

// Precompiled redaction patterns, applied in order.
var (
	// Connection strings with embedded credentials
	dbConnRegex = regexp.MustCompile(`(?i)(postgres|postgresql|mysql)://[^@\s]+@`)

	// password=..., password: ... fragments
	passwordRegex = regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]['"]?|['"]?[=:])[^'"&\s]{1,}`)

	// Three-part base64url JWT tokens
	jwtTokenRegex = regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`)

	// Email addresses
	emailRegex = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

	// SQL statement fragments leaked by driver errors
	sqlRegex = regexp.MustCompile(
		`(?i)(SELECT|INSERT|UPDATE|DELETE|CREATE|ALTER|DROP)\s[\s\w,*()='"$]+`,
	)
)

type replacement struct {
	pattern     *regexp.Regexp
	placeholder string
}

var replacements = []replacement{
	{dbConnRegex, credentialPlaceholder},
	{passwordRegex, credentialPlaceholder},
	{jwtTokenRegex, jwtPlaceholder},
	{emailRegex, emailPlaceholder},
	{sqlRegex, sqlPlaceholder},
}

// String redacts sensitive content from an arbitrary string.
func String(s string) string {
	for _, r := range replacements {
		s = r.pattern.ReplaceAllString(s, r.placeholder)
	}
	return s
}

// Error redacts sensitive content from an error's text.
// Returns an empty string for a nil error.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
