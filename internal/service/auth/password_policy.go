package auth

import (
	"strings"
	"unicode"
)

// PasswordPolicy validates password strength for registration. Messages are
// returned verbatim; the validation pipeline collects them under the
// password field. A nil slice means the password passed every check.
//
// The policy intentionally runs all checks and reports every failure rather
// than stopping at the first one.
type PasswordPolicy struct {
	// MinLength is the minimum acceptable password length in runes.
	MinLength int
}

// NewPasswordPolicy creates a policy with the default minimum length.
func NewPasswordPolicy() *PasswordPolicy {
	return &PasswordPolicy{MinLength: 8}
}

// Validate runs the strength checks against the password. userInputs carries
// user attributes (username, email, names) the password must not resemble.
func (p *PasswordPolicy) Validate(password string, userInputs ...string) []string {
	var messages []string

	if len([]rune(password)) < p.MinLength {
		messages = append(messages,
			"This password is too short. It must contain at least 8 characters.")
	}

	if similarToUserInputs(password, userInputs) {
		messages = append(messages,
			"The password is too similar to your other personal information.")
	}

	if isCommonPassword(password) {
		messages = append(messages, "This password is too common.")
	}

	if entirelyNumeric(password) {
		messages = append(messages, "This password is entirely numeric.")
	}

	return messages
}

// similarToUserInputs reports whether the password overlaps too strongly
// with any user attribute. Both containment directions count: a password
// inside the username is as weak as the username inside the password. For
// emails the local part is checked as well.
func similarToUserInputs(password string, userInputs []string) bool {
	lowered := strings.ToLower(password)

	for _, input := range userInputs {
		input = strings.ToLower(strings.TrimSpace(input))
		if input == "" {
			continue
		}

		parts := []string{input}
		if at := strings.IndexByte(input, '@'); at > 0 {
			parts = append(parts, input[:at])
		}

		for _, part := range parts {
			// Very short attributes would match almost anything.
			if len(part) < 4 {
				continue
			}
			if strings.Contains(lowered, part) || strings.Contains(part, lowered) {
				return true
			}
		}
	}

	return false
}

func entirelyNumeric(password string) bool {
	if password == "" {
		return false
	}
	for _, r := range password {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// commonPasswords is a small embedded slice of the most frequently used
// passwords. Matching is case-insensitive.
var commonPasswords = map[string]struct{}{
	"password":    {},
	"password1":   {},
	"password123": {},
	"123456":      {},
	"12345678":    {},
	"123456789":   {},
	"1234567890":  {},
	"qwerty":      {},
	"qwerty123":   {},
	"abc123":      {},
	"letmein":     {},
	"welcome":     {},
	"monkey":      {},
	"dragon":      {},
	"iloveyou":    {},
	"admin":       {},
	"login":       {},
	"passw0rd":    {},
	"football":    {},
	"baseball":    {},
	"sunshine":    {},
	"master":      {},
	"shadow":      {},
	"superman":    {},
	"trustno1":    {},
}

func isCommonPassword(password string) bool {
	_, ok := commonPasswords[strings.ToLower(password)]
	return ok
}
