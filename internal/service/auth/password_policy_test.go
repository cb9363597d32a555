package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPasswordPolicyValid(t *testing.T) {
	policy := NewPasswordPolicy()

	messages := policy.Validate("correct horse battery", "alice", "alice@example.com")

	assert.Empty(t, messages)
}

func TestPasswordPolicyTooShort(t *testing.T) {
	policy := NewPasswordPolicy()

	messages := policy.Validate("hunter2")

	assert.Contains(t, messages,
		"This password is too short. It must contain at least 8 characters.")
}

func TestPasswordPolicyEntirelyNumeric(t *testing.T) {
	policy := NewPasswordPolicy()

	messages := policy.Validate("98416728345")

	assert.Equal(t, []string{"This password is entirely numeric."}, messages)
}

func TestPasswordPolicyCommonPassword(t *testing.T) {
	policy := NewPasswordPolicy()

	for _, password := range []string{"password123", "Password123", "qwerty123"} {
		messages := policy.Validate(password)
		assert.Contains(t, messages, "This password is too common.", "password %q", password)
	}
}

func TestPasswordPolicySimilarToUserAttributes(t *testing.T) {
	policy := NewPasswordPolicy()

	tests := []struct {
		name       string
		password   string
		userInputs []string
		similar    bool
	}{
		{"contains username", "alicesmith99", []string{"alicesmith"}, true},
		{"case-insensitive", "ALICESMITH99", []string{"alicesmith"}, true},
		{"email local part", "myjdoe1address", []string{"jdoe1@example.com"}, true},
		{"password inside attribute", "alice", []string{"alicesmith"}, true},
		{"short attributes ignored", "abcdefgh1", []string{"abc"}, false},
		{"unrelated", "correct horse battery", []string{"alicesmith"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			messages := policy.Validate(tt.password, tt.userInputs...)
			if tt.similar {
				assert.Contains(t, messages,
					"The password is too similar to your other personal information.")
			} else {
				assert.NotContains(t, messages,
					"The password is too similar to your other personal information.")
			}
		})
	}
}

func TestPasswordPolicyReportsAllFailures(t *testing.T) {
	policy := NewPasswordPolicy()

	messages := policy.Validate("123456")

	// Short, common, and entirely numeric at once.
	assert.Len(t, messages, 3)
}
