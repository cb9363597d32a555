package domain

import "github.com/google/uuid"

// Principal is the acting identity for a request: either an authenticated
// user, identified by their user ID, or the anonymous identity (zero value).
type Principal struct {
	UserID uuid.UUID
}

// Anonymous returns the anonymous principal.
func Anonymous() Principal {
	return Principal{}
}

// AuthenticatedPrincipal returns a principal for the given user ID.
func AuthenticatedPrincipal(userID uuid.UUID) Principal {
	return Principal{UserID: userID}
}

// IsAuthenticated reports whether the principal is an authenticated user.
func (p Principal) IsAuthenticated() bool {
	return p.UserID != uuid.Nil
}

// String renders the principal for security logging.
func (p Principal) String() string {
	if !p.IsAuthenticated() {
		return "anonymous"
	}
	return p.UserID.String()
}
