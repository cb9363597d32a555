// Package domain defines the core business entities, the acting principal,
// and the ownership/visibility policy governing task access.
package domain
