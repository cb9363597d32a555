// Package api implements the HTTP handlers for the authentication, profile
// and task endpoints. Handlers decode and shape requests, delegate to the
// service layer, and map service errors to HTTP responses; they hold no
// business rules of their own.
package api
