// Package mocks provides hand-written mocks of the store and auth
// interfaces for service and handler tests. Each mock keeps an in-memory
// default implementation and exposes function fields to override individual
// methods per test.
package mocks
