// Package service implements the application's use cases on top of the store
// interfaces: registration and profile management, and the task CRUD
// operations with their ownership/visibility policy enforcement.
package service
