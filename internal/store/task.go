package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
)

// TaskOrdering names the supported list orderings.
type TaskOrdering string

const (
	OrderCreatedAtDesc TaskOrdering = "-created_at"
	OrderCreatedAtAsc  TaskOrdering = "created_at"
	OrderTitleAsc      TaskOrdering = "title"
	OrderTitleDesc     TaskOrdering = "-title"
)

// TaskFilter narrows the task list. Zero values mean "no constraint".
type TaskFilter struct {
	// Status filters by completion state.
	Status domain.TaskStatus

	// Visibility filters by visibility value. The principal's read-set is
	// applied on top of this regardless.
	Visibility domain.TaskVisibility

	// Search is a case-insensitive substring match over title and description.
	Search string

	// Ordering defaults to OrderCreatedAtDesc.
	Ordering TaskOrdering
}

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create saves a new task to the store.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID, regardless of principal.
	// The caller applies the read policy before exposing the task.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// List returns the tasks visible to the principal, narrowed by the
	// filter. The principal's read-set is applied in the query itself
	// (global tasks plus the principal's own), never by filtering rows
	// after the fact.
	List(ctx context.Context, principal domain.Principal, filter TaskFilter) ([]*domain.Task, error)

	// Update persists the mutable fields (title, description, status,
	// visibility) of an existing task. The owner is immutable and is never
	// written. Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task from the store by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new TaskStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) TaskStore
}
