package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// TaskStatus represents the completion state of a task.
type TaskStatus string

const (
	TaskStatusTodo TaskStatus = "todo"
	TaskStatusDone TaskStatus = "done"
)

// TaskVisibility controls cross-user readability of a task.
type TaskVisibility string

const (
	// VisibilityPrivate restricts reads to the owning user.
	VisibilityPrivate TaskVisibility = "private"

	// VisibilityGlobal makes the task readable by every principal.
	VisibilityGlobal TaskVisibility = "global"
)

// Common task validation errors
var (
	ErrEmptyTaskID           = errors.New("task ID cannot be empty")
	ErrEmptyTaskTitle        = errors.New("task title cannot be empty")
	ErrInvalidTaskStatus     = errors.New("invalid task status")
	ErrInvalidTaskVisibility = errors.New("invalid task visibility")
	ErrOwnerlessPrivateTask  = errors.New("a task without an owner must be global")
)

// Task represents a single task on the board. A nil OwnerID means the task
// was created anonymously; such tasks are always global. The owner, once set,
// never changes.
type Task struct {
	ID          uuid.UUID      `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Status      TaskStatus     `json:"status"`
	Visibility  TaskVisibility `json:"visibility"`
	OwnerID     *uuid.UUID     `json:"owner_id,omitempty"`
	// OwnerUsername is filled in on reads by joining the owner row.
	// Empty for ownerless tasks. Never persisted from this struct.
	OwnerUsername string    `json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewTask creates a new Task owned by the given principal, applying the
// creation policy: an anonymous principal yields an ownerless task whose
// visibility is forced to global regardless of the requested visibility.
// Title and description are expected to be already validated and sanitized.
func NewTask(p Principal, title, description string, status TaskStatus, visibility TaskVisibility) (*Task, error) {
	if status == "" {
		status = TaskStatusTodo
	}
	if visibility == "" {
		visibility = VisibilityPrivate
	}

	now := time.Now().UTC()
	task := &Task{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Status:      status,
		Visibility:  visibility,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	ApplyCreatePolicy(p, task)

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks the task's structural invariants. Field-level content rules
// (length bounds, character sets, reserved words) are the validation
// pipeline's responsibility and run before the entity is built.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}

	if t.Title == "" {
		return ErrEmptyTaskTitle
	}

	switch t.Status {
	case TaskStatusTodo, TaskStatusDone:
	default:
		return ErrInvalidTaskStatus
	}

	switch t.Visibility {
	case VisibilityPrivate, VisibilityGlobal:
	default:
		return ErrInvalidTaskVisibility
	}

	// An ownerless task has no principal a private-visibility check could
	// ever match, so it must be global.
	if t.OwnerID == nil && t.Visibility != VisibilityGlobal {
		return ErrOwnerlessPrivateTask
	}

	return nil
}

// IsOwnedBy reports whether the task is owned by the given authenticated
// principal. Ownerless tasks are owned by nobody.
func (t *Task) IsOwnedBy(p Principal) bool {
	return p.IsAuthenticated() && t.OwnerID != nil && *t.OwnerID == p.UserID
}
