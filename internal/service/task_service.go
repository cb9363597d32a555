package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/store"
	"github.com/phrazzld/taskboard-api/internal/validation"
)

// TaskUpdate carries a full or partial task update. Nil fields keep their
// current value. The owner is immutable and has no place here.
type TaskUpdate struct {
	Title       *string
	Description *string
	Status      *domain.TaskStatus
	Visibility  *domain.TaskVisibility
}

// TaskService provides the task CRUD operations with policy enforcement.
// Object-level denials are reported as store.ErrTaskNotFound so callers
// cannot distinguish a task that does not exist from one they may not touch.
type TaskService interface {
	// List returns the tasks in the principal's read-set, narrowed by the
	// filter. The read-set is applied at the query stage.
	List(ctx context.Context, principal domain.Principal, filter store.TaskFilter) ([]*domain.Task, error)

	// Get retrieves a single task if the principal may read it.
	Get(ctx context.Context, principal domain.Principal, id uuid.UUID) (*domain.Task, error)

	// Create validates, sanitizes and persists a new task, applying the
	// creation policy (owner assignment, anonymous visibility forcing).
	Create(ctx context.Context, principal domain.Principal, payload validation.TaskPayload) (*domain.Task, error)

	// Update applies a full or partial update to a task the principal owns.
	Update(ctx context.Context, principal domain.Principal, id uuid.UUID, update TaskUpdate) (*domain.Task, error)

	// Delete removes a task the principal owns.
	Delete(ctx context.Context, principal domain.Principal, id uuid.UUID) error
}

// TaskServiceImpl implements the TaskService interface
type TaskServiceImpl struct {
	taskStore store.TaskStore
	db        *sql.DB
	logger    *slog.Logger

	// txRunner wraps store.RunInTransaction; tests substitute it to run
	// write paths against in-memory stores without a database.
	txRunner func(ctx context.Context, db *sql.DB, fn store.TxFn) error
}

// NewTaskService creates a new TaskService
func NewTaskService(taskStore store.TaskStore, db *sql.DB, logger *slog.Logger) TaskService {
	return &TaskServiceImpl{
		taskStore: taskStore,
		db:        db,
		logger:    logger.With("component", "task_service"),
		txRunner:  store.RunInTransaction,
	}
}

// List implements TaskService.List
func (s *TaskServiceImpl) List(
	ctx context.Context,
	principal domain.Principal,
	filter store.TaskFilter,
) ([]*domain.Task, error) {
	tasks, err := s.taskStore.List(ctx, principal, filter)
	if err != nil {
		s.logger.Error("failed to list tasks",
			"error", err,
			"principal", principal.String())
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// Get implements TaskService.Get
func (s *TaskServiceImpl) Get(
	ctx context.Context,
	principal domain.Principal,
	id uuid.UUID,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.taskStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !domain.CanRead(principal, task) {
		log.Warn("read denied by visibility policy",
			"principal", principal.String(),
			"task_id", id)
		return nil, store.ErrTaskNotFound
	}

	return task, nil
}

// Create implements TaskService.Create
func (s *TaskServiceImpl) Create(
	ctx context.Context,
	principal domain.Principal,
	payload validation.TaskPayload,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	cleaned, err := validation.CleanTask(payload)
	if err != nil {
		log.Warn("task validation failed",
			"principal", principal.String())
		return nil, err
	}

	task, err := domain.NewTask(principal, cleaned.Title, cleaned.Description, cleaned.Status, cleaned.Visibility)
	if err != nil {
		return nil, fmt.Errorf("failed to build task: %w", err)
	}

	err = s.txRunner(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.taskStore.WithTx(tx).Create(ctx, task)
	})
	if err != nil {
		log.Error("failed to save task",
			"error", err,
			"principal", principal.String())
		return nil, fmt.Errorf("failed to save task: %w", err)
	}

	return task, nil
}

// Update implements TaskService.Update. The read, the policy check, the
// validation of the merged payload and the write all happen inside one
// transaction.
func (s *TaskServiceImpl) Update(
	ctx context.Context,
	principal domain.Principal,
	id uuid.UUID,
	update TaskUpdate,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var updated *domain.Task
	err := s.txRunner(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.taskStore.WithTx(tx)

		task, err := txStore.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if !domain.CanModify(principal, task) {
			log.Warn("update denied by ownership policy",
				"principal", principal.String(),
				"task_id", id)
			return store.ErrTaskNotFound
		}

		merged := validation.TaskPayload{
			Title:       task.Title,
			Description: task.Description,
			Status:      task.Status,
			Visibility:  task.Visibility,
		}
		if update.Title != nil {
			merged.Title = *update.Title
		}
		if update.Description != nil {
			merged.Description = *update.Description
		}
		if update.Status != nil {
			merged.Status = *update.Status
		}
		if update.Visibility != nil {
			merged.Visibility = *update.Visibility
		}

		cleaned, err := validation.CleanTask(merged)
		if err != nil {
			return err
		}

		// An ownerless task cannot go private; there is no owner a private
		// read could ever match.
		if task.OwnerID == nil && cleaned.Visibility != domain.VisibilityGlobal {
			return validation.FieldErrors{
				"visibility": {"An anonymous task must remain global"},
			}
		}

		task.Title = cleaned.Title
		task.Description = cleaned.Description
		task.Status = cleaned.Status
		task.Visibility = cleaned.Visibility

		if err := txStore.Update(ctx, task); err != nil {
			return err
		}
		updated = task
		return nil
	})

	if err != nil {
		var fieldErrs validation.FieldErrors
		if errors.Is(err, store.ErrTaskNotFound) || errors.As(err, &fieldErrs) {
			return nil, err
		}
		log.Error("failed to update task",
			"error", err,
			"principal", principal.String(),
			"task_id", id)
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return updated, nil
}

// Delete implements TaskService.Delete
func (s *TaskServiceImpl) Delete(
	ctx context.Context,
	principal domain.Principal,
	id uuid.UUID,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := s.txRunner(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.taskStore.WithTx(tx)

		task, err := txStore.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if !domain.CanModify(principal, task) {
			log.Warn("delete denied by ownership policy",
				"principal", principal.String(),
				"task_id", id)
			return store.ErrTaskNotFound
		}

		return txStore.Delete(ctx, id)
	})

	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return err
		}
		log.Error("failed to delete task",
			"error", err,
			"principal", principal.String(),
			"task_id", id)
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}
