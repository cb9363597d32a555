package api

import (
	"net/http"

	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/service"
	"github.com/phrazzld/taskboard-api/internal/store"
	"github.com/phrazzld/taskboard-api/internal/validation"
)

// TaskHandler handles the task CRUD endpoints. All endpoints accept both
// authenticated and anonymous principals; the service layer applies the
// ownership policy.
type TaskHandler struct {
	taskService service.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// List handles GET /api/tasks. Supported query parameters: status,
// visibility, search, ordering.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseTaskFilter(r)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	principal := shared.PrincipalFromContext(r.Context())
	tasks, err := h.taskService.List(r.Context(), principal, filter)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newTaskListResponse(tasks))
}

// Create handles POST /api/tasks.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req TaskCreateRequest
	if err := DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	principal := shared.PrincipalFromContext(r.Context())
	task, err := h.taskService.Create(r.Context(), principal, validation.TaskPayload{
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.TaskStatus(req.Status),
		Visibility:  domain.TaskVisibility(req.Visibility),
	})
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	logger.FromContext(r.Context()).Info("task created",
		"task_id", task.ID, "principal", principal.String())
	shared.RespondWithJSON(w, r, http.StatusCreated, newTaskResponse(task))
}

// Get handles GET /api/tasks/{id}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	principal := shared.PrincipalFromContext(r.Context())
	task, err := h.taskService.Get(r.Context(), principal, id)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newTaskResponse(task))
}

// Update handles PUT and PATCH /api/tasks/{id}. Both accept a partial body;
// absent fields keep their stored values.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	var req TaskUpdateRequest
	if err := DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	principal := shared.PrincipalFromContext(r.Context())
	task, err := h.taskService.Update(r.Context(), principal, id, service.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		Status:      taskStatusPtr(req.Status),
		Visibility:  taskVisibilityPtr(req.Visibility),
	})
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newTaskResponse(task))
}

// Delete handles DELETE /api/tasks/{id}.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	principal := shared.PrincipalFromContext(r.Context())
	if err := h.taskService.Delete(r.Context(), principal, id); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// parseTaskFilter validates the list query parameters, collecting an error
// per bad parameter the same way the body pipeline does.
func parseTaskFilter(r *http.Request) (store.TaskFilter, error) {
	q := r.URL.Query()
	errs := validation.FieldErrors{}
	var filter store.TaskFilter

	switch s := q.Get("status"); s {
	case "", string(domain.TaskStatusTodo), string(domain.TaskStatusDone):
		filter.Status = domain.TaskStatus(s)
	default:
		errs.Add("status", "Select a valid choice")
	}

	switch v := q.Get("visibility"); v {
	case "", string(domain.VisibilityPrivate), string(domain.VisibilityGlobal):
		filter.Visibility = domain.TaskVisibility(v)
	default:
		errs.Add("visibility", "Select a valid choice")
	}

	switch o := store.TaskOrdering(q.Get("ordering")); o {
	case "", store.OrderCreatedAtDesc, store.OrderCreatedAtAsc,
		store.OrderTitleAsc, store.OrderTitleDesc:
		filter.Ordering = o
	default:
		errs.Add("ordering", "Select a valid choice")
	}

	filter.Search = q.Get("search")

	if errs.HasErrors() {
		return store.TaskFilter{}, errs
	}
	return filter, nil
}

func taskStatusPtr(s *string) *domain.TaskStatus {
	if s == nil {
		return nil
	}
	v := domain.TaskStatus(*s)
	return &v
}

func taskVisibilityPtr(s *string) *domain.TaskVisibility {
	if s == nil {
		return nil
	}
	v := domain.TaskVisibility(*s)
	return &v
}
