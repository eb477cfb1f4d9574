package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/dstanton/taskminder/internal/api/middleware"
	"github.com/dstanton/taskminder/internal/api/shared"
	"github.com/dstanton/taskminder/internal/domain"
	"github.com/dstanton/taskminder/internal/service"
	"github.com/dstanton/taskminder/internal/service/auth"
)

// TaskHandler handles the owner-scoped task CRUD endpoints. Every route it
// serves sits behind the auth middleware, so an identity is always present.
type TaskHandler struct {
	taskService *service.TaskService
	validator   *validator.Validate
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(taskService *service.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		validator:   validator.New(),
	}
}

// List handles GET /api/todos.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Access token required")
		return
	}

	tasks, err := h.taskService.List(r.Context(), identity.UserID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to read todos")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// Create handles POST /api/todos.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Access token required")
		return
	}

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Todo text is required")
		return
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := h.taskService.Create(r.Context(), identity.UserID, req.Text, dueDate, req.NotificationEmail)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, task)
}

// Update handles PUT /api/todos/{id}.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, taskID, ok := h.identityAndTaskID(w, r)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid todo fields")
		return
	}

	patch := service.TaskPatch{
		Text:              req.Text,
		Completed:         req.Completed,
		NotificationEmail: req.NotificationEmail,
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			patch.RemoveDueDate = true
		} else {
			dueDate, err := parseDueDate(*req.DueDate)
			if err != nil {
				HandleAPIError(w, r, err, "")
				return
			}
			patch.DueDate = dueDate
		}
	}

	task, err := h.taskService.Update(r.Context(), identity.UserID, taskID, patch)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// Delete handles DELETE /api/todos/{id}.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, taskID, ok := h.identityAndTaskID(w, r)
	if !ok {
		return
	}

	if err := h.taskService.Delete(r.Context(), identity.UserID, taskID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{
		Message: "Todo deleted successfully",
	})
}

// identityAndTaskID extracts the caller identity and the {id} path
// parameter, writing an error response if either is missing or malformed.
func (h *TaskHandler) identityAndTaskID(
	w http.ResponseWriter,
	r *http.Request,
) (*auth.Identity, uuid.UUID, bool) {
	identity, ok := middleware.GetIdentity(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Access token required")
		return nil, uuid.Nil, false
	}

	raw := chi.URLParam(r, "id")
	taskID, err := uuid.Parse(raw)
	if err != nil {
		HandleAPIError(w, r,
			domain.NewValidationError("id", "has invalid format", domain.ErrInvalidID), "")
		return nil, uuid.Nil, false
	}

	return identity, taskID, true
}
