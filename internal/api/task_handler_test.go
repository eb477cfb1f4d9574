package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dstanton/taskminder/internal/api/shared"
	"github.com/dstanton/taskminder/internal/domain"
	"github.com/dstanton/taskminder/internal/mocks"
	"github.com/dstanton/taskminder/internal/service"
	"github.com/dstanton/taskminder/internal/service/auth"
)

type taskHandlerFixture struct {
	handler   *TaskHandler
	taskStore *mocks.MockTaskStore
	userStore *mocks.MockUserStore
	owner     *domain.User
}

func newTaskHandlerFixture(t *testing.T) *taskHandlerFixture {
	t.Helper()
	taskStore := mocks.NewMockTaskStore()
	userStore := mocks.NewMockUserStore()

	owner, err := domain.NewUser("owner", "owner@example.com", "password123")
	require.NoError(t, err)
	owner.HashedPassword = "hashed"
	owner.Password = ""
	userStore.Users[owner.ID] = owner

	svc := service.NewTaskService(taskStore, userStore, nil)
	return &taskHandlerFixture{
		handler:   NewTaskHandler(svc),
		taskStore: taskStore,
		userStore: userStore,
		owner:     owner,
	}
}

// authedRequest builds a request carrying the user's identity and, when
// taskID is non-nil, the chi {id} route parameter.
func authedRequest(
	t *testing.T,
	method, path string,
	user *domain.User,
	taskID *uuid.UUID,
	payload interface{},
) *http.Request {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")

	ctx := req.Context()
	if user != nil {
		identity := &auth.Identity{
			UserID:   user.ID,
			Username: user.Username,
			Email:    user.Email,
		}
		ctx = context.WithValue(ctx, shared.IdentityContextKey, identity)
	}
	if taskID != nil {
		routeCtx := chi.NewRouteContext()
		routeCtx.URLParams.Add("id", taskID.String())
		ctx = context.WithValue(ctx, chi.RouteCtxKey, routeCtx)
	}

	return req.WithContext(ctx)
}

func (f *taskHandlerFixture) seedTask(t *testing.T, text string) *domain.Task {
	t.Helper()
	task, err := domain.NewTask(f.owner.ID, text, nil, f.owner.Email)
	require.NoError(t, err)
	f.taskStore.Tasks[task.ID] = task
	return task
}

func TestTaskHandlerList(t *testing.T) {
	t.Parallel()

	t.Run("returns the caller's tasks", func(t *testing.T) {
		t.Parallel()
		f := newTaskHandlerFixture(t)
		f.seedTask(t, "first")
		f.seedTask(t, "second")

		w := httptest.NewRecorder()
		f.handler.List(w, authedRequest(t, http.MethodGet, "/api/todos", f.owner, nil, nil))

		require.Equal(t, http.StatusOK, w.Code)
		var tasks []domain.Task
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tasks))
		assert.Len(t, tasks, 2)
	})

	t.Run("returns empty array for a fresh user", func(t *testing.T) {
		t.Parallel()
		f := newTaskHandlerFixture(t)

		w := httptest.NewRecorder()
		f.handler.List(w, authedRequest(t, http.MethodGet, "/api/todos", f.owner, nil, nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "[]", w.Body.String())
	})

	t.Run("rejects unauthenticated request", func(t *testing.T) {
		t.Parallel()
		f := newTaskHandlerFixture(t)

		w := httptest.NewRecorder()
		f.handler.List(w, authedRequest(t, http.MethodGet, "/api/todos", nil, nil, nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestTaskHandlerCreate(t *testing.T) {
	t.Parallel()

	t.Run("creates a task with a due date", func(t *testing.T) {
		t.Parallel()
		f := newTaskHandlerFixture(t)

		w := httptest.NewRecorder()
		f.handler.Create(w, authedRequest(t, http.MethodPost, "/api/todos", f.owner, nil,
			map[string]interface{}{
				"text":     "write report",
				"due_date": "2025-06-15",
			}))

		require.Equal(t, http.StatusCreated, w.Code)
		var task domain.Task
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &task))
		assert.Equal(t, "write report", task.Text)
		assert.Equal(t, f.owner.ID, task.UserID)
		require.NotNil(t, task.DueDate)
		assert.Equal(t, "2025-06-15T00:00:00Z", task.DueDate.Format("2006-01-02T15:04:05Z07:00"))
		// Notification email defaults to the owner's account email
		assert.Equal(t, f.owner.Email, task.NotificationEmail)
	})

	t.Run("rejects missing text", func(t *testing.T) {
		t.Parallel()
		f := newTaskHandlerFixture(t)

		w := httptest.NewRecorder()
		f.handler.Create(w, authedRequest(t, http.MethodPost, "/api/todos", f.owner, nil,
			map[string]interface{}{"due_date": "2025-06-15"}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects malformed due date", func(t *testing.T) {
		t.Parallel()
		f := newTaskHandlerFixture(t)

		w := httptest.NewRecorder()
		f.handler.Create(w, authedRequest(t, http.MethodPost, "/api/todos", f.owner, nil,
			map[string]interface{}{
				"text":     "write report",
				"due_date": "15/06/2025",
			}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestTaskHandlerUpdate(t *testing.T) {
	t.Parallel()

	t.Run("updates fields", func(t *testing.T) {
		t.Parallel()
		f := newTaskHandlerFixture(t)
		task := f.seedTask(t, "write report")

		w := httptest.NewRecorder()
		f.handler.Update(w, authedRequest(t, http.MethodPut, "/api/todos/"+task.ID.String(),
			f.owner, &task.ID,
			map[string]interface{}{
				"text":      "write final report",
				"completed": true,
			}))

		require.Equal(t, http.StatusOK, w.Code)
		var updated domain.Task
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
		assert.Equal(t, "write final report", updated.Text)
		assert.True(t, updated.Completed)
	})

	t.Run("empty due_date clears the due date", func(t *testing.T) {
		t.Parallel()
		f := newTaskHandlerFixture(t)
		task := f.seedTask(t, "write report")
		due := domain.StartOfDay(task.CreatedAt)
		task.DueDate = &due

		w := httptest.NewRecorder()
		f.handler.Update(w, authedRequest(t, http.MethodPut, "/api/todos/"+task.ID.String(),
			f.owner, &task.ID,
			map[string]interface{}{"due_date": ""}))

		require.Equal(t, http.StatusOK, w.Code)
		var updated domain.Task
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
		assert.Nil(t, updated.DueDate)
	})

	t.Run("returns 403 for another user's task", func(t *testing.T) {
		t.Parallel()
		f := newTaskHandlerFixture(t)
		task := f.seedTask(t, "write report")

		intruder, err := domain.NewUser("intruder", "intruder@example.com", "password123")
		require.NoError(t, err)

		w := httptest.NewRecorder()
		f.handler.Update(w, authedRequest(t, http.MethodPut, "/api/todos/"+task.ID.String(),
			intruder, &task.ID,
			map[string]interface{}{"completed": true}))

		assert.Equal(t, http.StatusForbidden, w.Code)

		var resp shared.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Unauthorized to modify this todo", resp.Error)
	})

	t.Run("returns 404 for unknown task", func(t *testing.T) {
		t.Parallel()
		f := newTaskHandlerFixture(t)
		unknown := uuid.New()

		w := httptest.NewRecorder()
		f.handler.Update(w, authedRequest(t, http.MethodPut, "/api/todos/"+unknown.String(),
			f.owner, &unknown,
			map[string]interface{}{"completed": true}))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("returns 400 for malformed id", func(t *testing.T) {
		t.Parallel()
		f := newTaskHandlerFixture(t)

		req := authedRequest(t, http.MethodPut, "/api/todos/not-a-uuid", f.owner, nil,
			map[string]interface{}{"completed": true})
		routeCtx := chi.NewRouteContext()
		routeCtx.URLParams.Add("id", "not-a-uuid")
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))

		w := httptest.NewRecorder()
		f.handler.Update(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestTaskHandlerDelete(t *testing.T) {
	t.Parallel()

	t.Run("deletes owned task", func(t *testing.T) {
		t.Parallel()
		f := newTaskHandlerFixture(t)
		task := f.seedTask(t, "write report")

		w := httptest.NewRecorder()
		f.handler.Delete(w, authedRequest(t, http.MethodDelete, "/api/todos/"+task.ID.String(),
			f.owner, &task.ID, nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, f.taskStore.Tasks, task.ID)

		var resp MessageResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Todo deleted successfully", resp.Message)
	})

	t.Run("rejects delete by non-owner", func(t *testing.T) {
		t.Parallel()
		f := newTaskHandlerFixture(t)
		task := f.seedTask(t, "write report")

		intruder, err := domain.NewUser("intruder", "intruder@example.com", "password123")
		require.NoError(t, err)

		w := httptest.NewRecorder()
		f.handler.Delete(w, authedRequest(t, http.MethodDelete, "/api/todos/"+task.ID.String(),
			intruder, &task.ID, nil))

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, f.taskStore.Tasks, task.ID)
	})
}
