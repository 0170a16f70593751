package mockapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/taskflow/taskflow-go/internal/core/domain"
)

type TaskHandler struct {
	store    *Store
	recorder *Recorder
}

func NewTaskHandler(store *Store, recorder *Recorder) *TaskHandler {
	return &TaskHandler{store: store, recorder: recorder}
}

type taskRequest struct {
	Title       string           `json:"title"       validate:"required,max=100"`
	Description string           `json:"description" validate:"max=500"`
	Status      string           `json:"status"      validate:"required,oneof='Todo' 'In Progress' 'Done'"`
	Priority    string           `json:"priority"    validate:"required,oneof=Low Medium High"`
	Assignee    *domain.Assignee `json:"assignee"`
	DueDate     *time.Time       `json:"dueDate"`
}

func (r *taskRequest) toTask() *domain.Task {
	return &domain.Task{
		Title:       r.Title,
		Description: r.Description,
		Status:      domain.TaskStatus(r.Status),
		Priority:    domain.TaskPriority(r.Priority),
		Assignee:    r.Assignee,
		DueDate:     r.DueDate,
	}
}

func actor(c echo.Context) *domain.Assignee {
	id, _ := c.Get("userID").(string)
	name, _ := c.Get("name").(string)
	return &domain.Assignee{ID: id, Name: name}
}

func (h *TaskHandler) List(c echo.Context) error {
	filter := domain.TaskFilter{
		Status:   domain.TaskStatus(c.QueryParam("status")),
		Assignee: c.QueryParam("assignee"),
	}
	return c.JSON(http.StatusOK, h.store.ListTasks(filter))
}

func (h *TaskHandler) Create(c echo.Context) error {
	var req taskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task := h.store.CreateTask(req.toTask())
	h.recorder.Record(domain.ActivityEntry{
		TaskID:      task.ID,
		Action:      domain.ActionTaskCreated,
		PerformedBy: actor(c),
		Details:     domain.ActivityDetails{Title: task.Title},
	})

	return c.JSON(http.StatusCreated, task)
}

func (h *TaskHandler) Update(c echo.Context) error {
	var req taskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	id := c.Param("id")
	before, err := h.store.GetTask(id)
	if err != nil {
		return err
	}

	updated, err := h.store.UpdateTask(id, req.toTask())
	if err != nil {
		return err
	}

	h.recorder.Record(activityForUpdate(before, updated, actor(c)))
	return c.JSON(http.StatusOK, updated)
}

func (h *TaskHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	task, err := h.store.GetTask(id)
	if err != nil {
		return err
	}
	if err := h.store.DeleteTask(id); err != nil {
		return err
	}

	h.recorder.Record(domain.ActivityEntry{
		TaskID:      id,
		Action:      domain.ActionTaskDeleted,
		PerformedBy: actor(c),
		Details:     domain.ActivityDetails{Title: task.Title},
	})
	return c.NoContent(http.StatusNoContent)
}

func (h *TaskHandler) Activity(c echo.Context) error {
	id := c.Param("id")
	return c.JSON(http.StatusOK, h.store.ListActivity(id))
}

// activityForUpdate classifies an update the way the dashboard log does:
// a column move beats a reassignment, which beats a plain edit.
func activityForUpdate(before, after *domain.Task, by *domain.Assignee) domain.ActivityEntry {
	entry := domain.ActivityEntry{
		TaskID:      after.ID,
		PerformedBy: by,
	}

	switch {
	case before.Status != after.Status:
		entry.Action = domain.ActionStatusChanged
		entry.Details = domain.ActivityDetails{
			Status: &domain.StatusChange{From: before.Status, To: after.Status},
		}
	case assigneeChanged(before.Assignee, after.Assignee):
		entry.Action = domain.ActionTaskReassigned
	default:
		entry.Action = domain.ActionTaskUpdated
	}
	return entry
}

func assigneeChanged(before, after *domain.Assignee) bool {
	switch {
	case before == nil && after == nil:
		return false
	case before == nil || after == nil:
		return true
	default:
		return before.ID != after.ID || before.Name != after.Name
	}
}
