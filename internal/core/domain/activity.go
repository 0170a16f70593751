package domain

import (
	"fmt"
	"time"
)

// ActivityAction identifies what happened to a task.
type ActivityAction string

const (
	ActionTaskCreated    ActivityAction = "TASK_CREATED"
	ActionStatusChanged  ActivityAction = "STATUS_CHANGED"
	ActionTaskReassigned ActivityAction = "TASK_REASSIGNED"
	ActionTaskUpdated    ActivityAction = "TASK_UPDATED"
	ActionTaskDeleted    ActivityAction = "TASK_DELETED"
)

// StatusChange records the from/to columns of a status transition.
type StatusChange struct {
	From TaskStatus `json:"from"`
	To   TaskStatus `json:"to"`
}

// ActivityDetails carries the action-specific payload of a log entry.
type ActivityDetails struct {
	Title  string        `json:"title,omitempty"`
	Status *StatusChange `json:"status,omitempty"`
}

// ActivityEntry is a single line of a task's activity log.
type ActivityEntry struct {
	ID          string          `json:"id"`
	TaskID      string          `json:"taskId"`
	Action      ActivityAction  `json:"action"`
	PerformedBy *Assignee       `json:"performedBy,omitempty"`
	Details     ActivityDetails `json:"details"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// Message renders the entry as a human-readable sentence fragment, matching
// the dashboard's activity log display.
func (e *ActivityEntry) Message() string {
	switch e.Action {
	case ActionTaskCreated:
		return fmt.Sprintf("created task %q", e.Details.Title)
	case ActionStatusChanged:
		if e.Details.Status != nil {
			return fmt.Sprintf("changed status from %s to %s", e.Details.Status.From, e.Details.Status.To)
		}
		return "changed status"
	case ActionTaskReassigned:
		return "reassigned task"
	case ActionTaskUpdated:
		return "updated task details"
	case ActionTaskDeleted:
		return "deleted task"
	default:
		return string(e.Action)
	}
}
