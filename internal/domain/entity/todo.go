package entity

import "time"

// Priority is the urgency level of a todo item.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// NormalizePriority maps any unrecognized or missing value to medium.
func NormalizePriority(raw string) Priority {
	switch Priority(raw) {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return Priority(raw)
	default:
		return PriorityMedium
	}
}

// Todo is a task item owned by exactly one user. Deletion is a soft flag:
// deleted rows stay in the store for the history view but are excluded from
// active listings and from further mutations. Deleted is a terminal state.
type Todo struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Priority  Priority  `json:"priority"`
	Completed bool      `json:"completed"`
	IsDeleted bool      `json:"is_deleted"`
	OwnerID   int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
