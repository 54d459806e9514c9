// Package task defines the demo record type used by the HTTP surface.
// Its fields cover every filterable type in the vocabulary.
package task

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"livefilter/internal/domain/filter"
)

// Task is one record in the tasks table.
type Task struct {
	ID             uuid.UUID       `db:"id" json:"id"`
	Title          string          `db:"title" json:"title"`
	Description    *string         `db:"description" json:"description,omitempty"`
	Status         string          `db:"status" json:"status"`
	Priority       int             `db:"priority" json:"priority"`
	EstimatedHours decimal.Decimal `db:"estimated_hours" json:"estimatedHours"`
	Completed      bool            `db:"completed" json:"completed"`
	Tags           []string        `db:"tags" json:"tags"`
	AssignedTo     *string         `db:"assigned_to" json:"assignedTo,omitempty"`
	DueDate        *time.Time      `db:"due_date" json:"dueDate,omitempty"`
	CreatedAt      time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time       `db:"updated_at" json:"updatedAt"`
}

// Statuses a task can be in.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusArchived   = "archived"
)

// TableName is the backing table.
const TableName = "tasks"

// Columns lists the selectable columns in declaration order.
var Columns = []string{
	"id",
	"title",
	"description",
	"status",
	"priority",
	"estimated_hours",
	"completed",
	"tags",
	"assigned_to",
	"due_date",
	"created_at",
	"updated_at",
}

// FieldTypes maps filterable field names to their semantic types. The UI
// and the decoder consult this registry so both sides agree on operator
// vocabulary and value parsing per field.
var FieldTypes = map[string]filter.FieldType{
	"title":           filter.TypeString,
	"description":     filter.TypeText,
	"status":          filter.TypeEnum,
	"priority":        filter.TypeInteger,
	"estimated_hours": filter.TypeFloat,
	"completed":       filter.TypeBoolean,
	"tags":            filter.TypeArray,
	"assigned_to":     filter.TypeString,
	"due_date":        filter.TypeDate,
	"created_at":      filter.TypeDateTime,
	"updated_at":      filter.TypeDateTime,
}
