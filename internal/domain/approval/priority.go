package approval

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

var priorityRank = map[Priority]int{
	PriorityHigh:   3,
	PriorityMedium: 2,
	PriorityLow:    1,
}

// ClassifyPriority triages a supervisor-approved item by how long it has
// been waiting for HR: HIGH at 72h, MEDIUM at 24h, else LOW. Items without
// a supervisor-approval timestamp default to MEDIUM.
func ClassifyPriority(supervisorApprovedAt *time.Time, now time.Time) Priority {
	if supervisorApprovedAt == nil {
		return PriorityMedium
	}
	waiting := now.Sub(*supervisorApprovedAt)
	switch {
	case waiting >= 72*time.Hour:
		return PriorityHigh
	case waiting >= 24*time.Hour:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// QueueItem is a read-model row of the combined HR approval queue; it is
// derived, never persisted.
type QueueItem struct {
	Kind                 Kind            `json:"kind"`
	RequestID            string          `json:"request_id"`
	RequestNo            string          `json:"request_no"`
	EmployeeID           string          `json:"employee_id"`
	EmployeeName         *string         `json:"employee_name,omitempty"`
	Quantity             decimal.Decimal `json:"quantity"`
	Unit                 string          `json:"unit"`
	SubmittedAt          time.Time       `json:"submitted_at"`
	SupervisorApprovedAt *time.Time      `json:"supervisor_approved_at,omitempty"`
	Priority             Priority        `json:"priority"`
	CTOPreview           bool            `json:"cto_conversion_preview,omitempty"`
}

// SortQueue orders items by priority descending, then by original
// chronological order.
func SortQueue(items []QueueItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return priorityRank[items[i].Priority] > priorityRank[items[j].Priority]
	})
}
