package audit

import (
	"context"
	"sort"
	"time"
)

// FieldChange records one field's old and new value for an audited write.
type FieldChange struct {
	Field string `json:"field"`
	Old   any    `json:"old"`
	New   any    `json:"new"`
}

// Entry is one structured audit record. Repositories persist it inside the
// same transaction as the domain write it documents.
type Entry struct {
	ID         string
	CompanyID  string
	EntityName string
	RecordID   string
	Action     string
	ActorID    string
	Reason     string
	Changes    []FieldChange
	CreatedAt  time.Time
}

type Repository interface {
	Record(ctx context.Context, entry Entry) error
	ListByRecord(ctx context.Context, companyID, entityName, recordID string) ([]Entry, error)
}

// Diff builds the field-change set between two snapshots of the same
// entity, given as field->value maps. Unchanged fields are omitted.
func Diff(before, after map[string]any) []FieldChange {
	var changes []FieldChange
	for field, oldVal := range before {
		newVal, ok := after[field]
		if !ok {
			continue
		}
		if oldVal != newVal {
			changes = append(changes, FieldChange{Field: field, Old: oldVal, New: newVal})
		}
	}
	sort.Slice(changes, func(i, j int) bool { return changes[i].Field < changes[j].Field })
	return changes
}
