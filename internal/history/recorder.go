// Package history appends per-field audit rows for every mutation of a
// tracked record. One write path covers both interactive edits and bulk
// imports: callers diff attribute maps, then Record the changes inside the
// same transaction as the entity write. A failed history insert fails the
// whole transaction.
package history

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// systemActorID is attributed to history rows when no acting user is known,
// e.g. scheduled imports. Overridable at startup via SetSystemActor.
var systemActorID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

// SetSystemActor overrides the fallback actor recorded when none is supplied.
func SetSystemActor(id uuid.UUID) {
	systemActorID = id
}

// Change captures one field's before/after pair.
type Change struct {
	Field string
	Old   *string
	New   *string
}

// Record appends one audit row per change to the given history table within
// the caller's transaction. actorID may be nil; the system actor is recorded
// in that case.
func Record(tx *gorm.DB, table, fkColumn string, entityID uuid.UUID, actorID *uuid.UUID, changeType string, changes []Change) error {
	if len(changes) == 0 {
		return nil
	}
	actor := systemActorID
	if actorID != nil {
		actor = *actorID
	}
	now := time.Now().UTC()
	rows := make([]map[string]interface{}, 0, len(changes))
	for _, c := range changes {
		rows = append(rows, map[string]interface{}{
			"id":          uuid.New(),
			fkColumn:      entityID,
			"field_name":  c.Field,
			"old_value":   c.Old,
			"new_value":   c.New,
			"user_id":     actor,
			"change_type": changeType,
			"created_at":  now,
			"updated_at":  now,
		})
	}
	if err := tx.Table(table).Create(&rows).Error; err != nil {
		return fmt.Errorf("record %s history: %w", changeType, err)
	}
	return nil
}

// ValueOf stringifies an attribute value for history storage. nil input
// (including typed nil pointers) yields nil.
func ValueOf(v any) *string {
	switch val := v.(type) {
	case nil:
		return nil
	case *string:
		if val == nil {
			return nil
		}
		return strPtr(*val)
	case *float64:
		if val == nil {
			return nil
		}
		return strPtr(fmt.Sprintf("%v", *val))
	case *int:
		if val == nil {
			return nil
		}
		return strPtr(fmt.Sprintf("%d", *val))
	case *uuid.UUID:
		if val == nil {
			return nil
		}
		return strPtr(val.String())
	case *time.Time:
		if val == nil {
			return nil
		}
		return strPtr(val.UTC().Format("2006-01-02 15:04:05"))
	case time.Time:
		return strPtr(val.UTC().Format("2006-01-02 15:04:05"))
	case string:
		return strPtr(val)
	default:
		return strPtr(fmt.Sprintf("%v", val))
	}
}

// CreationChanges builds one change per attribute with no old value.
func CreationChanges(attrs map[string]any) []Change {
	changes := make([]Change, 0, len(attrs))
	for _, field := range sortedKeys(attrs) {
		changes = append(changes, Change{Field: field, New: ValueOf(attrs[field])})
	}
	return changes
}

// DiffChanges builds one change per attribute whose stringified value differs
// between the before and after maps. Unchanged attributes produce nothing.
func DiffChanges(before, after map[string]any) []Change {
	changes := make([]Change, 0)
	for _, field := range sortedKeys(after) {
		oldV := ValueOf(before[field])
		newV := ValueOf(after[field])
		if equalValue(oldV, newV) {
			continue
		}
		changes = append(changes, Change{Field: field, Old: oldV, New: newV})
	}
	return changes
}

// DeletionChanges builds one change per attribute with no new value.
func DeletionChanges(attrs map[string]any) []Change {
	changes := make([]Change, 0, len(attrs))
	for _, field := range sortedKeys(attrs) {
		changes = append(changes, Change{Field: field, Old: ValueOf(attrs[field])})
	}
	return changes
}

func equalValue(a, b *string) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func strPtr(s string) *string {
	return &s
}
