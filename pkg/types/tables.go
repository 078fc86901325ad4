package types

import (
	"encoding/json"
	"fmt"
)

// Standard table names for Store.GetTable.
const (
	NotesTable       = "notes"
	TasksTable       = "tasks"
	PreferencesTable = "preferences"
)

// StandardTableNames lists all standard table names for enumeration.
var StandardTableNames = []string{
	NotesTable,
	TasksTable,
	PreferencesTable,
}

// DecodeEntity unmarshals JSON into the entity struct stored by table.
func DecodeEntity(table string, data []byte) (any, error) {
	var e any
	switch table {
	case NotesTable:
		e = &Note{}
	case TasksTable:
		e = &Task{}
	case PreferencesTable:
		e = &Preference{}
	default:
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, table)
	}
	if err := json.Unmarshal(data, e); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	return e, nil
}

// ParseFilter turns textual key=value pairs into a Table.Fetch filter.
// "true" and "false" become booleans; everything else stays a string.
func ParseFilter(pairs map[string]string) map[string]any {
	filter := make(map[string]any, len(pairs))
	for k, v := range pairs {
		switch v {
		case "true":
			filter[k] = true
		case "false":
			filter[k] = false
		default:
			filter[k] = v
		}
	}
	return filter
}
