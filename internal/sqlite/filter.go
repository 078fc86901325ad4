package sqlite

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/toolbox/pkg/types"
)

// buildWhere turns an equality filter into a WHERE clause over the allowed
// columns. Keys are column names. Values must be strings, bools or numbers.
func buildWhere(filter map[string]any, allowed []string) (string, []any, error) {
	if len(filter) == 0 {
		return "", nil, nil
	}

	known := make(map[string]bool, len(allowed))
	for _, c := range allowed {
		known[c] = true
	}

	// Iterate allowed columns so the clause order is stable.
	var clauses []string
	var args []any
	for _, col := range allowed {
		val, ok := filter[col]
		if !ok {
			continue
		}
		switch v := val.(type) {
		case string:
			args = append(args, v)
		case bool:
			if v {
				args = append(args, 1)
			} else {
				args = append(args, 0)
			}
		case int:
			args = append(args, int64(v))
		case int64:
			args = append(args, v)
		case float64:
			args = append(args, v)
		default:
			return "", nil, fmt.Errorf("filter %s: %w", col, types.ErrInvalidFilter)
		}
		clauses = append(clauses, col+" = ?")
	}
	for key := range filter {
		if !known[key] {
			return "", nil, fmt.Errorf("filter %s: %w", key, types.ErrInvalidFilter)
		}
	}

	return " WHERE " + strings.Join(clauses, " AND "), args, nil
}
