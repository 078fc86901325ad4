// Package productivity implements the store-backed tools: notes and the
// planner. They are the only widgets with persistent state; each reads and
// writes its own table and nothing else.
package productivity

import "github.com/mesh-intelligence/toolbox/pkg/types"

// Tables is the part of a types.Store the tools need.
type Tables interface {
	GetTable(name string) (types.Table, error)
}

// Actions shared by the notes and planner tools.
const (
	ActionList   = "list"
	ActionAdd    = "add"
	ActionUpdate = "update"
	ActionToggle = "toggle"
	ActionDelete = "delete"
)
