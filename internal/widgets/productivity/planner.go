package productivity

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mesh-intelligence/toolbox/internal/widgets"
	"github.com/mesh-intelligence/toolbox/pkg/types"
)

// Planner is the planner widget.
type Planner struct {
	Store Tables
	Now   func() time.Time
}

// NewPlanner creates a planner widget over store.
func NewPlanner(store Tables) *Planner {
	return &Planner{Store: store, Now: time.Now}
}

// Run implements types.Widget. The result lists open tasks first, by due
// date, then completed tasks.
func (p *Planner) Run(_ context.Context, in types.Input) (types.Result, error) {
	action, err := widgets.OneOf(in, "action", ActionList, ActionList, ActionAdd, ActionToggle, ActionDelete)
	if err != nil {
		return types.Result{}, err
	}
	table, err := p.Store.GetTable(types.TasksTable)
	if err != nil {
		return types.Result{}, fmt.Errorf("open tasks: %w", err)
	}
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}

	status := ""
	switch action {
	case ActionAdd:
		title, err := in.Require("title")
		if err != nil {
			return types.Result{}, err
		}
		task := &types.Task{Title: title}
		if v := in.Get("due"); v != "" {
			due, err := time.Parse(time.DateOnly, v)
			if err != nil {
				return types.Result{}, types.InputError("due must be a date (YYYY-MM-DD)")
			}
			task.Due = due
		}
		if _, err := table.Set("", task); err != nil {
			return types.Result{}, err
		}
		status = "Added"
	case ActionToggle:
		id, err := in.Require("id")
		if err != nil {
			return types.Result{}, err
		}
		cur, err := table.Get(id)
		if err != nil {
			return types.Result{}, err
		}
		task := cur.(*types.Task)
		task.Toggle(now())
		if _, err := table.Set(id, task); err != nil {
			return types.Result{}, err
		}
		status = "Updated"
	case ActionDelete:
		id, err := in.Require("id")
		if err != nil {
			return types.Result{}, err
		}
		if err := table.Delete(id); err != nil {
			return types.Result{}, err
		}
		status = "Deleted"
	}

	rows, err := table.Fetch(nil)
	if err != nil {
		return types.Result{}, err
	}
	today := now().UTC().Format(time.DateOnly)
	res := types.Result{Status: status}
	lines := make([]string, 0, len(rows))
	open, overdue := 0, 0
	for _, r := range rows {
		task := r.(*types.Task)
		lines = append(lines, formatTask(task))
		res.Add(task.Title, task.TaskID)
		if !task.Done {
			open++
			if task.HasDue() && task.Due.Format(time.DateOnly) < today {
				overdue++
			}
		}
	}
	res.Output = strings.Join(lines, "\n")
	if len(rows) == 0 {
		res.Output = "No tasks yet"
	}
	res.Add("Open", strconv.Itoa(open)).Add("Overdue", strconv.Itoa(overdue))
	return res, nil
}

func formatTask(t *types.Task) string {
	box := "[ ]"
	if t.Done {
		box = "[x]"
	}
	s := box + " " + t.Title
	if t.HasDue() {
		s += " (due " + t.Due.Format(time.DateOnly) + ")"
	}
	return s
}
