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

// Notes is the notes widget.
type Notes struct {
	Store Tables
}

// NewNotes creates a notes widget over store.
func NewNotes(store Tables) *Notes {
	return &Notes{Store: store}
}

// Run implements types.Widget. The result always lists the notes after the
// action is applied, newest first.
func (n *Notes) Run(_ context.Context, in types.Input) (types.Result, error) {
	action, err := widgets.OneOf(in, "action", ActionList, ActionList, ActionAdd, ActionUpdate, ActionDelete)
	if err != nil {
		return types.Result{}, err
	}
	table, err := n.Store.GetTable(types.NotesTable)
	if err != nil {
		return types.Result{}, fmt.Errorf("open notes: %w", err)
	}

	status := ""
	switch action {
	case ActionAdd:
		title, err := in.Require("title")
		if err != nil {
			return types.Result{}, err
		}
		if _, err := table.Set("", &types.Note{Title: title, Body: in.Raw("body")}); err != nil {
			return types.Result{}, err
		}
		status = "Saved"
	case ActionUpdate:
		id, err := in.Require("id")
		if err != nil {
			return types.Result{}, err
		}
		cur, err := table.Get(id)
		if err != nil {
			return types.Result{}, err
		}
		note := cur.(*types.Note)
		if v := in.Get("title"); v != "" {
			note.Title = v
		}
		if _, ok := in.Values["body"]; ok {
			note.Body = in.Raw("body")
		}
		if _, err := table.Set(id, note); err != nil {
			return types.Result{}, err
		}
		status = "Saved"
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
	res := types.Result{Status: status}
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		note := r.(*types.Note)
		lines = append(lines, note.Title+" ("+note.UpdatedAt.Format(time.DateTime)+")")
		res.Add(note.Title, note.NoteID)
	}
	res.Output = strings.Join(lines, "\n")
	if len(rows) == 0 {
		res.Output = "No notes yet"
	}
	res.Add("Count", strconv.Itoa(len(rows)))
	return res, nil
}
