package dev

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/mesh-intelligence/toolbox/internal/widgets"
	"github.com/mesh-intelligence/toolbox/pkg/types"
)

const maxGenerated = 100

func generateCount(in types.Input) (int, error) {
	n, err := in.Int("count", 1)
	if err != nil {
		return 0, err
	}
	if n < 1 || n > maxGenerated {
		return 0, types.InputError("count must be between 1 and %d", maxGenerated)
	}
	return n, nil
}

// NewUUIDs returns n UUIDs of the given version ("4" or "7").
func NewUUIDs(version string, n int) ([]string, error) {
	out := make([]string, n)
	for i := range out {
		var (
			id  uuid.UUID
			err error
		)
		switch version {
		case "4":
			id, err = uuid.NewRandom()
		case "7":
			id, err = uuid.NewV7()
		default:
			return nil, types.InputError("unsupported UUID version %q", version)
		}
		if err != nil {
			return nil, err
		}
		out[i] = id.String()
	}
	return out, nil
}

// UUIDGenerator returns the uuid-generator widget.
func UUIDGenerator() types.Widget {
	return types.WidgetFunc(func(_ context.Context, in types.Input) (types.Result, error) {
		n, err := generateCount(in)
		if err != nil {
			return types.Result{}, err
		}
		version, err := widgets.OneOf(in, "version", "4", "4", "7")
		if err != nil {
			return types.Result{}, err
		}
		ids, err := NewUUIDs(version, n)
		if err != nil {
			return types.Result{}, err
		}
		for i, id := range ids {
			if in.Bool("no_hyphens") {
				id = strings.ReplaceAll(id, "-", "")
			}
			if in.Bool("uppercase") {
				id = strings.ToUpper(id)
			}
			ids[i] = id
		}
		res := types.Result{Output: strings.Join(ids, "\n")}
		res.Add("Version", "v"+version)
		return res, nil
	})
}

// ULIDGenerator returns the ulid-generator widget. ULIDs from one run are
// monotonic.
func ULIDGenerator() types.Widget {
	return types.WidgetFunc(func(_ context.Context, in types.Input) (types.Result, error) {
		n, err := generateCount(in)
		if err != nil {
			return types.Result{}, err
		}
		ids := make([]string, n)
		for i := range ids {
			ids[i] = ulid.Make().String()
		}
		res := types.Result{Output: strings.Join(ids, "\n")}
		if first, err := ulid.Parse(ids[0]); err == nil {
			res.Add("Timestamp", ulid.Time(first.Time()).UTC().Format(time.RFC3339Nano))
		}
		return res, nil
	})
}
