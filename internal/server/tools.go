package server

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/toolbox/internal/registry"
	"github.com/mesh-intelligence/toolbox/pkg/types"
)

// resolve finds the enabled tool behind a route or alias.
func (s *Server) resolve(route string) (*registry.Entry, error) {
	e, err := s.reg.Lookup(route)
	if err != nil {
		return nil, err
	}
	if !s.toggles.Enabled(e.Tool.ID) {
		return nil, fmt.Errorf("%w: %s", types.ErrToolDisabled, e.Tool.ID)
	}
	return e, nil
}

// enabledEntry finds an enabled tool by id.
func (s *Server) enabledEntry(id string) (*registry.Entry, error) {
	e, err := s.reg.Get(id)
	if err != nil {
		return nil, err
	}
	if !s.toggles.Enabled(id) {
		return nil, fmt.Errorf("%w: %s", types.ErrToolDisabled, id)
	}
	return e, nil
}

// run executes a widget on the request goroutine, records its outcome and
// logs failures: input and parse errors at debug, network errors at warn,
// anything else at error.
func (s *Server) run(ctx context.Context, e *registry.Entry, in types.Input) (types.Result, error) {
	start := time.Now()
	res, err := e.Widget.Run(ctx, in)
	elapsed := time.Since(start)
	metricToolDuration.WithLabelValues(e.Tool.ID).Observe(elapsed.Seconds())

	outcome := "ok"
	if err != nil {
		kind := types.KindOf(err)
		outcome = string(kind)
		fields := []zap.Field{zap.String("tool", e.Tool.ID), zap.Duration("duration", elapsed), zap.Error(err)}
		switch kind {
		case types.KindInput, types.KindParse:
			s.log.Debug("tool rejected input", fields...)
		case types.KindNetwork:
			s.log.Warn("tool fetch failed", fields...)
		default:
			outcome = "error"
			s.log.Error("tool failed", fields...)
		}
	}
	metricToolRuns.WithLabelValues(e.Tool.ID, outcome).Inc()
	return res, err
}

// enabledOnly drops disabled tools.
func (s *Server) enabledOnly(tools []types.Tool) []types.Tool {
	out := tools[:0:0]
	for _, t := range tools {
		if s.toggles.Enabled(t.ID) {
			out = append(out, t)
		}
	}
	return out
}
