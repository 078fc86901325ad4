package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mesh-intelligence/toolbox/pkg/types"
)

// errorBody is the JSON shape of every API error.
type errorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, kind, message string) {
	writeJSON(w, status, errorBody{Kind: kind, Message: message})
}

// writeErr classifies err and writes it as an API error.
func writeErr(w http.ResponseWriter, err error) {
	status, kind, msg := classify(err)
	writeError(w, status, kind, msg)
}

// classify maps an error onto an HTTP status, an error kind and the
// message shown to the client. Unclassified errors hide their text.
func classify(err error) (int, string, string) {
	switch {
	case errors.Is(err, types.ErrUnknownTool), errors.Is(err, types.ErrToolDisabled),
		errors.Is(err, types.ErrTableNotFound), errors.Is(err, types.ErrNotFound):
		return http.StatusNotFound, "not_found", err.Error()
	case errors.Is(err, types.ErrStoreDetached):
		return http.StatusServiceUnavailable, "unavailable", "storage is not available"
	case errors.Is(err, types.ErrInvalidFilter):
		return http.StatusBadRequest, string(types.KindInput), err.Error()
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		if types.KindOf(err) == "" {
			return http.StatusServiceUnavailable, "canceled", "request canceled"
		}
	}

	var te *types.ToolError
	msg := err.Error()
	if errors.As(err, &te) {
		msg = te.Message
	}
	switch types.KindOf(err) {
	case types.KindInput:
		return http.StatusBadRequest, string(types.KindInput), msg
	case types.KindParse:
		return http.StatusUnprocessableEntity, string(types.KindParse), msg
	case types.KindNetwork:
		return http.StatusBadGateway, string(types.KindNetwork), msg
	}
	return http.StatusInternalServerError, "internal", "internal error"
}
