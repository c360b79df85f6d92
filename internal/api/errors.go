// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/apex/log"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/staranto/talksgo/internal/talk"
	"github.com/staranto/talksgo/internal/upstream"
)

// ErrNoTalks is returned by Random when there is nothing to choose from.
var ErrNoTalks = errors.New("no talks available")

// Error is the JSON error envelope.
type Error struct {
	Code      string
	Message   string
	Status    int
	RequestID string
}

func NewError(code, message string, status int) Error {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return Error{
		Code:    sanitize(code, 80),
		Message: sanitize(message, 512),
		Status:  status,
	}
}

// WriteError writes e, filling the request id from ctx.
func WriteError(ctx context.Context, w http.ResponseWriter, e Error) {
	if e.RequestID == "" {
		e.RequestID = sanitize(middleware.GetReqID(ctx), 80)
	}

	payload := map[string]any{
		"error":   e.Code,
		"message": e.Message,
		"status":  e.Status,
	}
	if e.RequestID != "" {
		payload["request_id"] = e.RequestID
	}

	writeJSON(w, e.Status, payload)
}

// classify maps a service error onto the envelope.
func classify(err error) Error {
	switch {
	case errors.Is(err, upstream.ErrNotFound), errors.Is(err, ErrNoTalks):
		return NewError("not_found", err.Error(), http.StatusNotFound)
	case errors.Is(err, talk.ErrDecode):
		return NewError("bad_upstream_payload", err.Error(), http.StatusBadGateway)
	case errors.Is(err, context.DeadlineExceeded):
		return NewError("upstream_timeout", err.Error(), http.StatusGatewayTimeout)
	default:
		return NewError("upstream_unavailable", err.Error(), http.StatusBadGateway)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Warn("failed to write response")
	}
}

func sanitize(value string, limit int) string {
	value = strings.ReplaceAll(value, "\n", " ")
	value = strings.ReplaceAll(value, "\r", " ")
	value = strings.TrimSpace(value)
	if len(value) <= limit {
		return value
	}
	for limit > 0 && !utf8.RuneStart(value[limit]) {
		limit--
	}
	return value[:limit]
}
