// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/taibuivan/fiver/internal/platform/apperr"
	"github.com/taibuivan/fiver/internal/platform/constants"
	"github.com/taibuivan/fiver/internal/platform/respond"
)

// HealthCheck probes one external dependency.
type HealthCheck struct {
	// Name labels the dependency in the /ready payload (e.g. "postgres").
	Name string

	// Check returns nil when the dependency is usable.
	Check func(context context.Context) error
}

type checkResult struct {
	Name string `json:"name"`
	IsOK bool   `json:"ok"`
}

type healthHandler struct {
	checks []HealthCheck
	logger *slog.Logger
}

// NewHealthHandlers creates the /health and /ready http.HandlerFuncs.
// With no checks (in-memory store, no cache) the service is always ready.
func NewHealthHandlers(logger *slog.Logger, checks ...HealthCheck) (liveness, readiness http.HandlerFunc) {
	handler := &healthHandler{checks: checks, logger: logger}
	return handler.liveness, handler.readiness
}

// liveness handles GET /health (Liveness probe).
func (handler *healthHandler) liveness(writer http.ResponseWriter, _ *http.Request) {
	respond.OK(writer, map[string]string{constants.FieldStatus: "ok"})
}

// readiness handles GET /ready (Readiness probe).
//
// A failing dependency turns the response into a 503 SERVICE_UNAVAILABLE error
// with one detail per failed check.
func (handler *healthHandler) readiness(writer http.ResponseWriter, request *http.Request) {
	results := make([]checkResult, 0, len(handler.checks))
	var failures []apperr.FieldError

	for _, check := range handler.checks {
		result := checkResult{Name: check.Name, IsOK: true}

		if err := check.Check(request.Context()); err != nil {
			result.IsOK = false
			failures = append(failures, apperr.FieldError{Field: check.Name, Message: err.Error()})
			handler.logger.ErrorContext(request.Context(), "readiness_check_failed",
				slog.String("dependency", check.Name),
				slog.Any("error", err),
			)
		}

		results = append(results, result)
	}

	if len(failures) > 0 {
		respond.Error(writer, request, apperr.ServiceUnavailable("Service degraded", failures...))
		return
	}

	respond.OK(writer, map[string]any{
		constants.FieldStatus: "ready",
		constants.FieldChecks: results,
	})
}
