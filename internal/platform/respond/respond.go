// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package respond provides HTTP response helpers used by all API handlers.
//
// # Architecture
//
// This package centralizes the presentation logic for HTTP responses.
// Infrastructure endpoints use the {data} envelope; resource endpoints write a
// negotiated representation as-is through [Representation]. Errors always use
// the same {error, code, details} shape.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/taibuivan/fiver/internal/platform/apperr"
	"github.com/taibuivan/fiver/internal/platform/constants"
	"github.com/taibuivan/fiver/internal/platform/ctxutil"
)

// jsonContentType is the default response media type.
const jsonContentType = "application/json; charset=utf-8"

// SuccessEnvelope is the JSON envelope for infrastructure responses.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// ErrorEnvelope is the JSON envelope for error responses.
type ErrorEnvelope struct {
	Error   string              `json:"error"`
	Code    string              `json:"code"`
	Details []apperr.FieldError `json:"details,omitempty"`
}

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload any) {
	Representation(writer, statusCode, jsonContentType, payload)
}

// Representation writes payload as JSON under an explicit media type.
//
// The payload is encoded before the status line is written, so an encoding
// failure still produces a well-formed 500 instead of a truncated body.
func Representation(writer http.ResponseWriter, statusCode int, contentType string, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		slog.Default().Error("response_encoding_failed", slog.Any("error", err))
		writer.Header().Set(constants.HeaderContentType, jsonContentType)
		writer.WriteHeader(http.StatusInternalServerError)
		_, _ = writer.Write([]byte(`{"error":"An unexpected error occurred","code":"INTERNAL_ERROR"}` + "\n"))
		return
	}

	writer.Header().Set(constants.HeaderContentType, contentType)
	writer.WriteHeader(statusCode)
	_, _ = writer.Write(append(body, '\n'))
}

// OK writes a 200 OK response with data wrapped in the standard success envelope.
func OK(writer http.ResponseWriter, data any) {
	JSON(writer, http.StatusOK, SuccessEnvelope{Data: data})
}

// NoContent writes a 204 No Content response.
func NoContent(writer http.ResponseWriter) {
	writer.WriteHeader(http.StatusNoContent)
}

// Error converts any Go error into a standardized JSON API error response.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	logger := ctxutil.GetLogger(request.Context())

	appError := apperr.As(err)
	if appError == nil {
		// Unexpected internal error: log full details but hide them from the client.
		logger.ErrorContext(request.Context(), "unhandled_error_swallowed",
			slog.String("error", err.Error()),
			slog.String("request_id", ctxutil.GetRequestID(request.Context())),
		)
		appError = apperr.Internal(err)
	}

	// Always log 5xx errors as they indicate server-side issues.
	if appError.HTTPStatus >= 500 {
		logger.ErrorContext(request.Context(), "api_server_error",
			slog.String("code", appError.Code),
			slog.String("request_id", ctxutil.GetRequestID(request.Context())),
			slog.Any("cause", appError.Cause),
		)
	}

	JSON(writer, appError.HTTPStatus, ErrorEnvelope{
		Error:   appError.Message,
		Code:    appError.Code,
		Details: appError.Details,
	})
}
