// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/fiver/internal/platform/ctxutil"
	"github.com/taibuivan/fiver/internal/platform/middleware"
	"github.com/taibuivan/fiver/pkg/hateoas"
)

type environment bool

func (development environment) IsDevelopment() bool { return bool(development) }

var okHandler = http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
	writer.WriteHeader(http.StatusOK)
})

/*
TestRequestID keeps a client-supplied ID and generates one otherwise.
*/
func TestRequestID(t *testing.T) {
	var seen string
	handler := middleware.RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, request *http.Request) {
		seen = ctxutil.GetRequestID(request.Context())
	}))

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/movies", nil)
	request.Header.Set("X-Request-ID", "abc-123")
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", recorder.Header().Get("X-Request-ID"))

	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/movies", nil))

	assert.Len(t, seen, 36)
	assert.Equal(t, seen, recorder.Header().Get("X-Request-ID"))
}

/*
TestNegotiate stores the selected mode and marks the response as varying on Accept.
*/
func TestNegotiate(t *testing.T) {
	negotiator := hateoas.NewNegotiator("fiver")

	tests := []struct {
		accept   string
		expected hateoas.RenderMode
	}{
		{"application/vnd.fiver.hateoas+json", hateoas.Linked},
		{"application/json", hateoas.Flat},
		{"", hateoas.Flat},
	}

	for _, tt := range tests {
		t.Run(tt.expected.String()+"_"+tt.accept, func(t *testing.T) {
			var mode hateoas.RenderMode
			handler := middleware.Negotiate(negotiator)(http.HandlerFunc(func(_ http.ResponseWriter, request *http.Request) {
				mode = ctxutil.GetRenderMode(request.Context())
			}))

			recorder := httptest.NewRecorder()
			request := httptest.NewRequest(http.MethodGet, "/movies", nil)
			if tt.accept != "" {
				request.Header.Set("Accept", tt.accept)
			}
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.expected, mode)
			assert.Equal(t, "Accept", recorder.Header().Get("Vary"))
		})
	}
}

/*
TestRequireContentType rejects foreign media types and lets absent ones through.
*/
func TestRequireContentType(t *testing.T) {
	handler := middleware.RequireContentType("application/json", "application/vnd.fiver.movie.input+json")(okHandler)

	tests := []struct {
		name        string
		contentType string
		status      int
	}{
		{"json", "application/json", http.StatusOK},
		{"json_with_charset", "application/json; charset=utf-8", http.StatusOK},
		{"custom_input", "application/vnd.fiver.movie.input+json", http.StatusOK},
		{"absent", "", http.StatusOK},
		{"form", "application/x-www-form-urlencoded", http.StatusUnsupportedMediaType},
		{"xml", "application/xml", http.StatusUnsupportedMediaType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodPost, "/movies", strings.NewReader(`{}`))
			if tt.contentType != "" {
				request.Header.Set("Content-Type", tt.contentType)
			}

			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.status, recorder.Code)
			if tt.status == http.StatusUnsupportedMediaType {
				assert.Contains(t, recorder.Body.String(), "UNSUPPORTED_MEDIA_TYPE")
			}
		})
	}
}

/*
TestCORS exposes the pagination and location headers to allowed origins only.
*/
func TestCORS(t *testing.T) {
	handler := middleware.CORS(environment(false), []string{"https://app.fiver.dev"})(okHandler)

	request := httptest.NewRequest(http.MethodGet, "/movies", nil)
	request.Header.Set("Origin", "https://app.fiver.dev")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, "https://app.fiver.dev", recorder.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, recorder.Header().Get("Access-Control-Expose-Headers"), "X-Pagination")
	assert.Contains(t, recorder.Header().Get("Access-Control-Expose-Headers"), "Location")

	request = httptest.NewRequest(http.MethodGet, "/movies", nil)
	request.Header.Set("Origin", "https://evil.example")
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
}

/*
TestPanicRecovery converts a panic into a generic 500.
*/
func TestPanicRecovery(t *testing.T) {
	handler := middleware.PanicRecovery(slog.Default())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	recorder := httptest.NewRecorder()
	require.NotPanics(t, func() {
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/movies", nil))
	})

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.JSONEq(t, `{"code":"INTERNAL_ERROR","error":"An unexpected error occurred"}`, recorder.Body.String())
}

/*
TestRealIP prefers proxy headers over the socket address.
*/
func TestRealIP(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/movies", nil)
	request.RemoteAddr = "10.0.0.1:5555"
	assert.Equal(t, "10.0.0.1", middleware.RealIP(request))

	request.Header.Set("X-Forwarded-For", "203.0.113.5, 10.0.0.1")
	assert.Equal(t, "203.0.113.5", middleware.RealIP(request))

	request.Header.Set("X-Real-IP", "198.51.100.7")
	assert.Equal(t, "198.51.100.7", middleware.RealIP(request))
}
