// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package movie_test

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/fiver/internal/movie"
	"github.com/taibuivan/fiver/internal/platform/apperr"
	"github.com/taibuivan/fiver/pkg/jsonpatch"
	"github.com/taibuivan/fiver/pkg/pagination"
)

func newTestService() (*movie.Service, *movie.MemoryRepository) {
	repository := movie.NewMemoryRepository(movie.DemoMovies()...)
	return movie.NewService(repository, discardLogger), repository
}

func requireAppError(t *testing.T, err error, status int, code string) *apperr.AppError {
	t.Helper()

	appErr := apperr.As(err)
	require.NotNil(t, appErr, "expected *apperr.AppError, got %v", err)
	assert.Equal(t, status, appErr.HTTPStatus)
	assert.Equal(t, code, appErr.Code)
	return appErr
}

func mustPatch(t *testing.T, document string) jsonpatch.Patch {
	t.Helper()

	var patch jsonpatch.Patch
	require.NoError(t, json.Unmarshal([]byte(document), &patch))
	return patch
}

/*
TestService_ListMovies returns the requested slice with the full count.
*/
func TestService_ListMovies(t *testing.T) {
	service, _ := newTestService()

	page, err := service.ListMovies(context.Background(), pagination.Params{PageNumber: 3, PageSize: 4})
	require.NoError(t, err)

	assert.Equal(t, 15, page.TotalCount)
	require.Len(t, page.Items, 4)
	assert.Equal(t, 9, page.Items[0].ID)
	assert.Equal(t, 12, page.Items[3].ID)
}

/*
TestService_CreateMovie ignores the supplied id and normalizes text to NFC.
*/
func TestService_CreateMovie(t *testing.T) {
	service, repository := newTestService()

	created, err := service.CreateMovie(context.Background(), movie.Input{
		ID:          3,
		Title:       "Cafe\u0301 Society",
		ReleaseYear: 2016,
	})
	require.NoError(t, err)

	assert.Equal(t, 16, created.ID)
	assert.Equal(t, "Caf\u00e9 Society", created.Title)

	stored, err := repository.GetMovie(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Goldfinger", stored.Title)
}

/*
TestService_CreateMovie_Validation reports every failing field.
*/
func TestService_CreateMovie_Validation(t *testing.T) {
	service, _ := newTestService()

	_, err := service.CreateMovie(context.Background(), movie.Input{
		Title:       strings.Repeat("a", movie.MaxTitleLength+1),
		ReleaseYear: movie.MaxReleaseYear + 1,
		Summary:     strings.Repeat("é", movie.MaxSummaryLength+1),
	})

	appErr := requireAppError(t, err, http.StatusUnprocessableEntity, "VALIDATION_ERROR")

	fields := make([]string, 0, len(appErr.Details))
	for _, detail := range appErr.Details {
		fields = append(fields, detail.Field)
	}
	assert.ElementsMatch(t, []string{movie.FieldTitle, movie.FieldReleaseYear, movie.FieldSummary}, fields)
}

/*
TestService_UpdateMovie checks id agreement before existence and validation.
*/
func TestService_UpdateMovie(t *testing.T) {
	tests := []struct {
		name         string
		id           int
		input        movie.Input
		expectedCode string
	}{
		{"Mismatch", 1, movie.Input{ID: 2, Title: "X", ReleaseYear: 1962}, "BAD_REQUEST"},
		{"MismatchOnUnknown", 99, movie.Input{ID: 1, Title: "", ReleaseYear: 0}, "BAD_REQUEST"},
		{"Unknown", 99, movie.Input{ID: 99, Title: "", ReleaseYear: 0}, "NOT_FOUND"},
		{"Invalid", 1, movie.Input{ID: 1, Title: "Dr. No", ReleaseYear: 1800}, "VALIDATION_ERROR"},
		{"Valid", 1, movie.Input{ID: 1, Title: "Dr. No", ReleaseYear: 1962, Summary: "Jamaica."}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repository := newTestService()

			err := service.UpdateMovie(context.Background(), tt.id, tt.input)

			if tt.expectedCode == "" {
				require.NoError(t, err)
				stored, getErr := repository.GetMovie(context.Background(), tt.id)
				require.NoError(t, getErr)
				assert.Equal(t, tt.input.ToDomain(), stored)
				return
			}

			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, tt.expectedCode, appErr.Code)
		})
	}
}

/*
TestService_PatchMovie covers success, empty documents and every rejection.
*/
func TestService_PatchMovie(t *testing.T) {
	tests := []struct {
		name          string
		id            int
		patch         jsonpatch.Patch
		expectedCode  string
		expectedField string
		expected      movie.Movie
	}{
		{
			name:     "MoveSummaryIntoTitle",
			id:       7,
			patch:    mustPatch(t, `[{"op":"move","from":"/summary","path":"/title"},{"op":"add","path":"/summary","value":"Moved."}]`),
			expected: movie.Movie{ID: 7, Title: "A diamond smuggling ring leads Bond to a satellite laser.", ReleaseYear: 1971, Summary: "Moved."},
		},
		{
			name:     "EmptyDocument",
			id:       7,
			patch:    jsonpatch.Patch{},
			expected: movie.Movie{ID: 7, Title: "Diamonds Are Forever", ReleaseYear: 1971, Summary: "A diamond smuggling ring leads Bond to a satellite laser."},
		},
		{name: "NilDocument", id: 7, patch: nil, expectedCode: "BAD_REQUEST"},
		{name: "Unknown", id: 70, patch: jsonpatch.Patch{}, expectedCode: "NOT_FOUND"},
		{
			name:          "RemoveTitle",
			id:            7,
			patch:         mustPatch(t, `[{"op":"remove","path":"/title"}]`),
			expectedCode:  "VALIDATION_ERROR",
			expectedField: movie.FieldTitle,
		},
		{
			name:          "WrongValueType",
			id:            7,
			patch:         mustPatch(t, `[{"op":"replace","path":"/releaseYear","value":"1971"}]`),
			expectedCode:  "PATCH_ERROR",
			expectedField: "operations",
		},
		{
			name:          "UnsupportedOp",
			id:            7,
			patch:         mustPatch(t, `[{"op":"replace","path":"/title","value":"X"},{"op":"merge","path":"/title","value":"Y"}]`),
			expectedCode:  "PATCH_ERROR",
			expectedField: "operations[1]",
		},
		{
			name:          "ChangeID",
			id:            7,
			patch:         mustPatch(t, `[{"op":"replace","path":"/id","value":8}]`),
			expectedCode:  "PATCH_ERROR",
			expectedField: movie.FieldID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repository := newTestService()
			before, _ := repository.GetMovie(context.Background(), tt.id)

			err := service.PatchMovie(context.Background(), tt.id, tt.patch)

			stored, _ := repository.GetMovie(context.Background(), tt.id)
			if tt.expectedCode == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, stored)
				return
			}

			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, tt.expectedCode, appErr.Code)
			if tt.expectedField != "" {
				require.NotEmpty(t, appErr.Details)
				assert.Equal(t, tt.expectedField, appErr.Details[0].Field)
			}
			assert.Equal(t, before, stored)
		})
	}
}

/*
TestService_DeleteMovie removes the movie exactly once.
*/
func TestService_DeleteMovie(t *testing.T) {
	service, _ := newTestService()

	require.NoError(t, service.DeleteMovie(context.Background(), 15))

	_, err := service.GetMovie(context.Background(), 15)
	requireAppError(t, err, http.StatusNotFound, "NOT_FOUND")

	err = service.DeleteMovie(context.Background(), 15)
	requireAppError(t, err, http.StatusNotFound, "NOT_FOUND")
}
