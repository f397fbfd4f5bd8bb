// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package movie

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/taibuivan/fiver/internal/platform/apperr"
	"github.com/taibuivan/fiver/internal/platform/metrics"
	"github.com/taibuivan/fiver/internal/platform/validate"
	"github.com/taibuivan/fiver/pkg/jsonpatch"
	"github.com/taibuivan/fiver/pkg/pagination"
)

// # Service Layer

// Service orchestrates business rules for the movie catalogue.
//
// No write reaches the [Repository] unless the resulting movie passed
// validation, so a failed request never leaves a movie half-updated.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new movie [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// # Queries

/*
ListMovies retrieves one page of the catalogue.

Parameters:
  - context: context.Context
  - params: pagination.Params (already normalized)

Returns:
  - pagination.Page[Movie]: Items of the page plus the total count
  - error: Retrieval errors
*/
func (service *Service) ListMovies(context context.Context, params pagination.Params) (pagination.Page[Movie], error) {
	return service.repo.ListMovies(context, params)
}

/*
GetMovie retrieves a movie by its identifier.

Returns:
  - Movie: The stored movie
  - error: NOT_FOUND if missing
*/
func (service *Service) GetMovie(context context.Context, id int) (Movie, error) {
	return service.repo.GetMovie(context, id)
}

// # Commands

/*
CreateMovie validates input and stores it as a new movie. Any id in input is
ignored; the store assigns one.

Returns:
  - Movie: The stored movie, with its new ID
  - error: VALIDATION_ERROR or persistence failures
*/
func (service *Service) CreateMovie(context context.Context, input Input) (Movie, error) {
	input = input.normalized()
	if err := validateInput(input); err != nil {
		return Movie{}, err
	}

	movie := input.ToDomain()
	movie.ID = 0

	if err := service.repo.CreateMovie(context, &movie); err != nil {
		return Movie{}, err
	}

	service.logger.Info("movie_created",
		slog.Int("movie_id", movie.ID),
		slog.String("title", movie.Title),
	)

	return movie, nil
}

/*
UpdateMovie replaces every editable field of the movie identified by id.

Checks run in order: the body id must equal id (BAD_REQUEST), the movie must
exist (NOT_FOUND), the input must be valid (VALIDATION_ERROR).
*/
func (service *Service) UpdateMovie(context context.Context, id int, input Input) error {
	if input.ID != id {
		return apperr.BadRequest(fmt.Sprintf("Body id %d does not match path id %d", input.ID, id))
	}

	exists, err := service.repo.MovieExists(context, id)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound(resourceName)
	}

	input = input.normalized()
	if err := validateInput(input); err != nil {
		return err
	}

	if err := service.repo.UpdateMovie(context, input.ToDomain()); err != nil {
		return err
	}

	service.logger.Info("movie_updated", slog.Int("movie_id", id))

	return nil
}

/*
PatchMovie applies a JSON Patch document to the editable projection of the
movie identified by id, re-validates the result and stores it.

Errors:
  - BAD_REQUEST: patch is nil (no document was sent)
  - NOT_FOUND: unknown id
  - PATCH_ERROR: an operation cannot be applied, the result does not fit the
    projection, or the patch changes the id
  - VALIDATION_ERROR: the patched movie breaks a rule
*/
func (service *Service) PatchMovie(context context.Context, id int, patch jsonpatch.Patch) error {
	if patch == nil {
		return apperr.BadRequest("Patch document is required")
	}

	current, err := service.repo.GetMovie(context, id)
	if err != nil {
		return err
	}

	patched, err := jsonpatch.ApplyTo(ToInput(current), patch)
	if err != nil {
		metrics.PatchesTotal.WithLabelValues(metrics.PatchRejected).Inc()
		return patchError(err)
	}

	if patched.ID != id {
		metrics.PatchesTotal.WithLabelValues(metrics.PatchRejected).Inc()
		return apperr.PatchError("Patch must not change the movie id",
			apperr.FieldError{Field: FieldID, Message: "Identifier is immutable"})
	}

	patched = patched.normalized()
	if err := validateInput(patched); err != nil {
		metrics.PatchesTotal.WithLabelValues(metrics.PatchInvalid).Inc()
		return err
	}

	if err := service.repo.UpdateMovie(context, patched.ToDomain()); err != nil {
		return err
	}

	metrics.PatchesTotal.WithLabelValues(metrics.PatchApplied).Inc()
	service.logger.Info("movie_patched",
		slog.Int("movie_id", id),
		slog.Int("operations", len(patch)),
	)

	return nil
}

/*
DeleteMovie removes the movie identified by id.

Returns:
  - error: NOT_FOUND if missing
*/
func (service *Service) DeleteMovie(context context.Context, id int) error {
	if err := service.repo.DeleteMovie(context, id); err != nil {
		return err
	}

	service.logger.Info("movie_deleted", slog.Int("movie_id", id))

	return nil
}

// # Validation

// validateInput applies the rules shared by create, update and patch.
func validateInput(input Input) error {
	validator := &validate.Validator{}

	validator.
		Required(FieldTitle, input.Title).
		MaxLen(FieldTitle, input.Title, MaxTitleLength).
		Range(FieldReleaseYear, input.ReleaseYear, MinReleaseYear, MaxReleaseYear).
		MaxLen(FieldSummary, input.Summary, MaxSummaryLength)

	return validator.Err()
}

// patchError maps an applier failure onto a PATCH_ERROR.
func patchError(err error) error {
	var applyErr *jsonpatch.Error
	if !errors.As(err, &applyErr) {
		return apperr.Internal(err)
	}

	field := "operations"
	if applyErr.Index >= 0 {
		field = fmt.Sprintf("operations[%d]", applyErr.Index)
	}

	return apperr.PatchError("Patch could not be applied",
		apperr.FieldError{Field: field, Message: applyErr.Reason})
}
