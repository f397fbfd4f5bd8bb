// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package movie

import (
	"context"

	"github.com/taibuivan/fiver/pkg/pagination"
)

// Repository defines the data access contract for movies.
//
// Implementations must be safe for concurrent use. A GetMovie following a
// successful CreateMovie or UpdateMovie of the same id observes the written values.
//
// Errors: GetMovie, UpdateMovie and DeleteMovie return a NOT_FOUND
// [apperr.AppError] for unknown ids.
type Repository interface {
	// ListMovies returns one page of movies ordered by id. A page past the
	// last one yields no items but still reports the total count.
	ListMovies(context context.Context, params pagination.Params) (pagination.Page[Movie], error)

	GetMovie(context context.Context, id int) (Movie, error)
	MovieExists(context context.Context, id int) (bool, error)

	// CreateMovie stores movie and assigns its ID.
	CreateMovie(context context.Context, movie *Movie) error

	// UpdateMovie overwrites every editable field of the movie with movie.ID.
	UpdateMovie(context context.Context, movie Movie) error

	DeleteMovie(context context.Context, id int) error
}
