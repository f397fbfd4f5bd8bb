// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package movie

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/fiver/internal/platform/apperr"
	"github.com/taibuivan/fiver/internal/platform/database/schema"
	"github.com/taibuivan/fiver/internal/platform/dberr"
	"github.com/taibuivan/fiver/pkg/pagination"
)

// PostgresRepository is the durable [Repository] backed by catalog.movie.
type PostgresRepository struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

// NewPostgresRepository creates a repository on top of db.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// ListMovies implements [Repository].
func (repository *PostgresRepository) ListMovies(context context.Context, params pagination.Params) (pagination.Page[Movie], error) {
	if !params.Valid() {
		return pagination.Page[Movie]{}, pagination.ErrInvalidParams
	}

	table := schema.CatalogMovie

	// 1. Total count for the page descriptor
	countSQL, countArgs, err := repository.sb.Select("COUNT(*)").From(table.Table).ToSql()
	if err != nil {
		return pagination.Page[Movie]{}, apperr.Internal(fmt.Errorf("build count query: %w", err))
	}

	var total int
	if err := repository.db.QueryRow(context, countSQL, countArgs...).Scan(&total); err != nil {
		return pagination.Page[Movie]{}, dberr.Wrap(err, resourceName, "count_movies")
	}

	page := pagination.Page[Movie]{Items: []Movie{}, TotalCount: total, Params: params}
	if params.Offset() >= total {
		return page, nil
	}

	// 2. The requested slice
	dataSQL, dataArgs, err := repository.sb.
		Select(table.Columns()...).
		From(table.Table).
		OrderBy(table.ID + " ASC").
		Limit(uint64(params.PageSize)).
		Offset(uint64(params.Offset())).
		ToSql()
	if err != nil {
		return pagination.Page[Movie]{}, apperr.Internal(fmt.Errorf("build list query: %w", err))
	}

	rows, err := repository.db.Query(context, dataSQL, dataArgs...)
	if err != nil {
		return pagination.Page[Movie]{}, dberr.Wrap(err, resourceName, "list_movies")
	}
	defer rows.Close()

	for rows.Next() {
		var movie Movie
		if err := rows.Scan(&movie.ID, &movie.Title, &movie.ReleaseYear, &movie.Summary); err != nil {
			return pagination.Page[Movie]{}, dberr.Wrap(err, resourceName, "scan_movie")
		}
		page.Items = append(page.Items, movie)
	}

	if err := rows.Err(); err != nil {
		return pagination.Page[Movie]{}, dberr.Wrap(err, resourceName, "iterate_movies")
	}

	return page, nil
}

// GetMovie implements [Repository].
func (repository *PostgresRepository) GetMovie(context context.Context, id int) (Movie, error) {
	table := schema.CatalogMovie

	query, args, err := repository.sb.
		Select(table.Columns()...).
		From(table.Table).
		Where(sq.Eq{table.ID: id}).
		ToSql()
	if err != nil {
		return Movie{}, apperr.Internal(fmt.Errorf("build get query: %w", err))
	}

	var movie Movie
	err = repository.db.QueryRow(context, query, args...).Scan(&movie.ID, &movie.Title, &movie.ReleaseYear, &movie.Summary)
	if err != nil {
		return Movie{}, dberr.Wrap(err, resourceName, "get_movie")
	}

	return movie, nil
}

// MovieExists implements [Repository].
func (repository *PostgresRepository) MovieExists(context context.Context, id int) (bool, error) {
	table := schema.CatalogMovie

	query, args, err := repository.sb.
		Select("1").
		From(table.Table).
		Where(sq.Eq{table.ID: id}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, apperr.Internal(fmt.Errorf("build exists query: %w", err))
	}

	var exists bool
	if err := repository.db.QueryRow(context, query, args...).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, resourceName, "movie_exists")
	}

	return exists, nil
}

// CreateMovie implements [Repository].
func (repository *PostgresRepository) CreateMovie(context context.Context, movie *Movie) error {
	table := schema.CatalogMovie

	query, args, err := repository.sb.
		Insert(table.Table).
		Columns(table.Title, table.ReleaseYear, table.Summary).
		Values(movie.Title, movie.ReleaseYear, movie.Summary).
		Suffix("RETURNING " + table.ID).
		ToSql()
	if err != nil {
		return apperr.Internal(fmt.Errorf("build insert query: %w", err))
	}

	if err := repository.db.QueryRow(context, query, args...).Scan(&movie.ID); err != nil {
		return dberr.Wrap(err, resourceName, "create_movie")
	}

	return nil
}

// UpdateMovie implements [Repository].
func (repository *PostgresRepository) UpdateMovie(context context.Context, movie Movie) error {
	table := schema.CatalogMovie

	query, args, err := repository.sb.
		Update(table.Table).
		Set(table.Title, movie.Title).
		Set(table.ReleaseYear, movie.ReleaseYear).
		Set(table.Summary, movie.Summary).
		Set(table.UpdatedAt, sq.Expr("now()")).
		Where(sq.Eq{table.ID: movie.ID}).
		ToSql()
	if err != nil {
		return apperr.Internal(fmt.Errorf("build update query: %w", err))
	}

	tag, err := repository.db.Exec(context, query, args...)
	if err != nil {
		return dberr.Wrap(err, resourceName, "update_movie")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resourceName)
	}

	return nil
}

// DeleteMovie implements [Repository].
func (repository *PostgresRepository) DeleteMovie(context context.Context, id int) error {
	table := schema.CatalogMovie

	query, args, err := repository.sb.
		Delete(table.Table).
		Where(sq.Eq{table.ID: id}).
		ToSql()
	if err != nil {
		return apperr.Internal(fmt.Errorf("build delete query: %w", err))
	}

	tag, err := repository.db.Exec(context, query, args...)
	if err != nil {
		return dberr.Wrap(err, resourceName, "delete_movie")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resourceName)
	}

	return nil
}
