// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Run with: go test -tags integration ./internal/movie/...

//go:build integration

package movie_test

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/taibuivan/fiver/internal/movie"
	"github.com/taibuivan/fiver/internal/platform/apperr"
	"github.com/taibuivan/fiver/internal/platform/migration"
	"github.com/taibuivan/fiver/internal/platform/postgres"
	"github.com/taibuivan/fiver/internal/platform/redis"
	"github.com/taibuivan/fiver/pkg/pagination"
)

// newPostgresRepository starts PostgreSQL, applies the migrations and returns
// an empty repository. The container is removed when the test finishes.
func newPostgresRepository(t *testing.T) *movie.PostgresRepository {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("fiver"),
		tcpostgres.WithUsername("fiver"),
		tcpostgres.WithPassword("fiver"),
		tcpostgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.NoError(t, migration.RunUp(dsn, "../../data/migrations", discardLogger))

	pool, err := postgres.NewPool(ctx, dsn, discardLogger)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return movie.NewPostgresRepository(pool)
}

/*
TestPostgresRepository_Lifecycle runs the repository contract against a real database.
*/
func TestPostgresRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	repository := newPostgresRepository(t)

	for _, seed := range movie.DemoMovies()[:5] {
		seed.ID = 0
		require.NoError(t, repository.CreateMovie(ctx, &seed))
		assert.Positive(t, seed.ID)
	}

	page, err := repository.ListMovies(ctx, pagination.Params{PageNumber: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, page.TotalCount)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Goldfinger", page.Items[0].Title)

	empty, err := repository.ListMovies(ctx, pagination.Params{PageNumber: 9, PageSize: 2})
	require.NoError(t, err)
	assert.Empty(t, empty.Items)
	assert.Equal(t, 5, empty.TotalCount)

	stored := page.Items[0]
	stored.Summary = "Updated."
	require.NoError(t, repository.UpdateMovie(ctx, stored))

	got, err := repository.GetMovie(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, stored, got)

	require.NoError(t, repository.DeleteMovie(ctx, stored.ID))

	exists, err := repository.MovieExists(ctx, stored.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = repository.GetMovie(ctx, stored.ID)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	assert.Equal(t, "NOT_FOUND", apperr.As(repository.UpdateMovie(ctx, stored)).Code)
	assert.Equal(t, "NOT_FOUND", apperr.As(repository.DeleteMovie(ctx, stored.ID)).Code)
}

/*
TestPostgresRepository_CheckConstraint maps a schema violation to VALIDATION_ERROR.
*/
func TestPostgresRepository_CheckConstraint(t *testing.T) {
	repository := newPostgresRepository(t)

	invalid := movie.Movie{Title: "Roundhay Garden Scene", ReleaseYear: 1700}
	err := repository.CreateMovie(context.Background(), &invalid)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

/*
TestRedisCache_ReadThrough caches PostgreSQL reads in a real Redis.
*/
func TestRedisCache_ReadThrough(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	url, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	client, err := redis.NewClient(ctx, url, discardLogger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	origin := newPostgresRepository(t)
	seed := movie.Movie{Title: "GoldenEye", ReleaseYear: 1995}
	require.NoError(t, origin.CreateMovie(ctx, &seed))

	cache := movie.NewRedisCache(client)
	repository := movie.NewCachedRepository(origin, cache, time.Minute, discardLogger)

	got, err := repository.GetMovie(ctx, seed.ID)
	require.NoError(t, err)
	assert.Equal(t, seed, got)

	_, err = cache.Get(ctx, "fiver:movie:"+strconv.Itoa(seed.ID))
	require.NoError(t, err)

	require.NoError(t, repository.DeleteMovie(ctx, seed.ID))

	_, err = cache.Get(ctx, "fiver:movie:"+strconv.Itoa(seed.ID))
	assert.ErrorIs(t, err, movie.ErrCacheMiss)
}
