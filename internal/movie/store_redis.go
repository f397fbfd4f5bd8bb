// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package movie

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/fiver/internal/platform/constants"
	"github.com/taibuivan/fiver/internal/platform/metrics"
	"github.com/taibuivan/fiver/pkg/pagination"
)

// ErrCacheMiss is returned by [Cache.Get] when the key is absent.
var ErrCacheMiss = errors.New("movie: cache miss")

// Cache is the byte store used by [CachedRepository].
type Cache interface {
	Get(context context.Context, key string) ([]byte, error)
	Set(context context.Context, key string, value []byte, ttl time.Duration) error
	Delete(context context.Context, keys ...string) error
}

// # Redis Cache

// RedisCache is a [Cache] on top of a Redis client.
type RedisCache struct {
	client redis.UniversalClient
}

// NewRedisCache wraps client.
func NewRedisCache(client redis.UniversalClient) *RedisCache {
	return &RedisCache{client: client}
}

// Get implements [Cache].
func (cache *RedisCache) Get(context context.Context, key string) ([]byte, error) {
	value, err := cache.client.Get(context, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	return value, err
}

// Set implements [Cache].
func (cache *RedisCache) Set(context context.Context, key string, value []byte, ttl time.Duration) error {
	return cache.client.Set(context, key, value, ttl).Err()
}

// Delete implements [Cache].
func (cache *RedisCache) Delete(context context.Context, keys ...string) error {
	return cache.client.Del(context, keys...).Err()
}

// # Read-Through Repository

// CachedRepository is a [Repository] that serves single-movie reads from a
// [Cache] and falls back to the wrapped repository.
//
// Lists are never cached because a single write shifts every later page.
// Cache failures are logged and never fail a request.
//
// # Consistency
//
// A read that loaded a row before a concurrent write can try to cache it after
// the write evicted the key. Writes therefore bump a per-movie generation and
// evict both before and after the underlying write, and a fill that sees the
// generation move deletes what it just stored. This closes the race inside one
// process. Across several API instances sharing a Redis, a stale entry can
// still survive until CACHE_TTL expires, so keep the TTL short there.
type CachedRepository struct {
	next   Repository
	cache  Cache
	ttl    time.Duration
	logger *slog.Logger

	mu          sync.Mutex
	generations map[int]uint64
}

// NewCachedRepository wraps next with cache. Entries expire after ttl.
func NewCachedRepository(next Repository, cache Cache, ttl time.Duration, logger *slog.Logger) *CachedRepository {
	return &CachedRepository{
		next:        next,
		cache:       cache,
		ttl:         ttl,
		logger:      logger,
		generations: make(map[int]uint64),
	}
}

func cacheKey(id int) string {
	return constants.RedisPrefixMovie + strconv.Itoa(id)
}

// ListMovies implements [Repository].
func (repository *CachedRepository) ListMovies(context context.Context, params pagination.Params) (pagination.Page[Movie], error) {
	return repository.next.ListMovies(context, params)
}

// GetMovie implements [Repository].
func (repository *CachedRepository) GetMovie(context context.Context, id int) (Movie, error) {
	key := cacheKey(id)

	raw, err := repository.cache.Get(context, key)
	switch {
	case err == nil:
		var movie Movie
		if jsonErr := json.Unmarshal(raw, &movie); jsonErr == nil {
			metrics.CacheLookupsTotal.WithLabelValues(metrics.CacheHit).Inc()
			return movie, nil
		}
		repository.logger.WarnContext(context, "movie_cache_corrupt", slog.String("key", key))
		metrics.CacheLookupsTotal.WithLabelValues(metrics.CacheError).Inc()
	case errors.Is(err, ErrCacheMiss):
		metrics.CacheLookupsTotal.WithLabelValues(metrics.CacheMiss).Inc()
	default:
		repository.logger.WarnContext(context, "movie_cache_get_failed", slog.String("key", key), slog.Any("error", err))
		metrics.CacheLookupsTotal.WithLabelValues(metrics.CacheError).Inc()
	}

	generation := repository.generation(id)

	movie, err := repository.next.GetMovie(context, id)
	if err != nil {
		return Movie{}, err
	}

	repository.fill(context, movie, generation)

	return movie, nil
}

// fill caches movie as read at generation, and takes it back out if a write
// started in the meantime.
func (repository *CachedRepository) fill(context context.Context, movie Movie, generation uint64) {
	key := cacheKey(movie.ID)

	raw, err := json.Marshal(movie)
	if err != nil {
		return
	}

	if err := repository.cache.Set(context, key, raw, repository.ttl); err != nil {
		repository.logger.WarnContext(context, "movie_cache_set_failed", slog.String("key", key), slog.Any("error", err))
		return
	}

	if repository.generation(movie.ID) != generation {
		repository.evict(context, movie.ID)
	}
}

// MovieExists implements [Repository]. A cached movie exists; anything else
// is answered by the wrapped repository.
func (repository *CachedRepository) MovieExists(context context.Context, id int) (bool, error) {
	if _, err := repository.cache.Get(context, cacheKey(id)); err == nil {
		return true, nil
	}
	return repository.next.MovieExists(context, id)
}

// CreateMovie implements [Repository].
func (repository *CachedRepository) CreateMovie(context context.Context, movie *Movie) error {
	return repository.next.CreateMovie(context, movie)
}

// UpdateMovie implements [Repository].
func (repository *CachedRepository) UpdateMovie(context context.Context, movie Movie) error {
	repository.invalidate(context, movie.ID)
	defer repository.invalidate(context, movie.ID)

	return repository.next.UpdateMovie(context, movie)
}

// DeleteMovie implements [Repository].
func (repository *CachedRepository) DeleteMovie(context context.Context, id int) error {
	repository.invalidate(context, id)
	defer repository.invalidate(context, id)

	return repository.next.DeleteMovie(context, id)
}

func (repository *CachedRepository) generation(id int) uint64 {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	return repository.generations[id]
}

// invalidate moves the movie to a new generation and drops its entry.
func (repository *CachedRepository) invalidate(context context.Context, id int) {
	repository.mu.Lock()
	repository.generations[id]++
	repository.mu.Unlock()

	repository.evict(context, id)
}

func (repository *CachedRepository) evict(context context.Context, id int) {
	if err := repository.cache.Delete(context, cacheKey(id)); err != nil {
		repository.logger.WarnContext(context, "movie_cache_evict_failed", slog.Int("movie_id", id), slog.Any("error", err))
	}
}
