// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package movie

import (
	"context"
	"slices"
	"sync"

	"github.com/taibuivan/fiver/internal/platform/apperr"
	"github.com/taibuivan/fiver/pkg/pagination"
)

// MemoryRepository is a process-local [Repository]. Data does not survive a
// restart; it backs development, tests and the default configuration.
type MemoryRepository struct {
	mu     sync.RWMutex
	movies map[int]Movie
	nextID int
}

// NewMemoryRepository creates a repository holding seed. Seed movies keep
// their IDs; zero IDs are assigned in order.
func NewMemoryRepository(seed ...Movie) *MemoryRepository {
	repository := &MemoryRepository{movies: make(map[int]Movie, len(seed)), nextID: 1}

	for _, movie := range seed {
		if movie.ID == 0 {
			movie.ID = repository.nextID
		}
		repository.movies[movie.ID] = movie
		repository.nextID = max(repository.nextID, movie.ID+1)
	}

	return repository
}

// DemoMovies returns the catalogue loaded when SEED_DEMO_DATA is enabled.
func DemoMovies() []Movie {
	return []Movie{
		{ID: 1, Title: "Dr. No", ReleaseYear: 1962, Summary: "James Bond investigates the disappearance of a fellow agent in Jamaica."},
		{ID: 2, Title: "From Russia with Love", ReleaseYear: 1963, Summary: "Bond is lured into a SPECTRE trap involving a Soviet decoding machine."},
		{ID: 3, Title: "Goldfinger", ReleaseYear: 1964, Summary: "A gold magnate plans to irradiate the bullion at Fort Knox."},
		{ID: 4, Title: "Thunderball", ReleaseYear: 1965, Summary: "SPECTRE hijacks two atomic bombs and holds NATO to ransom."},
		{ID: 5, Title: "You Only Live Twice", ReleaseYear: 1967, Summary: "Spacecraft vanish from orbit and Bond fakes his own death."},
		{ID: 6, Title: "On Her Majesty's Secret Service", ReleaseYear: 1969, Summary: "Bond tracks Blofeld to an allergy clinic in the Swiss Alps."},
		{ID: 7, Title: "Diamonds Are Forever", ReleaseYear: 1971, Summary: "A diamond smuggling ring leads Bond to a satellite laser."},
		{ID: 8, Title: "Live and Let Die", ReleaseYear: 1973, Summary: "A Caribbean dictator floods the market with free heroin."},
		{ID: 9, Title: "The Man with the Golden Gun", ReleaseYear: 1974, Summary: "An assassin with a golden gun holds the key to solar power."},
		{ID: 10, Title: "The Spy Who Loved Me", ReleaseYear: 1977, Summary: "Bond and a Soviet agent hunt for stolen nuclear submarines."},
		{ID: 11, Title: "Moonraker", ReleaseYear: 1979, Summary: "A space shuttle theft uncovers a plot to repopulate Earth."},
		{ID: 12, Title: "For Your Eyes Only", ReleaseYear: 1981, Summary: "Bond races to recover a sunken missile command system."},
		{ID: 13, Title: "Octopussy", ReleaseYear: 1983, Summary: "A Fabergé egg forgery hides a scheme to start a war in Europe."},
		{ID: 14, Title: "Never Say Never Again", ReleaseYear: 1983, Summary: "An ageing Bond returns to stop SPECTRE's stolen warheads."},
		{ID: 15, Title: "A View to a Kill", ReleaseYear: 1985, Summary: "An industrialist plans to flood Silicon Valley."},
	}
}

// ListMovies implements [Repository].
func (repository *MemoryRepository) ListMovies(_ context.Context, params pagination.Params) (pagination.Page[Movie], error) {
	if !params.Valid() {
		return pagination.Page[Movie]{}, pagination.ErrInvalidParams
	}

	repository.mu.RLock()
	defer repository.mu.RUnlock()

	ids := make([]int, 0, len(repository.movies))
	for id := range repository.movies {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	start := min(params.Offset(), len(ids))
	end := min(start+params.PageSize, len(ids))

	items := make([]Movie, 0, end-start)
	for _, id := range ids[start:end] {
		items = append(items, repository.movies[id])
	}

	return pagination.Page[Movie]{Items: items, TotalCount: len(ids), Params: params}, nil
}

// GetMovie implements [Repository].
func (repository *MemoryRepository) GetMovie(_ context.Context, id int) (Movie, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	movie, ok := repository.movies[id]
	if !ok {
		return Movie{}, apperr.NotFound(resourceName)
	}
	return movie, nil
}

// MovieExists implements [Repository].
func (repository *MemoryRepository) MovieExists(_ context.Context, id int) (bool, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	_, ok := repository.movies[id]
	return ok, nil
}

// CreateMovie implements [Repository].
func (repository *MemoryRepository) CreateMovie(_ context.Context, movie *Movie) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	movie.ID = repository.nextID
	repository.nextID++
	repository.movies[movie.ID] = *movie

	return nil
}

// UpdateMovie implements [Repository].
func (repository *MemoryRepository) UpdateMovie(_ context.Context, movie Movie) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, ok := repository.movies[movie.ID]; !ok {
		return apperr.NotFound(resourceName)
	}
	repository.movies[movie.ID] = movie

	return nil
}

// DeleteMovie implements [Repository].
func (repository *MemoryRepository) DeleteMovie(_ context.Context, id int) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, ok := repository.movies[id]; !ok {
		return apperr.NotFound(resourceName)
	}
	delete(repository.movies, id)

	return nil
}
