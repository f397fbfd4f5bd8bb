// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package movie manages the movie catalogue exposed by the hypermedia API.

It owns the movie lifecycle from creation to deletion, including full and
partial (JSON Patch) updates with re-validation.

# Core Responsibility

  - Entity: Defines the [Movie] record and its editable projection [Input].
  - Storage: Declares the [Repository] contract with in-memory, PostgreSQL and
    cached implementations.
  - Presentation: Renders [Output] in flat or linked form through [Handler].
*/
package movie

import (
	"time"

	"golang.org/x/text/unicode/norm"
)

// # Field Names

const (
	FieldID          = "id"
	FieldTitle       = "title"
	FieldReleaseYear = "releaseYear"
	FieldSummary     = "summary"
)

// # Constraints

const (
	MaxTitleLength   = 200
	MaxSummaryLength = 2000

	// MinReleaseYear is the year of the oldest surviving film.
	MinReleaseYear = 1888
	MaxReleaseYear = 2100
)

// resourceName labels movie errors ("Movie not found").
const resourceName = "Movie"

// # Core Entities

// Movie is the durable movie record. ID is assigned by the store on create and
// never changes afterwards.
type Movie struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	ReleaseYear int    `json:"releaseYear"`
	Summary     string `json:"summary"`
}

// Input is the editable projection of a [Movie]: the body of create and update
// requests and the document JSON Patch operations are applied to.
type Input struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	ReleaseYear int    `json:"releaseYear"`
	Summary     string `json:"summary"`
}

// Output is the read model of a [Movie]. LastReadAt is the server time at which
// the representation was produced.
type Output struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	ReleaseYear int       `json:"releaseYear"`
	Summary     string    `json:"summary"`
	LastReadAt  time.Time `json:"lastReadAt"`
}

// # Conversions

// ToInput projects a movie onto its editable form.
func ToInput(movie Movie) Input {
	return Input{
		ID:          movie.ID,
		Title:       movie.Title,
		ReleaseYear: movie.ReleaseYear,
		Summary:     movie.Summary,
	}
}

// ToDomain converts the editable form back into a movie.
// ToDomain(ToInput(m)) == m for every movie m.
func (input Input) ToDomain() Movie {
	return Movie{
		ID:          input.ID,
		Title:       input.Title,
		ReleaseYear: input.ReleaseYear,
		Summary:     input.Summary,
	}
}

// ToOutput builds the read model of movie as of readAt.
func ToOutput(movie Movie, readAt time.Time) Output {
	return Output{
		ID:          movie.ID,
		Title:       movie.Title,
		ReleaseYear: movie.ReleaseYear,
		Summary:     movie.Summary,
		LastReadAt:  readAt.UTC(),
	}
}

// normalized returns input with its text fields in Unicode NFC, so visually
// identical titles compare and count equally.
func (input Input) normalized() Input {
	input.Title = norm.NFC.String(input.Title)
	input.Summary = norm.NFC.String(input.Summary)
	return input
}
