// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema names the tables and columns of the relational store, so
// queries never carry raw identifiers.
package schema

// CatalogMovieTable represents the 'catalog.movie' table
type CatalogMovieTable struct {
	Table       string
	ID          string
	Title       string
	ReleaseYear string
	Summary     string
	CreatedAt   string
	UpdatedAt   string
}

// CatalogMovie is the schema definition for catalog.movie
var CatalogMovie = CatalogMovieTable{
	Table:       "catalog.movie",
	ID:          "id",
	Title:       "title",
	ReleaseYear: "releaseyear",
	Summary:     "summary",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// Columns returns the columns mapped onto the movie entity, in scan order.
func (t CatalogMovieTable) Columns() []string {
	return []string{t.ID, t.Title, t.ReleaseYear, t.Summary}
}
