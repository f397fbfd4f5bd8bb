// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// It standardizes how page-based navigation is requested via query parameters
// ("pageNumber", "pageSize"), how a page of results travels from the store to the
// handler ([Page]), and how navigation metadata is derived from it ([Descriptor]).
package pagination

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
)

const (
	// DefaultPageSize is the number of items per page if not specified.
	DefaultPageSize = 10
	// MaxPageSize is the upper bound for items per page to prevent system abuse.
	MaxPageSize = 50
	// DefaultPageNumber is the starting page (1-indexed).
	DefaultPageNumber = 1

	// QueryPageNumber is the query string key for the requested page.
	QueryPageNumber = "pageNumber"
	// QueryPageSize is the query string key for the requested page size.
	QueryPageSize = "pageSize"
)

// ErrInvalidParams is returned by [Compute] when the page number or page size
// is not a positive integer, or the total count is negative.
var ErrInvalidParams = errors.New("pagination: page number and page size must be positive")

// Params holds the requested page number and page size.
type Params struct {
	PageNumber int
	PageSize   int
}

// Offset returns the SQL OFFSET value derived from [Params.PageNumber] and [Params.PageSize].
//
// It saturates at math.MaxInt instead of wrapping, so a huge page number always
// lands past the end of the collection.
func (p Params) Offset() int {
	if p.PageNumber <= 1 || p.PageSize < 1 {
		return 0
	}
	if p.PageNumber-1 > math.MaxInt/p.PageSize {
		return math.MaxInt
	}
	return (p.PageNumber - 1) * p.PageSize
}

// Valid reports whether both page number and page size are at least 1.
func (p Params) Valid() bool {
	return p.PageNumber >= 1 && p.PageSize >= 1
}

// Limits bounds the page size accepted by [FromRequest].
type Limits struct {
	DefaultSize int
	MaxSize     int
}

// DefaultLimits returns the package-level page size defaults.
func DefaultLimits() Limits {
	return Limits{DefaultSize: DefaultPageSize, MaxSize: MaxPageSize}
}

// FromRequest parses "pageNumber" and "pageSize" query parameters from an HTTP
// request using [DefaultLimits].
func FromRequest(r *http.Request) Params {
	return DefaultLimits().FromRequest(r)
}

// FromRequest parses "pageNumber" and "pageSize" query parameters.
//
// # Normalization
//
// A missing, non-numeric or non-positive page number becomes [DefaultPageNumber].
// A missing, non-numeric or non-positive page size becomes the default size, and
// a page size above the maximum is capped at the maximum.
func (l Limits) FromRequest(r *http.Request) Params {
	defaultSize := l.DefaultSize
	if defaultSize < 1 {
		defaultSize = DefaultPageSize
	}
	maxSize := l.MaxSize
	if maxSize < defaultSize {
		maxSize = defaultSize
	}

	page := parseIntParam(r, QueryPageNumber, DefaultPageNumber)
	size := parseIntParam(r, QueryPageSize, defaultSize)

	if page < 1 {
		page = DefaultPageNumber
	}

	if size < 1 {
		size = defaultSize
	}
	if size > maxSize {
		size = maxSize
	}

	return Params{PageNumber: page, PageSize: size}
}

// Page is one page of an ordered result set plus the counters needed to
// navigate the rest of it.
type Page[T any] struct {
	Items      []T
	TotalCount int
	Params     Params
}

// Descriptor computes the navigation descriptor for this page.
func (p Page[T]) Descriptor() (Descriptor, error) {
	return Compute(p.Params, p.TotalCount)
}

// Descriptor is the derived navigation state of a page. It is never stored.
//
// PreviousPageNumber is only meaningful when HasPrevious is set, and
// NextPageNumber only when HasNext is set.
type Descriptor struct {
	PageNumber         int  `json:"pageNumber"`
	PageSize           int  `json:"pageSize"`
	TotalCount         int  `json:"totalCount"`
	TotalPages         int  `json:"totalPages"`
	HasPrevious        bool `json:"hasPrevious"`
	HasNext            bool `json:"hasNext"`
	PreviousPageNumber int  `json:"previousPageNumber"`
	NextPageNumber     int  `json:"nextPageNumber"`
}

// Compute derives a [Descriptor] from the requested params and the total item count.
//
// It is a pure function. A page number beyond the last page is not clamped: the
// descriptor is computed as requested and only HasNext/HasPrevious reflect reality.
func Compute(params Params, totalCount int) (Descriptor, error) {
	if !params.Valid() || totalCount < 0 {
		return Descriptor{}, ErrInvalidParams
	}

	totalPages := totalCount / params.PageSize
	if totalCount%params.PageSize != 0 {
		totalPages++
	}

	nextPageNumber := params.PageNumber
	if nextPageNumber < math.MaxInt {
		nextPageNumber++
	}

	descriptor := Descriptor{
		PageNumber:         params.PageNumber,
		PageSize:           params.PageSize,
		TotalCount:         totalCount,
		TotalPages:         totalPages,
		PreviousPageNumber: params.PageNumber - 1,
		NextPageNumber:     nextPageNumber,
	}

	// An empty collection has nowhere to navigate to.
	if totalCount == 0 {
		return descriptor, nil
	}

	descriptor.HasPrevious = params.PageNumber > 1
	descriptor.HasNext = params.PageNumber < totalPages

	return descriptor, nil
}

// Header is the payload serialized into the X-Pagination response header.
type Header struct {
	PageNumber  int  `json:"pageNumber"`
	PageSize    int  `json:"pageSize"`
	TotalCount  int  `json:"totalCount"`
	TotalPages  int  `json:"totalPages"`
	HasPrevious bool `json:"hasPrevious"`
	HasNext     bool `json:"hasNext"`
}

// Header projects the descriptor into the X-Pagination header payload.
func (d Descriptor) Header() Header {
	return Header{
		PageNumber:  d.PageNumber,
		PageSize:    d.PageSize,
		TotalCount:  d.TotalCount,
		TotalPages:  d.TotalPages,
		HasPrevious: d.HasPrevious,
		HasNext:     d.HasNext,
	}
}

// String renders the header as compact JSON.
func (h Header) String() string {
	raw, err := json.Marshal(h)
	if err != nil {
		// Header only holds ints and bools.
		return "{}"
	}
	return string(raw)
}

// parseIntParam parses a single integer query parameter with a fallback default.
func parseIntParam(r *http.Request, key string, defaultVal int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultVal
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return defaultVal
	}

	return n
}
