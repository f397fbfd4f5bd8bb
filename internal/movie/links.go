// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package movie

import (
	"net/http"

	"github.com/taibuivan/fiver/pkg/hateoas"
)

// # Route Names

// Route names are part of the public contract: links are resolved by name.
const (
	RouteGetMovies   = "GetMovies"
	RouteGetMovie    = "GetMovie"
	RouteCreateMovie = "CreateMovie"
	RouteUpdateMovie = "UpdateMovie"
	RoutePatchMovie  = "UpdatePatchMovie"
	RouteDeleteMovie = "DeleteMovie"
)

// idParam is the path placeholder of item routes.
const idParam = "id"

// NewRouteTable returns the movie routes. The same table registers the
// handlers and resolves every link, so a link always targets a served route.
func NewRouteTable() (*hateoas.RouteTable, error) {
	return hateoas.NewRouteTable(
		hateoas.Route{Name: RouteGetMovies, Method: http.MethodGet, Pattern: "/movies"},
		hateoas.Route{Name: RouteGetMovie, Method: http.MethodGet, Pattern: "/movies/{" + idParam + "}"},
		hateoas.Route{Name: RouteCreateMovie, Method: http.MethodPost, Pattern: "/movies"},
		hateoas.Route{Name: RouteUpdateMovie, Method: http.MethodPut, Pattern: "/movies/{" + idParam + "}"},
		hateoas.Route{Name: RoutePatchMovie, Method: http.MethodPatch, Pattern: "/movies/{" + idParam + "}"},
		hateoas.Route{Name: RouteDeleteMovie, Method: http.MethodDelete, Pattern: "/movies/{" + idParam + "}"},
	)
}

// movieLinks builds the collection and item links of movies.
var movieLinks = hateoas.Builder{
	Collection: hateoas.CollectionRoutes{
		List:   RouteGetMovies,
		Create: RouteCreateMovie,
	},
	Item: hateoas.ItemRoutes{
		IDParam: idParam,
		Get:     RouteGetMovie,
		Update:  RouteUpdateMovie,
		Patch:   RoutePatchMovie,
		Delete:  RouteDeleteMovie,
	},
}
