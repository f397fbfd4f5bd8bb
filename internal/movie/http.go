// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package movie

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/fiver/internal/platform/constants"
	"github.com/taibuivan/fiver/internal/platform/ctxutil"
	"github.com/taibuivan/fiver/internal/platform/metrics"
	"github.com/taibuivan/fiver/internal/platform/middleware"
	requestutil "github.com/taibuivan/fiver/internal/platform/request"
	"github.com/taibuivan/fiver/internal/platform/respond"
	"github.com/taibuivan/fiver/pkg/hateoas"
	"github.com/taibuivan/fiver/pkg/jsonpatch"
	"github.com/taibuivan/fiver/pkg/pagination"
)

// # Handler Implementation

// Options configures a [Handler].
type Options struct {
	// MediaProduct is the <product> of the vendor media types. Defaults to "fiver".
	MediaProduct string

	// PublicBaseURL roots every link. Empty derives it from the request.
	PublicBaseURL string

	// TrustForwardedHeaders lets X-Forwarded-Proto and X-Forwarded-Host shape
	// derived links. Only set it behind a proxy that overwrites both headers.
	TrustForwardedHeaders bool

	// Limits bounds the requested page size. Zero value uses pagination defaults.
	Limits pagination.Limits

	// Now stamps lastReadAt. Defaults to time.Now.
	Now func() time.Time
}

// Handler implements the HTTP layer for movie operations.
//
// Every resource response goes through the negotiated [hateoas.RenderMode]:
// flat responses carry the movie fields only; linked responses add the links
// built from the route table.
type Handler struct {
	service        *Service
	routes         *hateoas.RouteTable
	negotiator     hateoas.Negotiator
	inputMediaType string
	baseURL        string
	trustForwarded bool
	limits         pagination.Limits
	now            func() time.Time
}

// NewHandler constructs a new movie [Handler].
func NewHandler(service *Service, options Options) (*Handler, error) {
	routes, err := NewRouteTable()
	if err != nil {
		return nil, fmt.Errorf("movie: build route table: %w", err)
	}

	if options.MediaProduct == "" {
		options.MediaProduct = "fiver"
	}
	if options.Limits == (pagination.Limits{}) {
		options.Limits = pagination.DefaultLimits()
	}
	if options.Now == nil {
		options.Now = time.Now
	}

	return &Handler{
		service:        service,
		routes:         routes,
		negotiator:     hateoas.NewNegotiator(options.MediaProduct),
		inputMediaType: "application/vnd." + options.MediaProduct + ".movie.input+json",
		baseURL:        strings.TrimRight(options.PublicBaseURL, "/"),
		trustForwarded: options.TrustForwardedHeaders,
		limits:         options.Limits,
		now:            options.Now,
	}, nil
}

// RegisterRoutes mounts every route of the movie route table on router.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	endpoints := map[string]http.Handler{
		RouteGetMovies:   http.HandlerFunc(handler.listMovies),
		RouteGetMovie:    http.HandlerFunc(handler.getMovie),
		RouteCreateMovie: middleware.RequireContentType(constants.MediaTypeJSON, handler.inputMediaType)(http.HandlerFunc(handler.createMovie)),
		RouteUpdateMovie: middleware.RequireContentType(constants.MediaTypeJSON, handler.inputMediaType)(http.HandlerFunc(handler.updateMovie)),
		RoutePatchMovie:  middleware.RequireContentType(constants.MediaTypeJSON, constants.MediaTypeJSONPatch)(http.HandlerFunc(handler.patchMovie)),
		RouteDeleteMovie: http.HandlerFunc(handler.deleteMovie),
	}

	router.Group(func(group chi.Router) {
		group.Use(middleware.Negotiate(handler.negotiator))

		for _, route := range handler.routes.Routes() {
			group.Method(route.Method, route.Pattern, endpoints[route.Name])
		}
	})
}

// # Movie Endpoints

/*
GET /movies.

Description: Retrieves one page of the catalogue.

Request:
  - pageNumber: int (default 1)
  - pageSize: int (default and maximum from configuration)

Response:
  - 200: []Output (flat) or {values, links} (linked)
  - Header X-Pagination: page descriptor
*/
func (handler *Handler) listMovies(writer http.ResponseWriter, request *http.Request) {
	params := handler.limits.FromRequest(request)

	page, err := handler.service.ListMovies(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	descriptor, err := page.Descriptor()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	mode := ctxutil.GetRenderMode(request.Context())
	namer := handler.namer(request)
	readAt := handler.now()

	items := make([]hateoas.Item[Output], 0, len(page.Items))
	for _, movie := range page.Items {
		item, err := handler.renderMovie(mode, namer, movie, readAt)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		items = append(items, item)
	}

	links, err := movieLinks.CollectionLinks(namer, descriptor)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	writer.Header().Set(constants.HeaderXPagination, descriptor.Header().String())
	handler.write(writer, http.StatusOK, mode, hateoas.RenderCollection(mode, items, links))
}

/*
GET /movies/{id}.

Response:
  - 200: Output, with links when negotiated
  - 400: Invalid id
  - 404: Movie not found
*/
func (handler *Handler) getMovie(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, idParam)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	movie, err := handler.service.GetMovie(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	mode := ctxutil.GetRenderMode(request.Context())
	item, err := handler.renderMovie(mode, handler.namer(request), movie, handler.now())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.write(writer, http.StatusOK, mode, item)
}

/*
POST /movies.

Request (Body, application/json or application/vnd.<product>.movie.input+json):
  - Input JSON object (id is ignored)

Response:
  - 201: Output, Location header to GET /movies/{id}
  - 400: Missing or malformed body
  - 415: Unsupported Content-Type
  - 422: Validation failure
*/
func (handler *Handler) createMovie(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	movie, err := handler.service.CreateMovie(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	namer := handler.namer(request)
	location, err := namer.URL(RouteGetMovie, map[string]string{idParam: strconv.Itoa(movie.ID)})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	mode := ctxutil.GetRenderMode(request.Context())
	item, err := handler.renderMovie(mode, namer, movie, handler.now())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	writer.Header().Set(constants.HeaderLocation, location)
	handler.write(writer, http.StatusCreated, mode, item)
}

/*
PUT /movies/{id}.

Request (Body):
  - Input JSON object; its id must equal the path id

Response:
  - 204: Updated
  - 400: Missing body or id mismatch
  - 404: Movie not found
  - 422: Validation failure
*/
func (handler *Handler) updateMovie(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, idParam)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateMovie(request.Context(), id, input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
PATCH /movies/{id}.

Request (Body, application/json-patch+json or application/json):
  - Ordered array of RFC 6902 operations over {id, title, releaseYear, summary}

Response:
  - 204: Patched
  - 400: Missing body or inapplicable patch
  - 404: Movie not found
  - 422: Patched movie fails validation
*/
func (handler *Handler) patchMovie(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, idParam)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var patch jsonpatch.Patch
	if err := requestutil.DecodeJSON(request, &patch); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.PatchMovie(request.Context(), id, patch); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
DELETE /movies/{id}.

Response:
  - 204: Deleted
  - 404: Movie not found
*/
func (handler *Handler) deleteMovie(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, idParam)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteMovie(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Rendering

// renderMovie builds the item representation of movie. Links are always
// resolved so a broken route fails in both modes; Flat drops them.
func (handler *Handler) renderMovie(mode hateoas.RenderMode, namer hateoas.RouteNamer, movie Movie, readAt time.Time) (hateoas.Item[Output], error) {
	links, err := movieLinks.ItemLinks(namer, strconv.Itoa(movie.ID))
	if err != nil {
		return hateoas.Item[Output]{}, err
	}
	return hateoas.RenderItem(mode, ToOutput(movie, readAt), links), nil
}

func (handler *Handler) write(writer http.ResponseWriter, status int, mode hateoas.RenderMode, payload any) {
	metrics.RepresentationsTotal.WithLabelValues(mode.String()).Inc()
	respond.Representation(writer, status, handler.negotiator.ContentType(mode), payload)
}

// namer resolves links against the configured public base URL.
//
// Without one, links use the scheme and Host header the request arrived with.
// The Host header is client supplied, so deployments facing untrusted clients
// must set PublicBaseURL. Forwarded headers are read only when trusted.
func (handler *Handler) namer(request *http.Request) hateoas.RouteNamer {
	if handler.baseURL != "" {
		return handler.routes.Namer(handler.baseURL)
	}

	scheme := "http"
	if request.TLS != nil {
		scheme = "https"
	}
	host := request.Host

	if handler.trustForwarded {
		if forwarded := request.Header.Get(constants.HeaderXForwardedProto); forwarded == "http" || forwarded == "https" {
			scheme = forwarded
		}
		if forwarded := firstForwarded(request.Header.Get(constants.HeaderXForwardedHost)); forwarded != "" {
			host = forwarded
		}
	}

	return handler.routes.Namer(scheme + "://" + host)
}

// firstForwarded returns the first hop of a forwarded header value, or "" when
// it is not a bare host[:port].
func firstForwarded(value string) string {
	first, _, _ := strings.Cut(value, ",")
	first = strings.TrimSpace(first)
	if strings.ContainsAny(first, "/?#@ \t") {
		return ""
	}
	return first
}
