// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package hateoas

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var (
	// ErrUnknownRoute is returned when a route name has no entry in the table.
	ErrUnknownRoute = errors.New("hateoas: unknown route")
	// ErrMissingParam is returned when a path placeholder has no value.
	ErrMissingParam = errors.New("hateoas: missing route parameter")
)

// RouteNamer resolves a named route plus parameters into an absolute URL.
//
// Parameters matching a "{name}" placeholder in the route pattern fill the path;
// any others are appended as query string values.
type RouteNamer interface {
	URL(name string, params map[string]string) (string, error)
}

// Route is one entry of the routing table.
type Route struct {
	Name    string
	Method  string
	Pattern string
}

// RouteTable is an immutable, name-indexed set of routes.
//
// The same table is used to register handlers on the router and to build links,
// so a link can never point at a path the router does not serve.
type RouteTable struct {
	routes []Route
	byName map[string]Route
}

// NewRouteTable validates and indexes the given routes.
func NewRouteTable(routes ...Route) (*RouteTable, error) {
	table := &RouteTable{
		routes: make([]Route, 0, len(routes)),
		byName: make(map[string]Route, len(routes)),
	}

	for _, route := range routes {
		if route.Name == "" || !strings.HasPrefix(route.Pattern, "/") {
			return nil, fmt.Errorf("hateoas: invalid route %q with pattern %q", route.Name, route.Pattern)
		}
		if !allowedMethods[route.Method] {
			return nil, fmt.Errorf("hateoas: route %q uses unsupported method %q", route.Name, route.Method)
		}
		if _, exists := table.byName[route.Name]; exists {
			return nil, fmt.Errorf("hateoas: duplicate route name %q", route.Name)
		}

		table.routes = append(table.routes, route)
		table.byName[route.Name] = route
	}

	return table, nil
}

// Routes returns the routes in declaration order.
func (table *RouteTable) Routes() []Route {
	routes := make([]Route, len(table.routes))
	copy(routes, table.routes)
	return routes
}

// Namer returns a [RouteNamer] producing URLs rooted at baseURL
// (e.g. "https://api.example.com").
func (table *RouteTable) Namer(baseURL string) RouteNamer {
	return &tableNamer{table: table, baseURL: strings.TrimRight(baseURL, "/")}
}

type tableNamer struct {
	table   *RouteTable
	baseURL string
}

// URL implements [RouteNamer].
func (namer *tableNamer) URL(name string, params map[string]string) (string, error) {
	route, ok := namer.table.byName[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownRoute, name)
	}

	used := make(map[string]bool, len(params))
	segments := strings.Split(route.Pattern, "/")

	for i, segment := range segments {
		if !strings.HasPrefix(segment, "{") || !strings.HasSuffix(segment, "}") {
			continue
		}

		key := segment[1 : len(segment)-1]
		value, ok := params[key]
		if !ok || value == "" {
			return "", fmt.Errorf("%w: %q for route %q", ErrMissingParam, key, name)
		}

		segments[i] = url.PathEscape(value)
		used[key] = true
	}

	link := namer.baseURL + strings.Join(segments, "/")

	query := url.Values{}
	for key, value := range params {
		if !used[key] {
			query.Set(key, value)
		}
	}
	if len(query) > 0 {
		link += "?" + query.Encode()
	}

	return link, nil
}
