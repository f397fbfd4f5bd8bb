// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package hateoas shapes API responses into hypermedia representations.

It owns three concerns that every resource endpoint shares:

  - Links: the fixed relation vocabulary and the [Builder] that turns a page
    descriptor or a resource identifier into an ordered set of [LinkInfo].
  - Routing: the [RouteNamer] capability that resolves a route name into an
    absolute URL, implemented by [RouteTable].
  - Negotiation: the [Negotiator] that picks a [RenderMode] from the Accept header,
    and the [Item] / [Collection] envelopes that render either mode.

Nothing in this package holds per-request state, so a single instance of each
type can be shared by all handlers.
*/
package hateoas

import "net/http"

// Relation names a link's role relative to the resource that carries it.
type Relation string

// Link relation vocabulary.
const (
	RelSelf          Relation = "self"
	RelPreviousPage  Relation = "previous-page"
	RelNextPage      Relation = "next-page"
	RelCreate        Relation = "create"
	RelUpdate        Relation = "update"
	RelUpdatePartial Relation = "update-partial"
	RelDelete        Relation = "delete"
)

// LinkInfo is a single hypermedia link.
type LinkInfo struct {
	Href   string   `json:"href"`
	Rel    Relation `json:"rel"`
	Method string   `json:"method"`
}

// allowedMethods is the set of verbs a link may advertise.
var allowedMethods = map[string]bool{
	http.MethodGet:    true,
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodPatch:  true,
	http.MethodDelete: true,
}
