// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package hateoas

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/taibuivan/fiver/pkg/pagination"
)

// CollectionRoutes names the routes that collection links point at.
type CollectionRoutes struct {
	// List is the paginated GET route. It receives pageNumber and pageSize.
	List string
	// Create is the POST route for new items.
	Create string
}

// ItemRoutes names the routes that item links point at. Each receives the
// item identifier under [ItemRoutes.IDParam].
type ItemRoutes struct {
	IDParam string
	Get     string
	Update  string
	Patch   string
	Delete  string
}

// Builder produces the link sets of one resource type.
type Builder struct {
	Collection CollectionRoutes
	Item       ItemRoutes
}

// CollectionLinks returns the links of a collection page, in order:
// self, previous-page (if any), next-page (if any), create.
//
// A route the namer cannot resolve is a configuration error and is returned
// as-is; no link is ever silently dropped.
func (builder Builder) CollectionLinks(namer RouteNamer, descriptor pagination.Descriptor) ([]LinkInfo, error) {
	links := make([]LinkInfo, 0, 4)

	pageLink := func(rel Relation, pageNumber int) error {
		href, err := namer.URL(builder.Collection.List, map[string]string{
			pagination.QueryPageNumber: strconv.Itoa(pageNumber),
			pagination.QueryPageSize:   strconv.Itoa(descriptor.PageSize),
		})
		if err != nil {
			return fmt.Errorf("build %s link: %w", rel, err)
		}
		links = append(links, LinkInfo{Href: href, Rel: rel, Method: http.MethodGet})
		return nil
	}

	if err := pageLink(RelSelf, descriptor.PageNumber); err != nil {
		return nil, err
	}

	if descriptor.HasPrevious {
		if err := pageLink(RelPreviousPage, descriptor.PreviousPageNumber); err != nil {
			return nil, err
		}
	}

	if descriptor.HasNext {
		if err := pageLink(RelNextPage, descriptor.NextPageNumber); err != nil {
			return nil, err
		}
	}

	href, err := namer.URL(builder.Collection.Create, nil)
	if err != nil {
		return nil, fmt.Errorf("build %s link: %w", RelCreate, err)
	}
	links = append(links, LinkInfo{Href: href, Rel: RelCreate, Method: http.MethodPost})

	return links, nil
}

// ItemLinks returns the links of a single resource, in order:
// self, update, update-partial, delete.
func (builder Builder) ItemLinks(namer RouteNamer, id string) ([]LinkInfo, error) {
	params := map[string]string{builder.Item.IDParam: id}

	targets := []struct {
		route  string
		rel    Relation
		method string
	}{
		{builder.Item.Get, RelSelf, http.MethodGet},
		{builder.Item.Update, RelUpdate, http.MethodPut},
		{builder.Item.Patch, RelUpdatePartial, http.MethodPatch},
		{builder.Item.Delete, RelDelete, http.MethodDelete},
	}

	links := make([]LinkInfo, 0, len(targets))
	for _, target := range targets {
		href, err := namer.URL(target.route, params)
		if err != nil {
			return nil, fmt.Errorf("build %s link: %w", target.rel, err)
		}
		links = append(links, LinkInfo{Href: href, Rel: target.rel, Method: target.method})
	}

	return links, nil
}
