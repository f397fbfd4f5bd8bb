// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package hateoas_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/fiver/pkg/hateoas"
	"github.com/taibuivan/fiver/pkg/pagination"
)

type film struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

func testTable(t *testing.T) *hateoas.RouteTable {
	t.Helper()

	table, err := hateoas.NewRouteTable(
		hateoas.Route{Name: "GetFilms", Method: http.MethodGet, Pattern: "/films"},
		hateoas.Route{Name: "GetFilm", Method: http.MethodGet, Pattern: "/films/{id}"},
		hateoas.Route{Name: "CreateFilm", Method: http.MethodPost, Pattern: "/films"},
		hateoas.Route{Name: "UpdateFilm", Method: http.MethodPut, Pattern: "/films/{id}"},
		hateoas.Route{Name: "PatchFilm", Method: http.MethodPatch, Pattern: "/films/{id}"},
		hateoas.Route{Name: "DeleteFilm", Method: http.MethodDelete, Pattern: "/films/{id}"},
	)
	require.NoError(t, err)
	return table
}

var filmLinks = hateoas.Builder{
	Collection: hateoas.CollectionRoutes{List: "GetFilms", Create: "CreateFilm"},
	Item: hateoas.ItemRoutes{
		IDParam: "id",
		Get:     "GetFilm",
		Update:  "UpdateFilm",
		Patch:   "PatchFilm",
		Delete:  "DeleteFilm",
	},
}

func relations(links []hateoas.LinkInfo) []hateoas.Relation {
	rels := make([]hateoas.Relation, len(links))
	for i, link := range links {
		rels[i] = link.Rel
	}
	return rels
}

// # Routing

/*
TestRouteTable_URL checks path substitution and query encoding.
*/
func TestRouteTable_URL(t *testing.T) {
	namer := testTable(t).Namer("http://localhost:8080/")

	href, err := namer.URL("GetFilm", map[string]string{"id": "42"})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/films/42", href)

	href, err = namer.URL("GetFilms", map[string]string{"pageSize": "10", "pageNumber": "2"})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/films?pageNumber=2&pageSize=10", href)
}

/*
TestRouteTable_Errors checks misconfiguration is reported, not swallowed.
*/
func TestRouteTable_Errors(t *testing.T) {
	namer := testTable(t).Namer("http://localhost")

	_, err := namer.URL("Nope", nil)
	assert.ErrorIs(t, err, hateoas.ErrUnknownRoute)

	_, err = namer.URL("GetFilm", nil)
	assert.ErrorIs(t, err, hateoas.ErrMissingParam)

	_, err = hateoas.NewRouteTable(
		hateoas.Route{Name: "A", Method: http.MethodGet, Pattern: "/a"},
		hateoas.Route{Name: "A", Method: http.MethodGet, Pattern: "/b"},
	)
	assert.Error(t, err)

	_, err = hateoas.NewRouteTable(hateoas.Route{Name: "A", Method: "TRACE", Pattern: "/a"})
	assert.Error(t, err)
}

// # Link building

/*
TestBuilder_CollectionLinks checks relation order and presence across pages.
*/
func TestBuilder_CollectionLinks(t *testing.T) {
	namer := testTable(t).Namer("http://api.test")

	tests := []struct {
		name     string
		page     int
		total    int
		expected []hateoas.Relation
	}{
		{"first_page", 1, 25, []hateoas.Relation{hateoas.RelSelf, hateoas.RelNextPage, hateoas.RelCreate}},
		{"middle_page", 2, 25, []hateoas.Relation{hateoas.RelSelf, hateoas.RelPreviousPage, hateoas.RelNextPage, hateoas.RelCreate}},
		{"last_page", 3, 25, []hateoas.Relation{hateoas.RelSelf, hateoas.RelPreviousPage, hateoas.RelCreate}},
		{"empty", 1, 0, []hateoas.Relation{hateoas.RelSelf, hateoas.RelCreate}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			descriptor, err := pagination.Compute(pagination.Params{PageNumber: tt.page, PageSize: 10}, tt.total)
			require.NoError(t, err)

			links, err := filmLinks.CollectionLinks(namer, descriptor)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, relations(links))

			assert.Equal(t, http.MethodGet, links[0].Method)
			assert.Equal(t, http.MethodPost, links[len(links)-1].Method)
			assert.Equal(t, "http://api.test/films", links[len(links)-1].Href)
		})
	}
}

/*
TestBuilder_CollectionLinks_Targets checks the page numbers embedded in links.
*/
func TestBuilder_CollectionLinks_Targets(t *testing.T) {
	namer := testTable(t).Namer("http://api.test")
	descriptor, err := pagination.Compute(pagination.Params{PageNumber: 2, PageSize: 10}, 25)
	require.NoError(t, err)

	links, err := filmLinks.CollectionLinks(namer, descriptor)
	require.NoError(t, err)
	require.Len(t, links, 4)

	assert.Equal(t, "http://api.test/films?pageNumber=2&pageSize=10", links[0].Href)
	assert.Equal(t, "http://api.test/films?pageNumber=1&pageSize=10", links[1].Href)
	assert.Equal(t, "http://api.test/films?pageNumber=3&pageSize=10", links[2].Href)
}

/*
TestBuilder_ItemLinks checks the fixed item relation order and verbs.
*/
func TestBuilder_ItemLinks(t *testing.T) {
	namer := testTable(t).Namer("http://api.test")

	links, err := filmLinks.ItemLinks(namer, "7")
	require.NoError(t, err)

	assert.Equal(t, []hateoas.LinkInfo{
		{Href: "http://api.test/films/7", Rel: hateoas.RelSelf, Method: http.MethodGet},
		{Href: "http://api.test/films/7", Rel: hateoas.RelUpdate, Method: http.MethodPut},
		{Href: "http://api.test/films/7", Rel: hateoas.RelUpdatePartial, Method: http.MethodPatch},
		{Href: "http://api.test/films/7", Rel: hateoas.RelDelete, Method: http.MethodDelete},
	}, links)
}

/*
TestBuilder_UnresolvableRoute checks that a missing route fails the whole build.
*/
func TestBuilder_UnresolvableRoute(t *testing.T) {
	namer := testTable(t).Namer("http://api.test")
	broken := filmLinks
	broken.Item.Delete = "RemoveFilm"

	_, err := broken.ItemLinks(namer, "7")
	assert.ErrorIs(t, err, hateoas.ErrUnknownRoute)

	broken = filmLinks
	broken.Collection.Create = "AddFilm"
	descriptor, _ := pagination.Compute(pagination.Params{PageNumber: 1, PageSize: 10}, 1)

	_, err = broken.CollectionLinks(namer, descriptor)
	assert.ErrorIs(t, err, hateoas.ErrUnknownRoute)
}

// # Negotiation

/*
TestNegotiator_Select checks the single-token matching rule.
*/
func TestNegotiator_Select(t *testing.T) {
	negotiator := hateoas.NewNegotiator("fiver")

	tests := []struct {
		accept   string
		expected hateoas.RenderMode
	}{
		{"application/vnd.fiver.hateoas+json", hateoas.Linked},
		{"Application/VND.Fiver.HATEOAS+JSON", hateoas.Linked},
		{" application/vnd.fiver.hateoas+json ", hateoas.Linked},
		{"", hateoas.Flat},
		{"application/json", hateoas.Flat},
		{"*/*", hateoas.Flat},
		{"application/vnd.fiver.hateoas+json, application/json", hateoas.Flat},
		{"application/vnd.fiver.hateoas+json;q=0.9", hateoas.Flat},
	}

	for _, tt := range tests {
		t.Run(tt.accept, func(t *testing.T) {
			assert.Equal(t, tt.expected, negotiator.Select(tt.accept))
		})
	}

	assert.Equal(t, "application/vnd.fiver.hateoas+json", negotiator.ContentType(hateoas.Linked))
	assert.Equal(t, hateoas.JSONContentType, negotiator.ContentType(hateoas.Flat))
}

/*
TestRenderItem checks both modes expose the same fields and only Linked carries links.
*/
func TestRenderItem(t *testing.T) {
	value := film{ID: 1, Title: "Heat"}
	links := []hateoas.LinkInfo{{Href: "http://api.test/films/1", Rel: hateoas.RelSelf, Method: http.MethodGet}}

	flat, err := json.Marshal(hateoas.RenderItem(hateoas.Flat, value, links))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"title":"Heat"}`, string(flat))

	linked, err := json.Marshal(hateoas.RenderItem(hateoas.Linked, value, links))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"title":"Heat","links":[{"href":"http://api.test/films/1","rel":"self","method":"GET"}]}`, string(linked))

	empty, err := json.Marshal(hateoas.RenderItem(hateoas.Linked, struct{}{}, nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"links":[]}`, string(empty))
}

/*
TestRenderItem_NonObject checks that only objects can carry links.
*/
func TestRenderItem_NonObject(t *testing.T) {
	_, err := json.Marshal(hateoas.RenderItem(hateoas.Linked, 5, nil))
	assert.Error(t, err)
}

/*
TestRenderCollection checks the flat array and the linked wrapper shapes.
*/
func TestRenderCollection(t *testing.T) {
	itemLinks := []hateoas.LinkInfo{{Href: "http://api.test/films/1", Rel: hateoas.RelSelf, Method: http.MethodGet}}
	collectionLinks := []hateoas.LinkInfo{{Href: "http://api.test/films", Rel: hateoas.RelCreate, Method: http.MethodPost}}

	items := []hateoas.Item[film]{hateoas.RenderItem(hateoas.Linked, film{ID: 1, Title: "Heat"}, itemLinks)}

	flat, err := json.Marshal(hateoas.RenderCollection(hateoas.Flat, items, collectionLinks))
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1,"title":"Heat"}]`, string(flat))

	// Rendering never touches the caller's items.
	assert.NotNil(t, items[0].Links)

	linked, err := json.Marshal(hateoas.RenderCollection(hateoas.Linked, items, collectionLinks))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"values":[{"id":1,"title":"Heat","links":[{"href":"http://api.test/films/1","rel":"self","method":"GET"}]}],
		"links":[{"href":"http://api.test/films","rel":"create","method":"POST"}]
	}`, string(linked))

	none, err := json.Marshal(hateoas.RenderCollection[film](hateoas.Flat, nil, nil))
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(none))
}
