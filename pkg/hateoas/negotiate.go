// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package hateoas

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// RenderMode selects the wire representation of a response.
type RenderMode int

const (
	// Flat renders the bare resource fields.
	Flat RenderMode = iota
	// Linked renders the resource fields plus their hypermedia links.
	Linked
)

// String implements [fmt.Stringer].
func (mode RenderMode) String() string {
	if mode == Linked {
		return "linked"
	}
	return "flat"
}

// JSONContentType is the media type of Flat responses.
const JSONContentType = "application/json; charset=utf-8"

// Negotiator maps an Accept header onto a [RenderMode].
type Negotiator struct {
	mediaType string
}

// NewNegotiator builds a negotiator for "application/vnd.<product>.hateoas+json".
func NewNegotiator(product string) Negotiator {
	return Negotiator{mediaType: "application/vnd." + product + ".hateoas+json"}
}

// MediaType returns the hypermedia media type token.
func (negotiator Negotiator) MediaType() string {
	return negotiator.mediaType
}

// Select returns [Linked] only when accept is exactly the hypermedia token
// (ignoring surrounding whitespace and ASCII case). Anything else, including an
// empty header, a list of types or quality values, selects [Flat].
func (negotiator Negotiator) Select(accept string) RenderMode {
	if strings.EqualFold(strings.TrimSpace(accept), negotiator.mediaType) {
		return Linked
	}
	return Flat
}

// ContentType returns the response Content-Type for mode.
func (negotiator Negotiator) ContentType(mode RenderMode) string {
	if mode == Linked {
		return negotiator.mediaType
	}
	return JSONContentType
}

// # Envelopes

// Item is a single resource ready for serialization.
//
// It marshals to the JSON object of Value. When Links is non-nil a "links"
// member is appended to that object, so both modes share the exact same fields.
type Item[T any] struct {
	Value T
	Links []LinkInfo
}

// RenderItem wraps value for mode. Flat drops links; Linked always carries a
// (possibly empty) links array.
func RenderItem[T any](mode RenderMode, value T, links []LinkInfo) Item[T] {
	if mode != Linked {
		return Item[T]{Value: value}
	}
	if links == nil {
		links = []LinkInfo{}
	}
	return Item[T]{Value: value, Links: links}
}

// MarshalJSON implements [json.Marshaler].
func (item Item[T]) MarshalJSON() ([]byte, error) {
	raw, err := json.Marshal(item.Value)
	if err != nil {
		return nil, err
	}
	if item.Links == nil {
		return raw, nil
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) < 2 || raw[0] != '{' || raw[len(raw)-1] != '}' {
		return nil, fmt.Errorf("hateoas: linked value must encode as a JSON object, got %T", item.Value)
	}

	links, err := json.Marshal(item.Links)
	if err != nil {
		return nil, err
	}

	var buffer bytes.Buffer
	buffer.Grow(len(raw) + len(links) + 10)
	buffer.Write(raw[:len(raw)-1])
	if len(bytes.TrimSpace(raw[1:len(raw)-1])) > 0 {
		buffer.WriteByte(',')
	}
	buffer.WriteString(`"links":`)
	buffer.Write(links)
	buffer.WriteByte('}')

	return buffer.Bytes(), nil
}

// Collection is a page of resources ready for serialization.
//
// Flat marshals to a bare JSON array of item values. Linked marshals to
// {"values": [...items with links], "links": [...collection links]}.
type Collection[T any] struct {
	Mode   RenderMode
	Values []Item[T]
	Links  []LinkInfo
}

// RenderCollection wraps items for mode. In Flat mode every item and
// collection link is dropped; the input slice is never modified.
func RenderCollection[T any](mode RenderMode, items []Item[T], links []LinkInfo) Collection[T] {
	values := make([]Item[T], len(items))
	copy(values, items)

	if mode != Linked {
		for i := range values {
			values[i].Links = nil
		}
		return Collection[T]{Mode: Flat, Values: values}
	}

	if links == nil {
		links = []LinkInfo{}
	}
	return Collection[T]{Mode: Linked, Values: values, Links: links}
}

// MarshalJSON implements [json.Marshaler].
func (collection Collection[T]) MarshalJSON() ([]byte, error) {
	values := collection.Values
	if values == nil {
		values = []Item[T]{}
	}

	if collection.Mode != Linked {
		return json.Marshal(values)
	}

	return json.Marshal(struct {
		Values []Item[T]  `json:"values"`
		Links  []LinkInfo `json:"links"`
	}{Values: values, Links: collection.Links})
}
