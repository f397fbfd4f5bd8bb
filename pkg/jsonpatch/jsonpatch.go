// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package jsonpatch applies RFC 6902 JSON Patch documents.

It interprets the six standard operations (add, remove, replace, move, copy,
test) over a decoded JSON document (objects, arrays and scalars as produced by
encoding/json) and, through [ApplyTo], over any typed projection that
round-trips through JSON.

Application is all-or-nothing: operations run in order against a private copy
and the caller's value is never modified. The first failing operation aborts the
whole patch with an [*Error] naming its index.
*/
package jsonpatch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Operation names.
const (
	OpAdd     = "add"
	OpRemove  = "remove"
	OpReplace = "replace"
	OpMove    = "move"
	OpCopy    = "copy"
	OpTest    = "test"
)

// Operation is one entry of a patch document.
type Operation struct {
	Op    string          `json:"op"`
	Path  string          `json:"path"`
	From  string          `json:"from,omitempty"`
	Value json.RawMessage `json:"value,omitempty"`
}

// Patch is an ordered sequence of operations.
type Patch []Operation

// Error reports the operation that stopped a patch.
type Error struct {
	Index  int
	Op     string
	Path   string
	Reason string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("jsonpatch: operation %d (%s %s): %s", e.Index, e.Op, e.Path, e.Reason)
}

// Apply runs patch against a deep copy of doc and returns the result.
func Apply(doc any, patch Patch) (any, error) {
	current := clone(doc)

	for index, operation := range patch {
		next, err := applyOne(current, operation)
		if err != nil {
			return nil, &Error{Index: index, Op: operation.Op, Path: operation.Path, Reason: err.Error()}
		}
		current = next
	}

	return current, nil
}

// ApplyTo runs patch against the JSON form of target and decodes the result
// into a new T. Members that T does not declare are rejected, as are values
// whose JSON type does not fit the field.
//
// The reported [*Error] Index is -1 when every operation succeeded but the
// resulting document no longer fits T.
func ApplyTo[T any](target T, patch Patch) (T, error) {
	var zero T

	raw, err := json.Marshal(target)
	if err != nil {
		return zero, fmt.Errorf("jsonpatch: encode target: %w", err)
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return zero, fmt.Errorf("jsonpatch: decode target: %w", err)
	}

	patched, err := Apply(doc, patch)
	if err != nil {
		return zero, err
	}

	raw, err = json.Marshal(patched)
	if err != nil {
		return zero, fmt.Errorf("jsonpatch: encode result: %w", err)
	}

	var result T
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&result); err != nil {
		return zero, &Error{Index: -1, Reason: "patched document does not fit the resource: " + err.Error()}
	}

	return result, nil
}

// applyOne dispatches a single operation.
func applyOne(doc any, operation Operation) (any, error) {
	path, err := parsePointer(operation.Path)
	if err != nil {
		return nil, err
	}

	switch operation.Op {
	case OpAdd:
		value, err := decodeValue(operation.Value)
		if err != nil {
			return nil, err
		}
		return add(doc, path, value)

	case OpRemove:
		if len(path) == 0 {
			return nil, fmt.Errorf("cannot remove the document root")
		}
		updated, _, err := remove(doc, path)
		return updated, err

	case OpReplace:
		value, err := decodeValue(operation.Value)
		if err != nil {
			return nil, err
		}
		return replace(doc, path, value)

	case OpMove:
		from, err := parsePointer(operation.From)
		if err != nil {
			return nil, fmt.Errorf("from: %w", err)
		}
		if isProperPrefix(from, path) {
			return nil, fmt.Errorf("cannot move %q into one of its children", operation.From)
		}
		if len(from) == 0 {
			return nil, fmt.Errorf("cannot move the document root")
		}
		updated, value, err := remove(doc, from)
		if err != nil {
			return nil, fmt.Errorf("from: %w", err)
		}
		return add(updated, path, value)

	case OpCopy:
		from, err := parsePointer(operation.From)
		if err != nil {
			return nil, fmt.Errorf("from: %w", err)
		}
		value, err := get(doc, from)
		if err != nil {
			return nil, fmt.Errorf("from: %w", err)
		}
		return add(doc, path, clone(value))

	case OpTest:
		expected, err := decodeValue(operation.Value)
		if err != nil {
			return nil, err
		}
		actual, err := get(doc, path)
		if err != nil {
			return nil, err
		}
		if !reflect.DeepEqual(actual, expected) {
			return nil, fmt.Errorf("test failed: value differs")
		}
		return doc, nil

	default:
		return nil, fmt.Errorf("unsupported operation %q", operation.Op)
	}
}

// # Pointers (RFC 6901)

func parsePointer(pointer string) ([]string, error) {
	if pointer == "" {
		return []string{}, nil
	}
	if !strings.HasPrefix(pointer, "/") {
		return nil, fmt.Errorf("invalid pointer %q: must start with '/'", pointer)
	}

	tokens := strings.Split(pointer[1:], "/")
	for i, token := range tokens {
		tokens[i] = strings.ReplaceAll(strings.ReplaceAll(token, "~1", "/"), "~0", "~")
	}
	return tokens, nil
}

func isProperPrefix(prefix, path []string) bool {
	if len(prefix) >= len(path) {
		return false
	}
	for i := range prefix {
		if prefix[i] != path[i] {
			return false
		}
	}
	return true
}

// arrayIndex parses an array token. allowEnd accepts "-" (one past the last element)
// and the index equal to the length, as "add" does.
func arrayIndex(token string, length int, allowEnd bool) (int, error) {
	if token == "-" {
		if allowEnd {
			return length, nil
		}
		return 0, fmt.Errorf("index '-' is only valid for add")
	}

	if token == "" || (len(token) > 1 && token[0] == '0') {
		return 0, fmt.Errorf("invalid array index %q", token)
	}

	index, err := strconv.Atoi(token)
	if err != nil || index < 0 {
		return 0, fmt.Errorf("invalid array index %q", token)
	}

	limit := length - 1
	if allowEnd {
		limit = length
	}
	if index > limit {
		return 0, fmt.Errorf("array index %d out of bounds (length %d)", index, length)
	}

	return index, nil
}

// # Document operations

func get(node any, path []string) (any, error) {
	for depth, token := range path {
		switch typed := node.(type) {
		case map[string]any:
			child, ok := typed[token]
			if !ok {
				return nil, fmt.Errorf("path %q does not exist", joinPointer(path[:depth+1]))
			}
			node = child
		case []any:
			index, err := arrayIndex(token, len(typed), false)
			if err != nil {
				return nil, err
			}
			node = typed[index]
		default:
			return nil, fmt.Errorf("path %q does not exist", joinPointer(path[:depth+1]))
		}
	}
	return node, nil
}

// add inserts value at path and returns the updated node.
func add(node any, path []string, value any) (any, error) {
	if len(path) == 0 {
		return value, nil
	}

	token, rest := path[0], path[1:]

	switch typed := node.(type) {
	case map[string]any:
		if len(rest) == 0 {
			typed[token] = value
			return typed, nil
		}
		child, ok := typed[token]
		if !ok {
			return nil, fmt.Errorf("path %q does not exist", "/"+token)
		}
		updated, err := add(child, rest, value)
		if err != nil {
			return nil, err
		}
		typed[token] = updated
		return typed, nil

	case []any:
		if len(rest) == 0 {
			index, err := arrayIndex(token, len(typed), true)
			if err != nil {
				return nil, err
			}
			grown := make([]any, 0, len(typed)+1)
			grown = append(grown, typed[:index]...)
			grown = append(grown, value)
			grown = append(grown, typed[index:]...)
			return grown, nil
		}
		index, err := arrayIndex(token, len(typed), false)
		if err != nil {
			return nil, err
		}
		updated, err := add(typed[index], rest, value)
		if err != nil {
			return nil, err
		}
		typed[index] = updated
		return typed, nil

	default:
		return nil, fmt.Errorf("path %q does not exist", "/"+token)
	}
}

// remove deletes the value at path and returns the updated node and the removed value.
func remove(node any, path []string) (any, any, error) {
	token, rest := path[0], path[1:]

	switch typed := node.(type) {
	case map[string]any:
		child, ok := typed[token]
		if !ok {
			return nil, nil, fmt.Errorf("path %q does not exist", "/"+token)
		}
		if len(rest) == 0 {
			delete(typed, token)
			return typed, child, nil
		}
		updated, removed, err := remove(child, rest)
		if err != nil {
			return nil, nil, err
		}
		typed[token] = updated
		return typed, removed, nil

	case []any:
		index, err := arrayIndex(token, len(typed), false)
		if err != nil {
			return nil, nil, err
		}
		if len(rest) == 0 {
			removed := typed[index]
			shrunk := make([]any, 0, len(typed)-1)
			shrunk = append(shrunk, typed[:index]...)
			shrunk = append(shrunk, typed[index+1:]...)
			return shrunk, removed, nil
		}
		updated, removed, err := remove(typed[index], rest)
		if err != nil {
			return nil, nil, err
		}
		typed[index] = updated
		return typed, removed, nil

	default:
		return nil, nil, fmt.Errorf("path %q does not exist", "/"+token)
	}
}

// replace swaps the existing value at path for value.
func replace(node any, path []string, value any) (any, error) {
	if len(path) == 0 {
		return value, nil
	}
	if _, err := get(node, path); err != nil {
		return nil, err
	}
	updated, _, err := remove(node, path)
	if err != nil {
		return nil, err
	}
	return add(updated, path, value)
}

// # Values

func decodeValue(raw json.RawMessage) (any, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("missing value")
	}
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, fmt.Errorf("invalid value: %w", err)
	}
	return value, nil
}

// clone deep-copies a decoded JSON value.
func clone(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		copied := make(map[string]any, len(typed))
		for key, child := range typed {
			copied[key] = clone(child)
		}
		return copied
	case []any:
		copied := make([]any, len(typed))
		for i, child := range typed {
			copied[i] = clone(child)
		}
		return copied
	default:
		return typed
	}
}

func joinPointer(tokens []string) string {
	escaped := make([]string, len(tokens))
	for i, token := range tokens {
		escaped[i] = strings.ReplaceAll(strings.ReplaceAll(token, "~", "~0"), "/", "~1")
	}
	return "/" + strings.Join(escaped, "/")
}
