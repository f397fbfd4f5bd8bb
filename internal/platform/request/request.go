// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/fiver/internal/platform/apperr"
	"github.com/taibuivan/fiver/internal/platform/constants"
	"github.com/taibuivan/fiver/internal/platform/validate"
)

// ErrMissingBody is returned when a request that requires a body has none.
var ErrMissingBody = apperr.BadRequest("Request body is required")

/*
DecodeJSON reads the request body and decodes it into the target structure.

The body must hold exactly one JSON value. A literal null counts as a missing
body, and anything after the first value makes the payload invalid.

Parameters:
  - request: *http.Request
  - target: any (Pointer to the destination struct)

Returns:
  - error: ErrMissingBody for an empty or null body, validate.ErrInvalidJSON if
    decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target any) error {
	if request.Body == nil || request.Body == http.NoBody {
		return ErrMissingBody
	}

	decoder := json.NewDecoder(io.LimitReader(request.Body, constants.MaxRequestBodyBytes))

	var raw json.RawMessage
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrMissingBody
		}
		return validate.ErrInvalidJSON
	}

	if err := decoder.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return validate.ErrInvalidJSON
	}

	if bytes.Equal(raw, []byte("null")) {
		return ErrMissingBody
	}

	if err := json.Unmarshal(raw, target); err != nil {
		return validate.ErrInvalidJSON
	}

	return nil
}

/*
IntID retrieves a named URL parameter and parses it as a positive integer.

Returns:
  - int: The identifier
  - error: apperr.BadRequest if the parameter is not a positive integer
*/
func IntID(request *http.Request, name string) (int, error) {
	raw := chi.URLParam(request, name)

	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, apperr.BadRequest("Invalid " + name + ": " + strconv.Quote(raw))
	}

	return id, nil
}

/*
MediaType returns the lower-cased media type of the request Content-Type,
without parameters. It returns "" when the header is absent or unparsable.
*/
func MediaType(request *http.Request) string {
	header := request.Header.Get(constants.HeaderContentType)
	if header == "" {
		return ""
	}

	mediaType, _, err := mime.ParseMediaType(header)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(header))
	}

	return mediaType
}
