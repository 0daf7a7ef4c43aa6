// Copyright (c) 2026 Lumen. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil provides utilities for extracting data from HTTP requests.

It covers JSON body decoding and the access decision attached by the gate.
*/
package requestutil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/taibuivan/lumen/internal/platform/access"
	"github.com/taibuivan/lumen/internal/platform/apperr"
	"github.com/taibuivan/lumen/internal/platform/validate"
)

// maxBodyBytes bounds the JSON payloads the API accepts.
const maxBodyBytes = 1 << 16

var errMissingDecision = errors.New("requestutil: route served without access decision")

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	decoder := json.NewDecoder(io.LimitReader(request.Body, maxBodyBytes))
	if err := decoder.Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Decision returns the access gate outcome attached to the request.

Returns:
  - *access.Decision: The gate outcome
  - error: apperr.Internal when the route was mounted without the gate
*/
func Decision(request *http.Request) (*access.Decision, error) {
	decision := access.FromContext(request.Context())
	if decision == nil {
		return nil, apperr.Internal(errMissingDecision)
	}
	return decision, nil
}
