// Copyright (c) 2026 Lumen. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination provides the page request, window maths and result
// envelope used by every listing endpoint.
//
// # Overview
//
// A [Request] is parsed strictly from the "page" and "perPage" query
// parameters. [Paginate] turns it into a storage [Window], runs one fetch that
// returns both the slice and the total count, and derives the page metadata.
// Asking for a page past the end is an error, never an empty success.
package pagination

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"
)

const (
	// QueryPage and QueryPerPage name the query parameters.
	QueryPage    = "page"
	QueryPerPage = "perPage"
)

var (
	ErrMissingPage       = errors.New("pagination: missing page")
	ErrMissingPerPage    = errors.New("pagination: missing perPage")
	ErrNonIntegerPage    = errors.New("pagination: page is not an integer")
	ErrNonIntegerPerPage = errors.New("pagination: perPage is not an integer")
	ErrPageOutOfRange    = errors.New("pagination: page must be at least 1")
	ErrPerPageOutOfRange = errors.New("pagination: perPage must be at least 1")

	// ErrNoItems is returned when the requested page holds no documents.
	ErrNoItems = errors.New("pagination: no items found")
)

// # Request

// Request is a validated page request. Both numbers are 1-based and positive.
type Request struct {
	Page    int
	PerPage int
}

// Validate checks the numeric bounds of a request.
func (r Request) Validate() error {
	if r.Page < 1 {
		return ErrPageOutOfRange
	}
	if r.PerPage < 1 {
		return ErrPerPageOutOfRange
	}
	return nil
}

// Window returns the storage skip/limit pair for the request.
//
// A skip that does not fit in an int saturates at [math.MaxInt]; no
// collection is that large, so such a window is always past the end.
func (r Request) Window() Window {
	window := Window{Limit: r.PerPage}
	if r.Page <= 1 || r.PerPage <= 0 {
		return window
	}
	if r.Page-1 > math.MaxInt/r.PerPage {
		window.Skip = math.MaxInt
		return window
	}
	window.Skip = (r.Page - 1) * r.PerPage
	return window
}

// Window is the slice of an ordered collection a fetch must return.
type Window struct {
	Skip  int
	Limit int
}

// FromRequest parses "perPage" and "page" from an HTTP request.
//
// # Strictness
//
// Missing and non-integer values are errors rather than defaults, and perPage
// is checked before page.
func FromRequest(request *http.Request) (Request, error) {
	query := request.URL.Query()

	perPage, err := parseIntParam(query.Get(QueryPerPage), ErrMissingPerPage, ErrNonIntegerPerPage)
	if err != nil {
		return Request{}, err
	}

	page, err := parseIntParam(query.Get(QueryPage), ErrMissingPage, ErrNonIntegerPage)
	if err != nil {
		return Request{}, err
	}

	req := Request{Page: page, PerPage: perPage}
	if err := req.Validate(); err != nil {
		return Request{}, err
	}
	return req, nil
}

// parseIntParam parses a single integer query parameter.
func parseIntParam(raw string, missing, nonInteger error) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, missing
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, nonInteger
	}
	return n, nil
}

// # Engine

// Result is one page of documents with its metadata.
type Result[T any] struct {
	Data        []T `json:"data"`
	DocsOnPage  int `json:"docsOnPage"`
	TotalDocs   int `json:"totalDocs"`
	TotalPages  int `json:"totalPages"`
	CurrentPage int `json:"currentPage"`
}

// FetchFunc returns the documents inside window and the total document count.
// Both must come from the same storage round trip.
type FetchFunc[T any] func(ctx context.Context, window Window) ([]T, int, error)

/*
Paginate runs one fetch for req and assembles the page.

Parameters:
  - ctx: context.Context
  - req: Request (already validated)
  - fetch: FetchFunc[T]

Returns:
  - *Result[T]: The page and its metadata
  - error: ErrNoItems when the page is past the end, or the fetch error

A page inside the counted range that comes back empty because rows vanished
between count and slice is returned as is.
*/
func Paginate[T any](ctx context.Context, req Request, fetch FetchFunc[T]) (*Result[T], error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	docs, total, err := fetch(ctx, req.Window())
	if err != nil {
		return nil, err
	}

	totalPages := TotalPages(total, req.PerPage)
	if req.Page > totalPages {
		return nil, ErrNoItems
	}

	if docs == nil {
		docs = []T{}
	}

	return &Result[T]{
		Data:        docs,
		DocsOnPage:  len(docs),
		TotalDocs:   total,
		TotalPages:  totalPages,
		CurrentPage: req.Page,
	}, nil
}

// TotalPages returns ceil(total / perPage), or 0 for a non-positive perPage.
func TotalPages(total, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}
