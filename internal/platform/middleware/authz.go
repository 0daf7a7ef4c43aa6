// Copyright (c) 2026 Lumen. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/lumen/internal/platform/access"
	"github.com/taibuivan/lumen/internal/platform/constants"
	"github.com/taibuivan/lumen/internal/platform/ctxutil"
	"github.com/taibuivan/lumen/internal/platform/respond"
)

// Evaluator is the access gate as seen by the HTTP layer.
type Evaluator interface {
	Evaluate(input access.Input) (*access.Decision, error)
}

// Authorize runs the access gate before a content handler.
//
// # Usage
//
// Mount it per route with chi's With, so the route's URL parameters are
// already resolved:
//
//	router.With(middleware.Authorize(gate, "id")).Get("/{id}", handler.get)
//	router.With(middleware.Authorize(gate, "")).Get("/", handler.list)
//
// # Flow
//  1. Build an [access.Input] from headers, path and the optional id parameter.
//  2. Reject with the gate's error (422, 401 or 403) before any storage call.
//  3. Store the [access.Decision] on the context and tag the request logger with the subject.
func Authorize(gate Evaluator, idParam string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			input := access.Input{
				AcceptLanguage: request.Header.Get(constants.HeaderAcceptLanguage),
				Authorization:  request.Header.Get(constants.HeaderAuthorization),
				Path:           request.URL.Path,
			}
			if idParam != "" {
				input.ID = chi.URLParam(request, idParam)
				input.HasID = true
			}

			decision, err := gate.Evaluate(input)
			if err != nil {
				respond.Error(writer, request, err)
				return
			}

			ctx := access.WithDecision(request.Context(), decision)
			if decision.Claims != nil {
				ctx = ctxutil.WithAuthUser(ctx, decision.Claims)
			}

			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}
