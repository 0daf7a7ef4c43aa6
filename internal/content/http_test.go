// Copyright (c) 2026 Lumen. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/lumen/internal/content"
	"github.com/taibuivan/lumen/internal/platform/access"
	"github.com/taibuivan/lumen/internal/platform/sec"
)

// tokenTable accepts a fixed set of bearer tokens.
type tokenTable map[string]*sec.AuthClaims

func (table tokenTable) Verify(token string) (*sec.AuthClaims, error) {
	if claims, ok := table[token]; ok {
		return claims, nil
	}
	return nil, sec.ErrInvalidToken
}

func newRouter(t *testing.T) http.Handler {
	t.Helper()

	store := seedStore(t)
	logger := discardLogger()
	tokens := tokenTable{
		"admin-token": {RegisteredClaims: jwt.RegisteredClaims{Subject: creatorID}, Roles: []string{"ROLE_ADMIN"}},
		"user-token":  {RegisteredClaims: jwt.RegisteredClaims{Subject: "reader"}, Roles: []string{"ROLE_USER"}},
	}

	services := make([]*content.Service, 0, len(content.Descriptors()))
	for _, descriptor := range content.Descriptors() {
		services = append(services, content.NewService(descriptor, store, logger))
	}
	handler := content.NewHandler(access.NewGate(tokens, true), services...)

	router := chi.NewRouter()
	router.Route("/api/v1", handler.RegisterRoutes)
	return router
}

type response struct {
	status   int
	language string
	body     map[string]any
}

func get(t *testing.T, router http.Handler, path, lang, token string) response {
	t.Helper()

	request := httptest.NewRequest(http.MethodGet, path, http.NoBody)
	if lang != "" {
		request.Header.Set("Accept-Language", lang)
	}
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body), recorder.Body.String())

	return response{status: recorder.Code, language: recorder.Header().Get("Content-Language"), body: body}
}

/*
TestHandler_Listings covers the 23 enabled + 23 disabled scenario over HTTP.
*/
func TestHandler_Listings(t *testing.T) {
	router := newRouter(t)

	// 1. Public first page
	res := get(t, router, "/api/v1/article?perPage=10&page=1", "en", "")
	require.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, "en", res.language)
	assert.EqualValues(t, 23, res.body["totalDocs"])
	assert.EqualValues(t, 3, res.body["totalPages"])
	assert.EqualValues(t, 10, res.body["docsOnPage"])
	assert.EqualValues(t, 1, res.body["currentPage"])

	data := res.body["data"].([]any)
	first := data[0].(map[string]any)
	assert.Equal(t, articleID(1), first["_id"])
	assert.Equal(t, "Title 1", first["title"])
	assert.NotContains(t, first, "isEnabled")

	// 2. Public last page
	res = get(t, router, "/api/v1/article?perPage=10&page=3", "pl", "")
	require.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, "pl", res.language)
	assert.EqualValues(t, 3, res.body["docsOnPage"])

	// 3. Past the end
	res = get(t, router, "/api/v1/article?perPage=10&page=4", "en", "")
	assert.Equal(t, http.StatusNotFound, res.status)
	assert.Equal(t, "No items found", res.body["error"])
	assert.Equal(t, "NOT_FOUND", res.body["code"])
	assert.Empty(t, res.language)

	// 4. Privileged
	res = get(t, router, "/api/v1/admin/article?perPage=10&page=5", "en", "admin-token")
	require.Equal(t, http.StatusOK, res.status)
	assert.EqualValues(t, 46, res.body["totalDocs"])
	assert.EqualValues(t, 6, res.body["docsOnPage"])

	last := res.body["data"].([]any)[5].(map[string]any)
	assert.Equal(t, articleID(46), last["_id"])
	assert.Equal(t, false, last["isEnabled"])
	assert.Equal(t, "Tytuł 46", last["titlePl"])
}

/*
TestHandler_Single covers single-document reads on both projections.
*/
func TestHandler_Single(t *testing.T) {
	router := newRouter(t)

	res := get(t, router, "/api/v1/article/"+articleID(3), "pl", "")
	require.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, "pl", res.language)

	document := res.body["data"].(map[string]any)
	assert.Equal(t, "Tytuł 3", document["title"])
	assert.Equal(t, "Treść 3", document["content"])
	assert.Equal(t, "Poradniki", document["articleType"].(map[string]any)["description"])

	// Disabled documents are hidden from the public
	res = get(t, router, "/api/v1/article/"+articleID(4), "pl", "")
	assert.Equal(t, http.StatusNotFound, res.status)
	assert.Equal(t, "Article not found", res.body["error"])

	res = get(t, router, "/api/v1/admin/article/"+articleID(4), "pl", "admin-token")
	require.Equal(t, http.StatusOK, res.status)
	document = res.body["data"].(map[string]any)
	assert.Equal(t, map[string]any{"pl": "Treść 4", "en": "Content 4"}, document["content"])
	assert.Equal(t, false, document["isEnabled"])

	// Roles only on the privileged user projection
	res = get(t, router, "/api/v1/user/"+creatorID, "en", "")
	require.Equal(t, http.StatusOK, res.status)
	assert.NotContains(t, res.body["data"], "roles")
	assert.NotContains(t, res.body["data"], "passwordHash")

	res = get(t, router, "/api/v1/admin/user/"+creatorID, "en", "admin-token")
	require.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, []any{"ROLE_ADMIN"}, res.body["data"].(map[string]any)["roles"])
}

/*
TestHandler_Rejections verifies the error responses of malformed and unauthorized reads.
*/
func TestHandler_Rejections(t *testing.T) {
	router := newRouter(t)

	tests := []struct {
		name     string
		path     string
		lang     string
		token    string
		status   int
		wantCode string
	}{
		{"missing_language", "/api/v1/glossary?perPage=1&page=1", "", "", http.StatusUnprocessableEntity, "INVALID_INPUT"},
		{"unsupported_language", "/api/v1/glossary?perPage=1&page=1", "de", "", http.StatusUnprocessableEntity, "INVALID_INPUT"},
		{"malformed_id", "/api/v1/glossary/not-a-uuid", "en", "", http.StatusUnprocessableEntity, "INVALID_INPUT"},
		{"missing_per_page", "/api/v1/glossary?page=1", "en", "", http.StatusUnprocessableEntity, "INVALID_INPUT"},
		{"non_integer_page", "/api/v1/glossary?perPage=10&page=one", "en", "", http.StatusUnprocessableEntity, "INVALID_INPUT"},
		{"per_page_zero", "/api/v1/glossary?perPage=0&page=1", "en", "", http.StatusUnprocessableEntity, "INVALID_INPUT"},
		{"huge_page", "/api/v1/glossary?perPage=100&page=100000000000000000", "en", "", http.StatusNotFound, "NOT_FOUND"},
		{"admin_without_token", "/api/v1/admin/glossary?perPage=1&page=1", "en", "", http.StatusUnauthorized, "UNAUTHORIZED"},
		{"admin_bad_token", "/api/v1/admin/glossary?perPage=1&page=1", "en", "forged", http.StatusUnauthorized, "UNAUTHORIZED"},
		{"admin_without_role", "/api/v1/admin/glossary?perPage=1&page=1", "en", "user-token", http.StatusForbidden, "FORBIDDEN"},
		{"language_before_credential", "/api/v1/admin/glossary?perPage=1&page=1", "", "", http.StatusUnprocessableEntity, "INVALID_INPUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := get(t, router, tt.path, tt.lang, tt.token)
			assert.Equal(t, tt.status, res.status)
			assert.Equal(t, tt.wantCode, res.body["code"])
			assert.Empty(t, res.language)
		})
	}
}
