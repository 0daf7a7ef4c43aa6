// Copyright (c) 2026 Lumen. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/lumen/internal/auth"
)

/*
TestHandler_Login verifies the JSON contract of POST /user/login.
*/
func TestHandler_Login(t *testing.T) {
	f := newFixture(t)
	router := chi.NewRouter()
	auth.NewHandler(f.service).RegisterRoutes(router)

	post := func(body string) (int, map[string]any) {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/user/login", strings.NewReader(body)))

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &decoded))
		return recorder.Code, decoded
	}

	// 1. Success
	status, body := post(`{"email":"admin@lumen.local","password":"` + password + `"}`)
	require.Equal(t, http.StatusOK, status)

	data := body["data"].(map[string]any)
	assert.NotEmpty(t, data["jwtToken"])
	assert.Equal(t, adminID, data["_id"])
	assert.Equal(t, "Anna", data["firstName"])
	assert.Contains(t, data, "expired")

	// 2. Wrong password
	status, body = post(`{"email":"admin@lumen.local","password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", body["code"])

	// 3. Broken JSON
	status, body = post(`{"email":`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "INVALID_INPUT", body["code"])
}
