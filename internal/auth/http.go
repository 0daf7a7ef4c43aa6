// Copyright (c) 2026 Lumen. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/lumen/internal/platform/request"
	"github.com/taibuivan/lumen/internal/platform/respond"
)

// Handler implements the login endpoint.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// RegisterRoutes mounts POST /user/login.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/user/login", handler.login)
}

// login handles POST /api/v1/user/login.
//
// # Returns
//   - 200 with the session on success.
//   - 422 for a malformed payload, 401 for bad credentials.
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input LoginInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Login(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, session)
}
