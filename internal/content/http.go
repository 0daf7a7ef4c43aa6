// Copyright (c) 2026 Lumen. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/lumen/internal/platform/constants"
	"github.com/taibuivan/lumen/internal/platform/middleware"
	requestutil "github.com/taibuivan/lumen/internal/platform/request"
	"github.com/taibuivan/lumen/internal/platform/respond"
	"github.com/taibuivan/lumen/pkg/pagination"
)

// paramID names the id URL parameter.
const paramID = "id"

// Handler serves the public and administrative read routes of every collection.
type Handler struct {
	gate     middleware.Evaluator
	services []*Service
}

func NewHandler(gate middleware.Evaluator, services ...*Service) *Handler {
	return &Handler{gate: gate, services: services}
}

/*
RegisterRoutes mounts two routes per collection under router, and mirrors
them under /admin:

	GET /{name}        one page, ?perPage=&page=
	GET /{name}/{id}   one document
*/
func (handler *Handler) RegisterRoutes(router chi.Router) {
	handler.mount(router)

	router.Route("/"+constants.AdminPathSegment, func(adminRoute chi.Router) {
		handler.mount(adminRoute)
	})
}

func (handler *Handler) mount(router chi.Router) {
	for _, service := range handler.services {
		router.Route("/"+service.Descriptor().Name, func(collection chi.Router) {
			collection.With(middleware.Authorize(handler.gate, "")).Get("/", handler.list(service))
			collection.With(middleware.Authorize(handler.gate, paramID)).Get("/{"+paramID+"}", handler.get(service))
		})
	}
}

func (handler *Handler) get(service *Service) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		decision, err := requestutil.Decision(request)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		document, err := service.GetByID(request.Context(), decision.ID, decision.Language, decision.Privileged)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		respond.ContentLanguage(writer, decision.Language.String())
		respond.OK(writer, document)
	}
}

func (handler *Handler) list(service *Service) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		decision, err := requestutil.Decision(request)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		pageRequest, err := pagination.FromRequest(request)
		if err != nil {
			respond.Error(writer, request, PageError(err))
			return
		}

		page, err := service.GetPage(request.Context(), pageRequest, decision.Language, decision.Privileged)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		respond.ContentLanguage(writer, decision.Language.String())
		respond.Page(writer, page)
	}
}
