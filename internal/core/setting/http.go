// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package setting

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/folio/internal/platform/request"
	"github.com/taibuivan/folio/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterAdminRoutes mounts the settings editor under /admin/settings.
func (handler *Handler) RegisterAdminRoutes(router chi.Router) {
	router.Get("/", handler.list)
	router.Put("/", handler.saveAll)
	router.Post("/", handler.add)
	router.Delete("/{key}", handler.delete)
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	settings, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, settings)
}

// saveAll accepts {"key": "value", ...}.
func (handler *Handler) saveAll(writer http.ResponseWriter, request *http.Request) {
	var values map[string]string
	if err := requestutil.DecodeJSON(request, &values); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.SaveAll(request.Context(), values); err != nil {
		respond.Error(writer, request, err)
		return
	}

	settings, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, settings)
}

func (handler *Handler) add(writer http.ResponseWriter, request *http.Request) {
	var input AddInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	setting, err := handler.service.Add(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, setting)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), requestutil.Param(request, FieldKey)); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
