// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package site

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/folio/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts GET /, GET /about and GET /contact.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", page(handler.service.Home))
	router.Get("/about", page(handler.service.About))
	router.Get("/contact", page(handler.service.Contact))
}

// page adapts a page builder to an http.HandlerFunc.
func page[T any](build func(context.Context) (*T, error)) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		result, err := build(request.Context())
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		respond.OK(writer, result)
	}
}
