// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package media

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/folio/internal/platform/request"
	"github.com/taibuivan/folio/internal/platform/respond"
	"github.com/taibuivan/folio/internal/platform/validate"
)

// multipartOverhead leaves room for the form boundary and headers.
const multipartOverhead = 1 << 20

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterAdminRoutes mounts POST /admin/media and DELETE /admin/media/{key...}.
func (handler *Handler) RegisterAdminRoutes(router chi.Router) {
	router.Post("/", handler.upload)
	router.Delete("/*", handler.delete)
}

func (handler *Handler) upload(writer http.ResponseWriter, request *http.Request) {
	request.Body = http.MaxBytesReader(writer, request.Body, MaxUploadSize+multipartOverhead)
	if err := request.ParseMultipartForm(MaxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(writer, request, validate.RequiredError(FieldFile, "File must be at most 5 MB"))
			return
		}
		respond.Error(writer, request, validate.RequiredError(FieldFile, "File is required"))
		return
	}

	file, header, err := request.FormFile(FieldFile)
	if err != nil {
		respond.Error(writer, request, validate.RequiredError(FieldFile, "File is required"))
		return
	}
	defer file.Close()

	object, err := handler.service.Upload(request.Context(), file, header.Size)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, object)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), requestutil.Param(request, "*")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
