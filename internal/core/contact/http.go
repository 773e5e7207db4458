// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package contact

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/ctxutil"
	requestutil "github.com/taibuivan/folio/internal/platform/request"
	"github.com/taibuivan/folio/internal/platform/respond"
)

const successMessage = "Message sent successfully"

// Handler serves POST /contact with the {success, message} / {error} contract
// the public site's form expects, not the standard envelope.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type successResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// RegisterRoutes mounts POST /contact on the root router. GET /contact
// belongs to the site pages.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/contact", handler.submit)
}

func (handler *Handler) submit(writer http.ResponseWriter, request *http.Request) {
	var submission Submission
	if err := requestutil.DecodeJSON(request, &submission); err != nil {
		handler.fail(writer, request, err)
		return
	}

	if err := handler.service.Submit(request.Context(), submission); err != nil {
		handler.fail(writer, request, err)
		return
	}

	respond.JSON(writer, http.StatusOK, successResponse{Success: true, Message: successMessage})
}

func (handler *Handler) fail(writer http.ResponseWriter, request *http.Request, err error) {
	appError := apperr.As(err)
	if appError == nil {
		appError = apperr.Internal(err)
	}

	if appError.HTTPStatus >= http.StatusInternalServerError {
		ctxutil.GetLogger(request.Context()).ErrorContext(request.Context(), "contact_request_failed",
			slog.String("code", appError.Code),
			slog.String("request_id", ctxutil.GetRequestID(request.Context())),
			slog.Any("cause", appError.Cause),
		)
	}

	respond.JSON(writer, appError.HTTPStatus, errorResponse{Error: appError.Message})
}
