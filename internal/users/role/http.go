// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package role

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/folio/internal/platform/request"
	"github.com/taibuivan/folio/internal/platform/respond"
)

// Handler serves the role-assignment admin endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new role [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the handler under /admin/users.
//
// # Endpoints
//   - GET    /     : List assignments
//   - POST   /     : Assign a role by user_id or email
//   - DELETE /{id} : Revoke an assignment
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listAssignments)
	router.Post("/", handler.assign)
	router.Delete("/{id}", handler.revoke)
}

func (handler *Handler) listAssignments(writer http.ResponseWriter, request *http.Request) {
	assignments, err := handler.service.ListAssignments(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, assignments)
}

/*
POST /admin/users.

Request:
  - body: AssignInput

Response:
  - 201: Assignment
  - 400: Validation failure
  - 404: Unknown account
  - 409: Role already held
*/
func (handler *Handler) assign(writer http.ResponseWriter, request *http.Request) {
	var input AssignInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	assignment, err := handler.service.Assign(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, assignment)
}

func (handler *Handler) revoke(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Revoke(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
