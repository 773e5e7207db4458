// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package project

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/folio/internal/platform/dberr"
	"github.com/taibuivan/folio/internal/platform/policy"
	"github.com/taibuivan/folio/internal/platform/validate"
	"github.com/taibuivan/folio/pkg/slice"
	"github.com/taibuivan/folio/pkg/uuid"
)

// Service implements project use cases.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new project [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// List returns projects matching filter. Anyone may read projects.
func (service *Service) List(context context.Context, filter Filter) ([]*Project, error) {
	return service.repo.List(context, filter)
}

// Count returns the number of projects.
func (service *Service) Count(context context.Context) (int, error) {
	return service.repo.Count(context)
}

/*
Get returns one project.

Returns:
  - *Project: The project
  - error: NotFound "Project" or storage failures
*/
func (service *Service) Get(context context.Context, id string) (*Project, error) {
	project, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, dberr.NotFound(err, "Project")
	}
	return project, nil
}

/*
Create adds a project. Without a display order the project goes last.

Parameters:
  - context: context.Context (carries the principal)
  - input: Input

Returns:
  - *Project: The stored project
  - error: Unauthorized, Forbidden, ValidationError or storage failures
*/
func (service *Service) Create(context context.Context, input Input) (*Project, error) {
	principal, err := policy.RequireEditor(context)
	if err != nil {
		return nil, err
	}

	project := &Project{ID: uuid.New(), Tags: []string{}}
	apply(project, input)

	if err := validateProject(project); err != nil {
		return nil, err
	}

	if input.DisplayOrder == nil {
		count, err := service.repo.Count(context)
		if err != nil {
			return nil, err
		}
		project.DisplayOrder = count
	}

	if err := service.repo.Create(context, project); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "project_created",
		slog.String("project_id", project.ID),
		slog.String("user_id", principal.UserID),
	)
	return project, nil
}

/*
Update applies a partial update to a project.

Returns:
  - *Project: The updated project
  - error: Unauthorized, Forbidden, NotFound, ValidationError or storage failures
*/
func (service *Service) Update(context context.Context, id string, input Input) (*Project, error) {
	principal, err := policy.RequireEditor(context)
	if err != nil {
		return nil, err
	}

	project, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, dberr.NotFound(err, "Project")
	}

	apply(project, input)
	if err := validateProject(project); err != nil {
		return nil, err
	}

	if err := service.repo.Update(context, project); err != nil {
		return nil, dberr.NotFound(err, "Project")
	}

	service.logger.InfoContext(context, "project_updated",
		slog.String("project_id", project.ID),
		slog.String("user_id", principal.UserID),
	)
	return project, nil
}

// Delete removes a project.
func (service *Service) Delete(context context.Context, id string) error {
	principal, err := policy.RequireEditor(context)
	if err != nil {
		return err
	}

	if err := service.repo.Delete(context, id); err != nil {
		return dberr.NotFound(err, "Project")
	}

	service.logger.WarnContext(context, "project_deleted",
		slog.String("project_id", id),
		slog.String("user_id", principal.UserID),
	)
	return nil
}

// # Internal Helpers

func apply(project *Project, input Input) {
	if input.Title != nil {
		project.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		project.Description = input.Description
	}
	if input.Category != nil {
		project.Category = input.Category
	}
	if input.Tags != nil {
		project.Tags = slice.CompactStrings(*input.Tags)
	}
	if input.ImageURL != nil {
		project.ImageURL = input.ImageURL
	}
	if input.GithubURL != nil {
		project.GithubURL = input.GithubURL
	}
	if input.LiveURL != nil {
		project.LiveURL = input.LiveURL
	}
	if input.Featured != nil {
		project.Featured = *input.Featured
	}
	if input.DisplayOrder != nil {
		project.DisplayOrder = *input.DisplayOrder
	}
}

func validateProject(project *Project) error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, project.Title).
		MaxLen(FieldTitle, project.Title, 200).
		OptionalURL(FieldImageURL, project.ImageURL).
		OptionalURL(FieldGithubURL, project.GithubURL).
		OptionalURL(FieldLiveURL, project.LiveURL).
		Custom(FieldDisplayOrder, project.DisplayOrder < 0, "Must not be negative")
	return validator.Err()
}
