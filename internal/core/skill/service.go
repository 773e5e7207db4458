// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package skill

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/folio/internal/platform/dberr"
	"github.com/taibuivan/folio/internal/platform/policy"
	"github.com/taibuivan/folio/internal/platform/validate"
	"github.com/taibuivan/folio/pkg/uuid"
)

// Service implements skill use cases.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new skill [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// List returns every skill ordered by category, then display order.
func (service *Service) List(context context.Context) ([]*Skill, error) {
	return service.repo.List(context)
}

// Grouped returns the skills split by category.
func (service *Service) Grouped(context context.Context) ([]Group, error) {
	skills, err := service.repo.List(context)
	if err != nil {
		return nil, err
	}
	return GroupByCategory(skills), nil
}

/*
Create adds a skill. The level defaults to [DefaultLevel].

Returns:
  - *Skill: The stored skill
  - error: Unauthorized, Forbidden, ValidationError or storage failures
*/
func (service *Service) Create(context context.Context, input Input) (*Skill, error) {
	principal, err := policy.RequireEditor(context)
	if err != nil {
		return nil, err
	}

	skill := &Skill{ID: uuid.New(), Level: DefaultLevel}
	apply(skill, input)
	if err := validateSkill(skill); err != nil {
		return nil, err
	}

	if err := service.repo.Create(context, skill); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "skill_created",
		slog.String("skill_id", skill.ID),
		slog.String("user_id", principal.UserID),
	)
	return skill, nil
}

// Update applies a partial update.
func (service *Service) Update(context context.Context, id string, input Input) (*Skill, error) {
	principal, err := policy.RequireEditor(context)
	if err != nil {
		return nil, err
	}

	skill, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, dberr.NotFound(err, "Skill")
	}

	apply(skill, input)
	if err := validateSkill(skill); err != nil {
		return nil, err
	}

	if err := service.repo.Update(context, skill); err != nil {
		return nil, dberr.NotFound(err, "Skill")
	}

	service.logger.InfoContext(context, "skill_updated",
		slog.String("skill_id", id),
		slog.String("user_id", principal.UserID),
	)
	return skill, nil
}

// Delete removes a skill.
func (service *Service) Delete(context context.Context, id string) error {
	principal, err := policy.RequireEditor(context)
	if err != nil {
		return err
	}

	if err := service.repo.Delete(context, id); err != nil {
		return dberr.NotFound(err, "Skill")
	}

	service.logger.WarnContext(context, "skill_deleted",
		slog.String("skill_id", id),
		slog.String("user_id", principal.UserID),
	)
	return nil
}

func apply(skill *Skill, input Input) {
	if input.Name != nil {
		skill.Name = strings.TrimSpace(*input.Name)
	}
	if input.Category != nil {
		skill.Category = strings.TrimSpace(*input.Category)
	}
	if input.Level != nil {
		skill.Level = *input.Level
	}
	if input.DisplayOrder != nil {
		skill.DisplayOrder = *input.DisplayOrder
	}
}

func validateSkill(skill *Skill) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, skill.Name).
		MaxLen(FieldName, skill.Name, 100).
		Required(FieldCategory, skill.Category).
		Range(FieldLevel, skill.Level, MinLevel, MaxLevel).
		Custom(FieldDisplayOrder, skill.DisplayOrder < 0, "Must not be negative")
	return validator.Err()
}
