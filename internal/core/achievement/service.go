// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package achievement

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/folio/internal/platform/dberr"
	"github.com/taibuivan/folio/internal/platform/policy"
	"github.com/taibuivan/folio/internal/platform/validate"
	"github.com/taibuivan/folio/pkg/uuid"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (service *Service) List(context context.Context, filter Filter) ([]*Achievement, error) {
	return service.repo.List(context, filter)
}

func (service *Service) Count(context context.Context) (int, error) {
	return service.repo.Count(context)
}

// Create adds an achievement. Category defaults to competition and the new
// entry goes last unless a display order is given.
func (service *Service) Create(context context.Context, input Input) (*Achievement, error) {
	principal, err := policy.RequireEditor(context)
	if err != nil {
		return nil, err
	}

	achievement := &Achievement{ID: uuid.New(), Category: CategoryCompetition}
	apply(achievement, input)
	if err := validateAchievement(achievement); err != nil {
		return nil, err
	}

	if input.DisplayOrder == nil {
		if achievement.DisplayOrder, err = service.repo.Count(context); err != nil {
			return nil, err
		}
	}

	if err := service.repo.Create(context, achievement); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "achievement_created",
		slog.String("achievement_id", achievement.ID),
		slog.String("user_id", principal.UserID),
	)
	return achievement, nil
}

func (service *Service) Update(context context.Context, id string, input Input) (*Achievement, error) {
	principal, err := policy.RequireEditor(context)
	if err != nil {
		return nil, err
	}

	achievement, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, dberr.NotFound(err, "Achievement")
	}

	apply(achievement, input)
	if err := validateAchievement(achievement); err != nil {
		return nil, err
	}

	if err := service.repo.Update(context, achievement); err != nil {
		return nil, dberr.NotFound(err, "Achievement")
	}

	service.logger.InfoContext(context, "achievement_updated",
		slog.String("achievement_id", id),
		slog.String("user_id", principal.UserID),
	)
	return achievement, nil
}

func (service *Service) Delete(context context.Context, id string) error {
	principal, err := policy.RequireEditor(context)
	if err != nil {
		return err
	}

	if err := service.repo.Delete(context, id); err != nil {
		return dberr.NotFound(err, "Achievement")
	}

	service.logger.WarnContext(context, "achievement_deleted",
		slog.String("achievement_id", id),
		slog.String("user_id", principal.UserID),
	)
	return nil
}

func apply(achievement *Achievement, input Input) {
	if input.Title != nil {
		achievement.Title = strings.TrimSpace(*input.Title)
	}
	if input.Category != nil {
		achievement.Category = Category(*input.Category)
	}
	if input.Event != nil {
		achievement.Event = input.Event
	}
	if input.Organization != nil {
		achievement.Organization = input.Organization
	}
	if input.Level != nil {
		achievement.Level = input.Level
	}
	if input.Date != nil {
		achievement.Date = input.Date
	}
	if input.Location != nil {
		achievement.Location = input.Location
	}
	if input.Description != nil {
		achievement.Description = input.Description
	}
	if input.Badge != nil {
		achievement.Badge = input.Badge
	}
	if input.Verified != nil {
		achievement.Verified = *input.Verified
	}
	if input.DisplayOrder != nil {
		achievement.DisplayOrder = *input.DisplayOrder
	}
}

func validateAchievement(achievement *Achievement) error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, achievement.Title).
		MaxLen(FieldTitle, achievement.Title, 200).
		OneOf(FieldCategory, string(achievement.Category), Categories...).
		Custom(FieldDisplayOrder, achievement.DisplayOrder < 0, "Must not be negative")
	return validator.Err()
}
