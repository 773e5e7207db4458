// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package certification

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

// Service implements certification use cases.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new certification [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// List returns certifications, optionally of one category.
func (service *Service) List(context context.Context, filter Filter) ([]*Certification, error) {
	return service.repo.List(context, filter)
}

// Count returns the number of certifications.
func (service *Service) Count(context context.Context) (int, error) {
	return service.repo.Count(context)
}

/*
Create adds a certification at the end of the list.

Returns:
  - *Certification: The stored certification
  - error: Unauthorized, Forbidden, ValidationError or storage failures
*/
func (service *Service) Create(context context.Context, input Input) (*Certification, error) {
	principal, err := policy.RequireEditor(context)
	if err != nil {
		return nil, err
	}

	certification := &Certification{
		ID:       uuid.New(),
		Category: CategoryTechnical,
		Skills:   []string{},
		Verified: true,
	}
	apply(certification, input)
	if err := validateCertification(certification); err != nil {
		return nil, err
	}

	if input.DisplayOrder == nil {
		if certification.DisplayOrder, err = service.repo.Count(context); err != nil {
			return nil, err
		}
	}

	if err := service.repo.Create(context, certification); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "certification_created",
		slog.String("certification_id", certification.ID),
		slog.String("user_id", principal.UserID),
	)
	return certification, nil
}

// Update applies a partial update.
func (service *Service) Update(context context.Context, id string, input Input) (*Certification, error) {
	principal, err := policy.RequireEditor(context)
	if err != nil {
		return nil, err
	}

	certification, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, dberr.NotFound(err, "Certification")
	}

	apply(certification, input)
	if err := validateCertification(certification); err != nil {
		return nil, err
	}

	if err := service.repo.Update(context, certification); err != nil {
		return nil, dberr.NotFound(err, "Certification")
	}

	service.logger.InfoContext(context, "certification_updated",
		slog.String("certification_id", id),
		slog.String("user_id", principal.UserID),
	)
	return certification, nil
}

// Delete removes a certification.
func (service *Service) Delete(context context.Context, id string) error {
	principal, err := policy.RequireEditor(context)
	if err != nil {
		return err
	}

	if err := service.repo.Delete(context, id); err != nil {
		return dberr.NotFound(err, "Certification")
	}

	service.logger.WarnContext(context, "certification_deleted",
		slog.String("certification_id", id),
		slog.String("user_id", principal.UserID),
	)
	return nil
}

func apply(certification *Certification, input Input) {
	if input.Title != nil {
		certification.Title = strings.TrimSpace(*input.Title)
	}
	if input.Issuer != nil {
		certification.Issuer = strings.TrimSpace(*input.Issuer)
	}
	if input.Category != nil {
		certification.Category = Category(*input.Category)
	}
	if input.Date != nil {
		certification.Date = input.Date
	}
	if input.Description != nil {
		certification.Description = input.Description
	}
	if input.ImageURL != nil {
		certification.ImageURL = input.ImageURL
	}
	if input.Skills != nil {
		certification.Skills = slice.CompactStrings(*input.Skills)
	}
	if input.Verified != nil {
		certification.Verified = *input.Verified
	}
	if input.VerifyURL != nil {
		certification.VerifyURL = input.VerifyURL
	}
	if input.DisplayOrder != nil {
		certification.DisplayOrder = *input.DisplayOrder
	}
}

func validateCertification(certification *Certification) error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, certification.Title).
		Required(FieldIssuer, certification.Issuer).
		OneOf(FieldCategory, string(certification.Category), Categories...).
		OptionalURL(FieldImageURL, certification.ImageURL).
		OptionalURL(FieldVerifyURL, certification.VerifyURL).
		Custom(FieldDisplayOrder, certification.DisplayOrder < 0, "Must not be negative")
	return validator.Err()
}
