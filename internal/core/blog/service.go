// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package blog

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/dberr"
	"github.com/taibuivan/folio/internal/platform/policy"
	"github.com/taibuivan/folio/internal/platform/validate"
	"github.com/taibuivan/folio/pkg/slug"
	"github.com/taibuivan/folio/pkg/uuid"
)

const resourceName = "Post"

// Service implements blog use cases.
type Service struct {
	repo      Repository
	sanitizer *Sanitizer
	logger    *slog.Logger
}

// NewService constructs a new blog [Service].
func NewService(repo Repository, sanitizer *Sanitizer, logger *slog.Logger) *Service {
	return &Service{repo: repo, sanitizer: sanitizer, logger: logger}
}

// # Reading

/*
List returns one page of posts. Drafts are only included for editors and admins.

Returns:
  - []*Post: The page, newest first
  - int: Total number of visible posts
  - error: Storage failures
*/
func (service *Service) List(context context.Context, filter Filter, limit, offset int) ([]*Post, int, error) {
	if !policy.CanReadDrafts(context) {
		filter.PublishedOnly = true
	}
	return service.repo.List(context, filter, limit, offset)
}

// GetBySlug returns a post. A draft is reported as not found to readers who
// may not see drafts.
func (service *Service) GetBySlug(context context.Context, postSlug string) (*Post, error) {
	post, err := service.repo.FindBySlug(context, postSlug)
	if err != nil {
		return nil, dberr.NotFound(err, resourceName)
	}

	if !post.Published && !policy.CanReadDrafts(context) {
		return nil, apperr.NotFound(resourceName)
	}
	return post, nil
}

// Count returns the number of posts, drafts included.
func (service *Service) Count(context context.Context) (int, error) {
	return service.repo.Count(context)
}

// # Writing

/*
Create stores a new post. A blank slug is derived from the title.

Returns:
  - *Post: The stored post
  - error: Unauthorized, Forbidden, ValidationError, Conflict (slug taken) or storage failures
*/
func (service *Service) Create(context context.Context, input Input) (*Post, error) {
	principal, err := policy.RequireEditor(context)
	if err != nil {
		return nil, err
	}

	post := &Post{ID: uuid.New(), ReadTime: DefaultReadTime}
	if err := service.prepare(post, input); err != nil {
		return nil, err
	}

	if err := service.repo.Create(context, post); err != nil {
		return nil, slugConflict(err)
	}

	service.logger.InfoContext(context, "post_created",
		slog.String("post_id", post.ID),
		slog.String("slug", post.Slug),
		slog.String("user_id", principal.UserID),
	)
	return post, nil
}

// Update applies a partial update. Sending an empty slug regenerates it from the title.
func (service *Service) Update(context context.Context, id string, input Input) (*Post, error) {
	principal, err := policy.RequireEditor(context)
	if err != nil {
		return nil, err
	}

	post, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, dberr.NotFound(err, resourceName)
	}

	if err := service.prepare(post, input); err != nil {
		return nil, err
	}

	if err := service.repo.Update(context, post); err != nil {
		return nil, dberr.NotFound(slugConflict(err), resourceName)
	}

	service.logger.InfoContext(context, "post_updated",
		slog.String("post_id", post.ID),
		slog.String("user_id", principal.UserID),
	)
	return post, nil
}

// TogglePublished publishes a draft or unpublishes a post.
func (service *Service) TogglePublished(context context.Context, id string) (*Post, error) {
	principal, err := policy.RequireEditor(context)
	if err != nil {
		return nil, err
	}

	post, err := service.repo.TogglePublished(context, id)
	if err != nil {
		return nil, dberr.NotFound(err, resourceName)
	}

	event := "post_unpublished"
	if post.Published {
		event = "post_published"
	}
	service.logger.InfoContext(context, event,
		slog.String("post_id", post.ID),
		slog.String("user_id", principal.UserID),
	)
	return post, nil
}

// Delete removes a post.
func (service *Service) Delete(context context.Context, id string) error {
	principal, err := policy.RequireEditor(context)
	if err != nil {
		return err
	}

	if err := service.repo.Delete(context, id); err != nil {
		return dberr.NotFound(err, resourceName)
	}

	service.logger.WarnContext(context, "post_deleted",
		slog.String("post_id", id),
		slog.String("user_id", principal.UserID),
	)
	return nil
}

// # Internal Helpers

// prepare applies input to post, fills derived fields, sanitises and validates.
func (service *Service) prepare(post *Post, input Input) error {
	if input.Title != nil {
		post.Title = strings.TrimSpace(*input.Title)
	}
	if input.Slug != nil {
		post.Slug = strings.TrimSpace(*input.Slug)
	}
	if input.Excerpt != nil {
		excerpt := service.sanitizer.Text(*input.Excerpt)
		post.Excerpt = &excerpt
	}
	if input.Content != nil {
		content := service.sanitizer.Content(*input.Content)
		post.Content = &content
	}
	if input.Author != nil {
		post.Author = input.Author
	}
	if input.Category != nil {
		post.Category = input.Category
	}
	if input.ReadTime != nil {
		post.ReadTime = strings.TrimSpace(*input.ReadTime)
	}
	if input.Published != nil {
		post.Published = *input.Published
	}

	if post.Slug == "" {
		post.Slug = slug.From(post.Title)
	}
	if post.ReadTime == "" {
		post.ReadTime = DefaultReadTime
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, post.Title).
		MaxLen(FieldTitle, post.Title, 200).
		Slug(FieldSlug, post.Slug).
		MaxLen(FieldSlug, post.Slug, 200).
		MaxLen(FieldReadTime, post.ReadTime, 50)
	return validator.Err()
}

// slugConflict turns the unique-violation Conflict into a post-specific message.
func slugConflict(err error) error {
	if appError := apperr.As(err); appError != nil && appError.HTTPStatus == http.StatusConflict {
		return apperr.Conflict("A post with this slug already exists")
	}
	return err
}
