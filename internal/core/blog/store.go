// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package blog

import "context"

// Repository defines the persistence contract for blog posts.
type Repository interface {
	/*
		List returns one page of posts, newest first, and the total match count.

		Parameters:
		  - context: context.Context
		  - filter: Filter
		  - limit, offset: int

		Returns:
		  - []*Post: The page
		  - int: Total number of matching posts
		  - error: Storage failures
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*Post, int, error)

	FindByID(context context.Context, id string) (*Post, error)
	FindBySlug(context context.Context, slug string) (*Post, error)
	Count(context context.Context) (int, error)

	// Create fails with a Conflict when the slug is taken.
	Create(context context.Context, post *Post) error
	Update(context context.Context, post *Post) error

	// TogglePublished flips the published flag atomically and returns the new row.
	TogglePublished(context context.Context, id string) (*Post, error)
	Delete(context context.Context, id string) error
}
