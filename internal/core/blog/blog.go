// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package blog manages blog posts.

# Publication

Posts are drafts until published. Anonymous visitors and accounts without a
content role only ever see published posts; editors and admins also see drafts.

# Content

Post bodies are HTML written in the admin editor. They are sanitised with a
user-generated-content policy before they are stored, so every reader gets
the same safe markup.
*/
package blog

import "time"

// # Domain Entities

// Post is a blog article.
type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Excerpt   *string   `json:"excerpt"`
	Content   *string   `json:"content"`
	Author    *string   `json:"author"`
	Category  *string   `json:"category"`
	ReadTime  string    `json:"read_time"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Input carries the writable fields. Nil fields are left unchanged on update.
type Input struct {
	Title     *string `json:"title"`
	Slug      *string `json:"slug"`
	Excerpt   *string `json:"excerpt"`
	Content   *string `json:"content"`
	Author    *string `json:"author"`
	Category  *string `json:"category"`
	ReadTime  *string `json:"read_time"`
	Published *bool   `json:"published"`
}

// Filter narrows a post list.
type Filter struct {
	PublishedOnly bool
	Category      string
}

// DefaultReadTime is used when a post has no read time.
const DefaultReadTime = "5 min read"

// # Field Identifiers

const (
	FieldTitle    = "title"
	FieldSlug     = "slug"
	FieldCategory = "category"
	FieldReadTime = "read_time"
)
