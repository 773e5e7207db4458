// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package project manages the portfolio's project showcase.

Projects are public. Creating, editing and deleting them needs the editor role
or above. Lists are ordered by display_order, then by creation time.
*/
package project

import "time"

// # Domain Entities

// Project is one showcased piece of work.
type Project struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  *string   `json:"description"`
	Category     *string   `json:"category"`
	Tags         []string  `json:"tags"`
	ImageURL     *string   `json:"image_url"`
	GithubURL    *string   `json:"github_url"`
	LiveURL      *string   `json:"live_url"`
	Featured     bool      `json:"featured"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Input carries the writable fields of a project. Nil fields are left
// unchanged on update.
type Input struct {
	Title        *string   `json:"title"`
	Description  *string   `json:"description"`
	Category     *string   `json:"category"`
	Tags         *[]string `json:"tags"`
	ImageURL     *string   `json:"image_url"`
	GithubURL    *string   `json:"github_url"`
	LiveURL      *string   `json:"live_url"`
	Featured     *bool     `json:"featured"`
	DisplayOrder *int      `json:"display_order"`
}

// Filter narrows a project list. Zero values match everything.
type Filter struct {
	Category string
	Tags     []string // Matches projects carrying any of these tags.
	Featured *bool
	Limit    int
}

// # Field Identifiers

const (
	FieldTitle        = "title"
	FieldCategory     = "category"
	FieldTag          = "tag"
	FieldFeatured     = "featured"
	FieldImageURL     = "image_url"
	FieldGithubURL    = "github_url"
	FieldLiveURL      = "live_url"
	FieldDisplayOrder = "display_order"
)
