// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package achievement manages competition results, leadership roles and
// extracurricular activities shown on the portfolio.
package achievement

import "time"

// Category groups achievements on the public page.
type Category string

const (
	CategoryCompetition     Category = "competition"
	CategoryLeadership      Category = "leadership"
	CategoryExtracurricular Category = "extracurricular"
)

// Categories lists every valid [Category].
var Categories = []string{
	string(CategoryCompetition),
	string(CategoryLeadership),
	string(CategoryExtracurricular),
}

// Achievement is one entry of the achievements page.
type Achievement struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Category     Category  `json:"category"`
	Event        *string   `json:"event"`
	Organization *string   `json:"organization"`
	Level        *string   `json:"level"`
	Date         *string   `json:"date"`
	Location     *string   `json:"location"`
	Description  *string   `json:"description"`
	Badge        *string   `json:"badge"`
	Verified     bool      `json:"verified"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Input carries the writable fields. Nil fields are left unchanged on update.
type Input struct {
	Title        *string `json:"title"`
	Category     *string `json:"category"`
	Event        *string `json:"event"`
	Organization *string `json:"organization"`
	Level        *string `json:"level"`
	Date         *string `json:"date"`
	Location     *string `json:"location"`
	Description  *string `json:"description"`
	Badge        *string `json:"badge"`
	Verified     *bool   `json:"verified"`
	DisplayOrder *int    `json:"display_order"`
}

// Filter narrows an achievement list.
type Filter struct {
	Category string
}

const (
	FieldTitle        = "title"
	FieldCategory     = "category"
	FieldDisplayOrder = "display_order"
)
