// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package certification manages professional, technical and academic
certifications.

# Rules
  - Title and issuer are required.
  - Skills are trimmed and blank entries dropped.
  - New certifications default to the technical category, verified.
*/
package certification

import "time"

// Category groups certifications on the public page.
type Category string

const (
	CategoryProfessional Category = "professional"
	CategoryTechnical    Category = "technical"
	CategoryAcademic     Category = "academic"
)

// Categories lists every valid [Category].
var Categories = []string{
	string(CategoryProfessional),
	string(CategoryTechnical),
	string(CategoryAcademic),
}

// Certification is a credential issued by a third party.
type Certification struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Issuer       string    `json:"issuer"`
	Category     Category  `json:"category"`
	Date         *string   `json:"date"`
	Description  *string   `json:"description"`
	ImageURL     *string   `json:"image_url"`
	Skills       []string  `json:"skills"`
	Verified     bool      `json:"verified"`
	VerifyURL    *string   `json:"verify_url"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Input carries the writable fields. Nil fields are left unchanged on update.
type Input struct {
	Title        *string   `json:"title"`
	Issuer       *string   `json:"issuer"`
	Category     *string   `json:"category"`
	Date         *string   `json:"date"`
	Description  *string   `json:"description"`
	ImageURL     *string   `json:"image_url"`
	Skills       *[]string `json:"skills"`
	Verified     *bool     `json:"verified"`
	VerifyURL    *string   `json:"verify_url"`
	DisplayOrder *int      `json:"display_order"`
}

// Filter narrows a certification list.
type Filter struct {
	Category string
}

// # Field Identifiers

const (
	FieldTitle        = "title"
	FieldIssuer       = "issuer"
	FieldCategory     = "category"
	FieldImageURL     = "image_url"
	FieldVerifyURL    = "verify_url"
	FieldDisplayOrder = "display_order"
)
