// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package skill manages the skill matrix: named skills with a 0-100
// proficiency level, grouped by category.
package skill

import "time"

// Skill is one entry of the skill matrix.
type Skill struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	Level        int       `json:"level"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Group is the skills of one category, in display order.
type Group struct {
	Category string   `json:"category"`
	Skills   []*Skill `json:"skills"`
}

// Input carries the writable fields. Nil fields are left unchanged on update.
type Input struct {
	Name         *string `json:"name"`
	Category     *string `json:"category"`
	Level        *int    `json:"level"`
	DisplayOrder *int    `json:"display_order"`
}

const (
	// DefaultLevel is the proficiency given to a skill created without one.
	DefaultLevel = 50
	MinLevel     = 0
	MaxLevel     = 100
)

const (
	FieldName         = "name"
	FieldCategory     = "category"
	FieldLevel        = "level"
	FieldDisplayOrder = "display_order"
)

// GroupByCategory splits skills, already ordered by category, into groups.
func GroupByCategory(skills []*Skill) []Group {
	groups := make([]Group, 0)
	for _, skill := range skills {
		if len(groups) == 0 || groups[len(groups)-1].Category != skill.Category {
			groups = append(groups, Group{Category: skill.Category})
		}
		last := &groups[len(groups)-1]
		last.Skills = append(last.Skills, skill)
	}
	return groups
}
