// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package skill

import "context"

// Repository defines the persistence contract for skills.
type Repository interface {
	// List returns every skill ordered by category, then display order.
	List(context context.Context) ([]*Skill, error)
	FindByID(context context.Context, id string) (*Skill, error)
	Create(context context.Context, skill *Skill) error
	Update(context context.Context, skill *Skill) error
	Delete(context context.Context, id string) error
}
