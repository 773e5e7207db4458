// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package project

import "context"

// Repository defines the persistence contract for projects.
type Repository interface {
	List(context context.Context, filter Filter) ([]*Project, error)
	FindByID(context context.Context, id string) (*Project, error)
	Count(context context.Context) (int, error)
	Create(context context.Context, project *Project) error
	Update(context context.Context, project *Project) error
	Delete(context context.Context, id string) error
}
