// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package achievement

import "context"

// Repository defines the persistence contract for achievements.
type Repository interface {
	List(context context.Context, filter Filter) ([]*Achievement, error)
	FindByID(context context.Context, id string) (*Achievement, error)
	Count(context context.Context) (int, error)
	Create(context context.Context, achievement *Achievement) error
	Update(context context.Context, achievement *Achievement) error
	Delete(context context.Context, id string) error
}
