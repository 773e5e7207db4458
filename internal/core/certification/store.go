// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package certification

import "context"

// Repository defines the persistence contract for certifications.
type Repository interface {
	List(context context.Context, filter Filter) ([]*Certification, error)
	FindByID(context context.Context, id string) (*Certification, error)
	Count(context context.Context) (int, error)
	Create(context context.Context, certification *Certification) error
	Update(context context.Context, certification *Certification) error
	Delete(context context.Context, id string) error
}
