// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package setting

import "context"

// Repository persists settings.
type Repository interface {
	List(ctx context.Context) ([]*Setting, error)
	Get(ctx context.Context, key string) (*Setting, error)
	// SaveAll upserts every pair in one transaction.
	SaveAll(ctx context.Context, values map[string]string) error
	Create(ctx context.Context, setting *Setting) error
	Delete(ctx context.Context, key string) error
}
