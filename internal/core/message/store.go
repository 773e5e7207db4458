// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package message

import "context"

// Repository persists contact messages.
type Repository interface {
	// List returns one page, newest first, with the total matching the filter.
	List(ctx context.Context, filter Filter, limit, offset int) ([]*Message, int, error)
	Recent(ctx context.Context, limit int) ([]*Message, error)
	Count(ctx context.Context) (int, error)
	CountUnread(ctx context.Context) (int, error)
	Insert(ctx context.Context, message *Message) error
	SetRead(ctx context.Context, id string, read bool) error
	Delete(ctx context.Context, id string) error
}
