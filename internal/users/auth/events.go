// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"sync"
)

// # Session Change Events

// EventKind names a session transition.
type EventKind string

const (
	EventSignedIn       EventKind = "signed_in"
	EventSignedOut      EventKind = "signed_out"
	EventTokenRefreshed EventKind = "token_refreshed"
)

// Event describes one session transition.
//
// Origin is copied from the context of the call that caused it (see
// [WithOrigin]), so a subscriber can tell its own transitions apart from
// those of other browser contexts sharing the store.
type Event struct {
	Kind              EventKind
	Origin            string
	Session           *Session // nil for EventSignedOut
	PreviousSessionID string   // the session replaced or ended, if any
	UserID            string
}

// Listener receives session events. It runs on the emitting goroutine and
// must not block.
type Listener func(event Event)

type originKey struct{}

// WithOrigin tags a context with the id of the caller issuing session operations.
func WithOrigin(ctx context.Context, origin string) context.Context {
	return context.WithValue(ctx, originKey{}, origin)
}

// OriginFrom returns the origin set by [WithOrigin], or "".
func OriginFrom(ctx context.Context) string {
	origin, _ := ctx.Value(originKey{}).(string)
	return origin
}

// registry holds subscribed listeners in registration order.
type registry struct {
	mu        sync.Mutex
	nextID    int
	listeners []subscription
}

type subscription struct {
	id       int
	listener Listener
}

func (r *registry) subscribe(listener Listener) func() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	id := r.nextID
	r.listeners = append(r.listeners, subscription{id: id, listener: listener})

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			for i, sub := range r.listeners {
				if sub.id == id {
					r.listeners = append(r.listeners[:i:i], r.listeners[i+1:]...)
					return
				}
			}
		})
	}
}

// emit calls every listener in order. The list is copied first so a
// listener may unsubscribe itself (or others) while being called.
func (r *registry) emit(event Event) {
	r.mu.Lock()
	snapshot := make([]subscription, len(r.listeners))
	copy(snapshot, r.listeners)
	r.mu.Unlock()

	for _, sub := range snapshot {
		sub.listener(event)
	}
}

func (r *registry) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.listeners)
}
