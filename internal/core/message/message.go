// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package message is the contact inbox.

Anyone may leave a message through the contact form. Only editors and admins
can read, mark or delete them.
*/
package message

import "time"

// Message is one contact form submission.
type Message struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// Filter narrows the inbox listing.
type Filter struct {
	UnreadOnly bool
}

// ReadInput toggles the read flag.
type ReadInput struct {
	Read *bool `json:"read"`
}

// RecentLimit is the number of messages shown on the dashboard.
const RecentLimit = 5

const (
	FieldRead   = "read"
	FieldUnread = "unread"
)
