// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package setting stores site-wide key/value settings such as the site title,
the contact address and social links.

Settings are public. Only admins can change them.
*/
package setting

import "time"

// Setting is one key/value pair.
type Setting struct {
	ID        string    `json:"id"`
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AddInput creates a new key.
type AddInput struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Well-known keys seeded by the migrations.
const (
	KeySiteTitle       = "site_title"
	KeySiteDescription = "site_description"
	KeyContactEmail    = "contact_email"
	KeySocialGithub    = "social_github"
	KeySocialLinkedIn  = "social_linkedin"
	KeySocialTwitter   = "social_twitter"
)

const (
	FieldKey   = "key"
	FieldValue = "value"
)
