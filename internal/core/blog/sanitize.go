// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package blog

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer cleans post HTML. It is safe for concurrent use.
type Sanitizer struct {
	content *bluemonday.Policy
	text    *bluemonday.Policy
}

// NewSanitizer builds the policies used for post bodies and excerpts.
//
// Bodies keep the UGC subset (headings, lists, links, images, code). External
// links open in a new tab with rel="noopener noreferrer". Excerpts are plain text.
func NewSanitizer() *Sanitizer {
	content := bluemonday.UGCPolicy()
	content.RequireNoReferrerOnLinks(true)
	content.AddTargetBlankToFullyQualifiedLinks(true)

	return &Sanitizer{
		content: content,
		text:    bluemonday.StrictPolicy(),
	}
}

// Content sanitises a post body.
func (sanitizer *Sanitizer) Content(raw string) string {
	return strings.TrimSpace(sanitizer.content.Sanitize(raw))
}

// Text strips every tag, leaving plain text.
func (sanitizer *Sanitizer) Text(raw string) string {
	return strings.TrimSpace(sanitizer.text.Sanitize(raw))
}
