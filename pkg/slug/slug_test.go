// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slug_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/folio/pkg/slug"
)

/* TestFrom covers accents, punctuation runs and empty results. */
func TestFrom(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"  Hello, Go World!  ", "hello-go-world"},
		{"Xin chào, Đà Nẵng!", "xin-chao-da-nang"},
		{"Crème brûlée 101", "creme-brulee-101"},
		{"C++ & Go -- notes", "c-go-notes"},
		{"日本語", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.title))
		})
	}
}

/* TestFrom_Truncates cuts long titles at a word boundary. */
func TestFrom_Truncates(t *testing.T) {
	title := strings.Repeat("word ", 60)

	got := slug.From(title)

	assert.LessOrEqual(t, len(got), slug.MaxLength)
	assert.False(t, strings.HasSuffix(got, "-"))
	assert.True(t, strings.HasSuffix(got, "word"))
}
