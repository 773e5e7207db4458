// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug derives blog post slugs from titles.
//
// "Xin chào, Đà Nẵng!" becomes "xin-chao-da-nang". Output only ever contains
// [a-z0-9] runs joined by single hyphens, which is exactly what the Slug rule
// in the validate package accepts.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxLength bounds a generated slug. The blog service rejects longer slugs.
const MaxLength = 200

// foldings covers letters NFD does not decompose into a base letter plus a mark.
var foldings = strings.NewReplacer("đ", "d", "Đ", "d", "ß", "ss", "ø", "o", "Ø", "o", "æ", "ae", "Æ", "ae")

// From converts a title into a URL-safe ASCII slug of at most [MaxLength] bytes.
//
// Accents are stripped after NFD decomposition, every other non-alphanumeric
// run becomes one hyphen, and an over-long result is cut at the last hyphen
// that fits. An input with no usable characters yields "".
func From(title string) string {
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, _ := transform.String(stripMarks, foldings.Replace(title))

	var builder strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && builder.Len() > 0 {
				builder.WriteByte('-')
			}
			builder.WriteRune(r)
			pendingHyphen = false
			continue
		}
		pendingHyphen = true
	}

	return truncate(builder.String())
}

// truncate shortens slug to MaxLength, preferring a word boundary.
func truncate(slug string) string {
	if len(slug) <= MaxLength {
		return slug
	}

	cut := slug[:MaxLength]
	if index := strings.LastIndexByte(cut, '-'); index > 0 {
		cut = cut[:index]
	}
	return strings.TrimRight(cut, "-")
}
