// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package textnorm normalizes user-authored text before it is stored.
//
// # Usage
//
// Board titles, board bodies and comments go through [Clean] so that visually
// identical input (precomposed vs. decomposed accents) is stored identically.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Clean converts s to Unicode NFC and trims surrounding whitespace.
//
// # Transformation Pipeline
//
// 1. Drops control characters other than newline and tab.
// 2. Normalizes to NFC (e + combining acute → é).
// 3. Trims leading/trailing whitespace.
func Clean(s string) string {
	t := transform.Chain(transform.RemoveFunc(isStrayControl), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		result = norm.NFC.String(s)
	}
	return strings.TrimSpace(result)
}

// IsBlank reports whether s is empty once cleaned.
func IsBlank(s string) bool {
	return Clean(s) == ""
}

// isStrayControl reports control runes that have no place in posted text.
func isStrayControl(r rune) bool {
	return unicode.IsControl(r) && r != '\n' && r != '\t' && r != '\r'
}
