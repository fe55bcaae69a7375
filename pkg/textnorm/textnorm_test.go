// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package textnorm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/yomira-board/pkg/textnorm"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "hello", "hello"},
		{"trims", "  hello \n", "hello"},
		{"composes_accents", "cafe\u0301", "caf\u00e9"},
		{"keeps_newlines", "line one\nline two", "line one\nline two"},
		{"drops_nul", "a\x00b", "ab"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, textnorm.Clean(tt.input))
		})
	}
}

func TestIsBlank(t *testing.T) {
	assert.True(t, textnorm.IsBlank("   "))
	assert.True(t, textnorm.IsBlank("\x00\t"))
	assert.False(t, textnorm.IsBlank(" x "))
}
