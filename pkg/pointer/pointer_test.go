// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pointer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/yomira-board/pkg/pointer"
)

func TestToAndVal(t *testing.T) {
	title := pointer.To("hello")
	assert.Equal(t, "hello", pointer.Val(title))

	var missing *string
	assert.Equal(t, "", pointer.Val(missing))
	assert.Equal(t, 0, pointer.Val[int](nil))
}
