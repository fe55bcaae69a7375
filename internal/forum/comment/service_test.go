// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-board/internal/forum/board"
	"github.com/taibuivan/yomira-board/internal/forum/comment"
	"github.com/taibuivan/yomira-board/internal/platform/apperr"
	"github.com/taibuivan/yomira-board/internal/platform/sec"
	"github.com/taibuivan/yomira-board/internal/storetest"
)

var (
	alice = &sec.Principal{ID: 1, LoginName: "alice", Role: sec.RoleUser}
	bob   = &sec.Principal{ID: 2, LoginName: "bob", Role: sec.RoleUser}
)

func statusOf(err error) int {
	if appErr := apperr.As(err); appErr != nil {
		return appErr.HTTPStatus
	}
	return 0
}

type fixture struct {
	boards   *board.Service
	comments *comment.Service
}

func newFixture(t *testing.T) (*fixture, int64, int64) {
	t.Helper()

	boards := board.NewService(storetest.NewBoards(nil))
	f := &fixture{
		boards:   boards,
		comments: comment.NewService(storetest.NewComments(), boards),
	}

	first, err := boards.Create(context.Background(), alice, "first", "body")
	require.NoError(t, err)
	second, err := boards.Create(context.Background(), alice, "second", "body")
	require.NoError(t, err)

	return f, first.ID, second.ID
}

/*
TestService_CreateAndList attaches comments to live boards only.
*/
func TestService_CreateAndList(t *testing.T) {
	f, boardID, _ := newFixture(t)
	ctx := context.Background()

	first, err := f.comments.Create(ctx, bob, boardID, " nice ")
	require.NoError(t, err)
	assert.Equal(t, "nice", first.Content)
	assert.Equal(t, bob.ID, first.UserID)

	_, err = f.comments.Create(ctx, alice, boardID, "thanks")
	require.NoError(t, err)

	comments, err := f.comments.ListByBoard(ctx, boardID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "nice", comments[0].Content)
	assert.Equal(t, "thanks", comments[1].Content)

	_, err = f.comments.Create(ctx, bob, boardID, "  ")
	assert.Equal(t, http.StatusBadRequest, statusOf(err))

	_, err = f.comments.Create(ctx, bob, 99, "hello")
	assert.Equal(t, http.StatusNotFound, statusOf(err))

	require.NoError(t, f.boards.Delete(ctx, alice, boardID))
	_, err = f.comments.Create(ctx, bob, boardID, "too late")
	assert.Equal(t, http.StatusNotFound, statusOf(err))
}

/*
TestService_UpdateAndDelete enforce board membership and ownership.
*/
func TestService_UpdateAndDelete(t *testing.T) {
	f, boardID, otherBoardID := newFixture(t)
	ctx := context.Background()

	created, err := f.comments.Create(ctx, bob, boardID, "draft")
	require.NoError(t, err)

	_, err = f.comments.Update(ctx, bob, otherBoardID, created.ID, "moved?")
	assert.Equal(t, http.StatusNotFound, statusOf(err))

	_, err = f.comments.Update(ctx, alice, boardID, created.ID, "hijack")
	assert.Equal(t, http.StatusForbidden, statusOf(err))

	updated, err := f.comments.Update(ctx, bob, boardID, created.ID, "final")
	require.NoError(t, err)
	assert.Equal(t, "final", updated.Content)

	assert.Equal(t, http.StatusForbidden, statusOf(f.comments.Delete(ctx, alice, boardID, created.ID)))
	require.NoError(t, f.comments.Delete(ctx, bob, boardID, created.ID))
	assert.Equal(t, http.StatusNotFound, statusOf(f.comments.Delete(ctx, bob, boardID, created.ID)))

	mine, err := f.comments.ListByUser(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, mine)
}
