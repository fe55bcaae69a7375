// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taibuivan/yomira-board/internal/forum/board"
	"github.com/taibuivan/yomira-board/internal/forum/comment"
	"github.com/taibuivan/yomira-board/internal/platform/apperr"
	"github.com/taibuivan/yomira-board/internal/platform/sec"
	"github.com/taibuivan/yomira-board/internal/storetest"
	"github.com/taibuivan/yomira-board/internal/users/account"
	"github.com/taibuivan/yomira-board/internal/users/auth"
	"github.com/taibuivan/yomira-board/pkg/pagination"
)

func statusOf(err error) int {
	if appErr := apperr.As(err); appErr != nil {
		return appErr.HTTPStatus
	}
	return 0
}

type fixture struct {
	auth     *auth.Service
	accounts *account.Service
	boards   *board.Service
	comments *comment.Service
	codec    *sec.TokenCodec
	redis    *miniredis.Miniredis
}

// newFixture wires the services the way the server does, with the principal cache enabled.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	users := storetest.NewUsers()
	cached := auth.NewCachedUserRepository(users, client, time.Minute, slog.New(slog.NewTextHandler(io.Discard, nil)), nil)

	codec, err := sec.NewTokenCodec([]byte("0123456789abcdef0123456789abcdef"), time.Hour)
	require.NoError(t, err)

	hasher := sec.NewBcryptHasher(bcrypt.MinCost)
	boards := board.NewService(storetest.NewBoards(users))
	comments := comment.NewService(storetest.NewComments(), boards)

	return &fixture{
		auth:     auth.NewService(cached, hasher, codec, nil),
		accounts: account.NewService(cached, hasher, boards, comments),
		boards:   boards,
		comments: comments,
		codec:    codec,
		redis:    server,
	}
}

func (f *fixture) register(t *testing.T, name string) *sec.Principal {
	t.Helper()
	user, err := f.auth.Register(context.Background(), name, "s3cret")
	require.NoError(t, err)
	return user.Principal()
}

func TestService_GetProfile(t *testing.T) {
	f := newFixture(t)
	alice := f.register(t, "alice")

	profile, err := f.accounts.GetProfile(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", profile.UserName)

	_, err = f.accounts.GetProfile(context.Background(), 42)
	assert.Equal(t, http.StatusNotFound, statusOf(err))
}

/*
TestService_ChangePassword covers each rejected input and the successful swap.
*/
func TestService_ChangePassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.register(t, "alice")

	// warm the principal cache
	_, err := f.accounts.GetProfile(ctx, alice.ID)
	require.NoError(t, err)

	tests := []struct {
		name  string
		input account.PasswordChange
	}{
		{"missing_fields", account.PasswordChange{CurrentPassword: "s3cret"}},
		{"mismatch", account.PasswordChange{CurrentPassword: "s3cret", NewPassword: "a", NewPasswordConfirm: "b"}},
		{"wrong_current", account.PasswordChange{CurrentPassword: "nope", NewPassword: "n3w", NewPasswordConfirm: "n3w"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, http.StatusBadRequest, statusOf(f.accounts.ChangePassword(ctx, alice, tt.input)))
		})
	}

	require.NoError(t, f.accounts.ChangePassword(ctx, alice, account.PasswordChange{
		CurrentPassword: "s3cret", NewPassword: "n3w", NewPasswordConfirm: "n3w",
	}))

	_, err = f.auth.Login(ctx, "alice", "s3cret")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = f.auth.Login(ctx, "alice", "n3w")
	assert.NoError(t, err)
}

/*
TestService_DeleteAccount is limited to the caller and revokes outstanding tokens.
*/
func TestService_DeleteAccount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.register(t, "alice")
	bob := f.register(t, "bob")

	token, err := f.codec.Issue(sec.TokenSubject{ID: alice.ID, LoginName: alice.LoginName, Role: alice.Role})
	require.NoError(t, err)
	require.NotNil(t, f.auth.ResolvePrincipal(ctx, token))
	require.True(t, f.redis.Exists("auth:principal:1"))

	assert.Equal(t, http.StatusForbidden, statusOf(f.accounts.DeleteAccount(ctx, bob, alice.ID)))

	require.NoError(t, f.accounts.DeleteAccount(ctx, alice, alice.ID))
	assert.False(t, f.redis.Exists("auth:principal:1"))
	assert.Nil(t, f.auth.ResolvePrincipal(ctx, token))

	_, err = f.auth.Register(ctx, "alice", "again")
	assert.Equal(t, http.StatusConflict, statusOf(err))
}

/*
TestService_Listings returns authored boards to anyone and comments only to their author.
*/
func TestService_Listings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.register(t, "alice")
	bob := f.register(t, "bob")

	created, err := f.boards.Create(ctx, alice, "hello", "world")
	require.NoError(t, err)
	_, err = f.comments.Create(ctx, bob, created.ID, "hi alice")
	require.NoError(t, err)

	boards, meta, err := f.accounts.ListBoards(ctx, alice.ID, pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)
	require.Len(t, boards, 1)
	assert.Equal(t, 1, meta.Total)

	_, _, err = f.accounts.ListBoards(ctx, 42, pagination.Params{Page: 1, Limit: 20})
	assert.Equal(t, http.StatusNotFound, statusOf(err))

	comments, err := f.accounts.ListComments(ctx, bob, bob.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "hi alice", comments[0].Content)

	_, err = f.accounts.ListComments(ctx, alice, bob.ID)
	assert.Equal(t, http.StatusForbidden, statusOf(err))
}
