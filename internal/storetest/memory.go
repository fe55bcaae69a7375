// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package storetest provides in-memory implementations of the repository
contracts for use in tests.

They follow the same live-row and NotFound conventions as the Postgres
implementations, including the unique login name across soft-deleted users.
*/
package storetest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/yomira-board/internal/forum/board"
	"github.com/taibuivan/yomira-board/internal/forum/comment"
	"github.com/taibuivan/yomira-board/internal/platform/apperr"
	"github.com/taibuivan/yomira-board/internal/platform/sec"
	"github.com/taibuivan/yomira-board/internal/users/auth"
)

// Clock is the time source of every memory store. Tests may replace it.
var Clock = func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) }

// # Users

// Users is an in-memory [auth.UserRepository].
type Users struct {
	mu     sync.Mutex
	rows   map[int64]auth.User
	nextID int64

	// Err, when set, is returned by every call.
	Err error
	// FindByIDCalls counts FindByID invocations.
	FindByIDCalls int
}

// NewUsers returns an empty store whose IDs start at 1.
func NewUsers() *Users {
	return &Users{rows: make(map[int64]auth.User)}
}

func (store *Users) FindByUserName(_ context.Context, userName string) (*auth.User, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	if store.Err != nil {
		return nil, store.Err
	}
	for _, row := range store.rows {
		if row.UserName == userName && row.DeletedAt == nil {
			user := row
			return &user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (store *Users) FindByID(_ context.Context, id int64) (*auth.User, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.FindByIDCalls++
	if store.Err != nil {
		return nil, store.Err
	}
	row, ok := store.rows[id]
	if !ok || row.DeletedAt != nil {
		return nil, apperr.NotFound("User")
	}
	return &row, nil
}

// Create rejects any login name already present, deleted or not, with SQLSTATE 23505.
func (store *Users) Create(_ context.Context, user *auth.User) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if store.Err != nil {
		return store.Err
	}
	for _, row := range store.rows {
		if row.UserName == user.UserName {
			return &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_user_name_key"}
		}
	}

	store.nextID++
	now := Clock()
	user.ID = store.nextID
	user.CreatedAt = now
	user.UpdatedAt = now
	store.rows[user.ID] = *user
	return nil
}

func (store *Users) UpdatePassword(_ context.Context, userID int64, newHash string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if store.Err != nil {
		return store.Err
	}
	row, ok := store.rows[userID]
	if !ok || row.DeletedAt != nil {
		return apperr.NotFound("User")
	}
	row.PasswordHash = newHash
	row.UpdatedAt = Clock()
	store.rows[userID] = row
	return nil
}

func (store *Users) SoftDelete(_ context.Context, id int64) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if store.Err != nil {
		return store.Err
	}
	row, ok := store.rows[id]
	if !ok || row.DeletedAt != nil {
		return apperr.NotFound("User")
	}
	now := Clock()
	row.DeletedAt = &now
	row.UpdatedAt = now
	store.rows[id] = row
	return nil
}

// SetRole changes a stored role directly, as an administrator would.
func (store *Users) SetRole(id int64, role sec.Role) {
	store.mu.Lock()
	defer store.mu.Unlock()

	row := store.rows[id]
	row.Role = role
	store.rows[id] = row
}

// # Boards

// Boards is an in-memory [board.Repository].
type Boards struct {
	mu     sync.Mutex
	rows   map[int64]board.Board
	users  *Users
	nextID int64
}

// NewBoards returns an empty store. users resolves author names and may be nil.
func NewBoards(users *Users) *Boards {
	return &Boards{rows: make(map[int64]board.Board), users: users}
}

func (store *Boards) List(_ context.Context, limit, offset int) ([]board.Summary, int, error) {
	return store.list(func(board.Board) bool { return true }, limit, offset)
}

func (store *Boards) ListByUser(_ context.Context, userID int64, limit, offset int) ([]board.Summary, int, error) {
	return store.list(func(row board.Board) bool { return row.UserID == userID }, limit, offset)
}

func (store *Boards) list(keep func(board.Board) bool, limit, offset int) ([]board.Summary, int, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	live := make([]board.Board, 0, len(store.rows))
	for _, row := range store.rows {
		if !row.IsDeleted && keep(row) {
			live = append(live, row)
		}
	}
	sort.Slice(live, func(i, j int) bool {
		if !live[i].CreatedAt.Equal(live[j].CreatedAt) {
			return live[i].CreatedAt.After(live[j].CreatedAt)
		}
		return live[i].ID > live[j].ID
	})

	items := make([]board.Summary, 0)
	for index := offset; index < len(live) && index < offset+limit; index++ {
		row := live[index]
		items = append(items, board.Summary{
			ID:        row.ID,
			UserID:    row.UserID,
			Title:     row.Title,
			View:      row.View,
			CreatedAt: row.CreatedAt,
		})
	}
	return items, len(live), nil
}

func (store *Boards) FindByID(context context.Context, id int64) (*board.Board, error) {
	store.mu.Lock()
	row, ok := store.rows[id]
	store.mu.Unlock()

	if !ok || row.IsDeleted {
		return nil, apperr.NotFound("Board")
	}
	if store.users != nil {
		if author, err := store.users.FindByID(context, row.UserID); err == nil {
			row.UserName = author.UserName
		}
	}
	return &row, nil
}

func (store *Boards) IncrementView(_ context.Context, id int64) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	row, ok := store.rows[id]
	if !ok || row.IsDeleted {
		return apperr.NotFound("Board")
	}
	row.View++
	store.rows[id] = row
	return nil
}

func (store *Boards) Create(_ context.Context, created *board.Board) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.nextID++
	now := Clock()
	created.ID = store.nextID
	created.CreatedAt = now
	created.UpdatedAt = now
	store.rows[created.ID] = *created
	return nil
}

func (store *Boards) Update(_ context.Context, updated *board.Board) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	row, ok := store.rows[updated.ID]
	if !ok || row.IsDeleted {
		return apperr.NotFound("Board")
	}
	row.Title = updated.Title
	row.Content = updated.Content
	row.UpdatedAt = Clock()
	updated.UpdatedAt = row.UpdatedAt
	store.rows[updated.ID] = row
	return nil
}

func (store *Boards) SoftDelete(_ context.Context, id int64) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	row, ok := store.rows[id]
	if !ok || row.IsDeleted {
		return apperr.NotFound("Board")
	}
	now := Clock()
	row.IsDeleted = true
	row.DeletedAt = &now
	store.rows[id] = row
	return nil
}

// # Comments

// Comments is an in-memory [comment.Repository].
type Comments struct {
	mu     sync.Mutex
	rows   map[int64]comment.Comment
	nextID int64
}

// NewComments returns an empty store.
func NewComments() *Comments {
	return &Comments{rows: make(map[int64]comment.Comment)}
}

func (store *Comments) ListByBoard(_ context.Context, boardID int64) ([]comment.Comment, error) {
	items := store.filter(func(row comment.Comment) bool { return row.BoardID == boardID })
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (store *Comments) ListByUser(_ context.Context, userID int64) ([]comment.Comment, error) {
	items := store.filter(func(row comment.Comment) bool { return row.UserID == userID })
	sort.Slice(items, func(i, j int) bool { return items[i].ID > items[j].ID })
	return items, nil
}

func (store *Comments) filter(keep func(comment.Comment) bool) []comment.Comment {
	store.mu.Lock()
	defer store.mu.Unlock()

	items := make([]comment.Comment, 0)
	for _, row := range store.rows {
		if !row.IsDeleted && keep(row) {
			items = append(items, row)
		}
	}
	return items
}

func (store *Comments) FindByID(_ context.Context, id int64) (*comment.Comment, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	row, ok := store.rows[id]
	if !ok || row.IsDeleted {
		return nil, apperr.NotFound("Comment")
	}
	return &row, nil
}

func (store *Comments) Create(_ context.Context, created *comment.Comment) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.nextID++
	now := Clock()
	created.ID = store.nextID
	created.CreatedAt = now
	created.UpdatedAt = now
	store.rows[created.ID] = *created
	return nil
}

func (store *Comments) UpdateContent(_ context.Context, updated *comment.Comment) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	row, ok := store.rows[updated.ID]
	if !ok || row.IsDeleted {
		return apperr.NotFound("Comment")
	}
	row.Content = updated.Content
	row.UpdatedAt = Clock()
	updated.UpdatedAt = row.UpdatedAt
	store.rows[updated.ID] = row
	return nil
}

func (store *Comments) SoftDelete(_ context.Context, id int64) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	row, ok := store.rows[id]
	if !ok || row.IsDeleted {
		return apperr.NotFound("Comment")
	}
	now := Clock()
	row.IsDeleted = true
	row.DeletedAt = &now
	store.rows[id] = row
	return nil
}
