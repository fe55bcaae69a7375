// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/yomira-board/internal/platform/constants"
	"github.com/taibuivan/yomira-board/internal/platform/metrics"
	"github.com/taibuivan/yomira-board/internal/platform/sec"
)

// # Principal Cache

// CachedUserRepository is a Redis read-through cache in front of another [UserRepository].
//
// Only FindByID is cached, since it runs on every authenticated request. Cached
// entries carry no password hash: callers that verify passwords must use
// FindByUserName, which always reads through. Password changes and soft
// deletes evict the entry so a deleted account stops resolving immediately.
//
// Redis failures are logged and the lookup falls through to the wrapped store.
type CachedUserRepository struct {
	next    UserRepository
	client  redis.Cmdable
	ttl     time.Duration
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewCachedUserRepository wraps next with a Redis cache of the given TTL.
func NewCachedUserRepository(next UserRepository, client redis.Cmdable, ttl time.Duration, logger *slog.Logger, m *metrics.Metrics) *CachedUserRepository {
	return &CachedUserRepository{
		next:    next,
		client:  client,
		ttl:     ttl,
		logger:  logger,
		metrics: m,
	}
}

// cachedPrincipal is the Redis representation of a user row.
type cachedPrincipal struct {
	ID        int64     `json:"id"`
	UserName  string    `json:"userName"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func principalKey(id int64) string {
	return constants.RedisPrefixPrincipal + strconv.FormatInt(id, 10)
}

/*
FindByID serves the account from Redis when present, otherwise from the wrapped store.

Parameters:
  - context: context.Context
  - id: int64

Returns:
  - *User: Account without its password hash when served from cache
  - error: apperr.NotFound or retrieval failures of the wrapped store
*/
func (repository *CachedUserRepository) FindByID(context context.Context, id int64) (*User, error) {
	key := principalKey(id)

	raw, err := repository.client.Get(context, key).Bytes()
	switch {
	case err == nil:
		if user, ok := repository.decode(context, key, raw); ok {
			repository.metrics.ObservePrincipalCache(metrics.CacheHit)
			return user, nil
		}
	case errors.Is(err, redis.Nil):
		repository.metrics.ObservePrincipalCache(metrics.CacheMiss)
	default:
		repository.metrics.ObservePrincipalCache(metrics.CacheError)
		repository.logger.WarnContext(context, "principal_cache_get_failed",
			slog.Int64("user_id", id),
			slog.Any("error", err),
		)
	}

	user, err := repository.next.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	repository.store(context, key, user)
	return user, nil
}

// FindByUserName always reads through.
func (repository *CachedUserRepository) FindByUserName(context context.Context, userName string) (*User, error) {
	return repository.next.FindByUserName(context, userName)
}

// Create always writes through; new accounts are cached on first lookup.
func (repository *CachedUserRepository) Create(context context.Context, user *User) error {
	return repository.next.Create(context, user)
}

// UpdatePassword writes through and evicts the cached entry.
func (repository *CachedUserRepository) UpdatePassword(context context.Context, userID int64, newHash string) error {
	if err := repository.next.UpdatePassword(context, userID, newHash); err != nil {
		return err
	}
	repository.evict(context, userID)
	return nil
}

// SoftDelete writes through and evicts the cached entry.
func (repository *CachedUserRepository) SoftDelete(context context.Context, id int64) error {
	if err := repository.next.SoftDelete(context, id); err != nil {
		return err
	}
	repository.evict(context, id)
	return nil
}

func (repository *CachedUserRepository) decode(context context.Context, key string, raw []byte) (*User, bool) {
	var entry cachedPrincipal
	if err := json.Unmarshal(raw, &entry); err != nil {
		repository.logger.WarnContext(context, "principal_cache_corrupt_entry", slog.String("key", key), slog.Any("error", err))
		return nil, false
	}

	role, ok := sec.ParseRole(entry.Role)
	if !ok {
		return nil, false
	}

	return &User{
		ID:        entry.ID,
		UserName:  entry.UserName,
		Role:      role,
		CreatedAt: entry.CreatedAt,
		UpdatedAt: entry.UpdatedAt,
	}, true
}

func (repository *CachedUserRepository) store(context context.Context, key string, user *User) {
	payload, err := json.Marshal(cachedPrincipal{
		ID:        user.ID,
		UserName:  user.UserName,
		Role:      user.Role.String(),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	})
	if err != nil {
		return
	}

	if err := repository.client.Set(context, key, payload, repository.ttl).Err(); err != nil {
		repository.logger.WarnContext(context, "principal_cache_set_failed", slog.String("key", key), slog.Any("error", err))
	}
}

func (repository *CachedUserRepository) evict(context context.Context, id int64) {
	if err := repository.client.Del(context, principalKey(id)).Err(); err != nil {
		repository.logger.ErrorContext(context, "principal_cache_evict_failed",
			slog.Int64("user_id", id),
			slog.Any("error", err),
		)
	}
}
