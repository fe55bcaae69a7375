// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/taibuivan/yomira-board/internal/platform/apperr"
	"github.com/taibuivan/yomira-board/internal/platform/constants"
	"github.com/taibuivan/yomira-board/internal/platform/respond"
)

// # Rate Limiting

type rateLimitClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipRateLimiter keeps one token bucket per client IP.
type ipRateLimiter struct {
	mu      sync.Mutex
	clients map[string]*rateLimitClient
	limit   rate.Limit
	burst   int
}

func newIPRateLimiter(requestsPerSecond float64, burst int) *ipRateLimiter {
	return &ipRateLimiter{
		clients: make(map[string]*rateLimitClient),
		limit:   rate.Limit(requestsPerSecond),
		burst:   burst,
	}
}

// reserve takes a token for ip. When none is available it returns false and
// the wait until the next one.
func (limiter *ipRateLimiter) reserve(ip string, now time.Time) (bool, time.Duration) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	client, found := limiter.clients[ip]
	if !found {
		client = &rateLimitClient{limiter: rate.NewLimiter(limiter.limit, limiter.burst)}
		limiter.clients[ip] = client
	}
	client.lastSeen = now

	reservation := client.limiter.ReserveN(now, 1)
	if !reservation.OK() {
		return false, time.Second
	}
	if delay := reservation.DelayFrom(now); delay > 0 {
		reservation.CancelAt(now)
		return false, delay
	}
	return true, 0
}

// sweep drops clients idle for longer than ttl.
func (limiter *ipRateLimiter) sweep(now time.Time, ttl time.Duration) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	for ip, client := range limiter.clients {
		if now.Sub(client.lastSeen) > ttl {
			delete(limiter.clients, ip)
		}
	}
}

func (limiter *ipRateLimiter) janitor(context context.Context) {
	ticker := time.NewTicker(constants.RateLimitCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			limiter.sweep(now, constants.RateLimitClientTTL)
		case <-context.Done():
			return
		}
	}
}

/*
RateLimit limits requests per client IP, as resolved by [ClientIP], using a token bucket.

Rejected requests get 429 with a Retry-After header in whole seconds. The
janitor goroutine that forgets idle clients lives until context is cancelled.
*/
func RateLimit(context context.Context, requestsPerSecond float64, burst int) func(http.Handler) http.Handler {
	limiter := newIPRateLimiter(requestsPerSecond, burst)
	go limiter.janitor(context)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			allowed, wait := limiter.reserve(requestIP(request), time.Now())
			if !allowed {
				writer.Header().Set(constants.HeaderRetryAfter, strconv.Itoa(int(math.Ceil(wait.Seconds()))))
				respond.Error(writer, request, apperr.RateLimited())
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
