// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/taibuivan/yomira-board/internal/platform/constants"
	"github.com/taibuivan/yomira-board/internal/platform/ctxutil"
	"github.com/taibuivan/yomira-board/internal/platform/sec"
)

// PrincipalResolver turns a bearer token into a principal.
//
// # Contract
//
// A nil return means "anonymous"; implementations report their own failures
// through logs and metrics instead of errors.
type PrincipalResolver interface {
	ResolvePrincipal(ctx context.Context, token string) *sec.Principal
}

// Authenticate is the single-pass request gate.
//
// # Flow
//  1. Read 'Authorization'. Anything not starting with the case-sensitive
//     "Bearer " prefix means no token.
//  2. Hand the remainder to the [PrincipalResolver].
//  3. Attach the principal to the request context when one is resolved.
//  4. Recover any panic raised during resolution and continue anonymously.
//  5. Always call next. A rejected token never produces a response here;
//     [Authorize] decides whether anonymous access is acceptable.
//
// Re-entering the gate for the same request is a pass-through.
func Authenticate(resolver PrincipalResolver, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ctx := request.Context()

			// ── 1. Once per request ───────────────────────────────────────────
			if ctxutil.GatePassed(ctx) {
				next.ServeHTTP(writer, request)
				return
			}
			ctx = ctxutil.MarkGatePassed(ctx)

			// ── 2. Bearer extraction ──────────────────────────────────────────
			token, found := bearerToken(request)
			if found {
				// ── 3. Resolution ─────────────────────────────────────────────
				if principal := resolveSafely(ctx, resolver, token, logger); principal != nil {
					ctx = ctxutil.WithPrincipal(ctx, principal)
					ctx = ctxutil.WithLogger(ctx, ctxutil.GetLogger(ctx).With(slog.Int64("user_id", principal.ID)))

					if slot := identitySlotFrom(ctx); slot != nil {
						slot.principal = principal
					}
				}
			}

			// ── 4. Always forward ─────────────────────────────────────────────
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// bearerToken returns the credential after the exact "Bearer " prefix.
func bearerToken(request *http.Request) (string, bool) {
	header := request.Header.Get(constants.HeaderAuthorization)
	if !strings.HasPrefix(header, constants.BearerPrefix) {
		return "", false
	}
	return header[len(constants.BearerPrefix):], true
}

// HasBearerToken reports whether the request carries an "Authorization: Bearer ..." header.
func HasBearerToken(request *http.Request) bool {
	_, found := bearerToken(request)
	return found
}

// BearerToken returns the raw bearer credential, if any.
func BearerToken(request *http.Request) (string, bool) {
	return bearerToken(request)
}

func resolveSafely(ctx context.Context, resolver PrincipalResolver, token string, logger *slog.Logger) (principal *sec.Principal) {
	defer func() {
		if recovered := recover(); recovered != nil {
			principal = nil
			logger.ErrorContext(ctx, "auth_gate_resolution_panic",
				slog.String("request_id", ctxutil.GetRequestID(ctx)),
				slog.String("error", fmt.Sprint(recovered)),
			)
		}
	}()

	return resolver.ResolvePrincipal(ctx, token)
}

// # Request Identity Slot

// identitySlot lets [StructuredLogger], which wraps the gate, see the principal
// the gate resolved further down the chain. It lives for one request.
type identitySlot struct {
	principal *sec.Principal
}

type identitySlotKey struct{}

func withIdentitySlot(ctx context.Context, slot *identitySlot) context.Context {
	return context.WithValue(ctx, identitySlotKey{}, slot)
}

func identitySlotFrom(ctx context.Context) *identitySlot {
	slot, _ := ctx.Value(identitySlotKey{}).(*identitySlot)
	return slot
}
