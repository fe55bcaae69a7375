// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package middleware provides the cross-cutting HTTP processing chain.

It acts as a series of decorators around the standard http.Handler, injecting
traceability, safety, and security into every request lifecycle.

Standard Stack:

  - Trace: RequestID generation for log correlation.
  - Log: Structured Activity logging (slog).
  - Guard: Rate limiting and CORS validation.
  - Safe: Panic recovery to prevent server crashes.
  - Identity: The bearer-token gate ([Authenticate]) and the route policy ([Authorize]).

This package ensures that domain handlers can focus purely on business logic
without worrying about infrastructure-level concerns.
*/
package middleware

import (
	"log/slog"
	"net/http"
	"runtime"
	"strings"

	"github.com/go-chi/cors"

	"github.com/taibuivan/yomira-board/internal/platform/apperr"
	"github.com/taibuivan/yomira-board/internal/platform/constants"
	"github.com/taibuivan/yomira-board/internal/platform/ctxutil"
	"github.com/taibuivan/yomira-board/internal/platform/respond"
)

// # Reliability & Safety

// stackTraceSize bounds the logged stack of a recovered panic.
const stackTraceSize = 4096

// PanicRecovery turns a handler panic into the generic 500 envelope and logs
// the stack. [http.ErrAbortHandler] is re-raised.
func PanicRecovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}
				// The server's own abort signal must keep propagating.
				if recovered == http.ErrAbortHandler {
					panic(recovered)
				}

				stackTrace := make([]byte, stackTraceSize)
				length := runtime.Stack(stackTrace, false)

				ctxutil.GetLogger(request.Context()).ErrorContext(request.Context(), "panic_recovered",
					slog.Any("error", recovered),
					slog.String("stack", string(stackTrace[:length])),
				)

				respond.Error(writer, request, apperr.Internal(nil))
			}()

			next.ServeHTTP(writer, request)
		})
	}
}

// # Cross-Origin Resource Sharing

// AppConfig defines the behavior needed by the CORS middleware.
type AppConfig interface {
	IsDevelopment() bool
}

// CORS handles Cross-Origin Resource Sharing based on application environment.
//
// Development mode reflects any origin; otherwise only allowedOrigins are accepted.
func CORS(cfg AppConfig, allowedOrigins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[strings.ToLower(origin)] = struct{}{}
	}

	return cors.Handler(cors.Options{
		AllowOriginFunc: func(_ *http.Request, origin string) bool {
			if cfg.IsDevelopment() {
				return true
			}
			_, ok := allowed[strings.ToLower(origin)]
			return ok
		},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Content-Length", constants.HeaderAuthorization, constants.HeaderXRequestID},
		ExposedHeaders:   []string{"Content-Length", constants.HeaderXRequestID},
		AllowCredentials: true,
		MaxAge:           300,
	})
}
