// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/taibuivan/yomira-board/internal/platform/constants"
	"github.com/taibuivan/yomira-board/internal/platform/ctxutil"
)

// maxRequestIDLength bounds client-supplied correlation IDs.
const maxRequestIDLength = 128

// # Request Tracing

// RequestID attaches a correlation ID to every request for log tracing.
//
// A client-supplied X-Request-ID is reused when it is short printable ASCII;
// otherwise a UUIDv7 is generated so IDs sort by arrival time.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			requestID := request.Header.Get(constants.HeaderXRequestID)
			if !isUsableRequestID(requestID) {
				requestID = newRequestID()
			}

			writer.Header().Set(constants.HeaderXRequestID, requestID)
			next.ServeHTTP(writer, request.WithContext(ctxutil.WithRequestID(request.Context(), requestID)))
		})
	}
}

func newRequestID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func isUsableRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}
	for index := 0; index < len(id); index++ {
		if id[index] < 0x21 || id[index] > 0x7e {
			return false
		}
	}
	return true
}

// # Activity Logging

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (recorder *statusRecorder) WriteHeader(code int) {
	recorder.status = code
	recorder.ResponseWriter.WriteHeader(code)
}

/*
StructuredLogger writes one "http_request_finished" entry per request.

It also installs the request-scoped logger read by [ctxutil.GetLogger] and an
identity slot that [Authenticate], which runs later in the chain, fills in so
the final entry can carry user_id.

Levels: 5xx is logged at ERROR, 4xx at WARN, everything else at INFO.
*/
func StructuredLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			startTime := time.Now()

			requestLogger := logger.With(
				slog.String("request_id", ctxutil.GetRequestID(request.Context())),
				slog.String("method", request.Method),
				slog.String("path", request.URL.Path),
				slog.String("ip", requestIP(request)),
			)

			identity := &identitySlot{}
			ctx := ctxutil.WithLogger(request.Context(), requestLogger)
			ctx = withIdentitySlot(ctx, identity)
			recorder := &statusRecorder{ResponseWriter: writer, status: http.StatusOK}

			next.ServeHTTP(recorder, request.WithContext(ctx))

			attributes := []any{
				slog.Int("status", recorder.status),
				slog.Int64("latency_ms", time.Since(startTime).Milliseconds()),
				slog.String("user_agent", request.UserAgent()),
			}
			if principal := identity.principal; principal != nil {
				attributes = append(attributes, slog.Int64("user_id", principal.ID))
			}

			requestLogger.Log(ctx, levelFor(recorder.status), "http_request_finished", attributes...)
		})
	}
}

func levelFor(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
