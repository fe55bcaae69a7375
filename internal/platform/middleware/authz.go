// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yomira-board/internal/platform/apperr"
	"github.com/taibuivan/yomira-board/internal/platform/ctxutil"
	"github.com/taibuivan/yomira-board/internal/platform/policy"
	"github.com/taibuivan/yomira-board/internal/platform/respond"
)

// RouteDecider is satisfied by [*policy.Table].
type RouteDecider interface {
	Decide(method, path string) policy.Access
}

// Authorize enforces the route table for anonymous requests.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
//
// # Flow
//  1. Look up the access level for (method, path), using the path the router
//     dispatches on rather than the raw request line.
//  2. Public routes pass through.
//  3. Any other level requires a principal; anonymous requests get 401.
//
// Ownership is checked by handlers once the resource is loaded.
func Authorize(decider RouteDecider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if decider.Decide(request.Method, routingPath(request)) == policy.Public {
				next.ServeHTTP(writer, request)
				return
			}

			if ctxutil.GetPrincipal(request.Context()) == nil {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// routingPath mirrors chi's choice of path: the route context's RoutePath
// (set by CleanPath and sub-routers), else the escaped path when present,
// else URL.Path. The decider cleans whatever it gets.
func routingPath(request *http.Request) string {
	if routeContext := chi.RouteContext(request.Context()); routeContext != nil && routeContext.RoutePath != "" {
		return routeContext.RoutePath
	}
	if request.URL.RawPath != "" {
		return request.URL.RawPath
	}
	return request.URL.Path
}
