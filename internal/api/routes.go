// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"net/http"

	"github.com/taibuivan/yomira-board/internal/platform/policy"
)

// RouteTable is the access policy applied by [middleware.Authorize].
//
// Rules are matched top to bottom; anything unlisted requires authentication.
// MustOwnResource routes only need a caller at the gate, the owning service
// compares the caller with the loaded resource.
func RouteTable() *policy.Table {
	return policy.NewTable(
		// Identity
		policy.Rule{Pattern: "/api/v1/auth/**", Access: policy.Public},

		// Infrastructure
		policy.Rule{Method: http.MethodGet, Pattern: "/health", Access: policy.Public},
		policy.Rule{Method: http.MethodGet, Pattern: "/ready", Access: policy.Public},
		policy.Rule{Method: http.MethodGet, Pattern: "/metrics", Access: policy.Public},

		// Boards
		policy.Rule{Method: http.MethodGet, Pattern: "/api/v1/boards", Access: policy.Public},
		policy.Rule{Method: http.MethodPatch, Pattern: "/api/v1/boards/{boardId}", Access: policy.MustOwnResource},
		policy.Rule{Method: http.MethodDelete, Pattern: "/api/v1/boards/{boardId}", Access: policy.MustOwnResource},
		policy.Rule{Method: http.MethodPatch, Pattern: "/api/v1/boards/{boardId}/comments/{commentId}", Access: policy.MustOwnResource},
		policy.Rule{Method: http.MethodDelete, Pattern: "/api/v1/boards/{boardId}/comments/{commentId}", Access: policy.MustOwnResource},

		// Accounts
		policy.Rule{Method: http.MethodDelete, Pattern: "/api/v1/users/{userId}", Access: policy.MustOwnResource},
		policy.Rule{Method: http.MethodGet, Pattern: "/api/v1/users/{userId}/comments", Access: policy.MustOwnResource},
	)
}
