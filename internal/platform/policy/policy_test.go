// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package policy_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/yomira-board/internal/platform/apperr"
	"github.com/taibuivan/yomira-board/internal/platform/policy"
	"github.com/taibuivan/yomira-board/internal/platform/sec"
)

func boardTable() *policy.Table {
	return policy.NewTable(
		policy.Rule{Pattern: "/api/v1/auth/**", Access: policy.Public},
		policy.Rule{Method: http.MethodGet, Pattern: "/api/v1/boards", Access: policy.Public},
		policy.Rule{Method: http.MethodDelete, Pattern: "/api/v1/boards/{boardId}", Access: policy.MustOwnResource},
		policy.Rule{Method: http.MethodDelete, Pattern: "/api/v1/boards/{boardId}", Access: policy.Public},
	)
}

/*
TestTable_Decide covers literal, placeholder and wildcard matching plus the default.
*/
func TestTable_Decide(t *testing.T) {
	table := boardTable()

	tests := []struct {
		name   string
		method string
		path   string
		want   policy.Access
	}{
		{"wildcard_prefix_itself", http.MethodPost, "/api/v1/auth", policy.Public},
		{"wildcard_child", http.MethodPost, "/api/v1/auth/register", policy.Public},
		{"wildcard_any_method", http.MethodDelete, "/api/v1/auth/session", policy.Public},
		{"wildcard_deep_child", http.MethodGet, "/api/v1/auth/a/b/c", policy.Public},
		{"wildcard_is_segment_bound", http.MethodPost, "/api/v1/authx", policy.MustBeAuthenticated},
		{"literal_get", http.MethodGet, "/api/v1/boards", policy.Public},
		{"literal_trailing_slash", http.MethodGet, "/api/v1/boards/", policy.Public},
		{"literal_other_method", http.MethodPost, "/api/v1/boards", policy.MustBeAuthenticated},
		{"placeholder_first_match_wins", http.MethodDelete, "/api/v1/boards/7", policy.MustOwnResource},
		{"placeholder_single_segment", http.MethodDelete, "/api/v1/boards/7/comments", policy.MustBeAuthenticated},
		{"unmatched_default", http.MethodGet, "/api/v1/users/1", policy.MustBeAuthenticated},
		{"root", http.MethodGet, "/", policy.MustBeAuthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, table.Decide(tt.method, tt.path))
		})
	}
}

/*
TestTable_Decide_NonCanonicalPaths decides on the cleaned path, never on the raw one.
*/
func TestTable_Decide_NonCanonicalPaths(t *testing.T) {
	table := boardTable()

	tests := []struct {
		name   string
		method string
		path   string
		want   policy.Access
	}{
		{"dot_dot_escapes_public_prefix", http.MethodGet, "/api/v1/auth/../boards/1", policy.MustBeAuthenticated},
		{"dot_dot_escapes_to_users", http.MethodGet, "/api/v1/auth/../users/1", policy.MustBeAuthenticated},
		{"dot_dot_to_comments", http.MethodGet, "/api/v1/auth/../boards/1/comments", policy.MustBeAuthenticated},
		{"dot_dot_onto_public_rule", http.MethodPost, "/api/v1/boards/../auth/register", policy.Public},
		{"dot_dot_above_prefix", http.MethodGet, "/api/v1/auth/..", policy.MustBeAuthenticated},
		{"dot_segment", http.MethodGet, "/api/v1/./boards", policy.Public},
		{"double_slash", http.MethodDelete, "/api/v1//boards/7", policy.MustOwnResource},
		{"double_slash_in_prefix", http.MethodPost, "/api/v1//auth/session", policy.Public},
		{"trailing_slash_placeholder", http.MethodDelete, "/api/v1/boards/7/", policy.MustOwnResource},
		{"trailing_slash_unmatched", http.MethodGet, "/api/v1/users/1/", policy.MustBeAuthenticated},
		{"relative_path", http.MethodGet, "api/v1/boards", policy.Public},
		{"empty_path", http.MethodGet, "", policy.MustBeAuthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, table.Decide(tt.method, tt.path))
		})
	}
}

/*
TestRequireOwner checks the 401/403/pass outcomes.
*/
func TestRequireOwner(t *testing.T) {
	owner := &sec.Principal{ID: 1, LoginName: "alice", Role: sec.RoleUser}
	other := &sec.Principal{ID: 2, LoginName: "bob", Role: sec.RoleUser}

	assert.NoError(t, policy.RequireOwner(owner, 1, "not yours"))

	err := apperr.As(policy.RequireOwner(other, 1, "not yours"))
	assert.Equal(t, http.StatusForbidden, err.HTTPStatus)
	assert.Equal(t, "not yours", err.Detail)

	err = apperr.As(policy.RequireOwner(nil, 1, "not yours"))
	assert.Equal(t, http.StatusUnauthorized, err.HTTPStatus)
}

/*
TestAccess_String gives stable log labels.
*/
func TestAccess_String(t *testing.T) {
	assert.Equal(t, "public", policy.Public.String())
	assert.Equal(t, "must_be_authenticated", policy.MustBeAuthenticated.String())
	assert.Equal(t, "must_own_resource", policy.MustOwnResource.String())
}
