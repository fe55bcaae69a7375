// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package policy implements the route-level authorization table.

A [Table] maps (HTTP method, path pattern) pairs onto an [Access] level. Rules
are evaluated in declaration order and the first match wins; a request that no
rule matches requires authentication.

# Patterns

  - Literal segments match exactly ("/api/v1/boards").
  - "{name}" matches exactly one non-empty segment ("/api/v1/boards/{boardId}").
  - A trailing "/**" matches the prefix itself and everything below it.

Request paths are canonicalized with [path.Clean] before matching, the same
way the router's CleanPath step does, so "/a/../b", "//b" and "/b/" are all
decided as "/b".

Ownership ([MustOwnResource]) is only a marker at this level: the gate-side
check is the same as [MustBeAuthenticated], and the handler compares the
principal with the resource owner via [RequireOwner] once the row is loaded.
*/
package policy

import (
	"path"
	"strings"

	"github.com/taibuivan/yomira-board/internal/platform/apperr"
	"github.com/taibuivan/yomira-board/internal/platform/sec"
)

// Access is the authorization level required by a route.
type Access int

const (
	// MustBeAuthenticated requires a resolved principal. It is the default.
	MustBeAuthenticated Access = iota
	// Public admits anonymous requests.
	Public
	// MustOwnResource requires a principal that owns the target resource.
	MustOwnResource
)

func (a Access) String() string {
	switch a {
	case Public:
		return "public"
	case MustOwnResource:
		return "must_own_resource"
	default:
		return "must_be_authenticated"
	}
}

// Rule binds a method and path pattern to an access level.
// An empty Method matches every method.
type Rule struct {
	Method  string
	Pattern string
	Access  Access
}

// Table is an ordered, immutable list of rules.
type Table struct {
	rules []compiledRule
}

type compiledRule struct {
	Rule
	segments []string
	wildcard bool
}

// NewTable compiles rules in order.
func NewTable(rules ...Rule) *Table {
	table := &Table{rules: make([]compiledRule, 0, len(rules))}
	for _, rule := range rules {
		pattern := strings.TrimSuffix(rule.Pattern, "/")
		wildcard := false
		if strings.HasSuffix(pattern, "/**") {
			wildcard = true
			pattern = strings.TrimSuffix(pattern, "/**")
		}
		table.rules = append(table.rules, compiledRule{
			Rule:     rule,
			segments: splitPath(pattern),
			wildcard: wildcard,
		})
	}
	return table
}

// Decide returns the access level for a request. Unmatched requests require authentication.
func (table *Table) Decide(method, requestPath string) Access {
	segments := splitPath(Canonical(requestPath))
	for _, rule := range table.rules {
		if rule.Method != "" && rule.Method != method {
			continue
		}
		if rule.matches(segments) {
			return rule.Access
		}
	}
	return MustBeAuthenticated
}

func (rule compiledRule) matches(parts []string) bool {
	if rule.wildcard {
		if len(parts) < len(rule.segments) {
			return false
		}
	} else if len(parts) != len(rule.segments) {
		return false
	}

	for i, segment := range rule.segments {
		if isPlaceholder(segment) {
			if parts[i] == "" {
				return false
			}
			continue
		}
		if segment != parts[i] {
			return false
		}
	}
	return true
}

// Canonical returns the rooted, cleaned form of a request path.
func Canonical(requestPath string) string {
	if !strings.HasPrefix(requestPath, "/") {
		requestPath = "/" + requestPath
	}
	return path.Clean(requestPath)
}

func isPlaceholder(segment string) bool {
	return len(segment) > 2 && segment[0] == '{' && segment[len(segment)-1] == '}'
}

func splitPath(cleaned string) []string {
	trimmed := strings.Trim(cleaned, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

// # Ownership

// RequireOwner fails unless principal owns the resource identified by ownerID.
//
// A nil principal yields 401; a mismatched one yields 403.
func RequireOwner(principal *sec.Principal, ownerID int64, detail string) error {
	if principal == nil {
		return apperr.Unauthorized("Authentication required")
	}
	if principal.ID != ownerID {
		return apperr.Forbidden(detail)
	}
	return nil
}
