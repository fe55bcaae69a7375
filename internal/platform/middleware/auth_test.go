// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-board/internal/platform/ctxutil"
	"github.com/taibuivan/yomira-board/internal/platform/middleware"
	"github.com/taibuivan/yomira-board/internal/platform/sec"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// stubResolver accepts exactly one token and records what it was asked.
type stubResolver struct {
	valid  string
	calls  []string
	panics bool
}

func (resolver *stubResolver) ResolvePrincipal(_ context.Context, token string) *sec.Principal {
	resolver.calls = append(resolver.calls, token)
	if resolver.panics {
		panic("resolver exploded")
	}
	if token == resolver.valid {
		return &sec.Principal{ID: 1, LoginName: "alice", Role: sec.RoleUser}
	}
	return nil
}

// capture records the principal seen downstream.
type capture struct {
	called    bool
	principal *sec.Principal
}

func (c *capture) handler() http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		c.called = true
		c.principal = ctxutil.GetPrincipal(request.Context())
		writer.WriteHeader(http.StatusNoContent)
	})
}

/*
TestAuthenticate_HeaderForms checks that only the exact "Bearer " prefix is honoured
and that every outcome still reaches the next handler.
*/
func TestAuthenticate_HeaderForms(t *testing.T) {
	tests := []struct {
		name          string
		header        string
		wantPrincipal bool
		wantCall      string
	}{
		{"no_header", "", false, ""},
		{"valid_bearer", "Bearer good", true, "good"},
		{"lowercase_scheme", "bearer good", false, ""},
		{"no_space", "Bearergood", false, ""},
		{"basic_scheme", "Basic Zm9vOmJhcg==", false, ""},
		{"invalid_token", "Bearer tampered", false, "tampered"},
		{"double_space_keeps_remainder", "Bearer  good", false, " good"},
		{"empty_token", "Bearer ", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := &stubResolver{valid: "good"}
			downstream := &capture{}

			request := httptest.NewRequest(http.MethodGet, "/api/v1/users/1", nil)
			if tt.header != "" {
				request.Header.Set("Authorization", tt.header)
			}
			recorder := httptest.NewRecorder()

			middleware.Authenticate(resolver, discard)(downstream.handler()).ServeHTTP(recorder, request)

			assert.True(t, downstream.called)
			assert.Equal(t, http.StatusNoContent, recorder.Code)
			assert.Equal(t, tt.wantPrincipal, downstream.principal != nil)

			if tt.wantCall == "" && tt.header != "Bearer " {
				assert.Empty(t, resolver.calls)
			} else {
				require.Len(t, resolver.calls, 1)
				assert.Equal(t, tt.wantCall, resolver.calls[0])
			}
		})
	}
}

/*
TestAuthenticate_RecoversPanics ensures a failing resolver degrades to anonymous.
*/
func TestAuthenticate_RecoversPanics(t *testing.T) {
	resolver := &stubResolver{valid: "good", panics: true}
	downstream := &capture{}

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("Authorization", "Bearer good")

	assert.NotPanics(t, func() {
		middleware.Authenticate(resolver, discard)(downstream.handler()).ServeHTTP(httptest.NewRecorder(), request)
	})
	assert.True(t, downstream.called)
	assert.Nil(t, downstream.principal)
}

/*
TestAuthenticate_RunsOncePerRequest verifies a nested gate does not resolve twice.
*/
func TestAuthenticate_RunsOncePerRequest(t *testing.T) {
	resolver := &stubResolver{valid: "good"}
	downstream := &capture{}

	gate := middleware.Authenticate(resolver, discard)
	chain := gate(gate(downstream.handler()))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("Authorization", "Bearer good")
	chain.ServeHTTP(httptest.NewRecorder(), request)

	assert.Len(t, resolver.calls, 1)
	require.NotNil(t, downstream.principal)
	assert.Equal(t, int64(1), downstream.principal.ID)
}

/*
TestAuthenticate_NoLeakAcrossRequests checks that each request starts anonymous.
*/
func TestAuthenticate_NoLeakAcrossRequests(t *testing.T) {
	resolver := &stubResolver{valid: "good"}
	downstream := &capture{}
	handler := middleware.Authenticate(resolver, discard)(downstream.handler())

	first := httptest.NewRequest(http.MethodGet, "/", nil)
	first.Header.Set("Authorization", "Bearer good")
	handler.ServeHTTP(httptest.NewRecorder(), first)
	require.NotNil(t, downstream.principal)

	second := httptest.NewRequest(http.MethodGet, "/", nil)
	handler.ServeHTTP(httptest.NewRecorder(), second)
	assert.Nil(t, downstream.principal)
}

/*
TestBearerToken exposes the extraction used by the logout handler.
*/
func TestBearerToken(t *testing.T) {
	request := httptest.NewRequest(http.MethodDelete, "/api/v1/auth/session", nil)
	assert.False(t, middleware.HasBearerToken(request))

	request.Header.Set("Authorization", "Bearer abc")
	token, found := middleware.BearerToken(request)
	assert.True(t, found)
	assert.Equal(t, "abc", token)
}
