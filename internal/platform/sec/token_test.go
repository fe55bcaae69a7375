// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-board/internal/platform/sec"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

type fakeClock struct {
	now time.Time
}

func (clock *fakeClock) Now() time.Time { return clock.now }

func newCodec(t *testing.T, clock *fakeClock) *sec.TokenCodec {
	t.Helper()
	codec, err := sec.NewTokenCodec(testSecret, time.Hour, sec.WithClock(clock.Now))
	require.NoError(t, err)
	return codec
}

var alice = sec.TokenSubject{ID: 1, LoginName: "alice", Role: sec.RoleUser}

/*
TestNewTokenCodec_RejectsBadConfig ensures there is no fallback secret or TTL.
*/
func TestNewTokenCodec_RejectsBadConfig(t *testing.T) {
	_, err := sec.NewTokenCodec([]byte("short"), time.Hour)
	assert.Error(t, err)

	_, err = sec.NewTokenCodec(nil, time.Hour)
	assert.Error(t, err)

	_, err = sec.NewTokenCodec(testSecret, 0)
	assert.Error(t, err)

	codec, err := sec.NewTokenCodec(testSecret, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, codec.TTL())
}

/*
TestTokenCodec_RoundTrip verifies that an issued token decodes to its subject.
*/
func TestTokenCodec_RoundTrip(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	codec := newCodec(t, clock)

	token, err := codec.Issue(alice)
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3)

	claims, err := codec.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(1), claims.UserID)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, sec.RoleUser, claims.Role())
	assert.Equal(t, []sec.Authority{{Authority: "USER"}}, claims.Roles)
	assert.Equal(t, clock.now, claims.IssuedAt.Time.UTC())
	assert.Equal(t, clock.now.Add(time.Hour), claims.ExpiresAt.Time.UTC())
}

/*
TestTokenCodec_ExpiryBoundary checks validity strictly before iat+TTL.
*/
func TestTokenCodec_ExpiryBoundary(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := &fakeClock{now: issuedAt}
	codec := newCodec(t, clock)

	token, err := codec.Issue(alice)
	require.NoError(t, err)

	tests := []struct {
		name    string
		at      time.Time
		expired bool
	}{
		{"at_issue", issuedAt, false},
		{"one_second_before_expiry", issuedAt.Add(time.Hour - time.Second), false},
		{"at_expiry", issuedAt.Add(time.Hour), true},
		{"after_expiry", issuedAt.Add(2 * time.Hour), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock.now = tt.at
			claims, err := codec.Verify(token)
			if !tt.expired {
				require.NoError(t, err)
				assert.Equal(t, int64(1), claims.UserID)
				return
			}
			assert.Nil(t, claims)
			assert.Equal(t, sec.TokenExpired, sec.TokenErrorKindOf(err))
		})
	}
}

/*
TestTokenCodec_RejectsInvalidTokens covers garbage, truncation, tampering and foreign keys.
*/
func TestTokenCodec_RejectsInvalidTokens(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	codec := newCodec(t, clock)

	valid, err := codec.Issue(alice)
	require.NoError(t, err)

	otherCodec, err := sec.NewTokenCodec([]byte("ffffffffffffffffffffffffffffffff"), time.Hour, sec.WithClock(clock.Now))
	require.NoError(t, err)
	foreign, err := otherCodec.Issue(alice)
	require.NoError(t, err)

	parts := strings.Split(valid, ".")

	tests := []struct {
		name  string
		token string
		kind  sec.TokenErrorKind
	}{
		{"empty", "", sec.TokenInvalidInput},
		{"garbage", "not-a-token", sec.TokenMalformed},
		{"two_segments", parts[0] + "." + parts[1], sec.TokenMalformed},
		{"bad_base64_payload", parts[0] + ".%%%." + parts[2], sec.TokenMalformed},
		{"flipped_signature_char", parts[0] + "." + parts[1] + "." + flipMiddle(parts[2]), sec.TokenBadSignature},
		{"wrong_secret", foreign, sec.TokenBadSignature},
		{"swapped_payload", parts[0] + "." + strings.Split(foreign, ".")[1] + ".AAAA", sec.TokenBadSignature},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				claims, err := codec.Verify(tt.token)
				assert.Nil(t, claims)
				require.Error(t, err)
				assert.Equal(t, tt.kind, sec.TokenErrorKindOf(err))
			})
		})
	}
}

/*
TestTokenCodec_RejectsOtherAlgorithms ensures only HS256 is accepted, including "none".
*/
func TestTokenCodec_RejectsOtherAlgorithms(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	codec := newCodec(t, clock)

	claims := jwt.MapClaims{
		"sub":    "alice",
		"userId": 1,
		"roles":  []map[string]string{{"authority": "USER"}},
		"iat":    clock.now.Unix(),
		"exp":    clock.now.Add(time.Hour).Unix(),
	}

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	hs384, err := jwt.NewWithClaims(jwt.SigningMethodHS384, claims).SignedString(testSecret)
	require.NoError(t, err)

	for name, token := range map[string]string{"none": none, "hs384": hs384} {
		t.Run(name, func(t *testing.T) {
			_, err := codec.Verify(token)
			assert.Equal(t, sec.TokenUnsupported, sec.TokenErrorKindOf(err))
		})
	}
}

/*
TestTokenCodec_RejectsIncompleteClaims covers correctly signed tokens with unusable payloads.
*/
func TestTokenCodec_RejectsIncompleteClaims(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	codec := newCodec(t, clock)

	base := func() jwt.MapClaims {
		return jwt.MapClaims{
			"sub":    "alice",
			"userId": 1,
			"roles":  []map[string]string{{"authority": "USER"}},
			"iat":    clock.now.Unix(),
			"exp":    clock.now.Add(time.Hour).Unix(),
		}
	}

	tests := []struct {
		name   string
		mutate func(jwt.MapClaims)
	}{
		{"missing_user_id", func(c jwt.MapClaims) { delete(c, "userId") }},
		{"missing_subject", func(c jwt.MapClaims) { delete(c, "sub") }},
		{"unknown_role", func(c jwt.MapClaims) { c["roles"] = []map[string]string{{"authority": "ROOT"}} }},
		{"missing_expiry", func(c jwt.MapClaims) { delete(c, "exp") }},
		{"issued_in_future", func(c jwt.MapClaims) { c["iat"] = clock.now.Add(time.Minute).Unix() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims := base()
			tt.mutate(claims)

			token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
			require.NoError(t, err)

			_, err = codec.Verify(token)
			assert.Equal(t, sec.TokenInvalidInput, sec.TokenErrorKindOf(err))
		})
	}
}

/*
TestTokenCodec_IssueRequiresCompleteSubject guards against minting tokens for unsaved users.
*/
func TestTokenCodec_IssueRequiresCompleteSubject(t *testing.T) {
	codec := newCodec(t, &fakeClock{now: time.Now()})

	_, err := codec.Issue(sec.TokenSubject{LoginName: "alice", Role: sec.RoleUser})
	assert.Error(t, err)

	_, err = codec.Issue(sec.TokenSubject{ID: 1, Role: sec.RoleUser})
	assert.Error(t, err)

	_, err = codec.Issue(sec.TokenSubject{ID: 1, LoginName: "alice", Role: "ROOT"})
	assert.Error(t, err)
}

// flipMiddle replaces a character in the middle of segment with a different base64url character.
func flipMiddle(segment string) string {
	index := len(segment) / 2
	replacement := byte('A')
	if segment[index] == 'A' {
		replacement = 'B'
	}
	return segment[:index] + string(replacement) + segment[index+1:]
}
