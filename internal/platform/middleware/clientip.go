// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"net"
	"net/http"
	"net/netip"
	"strings"

	"github.com/taibuivan/yomira-board/internal/platform/constants"
	"github.com/taibuivan/yomira-board/internal/platform/ctxutil"
)

// # Client Address

/*
ClientIP resolves the client address once per request and stores it for
[RateLimit] and [StructuredLogger].

Proxy headers are only read when the socket peer falls inside trusted. With
an empty list the address is always the peer's, so a client cannot pick its
own rate-limit bucket by rotating X-Forwarded-For.

For X-Forwarded-For the list is walked right to left and the first hop that
is not itself a trusted proxy wins.
*/
func ClientIP(trusted []netip.Prefix) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ip := resolveClientIP(request, trusted)
			next.ServeHTTP(writer, request.WithContext(ctxutil.WithClientIP(request.Context(), ip)))
		})
	}
}

// RemoteIP returns the host part of the socket peer address.
func RemoteIP(request *http.Request) string {
	host, _, err := net.SplitHostPort(request.RemoteAddr)
	if err != nil {
		return request.RemoteAddr
	}
	return host
}

// requestIP is the address stored by [ClientIP], or the socket peer when the
// middleware is not installed.
func requestIP(request *http.Request) string {
	if ip := ctxutil.GetClientIP(request.Context()); ip != "" {
		return ip
	}
	return RemoteIP(request)
}

func resolveClientIP(request *http.Request, trusted []netip.Prefix) string {
	peer := RemoteIP(request)
	if !isTrusted(peer, trusted) {
		return peer
	}

	if realIP := strings.TrimSpace(request.Header.Get(constants.HeaderXRealIP)); realIP != "" {
		if addr, err := netip.ParseAddr(realIP); err == nil {
			return addr.Unmap().String()
		}
	}

	forwarded := request.Header.Values(constants.HeaderXForwardedFor)
	hops := strings.Split(strings.Join(forwarded, ","), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if hop == "" {
			continue
		}
		addr, err := netip.ParseAddr(hop)
		if err != nil {
			break
		}
		if !isTrusted(addr.String(), trusted) {
			return addr.Unmap().String()
		}
	}

	return peer
}

func isTrusted(ip string, trusted []netip.Prefix) bool {
	if len(trusted) == 0 {
		return false
	}
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, prefix := range trusted {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}
