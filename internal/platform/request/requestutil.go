// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yomira-board/internal/platform/apperr"
	"github.com/taibuivan/yomira-board/internal/platform/ctxutil"
	"github.com/taibuivan/yomira-board/internal/platform/sec"
	"github.com/taibuivan/yomira-board/internal/platform/validate"
)

// maxBodyBytes bounds every JSON request body.
const maxBodyBytes = 1 << 20

/*
DecodeJSON reads the request body and decodes it into the target structure.

Returns validate.ErrInvalidJSON if decoding fails, otherwise nil.
*/
func DecodeJSON(writer http.ResponseWriter, request *http.Request, target any) error {
	request.Body = http.MaxBytesReader(writer, request.Body, maxBodyBytes)
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
ID parses a numeric path identifier. Non-numeric or non-positive values are a 400.
*/
func ID(request *http.Request, name string) (int64, error) {
	raw := chi.URLParam(request, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.BadRequest("Invalid " + name + ": " + raw)
	}
	return id, nil
}

/*
Principal extracts the authenticated principal from the request context.

Returns nil if the request is not authenticated.
*/
func Principal(request *http.Request) *sec.Principal {
	return ctxutil.GetPrincipal(request.Context())
}

/*
RequiredPrincipal ensures the request is authenticated and returns the principal.

Returns apperr.Unauthorized if the request is anonymous.
*/
func RequiredPrincipal(request *http.Request) (*sec.Principal, error) {
	principal := ctxutil.GetPrincipal(request.Context())
	if principal == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return principal, nil
}
