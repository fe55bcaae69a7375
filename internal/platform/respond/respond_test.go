// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package respond_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-board/internal/platform/apperr"
	"github.com/taibuivan/yomira-board/internal/platform/respond"
)

/*
TestError_Envelope verifies the {"error","details"} body and status mapping.
*/
func TestError_Envelope(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		title   string
		details string
	}{
		{"conflict", apperr.Conflict("Login name already in use: alice"), http.StatusConflict, "Conflict", "Login name already in use: alice"},
		{"forbidden", apperr.Forbidden("You can only modify your own boards"), http.StatusForbidden, "Access denied", "You can only modify your own boards"},
		{"plain_error_is_hidden", errors.New("dial tcp 10.0.0.1:5432: refused"), http.StatusInternalServerError, "Internal server error", "An unexpected error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			request := httptest.NewRequest(http.MethodGet, "/", nil)

			respond.Error(recorder, request, tt.err)

			assert.Equal(t, tt.status, recorder.Code)
			assert.Equal(t, "application/json; charset=utf-8", recorder.Header().Get("Content-Type"))

			var body map[string]string
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(t, map[string]string{"error": tt.title, "details": tt.details}, body)
			assert.NotContains(t, recorder.Body.String(), "10.0.0.1")
		})
	}
}

/*
TestCreated_Envelope verifies success payloads carry a message and data.
*/
func TestCreated_Envelope(t *testing.T) {
	recorder := httptest.NewRecorder()

	respond.Created(recorder, "Board created", map[string]int{"id": 7})

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.JSONEq(t, `{"message":"Board created","data":{"id":7}}`, recorder.Body.String())
}
