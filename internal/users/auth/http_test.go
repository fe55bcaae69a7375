// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-board/internal/users/auth"
)

func newAuthServer(t *testing.T) (*fixture, http.Handler) {
	t.Helper()
	f := newFixture(t)
	return f, auth.NewHandler(f.service).Routes()
}

func do(handler http.Handler, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	for index := 0; index+1 < len(headers); index += 2 {
		request.Header.Set(headers[index], headers[index+1])
	}

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

func decode(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

/*
TestHandler_Register covers success, duplicates and missing fields.
*/
func TestHandler_Register(t *testing.T) {
	_, server := newAuthServer(t)

	recorder := do(server, http.MethodPost, "/register", `{"user_name":"alice","password":"s3cret"}`)
	require.Equal(t, http.StatusCreated, recorder.Code)
	body := decode(t, recorder)
	assert.Equal(t, float64(1), body["userId"])
	assert.NotEmpty(t, body["message"])

	recorder = do(server, http.MethodPost, "/register", `{"user_name":"alice","password":"other"}`)
	assert.Equal(t, http.StatusConflict, recorder.Code)
	assert.Contains(t, decode(t, recorder)["details"], "alice")

	recorder = do(server, http.MethodPost, "/register", `{"user_name":"","password":"x"}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, decode(t, recorder)["details"], "user_name")

	recorder = do(server, http.MethodPost, "/register", `{not json`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

/*
TestHandler_Login checks the token payload and the uniform credential failure.
*/
func TestHandler_Login(t *testing.T) {
	f, server := newAuthServer(t)
	f.register(t, "alice")

	for _, path := range []string{"/session", "/login"} {
		t.Run(strings.TrimPrefix(path, "/"), func(t *testing.T) {
			recorder := do(server, http.MethodPost, path, `{"user_name":"alice","password":"s3cret"}`)
			require.Equal(t, http.StatusOK, recorder.Code)

			data, ok := decode(t, recorder)["data"].(map[string]any)
			require.True(t, ok)
			assert.Equal(t, "Bearer", data["tokenType"])
			assert.Equal(t, float64(3600), data["expiresIn"])
			assert.Equal(t, map[string]any{"id": float64(1), "userName": "alice"}, data["user"])

			token, _ := data["accessToken"].(string)
			principal := f.service.ResolvePrincipal(t.Context(), token)
			require.NotNil(t, principal)
			assert.Equal(t, int64(1), principal.ID)
		})
	}

	wrong := do(server, http.MethodPost, "/session", `{"user_name":"alice","password":"nope"}`)
	unknown := do(server, http.MethodPost, "/session", `{"user_name":"bob","password":"s3cret"}`)

	assert.Equal(t, http.StatusUnauthorized, wrong.Code)
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.JSONEq(t, wrong.Body.String(), unknown.Body.String())
}

/*
TestHandler_Logout requires a bearer token but never revokes it.
*/
func TestHandler_Logout(t *testing.T) {
	f, server := newAuthServer(t)
	token := f.token(t, f.register(t, "alice"))

	recorder := do(server, http.MethodDelete, "/session", "")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	recorder = do(server, http.MethodDelete, "/session", "", "Authorization", "Basic Zm9vOmJhcg==")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	recorder = do(server, http.MethodDelete, "/session", "", "Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.NotEmpty(t, decode(t, recorder)["message"])

	recorder = do(server, http.MethodPost, "/logout", "", "Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusOK, recorder.Code)

	assert.NotNil(t, f.service.ResolvePrincipal(t.Context(), token))
}
