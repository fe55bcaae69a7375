// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yomira-board/internal/platform/apperr"
	"github.com/taibuivan/yomira-board/internal/platform/constants"
	"github.com/taibuivan/yomira-board/internal/platform/middleware"
	requestutil "github.com/taibuivan/yomira-board/internal/platform/request"
	"github.com/taibuivan/yomira-board/internal/platform/respond"
	"github.com/taibuivan/yomira-board/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
//
// # Scope
//
// Registration, session creation (login) and session deletion (logout).
// Every route here is public in the route table; logout checks its own header.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST   /register : Creates a new account.
//   - POST   /session  : Authenticates and returns a bearer token (alias POST /login).
//   - DELETE /session  : Acknowledges logout (alias POST /logout).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/register", handler.register)
	router.Post("/session", handler.login)
	router.Post("/login", handler.login)
	router.Delete("/session", handler.logout)
	router.Post("/logout", handler.logout)

	return router
}

// # Request & Response Payloads

type credentialsRequest struct {
	UserName string `json:"user_name"`
	Password string `json:"password"`
}

type registerResponse struct {
	Message string `json:"message"`
	UserID  int64  `json:"userId"`
}

type loginUser struct {
	ID       int64  `json:"id"`
	UserName string `json:"userName"`
}

type loginData struct {
	AccessToken string    `json:"accessToken"`
	TokenType   string    `json:"tokenType"`
	ExpiresIn   int64     `json:"expiresIn"`
	User        loginUser `json:"user"`
}

// decodeCredentials reads and checks the shared register/login body.
func decodeCredentials(writer http.ResponseWriter, request *http.Request) (credentialsRequest, error) {
	var input credentialsRequest

	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		return input, err
	}

	validator := &validate.Validator{}
	validator.Required(FieldUserName, input.UserName).
		Required(FieldPassword, input.Password)

	return input, validator.Err()
}

/*
Register handles the creation of a new user account.

POST /api/v1/auth/register

Request:
  - Body: credentialsRequest (user_name, password)

Response:
  - 201: {"message", "userId"}
  - 400: Missing fields or invalid JSON
  - 409: Login name already exists
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	input, err := decodeCredentials(writer, request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Register(request.Context(), input.UserName, input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.JSON(writer, http.StatusCreated, registerResponse{
		Message: "Registration completed successfully",
		UserID:  user.ID,
	})
}

/*
Login authenticates a user and issues a bearer token.

POST /api/v1/auth/session

Request:
  - Body: credentialsRequest (user_name, password)

Response:
  - 200: {"message", "data": {accessToken, tokenType, expiresIn, user}}
  - 400: Missing fields or invalid JSON
  - 401: Invalid credentials (same response for unknown users and wrong passwords)
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	input, err := decodeCredentials(writer, request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Login(request.Context(), input.UserName, input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	token, err := handler.authService.GenerateToken(user)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Login completed successfully", loginData{
		AccessToken: token,
		TokenType:   constants.TokenType,
		ExpiresIn:   int64(handler.authService.TokenTTL() / time.Second),
		User:        loginUser{ID: user.ID, UserName: user.UserName},
	})
}

/*
Logout acknowledges the end of a client session.

DELETE /api/v1/auth/session

Description: Tokens are not revoked server-side; the client must discard
its token. The request must still carry one.

Response:
  - 200: {"message"}
  - 401: Missing bearer token
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	token, found := middleware.BearerToken(request)
	if !found || token == "" {
		respond.Error(writer, request, apperr.Unauthorized("A bearer token is required in the Authorization header"))
		return
	}

	handler.authService.Logout(request.Context(), token)

	respond.Message(writer, "Logout completed successfully")
}
