// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/yomira-board/internal/platform/request"
	"github.com/taibuivan/yomira-board/internal/platform/respond"
	"github.com/taibuivan/yomira-board/pkg/pagination"
)

// Handler implements the HTTP layer for user account management.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] configured with the account domain's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Password
	router.Post("/change-password", handler.changePassword)

	// Account Management
	router.Get("/{userId}", handler.getUser)
	router.Delete("/{userId}", handler.deleteUser)

	// Authored content
	router.Get("/{userId}/boards", handler.listBoards)
	router.Get("/{userId}/comments", handler.listComments)

	return router
}

/*
GET /api/v1/users/{userId}

Response:
  - 200: {"message", "data": Profile}
  - 404: Unknown or deleted user
*/
func (handler *Handler) getUser(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.ID(request, FieldUserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.accountService.GetProfile(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, "User retrieved successfully", profile)
}

/*
POST /api/v1/users/change-password

Request:
  - Body: PasswordChange

Response:
  - 200: {"message"}
  - 400: Missing fields, mismatched confirmation or wrong current password
*/
func (handler *Handler) changePassword(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input PasswordChange
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.accountService.ChangePassword(request.Context(), principal, input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Message(writer, "Password changed successfully")
}

/*
DELETE /api/v1/users/{userId}

Response:
  - 200: {"message"}
  - 403: Not the caller's account
*/
func (handler *Handler) deleteUser(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	userID, err := requestutil.ID(request, FieldUserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.accountService.DeleteAccount(request.Context(), principal, userID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Message(writer, "Account deleted successfully")
}

func (handler *Handler) listBoards(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.ID(request, FieldUserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	items, meta, err := handler.accountService.ListBoards(request.Context(), userID, pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, "User boards retrieved successfully", items, meta)
}

func (handler *Handler) listComments(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	userID, err := requestutil.ID(request, FieldUserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	comments, err := handler.accountService.ListComments(request.Context(), principal, userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, "User comments retrieved successfully", comments)
}
