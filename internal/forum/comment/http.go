// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/yomira-board/internal/platform/request"
	"github.com/taibuivan/yomira-board/internal/platform/respond"
	"github.com/taibuivan/yomira-board/internal/platform/sec"
)

// Handler implements the /api/v1/boards/{boardId}/comments endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the comment endpoints. router must already carry {boardId}.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listComments)
	router.Post("/", handler.createComment)
	router.Patch("/{commentId}", handler.updateComment)
	router.Delete("/{commentId}", handler.deleteComment)
}

type contentRequest struct {
	Content string `json:"content"`
}

func (handler *Handler) listComments(writer http.ResponseWriter, request *http.Request) {
	boardID, err := requestutil.ID(request, FieldBoardID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	comments, err := handler.service.ListByBoard(request.Context(), boardID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, "Comments retrieved successfully", comments)
}

func (handler *Handler) createComment(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	boardID, err := requestutil.ID(request, FieldBoardID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input contentRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.Create(request.Context(), principal, boardID, input.Content)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, "Comment created successfully", comment)
}

func (handler *Handler) updateComment(writer http.ResponseWriter, request *http.Request) {
	principal, boardID, commentID, ok := handler.target(writer, request)
	if !ok {
		return
	}

	var input contentRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.Update(request.Context(), principal, boardID, commentID, input.Content)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, "Comment updated successfully", comment)
}

func (handler *Handler) deleteComment(writer http.ResponseWriter, request *http.Request) {
	principal, boardID, commentID, ok := handler.target(writer, request)
	if !ok {
		return
	}

	if err := handler.service.Delete(request.Context(), principal, boardID, commentID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Message(writer, "Comment deleted successfully")
}

// target reads the caller and both path ids, writing the error response itself.
func (handler *Handler) target(writer http.ResponseWriter, request *http.Request) (principal *sec.Principal, boardID, commentID int64, ok bool) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return nil, 0, 0, false
	}

	boardID, err = requestutil.ID(request, FieldBoardID)
	if err != nil {
		respond.Error(writer, request, err)
		return nil, 0, 0, false
	}

	commentID, err = requestutil.ID(request, FieldCommentID)
	if err != nil {
		respond.Error(writer, request, err)
		return nil, 0, 0, false
	}

	return principal, boardID, commentID, true
}
