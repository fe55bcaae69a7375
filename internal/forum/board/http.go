// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package board

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/yomira-board/internal/platform/request"
	"github.com/taibuivan/yomira-board/internal/platform/respond"
	"github.com/taibuivan/yomira-board/pkg/pagination"
)

// Handler implements the /api/v1/boards endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the board endpoints on router.
//
// Nested resources (comments) are mounted by the caller under /{boardId}.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listBoards)
	router.Post("/", handler.createBoard)
	router.Get("/{boardId}", handler.getBoard)
	router.Patch("/{boardId}", handler.updateBoard)
	router.Delete("/{boardId}", handler.deleteBoard)
}

type createRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

/*
GET /api/v1/boards?page&limit

Response:
  - 200: {"message", "data": [Summary], "meta": pagination.Meta}
*/
func (handler *Handler) listBoards(writer http.ResponseWriter, request *http.Request) {
	items, meta, err := handler.service.List(request.Context(), pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, "Boards retrieved successfully", items, meta)
}

/*
GET /api/v1/boards/{boardId}

Response:
  - 200: {"message", "data": Board}
  - 404: Missing or deleted board
*/
func (handler *Handler) getBoard(writer http.ResponseWriter, request *http.Request) {
	boardID, err := requestutil.ID(request, FieldBoardID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	board, err := handler.service.View(request.Context(), boardID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, "Board retrieved successfully", board)
}

/*
POST /api/v1/boards

Request:
  - Body: {"title", "content"}

Response:
  - 201: {"message", "data": Board}
  - 400: Missing title or content
*/
func (handler *Handler) createBoard(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	board, err := handler.service.Create(request.Context(), principal, input.Title, input.Content)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, "Board created successfully", board)
}

/*
PATCH /api/v1/boards/{boardId}

Request:
  - Body: Changes (at least one non-blank field)

Response:
  - 200: {"message", "data": Board}
  - 400 / 403 / 404
*/
func (handler *Handler) updateBoard(writer http.ResponseWriter, request *http.Request) {
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

	var changes Changes
	if err := requestutil.DecodeJSON(writer, request, &changes); err != nil {
		respond.Error(writer, request, err)
		return
	}

	board, err := handler.service.Update(request.Context(), principal, boardID, changes)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, "Board updated successfully", board)
}

/*
DELETE /api/v1/boards/{boardId}

Response:
  - 200: {"message"}
  - 403 / 404
*/
func (handler *Handler) deleteBoard(writer http.ResponseWriter, request *http.Request) {
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

	if err := handler.service.Delete(request.Context(), principal, boardID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Message(writer, "Board deleted successfully")
}
