package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"echo-server/internal/domain"
	"echo-server/internal/middleware"
	"echo-server/internal/service"
	"echo-server/pkg/response"
)

type CommentHandler struct {
	commentService *service.CommentService
	validator      *validator.Validate
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		validator:      validator.New(),
	}
}

func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	tweetID, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid tweet id")
		return
	}

	var req domain.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		response.BadRequest(w, "Comment content must be between 1 and 280 characters")
		return
	}

	comment, err := h.commentService.Create(r.Context(), middleware.GetUserID(r), tweetID, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.Created(w, "Comment created", comment)
}

func (h *CommentHandler) ListByTweet(w http.ResponseWriter, r *http.Request) {
	tweetID, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid tweet id")
		return
	}

	limit, offset := pagination(r)

	comments, err := h.commentService.ListByTweet(r.Context(), tweetID, limit, offset)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.Success(w, "", comments)
}

func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid comment id")
		return
	}

	if err := h.commentService.Delete(r.Context(), id, middleware.GetUserID(r)); err != nil {
		respondServiceError(w, err)
		return
	}

	response.Success(w, "Comment deleted", nil)
}
