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

type TweetHandler struct {
	tweetService *service.TweetService
	validator    *validator.Validate
}

func NewTweetHandler(tweetService *service.TweetService) *TweetHandler {
	return &TweetHandler{
		tweetService: tweetService,
		validator:    validator.New(),
	}
}

func (h *TweetHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	var req domain.CreateTweetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		response.BadRequest(w, "Tweet content must be between 1 and 280 characters")
		return
	}

	tweet, err := h.tweetService.Create(r.Context(), userID, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.Created(w, "Tweet created", tweet)
}

func (h *TweetHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid tweet id")
		return
	}

	detail, err := h.tweetService.Get(r.Context(), id, middleware.GetUserID(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.Success(w, "", detail)
}

func (h *TweetHandler) Feed(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)

	tweets, err := h.tweetService.Feed(r.Context(), middleware.GetUserID(r), limit, offset)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.Success(w, "", tweets)
}

func (h *TweetHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid user id")
		return
	}

	limit, offset := pagination(r)

	tweets, err := h.tweetService.ListByUser(r.Context(), userID, middleware.GetUserID(r), limit, offset)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.Success(w, "", tweets)
}

func (h *TweetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid tweet id")
		return
	}

	if err := h.tweetService.Delete(r.Context(), id, middleware.GetUserID(r)); err != nil {
		respondServiceError(w, err)
		return
	}

	response.Success(w, "Tweet deleted", nil)
}

func (h *TweetHandler) Like(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid tweet id")
		return
	}

	if err := h.tweetService.Like(r.Context(), middleware.GetUserID(r), id); err != nil {
		respondServiceError(w, err)
		return
	}

	response.Success(w, "Tweet liked", nil)
}

func (h *TweetHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid tweet id")
		return
	}

	if err := h.tweetService.Unlike(r.Context(), middleware.GetUserID(r), id); err != nil {
		respondServiceError(w, err)
		return
	}

	response.Success(w, "Tweet unliked", nil)
}
