package handler

import (
	"net/http"

	"echo-server/internal/middleware"
	"echo-server/internal/service"
	"echo-server/pkg/response"
)

type FollowHandler struct {
	followService *service.FollowService
}

func NewFollowHandler(followService *service.FollowService) *FollowHandler {
	return &FollowHandler{followService: followService}
}

func (h *FollowHandler) Follow(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid user id")
		return
	}

	if err := h.followService.Follow(r.Context(), middleware.GetUserID(r), id); err != nil {
		respondServiceError(w, err)
		return
	}

	response.Success(w, "Now following", nil)
}

func (h *FollowHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid user id")
		return
	}

	if err := h.followService.Unfollow(r.Context(), middleware.GetUserID(r), id); err != nil {
		respondServiceError(w, err)
		return
	}

	response.Success(w, "Unfollowed", nil)
}

func (h *FollowHandler) Followers(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid user id")
		return
	}

	limit, offset := pagination(r)

	users, err := h.followService.Followers(r.Context(), id, limit, offset)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.Success(w, "", users)
}

func (h *FollowHandler) Following(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid user id")
		return
	}

	limit, offset := pagination(r)

	users, err := h.followService.Following(r.Context(), id, limit, offset)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.Success(w, "", users)
}
