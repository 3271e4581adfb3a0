package handler

import (
	"net/http"

	"echo-server/internal/middleware"
	"echo-server/internal/service"
	"echo-server/pkg/response"
)

type NotificationHandler struct {
	notificationService *service.NotificationService
}

func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)

	notifications, err := h.notificationService.List(r.Context(), middleware.GetUserID(r), limit, offset)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.Success(w, "", notifications)
}

func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.notificationService.UnreadCount(r.Context(), middleware.GetUserID(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.Success(w, "", map[string]int64{"unread_count": count})
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid notification id")
		return
	}

	if err := h.notificationService.MarkRead(r.Context(), id, middleware.GetUserID(r)); err != nil {
		respondServiceError(w, err)
		return
	}

	response.Success(w, "Notification marked as read", nil)
}

func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	if err := h.notificationService.MarkAllRead(r.Context(), middleware.GetUserID(r)); err != nil {
		respondServiceError(w, err)
		return
	}

	response.Success(w, "All notifications marked as read", nil)
}
