package handler

import (
	"net/http"

	"dermassist/internal/delivery/dto"
	"dermassist/internal/service"
	"dermassist/pkg/response"

	"github.com/gorilla/mux"
)

type NotificationHandler struct {
	notificationService service.NotificationService
}

func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	caller, ok := currentUser(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var query dto.NotificationListQuery
	if err := queryDecoder.Decode(&query, r.URL.Query()); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid query parameters", nil)
		return
	}

	notifications, err := h.notificationService.List(r.Context(), caller.ID, query.UnreadOnly)
	if err != nil {
		response.InternalServerError(w, "Failed to get notifications")
		return
	}

	response.Success(w, http.StatusOK, "Notifications retrieved successfully", notifications)
}

func (h *NotificationHandler) GetUnreadCount(w http.ResponseWriter, r *http.Request) {
	caller, ok := currentUser(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	count, err := h.notificationService.UnreadCount(r.Context(), caller.ID)
	if err != nil {
		response.InternalServerError(w, "Failed to get unread count")
		return
	}

	response.Success(w, http.StatusOK, "Unread count retrieved successfully", dto.UnreadCountResponse{Count: count})
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	caller, ok := currentUser(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	if err := h.notificationService.MarkRead(r.Context(), caller.ID, mux.Vars(r)["id"]); err != nil {
		switch err {
		case service.ErrNotificationNotFound:
			response.NotFound(w, "Notification not found")
		default:
			response.InternalServerError(w, "Failed to mark notification as read")
		}
		return
	}

	response.Success(w, http.StatusOK, "Notification marked as read", nil)
}

func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	caller, ok := currentUser(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	updated, err := h.notificationService.MarkAllRead(r.Context(), caller.ID)
	if err != nil {
		response.InternalServerError(w, "Failed to mark notifications as read")
		return
	}

	response.Success(w, http.StatusOK, "All notifications marked as read", map[string]int{"updated": updated})
}
