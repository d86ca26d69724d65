package handler

import (
	"net/http"

	"github.com/sysu-ecnc-dev/job-portal/backend/internal/domain"
)

func (h *Handler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserCtxKey).(*domain.User)

	notifications, unreadCount, err := h.repository.GetNotificationsByUser(user.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]any{
		"notifications": notifications,
		"unreadCount":   unreadCount,
	})
}

func (h *Handler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserCtxKey).(*domain.User)
	notification := r.Context().Value(NotificationCtxKey).(*domain.Notification)

	if notification.UserID != user.ID {
		h.forbidden(w, r, "权限不足")
		return
	}

	if err := h.repository.MarkNotificationRead(notification.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	notification.Read = true
	h.writeJSON(w, r, http.StatusOK, map[string]any{"notification": notification})
}

func (h *Handler) MarkAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserCtxKey).(*domain.User)

	if err := h.repository.MarkAllNotificationsRead(user.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]any{"ok": true})
}
