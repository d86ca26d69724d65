package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sysu-ecnc-dev/job-portal/backend/internal/domain"
)

func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserCtxKey).(*domain.User)

	var req struct {
		To    int64  `json:"to" validate:"required"`
		JobID *int64 `json:"jobID"`
		Text  string `json:"text" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.To == user.ID {
		h.errorResponse(w, r, http.StatusBadRequest, "不能给自己发送消息")
		return
	}

	if _, err := h.repository.GetUserByID(req.To); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.notFound(w, r, "收件人不存在")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	message := &domain.Message{
		FromID: user.ID,
		ToID:   req.To,
		JobID:  req.JobID,
		Text:   req.Text,
	}

	if err := h.repository.CreateMessage(message); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]any{"message": message})
}

func (h *Handler) GetInbox(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserCtxKey).(*domain.User)

	inbox, err := h.repository.GetInbox(user.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]any{"conversations": inbox})
}

func (h *Handler) GetConversation(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserCtxKey).(*domain.User)

	otherID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, "无效的用户 ID")
		return
	}

	messages, err := h.repository.GetConversation(user.ID, otherID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 打开会话即视为已读对方发来的消息
	if err := h.repository.MarkConversationRead(user.ID, otherID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]any{"messages": messages})
}
