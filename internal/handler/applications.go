package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sysu-ecnc-dev/job-portal/backend/internal/domain"
)

func (h *Handler) ApplyToJob(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserCtxKey).(*domain.User)
	job := r.Context().Value(JobCtxKey).(*domain.Job)

	if job.Status != domain.JobStatusOpen {
		h.errorResponse(w, r, http.StatusBadRequest, "该职位已停止招聘")
		return
	}

	var req struct {
		CoverLetter string `json:"coverLetter"`
		ResumeURL   string `json:"resumeUrl"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	resumeURL := req.ResumeURL
	if resumeURL == "" {
		resumeURL = user.Resume
	}
	if job.ResumeRequired && resumeURL == "" {
		h.errorResponse(w, r, http.StatusBadRequest, "该职位要求提供简历")
		return
	}

	application := &domain.Application{
		JobID:       job.ID,
		ApplicantID: user.ID,
		CoverLetter: req.CoverLetter,
		ResumeURL:   resumeURL,
		Status:      domain.ApplicationStatusApplied,
	}

	if err := h.repository.CreateApplication(application); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "applications_job_id_applicant_id_key":
			h.errorResponse(w, r, http.StatusBadRequest, "请勿重复投递该职位")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	// 通知雇主有新投递，推送失败不影响投递结果
	if job.EmployerID != nil {
		notification := &domain.Notification{
			UserID:  *job.EmployerID,
			Title:   "收到新的职位投递",
			Message: fmt.Sprintf("%s 投递了职位「%s」", user.Name, job.Title),
			Type:    domain.NotificationTypeSystem,
			Link:    fmt.Sprintf("/jobs/%d/applications", job.ID),
		}
		if err := h.repository.CreateNotification(notification); err != nil {
			slog.Error("推送投递通知失败", "job_id", job.ID, "error", err)
		}
	}

	h.writeJSON(w, r, http.StatusOK, map[string]any{"application": application})
}

func (h *Handler) GetJobApplications(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserCtxKey).(*domain.User)
	job := r.Context().Value(JobCtxKey).(*domain.Job)

	if !canManageJob(user, job) {
		h.forbidden(w, r, "权限不足")
		return
	}

	applications, err := h.repository.ListApplicationsByJob(job.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]any{"applications": applications})
}

func (h *Handler) MyApplications(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserCtxKey).(*domain.User)

	applications, err := h.repository.ListApplicationsByApplicant(user.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]any{"applications": applications})
}

// canManageApplication 校验投递所属的职位归当前用户管理
func (h *Handler) canManageApplication(user *domain.User, app *domain.Application) (bool, error) {
	if user.Role == domain.RoleAdmin {
		return true, nil
	}

	job, err := h.repository.GetJobByID(app.JobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}

	return job.EmployerID != nil && *job.EmployerID == user.ID, nil
}

func (h *Handler) GetApplicationDetails(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserCtxKey).(*domain.User)
	application := r.Context().Value(ApplicationCtxKey).(*domain.Application)

	ok, err := h.canManageApplication(user, application)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if !ok {
		h.forbidden(w, r, "权限不足")
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]any{"application": application})
}

func (h *Handler) UpdateApplicationStatus(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserCtxKey).(*domain.User)
	application := r.Context().Value(ApplicationCtxKey).(*domain.Application)

	ok, err := h.canManageApplication(user, application)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if !ok {
		h.forbidden(w, r, "权限不足")
		return
	}

	var req struct {
		Status string `json:"status" validate:"required,oneof=applied reviewing rejected accepted"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	application.Status = domain.ApplicationStatus(req.Status)

	if err := h.repository.UpdateApplicationStatus(application); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, http.StatusBadRequest, "更新冲突，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	// 通知求职者状态变化
	jobTitle := ""
	if application.Job != nil {
		jobTitle = application.Job.Title
	}
	notification := &domain.Notification{
		UserID:  application.ApplicantID,
		Title:   "投递状态更新",
		Message: fmt.Sprintf("你投递的职位「%s」状态更新为 %s", jobTitle, application.Status),
		Type:    domain.NotificationTypeStatusUpdate,
		Link:    "/my-applications",
	}
	if err := h.repository.CreateNotification(notification); err != nil {
		slog.Error("推送状态更新通知失败", "application_id", application.ID, "error", err)
	}

	h.writeJSON(w, r, http.StatusOK, map[string]any{"application": application})
}
