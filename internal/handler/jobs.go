package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/sysu-ecnc-dev/job-portal/backend/internal/domain"
	"github.com/sysu-ecnc-dev/job-portal/backend/internal/search"
)

// canManageJob 判断用户是否有权修改职位：管理员或职位所属雇主
func canManageJob(user *domain.User, job *domain.Job) bool {
	if user.Role == domain.RoleAdmin {
		return true
	}
	return job.EmployerID != nil && *job.EmployerID == user.ID
}

func (h *Handler) ListJobs(w http.ResponseWriter, r *http.Request) {
	filter := search.ParseJobFilter(r.URL.Query())

	jobs, total, err := h.repository.ListJobs(filter)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.paginatedResponse(w, r, jobs, total, filter.Pagination)
}

func (h *Handler) GetJob(w http.ResponseWriter, r *http.Request) {
	job := r.Context().Value(JobCtxKey).(*domain.Job)
	h.writeJSON(w, r, http.StatusOK, map[string]any{"job": job})
}

func (h *Handler) CreateJob(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserCtxKey).(*domain.User)

	var req struct {
		Title          string               `json:"title" validate:"required"`
		Description    string               `json:"description" validate:"required"`
		Company        string               `json:"company"`
		Location       string               `json:"location"`
		SalaryMin      *int32               `json:"salaryMin"`
		SalaryMax      *int32               `json:"salaryMax"`
		SalaryText     string               `json:"salaryText"`
		Skills         []string             `json:"skills"`
		Remote         bool                 `json:"remote"`
		ResumeRequired bool                 `json:"resumeRequired"`
		CustomFields   []domain.CustomField `json:"customFields"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if req.SalaryMin != nil && req.SalaryMax != nil && *req.SalaryMin > *req.SalaryMax {
		h.errorResponse(w, r, http.StatusBadRequest, "最低薪资不能高于最高薪资")
		return
	}

	company := req.Company
	if company == "" {
		company = user.Company
	}

	job := &domain.Job{
		Title:          req.Title,
		Description:    req.Description,
		Company:        company,
		Location:       req.Location,
		SalaryMin:      req.SalaryMin,
		SalaryMax:      req.SalaryMax,
		SalaryText:     req.SalaryText,
		Skills:         req.Skills,
		Remote:         req.Remote,
		Status:         domain.JobStatusOpen,
		ResumeRequired: req.ResumeRequired,
		CustomFields:   req.CustomFields,
		EmployerID:     &user.ID,
	}

	if err := h.repository.CreateJob(job); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	job.Employer = &domain.JobEmployer{
		ID:      user.ID,
		Name:    user.Name,
		Company: user.Company,
		Email:   user.Email,
	}

	// 匹配保存搜索的求职者会收到 new_job 通知，推送失败只记录日志
	h.notifySavedSearchMatches(job)

	h.writeJSON(w, r, http.StatusOK, map[string]any{"job": job})
}

func (h *Handler) notifySavedSearchMatches(job *domain.Job) {
	userIDs, err := h.repository.FindSavedSearchMatches(job)
	if err != nil {
		slog.Error("匹配保存搜索失败", "job_id", job.ID, "error", err)
		return
	}
	if len(userIDs) == 0 {
		return
	}

	notifications := make([]*domain.Notification, 0, len(userIDs))
	for _, userID := range userIDs {
		if job.EmployerID != nil && userID == *job.EmployerID {
			continue
		}
		notifications = append(notifications, &domain.Notification{
			UserID:  userID,
			Title:   "有新职位符合你的搜索条件",
			Message: fmt.Sprintf("%s 发布了新职位「%s」", job.Company, job.Title),
			Type:    domain.NotificationTypeNewJob,
			Link:    fmt.Sprintf("/jobs/%d", job.ID),
		})
	}

	if err := h.repository.CreateNotifications(notifications); err != nil {
		slog.Error("推送新职位通知失败", "job_id", job.ID, "error", err)
	}
}

func (h *Handler) UpdateJob(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserCtxKey).(*domain.User)
	job := r.Context().Value(JobCtxKey).(*domain.Job)

	if !canManageJob(user, job) {
		h.forbidden(w, r, "权限不足")
		return
	}

	var req struct {
		Title          *string               `json:"title"`
		Description    *string               `json:"description"`
		Company        *string               `json:"company"`
		Location       *string               `json:"location"`
		SalaryMin      *int32                `json:"salaryMin"`
		SalaryMax      *int32                `json:"salaryMax"`
		SalaryText     *string               `json:"salaryText"`
		Skills         *[]string             `json:"skills"`
		Remote         *bool                 `json:"remote"`
		Status         *string               `json:"status" validate:"omitempty,oneof=open closed"`
		ResumeRequired *bool                 `json:"resumeRequired"`
		CustomFields   *[]domain.CustomField `json:"customFields"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Title != nil {
		job.Title = *req.Title
	}
	if req.Description != nil {
		job.Description = *req.Description
	}
	if req.Company != nil {
		job.Company = *req.Company
	}
	if req.Location != nil {
		job.Location = *req.Location
	}
	if req.SalaryMin != nil {
		job.SalaryMin = req.SalaryMin
	}
	if req.SalaryMax != nil {
		job.SalaryMax = req.SalaryMax
	}
	if req.SalaryText != nil {
		job.SalaryText = *req.SalaryText
	}
	if req.Skills != nil {
		job.Skills = *req.Skills
	}
	if req.Remote != nil {
		job.Remote = *req.Remote
	}
	if req.Status != nil {
		job.Status = domain.JobStatus(*req.Status)
	}
	if req.ResumeRequired != nil {
		job.ResumeRequired = *req.ResumeRequired
	}
	if req.CustomFields != nil {
		job.CustomFields = *req.CustomFields
	}

	if job.SalaryMin != nil && job.SalaryMax != nil && *job.SalaryMin > *job.SalaryMax {
		h.errorResponse(w, r, http.StatusBadRequest, "最低薪资不能高于最高薪资")
		return
	}

	if err := h.repository.UpdateJob(job); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, http.StatusBadRequest, "更新冲突，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]any{"job": job})
}

func (h *Handler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserCtxKey).(*domain.User)
	job := r.Context().Value(JobCtxKey).(*domain.Job)

	if !canManageJob(user, job) {
		h.forbidden(w, r, "权限不足")
		return
	}

	if err := h.repository.DeleteJob(job.ID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.notFound(w, r, "职位不存在")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]any{"ok": true})
}

func (h *Handler) ToggleSaveJob(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserCtxKey).(*domain.User)
	job := r.Context().Value(JobCtxKey).(*domain.Job)

	saved, err := h.repository.ToggleSavedJob(user.ID, job.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	savedJobIDs, err := h.repository.GetSavedJobIDs(user.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]any{
		"saved":     saved,
		"savedJobs": savedJobIDs,
	})
}

func (h *Handler) SaveSearch(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserCtxKey).(*domain.User)

	var req struct {
		Name      string `json:"name" validate:"required"`
		Query     string `json:"q"`
		Location  string `json:"location"`
		MinSalary *int32 `json:"minSalary"`
		MaxSalary *int32 `json:"maxSalary"`
		Remote    *bool  `json:"remote"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	savedSearch := &domain.SavedSearch{
		UserID:    user.ID,
		Name:      req.Name,
		Query:     req.Query,
		Location:  req.Location,
		MinSalary: req.MinSalary,
		MaxSalary: req.MaxSalary,
		Remote:    req.Remote,
	}

	if err := h.repository.CreateSavedSearch(savedSearch); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]any{"savedSearch": savedSearch})
}

func (h *Handler) GetSavedSearches(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserCtxKey).(*domain.User)

	searches, err := h.repository.GetSavedSearchesByUser(user.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]any{"savedSearches": searches})
}
