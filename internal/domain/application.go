package domain

import "time"

type ApplicationStatus string

const (
	ApplicationStatusApplied   ApplicationStatus = "applied"
	ApplicationStatusReviewing ApplicationStatus = "reviewing"
	ApplicationStatusRejected  ApplicationStatus = "rejected"
	ApplicationStatusAccepted  ApplicationStatus = "accepted"
)

// ApplicantSummary 是投递列表中使用的精简投影，完整资料只在详情接口返回
type ApplicantSummary struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Resume string `json:"resume,omitempty"`
}

// ApplicationJob 是投递所关联职位的投影
type ApplicationJob struct {
	ID      int64     `json:"id"`
	Title   string    `json:"title"`
	Company string    `json:"company,omitempty"`
	Status  JobStatus `json:"status,omitempty"`
}

type Application struct {
	ID          int64             `json:"id"`
	JobID       int64             `json:"jobID"`
	ApplicantID int64             `json:"applicantID"`
	CoverLetter string            `json:"coverLetter"`
	ResumeURL   string            `json:"resumeUrl"`
	Status      ApplicationStatus `json:"status"`
	CreatedAt   time.Time         `json:"createdAt"`
	Version     int32             `json:"-"`

	// 以下字段按接口需要选择性填充
	Applicant     *ApplicantSummary `json:"applicant,omitempty"`
	ApplicantFull *User             `json:"applicantProfile,omitempty"`
	Job           *ApplicationJob   `json:"job,omitempty"`
}
