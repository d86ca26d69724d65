package domain

import "time"

type JobStatus string

const (
	JobStatusOpen   JobStatus = "open"
	JobStatusClosed JobStatus = "closed"
)

// CustomField 是雇主自定义的额外字段（如“年终奖”“试用期”等）
type CustomField struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// JobEmployer 是职位所属雇主的投影，雇主被删除后为 null
type JobEmployer struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Company string `json:"company,omitempty"`
	Email   string `json:"email"`
}

type Job struct {
	ID             int64         `json:"id"`
	Title          string        `json:"title"`
	Description    string        `json:"description"`
	Company        string        `json:"company,omitempty"`
	Location       string        `json:"location,omitempty"`
	SalaryMin      *int32        `json:"salaryMin,omitempty"`
	SalaryMax      *int32        `json:"salaryMax,omitempty"`
	SalaryText     string        `json:"salaryText,omitempty"`
	Skills         []string      `json:"skills"`
	Remote         bool          `json:"remote"`
	Status         JobStatus     `json:"status"`
	ResumeRequired bool          `json:"resumeRequired"`
	CustomFields   []CustomField `json:"customFields,omitempty"`
	EmployerID     *int64        `json:"-"`
	Employer       *JobEmployer  `json:"employer"`
	CreatedAt      time.Time     `json:"createdAt"`
	Version        int32         `json:"-"`
}
