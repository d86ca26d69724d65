package domain

import (
	"time"
)

type Role string

const (
	RoleSeeker   Role = "seeker"
	RoleEmployer Role = "employer"
	RoleAdmin    Role = "admin"
)

type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Company      string    `json:"company,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Location     string    `json:"location,omitempty"`
	Skills       string    `json:"skills,omitempty"`
	Experience   string    `json:"experience,omitempty"`
	Education    string    `json:"education,omitempty"`
	Summary      string    `json:"summary,omitempty"`
	Linkedin     string    `json:"linkedin,omitempty"`
	Portfolio    string    `json:"portfolio,omitempty"`
	Resume       string    `json:"resume,omitempty"`
	Verified     bool      `json:"verified"`
	CreatedAt    time.Time `json:"createdAt"`
	Version      int32     `json:"-"`
}
