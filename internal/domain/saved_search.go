package domain

import "time"

// SavedSearch 是求职者保存的一组查询条件，新职位发布时用于匹配推送
type SavedSearch struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"-"`
	Name      string    `json:"name"`
	Query     string    `json:"q,omitempty"`
	Location  string    `json:"location,omitempty"`
	MinSalary *int32    `json:"minSalary,omitempty"`
	MaxSalary *int32    `json:"maxSalary,omitempty"`
	Remote    *bool     `json:"remote,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
