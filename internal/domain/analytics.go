package domain

// Analytics 是管理后台展示的平台总量统计
type Analytics struct {
	Users        int64 `json:"users"`
	Jobs         int64 `json:"jobs"`
	OpenJobs     int64 `json:"openJobs"`
	Applications int64 `json:"applications"`
}
