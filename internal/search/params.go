package search

import (
	"net/url"
	"strconv"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Pagination 描述列表接口的分页请求，页码从 1 开始
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// TotalPages 计算总页数，即 ceil(total/limit)
func TotalPages(total int, limit int) int {
	if total == 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

func ParsePagination(values url.Values) Pagination {
	p := Pagination{
		Page:  DefaultPage,
		Limit: DefaultLimit,
	}

	if page, ok := parseIntParam(values, "page"); ok && page >= 1 {
		p.Page = page
	}
	if limit, ok := parseIntParam(values, "limit"); ok && limit >= 1 {
		p.Limit = limit
	}

	return p
}

// 数值参数解析失败时视为未提供，不作为校验错误处理
func parseIntParam(values url.Values, key string) (int, bool) {
	raw := values.Get(key)
	if raw == "" {
		return 0, false
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}

	return n, true
}

func parseBoolParam(values url.Values, key string) (bool, bool) {
	raw := values.Get(key)
	if raw == "" {
		return false, false
	}

	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}

	return b, true
}
