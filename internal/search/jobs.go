package search

import (
	"fmt"
	"net/url"
	"strings"
)

// JobFilter 把职位列表接口的松散查询参数转换成结构化的过滤条件，
// 未提供的参数表示不施加约束
type JobFilter struct {
	Query     string
	Location  string
	Skills    []string
	Remote    *bool
	MinSalary *int
	MaxSalary *int

	Pagination
}

func ParseJobFilter(values url.Values) *JobFilter {
	f := &JobFilter{
		Query:      values.Get("q"),
		Location:   values.Get("location"),
		Pagination: ParsePagination(values),
	}

	if skills := values.Get("skills"); skills != "" {
		for _, skill := range strings.Split(skills, ",") {
			skill = strings.TrimSpace(skill)
			if skill != "" {
				f.Skills = append(f.Skills, skill)
			}
		}
	}

	if remote, ok := parseBoolParam(values, "remote"); ok {
		f.Remote = &remote
	}
	if minSalary, ok := parseIntParam(values, "minSalary"); ok {
		f.MinSalary = &minSalary
	}
	if maxSalary, ok := parseIntParam(values, "maxSalary"); ok {
		f.MaxSalary = &maxSalary
	}

	return f
}

// WhereClause 生成作用于 jobs j 的 WHERE 子句和对应的位置参数，
// 没有任何条件时返回空字符串
func (f *JobFilter) WhereClause() (string, []any) {
	conds := []string{}
	args := []any{}

	if f.Query != "" {
		args = append(args, f.Query)
		conds = append(conds, fmt.Sprintf(
			`to_tsvector('simple', coalesce(j.title, '') || ' ' || coalesce(j.description, '') || ' ' || coalesce(j.company, '') || ' ' || array_to_string(j.skills, ' ')) @@ plainto_tsquery('simple', $%d)`,
			len(args),
		))
	}

	if f.Location != "" {
		args = append(args, "%"+f.Location+"%")
		conds = append(conds, fmt.Sprintf("j.location ILIKE $%d", len(args)))
	}

	// 要求职位的技能列表包含筛选出的全部技能
	if len(f.Skills) > 0 {
		args = append(args, strings.Join(f.Skills, ","))
		conds = append(conds, fmt.Sprintf("j.skills @> string_to_array($%d, ',')", len(args)))
	}

	if f.Remote != nil {
		args = append(args, *f.Remote)
		conds = append(conds, fmt.Sprintf("j.remote = $%d", len(args)))
	}

	if f.MinSalary != nil {
		args = append(args, *f.MinSalary)
		conds = append(conds, fmt.Sprintf("j.salary_min >= $%d", len(args)))
	}

	if f.MaxSalary != nil {
		args = append(args, *f.MaxSalary)
		conds = append(conds, fmt.Sprintf("j.salary_max <= $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", args
	}

	return "WHERE " + strings.Join(conds, " AND "), args
}
