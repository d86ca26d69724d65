package search

import (
	"fmt"
	"net/url"
)

// CandidateFilter 对应求职者检索接口的查询参数，
// 求职者的技能是自由文本，因此这里只做大小写不敏感的子串匹配
type CandidateFilter struct {
	Query    string
	Location string
	Skills   string

	Pagination
}

func ParseCandidateFilter(values url.Values) *CandidateFilter {
	return &CandidateFilter{
		Query:      values.Get("q"),
		Location:   values.Get("location"),
		Skills:     values.Get("skills"),
		Pagination: ParsePagination(values),
	}
}

// WhereClause 生成作用于 users u 的 WHERE 子句，始终限定求职者角色
func (f *CandidateFilter) WhereClause() (string, []any) {
	clause := "WHERE u.role = 'seeker'"
	args := []any{}

	if f.Location != "" {
		args = append(args, "%"+f.Location+"%")
		clause += fmt.Sprintf(" AND u.location ILIKE $%d", len(args))
	}

	if f.Skills != "" {
		args = append(args, "%"+f.Skills+"%")
		clause += fmt.Sprintf(" AND u.skills ILIKE $%d", len(args))
	}

	if f.Query != "" {
		args = append(args, "%"+f.Query+"%")
		n := len(args)
		clause += fmt.Sprintf(" AND (u.name ILIKE $%d OR u.skills ILIKE $%d OR u.summary ILIKE $%d)", n, n, n)
	}

	return clause, args
}
