package search

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCandidateFilterWhereClause(t *testing.T) {
	t.Run("始终限定求职者角色", func(t *testing.T) {
		f := &CandidateFilter{}
		where, args := f.WhereClause()
		assert.Equal(t, "WHERE u.role = 'seeker'", where)
		assert.Empty(t, args)
	})

	t.Run("关键词在多个字段上共用一个参数", func(t *testing.T) {
		f := &CandidateFilter{Query: "go"}
		where, args := f.WhereClause()
		assert.Equal(t, "WHERE u.role = 'seeker' AND (u.name ILIKE $1 OR u.skills ILIKE $1 OR u.summary ILIKE $1)", where)
		assert.Equal(t, []any{"%go%"}, args)
	})

	t.Run("组合条件", func(t *testing.T) {
		f := &CandidateFilter{Location: "北京", Skills: "Python"}
		where, args := f.WhereClause()
		assert.Equal(t, "WHERE u.role = 'seeker' AND u.location ILIKE $1 AND u.skills ILIKE $2", where)
		assert.Equal(t, []any{"%北京%", "%Python%"}, args)
	})
}

func TestParseCandidateFilter(t *testing.T) {
	f := ParseCandidateFilter(url.Values{
		"q":        {"golang"},
		"location": {"上海"},
		"skills":   {"Go"},
		"page":     {"2"},
	})
	assert.Equal(t, "golang", f.Query)
	assert.Equal(t, "上海", f.Location)
	assert.Equal(t, "Go", f.Skills)
	assert.Equal(t, 2, f.Page)
	assert.Equal(t, DefaultLimit, f.Limit)
}
