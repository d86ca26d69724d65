package search

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJobFilter(t *testing.T) {
	t.Run("技能列表按逗号拆分并去掉空白", func(t *testing.T) {
		f := ParseJobFilter(url.Values{"skills": {"Go, Redis ,,PostgreSQL"}})
		assert.Equal(t, []string{"Go", "Redis", "PostgreSQL"}, f.Skills)
	})

	t.Run("未提供的可选参数保持为 nil", func(t *testing.T) {
		f := ParseJobFilter(url.Values{})
		assert.Nil(t, f.Remote)
		assert.Nil(t, f.MinSalary)
		assert.Nil(t, f.MaxSalary)
		assert.Empty(t, f.Skills)
	})

	t.Run("解析布尔和数值参数", func(t *testing.T) {
		f := ParseJobFilter(url.Values{
			"remote":    {"true"},
			"minSalary": {"10000"},
			"maxSalary": {"20000"},
		})
		require.NotNil(t, f.Remote)
		assert.True(t, *f.Remote)
		require.NotNil(t, f.MinSalary)
		assert.Equal(t, 10000, *f.MinSalary)
		require.NotNil(t, f.MaxSalary)
		assert.Equal(t, 20000, *f.MaxSalary)
	})

	t.Run("非法的数值参数不作为条件", func(t *testing.T) {
		f := ParseJobFilter(url.Values{"minSalary": {"abc"}, "remote": {"maybe"}})
		assert.Nil(t, f.MinSalary)
		assert.Nil(t, f.Remote)
	})
}

func TestJobFilterWhereClause(t *testing.T) {
	t.Run("没有条件时返回空字符串", func(t *testing.T) {
		f := &JobFilter{}
		where, args := f.WhereClause()
		assert.Empty(t, where)
		assert.Empty(t, args)
	})

	t.Run("单个条件", func(t *testing.T) {
		f := &JobFilter{Location: "广州"}
		where, args := f.WhereClause()
		assert.Equal(t, "WHERE j.location ILIKE $1", where)
		assert.Equal(t, []any{"%广州%"}, args)
	})

	t.Run("多个条件按顺序编号", func(t *testing.T) {
		remote := true
		minSalary := 10000
		f := &JobFilter{
			Location:  "深圳",
			Skills:    []string{"Go", "Redis"},
			Remote:    &remote,
			MinSalary: &minSalary,
		}
		where, args := f.WhereClause()
		assert.Equal(t,
			"WHERE j.location ILIKE $1 AND j.skills @> string_to_array($2, ',') AND j.remote = $3 AND j.salary_min >= $4",
			where,
		)
		assert.Equal(t, []any{"%深圳%", "Go,Redis", true, 10000}, args)
	})

	t.Run("关键词使用全文检索", func(t *testing.T) {
		f := &JobFilter{Query: "backend"}
		where, args := f.WhereClause()
		assert.Contains(t, where, "plainto_tsquery('simple', $1)")
		assert.Equal(t, []any{"backend"}, args)
	})
}
