package search

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePagination(t *testing.T) {
	t.Run("没有参数时使用默认值", func(t *testing.T) {
		p := ParsePagination(url.Values{})
		assert.Equal(t, DefaultPage, p.Page)
		assert.Equal(t, DefaultLimit, p.Limit)
	})

	t.Run("正常解析参数", func(t *testing.T) {
		p := ParsePagination(url.Values{"page": {"3"}, "limit": {"25"}})
		assert.Equal(t, 3, p.Page)
		assert.Equal(t, 25, p.Limit)
	})

	t.Run("非法参数视为未提供", func(t *testing.T) {
		p := ParsePagination(url.Values{"page": {"abc"}, "limit": {"xyz"}})
		assert.Equal(t, DefaultPage, p.Page)
		assert.Equal(t, DefaultLimit, p.Limit)
	})

	t.Run("零和负数视为未提供", func(t *testing.T) {
		p := ParsePagination(url.Values{"page": {"0"}, "limit": {"-5"}})
		assert.Equal(t, DefaultPage, p.Page)
		assert.Equal(t, DefaultLimit, p.Limit)
	})
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Pagination{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 20, Pagination{Page: 3, Limit: 10}.Offset())
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(1, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 4, TotalPages(100, 25))
}
