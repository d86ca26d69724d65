package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/sysu-ecnc-dev/job-portal/backend/internal/domain"
)

func TestRequiredRole(t *testing.T) {
	h := newTestHandler(t)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	middleware := h.RequiredRole([]domain.Role{domain.RoleEmployer, domain.RoleAdmin})(next)

	serveAs := func(role domain.Role) *httptest.ResponseRecorder {
		user := &domain.User{ID: 1, Role: role}
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(context.WithValue(req.Context(), UserCtxKey, user))
		rec := httptest.NewRecorder()
		middleware.ServeHTTP(rec, req)
		return rec
	}

	t.Run("角色匹配时放行", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, serveAs(domain.RoleEmployer).Code)
		assert.Equal(t, http.StatusOK, serveAs(domain.RoleAdmin).Code)
	})

	t.Run("角色不匹配时返回 403", func(t *testing.T) {
		rec := serveAs(domain.RoleSeeker)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.JSONEq(t, `{"error": "权限不足"}`, rec.Body.String())
	})
}

func TestAuthMiddlewareRejectsBadTokens(t *testing.T) {
	h := newTestHandler(t)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	middleware := h.auth(next)

	serve := func(authorization string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if authorization != "" {
			req.Header.Set("Authorization", authorization)
		}
		rec := httptest.NewRecorder()
		middleware.ServeHTTP(rec, req)
		return rec
	}

	t.Run("缺少令牌", func(t *testing.T) {
		rec := serve("")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"error": "用户未登录"}`, rec.Body.String())
	})

	t.Run("不是 Bearer 格式", func(t *testing.T) {
		rec := serve("Basic abcdef")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"error": "无效的令牌"}`, rec.Body.String())
	})

	t.Run("令牌不合法", func(t *testing.T) {
		rec := serve("Bearer not-a-jwt")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"error": "无效的令牌"}`, rec.Body.String())
	})
}

func TestCanManageJob(t *testing.T) {
	employerID := int64(7)
	job := &domain.Job{ID: 1, EmployerID: &employerID}

	assert.True(t, canManageJob(&domain.User{ID: 7, Role: domain.RoleEmployer}, job))
	assert.False(t, canManageJob(&domain.User{ID: 8, Role: domain.RoleEmployer}, job))
	assert.True(t, canManageJob(&domain.User{ID: 8, Role: domain.RoleAdmin}, job))

	// 雇主被删除后职位归管理员管理
	orphan := &domain.Job{ID: 2}
	assert.False(t, canManageJob(&domain.User{ID: 7, Role: domain.RoleEmployer}, orphan))
	assert.True(t, canManageJob(&domain.User{ID: 8, Role: domain.RoleAdmin}, orphan))
}
