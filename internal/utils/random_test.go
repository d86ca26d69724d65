package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/job-portal/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

func TestGenerateRandomToken(t *testing.T) {
	token := GenerateRandomToken(32)
	assert.Len(t, token, 32)

	// 令牌会拼进 URL，必须只包含字母和数字
	for _, r := range token {
		ok := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		assert.True(t, ok, "令牌包含非法字符: %c", r)
	}

	assert.NotEqual(t, GenerateRandomToken(32), GenerateRandomToken(32))
}

func TestGenerateRandomUser(t *testing.T) {
	t.Run("求职者带技能", func(t *testing.T) {
		user, err := GenerateRandomUser(domain.RoleSeeker, "password123", "example.com")
		require.NoError(t, err)

		assert.Equal(t, domain.RoleSeeker, user.Role)
		assert.NotEmpty(t, user.Name)
		assert.True(t, strings.HasSuffix(user.Email, "@example.com"))
		assert.NotEmpty(t, user.Skills)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")))
	})

	t.Run("雇主带公司", func(t *testing.T) {
		user, err := GenerateRandomUser(domain.RoleEmployer, "password123", "example.com")
		require.NoError(t, err)

		assert.Equal(t, domain.RoleEmployer, user.Role)
		assert.NotEmpty(t, user.Company)
	})
}

func TestGenerateRandomJob(t *testing.T) {
	employer := &domain.User{ID: 7, Company: "测试公司", Role: domain.RoleEmployer}
	job := GenerateRandomJob(employer)

	assert.NotEmpty(t, job.Title)
	assert.Equal(t, "测试公司", job.Company)
	assert.Equal(t, domain.JobStatusOpen, job.Status)
	require.NotNil(t, job.EmployerID)
	assert.Equal(t, int64(7), *job.EmployerID)
	require.NotNil(t, job.SalaryMin)
	require.NotNil(t, job.SalaryMax)
	assert.LessOrEqual(t, *job.SalaryMin, *job.SalaryMax)
	assert.NotEmpty(t, job.Skills)
}

func TestGenerateRandomSkills(t *testing.T) {
	skills := GenerateRandomSkills()
	assert.NotEmpty(t, skills)

	seen := map[string]bool{}
	for _, s := range skills {
		assert.False(t, seen[s], "技能重复: %s", s)
		seen[s] = true
	}
}
