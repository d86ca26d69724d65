package utils

import (
	"math/rand"
	"strings"

	"github.com/mozillazg/go-pinyin"
	"github.com/sysu-ecnc-dev/job-portal/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var commonSurnames = []string{
	"王", "李", "张", "刘", "陈", "杨", "赵", "黄", "周", "吴",
	"徐", "孙", "胡", "朱", "高", "林", "何", "郭", "马", "罗",
}
var commonNameCharacters = []string{
	"伟", "强", "芳", "敏", "静", "丽", "刚", "杰", "娟", "勇",
	"艳", "涛", "明", "军", "磊", "洋", "勇", "霞", "飞", "玲",
	"超", "华", "平", "辉", "梅", "鑫", "龙", "鹏", "玉", "斌",
	"庆", "建", "丹", "彬", "凤", "旭", "宁", "乐", "成", "欣",
}

func GenerateRandomChineseName() string {
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	nameLength := rand.Intn(2) + 1
	name := ""

	for i := 0; i < nameLength; i++ {
		name += commonNameCharacters[rand.Intn(len(commonNameCharacters))]
	}
	return surname + name
}

var digits = "0123456789"

func GenerateEmailFromChineseName(chineseName string, emailDomainName string) string {
	pinyinArray := pinyin.LazyConvert(chineseName, nil)
	local := strings.Join(pinyinArray, "")

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		local += string(digits[rand.Intn(len(digits))])
	}

	return local + "@" + emailDomainName
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	random_password := make([]rune, length)
	for i := range random_password {
		random_password[i] = letters[rand.Intn(len(letters))]
	}
	return string(random_password)
}

var tokenRunes = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")

// GenerateRandomToken 生成 URL 安全的随机令牌，用于邮箱验证和密码重置链接
func GenerateRandomToken(length int) string {
	token := make([]rune, length)
	for i := range token {
		token[i] = tokenRunes[rand.Intn(len(tokenRunes))]
	}
	return string(token)
}

func GenerateRandomID(letterLength int, digitLength int) string {
	random_id := make([]rune, letterLength+digitLength)
	for i := range random_id {
		if i < letterLength {
			random_id[i] = letters[rand.Intn(len(letters))]
		} else {
			random_id[i] = rune(digits[rand.Intn(len(digits))])
		}
	}
	return string(random_id)
}

var cities = []string{"广州", "深圳", "北京", "上海", "杭州", "成都", "武汉", "南京", "西安", "珠海"}

var skillPool = []string{
	"Go", "Python", "Java", "TypeScript", "React", "Vue",
	"PostgreSQL", "Redis", "Kubernetes", "Docker", "RabbitMQ", "Linux",
}

func GenerateRandomSkills() []string {
	n := rand.Intn(4) + 2
	picked := make([]string, 0, n)
	used := make(map[int]bool)
	for len(picked) < n {
		i := rand.Intn(len(skillPool))
		if used[i] {
			continue
		}
		used[i] = true
		picked = append(picked, skillPool[i])
	}
	return picked
}

// 随机生成一个求职者或雇主账号
func GenerateRandomUser(role domain.Role, password string, emailDomainName string) (*domain.User, error) {
	fullName := GenerateRandomChineseName()
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         fullName,
		Email:        GenerateEmailFromChineseName(fullName, emailDomainName),
		PasswordHash: string(passwordHash),
		Role:         role,
		Location:     cities[rand.Intn(len(cities))],
	}

	switch role {
	case domain.RoleSeeker:
		user.Skills = strings.Join(GenerateRandomSkills(), ",")
		user.Summary = "求职者简介" + GenerateRandomID(10, 5)
	case domain.RoleEmployer:
		user.Company = "公司" + GenerateRandomID(3, 3)
	}

	return user, nil
}

var jobTitles = []string{
	"后端开发工程师", "前端开发工程师", "测试开发工程师", "运维工程师",
	"数据工程师", "产品经理", "算法工程师", "安卓开发工程师",
}

// 随机生成一个职位，雇主信息从传入的用户取
func GenerateRandomJob(employer *domain.User) *domain.Job {
	salaryMin := int32((rand.Intn(20) + 5) * 1000)
	salaryMax := salaryMin + int32((rand.Intn(15)+1)*1000)

	return &domain.Job{
		Title:       jobTitles[rand.Intn(len(jobTitles))],
		Description: "职位描述" + GenerateRandomID(20, 10),
		Company:     employer.Company,
		Location:    cities[rand.Intn(len(cities))],
		SalaryMin:   &salaryMin,
		SalaryMax:   &salaryMax,
		Skills:      GenerateRandomSkills(),
		Remote:      rand.Intn(4) == 0,
		Status:      domain.JobStatusOpen,
		EmployerID:  &employer.ID,
	}
}
