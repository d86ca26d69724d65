package seed

import (
	"log/slog"
	"math/rand"

	"github.com/sysu-ecnc-dev/job-portal/backend/internal/config"
	"github.com/sysu-ecnc-dev/job-portal/backend/internal/domain"
	"github.com/sysu-ecnc-dev/job-portal/backend/internal/repository"
	"github.com/sysu-ecnc-dev/job-portal/backend/internal/utils"
)

var coverLetters = []string{
	"您好，我对贵公司的这个职位非常感兴趣，希望能有机会进一步沟通。",
	"我有相关的项目经验，相信可以快速上手，期待您的回复。",
	"看到职位要求和我的技能栈很匹配，恳请给一次面试机会。",
}

// SeedDemoData 插入一套可以直接演示的完整数据：
// 雇主、求职者、职位以及求职者的投递记录
func SeedDemoData(r *repository.Repository, cfg *config.Config) {
	// 插入雇主和职位
	employers := make([]*domain.User, 0, 3)
	jobs := make([]*domain.Job, 0)
	for i := 0; i < 3; i++ {
		employer, err := utils.GenerateRandomUser(domain.RoleEmployer, cfg.Seed.User.Password, cfg.Email.UserDomain)
		if err != nil {
			slog.Error("生成雇主失败", "error", err)
			continue
		}
		if err := r.CreateUser(employer); err != nil {
			slog.Error("插入雇主失败", "error", err)
			continue
		}
		employers = append(employers, employer)

		jobsNum := rand.Intn(3) + 2
		for j := 0; j < jobsNum; j++ {
			job := utils.GenerateRandomJob(employer)
			if err := r.CreateJob(job); err != nil {
				slog.Error("插入职位失败", "error", err)
				continue
			}
			jobs = append(jobs, job)
		}
	}

	if len(jobs) == 0 {
		slog.Error("没有职位可供投递，结束")
		return
	}

	// 插入求职者和投递记录
	for i := 0; i < 10; i++ {
		seeker, err := utils.GenerateRandomUser(domain.RoleSeeker, cfg.Seed.User.Password, cfg.Email.UserDomain)
		if err != nil {
			slog.Error("生成求职者失败", "error", err)
			continue
		}
		if err := r.CreateUser(seeker); err != nil {
			slog.Error("插入求职者失败", "error", err)
			continue
		}

		// 每个求职者随机投几个职位，unique 约束保证不会有重复投递
		applicationsNum := rand.Intn(3) + 1
		for j := 0; j < applicationsNum; j++ {
			job := jobs[rand.Intn(len(jobs))]
			application := &domain.Application{
				JobID:       job.ID,
				ApplicantID: seeker.ID,
				CoverLetter: coverLetters[rand.Intn(len(coverLetters))],
				Status:      domain.ApplicationStatusApplied,
			}
			if err := r.CreateApplication(application); err != nil {
				slog.Error("插入投递记录失败", "error", err)
				continue
			}
		}
	}

	slog.Info("插入演示数据完成", "employers", len(employers), "jobs", len(jobs))
}
