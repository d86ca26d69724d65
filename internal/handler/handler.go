package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/sysu-ecnc-dev/job-portal/backend/internal/config"
	"github.com/sysu-ecnc-dev/job-portal/backend/internal/domain"
	"github.com/sysu-ecnc-dev/job-portal/backend/internal/repository"
	"github.com/sysu-ecnc-dev/job-portal/backend/internal/storage"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client
	storage     storage.Storage

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client, store storage.Storage) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,
		storage:     store,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// 认证相关
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Get("/verify/{token}", h.VerifyEmail)
		r.Post("/forgot", h.ForgotPassword)
		r.Post("/reset/{token}", h.ResetPassword)

		r.Group(func(r chi.Router) {
			r.Use(h.auth)
			r.Get("/me", h.GetMyInfo)
			r.Put("/profile", h.UpdateProfile)
		})
	})

	h.Mux.Route("/jobs", func(r chi.Router) {
		// 列表和详情是公开接口，不需要登录
		r.Get("/", h.ListJobs)

		r.Group(func(r chi.Router) {
			r.Use(h.auth)

			r.With(h.RequiredRole([]domain.Role{domain.RoleSeeker})).Get("/my-applications", h.MyApplications)

			r.Route("/application/{id}", func(r chi.Router) {
				r.Use(h.RequiredRole([]domain.Role{domain.RoleEmployer, domain.RoleAdmin}))
				r.Use(h.applicationCtx)
				r.Get("/", h.GetApplicationDetails)
				r.Put("/status", h.UpdateApplicationStatus)
			})

			r.Get("/saved-search", h.GetSavedSearches)
			r.Post("/saved-search", h.SaveSearch)

			r.With(h.RequiredRole([]domain.Role{domain.RoleEmployer})).Post("/", h.CreateJob)
		})

		r.Route("/{id}", func(r chi.Router) {
			r.Use(h.jobCtx)
			r.Get("/", h.GetJob)

			r.Group(func(r chi.Router) {
				r.Use(h.auth)
				r.With(h.RequiredRole([]domain.Role{domain.RoleEmployer, domain.RoleAdmin})).Put("/", h.UpdateJob)
				r.With(h.RequiredRole([]domain.Role{domain.RoleEmployer, domain.RoleAdmin})).Delete("/", h.DeleteJob)
				r.With(h.RequiredRole([]domain.Role{domain.RoleSeeker})).Post("/apply", h.ApplyToJob)
				r.With(h.RequiredRole([]domain.Role{domain.RoleSeeker})).Post("/save", h.ToggleSaveJob)
				r.With(h.RequiredRole([]domain.Role{domain.RoleEmployer, domain.RoleAdmin})).Get("/applications", h.GetJobApplications)
			})
		})
	})

	h.Mux.Route("/candidates", func(r chi.Router) {
		r.Use(h.auth)
		r.Use(h.RequiredRole([]domain.Role{domain.RoleEmployer, domain.RoleAdmin}))
		r.Get("/", h.ListCandidates)
		r.With(h.candidateCtx).Get("/{id}", h.GetCandidate)
	})

	h.Mux.Route("/messages", func(r chi.Router) {
		r.Use(h.auth)
		r.Post("/", h.SendMessage)
		r.Get("/inbox", h.GetInbox)
		r.Get("/conversations/{userID}", h.GetConversation)
	})

	h.Mux.Route("/notifications", func(r chi.Router) {
		r.Use(h.auth)
		r.Get("/", h.ListNotifications)
		r.With(h.notificationCtx).Put("/{id}/read", h.MarkNotificationRead)
		r.Put("/read-all", h.MarkAllNotificationsRead)
	})

	h.Mux.Route("/admin", func(r chi.Router) {
		r.Use(h.auth)
		r.Use(h.RequiredRole([]domain.Role{domain.RoleAdmin}))
		r.Get("/users", h.AdminListUsers)
		r.Delete("/users/{id}", h.AdminDeleteUser)
		r.Get("/jobs", h.AdminListJobs)
		r.Delete("/jobs/{id}", h.AdminDeleteJob)
		r.Get("/analytics", h.AdminAnalytics)
	})

	h.Mux.With(h.auth).Post("/upload", h.UploadFile)

	// 上传的简历以静态文件方式对外提供
	fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(h.config.Upload.Dir)))
	h.Mux.Get("/uploads/*", fileServer.ServeHTTP)
}
