package handler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sysu-ecnc-dev/job-portal/backend/internal/domain"
	"github.com/sysu-ecnc-dev/job-portal/backend/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

type AuthClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// issueSessionToken 签发会话令牌，有效期由配置决定（默认 7 天）
func (h *Handler) issueSessionToken(user *domain.User) (string, error) {
	expiration := time.Now().Add(time.Duration(h.config.JWT.Expiration) * time.Second)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, AuthClaims{
		Role: string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiration),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Subject:   strconv.FormatInt(user.ID, 10),
		},
	})

	return token.SignedString([]byte(h.config.JWT.Secret))
}

func verifyEmailKey(token string) string {
	return fmt.Sprintf("verify_email_%s", token)
}

func resetPasswordKey(token string) string {
	return fmt.Sprintf("reset_password_%s", token)
}

func (h *Handler) redisContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(h.config.Redis.OperationExpiration)*time.Second)
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name" validate:"required"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
		Role     string `json:"role" validate:"required,oneof=seeker employer"`
		Company  string `json:"company"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	user := &domain.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		Role:         domain.Role(req.Role),
		Company:      req.Company,
	}

	if err := h.repository.CreateUser(user); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "users_email_key":
			h.errorResponse(w, r, http.StatusBadRequest, "该邮箱已被注册")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	// 生成验证令牌并存入 redis，一次性使用
	verifyToken := utils.GenerateRandomToken(32)

	ctx, cancel := h.redisContext()
	defer cancel()

	if err := h.redisClient.Set(ctx, verifyEmailKey(verifyToken), user.ID, time.Duration(h.config.VerifyToken.Expiration)*time.Second).Err(); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 验证邮件投递失败不影响注册结果，只记录日志
	mailMessage := domain.MailMessage{
		Type: "verify_email",
		To:   user.Email,
		Data: domain.VerifyEmailMailData{
			Name:      user.Name,
			VerifyURL: fmt.Sprintf("%s/verify-email/%s", h.config.Frontend.BaseURL, verifyToken),
		},
	}
	if err := h.enqueueMail(mailMessage); err != nil {
		slog.Error("验证邮件入队失败", "email", user.Email, "error", err)
	}

	sessionToken, err := h.issueSessionToken(user)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]any{
		"user":  user,
		"token": sessionToken,
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	user, err := h.repository.GetUserByEmail(req.Email)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, http.StatusBadRequest, "邮箱不存在或密码错误")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		switch {
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			h.errorResponse(w, r, http.StatusBadRequest, "邮箱不存在或密码错误")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	sessionToken, err := h.issueSessionToken(user)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]any{
		"user":  user,
		"token": sessionToken,
	})
}

func (h *Handler) GetMyInfo(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserCtxKey).(*domain.User)
	h.writeJSON(w, r, http.StatusOK, map[string]any{"user": user})
}

func (h *Handler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	ctx, cancel := h.redisContext()
	defer cancel()

	userIDString, err := h.redisClient.Get(ctx, verifyEmailKey(token)).Result()
	if err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, "链接无效或已过期")
		return
	}

	userID, err := strconv.ParseInt(userIDString, 10, 64)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := h.repository.SetUserVerified(userID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := h.redisClient.Del(ctx, verifyEmailKey(token)).Err(); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]any{"ok": true, "message": "邮箱验证成功"})
}

func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email" validate:"required,email"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	user, err := h.repository.GetUserByEmail(req.Email)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			// 为了防止接口被用来探测邮箱是否注册，这里仍然返回成功
			h.writeJSON(w, r, http.StatusOK, map[string]any{"ok": true})
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	resetToken := utils.GenerateRandomToken(32)

	ctx, cancel := h.redisContext()
	defer cancel()

	if err := h.redisClient.Set(ctx, resetPasswordKey(resetToken), user.ID, time.Duration(h.config.ResetToken.Expiration)*time.Second).Err(); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	mailMessage := domain.MailMessage{
		Type: "reset_password",
		To:   user.Email,
		Data: domain.ResetPasswordMailData{
			Name:       user.Name,
			ResetURL:   fmt.Sprintf("%s/reset-password/%s", h.config.Frontend.BaseURL, resetToken),
			Expiration: h.config.ResetToken.Expiration / 60, // 邮件中以分钟为单位展示
		},
	}
	if err := h.enqueueMail(mailMessage); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]any{"ok": true})
}

func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	var req struct {
		Password string `json:"password" validate:"required,min=8"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	ctx, cancel := h.redisContext()
	defer cancel()

	userIDString, err := h.redisClient.Get(ctx, resetPasswordKey(token)).Result()
	if err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, "链接无效或已过期")
		return
	}

	userID, err := strconv.ParseInt(userIDString, 10, 64)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := h.repository.UpdateUserPassword(userID, string(hashedPassword)); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := h.redisClient.Del(ctx, resetPasswordKey(token)).Err(); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]any{"ok": true, "message": "密码重置成功"})
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserCtxKey).(*domain.User)

	var req struct {
		Name       *string `json:"name"`
		Phone      *string `json:"phone"`
		Location   *string `json:"location"`
		Company    *string `json:"company"`
		Skills     *string `json:"skills"`
		Experience *string `json:"experience"`
		Education  *string `json:"education"`
		Summary    *string `json:"summary"`
		Linkedin   *string `json:"linkedin"`
		Portfolio  *string `json:"portfolio"`
		Resume     *string `json:"resume"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Location != nil {
		user.Location = *req.Location
	}
	if req.Company != nil {
		user.Company = *req.Company
	}
	if req.Skills != nil {
		user.Skills = *req.Skills
	}
	if req.Experience != nil {
		user.Experience = *req.Experience
	}
	if req.Education != nil {
		user.Education = *req.Education
	}
	if req.Summary != nil {
		user.Summary = *req.Summary
	}
	if req.Linkedin != nil {
		user.Linkedin = *req.Linkedin
	}
	if req.Portfolio != nil {
		user.Portfolio = *req.Portfolio
	}
	if req.Resume != nil {
		user.Resume = *req.Resume
	}

	if err := h.repository.UpdateUser(user); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, http.StatusBadRequest, "更新冲突，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]any{"user": user})
}
