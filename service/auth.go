package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"studybuddy/config"
	"studybuddy/dao"
	"studybuddy/dao/cache"
	"studybuddy/models"
	"studybuddy/pkg/encrypt"
	"studybuddy/pkg/jwt"
	"studybuddy/pkg/log"
	"studybuddy/pkg/mail"
	"studybuddy/types"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	confirmTokenTTL = 24 * time.Hour
	resetTokenTTL   = time.Hour
)

var _ IAuthService = (*AuthService)(nil)

type IAuthService interface {
	SignUp(ctx context.Context, email, password string) (*models.Profile, error)
	Confirm(ctx context.Context, token string) error
	SignIn(ctx context.Context, email, password string) (*types.SignInResponse, error)
	// RequestPasswordReset 邮箱不存在时也返回 nil, 不暴露注册情况
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error
	UpdatePassword(ctx context.Context, userID, password string) error
	Profile(ctx context.Context, userID string) (*models.Profile, error)
}

type AuthService struct {
	ProfileDAO   *dao.ProfileDAO
	TokenStorage cache.ITokenStorage
	Mailer       mail.Sender
	Config       *config.Config
}

func (s *AuthService) SignUp(ctx context.Context, email, password string) (*models.Profile, error) {
	email = normalizeEmail(email)
	exist, err := s.ProfileDAO.IsEmailExist(ctx, email)
	if err != nil {
		return nil, err
	}
	if exist {
		return nil, ErrEmailTaken
	}

	hash, err := encrypt.HashPassword(password)
	if err != nil {
		return nil, err
	}
	profile := &models.Profile{
		ID:           uuid.NewString(),
		Email:        email,
		Role:         models.RoleUser,
		PasswordHash: hash,
	}
	if !s.Config.Auth.RequireConfirmation {
		now := time.Now()
		profile.ConfirmedAt = &now
	}
	if err := s.ProfileDAO.Create(ctx, profile); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	if s.Config.Auth.RequireConfirmation {
		s.sendConfirmation(ctx, profile)
	}
	return profile, nil
}

func (s *AuthService) sendConfirmation(ctx context.Context, profile *models.Profile) {
	token := uuid.NewString()
	if err := s.TokenStorage.Save(ctx, cache.TokenPurposeConfirm, token, profile.ID, confirmTokenTTL); err != nil {
		log.L.Error("save confirm token", zap.String("user_id", profile.ID), zap.Error(err))
		return
	}
	link := s.link("/api/v1/auth/confirm", token)
	body := fmt.Sprintf(`<p>请点击链接确认邮箱:</p><p><a href="%s">%s</a></p>`, link, link)
	if err := s.Mailer.Send(profile.Email, "StudyBuddy 邮箱确认", body); err != nil {
		log.L.Error("send confirm mail", zap.String("email", profile.Email), zap.Error(err))
	}
}

func (s *AuthService) Confirm(ctx context.Context, token string) error {
	uid, err := s.TokenStorage.Consume(ctx, cache.TokenPurposeConfirm, token)
	if errors.Is(err, cache.ErrTokenNotFound) {
		return ErrInvalidToken
	}
	if err != nil {
		return err
	}
	return s.ProfileDAO.MarkConfirmed(ctx, uid)
}

func (s *AuthService) SignIn(ctx context.Context, email, password string) (*types.SignInResponse, error) {
	profile, err := s.ProfileDAO.FindByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !encrypt.VerifyPassword(profile.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	if s.Config.Auth.RequireConfirmation && profile.ConfirmedAt == nil {
		return nil, ErrNotConfirmed
	}

	expire := time.Duration(s.Config.Jwt.ExpiresTime) * time.Second
	token, err := jwt.GenerateToken([]byte(s.Config.Jwt.Secret), profile.ID, profile.Email, jwt.TokenTypeAccess, expire)
	if err != nil {
		return nil, err
	}
	return &types.SignInResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   s.Config.Jwt.ExpiresTime,
		User:        ToProfileResponse(profile),
	}, nil
}

func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	profile, err := s.ProfileDAO.FindByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.L.Info("password reset for unknown email", zap.String("email", email))
		return nil
	}
	if err != nil {
		return err
	}

	token := uuid.NewString()
	if err := s.TokenStorage.Save(ctx, cache.TokenPurposeReset, token, profile.ID, resetTokenTTL); err != nil {
		return err
	}
	link := s.link("/reset-password", token)
	body := fmt.Sprintf(`<p>重置密码链接(1小时内有效):</p><p><a href="%s">%s</a></p><p>令牌: %s</p>`, link, link, token)
	return s.Mailer.Send(profile.Email, "StudyBuddy 重置密码", body)
}

func (s *AuthService) ResetPassword(ctx context.Context, token, password string) error {
	uid, err := s.TokenStorage.Consume(ctx, cache.TokenPurposeReset, token)
	if errors.Is(err, cache.ErrTokenNotFound) {
		return ErrInvalidToken
	}
	if err != nil {
		return err
	}
	return s.UpdatePassword(ctx, uid, password)
}

func (s *AuthService) UpdatePassword(ctx context.Context, userID, password string) error {
	hash, err := encrypt.HashPassword(password)
	if err != nil {
		return err
	}
	err = s.ProfileDAO.UpdatePassword(ctx, userID, hash)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrUserNotFound
	}
	return err
}

func (s *AuthService) Profile(ctx context.Context, userID string) (*models.Profile, error) {
	profile, err := s.ProfileDAO.FindById(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	return profile, err
}

func (s *AuthService) link(path, token string) string {
	return strings.TrimRight(s.Config.Auth.SiteURL, "/") + path + "?token=" + url.QueryEscape(token)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func ToProfileResponse(p *models.Profile) *types.ProfileResponse {
	return &types.ProfileResponse{
		ID:          p.ID,
		Email:       p.Email,
		Role:        p.Role,
		ConfirmedAt: p.ConfirmedAt,
		CreatedAt:   p.CreatedAt,
	}
}
