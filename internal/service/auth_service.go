package service

import (
	"context"
	"dating_app_backend/internal/config"
	"dating_app_backend/internal/model"
	"dating_app_backend/internal/repository"
	"dating_app_backend/internal/util"
	"dating_app_backend/pkg/logger"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// RegisterInput 注册请求体
// swagger:model RegisterInput
type RegisterInput struct {
	Username             string   `json:"username" validate:"required,min=3,max=30,username"`
	Password             string   `json:"password" validate:"required,min=6"`
	ProfileName          string   `json:"profileName" validate:"required,min=3,max=50"`
	Bio                  string   `json:"bio" validate:"max=500"`
	Country              string   `json:"country" validate:"required,max=50"`
	ProfilePic           string   `json:"profilePic" validate:"omitempty,url"`
	SwipeImages          []string `json:"swipeImages" validate:"len=3,dive,required"`
	InstagramUsername    string   `json:"instagramUsername" validate:"max=100"`
	InstagramProfileLink string   `json:"instagramProfileLink" validate:"omitempty,url"`
}

// LoginInput 登录请求体
// swagger:model LoginInput
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResult 注册/登录返回的令牌与本人资料
type AuthResult struct {
	Token string               `json:"token"`
	User  *model.PublicProfile `json:"user"`
}

type AuthService struct {
	UserRepo    *repository.UserRepository
	SessionRepo *repository.SessionRepository
	Cfg         *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, sessionRepo *repository.SessionRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo:    userRepo,
		SessionRepo: sessionRepo,
		Cfg:         cfg,
	}
}

func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	input.Username = normalizeUsername(input.Username)
	input.ProfileName = strings.TrimSpace(input.ProfileName)
	input.Country = strings.TrimSpace(input.Country)

	if err := util.ValidateStruct(input); err != nil {
		return nil, err
	}

	_, err := s.UserRepo.FindByUsername(ctx, input.Username)
	if err == nil {
		return nil, util.ErrUsernameTaken
	} else if !repository.IsNotFound(err) {
		return nil, err
	}

	profilePic := input.ProfilePic
	if profilePic == "" {
		profilePic = model.DefaultProfilePic
	}

	user := &model.User{
		Username:             input.Username,
		ProfileName:          input.ProfileName,
		Bio:                  input.Bio,
		Country:              input.Country,
		ProfilePic:           profilePic,
		SwipeImages:          input.SwipeImages,
		InstagramUsername:    input.InstagramUsername,
		InstagramProfileLink: input.InstagramProfileLink,
	}
	if err := s.UserRepo.Create(ctx, user, input.Password); err != nil {
		// 并发注册时预检查通过，由唯一索引兜底
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return nil, util.ErrUsernameTaken
		}
		return nil, err
	}

	token, err := s.IssueToken(user.ID)
	if err != nil {
		return nil, err
	}

	logger.Log.Info("User registered", zap.String("user_id", user.ID), zap.String("username", user.Username))
	return &AuthResult{Token: token, User: model.NewPublicProfile(user, true)}, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	if err := util.ValidateStruct(LoginInput{Username: username, Password: password}); err != nil {
		return nil, err
	}

	user, err := s.UserRepo.FindByUsername(ctx, normalizeUsername(username))
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, util.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.UserRepo.VerifyCredential(user, password) {
		return nil, util.ErrInvalidCredentials
	}

	token, err := s.IssueToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: model.NewPublicProfile(user, true)}, nil
}

func (s *AuthService) IssueToken(userID string) (string, error) {
	token, err := util.GenerateJWT(userID, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// VerifyToken 校验签名与有效期，并拒绝已注销账号的令牌
func (s *AuthService) VerifyToken(ctx context.Context, token string) (string, error) {
	claims, err := util.ParseJWT(token, s.Cfg.JWT.Secret)
	if err != nil {
		return "", util.ErrInvalidToken
	}

	revoked, err := s.SessionRepo.IsRevoked(ctx, claims.UserID)
	if err != nil {
		// redis 不可用时不阻断请求
		logger.Log.Warn("Revocation lookup failed", zap.String("user_id", claims.UserID), zap.Error(err))
	} else if revoked {
		return "", util.ErrTokenRevoked
	}
	return claims.UserID, nil
}
