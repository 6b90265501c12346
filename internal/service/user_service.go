package service

import (
	"context"
	"dating_app_backend/internal/config"
	"dating_app_backend/internal/model"
	"dating_app_backend/internal/repository"
	"dating_app_backend/internal/util"
	"dating_app_backend/pkg/logger"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// UpdateProfileInput 局部更新，nil 字段保持不变。
// username、password、id、createdAt 不可通过该接口修改。
// swagger:model UpdateProfileInput
type UpdateProfileInput struct {
	ProfileName          *string   `json:"profileName" validate:"omitempty,min=3,max=50"`
	Bio                  *string   `json:"bio" validate:"omitempty,max=500"`
	Country              *string   `json:"country" validate:"omitempty,min=1,max=50"`
	ProfilePic           *string   `json:"profilePic" validate:"omitempty,url"`
	SwipeImages          *[]string `json:"swipeImages" validate:"omitempty,max=3,dive,required"`
	InstagramUsername    *string   `json:"instagramUsername" validate:"omitempty,max=100"`
	InstagramProfileLink *string   `json:"instagramProfileLink" validate:"omitempty,url"`
}

func (in UpdateProfileInput) fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if in.ProfileName != nil {
		fields["profile_name"] = *in.ProfileName
	}
	if in.Bio != nil {
		fields["bio"] = *in.Bio
	}
	if in.Country != nil {
		fields["country"] = *in.Country
	}
	if in.ProfilePic != nil {
		fields["profile_pic"] = *in.ProfilePic
	}
	if in.SwipeImages != nil {
		fields["swipe_images"] = model.StringList(*in.SwipeImages)
	}
	if in.InstagramUsername != nil {
		fields["instagram_username"] = *in.InstagramUsername
	}
	if in.InstagramProfileLink != nil {
		fields["instagram_profile_link"] = *in.InstagramProfileLink
	}
	return fields
}

type UserService struct {
	UserRepo    *repository.UserRepository
	RequestRepo *repository.RequestRepository
	SessionRepo *repository.SessionRepository
	Cfg         *config.Config
}

func NewUserService(
	userRepo *repository.UserRepository,
	requestRepo *repository.RequestRepository,
	sessionRepo *repository.SessionRepository,
	cfg *config.Config,
) *UserService {
	return &UserService{
		UserRepo:    userRepo,
		RequestRepo: requestRepo,
		SessionRepo: sessionRepo,
		Cfg:         cfg,
	}
}

func (s *UserService) findUser(ctx context.Context, id string) (*model.User, error) {
	user, err := s.UserRepo.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetMe(ctx context.Context, callerID string) (*model.PublicProfile, error) {
	user, err := s.findUser(ctx, callerID)
	if err != nil {
		return nil, err
	}
	return model.NewPublicProfile(user, true), nil
}

// GetProfile 联系方式只对本人和已匹配用户可见
func (s *UserService) GetProfile(ctx context.Context, viewerID, userID string) (*model.PublicProfile, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	reveal := viewerID == userID
	if !reveal {
		reveal, err = s.RequestRepo.ExistsAccepted(ctx, viewerID, userID)
		if err != nil {
			return nil, err
		}
	}
	return model.NewPublicProfile(user, reveal), nil
}

func (s *UserService) Explore(ctx context.Context, callerID string) ([]*model.PublicProfile, error) {
	if _, err := s.findUser(ctx, callerID); err != nil {
		return nil, err
	}

	users, err := s.UserRepo.ListExcept(ctx, callerID)
	if err != nil {
		return nil, err
	}
	return toProfiles(users), nil
}

func (s *UserService) Search(ctx context.Context, callerID, term string) ([]*model.PublicProfile, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, util.NewValidationError("searchTerm", "searchTerm is required")
	}

	users, err := s.UserRepo.Search(ctx, callerID, term)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, util.ErrNoSearchResults
	}
	return toProfiles(users), nil
}

// trim 在校验之前，保证写入的值满足长度约束
func trimPtr(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	return &t
}

func (s *UserService) UpdateMe(ctx context.Context, callerID string, input UpdateProfileInput) (*model.PublicProfile, error) {
	input.ProfileName = trimPtr(input.ProfileName)
	input.Country = trimPtr(input.Country)

	if err := util.ValidateStruct(input); err != nil {
		return nil, err
	}
	if input.Country != nil && strings.TrimSpace(*input.Country) == "" {
		return nil, util.NewValidationError("country", "country is required")
	}

	if err := s.UserRepo.UpdateFields(ctx, callerID, input.fields()); err != nil {
		if repository.IsNotFound(err) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	return s.GetMe(ctx, callerID)
}

// DeleteMe 删除账号及其全部请求、消息，并使已签发的令牌失效
func (s *UserService) DeleteMe(ctx context.Context, callerID string) error {
	if err := s.UserRepo.DeleteAccount(ctx, callerID); err != nil {
		if repository.IsNotFound(err) {
			return util.ErrUserNotFound
		}
		return fmt.Errorf("delete account: %w", err)
	}

	if err := s.SessionRepo.RevokeUser(ctx, callerID, s.Cfg.JWT.ExpireTime); err != nil {
		logger.Log.Warn("Token revocation failed", zap.String("user_id", callerID), zap.Error(err))
	}

	logger.Log.Info("Account deleted", zap.String("user_id", callerID))
	return nil
}

func toProfiles(users []model.User) []*model.PublicProfile {
	profiles := make([]*model.PublicProfile, 0, len(users))
	for i := range users {
		profiles = append(profiles, model.NewPublicProfile(&users[i], false))
	}
	return profiles
}
