package repository

import (
	"context"
	"dating_app_backend/internal/model"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// PasswordCost 与原有账号的哈希强度保持一致
const PasswordCost = 10

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// HashPassword 写库前显式调用的哈希步骤
func HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Create 哈希密码后写入用户
func (r *UserRepository) Create(ctx context.Context, user *model.User, plainPassword string) error {
	hashed, err := HashPassword(plainPassword)
	if err != nil {
		return err
	}
	user.Password = hashed

	if err := r.DB.WithContext(ctx).Create(user).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateUsername
		}
		return err
	}
	return nil
}

func (r *UserRepository) VerifyCredential(user *model.User, candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(candidate)) == nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).First(&user, "id = ?", id).Error
	return &user, err
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).Where("username = ?", strings.ToLower(username)).First(&user).Error
	return &user, err
}

func (r *UserRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// ListExcept explore 列表，排除自己
func (r *UserRepository) ListExcept(ctx context.Context, userID string) ([]model.User, error) {
	var users []model.User
	err := r.DB.WithContext(ctx).
		Where("id <> ?", userID).
		Order("created_at DESC").
		Find(&users).Error
	return users, err
}

// likeEscaper 转义 LIKE 通配符，'!' 作为转义字符在各驱动下都可用
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// Search 用户名或昵称子串搜索（不区分大小写），term 按字面匹配
func (r *UserRepository) Search(ctx context.Context, excludeID, term string) ([]model.User, error) {
	var users []model.User
	searchTerm := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
	err := r.DB.WithContext(ctx).
		Where("id <> ?", excludeID).
		Where("(LOWER(username) LIKE ? ESCAPE '!' OR LOWER(profile_name) LIKE ? ESCAPE '!')", searchTerm, searchTerm).
		Order("username ASC").
		Find(&users).Error
	return users, err
}

// UpdateFields 局部更新，调用方负责字段白名单
func (r *UserRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	result := r.DB.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteAccount 在同一事务中删除用户及其请求、消息。
// 先删引用方，dating_requests 对 users 有外键。
func (r *UserRepository) DeleteAccount(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sender_id = ? OR receiver_id = ?", id, id).Delete(&model.DatingRequest{}).Error; err != nil {
			return err
		}
		if err := tx.Where("sender_id = ? OR receiver_id = ?", id, id).Delete(&model.Message{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", id).Delete(&model.User{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
