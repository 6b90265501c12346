package repository

import (
	"context"
	"dating_app_backend/internal/model"

	"gorm.io/gorm"
)

type MessageRepository struct {
	DB *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{DB: db}
}

func (r *MessageRepository) Create(ctx context.Context, msg *model.Message) error {
	return r.DB.WithContext(ctx).Create(msg).Error
}

func (r *MessageRepository) FindByID(ctx context.Context, id string) (*model.Message, error) {
	var msg model.Message
	err := r.DB.WithContext(ctx).First(&msg, "id = ?", id).Error
	return &msg, err
}

// ListBetween 两人之间的所有消息，按时间正序
func (r *MessageRepository) ListBetween(ctx context.Context, a, b string) ([]model.Message, error) {
	var msgs []model.Message
	err := betweenPair(r.DB.WithContext(ctx), a, b).
		Order("timestamp ASC").
		Order("created_at ASC").
		Find(&msgs).Error
	return msgs, err
}

// MarkRead 条件更新，仅未读消息会被修改
func (r *MessageRepository) MarkRead(ctx context.Context, id string) (bool, error) {
	result := r.DB.WithContext(ctx).Model(&model.Message{}).
		Where("id = ? AND is_read = ?", id, false).
		Update("is_read", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// MarkAllRead 把 sender 发给 receiver 的未读消息全部置为已读
func (r *MessageRepository) MarkAllRead(ctx context.Context, receiverID, senderID string) (int64, error) {
	result := r.DB.WithContext(ctx).Model(&model.Message{}).
		Where("receiver_id = ? AND sender_id = ? AND is_read = ?", receiverID, senderID, false).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

// CountUnread sender 发给 receiver 且未读的消息数
func (r *MessageRepository) CountUnread(ctx context.Context, receiverID, senderID string) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Message{}).
		Where("receiver_id = ? AND sender_id = ? AND is_read = ?", receiverID, senderID, false).
		Count(&count).Error
	return count, err
}
