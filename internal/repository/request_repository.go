package repository

import (
	"context"
	"dating_app_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type RequestRepository struct {
	DB *gorm.DB
}

func NewRequestRepository(db *gorm.DB) *RequestRepository {
	return &RequestRepository{DB: db}
}

// betweenPair 任一方向上 a 与 b 之间的请求
func betweenPair(db *gorm.DB, a, b string) *gorm.DB {
	return db.Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)", a, b, b, a)
}

// Create 插入活跃请求。pair_key 唯一索引冲突时返回 ErrActiveRequestExists。
func (r *RequestRepository) Create(ctx context.Context, req *model.DatingRequest) error {
	if req.Status.Active() {
		key := model.PairKey(req.SenderID, req.ReceiverID)
		req.PairKey = &key
	} else {
		req.PairKey = nil
	}

	if err := r.DB.WithContext(ctx).Create(req).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrActiveRequestExists
		}
		return err
	}
	return nil
}

func (r *RequestRepository) FindByID(ctx context.Context, id string) (*model.DatingRequest, error) {
	var req model.DatingRequest
	err := r.DB.WithContext(ctx).First(&req, "id = ?", id).Error
	return &req, err
}

// FindActiveBetween 该对用户之间 pending 或 accepted 的请求
func (r *RequestRepository) FindActiveBetween(ctx context.Context, a, b string) (*model.DatingRequest, error) {
	var req model.DatingRequest
	err := r.DB.WithContext(ctx).
		Where("pair_key = ?", model.PairKey(a, b)).
		First(&req).Error
	return &req, err
}

func (r *RequestRepository) FindAcceptedBetween(ctx context.Context, a, b string) (*model.DatingRequest, error) {
	var req model.DatingRequest
	err := betweenPair(r.DB.WithContext(ctx), a, b).
		Where("status = ?", model.RequestAccepted).
		First(&req).Error
	return &req, err
}

func (r *RequestRepository) ExistsAccepted(ctx context.Context, a, b string) (bool, error) {
	var count int64
	err := betweenPair(r.DB.WithContext(ctx).Model(&model.DatingRequest{}), a, b).
		Where("status = ?", model.RequestAccepted).
		Count(&count).Error
	return count > 0, err
}

// CountActiveBetween 用于校验同一对用户的活跃请求数
func (r *RequestRepository) CountActiveBetween(ctx context.Context, a, b string) (int64, error) {
	var count int64
	err := betweenPair(r.DB.WithContext(ctx).Model(&model.DatingRequest{}), a, b).
		Where("status IN ?", []model.RequestStatus{model.RequestPending, model.RequestAccepted}).
		Count(&count).Error
	return count, err
}

// Transition 条件更新：仅当当前状态为 from 时改为 to，并记录对应时间。
// 返回是否有记录被修改。
func (r *RequestRepository) Transition(ctx context.Context, id string, from, to model.RequestStatus, at time.Time) (bool, error) {
	updates := map[string]interface{}{
		"status":     to,
		"updated_at": at,
	}
	switch to {
	case model.RequestAccepted:
		updates["accepted_at"] = at
	case model.RequestRejected:
		updates["rejected_at"] = at
	case model.RequestUnmatched:
		updates["unmatched_at"] = at
	}
	if !to.Active() {
		updates["pair_key"] = nil
	}

	result := r.DB.WithContext(ctx).Model(&model.DatingRequest{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// DeletePending 条件删除，仅删除仍为 pending 的请求
func (r *RequestRepository) DeletePending(ctx context.Context, id string) (bool, error) {
	result := r.DB.WithContext(ctx).
		Where("id = ? AND status = ?", id, model.RequestPending).
		Delete(&model.DatingRequest{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *RequestRepository) ListBySender(ctx context.Context, senderID string) ([]model.DatingRequest, error) {
	var reqs []model.DatingRequest
	err := r.DB.WithContext(ctx).
		Preload("Receiver").
		Where("sender_id = ?", senderID).
		Order("created_at DESC").
		Find(&reqs).Error
	return reqs, err
}

func (r *RequestRepository) ListByReceiver(ctx context.Context, receiverID string) ([]model.DatingRequest, error) {
	var reqs []model.DatingRequest
	err := r.DB.WithContext(ctx).
		Preload("Sender").
		Where("receiver_id = ?", receiverID).
		Order("created_at DESC").
		Find(&reqs).Error
	return reqs, err
}

// ListAccepted 用户参与的全部已匹配请求，双方资料均预加载
func (r *RequestRepository) ListAccepted(ctx context.Context, userID string) ([]model.DatingRequest, error) {
	var reqs []model.DatingRequest
	err := r.DB.WithContext(ctx).
		Preload("Sender").Preload("Receiver").
		Where("(sender_id = ? OR receiver_id = ?) AND status = ?", userID, userID, model.RequestAccepted).
		Order("accepted_at DESC").
		Find(&reqs).Error
	return reqs, err
}
