package service

import (
	"context"
	"dating_app_backend/internal/model"
	"dating_app_backend/internal/repository"
	"dating_app_backend/internal/util"
	"dating_app_backend/pkg/logger"
	"dating_app_backend/pkg/monitoring"
	"dating_app_backend/pkg/tracing"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// Decision 接收方对请求的处理
type Decision string

const (
	DecisionAccept Decision = "accept"
	DecisionReject Decision = "reject"
)

// MatchService 约会请求的全部状态流转
type MatchService struct {
	UserRepo    *repository.UserRepository
	RequestRepo *repository.RequestRepository
	MessageRepo *repository.MessageRepository
	// 测试中替换时钟
	Now func() time.Time
}

func NewMatchService(
	userRepo *repository.UserRepository,
	requestRepo *repository.RequestRepository,
	messageRepo *repository.MessageRepository,
) *MatchService {
	return &MatchService{
		UserRepo:    userRepo,
		RequestRepo: requestRepo,
		MessageRepo: messageRepo,
		Now:         time.Now,
	}
}

// activeConflict 把已存在的活跃请求转换为对应的业务错误
func activeConflict(req *model.DatingRequest) error {
	if req.Status == model.RequestAccepted {
		return util.ErrAlreadyMatched
	}
	return util.ErrDuplicatePending
}

func (s *MatchService) CreateRequest(ctx context.Context, callerID, targetID string) (*model.DatingRequest, error) {
	ctx, span := tracing.StartSpan(ctx, "MatchService.CreateRequest",
		attribute.String("sender_id", callerID), attribute.String("receiver_id", targetID))
	defer span.End()

	if callerID == targetID {
		return nil, util.ErrSelfTarget
	}

	for _, id := range []string{callerID, targetID} {
		exists, err := s.UserRepo.Exists(ctx, id)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, util.ErrUserNotFound
		}
	}

	existing, err := s.RequestRepo.FindActiveBetween(ctx, callerID, targetID)
	if err == nil {
		return nil, activeConflict(existing)
	} else if !repository.IsNotFound(err) {
		return nil, err
	}

	req := &model.DatingRequest{
		SenderID:   callerID,
		ReceiverID: targetID,
		Status:     model.RequestPending,
	}
	if err := s.RequestRepo.Create(ctx, req); err != nil {
		if !errors.Is(err, repository.ErrActiveRequestExists) {
			return nil, err
		}
		// 并发创建时由唯一索引裁决，重新读取胜出的记录
		winner, findErr := s.RequestRepo.FindActiveBetween(ctx, callerID, targetID)
		if findErr != nil {
			return nil, util.ErrDuplicatePending
		}
		return nil, activeConflict(winner)
	}

	monitoring.DatingRequestCounter.WithLabelValues("created").Inc()
	logger.Log.Info("Dating request created",
		zap.String("request_id", req.ID),
		zap.String("sender_id", callerID),
		zap.String("receiver_id", targetID),
	)
	return req, nil
}

// Respond 仅接收方可处理，且请求必须仍为 pending
func (s *MatchService) Respond(ctx context.Context, callerID, requestID string, decision Decision) (*model.DatingRequest, error) {
	ctx, span := tracing.StartSpan(ctx, "MatchService.Respond",
		attribute.String("request_id", requestID), attribute.String("decision", string(decision)))
	defer span.End()

	var target model.RequestStatus
	switch decision {
	case DecisionAccept:
		target = model.RequestAccepted
	case DecisionReject:
		target = model.RequestRejected
	default:
		return nil, util.NewValidationError("decision", "decision must be accept or reject")
	}

	req, err := s.findRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.ReceiverID != callerID {
		return nil, util.ErrPermissionDenied
	}
	if req.Status != model.RequestPending {
		return nil, util.ErrInvalidState
	}

	changed, err := s.RequestRepo.Transition(ctx, req.ID, model.RequestPending, target, s.Now())
	if err != nil {
		return nil, err
	}
	if !changed {
		// 读取之后被取消或已被处理
		return nil, util.ErrInvalidState
	}

	monitoring.DatingRequestCounter.WithLabelValues(string(target)).Inc()
	logger.Log.Info("Dating request answered",
		zap.String("request_id", req.ID),
		zap.String("status", string(target)),
	)
	return s.findRequest(ctx, req.ID)
}

func (s *MatchService) Accept(ctx context.Context, callerID, requestID string) (*model.DatingRequest, error) {
	return s.Respond(ctx, callerID, requestID, DecisionAccept)
}

func (s *MatchService) Reject(ctx context.Context, callerID, requestID string) (*model.DatingRequest, error) {
	return s.Respond(ctx, callerID, requestID, DecisionReject)
}

// CancelRequest 发送方撤回仍为 pending 的请求，记录直接删除
func (s *MatchService) CancelRequest(ctx context.Context, callerID, requestID string) error {
	req, err := s.findRequest(ctx, requestID)
	if err != nil {
		return err
	}
	if req.SenderID != callerID {
		return util.ErrPermissionDenied
	}
	if req.Status != model.RequestPending {
		return util.ErrInvalidState
	}

	deleted, err := s.RequestRepo.DeletePending(ctx, req.ID)
	if err != nil {
		return err
	}
	if !deleted {
		return util.ErrInvalidState
	}

	monitoring.DatingRequestCounter.WithLabelValues("cancelled").Inc()
	logger.Log.Info("Dating request cancelled", zap.String("request_id", req.ID))
	return nil
}

// Unmatch 任一方解除匹配，消息记录保留
func (s *MatchService) Unmatch(ctx context.Context, callerID, otherID string) (*model.DatingRequest, error) {
	ctx, span := tracing.StartSpan(ctx, "MatchService.Unmatch",
		attribute.String("user_id", callerID), attribute.String("other_id", otherID))
	defer span.End()

	req, err := s.RequestRepo.FindAcceptedBetween(ctx, callerID, otherID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, util.ErrNoActiveMatch
		}
		return nil, err
	}

	changed, err := s.RequestRepo.Transition(ctx, req.ID, model.RequestAccepted, model.RequestUnmatched, s.Now())
	if err != nil {
		return nil, err
	}
	if !changed {
		return nil, util.ErrNoActiveMatch
	}

	monitoring.DatingRequestCounter.WithLabelValues("unmatched").Inc()
	logger.Log.Info("Users unmatched",
		zap.String("request_id", req.ID),
		zap.String("by", callerID),
	)
	return s.findRequest(ctx, req.ID)
}

// IsMatched 每次都查询存储，不做缓存
func (s *MatchService) IsMatched(ctx context.Context, a, b string) (bool, error) {
	if a == "" || b == "" || a == b {
		return false, nil
	}
	return s.RequestRepo.ExistsAccepted(ctx, a, b)
}

func (s *MatchService) ListSent(ctx context.Context, callerID string) ([]model.RequestView, error) {
	reqs, err := s.RequestRepo.ListBySender(ctx, callerID)
	if err != nil {
		return nil, err
	}
	views := make([]model.RequestView, 0, len(reqs))
	for i := range reqs {
		views = append(views, model.NewRequestView(&reqs[i], reqs[i].Receiver))
	}
	return views, nil
}

func (s *MatchService) ListReceived(ctx context.Context, callerID string) ([]model.RequestView, error) {
	reqs, err := s.RequestRepo.ListByReceiver(ctx, callerID)
	if err != nil {
		return nil, err
	}
	views := make([]model.RequestView, 0, len(reqs))
	for i := range reqs {
		views = append(views, model.NewRequestView(&reqs[i], reqs[i].Sender))
	}
	return views, nil
}

func (s *MatchService) ListMatches(ctx context.Context, callerID string) ([]model.MatchView, error) {
	reqs, err := s.RequestRepo.ListAccepted(ctx, callerID)
	if err != nil {
		return nil, err
	}

	matches := make([]model.MatchView, 0, len(reqs))
	for i := range reqs {
		r := &reqs[i]
		initiator := r.SenderID == callerID
		counterpart := r.Sender
		if initiator {
			counterpart = r.Receiver
		}
		if counterpart == nil {
			continue
		}

		unread, err := s.MessageRepo.CountUnread(ctx, callerID, r.Counterpart(callerID))
		if err != nil {
			return nil, err
		}
		matches = append(matches, model.MatchView{
			PublicProfile: *model.NewPublicProfile(counterpart, true),
			RequestID:     r.ID,
			IsInitiator:   initiator,
			MatchedAt:     r.AcceptedAt,
			UnreadCount:   unread,
		})
	}
	return matches, nil
}

func (s *MatchService) findRequest(ctx context.Context, id string) (*model.DatingRequest, error) {
	req, err := s.RequestRepo.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, util.ErrRequestNotFound
		}
		return nil, err
	}
	return req, nil
}
