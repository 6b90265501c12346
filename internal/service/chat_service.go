package service

import (
	"context"
	"dating_app_backend/internal/model"
	"dating_app_backend/internal/repository"
	"dating_app_backend/internal/util"
	"dating_app_backend/pkg/logger"
	"dating_app_backend/pkg/monitoring"
	"dating_app_backend/pkg/tracing"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ChatService 消息收发，所有读写都以当前匹配关系为前提
type ChatService struct {
	MessageRepo *repository.MessageRepository
	Matches     *MatchService
}

func NewChatService(messageRepo *repository.MessageRepository, matches *MatchService) *ChatService {
	return &ChatService{
		MessageRepo: messageRepo,
		Matches:     matches,
	}
}

func (s *ChatService) requireMatch(ctx context.Context, a, b string) error {
	matched, err := s.Matches.IsMatched(ctx, a, b)
	if err != nil {
		return err
	}
	if !matched {
		return util.ErrNotMatched
	}
	return nil
}

func (s *ChatService) SendMessage(ctx context.Context, callerID, receiverID, text string) (*model.Message, error) {
	ctx, span := tracing.StartSpan(ctx, "ChatService.SendMessage",
		attribute.String("sender_id", callerID), attribute.String("receiver_id", receiverID))
	defer span.End()

	// 未匹配时无论内容如何都拒绝
	if err := s.requireMatch(ctx, callerID, receiverID); err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, util.ErrEmptyText
	}

	msg := &model.Message{
		SenderID:   callerID,
		ReceiverID: receiverID,
		Text:       text,
		Timestamp:  time.Now(),
	}
	if err := s.MessageRepo.Create(ctx, msg); err != nil {
		return nil, err
	}

	monitoring.MessagesSent.Inc()
	logger.Log.Debug("Message sent",
		zap.String("message_id", msg.ID),
		zap.String("sender_id", callerID),
		zap.String("receiver_id", receiverID),
	)
	return msg, nil
}

// ListMessages 解除匹配后历史消息保留，但需重新匹配才能查看
func (s *ChatService) ListMessages(ctx context.Context, callerID, otherID string) ([]model.Message, error) {
	if err := s.requireMatch(ctx, callerID, otherID); err != nil {
		return nil, err
	}
	return s.MessageRepo.ListBetween(ctx, callerID, otherID)
}

func (s *ChatService) MarkRead(ctx context.Context, callerID, messageID string) (*model.Message, error) {
	msg, err := s.MessageRepo.FindByID(ctx, messageID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, util.ErrMessageNotFound
		}
		return nil, err
	}
	if msg.ReceiverID != callerID {
		return nil, util.ErrPermissionDenied
	}
	if msg.IsRead {
		return nil, util.ErrAlreadyRead
	}

	changed, err := s.MessageRepo.MarkRead(ctx, msg.ID)
	if err != nil {
		return nil, err
	}
	if !changed {
		return nil, util.ErrAlreadyRead
	}

	msg.IsRead = true
	return msg, nil
}

// MarkAllRead 幂等，没有未读消息时返回 0
func (s *ChatService) MarkAllRead(ctx context.Context, callerID, otherID string) (int64, error) {
	return s.MessageRepo.MarkAllRead(ctx, callerID, otherID)
}
