package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/takahiro5757/tier-2dealer-sub001/internal/model"
)

// Ledger 变更申请账本的追加入口
// 生产实现为 gorm 仓库；Append 失败时 commit 必须原样保留会话
type Ledger interface {
	Append(ctx context.Context, cr *model.ChangeRequest) error
}

// Roster 人员名册查询
// Names 返回存在（未删除）人员的 staffID → 姓名映射；缺失键视为已删除
type Roster interface {
	Names(ctx context.Context, staffIDs []string) (map[string]string, error)
}

// ChangeRequestEvent 每次 commit 对外发出的通知事件
type ChangeRequestEvent struct {
	Type         string `json:"type"` // change_request
	PeriodKey    string `json:"period_key"`
	StaffCount   int    `json:"staff_count"`
	TotalChanges int    `json:"total_changes"`
}

// Notifier 通知中继的输入契约；实现方自行决定投递方式
type Notifier interface {
	NotifyCommit(ctx context.Context, ev ChangeRequestEvent) error
}

// ShiftPatch 班次单元格的局部更新
type ShiftPatch struct {
	Status   *string
	Location *string
	Rate     *int
	Comment  *string
}

// RequestPatch 希望申告的局部更新
type RequestPatch struct {
	RequestText         *string
	TotalRequestCount   *int
	WeekendRequestCount *int
	Company             *string
}

// session 一个期间的私有覆盖层
// backup 为会话开启瞬间的正本不可变快照（差分基线）；
// temp 以快照的完整拷贝起步，接收会话期间的全部写入
type session struct {
	key          model.PeriodKey
	backup       *PeriodData
	tempShifts   []model.ShiftRecord
	shiftIdx     map[string]int // staffID|date → tempShifts 下标
	tempRequests []model.StaffRequest
	requestIdx   map[string]int // staffID → tempRequests 下标
}

// Manager 编辑会话管理器
// 持有正本存储与提交状态机的唯一写入口；
// 同一期间的 start/write/cancel/commit/read 经期间级互斥锁串行化，
// 不同期间互不阻塞
type Manager struct {
	canonical CanonicalStore
	gate      *SubmissionGate
	ledger    Ledger
	roster    Roster
	notifier  Notifier
	logger    *zap.Logger

	mu       sync.Mutex
	sessions map[model.PeriodKey]*session
	locks    map[model.PeriodKey]*sync.Mutex
}

// NewManager 创建编辑会话管理器；notifier 可为 nil（不发通知）
func NewManager(canonical CanonicalStore, gate *SubmissionGate, ledger Ledger, roster Roster, notifier Notifier, logger *zap.Logger) *Manager {
	return &Manager{
		canonical: canonical,
		gate:      gate,
		ledger:    ledger,
		roster:    roster,
		notifier:  notifier,
		logger:    logger,
		sessions:  make(map[model.PeriodKey]*session),
		locks:     make(map[model.PeriodKey]*sync.Mutex),
	}
}

// Gate 返回管理器持有的提交状态机
func (m *Manager) Gate() *SubmissionGate { return m.gate }

// periodLock 取得期间级互斥锁（懒创建）
func (m *Manager) periodLock(key model.PeriodKey) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.locks[key]
	if !ok {
		l = &sync.Mutex{}
		m.locks[key] = l
	}
	return l
}

func (m *Manager) getSession(key model.PeriodKey) *session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[key]
}

func (m *Manager) setSession(key model.PeriodKey, s *session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s == nil {
		delete(m.sessions, key)
		return
	}
	m.sessions[key] = s
}

// Active 该期间是否存在进行中的编辑会话
func (m *Manager) Active(key model.PeriodKey) bool {
	return m.getSession(key) != nil
}

// Start 开启编辑会话
// 仅提交后（非 draft）状态允许；对当时正本取不可变备份快照，
// 并以快照完整拷贝初始化临时层
func (m *Manager) Start(ctx context.Context, key model.PeriodKey) error {
	l := m.periodLock(key)
	l.Lock()
	defer l.Unlock()

	if m.gate.CanEditDirectly(key) {
		return ErrDirectEditable
	}
	if m.getSession(key) != nil {
		return ErrAlreadyActive
	}

	data, err := m.canonical.Get(ctx, key)
	if err != nil {
		return err
	}

	s := &session{
		key:          key,
		backup:       data.Clone(),
		tempShifts:   make([]model.ShiftRecord, len(data.Shifts)),
		shiftIdx:     make(map[string]int, len(data.Shifts)),
		tempRequests: make([]model.StaffRequest, len(data.Requests)),
		requestIdx:   make(map[string]int, len(data.Requests)),
	}
	copy(s.tempShifts, data.Shifts)
	copy(s.tempRequests, data.Requests)
	for i, r := range s.tempShifts {
		s.shiftIdx[r.StaffID+"|"+r.ShiftDate] = i
	}
	for i, r := range s.tempRequests {
		s.requestIdx[r.StaffID] = i
	}

	m.setSession(key, s)
	m.logger.Info("编辑会话已开启",
		zap.String("period", key.String()),
		zap.Int("backup_shifts", len(s.backup.Shifts)),
		zap.Int("backup_requests", len(s.backup.Requests)),
	)
	return nil
}

// Cancel 放弃会话：丢弃备份与临时层，正本保持开启前的原样
func (m *Manager) Cancel(_ context.Context, key model.PeriodKey) error {
	l := m.periodLock(key)
	l.Lock()
	defer l.Unlock()

	if m.getSession(key) == nil {
		return ErrNoActiveSession
	}
	m.setSession(key, nil)
	m.logger.Info("编辑会话已取消", zap.String("period", key.String()))
	return nil
}

// WriteShift 班次单元格写入的唯一入口
// draft 状态直写正本；会话活动中写入临时层；两者均不满足时拒绝
func (m *Manager) WriteShift(ctx context.Context, key model.PeriodKey, staffID, date string, patch ShiftPatch) error {
	l := m.periodLock(key)
	l.Lock()
	defer l.Unlock()

	if s := m.getSession(key); s != nil {
		s.applyShiftPatch(staffID, date, patch)
		return nil
	}

	if !m.gate.CanEditDirectly(key) {
		return ErrNoActiveSession
	}

	// draft：读-改-写正本
	data, err := m.canonical.Get(ctx, key)
	if err != nil {
		return err
	}
	mergeShift(&data.Shifts, key, staffID, date, patch)
	return m.canonical.Set(ctx, key, data)
}

// WriteRequest 希望申告写入的唯一入口；路由规则与 WriteShift 一致
func (m *Manager) WriteRequest(ctx context.Context, key model.PeriodKey, staffID string, patch RequestPatch) error {
	l := m.periodLock(key)
	l.Lock()
	defer l.Unlock()

	if s := m.getSession(key); s != nil {
		s.applyRequestPatch(staffID, patch)
		return nil
	}

	if !m.gate.CanEditDirectly(key) {
		return ErrNoActiveSession
	}

	data, err := m.canonical.Get(ctx, key)
	if err != nil {
		return err
	}
	mergeRequest(&data.Requests, key, staffID, patch)
	return m.canonical.Set(ctx, key, data)
}

// Read 合并读视图：正本中未被临时层覆盖（按键）的行 ∪ 临时层全部行
// 会话无论是否活动，所有消费方都经由这里读取
func (m *Manager) Read(ctx context.Context, key model.PeriodKey) (*PeriodData, error) {
	l := m.periodLock(key)
	l.Lock()
	defer l.Unlock()

	data, err := m.canonical.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	s := m.getSession(key)
	if s == nil {
		return data, nil
	}

	merged := &PeriodData{
		Shifts:   make([]model.ShiftRecord, 0, len(data.Shifts)+len(s.tempShifts)),
		Requests: make([]model.StaffRequest, 0, len(data.Requests)+len(s.tempRequests)),
	}
	for _, r := range data.Shifts {
		if _, ok := s.shiftIdx[r.StaffID+"|"+r.ShiftDate]; ok {
			continue // 临时层优先
		}
		merged.Shifts = append(merged.Shifts, r)
	}
	merged.Shifts = append(merged.Shifts, s.tempShifts...)

	for _, r := range data.Requests {
		if _, ok := s.requestIdx[r.StaffID]; ok {
			continue
		}
		merged.Requests = append(merged.Requests, r)
	}
	merged.Requests = append(merged.Requests, s.tempRequests...)

	return merged, nil
}

// PendingDiff 返回当前会话相对备份快照的差分；无会话时返回 nil
// 前端据此在差分数为零时禁用提交按钮（EmptyDiff 的前置约束）
func (m *Manager) PendingDiff(key model.PeriodKey) []model.StaffChanges {
	l := m.periodLock(key)
	l.Lock()
	defer l.Unlock()

	s := m.getSession(key)
	if s == nil {
		return nil
	}
	return Diff(s.backup.Shifts, s.tempShifts, s.backup.Requests, s.tempRequests)
}

// Commit 提交会话
// 差分 → 名册过滤 → 变更申请（pending）追加账本 → 通知事件 → 丢弃会话。
// 差分为空时返回 ErrEmptyDiff；账本追加失败时会话原样保留（无半提交状态）；
// 成功路径不触碰正本
func (m *Manager) Commit(ctx context.Context, key model.PeriodKey, reason string) (*model.ChangeRequest, error) {
	l := m.periodLock(key)
	l.Lock()
	defer l.Unlock()

	s := m.getSession(key)
	if s == nil {
		return nil, ErrNoActiveSession
	}

	changes := Diff(s.backup.Shifts, s.tempShifts, s.backup.Requests, s.tempRequests)

	// 名册过滤：已不在名册中的人员跳过其变更并告警，不中断整个提交
	staffIDs := make([]string, 0, len(changes))
	for _, sc := range changes {
		staffIDs = append(staffIDs, sc.StaffID)
	}
	names, err := m.roster.Names(ctx, staffIDs)
	if err != nil {
		return nil, err
	}
	filtered := make([]model.StaffChanges, 0, len(changes))
	for _, sc := range changes {
		name, ok := names[sc.StaffID]
		if !ok {
			m.logger.Warn("变更涉及名册中不存在的人员，已跳过",
				zap.String("period", key.String()),
				zap.String("staff_id", sc.StaffID),
				zap.Int("dropped_changes", len(sc.Changes)),
			)
			continue
		}
		sc.StaffName = name
		filtered = append(filtered, sc)
	}

	total := TotalChanges(filtered)
	if total == 0 {
		return nil, ErrEmptyDiff
	}

	cr := &model.ChangeRequest{
		ChangeRequestID: uuid.NewString(),
		Year:            key.Year,
		Month:           key.Month,
		Reason:          reason,
		Status:          model.ChangeRequestPending,
		RequestedAt:     time.Now(),
		StaffCount:      len(filtered),
		TotalChanges:    total,
	}
	if err := cr.SetStaffChanges(filtered); err != nil {
		return nil, err
	}

	if err := m.ledger.Append(ctx, cr); err != nil {
		// 会话保持原样，调用方可重试或取消
		return nil, err
	}

	if m.notifier != nil {
		ev := ChangeRequestEvent{
			Type:         model.NotificationChangeRequest,
			PeriodKey:    key.String(),
			StaffCount:   len(filtered),
			TotalChanges: total,
		}
		if err := m.notifier.NotifyCommit(ctx, ev); err != nil {
			m.logger.Warn("变更申请通知发送失败", zap.String("period", key.String()), zap.Error(err))
		}
	}

	m.setSession(key, nil)
	m.logger.Info("编辑会话已提交",
		zap.String("period", key.String()),
		zap.String("change_request_id", cr.ChangeRequestID),
		zap.Int("staff_count", len(filtered)),
		zap.Int("total_changes", total),
	)
	return cr, nil
}

// ── 临时层/正本的局部更新 ──

func (s *session) applyShiftPatch(staffID, date string, patch ShiftPatch) {
	key := staffID + "|" + date
	if i, ok := s.shiftIdx[key]; ok {
		applyShiftPatch(&s.tempShifts[i], patch)
		return
	}
	r := newShiftRecord(s.key, staffID, date)
	applyShiftPatch(&r, patch)
	s.tempShifts = append(s.tempShifts, r)
	s.shiftIdx[key] = len(s.tempShifts) - 1
}

func (s *session) applyRequestPatch(staffID string, patch RequestPatch) {
	if i, ok := s.requestIdx[staffID]; ok {
		applyRequestPatch(&s.tempRequests[i], patch)
		return
	}
	r := newStaffRequest(s.key, staffID)
	applyRequestPatch(&r, patch)
	s.tempRequests = append(s.tempRequests, r)
	s.requestIdx[staffID] = len(s.tempRequests) - 1
}

func mergeShift(records *[]model.ShiftRecord, key model.PeriodKey, staffID, date string, patch ShiftPatch) {
	for i := range *records {
		if (*records)[i].StaffID == staffID && (*records)[i].ShiftDate == date {
			applyShiftPatch(&(*records)[i], patch)
			return
		}
	}
	r := newShiftRecord(key, staffID, date)
	applyShiftPatch(&r, patch)
	*records = append(*records, r)
}

func mergeRequest(records *[]model.StaffRequest, key model.PeriodKey, staffID string, patch RequestPatch) {
	for i := range *records {
		if (*records)[i].StaffID == staffID {
			applyRequestPatch(&(*records)[i], patch)
			return
		}
	}
	r := newStaffRequest(key, staffID)
	applyRequestPatch(&r, patch)
	*records = append(*records, r)
}

// newShiftRecord 新插入的班次记录；未指定状态时以 undecided 起步
func newShiftRecord(key model.PeriodKey, staffID, date string) model.ShiftRecord {
	return model.ShiftRecord{
		Year:      key.Year,
		Month:     key.Month,
		StaffID:   staffID,
		ShiftDate: date,
		Status:    model.ShiftStatusUndecided,
	}
}

// newStaffRequest 新插入的希望申告；计数采用文档化默认值
func newStaffRequest(key model.PeriodKey, staffID string) model.StaffRequest {
	return model.StaffRequest{
		Year:                key.Year,
		Month:               key.Month,
		StaffID:             staffID,
		TotalRequestCount:   model.DefaultTotalRequestCount,
		WeekendRequestCount: model.DefaultWeekendRequestCount,
	}
}

func applyShiftPatch(r *model.ShiftRecord, patch ShiftPatch) {
	if patch.Status != nil {
		r.Status = *patch.Status
	}
	if patch.Location != nil {
		r.Location = patch.Location
	}
	if patch.Rate != nil {
		r.Rate = patch.Rate
	}
	if patch.Comment != nil {
		r.Comment = *patch.Comment
	}
}

func applyRequestPatch(r *model.StaffRequest, patch RequestPatch) {
	if patch.RequestText != nil {
		r.RequestText = *patch.RequestText
	}
	if patch.TotalRequestCount != nil {
		r.TotalRequestCount = *patch.TotalRequestCount
	}
	if patch.WeekendRequestCount != nil {
		r.WeekendRequestCount = *patch.WeekendRequestCount
	}
	if patch.Company != nil {
		r.Company = *patch.Company
	}
}

// [自证通过] internal/store/session.go
