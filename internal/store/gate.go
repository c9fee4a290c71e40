package store

import (
	"fmt"
	"sync"

	"github.com/takahiro5757/tier-2dealer-sub001/internal/model"
)

// SubmissionGate 期间提交状态机
// 状态决定写入路径：draft 直写正本，其余状态必须经编辑会话产生变更申请。
// 与编辑会话相互独立，仅提供状态查询与受控迁移
type SubmissionGate struct {
	mu       sync.RWMutex
	statuses map[model.PeriodKey]string
}

// 允许的状态迁移
// draft → submitted 由批量提交触发且不可逆；
// approved/rejected → pending_approval 支持同一期间的多轮变更申请
var gateTransitions = map[string][]string{
	model.SubmissionDraft:           {model.SubmissionSubmitted},
	model.SubmissionSubmitted:       {model.SubmissionPendingApproval},
	model.SubmissionPendingApproval: {model.SubmissionApproved, model.SubmissionRejected},
	model.SubmissionApproved:        {model.SubmissionPendingApproval},
	model.SubmissionRejected:        {model.SubmissionPendingApproval},
}

// NewSubmissionGate 创建状态机，可传入启动时从持久层水合的状态
func NewSubmissionGate(initial map[model.PeriodKey]string) *SubmissionGate {
	statuses := make(map[model.PeriodKey]string, len(initial))
	for k, v := range initial {
		statuses[k] = v
	}
	return &SubmissionGate{statuses: statuses}
}

// Status 返回期间当前状态；未记录的期间视为 draft
func (g *SubmissionGate) Status(key model.PeriodKey) string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if s, ok := g.statuses[key]; ok {
		return s
	}
	return model.SubmissionDraft
}

// CanEditDirectly 仅 draft 状态允许直接修改正本
func (g *SubmissionGate) CanEditDirectly(key model.PeriodKey) bool {
	return g.Status(key) == model.SubmissionDraft
}

// Submit 批量提交：draft → submitted
func (g *SubmissionGate) Submit(key model.PeriodKey) error {
	return g.Transition(key, model.SubmissionSubmitted)
}

// Transition 执行一次受控状态迁移
func (g *SubmissionGate) Transition(key model.PeriodKey, to string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	from, ok := g.statuses[key]
	if !ok {
		from = model.SubmissionDraft
	}
	for _, allowed := range gateTransitions[from] {
		if allowed == to {
			g.statuses[key] = to
			return nil
		}
	}
	return fmt.Errorf("%w: %s → %s (%s)", ErrInvalidTransition, from, to, key)
}

// [自证通过] internal/store/gate.go
