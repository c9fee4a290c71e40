//go:build integration

package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/takahiro5757/tier-2dealer-sub001/internal/model"
	"github.com/takahiro5757/tier-2dealer-sub001/internal/repository"
	"github.com/takahiro5757/tier-2dealer-sub001/internal/store"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=dealer password=dealer_password dbname=dealer_shift_test sslmode=disable TimeZone=Asia/Tokyo"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法连接测试数据库: %v\n", err)
		os.Exit(1)
	}

	// 自动迁移测试表结构
	err = testDB.AutoMigrate(
		&model.Staff{},
		&model.ShiftRecord{},
		&model.StaffRequest{},
		&model.SubmissionState{},
		&model.ChangeRequest{},
		&model.Notification{},
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "AutoMigrate 失败: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()
	os.Exit(code)
}

// setupTestData 创建两名测试人员并返回清理函数
func setupTestData(t *testing.T) (s1, s2 *model.Staff, cleanup func()) {
	t.Helper()
	ctx := context.Background()

	s1 = &model.Staff{
		Name:     fmt.Sprintf("佐藤テスト-%d", time.Now().UnixNano()),
		NameKana: "サトウテスト",
		Company:  "テスト二次店A",
	}
	if err := testDB.WithContext(ctx).Create(s1).Error; err != nil {
		t.Fatalf("创建人员失败: %v", err)
	}

	s2 = &model.Staff{
		Name:     fmt.Sprintf("鈴木テスト-%d", time.Now().UnixNano()),
		NameKana: "スズキテスト",
		Company:  "テスト二次店B",
	}
	if err := testDB.WithContext(ctx).Create(s2).Error; err != nil {
		t.Fatalf("创建人员失败: %v", err)
	}

	cleanup = func() {
		testDB.Unscoped().Where("staff_id = ?", s1.StaffID).Delete(&model.Staff{})
		testDB.Unscoped().Where("staff_id = ?", s2.StaffID).Delete(&model.Staff{})
	}
	return
}

// cleanupPeriod 清空某期间的班次与希望申告行
func cleanupPeriod(key model.PeriodKey) {
	testDB.Unscoped().Where("year = ? AND month = ?", key.Year, key.Month).Delete(&model.ShiftRecord{})
	testDB.Unscoped().Where("year = ? AND month = ?", key.Year, key.Month).Delete(&model.StaffRequest{})
	testDB.Unscoped().Where("year = ? AND month = ?", key.Year, key.Month).Delete(&model.SubmissionState{})
}

// ═══════════════════════════════════════════════════════════
// Test: Shift Canonical Round Trip
// ═══════════════════════════════════════════════════════════

func TestShiftRepo_SetThenGet(t *testing.T) {
	s1, s2, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()
	key := model.PeriodKey{Year: 2091, Month: 6}
	defer cleanupPeriod(key)

	data := &store.PeriodData{
		Shifts: []model.ShiftRecord{
			{StaffID: s1.StaffID, ShiftDate: "2091-06-12", Status: model.ShiftStatusAttend},
			{StaffID: s2.StaffID, ShiftDate: "2091-06-13", Status: model.ShiftStatusDecline},
		},
		Requests: []model.StaffRequest{
			{StaffID: s1.StaffID, TotalRequestCount: 18, WeekendRequestCount: 3, RequestText: "平日のみ希望"},
		},
	}
	if err := repo.Shift.Set(ctx, key, data); err != nil {
		t.Fatalf("Set 失败: %v", err)
	}

	got, err := repo.Shift.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get 失败: %v", err)
	}
	if len(got.Shifts) != 2 {
		t.Fatalf("期望 2 条班次记录，得到 %d 条", len(got.Shifts))
	}
	if len(got.Requests) != 1 {
		t.Fatalf("期望 1 条希望申告，得到 %d 条", len(got.Requests))
	}
	for _, s := range got.Shifts {
		if s.Year != key.Year || s.Month != key.Month {
			t.Errorf("期间字段应由 Set 统一盖章: got %d-%d", s.Year, s.Month)
		}
	}
	if got.Requests[0].RequestText != "平日のみ希望" {
		t.Errorf("希望申告文本不匹配: %q", got.Requests[0].RequestText)
	}
}

func TestShiftRepo_SetReplacesPeriod(t *testing.T) {
	s1, _, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()
	key := model.PeriodKey{Year: 2091, Month: 7}
	defer cleanupPeriod(key)

	first := &store.PeriodData{
		Shifts: []model.ShiftRecord{
			{StaffID: s1.StaffID, ShiftDate: "2091-07-01", Status: model.ShiftStatusAttend},
			{StaffID: s1.StaffID, ShiftDate: "2091-07-02", Status: model.ShiftStatusAttend},
		},
	}
	if err := repo.Shift.Set(ctx, key, first); err != nil {
		t.Fatalf("第一次 Set 失败: %v", err)
	}

	// 整期替换：旧行应被清除
	second := &store.PeriodData{
		Shifts: []model.ShiftRecord{
			{StaffID: s1.StaffID, ShiftDate: "2091-07-03", Status: model.ShiftStatusUndecided},
		},
	}
	if err := repo.Shift.Set(ctx, key, second); err != nil {
		t.Fatalf("第二次 Set 失败: %v", err)
	}

	got, err := repo.Shift.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get 失败: %v", err)
	}
	if len(got.Shifts) != 1 {
		t.Fatalf("替换后期望 1 条记录，得到 %d 条", len(got.Shifts))
	}
	if got.Shifts[0].ShiftDate != "2091-07-03" {
		t.Errorf("替换后日期不匹配: %s", got.Shifts[0].ShiftDate)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Submission State (create-or-update + version)
// ═══════════════════════════════════════════════════════════

func TestSubmissionRepo_SetStatus_CreateThenUpdate(t *testing.T) {
	repo := repository.NewRepository(testDB)
	ctx := context.Background()
	key := model.PeriodKey{Year: 2091, Month: 8}
	defer cleanupPeriod(key)

	// 首次写入走创建路径
	if err := repo.Submission.SetStatus(ctx, key, model.SubmissionSubmitted); err != nil {
		t.Fatalf("创建状态行失败: %v", err)
	}
	state, err := repo.Submission.GetByPeriod(ctx, key)
	if err != nil {
		t.Fatalf("GetByPeriod 失败: %v", err)
	}
	if state.Status != model.SubmissionSubmitted {
		t.Errorf("期望 submitted，得到 %s", state.Status)
	}
	if state.Version != 1 {
		t.Errorf("初始 version 应为 1，得到 %d", state.Version)
	}

	// 再次写入走乐观锁更新路径，version 递增
	if err := repo.Submission.SetStatus(ctx, key, model.SubmissionPendingApproval); err != nil {
		t.Fatalf("更新状态行失败: %v", err)
	}
	if err := repo.Submission.SetStatus(ctx, key, model.SubmissionApproved); err != nil {
		t.Fatalf("更新状态行失败: %v", err)
	}

	final, _ := repo.Submission.GetByPeriod(ctx, key)
	if final.Status != model.SubmissionApproved {
		t.Errorf("期望 approved，得到 %s", final.Status)
	}
	if final.Version != 3 {
		t.Errorf("期望 version=3，得到 %d", final.Version)
	}
}

func TestSubmissionRepo_List_OrderedByPeriod(t *testing.T) {
	repo := repository.NewRepository(testDB)
	ctx := context.Background()
	k1 := model.PeriodKey{Year: 2092, Month: 11}
	k2 := model.PeriodKey{Year: 2092, Month: 3}
	defer cleanupPeriod(k1)
	defer cleanupPeriod(k2)

	if err := repo.Submission.SetStatus(ctx, k1, model.SubmissionSubmitted); err != nil {
		t.Fatalf("写入状态行失败: %v", err)
	}
	if err := repo.Submission.SetStatus(ctx, k2, model.SubmissionDraft); err != nil {
		t.Fatalf("写入状态行失败: %v", err)
	}

	states, err := repo.Submission.List(ctx)
	if err != nil {
		t.Fatalf("List 失败: %v", err)
	}
	// 全表按期间升序；仅校验本测试创建的两行的相对顺序
	pos := map[model.PeriodKey]int{}
	for i, s := range states {
		pos[s.PeriodKey()] = i
	}
	if pos[k2] >= pos[k1] {
		t.Errorf("期望 %s 排在 %s 之前", k2.String(), k1.String())
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Change-Request Ledger
// ═══════════════════════════════════════════════════════════

func TestChangeRequestRepo_AppendAndReview(t *testing.T) {
	s1, _, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()
	key := model.PeriodKey{Year: 2091, Month: 9}

	cr := &model.ChangeRequest{
		ChangeRequestID: uuid.NewString(),
		Year:            key.Year,
		Month:           key.Month,
		Reason:          "体調不良のため",
		Status:          model.ChangeRequestPending,
		RequestedAt:     time.Now(),
		StaffCount:      1,
		TotalChanges:    2,
	}
	err := cr.SetStaffChanges([]model.StaffChanges{{
		StaffID:   s1.StaffID,
		StaffName: s1.Name,
		Changes: []model.FieldChange{
			{Date: "2091-09-12", Field: model.FieldStatus, OldValue: model.ShiftStatusAttend, NewValue: model.ShiftStatusDecline},
			{Date: "", Field: model.FieldTotalRequestCount, OldValue: "20", NewValue: "18"},
		},
	}})
	if err != nil {
		t.Fatalf("SetStaffChanges 失败: %v", err)
	}

	if err := repo.ChangeRequest.Append(ctx, cr); err != nil {
		t.Fatalf("Append 失败: %v", err)
	}
	defer testDB.Unscoped().Where("change_request_id = ?", cr.ChangeRequestID).Delete(&model.ChangeRequest{})

	// JSONB 载荷往返：空 date 原样保留
	got, err := repo.ChangeRequest.GetByID(ctx, cr.ChangeRequestID)
	if err != nil {
		t.Fatalf("GetByID 失败: %v", err)
	}
	payload, err := got.StaffChanges()
	if err != nil {
		t.Fatalf("解析载荷失败: %v", err)
	}
	if len(payload) != 1 || len(payload[0].Changes) != 2 {
		t.Fatalf("载荷结构不匹配: %+v", payload)
	}
	if payload[0].Changes[1].Date != "" {
		t.Errorf("非日期维度变更的 date 应为空串，得到 %q", payload[0].Changes[1].Date)
	}

	// 按期间过滤列表
	list, total, err := repo.ChangeRequest.List(ctx, &key, "", 0, 10)
	if err != nil {
		t.Fatalf("List 失败: %v", err)
	}
	if total < 1 || len(list) < 1 {
		t.Fatalf("期望至少 1 条申请，得到 total=%d len=%d", total, len(list))
	}

	// 审批：pending → approved
	if err := repo.ChangeRequest.SetStatus(ctx, cr.ChangeRequestID, model.ChangeRequestApproved, "確認しました"); err != nil {
		t.Fatalf("SetStatus 失败: %v", err)
	}
	reviewed, _ := repo.ChangeRequest.GetByID(ctx, cr.ChangeRequestID)
	if reviewed.Status != model.ChangeRequestApproved {
		t.Errorf("期望 approved，得到 %s", reviewed.Status)
	}
	if reviewed.ReviewedAt == nil {
		t.Error("ReviewedAt 应已设置")
	}

	// 已终态的申请不可再次审批
	err = repo.ChangeRequest.SetStatus(ctx, cr.ChangeRequestID, model.ChangeRequestRejected, "")
	if !errors.Is(err, store.ErrChangeRequestFinalized) {
		t.Errorf("期望 ErrChangeRequestFinalized，得到: %v", err)
	}
}

func TestChangeRequestRepo_GetByID_NotFound(t *testing.T) {
	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	_, err := repo.ChangeRequest.GetByID(ctx, uuid.NewString())
	if !errors.Is(err, store.ErrChangeRequestNotFound) {
		t.Errorf("期望 ErrChangeRequestNotFound，得到: %v", err)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Roster Names (soft-delete aware)
// ═══════════════════════════════════════════════════════════

func TestStaffRepo_Names_SkipsDeleted(t *testing.T) {
	s1, s2, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	// 软删除第二名人员
	if err := repo.Staff.Delete(ctx, s2.StaffID); err != nil {
		t.Fatalf("软删除失败: %v", err)
	}

	names, err := repo.Staff.Names(ctx, []string{s1.StaffID, s2.StaffID})
	if err != nil {
		t.Fatalf("Names 失败: %v", err)
	}
	if _, ok := names[s1.StaffID]; !ok {
		t.Error("在册人员应出现在名册结果中")
	}
	if _, ok := names[s2.StaffID]; ok {
		t.Error("软删除人员不应出现在名册结果中")
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Notification
// ═══════════════════════════════════════════════════════════

func TestNotificationRepo_MarkRead(t *testing.T) {
	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	relatedID := uuid.NewString()
	n := &model.Notification{
		Type:      model.NotificationChangeRequest,
		Title:     "シフト変更申請",
		Content:   "2091年10月分のシフト変更申請が提出されました",
		RelatedID: &relatedID,
	}
	if err := repo.Notification.Create(ctx, n); err != nil {
		t.Fatalf("创建通知失败: %v", err)
	}
	defer testDB.Unscoped().Where("notification_id = ?", n.NotificationID).Delete(&model.Notification{})

	unread, _, err := repo.Notification.List(ctx, true, 0, 100)
	if err != nil {
		t.Fatalf("List 失败: %v", err)
	}
	found := false
	for _, item := range unread {
		if item.NotificationID == n.NotificationID {
			found = true
		}
	}
	if !found {
		t.Fatal("新建通知应出现在未读列表中")
	}

	if err := repo.Notification.MarkRead(ctx, n.NotificationID); err != nil {
		t.Fatalf("MarkRead 失败: %v", err)
	}
	unread, _, _ = repo.Notification.List(ctx, true, 0, 100)
	for _, item := range unread {
		if item.NotificationID == n.NotificationID {
			t.Fatal("已读通知不应出现在未读列表中")
		}
	}
}
