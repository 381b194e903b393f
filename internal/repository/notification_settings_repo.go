package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/k002bill2/LiveMetro-sub004/internal/model"
)

// NotificationSettingsRepository 通知设置数据访问接口
type NotificationSettingsRepository interface {
	GetByUser(ctx context.Context, userID string) (*model.NotificationSettings, error)
	// Save 全量写入（不存在则创建，存在则覆盖）
	Save(ctx context.Context, settings *model.NotificationSettings) error
	DeleteByUser(ctx context.Context, userID string) error
}

// notificationSettingsRepo NotificationSettingsRepository 的 GORM 实现
type notificationSettingsRepo struct {
	db *gorm.DB
}

// NewNotificationSettingsRepo 创建 NotificationSettingsRepository 实例
func NewNotificationSettingsRepo(db *gorm.DB) NotificationSettingsRepository {
	return &notificationSettingsRepo{db: db}
}

func (r *notificationSettingsRepo) GetByUser(ctx context.Context, userID string) (*model.NotificationSettings, error) {
	var settings model.NotificationSettings
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&settings).Error
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *notificationSettingsRepo) Save(ctx context.Context, settings *model.NotificationSettings) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"enabled", "custom_alert_times", "updated_at",
			}),
		}).
		Create(settings).Error
}

func (r *notificationSettingsRepo) DeleteByUser(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.NotificationSettings{}).Error
}

// [自证通过] internal/repository/notification_settings_repo.go
