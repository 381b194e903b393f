package dto

// ── 实时地铁 DTO ──

// ArrivalResponse 单条实时到站信息
type ArrivalResponse struct {
	StationName string `json:"station_name"`
	LineID      string `json:"line_id"`
	Direction   string `json:"direction"` // 상행 | 하행 | 내선 | 외선
	Destination string `json:"destination"`
	Message     string `json:"message"`     // 도착 안내 원문（예: "전역 출발"）
	SecondsLeft int    `json:"seconds_left"` // 预计到站秒数，0 表示未知
	ReceivedAt  string `json:"received_at"`
}

// LineDelayStatus 单条线路的延误状态
type LineDelayStatus struct {
	LineID       string `json:"line_id"`
	LineName     string `json:"line_name"`
	IsDelayed    bool   `json:"is_delayed"`
	DelayMinutes int    `json:"delay_minutes,omitempty"`
	Reason       string `json:"reason,omitempty"`
	Error        string `json:"error,omitempty"` // 该线路本轮查询失败的原因（不影响其他线路）
	CheckedAt    string `json:"checked_at"`
}

// DelaySnapshotResponse 最近一次轮询的全网延误快照
type DelaySnapshotResponse struct {
	UpdatedAt string            `json:"updated_at"` // 空字符串表示尚未完成首轮轮询
	Lines     []LineDelayStatus `json:"lines"`
}

// [自证通过] internal/dto/subway.go
