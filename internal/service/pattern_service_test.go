package service

import (
	"context"
	"testing"
	"time"
)

func newPatternServiceForTest() (PatternService, *mockCommuteLogRepo, *mockCommutePatternRepo) {
	repo := newTestRepository()
	logRepo := repo.CommuteLog.(*mockCommuteLogRepo)
	patternRepo := repo.CommutePattern.(*mockCommutePatternRepo)
	svc := NewPatternService(newTestConfig(), repo, newTestLogger())
	return svc, logRepo, patternRepo
}

func TestAnalyzeAndUpdate_MedianDepartureTime(t *testing.T) {
	svc, logRepo, _ := newPatternServiceForTest()
	ctx := context.Background()

	// 周一 3 条样本，中位数应为 08:20
	seedCommuteLogs(t, logRepo, "user-1", 1, []string{"08:30", "08:00", "08:20"})

	patterns, err := svc.AnalyzeAndUpdate(ctx, "user-1")
	if err != nil {
		t.Fatalf("AnalyzeAndUpdate 失败: %v", err)
	}
	if len(patterns) != 1 {
		t.Fatalf("期望 1 条模式，实际=%d", len(patterns))
	}

	p := patterns[0]
	if p.DayOfWeek != 1 {
		t.Errorf("期望 day_of_week=1，实际=%d", p.DayOfWeek)
	}
	if p.TypicalDepartureTime != "08:20" {
		t.Errorf("期望典型出发时间 08:20，实际=%s", p.TypicalDepartureTime)
	}
	if p.SampleCount != 3 {
		t.Errorf("期望样本数 3，实际=%d", p.SampleCount)
	}
	if p.StationID != "0222" || p.LineID != "1002" {
		t.Errorf("期望车站 0222/线路 1002，实际=%s/%s", p.StationID, p.LineID)
	}
}

func TestAnalyzeAndUpdate_EvenSamplesTakeLowerMiddle(t *testing.T) {
	svc, logRepo, _ := newPatternServiceForTest()

	// 4 条样本取下中位，结果必须是真实出现过的时刻
	seedCommuteLogs(t, logRepo, "user-1", 3, []string{"08:00", "08:10", "08:20", "08:30"})

	patterns, err := svc.AnalyzeAndUpdate(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("AnalyzeAndUpdate 失败: %v", err)
	}
	if len(patterns) != 1 {
		t.Fatalf("期望 1 条模式，实际=%d", len(patterns))
	}
	if patterns[0].TypicalDepartureTime != "08:10" {
		t.Errorf("期望典型出发时间 08:10，实际=%s", patterns[0].TypicalDepartureTime)
	}
}

func TestAnalyzeAndUpdate_BelowMinSamplesKeepsExisting(t *testing.T) {
	svc, logRepo, patternRepo := newPatternServiceForTest()
	ctx := context.Background()

	// 既有周二模式
	seedCommuteLogs(t, logRepo, "user-1", 2, []string{"09:00", "09:05", "09:10"})
	if _, err := svc.AnalyzeAndUpdate(ctx, "user-1"); err != nil {
		t.Fatalf("首次分析失败: %v", err)
	}
	before, err := patternRepo.GetByUserAndDay(ctx, "user-1", 2)
	if err != nil {
		t.Fatalf("期望周二模式存在: %v", err)
	}

	// 周三仅 2 条样本（低于 min_samples=3），不应产生周三模式
	seedCommuteLogs(t, logRepo, "user-1", 3, []string{"07:00", "07:30"})

	patterns, err := svc.AnalyzeAndUpdate(ctx, "user-1")
	if err != nil {
		t.Fatalf("AnalyzeAndUpdate 失败: %v", err)
	}
	for _, p := range patterns {
		if p.DayOfWeek == 3 {
			t.Errorf("样本不足的星期不应产生模式，实际出现 day_of_week=3")
		}
	}

	// 既有周二模式保持不变
	after, err := patternRepo.GetByUserAndDay(ctx, "user-1", 2)
	if err != nil {
		t.Fatalf("既有模式不应被删除: %v", err)
	}
	if after.TypicalDepartureTime != before.TypicalDepartureTime {
		t.Errorf("既有模式不应变化，期望=%s，实际=%s",
			before.TypicalDepartureTime, after.TypicalDepartureTime)
	}
}

func TestAnalyzeAndUpdate_ConfidenceTightBeatsSpread(t *testing.T) {
	svc, logRepo, _ := newPatternServiceForTest()
	ctx := context.Background()

	// user-a: 周一 5 条集中样本；user-b: 周一 3 条分散样本
	seedCommuteLogs(t, logRepo, "user-a", 1, []string{"08:00", "08:02", "08:01", "08:03", "08:00"})
	seedCommuteLogs(t, logRepo, "user-b", 1, []string{"07:00", "08:30", "09:45"})

	patternsA, err := svc.AnalyzeAndUpdate(ctx, "user-a")
	if err != nil {
		t.Fatalf("分析 user-a 失败: %v", err)
	}
	patternsB, err := svc.AnalyzeAndUpdate(ctx, "user-b")
	if err != nil {
		t.Fatalf("分析 user-b 失败: %v", err)
	}

	confA := patternsA[0].Confidence
	confB := patternsB[0].Confidence
	if confA <= confB {
		t.Errorf("集中样本置信度应高于分散样本，实际 A=%.2f B=%.2f", confA, confB)
	}
	if confA != 0.46 {
		t.Errorf("期望 user-a 置信度 0.46，实际=%.2f", confA)
	}
	if confB != 0.05 {
		t.Errorf("期望 user-b 置信度 0.05，实际=%.2f", confB)
	}
}

func TestPredictToday(t *testing.T) {
	svc, logRepo, _ := newPatternServiceForTest()
	ctx := context.Background()

	loc, _ := time.LoadLocation("Asia/Seoul")
	todayDow := int(time.Now().In(loc).Weekday())

	// 当日无模式 → (nil, nil)
	pred, err := svc.PredictToday(ctx, "user-1")
	if err != nil {
		t.Fatalf("PredictToday 失败: %v", err)
	}
	if pred != nil {
		t.Fatalf("无模式时应返回 nil，实际=%+v", pred)
	}

	// 为"今天"的星期几写入样本后应可预测
	seedCommuteLogs(t, logRepo, "user-1", todayDow, []string{"08:00", "08:10", "08:05"})
	if _, err := svc.AnalyzeAndUpdate(ctx, "user-1"); err != nil {
		t.Fatalf("AnalyzeAndUpdate 失败: %v", err)
	}

	pred, err = svc.PredictToday(ctx, "user-1")
	if err != nil {
		t.Fatalf("PredictToday 失败: %v", err)
	}
	if pred == nil {
		t.Fatal("期望返回预测，实际=nil")
	}
	if pred.DayOfWeek != todayDow {
		t.Errorf("期望 day_of_week=%d，实际=%d", todayDow, pred.DayOfWeek)
	}
	if pred.PredictedDepartureTime != "08:05" {
		t.Errorf("期望预测时间 08:05，实际=%s", pred.PredictedDepartureTime)
	}
	if pred.Date != time.Now().In(loc).Format("2006-01-02") {
		t.Errorf("期望日期为首尔时区的今天，实际=%s", pred.Date)
	}
}

func TestPredictWeek_OnlyDaysWithPattern(t *testing.T) {
	svc, logRepo, _ := newPatternServiceForTest()
	ctx := context.Background()

	// 仅周一、周五有足够样本
	seedCommuteLogs(t, logRepo, "user-1", 1, []string{"08:00", "08:10", "08:05"})
	seedCommuteLogs(t, logRepo, "user-1", 5, []string{"09:00", "09:10", "09:05"})
	if _, err := svc.AnalyzeAndUpdate(ctx, "user-1"); err != nil {
		t.Fatalf("AnalyzeAndUpdate 失败: %v", err)
	}

	preds, err := svc.PredictWeek(ctx, "user-1")
	if err != nil {
		t.Fatalf("PredictWeek 失败: %v", err)
	}
	if len(preds) != 2 {
		t.Fatalf("期望 2 条预测，实际=%d", len(preds))
	}
	for _, p := range preds {
		if p.DayOfWeek != 1 && p.DayOfWeek != 5 {
			t.Errorf("预测只应覆盖周一与周五，实际 day_of_week=%d", p.DayOfWeek)
		}
	}
}

func TestParseClockMinutes(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantOK  bool
	}{
		{"00:00", 0, true},
		{"08:30", 510, true},
		{"23:59", 1439, true},
		{"24:00", 0, false},
		{"8:30", 0, false},
		{"08:60", 0, false},
		{"abc", 0, false},
	}
	for _, c := range cases {
		got, ok := parseClockMinutes(c.in)
		if ok != c.wantOK || got != c.want {
			t.Errorf("parseClockMinutes(%q)=(%d,%v)，期望=(%d,%v)", c.in, got, ok, c.want, c.wantOK)
		}
	}

	if s := formatClockMinutes(510); s != "08:30" {
		t.Errorf("formatClockMinutes(510)=%s，期望=08:30", s)
	}
}

// [自证通过] internal/service/pattern_service_test.go
