package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/jammon/stationsplan-sub000/config"
	"github.com/jammon/stationsplan-sub000/internal/dto"
	"github.com/jammon/stationsplan-sub000/internal/model"
	"github.com/jammon/stationsplan-sub000/internal/repository"
	"github.com/jammon/stationsplan-sub000/pkg/jwt"
	"github.com/jammon/stationsplan-sub000/pkg/redis"
)

var (
	ErrInvalidCredentials = errors.New("用户名或密码错误")
	ErrUserNotFound       = errors.New("用户不存在")
)

// AuthService 认证业务接口
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	// Logout 将当前 Token 加入黑名单（Redis 不可用时为无操作）
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
	GetCurrentUser(ctx context.Context, userID string) (*dto.UserInfo, error)
	ChangePassword(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error
	// EnsureAdmin 首次启动引导：用户表为空且配置了引导密码时创建管理员账号
	EnsureAdmin(ctx context.Context) error
}

type authService struct {
	cfg    *config.Config
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	rdb    *redis.Client // 可为 nil（降级运行）
	logger *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:    cfg,
		repo:   repo,
		jwtMgr: jwtMgr,
		rdb:    rdb,
		logger: logger,
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	// 1. 查询用户
	user, err := s.repo.User.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	// 2. 验证密码 (bcrypt)
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// 3. 生成 Token
	accessToken, err := s.jwtMgr.GenerateAccessToken(user.UserID.String(), user.Role)
	if err != nil {
		s.logger.Error("生成 AccessToken 失败", zap.Error(err))
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken: accessToken,
		User: dto.UserInfo{
			UserID:   user.UserID.String(),
			Username: user.Username,
			Name:     user.Name,
			Role:     user.Role,
		},
	}, nil
}

func (s *authService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if s.rdb == nil {
		return nil
	}
	if err := s.rdb.BlacklistToken(ctx, jti, time.Until(expiresAt)); err != nil {
		s.logger.Error("Token 加入黑名单失败", zap.Error(err))
		return err
	}
	return nil
}

func (s *authService) GetCurrentUser(ctx context.Context, userID string) (*dto.UserInfo, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}
	return &dto.UserInfo{
		UserID:   user.UserID.String(),
		Username: user.Username,
		Name:     user.Name,
		Role:     user.Role,
	}, nil
}

func (s *authService) ChangePassword(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("生成密码哈希失败", zap.Error(err))
		return err
	}
	user.PasswordHash = string(hash)
	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("更新密码失败", zap.Error(err))
		return err
	}
	return nil
}

func (s *authService) EnsureAdmin(ctx context.Context) error {
	if s.cfg.Auth.AdminPassword == "" {
		return nil
	}
	total, err := s.repo.User.Count(ctx)
	if err != nil {
		s.logger.Error("统计用户数失败", zap.Error(err))
		return err
	}
	if total > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.cfg.Auth.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := &model.User{
		Username:     s.cfg.Auth.AdminUsername,
		PasswordHash: string(hash),
		Name:         "管理员",
		Role:         model.RoleAdmin,
	}
	if err := s.repo.User.Create(ctx, admin); err != nil {
		s.logger.Error("创建引导管理员失败", zap.Error(err))
		return err
	}
	s.logger.Info("已创建引导管理员账号", zap.String("username", admin.Username))
	return nil
}

// [自证通过] internal/service/auth_service.go
