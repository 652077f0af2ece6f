// Package handler はauthフィーチャーのHTTPハンドラを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"prep_tracker/internal/api"
	"prep_tracker/internal/feature/auth/domain/entity"
	"prep_tracker/internal/feature/auth/transport/http/dto"
	"prep_tracker/internal/feature/auth/usecase"
	jwtmw "prep_tracker/internal/platform/jwt"
)

// AuthUsecase は認証処理のインターフェースです。
// Goの慣例に従い、利用側（handler）で定義します。
type AuthUsecase interface {
	Register(ctx context.Context, username, password string) (*usecase.Session, error)
	Login(ctx context.Context, username, password string) (*usecase.Session, error)
	Logout(ctx context.Context, tokenID string, expiresAt time.Time) error
	Me(ctx context.Context, userID uint) (*entity.User, error)
}

// AuthHandler は認証関連のHTTPリクエストを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerを生成します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register handles POST /api/register.
// - 不正なボディ、長さの範囲外、使用済みのユーザー名: 400
// - 成功時: 201（トークンと公開ユーザー情報）
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: registerBindMessage(err)})
		return
	}

	session, err := h.auth.Register(c.Request.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, usecase.ErrUsernameTaken),
		errors.Is(err, usecase.ErrInvalidUsername),
		errors.Is(err, usecase.ErrInvalidPassword):
		slog.Warn("register rejected", "error", err, "username", req.Username, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	case err != nil:
		slog.Error("register failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: api.MsgInternal})
		return
	}

	slog.Info("user registered", "user_id", session.User.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, toAuthRes(session))
}

// Login handles POST /api/login.
// - 不正なボディ: 400
// - 認証失敗: 401（どちらが誤っているかは返さない）
// - 成功時: 200（トークンと公開ユーザー情報）
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "username and password are required"})
		return
	}

	session, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, usecase.ErrInvalidCredentials):
		slog.Warn("login failed", "username", req.Username, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: usecase.ErrInvalidCredentials.Error()})
		return
	case err != nil:
		slog.Error("login failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: api.MsgInternal})
		return
	}

	slog.Info("user login successful", "user_id", session.User.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, toAuthRes(session))
}

// Logout handles POST /api/logout. 提示されたトークンは即座に無効になります。
func (h *AuthHandler) Logout(c *gin.Context) {
	tokenID, expiresAt, ok := jwtmw.Token(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: api.MsgUnauthorized})
		return
	}
	if err := h.auth.Logout(c.Request.Context(), tokenID, expiresAt); err != nil {
		slog.Error("logout failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: api.MsgInternal})
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "logged out"})
}

// Me handles GET /api/user.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: api.MsgUnauthorized})
		return
	}
	user, err := h.auth.Me(c.Request.Context(), userID)
	switch {
	case errors.Is(err, usecase.ErrUserNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: usecase.ErrUserNotFound.Error()})
		return
	case err != nil:
		slog.Error("user lookup failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: api.MsgInternal})
		return
	}
	c.JSON(http.StatusOK, dto.UserRes{ID: user.ID, Username: user.Username})
}

func toAuthRes(s *usecase.Session) dto.AuthRes {
	return dto.AuthRes{
		Token: s.Token,
		User:  dto.UserRes{ID: s.User.ID, Username: s.User.Username},
	}
}
