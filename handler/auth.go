package handler

import (
	"net/http"

	"studybuddy/config"
	"studybuddy/middleware"
	"studybuddy/pkg/context"
	"studybuddy/pkg/response"
	"studybuddy/service"
	"studybuddy/types"

	"github.com/gin-gonic/gin"
)

type Auth struct {
	Config      *config.Config
	AuthService service.IAuthService
}

func (u *Auth) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(u.Config.Jwt.Secret))
	g := r.Group("/v1/auth")
	g.POST("/signup", context.Wrap(u.SignUp))
	g.GET("/confirm", context.Wrap(u.Confirm))
	g.POST("/signin", context.Wrap(u.SignIn))
	g.POST("/reset-password", context.Wrap(u.RequestPasswordReset))
	g.POST("/reset-password/confirm", context.Wrap(u.ResetPassword))
	g.POST("/password", authorize, context.Wrap(u.UpdatePassword))
	g.GET("/profile", authorize, context.Wrap(u.Profile))
}

// SignUp 注册
func (u *Auth) SignUp(c *gin.Context) error {
	var req types.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return badRequest(err)
	}
	profile, err := u.AuthService.SignUp(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, service.ToProfileResponse(profile))
	return nil
}

// Confirm 邮箱确认链接
func (u *Auth) Confirm(c *gin.Context) error {
	token := c.Query("token")
	if token == "" {
		return response.NewError(http.StatusBadRequest, "token 不能为空")
	}
	if err := u.AuthService.Confirm(c.Request.Context(), token); err != nil {
		return bizError(err)
	}
	response.Success(c, nil)
	return nil
}

// SignIn 登录, 返回访问令牌
func (u *Auth) SignIn(c *gin.Context) error {
	var req types.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return badRequest(err)
	}
	resp, err := u.AuthService.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, resp)
	return nil
}

func (u *Auth) RequestPasswordReset(c *gin.Context) error {
	var req types.PasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return badRequest(err)
	}
	if err := u.AuthService.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		return bizError(err)
	}
	response.Success(c, nil)
	return nil
}

func (u *Auth) ResetPassword(c *gin.Context) error {
	var req types.PasswordResetConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return badRequest(err)
	}
	if err := u.AuthService.ResetPassword(c.Request.Context(), req.Token, req.Password); err != nil {
		return bizError(err)
	}
	response.Success(c, nil)
	return nil
}

func (u *Auth) UpdatePassword(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, err.Error())
	}
	var req types.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return badRequest(err)
	}
	if err := u.AuthService.UpdatePassword(c.Request.Context(), uid, req.Password); err != nil {
		return bizError(err)
	}
	response.Success(c, nil)
	return nil
}

func (u *Auth) Profile(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, err.Error())
	}
	profile, err := u.AuthService.Profile(c.Request.Context(), uid)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, service.ToProfileResponse(profile))
	return nil
}
