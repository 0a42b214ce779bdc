package handler

import (
	"studybuddy/config"
	"studybuddy/middleware"
	"studybuddy/pkg/context"
	"studybuddy/pkg/response"
	"studybuddy/service"
	"studybuddy/types"

	"github.com/gin-gonic/gin"
)

type Admin struct {
	Config       *config.Config
	AdminService service.IAdminService
}

func (a *Admin) RegisterRouter(r gin.IRouter) {
	g := r.Group("/v1/admin",
		middleware.Auth([]byte(a.Config.Jwt.Secret)),
		middleware.RequireAdmin(a.AdminService.IsAdmin),
	)
	g.GET("/users", context.Wrap(a.Users))
	g.POST("/users/:id/role", context.Wrap(a.ToggleRole))
	g.DELETE("/users/:id/notes", context.Wrap(a.PurgeNotes))
}

// Users 用户列表及各自的笔记数
func (a *Admin) Users(c *gin.Context) error {
	users, err := a.AdminService.Users(c.Request.Context())
	if err != nil {
		return bizError(err)
	}
	response.Success(c, users)
	return nil
}

func (a *Admin) ToggleRole(c *gin.Context) error {
	id := c.Param("id")
	role, err := a.AdminService.ToggleRole(c.Request.Context(), id)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, types.ToggleRoleResponse{ID: id, Role: role})
	return nil
}

// PurgeNotes 删除用户全部笔记
func (a *Admin) PurgeNotes(c *gin.Context) error {
	resp, err := a.AdminService.PurgeNotes(c.Request.Context(), c.Param("id"))
	if err != nil {
		return bizError(err)
	}
	response.Success(c, resp)
	return nil
}
