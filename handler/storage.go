package handler

import (
	"io"
	"net/http"

	"studybuddy/config"
	"studybuddy/middleware"
	"studybuddy/pkg/context"
	"studybuddy/pkg/log"
	"studybuddy/pkg/response"
	"studybuddy/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Storage struct {
	Config         *config.Config
	StorageService service.IStorageService
}

func (s *Storage) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(s.Config.Jwt.Secret))
	g := r.Group("/v1/storage")
	g.POST("/:bucket/*path", authorize, context.Wrap(s.Upload))
	g.DELETE("/:bucket/*path", authorize, context.Wrap(s.Remove))
}

// RegisterPublic 公开地址挂在根路由, 与 storageref.PublicURL 对应
func (s *Storage) RegisterPublic(r gin.IRouter) {
	r.GET("/storage/v1/object/public/:bucket/*path", context.Wrap(s.Download))
}

// Upload 表单字段 file
func (s *Storage) Upload(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, err.Error())
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.Config.Storage.MaxUploadBytes+1<<20)
	header, err := c.FormFile("file")
	if err != nil {
		return response.NewError(http.StatusBadRequest, "缺少文件: "+err.Error())
	}
	resp, err := s.StorageService.Upload(c.Request.Context(), uid, c.Param("bucket"), c.Param("path"), header)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, resp)
	return nil
}

func (s *Storage) Remove(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, err.Error())
	}
	if err := s.StorageService.Remove(c.Request.Context(), uid, c.Param("bucket"), c.Param("path")); err != nil {
		return bizError(err)
	}
	response.Success(c, nil)
	return nil
}

// Download 流式返回对象内容
func (s *Storage) Download(c *gin.Context) error {
	rc, err := s.StorageService.Open(c.Request.Context(), c.Param("bucket"), c.Param("path"))
	if err != nil {
		return bizError(err)
	}
	defer rc.Close()

	c.Header("Content-Type", "application/pdf")
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, rc); err != nil {
		log.L.Warn("stream object", zap.String("path", c.Param("path")), zap.Error(err))
	}
	return nil
}
