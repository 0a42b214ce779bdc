package handler

import (
	"errors"
	"net/http"

	"studybuddy/pkg/log"
	"studybuddy/pkg/response"
	"studybuddy/service"

	"go.uber.org/zap"
)

// bizError 把 service 层的哨兵错误映射成带 HTTP 状态码的 BizError
func bizError(err error) error {
	switch {
	case errors.Is(err, service.ErrNoteNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrObjectNotFound):
		return response.NewError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrForbidden):
		return response.NewError(http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrNotConfirmed):
		return response.NewError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrEmailTaken):
		return response.NewError(http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrFileTooLarge):
		return response.NewError(http.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, service.ErrNotPDF):
		return response.NewError(http.StatusUnsupportedMediaType, err.Error())
	case errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrInvalidNote),
		errors.Is(err, service.ErrInvalidPath):
		return response.NewError(http.StatusBadRequest, err.Error())
	}
	log.L.Error("internal error", zap.Error(err))
	return response.NewError(http.StatusInternalServerError, "服务异常")
}

func badRequest(err error) error {
	return response.NewError(http.StatusBadRequest, "参数格式错误: "+err.Error())
}
