package context

import (
	"errors"
	"net/http"

	"studybuddy/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	CtxUserID = "user_id"
	CtxEmail  = "email"
)

type HandlerFunc func(*gin.Context) error

func Wrap(h func(*gin.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h(c); err != nil {

			// 如果已经写过响应，直接返回
			if c.Writer.Written() {
				return
			}
			var be *response.BizError
			if errors.As(err, &be) {
				response.Fail(c, be.Code, be.Msg)
				return
			}
			response.Fail(c, http.StatusInternalServerError, err.Error())
		}
	}
}

func GetUserID(c *gin.Context) (string, error) {
	v, ok := c.Get(CtxUserID)
	if !ok {
		return "", errors.New("user_id missing")
	}

	uid, ok := v.(string)
	if !ok || uid == "" {
		return "", errors.New("user_id has wrong type")
	}

	return uid, nil
}

func GetEmail(c *gin.Context) string {
	return c.GetString(CtxEmail)
}
