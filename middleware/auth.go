package middleware

import (
	"context"
	"net/http"
	"strings"

	"studybuddy/pkg/jwt"
	"studybuddy/pkg/log"
	"studybuddy/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func Auth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Abort(c, http.StatusUnauthorized, "缺少 Authorization")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Abort(c, http.StatusUnauthorized, "Authorization 格式错误")
			return
		}

		claims, err := jwt.ParseToken(secret, jwt.TokenTypeAccess, parts[1])
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, err.Error())
			return
		}
		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)

		c.Next()
	}
}

// RequireAdmin 必须放在 Auth 之后; 角色每次回源查询, 改角色立即生效
func RequireAdmin(isAdmin func(ctx context.Context, userID string) (bool, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("user_id")
		ok, err := isAdmin(c.Request.Context(), uid)
		if err != nil {
			log.L.Error("check admin", zap.String("user_id", uid), zap.Error(err))
			response.Abort(c, http.StatusInternalServerError, "服务异常")
			return
		}
		if !ok {
			response.Abort(c, http.StatusForbidden, "需要管理员权限")
			return
		}
		c.Next()
	}
}
