package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"terminal-terrace/editorial/internal/dto"
	"terminal-terrace/editorial/pkg/authsdk"
	"terminal-terrace/editorial/pkg/response"
)

// 上下文中保存的用户信息键
const (
	UserIDKey   = "user_id"
	UsernameKey = "username"
	EmailKey    = "email"
)

// JWTAuth JWT 认证中间件（必需认证）
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := authsdk.ExtractToken(c.Request)
		if err == nil {
			var user *authsdk.UserContext
			if user, err = authsdk.ParseToken(token, secret); err == nil {
				setUser(c, user)
				c.Next()
				return
			}
		}

		msg := "无效的认证令牌"
		switch {
		case errors.Is(err, authsdk.ErrNoToken):
			msg = "未提供认证令牌"
		case errors.Is(err, authsdk.ErrExpiredToken):
			msg = "认证令牌已过期"
		}
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.Unauthorized),
			response.WithErrorMessage(msg),
		))
		c.Abort()
	}
}

// OptionalJWTAuth 可选的 JWT 认证中间件（不强制要求认证，但如果有token则解析）
func OptionalJWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user := authsdk.GetUserFromRequest(c.Request, secret); !user.Anonymous() {
			setUser(c, user)
		}
		c.Next()
	}
}

func setUser(c *gin.Context, user *authsdk.UserContext) {
	c.Set(UserIDKey, user.UserID)
	c.Set(UsernameKey, user.Username)
	c.Set(EmailKey, user.Email)
}

// CallerID 当前用户 id，未登录为空字符串
func CallerID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}
