package authsdk

import (
	"net/http"
	"strings"
)

// AccessTokenCookie 前端写入的 token cookie 名称
const AccessTokenCookie = "access_token"

// ExtractToken 从 HTTP 请求中提取 JWT token
// 支持两种方式：
// 1. access_token cookie
// 2. Authorization header (Bearer token)
func ExtractToken(r *http.Request) (string, error) {
	if cookie, err := r.Cookie(AccessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	header := r.Header.Get("Authorization")
	if header == "" {
		return "", ErrNoToken
	}
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer "), nil
	}
	return header, nil
}

// GetUserFromRequest 从请求中获取用户信息
// 如果没有 token 或解析失败，返回空的 UserContext（UserID 为空）
func GetUserFromRequest(r *http.Request, secret string) *UserContext {
	token, err := ExtractToken(r)
	if err != nil {
		return &UserContext{}
	}

	user, err := ParseToken(token, secret)
	if err != nil {
		return &UserContext{}
	}
	return user
}
