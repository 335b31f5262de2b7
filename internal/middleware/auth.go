package middleware

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"
	"yatube-backend/internal/errors"
	"yatube-backend/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// 上下文中保存当前用户信息的键
const (
	UserIDKey = "user_id"
	TokenKey  = "token"
)

// TokenChecker 判断令牌是否已注销
type TokenChecker interface {
	IsTokenBlacklisted(token string) bool
}

// bearerToken 取出 Authorization 头中的令牌，没有时返回空串
func bearerToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", nil
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if !(len(parts) == 2 && parts[0] == "Bearer") || parts[1] == "" {
		return "", errors.New(errors.ErrInvalidToken, "无效的认证格式")
	}
	return parts[1], nil
}

func authenticate(checker TokenChecker, token string) (int, error) {
	if checker.IsTokenBlacklisted(token) {
		return 0, errors.New(errors.ErrInvalidToken, "令牌已被撤销")
	}
	userID, err := util.ValidateToken(token)
	if err != nil {
		return 0, errors.Wrap(errors.ErrInvalidToken, "无效或过期的令牌", err)
	}
	return userID, nil
}

// loginRedirect 未登录时跳转到登录页，并带上原地址
func loginRedirect(c *gin.Context, loginURL string) {
	target := loginURL + "?next=" + url.QueryEscape(c.Request.URL.RequestURI())
	util.Logger.Info("未登录，跳转到登录页",
		zap.String("path", c.Request.URL.Path),
		zap.String("redirect", target))
	c.Redirect(http.StatusFound, target)
	c.Abort()
}

// AuthMiddleware 要求登录。没有令牌时重定向到登录页，令牌无效时返回 401
func AuthMiddleware(checker TokenChecker, loginURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		util.Logger.Debug("进入认证中间件",
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method))

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)

		token, err := bearerToken(c)
		if err != nil {
			errors.HandleError(c, err)
			c.Abort()
			return
		}
		if token == "" {
			loginRedirect(c, loginURL)
			return
		}

		userID, err := authenticate(checker, token)
		if err != nil {
			errors.HandleError(c, err)
			c.Abort()
			return
		}

		c.Set(UserIDKey, userID)
		c.Set(TokenKey, token)

		select {
		case <-ctx.Done():
			errors.HandleError(c, errors.New(errors.ErrTimeout, "请求超时"))
			c.Abort()
			return
		default:
			c.Next()
		}
	}
}

// OptionalAuth 有有效令牌时设置当前用户，否则按匿名用户继续
func OptionalAuth(checker TokenChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c)
		if err == nil && token != "" {
			if userID, err := authenticate(checker, token); err == nil {
				c.Set(UserIDKey, userID)
				c.Set(TokenKey, token)
			}
		}
		c.Next()
	}
}

// CurrentUserID 当前用户ID，匿名用户为 0
func CurrentUserID(c *gin.Context) int {
	return c.GetInt(UserIDKey)
}
