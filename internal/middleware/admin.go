package middleware

import (
	"context"
	"yatube-backend/internal/errors"
	"yatube-backend/internal/model"
	"yatube-backend/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserLookup 按ID查询用户
type UserLookup interface {
	GetUserByID(ctx context.Context, id int) (*model.User, error)
}

// AdminMiddleware 确保只有管理员可以访问某些路由，需在 AuthMiddleware 之后使用
func AdminMiddleware(users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		util.Logger.Info("进入管理员中间件",
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method))

		userID, exists := c.Get(UserIDKey)
		if !exists {
			util.Logger.Warn("用户ID不存在")
			errors.HandleError(c, errors.New(errors.ErrUnauthorized, "需要认证"))
			c.Abort()
			return
		}

		user, err := users.GetUserByID(c.Request.Context(), userID.(int))
		if err != nil || !user.IsAdmin() {
			util.Logger.Warn("非管理员访问",
				zap.Int("user_id", userID.(int)),
				zap.Error(err))
			errors.HandleError(c, errors.New(errors.ErrForbidden, "需要管理员权限"))
			c.Abort()
			return
		}

		util.Logger.Info("管理员验证通过",
			zap.Int("user_id", userID.(int)))
		c.Next()
	}
}
