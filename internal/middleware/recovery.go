package middleware

import (
	"fmt"
	"yatube-backend/internal/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				traced := errors.NewTracedError(
					errors.Wrap(errors.ErrInternal, "系统内部错误", fmt.Errorf("panic: %v", r)),
					errors.ErrorContext{
						RequestID: c.GetHeader("X-Request-ID"),
						UserID:    CurrentUserID(c),
						Path:      c.Request.URL.Path,
						Method:    c.Request.Method,
					})
				zap.L().Error("发生panic",
					zap.Any("error", r),
					zap.String("request_id", traced.Context.RequestID),
					zap.String("stack", traced.Stack))

				c.Header("X-Request-ID", traced.Context.RequestID)
				errors.HandleError(c, errors.New(errors.ErrInternal, "系统内部错误"))
				c.Abort()
			}
		}()
		c.Next()
	}
}
