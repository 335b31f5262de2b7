package middleware

import (
	stderrors "errors"
	"strconv"
	"sync"
	"yatube-backend/internal/errors"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

type ErrorMonitor struct {
	errorCounts map[errors.ErrorCode]int
	mu          sync.RWMutex
	counter     *prometheus.CounterVec
}

// NewErrorMonitor 创建错误监控，计数同时注册到 reg
func NewErrorMonitor(reg prometheus.Registerer) *ErrorMonitor {
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "yatube_request_errors_total",
		Help: "The total number of request errors by error code",
	}, []string{"code"})
	if reg != nil {
		reg.MustRegister(counter)
	}
	return &ErrorMonitor{
		errorCounts: make(map[errors.ErrorCode]int),
		counter:     counter,
	}
}

func (m *ErrorMonitor) RecordError(err error) {
	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		return
	}
	m.mu.Lock()
	m.errorCounts[appErr.Code]++
	m.mu.Unlock()
	m.counter.WithLabelValues(strconv.Itoa(int(appErr.Code))).Inc()
}

func (m *ErrorMonitor) GetErrorCounts() map[errors.ErrorCode]int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	counts := make(map[errors.ErrorCode]int)
	for code, count := range m.errorCounts {
		counts[code] = count
	}
	return counts
}

func ErrorMonitorMiddleware(monitor *ErrorMonitor) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		for _, e := range c.Errors {
			monitor.RecordError(e.Err)

			var appErr *errors.AppError
			if !stderrors.As(e.Err, &appErr) {
				continue
			}
			// 4xx 只记 info，5xx 记 error
			fields := []zap.Field{
				zap.Int("error_code", int(appErr.Code)),
				zap.String("error_message", appErr.Message),
				zap.Error(appErr.Err),
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
			}
			if errors.StatusOf(appErr.Code) >= 500 {
				zap.L().Error("请求处理错误", fields...)
			} else {
				zap.L().Info("请求处理错误", fields...)
			}
		}
	}
}
