package middleware

import (
	"bytes"
	"net/http"
	"strconv"
	"yatube-backend/internal/cache"
	"yatube-backend/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type bodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bodyWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// pageKey 请求路径（含查询参数）加当前用户，不同用户的页面分开缓存
func pageKey(c *gin.Context) string {
	return c.Request.Method + " " + c.Request.URL.RequestURI() + "|" + strconv.Itoa(CurrentUserID(c))
}

// CachePage 缓存 GET 请求的 200 响应，有效期内即使数据变化也返回缓存内容。
// 写操作不会使缓存失效，只能等过期或调用 store.Clear
func CachePage(store cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := pageKey(c)
		entry, ok, err := store.Get(c.Request.Context(), key)
		if err != nil {
			util.Logger.Warn("读取页面缓存失败", zap.String("key", key), zap.Error(err))
		}
		if ok {
			c.Header("X-Cache", "HIT")
			c.Data(entry.Status, entry.ContentType, entry.Body)
			c.Abort()
			return
		}

		w := &bodyWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = w
		c.Header("X-Cache", "MISS")
		c.Next()

		if w.Status() != http.StatusOK || len(c.Errors) > 0 {
			return
		}
		entry = &cache.Entry{
			Status:      w.Status(),
			ContentType: w.Header().Get("Content-Type"),
			Body:        w.body.Bytes(),
		}
		if err := store.Set(c.Request.Context(), key, entry); err != nil {
			util.Logger.Warn("写入页面缓存失败", zap.String("key", key), zap.Error(err))
		}
	}
}
