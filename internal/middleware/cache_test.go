package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"yatube-backend/internal/cache"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func get(router http.Handler, path string, header ...string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	if len(header) == 2 {
		req.Header.Set(header[0], header[1])
	}
	router.ServeHTTP(w, req)
	return w
}

func TestCachePageServesStaleUntilCleared(t *testing.T) {
	store := cache.NewMemoryStore(16, time.Minute)
	posts := []string{"first", "second"}

	router := gin.New()
	router.GET("/api/posts", CachePage(store), func(c *gin.Context) {
		c.String(http.StatusOK, strings.Join(posts, ","))
	})

	before := get(router, "/api/posts")
	require.Equal(t, http.StatusOK, before.Code)
	assert.Equal(t, "MISS", before.Header().Get("X-Cache"))

	// 删除一条帖子后，缓存窗口内返回的内容不变
	posts = posts[:1]
	cached := get(router, "/api/posts")
	assert.Equal(t, "HIT", cached.Header().Get("X-Cache"))
	assert.Equal(t, before.Body.String(), cached.Body.String())

	require.NoError(t, store.Clear(context.Background()))
	after := get(router, "/api/posts")
	assert.Equal(t, "first", after.Body.String())
}

func TestCachePageKeyIncludesQuery(t *testing.T) {
	store := cache.NewMemoryStore(16, time.Minute)
	router := gin.New()
	router.GET("/api/posts", CachePage(store), func(c *gin.Context) {
		c.String(http.StatusOK, "page="+c.Query("page"))
	})

	assert.Equal(t, "page=1", get(router, "/api/posts?page=1").Body.String())
	assert.Equal(t, "page=2", get(router, "/api/posts?page=2").Body.String())
}

func TestCachePageSeparatesUsers(t *testing.T) {
	store := cache.NewMemoryStore(16, time.Minute)
	router := gin.New()
	router.GET("/api/follow", OptionalAuth(stubChecker{}), CachePage(store), whoami)

	assert.JSONEq(t, `{"user_id":3}`, get(router, "/api/follow", "Authorization", "Bearer "+newToken(t, 3)).Body.String())
	assert.JSONEq(t, `{"user_id":4}`, get(router, "/api/follow", "Authorization", "Bearer "+newToken(t, 4)).Body.String())
}

func TestCachePageSkipsErrors(t *testing.T) {
	store := cache.NewMemoryStore(16, time.Minute)
	calls := 0
	router := gin.New()
	router.GET("/api/group/:slug", CachePage(store), func(c *gin.Context) {
		calls++
		c.String(http.StatusNotFound, "missing")
	})

	get(router, "/api/group/none")
	get(router, "/api/group/none")
	assert.Equal(t, 2, calls)
}
