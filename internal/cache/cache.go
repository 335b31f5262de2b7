// Package cache 保存渲染好的页面响应，按 TTL 过期
package cache

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DefaultTTL 页面缓存默认有效期
const DefaultTTL = 10 * time.Second

var (
	cacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "yatube_page_cache_hits_total",
		Help: "The total number of page cache hits",
	}, []string{"backend"})
	cacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "yatube_page_cache_misses_total",
		Help: "The total number of page cache misses",
	}, []string{"backend"})
)

// Entry 一条缓存的响应
type Entry struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// Store 页面缓存后端
type Store interface {
	// Get 返回缓存的响应，未命中或已过期时 ok 为 false
	Get(ctx context.Context, key string) (entry *Entry, ok bool, err error)
	Set(ctx context.Context, key string, entry *Entry) error
	// Clear 清空所有缓存
	Clear(ctx context.Context) error
}

func observe(backend string, hit bool) {
	if hit {
		cacheHits.WithLabelValues(backend).Inc()
	} else {
		cacheMisses.WithLabelValues(backend).Inc()
	}
}
