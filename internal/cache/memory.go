package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// MemoryStore 进程内缓存，条目数超过 size 时淘汰最久未使用的
type MemoryStore struct {
	lru *expirable.LRU[string, *Entry]
}

func NewMemoryStore(size int, ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{lru: expirable.NewLRU[string, *Entry](size, nil, ttl)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (*Entry, bool, error) {
	entry, ok := s.lru.Get(key)
	observe("memory", ok)
	return entry, ok, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, entry *Entry) error {
	s.lru.Add(key, entry)
	return nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.lru.Purge()
	return nil
}
