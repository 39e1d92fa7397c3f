package trainer

import (
	"time"

	"tingtrainer/common/cache"
)

// QuestionStore 已发出、未作答的题目
type QuestionStore interface {
	Put(q *Question) bool
	Get(id string) (*Question, bool)
	Delete(id string)
}

// CacheStore 基于本地 TTL 缓存，过期的题目视为作废
type CacheStore struct {
	cache *cache.GeneralCache
}

func NewCacheStore(maxCost int64, ttl time.Duration) (*CacheStore, error) {
	c, err := cache.NewGeneralCache(maxCost, ttl)
	if err != nil {
		return nil, err
	}
	return &CacheStore{cache: c}, nil
}

func (s *CacheStore) Put(q *Question) bool {
	return s.cache.Set(q.ID, q)
}

func (s *CacheStore) Get(id string) (*Question, bool) {
	v, ok := s.cache.Get(id)
	if !ok {
		return nil, false
	}
	q, ok := v.(*Question)
	return q, ok
}

func (s *CacheStore) Delete(id string) {
	s.cache.Delete(id)
}

func (s *CacheStore) Close() {
	s.cache.Close()
}
