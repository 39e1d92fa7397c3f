package cache

import (
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"
)

// GeneralCache 进程内有上限的缓存。每条记 1 个单位，满了按 TinyLFU 淘汰。
// 发出去的题目和引擎的和牌结果都放在这里
type GeneralCache struct {
	inner      *ristretto.Cache
	defaultTTL time.Duration
}

// NewGeneralCache capacity 是最多保留的条目数，defaultTTL 为 0 表示不过期
func NewGeneralCache(capacity int64, defaultTTL time.Duration) (*GeneralCache, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("缓存容量必须为正数: %d", capacity)
	}
	inner, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: capacity * 10,
		MaxCost:     capacity,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("创建 ristretto 缓存失败: %w", err)
	}
	return &GeneralCache{inner: inner, defaultTTL: defaultTTL}, nil
}

func (c *GeneralCache) Set(key string, value interface{}) bool {
	return c.SetWithTTL(key, value, c.defaultTTL)
}

// SetWithTTL 等写缓冲落地再返回，题目发出后马上就会被取
func (c *GeneralCache) SetWithTTL(key string, value interface{}, ttl time.Duration) bool {
	accepted := c.inner.SetWithTTL(key, value, 1, ttl)
	c.inner.Wait()
	return accepted
}

// Offer 只进写缓冲不等待，可能被丢弃。给热路径上可重算的结果用
func (c *GeneralCache) Offer(key string, value interface{}) {
	c.inner.SetWithTTL(key, value, 1, c.defaultTTL)
}

func (c *GeneralCache) Get(key string) (interface{}, bool) {
	return c.inner.Get(key)
}

// Delete 立即从存储里删除，之后的 Get 取不到
func (c *GeneralCache) Delete(key string) {
	c.inner.Del(key)
}

func (c *GeneralCache) Close() {
	c.inner.Close()
}
