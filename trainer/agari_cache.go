package trainer

import (
	"tingtrainer/common/cache"
	"tingtrainer/engines/mahjong"
)

// BoundedAgariCache 引擎和牌缓存放进 ristretto，常驻进程里内存有上限
type BoundedAgariCache struct {
	cache *cache.GeneralCache
}

const defaultAgariCacheSize = 1 << 16

// NewBoundedAgariCache capacity 不大于 0 时用默认容量
func NewBoundedAgariCache(capacity int64) (*BoundedAgariCache, error) {
	if capacity <= 0 {
		capacity = defaultAgariCacheSize
	}
	c, err := cache.NewGeneralCache(capacity, 0)
	if err != nil {
		return nil, err
	}
	return &BoundedAgariCache{cache: c}, nil
}

func agariKey(c mahjong.Counts, rule mahjong.Rule) string {
	buf := make([]byte, 0, len(c)+1)
	buf = append(buf, c[:]...)
	buf = append(buf, byte(rule))
	return string(buf)
}

func (b *BoundedAgariCache) Load(c mahjong.Counts, rule mahjong.Rule) (bool, bool) {
	v, ok := b.cache.Get(agariKey(c, rule))
	if !ok {
		return false, false
	}
	win, ok := v.(bool)
	return win, ok
}

// Store 丢了也无妨，下次重算
func (b *BoundedAgariCache) Store(c mahjong.Counts, rule mahjong.Rule, win bool) {
	b.cache.Offer(agariKey(c, rule), win)
}

func (b *BoundedAgariCache) Close() {
	b.cache.Close()
}
