package mahjong

import "sync"

// CostCache 癞子代价缓存。代价只取决于计数向量，条目永不失效
type CostCache interface {
	Load(v Ranks) (int, bool)
	Store(v Ranks, cost int)
}

// MemoCache 进程级默认实现，读写锁保护，可被多个 goroutine 共享
type MemoCache struct {
	mu sync.RWMutex
	m  map[Ranks]int
}

func NewMemoCache() *MemoCache {
	return &MemoCache{m: make(map[Ranks]int, 4096)}
}

func (c *MemoCache) Load(v Ranks) (int, bool) {
	c.mu.RLock()
	cost, ok := c.m[v]
	c.mu.RUnlock()
	return cost, ok
}

func (c *MemoCache) Store(v Ranks, cost int) {
	c.mu.Lock()
	c.m[v] = cost
	c.mu.Unlock()
}

func (c *MemoCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}

// CostSolver 计算单一花色凑成全刻子/顺子(3n)所需的最少癞子数
type CostSolver struct {
	cache CostCache
}

func NewCostSolver(cache CostCache) *CostSolver {
	if cache == nil {
		cache = NewMemoCache()
	}
	return &CostSolver{cache: cache}
}

// Cost 花色内所有牌都必须用上，缺的张用癞子补
func (s *CostSolver) Cost(v Ranks) int {
	idx := -1
	for i := 0; i < NumRanks; i++ {
		if v[i] > 0 {
			idx = i
			break
		}
	}
	if idx == -1 {
		return 0
	}
	if cost, ok := s.cache.Load(v); ok {
		return cost
	}

	// 刻子：够 3 张直接成刻，否则全部拿走并补 3-n 个癞子
	work := v
	var best int
	if work[idx] >= 3 {
		work[idx] -= 3
		best = s.Cost(work)
	} else {
		need := 3 - int(work[idx])
		work[idx] = 0
		best = need + s.Cost(work)
	}

	// 顺子：起点一定有，后两张缺哪张补哪张
	if idx+2 < NumRanks {
		work = v
		work[idx]--
		need := 0
		for _, j := range [2]int{idx + 1, idx + 2} {
			if work[j] > 0 {
				work[j]--
			} else {
				need++
			}
		}
		if c := need + s.Cost(work); c < best {
			best = c
		}
	} else if idx == NumRanks-2 {
		// 8 打头凑不出往后的顺子，只能 7 用癞子补成 789
		work = v
		work[idx]--
		need := 1
		if work[idx+1] > 0 {
			work[idx+1]--
		} else {
			need++
		}
		if c := need + s.Cost(work); c < best {
			best = c
		}
	}

	s.cache.Store(v, best)
	return best
}
