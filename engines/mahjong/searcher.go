package mahjong

import (
	"fmt"
	"strings"
	"sync"
)

// Rule 和牌判定规则
type Rule int

const (
	RuleExact    Rule = iota // 无癞子，红中当字牌
	RuleWildcard             // 红中癞子
)

func (r Rule) String() string {
	switch r {
	case RuleExact:
		return "exact"
	case RuleWildcard:
		return "wildcard"
	default:
		return fmt.Sprintf("rule(%d)", int(r))
	}
}

func ParseRule(text string) (Rule, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "", "exact", "uniform":
		return RuleExact, nil
	case "wildcard", "hongzhong", "laizi":
		return RuleWildcard, nil
	default:
		return 0, fmt.Errorf("unknown rule %q", text)
	}
}

// Wait 一张听牌及其剩余可摸张数
type Wait struct {
	Tile      TileType
	Remaining int
}

type Candidate struct {
	Discard TileType
	Waits   []Wait // 听哪些牌
	Ukeire  int    // 有效张数
}

func (c Candidate) WaitTiles() []TileType {
	out := make([]TileType, len(c.Waits))
	for i, w := range c.Waits {
		out[i] = w.Tile
	}
	return out
}

// Analysis 打出每种牌后的听牌情况，按牌 id 升序，只包含至少听一张的打法
type Analysis []Candidate

// Unplayable 打哪张都不听，调用方应重新发牌
func (a Analysis) Unplayable() bool { return len(a) == 0 }

func (a Analysis) Max() int {
	best := 0
	for _, c := range a {
		if c.Ukeire > best {
			best = c.Ukeire
		}
	}
	return best
}

// Best 所有并列最优的打法
func (a Analysis) Best() []Candidate {
	top := a.Max()
	var out []Candidate
	for _, c := range a {
		if c.Ukeire == top {
			out = append(out, c)
		}
	}
	return out
}

func (a Analysis) Lookup(t TileType) (Candidate, bool) {
	for _, c := range a {
		if c.Discard == t {
			return c, true
		}
	}
	return Candidate{}, false
}

// AgariCache 和牌判定结果缓存，键是计数加规则。实现需并发安全，可以丢弃条目
type AgariCache interface {
	Load(c Counts, rule Rule) (win bool, ok bool)
	Store(c Counts, rule Rule, win bool)
}

type agariKey struct {
	counts Counts
	rule   Rule
}

// mapAgariCache 默认实现，不淘汰
type mapAgariCache struct {
	mu sync.RWMutex
	m  map[agariKey]bool
}

func newMapAgariCache() *mapAgariCache {
	return &mapAgariCache{m: make(map[agariKey]bool, 4096)}
}

func (c *mapAgariCache) Load(counts Counts, rule Rule) (bool, bool) {
	c.mu.RLock()
	win, ok := c.m[agariKey{counts: counts, rule: rule}]
	c.mu.RUnlock()
	return win, ok
}

func (c *mapAgariCache) Store(counts Counts, rule Rule, win bool) {
	c.mu.Lock()
	c.m[agariKey{counts: counts, rule: rule}] = win
	c.mu.Unlock()
}

type Searcher struct {
	agari AgariCache // 和牌缓存
	costs *CostSolver
}

type Option func(*Searcher)

// WithCostCache 共享进程级的癞子代价缓存
func WithCostCache(cache CostCache) Option {
	return func(s *Searcher) {
		s.costs = NewCostSolver(cache)
	}
}

// WithAgariCache 长期运行的服务换成有容量上限的缓存
func WithAgariCache(cache AgariCache) Option {
	return func(s *Searcher) {
		s.agari = cache
	}
}

func NewSearcher(opts ...Option) *Searcher {
	s := &Searcher{}
	for _, opt := range opts {
		opt(s)
	}
	if s.agari == nil {
		s.agari = newMapAgariCache()
	}
	if s.costs == nil {
		s.costs = NewCostSolver(nil)
	}
	return s
}

// Costs 暴露底层的代价求解器
func (s *Searcher) Costs() *CostSolver { return s.costs }

// IsWin 按规则判定 14 张是否和牌
func (s *Searcher) IsWin(hand Hand, rule Rule) bool {
	if len(hand) != WinningHandSize {
		return false
	}
	return s.isAgari(CountsOf(hand), rule)
}

func (s *Searcher) isAgari(c Counts, rule Rule) bool {
	if v, ok := s.agari.Load(c, rule); ok {
		return v
	}

	var ok bool
	switch rule {
	case RuleWildcard:
		ok = s.agariWithWildcards(c)
	default:
		if c.Total() == WinningHandSize {
			_, ok = decomposeCounts(c)
		}
	}

	s.agari.Store(c, rule, ok)
	return ok
}

// Waits 无癞子规则下 13 张听哪些牌
func (s *Searcher) Waits(hand13 Hand) []TileType {
	waits, _ := s.WaitsAndUkeire(hand13, RuleExact)
	tiles := make([]TileType, len(waits))
	for i, w := range waits {
		tiles[i] = w.Tile
	}
	return tiles
}

// WaitsWithWildcards 红中规则下的有效张数与听牌
func (s *Searcher) WaitsWithWildcards(hand13 Hand) (int, []TileType) {
	waits, ukeire := s.WaitsAndUkeire(hand13, RuleWildcard)
	tiles := make([]TileType, len(waits))
	for i, w := range waits {
		tiles[i] = w.Tile
	}
	return ukeire, tiles
}

// WaitsAndUkeire 枚举听牌 + 计算进张。手里已有 4 张的牌摸不到，不算听
func (s *Searcher) WaitsAndUkeire(hand13 Hand, rule Rule) ([]Wait, int) {
	h13 := CountsOf(hand13)
	return s.waitsOf(h13, rule)
}

func (s *Searcher) waitsOf(h13 Counts, rule Rule) ([]Wait, int) {
	var waits []Wait
	ukeire := 0
	for t := 0; t < NumTileTypes; t++ {
		if h13[t] >= MaxCopies {
			continue
		}
		work := h13
		work[t]++
		if s.isAgari(work, rule) {
			left := MaxCopies - int(h13[t])
			waits = append(waits, Wait{Tile: TileType(t), Remaining: left})
			ukeire += left
		}
	}
	return waits, ukeire
}

// BestDiscards 弃牌后有哪些牌听牌，以及各自的有效张数
func (s *Searcher) BestDiscards(hand14 Hand, rule Rule) Analysis {
	h14 := CountsOf(hand14)
	var out Analysis
	for i := 0; i < NumTileTypes; i++ {
		if h14[i] == 0 {
			continue
		}
		h13 := h14
		h13[i]--

		waits, ukeire := s.waitsOf(h13, rule)
		if len(waits) == 0 {
			continue
		}
		out = append(out, Candidate{
			Discard: TileType(i),
			Waits:   waits,
			Ukeire:  ukeire,
		})
	}
	return out
}
