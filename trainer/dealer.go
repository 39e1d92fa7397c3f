package trainer

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"tingtrainer/core/domain/entity"
	"tingtrainer/engines/mahjong"
)

// 连续发出这么多手不听的牌就放弃，正常情况几次内就能发出
const maxRedeal = 1000

// Dealer 洗牌发题，rng 非并发安全，用锁保护
type Dealer struct {
	mu       sync.Mutex
	rng      *rand.Rand
	searcher *mahjong.Searcher
	now      func() time.Time
}

// NewDealer seed 为 0 时按当前时间取种子
func NewDealer(searcher *mahjong.Searcher, seed int64) *Dealer {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Dealer{
		rng:      rand.New(rand.NewSource(seed)),
		searcher: searcher,
		now:      time.Now,
	}
}

// uniformDeck 万子 1-9 各 4 张
func uniformDeck() mahjong.Hand {
	deck := make(mahjong.Hand, 0, mahjong.NumRanks*mahjong.MaxCopies)
	for r := 1; r <= mahjong.NumRanks; r++ {
		for i := 0; i < mahjong.MaxCopies; i++ {
			deck = append(deck, mahjong.TileOf(mahjong.SuitWan, r))
		}
	}
	return deck
}

// hongZhongDeck 三门数牌 + 4 张红中，共 112 张
func hongZhongDeck() mahjong.Hand {
	deck := make(mahjong.Hand, 0, mahjong.NumTileTypes*mahjong.MaxCopies)
	for t := 0; t < mahjong.NumTileTypes; t++ {
		for i := 0; i < mahjong.MaxCopies; i++ {
			deck = append(deck, mahjong.TileType(t))
		}
	}
	return deck
}

func (d *Dealer) draw(deck mahjong.Hand, n int) mahjong.Hand {
	d.mu.Lock()
	d.rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
	d.mu.Unlock()
	hand := append(mahjong.Hand(nil), deck[:n]...)
	sortHand(hand)
	return hand
}

// Deal 发一道有解的题，不听的手牌重新发
func (d *Dealer) Deal(player, mode string) (*Question, error) {
	q := &Question{Player: player, Mode: mode}
	switch mode {
	case entity.ModeUniform:
		deck := uniformDeck()
		for i := 0; i < maxRedeal; i++ {
			hand := d.draw(deck, mahjong.WaitingHandSize)
			if waits := d.searcher.Waits(hand); len(waits) > 0 {
				q.Hand, q.Waits = hand, waits
				break
			}
		}
	case entity.ModeHongZhong:
		deck := hongZhongDeck()
		for i := 0; i < maxRedeal; i++ {
			hand := d.draw(deck, mahjong.WinningHandSize)
			if a := d.searcher.BestDiscards(hand, mahjong.RuleWildcard); !a.Unplayable() {
				q.Hand, q.Analysis = hand, a
				break
			}
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	if q.Hand == nil {
		return nil, ErrDealExhausted
	}
	q.ID = uuid.NewString()
	q.DealtAt = d.now()
	return q, nil
}
