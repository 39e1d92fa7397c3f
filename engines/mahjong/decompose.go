package mahjong

const (
	WinningHandSize = 14
	WaitingHandSize = 13
	meldsPerHand    = 4
)

// IsWin 无癞子规则下 14 张是否和牌（1 将 + 4 面子）
func IsWin(hand Hand) bool {
	_, ok := DecomposeWin(hand)
	return ok
}

// DecomposeWin 找出和牌结构，第一组为将。按牌 id 升序尝试将牌，找到即返回。
// 红中在此规则下视作字牌：只能成刻或做将，不能进顺子
func DecomposeWin(hand Hand) ([]Group, bool) {
	if len(hand) != WinningHandSize {
		return nil, false
	}
	return decomposeCounts(CountsOf(hand))
}

func decomposeCounts(c Counts) ([]Group, bool) {
	for j := 0; j < NumTileTypes; j++ {
		if c[j] < 2 {
			continue
		}
		work := c
		work[j] -= 2
		if melds, ok := formMelds(work, meldsPerHand); ok {
			return append([]Group{{Kind: GroupPair, Tile: TileType(j)}}, melds...), true
		}
	}
	return nil, false
}

// DecomposeSuit 单一花色计数向量能否恰好拆成 k 个刻子/顺子
func DecomposeSuit(s Suit, v Ranks, k int) ([]Group, bool) {
	var c Counts
	copy(c[int(s)*NumRanks:], v[:])
	return formMelds(c, k)
}

// formMelds 核心思想：最小的那张牌要么在自己的刻子里，要么是某个顺子的起点，
// 两种都试一遍即可穷尽。先刻后顺，每个分支拿到的是计数的副本
func formMelds(c Counts, need int) ([]Group, bool) {
	i := -1
	for k := 0; k < NumTileTypes; k++ {
		if c[k] > 0 {
			i = k
			break
		}
	}
	if i == -1 {
		return nil, need == 0
	}
	if need == 0 {
		return nil, false
	}

	t := TileType(i)
	// 刻子
	if c[i] >= 3 {
		work := c
		work[i] -= 3
		if rest, ok := formMelds(work, need-1); ok {
			return append([]Group{{Kind: GroupTriplet, Tile: t}}, rest...), true
		}
	}
	// 顺子（仅数牌，起点 ≤ 7）
	if t.IsNumber() && t.Rank() <= NumRanks-2 && c[i+1] > 0 && c[i+2] > 0 {
		work := c
		work[i]--
		work[i+1]--
		work[i+2]--
		if rest, ok := formMelds(work, need-1); ok {
			return append([]Group{{Kind: GroupSequence, Tile: t}}, rest...), true
		}
	}
	return nil, false
}
