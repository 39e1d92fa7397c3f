package mahjong

// IsWinWithWildcards 红中癞子规则下 14 张是否和牌
func (s *Searcher) IsWinWithWildcards(hand Hand) bool {
	if len(hand) != WinningHandSize {
		return false
	}
	return s.isAgari(CountsOf(hand), RuleWildcard)
}

// agariWithWildcards 枚举将的位置：某花色某点数（缺的用癞子补，最多 2 个），或者两张红中直接做将。
// 将选定后各花色的成组代价互不影响，所以逐花色求和即可
func (s *Searcher) agariWithWildcards(c Counts) bool {
	if c.Total() != WinningHandSize {
		return false
	}
	laizi := int(c[Zhong])

	var suits [NumSuits]Ranks
	var pure [NumSuits]int
	for i := 0; i < NumSuits; i++ {
		suits[i] = c.Suit(Suit(i))
		pure[i] = s.costs.Cost(suits[i])
	}

	for si := 0; si < NumSuits; si++ {
		others := 0
		for j := 0; j < NumSuits; j++ {
			if j != si {
				others += pure[j]
			}
		}
		for r := 0; r < NumRanks; r++ {
			work := suits[si]
			needForPair := 0
			switch {
			case work[r] >= 2:
				work[r] -= 2
			case work[r] == 1:
				work[r] = 0
				needForPair = 1
			default:
				needForPair = 2
			}
			if needForPair+s.costs.Cost(work)+others <= laizi {
				return true
			}
		}
	}

	// 红中做将
	if laizi >= 2 && pure[0]+pure[1]+pure[2] <= laizi-2 {
		return true
	}
	return false
}
