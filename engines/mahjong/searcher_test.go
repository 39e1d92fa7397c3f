package mahjong

import (
	"math/rand"
	"reflect"
	"testing"
)

func containsTile(tiles []TileType, t TileType) bool {
	for _, x := range tiles {
		if x == t {
			return true
		}
	}
	return false
}

func TestSearcher_WaitsUniform(t *testing.T) {
	s := NewSearcher()
	h13 := wan(1, 1, 2, 2, 3, 3, 4, 5, 6, 7, 7, 8, 9)

	waits := s.Waits(h13)
	for _, want := range []TileType{Wan1, Wan4, Wan7} {
		if !containsTile(waits, want) {
			t.Fatalf("expected waits to include %v, got %v", want, waits)
		}
	}
	if containsTile(waits, Wan2) {
		t.Fatalf("2万 does not complete %v, got %v", h13, waits)
	}

	again := NewSearcher().Waits(h13)
	if !reflect.DeepEqual(waits, again) {
		t.Fatalf("waits not reproducible: %v vs %v", waits, again)
	}
}

func TestSearcher_WaitsSkipFourthCopy(t *testing.T) {
	s := NewSearcher()
	// 1111 234567 888: 9 completes 111 123 456 789 88; 1 would be a fifth copy
	h13 := wan(1, 1, 1, 1, 2, 3, 4, 5, 6, 7, 8, 8, 8)
	waits, ukeire := s.WaitsAndUkeire(h13, RuleExact)
	for _, w := range waits {
		if w.Tile == Wan1 {
			t.Fatalf("a tile held four times cannot be waited on: %v", waits)
		}
		if w.Remaining != MaxCopies-int(CountsOf(h13)[w.Tile]) {
			t.Fatalf("wrong remaining count for %v: %d", w.Tile, w.Remaining)
		}
	}
	sum := 0
	for _, w := range waits {
		sum += w.Remaining
	}
	if sum != ukeire {
		t.Fatalf("ukeire %d != sum of remaining %d", ukeire, sum)
	}
}

// Every wait completes the hand and every non-wait does not.
func TestSearcher_WaitsRoundTrip(t *testing.T) {
	s := NewSearcher()
	rng := rand.New(rand.NewSource(2024))

	uniformDeck := make(Hand, 0, 36)
	for r := 1; r <= NumRanks; r++ {
		for i := 0; i < MaxCopies; i++ {
			uniformDeck = append(uniformDeck, TileOf(SuitWan, r))
		}
	}
	fullDeck := make(Hand, 0, NumTileTypes*MaxCopies)
	for tt := 0; tt < NumTileTypes; tt++ {
		for i := 0; i < MaxCopies; i++ {
			fullDeck = append(fullDeck, TileType(tt))
		}
	}

	check := func(deck Hand, rule Rule) {
		for i := 0; i < 40; i++ {
			d := append(Hand(nil), deck...)
			rng.Shuffle(len(d), func(a, b int) { d[a], d[b] = d[b], d[a] })
			h13 := d[:WaitingHandSize]
			waits, _ := s.WaitsAndUkeire(h13, rule)
			tiles := make([]TileType, len(waits))
			for k, w := range waits {
				tiles[k] = w.Tile
			}
			counts := CountsOf(h13)
			for tt := 0; tt < NumTileTypes; tt++ {
				if counts[tt] >= MaxCopies {
					continue
				}
				win := s.IsWin(h13.With(TileType(tt)), rule)
				if win != containsTile(tiles, TileType(tt)) {
					t.Fatalf("%v rule %v: tile %v win=%v but waits=%v", h13, rule, TileType(tt), win, tiles)
				}
			}
		}
	}
	check(uniformDeck, RuleExact)
	check(fullDeck, RuleWildcard)
}

func TestSearcher_IsWinWithWildcards(t *testing.T) {
	s := NewSearcher()
	cases := []struct {
		name string
		hand string
		want bool
	}{
		{"plain hand", "1w 1w 1w 2w 2w 2w 3w 3w 3w 4w 4w 4w 5w 5w", true},
		{"wildcard pairs a single", "1w 2w 3w 4t 5t 6t 7b 8b 9b 5w hz hz hz hz", true},
		{"two wildcards as the pair", "1w 2w 3w 4t 5t 6t 7b 8b 9b 2b 3b 4b hz hz", true},
		{"wildcard fills a sequence gap", "1w 3w 5w 5w 4t 5t 6t 7b 8b 9b 2b 3b 4b hz", true},
		{"wildcard borrowed below 8", "8w 9w hz 1t 1t 1t 2b 2b 2b 5w 5w 3t 4t 5t", true},
		{"too far apart", "1w 4w 7w 1t 4t 7t 1b 4b 7b 9w 9t 9b 2w hz", false},
		{"thirteen tiles", "1w 2w 3w 4t 5t 6t 7b 8b 9b 5w hz hz hz", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			hand := mustHand(t, tc.hand)
			if got := s.IsWinWithWildcards(hand); got != tc.want {
				t.Fatalf("IsWinWithWildcards(%v) = %v, want %v", hand, got, tc.want)
			}
		})
	}
}

func TestSearcher_WildcardRuleAcceptsExactWins(t *testing.T) {
	s := NewSearcher()
	rng := rand.New(rand.NewSource(99))
	hand := wan(1, 1, 2, 2, 3, 3, 4, 5, 6, 7, 7, 8, 9, 4)
	for i := 0; i < 20; i++ {
		rng.Shuffle(len(hand), func(a, b int) { hand[a], hand[b] = hand[b], hand[a] })
		if !IsWin(hand) || !s.IsWinWithWildcards(hand) {
			t.Fatalf("%v wins under both rules", hand)
		}
	}
}

func TestSearcher_WaitsWithWildcards(t *testing.T) {
	s := NewSearcher()
	h13 := mustHand(t, "1w 2w 3w 4w 5w 6w 7w 8w 9w 1t 1t 1t 5t")

	ukeire, waits := s.WaitsWithWildcards(h13)
	if !reflect.DeepEqual(waits, []TileType{Tiao5, Zhong}) {
		t.Fatalf("expected waits [5条 红中], got %v", waits)
	}
	if ukeire != 7 {
		t.Fatalf("expected ukeire 3 + 4 = 7, got %d", ukeire)
	}

	if exact := s.Waits(h13); !reflect.DeepEqual(exact, []TileType{Tiao5}) {
		t.Fatalf("exact waits expected [5条], got %v", exact)
	}
}

func TestSearcher_BestDiscardsReportsTies(t *testing.T) {
	s := NewSearcher()
	hand := mustHand(t, "1w 2w 3w 4w 5w 6w 7w 8w 9w 1t 1t 1t 5t 5b")

	for _, tc := range []struct {
		rule Rule
		max  int
	}{
		{RuleExact, 3},
		{RuleWildcard, 7},
	} {
		analysis := s.BestDiscards(hand, tc.rule)
		if analysis.Unplayable() {
			t.Fatalf("rule %v: hand should be playable", tc.rule)
		}
		if got := analysis.Max(); got != tc.max {
			t.Fatalf("rule %v: max = %d, want %d", tc.rule, got, tc.max)
		}
		best := analysis.Best()
		if len(best) != 2 || best[0].Discard != Tiao5 || best[1].Discard != Tong5 {
			t.Fatalf("rule %v: expected tie between 5条 and 5筒, got %+v", tc.rule, best)
		}
		c, ok := analysis.Lookup(Tong5)
		if !ok || !containsTile(c.WaitTiles(), Tiao5) {
			t.Fatalf("rule %v: discarding 5筒 should wait on 5条, got %+v", tc.rule, c)
		}
		if _, ok := analysis.Lookup(Wan1); ok {
			t.Fatalf("rule %v: discarding 1万 leaves no waits and must be omitted", tc.rule)
		}
	}
}

func TestSearcher_BestDiscardsUnplayable(t *testing.T) {
	s := NewSearcher()
	hand := mustHand(t, "1w 4w 7w 1t 4t 7t 1b 4b 7b 9w 9t 9b 2b 5b")
	for _, rule := range []Rule{RuleExact, RuleWildcard} {
		analysis := s.BestDiscards(hand, rule)
		if !analysis.Unplayable() {
			t.Fatalf("rule %v: expected unplayable, got %+v", rule, analysis)
		}
		if analysis.Max() != 0 || len(analysis.Best()) != 0 {
			t.Fatalf("rule %v: empty analysis has no best discard", rule)
		}
	}
}

func TestSearcher_SharedCostCache(t *testing.T) {
	cache := NewMemoCache()
	a := NewSearcher(WithCostCache(cache))
	b := NewSearcher(WithCostCache(cache))
	hand := mustHand(t, "1w 3w 5w 5w 4t 5t 6t 7b 8b 9b 2b 3b 4b hz")
	if !a.IsWinWithWildcards(hand) {
		t.Fatalf("expected win")
	}
	n := cache.Len()
	if n == 0 {
		t.Fatalf("cost cache not populated")
	}
	if !b.IsWinWithWildcards(hand) {
		t.Fatalf("expected win from second searcher")
	}
	if cache.Len() != n {
		t.Fatalf("second searcher should be served from the shared cache (%d -> %d)", n, cache.Len())
	}
}

func TestCountsOf_PanicsOnInvalidTile(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for tile id 99")
		}
	}()
	CountsOf(Hand{Wan1, TileType(99)})
}

func TestParseRule(t *testing.T) {
	for text, want := range map[string]Rule{"": RuleExact, "uniform": RuleExact, "HongZhong": RuleWildcard, "wildcard": RuleWildcard} {
		got, err := ParseRule(text)
		if err != nil || got != want {
			t.Fatalf("ParseRule(%q) = %v, %v; want %v", text, got, err, want)
		}
	}
	if _, err := ParseRule("riichi"); err == nil {
		t.Fatalf("expected error for unknown rule")
	}
}

func BenchmarkBestDiscards_Wildcard(b *testing.B) {
	s := NewSearcher()
	hand, _ := ParseHand("2w 3w 4w 1t 3t 4t 5t 7t 7t 8t 9t 6b 7b hz")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = s.BestDiscards(hand, RuleWildcard)
	}
}
