package mahjong

import (
	"errors"
	"fmt"
	"strings"
)

type TileType int

const (
	// 万子 (0-8)
	Wan1 TileType = iota
	Wan2
	Wan3
	Wan4
	Wan5
	Wan6
	Wan7
	Wan8
	Wan9

	// 条子 (9-17)
	Tiao1
	Tiao2
	Tiao3
	Tiao4
	Tiao5
	Tiao6
	Tiao7
	Tiao8
	Tiao9

	// 筒子 (18-26)
	Tong1
	Tong2
	Tong3
	Tong4
	Tong5
	Tong6
	Tong7
	Tong8
	Tong9

	// 红中，癞子
	Zhong
)

const (
	NumTileTypes = 28
	NumRanks     = 9
	NumSuits     = 3
	MaxCopies    = 4
)

var (
	ErrUnknownTile   = errors.New("unknown tile")
	ErrBadHandSize   = errors.New("bad hand size")
	ErrTooManyCopies = errors.New("more than four copies of a tile")
)

type Suit int

const (
	SuitWan Suit = iota
	SuitTiao
	SuitTong
	SuitNone // 红中不属于任何数牌花色
)

var suitNames = [...]string{"万", "条", "筒"}

// Valid 是否为合法牌 id
func (t TileType) Valid() bool { return t >= Wan1 && t <= Zhong }

func (t TileType) IsNumber() bool { return t >= Wan1 && t <= Tong9 }

func (t TileType) IsWildcard() bool { return t == Zhong }

func (t TileType) Suit() Suit {
	if !t.IsNumber() {
		return SuitNone
	}
	return Suit(int(t) / NumRanks)
}

// Rank 数牌点数 1-9，红中返回 0
func (t TileType) Rank() int {
	if !t.IsNumber() {
		return 0
	}
	return int(t)%NumRanks + 1
}

func (t TileType) String() string {
	switch {
	case t.IsNumber():
		return fmt.Sprintf("%d%s", t.Rank(), suitNames[t.Suit()])
	case t == Zhong:
		return "红中"
	default:
		return "?"
	}
}

// TileOf 由花色和点数(1-9)构造牌
func TileOf(s Suit, rank int) TileType {
	return TileType(int(s)*NumRanks + rank - 1)
}

var nameToTile = buildNameTable()

func buildNameTable() map[string]TileType {
	m := make(map[string]TileType, 128)
	aliases := [...]string{"w", "t", "b"}
	for s := SuitWan; s <= SuitTong; s++ {
		for r := 1; r <= NumRanks; r++ {
			t := TileOf(s, r)
			m[t.String()] = t
			m[fmt.Sprintf("%d%s", r, aliases[s])] = t
		}
	}
	m["红中"] = Zhong
	m["hz"] = Zhong
	m["hongzhong"] = Zhong
	return m
}

// ParseTile 解析牌名，支持 "1万"、"1w"、"5T"、"红中"、"hz"
func ParseTile(text string) (TileType, error) {
	text = strings.TrimSpace(text)
	if t, ok := nameToTile[text]; ok {
		return t, nil
	}
	if t, ok := nameToTile[strings.ToLower(text)]; ok {
		return t, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTile, text)
}

// ParseHand 按空白或逗号切分后逐张解析
func ParseHand(text string) (Hand, error) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t' || r == '\n'
	})
	hand := make(Hand, 0, len(fields))
	for _, f := range fields {
		t, err := ParseTile(f)
		if err != nil {
			return nil, err
		}
		hand = append(hand, t)
	}
	return hand, nil
}

// Validate 外部输入的手牌：张数必须为 n，每种牌不超过 4 张
func (h Hand) Validate(n int) error {
	if len(h) != n {
		return fmt.Errorf("%w: want %d tiles, got %d", ErrBadHandSize, n, len(h))
	}
	var c Counts
	for _, t := range h {
		if !t.Valid() {
			return fmt.Errorf("%w: id %d", ErrUnknownTile, int(t))
		}
		c[t]++
		if c[t] > MaxCopies {
			return fmt.Errorf("%w: %s", ErrTooManyCopies, t)
		}
	}
	return nil
}

// Hand 有序牌组，13 张(摸牌前) 或 14 张(摸牌后)
type Hand []TileType

func (h Hand) String() string {
	parts := make([]string, len(h))
	for i, t := range h {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}

// With 返回追加一张牌后的新手牌，不修改原手牌
func (h Hand) With(t TileType) Hand {
	out := make(Hand, len(h), len(h)+1)
	copy(out, h)
	return append(out, t)
}

// Without 返回移除一张 t 后的新手牌；没有这张牌时返回副本和 false
func (h Hand) Without(t TileType) (Hand, bool) {
	out := make(Hand, 0, len(h))
	removed := false
	for _, x := range h {
		if !removed && x == t {
			removed = true
			continue
		}
		out = append(out, x)
	}
	return out, removed
}

// Counts 每种牌的张数，可直接作为 map key
type Counts [NumTileTypes]uint8

// Ranks 单一花色 1-9 的计数向量
type Ranks [NumRanks]uint8

// CountsOf 统计手牌；非法牌 id 属于调用方编程错误，直接 panic
func CountsOf(hand Hand) Counts {
	var c Counts
	for _, t := range hand {
		if !t.Valid() {
			panic(fmt.Sprintf("mahjong: invalid tile id %d", int(t)))
		}
		c[t]++
	}
	return c
}

func (c Counts) Suit(s Suit) Ranks {
	var r Ranks
	copy(r[:], c[int(s)*NumRanks:int(s)*NumRanks+NumRanks])
	return r
}

func (c Counts) Total() int {
	n := 0
	for _, v := range c {
		n += int(v)
	}
	return n
}

// Tiles 按牌 id 升序展开
func (c Counts) Tiles() Hand {
	out := make(Hand, 0, c.Total())
	for t, n := range c {
		for i := 0; i < int(n); i++ {
			out = append(out, TileType(t))
		}
	}
	return out
}

func (r Ranks) Total() int {
	n := 0
	for _, v := range r {
		n += int(v)
	}
	return n
}
