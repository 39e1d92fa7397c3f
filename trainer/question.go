package trainer

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"tingtrainer/core/domain/entity"
	"tingtrainer/engines/mahjong"
)

// ParseMode 接受 uniform/qys 与 hongzhong/hz，大小写不敏感
func ParseMode(text string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "uniform", "qys", "qingyise":
		return entity.ModeUniform, nil
	case "hongzhong", "hz":
		return entity.ModeHongZhong, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, text)
	}
}

// Question 一道题。清一色：13 张同花色，答听哪些数字；红中：14 张，答打哪张进张最多
type Question struct {
	ID       string
	Player   string
	Mode     string
	Hand     mahjong.Hand
	Waits    []mahjong.TileType // 清一色题的答案
	Analysis mahjong.Analysis   // 红中题的每种打法
	DealtAt  time.Time
}

// Ranks 清一色手牌的数字串，如 1112345678999
func (q *Question) Ranks() string {
	var b strings.Builder
	for _, t := range q.Hand {
		b.WriteByte(byte('0' + t.Rank()))
	}
	return b.String()
}

func (q *Question) WaitRanks() []int {
	out := make([]int, 0, len(q.Waits))
	for _, t := range q.Waits {
		out = append(out, t.Rank())
	}
	return out
}

// Verdict 判题结果
type Verdict struct {
	Correct bool          `json:"correct"`
	Elapsed time.Duration `json:"elapsed"`

	Expected []int `json:"expected,omitempty"`
	Given    []int `json:"given,omitempty"`

	Discard      string   `json:"discard,omitempty"`
	Score        int      `json:"score"`
	Max          int      `json:"max"`
	DiscardWaits []string `json:"discardWaits,omitempty"`
	Best         []Option `json:"best,omitempty"`
}

// Option 一种最优打法及其听牌
type Option struct {
	Discard string   `json:"discard"`
	Ukeire  int      `json:"ukeire"`
	Waits   []string `json:"waits"`
}

// Judge 答案格式不对时返回 error，不计入成绩
func (q *Question) Judge(answer string) (Verdict, error) {
	switch q.Mode {
	case entity.ModeUniform:
		return q.judgeUniform(answer)
	case entity.ModeHongZhong:
		return q.judgeHongZhong(answer)
	default:
		return Verdict{}, fmt.Errorf("%w: %q", ErrUnknownMode, q.Mode)
	}
}

func (q *Question) judgeUniform(answer string) (Verdict, error) {
	given := ParseRanks(answer)
	if len(given) == 0 {
		return Verdict{}, fmt.Errorf("%w: 请输入 1-9 的数字，如 147", ErrBadAnswer)
	}
	expected := q.WaitRanks()
	correct := len(given) == len(expected)
	for i := 0; correct && i < len(given); i++ {
		correct = given[i] == expected[i]
	}
	return Verdict{Correct: correct, Expected: expected, Given: given}, nil
}

func (q *Question) judgeHongZhong(answer string) (Verdict, error) {
	tile, err := mahjong.ParseTile(answer)
	if err != nil {
		return Verdict{}, fmt.Errorf("%w: %v", ErrBadAnswer, err)
	}
	if mahjong.CountsOf(q.Hand)[tile] == 0 {
		return Verdict{}, fmt.Errorf("%w: %s", ErrTileNotInHand, tile)
	}

	v := Verdict{Discard: tile.String(), Max: q.Analysis.Max()}
	if c, ok := q.Analysis.Lookup(tile); ok {
		v.Score = c.Ukeire
		v.DiscardWaits = tileNames(c.WaitTiles())
	}
	v.Correct = v.Score == v.Max
	for _, c := range q.Analysis.Best() {
		v.Best = append(v.Best, Option{Discard: c.Discard.String(), Ukeire: c.Ukeire, Waits: tileNames(c.WaitTiles())})
	}
	return v, nil
}

// ParseRanks 取出答案里的数字 1-9，去重升序，其它字符忽略
func ParseRanks(answer string) []int {
	var seen [mahjong.NumRanks + 1]bool
	for _, r := range answer {
		if r >= '1' && r <= '9' {
			seen[r-'0'] = true
		}
	}
	var out []int
	for i := 1; i <= mahjong.NumRanks; i++ {
		if seen[i] {
			out = append(out, i)
		}
	}
	return out
}

// Hint 清一色题每个听牌对应的一种拆法，如 "3万: 将[3万 3万] + 顺[1万 2万 3万] + ..."
func (q *Question) Hint() []string {
	if q.Mode != entity.ModeUniform {
		return nil
	}
	var lines []string
	for _, w := range q.Waits {
		groups, ok := mahjong.DecomposeWin(q.Hand.With(w))
		if !ok {
			continue
		}
		parts := make([]string, len(groups))
		for i, g := range groups {
			parts[i] = g.String()
		}
		lines = append(lines, w.String()+": "+strings.Join(parts, " + "))
	}
	return lines
}

func tileNames(tiles []mahjong.TileType) []string {
	out := make([]string, len(tiles))
	for i, t := range tiles {
		out[i] = t.String()
	}
	return out
}

func sortHand(h mahjong.Hand) {
	sort.Slice(h, func(i, j int) bool { return h[i] < h[j] })
}
