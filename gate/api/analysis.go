package api

import (
	"tingtrainer/common/http"
	"tingtrainer/engines/mahjong"
)

type handRequest struct {
	Tiles string `json:"tiles" binding:"required"` // "1w 2w 3w ..." 或 "1万,2万,..."
	Rule  string `json:"rule"`                     // exact | wildcard
}

type waitView struct {
	Tile      string `json:"tile"`
	Remaining int    `json:"remaining"`
}

type candidateView struct {
	Discard string     `json:"discard"`
	Ukeire  int        `json:"ukeire"`
	Waits   []waitView `json:"waits"`
}

func bindHand(c *http.Context, size int) (mahjong.Hand, mahjong.Rule, error) {
	var req handRequest
	if err := c.BindJSON(&req); err != nil {
		return nil, 0, http.BadRequestError("请求参数错误", err)
	}
	hand, err := mahjong.ParseHand(req.Tiles)
	if err != nil {
		return nil, 0, toHttpError(err)
	}
	if err := hand.Validate(size); err != nil {
		return nil, 0, toHttpError(err)
	}
	rule, err := mahjong.ParseRule(req.Rule)
	if err != nil {
		return nil, 0, http.BadRequestError("请求参数错误", err)
	}
	return hand, rule, nil
}

func toWaitViews(waits []mahjong.Wait) []waitView {
	out := make([]waitView, len(waits))
	for i, w := range waits {
		out[i] = waitView{Tile: w.Tile.String(), Remaining: w.Remaining}
	}
	return out
}

func toCandidateViews(cs []mahjong.Candidate) []candidateView {
	out := make([]candidateView, len(cs))
	for i, c := range cs {
		out[i] = candidateView{Discard: c.Discard.String(), Ukeire: c.Ukeire, Waits: toWaitViews(c.Waits)}
	}
	return out
}

// WinHandler 14 张是否和牌；无癞子规则下附带一种拆法
func (h *Handler) WinHandler(c *http.Context) error {
	hand, rule, err := bindHand(c, mahjong.WinningHandSize)
	if err != nil {
		return err
	}
	resp := map[string]any{"rule": rule.String(), "win": h.searcher.IsWin(hand, rule)}
	if rule == mahjong.RuleExact {
		if groups, ok := mahjong.DecomposeWin(hand); ok {
			parts := make([]string, len(groups))
			for i, g := range groups {
				parts[i] = g.String()
			}
			resp["groups"] = parts
		}
	}
	c.Success(resp)
	return nil
}

func (h *Handler) WaitsHandler(c *http.Context) error {
	hand, rule, err := bindHand(c, mahjong.WaitingHandSize)
	if err != nil {
		return err
	}
	waits, ukeire := h.searcher.WaitsAndUkeire(hand, rule)
	c.Success(map[string]any{
		"rule":   rule.String(),
		"waits":  toWaitViews(waits),
		"ukeire": ukeire,
	})
	return nil
}

func (h *Handler) DiscardsHandler(c *http.Context) error {
	hand, rule, err := bindHand(c, mahjong.WinningHandSize)
	if err != nil {
		return err
	}
	analysis := h.searcher.BestDiscards(hand, rule)
	c.Success(map[string]any{
		"rule":       rule.String(),
		"unplayable": analysis.Unplayable(),
		"max":        analysis.Max(),
		"candidates": toCandidateViews(analysis),
		"best":       toCandidateViews(analysis.Best()),
	})
	return nil
}
