package api

import (
	"tingtrainer/common/http"
	"tingtrainer/core/domain/entity"
	"tingtrainer/trainer"
)

type questionView struct {
	QuestionID string   `json:"questionID"`
	Mode       string   `json:"mode"`
	Hand       []string `json:"hand"`
	Ranks      string   `json:"ranks,omitempty"`
}

// DealHandler 发一道题，答案留在服务端缓存
func (h *Handler) DealHandler(c *http.Context) error {
	mode, err := trainer.ParseMode(c.GetParam("mode"))
	if err != nil {
		return toHttpError(err)
	}
	q, err := h.svc.Deal(c.Player(), mode)
	if err != nil {
		return toHttpError(err)
	}
	view := questionView{QuestionID: q.ID, Mode: q.Mode}
	for _, t := range q.Hand {
		view.Hand = append(view.Hand, t.String())
	}
	if q.Mode == entity.ModeUniform {
		view.Ranks = q.Ranks()
	}
	c.Success(view)
	return nil
}

func (h *Handler) AnswerHandler(c *http.Context) error {
	var req struct {
		QuestionID string `json:"questionID" binding:"required"`
		Answer     string `json:"answer" binding:"required"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("请求参数错误")
		return nil
	}
	res, err := h.svc.Answer(c.Ctx(), c.Player(), req.QuestionID, req.Answer)
	if err != nil {
		return toHttpError(err)
	}
	c.Success(map[string]any{
		"verdict": res.Verdict,
		"session": map[string]any{
			"uid":     res.Session.UID,
			"correct": res.Session.Correct,
			"total":   res.Session.Total,
			"avgTime": res.Session.AvgTime(),
		},
	})
	return nil
}

// HintHandler 只有清一色题有提示
func (h *Handler) HintHandler(c *http.Context) error {
	q, err := h.svc.Question(c.Player(), c.GetParam("id"))
	if err != nil {
		return toHttpError(err)
	}
	c.Success(map[string]any{"hints": q.Hint()})
	return nil
}
