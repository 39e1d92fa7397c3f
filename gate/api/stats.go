package api

import (
	"tingtrainer/common/http"
	"tingtrainer/trainer"
)

// StatsHandler mode 为空时汇总全部模式
func (h *Handler) StatsHandler(c *http.Context) error {
	mode := c.GetQuery("mode")
	if mode != "" {
		parsed, err := trainer.ParseMode(mode)
		if err != nil {
			return toHttpError(err)
		}
		mode = parsed
	}
	summary, err := h.svc.Summary(c.Ctx(), c.Player(), mode)
	if err != nil {
		return err
	}
	c.Success(summary)
	return nil
}
