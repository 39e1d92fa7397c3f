package api

import (
	"errors"

	"tingtrainer/common/config"
	"tingtrainer/common/http"
	"tingtrainer/engines/mahjong"
	"tingtrainer/trainer"
)

// Handler 网关接口依赖
type Handler struct {
	searcher *mahjong.Searcher
	svc      *trainer.Service
	jwtConf  config.JwtConf
}

func NewHandler(searcher *mahjong.Searcher, svc *trainer.Service, jwtConf config.JwtConf) *Handler {
	return &Handler{searcher: searcher, svc: svc, jwtConf: jwtConf}
}

// toHttpError 领域错误映射成统一响应码
func toHttpError(err error) error {
	switch {
	case errors.Is(err, trainer.ErrQuestionNotFound):
		return http.NotFoundError("题目不存在或已过期", nil)
	case errors.Is(err, trainer.ErrUnknownMode),
		errors.Is(err, trainer.ErrBadAnswer),
		errors.Is(err, trainer.ErrTileNotInHand),
		errors.Is(err, mahjong.ErrUnknownTile),
		errors.Is(err, mahjong.ErrBadHandSize),
		errors.Is(err, mahjong.ErrTooManyCopies):
		return http.BadRequestError("请求参数错误", err)
	default:
		return err
	}
}
