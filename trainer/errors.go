package trainer

import "errors"

var (
	ErrUnknownMode      = errors.New("unknown training mode")
	ErrBadAnswer        = errors.New("bad answer")
	ErrTileNotInHand    = errors.New("tile not in hand")
	ErrQuestionNotFound = errors.New("question not found or expired")
	ErrDealExhausted    = errors.New("no playable hand dealt")
)
