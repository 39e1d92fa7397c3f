package repository

import "errors"

var (
	ErrUnknownDriver = errors.New("unknown stats driver")
	ErrInvalidRecord = errors.New("invalid session record")
)
