package http

import (
	"errors"
	"net/http"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

const (
	CodeSuccess      = 0     // 成功
	CodeError        = -1    // 通用错误
	CodeInvalidParam = 10001 // 参数错误
	CodeUnauthorized = 10002 // 未授权
	CodeNotFound     = 10004 // 资源不存在
	CodeServerError  = 10005 // 服务器内部错误
)

const (
	MsgSuccess      = "success"
	MsgInvalidParam = "invalid parameters"
	MsgUnauthorized = "unauthorized"
	MsgNotFound     = "not found"
	MsgServerError  = "internal server error"
)

// CodedError handler 返回它时按其中的码响应，其它 error 一律 500
type CodedError struct {
	Status  int
	Code    int
	Message string
	Err     error
}

func (e *CodedError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *CodedError) Unwrap() error { return e.Err }

func BadRequestError(message string, err error) error {
	return &CodedError{Status: http.StatusBadRequest, Code: CodeInvalidParam, Message: message, Err: err}
}

func NotFoundError(message string, err error) error {
	return &CodedError{Status: http.StatusNotFound, Code: CodeNotFound, Message: message, Err: err}
}

func NewResponse(code int, message string, data interface{}) *Response {
	return &Response{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

func (c *Context) Success(data interface{}) {
	c.JSON(http.StatusOK, NewResponse(CodeSuccess, MsgSuccess, data))
}

// ErrorWithCode 业务错误，HTTP 状态仍是 200
func (c *Context) ErrorWithCode(code int, message string) {
	c.JSON(http.StatusOK, NewResponse(code, message, nil))
}

func (c *Context) BadRequest(message string) {
	if message == "" {
		message = MsgInvalidParam
	}
	c.JSON(http.StatusBadRequest, NewResponse(CodeInvalidParam, message, nil))
}

func (c *Context) Unauthorized(message string) {
	if message == "" {
		message = MsgUnauthorized
	}
	c.JSON(http.StatusUnauthorized, NewResponse(CodeUnauthorized, message, nil))
}

func (c *Context) NotFound(message string) {
	if message == "" {
		message = MsgNotFound
	}
	c.JSON(http.StatusNotFound, NewResponse(CodeNotFound, message, nil))
}

func (c *Context) InternalServerError(message string) {
	if message == "" {
		message = MsgServerError
	}
	c.JSON(http.StatusInternalServerError, NewResponse(CodeServerError, message, nil))
}

// Fail 把 handler 返回的 error 转成统一响应
func (c *Context) Fail(err error) {
	var coded *CodedError
	if errors.As(err, &coded) {
		msg := coded.Message
		if coded.Err != nil {
			msg = coded.Error()
		}
		c.JSON(coded.Status, NewResponse(coded.Code, msg, nil))
		return
	}
	c.InternalServerError(err.Error())
}
