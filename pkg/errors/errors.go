package errors

import (
	"errors"
	"fmt"
)

// ErrValidation 所有字段校验错误的公共哨兵，errors.Is(err, ErrValidation) 用于识别 400 类错误
var ErrValidation = errors.New("参数校验失败")

// FieldError 绑定到某个请求字段的校验错误
type FieldError struct {
	Field   string
	Message string
}

// NewFieldError 构造字段校验错误
func NewFieldError(field, message string) *FieldError {
	return &FieldError{Field: field, Message: message}
}

// Fieldf 以格式化消息构造字段校验错误
func Fieldf(field, format string, args ...any) *FieldError {
	return &FieldError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func (e *FieldError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Is 使 errors.Is(err, ErrValidation) 对任意 FieldError 成立
func (e *FieldError) Is(target error) bool {
	return target == ErrValidation
}

// AsFieldError 从错误链中取出 FieldError
func AsFieldError(err error) (*FieldError, bool) {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
