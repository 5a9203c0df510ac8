package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestFieldError_IsValidation(t *testing.T) {
	err := fmt.Errorf("创建员工: %w", NewFieldError("email", "邮箱已存在"))

	if !errors.Is(err, ErrValidation) {
		t.Fatal("包装后的 FieldError 应满足 errors.Is(err, ErrValidation)")
	}
	fe, ok := AsFieldError(err)
	if !ok {
		t.Fatal("应能取出 FieldError")
	}
	if fe.Field != "email" {
		t.Errorf("Field = %q, want email", fe.Field)
	}
	if fe.Error() != "email: 邮箱已存在" {
		t.Errorf("Error() = %q", fe.Error())
	}
}

func TestFieldError_NotOtherErrors(t *testing.T) {
	if errors.Is(errors.New("x"), ErrValidation) {
		t.Error("普通错误不应被识别为校验错误")
	}
	if _, ok := AsFieldError(errors.New("x")); ok {
		t.Error("普通错误不应取出 FieldError")
	}
}
