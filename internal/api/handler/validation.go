package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	pkgerrors "hrms/pkg/errors"
	"hrms/pkg/response"
)

// 参数校验失败的统一业务码
const codeInvalidParams = 10001

var registerTagNameOnce sync.Once

// registerTagNameFunc 让校验错误报告 json / form 标签名而非 Go 字段名
func registerTagNameFunc() {
	registerTagNameOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, key := range []string{"json", "form"} {
				name := strings.SplitN(fld.Tag.Get(key), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return fld.Name
		})
	})
}

// bindJSON 绑定请求体，失败时写入 400 响应
func bindJSON(c *gin.Context, dst any) bool {
	registerTagNameFunc()
	if err := c.ShouldBindJSON(dst); err != nil {
		respondBindError(c, err)
		return false
	}
	return true
}

// bindQuery 绑定查询参数，未声明的参数被忽略
func bindQuery(c *gin.Context, dst any) bool {
	registerTagNameFunc()
	if err := c.ShouldBindQuery(dst); err != nil {
		respondBindError(c, err)
		return false
	}
	return true
}

// respondBindError 将绑定错误转换为带字段名的 400 响应
func respondBindError(c *gin.Context, err error) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		response.Error(c, http.StatusRequestEntityTooLarge, 10005, "请求体过大")
		return
	}

	fe := bindErrorToField(err)
	response.ValidationFailed(c, codeInvalidParams, fe.Field, fe.Message)
}

func bindErrorToField(err error) *pkgerrors.FieldError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return validationMessage(verrs[0])
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return pkgerrors.Fieldf(typeErr.Field, "类型错误，期望 %s", typeErr.Type.String())
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return pkgerrors.NewFieldError("", "请求体不是合法的 JSON")
	}

	return pkgerrors.NewFieldError("", "参数校验失败")
}

func validationMessage(fe validator.FieldError) *pkgerrors.FieldError {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return pkgerrors.NewFieldError(field, "该字段为必填项")
	case "email":
		return pkgerrors.NewFieldError(field, "邮箱格式错误")
	case "uuid":
		return pkgerrors.NewFieldError(field, "ID 格式错误")
	case "datetime":
		return pkgerrors.Fieldf(field, "日期格式应为 %s", fe.Param())
	case "oneof":
		return pkgerrors.Fieldf(field, "取值必须为 [%s] 之一", fe.Param())
	case "max":
		return pkgerrors.Fieldf(field, "超出上限 %s", fe.Param())
	case "min":
		return pkgerrors.Fieldf(field, "低于下限 %s", fe.Param())
	case "gte", "gt", "lt", "lte":
		return pkgerrors.Fieldf(field, "数值超出范围 (%s %s)", fe.Tag(), fe.Param())
	case "number":
		return pkgerrors.NewFieldError(field, "必须为数字")
	default:
		return pkgerrors.NewFieldError(field, fmt.Sprintf("校验失败: %s", fe.Tag()))
	}
}

// respondValidationError 业务层校验失败时写入带字段名的 400 响应
func respondValidationError(c *gin.Context, code int, err error) {
	if fe, ok := pkgerrors.AsFieldError(err); ok {
		response.ValidationFailed(c, code, fe.Field, fe.Message)
		return
	}
	response.BadRequest(c, code, err.Error())
}
