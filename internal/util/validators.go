package util

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// NotEmptyTag 自定义校验标签
const NotEmptyTag = "not_empty"

// SlugTag slug 校验标签
const SlugTag = "slug"

// NotEmptyMessage 空字段的提示信息
const NotEmptyMessage = "内容不能为空"

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// Validate 表单校验器，服务层使用
var Validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	RegisterValidators(v)
	return v
}

// RegisterValidators 注册自定义校验规则，gin 的 binding 引擎也复用它
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation(NotEmptyTag, ValidateNotEmpty)
	_ = v.RegisterValidation(SlugTag, ValidateSlug)
}

// ValidateSlug 只允许字母、数字、下划线和连字符
func ValidateSlug(fl validator.FieldLevel) bool {
	return slugPattern.MatchString(fl.Field().String())
}

// ValidateNotEmpty 拒绝空值：空字符串（含仅空白）、nil 指针、零值
func ValidateNotEmpty(fl validator.FieldLevel) bool {
	return !IsEmpty(fl.Field())
}

// IsEmpty 判断值是否为空
func IsEmpty(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Invalid:
		return true
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			return true
		}
		return IsEmpty(v.Elem())
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	}
	return v.IsZero()
}

// ValidationFields 把校验错误转换成 字段名 -> 提示信息
func ValidationFields(err error) map[string]string {
	fields := make(map[string]string)
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		fields["_"] = err.Error()
		return fields
	}
	for _, fe := range errs {
		name := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case NotEmptyTag, "required":
			fields[name] = NotEmptyMessage
		case SlugTag:
			fields[name] = "只能包含字母、数字、下划线和连字符"
		default:
			fields[name] = fe.Error()
		}
	}
	return fields
}
