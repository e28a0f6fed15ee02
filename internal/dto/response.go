package dto

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	res "terminal-terrace/editorial/pkg/response"
)

func SuccessResponse(c *gin.Context, data any) {
	c.JSON(200, res.SuccessResponse(data))
}

// DeferredResponse 操作已转为待审批请求，data 为请求记录
func DeferredResponse(c *gin.Context, data any) {
	c.JSON(200, res.DeferredResponse(data))
}

func ErrorResponse(c *gin.Context, err *res.BusinessError) {
	c.JSON(200, res.ErrorResponse(err.Code, err.Msg))
}

// ValidationErrorResponse 处理验证错误，返回友好的JSON字段名
func ValidationErrorResponse(c *gin.Context, err error) {
	if validationErrs, ok := err.(validator.ValidationErrors); ok && len(validationErrs) > 0 {
		firstErr := validationErrs[0]
		jsonField := toSnakeCase(firstErr.Field())

		var message string
		switch firstErr.Tag() {
		case "required":
			message = fmt.Sprintf("字段 '%s' 是必填项", jsonField)
		case "max":
			message = fmt.Sprintf("字段 '%s' 长度不能超过 %s", jsonField, firstErr.Param())
		case "min":
			message = fmt.Sprintf("字段 '%s' 长度不能少于 %s", jsonField, firstErr.Param())
		case "oneof":
			message = fmt.Sprintf("字段 '%s' 必须是以下值之一: %s", jsonField, firstErr.Param())
		default:
			message = fmt.Sprintf("字段 '%s' 验证失败: %s", jsonField, firstErr.Tag())
		}

		ErrorResponse(c, res.NewBusinessError(
			res.WithErrorCode(res.ParseError),
			res.WithErrorMessage(message),
		))
		return
	}

	ErrorResponse(c, res.NewBusinessError(
		res.WithErrorCode(res.ParseError),
		res.WithErrorMessage("参数错误: "+err.Error()),
	))
}

// toSnakeCase 将PascalCase转换为snake_case
func toSnakeCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune('_')
		}
		result.WriteRune(r)
	}
	return strings.ToLower(result.String())
}
