package article

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"terminal-terrace/editorial/internal/dto"
	"terminal-terrace/editorial/internal/history"
	"terminal-terrace/editorial/internal/workflow"
	"terminal-terrace/editorial/pkg/response"
)

// toBusinessError 将服务层错误映射为业务错误码
func toBusinessError(err error, fallback string) *response.BusinessError {
	if be, ok := response.AsBusinessError(err); ok {
		return be
	}

	code, msg := response.Fail, fallback
	switch {
	case errors.Is(err, workflow.ErrResolutionFailed):
		code, msg = response.Fail, "审批执行失败，请求仍待处理"
	case errors.Is(err, workflow.ErrNotFound):
		code, msg = response.NotFound, "资源不存在"
	case errors.Is(err, workflow.ErrUnauthorized):
		code, msg = response.Forbidden, "无权限执行此操作"
	case errors.Is(err, workflow.ErrInvalidInput),
		errors.Is(err, workflow.ErrUnknownCommand),
		errors.Is(err, history.ErrEmptyComment):
		code, msg = response.InvalidParameter, "参数错误"
	case errors.Is(err, workflow.ErrInvalidOperation):
		code, msg = response.Conflict, "当前状态不允许该操作"
	}
	return response.NewBusinessError(
		response.WithErrorCode(code),
		response.WithErrorMessage(msg+": "+err.Error()),
		response.WithError(err),
	)
}

func errorResponse(c *gin.Context, err error, fallback string) {
	_ = c.Error(err)
	dto.ErrorResponse(c, toBusinessError(err, fallback))
}

// renderResult 受控命令的结果：已执行返回实体，已推迟返回待审批请求
func renderResult[T any](c *gin.Context, r workflow.Result[T], err error, fallback string) {
	if err != nil {
		errorResponse(c, err, fallback)
		return
	}
	if r.Deferred() {
		dto.DeferredResponse(c, r.Pending)
		return
	}
	dto.SuccessResponse(c, r.Value)
}

func errMissingQuery(name string) error {
	return fmt.Errorf("缺少查询参数 %s", name)
}
