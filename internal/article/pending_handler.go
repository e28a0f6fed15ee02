package article

import (
	"github.com/gin-gonic/gin"

	"terminal-terrace/editorial/internal/dto"
	"terminal-terrace/editorial/internal/middleware"
	"terminal-terrace/editorial/internal/model"
	"terminal-terrace/editorial/internal/store"
	"terminal-terrace/editorial/internal/workflow"
)

// ListPending 待审批请求列表
// @Summary 待审批请求列表（员工）
// @Tags Pending
// @Produce json
// @Param status query string false "状态"
// @Param target_id query string false "目标ID"
// @Param requester_id query string false "申请人ID"
// @Param page query int false "页码" default(1)
// @Param pageSize query int false "每页数量" default(20)
// @Success 200 {object} response.Response{data=workflow.Page[model.Pending]}
// @Router /pending [get]
func (h *ArticleHandler) ListPending(c *gin.Context) {
	filter := store.PendingFilter{
		Status:      model.PendingStatus(c.Query("status")),
		TargetID:    c.Query("target_id"),
		RequesterID: c.Query("requester_id"),
	}
	result, err := h.svc.ListPendingRequests(c.Request.Context(), middleware.CallerID(c), filter, pageOf(c))
	if err != nil {
		errorResponse(c, err, "获取审批列表失败")
		return
	}
	dto.SuccessResponse(c, pageResult(result))
}

// GetPending 待审批请求详情
// @Summary 待审批请求详情（员工）
// @Tags Pending
// @Produce json
// @Param id path string true "请求ID"
// @Success 200 {object} response.Response{data=model.Pending}
// @Router /pending/{id} [get]
func (h *ArticleHandler) GetPending(c *gin.Context) {
	p, err := h.svc.GetPendingRequest(c.Request.Context(), middleware.CallerID(c), c.Param("id"))
	if err != nil {
		errorResponse(c, err, "获取审批请求失败")
		return
	}
	dto.SuccessResponse(c, p)
}

// CreatePending 提交待审批请求
// @Summary 直接提交一条待审批请求（Bolsista 与 Administrador）
// @Tags Pending
// @Accept json
// @Produce json
// @Param request body dto.CreatePendingRequest true "请求"
// @Success 200 {object} response.Response{data=model.Pending}
// @Router /pending [post]
func (h *ArticleHandler) CreatePending(c *gin.Context) {
	var req dto.CreatePendingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}
	p, err := h.svc.CreatePendingRequest(c.Request.Context(), middleware.CallerID(c), workflow.PendingInput{
		TargetID:      req.TargetID,
		TargetType:    model.TargetType(req.TargetType),
		CommandType:   req.CommandType,
		CommandParams: string(req.CommandParams),
		Commentary:    req.Commentary,
	})
	if err != nil {
		errorResponse(c, err, "提交审批请求失败")
		return
	}
	dto.SuccessResponse(c, p)
}

// ResolvePending 处理待审批请求
// @Summary 批准或拒绝待审批请求（EditorChefe 与 Administrador）
// @Tags Pending
// @Accept json
// @Produce json
// @Param id path string true "请求ID"
// @Param request body dto.ResolvePendingRequest true "处理结果"
// @Success 200 {object} response.Response{data=model.Pending}
// @Router /pending/{id}/resolve [post]
func (h *ArticleHandler) ResolvePending(c *gin.Context) {
	var req dto.ResolvePendingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}
	p, err := h.svc.ResolvePendingRequest(c.Request.Context(), c.Param("id"), middleware.CallerID(c), *req.Approve)
	if err != nil {
		errorResponse(c, err, "处理审批请求失败")
		return
	}
	dto.SuccessResponse(c, p)
}
