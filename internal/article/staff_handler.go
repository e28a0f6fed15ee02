package article

import (
	"github.com/gin-gonic/gin"

	"terminal-terrace/editorial/internal/dto"
	"terminal-terrace/editorial/internal/middleware"
)

// GetMe 当前用户的员工记录
// @Summary 当前用户的员工记录
// @Tags Staff
// @Produce json
// @Success 200 {object} response.Response{data=model.Staff}
// @Router /staff/me [get]
func (h *ArticleHandler) GetMe(c *gin.Context) {
	staff, err := h.svc.GetStaff(c.Request.Context(), middleware.CallerID(c))
	if err != nil {
		errorResponse(c, err, "获取员工信息失败")
		return
	}
	dto.SuccessResponse(c, staff)
}

// ListStaff 员工列表
// @Summary 员工列表（分页，员工）
// @Tags Staff
// @Produce json
// @Param page query int false "页码" default(1)
// @Param pageSize query int false "每页数量" default(20)
// @Success 200 {object} response.Response{data=workflow.Page[model.Staff]}
// @Router /staff [get]
func (h *ArticleHandler) ListStaff(c *gin.Context) {
	result, err := h.svc.ListStaff(c.Request.Context(), middleware.CallerID(c), pageOf(c))
	if err != nil {
		errorResponse(c, err, "获取员工列表失败")
		return
	}
	dto.SuccessResponse(c, pageResult(result))
}

// CreateStaff 创建员工
// @Summary 创建员工，Bolsista 的请求进入审批队列
// @Tags Staff
// @Accept json
// @Produce json
// @Param request body dto.CreateStaffRequest true "员工信息"
// @Success 200 {object} response.Response{data=model.Staff}
// @Router /staff [post]
func (h *ArticleHandler) CreateStaff(c *gin.Context) {
	var req dto.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}
	r, err := h.svc.CreateStaff(c.Request.Context(), middleware.CallerID(c), req.CreateStaff, req.Commentary)
	renderResult(c, r, err, "创建员工失败")
}

// UpdateStaff 修改员工
// @Summary 修改员工职级、在职状态或展示信息
// @Tags Staff
// @Accept json
// @Produce json
// @Param id path string true "员工ID"
// @Param request body dto.UpdateStaffRequest true "修改内容"
// @Success 200 {object} response.Response{data=model.Staff}
// @Router /staff/{id} [patch]
func (h *ArticleHandler) UpdateStaff(c *gin.Context) {
	var req dto.UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}
	r, err := h.svc.UpdateStaff(c.Request.Context(), middleware.CallerID(c), c.Param("id"), req.UpdateStaff, req.Commentary)
	renderResult(c, r, err, "修改员工失败")
}

// UpsertMe 绑定当前用户的作者信息
// @Summary 创建或更新当前用户的作者记录
// @Tags Author
// @Accept json
// @Produce json
// @Param request body dto.UpsertAuthorRequest true "作者信息"
// @Success 200 {object} response.Response{data=model.Author}
// @Router /authors/me [put]
func (h *ArticleHandler) UpsertMe(c *gin.Context) {
	var req dto.UpsertAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}
	name := req.Name
	if name == "" {
		name = c.GetString(middleware.UsernameKey)
	}
	author, err := h.svc.UpsertAuthor(c.Request.Context(), middleware.CallerID(c), name, req.AvatarURL)
	if err != nil {
		errorResponse(c, err, "保存作者信息失败")
		return
	}
	dto.SuccessResponse(c, author)
}
