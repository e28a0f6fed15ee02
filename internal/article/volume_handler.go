package article

import (
	"github.com/gin-gonic/gin"

	"terminal-terrace/editorial/internal/dto"
	"terminal-terrace/editorial/internal/middleware"
)

// ListVolumes 期刊列表
// @Summary 期刊列表（分页，按期号倒序）
// @Tags Volume
// @Produce json
// @Param page query int false "页码" default(1)
// @Param pageSize query int false "每页数量" default(20)
// @Success 200 {object} response.Response{data=workflow.Page[model.Volume]}
// @Router /volumes [get]
func (h *ArticleHandler) ListVolumes(c *gin.Context) {
	result, err := h.svc.ListVolumes(c.Request.Context(), pageOf(c))
	if err != nil {
		errorResponse(c, err, "获取期刊列表失败")
		return
	}
	dto.SuccessResponse(c, pageResult(result))
}

// GetVolume 期刊详情
// @Summary 期刊详情
// @Tags Volume
// @Produce json
// @Param id path string true "期刊ID"
// @Success 200 {object} response.Response{data=model.Volume}
// @Router /volumes/{id} [get]
func (h *ArticleHandler) GetVolume(c *gin.Context) {
	volume, err := h.svc.GetVolume(c.Request.Context(), c.Param("id"))
	if err != nil {
		errorResponse(c, err, "获取期刊失败")
		return
	}
	dto.SuccessResponse(c, volume)
}

// CreateVolume 创建期刊
// @Summary 创建期刊
// @Tags Volume
// @Accept json
// @Produce json
// @Param request body dto.CreateVolumeRequest true "期刊信息"
// @Success 200 {object} response.Response{data=model.Volume}
// @Router /volumes [post]
func (h *ArticleHandler) CreateVolume(c *gin.Context) {
	var req dto.CreateVolumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}
	r, err := h.svc.CreateVolume(c.Request.Context(), middleware.CallerID(c), req.CreateVolume, req.Commentary)
	renderResult(c, r, err, "创建期刊失败")
}

// UpdateVolume 修改期刊
// @Summary 修改期刊信息
// @Tags Volume
// @Accept json
// @Produce json
// @Param id path string true "期刊ID"
// @Param request body dto.UpdateVolumeRequest true "修改内容"
// @Success 200 {object} response.Response{data=model.Volume}
// @Router /volumes/{id} [patch]
func (h *ArticleHandler) UpdateVolume(c *gin.Context) {
	var req dto.UpdateVolumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}
	r, err := h.svc.UpdateVolume(c.Request.Context(), middleware.CallerID(c), c.Param("id"), req.UpdateVolume, req.Commentary)
	renderResult(c, r, err, "修改期刊失败")
}
