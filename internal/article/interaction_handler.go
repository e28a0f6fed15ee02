package article

import (
	"github.com/gin-gonic/gin"

	"terminal-terrace/editorial/internal/dto"
	"terminal-terrace/editorial/internal/middleware"
	"terminal-terrace/editorial/internal/model"
	"terminal-terrace/editorial/internal/workflow"
)

// ListComments 评论列表
// @Summary 文章评论列表（分页），内部评论仅员工与团队成员可见
// @Tags Comment
// @Produce json
// @Param id path string true "文章ID"
// @Param kind query string false "PublicComment 或 EditorialComment"
// @Param page query int false "页码" default(1)
// @Param pageSize query int false "每页数量" default(20)
// @Success 200 {object} response.Response{data=workflow.Page[model.Interaction]}
// @Router /articles/{id}/comments [get]
func (h *ArticleHandler) ListComments(c *gin.Context) {
	kind := model.InteractionKind(c.Query("kind"))
	result, err := h.svc.ListInteractions(c.Request.Context(), middleware.CallerID(c), c.Param("id"), kind, pageOf(c))
	if err != nil {
		errorResponse(c, err, "获取评论失败")
		return
	}
	dto.SuccessResponse(c, pageResult(result))
}

func commentInput(c *gin.Context, req dto.CommentRequest) workflow.CommentInput {
	name := req.UserName
	if name == "" {
		name = c.GetString(middleware.UsernameKey)
	}
	return workflow.CommentInput{
		ArticleID: c.Param("id"),
		UserName:  name,
		Content:   req.Content,
		ParentID:  req.ParentID,
	}
}

// CreatePublicComment 发表公开评论
// @Summary 发表公开评论，文章须已发布且允许评论
// @Tags Comment
// @Accept json
// @Produce json
// @Param id path string true "文章ID"
// @Param request body dto.CommentRequest true "评论"
// @Success 200 {object} response.Response{data=model.Interaction}
// @Router /articles/{id}/comments [post]
func (h *ArticleHandler) CreatePublicComment(c *gin.Context) {
	var req dto.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}
	comment, err := h.svc.CreatePublicComment(c.Request.Context(), middleware.CallerID(c), commentInput(c, req))
	if err != nil {
		errorResponse(c, err, "发表评论失败")
		return
	}
	dto.SuccessResponse(c, comment)
}

// CreateEditorialComment 发表内部评论
// @Summary 发表编辑部内部评论
// @Tags Comment
// @Accept json
// @Produce json
// @Param id path string true "文章ID"
// @Param request body dto.CommentRequest true "评论"
// @Success 200 {object} response.Response{data=model.Interaction}
// @Router /articles/{id}/editorial-comments [post]
func (h *ArticleHandler) CreateEditorialComment(c *gin.Context) {
	var req dto.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}
	comment, err := h.svc.CreateEditorialComment(c.Request.Context(), middleware.CallerID(c), commentInput(c, req))
	if err != nil {
		errorResponse(c, err, "发表评论失败")
		return
	}
	dto.SuccessResponse(c, comment)
}

// UpdateComment 修改评论
// @Summary 修改自己的评论
// @Tags Comment
// @Accept json
// @Produce json
// @Param id path string true "评论ID"
// @Param request body dto.UpdateCommentRequest true "评论"
// @Success 200 {object} response.Response{data=model.Interaction}
// @Router /comments/{id} [put]
func (h *ArticleHandler) UpdateComment(c *gin.Context) {
	var req dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}
	comment, err := h.svc.UpdateInteraction(c.Request.Context(), middleware.CallerID(c), c.Param("id"), req.Content)
	if err != nil {
		errorResponse(c, err, "修改评论失败")
		return
	}
	dto.SuccessResponse(c, comment)
}

// DeleteComment 删除评论
// @Summary 删除评论，Bolsista 的删除进入审批队列
// @Tags Comment
// @Accept json
// @Produce json
// @Param id path string true "评论ID"
// @Param request body dto.DeleteCommentRequest false "删除理由"
// @Success 200 {object} response.Response{data=model.Interaction}
// @Router /comments/{id} [delete]
func (h *ArticleHandler) DeleteComment(c *gin.Context) {
	var req dto.DeleteCommentRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			dto.ValidationErrorResponse(c, err)
			return
		}
	}
	r, err := h.svc.DeleteInteraction(c.Request.Context(), middleware.CallerID(c), c.Param("id"), req.Reason)
	renderResult(c, r, err, "删除评论失败")
}
