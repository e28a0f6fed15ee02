package article

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"terminal-terrace/editorial/internal/dto"
	"terminal-terrace/editorial/internal/middleware"
	"terminal-terrace/editorial/internal/model"
	"terminal-terrace/editorial/internal/store"
	"terminal-terrace/editorial/internal/workflow"
)

type ArticleHandler struct {
	svc *workflow.Service
}

func NewArticleHandler(svc *workflow.Service) *ArticleHandler {
	return &ArticleHandler{svc: svc}
}

// pageOf 解析分页参数，page 从 1 开始
func pageOf(c *gin.Context) store.Page {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return store.Page{Page: page - 1, PageSize: pageSize}
}

// pageResult 返回给前端的页码同样从 1 开始
func pageResult[T any](p workflow.Page[T]) workflow.Page[T] {
	p.Page++
	return p
}

// ListArticles 文章列表
// @Summary 文章列表（分页），未登录或非员工只返回已发布文章
// @Tags Article
// @Produce json
// @Param status query string false "状态，可重复"
// @Param type query string false "类型"
// @Param volume_id query string false "期刊ID"
// @Param author_id query string false "作者ID"
// @Param page query int false "页码" default(1)
// @Param pageSize query int false "每页数量" default(20)
// @Success 200 {object} response.Response{data=workflow.Page[model.Article]}
// @Router /articles [get]
func (h *ArticleHandler) ListArticles(c *gin.Context) {
	filter := store.ArticleFilter{
		Type:     model.ArticleType(c.Query("type")),
		VolumeID: c.Query("volume_id"),
		AuthorID: c.Query("author_id"),
	}
	for _, s := range c.QueryArray("status") {
		filter.Statuses = append(filter.Statuses, model.ArticleStatus(s))
	}

	result, err := h.svc.ListArticles(c.Request.Context(), middleware.CallerID(c), filter, pageOf(c))
	if err != nil {
		errorResponse(c, err, "获取文章列表失败")
		return
	}
	dto.SuccessResponse(c, pageResult(result))
}

// CreateArticle 创建文章
// @Summary 创建文章，同时创建编辑记录与初始版本
// @Tags Article
// @Accept json
// @Produce json
// @Param request body dto.CreateArticleRequest true "创建文章请求"
// @Success 200 {object} response.Response{data=model.Article}
// @Router /articles [post]
func (h *ArticleHandler) CreateArticle(c *gin.Context) {
	var req dto.CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	in := workflow.CreateArticleInput{
		Title:               req.Title,
		Summary:             req.Summary,
		Type:                model.ArticleType(req.Type),
		UnlistedAuthorNames: req.UnlistedAuthorNames,
		VolumeID:            req.VolumeID,
		AllowComments:       req.AllowComments == nil || *req.AllowComments,
		Content:             req.Content,
		Media:               req.Media,
	}
	for _, a := range req.Authors {
		in.Authors = append(in.Authors, workflow.AuthorRef{UserID: a.UserID, Name: a.Name, AvatarURL: a.AvatarURL})
	}

	article, err := h.svc.CreateArticle(c.Request.Context(), middleware.CallerID(c), in)
	if err != nil {
		errorResponse(c, err, "创建文章失败")
		return
	}
	dto.SuccessResponse(c, article)
}

// GetArticle 获取文章详情
// @Summary 获取文章详情（包含当前版本内容）
// @Tags Article
// @Produce json
// @Param id path string true "文章ID"
// @Success 200 {object} response.Response{data=workflow.ArticleDetail}
// @Router /articles/{id} [get]
func (h *ArticleHandler) GetArticle(c *gin.Context) {
	detail, err := h.svc.GetArticle(c.Request.Context(), middleware.CallerID(c), c.Param("id"))
	if err != nil {
		errorResponse(c, err, "获取文章失败")
		return
	}
	dto.SuccessResponse(c, detail)
}

// UpdateMetadata 修改文章基本信息
// @Summary 修改文章基本信息，Bolsista 的修改进入审批队列
// @Tags Article
// @Accept json
// @Produce json
// @Param id path string true "文章ID"
// @Param request body dto.UpdateMetadataRequest true "修改内容"
// @Success 200 {object} response.Response{data=model.Article}
// @Router /articles/{id}/metadata [patch]
func (h *ArticleHandler) UpdateMetadata(c *gin.Context) {
	var req dto.UpdateMetadataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}
	r, err := h.svc.UpdateArticleMetadata(c.Request.Context(), middleware.CallerID(c), c.Param("id"), req.UpdateArticleMetadata, req.Commentary)
	renderResult(c, r, err, "修改文章失败")
}

// UpdateContent 提交新的内容版本
// @Summary 提交新的内容版本
// @Tags Article
// @Accept json
// @Produce json
// @Param id path string true "文章ID"
// @Param request body dto.UpdateContentRequest true "新内容"
// @Success 200 {object} response.Response{data=model.ContentHistory}
// @Router /articles/{id}/content [put]
func (h *ArticleHandler) UpdateContent(c *gin.Context) {
	var req dto.UpdateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}
	r, err := h.svc.UpdateArticleContent(c.Request.Context(), middleware.CallerID(c), c.Param("id"), req.UpdateArticleContent, req.Commentary)
	renderResult(c, r, err, "提交内容失败")
}

// ChangeStatus 修改文章状态
// @Summary 修改文章状态与编辑流程位置
// @Tags Article
// @Accept json
// @Produce json
// @Param id path string true "文章ID"
// @Param request body dto.ChangeStatusRequest true "新状态"
// @Success 200 {object} response.Response{data=model.Article}
// @Router /articles/{id}/status [patch]
func (h *ArticleHandler) ChangeStatus(c *gin.Context) {
	var req dto.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}
	r, err := h.svc.ChangeArticleStatus(c.Request.Context(), middleware.CallerID(c), c.Param("id"), req.ChangeArticleStatus, req.Commentary)
	renderResult(c, r, err, "修改状态失败")
}

// UpdateTeam 修改编辑团队
// @Summary 修改编辑团队
// @Tags Article
// @Accept json
// @Produce json
// @Param id path string true "文章ID"
// @Param request body dto.UpdateTeamRequest true "团队角色列表"
// @Success 200 {object} response.Response{data=model.EditorialRecord}
// @Router /articles/{id}/team [put]
func (h *ArticleHandler) UpdateTeam(c *gin.Context) {
	var req dto.UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}
	r, err := h.svc.UpdateEditorialTeam(c.Request.Context(), middleware.CallerID(c), c.Param("id"), req.UpdateEditorialTeam, req.Commentary)
	renderResult(c, r, err, "修改编辑团队失败")
}

// GetEditorial 编辑记录
// @Summary 获取文章的编辑记录（员工或团队成员）
// @Tags Article
// @Produce json
// @Param id path string true "文章ID"
// @Success 200 {object} response.Response{data=model.EditorialRecord}
// @Router /articles/{id}/editorial [get]
func (h *ArticleHandler) GetEditorial(c *gin.Context) {
	record, err := h.svc.GetEditorialRecord(c.Request.Context(), middleware.CallerID(c), c.Param("id"))
	if err != nil {
		errorResponse(c, err, "获取编辑记录失败")
		return
	}
	dto.SuccessResponse(c, record)
}

// GetVersions 版本列表
// @Summary 获取文章的全部内容版本
// @Tags Article
// @Produce json
// @Param id path string true "文章ID"
// @Success 200 {object} response.Response{data=[]model.ContentHistory}
// @Router /articles/{id}/versions [get]
func (h *ArticleHandler) GetVersions(c *gin.Context) {
	versions, err := h.svc.ListVersions(c.Request.Context(), middleware.CallerID(c), c.Param("id"))
	if err != nil {
		errorResponse(c, err, "获取版本列表失败")
		return
	}
	dto.SuccessResponse(c, versions)
}

// GetVersion 获取特定版本内容
// @Summary 获取特定版本内容
// @Tags Version
// @Produce json
// @Param id path string true "版本ID"
// @Success 200 {object} response.Response{data=model.ContentHistory}
// @Router /versions/{id} [get]
func (h *ArticleHandler) GetVersion(c *gin.Context) {
	version, err := h.svc.GetVersion(c.Request.Context(), middleware.CallerID(c), c.Param("id"))
	if err != nil {
		errorResponse(c, err, "获取版本失败")
		return
	}
	dto.SuccessResponse(c, version)
}

// GetVersionDiff 版本差异
// @Summary 比较两个版本
// @Tags Version
// @Produce json
// @Param id path string true "起始版本ID"
// @Param to query string true "目标版本ID"
// @Success 200 {object} response.Response{data=history.Diff}
// @Router /versions/{id}/diff [get]
func (h *ArticleHandler) GetVersionDiff(c *gin.Context) {
	to := c.Query("to")
	if to == "" {
		dto.ValidationErrorResponse(c, errMissingQuery("to"))
		return
	}
	diff, err := h.svc.DiffVersions(c.Request.Context(), middleware.CallerID(c), c.Param("id"), to)
	if err != nil {
		errorResponse(c, err, "比较版本失败")
		return
	}
	dto.SuccessResponse(c, diff)
}

// AddStaffComment 添加版本批注
// @Summary 在版本上添加批注
// @Tags Version
// @Accept json
// @Produce json
// @Param id path string true "版本ID"
// @Param request body dto.StaffCommentRequest true "批注"
// @Success 200 {object} response.Response{data=model.StaffComment}
// @Router /versions/{id}/staff-comments [post]
func (h *ArticleHandler) AddStaffComment(c *gin.Context) {
	var req dto.StaffCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}
	comment, err := h.svc.AddStaffComment(c.Request.Context(), middleware.CallerID(c), c.Param("id"), req.Text, req.ParentID)
	if err != nil {
		errorResponse(c, err, "添加批注失败")
		return
	}
	dto.SuccessResponse(c, comment)
}

// UpdateStaffComment 修改版本批注
// @Summary 修改自己的批注
// @Tags Version
// @Accept json
// @Produce json
// @Param id path string true "版本ID"
// @Param commentId path string true "批注ID"
// @Param request body dto.StaffCommentRequest true "批注"
// @Success 200 {object} response.Response{data=model.StaffComment}
// @Router /versions/{id}/staff-comments/{commentId} [put]
func (h *ArticleHandler) UpdateStaffComment(c *gin.Context) {
	var req dto.StaffCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}
	comment, err := h.svc.UpdateStaffComment(c.Request.Context(), middleware.CallerID(c), c.Param("id"), c.Param("commentId"), req.Text)
	if err != nil {
		errorResponse(c, err, "修改批注失败")
		return
	}
	dto.SuccessResponse(c, comment)
}

// DeleteStaffComment 删除版本批注
// @Summary 删除批注
// @Tags Version
// @Produce json
// @Param id path string true "版本ID"
// @Param commentId path string true "批注ID"
// @Success 200 {object} response.Response
// @Router /versions/{id}/staff-comments/{commentId} [delete]
func (h *ArticleHandler) DeleteStaffComment(c *gin.Context) {
	if err := h.svc.DeleteStaffComment(c.Request.Context(), middleware.CallerID(c), c.Param("id"), c.Param("commentId")); err != nil {
		errorResponse(c, err, "删除批注失败")
		return
	}
	dto.SuccessResponse(c, nil)
}
