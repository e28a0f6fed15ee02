package article

import (
	"github.com/gin-gonic/gin"

	"terminal-terrace/editorial/internal/middleware"
	"terminal-terrace/editorial/internal/workflow"
)

// SetupArticleRoutes 设置编辑部相关路由
func SetupArticleRoutes(r *gin.RouterGroup, svc *workflow.Service, jwtSecret string) {
	h := NewArticleHandler(svc)
	auth := middleware.JWTAuth(jwtSecret)
	optional := middleware.OptionalJWTAuth(jwtSecret)

	// 文章路由 - 可选认证
	articlesOptional := r.Group("/articles")
	articlesOptional.Use(optional)
	{
		articlesOptional.GET("", h.ListArticles)
		articlesOptional.GET("/:id", h.GetArticle)
		articlesOptional.GET("/:id/comments", h.ListComments)
	}

	// 文章路由 - 需要认证
	articlesAuth := r.Group("/articles")
	articlesAuth.Use(auth)
	{
		articlesAuth.POST("", h.CreateArticle)
		articlesAuth.PATCH("/:id/metadata", h.UpdateMetadata)
		articlesAuth.PUT("/:id/content", h.UpdateContent)
		articlesAuth.PATCH("/:id/status", h.ChangeStatus)
		articlesAuth.PUT("/:id/team", h.UpdateTeam)
		articlesAuth.GET("/:id/editorial", h.GetEditorial)
		articlesAuth.GET("/:id/versions", h.GetVersions)
		articlesAuth.POST("/:id/comments", h.CreatePublicComment)
		articlesAuth.POST("/:id/editorial-comments", h.CreateEditorialComment)
	}

	// 版本路由
	versions := r.Group("/versions")
	versions.Use(auth)
	{
		versions.GET("/:id", h.GetVersion)
		versions.GET("/:id/diff", h.GetVersionDiff)
		versions.POST("/:id/staff-comments", h.AddStaffComment)
		versions.PUT("/:id/staff-comments/:commentId", h.UpdateStaffComment)
		versions.DELETE("/:id/staff-comments/:commentId", h.DeleteStaffComment)
	}

	comments := r.Group("/comments")
	comments.Use(auth)
	{
		comments.PUT("/:id", h.UpdateComment)
		comments.DELETE("/:id", h.DeleteComment)
	}

	authors := r.Group("/authors")
	authors.Use(auth)
	{
		authors.PUT("/me", h.UpsertMe)
	}

	staff := r.Group("/staff")
	staff.Use(auth)
	{
		staff.GET("", h.ListStaff)
		staff.GET("/me", h.GetMe)
		staff.POST("", h.CreateStaff)
		staff.PATCH("/:id", h.UpdateStaff)
	}

	r.GET("/volumes", h.ListVolumes)
	r.GET("/volumes/:id", h.GetVolume)
	volumes := r.Group("/volumes")
	volumes.Use(auth)
	{
		volumes.POST("", h.CreateVolume)
		volumes.PATCH("/:id", h.UpdateVolume)
	}

	// 审核路由 - 需要认证
	pending := r.Group("/pending")
	pending.Use(auth)
	{
		pending.GET("", h.ListPending)
		pending.GET("/:id", h.GetPending)
		pending.POST("", h.CreatePending)
		pending.POST("/:id/resolve", h.ResolvePending)
	}
}
