package dto

import (
	"encoding/json"

	"terminal-terrace/editorial/internal/command"
	"terminal-terrace/editorial/internal/model"
)

// AuthorRequest 文章作者
type AuthorRequest struct {
	UserID    string `json:"user_id" binding:"required"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

// CreateArticleRequest 创建文章请求，调用方自动成为第一作者
type CreateArticleRequest struct {
	Title               string          `json:"title" binding:"required,max=255"`
	Summary             string          `json:"summary"`
	Type                string          `json:"type" binding:"required,oneof=Article Blog Opinion Interview Essay"`
	Authors             []AuthorRequest `json:"authors" binding:"dive"`
	UnlistedAuthorNames []string        `json:"unlisted_author_names"`
	VolumeID            *string         `json:"volume_id"`
	AllowComments       *bool           `json:"allow_comments"`
	Content             string          `json:"content" binding:"required"`
	Media               []model.Media   `json:"media"`
}

// 以下受控操作请求在命令参数之外附带提交说明，Bolsista 的请求会作为审批理由保存

type UpdateMetadataRequest struct {
	command.UpdateArticleMetadata
	Commentary string `json:"commentary"`
}

type UpdateContentRequest struct {
	command.UpdateArticleContent
	Commentary string `json:"commentary"`
}

type ChangeStatusRequest struct {
	command.ChangeArticleStatus
	Commentary string `json:"commentary"`
}

type UpdateTeamRequest struct {
	command.UpdateEditorialTeam
	Commentary string `json:"commentary"`
}

type CreateStaffRequest struct {
	command.CreateStaff
	Commentary string `json:"commentary"`
}

type UpdateStaffRequest struct {
	command.UpdateStaff
	Commentary string `json:"commentary"`
}

type CreateVolumeRequest struct {
	command.CreateVolume
	Commentary string `json:"commentary"`
}

type UpdateVolumeRequest struct {
	command.UpdateVolume
	Commentary string `json:"commentary"`
}

// CommentRequest 发表评论
type CommentRequest struct {
	Content  string  `json:"content" binding:"required,max=5000"`
	ParentID *string `json:"parent_id"`
	UserName string  `json:"user_name" binding:"max=255"`
}

// UpdateCommentRequest 修改评论
type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required,max=5000"`
}

// DeleteCommentRequest 删除评论，理由可选
type DeleteCommentRequest struct {
	Reason string `json:"reason"`
}

// StaffCommentRequest 版本批注
type StaffCommentRequest struct {
	Text     string  `json:"text" binding:"required,max=5000"`
	ParentID *string `json:"parent_id"`
}

// CreatePendingRequest 直接提交待审批请求
type CreatePendingRequest struct {
	TargetID      string          `json:"target_id"`
	TargetType    string          `json:"target_type" binding:"omitempty,oneof=Article Staff Volume Interaction Editorial"`
	CommandType   string          `json:"command_type" binding:"required"`
	CommandParams json.RawMessage `json:"command_params"`
	Commentary    string          `json:"commentary"`
}

// ResolvePendingRequest 处理待审批请求
type ResolvePendingRequest struct {
	Approve *bool `json:"approve" binding:"required"`
}

// UpsertAuthorRequest 绑定当前用户的作者信息
type UpsertAuthorRequest struct {
	Name      string `json:"name" binding:"max=255"`
	AvatarURL string `json:"avatar_url" binding:"max=512"`
}
