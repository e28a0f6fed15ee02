// Package command 可被推迟执行的编辑命令
//
// 每种命令是一个独立的结构体，字段均为补丁语义：nil 表示不修改。
// 命令以类型标签 + JSON 参数的形式保存在待审批请求中。
package command

import (
	"errors"
	"fmt"
	"strings"

	"terminal-terrace/editorial/internal/model"
)

// Type 命令类型标签，审批时按标签分派
type Type string

const (
	TypeUpdateArticleMetadata Type = "UpdateArtigoMetadata"
	TypeChangeArticleStatus   Type = "ChangeArtigoStatus"
	TypeUpdateArticleContent  Type = "UpdateArtigoContent"
	TypeUpdateEditorialTeam   Type = "UpdateEditorialTeam"
	TypeCreateStaff           Type = "CreateStaff"
	TypeUpdateStaff           Type = "UpdateStaff"
	TypeDeleteInteraction     Type = "DeleteInteracao"
	TypeCreateVolume          Type = "CreateVolume"
	TypeUpdateVolume          Type = "UpdateVolume"
	// TypeUpdateStaffJob 旧数据中的标签，解码为只修改职级的 UpdateStaff
	TypeUpdateStaffJob Type = "UpdateStaffJob"
)

var ErrInvalidCommand = errors.New("invalid command")

// Command 命令
type Command interface {
	Type() Type
	TargetType() model.TargetType
	Validate() error
	isCommand()
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidCommand, fmt.Sprintf(format, args...))
}

// UpdateArticleMetadata 修改文章基本信息
type UpdateArticleMetadata struct {
	Title               *string            `json:"title,omitempty"`
	Summary             *string            `json:"summary,omitempty"`
	ArticleType         *model.ArticleType `json:"type,omitempty"`
	UnlistedAuthorNames *[]string          `json:"unlisted_author_names,omitempty"`
	// 空字符串表示移出期刊
	VolumeID      *string      `json:"volume_id,omitempty"`
	AllowComments *bool        `json:"allow_comments,omitempty"`
	FeaturedMedia *model.Media `json:"featured_media,omitempty"`
}

func (UpdateArticleMetadata) Type() Type                   { return TypeUpdateArticleMetadata }
func (UpdateArticleMetadata) TargetType() model.TargetType { return model.TargetArticle }
func (UpdateArticleMetadata) isCommand()                   {}

func (c UpdateArticleMetadata) Validate() error {
	if c.Title != nil && strings.TrimSpace(*c.Title) == "" {
		return invalid("title must not be empty")
	}
	if c.ArticleType != nil && !c.ArticleType.Valid() {
		return invalid("unknown article type %q", *c.ArticleType)
	}
	return nil
}

// ChangeArticleStatus 修改文章状态与编辑流程位置
type ChangeArticleStatus struct {
	Status   model.ArticleStatus      `json:"status"`
	Position *model.EditorialPosition `json:"position,omitempty"`
}

func (ChangeArticleStatus) Type() Type                   { return TypeChangeArticleStatus }
func (ChangeArticleStatus) TargetType() model.TargetType { return model.TargetArticle }
func (ChangeArticleStatus) isCommand()                   {}

func (c ChangeArticleStatus) Validate() error {
	if !c.Status.Valid() {
		return invalid("unknown article status %q", c.Status)
	}
	if c.Position != nil && !c.Position.Valid() {
		return invalid("unknown editorial position %q", *c.Position)
	}
	return nil
}

// UpdateArticleContent 提交新的内容版本
type UpdateArticleContent struct {
	Content string `json:"content"`
	// nil 沿用当前版本的媒体
	Media *[]model.Media `json:"media,omitempty"`
}

func (UpdateArticleContent) Type() Type                   { return TypeUpdateArticleContent }
func (UpdateArticleContent) TargetType() model.TargetType { return model.TargetArticle }
func (UpdateArticleContent) isCommand()                   {}

func (c UpdateArticleContent) Validate() error {
	if strings.TrimSpace(c.Content) == "" {
		return invalid("content must not be empty")
	}
	return nil
}

// UpdateEditorialTeam 替换编辑团队的角色列表
type UpdateEditorialTeam struct {
	AuthorIDs      *[]string `json:"author_ids,omitempty"`
	ReviewerIDs    *[]string `json:"reviewer_ids,omitempty"`
	CorrectorIDs   *[]string `json:"corrector_ids,omitempty"`
	EditorChiefIDs *[]string `json:"editor_chief_ids,omitempty"`
}

func (UpdateEditorialTeam) Type() Type                   { return TypeUpdateEditorialTeam }
func (UpdateEditorialTeam) TargetType() model.TargetType { return model.TargetEditorial }
func (UpdateEditorialTeam) isCommand()                   {}

func (c UpdateEditorialTeam) Validate() error {
	if c.AuthorIDs == nil && c.ReviewerIDs == nil && c.CorrectorIDs == nil && c.EditorChiefIDs == nil {
		return invalid("no team list given")
	}
	if c.AuthorIDs != nil && len(*c.AuthorIDs) == 0 {
		return invalid("an article needs at least one author")
	}
	return nil
}

// Apply 将补丁应用到团队
func (c UpdateEditorialTeam) Apply(team model.EditorialTeam) model.EditorialTeam {
	if c.AuthorIDs != nil {
		team.AuthorIDs = dedupe(*c.AuthorIDs)
	}
	if c.ReviewerIDs != nil {
		team.ReviewerIDs = dedupe(*c.ReviewerIDs)
	}
	if c.CorrectorIDs != nil {
		team.CorrectorIDs = dedupe(*c.CorrectorIDs)
	}
	if c.EditorChiefIDs != nil {
		team.EditorChiefIDs = dedupe(*c.EditorChiefIDs)
	}
	return team
}

func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// CreateStaff 创建员工
type CreateStaff struct {
	UserID    string        `json:"user_id"`
	Name      string        `json:"name,omitempty"`
	AvatarURL string        `json:"avatar_url,omitempty"`
	Job       model.JobTier `json:"job"`
}

func (CreateStaff) Type() Type                   { return TypeCreateStaff }
func (CreateStaff) TargetType() model.TargetType { return model.TargetStaff }
func (CreateStaff) isCommand()                   {}

func (c CreateStaff) Validate() error {
	if c.UserID == "" {
		return invalid("user_id is required")
	}
	if !c.Job.Valid() {
		return invalid("unknown job %q", c.Job)
	}
	return nil
}

// UpdateStaff 修改员工
type UpdateStaff struct {
	Job       *model.JobTier `json:"job,omitempty"`
	Active    *bool          `json:"active,omitempty"`
	Name      *string        `json:"name,omitempty"`
	AvatarURL *string        `json:"avatar_url,omitempty"`
}

func (UpdateStaff) Type() Type                   { return TypeUpdateStaff }
func (UpdateStaff) TargetType() model.TargetType { return model.TargetStaff }
func (UpdateStaff) isCommand()                   {}

func (c UpdateStaff) Validate() error {
	if c.Job != nil && !c.Job.Valid() {
		return invalid("unknown job %q", *c.Job)
	}
	return nil
}

// DeleteInteraction 删除评论
type DeleteInteraction struct {
	Reason string `json:"reason,omitempty"`
}

func (DeleteInteraction) Type() Type                   { return TypeDeleteInteraction }
func (DeleteInteraction) TargetType() model.TargetType { return model.TargetInteraction }
func (DeleteInteraction) isCommand()                   {}
func (DeleteInteraction) Validate() error              { return nil }

// CreateVolume 创建期刊
type CreateVolume struct {
	Edition int          `json:"edition"`
	Title   string       `json:"title"`
	Summary string       `json:"summary,omitempty"`
	Month   int          `json:"month"`
	Year    int          `json:"year"`
	Cover   *model.Media `json:"cover,omitempty"`
}

func (CreateVolume) Type() Type                   { return TypeCreateVolume }
func (CreateVolume) TargetType() model.TargetType { return model.TargetVolume }
func (CreateVolume) isCommand()                   {}

func (c CreateVolume) Validate() error {
	if c.Edition <= 0 {
		return invalid("edition must be positive")
	}
	if c.Month < 1 || c.Month > 12 {
		return invalid("month out of range: %d", c.Month)
	}
	if c.Year <= 0 {
		return invalid("year must be positive")
	}
	return nil
}

// UpdateVolume 修改期刊
type UpdateVolume struct {
	Edition *int                `json:"edition,omitempty"`
	Title   *string             `json:"title,omitempty"`
	Summary *string             `json:"summary,omitempty"`
	Month   *int                `json:"month,omitempty"`
	Year    *int                `json:"year,omitempty"`
	Status  *model.VolumeStatus `json:"status,omitempty"`
	Cover   *model.Media        `json:"cover,omitempty"`
}

func (UpdateVolume) Type() Type                   { return TypeUpdateVolume }
func (UpdateVolume) TargetType() model.TargetType { return model.TargetVolume }
func (UpdateVolume) isCommand()                   {}

func (c UpdateVolume) Validate() error {
	if c.Edition != nil && *c.Edition <= 0 {
		return invalid("edition must be positive")
	}
	if c.Month != nil && (*c.Month < 1 || *c.Month > 12) {
		return invalid("month out of range: %d", *c.Month)
	}
	if c.Status != nil && !c.Status.Valid() {
		return invalid("unknown volume status %q", *c.Status)
	}
	return nil
}
