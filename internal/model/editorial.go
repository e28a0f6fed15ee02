package model

import (
	"slices"
	"time"
)

// EditorialTeam 编辑团队，四个角色列表保存的是外部用户 id
type EditorialTeam struct {
	AuthorIDs      []string `json:"author_ids"`
	ReviewerIDs    []string `json:"reviewer_ids"`
	CorrectorIDs   []string `json:"corrector_ids"`
	EditorChiefIDs []string `json:"editor_chief_ids"`
}

// Contains 是否为团队成员，任一角色列表均可，id 精确匹配
func (t EditorialTeam) Contains(userID string) bool {
	if userID == "" {
		return false
	}
	return slices.Contains(t.AuthorIDs, userID) ||
		slices.Contains(t.ReviewerIDs, userID) ||
		slices.Contains(t.CorrectorIDs, userID) ||
		slices.Contains(t.EditorChiefIDs, userID)
}

// ContainsWorker 作者、审稿、校对成员，用于版本批注权限
func (t EditorialTeam) ContainsWorker(userID string) bool {
	if userID == "" {
		return false
	}
	return slices.Contains(t.AuthorIDs, userID) ||
		slices.Contains(t.ReviewerIDs, userID) ||
		slices.Contains(t.CorrectorIDs, userID)
}

// Roles 按角色列出成员
func (t EditorialTeam) Roles() map[ContributionRole][]string {
	return map[ContributionRole][]string{
		RoleAuthor:      t.AuthorIDs,
		RoleReviewer:    t.ReviewerIDs,
		RoleCorrector:   t.CorrectorIDs,
		RoleEditorChief: t.EditorChiefIDs,
	}
}

// EditorialRecord 文章的编辑记录，与文章一一对应
type EditorialRecord struct {
	ID        string            `gorm:"primaryKey;type:varchar(64)" json:"id"`
	ArticleID string            `gorm:"type:varchar(64);not null;uniqueIndex" json:"article_id"`
	Position  EditorialPosition `gorm:"type:varchar(32);not null" json:"position"`
	// 指向当前内容版本，必须出现在 HistoryIDs 中
	CurrentHistoryID string `gorm:"type:varchar(64)" json:"current_history_id"`
	// 只追加
	HistoryIDs []string      `gorm:"serializer:json;type:jsonb" json:"history_ids"`
	Team       EditorialTeam `gorm:"serializer:json;type:jsonb" json:"team"`
	CommentIDs []string      `gorm:"serializer:json;type:jsonb" json:"comment_ids"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

func (e *EditorialRecord) GetID() string { return e.ID }
