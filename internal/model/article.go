// Package model 编辑部业务实体
package model

import "time"

// Media 媒体条目，文章首图与版本附带的图片等
type Media struct {
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
	Type    string `json:"type,omitempty"` // image, video, audio
}

// Article 文章
type Article struct {
	ID      string        `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Title   string        `gorm:"type:varchar(255);not null" json:"title"`
	Summary string        `gorm:"type:text" json:"summary"`
	Status  ArticleStatus `gorm:"type:varchar(32);not null;index" json:"status"`
	Type    ArticleType   `gorm:"type:varchar(32);not null;index" json:"type"`
	// Author 记录的 id，创建者排在第一位
	AuthorIDs           []string `gorm:"serializer:json;type:jsonb" json:"author_ids"`
	UnlistedAuthorNames []string `gorm:"serializer:json;type:jsonb" json:"unlisted_author_names"`
	EditorialID         string   `gorm:"type:varchar(64);not null" json:"editorial_id"`
	VolumeID            *string  `gorm:"type:varchar(64);index" json:"volume_id,omitempty"`
	FeaturedMedia       *Media   `gorm:"serializer:json;type:jsonb" json:"featured_media,omitempty"`
	// 冗余计数，评论写入后单独更新，不保证与评论表强一致
	PublicCommentCount    int        `gorm:"default:0" json:"public_comment_count"`
	EditorialCommentCount int        `gorm:"default:0" json:"editorial_comment_count"`
	AllowComments         bool       `gorm:"default:true" json:"allow_comments"`
	CreatedAt             time.Time  `json:"created_at"`
	EditedAt              time.Time  `json:"edited_at"`
	PublishedAt           *time.Time `json:"published_at,omitempty"`
}

func (a *Article) GetID() string { return a.ID }
