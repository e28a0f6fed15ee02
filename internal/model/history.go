package model

import "time"

// StaffComment 版本上的内部批注
type StaffComment struct {
	ID        string     `json:"id"`
	AuthorID  string     `json:"author_id"`
	Text      string     `json:"text"`
	ParentID  *string    `json:"parent_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	EditedAt  *time.Time `json:"edited_at,omitempty"`
}

// ContentHistory 内容版本，被新版本取代后内容不再修改，只有批注列表可变
type ContentHistory struct {
	ID            string         `gorm:"primaryKey;type:varchar(64)" json:"id"`
	ArticleID     string         `gorm:"type:varchar(64);not null;index" json:"article_id"`
	Ordinal       VersionOrdinal `gorm:"not null" json:"ordinal"`
	Content       string         `gorm:"type:text;not null" json:"content"`
	Media         []Media        `gorm:"serializer:json;type:jsonb" json:"media"`
	StaffComments []StaffComment `gorm:"serializer:json;type:jsonb" json:"staff_comments"`
	CreatedAt     time.Time      `json:"created_at"`
}

func (h *ContentHistory) GetID() string { return h.ID }

// FindComment 按 id 查找批注下标，不存在返回 -1
func (h *ContentHistory) FindComment(commentID string) int {
	for i := range h.StaffComments {
		if h.StaffComments[i].ID == commentID {
			return i
		}
	}
	return -1
}
