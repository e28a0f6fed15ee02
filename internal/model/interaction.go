package model

import "time"

// Interaction 评论，公开评论与编辑部内部评论共用
type Interaction struct {
	ID        string          `gorm:"primaryKey;type:varchar(64)" json:"id"`
	ArticleID string          `gorm:"type:varchar(64);not null;index" json:"article_id"`
	UserID    string          `gorm:"type:varchar(64);not null;index" json:"user_id"`
	UserName  string          `gorm:"type:varchar(255)" json:"user_name"`
	Content   string          `gorm:"type:text;not null" json:"content"`
	Kind      InteractionKind `gorm:"type:varchar(32);not null;index" json:"kind"`
	ParentID  *string         `gorm:"type:varchar(64);index" json:"parent_id,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	EditedAt  *time.Time      `json:"edited_at,omitempty"`
}

func (i *Interaction) GetID() string { return i.ID }
