package model

import "time"

// Volume 期刊
type Volume struct {
	ID         string       `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Edition    int          `gorm:"not null;index" json:"edition"`
	Title      string       `gorm:"type:varchar(255)" json:"title"`
	Summary    string       `gorm:"type:text" json:"summary"`
	Month      int          `json:"month"`
	Year       int          `gorm:"index" json:"year"`
	Status     VolumeStatus `gorm:"type:varchar(32);not null" json:"status"`
	Cover      *Media       `gorm:"serializer:json;type:jsonb" json:"cover,omitempty"`
	ArticleIDs []string     `gorm:"serializer:json;type:jsonb" json:"article_ids"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

func (v *Volume) GetID() string { return v.ID }
