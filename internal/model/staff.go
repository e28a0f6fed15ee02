package model

import "time"

// Staff 编辑部员工
type Staff struct {
	ID        string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	UserID    string    `gorm:"type:varchar(64);not null;uniqueIndex" json:"user_id"`
	Name      string    `gorm:"type:varchar(255)" json:"name"`
	AvatarURL string    `gorm:"type:varchar(512)" json:"avatar_url"`
	Job       JobTier   `gorm:"type:varchar(32);not null" json:"job"`
	Active    bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Staff) GetID() string { return s.ID }

func (Staff) TableName() string { return "staff" }
